package domain

import (
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
)

// ---------------- Predicados de Pet ----------------

func PetIsDeleted(v bool) sharedDomain.Predicate[Pet] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "is_deleted", Op: sharedDomain.OpEq, Value: v},
		func(p *Pet) bool { return p.IsDeleted == v })
}

func PetIsAdopted(v bool) sharedDomain.Predicate[Pet] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "is_adopted", Op: sharedDomain.OpEq, Value: v},
		func(p *Pet) bool { return p.IsAdopted == v })
}

func PetNameContains(name string) sharedDomain.Predicate[Pet] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "name", Op: sharedDomain.OpILike, Value: name},
		func(p *Pet) bool { return sharedDomain.Contains(p.Name, name) })
}

func PetSizeIs(size string) sharedDomain.Predicate[Pet] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "size", Op: sharedDomain.OpEq, Value: size},
		func(p *Pet) bool { return p.Size == size })
}

func PetGenderIs(gender string) sharedDomain.Predicate[Pet] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "gender", Op: sharedDomain.OpEq, Value: gender},
		func(p *Pet) bool { return p.Gender == gender })
}

func PetSpeciesIs(id uuid.UUID) sharedDomain.Predicate[Pet] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "species_id", Op: sharedDomain.OpEq, Value: id},
		func(p *Pet) bool { return p.SpeciesID != nil && *p.SpeciesID == id })
}

func PetBreedIs(id uuid.UUID) sharedDomain.Predicate[Pet] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "breed_id", Op: sharedDomain.OpEq, Value: id},
		func(p *Pet) bool { return p.BreedID != nil && *p.BreedID == id })
}

func PetShelterIs(id uuid.UUID) sharedDomain.Predicate[Pet] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "shelter_id", Op: sharedDomain.OpEq, Value: id},
		func(p *Pet) bool { return p.ShelterID != nil && *p.ShelterID == id })
}

// PetHasShelter protege a los predicados que leen el refugio.
func PetHasShelter() sharedDomain.Predicate[Pet] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "shelter_id", Op: sharedDomain.OpNotNull},
		func(p *Pet) bool { return p.Shelter != nil })
}

// PetShelterCityContains asume PetHasShelter antes en la composición.
func PetShelterCityContains(city string) sharedDomain.Predicate[Pet] {
	return PetHasShelter().And(sharedDomain.Where(sharedDomain.Criterion{Field: "Shelter.city", Op: sharedDomain.OpILike, Value: city},
		func(p *Pet) bool { return sharedDomain.Contains(sharedDomain.Text(p.Shelter.City), city) }))
}

func PetMinAge(months int) sharedDomain.Predicate[Pet] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "age_months", Op: sharedDomain.OpGte, Value: months},
		func(p *Pet) bool { return p.AgeMonths >= months })
}

func PetMaxAge(months int) sharedDomain.Predicate[Pet] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "age_months", Op: sharedDomain.OpLte, Value: months},
		func(p *Pet) bool { return p.AgeMonths <= months })
}

// PetHasAnyTag se cumple si la mascota tiene al menos una de las etiquetas.
func PetHasAnyTag(tags []string) sharedDomain.Predicate[Pet] {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return sharedDomain.Where(sharedDomain.Criterion{Field: "Tags.name", Op: sharedDomain.OpIn, Value: tags},
		func(p *Pet) bool { return p.HasTag(set) })
}

// ---------------- Orden ----------------

const (
	PetSortName      sharedDomain.SortKey = "name"
	PetSortAge       sharedDomain.SortKey = "age"
	PetSortSize      sharedDomain.SortKey = "size"
	PetSortCreatedAt sharedDomain.SortKey = "createdat"
)

var PetSorts = sharedDomain.SortTable[Pet]{
	PetSortName:      sharedDomain.ByText("name", func(p *Pet) string { return p.Name }),
	PetSortAge:       sharedDomain.By("age_months", func(p *Pet) int { return p.AgeMonths }),
	PetSortSize:      sharedDomain.By("size", func(p *Pet) string { return p.Size }),
	PetSortCreatedAt: sharedDomain.ByTime("created_at", func(p *Pet) time.Time { return p.CreatedAt }),
}

var PetDefaultSort = sharedDomain.SortDefault{Key: PetSortCreatedAt, Descending: true}

// ---------------- Builder ----------------

// PetSpecification construye el listado de mascotas. Excluye por defecto las
// borradas y las adoptadas.
func PetSpecification(f PetFilter) sharedDomain.Specification[Pet] {
	spec := sharedDomain.NewSpecification(sharedDomain.Fold(
		sharedDomain.DefaultFalse(f.IsDeleted, PetIsDeleted),
		sharedDomain.DefaultFalse(f.IsAdopted, PetIsAdopted),
		sharedDomain.WhenPresent(f.Name, PetNameContains),
		sharedDomain.WhenPresent(f.Size, PetSizeIs),
		sharedDomain.WhenPresent(f.Gender, PetGenderIs),
		sharedDomain.WhenPresent(f.SpeciesID, PetSpeciesIs),
		sharedDomain.WhenPresent(f.BreedID, PetBreedIs),
		sharedDomain.WhenPresent(f.ShelterID, PetShelterIs),
		sharedDomain.WhenPresent(f.City, PetShelterCityContains),
		sharedDomain.WhenPresent(f.MinAgeMonths, PetMinAge),
		sharedDomain.WhenPresent(f.MaxAgeMonths, PetMaxAge),
		sharedDomain.WhenNotEmpty(f.CompatibilityTags, PetHasAnyTag),
	))

	spec.AddInclude("Shelter")
	spec.AddInclude("Species")
	spec.AddInclude("Breed")
	spec.AddIncludePath("Breed.Species")
	spec.AddInclude("Tags")

	PetSorts.Apply(spec, f.SortBy, f.SortDescending, PetDefaultSort)
	spec.ApplyPaging(f.PageNumber, f.PageSize)
	return *spec
}
