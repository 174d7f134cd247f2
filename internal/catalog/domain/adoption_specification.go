package domain

import (
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
)

// ---------------- AdoptionApplication ----------------

func AdoptionIsClosed(v bool) sharedDomain.Predicate[AdoptionApplication] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "is_closed", Op: sharedDomain.OpEq, Value: v},
		func(a *AdoptionApplication) bool { return a.IsClosed == v })
}

func AdoptionForPet(id uuid.UUID) sharedDomain.Predicate[AdoptionApplication] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "pet_id", Op: sharedDomain.OpEq, Value: id},
		func(a *AdoptionApplication) bool { return a.PetID == id })
}

func AdoptionByUser(id uuid.UUID) sharedDomain.Predicate[AdoptionApplication] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "user_id", Op: sharedDomain.OpEq, Value: id},
		func(a *AdoptionApplication) bool { return a.UserID == id })
}

func AdoptionStatusIs(status string) sharedDomain.Predicate[AdoptionApplication] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "status", Op: sharedDomain.OpEq, Value: status},
		func(a *AdoptionApplication) bool { return a.Status == status })
}

// AdoptionHasPet protege a los predicados que leen la mascota.
func AdoptionHasPet() sharedDomain.Predicate[AdoptionApplication] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "pet_id", Op: sharedDomain.OpNotNull},
		func(a *AdoptionApplication) bool { return a.Pet != nil })
}

// AdoptionForShelter filtra por el refugio de la mascota solicitada.
func AdoptionForShelter(id uuid.UUID) sharedDomain.Predicate[AdoptionApplication] {
	return AdoptionHasPet().And(sharedDomain.Where(sharedDomain.Criterion{Field: "Pet.shelter_id", Op: sharedDomain.OpEq, Value: id},
		func(a *AdoptionApplication) bool { return a.Pet.ShelterID != nil && *a.Pet.ShelterID == id }))
}

const (
	AdoptionSortStatus    sharedDomain.SortKey = "status"
	AdoptionSortCreatedAt sharedDomain.SortKey = "createdat"
)

var AdoptionSorts = sharedDomain.SortTable[AdoptionApplication]{
	AdoptionSortStatus:    sharedDomain.By("status", func(a *AdoptionApplication) string { return a.Status }),
	AdoptionSortCreatedAt: sharedDomain.ByTime("created_at", func(a *AdoptionApplication) time.Time { return a.CreatedAt }),
}

var AdoptionDefaultSort = sharedDomain.SortDefault{Key: AdoptionSortCreatedAt, Descending: true}

func AdoptionApplicationSpecification(f AdoptionApplicationFilter) sharedDomain.Specification[AdoptionApplication] {
	spec := sharedDomain.NewSpecification(sharedDomain.Fold(
		sharedDomain.DefaultFalse(f.IsClosed, AdoptionIsClosed),
		sharedDomain.WhenPresent(f.PetID, AdoptionForPet),
		sharedDomain.WhenPresent(f.UserID, AdoptionByUser),
		sharedDomain.WhenPresent(f.ShelterID, AdoptionForShelter),
		sharedDomain.WhenPresent(f.Status, AdoptionStatusIs),
	))
	spec.AddInclude("Pet")
	spec.AddIncludePath("Pet.Shelter")
	spec.AddInclude("User")
	AdoptionSorts.Apply(spec, f.SortBy, f.SortDescending, AdoptionDefaultSort)
	spec.ApplyPaging(f.PageNumber, f.PageSize)
	return *spec
}

// ApplicationsForPetSpecification lista las solicitudes de una mascota concreta.
// El petID es obligatorio; PetID y ShelterID del filtro se ignoran.
func ApplicationsForPetSpecification(petID uuid.UUID, f AdoptionApplicationFilter) sharedDomain.Specification[AdoptionApplication] {
	spec := sharedDomain.NewSpecification(sharedDomain.Fold(
		sharedDomain.Always(AdoptionForPet(petID)),
		sharedDomain.DefaultFalse(f.IsClosed, AdoptionIsClosed),
		sharedDomain.WhenPresent(f.UserID, AdoptionByUser),
		sharedDomain.WhenPresent(f.Status, AdoptionStatusIs),
	))
	spec.AddInclude("User")
	AdoptionSorts.Apply(spec, f.SortBy, f.SortDescending, AdoptionDefaultSort)
	spec.ApplyPaging(f.PageNumber, f.PageSize)
	return *spec
}

// ---------------- Favorite ----------------

func FavoriteByUser(id uuid.UUID) sharedDomain.Predicate[Favorite] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "user_id", Op: sharedDomain.OpEq, Value: id},
		func(f *Favorite) bool { return f.UserID == id })
}

// FavoritePetAvailable descarta favoritos cuya mascota falta o está borrada.
// La comprobación de nil va primero.
func FavoritePetAvailable() sharedDomain.Predicate[Favorite] {
	hasPet := sharedDomain.Where(sharedDomain.Criterion{Field: "pet_id", Op: sharedDomain.OpNotNull},
		func(f *Favorite) bool { return f.Pet != nil })
	notDeleted := sharedDomain.Where(sharedDomain.Criterion{Field: "Pet.is_deleted", Op: sharedDomain.OpEq, Value: false},
		func(f *Favorite) bool { return !f.Pet.IsDeleted })
	return hasPet.And(notDeleted)
}

const FavoriteSortCreatedAt sharedDomain.SortKey = "createdat"

var FavoriteSorts = sharedDomain.SortTable[Favorite]{
	FavoriteSortCreatedAt: sharedDomain.ByTime("created_at", func(f *Favorite) time.Time { return f.CreatedAt }),
}

var FavoriteDefaultSort = sharedDomain.SortDefault{Key: FavoriteSortCreatedAt, Descending: true}

func FavoriteSpecification(f FavoriteFilter) sharedDomain.Specification[Favorite] {
	spec := sharedDomain.NewSpecification(sharedDomain.Fold(
		sharedDomain.WhenPresent(f.UserID, FavoriteByUser),
		sharedDomain.Always(FavoritePetAvailable()),
	))
	spec.AddInclude("Pet")
	spec.AddIncludePath("Pet.Shelter")
	FavoriteSorts.Apply(spec, f.SortBy, f.SortDescending, FavoriteDefaultSort)
	spec.ApplyPaging(f.PageNumber, f.PageSize)
	return *spec
}
