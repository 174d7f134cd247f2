package domain

import (
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
)

// ---------------- Breed ----------------

func BreedNameContains(name string) sharedDomain.Predicate[Breed] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "name", Op: sharedDomain.OpILike, Value: name},
		func(b *Breed) bool { return sharedDomain.Contains(b.Name, name) })
}

func BreedOfSpecies(id uuid.UUID) sharedDomain.Predicate[Breed] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "species_id", Op: sharedDomain.OpEq, Value: id},
		func(b *Breed) bool { return b.SpeciesID == id })
}

const BreedSortName sharedDomain.SortKey = "name"

var BreedSorts = sharedDomain.SortTable[Breed]{
	BreedSortName: sharedDomain.ByText("name", func(b *Breed) string { return b.Name }),
}

var BreedDefaultSort = sharedDomain.SortDefault{Key: BreedSortName}

func BreedSpecification(f BreedFilter) sharedDomain.Specification[Breed] {
	spec := sharedDomain.NewSpecification(sharedDomain.Fold(
		sharedDomain.WhenPresent(f.Name, BreedNameContains),
		sharedDomain.WhenPresent(f.SpeciesID, BreedOfSpecies),
	))
	spec.AddInclude("Species")
	BreedSorts.Apply(spec, f.SortBy, f.SortDescending, BreedDefaultSort)
	spec.ApplyPaging(f.PageNumber, f.PageSize)
	return *spec
}

// ---------------- Species ----------------

func SpeciesNameContains(name string) sharedDomain.Predicate[Species] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "name", Op: sharedDomain.OpILike, Value: name},
		func(s *Species) bool { return sharedDomain.Contains(s.Name, name) })
}

const SpeciesSortName sharedDomain.SortKey = "name"

var SpeciesSorts = sharedDomain.SortTable[Species]{
	SpeciesSortName: sharedDomain.ByText("name", func(s *Species) string { return s.Name }),
}

var SpeciesDefaultSort = sharedDomain.SortDefault{Key: SpeciesSortName}

func SpeciesSpecification(f SpeciesFilter) sharedDomain.Specification[Species] {
	spec := sharedDomain.NewSpecification(sharedDomain.Fold(
		sharedDomain.WhenPresent(f.Name, SpeciesNameContains),
	))
	SpeciesSorts.Apply(spec, f.SortBy, f.SortDescending, SpeciesDefaultSort)
	spec.ApplyPaging(f.PageNumber, f.PageSize)
	return *spec
}

// ---------------- Attribute ----------------

func AttributeKindIs(kind string) sharedDomain.Predicate[Attribute] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "kind", Op: sharedDomain.OpEq, Value: kind},
		func(a *Attribute) bool { return a.Kind == kind })
}

func AttributeValueContains(value string) sharedDomain.Predicate[Attribute] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "value", Op: sharedDomain.OpILike, Value: value},
		func(a *Attribute) bool { return sharedDomain.Contains(a.Value, value) })
}

const (
	AttributeSortKind  sharedDomain.SortKey = "kind"
	AttributeSortValue sharedDomain.SortKey = "value"
)

var AttributeSorts = sharedDomain.SortTable[Attribute]{
	AttributeSortKind:  sharedDomain.By("kind", func(a *Attribute) string { return a.Kind }),
	AttributeSortValue: sharedDomain.ByText("value", func(a *Attribute) string { return a.Value }),
}

var AttributeDefaultSort = sharedDomain.SortDefault{Key: AttributeSortKind}

func AttributeSpecification(f AttributeFilter) sharedDomain.Specification[Attribute] {
	spec := sharedDomain.NewSpecification(sharedDomain.Fold(
		sharedDomain.WhenPresent(f.Kind, AttributeKindIs),
		sharedDomain.WhenPresent(f.Value, AttributeValueContains),
	))
	AttributeSorts.Apply(spec, f.SortBy, f.SortDescending, AttributeDefaultSort)
	spec.ApplyPaging(f.PageNumber, f.PageSize)
	return *spec
}

// ---------------- User ----------------

func UserIsDeleted(v bool) sharedDomain.Predicate[User] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "is_deleted", Op: sharedDomain.OpEq, Value: v},
		func(u *User) bool { return u.IsDeleted == v })
}

func UserEmailIs(email string) sharedDomain.Predicate[User] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "email", Op: sharedDomain.OpEq, Value: email},
		func(u *User) bool { return u.Email == email })
}

func UserNameContains(name string) sharedDomain.Predicate[User] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "name", Op: sharedDomain.OpILike, Value: name},
		func(u *User) bool { return sharedDomain.Contains(u.Name, name) })
}

func UserRoleIs(role string) sharedDomain.Predicate[User] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "role", Op: sharedDomain.OpEq, Value: role},
		func(u *User) bool { return u.Role == role })
}

const (
	UserSortName      sharedDomain.SortKey = "name"
	UserSortEmail     sharedDomain.SortKey = "email"
	UserSortCreatedAt sharedDomain.SortKey = "createdat"
)

var UserSorts = sharedDomain.SortTable[User]{
	UserSortName:      sharedDomain.ByText("name", func(u *User) string { return u.Name }),
	UserSortEmail:     sharedDomain.ByText("email", func(u *User) string { return u.Email }),
	UserSortCreatedAt: sharedDomain.ByTime("created_at", func(u *User) time.Time { return u.CreatedAt }),
}

var UserDefaultSort = sharedDomain.SortDefault{Key: UserSortCreatedAt, Descending: true}

func UserSpecification(f UserFilter) sharedDomain.Specification[User] {
	spec := sharedDomain.NewSpecification(sharedDomain.Fold(
		sharedDomain.DefaultFalse(f.IsDeleted, UserIsDeleted),
		sharedDomain.WhenPresent(f.Email, UserEmailIs),
		sharedDomain.WhenPresent(f.Name, UserNameContains),
		sharedDomain.WhenPresent(f.Role, UserRoleIs),
	))
	UserSorts.Apply(spec, f.SortBy, f.SortDescending, UserDefaultSort)
	spec.ApplyPaging(f.PageNumber, f.PageSize)
	return *spec
}
