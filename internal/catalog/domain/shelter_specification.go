package domain

import (
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
)

// ---------------- Shelter ----------------

func ShelterIsDeleted(v bool) sharedDomain.Predicate[Shelter] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "is_deleted", Op: sharedDomain.OpEq, Value: v},
		func(s *Shelter) bool { return s.IsDeleted == v })
}

func ShelterNameContains(name string) sharedDomain.Predicate[Shelter] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "name", Op: sharedDomain.OpILike, Value: name},
		func(s *Shelter) bool { return sharedDomain.Contains(s.Name, name) })
}

func ShelterCityContains(city string) sharedDomain.Predicate[Shelter] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "city", Op: sharedDomain.OpILike, Value: city},
		func(s *Shelter) bool { return sharedDomain.Contains(sharedDomain.Text(s.City), city) })
}

func ShelterManagedBy(id uuid.UUID) sharedDomain.Predicate[Shelter] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "manager_id", Op: sharedDomain.OpEq, Value: id},
		func(s *Shelter) bool { return s.ManagerID != nil && *s.ManagerID == id })
}

const (
	ShelterSortName      sharedDomain.SortKey = "name"
	ShelterSortCity      sharedDomain.SortKey = "city"
	ShelterSortCreatedAt sharedDomain.SortKey = "createdat"
)

var ShelterSorts = sharedDomain.SortTable[Shelter]{
	ShelterSortName:      sharedDomain.ByText("name", func(s *Shelter) string { return s.Name }),
	ShelterSortCity:      sharedDomain.ByText("city", func(s *Shelter) string { return sharedDomain.Text(s.City) }),
	ShelterSortCreatedAt: sharedDomain.ByTime("created_at", func(s *Shelter) time.Time { return s.CreatedAt }),
}

var ShelterDefaultSort = sharedDomain.SortDefault{Key: ShelterSortName}

func ShelterSpecification(f ShelterFilter) sharedDomain.Specification[Shelter] {
	spec := sharedDomain.NewSpecification(sharedDomain.Fold(
		sharedDomain.DefaultFalse(f.IsDeleted, ShelterIsDeleted),
		sharedDomain.WhenPresent(f.Name, ShelterNameContains),
		sharedDomain.WhenPresent(f.City, ShelterCityContains),
		sharedDomain.WhenPresent(f.ManagerID, ShelterManagedBy),
	))
	ShelterSorts.Apply(spec, f.SortBy, f.SortDescending, ShelterDefaultSort)
	spec.ApplyPaging(f.PageNumber, f.PageSize)
	return *spec
}

// ---------------- ShelterApplication ----------------

func ShelterApplicationStatusIs(status string) sharedDomain.Predicate[ShelterApplication] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "status", Op: sharedDomain.OpEq, Value: status},
		func(a *ShelterApplication) bool { return a.Status == status })
}

func ShelterApplicationByUser(id uuid.UUID) sharedDomain.Predicate[ShelterApplication] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "user_id", Op: sharedDomain.OpEq, Value: id},
		func(a *ShelterApplication) bool { return a.UserID == id })
}

func ShelterApplicationNameContains(name string) sharedDomain.Predicate[ShelterApplication] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "shelter_name", Op: sharedDomain.OpILike, Value: name},
		func(a *ShelterApplication) bool { return sharedDomain.Contains(a.ShelterName, name) })
}

func ShelterApplicationCityContains(city string) sharedDomain.Predicate[ShelterApplication] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "city", Op: sharedDomain.OpILike, Value: city},
		func(a *ShelterApplication) bool { return sharedDomain.Contains(sharedDomain.Text(a.City), city) })
}

const (
	ShelterApplicationSortName      sharedDomain.SortKey = "sheltername"
	ShelterApplicationSortStatus    sharedDomain.SortKey = "status"
	ShelterApplicationSortCreatedAt sharedDomain.SortKey = "createdat"
)

var ShelterApplicationSorts = sharedDomain.SortTable[ShelterApplication]{
	ShelterApplicationSortName:      sharedDomain.ByText("shelter_name", func(a *ShelterApplication) string { return a.ShelterName }),
	ShelterApplicationSortStatus:    sharedDomain.By("status", func(a *ShelterApplication) string { return a.Status }),
	ShelterApplicationSortCreatedAt: sharedDomain.ByTime("created_at", func(a *ShelterApplication) time.Time { return a.CreatedAt }),
}

var ShelterApplicationDefaultSort = sharedDomain.SortDefault{Key: ShelterApplicationSortCreatedAt, Descending: true}

func ShelterApplicationSpecification(f ShelterApplicationFilter) sharedDomain.Specification[ShelterApplication] {
	spec := sharedDomain.NewSpecification(sharedDomain.Fold(
		sharedDomain.WhenPresent(f.Status, ShelterApplicationStatusIs),
		sharedDomain.WhenPresent(f.UserID, ShelterApplicationByUser),
		sharedDomain.WhenPresent(f.ShelterName, ShelterApplicationNameContains),
		sharedDomain.WhenPresent(f.City, ShelterApplicationCityContains),
	))
	spec.AddInclude("User")
	ShelterApplicationSorts.Apply(spec, f.SortBy, f.SortDescending, ShelterApplicationDefaultSort)
	spec.ApplyPaging(f.PageNumber, f.PageSize)
	return *spec
}
