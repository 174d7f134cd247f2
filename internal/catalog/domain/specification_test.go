package domain

import (
	"testing"

	"github.com/google/uuid"
	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
	sharedQuery "github.com/kast7n/PurrfectMatchPublic-sub003/shared/platform/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[V any](v V) *V { return &v }

func includes[T any](spec sharedDomain.Specification[T]) []string {
	out := make([]string, 0, len(spec.Includes))
	for _, p := range spec.Includes {
		out = append(out, p.String())
	}
	return out
}

func fields[T any](spec sharedDomain.Specification[T]) []string {
	out := []string{}
	for _, c := range spec.Criteria.ToConditions() {
		out = append(out, c.Field)
	}
	return out
}

func TestPetSpecification_EmptyFilterExcludesDeletedAndAdopted(t *testing.T) {
	spec := PetSpecification(PetFilter{})

	assert.Equal(t, []sharedDomain.Criterion{
		{Field: "is_deleted", Op: sharedDomain.OpEq, Value: false},
		{Field: "is_adopted", Op: sharedDomain.OpEq, Value: false},
	}, spec.Criteria.ToConditions())
	assert.Equal(t, []string{"Shelter", "Species", "Breed", "Breed.Species", "Tags"}, includes(spec))
	require.NotNil(t, spec.OrderKey)
	assert.Equal(t, "created_at", spec.OrderKey.Field)
	assert.True(t, spec.Descending)
	assert.False(t, spec.PagingEnabled)

	assert.True(t, spec.Criteria.IsSatisfiedBy(&Pet{Name: "Rex"}))
	assert.False(t, spec.Criteria.IsSatisfiedBy(&Pet{Name: "Rex", IsDeleted: true}))
	assert.False(t, spec.Criteria.IsSatisfiedBy(&Pet{Name: "Rex", IsAdopted: true}))
}

func TestPetSpecification_ExplicitFlagsOverrideDefaults(t *testing.T) {
	spec := PetSpecification(PetFilter{IsDeleted: ptr(true), IsAdopted: ptr(true)})

	assert.True(t, spec.Criteria.IsSatisfiedBy(&Pet{IsDeleted: true, IsAdopted: true}))
	assert.False(t, spec.Criteria.IsSatisfiedBy(&Pet{}))
}

func TestPetSpecification_FieldsInClauseOrder(t *testing.T) {
	spec := PetSpecification(PetFilter{
		Name:              ptr("re"),
		City:              ptr("mad"),
		MinAgeMonths:      ptr(2),
		CompatibilityTags: []string{"children"},
	})

	assert.Equal(t, []string{
		"is_deleted", "is_adopted", "name",
		"shelter_id", "Shelter.city",
		"age_months", "Tags.name",
	}, fields(spec))
	assert.ElementsMatch(t, []string{"Shelter", "Tags"}, spec.Criteria.Relations())
}

func TestPetSpecification_CityGuardDoesNotPanicWithoutShelter(t *testing.T) {
	spec := PetSpecification(PetFilter{City: ptr("Madrid")})

	assert.NotPanics(t, func() {
		assert.False(t, spec.Criteria.IsSatisfiedBy(&Pet{Name: "Stray"}))
	})
	assert.True(t, spec.Criteria.IsSatisfiedBy(&Pet{Shelter: &Shelter{City: ptr("madrid centro")}}))
}

func TestPetSpecification_SortAndPaging(t *testing.T) {
	tests := []struct {
		name       string
		req        sharedQuery.PageRequest
		wantField  string
		wantDesc   bool
		wantSkip   int
		wantTake   int
		wantPaging bool
	}{
		{"sort case-insensitive", sharedQuery.PageRequest{SortBy: "AGE"}, "age_months", false, 0, 0, false},
		{"sort descending", sharedQuery.PageRequest{SortBy: "name", SortDescending: true}, "name", true, 0, 0, false},
		{"unknown sort keeps default", sharedQuery.PageRequest{SortBy: "weight"}, "created_at", true, 0, 0, false},
		{"page 2 size 3", sharedQuery.PageRequest{PageNumber: 2, PageSize: 3}, "created_at", true, 3, 3, true},
		{"page 0 clamps to 1", sharedQuery.PageRequest{PageNumber: 0, PageSize: 5}, "created_at", true, 0, 5, true},
		{"size 0 disables paging", sharedQuery.PageRequest{PageNumber: 4, PageSize: 0}, "created_at", true, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := PetSpecification(PetFilter{PageRequest: tt.req})
			require.NotNil(t, spec.OrderKey)
			assert.Equal(t, tt.wantField, spec.OrderKey.Field)
			assert.Equal(t, tt.wantDesc, spec.Descending)
			assert.Equal(t, tt.wantSkip, spec.Skip)
			assert.Equal(t, tt.wantTake, spec.Take)
			assert.Equal(t, tt.wantPaging, spec.PagingEnabled)
		})
	}
}

func TestFavoriteSpecification_HidesMissingOrDeletedPets(t *testing.T) {
	user := uuid.New()
	spec := FavoriteSpecification(FavoriteFilter{UserID: &user})

	assert.Equal(t, []string{"Pet", "Pet.Shelter"}, includes(spec))
	assert.NotPanics(t, func() {
		assert.False(t, spec.Criteria.IsSatisfiedBy(&Favorite{UserID: user}))
	})
	assert.False(t, spec.Criteria.IsSatisfiedBy(&Favorite{UserID: user, Pet: &Pet{IsDeleted: true}}))
	assert.False(t, spec.Criteria.IsSatisfiedBy(&Favorite{UserID: uuid.New(), Pet: &Pet{}}))
	assert.True(t, spec.Criteria.IsSatisfiedBy(&Favorite{UserID: user, Pet: &Pet{}}))
}

func TestAdoptionSpecifications(t *testing.T) {
	pet := uuid.New()

	t.Run("closed applications excluded by default", func(t *testing.T) {
		spec := AdoptionApplicationSpecification(AdoptionApplicationFilter{})
		assert.False(t, spec.Criteria.IsSatisfiedBy(&AdoptionApplication{IsClosed: true}))
		assert.True(t, spec.Criteria.IsSatisfiedBy(&AdoptionApplication{}))
	})

	t.Run("for pet always filters by pet", func(t *testing.T) {
		spec := ApplicationsForPetSpecification(pet, AdoptionApplicationFilter{})
		assert.Contains(t, fields(spec), "pet_id")
		assert.Equal(t, []string{"User"}, includes(spec))
		assert.True(t, spec.Criteria.IsSatisfiedBy(&AdoptionApplication{PetID: pet}))
		assert.False(t, spec.Criteria.IsSatisfiedBy(&AdoptionApplication{PetID: uuid.New()}))
	})
}

func TestPostSpecification_TagsAnyMatch(t *testing.T) {
	news, tips := uuid.New(), uuid.New()
	spec := PostSpecification(PostFilter{TagIDs: []uuid.UUID{news, tips}})

	assert.Equal(t, []string{"Author", "Shelter", "Tags", "Tags.Tag"}, includes(spec))
	assert.Contains(t, fields(spec), "Tags.tag_id")
	assert.True(t, spec.Criteria.IsSatisfiedBy(&Post{Tags: []PostTag{{TagID: uuid.New()}, {TagID: tips}}}))
	assert.False(t, spec.Criteria.IsSatisfiedBy(&Post{Tags: []PostTag{{TagID: uuid.New()}}}))
	assert.False(t, spec.Criteria.IsSatisfiedBy(&Post{}))
}

func TestReferenceSpecifications_DefaultSorts(t *testing.T) {
	tests := []struct {
		name  string
		field string
		desc  bool
		got   func() (string, bool)
	}{
		{"shelter", "name", false, func() (string, bool) {
			s := ShelterSpecification(ShelterFilter{})
			return s.OrderKey.Field, s.Descending
		}},
		{"shelter application", "created_at", true, func() (string, bool) {
			s := ShelterApplicationSpecification(ShelterApplicationFilter{})
			return s.OrderKey.Field, s.Descending
		}},
		{"tag", "name", false, func() (string, bool) {
			s := TagSpecification(TagFilter{})
			return s.OrderKey.Field, s.Descending
		}},
		{"breed", "name", false, func() (string, bool) {
			s := BreedSpecification(BreedFilter{})
			return s.OrderKey.Field, s.Descending
		}},
		{"species", "name", false, func() (string, bool) {
			s := SpeciesSpecification(SpeciesFilter{})
			return s.OrderKey.Field, s.Descending
		}},
		{"attribute", "kind", false, func() (string, bool) {
			s := AttributeSpecification(AttributeFilter{})
			return s.OrderKey.Field, s.Descending
		}},
		{"user", "created_at", true, func() (string, bool) {
			s := UserSpecification(UserFilter{})
			return s.OrderKey.Field, s.Descending
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, desc := tt.got()
			assert.Equal(t, tt.field, field)
			assert.Equal(t, tt.desc, desc)
		})
	}
}

func TestShelterSpecification_CityFallsBackToEmpty(t *testing.T) {
	spec := ShelterSpecification(ShelterFilter{City: ptr("")})

	assert.True(t, spec.Criteria.IsSatisfiedBy(&Shelter{Name: "Sin ciudad"}))
	assert.False(t, ShelterSpecification(ShelterFilter{City: ptr("sev")}).Criteria.IsSatisfiedBy(&Shelter{}))
}
