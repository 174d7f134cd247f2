package gormrepo

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testShelter struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	City *string
}

func (testShelter) TableName() string { return "shelters" }

type testTag struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	PetID uuid.UUID `gorm:"type:uuid"`
	Name  string
}

func (testTag) TableName() string { return "pet_tags" }

type testPet struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int
	Name      string
	IsDeleted bool
	ShelterID *uuid.UUID `gorm:"type:uuid"`
	Shelter   *testShelter
	Tags      []testTag `gorm:"foreignKey:PetID"`
}

func (testPet) TableName() string { return "pets" }

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open("sqlite", ":memory:", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&testShelter{}, &testPet{}, &testTag{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func strPtr(s string) *string { return &s }

func seedPets(t *testing.T, db *gorm.DB, n int) []testPet {
	t.Helper()
	pets := make([]testPet, 0, n)
	for i := 1; i <= n; i++ {
		pets = append(pets, testPet{ID: uuid.New(), Seq: i, Name: fmt.Sprintf("pet-%02d", i)})
	}
	require.NoError(t, db.Create(&pets).Error)
	return pets
}

func seqs(pets []*testPet) []int {
	out := make([]int, 0, len(pets))
	for _, p := range pets {
		out = append(out, p.Seq)
	}
	return out
}

var bySeq = sharedDomain.By("seq", func(p *testPet) int { return p.Seq })

func notDeleted() sharedDomain.Predicate[testPet] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "is_deleted", Op: sharedDomain.OpEq, Value: false},
		func(p *testPet) bool { return !p.IsDeleted })
}

func TestRepository_PagingWindowAndCount(t *testing.T) {
	db := setupDB(t)
	seedPets(t, db, 10)
	repo := NewRepository[testPet](db)

	spec := sharedDomain.NewSpecification(notDeleted())
	spec.ApplyOrderBy(bySeq)
	spec.ApplyPaging(2, 3)

	got, err := repo.List(context.Background(), *spec)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5, 6}, seqs(got))

	total, err := repo.Count(context.Background(), *spec)
	require.NoError(t, err)
	assert.Equal(t, int64(10), total)

	spec.ApplyPaging(5, 3)
	got, err = repo.List(context.Background(), *spec)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRepository_DescendingOrder(t *testing.T) {
	db := setupDB(t)
	seedPets(t, db, 4)
	repo := NewRepository[testPet](db)

	spec := sharedDomain.NewSpecification(sharedDomain.True[testPet]())
	spec.ApplyOrderByDescending(bySeq)

	got, err := repo.List(context.Background(), *spec)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 2, 1}, seqs(got))
}

func TestRepository_TextOrderIgnoresCase(t *testing.T) {
	db := setupDB(t)
	pets := []testPet{
		{ID: uuid.New(), Seq: 1, Name: "Zeus"},
		{ID: uuid.New(), Seq: 2, Name: "apollo"},
		{ID: uuid.New(), Seq: 3, Name: "Bella"},
	}
	require.NoError(t, db.Create(&pets).Error)
	repo := NewRepository[testPet](db)

	byName := sharedDomain.ByText("name", func(p *testPet) string { return p.Name })
	spec := sharedDomain.NewSpecification(sharedDomain.True[testPet]())

	spec.ApplyOrderBy(byName)
	got, err := repo.List(context.Background(), *spec)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1}, seqs(got))

	spec.ApplyOrderByDescending(byName)
	got, err = repo.List(context.Background(), *spec)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 2}, seqs(got))
}

func TestRepository_HugePageNumberIsEmpty(t *testing.T) {
	db := setupDB(t)
	seedPets(t, db, 6)
	repo := NewRepository[testPet](db)

	spec := sharedDomain.NewSpecification(sharedDomain.True[testPet]())
	spec.ApplyOrderBy(bySeq)
	spec.ApplyPaging(math.MaxInt/2, 4)

	got, err := repo.List(context.Background(), *spec)
	require.NoError(t, err)
	assert.Empty(t, got)

	total, err := repo.Count(context.Background(), *spec)
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
}

func TestRepository_CancelledContext(t *testing.T) {
	db := setupDB(t)
	seedPets(t, db, 3)
	repo := NewRepository[testPet](db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	spec := sharedDomain.NewSpecification(notDeleted())

	_, err := repo.List(ctx, *spec)
	assert.ErrorIs(t, err, sharedDomain.ErrQueryFailed)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = repo.Count(ctx, *spec)
	assert.ErrorIs(t, err, sharedDomain.ErrQueryFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRepository_BelongsToRelationUsesExists(t *testing.T) {
	db := setupDB(t)
	springfield := testShelter{ID: uuid.New(), City: strPtr("Springfield")}
	shelby := testShelter{ID: uuid.New(), City: strPtr("Shelbyville")}
	noCity := testShelter{ID: uuid.New()}
	shelters := []testShelter{springfield, shelby, noCity}
	require.NoError(t, db.Create(&shelters).Error)
	pets := []testPet{
		{ID: uuid.New(), Seq: 1, Name: "Rex", ShelterID: &springfield.ID},
		{ID: uuid.New(), Seq: 2, Name: "Mitzi", ShelterID: &shelby.ID},
		{ID: uuid.New(), Seq: 3, Name: "Stray"},
		{ID: uuid.New(), Seq: 4, Name: "Ghost", ShelterID: &noCity.ID},
	}
	require.NoError(t, db.Create(&pets).Error)
	repo := NewRepository[testPet](db)

	city := sharedDomain.Where(sharedDomain.Criterion{Field: "Shelter.city", Op: sharedDomain.OpILike, Value: "FIELD"},
		func(p *testPet) bool { return p.Shelter != nil && sharedDomain.Contains(sharedDomain.Text(p.Shelter.City), "FIELD") })
	spec := sharedDomain.NewSpecification(notDeleted().And(city))
	spec.AddInclude("Shelter")

	got, err := repo.List(context.Background(), *spec)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Rex", got[0].Name)
	require.NotNil(t, got[0].Shelter, "el include precarga la relación")
	assert.Equal(t, "Springfield", *got[0].Shelter.City)

	total, err := repo.Count(context.Background(), *spec)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestRepository_HasManyRelationMatchesAny(t *testing.T) {
	db := setupDB(t)
	pets := seedPets(t, db, 3)
	tags := []testTag{
		{ID: uuid.New(), PetID: pets[0].ID, Name: "children"},
		{ID: uuid.New(), PetID: pets[0].ID, Name: "cats"},
		{ID: uuid.New(), PetID: pets[1].ID, Name: "dogs"},
	}
	require.NoError(t, db.Create(&tags).Error)
	repo := NewRepository[testPet](db)

	anyTag := sharedDomain.Where[testPet](sharedDomain.Criterion{Field: "Tags.name", Op: sharedDomain.OpIn, Value: []string{"cats", "dogs"}}, nil)
	spec := sharedDomain.NewSpecification(anyTag)
	spec.ApplyOrderBy(bySeq)
	spec.AddInclude("Tags")

	got, err := repo.List(context.Background(), *spec)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, seqs(got), "una mascota con dos etiquetas aparece una sola vez")
	assert.Len(t, got[0].Tags, 2)

	total, err := repo.Count(context.Background(), *spec)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestRepository_ContainsEscapesWildcards(t *testing.T) {
	db := setupDB(t)
	pets := []testPet{
		{ID: uuid.New(), Seq: 1, Name: "100% dog"},
		{ID: uuid.New(), Seq: 2, Name: "100 dogs"},
		{ID: uuid.New(), Seq: 3, Name: "snake_case"},
		{ID: uuid.New(), Seq: 4, Name: "snakeXcase"},
	}
	require.NoError(t, db.Create(&pets).Error)
	repo := NewRepository[testPet](db)

	for needle, want := range map[string][]int{"0%": {1}, "E_C": {3}, "DOG": {1, 2}} {
		pred := sharedDomain.Where[testPet](sharedDomain.Criterion{Field: "name", Op: sharedDomain.OpILike, Value: needle}, nil)
		spec := sharedDomain.NewSpecification(pred)
		spec.ApplyOrderBy(bySeq)

		got, err := repo.List(context.Background(), *spec)
		require.NoError(t, err)
		assert.Equal(t, want, seqs(got), needle)
	}
}

func TestRepository_Errors(t *testing.T) {
	db := setupDB(t)
	repo := NewRepository[testPet](db)

	opaque := sharedDomain.NewSpecification(sharedDomain.Func(func(*testPet) bool { return true }))
	_, err := repo.List(context.Background(), *opaque)
	assert.ErrorIs(t, err, sharedDomain.ErrQueryFailed)
	assert.ErrorIs(t, err, ErrUntranslatable)

	unknown := sharedDomain.NewSpecification(sharedDomain.Where[testPet](sharedDomain.Criterion{Field: "Owner.name", Op: sharedDomain.OpEq, Value: "x"}, nil))
	_, err = repo.Count(context.Background(), *unknown)
	assert.ErrorIs(t, err, sharedDomain.ErrQueryFailed)
	assert.ErrorIs(t, err, ErrUnknownRelation)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)
	_, err = repo.List(ctx, sharedDomain.Specification[testPet]{})
	assert.ErrorIs(t, err, sharedDomain.ErrQueryFailed)
}

func TestOutboxRepo_FetchAndMark(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.AutoMigrate(&OutboxRecord{}))
	repo := NewOutboxRepo(db)

	first := sharedDomain.OutboxEvent{ID: uuid.New(), AggregateType: "pet", AggregateID: "a", EventType: "pet.created",
		Payload: map[string]string{"name": "Rex"}, CreatedAt: time.Now().UTC().Add(-time.Minute)}
	second := sharedDomain.OutboxEvent{ID: uuid.New(), AggregateType: "pet", AggregateID: "b", EventType: "pet.adopted",
		Payload: map[string]string{"name": "Mitzi"}, CreatedAt: time.Now().UTC()}
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		if err := InsertOutboxTx(tx, second); err != nil {
			return err
		}
		return InsertOutboxTx(tx, first)
	}))

	pending, err := repo.FetchPendingOutbox(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.ID, pending[0].ID)
	assert.Equal(t, "Rex", pending[0].Payload.(map[string]interface{})["name"])

	require.NoError(t, repo.MarkOutboxProcessed(context.Background(), first.ID))
	pending, err = repo.FetchPendingOutbox(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)

	assert.Error(t, repo.MarkOutboxProcessed(context.Background(), uuid.New()))
}
