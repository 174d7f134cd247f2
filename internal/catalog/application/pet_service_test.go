package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	catalogDomain "github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/domain"
	sharedEvents "github.com/kast7n/PurrfectMatchPublic-sub003/shared/events"
	"github.com/kast7n/PurrfectMatchPublic-sub003/tests/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreatePet_Success(t *testing.T) {
	// Arrange
	repo := mocks.NewInMemoryPetRepo()
	service := NewPetService(repo, mocks.NewDummyCache(), 60, zap.NewNop())

	// Act
	pet, err := service.CreatePet(context.Background(), NewPet{
		Name: "  Rex ",
		Size: catalogDomain.SizeLarge,
		Tags: []string{"children", " ", "cats"},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Rex", pet.Name)
	assert.Len(t, pet.Tags, 2)
	assert.Equal(t, []string{catalogDomain.PetCreated}, repo.EventTypes())
	assert.Equal(t, pet.ID.String(), repo.Outbox[0].AggregateID)

	snapshot, ok := repo.Outbox[0].Payload.(sharedEvents.PetSnapshot)
	require.True(t, ok)
	assert.Equal(t, "Rex", snapshot.Name)
}

func TestCreatePet_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   NewPet
	}{
		{"empty name", NewPet{Name: "   "}},
		{"negative age", NewPet{Name: "Rex", AgeMonths: -1}},
		{"unknown size", NewPet{Name: "Rex", Size: "Huge"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewInMemoryPetRepo()
			service := NewPetService(repo, nil, 60, zap.NewNop())

			_, err := service.CreatePet(context.Background(), tt.in)

			assert.ErrorIs(t, err, catalogDomain.ErrInvalidPet)
			assert.Empty(t, repo.Outbox)
		})
	}
}

func TestCreatePet_RepoFailure(t *testing.T) {
	repo := mocks.NewInMemoryPetRepo()
	repo.FailWrite = errors.New("disk full")
	service := NewPetService(repo, nil, 60, zap.NewNop())

	_, err := service.CreatePet(context.Background(), NewPet{Name: "Rex"})

	assert.EqualError(t, err, "disk full")
}

func TestAdoptPet(t *testing.T) {
	pet := &catalogDomain.Pet{ID: uuid.New(), Name: "Mitzi", CreatedAt: time.Now()}
	repo := mocks.NewInMemoryPetRepo(pet)
	service := NewPetService(repo, nil, 60, zap.NewNop())

	adopted, err := service.AdoptPet(context.Background(), pet.ID)
	require.NoError(t, err)
	assert.True(t, adopted.IsAdopted)

	stored, err := repo.GetByID(context.Background(), pet.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAdopted)
	assert.Equal(t, []string{catalogDomain.PetAdopted}, repo.EventTypes())

	// Una segunda adopción se rechaza sin generar evento.
	_, err = service.AdoptPet(context.Background(), pet.ID)
	assert.ErrorIs(t, err, catalogDomain.ErrPetAlreadyAdopted)
	assert.Len(t, repo.Outbox, 1)
}

func TestDeletePet_SoftDeletesAndHidesFromListing(t *testing.T) {
	pet := &catalogDomain.Pet{ID: uuid.New(), Name: "Rex", CreatedAt: time.Now()}
	repo := mocks.NewInMemoryPetRepo(pet)
	service := NewPetService(repo, nil, 60, zap.NewNop())
	catalog := NewCatalogService(catalogDomain.Repositories{Pets: repo.Store}, nil, 60, zap.NewNop())

	require.NoError(t, service.DeletePet(context.Background(), pet.ID))

	stored, err := repo.GetByID(context.Background(), pet.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsDeleted)
	assert.Equal(t, []string{catalogDomain.PetDeleted}, repo.EventTypes())
	assert.Equal(t, sharedEvents.AggregateRef{ID: pet.ID.String()}, repo.Outbox[0].Payload)

	page, err := catalog.ListPets(context.Background(), catalogDomain.PetFilter{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	// Borrar dos veces es un not-found.
	assert.ErrorIs(t, service.DeletePet(context.Background(), pet.ID), catalogDomain.ErrPetNotFound)
}

func TestDeletePet_InvalidatesCachedLists(t *testing.T) {
	pet := &catalogDomain.Pet{ID: uuid.New(), Name: "Rex", CreatedAt: time.Now()}
	repo := mocks.NewInMemoryPetRepo(pet)
	cache := mocks.NewDummyCache()
	service := NewPetService(repo, cache, 60, zap.NewNop())

	listKey := catalogDomain.ListCacheKey(EntityPet, catalogDomain.PetFilter{})
	otherKey := catalogDomain.ListCacheKey(EntityShelter, catalogDomain.ShelterFilter{})
	require.NoError(t, cache.Set(context.Background(), listKey, "page", 60))
	require.NoError(t, cache.Set(context.Background(), otherKey, "page", 60))

	require.NoError(t, service.DeletePet(context.Background(), pet.ID))

	assert.Eventually(t, func() bool {
		var v string
		hit, _ := cache.Get(context.Background(), listKey, &v)
		return !hit
	}, time.Second, 10*time.Millisecond)

	var v string
	hit, _ := cache.Get(context.Background(), otherKey, &v)
	assert.True(t, hit)
}

func TestGetPet_NotFoundIsNotRetried(t *testing.T) {
	repo := mocks.NewInMemoryPetRepo()
	service := NewPetService(repo, nil, 60, zap.NewNop())

	start := time.Now()
	_, err := service.GetPet(context.Background(), uuid.New())

	assert.ErrorIs(t, err, catalogDomain.ErrPetNotFound)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestGetPet_FromRepoThenCache(t *testing.T) {
	pet := &catalogDomain.Pet{ID: uuid.New(), Name: "Rex", CreatedAt: time.Now().UTC()}
	repo := mocks.NewInMemoryPetRepo(pet)
	cache := mocks.NewDummyCache()
	service := NewPetService(repo, cache, 60, zap.NewNop())

	got, err := service.GetPet(context.Background(), pet.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rex", got.Name)

	assert.Eventually(t, func() bool {
		var p catalogDomain.Pet
		hit, _ := cache.Get(context.Background(), catalogDomain.PetCacheKeyByID(pet.ID), &p)
		return hit
	}, time.Second, 10*time.Millisecond)
}
