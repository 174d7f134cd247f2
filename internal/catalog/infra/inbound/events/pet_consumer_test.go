package events

import (
	"context"
	"encoding/json"
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

func encode(t *testing.T, eventType string, data interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	payload, err := json.Marshal(sharedEvents.IntegrationEvent{Type: eventType, Timestamp: time.Now(), Data: raw})
	require.NoError(t, err)
	return payload
}

func seededCache(t *testing.T, petID uuid.UUID) *mocks.DummyCache {
	t.Helper()
	ctx := context.Background()
	cache := mocks.NewDummyCache()
	require.NoError(t, cache.Set(ctx, catalogDomain.PetCacheKeyByID(petID), "pet", 60))
	require.NoError(t, cache.Set(ctx, catalogDomain.ListCacheKey("pet", catalogDomain.PetFilter{}), "page", 60))
	require.NoError(t, cache.Set(ctx, catalogDomain.ListCacheKey("favorite", catalogDomain.FavoriteFilter{}), "page", 60))
	require.NoError(t, cache.Set(ctx, catalogDomain.ListCacheKey("shelter", catalogDomain.ShelterFilter{}), "page", 60))
	return cache
}

func TestPetConsumer_InvalidatesOnAdopted(t *testing.T) {
	petID := uuid.New()
	cache := seededCache(t, petID)
	consumer := NewPetConsumer(cache, zap.NewNop())

	consumer.HandleMessage(context.Background(), petID.String(),
		encode(t, catalogDomain.PetAdopted, sharedEvents.PetSnapshot{ID: petID, Name: "Rex", IsAdopted: true}))

	assert.Equal(t, []string{catalogDomain.ListCacheKey("shelter", catalogDomain.ShelterFilter{})}, cache.Keys())
}

func TestPetConsumer_InvalidatesOnDeleted(t *testing.T) {
	petID := uuid.New()
	cache := seededCache(t, petID)
	consumer := NewPetConsumer(cache, zap.NewNop())

	consumer.HandleMessage(context.Background(), petID.String(),
		encode(t, catalogDomain.PetDeleted, sharedEvents.AggregateRef{ID: petID.String()}))

	assert.Len(t, cache.Keys(), 1)
}

func TestPetConsumer_IgnoresUnknownAndMalformed(t *testing.T) {
	petID := uuid.New()
	cache := seededCache(t, petID)
	consumer := NewPetConsumer(cache, zap.NewNop())

	consumer.HandleMessage(context.Background(), "", []byte("{not json"))
	consumer.HandleMessage(context.Background(), "", encode(t, "shelter.created", map[string]string{"id": "x"}))
	consumer.HandleMessage(context.Background(), "", encode(t, catalogDomain.PetDeleted, sharedEvents.AggregateRef{ID: "bad"}))

	assert.Len(t, cache.Keys(), 4)
}
