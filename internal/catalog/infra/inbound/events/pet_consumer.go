package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/application"
	catalogDomain "github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/domain"
	sharedEvents "github.com/kast7n/PurrfectMatchPublic-sub003/shared/events"
	sharedBus "github.com/kast7n/PurrfectMatchPublic-sub003/shared/platform/bus"
	sharedCache "github.com/kast7n/PurrfectMatchPublic-sub003/shared/platform/cache"
	sharedUtils "github.com/kast7n/PurrfectMatchPublic-sub003/shared/utils"
)

// listsForPet son los listados cacheados que pueden contener una mascota.
var listsForPet = []string{application.EntityPet, application.EntityFavorite, application.EntityAdoptionApplication}

// PetConsumer invalida la caché de esta instancia cuando otra publica un cambio de mascota.
type PetConsumer struct {
	cache sharedCache.Cache
	log   *zap.Logger
}

var _ sharedBus.MessageHandler = (*PetConsumer)(nil)

func NewPetConsumer(cache sharedCache.Cache, logger *zap.Logger) *PetConsumer {
	return &PetConsumer{
		cache: cache,
		log:   logger,
	}
}

// HandleMessage es el punto de entrada para un nuevo mensaje/evento.
func (c *PetConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var base sharedEvents.IntegrationEvent
	if err := json.Unmarshal(payload, &base); err != nil {
		c.log.Warn("Failed to unmarshal integration event for pet", zap.String("key", key), zap.Error(err))
		return
	}

	switch base.Type {
	case catalogDomain.PetCreated, catalogDomain.PetAdopted:
		sharedUtils.UnmarshalAndHandle(c.log, base.Type, base.Data, func(evt sharedEvents.PetSnapshot) {
			c.invalidate(ctx, evt.ID.String(), base.Type)
		})

	case catalogDomain.PetDeleted:
		sharedUtils.UnmarshalAndHandle(c.log, base.Type, base.Data, func(evt sharedEvents.AggregateRef) {
			c.invalidate(ctx, evt.ID, base.Type)
		})

	default:
		c.log.Warn("Unknown pet event type", zap.String("type", base.Type), zap.String("key", key))
	}
}

func (c *PetConsumer) invalidate(ctx context.Context, rawID, eventType string) {
	if c.cache == nil {
		return
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		c.log.Warn("Pet event with invalid id", zap.String("id", rawID), zap.String("type", eventType))
		return
	}

	ctxCache, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	if err := c.cache.Delete(ctxCache, catalogDomain.PetCacheKeyByID(id)); err != nil {
		c.log.Warn("Cache deletion failed", zap.String("pet_id", rawID), zap.Error(err))
	}
	for _, entity := range listsForPet {
		if err := c.cache.DeletePrefix(ctxCache, catalogDomain.ListCachePrefix(entity)); err != nil {
			c.log.Warn("Cache prefix deletion failed", zap.String("entity", entity), zap.Error(err))
		}
	}
	c.log.Info("Pet caches invalidated via event", zap.String("pet_id", rawID), zap.String("type", eventType))
}
