package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	catalogDomain "github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/domain"
	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
	sharedEvents "github.com/kast7n/PurrfectMatchPublic-sub003/shared/events"
	sharedCache "github.com/kast7n/PurrfectMatchPublic-sub003/shared/platform/cache"
	sharedUtils "github.com/kast7n/PurrfectMatchPublic-sub003/shared/utils"
	"go.uber.org/zap"
)

// NewPet son los datos de alta de una mascota.
type NewPet struct {
	Name        string     `json:"name"`
	Size        string     `json:"size"`
	Gender      string     `json:"gender"`
	AgeMonths   int        `json:"ageMonths"`
	Description *string    `json:"description,omitempty"`
	SpeciesID   *uuid.UUID `json:"speciesId,omitempty"`
	BreedID     *uuid.UUID `json:"breedId,omitempty"`
	ShelterID   *uuid.UUID `json:"shelterId,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// PetService agrupa los casos de uso de escritura de mascotas.
type PetService struct {
	repo     catalogDomain.PetRepository
	cache    sharedCache.Cache
	cacheTTL int
	log      *zap.Logger
}

func NewPetService(repo catalogDomain.PetRepository, cache sharedCache.Cache, cacheTTLSecs int, log *zap.Logger) *PetService {
	return &PetService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTLSecs,
		log:      log,
	}
}

// CreatePet valida y da de alta la mascota junto con su evento de outbox.
func (s *PetService) CreatePet(ctx context.Context, in NewPet) (*catalogDomain.Pet, error) {
	if err := validateNewPet(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	pet := &catalogDomain.Pet{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(in.Name),
		Size:        in.Size,
		Gender:      in.Gender,
		AgeMonths:   in.AgeMonths,
		Description: in.Description,
		SpeciesID:   in.SpeciesID,
		BreedID:     in.BreedID,
		ShelterID:   in.ShelterID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, name := range in.Tags {
		if name = strings.TrimSpace(name); name != "" {
			pet.Tags = append(pet.Tags, catalogDomain.PetTag{ID: uuid.New(), PetID: pet.ID, Name: name})
		}
	}

	if err := s.repo.Create(ctx, pet, petEvent(catalogDomain.PetCreated, pet)); err != nil {
		s.log.Error("Failed to create pet", zap.Error(err))
		return nil, err
	}

	sharedCache.AsyncCacheSet(ctx, s.cache, catalogDomain.PetCacheKeyByID(pet.ID), pet, s.cacheTTL, s.log)
	s.invalidateLists(ctx)
	return pet, nil
}

// AdoptPet marca la mascota como adoptada. Deja de aparecer en los listados por defecto.
func (s *PetService) AdoptPet(ctx context.Context, id uuid.UUID) (*catalogDomain.Pet, error) {
	pet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pet.Adopt(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, pet, petEvent(catalogDomain.PetAdopted, pet)); err != nil {
		s.log.Error("Failed to adopt pet", zap.String("pet_id", id.String()), zap.Error(err))
		return nil, err
	}

	sharedCache.AsyncCacheSet(ctx, s.cache, catalogDomain.PetCacheKeyByID(pet.ID), pet, s.cacheTTL, s.log)
	s.invalidateLists(ctx)
	return pet, nil
}

// DeletePet hace un borrado lógico: la fila queda, los listados la excluyen.
func (s *PetService) DeletePet(ctx context.Context, id uuid.UUID) error {
	pet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if pet.IsDeleted {
		return catalogDomain.ErrPetNotFound
	}
	pet.SoftDelete()

	evt := sharedDomain.NewOutboxEvent(catalogDomain.PetTopic, id.String(), catalogDomain.PetDeleted, sharedEvents.AggregateRef{ID: id.String()})
	if err := s.repo.Update(ctx, pet, evt); err != nil {
		s.log.Error("Failed to delete pet", zap.String("pet_id", id.String()), zap.Error(err))
		return err
	}

	sharedCache.AsyncCacheDelete(ctx, s.cache, catalogDomain.PetCacheKeyByID(id), s.log)
	s.invalidateLists(ctx)
	return nil
}

// GetPet obtiene una mascota con cache-aside y reintentos. Un not-found no se reintenta.
func (s *PetService) GetPet(ctx context.Context, id uuid.UUID) (*catalogDomain.Pet, error) {
	if s.cache != nil {
		var p catalogDomain.Pet
		if hit, _ := s.cache.Get(ctx, catalogDomain.PetCacheKeyByID(id), &p); hit {
			return &p, nil
		}
	}

	var pet *catalogDomain.Pet
	err := sharedUtils.Retry(ctx, 3, 100*time.Millisecond, func() error {
		var errRetry error
		pet, errRetry = s.repo.GetByID(ctx, id)
		return errRetry
	}, func(err error) bool {
		return errors.Is(err, catalogDomain.ErrPetNotFound)
	})

	if err != nil {
		if errors.Is(err, catalogDomain.ErrPetNotFound) {
			s.log.Warn("Pet not found", zap.String("pet_id", id.String()))
		} else {
			s.log.Error("Failed to fetch pet", zap.String("pet_id", id.String()), zap.Error(err))
		}
		return nil, err
	}

	sharedCache.AsyncCacheSet(ctx, s.cache, catalogDomain.PetCacheKeyByID(pet.ID), pet, s.cacheTTL, s.log)
	return pet, nil
}

// invalidateLists descarta los listados que pueden contener la mascota.
func (s *PetService) invalidateLists(ctx context.Context) {
	for _, entity := range []string{EntityPet, EntityFavorite, EntityAdoptionApplication} {
		sharedCache.AsyncCacheDeletePrefix(ctx, s.cache, catalogDomain.ListCachePrefix(entity), s.log)
	}
}

func petEvent(eventType string, pet *catalogDomain.Pet) sharedDomain.OutboxEvent {
	return sharedDomain.NewOutboxEvent(catalogDomain.PetTopic, pet.ID.String(), eventType, pet.Snapshot())
}

func validateNewPet(in NewPet) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", catalogDomain.ErrInvalidPet)
	}
	if in.AgeMonths < 0 {
		return fmt.Errorf("%w: age must not be negative", catalogDomain.ErrInvalidPet)
	}
	switch in.Size {
	case "", catalogDomain.SizeSmall, catalogDomain.SizeMedium, catalogDomain.SizeLarge:
	default:
		return fmt.Errorf("%w: unknown size %q", catalogDomain.ErrInvalidPet, in.Size)
	}
	return nil
}
