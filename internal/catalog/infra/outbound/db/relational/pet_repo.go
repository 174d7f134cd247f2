package relational

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	catalogDomain "github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/domain"
	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/shared/infra/db/gormrepo"
	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PetRepo implementa catalogDomain.PetRepository sobre gorm. Cada escritura
// guarda la mascota y su evento de outbox en la misma transacción.
type PetRepo struct {
	db *gorm.DB
}

func NewPetRepo(db *gorm.DB) *PetRepo {
	return &PetRepo{db: db}
}

// ------------------ CRUD + Outbox ------------------

// Create inserta la mascota, sus etiquetas y el evento.
func (r *PetRepo) Create(ctx context.Context, p *catalogDomain.Pet, evt sharedDomain.OutboxEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Shelter", "Species", "Breed").Create(p).Error; err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return gormrepo.InsertOutboxTx(tx, evt)
	})
}

// Update guarda los campos editables de la mascota y el evento.
func (r *PetRepo) Update(ctx context.Context, p *catalogDomain.Pet, evt sharedDomain.OutboxEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&catalogDomain.Pet{}).
			Where("id = ?", p.ID).
			Updates(map[string]interface{}{
				"name":        p.Name,
				"size":        p.Size,
				"gender":      p.Gender,
				"age_months":  p.AgeMonths,
				"description": p.Description,
				"species_id":  p.SpeciesID,
				"breed_id":    p.BreedID,
				"shelter_id":  p.ShelterID,
				"is_adopted":  p.IsAdopted,
				"is_deleted":  p.IsDeleted,
				"updated_at":  p.UpdatedAt,
			})
		if res.Error != nil {
			return fmt.Errorf("db error: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return catalogDomain.ErrPetNotFound
		}
		return gormrepo.InsertOutboxTx(tx, evt)
	})
}

// GetByID devuelve la mascota con sus etiquetas, aunque esté borrada o adoptada.
func (r *PetRepo) GetByID(ctx context.Context, id uuid.UUID) (*catalogDomain.Pet, error) {
	var p catalogDomain.Pet
	err := r.db.WithContext(ctx).Preload(clause.Associations).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalogDomain.ErrPetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &p, nil
}

// Verificación en tiempo de compilación.
var _ catalogDomain.PetRepository = (*PetRepo)(nil)
