package domain

import (
	"time"

	"github.com/google/uuid"
	sharedEvents "github.com/kast7n/PurrfectMatchPublic-sub003/shared/events"
	sharedBus "github.com/kast7n/PurrfectMatchPublic-sub003/shared/platform/bus"
)

// Tamaños admitidos para una mascota.
const (
	SizeSmall  = "Small"
	SizeMedium = "Medium"
	SizeLarge  = "Large"
)

// Pet representa una mascota publicada en el catálogo.
type Pet struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"type:text;not null;index" json:"name"`
	Size        string     `gorm:"type:text" json:"size"`
	Gender      string     `gorm:"type:text" json:"gender"`
	AgeMonths   int        `json:"ageMonths"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	SpeciesID   *uuid.UUID `gorm:"type:uuid;index" json:"speciesId,omitempty"`
	Species     *Species   `json:"species,omitempty"`
	BreedID     *uuid.UUID `gorm:"type:uuid;index" json:"breedId,omitempty"`
	Breed       *Breed     `json:"breed,omitempty"`
	ShelterID   *uuid.UUID `gorm:"type:uuid;index" json:"shelterId,omitempty"`
	Shelter     *Shelter   `json:"shelter,omitempty"`
	Tags        []PetTag   `gorm:"foreignKey:PetID" json:"tags,omitempty"`
	IsAdopted   bool       `gorm:"not null;default:false" json:"isAdopted"`
	IsDeleted   bool       `gorm:"not null;default:false" json:"isDeleted"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// PetTag es una etiqueta de compatibilidad ("children", "cats", ...).
type PetTag struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PetID uuid.UUID `gorm:"type:uuid;not null;index" json:"petId"`
	Name  string    `gorm:"type:text;not null" json:"name"`
}

func (p *Pet) PartitionKey() string {
	return p.ID.String()
}

// Snapshot es el payload de los eventos de la mascota.
func (p *Pet) Snapshot() sharedEvents.PetSnapshot {
	return sharedEvents.PetSnapshot{
		ID:        p.ID,
		Name:      p.Name,
		ShelterID: p.ShelterID,
		IsAdopted: p.IsAdopted,
		UpdatedAt: p.UpdatedAt,
	}
}

// --- Métodos de dominio ---

// Adopt marca la mascota como adoptada.
func (p *Pet) Adopt() error {
	if p.IsDeleted {
		return ErrPetNotFound
	}
	if p.IsAdopted {
		return ErrPetAlreadyAdopted
	}
	p.IsAdopted = true
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// SoftDelete oculta la mascota de los listados sin borrarla.
func (p *Pet) SoftDelete() {
	p.IsDeleted = true
	p.UpdatedAt = time.Now().UTC()
}

// HasTag indica si la mascota tiene alguna de las etiquetas dadas.
func (p *Pet) HasTag(names map[string]bool) bool {
	for _, t := range p.Tags {
		if names[t.Name] {
			return true
		}
	}
	return false
}

// Verificación estática para asegurar que Pet implementa la interfaz
var _ sharedBus.Keyer = (*Pet)(nil)
