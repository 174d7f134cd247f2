package domain

import (
	"time"

	"github.com/google/uuid"
)

// Estados de una solicitud de adopción.
const (
	AdoptionPending  = "pending"
	AdoptionApproved = "approved"
	AdoptionRejected = "rejected"
)

// AdoptionApplication es la solicitud de un usuario para adoptar una mascota.
type AdoptionApplication struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PetID     uuid.UUID `gorm:"type:uuid;not null;index" json:"petId"`
	Pet       *Pet      `json:"pet,omitempty"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	User      *User     `json:"user,omitempty"`
	Status    string    `gorm:"type:text;not null;default:pending" json:"status"`
	Message   *string   `gorm:"type:text" json:"message,omitempty"`
	IsClosed  bool      `gorm:"not null;default:false" json:"isClosed"`
	CreatedAt time.Time `json:"createdAt"`
}

// Favorite es una mascota marcada como favorita por un usuario.
type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	PetID     uuid.UUID `gorm:"type:uuid;not null;index" json:"petId"`
	Pet       *Pet      `json:"pet,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
