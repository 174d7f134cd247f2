package events

import (
	"time"

	"github.com/google/uuid"
)

// PetSnapshot es el payload de los eventos pet.created y pet.adopted.
type PetSnapshot struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	ShelterID *uuid.UUID `json:"shelterId,omitempty"`
	IsAdopted bool       `json:"isAdopted"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
