package domain

import (
	"time"

	"github.com/google/uuid"
)

// Shelter es un refugio que publica mascotas y posts.
type Shelter struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"type:text;not null" json:"name"`
	City      *string    `gorm:"type:text" json:"city,omitempty"`
	Address   *string    `gorm:"type:text" json:"address,omitempty"`
	Phone     *string    `gorm:"type:text" json:"phone,omitempty"`
	Email     *string    `gorm:"type:text" json:"email,omitempty"`
	ManagerID *uuid.UUID `gorm:"type:uuid;index" json:"managerId,omitempty"`
	IsDeleted bool       `gorm:"not null;default:false" json:"isDeleted"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Estados de una solicitud de alta de refugio.
const (
	ShelterApplicationPending  = "pending"
	ShelterApplicationApproved = "approved"
	ShelterApplicationRejected = "rejected"
)

// ShelterApplication es la solicitud de un usuario para dar de alta un refugio.
type ShelterApplication struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`
	User        *User      `json:"user,omitempty"`
	ShelterName string     `gorm:"type:text;not null" json:"shelterName"`
	City        *string    `gorm:"type:text" json:"city,omitempty"`
	Address     *string    `gorm:"type:text" json:"address,omitempty"`
	Status      string     `gorm:"type:text;not null;default:pending" json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
}
