package domain

import (
	"time"

	"github.com/google/uuid"
)

// Species es una especie (perro, gato, ...).
type Species struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"type:text;not null;uniqueIndex" json:"name"`
}

// Breed es una raza de una especie.
type Breed struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	SpeciesID uuid.UUID `gorm:"type:uuid;not null;index" json:"speciesId"`
	Species   *Species  `json:"species,omitempty"`
}

// Tipos de atributo de referencia.
const (
	AttributeSize          = "size"
	AttributeGender        = "gender"
	AttributeActivityLevel = "activity_level"
	AttributeCompatibility = "compatibility"
)

// Attribute es un valor de referencia de la ficha de una mascota.
type Attribute struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Kind  string    `gorm:"type:text;not null;index" json:"kind"`
	Value string    `gorm:"type:text;not null" json:"value"`
}

// Roles de usuario.
const (
	RoleAdopter        = "adopter"
	RoleShelterManager = "shelter_manager"
	RoleAdmin          = "admin"
)

// User es una cuenta de la aplicación. La identidad la gestiona otro servicio.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Role      string    `gorm:"type:text;not null;default:adopter" json:"role"`
	IsDeleted bool      `gorm:"not null;default:false" json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
}
