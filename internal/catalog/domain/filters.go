package domain

import (
	"github.com/google/uuid"
	sharedQuery "github.com/kast7n/PurrfectMatchPublic-sub003/shared/platform/query"
)

// Los filtros llegan de la capa HTTP. Un campo nil no filtra, salvo los flags
// de ciclo de vida (IsDeleted, IsAdopted, IsClosed), que por defecto excluyen.

type PetFilter struct {
	Name              *string    `json:"name,omitempty"`
	Size              *string    `json:"size,omitempty"`
	Gender            *string    `json:"gender,omitempty"`
	SpeciesID         *uuid.UUID `json:"speciesId,omitempty"`
	BreedID           *uuid.UUID `json:"breedId,omitempty"`
	ShelterID         *uuid.UUID `json:"shelterId,omitempty"`
	City              *string    `json:"city,omitempty"`
	MinAgeMonths      *int       `json:"minAgeMonths,omitempty"`
	MaxAgeMonths      *int       `json:"maxAgeMonths,omitempty"`
	CompatibilityTags []string   `json:"compatibilityTags,omitempty"`
	IsAdopted         *bool      `json:"isAdopted,omitempty"`
	IsDeleted         *bool      `json:"isDeleted,omitempty"`
	sharedQuery.PageRequest
}

type ShelterFilter struct {
	Name      *string    `json:"name,omitempty"`
	City      *string    `json:"city,omitempty"`
	ManagerID *uuid.UUID `json:"managerId,omitempty"`
	IsDeleted *bool      `json:"isDeleted,omitempty"`
	sharedQuery.PageRequest
}

type ShelterApplicationFilter struct {
	Status      *string    `json:"status,omitempty"`
	UserID      *uuid.UUID `json:"userId,omitempty"`
	ShelterName *string    `json:"shelterName,omitempty"`
	City        *string    `json:"city,omitempty"`
	sharedQuery.PageRequest
}

type AdoptionApplicationFilter struct {
	PetID     *uuid.UUID `json:"petId,omitempty"`
	UserID    *uuid.UUID `json:"userId,omitempty"`
	ShelterID *uuid.UUID `json:"shelterId,omitempty"`
	Status    *string    `json:"status,omitempty"`
	IsClosed  *bool      `json:"isClosed,omitempty"`
	sharedQuery.PageRequest
}

type PostFilter struct {
	Title     *string     `json:"title,omitempty"`
	Content   *string     `json:"content,omitempty"`
	AuthorID  *uuid.UUID  `json:"authorId,omitempty"`
	ShelterID *uuid.UUID  `json:"shelterId,omitempty"`
	TagIDs    []uuid.UUID `json:"tagIds,omitempty"`
	IsDeleted *bool       `json:"isDeleted,omitempty"`
	sharedQuery.PageRequest
}

type TagFilter struct {
	Name *string `json:"name,omitempty"`
	sharedQuery.PageRequest
}

type BreedFilter struct {
	Name      *string    `json:"name,omitempty"`
	SpeciesID *uuid.UUID `json:"speciesId,omitempty"`
	sharedQuery.PageRequest
}

type SpeciesFilter struct {
	Name *string `json:"name,omitempty"`
	sharedQuery.PageRequest
}

type AttributeFilter struct {
	Kind  *string `json:"kind,omitempty"`
	Value *string `json:"value,omitempty"`
	sharedQuery.PageRequest
}

type FavoriteFilter struct {
	UserID *uuid.UUID `json:"userId,omitempty"`
	sharedQuery.PageRequest
}

type UserFilter struct {
	Email     *string `json:"email,omitempty"`
	Name      *string `json:"name,omitempty"`
	Role      *string `json:"role,omitempty"`
	IsDeleted *bool   `json:"isDeleted,omitempty"`
	sharedQuery.PageRequest
}
