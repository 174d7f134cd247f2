package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
)

var (
	ErrPetNotFound       = errors.New("pet not found")
	ErrPetAlreadyAdopted = errors.New("pet already adopted")
	ErrInvalidPet        = errors.New("invalid pet")
)

// --- Repositorios de lectura (uno por entidad) ---

type Repositories struct {
	Pets                 sharedDomain.SpecRepository[Pet]
	Shelters             sharedDomain.SpecRepository[Shelter]
	ShelterApplications  sharedDomain.SpecRepository[ShelterApplication]
	AdoptionApplications sharedDomain.SpecRepository[AdoptionApplication]
	Posts                sharedDomain.SpecRepository[Post]
	Tags                 sharedDomain.SpecRepository[Tag]
	Breeds               sharedDomain.SpecRepository[Breed]
	Species              sharedDomain.SpecRepository[Species]
	Attributes           sharedDomain.SpecRepository[Attribute]
	Favorites            sharedDomain.SpecRepository[Favorite]
	Users                sharedDomain.SpecRepository[User]
}

// --- Escritura de mascotas (con outbox) ---
type PetRepository interface {
	Create(ctx context.Context, p *Pet, evt sharedDomain.OutboxEvent) error
	Update(ctx context.Context, p *Pet, evt sharedDomain.OutboxEvent) error
	GetByID(ctx context.Context, id uuid.UUID) (*Pet, error)
}

// ---------- Helpers comunes (cache keys, etc.) ----------

func PetCacheKeyByID(id uuid.UUID) string {
	return fmt.Sprintf("pet:id:%s", id.String())
}

// ListCacheKey construye la clave de caché de un listado a partir del filtro
// serializado. Dos filtros iguales producen la misma clave.
func ListCacheKey(entity string, filter interface{}) string {
	raw, err := json.Marshal(filter)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s:list:%s", entity, raw)
}

// ListCachePrefix es el prefijo común de los listados de una entidad.
func ListCachePrefix(entity string) string {
	return entity + ":list:"
}
