package relational

import (
	catalogDomain "github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/domain"
	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/shared/infra/db/audited"
	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/shared/infra/db/gormrepo"
	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
	"gorm.io/gorm"
)

// NewRepositories construye los repositorios de lectura del catálogo sobre gorm.
// Con recorder != nil cada List/Count queda registrado.
func NewRepositories(db *gorm.DB, recorder sharedDomain.QueryRecorder) catalogDomain.Repositories {
	return catalogDomain.Repositories{
		Pets:                 audited.Wrap[catalogDomain.Pet](gormrepo.NewRepository[catalogDomain.Pet](db), "pet", recorder),
		Shelters:             audited.Wrap[catalogDomain.Shelter](gormrepo.NewRepository[catalogDomain.Shelter](db), "shelter", recorder),
		ShelterApplications:  audited.Wrap[catalogDomain.ShelterApplication](gormrepo.NewRepository[catalogDomain.ShelterApplication](db), "shelter_application", recorder),
		AdoptionApplications: audited.Wrap[catalogDomain.AdoptionApplication](gormrepo.NewRepository[catalogDomain.AdoptionApplication](db), "adoption_application", recorder),
		Posts:                audited.Wrap[catalogDomain.Post](gormrepo.NewRepository[catalogDomain.Post](db), "post", recorder),
		Tags:                 audited.Wrap[catalogDomain.Tag](gormrepo.NewRepository[catalogDomain.Tag](db), "tag", recorder),
		Breeds:               audited.Wrap[catalogDomain.Breed](gormrepo.NewRepository[catalogDomain.Breed](db), "breed", recorder),
		Species:              audited.Wrap[catalogDomain.Species](gormrepo.NewRepository[catalogDomain.Species](db), "species", recorder),
		Attributes:           audited.Wrap[catalogDomain.Attribute](gormrepo.NewRepository[catalogDomain.Attribute](db), "attribute", recorder),
		Favorites:            audited.Wrap[catalogDomain.Favorite](gormrepo.NewRepository[catalogDomain.Favorite](db), "favorite", recorder),
		Users:                audited.Wrap[catalogDomain.User](gormrepo.NewRepository[catalogDomain.User](db), "user", recorder),
	}
}
