package relational

import (
	"context"

	catalogDomain "github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/domain"
	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/shared/infra/db/gormrepo"
	"gorm.io/gorm"
)

// Models son las tablas del catálogo, en orden de dependencia.
var Models = []interface{}{
	&catalogDomain.User{},
	&catalogDomain.Species{},
	&catalogDomain.Breed{},
	&catalogDomain.Shelter{},
	&catalogDomain.Pet{},
	&catalogDomain.PetTag{},
	&catalogDomain.ShelterApplication{},
	&catalogDomain.AdoptionApplication{},
	&catalogDomain.Favorite{},
	&catalogDomain.Tag{},
	&catalogDomain.Post{},
	&catalogDomain.PostTag{},
	&catalogDomain.Attribute{},
	&gormrepo.OutboxRecord{},
}

// Migrate crea o actualiza el esquema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(Models...)
}
