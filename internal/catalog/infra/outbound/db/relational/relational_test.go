package relational

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/application"
	catalogDomain "github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/domain"
	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/shared/infra/db/gormrepo"
	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func ptr[V any](v V) *V { return &v }

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gormrepo.Open("sqlite", ":memory:", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, Migrate(context.Background(), db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func pet(name, size string, created time.Time) *catalogDomain.Pet {
	return &catalogDomain.Pet{ID: uuid.New(), Name: name, Size: size, CreatedAt: created, UpdatedAt: created}
}

func TestCatalogOverSQL_RexScenario(t *testing.T) {
	db := setupDB(t)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	deletedA := pet("Rebel", catalogDomain.SizeLarge, base)
	deletedA.IsDeleted = true
	deletedB := pet("Remy", catalogDomain.SizeLarge, base.Add(time.Hour))
	deletedB.IsDeleted = true
	adopted := pet("Rexy", catalogDomain.SizeLarge, base.Add(2*time.Hour))
	adopted.IsAdopted = true
	pets := []*catalogDomain.Pet{
		deletedA, deletedB, adopted,
		pet("Rex", catalogDomain.SizeLarge, base.Add(3*time.Hour)),
		pet("Mitzi", catalogDomain.SizeSmall, base.Add(4*time.Hour)),
	}
	require.NoError(t, db.Create(&pets).Error)

	svc := application.NewCatalogService(NewRepositories(db, nil), nil, 60, zap.NewNop())

	page, err := svc.ListPets(context.Background(), catalogDomain.PetFilter{
		Name: ptr("re"),
		Size: ptr(catalogDomain.SizeLarge),
	})

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Rex", page.Items[0].Name)
	assert.Equal(t, int64(1), page.TotalCount)
}

func TestCatalogOverSQL_CityAndTagsUseRelations(t *testing.T) {
	db := setupDB(t)
	madrid := catalogDomain.Shelter{ID: uuid.New(), Name: "Norte", City: ptr("Madrid"), CreatedAt: time.Now()}
	require.NoError(t, db.Create(&madrid).Error)

	local := pet("Local", catalogDomain.SizeSmall, time.Now())
	local.ShelterID = &madrid.ID
	local.Tags = []catalogDomain.PetTag{{ID: uuid.New(), Name: "children"}, {ID: uuid.New(), Name: "cats"}}
	stray := pet("Stray", catalogDomain.SizeSmall, time.Now())
	stray.Tags = []catalogDomain.PetTag{{ID: uuid.New(), Name: "cats"}}
	require.NoError(t, db.Create(&[]*catalogDomain.Pet{local, stray}).Error)

	repos := NewRepositories(db, nil)

	byCity := catalogDomain.PetSpecification(catalogDomain.PetFilter{City: ptr("MAD")})
	got, err := repos.Pets.List(context.Background(), byCity)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Local", got[0].Name)
	require.NotNil(t, got[0].Shelter, "Shelter is preloaded")
	assert.Len(t, got[0].Tags, 2)

	byTag := catalogDomain.PetSpecification(catalogDomain.PetFilter{CompatibilityTags: []string{"children"}})
	total, err := repos.Pets.Count(context.Background(), byTag)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestCatalogOverSQL_FavoritesAndApplications(t *testing.T) {
	db := setupDB(t)
	user := catalogDomain.User{ID: uuid.New(), Email: "ana@example.com", Name: "Ana", Role: catalogDomain.RoleAdopter, CreatedAt: time.Now()}
	shelter := catalogDomain.Shelter{ID: uuid.New(), Name: "Sur", CreatedAt: time.Now()}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&shelter).Error)

	live := pet("Live", catalogDomain.SizeSmall, time.Now())
	live.ShelterID = &shelter.ID
	gone := pet("Gone", catalogDomain.SizeSmall, time.Now())
	gone.IsDeleted = true
	require.NoError(t, db.Create(&[]*catalogDomain.Pet{live, gone}).Error)

	favs := []catalogDomain.Favorite{
		{ID: uuid.New(), UserID: user.ID, PetID: live.ID, CreatedAt: time.Now()},
		{ID: uuid.New(), UserID: user.ID, PetID: gone.ID, CreatedAt: time.Now()},
	}
	require.NoError(t, db.Create(&favs).Error)

	apps := []catalogDomain.AdoptionApplication{
		{ID: uuid.New(), PetID: live.ID, UserID: user.ID, Status: catalogDomain.AdoptionPending, CreatedAt: time.Now()},
		{ID: uuid.New(), PetID: gone.ID, UserID: user.ID, Status: catalogDomain.AdoptionPending, CreatedAt: time.Now()},
	}
	require.NoError(t, db.Create(&apps).Error)

	svc := application.NewCatalogService(NewRepositories(db, nil), nil, 60, zap.NewNop())

	favPage, err := svc.ListFavorites(context.Background(), user.ID, catalogDomain.FavoriteFilter{})
	require.NoError(t, err)
	require.Len(t, favPage.Items, 1)
	assert.Equal(t, live.ID, favPage.Items[0].PetID)
	require.NotNil(t, favPage.Items[0].Pet)
	require.NotNil(t, favPage.Items[0].Pet.Shelter)

	appPage, err := svc.ListAdoptionApplications(context.Background(), catalogDomain.AdoptionApplicationFilter{ShelterID: &shelter.ID})
	require.NoError(t, err)
	require.Len(t, appPage.Items, 1)
	assert.Equal(t, live.ID, appPage.Items[0].PetID)
	require.NotNil(t, appPage.Items[0].User)
	assert.Equal(t, "Ana", appPage.Items[0].User.Name)
}

func TestCatalogOverSQL_PostsByTag(t *testing.T) {
	db := setupDB(t)
	author := catalogDomain.User{ID: uuid.New(), Email: "a@example.com", Name: "Autor", Role: catalogDomain.RoleAdmin, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&author).Error)
	news, events := catalogDomain.Tag{ID: uuid.New(), Name: "news"}, catalogDomain.Tag{ID: uuid.New(), Name: "events"}
	require.NoError(t, db.Create(&[]catalogDomain.Tag{news, events}).Error)

	tagged := catalogDomain.Post{ID: uuid.New(), Title: "Open day", AuthorID: author.ID, CreatedAt: time.Now()}
	tagged.Tags = []catalogDomain.PostTag{{ID: uuid.New(), TagID: news.ID}}
	plain := catalogDomain.Post{ID: uuid.New(), Title: "Plain", AuthorID: author.ID, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&[]catalogDomain.Post{tagged, plain}).Error)

	svc := application.NewCatalogService(NewRepositories(db, nil), nil, 60, zap.NewNop())

	page, err := svc.ListPosts(context.Background(), catalogDomain.PostFilter{TagIDs: []uuid.UUID{news.ID, events.ID}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Open day", page.Items[0].Title)
	require.Len(t, page.Items[0].Tags, 1)
	require.NotNil(t, page.Items[0].Tags[0].Tag)
	assert.Equal(t, "news", page.Items[0].Tags[0].Tag.Name)
	require.NotNil(t, page.Items[0].Author)
}

func TestPetRepo_WritesWithOutbox(t *testing.T) {
	db := setupDB(t)
	repo := NewPetRepo(db)
	outbox := gormrepo.NewOutboxRepo(db)
	ctx := context.Background()

	p := pet("Rex", catalogDomain.SizeLarge, time.Now().UTC())
	p.Tags = []catalogDomain.PetTag{{ID: uuid.New(), PetID: p.ID, Name: "children"}}
	require.NoError(t, repo.Create(ctx, p, sharedDomain.OutboxEvent{
		ID: uuid.New(), AggregateType: catalogDomain.PetTopic, AggregateID: p.ID.String(),
		EventType: catalogDomain.PetCreated, Payload: p.Snapshot(), CreatedAt: time.Now().UTC(),
	}))

	require.NoError(t, p.Adopt())
	require.NoError(t, repo.Update(ctx, p, sharedDomain.OutboxEvent{
		ID: uuid.New(), AggregateType: catalogDomain.PetTopic, AggregateID: p.ID.String(),
		EventType: catalogDomain.PetAdopted, Payload: p.Snapshot(), CreatedAt: time.Now().UTC().Add(time.Millisecond),
	}))

	stored, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAdopted)
	assert.Len(t, stored.Tags, 1)

	pending, err := outbox.FetchPendingOutbox(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, catalogDomain.PetCreated, pending[0].EventType)
	assert.Equal(t, catalogDomain.PetAdopted, pending[1].EventType)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, catalogDomain.ErrPetNotFound)

	missing := pet("Ghost", catalogDomain.SizeSmall, time.Now())
	err = repo.Update(ctx, missing, sharedDomain.OutboxEvent{ID: uuid.New(), Payload: missing.Snapshot(), CreatedAt: time.Now()})
	assert.ErrorIs(t, err, catalogDomain.ErrPetNotFound)
}
