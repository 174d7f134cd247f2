package application

import (
	"context"

	"github.com/google/uuid"
	catalogDomain "github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/domain"
	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
	sharedCache "github.com/kast7n/PurrfectMatchPublic-sub003/shared/platform/cache"
	sharedQuery "github.com/kast7n/PurrfectMatchPublic-sub003/shared/platform/query"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Nombres de entidad: prefijo de las claves de caché y del registro de consultas.
const (
	EntityPet                 = "pet"
	EntityShelter             = "shelter"
	EntityShelterApplication  = "shelter_application"
	EntityAdoptionApplication = "adoption_application"
	EntityPost                = "post"
	EntityTag                 = "tag"
	EntityBreed               = "breed"
	EntitySpecies             = "species"
	EntityAttribute           = "attribute"
	EntityFavorite            = "favorite"
	EntityUser                = "user"
)

// CatalogService expone los listados paginados del catálogo. Cada listado
// construye una especificación y la ejecuta dos veces: List para la página y
// Count para el total.
type CatalogService struct {
	repos    catalogDomain.Repositories
	cache    sharedCache.Cache
	cacheTTL int
	log      *zap.Logger
}

func NewCatalogService(repos catalogDomain.Repositories, cache sharedCache.Cache, cacheTTLSecs int, log *zap.Logger) *CatalogService {
	return &CatalogService{
		repos:    repos,
		cache:    cache,
		cacheTTL: cacheTTLSecs,
		log:      log,
	}
}

func (s *CatalogService) ListPets(ctx context.Context, f catalogDomain.PetFilter) (*sharedQuery.Page[catalogDomain.Pet], error) {
	return listPage(ctx, s, EntityPet, f, f.PageRequest, catalogDomain.PetSpecification(f), s.repos.Pets)
}

func (s *CatalogService) ListShelters(ctx context.Context, f catalogDomain.ShelterFilter) (*sharedQuery.Page[catalogDomain.Shelter], error) {
	return listPage(ctx, s, EntityShelter, f, f.PageRequest, catalogDomain.ShelterSpecification(f), s.repos.Shelters)
}

func (s *CatalogService) ListShelterApplications(ctx context.Context, f catalogDomain.ShelterApplicationFilter) (*sharedQuery.Page[catalogDomain.ShelterApplication], error) {
	return listPage(ctx, s, EntityShelterApplication, f, f.PageRequest, catalogDomain.ShelterApplicationSpecification(f), s.repos.ShelterApplications)
}

func (s *CatalogService) ListAdoptionApplications(ctx context.Context, f catalogDomain.AdoptionApplicationFilter) (*sharedQuery.Page[catalogDomain.AdoptionApplication], error) {
	return listPage(ctx, s, EntityAdoptionApplication, f, f.PageRequest, catalogDomain.AdoptionApplicationSpecification(f), s.repos.AdoptionApplications)
}

// ListApplicationsForPet lista las solicitudes de una mascota concreta.
func (s *CatalogService) ListApplicationsForPet(ctx context.Context, petID uuid.UUID, f catalogDomain.AdoptionApplicationFilter) (*sharedQuery.Page[catalogDomain.AdoptionApplication], error) {
	key := struct {
		PetID uuid.UUID `json:"forPet"`
		catalogDomain.AdoptionApplicationFilter
	}{petID, f}
	return listPage(ctx, s, EntityAdoptionApplication, key, f.PageRequest, catalogDomain.ApplicationsForPetSpecification(petID, f), s.repos.AdoptionApplications)
}

func (s *CatalogService) ListPosts(ctx context.Context, f catalogDomain.PostFilter) (*sharedQuery.Page[catalogDomain.Post], error) {
	return listPage(ctx, s, EntityPost, f, f.PageRequest, catalogDomain.PostSpecification(f), s.repos.Posts)
}

func (s *CatalogService) ListTags(ctx context.Context, f catalogDomain.TagFilter) (*sharedQuery.Page[catalogDomain.Tag], error) {
	return listPage(ctx, s, EntityTag, f, f.PageRequest, catalogDomain.TagSpecification(f), s.repos.Tags)
}

func (s *CatalogService) ListBreeds(ctx context.Context, f catalogDomain.BreedFilter) (*sharedQuery.Page[catalogDomain.Breed], error) {
	return listPage(ctx, s, EntityBreed, f, f.PageRequest, catalogDomain.BreedSpecification(f), s.repos.Breeds)
}

func (s *CatalogService) ListSpecies(ctx context.Context, f catalogDomain.SpeciesFilter) (*sharedQuery.Page[catalogDomain.Species], error) {
	return listPage(ctx, s, EntitySpecies, f, f.PageRequest, catalogDomain.SpeciesSpecification(f), s.repos.Species)
}

func (s *CatalogService) ListAttributes(ctx context.Context, f catalogDomain.AttributeFilter) (*sharedQuery.Page[catalogDomain.Attribute], error) {
	return listPage(ctx, s, EntityAttribute, f, f.PageRequest, catalogDomain.AttributeSpecification(f), s.repos.Attributes)
}

// ListFavorites lista los favoritos de un usuario cuya mascota sigue publicada.
func (s *CatalogService) ListFavorites(ctx context.Context, userID uuid.UUID, f catalogDomain.FavoriteFilter) (*sharedQuery.Page[catalogDomain.Favorite], error) {
	f.UserID = &userID
	return listPage(ctx, s, EntityFavorite, f, f.PageRequest, catalogDomain.FavoriteSpecification(f), s.repos.Favorites)
}

func (s *CatalogService) ListUsers(ctx context.Context, f catalogDomain.UserFilter) (*sharedQuery.Page[catalogDomain.User], error) {
	return listPage(ctx, s, EntityUser, f, f.PageRequest, catalogDomain.UserSpecification(f), s.repos.Users)
}

// ExportPets devuelve todas las mascotas que cumplen el filtro, sin paginar.
func (s *CatalogService) ExportPets(ctx context.Context, f catalogDomain.PetFilter) ([]*catalogDomain.Pet, error) {
	spec := catalogDomain.PetSpecification(f).Unpaged()
	pets, err := s.repos.Pets.List(ctx, spec)
	if err != nil {
		s.log.Error("Failed to export pets", zap.Error(err))
		return nil, err
	}
	return pets, nil
}

// InvalidateLists descarta en background los listados cacheados de las entidades dadas.
func (s *CatalogService) InvalidateLists(ctx context.Context, entities ...string) {
	for _, e := range entities {
		sharedCache.AsyncCacheDeletePrefix(ctx, s.cache, catalogDomain.ListCachePrefix(e), s.log)
	}
}

// ------------------ Helpers ------------------

// listPage ejecuta List y Count en paralelo sobre la misma especificación y arma
// el sobre paginado. Usa la caché con el filtro como clave.
func listPage[T any](
	ctx context.Context,
	s *CatalogService,
	entity string,
	filter interface{},
	req sharedQuery.PageRequest,
	spec sharedDomain.Specification[T],
	repo sharedDomain.SpecRepository[T],
) (*sharedQuery.Page[T], error) {
	key := catalogDomain.ListCacheKey(entity, filter)
	if s.cache != nil && key != "" {
		var cached sharedQuery.Page[T]
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	var (
		items []*T
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = repo.List(gctx, spec)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = repo.Count(gctx, spec)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("Failed to list", zap.String("entity", entity), zap.Error(err))
		return nil, err
	}

	pageNumber, pageSize := req.PageNumber, req.PageSize
	if pageNumber < 1 || pageSize <= 0 {
		pageNumber = 1
	}
	if pageSize < 0 {
		pageSize = 0
	}
	page := sharedQuery.NewPage(items, total, pageNumber, pageSize)

	if key != "" {
		sharedCache.AsyncCacheSet(ctx, s.cache, key, page, s.cacheTTL, s.log)
	}
	return page, nil
}
