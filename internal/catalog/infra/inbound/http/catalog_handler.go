package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/application"
	catalogDomain "github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/domain"
	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/infra/outbound/export"
	"github.com/kast7n/PurrfectMatchPublic-sub003/pkg/utils"
	sharedQuery "github.com/kast7n/PurrfectMatchPublic-sub003/shared/platform/query"
)

// CatalogHandler expone los listados del catálogo.
type CatalogHandler struct {
	service *application.CatalogService
}

func NewCatalogHandler(service *application.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListPets endpoint GET /pets
func (h *CatalogHandler) ListPets(c *gin.Context) {
	f, q := petFilter(c)
	if q.err != nil {
		utils.SendBadRequest(c, q.err.Error())
		return
	}
	page, err := h.service.ListPets(c.Request.Context(), f)
	sendPage(c, page, err)
}

// ExportPets endpoint GET /pets/export: mismo filtro y orden, sin paginar.
func (h *CatalogHandler) ExportPets(c *gin.Context) {
	f, q := petFilter(c)
	if q.err != nil {
		utils.SendBadRequest(c, q.err.Error())
		return
	}
	pets, err := h.service.ExportPets(c.Request.Context(), f)
	if err != nil {
		sendListError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WritePets(&buf, pets); err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}
	name := fmt.Sprintf("pets-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// ListApplicationsForPet endpoint GET /pets/:id/applications
func (h *CatalogHandler) ListApplicationsForPet(c *gin.Context) {
	petID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid pet id")
		return
	}
	q := newQueryParams(c)
	f := catalogDomain.AdoptionApplicationFilter{
		UserID:      q.id("userId"),
		Status:      q.str("status"),
		IsClosed:    q.boolean("isClosed"),
		PageRequest: q.page(),
	}
	if q.err != nil {
		utils.SendBadRequest(c, q.err.Error())
		return
	}
	page, err := h.service.ListApplicationsForPet(c.Request.Context(), petID, f)
	sendPage(c, page, err)
}

// ListShelters endpoint GET /shelters
func (h *CatalogHandler) ListShelters(c *gin.Context) {
	q := newQueryParams(c)
	f := catalogDomain.ShelterFilter{
		Name:        q.str("name"),
		City:        q.str("city"),
		ManagerID:   q.id("managerId"),
		IsDeleted:   q.boolean("isDeleted"),
		PageRequest: q.page(),
	}
	if q.err != nil {
		utils.SendBadRequest(c, q.err.Error())
		return
	}
	page, err := h.service.ListShelters(c.Request.Context(), f)
	sendPage(c, page, err)
}

// ListShelterApplications endpoint GET /shelter-applications
func (h *CatalogHandler) ListShelterApplications(c *gin.Context) {
	q := newQueryParams(c)
	f := catalogDomain.ShelterApplicationFilter{
		Status:      q.str("status"),
		UserID:      q.id("userId"),
		ShelterName: q.str("shelterName"),
		City:        q.str("city"),
		PageRequest: q.page(),
	}
	if q.err != nil {
		utils.SendBadRequest(c, q.err.Error())
		return
	}
	page, err := h.service.ListShelterApplications(c.Request.Context(), f)
	sendPage(c, page, err)
}

// ListAdoptionApplications endpoint GET /adoption-applications
func (h *CatalogHandler) ListAdoptionApplications(c *gin.Context) {
	q := newQueryParams(c)
	f := catalogDomain.AdoptionApplicationFilter{
		PetID:       q.id("petId"),
		UserID:      q.id("userId"),
		ShelterID:   q.id("shelterId"),
		Status:      q.str("status"),
		IsClosed:    q.boolean("isClosed"),
		PageRequest: q.page(),
	}
	if q.err != nil {
		utils.SendBadRequest(c, q.err.Error())
		return
	}
	page, err := h.service.ListAdoptionApplications(c.Request.Context(), f)
	sendPage(c, page, err)
}

// ListPosts endpoint GET /posts
func (h *CatalogHandler) ListPosts(c *gin.Context) {
	q := newQueryParams(c)
	f := catalogDomain.PostFilter{
		Title:       q.str("title"),
		Content:     q.str("content"),
		AuthorID:    q.id("authorId"),
		ShelterID:   q.id("shelterId"),
		TagIDs:      q.ids("tagIds"),
		IsDeleted:   q.boolean("isDeleted"),
		PageRequest: q.page(),
	}
	if q.err != nil {
		utils.SendBadRequest(c, q.err.Error())
		return
	}
	page, err := h.service.ListPosts(c.Request.Context(), f)
	sendPage(c, page, err)
}

// ListTags endpoint GET /tags
func (h *CatalogHandler) ListTags(c *gin.Context) {
	q := newQueryParams(c)
	page, err := h.service.ListTags(c.Request.Context(), catalogDomain.TagFilter{
		Name:        q.str("name"),
		PageRequest: q.page(),
	})
	sendPage(c, page, err)
}

// ListBreeds endpoint GET /breeds
func (h *CatalogHandler) ListBreeds(c *gin.Context) {
	q := newQueryParams(c)
	f := catalogDomain.BreedFilter{
		Name:        q.str("name"),
		SpeciesID:   q.id("speciesId"),
		PageRequest: q.page(),
	}
	if q.err != nil {
		utils.SendBadRequest(c, q.err.Error())
		return
	}
	page, err := h.service.ListBreeds(c.Request.Context(), f)
	sendPage(c, page, err)
}

// ListSpecies endpoint GET /species
func (h *CatalogHandler) ListSpecies(c *gin.Context) {
	q := newQueryParams(c)
	page, err := h.service.ListSpecies(c.Request.Context(), catalogDomain.SpeciesFilter{
		Name:        q.str("name"),
		PageRequest: q.page(),
	})
	sendPage(c, page, err)
}

// ListAttributes endpoint GET /attributes
func (h *CatalogHandler) ListAttributes(c *gin.Context) {
	q := newQueryParams(c)
	page, err := h.service.ListAttributes(c.Request.Context(), catalogDomain.AttributeFilter{
		Kind:        q.str("kind"),
		Value:       q.str("value"),
		PageRequest: q.page(),
	})
	sendPage(c, page, err)
}

// ListFavorites endpoint GET /users/:id/favorites
func (h *CatalogHandler) ListFavorites(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid user id")
		return
	}
	q := newQueryParams(c)
	page, err := h.service.ListFavorites(c.Request.Context(), userID, catalogDomain.FavoriteFilter{PageRequest: q.page()})
	sendPage(c, page, err)
}

// ListUsers endpoint GET /users
func (h *CatalogHandler) ListUsers(c *gin.Context) {
	q := newQueryParams(c)
	page, err := h.service.ListUsers(c.Request.Context(), catalogDomain.UserFilter{
		Email:       q.str("email"),
		Name:        q.str("name"),
		Role:        q.str("role"),
		IsDeleted:   q.boolean("isDeleted"),
		PageRequest: q.page(),
	})
	sendPage(c, page, err)
}

// ------------------ Helpers ------------------

func petFilter(c *gin.Context) (catalogDomain.PetFilter, *queryParams) {
	q := newQueryParams(c)
	return catalogDomain.PetFilter{
		Name:              q.str("name"),
		Size:              q.str("size"),
		Gender:            q.str("gender"),
		SpeciesID:         q.id("speciesId"),
		BreedID:           q.id("breedId"),
		ShelterID:         q.id("shelterId"),
		City:              q.str("city"),
		MinAgeMonths:      q.integer("minAgeMonths"),
		MaxAgeMonths:      q.integer("maxAgeMonths"),
		CompatibilityTags: q.list("compatibilityTags"),
		IsAdopted:         q.boolean("isAdopted"),
		IsDeleted:         q.boolean("isDeleted"),
		PageRequest:       q.page(),
	}, q
}

func sendPage[T any](c *gin.Context, page *sharedQuery.Page[T], err error) {
	if err != nil {
		sendListError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, page)
}

func sendListError(c *gin.Context, err error) {
	if c.Request.Context().Err() != nil {
		utils.SendServiceUnavailable(c, "request cancelled")
		return
	}
	utils.SendInternalServerError(c, err.Error())
}
