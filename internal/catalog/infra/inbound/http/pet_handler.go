package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/application"
	catalogDomain "github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/domain"
	"github.com/kast7n/PurrfectMatchPublic-sub003/pkg/utils"
)

// PetHandler encapsula los endpoints de escritura y detalle de mascotas.
type PetHandler struct {
	service *application.PetService
}

func NewPetHandler(service *application.PetService) *PetHandler {
	return &PetHandler{service: service}
}

// CreatePet endpoint POST /pets
func (h *PetHandler) CreatePet(c *gin.Context) {
	var req application.NewPet
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	pet, err := h.service.CreatePet(c.Request.Context(), req)
	if err != nil {
		sendPetError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusCreated, pet)
}

// GetPet endpoint GET /pets/:id
func (h *PetHandler) GetPet(c *gin.Context) {
	id, ok := petID(c)
	if !ok {
		return
	}
	pet, err := h.service.GetPet(c.Request.Context(), id)
	if err != nil {
		sendPetError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, pet)
}

// AdoptPet endpoint POST /pets/:id/adopt
func (h *PetHandler) AdoptPet(c *gin.Context) {
	id, ok := petID(c)
	if !ok {
		return
	}
	pet, err := h.service.AdoptPet(c.Request.Context(), id)
	if err != nil {
		sendPetError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, pet)
}

// DeletePet endpoint DELETE /pets/:id
func (h *PetHandler) DeletePet(c *gin.Context) {
	id, ok := petID(c)
	if !ok {
		return
	}
	if err := h.service.DeletePet(c.Request.Context(), id); err != nil {
		sendPetError(c, err)
		return
	}
	utils.SendNoContent(c)
}

func petID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid pet id")
		return uuid.Nil, false
	}
	return id, true
}

func sendPetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalogDomain.ErrPetNotFound):
		utils.SendNotFound(c, "pet not found")
	case errors.Is(err, catalogDomain.ErrInvalidPet):
		utils.SendBadRequest(c, err.Error())
	case errors.Is(err, catalogDomain.ErrPetAlreadyAdopted):
		utils.SendConflict(c, err.Error())
	default:
		utils.SendInternalServerError(c, err.Error())
	}
}
