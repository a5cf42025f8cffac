package handler

import (
	"clinic-management-backend/internal/service"
	"clinic-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the service catalog and the medication formulary
type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.catalogService.ListServices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, services)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req service.ServiceInput
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.catalogService.CreateService(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, created)
}

func (h *CatalogHandler) ListMedications(c *gin.Context) {
	medications, err := h.catalogService.ListMedications(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, medications)
}

func (h *CatalogHandler) CreateMedication(c *gin.Context) {
	var req service.MedicationInput
	if !bindJSON(c, &req) {
		return
	}

	medication, err := h.catalogService.CreateMedication(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, medication)
}
