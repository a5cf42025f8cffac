package handler

import (
	"clinic-management-backend/internal/service"
	"clinic-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PrescriptionHandler struct {
	prescriptionService *service.PrescriptionService
}

func NewPrescriptionHandler(prescriptionService *service.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{prescriptionService: prescriptionService}
}

func (h *PrescriptionHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	prescription, err := h.prescriptionService.GetPrescription(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, prescription)
}

func (h *PrescriptionHandler) Create(c *gin.Context) {
	var req service.CreatePrescriptionInput
	if !bindJSON(c, &req) {
		return
	}

	prescription, err := h.prescriptionService.CreatePrescription(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, prescription)
}

func (h *PrescriptionHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.UpdatePrescriptionInput
	if !bindJSON(c, &req) {
		return
	}

	prescription, err := h.prescriptionService.UpdatePrescription(c.Request.Context(), actor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, prescription)
}

func (h *PrescriptionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.prescriptionService.DeletePrescription(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
