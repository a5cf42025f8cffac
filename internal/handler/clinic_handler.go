package handler

import (
	"clinic-management-backend/internal/service"
	"clinic-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ClinicHandler struct {
	clinicService *service.ClinicService
}

func NewClinicHandler(clinicService *service.ClinicService) *ClinicHandler {
	return &ClinicHandler{clinicService: clinicService}
}

// List handles the clinic directory, optionally by location
func (h *ClinicHandler) List(c *gin.Context) {
	var q service.ClinicQuery
	if !bindQuery(c, &q) {
		return
	}

	clinics, err := h.clinicService.ListClinics(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, clinics)
}

// Nearby returns the closest clinics to the given coordinates
func (h *ClinicHandler) Nearby(c *gin.Context) {
	var q service.NearbyQuery
	if !bindQuery(c, &q) {
		return
	}

	clinics, err := h.clinicService.NearbyClinics(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, clinics)
}

func (h *ClinicHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	clinic, err := h.clinicService.GetClinic(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, clinic)
}

func (h *ClinicHandler) Doctors(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	doctors, err := h.clinicService.ClinicDoctors(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, doctors)
}

func (h *ClinicHandler) Schedule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	schedules, err := h.clinicService.ClinicSchedule(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, schedules)
}

func (h *ClinicHandler) Reviews(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	reviews, err := h.clinicService.ClinicReviews(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, reviews)
}

func (h *ClinicHandler) Create(c *gin.Context) {
	var req service.CreateClinicInput
	if !bindJSON(c, &req) {
		return
	}

	clinic, err := h.clinicService.CreateClinic(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, clinic)
}

func (h *ClinicHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.UpdateClinicInput
	if !bindJSON(c, &req) {
		return
	}

	clinic, err := h.clinicService.UpdateClinic(c.Request.Context(), actor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, clinic)
}

func (h *ClinicHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.clinicService.DeleteClinic(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
