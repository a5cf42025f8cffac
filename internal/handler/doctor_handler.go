package handler

import (
	"clinic-management-backend/internal/service"
	"clinic-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	doctorService *service.DoctorService
}

func NewDoctorHandler(doctorService *service.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctorService: doctorService}
}

func (h *DoctorHandler) List(c *gin.Context) {
	var q service.DoctorQuery
	if !bindQuery(c, &q) {
		return
	}

	doctors, err := h.doctorService.ListDoctors(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, doctors)
}

func (h *DoctorHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	doctor, err := h.doctorService.GetDoctor(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, doctor)
}

func (h *DoctorHandler) Create(c *gin.Context) {
	var req service.CreateDoctorInput
	if !bindJSON(c, &req) {
		return
	}

	doctor, err := h.doctorService.CreateDoctor(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, doctor)
}

func (h *DoctorHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.UpdateDoctorInput
	if !bindJSON(c, &req) {
		return
	}

	doctor, err := h.doctorService.UpdateDoctor(c.Request.Context(), actor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, doctor)
}

func (h *DoctorHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.doctorService.DeleteDoctor(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
