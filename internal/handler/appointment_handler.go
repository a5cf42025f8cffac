package handler

import (
	"context"

	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/service"
	"clinic-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// List returns the appointments booked by the current user
func (h *AppointmentHandler) List(c *gin.Context) {
	appointments, err := h.appointmentService.ListMyAppointments(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, appointments)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	appointment, err := h.appointmentService.GetAppointment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, appointment)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req service.CreateAppointmentInput
	if !bindJSON(c, &req) {
		return
	}

	appointment, err := h.appointmentService.CreateAppointment(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, appointment)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.UpdateAppointmentInput
	if !bindJSON(c, &req) {
		return
	}

	appointment, err := h.appointmentService.UpdateAppointment(c.Request.Context(), actor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, appointment)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.appointmentService.DeleteAppointment(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// Next returns the current user's next open appointment, or null
func (h *AppointmentHandler) Next(c *gin.Context) {
	appointment, err := h.appointmentService.NextAppointment(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, appointment)
}

// Upcoming lists the open appointments of a patient from today on
func (h *AppointmentHandler) Upcoming(c *gin.Context) {
	patientID, ok := pathID(c, "patientId")
	if !ok {
		return
	}

	appointments, err := h.appointmentService.UpcomingForPatient(c.Request.Context(), patientID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, appointments)
}

// CheckIn marks the patient as arrived
func (h *AppointmentHandler) CheckIn(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.CheckInInput
	if !bindJSON(c, &req) {
		return
	}

	appointment, err := h.appointmentService.CheckIn(c.Request.Context(), actor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, appointment)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, h.appointmentService.Confirm)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.appointmentService.Cancel)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, h.appointmentService.Complete)
}

// ClinicAppointments lists appointments of the clinic the current admin runs
func (h *AppointmentHandler) ClinicAppointments(c *gin.Context) {
	appointments, err := h.appointmentService.ClinicAppointments(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, appointments)
}

// DoctorAppointments returns the doctor's calendar for ?range=day|week|month
func (h *AppointmentHandler) DoctorAppointments(c *gin.Context) {
	var q service.DoctorAppointmentQuery
	if !bindQuery(c, &q) {
		return
	}

	calendar, err := h.appointmentService.DoctorAppointments(c.Request.Context(), actor(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, calendar)
}

type statusAction func(ctx context.Context, actor service.Actor, id uint) (*models.Appointment, error)

func (h *AppointmentHandler) transition(c *gin.Context, action statusAction) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	appointment, err := action(c.Request.Context(), actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, appointment)
}
