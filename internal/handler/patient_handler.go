package handler

import (
	"clinic-management-backend/internal/service"
	"clinic-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	patientService      *service.PatientService
	prescriptionService *service.PrescriptionService
}

func NewPatientHandler(patientService *service.PatientService, prescriptionService *service.PrescriptionService) *PatientHandler {
	return &PatientHandler{
		patientService:      patientService,
		prescriptionService: prescriptionService,
	}
}

// List returns every patient ordered by name
func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.patientService.ListPatients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, patients)
}

// Search matches patients by name or NIC
func (h *PatientHandler) Search(c *gin.Context) {
	var q service.PatientSearchQuery
	if !bindQuery(c, &q) {
		return
	}

	patients, err := h.patientService.SearchPatients(c.Request.Context(), q.Q)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, patients)
}

// Total returns the number of registered patients
func (h *PatientHandler) Total(c *gin.Context) {
	total, err := h.patientService.TotalPatients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"totalPatients": total})
}

// Get returns the patient record with appointments
func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	patient, err := h.patientService.GetPatientRecord(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, patient)
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req service.PatientInput
	if !bindJSON(c, &req) {
		return
	}

	patient, err := h.patientService.RegisterPatient(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, patient)
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.PatientInput
	if !bindJSON(c, &req) {
		return
	}

	patient, err := h.patientService.UpdatePatient(c.Request.Context(), actor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, patient)
}

func (h *PatientHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.patientService.DeletePatient(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// Prescriptions lists the prescriptions issued to a patient
func (h *PatientHandler) Prescriptions(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	prescriptions, err := h.prescriptionService.PatientPrescriptions(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, prescriptions)
}
