package service

import (
	"context"
	"fmt"

	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/repository"
)

type PrescriptionService struct {
	prescriptionRepo *repository.PrescriptionRepository
	medicationRepo   *repository.MedicationRepository
	patientRepo      *repository.PatientRepository
	userRepo         *repository.UserRepository
	auditRepo        *repository.AuditRepository
}

func NewPrescriptionService(
	prescriptionRepo *repository.PrescriptionRepository,
	medicationRepo *repository.MedicationRepository,
	patientRepo *repository.PatientRepository,
	userRepo *repository.UserRepository,
	auditRepo *repository.AuditRepository,
) *PrescriptionService {
	return &PrescriptionService{
		prescriptionRepo: prescriptionRepo,
		medicationRepo:   medicationRepo,
		patientRepo:      patientRepo,
		userRepo:         userRepo,
		auditRepo:        auditRepo,
	}
}

type CreatePrescriptionInput struct {
	PatientID    uint   `json:"patient_id" binding:"required"`
	DoctorID     *uint  `json:"doctor_id" binding:"omitempty,gt=0"`
	MedicationID uint   `json:"medication_id" binding:"required"`
	Dosage       string `json:"dosage" binding:"required,max=255"`
	Frequency    string `json:"frequency" binding:"required,max=255"`
	Duration     string `json:"duration" binding:"required,max=255"`
	Notes        string `json:"notes"`
}

type UpdatePrescriptionInput struct {
	MedicationID *uint   `json:"medication_id" binding:"omitempty,gt=0"`
	Dosage       *string `json:"dosage" binding:"omitempty,min=1,max=255"`
	Frequency    *string `json:"frequency" binding:"omitempty,min=1,max=255"`
	Duration     *string `json:"duration" binding:"omitempty,min=1,max=255"`
	Notes        *string `json:"notes"`
}

// PatientPrescriptions lists prescriptions of a patient, newest first
func (s *PrescriptionService) PatientPrescriptions(ctx context.Context, patientID uint) ([]models.Prescription, error) {
	ok, err := s.patientRepo.PatientExists(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check patient: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("patient %w", repository.ErrNotFound)
	}
	return s.prescriptionRepo.GetPrescriptionsByPatient(ctx, patientID)
}

func (s *PrescriptionService) GetPrescription(ctx context.Context, id uint) (*models.Prescription, error) {
	return s.prescriptionRepo.GetPrescriptionByID(ctx, id)
}

// CreatePrescription issues a prescription; the prescribing doctor defaults to the actor
func (s *PrescriptionService) CreatePrescription(ctx context.Context, actor Actor, in CreatePrescriptionInput) (*models.Prescription, error) {
	doctorID := actor.ID
	if in.DoctorID != nil {
		doctorID = *in.DoctorID
	}

	verr := &ValidationError{}
	ok, err := s.patientRepo.PatientExists(ctx, in.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check patient: %w", err)
	}
	if !ok {
		verr.Add("patient_id", selectedInvalid("patient_id"))
	}
	if err := s.checkMedication(ctx, in.MedicationID, verr); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindUserByID(ctx, doctorID); err != nil {
		if !isNotFound(err) {
			return nil, fmt.Errorf("failed to check doctor: %w", err)
		}
		verr.Add("doctor_id", selectedInvalid("doctor_id"))
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	prescription := &models.Prescription{
		PatientID:    in.PatientID,
		DoctorID:     doctorID,
		MedicationID: in.MedicationID,
		Dosage:       in.Dosage,
		Frequency:    in.Frequency,
		Duration:     in.Duration,
		Notes:        optional(in.Notes),
	}
	if err := s.prescriptionRepo.CreatePrescription(ctx, prescription); err != nil {
		return nil, fmt.Errorf("failed to create prescription: %w", err)
	}

	recordActivity(ctx, s.auditRepo, actor.ID, "prescription_created",
		fmt.Sprintf("Prescribed medication #%d to patient #%d", prescription.MedicationID, prescription.PatientID))
	return s.prescriptionRepo.GetPrescriptionByID(ctx, prescription.ID)
}

func (s *PrescriptionService) UpdatePrescription(ctx context.Context, actor Actor, id uint, in UpdatePrescriptionInput) (*models.Prescription, error) {
	if _, err := s.prescriptionRepo.GetPrescriptionByID(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.MedicationID != nil {
		verr := &ValidationError{}
		if err := s.checkMedication(ctx, *in.MedicationID, verr); err != nil {
			return nil, err
		}
		if err := verr.Err(); err != nil {
			return nil, err
		}
		updates["medication_id"] = *in.MedicationID
	}
	if in.Dosage != nil {
		updates["dosage"] = *in.Dosage
	}
	if in.Frequency != nil {
		updates["frequency"] = *in.Frequency
	}
	if in.Duration != nil {
		updates["duration"] = *in.Duration
	}
	if in.Notes != nil {
		updates["notes"] = optional(*in.Notes)
	}

	if len(updates) > 0 {
		if err := s.prescriptionRepo.UpdatePrescription(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("failed to update prescription: %w", err)
		}
		recordActivity(ctx, s.auditRepo, actor.ID, "prescription_updated", fmt.Sprintf("Prescription #%d updated", id))
	}
	return s.prescriptionRepo.GetPrescriptionByID(ctx, id)
}

func (s *PrescriptionService) DeletePrescription(ctx context.Context, actor Actor, id uint) error {
	if _, err := s.prescriptionRepo.GetPrescriptionByID(ctx, id); err != nil {
		return err
	}
	if err := s.prescriptionRepo.DeletePrescription(ctx, id); err != nil {
		return fmt.Errorf("failed to delete prescription: %w", err)
	}

	recordActivity(ctx, s.auditRepo, actor.ID, "prescription_deleted", fmt.Sprintf("Prescription #%d deleted", id))
	return nil
}

func (s *PrescriptionService) checkMedication(ctx context.Context, id uint, verr *ValidationError) error {
	ok, err := s.medicationRepo.MedicationExists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check medication: %w", err)
	}
	if !ok {
		verr.Add("medication_id", selectedInvalid("medication_id"))
	}
	return nil
}
