package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	dateLayout        = "2006-01-02"
	patientCodeLength = 10
	patientCodeTries  = 5
)

type PatientService struct {
	patientRepo *repository.PatientRepository
	auditRepo   *repository.AuditRepository
}

func NewPatientService(patientRepo *repository.PatientRepository, auditRepo *repository.AuditRepository) *PatientService {
	return &PatientService{
		patientRepo: patientRepo,
		auditRepo:   auditRepo,
	}
}

// PatientInput is used for both registration and full updates
type PatientInput struct {
	FullName                     string `json:"full_name" binding:"required,max=255"`
	NIC                          string `json:"nic" binding:"required,max=20"`
	DateOfBirth                  string `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Gender                       string `json:"gender" binding:"required,oneof=Male Female Other"`
	StreetAddress                string `json:"street_address" binding:"required,max=255"`
	City                         string `json:"city" binding:"required,max=255"`
	District                     string `json:"district" binding:"required,max=255"`
	Province                     string `json:"province" binding:"required,max=255"`
	ContactNumber                string `json:"contact_number" binding:"required,lk_mobile"`
	EmailAddress                 string `json:"email_address" binding:"omitempty,email,max=255"`
	MaritalStatus                string `json:"marital_status" binding:"omitempty,oneof=Single Married Divorced Widowed"`
	EmergencyContactName         string `json:"emergency_contact_name" binding:"required,max=255"`
	EmergencyContactNumber       string `json:"emergency_contact_number" binding:"required,max=20"`
	EmergencyContactRelationship string `json:"emergency_contact_relationship" binding:"required,max=255"`
	BloodGroup                   string `json:"blood_group" binding:"omitempty,max=10"`
	KnownAllergies               string `json:"known_allergies"`
	CurrentMedications           string `json:"current_medications"`
	PastMedicalHistory           string `json:"past_medical_history"`
}

type PatientSearchQuery struct {
	Q string `form:"q"`
}

func (s *PatientService) ListPatients(ctx context.Context) ([]models.Patient, error) {
	return s.patientRepo.GetAllPatients(ctx, repository.ListOptions{})
}

// SearchPatients matches name or NIC; an empty term lists everyone
func (s *PatientService) SearchPatients(ctx context.Context, term string) ([]models.Patient, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.ListPatients(ctx)
	}
	return s.patientRepo.SearchPatients(ctx, term)
}

func (s *PatientService) TotalPatients(ctx context.Context) (int64, error) {
	return s.patientRepo.CountPatients(ctx, 0)
}

// GetPatientRecord loads a patient with appointments, newest first
func (s *PatientService) GetPatientRecord(ctx context.Context, id uint) (*models.Patient, error) {
	return s.patientRepo.GetPatientWithAppointments(ctx, id)
}

// RegisterPatient stores a new patient registered by the actor today
func (s *PatientService) RegisterPatient(ctx context.Context, actor Actor, in PatientInput) (*models.Patient, error) {
	if err := s.checkNIC(ctx, in.NIC, 0); err != nil {
		return nil, err
	}

	code, err := s.newPatientCode(ctx)
	if err != nil {
		return nil, err
	}

	patient := &models.Patient{Code: code, RegistrationDate: datatypes.Date(today())}
	if actor.ID != 0 {
		doctorID := actor.ID
		patient.DoctorID = &doctorID
	}
	if err := applyPatientInput(patient, in); err != nil {
		return nil, err
	}

	if err := s.patientRepo.CreatePatient(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	recordActivity(ctx, s.auditRepo, actor.ID, "patient_registered",
		fmt.Sprintf("Registered patient %s (%s)", patient.FullName, patient.Code))
	return patient, nil
}

// UpdatePatient replaces the editable fields of a patient
func (s *PatientService) UpdatePatient(ctx context.Context, actor Actor, id uint, in PatientInput) (*models.Patient, error) {
	patient, err := s.patientRepo.GetPatientByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkNIC(ctx, in.NIC, id); err != nil {
		return nil, err
	}
	if err := applyPatientInput(patient, in); err != nil {
		return nil, err
	}

	if err := s.patientRepo.UpdatePatient(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	recordActivity(ctx, s.auditRepo, actor.ID, "patient_updated", fmt.Sprintf("Updated patient %s", patient.FullName))
	return patient, nil
}

// DeletePatient removes a patient with their appointments and prescriptions
func (s *PatientService) DeletePatient(ctx context.Context, actor Actor, id uint) error {
	patient, err := s.patientRepo.GetPatientByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.patientRepo.DeletePatient(ctx, id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	recordActivity(ctx, s.auditRepo, actor.ID, "patient_deleted", fmt.Sprintf("Deleted patient %s", patient.FullName))
	return nil
}

func (s *PatientService) checkNIC(ctx context.Context, nic string, exceptID uint) error {
	taken, err := s.patientRepo.NICTaken(ctx, strings.TrimSpace(nic), exceptID)
	if err != nil {
		return fmt.Errorf("failed to check nic: %w", err)
	}
	if taken {
		return Invalid("nic", "The nic has already been taken.")
	}
	return nil
}

// newPatientCode returns an unused code of uppercase letters and digits
func (s *PatientService) newPatientCode(ctx context.Context) (string, error) {
	for i := 0; i < patientCodeTries; i++ {
		id, err := uuid.NewRandom()
		if err != nil {
			return "", fmt.Errorf("failed to generate patient id: %w", err)
		}
		code := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))[:patientCodeLength]

		taken, err := s.patientRepo.PatientCodeTaken(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check patient id: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique patient id after %d attempts", patientCodeTries)
}

func applyPatientInput(p *models.Patient, in PatientInput) error {
	dob, err := time.Parse(dateLayout, in.DateOfBirth)
	if err != nil {
		return Invalid("date_of_birth", "The date of birth field must be a valid date.")
	}

	p.FullName = strings.TrimSpace(in.FullName)
	p.NIC = strings.TrimSpace(in.NIC)
	p.DateOfBirth = datatypes.Date(dob)
	p.Gender = in.Gender
	p.StreetAddress = in.StreetAddress
	p.City = in.City
	p.District = in.District
	p.Province = in.Province
	p.ContactNumber = in.ContactNumber
	p.EmailAddress = optional(in.EmailAddress)
	p.MaritalStatus = optional(in.MaritalStatus)
	p.EmergencyContactName = in.EmergencyContactName
	p.EmergencyContactNumber = in.EmergencyContactNumber
	p.EmergencyContactRelationship = in.EmergencyContactRelationship
	p.BloodGroup = optional(in.BloodGroup)
	p.KnownAllergies = optional(in.KnownAllergies)
	p.CurrentMedications = optional(in.CurrentMedications)
	p.PastMedicalHistory = optional(in.PastMedicalHistory)
	return nil
}

// optional maps blank strings to NULL
func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
