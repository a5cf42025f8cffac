package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/repository"

	"gorm.io/datatypes"
)

type AppointmentService struct {
	appointmentRepo *repository.AppointmentRepository
	patientRepo     *repository.PatientRepository
	clinicRepo      *repository.ClinicRepository
	doctorRepo      *repository.DoctorRepository
	userRepo        *repository.UserRepository
	auditRepo       *repository.AuditRepository
}

func NewAppointmentService(
	appointmentRepo *repository.AppointmentRepository,
	patientRepo *repository.PatientRepository,
	clinicRepo *repository.ClinicRepository,
	doctorRepo *repository.DoctorRepository,
	userRepo *repository.UserRepository,
	auditRepo *repository.AuditRepository,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		clinicRepo:      clinicRepo,
		doctorRepo:      doctorRepo,
		userRepo:        userRepo,
		auditRepo:       auditRepo,
	}
}

type CreateAppointmentInput struct {
	PatientID        uint   `json:"patient_id" binding:"required"`
	ClinicID         *uint  `json:"clinic_id" binding:"omitempty,gt=0"`
	DoctorID         *uint  `json:"doctor_id" binding:"omitempty,gt=0"`
	AppointmentDate  string `json:"appointment_date" binding:"required,datetime=2006-01-02"`
	AppointmentTime  string `json:"appointment_time" binding:"required,datetime=15:04"`
	AppointmentType  string `json:"appointment_type" binding:"required,max=255"`
	Reason           string `json:"reason" binding:"required"`
	ConfirmationSent bool   `json:"confirmation_sent"`
	Status           string `json:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	Notes            string `json:"notes"`
}

type UpdateAppointmentInput struct {
	PatientID        *uint   `json:"patient_id" binding:"omitempty,gt=0"`
	ClinicID         *uint   `json:"clinic_id" binding:"omitempty,gt=0"`
	DoctorID         *uint   `json:"doctor_id" binding:"omitempty,gt=0"`
	AppointmentDate  *string `json:"appointment_date" binding:"omitempty,datetime=2006-01-02"`
	AppointmentTime  *string `json:"appointment_time" binding:"omitempty,datetime=15:04"`
	AppointmentType  *string `json:"appointment_type" binding:"omitempty,min=1,max=255"`
	Reason           *string `json:"reason" binding:"omitempty,min=1"`
	ConfirmationSent *bool   `json:"confirmation_sent"`
	Status           *string `json:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	Notes            *string `json:"notes"`
}

type CheckInInput struct {
	ContactNumber    *string `json:"contact_number" binding:"omitempty,max=20"`
	PaymentCollected *bool   `json:"payment_collected"`
	TriageNotes      *string `json:"triage_notes"`
}

// DoctorAppointmentQuery selects a calendar range and optional status
type DoctorAppointmentQuery struct {
	Range  string `form:"range" binding:"omitempty,oneof=day week month"`
	Status string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
}

// DoctorCalendar is the doctor's view of a date range
type DoctorCalendar struct {
	Range        string               `json:"range"`
	From         string               `json:"from"`
	To           string               `json:"to"`
	Status       string               `json:"status,omitempty"`
	Appointments []models.Appointment `json:"appointments"`
}

// ListMyAppointments lists appointments booked by the actor
func (s *AppointmentService) ListMyAppointments(ctx context.Context, actor Actor) ([]models.Appointment, error) {
	return s.appointmentRepo.GetAppointmentsByUser(ctx, actor.ID)
}

func (s *AppointmentService) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	return s.appointmentRepo.GetAppointmentByID(ctx, id)
}

// NextAppointment returns the actor's next open appointment, or nil when none is scheduled
func (s *AppointmentService) NextAppointment(ctx context.Context, actor Actor) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetNextForUser(ctx, actor.ID, today())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return appointment, err
}

// UpcomingForPatient lists the open appointments of a patient from today on
func (s *AppointmentService) UpcomingForPatient(ctx context.Context, patientID uint) ([]models.Appointment, error) {
	ok, err := s.patientRepo.PatientExists(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check patient: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("patient %w", repository.ErrNotFound)
	}
	return s.appointmentRepo.GetUpcomingForPatient(ctx, patientID, today())
}

// ClinicAppointments lists appointments of the clinic the actor administers
func (s *AppointmentService) ClinicAppointments(ctx context.Context, actor Actor) ([]models.Appointment, error) {
	user, err := s.userRepo.FindUserByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if user.ClinicID == nil {
		return nil, ErrNoClinic
	}
	return s.appointmentRepo.GetAppointmentsByClinic(ctx, *user.ClinicID)
}

// DoctorAppointments returns the actor's calendar for the requested range around today
func (s *AppointmentService) DoctorAppointments(ctx context.Context, actor Actor, q DoctorAppointmentQuery) (*DoctorCalendar, error) {
	rng := q.Range
	if rng == "" {
		rng = RangeDay
	}
	from, to := AppointmentRange(rng, time.Now().UTC())

	filter := repository.DoctorAppointmentFilter{UserID: actor.ID, From: from, To: to}
	if q.Status != "" {
		filter.Statuses = []string{q.Status}
	}

	appointments, err := s.appointmentRepo.GetDoctorAppointments(ctx, filter, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments: %w", err)
	}

	return &DoctorCalendar{
		Range:        rng,
		From:         from.Format(dateLayout),
		To:           to.Format(dateLayout),
		Status:       q.Status,
		Appointments: appointments,
	}, nil
}

// CreateAppointment books an appointment on behalf of the actor
func (s *AppointmentService) CreateAppointment(ctx context.Context, actor Actor, in CreateAppointmentInput) (*models.Appointment, error) {
	if err := s.checkReferences(ctx, &in.PatientID, in.ClinicID, in.DoctorID); err != nil {
		return nil, err
	}

	date, err := time.Parse(dateLayout, in.AppointmentDate)
	if err != nil {
		return nil, Invalid("appointment_date", "The appointment date field must be a valid date.")
	}

	status := in.Status
	if status == "" {
		status = models.AppointmentPending
	}

	appointment := &models.Appointment{
		PatientID:        in.PatientID,
		ClinicID:         in.ClinicID,
		DoctorID:         in.DoctorID,
		AppointmentDate:  datatypes.Date(date),
		AppointmentTime:  normalizeClock(in.AppointmentTime),
		AppointmentType:  in.AppointmentType,
		Reason:           in.Reason,
		ConfirmationSent: in.ConfirmationSent,
		Notes:            optional(in.Notes),
		Status:           status,
	}
	if actor.ID != 0 {
		userID := actor.ID
		appointment.UserID = &userID
	}

	if err := s.appointmentRepo.CreateAppointment(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	recordActivity(ctx, s.auditRepo, actor.ID, "appointment_created",
		fmt.Sprintf("Booked appointment on %s at %s", in.AppointmentDate, appointment.AppointmentTime))
	return s.appointmentRepo.GetAppointmentByID(ctx, appointment.ID)
}

// UpdateAppointment applies a partial update
func (s *AppointmentService) UpdateAppointment(ctx context.Context, actor Actor, id uint, in UpdateAppointmentInput) (*models.Appointment, error) {
	if _, err := s.appointmentRepo.GetAppointmentByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, in.PatientID, in.ClinicID, in.DoctorID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.PatientID != nil {
		updates["patient_id"] = *in.PatientID
	}
	if in.ClinicID != nil {
		updates["clinic_id"] = *in.ClinicID
	}
	if in.DoctorID != nil {
		updates["doctor_id"] = *in.DoctorID
	}
	if in.AppointmentDate != nil {
		date, err := time.Parse(dateLayout, *in.AppointmentDate)
		if err != nil {
			return nil, Invalid("appointment_date", "The appointment date field must be a valid date.")
		}
		updates["appointment_date"] = datatypes.Date(date)
	}
	if in.AppointmentTime != nil {
		updates["appointment_time"] = normalizeClock(*in.AppointmentTime)
	}
	if in.AppointmentType != nil {
		updates["appointment_type"] = *in.AppointmentType
	}
	if in.Reason != nil {
		updates["reason"] = *in.Reason
	}
	if in.ConfirmationSent != nil {
		updates["confirmation_sent"] = *in.ConfirmationSent
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.Notes != nil {
		updates["notes"] = optional(*in.Notes)
	}

	if len(updates) > 0 {
		if err := s.appointmentRepo.UpdateAppointment(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("failed to update appointment: %w", err)
		}
		recordActivity(ctx, s.auditRepo, actor.ID, "appointment_updated", fmt.Sprintf("Appointment #%d updated", id))
	}
	return s.appointmentRepo.GetAppointmentByID(ctx, id)
}

func (s *AppointmentService) DeleteAppointment(ctx context.Context, actor Actor, id uint) error {
	if _, err := s.appointmentRepo.GetAppointmentByID(ctx, id); err != nil {
		return err
	}
	if err := s.appointmentRepo.DeleteAppointment(ctx, id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	recordActivity(ctx, s.auditRepo, actor.ID, "appointment_deleted", fmt.Sprintf("Appointment #%d deleted", id))
	return nil
}

// CheckIn records the patient's arrival at reception
func (s *AppointmentService) CheckIn(ctx context.Context, actor Actor, id uint, in CheckInInput) (*models.Appointment, error) {
	if _, err := s.appointmentRepo.GetAppointmentByID(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"check_in_time": time.Now().UTC()}
	if in.ContactNumber != nil {
		updates["contact_number"] = optional(*in.ContactNumber)
	}
	if in.PaymentCollected != nil {
		updates["payment_collected"] = *in.PaymentCollected
	}
	if in.TriageNotes != nil {
		updates["triage_notes"] = optional(*in.TriageNotes)
	}

	if err := s.appointmentRepo.UpdateAppointment(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("failed to check in appointment: %w", err)
	}

	recordActivity(ctx, s.auditRepo, actor.ID, "appointment_checked_in", fmt.Sprintf("Checked in appointment #%d", id))
	return s.appointmentRepo.GetAppointmentByID(ctx, id)
}

func (s *AppointmentService) Confirm(ctx context.Context, actor Actor, id uint) (*models.Appointment, error) {
	return s.setStatus(ctx, actor, id, models.AppointmentConfirmed)
}

func (s *AppointmentService) Cancel(ctx context.Context, actor Actor, id uint) (*models.Appointment, error) {
	return s.setStatus(ctx, actor, id, models.AppointmentCancelled)
}

func (s *AppointmentService) Complete(ctx context.Context, actor Actor, id uint) (*models.Appointment, error) {
	return s.setStatus(ctx, actor, id, models.AppointmentCompleted)
}

// setStatus overwrites the status whatever its current value
func (s *AppointmentService) setStatus(ctx context.Context, actor Actor, id uint, status string) (*models.Appointment, error) {
	if _, err := s.appointmentRepo.GetAppointmentByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.appointmentRepo.UpdateAppointment(ctx, id, map[string]interface{}{"status": status}); err != nil {
		return nil, fmt.Errorf("failed to set appointment status: %w", err)
	}

	recordActivity(ctx, s.auditRepo, actor.ID, "appointment_"+status, fmt.Sprintf("Appointment #%d marked %s", id, status))
	return s.appointmentRepo.GetAppointmentByID(ctx, id)
}

// checkReferences verifies the ids that are set point to existing rows
func (s *AppointmentService) checkReferences(ctx context.Context, patientID, clinicID, doctorID *uint) error {
	verr := &ValidationError{}

	if patientID != nil {
		ok, err := s.patientRepo.PatientExists(ctx, *patientID)
		if err != nil {
			return fmt.Errorf("failed to check patient: %w", err)
		}
		if !ok {
			verr.Add("patient_id", selectedInvalid("patient_id"))
		}
	}
	if clinicID != nil {
		ok, err := s.clinicRepo.ClinicExists(ctx, *clinicID)
		if err != nil {
			return fmt.Errorf("failed to check clinic: %w", err)
		}
		if !ok {
			verr.Add("clinic_id", selectedInvalid("clinic_id"))
		}
	}
	if doctorID != nil {
		ok, err := s.doctorRepo.DoctorExists(ctx, *doctorID)
		if err != nil {
			return fmt.Errorf("failed to check doctor: %w", err)
		}
		if !ok {
			verr.Add("doctor_id", selectedInvalid("doctor_id"))
		}
	}
	return verr.Err()
}
