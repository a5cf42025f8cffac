package repository

import (
	"context"
	"time"

	"clinic-management-backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OpenStatuses are the statuses of appointments that still lie ahead
var OpenStatuses = []string{models.AppointmentPending, models.AppointmentConfirmed}

// DoctorAppointmentFilter selects the appointments shown on a doctor's calendar
type DoctorAppointmentFilter struct {
	UserID   uint
	From     time.Time
	To       time.Time
	Statuses []string
}

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// GetAppointmentsByUser lists appointments booked by a user
func (r *AppointmentRepository) GetAppointmentsByUser(ctx context.Context, userID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Patient").
		Order("appointment_date ASC, appointment_time ASC").
		Find(&appointments).Error
	return appointments, err
}

// GetAppointmentsByClinic lists every appointment of a clinic
func (r *AppointmentRepository) GetAppointmentsByClinic(ctx context.Context, clinicID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Where("clinic_id = ?", clinicID).
		Preload("Patient").
		Preload("Doctor").
		Order("appointment_date ASC, appointment_time ASC").
		Find(&appointments).Error
	return appointments, err
}

// GetAppointmentByID retrieves an appointment with patient, clinic and doctor
func (r *AppointmentRepository) GetAppointmentByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Clinic").
		Preload("Doctor").
		First(&appointment, id).Error
	if err != nil {
		return nil, translate(err, "appointment")
	}
	return &appointment, nil
}

// GetNextForUser returns the earliest open appointment on or after day booked by the user
func (r *AppointmentRepository) GetNextForUser(ctx context.Context, userID uint, day time.Time) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND appointment_date >= ? AND status IN ?", userID, datatypes.Date(day), OpenStatuses).
		Preload("Patient").
		Preload("Clinic").
		Order("appointment_date ASC, appointment_time ASC").
		First(&appointment).Error
	if err != nil {
		return nil, translate(err, "appointment")
	}
	return &appointment, nil
}

// GetUpcomingForPatient lists open appointments of a patient from day onwards
func (r *AppointmentRepository) GetUpcomingForPatient(ctx context.Context, patientID uint, day time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND appointment_date >= ? AND status IN ?", patientID, datatypes.Date(day), OpenStatuses).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&appointments).Error
	return appointments, err
}

// doctorScope restricts to appointments of patients the doctor registered or that the doctor booked
func doctorScope(filter DoctorAppointmentFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Joins("LEFT JOIN patients ON patients.id = appointments.patient_id").
			Where("(patients.doctor_id = ? OR appointments.user_id = ?)", filter.UserID, filter.UserID)
		if !filter.From.IsZero() {
			db = db.Where("appointments.appointment_date >= ?", datatypes.Date(filter.From))
		}
		if !filter.To.IsZero() {
			db = db.Where("appointments.appointment_date <= ?", datatypes.Date(filter.To))
		}
		if len(filter.Statuses) > 0 {
			db = db.Where("appointments.status IN ?", filter.Statuses)
		}
		return db
	}
}

// GetDoctorAppointments lists the doctor's calendar in chronological order
func (r *AppointmentRepository) GetDoctorAppointments(ctx context.Context, filter DoctorAppointmentFilter, opts ListOptions) ([]models.Appointment, error) {
	var appointments []models.Appointment
	q := r.db.WithContext(ctx).Model(&models.Appointment{}).Scopes(doctorScope(filter))
	err := opts.apply(q).
		Preload("Patient").
		Order("appointments.appointment_date ASC, appointments.appointment_time ASC").
		Find(&appointments).Error
	return appointments, err
}

// CountDoctorAppointments counts what GetDoctorAppointments would return
func (r *AppointmentRepository) CountDoctorAppointments(ctx context.Context, filter DoctorAppointmentFilter) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Scopes(doctorScope(filter)).
		Count(&count).Error
	return count, err
}

// CountByStatus groups a clinic's appointments by status
func (r *AppointmentRepository) CountByStatus(ctx context.Context, clinicID uint) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Select("status, COUNT(*) AS total").
		Where("clinic_id = ?", clinicID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// GetDueReminders lists open appointments on day whose confirmation was not sent yet
func (r *AppointmentRepository) GetDueReminders(ctx context.Context, day time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Where("appointment_date = ? AND confirmation_sent = ? AND status IN ?", datatypes.Date(day), false, OpenStatuses).
		Preload("Patient").
		Preload("Clinic").
		Order("appointment_time ASC").
		Find(&appointments).Error
	return appointments, err
}

// MarkConfirmationSent flags appointments whose reminder went out
func (r *AppointmentRepository) MarkConfirmationSent(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id IN ?", ids).
		Update("confirmation_sent", true).Error
}

func (r *AppointmentRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *AppointmentRepository) UpdateAppointment(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Appointment{ID: id}).Updates(updates).Error
}

func (r *AppointmentRepository) DeleteAppointment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, id).Error
}
