package service

import (
	"clinic-management-backend/internal/repository"

	"gorm.io/gorm"
)

// Services bundles every service built on one database handle
type Services struct {
	Auth          *AuthService
	Clinics       *ClinicService
	Catalog       *CatalogService
	Doctors       *DoctorService
	Schedules     *ScheduleService
	Reviews       *ReviewService
	Patients      *PatientService
	Appointments  *AppointmentService
	Prescriptions *PrescriptionService
	Dashboard     *DashboardService
	Reminders     *ReminderService
}

// NewServices wires repositories and services
func NewServices(db *gorm.DB, limiter LoginLimiter, notifier Notifier) *Services {
	userRepo := repository.NewUserRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	clinicRepo := repository.NewClinicRepo(db)
	serviceRepo := repository.NewServiceRepo(db)
	doctorRepo := repository.NewDoctorRepo(db)
	scheduleRepo := repository.NewScheduleRepo(db)
	reviewRepo := repository.NewReviewRepo(db)
	patientRepo := repository.NewPatientRepo(db)
	appointmentRepo := repository.NewAppointmentRepo(db)
	medicationRepo := repository.NewMedicationRepo(db)
	prescriptionRepo := repository.NewPrescriptionRepo(db)

	clinics := NewClinicService(clinicRepo, serviceRepo, doctorRepo, scheduleRepo, reviewRepo, userRepo, auditRepo)
	appointments := NewAppointmentService(appointmentRepo, patientRepo, clinicRepo, doctorRepo, userRepo, auditRepo)

	return &Services{
		Auth:          NewAuthService(userRepo, clinicRepo, auditRepo, limiter),
		Clinics:       clinics,
		Catalog:       NewCatalogService(serviceRepo, medicationRepo, auditRepo),
		Doctors:       NewDoctorService(doctorRepo, clinicRepo, auditRepo),
		Schedules:     NewScheduleService(scheduleRepo, doctorRepo, clinicRepo, auditRepo),
		Reviews:       NewReviewService(reviewRepo, clinicRepo, auditRepo),
		Patients:      NewPatientService(patientRepo, auditRepo),
		Appointments:  appointments,
		Prescriptions: NewPrescriptionService(prescriptionRepo, medicationRepo, patientRepo, userRepo, auditRepo),
		Dashboard:     NewDashboardService(appointmentRepo, patientRepo, doctorRepo, reviewRepo, auditRepo, clinics, appointments),
		Reminders:     NewReminderService(appointmentRepo, notifier),
	}
}
