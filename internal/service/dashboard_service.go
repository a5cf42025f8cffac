package service

import (
	"context"
	"fmt"

	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/repository"
)

const (
	upcomingOnDashboard = 5
	recentActivityLimit = 10
)

type DashboardService struct {
	appointmentRepo *repository.AppointmentRepository
	patientRepo     *repository.PatientRepository
	doctorRepo      *repository.DoctorRepository
	reviewRepo      *repository.ReviewRepository
	auditRepo       *repository.AuditRepository
	clinicService   *ClinicService
	appointments    *AppointmentService
}

func NewDashboardService(
	appointmentRepo *repository.AppointmentRepository,
	patientRepo *repository.PatientRepository,
	doctorRepo *repository.DoctorRepository,
	reviewRepo *repository.ReviewRepository,
	auditRepo *repository.AuditRepository,
	clinicService *ClinicService,
	appointments *AppointmentService,
) *DashboardService {
	return &DashboardService{
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		reviewRepo:      reviewRepo,
		auditRepo:       auditRepo,
		clinicService:   clinicService,
		appointments:    appointments,
	}
}

type DoctorDashboard struct {
	TodayAppointments    int64                `json:"todayAppointments"`
	PendingAppointments  int64                `json:"pendingAppointments"`
	MyPatients           int64                `json:"myPatients"`
	TotalPatients        int64                `json:"totalPatients"`
	UpcomingAppointments []models.Appointment `json:"upcomingAppointments"`
}

type ClinicDashboard struct {
	Clinic            *models.Clinic   `json:"clinic"`
	DoctorCount       int64            `json:"doctorCount"`
	AppointmentCounts map[string]int64 `json:"appointmentCounts"`
	ReviewCount       int64            `json:"reviewCount"`
	AverageRating     float64          `json:"averageRating"`
}

type PatientDashboard struct {
	NextAppointment *models.Appointment         `json:"nextAppointment"`
	RecentActivity  []Activity                  `json:"recentActivity"`
	NearbyClinics   []models.ClinicWithDistance `json:"nearbyClinics"`
}

// Activity is one line of the recent activity feed
type Activity struct {
	Message string `json:"message"`
	Date    string `json:"date"`
}

// DoctorSummary collects the counters shown to doctors and reception
func (s *DashboardService) DoctorSummary(ctx context.Context, actor Actor) (*DoctorDashboard, error) {
	day := today()

	todayCount, err := s.appointmentRepo.CountDoctorAppointments(ctx, repository.DoctorAppointmentFilter{
		UserID: actor.ID, From: day, To: day,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count today's appointments: %w", err)
	}

	pendingCount, err := s.appointmentRepo.CountDoctorAppointments(ctx, repository.DoctorAppointmentFilter{
		UserID: actor.ID, From: day, Statuses: []string{models.AppointmentPending},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count pending appointments: %w", err)
	}

	mine, err := s.patientRepo.CountPatients(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}
	total, err := s.patientRepo.CountPatients(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}

	upcoming, err := s.appointmentRepo.GetDoctorAppointments(ctx, repository.DoctorAppointmentFilter{
		UserID: actor.ID, From: day, Statuses: repository.OpenStatuses,
	}, repository.ListOptions{Limit: upcomingOnDashboard})
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming appointments: %w", err)
	}

	return &DoctorDashboard{
		TodayAppointments:    todayCount,
		PendingAppointments:  pendingCount,
		MyPatients:           mine,
		TotalPatients:        total,
		UpcomingAppointments: upcoming,
	}, nil
}

// ClinicSummary collects the counters of the clinic the actor administers
func (s *DashboardService) ClinicSummary(ctx context.Context, actor Actor) (*ClinicDashboard, error) {
	clinic, err := s.clinicService.AdministeredClinic(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	doctors, err := s.doctorRepo.CountByClinic(ctx, clinic.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count doctors: %w", err)
	}

	counts, err := s.appointmentRepo.CountByStatus(ctx, clinic.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}
	for _, status := range []string{models.AppointmentPending, models.AppointmentConfirmed, models.AppointmentCancelled, models.AppointmentCompleted} {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
	}

	rating, err := s.reviewRepo.SummarizeClinic(ctx, clinic.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize reviews: %w", err)
	}

	return &ClinicDashboard{
		Clinic:            clinic,
		DoctorCount:       doctors,
		AppointmentCounts: counts,
		ReviewCount:       rating.Count,
		AverageRating:     rating.Average,
	}, nil
}

// PatientSummary shows the next visit, recent activity and, with coordinates, nearby clinics
func (s *DashboardService) PatientSummary(ctx context.Context, actor Actor, q NearbyQuery) (*PatientDashboard, error) {
	next, err := s.appointments.NextAppointment(ctx, actor)
	if err != nil {
		return nil, err
	}

	activity, err := s.RecentActivity(ctx, actor)
	if err != nil {
		return nil, err
	}

	nearby := []models.ClinicWithDistance{}
	if q.Latitude != nil && q.Longitude != nil {
		nearby, err = s.clinicService.NearbyClinics(ctx, q)
		if err != nil {
			return nil, err
		}
	}

	return &PatientDashboard{
		NextAppointment: next,
		RecentActivity:  activity,
		NearbyClinics:   nearby,
	}, nil
}

// RecentActivity returns the actor's latest audit entries
func (s *DashboardService) RecentActivity(ctx context.Context, actor Actor) ([]Activity, error) {
	logs, err := s.auditRepo.GetRecentByUser(ctx, actor.ID, recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent activity: %w", err)
	}

	items := make([]Activity, 0, len(logs))
	for _, l := range logs {
		message := l.Details
		if message == "" {
			message = l.Action
		}
		items = append(items, Activity{Message: message, Date: l.CreatedAt.Format("2006-01-02 15:04")})
	}
	return items, nil
}
