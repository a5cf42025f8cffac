package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/repository"
)

const (
	defaultSearchRadiusKm = 10.0
	defaultNearbyLimit    = 5
)

type ClinicService struct {
	clinicRepo   *repository.ClinicRepository
	serviceRepo  *repository.ServiceRepository
	doctorRepo   *repository.DoctorRepository
	scheduleRepo *repository.ScheduleRepository
	reviewRepo   *repository.ReviewRepository
	userRepo     *repository.UserRepository
	auditRepo    *repository.AuditRepository
}

func NewClinicService(
	clinicRepo *repository.ClinicRepository,
	serviceRepo *repository.ServiceRepository,
	doctorRepo *repository.DoctorRepository,
	scheduleRepo *repository.ScheduleRepository,
	reviewRepo *repository.ReviewRepository,
	userRepo *repository.UserRepository,
	auditRepo *repository.AuditRepository,
) *ClinicService {
	return &ClinicService{
		clinicRepo:   clinicRepo,
		serviceRepo:  serviceRepo,
		doctorRepo:   doctorRepo,
		scheduleRepo: scheduleRepo,
		reviewRepo:   reviewRepo,
		userRepo:     userRepo,
		auditRepo:    auditRepo,
	}
}

// ClinicQuery holds the directory query string
type ClinicQuery struct {
	Q         string   `form:"q"`
	ServiceID uint     `form:"service_id"`
	Latitude  *float64 `form:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `form:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Radius    float64  `form:"radius" binding:"omitempty,gt=0"`
}

// NearbyQuery holds the nearest-clinic query string
type NearbyQuery struct {
	Latitude  *float64 `form:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `form:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Limit     int      `form:"limit" binding:"omitempty,gte=1,lte=50"`
}

type CreateClinicInput struct {
	Name         string   `json:"name" binding:"required,max=255"`
	Address      string   `json:"address" binding:"required,max=255"`
	Latitude     *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	ContactPhone string   `json:"contact_phone" binding:"required,max=20"`
	Description  string   `json:"description"`
	ServiceIDs   []uint   `json:"service_ids"`
}

type UpdateClinicInput struct {
	Name         *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Address      *string  `json:"address" binding:"omitempty,min=1,max=255"`
	Latitude     *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	ContactPhone *string  `json:"contact_phone" binding:"omitempty,min=1,max=20"`
	Description  *string  `json:"description"`
	ServiceIDs   []uint   `json:"service_ids"`
}

// ListClinics returns the directory. With coordinates, only clinics inside the
// radius are returned, nearest first, each carrying its distance in km.
func (s *ClinicService) ListClinics(ctx context.Context, q ClinicQuery) ([]models.ClinicWithDistance, error) {
	filter := repository.ClinicFilter{Query: q.Q, ServiceID: q.ServiceID}

	if q.Latitude == nil || q.Longitude == nil {
		clinics, err := s.clinicRepo.GetClinics(ctx, filter, repository.ListOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to list clinics: %w", err)
		}
		return withoutDistance(clinics), nil
	}

	radius := q.Radius
	if radius <= 0 {
		radius = defaultSearchRadiusKm
	}
	box := BoundingBox(*q.Latitude, *q.Longitude, radius)
	filter.Box = &box

	clinics, err := s.clinicRepo.GetClinics(ctx, filter, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}

	result := byDistance(clinics, *q.Latitude, *q.Longitude)
	inside := result[:0]
	for _, c := range result {
		if *c.Distance <= radius {
			inside = append(inside, c)
		}
	}
	return inside, nil
}

// NearbyClinics returns the closest clinics, or the first ones by name without coordinates
func (s *ClinicService) NearbyClinics(ctx context.Context, q NearbyQuery) ([]models.ClinicWithDistance, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultNearbyLimit
	}

	if q.Latitude == nil || q.Longitude == nil {
		clinics, err := s.clinicRepo.GetClinics(ctx, repository.ClinicFilter{}, repository.ListOptions{Limit: limit})
		if err != nil {
			return nil, fmt.Errorf("failed to list clinics: %w", err)
		}
		return withoutDistance(clinics), nil
	}

	clinics, err := s.clinicRepo.GetClinics(ctx, repository.ClinicFilter{}, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}

	result := byDistance(clinics, *q.Latitude, *q.Longitude)
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *ClinicService) GetClinic(ctx context.Context, id uint) (*models.Clinic, error) {
	return s.clinicRepo.GetClinicByID(ctx, id)
}

// ClinicDoctors lists the active doctors of a clinic
func (s *ClinicService) ClinicDoctors(ctx context.Context, id uint) ([]models.Doctor, error) {
	if err := s.ensureClinic(ctx, id); err != nil {
		return nil, err
	}
	return s.doctorRepo.GetDoctors(ctx, repository.DoctorFilter{ClinicID: id})
}

// ClinicSchedule lists the weekly schedule of a clinic with doctors
func (s *ClinicService) ClinicSchedule(ctx context.Context, id uint) ([]models.Schedule, error) {
	if err := s.ensureClinic(ctx, id); err != nil {
		return nil, err
	}
	return s.scheduleRepo.GetSchedules(ctx, repository.ScheduleFilter{ClinicID: id})
}

func (s *ClinicService) ClinicReviews(ctx context.Context, id uint) ([]models.Review, error) {
	if err := s.ensureClinic(ctx, id); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetReviews(ctx, id)
}

// CreateClinic stores a clinic. A clinic admin without a clinic becomes its administrator.
func (s *ClinicService) CreateClinic(ctx context.Context, actor Actor, in CreateClinicInput) (*models.Clinic, error) {
	services, err := s.resolveServices(ctx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	clinic := &models.Clinic{
		Name:         in.Name,
		Address:      in.Address,
		Latitude:     *in.Latitude,
		Longitude:    *in.Longitude,
		ContactPhone: in.ContactPhone,
		Description:  in.Description,
		IsActive:     true,
		Services:     services,
	}
	var ownerID *uint
	if actor.Is(models.RoleClinicAdmin) {
		id := actor.ID
		ownerID = &id
	}
	if err := s.clinicRepo.CreateClinic(ctx, clinic, ownerID); err != nil {
		return nil, fmt.Errorf("failed to create clinic: %w", err)
	}

	recordActivity(ctx, s.auditRepo, actor.ID, "clinic_created", fmt.Sprintf("Clinic %s created", clinic.Name))
	return s.clinicRepo.GetClinicByID(ctx, clinic.ID)
}

// UpdateClinic applies a partial update. Clinic admins may only edit their own clinic.
func (s *ClinicService) UpdateClinic(ctx context.Context, actor Actor, id uint, in UpdateClinicInput) (*models.Clinic, error) {
	if err := s.ensureClinic(ctx, id); err != nil {
		return nil, err
	}
	if err := s.authorizeClinic(ctx, actor, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.Latitude != nil {
		updates["latitude"] = *in.Latitude
	}
	if in.Longitude != nil {
		updates["longitude"] = *in.Longitude
	}
	if in.ContactPhone != nil {
		updates["contact_phone"] = *in.ContactPhone
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}

	var services []models.Service
	if in.ServiceIDs != nil {
		resolved, err := s.resolveServices(ctx, in.ServiceIDs)
		if err != nil {
			return nil, err
		}
		services = resolved
		if services == nil {
			services = []models.Service{}
		}
	}

	if err := s.clinicRepo.UpdateClinic(ctx, id, updates, services); err != nil {
		return nil, fmt.Errorf("failed to update clinic: %w", err)
	}

	recordActivity(ctx, s.auditRepo, actor.ID, "clinic_updated", fmt.Sprintf("Clinic #%d updated", id))
	return s.clinicRepo.GetClinicByID(ctx, id)
}

// DeleteClinic hides the clinic from the directory
func (s *ClinicService) DeleteClinic(ctx context.Context, actor Actor, id uint) error {
	if err := s.ensureClinic(ctx, id); err != nil {
		return err
	}
	if err := s.authorizeClinic(ctx, actor, id); err != nil {
		return err
	}

	if err := s.clinicRepo.SoftDeleteClinic(ctx, id); err != nil {
		return fmt.Errorf("failed to delete clinic: %w", err)
	}

	recordActivity(ctx, s.auditRepo, actor.ID, "clinic_deleted", fmt.Sprintf("Clinic #%d deleted", id))
	return nil
}

// AdministeredClinic returns the clinic linked to a clinic admin account
func (s *ClinicService) AdministeredClinic(ctx context.Context, userID uint) (*models.Clinic, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ClinicID == nil {
		return nil, ErrNoClinic
	}

	clinic, err := s.clinicRepo.GetClinicByID(ctx, *user.ClinicID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoClinic
	}
	return clinic, err
}

func (s *ClinicService) ensureClinic(ctx context.Context, id uint) error {
	ok, err := s.clinicRepo.ClinicExists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check clinic: %w", err)
	}
	if !ok {
		return fmt.Errorf("clinic %w", repository.ErrNotFound)
	}
	return nil
}

func (s *ClinicService) authorizeClinic(ctx context.Context, actor Actor, id uint) error {
	if !actor.Is(models.RoleClinicAdmin) {
		return nil
	}
	user, err := s.userRepo.FindUserByID(ctx, actor.ID)
	if err != nil {
		return fmt.Errorf("failed to load clinic admin: %w", err)
	}
	if user.ClinicID == nil || *user.ClinicID != id {
		return ErrForbidden
	}
	return nil
}

// resolveServices loads the services for ids and fails when any id is unknown
func (s *ClinicService) resolveServices(ctx context.Context, ids []uint) ([]models.Service, error) {
	unique := uniqueIDs(ids)
	if len(unique) == 0 {
		return nil, nil
	}

	services, err := s.serviceRepo.GetServicesByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}
	if len(services) != len(unique) {
		return nil, Invalid("service_ids", selectedInvalid("service_ids"))
	}
	return services, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func withoutDistance(clinics []models.Clinic) []models.ClinicWithDistance {
	out := make([]models.ClinicWithDistance, len(clinics))
	for i, c := range clinics {
		out[i] = models.ClinicWithDistance{Clinic: c}
	}
	return out
}

func byDistance(clinics []models.Clinic, lat, lng float64) []models.ClinicWithDistance {
	out := make([]models.ClinicWithDistance, len(clinics))
	for i, c := range clinics {
		d := Haversine(lat, lng, c.Latitude, c.Longitude)
		out[i] = models.ClinicWithDistance{Clinic: c, Distance: &d}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].Distance < *out[j].Distance
	})
	return out
}
