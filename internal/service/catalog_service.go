package service

import (
	"context"
	"fmt"
	"strings"

	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/repository"
)

// CatalogService manages the reference lists: clinic services and the medication formulary
type CatalogService struct {
	serviceRepo    *repository.ServiceRepository
	medicationRepo *repository.MedicationRepository
	auditRepo      *repository.AuditRepository
}

func NewCatalogService(serviceRepo *repository.ServiceRepository, medicationRepo *repository.MedicationRepository, auditRepo *repository.AuditRepository) *CatalogService {
	return &CatalogService{
		serviceRepo:    serviceRepo,
		medicationRepo: medicationRepo,
		auditRepo:      auditRepo,
	}
}

type ServiceInput struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

type MedicationInput struct {
	Name        string `json:"name" binding:"required,max=255"`
	GenericName string `json:"generic_name" binding:"max=255"`
	Form        string `json:"form" binding:"max=100"`
	Strength    string `json:"strength" binding:"max=100"`
	Description string `json:"description"`
}

func (s *CatalogService) ListServices(ctx context.Context) ([]models.Service, error) {
	return s.serviceRepo.GetAllServices(ctx)
}

func (s *CatalogService) CreateService(ctx context.Context, actor Actor, in ServiceInput) (*models.Service, error) {
	name := strings.TrimSpace(in.Name)
	taken, err := s.serviceRepo.ServiceNameExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check service name: %w", err)
	}
	if taken {
		return nil, Invalid("name", alreadyTaken("name"))
	}

	service := &models.Service{Name: name, Description: in.Description}
	if err := s.serviceRepo.CreateService(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	recordActivity(ctx, s.auditRepo, actor.ID, "service_created", fmt.Sprintf("Service %s created", service.Name))
	return service, nil
}

func (s *CatalogService) ListMedications(ctx context.Context) ([]models.Medication, error) {
	return s.medicationRepo.GetAllMedications(ctx)
}

func (s *CatalogService) CreateMedication(ctx context.Context, actor Actor, in MedicationInput) (*models.Medication, error) {
	name := strings.TrimSpace(in.Name)
	taken, err := s.medicationRepo.MedicationNameExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check medication name: %w", err)
	}
	if taken {
		return nil, Invalid("name", alreadyTaken("name"))
	}

	medication := &models.Medication{
		Name:        name,
		GenericName: in.GenericName,
		Form:        in.Form,
		Strength:    in.Strength,
		Description: in.Description,
	}
	if err := s.medicationRepo.CreateMedication(ctx, medication); err != nil {
		return nil, fmt.Errorf("failed to create medication: %w", err)
	}

	recordActivity(ctx, s.auditRepo, actor.ID, "medication_created", fmt.Sprintf("Medication %s added", medication.Name))
	return medication, nil
}
