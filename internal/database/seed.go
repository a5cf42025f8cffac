package database

import (
	"context"
	"fmt"

	"clinic-management-backend/internal/config"
	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/repository"
	"clinic-management-backend/pkg/utils"

	"gorm.io/gorm"
)

var defaultServices = []models.Service{
	{Name: "General Consultation", Description: "Walk-in and scheduled consultations with a general practitioner"},
	{Name: "Pediatrics", Description: "Care for infants, children and adolescents"},
	{Name: "Dental Care", Description: "Check-ups, cleaning and minor dental procedures"},
	{Name: "Laboratory Tests", Description: "Blood, urine and other diagnostic tests"},
	{Name: "Vaccination", Description: "Routine and travel immunisation"},
	{Name: "Maternity Care", Description: "Antenatal and postnatal clinics"},
}

var defaultMedications = []models.Medication{
	{Name: "Paracetamol 500mg", GenericName: "Paracetamol", Form: "Tablet", Strength: "500mg"},
	{Name: "Amoxicillin 250mg", GenericName: "Amoxicillin", Form: "Capsule", Strength: "250mg"},
	{Name: "Metformin 500mg", GenericName: "Metformin", Form: "Tablet", Strength: "500mg"},
	{Name: "Amlodipine 5mg", GenericName: "Amlodipine", Form: "Tablet", Strength: "5mg"},
	{Name: "Salbutamol Inhaler", GenericName: "Salbutamol", Form: "Inhaler", Strength: "100mcg/dose"},
	{Name: "Cetirizine 10mg", GenericName: "Cetirizine", Form: "Tablet", Strength: "10mg"},
}

// SeedResult counts the seeded rows
type SeedResult struct {
	Services     int
	Medications  int
	AdminCreated bool
}

// Seed inserts the service catalog, the medication formulary and the admin account.
// Existing rows are left untouched so it can run on every deploy.
func Seed(ctx context.Context, db *gorm.DB, cfg config.SeedConfig) (*SeedResult, error) {
	result := &SeedResult{}
	serviceRepo := repository.NewServiceRepo(db)
	medicationRepo := repository.NewMedicationRepo(db)
	userRepo := repository.NewUserRepo(db)

	for _, s := range defaultServices {
		service := s
		if err := serviceRepo.FirstOrCreateService(ctx, &service); err != nil {
			return nil, fmt.Errorf("failed to seed service %s: %w", s.Name, err)
		}
		result.Services++
	}

	for _, m := range defaultMedications {
		medication := m
		if err := medicationRepo.FirstOrCreateMedication(ctx, &medication); err != nil {
			return nil, fmt.Errorf("failed to seed medication %s: %w", m.Name, err)
		}
		result.Medications++
	}

	exists, err := userRepo.EmailExists(ctx, cfg.AdminEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to check admin account: %w", err)
	}
	if !exists {
		hash, err := utils.HashPassword(cfg.AdminPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
		admin := &models.User{
			Name:         cfg.AdminName,
			Email:        cfg.AdminEmail,
			PasswordHash: hash,
			Role:         models.RoleAdmin,
		}
		if err := userRepo.CreateUser(ctx, admin); err != nil {
			return nil, fmt.Errorf("failed to create admin account: %w", err)
		}
		result.AdminCreated = true
	}

	return result, nil
}
