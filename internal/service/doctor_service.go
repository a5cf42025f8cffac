package service

import (
	"context"
	"fmt"

	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/repository"
)

type DoctorService struct {
	doctorRepo *repository.DoctorRepository
	clinicRepo *repository.ClinicRepository
	auditRepo  *repository.AuditRepository
}

func NewDoctorService(doctorRepo *repository.DoctorRepository, clinicRepo *repository.ClinicRepository, auditRepo *repository.AuditRepository) *DoctorService {
	return &DoctorService{
		doctorRepo: doctorRepo,
		clinicRepo: clinicRepo,
		auditRepo:  auditRepo,
	}
}

type DoctorQuery struct {
	ClinicID       uint   `form:"clinic_id"`
	Specialization string `form:"specialization"`
}

type CreateDoctorInput struct {
	ClinicID       uint   `json:"clinic_id" binding:"required"`
	Name           string `json:"name" binding:"required,max=255"`
	Specialization string `json:"specialization" binding:"required,max=255"`
	Bio            string `json:"bio"`
	ContactPhone   string `json:"contact_phone" binding:"max=20"`
	Email          string `json:"email" binding:"omitempty,email,max=255"`
}

type UpdateDoctorInput struct {
	ClinicID       *uint   `json:"clinic_id" binding:"omitempty,gt=0"`
	Name           *string `json:"name" binding:"omitempty,min=1,max=255"`
	Specialization *string `json:"specialization" binding:"omitempty,min=1,max=255"`
	Bio            *string `json:"bio"`
	ContactPhone   *string `json:"contact_phone" binding:"omitempty,max=20"`
	Email          *string `json:"email" binding:"omitempty,email,max=255"`
}

func (s *DoctorService) ListDoctors(ctx context.Context, q DoctorQuery) ([]models.Doctor, error) {
	return s.doctorRepo.GetDoctors(ctx, repository.DoctorFilter{
		ClinicID:       q.ClinicID,
		Specialization: q.Specialization,
	})
}

func (s *DoctorService) GetDoctor(ctx context.Context, id uint) (*models.Doctor, error) {
	return s.doctorRepo.GetDoctorByID(ctx, id)
}

func (s *DoctorService) CreateDoctor(ctx context.Context, actor Actor, in CreateDoctorInput) (*models.Doctor, error) {
	if err := s.checkClinic(ctx, in.ClinicID); err != nil {
		return nil, err
	}

	doctor := &models.Doctor{
		ClinicID:       in.ClinicID,
		Name:           in.Name,
		Specialization: in.Specialization,
		Bio:            in.Bio,
		ContactPhone:   in.ContactPhone,
		Email:          in.Email,
		IsActive:       true,
	}
	if err := s.doctorRepo.CreateDoctor(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	recordActivity(ctx, s.auditRepo, actor.ID, "doctor_created", fmt.Sprintf("Doctor %s added", doctor.Name))
	return s.doctorRepo.GetDoctorByID(ctx, doctor.ID)
}

func (s *DoctorService) UpdateDoctor(ctx context.Context, actor Actor, id uint, in UpdateDoctorInput) (*models.Doctor, error) {
	if _, err := s.doctorRepo.GetDoctorByID(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.ClinicID != nil {
		if err := s.checkClinic(ctx, *in.ClinicID); err != nil {
			return nil, err
		}
		updates["clinic_id"] = *in.ClinicID
	}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Specialization != nil {
		updates["specialization"] = *in.Specialization
	}
	if in.Bio != nil {
		updates["bio"] = *in.Bio
	}
	if in.ContactPhone != nil {
		updates["contact_phone"] = *in.ContactPhone
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}

	if len(updates) > 0 {
		if err := s.doctorRepo.UpdateDoctor(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("failed to update doctor: %w", err)
		}
		recordActivity(ctx, s.auditRepo, actor.ID, "doctor_updated", fmt.Sprintf("Doctor #%d updated", id))
	}
	return s.doctorRepo.GetDoctorByID(ctx, id)
}

func (s *DoctorService) DeleteDoctor(ctx context.Context, actor Actor, id uint) error {
	if _, err := s.doctorRepo.GetDoctorByID(ctx, id); err != nil {
		return err
	}
	if err := s.doctorRepo.SoftDeleteDoctor(ctx, id); err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	recordActivity(ctx, s.auditRepo, actor.ID, "doctor_deleted", fmt.Sprintf("Doctor #%d removed", id))
	return nil
}

func (s *DoctorService) checkClinic(ctx context.Context, clinicID uint) error {
	ok, err := s.clinicRepo.ClinicExists(ctx, clinicID)
	if err != nil {
		return fmt.Errorf("failed to check clinic: %w", err)
	}
	if !ok {
		return Invalid("clinic_id", selectedInvalid("clinic_id"))
	}
	return nil
}
