package repository

import (
	"context"
	"strings"

	"clinic-management-backend/internal/models"

	"gorm.io/gorm"
)

// DoctorFilter narrows the doctor directory
type DoctorFilter struct {
	ClinicID       uint
	Specialization string
}

type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepo(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

// GetDoctors retrieves active doctors ordered by name
func (r *DoctorRepository) GetDoctors(ctx context.Context, filter DoctorFilter) ([]models.Doctor, error) {
	var doctors []models.Doctor
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if filter.ClinicID != 0 {
		q = q.Where("clinic_id = ?", filter.ClinicID)
	}
	if filter.Specialization != "" {
		q = q.Where("LOWER(specialization) LIKE ?", "%"+strings.ToLower(filter.Specialization)+"%")
	}
	err := q.Order("name ASC").Find(&doctors).Error
	return doctors, err
}

// GetDoctorByID retrieves an active doctor with the clinic preloaded
func (r *DoctorRepository) GetDoctorByID(ctx context.Context, id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		Preload("Clinic").
		First(&doctor).Error
	if err != nil {
		return nil, translate(err, "doctor")
	}
	return &doctor, nil
}

func (r *DoctorRepository) DoctorExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Doctor{}).
		Where("id = ? AND is_active = ?", id, true).
		Count(&count).Error
	return count > 0, err
}

// CountByClinic counts active doctors of a clinic
func (r *DoctorRepository) CountByClinic(ctx context.Context, clinicID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Doctor{}).
		Where("clinic_id = ? AND is_active = ?", clinicID, true).
		Count(&count).Error
	return count, err
}

func (r *DoctorRepository) CreateDoctor(ctx context.Context, doctor *models.Doctor) error {
	return r.db.WithContext(ctx).Create(doctor).Error
}

func (r *DoctorRepository) UpdateDoctor(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Doctor{ID: id}).Updates(updates).Error
}

// SoftDeleteDoctor soft deletes a doctor by setting is_active to false
func (r *DoctorRepository) SoftDeleteDoctor(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Doctor{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
