package repository

import (
	"context"
	"strings"

	"clinic-management-backend/internal/models"

	"gorm.io/gorm"
)

// BoundingBox is a coarse lat/lng window used to pre-filter location queries
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
	// WrapsLng is set when the window crosses the antimeridian; longitude is then not filtered.
	WrapsLng bool
}

// ClinicFilter narrows the clinic directory
type ClinicFilter struct {
	Query     string
	ServiceID uint
	Box       *BoundingBox
}

type ClinicRepository struct {
	db *gorm.DB
}

func NewClinicRepo(db *gorm.DB) *ClinicRepository {
	return &ClinicRepository{db: db}
}

// GetClinics retrieves active clinics matching the filter, ordered by name
func (r *ClinicRepository) GetClinics(ctx context.Context, filter ClinicFilter, opts ListOptions) ([]models.Clinic, error) {
	var clinics []models.Clinic
	q := r.db.WithContext(ctx).Model(&models.Clinic{}).Where("clinics.is_active = ?", true)

	if filter.Query != "" {
		like := "%" + strings.ToLower(filter.Query) + "%"
		q = q.Where("LOWER(clinics.name) LIKE ? OR LOWER(clinics.address) LIKE ?", like, like)
	}
	if filter.ServiceID != 0 {
		q = q.Joins("INNER JOIN clinic_services ON clinic_services.clinic_id = clinics.id").
			Where("clinic_services.service_id = ?", filter.ServiceID)
	}
	if b := filter.Box; b != nil {
		q = q.Where("clinics.latitude BETWEEN ? AND ?", b.MinLat, b.MaxLat)
		if !b.WrapsLng {
			q = q.Where("clinics.longitude BETWEEN ? AND ?", b.MinLng, b.MaxLng)
		}
	}

	err := opts.apply(q).
		Preload("Services").
		Order("clinics.name ASC").
		Find(&clinics).Error
	return clinics, err
}

// GetClinicByID retrieves an active clinic with its services
func (r *ClinicRepository) GetClinicByID(ctx context.Context, id uint) (*models.Clinic, error) {
	var clinic models.Clinic
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		Preload("Services").
		First(&clinic).Error
	if err != nil {
		return nil, translate(err, "clinic")
	}
	return &clinic, nil
}

// ClinicExists reports whether an active clinic has the id
func (r *ClinicRepository) ClinicExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Clinic{}).
		Where("id = ? AND is_active = ?", id, true).
		Count(&count).Error
	return count > 0, err
}

// CreateClinic creates a clinic together with its service links. When ownerID is set
// and that user has no clinic yet, the user is linked to the new clinic in the same transaction.
func (r *ClinicRepository) CreateClinic(ctx context.Context, clinic *models.Clinic, ownerID *uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(clinic).Error; err != nil {
			return err
		}
		if ownerID == nil {
			return nil
		}
		return tx.Model(&models.User{}).
			Where("id = ? AND clinic_id IS NULL", *ownerID).
			Update("clinic_id", clinic.ID).Error
	})
}

// UpdateClinic applies column updates and, when services is non-nil, replaces the service links
func (r *ClinicRepository) UpdateClinic(ctx context.Context, id uint, updates map[string]interface{}, services []models.Service) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		clinic := &models.Clinic{ID: id}
		if len(updates) > 0 {
			if err := tx.Model(clinic).Updates(updates).Error; err != nil {
				return err
			}
		}
		if services != nil {
			if err := tx.Model(clinic).Association("Services").Replace(services); err != nil {
				return err
			}
		}
		return nil
	})
}

// SoftDeleteClinic hides a clinic from the directory by setting is_active to false
func (r *ClinicRepository) SoftDeleteClinic(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Clinic{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
