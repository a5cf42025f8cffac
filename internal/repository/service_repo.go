package repository

import (
	"context"

	"clinic-management-backend/internal/models"

	"gorm.io/gorm"
)

// ServiceRepository stores the catalog of medical services clinics can offer
type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepo(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) GetAllServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	err := r.db.WithContext(ctx).Order("name ASC").Find(&services).Error
	return services, err
}

// GetServicesByIDs returns the services found for ids; missing ids are simply absent
func (r *ServiceRepository) GetServicesByIDs(ctx context.Context, ids []uint) ([]models.Service, error) {
	var services []models.Service
	if len(ids) == 0 {
		return services, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&services).Error
	return services, err
}

func (r *ServiceRepository) ServiceNameExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Service{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *ServiceRepository) CreateService(ctx context.Context, service *models.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

// FirstOrCreateService is used by the seeder to keep the catalog idempotent
func (r *ServiceRepository) FirstOrCreateService(ctx context.Context, service *models.Service) error {
	return r.db.WithContext(ctx).
		Where(models.Service{Name: service.Name}).
		Attrs(models.Service{Description: service.Description}).
		FirstOrCreate(service).Error
}
