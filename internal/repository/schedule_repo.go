package repository

import (
	"context"

	"clinic-management-backend/internal/models"

	"gorm.io/gorm"
)

// ScheduleFilter narrows schedule listings
type ScheduleFilter struct {
	ClinicID uint
	DoctorID uint
}

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepo(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// GetSchedules lists schedules with the doctor preloaded, by weekday then start time
func (r *ScheduleRepository) GetSchedules(ctx context.Context, filter ScheduleFilter) ([]models.Schedule, error) {
	var schedules []models.Schedule
	q := r.db.WithContext(ctx)
	if filter.ClinicID != 0 {
		q = q.Where("clinic_id = ?", filter.ClinicID)
	}
	if filter.DoctorID != 0 {
		q = q.Where("doctor_id = ?", filter.DoctorID)
	}
	err := q.Preload("Doctor").
		Order("day_of_week ASC, start_time ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *ScheduleRepository) GetScheduleByID(ctx context.Context, id uint) (*models.Schedule, error) {
	var schedule models.Schedule
	err := r.db.WithContext(ctx).Preload("Doctor").First(&schedule, id).Error
	if err != nil {
		return nil, translate(err, "schedule")
	}
	return &schedule, nil
}

func (r *ScheduleRepository) CreateSchedule(ctx context.Context, schedule *models.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *ScheduleRepository) UpdateSchedule(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Schedule{ID: id}).Updates(updates).Error
}

func (r *ScheduleRepository) DeleteSchedule(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Schedule{}, id).Error
}
