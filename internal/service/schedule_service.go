package service

import (
	"context"
	"fmt"
	"time"

	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/repository"
)

const clockLayout = "15:04"

type ScheduleService struct {
	scheduleRepo *repository.ScheduleRepository
	doctorRepo   *repository.DoctorRepository
	clinicRepo   *repository.ClinicRepository
	auditRepo    *repository.AuditRepository
}

func NewScheduleService(
	scheduleRepo *repository.ScheduleRepository,
	doctorRepo *repository.DoctorRepository,
	clinicRepo *repository.ClinicRepository,
	auditRepo *repository.AuditRepository,
) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		doctorRepo:   doctorRepo,
		clinicRepo:   clinicRepo,
		auditRepo:    auditRepo,
	}
}

type ScheduleQuery struct {
	ClinicID uint `form:"clinic_id"`
	DoctorID uint `form:"doctor_id"`
}

type CreateScheduleInput struct {
	ClinicID  uint   `json:"clinic_id" binding:"required"`
	DoctorID  uint   `json:"doctor_id" binding:"required"`
	DayOfWeek *int   `json:"day_of_week" binding:"required,gte=0,lte=6"`
	StartTime string `json:"start_time" binding:"required,datetime=15:04"`
	EndTime   string `json:"end_time" binding:"required,datetime=15:04"`
}

type UpdateScheduleInput struct {
	ClinicID  *uint   `json:"clinic_id" binding:"omitempty,gt=0"`
	DoctorID  *uint   `json:"doctor_id" binding:"omitempty,gt=0"`
	DayOfWeek *int    `json:"day_of_week" binding:"omitempty,gte=0,lte=6"`
	StartTime *string `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime   *string `json:"end_time" binding:"omitempty,datetime=15:04"`
}

func (s *ScheduleService) ListSchedules(ctx context.Context, q ScheduleQuery) ([]models.Schedule, error) {
	return s.scheduleRepo.GetSchedules(ctx, repository.ScheduleFilter{ClinicID: q.ClinicID, DoctorID: q.DoctorID})
}

func (s *ScheduleService) GetSchedule(ctx context.Context, id uint) (*models.Schedule, error) {
	return s.scheduleRepo.GetScheduleByID(ctx, id)
}

func (s *ScheduleService) CreateSchedule(ctx context.Context, actor Actor, in CreateScheduleInput) (*models.Schedule, error) {
	schedule := &models.Schedule{
		ClinicID:  in.ClinicID,
		DoctorID:  in.DoctorID,
		DayOfWeek: *in.DayOfWeek,
		StartTime: normalizeClock(in.StartTime),
		EndTime:   normalizeClock(in.EndTime),
	}
	if err := s.check(ctx, schedule); err != nil {
		return nil, err
	}

	if err := s.scheduleRepo.CreateSchedule(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	recordActivity(ctx, s.auditRepo, actor.ID, "schedule_created",
		fmt.Sprintf("Schedule added for doctor #%d on day %d", schedule.DoctorID, schedule.DayOfWeek))
	return s.scheduleRepo.GetScheduleByID(ctx, schedule.ID)
}

// UpdateSchedule merges the changes into the stored row before checking the time window
func (s *ScheduleService) UpdateSchedule(ctx context.Context, actor Actor, id uint, in UpdateScheduleInput) (*models.Schedule, error) {
	current, err := s.scheduleRepo.GetScheduleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *current
	merged.Doctor = nil
	updates := map[string]interface{}{}
	if in.ClinicID != nil {
		merged.ClinicID = *in.ClinicID
		updates["clinic_id"] = merged.ClinicID
	}
	if in.DoctorID != nil {
		merged.DoctorID = *in.DoctorID
		updates["doctor_id"] = merged.DoctorID
	}
	if in.DayOfWeek != nil {
		merged.DayOfWeek = *in.DayOfWeek
		updates["day_of_week"] = merged.DayOfWeek
	}
	if in.StartTime != nil {
		merged.StartTime = normalizeClock(*in.StartTime)
		updates["start_time"] = merged.StartTime
	}
	if in.EndTime != nil {
		merged.EndTime = normalizeClock(*in.EndTime)
		updates["end_time"] = merged.EndTime
	}

	if err := s.check(ctx, &merged); err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.scheduleRepo.UpdateSchedule(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("failed to update schedule: %w", err)
		}
		recordActivity(ctx, s.auditRepo, actor.ID, "schedule_updated", fmt.Sprintf("Schedule #%d updated", id))
	}
	return s.scheduleRepo.GetScheduleByID(ctx, id)
}

func (s *ScheduleService) DeleteSchedule(ctx context.Context, actor Actor, id uint) error {
	if _, err := s.scheduleRepo.GetScheduleByID(ctx, id); err != nil {
		return err
	}
	if err := s.scheduleRepo.DeleteSchedule(ctx, id); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	recordActivity(ctx, s.auditRepo, actor.ID, "schedule_deleted", fmt.Sprintf("Schedule #%d removed", id))
	return nil
}

// check validates references and the time window of a schedule
func (s *ScheduleService) check(ctx context.Context, schedule *models.Schedule) error {
	verr := &ValidationError{}

	ok, err := s.clinicRepo.ClinicExists(ctx, schedule.ClinicID)
	if err != nil {
		return fmt.Errorf("failed to check clinic: %w", err)
	}
	if !ok {
		verr.Add("clinic_id", selectedInvalid("clinic_id"))
	}

	doctor, err := s.doctorRepo.GetDoctorByID(ctx, schedule.DoctorID)
	switch {
	case err == nil && ok && doctor.ClinicID != schedule.ClinicID:
		verr.Add("doctor_id", "The selected doctor does not work at this clinic.")
	case err != nil && isNotFound(err):
		verr.Add("doctor_id", selectedInvalid("doctor_id"))
	case err != nil:
		return fmt.Errorf("failed to check doctor: %w", err)
	}

	if schedule.EndTime <= schedule.StartTime {
		verr.Add("end_time", "The end time field must be a time after start time.")
	}
	return verr.Err()
}

// normalizeClock zero pads a validated HH:MM value so times compare as strings
func normalizeClock(v string) string {
	t, err := time.Parse(clockLayout, v)
	if err != nil {
		return v
	}
	return t.Format(clockLayout)
}
