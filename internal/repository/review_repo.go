package repository

import (
	"context"

	"clinic-management-backend/internal/models"

	"gorm.io/gorm"
)

// RatingSummary aggregates the reviews of a clinic
type RatingSummary struct {
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
}

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// GetReviews lists reviews, newest first, optionally for one clinic
func (r *ReviewRepository) GetReviews(ctx context.Context, clinicID uint) ([]models.Review, error) {
	var reviews []models.Review
	q := r.db.WithContext(ctx)
	if clinicID != 0 {
		q = q.Where("clinic_id = ?", clinicID)
	}
	err := q.Preload("User").Order("created_at DESC, id DESC").Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).Preload("User").First(&review, id).Error
	if err != nil {
		return nil, translate(err, "review")
	}
	return &review, nil
}

// SummarizeClinic returns review count and average rating for a clinic
func (r *ReviewRepository) SummarizeClinic(ctx context.Context, clinicID uint) (RatingSummary, error) {
	var summary RatingSummary
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Where("clinic_id = ?", clinicID).
		Scan(&summary).Error
	return summary, err
}

func (r *ReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *ReviewRepository) UpdateReview(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Review{ID: id}).Updates(updates).Error
}

func (r *ReviewRepository) DeleteReview(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Review{}, id).Error
}
