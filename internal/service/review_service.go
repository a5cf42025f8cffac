package service

import (
	"context"
	"fmt"

	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/repository"
)

type ReviewService struct {
	reviewRepo *repository.ReviewRepository
	clinicRepo *repository.ClinicRepository
	auditRepo  *repository.AuditRepository
}

func NewReviewService(reviewRepo *repository.ReviewRepository, clinicRepo *repository.ClinicRepository, auditRepo *repository.AuditRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		clinicRepo: clinicRepo,
		auditRepo:  auditRepo,
	}
}

type ReviewQuery struct {
	ClinicID uint `form:"clinic_id"`
}

type CreateReviewInput struct {
	ClinicID uint   `json:"clinic_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment  string `json:"comment" binding:"max=2000"`
}

type UpdateReviewInput struct {
	Rating  *int    `json:"rating" binding:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

func (s *ReviewService) ListReviews(ctx context.Context, q ReviewQuery) ([]models.Review, error) {
	return s.reviewRepo.GetReviews(ctx, q.ClinicID)
}

func (s *ReviewService) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	return s.reviewRepo.GetReviewByID(ctx, id)
}

// CreateReview stores a review authored by the actor
func (s *ReviewService) CreateReview(ctx context.Context, actor Actor, in CreateReviewInput) (*models.Review, error) {
	ok, err := s.clinicRepo.ClinicExists(ctx, in.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to check clinic: %w", err)
	}
	if !ok {
		return nil, Invalid("clinic_id", selectedInvalid("clinic_id"))
	}

	review := &models.Review{
		ClinicID: in.ClinicID,
		UserID:   actor.ID,
		Rating:   in.Rating,
		Comment:  in.Comment,
	}
	if err := s.reviewRepo.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	recordActivity(ctx, s.auditRepo, actor.ID, "review_created",
		fmt.Sprintf("Rated clinic #%d with %d stars", review.ClinicID, review.Rating))
	return s.reviewRepo.GetReviewByID(ctx, review.ID)
}

func (s *ReviewService) UpdateReview(ctx context.Context, actor Actor, id uint, in UpdateReviewInput) (*models.Review, error) {
	if _, err := s.reviewRepo.GetReviewByID(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Rating != nil {
		updates["rating"] = *in.Rating
	}
	if in.Comment != nil {
		updates["comment"] = *in.Comment
	}
	if len(updates) > 0 {
		if err := s.reviewRepo.UpdateReview(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("failed to update review: %w", err)
		}
		recordActivity(ctx, s.auditRepo, actor.ID, "review_updated", fmt.Sprintf("Review #%d updated", id))
	}
	return s.reviewRepo.GetReviewByID(ctx, id)
}

func (s *ReviewService) DeleteReview(ctx context.Context, actor Actor, id uint) error {
	if _, err := s.reviewRepo.GetReviewByID(ctx, id); err != nil {
		return err
	}
	if err := s.reviewRepo.DeleteReview(ctx, id); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	recordActivity(ctx, s.auditRepo, actor.ID, "review_deleted", fmt.Sprintf("Review #%d removed", id))
	return nil
}
