package handler

import (
	"clinic-management-backend/internal/service"
	"clinic-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) List(c *gin.Context) {
	var q service.ReviewQuery
	if !bindQuery(c, &q) {
		return
	}

	reviews, err := h.reviewService.ListReviews(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, reviews)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	review, err := h.reviewService.GetReview(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, review)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req service.CreateReviewInput
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, review)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.UpdateReviewInput
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.UpdateReview(c.Request.Context(), actor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
