package handler

import (
	"clinic-management-backend/internal/service"
	"clinic-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Doctor(c *gin.Context) {
	summary, err := h.dashboardService.DoctorSummary(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, summary)
}

func (h *DashboardHandler) Clinic(c *gin.Context) {
	summary, err := h.dashboardService.ClinicSummary(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, summary)
}

// Patient accepts optional ?latitude&longitude&limit for the nearby clinic list
func (h *DashboardHandler) Patient(c *gin.Context) {
	var q service.NearbyQuery
	if !bindQuery(c, &q) {
		return
	}

	summary, err := h.dashboardService.PatientSummary(c.Request.Context(), actor(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, summary)
}

// RecentActivity returns the current user's latest actions
func (h *DashboardHandler) RecentActivity(c *gin.Context) {
	activity, err := h.dashboardService.RecentActivity(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, activity)
}
