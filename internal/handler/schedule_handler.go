package handler

import (
	"clinic-management-backend/internal/service"
	"clinic-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

func (h *ScheduleHandler) List(c *gin.Context) {
	var q service.ScheduleQuery
	if !bindQuery(c, &q) {
		return
	}

	schedules, err := h.scheduleService.ListSchedules(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, schedules)
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	schedule, err := h.scheduleService.GetSchedule(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, schedule)
}

func (h *ScheduleHandler) Create(c *gin.Context) {
	var req service.CreateScheduleInput
	if !bindJSON(c, &req) {
		return
	}

	schedule, err := h.scheduleService.CreateSchedule(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, schedule)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.UpdateScheduleInput
	if !bindJSON(c, &req) {
		return
	}

	schedule, err := h.scheduleService.UpdateSchedule(c.Request.Context(), actor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, schedule)
}

func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.scheduleService.DeleteSchedule(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
