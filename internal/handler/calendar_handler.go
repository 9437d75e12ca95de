package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "workoutplanner/internal/errors"
	"workoutplanner/internal/model"
	"workoutplanner/internal/service"
)

type CalendarHandler struct {
	workoutService *service.WorkoutService
}

type setWeekdaysRequest struct {
	TrainingWeekdays []int `json:"trainingWeekdays" binding:"required"`
}

type resetWeekdaysRequest struct {
	TrainingDaysPerWeek *int `json:"trainingDaysPerWeek"`
}

func NewCalendarHandler(workoutService *service.WorkoutService) *CalendarHandler {
	return &CalendarHandler{workoutService: workoutService}
}

func (h *CalendarHandler) SetWeekdays(c *gin.Context) {
	var req setWeekdaysRequest
	if !bindJSON(c, &req) {
		return
	}
	version, ok := baseVersion(c)
	if !ok {
		return
	}

	state, apiErr := h.workoutService.SetTrainingWeekdays(c.Request.Context(), userIDFrom(c), version, req.TrainingWeekdays)
	writeState(c, state, apiErr)
}

func (h *CalendarHandler) ResetWeekdays(c *gin.Context) {
	var req resetWeekdaysRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	version, ok := baseVersion(c)
	if !ok {
		return
	}

	state, apiErr := h.workoutService.ResetTrainingWeekdays(c.Request.Context(), userIDFrom(c), version, req.TrainingDaysPerWeek)
	writeState(c, state, apiErr)
}

// SetOverride takes the tagged override form: {"kind":"rest"},
// {"kind":"workout","workout_index":n} or {"kind":"custom","day":{...}}.
func (h *CalendarHandler) SetOverride(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		writeError(c, apperrors.BadRequest("invalid_json", "invalid request body"))
		return
	}
	override, err := model.DecodeOverride(raw)
	if err != nil {
		writeError(c, apperrors.BadRequest("invalid_override", err.Error()))
		return
	}
	version, ok := baseVersion(c)
	if !ok {
		return
	}

	state, apiErr := h.workoutService.SetDateOverride(c.Request.Context(), userIDFrom(c), version, c.Param("date"), override)
	writeState(c, state, apiErr)
}

func (h *CalendarHandler) DeleteOverride(c *gin.Context) {
	version, ok := baseVersion(c)
	if !ok {
		return
	}

	state, apiErr := h.workoutService.ClearDateOverride(c.Request.Context(), userIDFrom(c), version, c.Param("date"))
	writeState(c, state, apiErr)
}

func (h *CalendarHandler) ClearOverrides(c *gin.Context) {
	version, ok := baseVersion(c)
	if !ok {
		return
	}

	state, apiErr := h.workoutService.ClearDateOverrides(c.Request.Context(), userIDFrom(c), version)
	writeState(c, state, apiErr)
}

func (h *CalendarHandler) Day(c *gin.Context) {
	view, apiErr := h.workoutService.Day(c.Request.Context(), userIDFrom(c), c.Param("date"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"day": view})
}

func (h *CalendarHandler) Month(c *gin.Context) {
	view, apiErr := h.workoutService.Month(c.Request.Context(), userIDFrom(c), c.Param("month"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, view)
}
