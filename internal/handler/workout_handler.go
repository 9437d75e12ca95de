package handler

import (
	"github.com/gin-gonic/gin"

	"workoutplanner/internal/model"
	"workoutplanner/internal/service"
)

type WorkoutHandler struct {
	workoutService *service.WorkoutService
}

type updateLiftRequest struct {
	Value         string `json:"value"`
	RecordHistory bool   `json:"recordHistory"`
	Date          string `json:"date"`
}

type setCompletedRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

func NewWorkoutHandler(workoutService *service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

func (h *WorkoutHandler) GetState(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	state, apiErr := h.workoutService.GetState(c.Request.Context(), userID)
	writeState(c, state, apiErr)
}

func (h *WorkoutHandler) UpdateProfile(c *gin.Context) {
	var form model.FormData
	if !bindJSON(c, &form) {
		return
	}
	version, ok := baseVersion(c)
	if !ok {
		return
	}

	state, apiErr := h.workoutService.UpdateProfile(c.Request.Context(), userIDFrom(c), version, form)
	writeState(c, state, apiErr)
}

func (h *WorkoutHandler) UpdatePlan(c *gin.Context) {
	var plan model.WorkoutPlan
	if !bindJSON(c, &plan) {
		return
	}
	version, ok := baseVersion(c)
	if !ok {
		return
	}

	state, apiErr := h.workoutService.UpdatePlan(c.Request.Context(), userIDFrom(c), version, plan)
	writeState(c, state, apiErr)
}

func (h *WorkoutHandler) UpdateLift(c *gin.Context) {
	var req updateLiftRequest
	if !bindJSON(c, &req) {
		return
	}
	version, ok := baseVersion(c)
	if !ok {
		return
	}

	state, apiErr := h.workoutService.UpdateLift(c.Request.Context(), userIDFrom(c), service.UpdateLiftInput{
		BaseVersion:   version,
		Lift:          c.Param("lift"),
		Value:         req.Value,
		RecordHistory: req.RecordHistory,
		Date:          req.Date,
	})
	writeState(c, state, apiErr)
}

func (h *WorkoutHandler) SetCompleted(c *gin.Context) {
	var req setCompletedRequest
	if !bindJSON(c, &req) {
		return
	}
	version, ok := baseVersion(c)
	if !ok {
		return
	}

	state, apiErr := h.workoutService.SetCompleted(c.Request.Context(), userIDFrom(c), version, c.Param("date"), *req.Completed)
	writeState(c, state, apiErr)
}

func (h *WorkoutHandler) ClearAll(c *gin.Context) {
	version, ok := baseVersion(c)
	if !ok {
		return
	}

	state, apiErr := h.workoutService.ClearAll(c.Request.Context(), userIDFrom(c), version)
	writeState(c, state, apiErr)
}
