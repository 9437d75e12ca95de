package handler

import (
	"github.com/gin-gonic/gin"

	"workoutplanner/internal/service"
)

type CoachHandler struct {
	coachService *service.CoachService
}

type chatRequest struct {
	Message string `json:"message"`
}

func NewCoachHandler(coachService *service.CoachService) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

func (h *CoachHandler) Chat(c *gin.Context) {
	var req chatRequest
	if !bindJSON(c, &req) {
		return
	}
	version, ok := baseVersion(c)
	if !ok {
		return
	}

	state, apiErr := h.coachService.Chat(c.Request.Context(), userIDFrom(c), version, req.Message)
	writeState(c, state, apiErr)
}
