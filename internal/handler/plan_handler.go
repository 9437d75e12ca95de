package handler

import (
	"github.com/gin-gonic/gin"

	"workoutplanner/internal/model"
	"workoutplanner/internal/service"
)

type PlanHandler struct {
	planService *service.PlanService
}

func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// Generate takes the intake form as the request body.
func (h *PlanHandler) Generate(c *gin.Context) {
	var form model.FormData
	if !bindJSON(c, &form) {
		return
	}
	version, ok := baseVersion(c)
	if !ok {
		return
	}

	state, apiErr := h.planService.Generate(c.Request.Context(), userIDFrom(c), version, form)
	writeState(c, state, apiErr)
}
