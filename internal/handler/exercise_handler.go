package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "workoutplanner/internal/errors"
	"workoutplanner/internal/exercise"
)

type ExerciseHandler struct{}

func NewExerciseHandler() *ExerciseHandler {
	return &ExerciseHandler{}
}

func (h *ExerciseHandler) Lookup(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		writeError(c, apperrors.BadRequest("invalid_name", "name is required"))
		return
	}

	meta, found := exercise.Lookup(name)
	c.JSON(http.StatusOK, gin.H{
		"name":     name,
		"found":    found,
		"exercise": meta,
	})
}
