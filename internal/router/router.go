package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"workoutplanner/internal/handler"
	"workoutplanner/internal/middleware"
	"workoutplanner/internal/service"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Workout  *handler.WorkoutHandler
	Calendar *handler.CalendarHandler
	Plan     *handler.PlanHandler
	Coach    *handler.CoachHandler
	Exercise *handler.ExerciseHandler
}

func New(
	authService *service.AuthService,
	handlers Handlers,
	corsOrigins []string,
	logger *slog.Logger,
) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestLogger(logger), gin.Recovery(), middleware.CORS(corsOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", handlers.Auth.Register)
	auth.POST("/login", handlers.Auth.Login)

	protected := api.Group("")
	protected.Use(middleware.Auth(authService))

	workout := protected.Group("/workout")
	workout.GET("/state", handlers.Workout.GetState)
	workout.PUT("/profile", handlers.Workout.UpdateProfile)
	workout.PUT("/plan", handlers.Workout.UpdatePlan)
	workout.PUT("/lifts/:lift", handlers.Workout.UpdateLift)
	workout.PUT("/log/:date", handlers.Workout.SetCompleted)
	workout.DELETE("", handlers.Workout.ClearAll)

	calendar := protected.Group("/calendar")
	calendar.PUT("/weekdays", handlers.Calendar.SetWeekdays)
	calendar.POST("/weekdays/reset", handlers.Calendar.ResetWeekdays)
	calendar.PUT("/overrides/:date", handlers.Calendar.SetOverride)
	calendar.DELETE("/overrides/:date", handlers.Calendar.DeleteOverride)
	calendar.DELETE("/overrides", handlers.Calendar.ClearOverrides)
	calendar.GET("/day/:date", handlers.Calendar.Day)
	calendar.GET("/month/:month", handlers.Calendar.Month)

	protected.POST("/plan/generate", handlers.Plan.Generate)
	protected.POST("/coach/chat", handlers.Coach.Chat)
	protected.GET("/exercises/lookup", handlers.Exercise.Lookup)

	return engine
}
