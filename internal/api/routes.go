package api

import (
	"net/http"

	"github.com/typedef77/Runny/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	goalService service.GoalService,
	planService service.PlanService,
	adjustmentService service.AdjustmentService,
	runLogService service.RunLogService,
	athleteService service.AthleteService,
) {
	authHandler := NewAuthHandler(authService)
	goalHandler := NewGoalHandler(goalService)
	planHandler := NewPlanHandler(planService)
	adjustmentHandler := NewAdjustmentHandler(adjustmentService)
	runLogHandler := NewRunLogHandler(runLogService)
	athleteHandler := NewAthleteHandler(athleteService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", athleteHandler.Me)

		goalGroup := protected.Group("/goals")
		{
			goalGroup.POST("", goalHandler.CreateGoal)
			goalGroup.GET("/active", goalHandler.GetActiveGoal)
			goalGroup.PUT("/:id", goalHandler.UpdateGoal)
			goalGroup.DELETE("/:id", goalHandler.DeleteGoal)
		}

		planGroup := protected.Group("/plans")
		{
			planGroup.GET("/active", planHandler.GetActivePlan)
			planGroup.POST("/:planId/weeks/:week/reschedule", planHandler.RescheduleWeek)
		}

		adjustmentGroup := protected.Group("/adjustments")
		{
			adjustmentGroup.POST("/check", adjustmentHandler.CheckAdjustments)
			adjustmentGroup.GET("", adjustmentHandler.GetAdjustmentHistory)
		}

		runGroup := protected.Group("/runs")
		{
			runGroup.POST("", runLogHandler.LogRun)
			runGroup.GET("", runLogHandler.GetRuns)
			runGroup.DELETE("/:id", runLogHandler.DeleteRun)
			runGroup.POST("/:id/photo", runLogHandler.RequestPhotoUpload)
			runGroup.GET("/:id/photo", runLogHandler.GetPhotoURL)
		}

		athleteGroup := protected.Group("/athletes")
		{
			athleteGroup.GET("/following", athleteHandler.GetFollowing)
			athleteGroup.POST("/:id/follow", athleteHandler.Follow)
			athleteGroup.DELETE("/:id/follow", athleteHandler.Unfollow)
		}
	}
}
