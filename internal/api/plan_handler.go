package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/typedef77/Runny/internal/domain"
	"github.com/typedef77/Runny/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Request/Response Structs ---

type RescheduleWeekRequest struct {
	PermittedDays []string `json:"permittedDays" binding:"required,min=2"`
}

type ActivePlanResponse struct {
	Plan     *domain.TrainingPlan `json:"plan"`
	Workouts []domain.Workout     `json:"workouts"`
}

// mapPlanError translates plan service errors to HTTP responses.
func mapPlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound), errors.Is(err, service.ErrGoalNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPlanAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// --- Handler Methods ---

// GetActivePlan godoc
// @Summary Get the active training plan
// @Description Returns the plan and all its workouts, completion computed from run logs.
// @Tags Plans
// @Produce json
// @Success 200 {object} ActivePlanResponse "Active plan with workouts"
// @Failure 404 {object} gin.H "No active goal or plan"
// @Security BearerAuth
// @Router /plans/active [get]
func (h *PlanHandler) GetActivePlan(c *gin.Context) {
	athleteID, ok := athleteIDFromContext(c)
	if !ok {
		return
	}

	plan, workouts, err := h.planService.GetActivePlan(c.Request.Context(), athleteID)
	if err != nil {
		mapPlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, ActivePlanResponse{Plan: plan, Workouts: workouts})
}

// RescheduleWeek godoc
// @Summary Reschedule one week of the plan
// @Description Moves the week's workouts onto a new set of permitted days. Workout
// @Description content is preserved; only dates change. Excess easy runs are dropped.
// @Tags Plans
// @Accept json
// @Produce json
// @Param planId path string true "Plan ID"
// @Param week path int true "Week number (1-based)"
// @Param days body RescheduleWeekRequest true "New permitted days"
// @Success 200 {object} gin.H "Week rescheduled"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Not the plan owner"
// @Failure 404 {object} gin.H "Plan not found"
// @Security BearerAuth
// @Router /plans/{planId}/weeks/{week}/reschedule [post]
func (h *PlanHandler) RescheduleWeek(c *gin.Context) {
	athleteID, ok := athleteIDFromContext(c)
	if !ok {
		return
	}
	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}
	weekNumber, err := strconv.Atoi(c.Param("week"))
	if err != nil || weekNumber < 1 {
		abortWithError(c, http.StatusBadRequest, "Week number must be a positive integer.")
		return
	}

	var req RescheduleWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	days, err := parseWeekdays(req.PermittedDays)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.planService.RescheduleWeek(c.Request.Context(), athleteID, planID, weekNumber, days); err != nil {
		mapPlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "week rescheduled"})
}
