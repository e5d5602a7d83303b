package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/typedef77/Runny/internal/domain"
	"github.com/typedef77/Runny/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalHandler holds the goal service dependency.
type GoalHandler struct {
	goalService service.GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// --- Request/Response Structs ---

type GoalRequest struct {
	RaceDistance      string    `json:"raceDistance" binding:"required,oneof=5k 10k half marathon"`
	RaceDate          time.Time `json:"raceDate" binding:"required"`
	TargetTime        *string   `json:"targetTime,omitempty"`
	Experience        string    `json:"experience" binding:"required,oneof=beginner intermediate advanced"`
	CurrentFrequency  int       `json:"currentFrequency" binding:"gte=0,lte=14"`
	LongestRecentRun  int       `json:"longestRecentRun" binding:"gte=0"`
	PermittedDays     []string  `json:"permittedDays" binding:"required,min=2"`
	MaxWeekdayMinutes int       `json:"maxWeekdayMinutes" binding:"required,gt=0"`
	MaxWeekendMinutes int       `json:"maxWeekendMinutes" binding:"required,gt=0"`
}

type GoalResponse struct {
	Goal   *domain.Goal `json:"goal"`
	PlanID string       `json:"planId"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// parseWeekdays converts day names to time.Weekday values, case-insensitive.
func parseWeekdays(names []string) ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		days = append(days, day)
	}
	return days, nil
}

func (req *GoalRequest) toInput() (service.GoalInput, error) {
	days, err := parseWeekdays(req.PermittedDays)
	if err != nil {
		return service.GoalInput{}, err
	}
	return service.GoalInput{
		RaceDistance:      domain.RaceDistance(req.RaceDistance),
		RaceDate:          req.RaceDate,
		TargetTime:        req.TargetTime,
		Experience:        domain.ExperienceLevel(req.Experience),
		CurrentFrequency:  req.CurrentFrequency,
		LongestRecentRun:  req.LongestRecentRun,
		PermittedDays:     days,
		MaxWeekdayMinutes: req.MaxWeekdayMinutes,
		MaxWeekendMinutes: req.MaxWeekendMinutes,
	}, nil
}

// mapGoalError translates goal service errors to HTTP responses.
func mapGoalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRaceDistance),
		errors.Is(err, service.ErrInvalidExperience),
		errors.Is(err, service.ErrRaceDateNotFuture),
		errors.Is(err, service.ErrTooFewPermittedDays),
		errors.Is(err, service.ErrInvalidSessionCap):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrGoalNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrGoalAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// --- Handler Methods ---

// CreateGoal godoc
// @Summary Create a training goal
// @Description Creates a goal, deactivates any prior one, and generates its training plan.
// @Tags Goals
// @Accept json
// @Produce json
// @Param goal body GoalRequest true "Goal details"
// @Success 201 {object} GoalResponse "Goal created and plan generated"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Security BearerAuth
// @Router /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	athleteID, ok := athleteIDFromContext(c)
	if !ok {
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	input, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	goal, planID, err := h.goalService.CreateGoal(c.Request.Context(), athleteID, input, time.Now().UTC())
	if err != nil {
		mapGoalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, GoalResponse{Goal: goal, PlanID: planID.Hex()})
}

// UpdateGoal godoc
// @Summary Update a training goal
// @Description Rewrites the goal's parameters and regenerates its plan from scratch.
// @Tags Goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param goal body GoalRequest true "Updated goal details"
// @Success 200 {object} GoalResponse "Goal updated and plan regenerated"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Not the goal owner"
// @Failure 404 {object} gin.H "Goal not found"
// @Security BearerAuth
// @Router /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	athleteID, ok := athleteIDFromContext(c)
	if !ok {
		return
	}
	goalID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid goal ID format.")
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	input, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	goal, planID, err := h.goalService.UpdateGoal(c.Request.Context(), athleteID, goalID, input, time.Now().UTC())
	if err != nil {
		mapGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, GoalResponse{Goal: goal, PlanID: planID.Hex()})
}

// GetActiveGoal godoc
// @Summary Get the active training goal
// @Tags Goals
// @Produce json
// @Success 200 {object} domain.Goal "Active goal"
// @Failure 404 {object} gin.H "No active goal"
// @Security BearerAuth
// @Router /goals/active [get]
func (h *GoalHandler) GetActiveGoal(c *gin.Context) {
	athleteID, ok := athleteIDFromContext(c)
	if !ok {
		return
	}

	goal, err := h.goalService.GetActiveGoal(c.Request.Context(), athleteID)
	if err != nil {
		mapGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// DeleteGoal godoc
// @Summary Delete a training goal
// @Description Deletes the goal and cascades to its plan and workouts. Run logs survive.
// @Tags Goals
// @Produce json
// @Param id path string true "Goal ID"
// @Success 204 "Goal deleted"
// @Failure 403 {object} gin.H "Not the goal owner"
// @Failure 404 {object} gin.H "Goal not found"
// @Security BearerAuth
// @Router /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	athleteID, ok := athleteIDFromContext(c)
	if !ok {
		return
	}
	goalID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid goal ID format.")
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), athleteID, goalID); err != nil {
		mapGoalError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
