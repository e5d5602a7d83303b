package api

import (
	"net/http"
	"time"

	"github.com/typedef77/Runny/internal/service"

	"github.com/gin-gonic/gin"
)

// AdjustmentHandler holds the adjustment service dependency.
type AdjustmentHandler struct {
	adjustmentService service.AdjustmentService
}

// NewAdjustmentHandler creates a new AdjustmentHandler.
func NewAdjustmentHandler(adjustmentService service.AdjustmentService) *AdjustmentHandler {
	return &AdjustmentHandler{adjustmentService: adjustmentService}
}

// CheckAdjustments godoc
// @Summary Analyze last week and adjust upcoming workouts
// @Description Classifies last week's logged performance and, when warranted, scales
// @Description the durations of not-yet-completed workouts from this week forward.
// @Description Invoke at most once per week; repeat calls compound the adjustment.
// @Tags Adjustments
// @Produce json
// @Success 200 {object} service.AdjustmentResult "Adjustment outcome"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Security BearerAuth
// @Router /adjustments/check [post]
func (h *AdjustmentHandler) CheckAdjustments(c *gin.Context) {
	athleteID, ok := athleteIDFromContext(c)
	if !ok {
		return
	}

	result, err := h.adjustmentService.ApplyWeeklyAdjustment(c.Request.Context(), athleteID, time.Now().UTC())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to run the weekly adjustment check.")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAdjustmentHistory godoc
// @Summary List past adjustments
// @Tags Adjustments
// @Produce json
// @Success 200 {array} domain.WeeklyAdjustment "Adjustment audit trail, newest first"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Security BearerAuth
// @Router /adjustments [get]
func (h *AdjustmentHandler) GetAdjustmentHistory(c *gin.Context) {
	athleteID, ok := athleteIDFromContext(c)
	if !ok {
		return
	}

	history, err := h.adjustmentService.GetAdjustmentHistory(c.Request.Context(), athleteID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve adjustment history.")
		return
	}

	c.JSON(http.StatusOK, history)
}
