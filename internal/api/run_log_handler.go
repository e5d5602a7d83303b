package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/typedef77/Runny/internal/domain"
	"github.com/typedef77/Runny/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RunLogHandler holds the run log service dependency.
type RunLogHandler struct {
	runLogService service.RunLogService
}

// NewRunLogHandler creates a new RunLogHandler.
func NewRunLogHandler(runLogService service.RunLogService) *RunLogHandler {
	return &RunLogHandler{runLogService: runLogService}
}

// --- Request/Response Structs ---

type LogRunRequest struct {
	WorkoutID       *string   `json:"workoutId,omitempty"` // nil => unplanned run
	Date            time.Time `json:"date" binding:"required"`
	Completed       bool      `json:"completed"`
	DurationMinutes int       `json:"durationMinutes" binding:"required,gt=0"`
	EffortLevel     int       `json:"effortLevel" binding:"required,gte=1,lte=10"`
	PainLevel       int       `json:"painLevel" binding:"gte=0,lte=10"`
	Notes           string    `json:"notes,omitempty"`
}

type PhotoUploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	Size        int64  `json:"size" binding:"gte=0"`
}

type PhotoUploadResponse struct {
	UploadURL string           `json:"uploadUrl"`
	Photo     *domain.RunPhoto `json:"photo"`
}

// mapRunLogError translates run log service errors to HTTP responses.
func mapRunLogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEffortLevel),
		errors.Is(err, service.ErrInvalidPainLevel):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrRunLogNotFound),
		errors.Is(err, service.ErrPhotoNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrWorkoutAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrWorkoutAlreadyCompleted):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// --- Handler Methods ---

// LogRun godoc
// @Summary Log a run
// @Description Records a run, optionally against a scheduled workout. A completing
// @Description log marks the workout done; a workout accepts at most one.
// @Tags Runs
// @Accept json
// @Produce json
// @Param run body LogRunRequest true "Run details"
// @Success 201 {object} domain.RunLog "Run logged"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Workout not found"
// @Failure 409 {object} gin.H "Workout already completed"
// @Security BearerAuth
// @Router /runs [post]
func (h *RunLogHandler) LogRun(c *gin.Context) {
	athleteID, ok := athleteIDFromContext(c)
	if !ok {
		return
	}

	var req LogRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	input := service.RunLogInput{
		Date:            req.Date,
		Completed:       req.Completed,
		DurationMinutes: req.DurationMinutes,
		EffortLevel:     req.EffortLevel,
		PainLevel:       req.PainLevel,
		Notes:           req.Notes,
	}
	if req.WorkoutID != nil {
		workoutID, err := primitive.ObjectIDFromHex(*req.WorkoutID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
			return
		}
		input.WorkoutID = &workoutID
	}

	log, err := h.runLogService.LogRun(c.Request.Context(), athleteID, input)
	if err != nil {
		mapRunLogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, log)
}

// GetRuns godoc
// @Summary List logged runs
// @Tags Runs
// @Produce json
// @Success 200 {array} domain.RunLog "Runs, newest first"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Security BearerAuth
// @Router /runs [get]
func (h *RunLogHandler) GetRuns(c *gin.Context) {
	athleteID, ok := athleteIDFromContext(c)
	if !ok {
		return
	}

	runs, err := h.runLogService.GetRuns(c.Request.Context(), athleteID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve runs.")
		return
	}

	c.JSON(http.StatusOK, runs)
}

// DeleteRun godoc
// @Summary Delete a logged run
// @Description Removes the log. A workout it completed reads as incomplete again.
// @Tags Runs
// @Produce json
// @Param id path string true "Run log ID"
// @Success 204 "Run deleted"
// @Failure 404 {object} gin.H "Run log not found"
// @Security BearerAuth
// @Router /runs/{id} [delete]
func (h *RunLogHandler) DeleteRun(c *gin.Context) {
	athleteID, ok := athleteIDFromContext(c)
	if !ok {
		return
	}
	logID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid run log ID format.")
		return
	}

	if err := h.runLogService.DeleteRun(c.Request.Context(), athleteID, logID); err != nil {
		mapRunLogError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RequestPhotoUpload godoc
// @Summary Request a photo upload URL for a run
// @Description Reserves an S3 object key and returns a presigned PUT URL.
// @Tags Runs
// @Accept json
// @Produce json
// @Param id path string true "Run log ID"
// @Param photo body PhotoUploadRequest true "Photo metadata"
// @Success 200 {object} PhotoUploadResponse "Presigned upload URL"
// @Failure 404 {object} gin.H "Run log not found"
// @Security BearerAuth
// @Router /runs/{id}/photo [post]
func (h *RunLogHandler) RequestPhotoUpload(c *gin.Context) {
	athleteID, ok := athleteIDFromContext(c)
	if !ok {
		return
	}
	logID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid run log ID format.")
		return
	}

	var req PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	uploadURL, photo, err := h.runLogService.RequestPhotoUpload(
		c.Request.Context(), athleteID, logID, req.FileName, req.ContentType, req.Size)
	if err != nil {
		mapRunLogError(c, err)
		return
	}

	c.JSON(http.StatusOK, PhotoUploadResponse{UploadURL: uploadURL, Photo: photo})
}

// GetPhotoURL godoc
// @Summary Get a download URL for a run's photo
// @Tags Runs
// @Produce json
// @Param id path string true "Run log ID"
// @Success 200 {object} gin.H "Presigned download URL"
// @Failure 404 {object} gin.H "No photo attached"
// @Security BearerAuth
// @Router /runs/{id}/photo [get]
func (h *RunLogHandler) GetPhotoURL(c *gin.Context) {
	athleteID, ok := athleteIDFromContext(c)
	if !ok {
		return
	}
	logID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid run log ID format.")
		return
	}

	url, err := h.runLogService.GetPhotoURL(c.Request.Context(), athleteID, logID)
	if err != nil {
		mapRunLogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}
