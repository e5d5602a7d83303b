package api

import (
	"errors"
	"net/http"

	"github.com/typedef77/Runny/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AthleteHandler holds the athlete service dependency.
type AthleteHandler struct {
	athleteService service.AthleteService
}

// NewAthleteHandler creates a new AthleteHandler.
func NewAthleteHandler(athleteService service.AthleteService) *AthleteHandler {
	return &AthleteHandler{athleteService: athleteService}
}

// mapAthleteError translates athlete service errors to HTTP responses.
func mapAthleteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAthleteNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSelfFollow):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// Me godoc
// @Summary Get the authenticated athlete's profile
// @Tags Athletes
// @Produce json
// @Success 200 {object} UserResponse "Profile"
// @Failure 404 {object} gin.H "Athlete not found"
// @Security BearerAuth
// @Router /me [get]
func (h *AthleteHandler) Me(c *gin.Context) {
	athleteID, ok := athleteIDFromContext(c)
	if !ok {
		return
	}

	user, err := h.athleteService.GetProfile(c.Request.Context(), athleteID)
	if err != nil {
		mapAthleteError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// Follow godoc
// @Summary Follow another athlete
// @Tags Athletes
// @Produce json
// @Param id path string true "Athlete ID to follow"
// @Success 200 {object} gin.H "Now following"
// @Failure 400 {object} gin.H "Cannot follow yourself"
// @Failure 404 {object} gin.H "Athlete not found"
// @Security BearerAuth
// @Router /athletes/{id}/follow [post]
func (h *AthleteHandler) Follow(c *gin.Context) {
	athleteID, ok := athleteIDFromContext(c)
	if !ok {
		return
	}
	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid athlete ID format.")
		return
	}

	if err := h.athleteService.Follow(c.Request.Context(), athleteID, targetID); err != nil {
		mapAthleteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "now following"})
}

// Unfollow godoc
// @Summary Unfollow an athlete
// @Tags Athletes
// @Produce json
// @Param id path string true "Athlete ID to unfollow"
// @Success 204 "No longer following"
// @Security BearerAuth
// @Router /athletes/{id}/follow [delete]
func (h *AthleteHandler) Unfollow(c *gin.Context) {
	athleteID, ok := athleteIDFromContext(c)
	if !ok {
		return
	}
	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid athlete ID format.")
		return
	}

	if err := h.athleteService.Unfollow(c.Request.Context(), athleteID, targetID); err != nil {
		mapAthleteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetFollowing godoc
// @Summary List followed athletes
// @Tags Athletes
// @Produce json
// @Success 200 {array} UserResponse "Followed athletes"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Security BearerAuth
// @Router /athletes/following [get]
func (h *AthleteHandler) GetFollowing(c *gin.Context) {
	athleteID, ok := athleteIDFromContext(c)
	if !ok {
		return
	}

	following, err := h.athleteService.GetFollowing(c.Request.Context(), athleteID)
	if err != nil {
		mapAthleteError(c, err)
		return
	}

	responses := make([]UserResponse, 0, len(following))
	for i := range following {
		responses = append(responses, MapUserToResponse(&following[i]))
	}
	c.JSON(http.StatusOK, responses)
}
