package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fleetops/fleet_billing_app/internal/apperrors"
	portssvc "github.com/fleetops/fleet_billing_app/internal/core/ports/services"
	"github.com/fleetops/fleet_billing_app/internal/dto"
	"github.com/fleetops/fleet_billing_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// recurrenceHandler handles HTTP requests related to recurrence profiles.
type recurrenceHandler struct {
	recurrenceService portssvc.RecurrenceSvcFacade
}

// newRecurrenceHandler creates a new recurrenceHandler.
func newRecurrenceHandler(rs portssvc.RecurrenceSvcFacade) *recurrenceHandler {
	return &recurrenceHandler{
		recurrenceService: rs,
	}
}

// registerRecurrenceRoutes registers routes related to recurrence profiles.
func registerRecurrenceRoutes(rg *gin.RouterGroup, recurrenceService portssvc.RecurrenceSvcFacade) {
	h := newRecurrenceHandler(recurrenceService)

	profiles := rg.Group("/recurrence-profiles")
	{
		profiles.POST("", h.createProfile)
		profiles.GET("", h.listProfiles)
		profiles.GET("/:profileID", h.getProfileByID)
		profiles.PUT("/:profileID", h.updateProfile)
		profiles.DELETE("/:profileID", h.deleteProfile)
	}
}

// createProfile godoc
// @Summary Create a recurrence profile
// @Description Creates a profile and materializes its future ledger schedule
// @Tags recurrence
// @Accept  json
// @Produce  json
// @Param   profile body dto.SaveRecurrenceProfileRequest true "Profile details"
// @Success 201 {object} dto.SaveProfileResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create profile"
// @Security BearerAuth
// @Router /recurrence-profiles [post]
func (h *recurrenceHandler) createProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveRecurrenceProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProfile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		logger.Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profileID := uuid.New().String()
	logger = logger.With(slog.String("profile_id", profileID))
	logger.Info("Received request to create recurrence profile")

	result, err := h.recurrenceService.SaveProfile(c.Request.Context(), accountID, profileID, req, accountID)
	if err != nil {
		h.respondSaveError(c, logger, err, "Failed to create profile")
		return
	}

	logger.Info("Recurrence profile created", slog.Int("entries_written", result.EntriesWritten))
	c.JSON(http.StatusCreated, result)
}

// updateProfile godoc
// @Summary Update a recurrence profile
// @Description Replaces a profile's definition in full and rewrites its future schedule
// @Tags recurrence
// @Accept  json
// @Produce  json
// @Param   profileID path string true "Profile ID"
// @Param   profile body dto.SaveRecurrenceProfileRequest true "Profile details"
// @Success 200 {object} dto.SaveProfileResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Profile not found"
// @Failure 500 {object} map[string]string "Failed to update profile"
// @Security BearerAuth
// @Router /recurrence-profiles/{profileID} [put]
func (h *recurrenceHandler) updateProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profileID := c.Param("profileID")

	var req dto.SaveRecurrenceProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateProfile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		logger.Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("profile_id", profileID))
	logger.Info("Received request to update recurrence profile")

	result, err := h.recurrenceService.SaveProfile(c.Request.Context(), accountID, profileID, req, accountID)
	if err != nil {
		h.respondSaveError(c, logger, err, "Failed to update profile")
		return
	}

	logger.Info("Recurrence profile updated", slog.Int("entries_written", result.EntriesWritten), slog.Int64("entries_removed", result.EntriesRemoved))
	c.JSON(http.StatusOK, result)
}

// getProfileByID godoc
// @Summary Get a recurrence profile
// @Description Retrieves a recurrence profile by its ID
// @Tags recurrence
// @Produce  json
// @Param   profileID path string true "Profile ID"
// @Success 200 {object} domain.RecurrenceProfile
// @Failure 404 {object} map[string]string "Profile not found"
// @Failure 500 {object} map[string]string "Failed to retrieve profile"
// @Security BearerAuth
// @Router /recurrence-profiles/{profileID} [get]
func (h *recurrenceHandler) getProfileByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profileID := c.Param("profileID")

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		logger.Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profile, err := h.recurrenceService.GetProfileByID(c.Request.Context(), accountID, profileID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		} else {
			logger.Error("Failed to get profile from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

// listProfiles godoc
// @Summary List recurrence profiles
// @Description Retrieves all recurrence profiles for the account
// @Tags recurrence
// @Produce  json
// @Success 200 {array} domain.RecurrenceProfile
// @Failure 500 {object} map[string]string "Failed to list profiles"
// @Security BearerAuth
// @Router /recurrence-profiles [get]
func (h *recurrenceHandler) listProfiles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		logger.Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profiles, err := h.recurrenceService.ListProfiles(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("Failed to list profiles from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list profiles"})
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// deleteProfile godoc
// @Summary Delete a recurrence profile
// @Description Removes the profile and its future pending schedule entries
// @Tags recurrence
// @Produce  json
// @Param   profileID path string true "Profile ID"
// @Success 200 {object} dto.DeleteProfileResult
// @Failure 404 {object} map[string]string "Profile not found"
// @Failure 500 {object} map[string]string "Failed to delete profile"
// @Security BearerAuth
// @Router /recurrence-profiles/{profileID} [delete]
func (h *recurrenceHandler) deleteProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profileID := c.Param("profileID")

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		logger.Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("profile_id", profileID))
	logger.Info("Received request to delete recurrence profile")

	result, err := h.recurrenceService.DeleteProfile(c.Request.Context(), accountID, profileID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		} else {
			logger.Error("Failed to delete profile in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete profile"})
		}
		return
	}

	logger.Info("Recurrence profile deleted", slog.Int64("entries_removed", result.EntriesRemoved))
	c.JSON(http.StatusOK, result)
}

func (h *recurrenceHandler) respondSaveError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error saving profile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Profile not found for save")
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
	default:
		logger.Error("Failed to save profile in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
