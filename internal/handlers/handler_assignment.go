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
)

// assignmentHandler handles HTTP requests related to vehicle assignments.
type assignmentHandler struct {
	assignmentService portssvc.AssignmentSvcFacade
}

// newAssignmentHandler creates a new assignmentHandler.
func newAssignmentHandler(as portssvc.AssignmentSvcFacade) *assignmentHandler {
	return &assignmentHandler{
		assignmentService: as,
	}
}

// registerAssignmentRoutes registers routes related to vehicle assignments.
func registerAssignmentRoutes(rg *gin.RouterGroup, assignmentService portssvc.AssignmentSvcFacade) {
	h := newAssignmentHandler(assignmentService)

	assignments := rg.Group("/vehicle-assignments")
	{
		assignments.POST("/check-conflict", h.checkConflict)
		assignments.POST("", h.createAssignment)
		assignments.PUT("/:assignmentID", h.updateAssignment)
	}
}

// checkConflict godoc
// @Summary Check a booking proposal for conflicts
// @Description Evaluates a proposed vehicle interval against existing open assignments; advisory only
// @Tags assignments
// @Accept  json
// @Produce  json
// @Param   proposal body dto.ConflictCheckRequest true "Proposed interval"
// @Success 200 {object} dto.ConflictCheckResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to check conflicts"
// @Security BearerAuth
// @Router /vehicle-assignments/check-conflict [post]
func (h *assignmentHandler) checkConflict(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CheckConflict", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		logger.Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.assignmentService.CheckConflict(c.Request.Context(), accountID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to check conflicts in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check conflicts"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// createAssignment godoc
// @Summary Create a vehicle assignment
// @Description Persists a booking interval; a detected conflict is reported but never blocks the save
// @Tags assignments
// @Accept  json
// @Produce  json
// @Param   assignment body dto.SaveVehicleAssignmentRequest true "Assignment details"
// @Success 201 {object} dto.SaveAssignmentResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create assignment"
// @Security BearerAuth
// @Router /vehicle-assignments [post]
func (h *assignmentHandler) createAssignment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SaveVehicleAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAssignment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		logger.Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to create assignment", slog.String("vehicle_id", req.VehicleID))

	result, err := h.assignmentService.CreateAssignment(c.Request.Context(), accountID, req, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create assignment in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create assignment"})
		}
		return
	}

	logger.Info("Assignment created", slog.String("assignment_id", result.Assignment.AssignmentID), slog.Bool("conflict", result.Conflict.Conflict))
	c.JSON(http.StatusCreated, result)
}

// updateAssignment godoc
// @Summary Update a vehicle assignment
// @Description Rewrites a booking's interval, vehicle or status, re-running conflict detection
// @Tags assignments
// @Accept  json
// @Produce  json
// @Param   assignmentID path string true "Assignment ID"
// @Param   assignment body dto.SaveVehicleAssignmentRequest true "Assignment details"
// @Success 200 {object} dto.SaveAssignmentResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Assignment not found"
// @Failure 500 {object} map[string]string "Failed to update assignment"
// @Security BearerAuth
// @Router /vehicle-assignments/{assignmentID} [put]
func (h *assignmentHandler) updateAssignment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	assignmentID := c.Param("assignmentID")

	var req dto.SaveVehicleAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAssignment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		logger.Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("assignment_id", assignmentID))
	logger.Info("Received request to update assignment")

	result, err := h.assignmentService.UpdateAssignment(c.Request.Context(), accountID, assignmentID, req, accountID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update assignment in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update assignment"})
		}
		return
	}

	logger.Info("Assignment updated", slog.Bool("conflict", result.Conflict.Conflict))
	c.JSON(http.StatusOK, result)
}
