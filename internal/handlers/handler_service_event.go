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

// serviceEventHandler handles HTTP requests related to service events and
// their reconciliation with the ledger.
type serviceEventHandler struct {
	eventService          portssvc.ServiceEventSvcFacade
	reconciliationService portssvc.ReconciliationSvcFacade
}

// newServiceEventHandler creates a new serviceEventHandler.
func newServiceEventHandler(es portssvc.ServiceEventSvcFacade, rs portssvc.ReconciliationSvcFacade) *serviceEventHandler {
	return &serviceEventHandler{
		eventService:          es,
		reconciliationService: rs,
	}
}

// registerServiceEventRoutes registers routes related to service events.
func registerServiceEventRoutes(rg *gin.RouterGroup, eventService portssvc.ServiceEventSvcFacade, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newServiceEventHandler(eventService, reconciliationService)

	events := rg.Group("/service-events")
	{
		events.POST("", h.registerEvent)
		events.GET("/:eventID", h.getEventByID)
		events.POST("/:eventID/complete", h.completeEvent)
		events.DELETE("/:eventID", h.deleteEvent)
		events.POST("/:eventID/reconcile-group", h.reconcileGroup)
	}

	rg.POST("/reconciliation/bulk", h.bulkReconcile)
}

// registerEvent godoc
// @Summary Register a service event
// @Description Records a rental or operation; an already-completed payload triggers billing sync immediately
// @Tags service-events
// @Accept  json
// @Produce  json
// @Param   event body dto.RegisterServiceEventRequest true "Event details"
// @Success 201 {object} domain.ServiceEvent
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to register event"
// @Security BearerAuth
// @Router /service-events [post]
func (h *serviceEventHandler) registerEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterServiceEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterEvent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		logger.Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to register service event", slog.String("client_name", req.ClientName))

	event, err := h.eventService.RegisterEvent(c.Request.Context(), accountID, req, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to register event in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register event"})
		}
		return
	}

	logger.Info("Service event registered", slog.String("event_id", event.EventID), slog.Int64("display_number", event.DisplayNumber))
	c.JSON(http.StatusCreated, event)
}

// getEventByID godoc
// @Summary Get a service event
// @Description Retrieves a single service event by its ID
// @Tags service-events
// @Produce  json
// @Param   eventID path string true "Event ID"
// @Success 200 {object} domain.ServiceEvent
// @Failure 404 {object} map[string]string "Event not found"
// @Failure 500 {object} map[string]string "Failed to retrieve event"
// @Security BearerAuth
// @Router /service-events/{eventID} [get]
func (h *serviceEventHandler) getEventByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	eventID := c.Param("eventID")

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		logger.Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	event, err := h.eventService.GetEventByID(c.Request.Context(), accountID, eventID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		} else {
			logger.Error("Failed to get event from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event"})
		}
		return
	}

	c.JSON(http.StatusOK, event)
}

// completeEvent godoc
// @Summary Complete a service event
// @Description Marks the event completed and synchronizes its ledger entry
// @Tags service-events
// @Accept  json
// @Produce  json
// @Param   eventID path string true "Event ID"
// @Param   completion body dto.CompleteServiceEventRequest true "Completion details"
// @Success 200 {object} domain.ServiceEvent
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Event not found"
// @Failure 500 {object} map[string]string "Failed to complete event"
// @Security BearerAuth
// @Router /service-events/{eventID}/complete [post]
func (h *serviceEventHandler) completeEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	eventID := c.Param("eventID")

	var req dto.CompleteServiceEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CompleteEvent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		logger.Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("event_id", eventID))
	logger.Info("Received request to complete service event")

	event, err := h.eventService.CompleteEvent(c.Request.Context(), accountID, eventID, req, accountID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to complete event in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete event"})
		}
		return
	}

	logger.Info("Service event completed")
	c.JSON(http.StatusOK, event)
}

// deleteEvent godoc
// @Summary Delete a service event
// @Description Removes the event together with every ledger entry linked to it
// @Tags service-events
// @Produce  json
// @Param   eventID path string true "Event ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Event not found"
// @Failure 500 {object} map[string]string "Failed to delete event"
// @Security BearerAuth
// @Router /service-events/{eventID} [delete]
func (h *serviceEventHandler) deleteEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	eventID := c.Param("eventID")

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		logger.Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("event_id", eventID))
	logger.Info("Received request to delete service event")

	if err := h.eventService.DeleteEvent(c.Request.Context(), accountID, eventID, accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		} else {
			logger.Error("Failed to delete event in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		}
		return
	}

	logger.Info("Service event deleted")
	c.Status(http.StatusNoContent)
}

// reconcileGroup godoc
// @Summary Reconcile a recurrence group
// @Description Folds the completed siblings of this event's recurrence parent for one month into a single aggregated ledger entry
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   eventID path string true "Recurrence parent event ID"
// @Param   request body dto.ReconcileGroupRequest true "Reconciliation window and mode"
// @Success 200 {object} domain.LedgerEntry
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "No completed siblings in the window"
// @Failure 500 {object} map[string]string "Failed to reconcile group"
// @Security BearerAuth
// @Router /service-events/{eventID}/reconcile-group [post]
func (h *serviceEventHandler) reconcileGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	parentID := c.Param("eventID")

	var req dto.ReconcileGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReconcileGroup", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		logger.Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	mode := req.Mode
	if mode == "" {
		mode = dto.ModeUpdate
	}

	logger = logger.With(slog.String("parent_id", parentID))
	logger.Info("Received request to reconcile group", slog.String("mode", mode))

	entry, err := h.reconciliationService.ReconcileGroup(c.Request.Context(), accountID, parentID, req.ReferenceDate, mode, req.MarkPaid, accountID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No completed events for this group in the given month"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reconcile group in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile group"})
		}
		return
	}

	logger.Info("Group reconciled", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusOK, entry)
}

// bulkReconcile godoc
// @Summary Bulk reconcile service events
// @Description Resynchronizes a batch of completed events with the ledger; individual failures are reported, not fatal
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   request body dto.BulkReconcileRequest true "Events and mode"
// @Success 200 {object} dto.BulkReconcileResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to process batch"
// @Security BearerAuth
// @Router /reconciliation/bulk [post]
func (h *serviceEventHandler) bulkReconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BulkReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BulkReconcile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		logger.Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received bulk reconciliation request", slog.Int("event_count", len(req.EventIDs)), slog.String("mode", req.Mode))

	result, err := h.reconciliationService.Process(c.Request.Context(), accountID, req, accountID)
	if err != nil {
		logger.Error("Failed to process bulk reconciliation", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process batch"})
		return
	}

	logger.Info("Bulk reconciliation finished", slog.Int("processed", result.Processed), slog.Int("failed", len(result.Failed)))
	c.JSON(http.StatusOK, result)
}
