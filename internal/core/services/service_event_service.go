package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fleetops/fleet_billing_app/internal/apperrors"
	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	portsrepo "github.com/fleetops/fleet_billing_app/internal/core/ports/repositories"
	portssvc "github.com/fleetops/fleet_billing_app/internal/core/ports/services"
	"github.com/fleetops/fleet_billing_app/internal/dto"
	"github.com/fleetops/fleet_billing_app/internal/middleware"
)

// serviceEventService records field work and feeds billing sync. Sync runs
// as a side effect of completion and must never fail the completion itself:
// failures are logged and counted, the event stays completed.
type serviceEventService struct {
	settings
	eventRepo  portsrepo.ServiceEventRepositoryFacade
	billingSvc portssvc.BillingSvcFacade
}

// NewServiceEventService creates a new ServiceEventService.
func NewServiceEventService(eventRepo portsrepo.ServiceEventRepositoryFacade, billingSvc portssvc.BillingSvcFacade, opts ...Option) portssvc.ServiceEventSvcFacade {
	return &serviceEventService{
		settings:   applyOptions(opts),
		eventRepo:  eventRepo,
		billingSvc: billingSvc,
	}
}

var _ portssvc.ServiceEventSvcFacade = (*serviceEventService)(nil)

// GetEventByID retrieves a specific event scoped to the account.
func (s *serviceEventService) GetEventByID(ctx context.Context, accountID, eventID string) (*domain.ServiceEvent, error) {
	event, err := s.eventRepo.FindEventByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to find event %s: %w", eventID, err)
	}
	if event.AccountID != accountID {
		// Obscure existence
		return nil, apperrors.ErrNotFound
	}
	return event, nil
}

// RegisterEvent records a new event. When the payload already carries a
// completion timestamp (backfills, imports), billing sync runs immediately
// under the same best-effort policy as completion.
func (s *serviceEventService) RegisterEvent(ctx context.Context, accountID string, req dto.RegisterServiceEventRequest, actorID string) (*domain.ServiceEvent, error) {
	now := s.now()
	event := domain.ServiceEvent{
		EventID:            uuid.NewString(),
		AccountID:          accountID,
		ClientName:         req.ClientName,
		Kind:               req.Kind,
		CompletedAt:        req.CompletedAt,
		RealizedValue:      req.RealizedValue,
		AssignedUserID:     req.AssignedUserID,
		VehicleID:          req.VehicleID,
		RecurrenceParentID: req.RecurrenceParentID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	displayNumber, err := s.eventRepo.SaveEvent(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to save event: %w", err)
	}
	event.DisplayNumber = displayNumber

	if event.IsCompleted() {
		s.syncBestEffort(ctx, event, event.RealizedValue, nil, actorID)
	}
	return &event, nil
}

// CompleteEvent marks the event completed and triggers billing sync.
// Re-completing an already completed event is treated as administrative
// correction: the timestamp and value are overwritten and the linked
// ledger entry is upserted in place.
func (s *serviceEventService) CompleteEvent(ctx context.Context, accountID, eventID string, req dto.CompleteServiceEventRequest, actorID string) (*domain.ServiceEvent, error) {
	event, err := s.GetEventByID(ctx, accountID, eventID)
	if err != nil {
		return nil, err
	}

	completedAt := s.now()
	if req.CompletedAt != nil {
		completedAt = req.CompletedAt.UTC()
	}
	realizedValue := event.RealizedValue
	if req.RealizedValue != nil {
		realizedValue = *req.RealizedValue
	}

	if err := s.eventRepo.MarkEventCompleted(ctx, eventID, completedAt, realizedValue, actorID); err != nil {
		return nil, fmt.Errorf("failed to mark event %s completed: %w", eventID, err)
	}

	event.CompletedAt = &completedAt
	event.RealizedValue = realizedValue
	event.LastUpdatedAt = s.now()
	event.LastUpdatedBy = actorID

	var status *domain.EntryStatus
	if req.MarkPaid {
		paid := domain.Paid
		status = &paid
	}
	s.syncBestEffort(ctx, *event, realizedValue, status, actorID)

	return event, nil
}

// DeleteEvent removes the event and every ledger entry linked to it. This
// is an explicit user action, so cleanup failures are surfaced.
func (s *serviceEventService) DeleteEvent(ctx context.Context, accountID, eventID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetEventByID(ctx, accountID, eventID); err != nil {
		return err
	}

	removed, err := s.billingSvc.DeleteForService(ctx, eventID, actorID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger entries for event %s: %w", eventID, err)
	}

	if err := s.eventRepo.DeleteEvent(ctx, eventID); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}

	logger.Info("Service event deleted", slog.String("event_id", eventID), slog.Int64("entries_removed", removed))
	return nil
}

// syncBestEffort runs billing sync and swallows failures: completing a
// service must succeed even when its billing side effect cannot.
func (s *serviceEventService) syncBestEffort(ctx context.Context, event domain.ServiceEvent, amount decimal.Decimal, status *domain.EntryStatus, actorID string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	in := dto.ServiceBillingInput{
		Event:  event,
		Amount: amount,
		Status: status,
	}
	if _, err := s.billingSvc.UpsertForService(ctx, in, actorID); err != nil {
		billingSyncFailures.Inc()
		logger.Error("Billing sync failed for completed event",
			slog.String("event_id", event.EventID),
			slog.String("error", err.Error()),
		)
	}
}
