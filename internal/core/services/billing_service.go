package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fleetops/fleet_billing_app/internal/apperrors"
	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	portsrepo "github.com/fleetops/fleet_billing_app/internal/core/ports/repositories"
	portssvc "github.com/fleetops/fleet_billing_app/internal/core/ports/services"
	"github.com/fleetops/fleet_billing_app/internal/dto"
	"github.com/fleetops/fleet_billing_app/internal/middleware"
)

var (
	ErrEventNotCompleted = errors.New("service event is not completed")
	ErrNegativeAmount    = errors.New("billing amount must not be negative")
)

// billingService keeps ledger entries synchronized with completed service
// events.
type billingService struct {
	settings
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
	categorySvc portssvc.CategorySvcFacade
}

// NewBillingService creates a new BillingService.
func NewBillingService(ledgerRepo portsrepo.LedgerRepositoryWithTx, categorySvc portssvc.CategorySvcFacade, opts ...Option) portssvc.BillingSvcFacade {
	return &billingService{
		settings:    applyOptions(opts),
		ledgerRepo:  ledgerRepo,
		categorySvc: categorySvc,
	}
}

var _ portssvc.BillingSvcFacade = (*billingService)(nil)

// UpsertForService creates or updates the single ledger entry carrying the
// event's service link. An in-place update rewrites amount, description and
// derived fields but leaves the status alone unless the input sets one.
func (s *billingService) UpsertForService(ctx context.Context, in dto.ServiceBillingInput, actorID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	event := in.Event
	if !event.IsCompleted() {
		return nil, fmt.Errorf("%w: event %s", ErrEventNotCompleted, event.EventID)
	}
	if in.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: %s for event %s", ErrNegativeAmount, in.Amount.String(), event.EventID)
	}

	category, err := s.categorySvc.EnsureServiceRevenueCategory(ctx, event.AccountID, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to provision billing category: %w", err)
	}

	description := in.Description
	if description == "" {
		description = fmt.Sprintf("Service #%d (%s)", event.DisplayNumber, event.ClientName)
	}

	now := s.now()
	completedAt := *event.CompletedAt

	existing, err := s.ledgerRepo.FindEntriesByServiceEventID(ctx, event.EventID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up entries for event %s: %w", event.EventID, err)
	}

	if len(existing) > 0 && !in.Duplicate {
		entry := existing[0]
		entry.Amount = in.Amount
		entry.Description = description
		entry.DueDate = completedAt
		entry.CategoryID = category.CategoryID
		entry.AssignedUserID = event.AssignedUserID
		entry.VehicleID = event.VehicleID
		if in.Status != nil {
			entry.Status = *in.Status
			if *in.Status == domain.Paid && entry.PaymentDate == nil {
				entry.PaymentDate = &completedAt
			}
		}
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = actorID

		if err := s.ledgerRepo.UpdateEntry(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to update entry for event %s: %w", event.EventID, err)
		}
		logger.Info("Updated ledger entry for service event", slog.String("entry_id", entry.EntryID), slog.String("event_id", event.EventID))
		return &entry, nil
	}

	status := domain.Pending
	if in.Status != nil {
		status = *in.Status
	}
	var paymentDate *time.Time
	if status == domain.Paid {
		paymentDate = &completedAt
	}

	eventID := event.EventID
	entry := domain.LedgerEntry{
		EntryID:        uuid.NewString(),
		AccountID:      event.AccountID,
		Description:    description,
		Amount:         in.Amount,
		Direction:      domain.Income,
		Status:         status,
		DueDate:        completedAt,
		PaymentDate:    paymentDate,
		CategoryID:     category.CategoryID,
		Origin:         domain.OriginService,
		ServiceEventID: &eventID,
		AssignedUserID: event.AssignedUserID,
		VehicleID:      event.VehicleID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to insert entry for event %s: %w", event.EventID, err)
	}
	logger.Info("Inserted ledger entry for service event", slog.String("entry_id", entry.EntryID), slog.String("event_id", event.EventID), slog.Bool("duplicate", in.Duplicate))
	return &entry, nil
}

// DeleteForService removes every entry linked to the event. More than one
// row only exists if duplication was ever requested; cleanup takes them all.
func (s *billingService) DeleteForService(ctx context.Context, serviceEventID string, actorID string) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	removed, err := s.ledgerRepo.DeleteEntriesByServiceEventID(ctx, serviceEventID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete entries for event %s: %w", serviceEventID, err)
	}
	if removed > 0 {
		logger.Info("Deleted ledger entries for service event", slog.String("event_id", serviceEventID), slog.Int64("removed", removed))
	}
	return removed, nil
}
