package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetops/fleet_billing_app/internal/apperrors"
	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	portsrepo "github.com/fleetops/fleet_billing_app/internal/core/ports/repositories"
	portssvc "github.com/fleetops/fleet_billing_app/internal/core/ports/services"
	"github.com/fleetops/fleet_billing_app/internal/dto"
	"github.com/fleetops/fleet_billing_app/internal/middleware"
)

// reconciliationService folds sibling completed events into aggregated
// ledger entries and drives billing sync over bulk batches.
type reconciliationService struct {
	settings
	eventRepo  portsrepo.ServiceEventRepositoryFacade
	billingSvc portssvc.BillingSvcFacade
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(eventRepo portsrepo.ServiceEventRepositoryFacade, billingSvc portssvc.BillingSvcFacade, opts ...Option) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		settings:   applyOptions(opts),
		eventRepo:  eventRepo,
		billingSvc: billingSvc,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// ReconcileGroup aggregates the parent's completed events for the month
// containing referenceDate into one ledger entry. Running it twice with
// unchanged inputs yields the same representative and amount.
func (s *reconciliationService) ReconcileGroup(ctx context.Context, accountID, recurrenceParentID string, referenceDate time.Time, mode string, markPaid bool, actorID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	from, to := monthBounds(referenceDate)
	siblings, err := s.eventRepo.FindCompletedSiblings(ctx, recurrenceParentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch siblings for parent %s: %w", recurrenceParentID, err)
	}

	scoped := siblings[:0]
	for _, sibling := range siblings {
		if sibling.AccountID == accountID {
			scoped = append(scoped, sibling)
		}
	}
	if len(scoped) == 0 {
		return nil, fmt.Errorf("%w: no completed events for parent %s in %s", apperrors.ErrNotFound, recurrenceParentID, from.Format("2006-01"))
	}

	entry, err := s.billingSvc.UpsertForService(ctx, groupBillingInput(scoped, mode, markPaid), actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert group entry for parent %s: %w", recurrenceParentID, err)
	}
	groupsReconciled.Inc()

	logger.Info("Group reconciled",
		slog.String("parent_id", recurrenceParentID),
		slog.Int("siblings", len(scoped)),
		slog.String("entry_id", entry.EntryID),
	)
	return entry, nil
}

// Process partitions the batch into singles and (parent, year, month)
// groups and synchronizes each. Item failures are reported, never fatal to
// the rest of the batch.
func (s *reconciliationService) Process(ctx context.Context, accountID string, req dto.BulkReconcileRequest, actorID string) (*dto.BulkReconcileResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	events, err := s.eventRepo.FindEventsByIDs(ctx, req.EventIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events for bulk reconcile: %w", err)
	}

	var status *domain.EntryStatus
	if req.MarkPaid {
		paid := domain.Paid
		status = &paid
	}

	result := &dto.BulkReconcileResult{}
	singles := make([]domain.ServiceEvent, 0, len(req.EventIDs))
	groups := make(map[string][]domain.ServiceEvent)

	for _, eventID := range req.EventIDs {
		event, ok := events[eventID]
		if !ok || event.AccountID != accountID {
			result.Failed = append(result.Failed, dto.FailedItem{EventID: eventID, Reason: "event not found"})
			continue
		}
		if !event.IsCompleted() {
			result.Failed = append(result.Failed, dto.FailedItem{EventID: eventID, Reason: "event not completed"})
			continue
		}
		if event.RecurrenceParentID == nil {
			singles = append(singles, event)
			continue
		}
		key := groupKey(*event.RecurrenceParentID, *event.CompletedAt)
		groups[key] = append(groups[key], event)
	}

	for _, event := range singles {
		in := dto.ServiceBillingInput{
			Event:     event,
			Amount:    event.RealizedValue,
			Status:    status,
			Duplicate: req.Mode == dto.ModeDuplicate,
		}
		if _, err := s.billingSvc.UpsertForService(ctx, in, actorID); err != nil {
			logger.Warn("Bulk sync failed for event", slog.String("event_id", event.EventID), slog.String("error", err.Error()))
			result.Failed = append(result.Failed, dto.FailedItem{EventID: event.EventID, Reason: err.Error()})
			continue
		}
		result.Processed++
	}

	// Deterministic group order keeps logs and partial failures stable.
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		members := groups[key]
		if _, err := s.billingSvc.UpsertForService(ctx, groupBillingInput(members, req.Mode, req.MarkPaid), actorID); err != nil {
			logger.Warn("Bulk sync failed for group", slog.String("group", key), slog.String("error", err.Error()))
			for _, member := range members {
				result.Failed = append(result.Failed, dto.FailedItem{EventID: member.EventID, Reason: err.Error()})
			}
			continue
		}
		groupsReconciled.Inc()
		result.Processed += len(members)
	}

	logger.Info("Bulk reconciliation finished",
		slog.Int("processed", result.Processed),
		slog.Int("failed", len(result.Failed)),
	)
	return result, nil
}

// groupBillingInput aggregates the group: representative is the sibling
// with the latest completion timestamp, id breaking exact ties, and the
// amount is the sum of all members' realized values.
func groupBillingInput(members []domain.ServiceEvent, mode string, markPaid bool) dto.ServiceBillingInput {
	sort.Slice(members, func(i, j int) bool {
		ci, cj := *members[i].CompletedAt, *members[j].CompletedAt
		if ci.Equal(cj) {
			return members[i].EventID > members[j].EventID
		}
		return ci.After(cj)
	})
	representative := members[0]

	total := decimal.Zero
	for _, member := range members {
		total = total.Add(member.RealizedValue)
	}

	var status *domain.EntryStatus
	if markPaid {
		paid := domain.Paid
		status = &paid
	}

	return dto.ServiceBillingInput{
		Event:  representative,
		Amount: total,
		Description: fmt.Sprintf("Grouped services (%d) ref #%d %s",
			len(members), representative.DisplayNumber, representative.ClientName),
		Status:    status,
		Duplicate: mode == dto.ModeDuplicate,
	}
}

func groupKey(parentID string, completedAt time.Time) string {
	t := completedAt.UTC()
	return fmt.Sprintf("%s|%04d-%02d", parentID, t.Year(), int(t.Month()))
}

func monthBounds(reference time.Time) (time.Time, time.Time) {
	t := reference.UTC()
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}
