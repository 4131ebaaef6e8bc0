package services

import (
	"context"
	"time"

	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	"github.com/fleetops/fleet_billing_app/internal/dto"
)

// GroupReconcilerSvc folds sibling completed events under one recurrence
// parent into a single aggregated ledger entry per calendar month.
type GroupReconcilerSvc interface {
	// ReconcileGroup aggregates the parent's completed events for the month
	// containing referenceDate and upserts one entry keyed by the
	// representative (latest completion; id breaks timestamp ties).
	// Idempotent for unchanged inputs.
	ReconcileGroup(ctx context.Context, accountID, recurrenceParentID string, referenceDate time.Time, mode string, markPaid bool, actorID string) (*domain.LedgerEntry, error)
}

// BulkProcessorSvc drives billing sync over a batch of completed events.
type BulkProcessorSvc interface {
	// Process partitions the referenced events into singles and
	// (parent, year, month) groups and synchronizes each. Individual
	// failures are collected in the result, not fatal to the batch.
	Process(ctx context.Context, accountID string, req dto.BulkReconcileRequest, actorID string) (*dto.BulkReconcileResult, error)
}

// ReconciliationSvcFacade combines group and bulk reconciliation
type ReconciliationSvcFacade interface {
	GroupReconcilerSvc
	BulkProcessorSvc
}
