package services

import (
	"context"

	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	"github.com/fleetops/fleet_billing_app/internal/dto"
)

// BillingSyncSvc keeps ledger entries synchronized with completed service
// events: exactly one entry per service link unless duplication is requested.
type BillingSyncSvc interface {
	// UpsertForService creates or updates the ledger entry for a completed
	// event. A fresh entry gets the event's completion date as due date;
	// an in-place update keeps the existing status unless the input sets one.
	UpsertForService(ctx context.Context, in dto.ServiceBillingInput, actorID string) (*domain.LedgerEntry, error)

	// DeleteForService removes every ledger entry linked to the event
	// (defensive cleanup if duplicates ever existed). Returns the number of
	// entries removed.
	DeleteForService(ctx context.Context, serviceEventID string, actorID string) (int64, error)
}

// BillingSvcFacade combines the billing sync service interfaces
type BillingSvcFacade interface {
	BillingSyncSvc
}
