package services

import (
	"context"

	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	"github.com/fleetops/fleet_billing_app/internal/dto"
)

// LedgerReaderSvc defines read operations for ledger entries
type LedgerReaderSvc interface {
	// GetEntryByID retrieves a specific entry scoped to the account.
	GetEntryByID(ctx context.Context, accountID, entryID string) (*domain.LedgerEntry, error)

	// ListEntries retrieves a paginated, filtered listing for the account.
	ListEntries(ctx context.Context, accountID string, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error)
}

// LedgerWriterSvc defines status transitions for ledger entries
type LedgerWriterSvc interface {
	// UpdateEntryStatus transitions an entry (mark paid, cancel, ...).
	UpdateEntryStatus(ctx context.Context, accountID, entryID string, req dto.UpdateEntryStatusRequest, actorID string) (*domain.LedgerEntry, error)
}

// LedgerSvcFacade combines the ledger entry service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
