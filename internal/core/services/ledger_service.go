package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetops/fleet_billing_app/internal/apperrors"
	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	portsrepo "github.com/fleetops/fleet_billing_app/internal/core/ports/repositories"
	portssvc "github.com/fleetops/fleet_billing_app/internal/core/ports/services"
	"github.com/fleetops/fleet_billing_app/internal/dto"
)

const defaultListLimit = 50
const maxListLimit = 200

// ledgerService exposes ledger entry listing and status transitions.
type ledgerService struct {
	settings
	ledgerRepo portsrepo.LedgerRepositoryWithTx
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryWithTx, opts ...Option) portssvc.LedgerSvcFacade {
	return &ledgerService{
		settings:   applyOptions(opts),
		ledgerRepo: ledgerRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetEntryByID retrieves a specific entry scoped to the account.
func (s *ledgerService) GetEntryByID(ctx context.Context, accountID, entryID string) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.AccountID != accountID {
		// Obscure existence
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

// ListEntries retrieves a paginated, filtered listing for the account.
func (s *ledgerService) ListEntries(ctx context.Context, accountID string, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	var status *domain.EntryStatus
	if params.Status != nil {
		st := domain.EntryStatus(*params.Status)
		status = &st
	}

	entries, nextToken, err := s.ledgerRepo.ListEntriesByAccount(ctx, accountID, limit, params.NextToken, status, params.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	return &dto.ListLedgerEntriesResponse{Entries: entries, NextToken: nextToken}, nil
}

// UpdateEntryStatus transitions an entry. A transition to PAID records the
// payment date (caller-supplied or now); leaving PAID clears it.
func (s *ledgerService) UpdateEntryStatus(ctx context.Context, accountID, entryID string, req dto.UpdateEntryStatusRequest, actorID string) (*domain.LedgerEntry, error) {
	entry, err := s.GetEntryByID(ctx, accountID, entryID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var paymentDate *time.Time
	if req.Status == domain.Paid {
		paymentDate = req.PaymentDate
		if paymentDate == nil {
			paymentDate = &now
		}
	}

	if err := s.ledgerRepo.UpdateEntryStatus(ctx, entryID, req.Status, paymentDate, actorID, now); err != nil {
		return nil, fmt.Errorf("failed to update status of entry %s: %w", entryID, err)
	}

	entry.Status = req.Status
	entry.PaymentDate = paymentDate
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorID
	return entry, nil
}
