package dto

import (
	"time"

	"github.com/fleetops/fleet_billing_app/internal/core/domain"
)

// ListLedgerEntriesParams filters and pages a ledger listing.
type ListLedgerEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
	Status    *string `form:"status" binding:"omitempty,oneof=PENDING PAID OVERDUE CANCELLED"`
	ProfileID *string `form:"profileID"`
}

// ListLedgerEntriesResponse is a single page of ledger entries.
type ListLedgerEntriesResponse struct {
	Entries   []domain.LedgerEntry `json:"entries"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// UpdateEntryStatusRequest transitions a ledger entry's status.
// PaymentDate is only honored for a transition to PAID; when omitted the
// transition timestamp is used.
type UpdateEntryStatusRequest struct {
	Status      domain.EntryStatus `json:"status" binding:"required,oneof=PENDING PAID OVERDUE CANCELLED"`
	PaymentDate *time.Time         `json:"paymentDate"`
}
