package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors domain.EntryStatus for DB storage.
type EntryStatus string

// EntryOrigin mirrors domain.EntryOrigin for DB storage.
type EntryOrigin string

// LedgerEntry is the DB representation of a ledger entry.
type LedgerEntry struct {
	EntryID        string          `db:"entry_id"`
	AccountID      string          `db:"account_id"`
	Description    string          `db:"description"`
	Amount         decimal.Decimal `db:"amount"`
	Direction      Direction       `db:"direction"`
	Status         EntryStatus     `db:"status"`
	DueDate        time.Time       `db:"due_date"`
	PaymentDate    *time.Time      `db:"payment_date"`
	CategoryID     string          `db:"category_id"`
	Origin         EntryOrigin     `db:"origin"`
	ServiceEventID *string         `db:"service_event_id"`
	ProfileID      *string         `db:"profile_id"`
	AssignedUserID string          `db:"assigned_user"`
	VehicleID      string          `db:"vehicle_id"`
	AuditFields
}
