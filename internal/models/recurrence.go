package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency mirrors domain.Frequency for DB storage.
type Frequency string

// RecurrenceProfile is the DB representation of a recurrence profile.
// Weekdays are stored as a smallint array (0 = Sunday, per time.Weekday).
type RecurrenceProfile struct {
	ProfileID   string          `db:"profile_id"`
	AccountID   string          `db:"account_id"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	Direction   Direction       `db:"direction"`
	Frequency   Frequency       `db:"frequency"`
	Weekdays    []int16         `db:"weekdays"`
	CategoryID  string          `db:"category_id"`
	StartDate   time.Time       `db:"start_date"`
	EndDate     *time.Time      `db:"end_date"`
	AuditFields
}
