package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the repetition cadence of a recurrence profile.
type Frequency string

const (
	Daily    Frequency = "DAILY"
	Weekly   Frequency = "WEEKLY"
	Biweekly Frequency = "BIWEEKLY"
	Monthly  Frequency = "MONTHLY"
)

// RecurrenceProfile describes a repeating financial obligation. The future
// ledger schedule is always derived in full from the current profile
// definition; the profile's lifetime is independent of the entries it spawns.
type RecurrenceProfile struct {
	ProfileID   string          `json:"profileID"` // Primary Key (UUID)
	AccountID   string          `json:"accountID"` // Owning account (Not Null)
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   Direction       `json:"direction"`
	Frequency   Frequency       `json:"frequency"`
	// Weekdays restricts DAILY profiles to the listed weekdays.
	// Empty means every day. Ignored for other frequencies.
	Weekdays   []time.Weekday `json:"weekdays,omitempty"`
	CategoryID string         `json:"categoryID"`
	StartDate  time.Time      `json:"startDate"`
	EndDate    *time.Time     `json:"endDate,omitempty"` // nil = open ended
	AuditFields
}

// EmitsOn reports whether the profile's weekday filter admits the given day.
func (p RecurrenceProfile) EmitsOn(day time.Time) bool {
	if p.Frequency != Daily || len(p.Weekdays) == 0 {
		return true
	}
	wd := day.Weekday()
	for _, allowed := range p.Weekdays {
		if wd == allowed {
			return true
		}
	}
	return false
}
