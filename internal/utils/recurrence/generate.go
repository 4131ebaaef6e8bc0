package recurrence

import (
	"time"

	"github.com/fleetops/fleet_billing_app/internal/core/domain"
)

// DefaultHorizonMonths bounds how far into the future a schedule is
// projected, which in turn bounds the size of any single write batch.
const DefaultHorizonMonths = 6

// MaxIterations is a safety cap against malformed rules (e.g. a start date
// decades in the past with no end date).
const MaxIterations = 365

// Schedule projects a recurrence profile into its ordered list of pending
// ledger entry drafts, starting at the profile's start date (truncated to
// day) and stopping at the earlier of the profile's end date or
// now + horizonMonths. The function is pure: identical inputs always yield
// an identical sequence, and it never touches the store.
//
// Drafts carry due date, amount, direction, category, profile link and
// PENDING status; EntryID and audit fields are left for the caller.
//
// Monthly stepping uses time.AddDate, which normalizes month-end overflow
// (Jan 31 + 1 month lands in early March). That drift is pinned by tests
// rather than corrected.
func Schedule(p domain.RecurrenceProfile, now time.Time, horizonMonths int) []domain.LedgerEntry {
	if horizonMonths <= 0 {
		horizonMonths = DefaultHorizonMonths
	}

	current := truncateToDay(p.StartDate)
	horizon := truncateToDay(now).AddDate(0, horizonMonths, 0)
	if p.EndDate != nil {
		end := truncateToDay(*p.EndDate)
		if end.Before(horizon) {
			horizon = end
		}
	}

	var drafts []domain.LedgerEntry
	for i := 0; i < MaxIterations && !current.After(horizon); i++ {
		if p.EmitsOn(current) {
			profileID := p.ProfileID
			drafts = append(drafts, domain.LedgerEntry{
				AccountID:   p.AccountID,
				Description: p.Description,
				Amount:      p.Amount,
				Direction:   p.Direction,
				Status:      domain.Pending,
				DueDate:     current,
				CategoryID:  p.CategoryID,
				Origin:      domain.OriginManual,
				ProfileID:   &profileID,
			})
		}
		current = step(current, p.Frequency)
	}
	return drafts
}

// step advances a due date by one recurrence interval.
func step(t time.Time, f domain.Frequency) time.Time {
	switch f {
	case domain.Daily:
		return t.AddDate(0, 0, 1)
	case domain.Weekly:
		return t.AddDate(0, 0, 7)
	case domain.Biweekly:
		return t.AddDate(0, 0, 14)
	case domain.Monthly:
		return t.AddDate(0, 1, 0)
	default:
		// Unknown frequency: jump past any horizon so the loop terminates
		// after the current emission instead of spinning day by day.
		return t.AddDate(100, 0, 0)
	}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
