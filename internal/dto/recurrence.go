package dto

import (
	"time"

	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveRecurrenceProfileRequest is the payload for creating or replacing a
// recurrence profile. Replacement is full: the stored profile is overwritten
// and the future schedule is rederived from this definition.
type SaveRecurrenceProfileRequest struct {
	Description string           `json:"description" binding:"required,max=255"`
	Amount      decimal.Decimal  `json:"amount" binding:"required"`
	Direction   domain.Direction `json:"direction" binding:"required,oneof=INCOME EXPENSE"`
	Frequency   domain.Frequency `json:"frequency" binding:"required,oneof=DAILY WEEKLY BIWEEKLY MONTHLY"`
	// Weekdays uses time.Weekday numbering (0 = Sunday). Only meaningful
	// for DAILY profiles.
	Weekdays   []int      `json:"weekdays" binding:"omitempty,dive,gte=0,lte=6"`
	CategoryID string     `json:"categoryID"`
	StartDate  time.Time  `json:"startDate" binding:"required"`
	EndDate    *time.Time `json:"endDate"`
}

// SaveProfileResult reports what a profile save rewrote.
type SaveProfileResult struct {
	Profile        domain.RecurrenceProfile `json:"profile"`
	EntriesWritten int                      `json:"entriesWritten"`
	EntriesRemoved int64                    `json:"entriesRemoved"`
}

// DeleteProfileResult reports what a profile delete cleaned up.
type DeleteProfileResult struct {
	EntriesRemoved int64 `json:"entriesRemoved"`
}
