package services

import (
	"context"

	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	"github.com/fleetops/fleet_billing_app/internal/dto"
)

// ProfileReaderSvc defines read operations for recurrence profiles
type ProfileReaderSvc interface {
	// GetProfileByID retrieves a specific profile by its ID.
	GetProfileByID(ctx context.Context, accountID, profileID string) (*domain.RecurrenceProfile, error)

	// ListProfiles retrieves all profiles for an account.
	ListProfiles(ctx context.Context, accountID string) ([]domain.RecurrenceProfile, error)
}

// ProfileReconcilerSvc keeps a profile's future ledger schedule consistent
// with its latest definition
type ProfileReconcilerSvc interface {
	// SaveProfile upserts the profile and rewrites its future pending
	// schedule: stale entries removed, fresh ones upserted by
	// (profile, due date), past and paid entries untouched.
	SaveProfile(ctx context.Context, accountID, profileID string, req dto.SaveRecurrenceProfileRequest, actorID string) (*dto.SaveProfileResult, error)

	// DeleteProfile removes the profile and every future pending entry
	// linked to it.
	DeleteProfile(ctx context.Context, accountID, profileID string, actorID string) (*dto.DeleteProfileResult, error)
}

// RecurrenceSvcFacade combines all recurrence profile service interfaces
type RecurrenceSvcFacade interface {
	ProfileReaderSvc
	ProfileReconcilerSvc
}
