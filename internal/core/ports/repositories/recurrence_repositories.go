package repositories

import (
	"context"

	"github.com/fleetops/fleet_billing_app/internal/core/domain"
)

// RecurrenceProfileReader defines read operations for recurrence profiles
type RecurrenceProfileReader interface {
	// FindProfileByID retrieves a specific profile by its unique identifier.
	FindProfileByID(ctx context.Context, profileID string) (*domain.RecurrenceProfile, error)

	// ListProfilesByAccount retrieves all profiles for an account.
	ListProfilesByAccount(ctx context.Context, accountID string) ([]domain.RecurrenceProfile, error)
}

// RecurrenceProfileWriter defines write operations for recurrence profiles
type RecurrenceProfileWriter interface {
	// SaveProfile inserts a profile or replaces it in full by id.
	SaveProfile(ctx context.Context, profile domain.RecurrenceProfile) error

	// DeleteProfile removes a profile. Returns apperrors.ErrNotFound if it
	// does not exist.
	DeleteProfile(ctx context.Context, profileID string) error
}

// RecurrenceRepositoryFacade combines all profile repository interfaces
type RecurrenceRepositoryFacade interface {
	RecurrenceProfileReader
	RecurrenceProfileWriter
}
