package services

import (
	"context"

	"github.com/fleetops/fleet_billing_app/internal/core/domain"
)

// CategorySvcFacade provisions and lists ledger categories.
type CategorySvcFacade interface {
	// EnsureServiceRevenueCategory returns the account's default service
	// revenue category, creating it if absent. Idempotent: the lookup is by
	// the stable (account, name, direction) identity.
	EnsureServiceRevenueCategory(ctx context.Context, accountID, actorID string) (*domain.Category, error)

	// ListCategories retrieves all categories for an account.
	ListCategories(ctx context.Context, accountID string) ([]domain.Category, error)
}
