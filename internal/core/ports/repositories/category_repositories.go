package repositories

import (
	"context"

	"github.com/fleetops/fleet_billing_app/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a specific category by its unique identifier.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// FindCategoryByNameAndDirection looks a category up by its stable
	// (account, name, direction) identity.
	FindCategoryByNameAndDirection(ctx context.Context, accountID, name string, direction domain.Direction) (*domain.Category, error)

	// ListCategoriesByAccount retrieves all categories for an account.
	ListCategoriesByAccount(ctx context.Context, accountID string) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory inserts a new category. Returns apperrors.ErrDuplicate if
	// the (account, name, direction) identity is already taken.
	SaveCategory(ctx context.Context, category domain.Category) error
}

// CategoryRepositoryFacade combines all category repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
