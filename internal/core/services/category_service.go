package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fleetops/fleet_billing_app/internal/apperrors"
	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	portsrepo "github.com/fleetops/fleet_billing_app/internal/core/ports/repositories"
	portssvc "github.com/fleetops/fleet_billing_app/internal/core/ports/services"
	"github.com/fleetops/fleet_billing_app/internal/middleware"
)

// categoryService provisions and lists ledger categories.
type categoryService struct {
	settings
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade, opts ...Option) portssvc.CategorySvcFacade {
	return &categoryService{
		settings:     applyOptions(opts),
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// EnsureServiceRevenueCategory returns the default service revenue category
// for the account, creating it on first use. The lookup key
// (account, name, direction) is backed by a unique index, so concurrent
// provisioning collapses to a single row.
func (s *categoryService) EnsureServiceRevenueCategory(ctx context.Context, accountID, actorID string) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.categoryRepo.FindCategoryByNameAndDirection(ctx, accountID, domain.ServiceRevenueCategoryName, domain.Income)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up service revenue category: %w", err)
	}

	now := s.now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		AccountID:  accountID,
		Name:       domain.ServiceRevenueCategoryName,
		Direction:  domain.Income,
		Color:      domain.ServiceRevenueCategoryColor,
		IsDefault:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a provisioning race; the winner's row is the one we want.
			return s.categoryRepo.FindCategoryByNameAndDirection(ctx, accountID, domain.ServiceRevenueCategoryName, domain.Income)
		}
		return nil, fmt.Errorf("failed to create service revenue category: %w", err)
	}

	logger.Info("Provisioned default service revenue category", slog.String("category_id", category.CategoryID), slog.String("account_id", accountID))
	return &category, nil
}

// ListCategories retrieves all categories for an account.
func (s *categoryService) ListCategories(ctx context.Context, accountID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategoriesByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
