package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fleetops/fleet_billing_app/internal/apperrors"
	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	portsrepo "github.com/fleetops/fleet_billing_app/internal/core/ports/repositories"
	"github.com/fleetops/fleet_billing_app/internal/models"
	"github.com/fleetops/fleet_billing_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCategoryRepository struct {
	pool *pgxpool.Pool
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{pool: pool}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, account_id, name, direction, color, is_default, created_at, created_by, last_updated_at, last_updated_by`

// SaveCategory inserts a new category. A unique violation on the
// (account, name, direction) identity maps to ErrDuplicate so the service
// layer can resolve provisioning races.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	modelCat := mapping.ToModelCategory(category)

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		modelCat.CategoryID,
		modelCat.AccountID,
		modelCat.Name,
		modelCat.Direction,
		modelCat.Color,
		modelCat.IsDefault,
		modelCat.CreatedAt,
		modelCat.CreatedBy,
		modelCat.LastUpdatedAt,
		modelCat.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: category %q already exists for account %s", apperrors.ErrDuplicate, modelCat.Name, modelCat.AccountID)
			}
		}
		return fmt.Errorf("failed to save category %s: %w", modelCat.CategoryID, err)
	}
	return nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1;`

	modelCat, err := scanCategory(r.pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}

	domainCat := mapping.ToDomainCategory(modelCat)
	return &domainCat, nil
}

// FindCategoryByNameAndDirection looks a category up by its stable identity.
func (r *PgxCategoryRepository) FindCategoryByNameAndDirection(ctx context.Context, accountID, name string, direction domain.Direction) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE account_id = $1 AND name = $2 AND direction = $3;`

	modelCat, err := scanCategory(r.pool.QueryRow(ctx, query, accountID, name, string(direction)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category %q for account %s: %w", name, accountID, err)
	}

	domainCat := mapping.ToDomainCategory(modelCat)
	return &domainCat, nil
}

// ListCategoriesByAccount retrieves all categories for an account.
func (r *PgxCategoryRepository) ListCategoriesByAccount(ctx context.Context, accountID string) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE account_id = $1 ORDER BY name;`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		modelCat, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, mapping.ToDomainCategory(modelCat))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

func scanCategory(row pgx.Row) (models.Category, error) {
	var modelCat models.Category
	err := row.Scan(
		&modelCat.CategoryID,
		&modelCat.AccountID,
		&modelCat.Name,
		&modelCat.Direction,
		&modelCat.Color,
		&modelCat.IsDefault,
		&modelCat.CreatedAt,
		&modelCat.CreatedBy,
		&modelCat.LastUpdatedAt,
		&modelCat.LastUpdatedBy,
	)
	return modelCat, err
}
