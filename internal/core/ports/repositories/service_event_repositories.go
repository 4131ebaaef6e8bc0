package repositories

import (
	"context"
	"time"

	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ServiceEventReader defines read operations for service event data
type ServiceEventReader interface {
	// FindEventByID retrieves a specific event by its unique identifier.
	FindEventByID(ctx context.Context, eventID string) (*domain.ServiceEvent, error)

	// FindEventsByIDs retrieves multiple events keyed by id. Missing ids are
	// simply absent from the result.
	FindEventsByIDs(ctx context.Context, eventIDs []string) (map[string]domain.ServiceEvent, error)

	// FindCompletedSiblings retrieves the completed events sharing a
	// recurrence parent whose completion timestamp falls in [from, to).
	// The range predicate is evaluated server-side.
	FindCompletedSiblings(ctx context.Context, recurrenceParentID string, from, to time.Time) ([]domain.ServiceEvent, error)
}

// ServiceEventWriter defines write operations for service event data
type ServiceEventWriter interface {
	// SaveEvent inserts a new event, assigning the next per-account display
	// number.
	SaveEvent(ctx context.Context, event domain.ServiceEvent) (int64, error)

	// MarkEventCompleted records the completion timestamp and realized value.
	MarkEventCompleted(ctx context.Context, eventID string, completedAt time.Time, realizedValue decimal.Decimal, updatedBy string) error

	// DeleteEvent removes an event. Returns apperrors.ErrNotFound if it does
	// not exist.
	DeleteEvent(ctx context.Context, eventID string) error
}

// ServiceEventRepositoryFacade combines all service event repository interfaces
type ServiceEventRepositoryFacade interface {
	ServiceEventReader
	ServiceEventWriter
}
