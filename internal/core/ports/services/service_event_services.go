package services

import (
	"context"

	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	"github.com/fleetops/fleet_billing_app/internal/dto"
)

// ServiceEventSvcFacade records field work and feeds billing sync.
type ServiceEventSvcFacade interface {
	// GetEventByID retrieves a specific event scoped to the account.
	GetEventByID(ctx context.Context, accountID, eventID string) (*domain.ServiceEvent, error)

	// RegisterEvent records a new event; when the payload already carries a
	// completion timestamp, billing sync runs immediately.
	RegisterEvent(ctx context.Context, accountID string, req dto.RegisterServiceEventRequest, actorID string) (*domain.ServiceEvent, error)

	// CompleteEvent marks an event completed and triggers billing sync.
	// A sync failure is logged but does not fail the completion.
	CompleteEvent(ctx context.Context, accountID, eventID string, req dto.CompleteServiceEventRequest, actorID string) (*domain.ServiceEvent, error)

	// DeleteEvent removes the event and every ledger entry linked to it.
	DeleteEvent(ctx context.Context, accountID, eventID string, actorID string) error
}
