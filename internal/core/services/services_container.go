package services

import (
	portsrepo "github.com/fleetops/fleet_billing_app/internal/core/ports/repositories"
	portssvc "github.com/fleetops/fleet_billing_app/internal/core/ports/services"
	"github.com/fleetops/fleet_billing_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Category provisioning first since billing depends on it
	container.Category = NewCategoryService(repos.CategoryRepo)

	container.Billing = NewBillingService(repos.LedgerRepo, container.Category)
	container.Recurrence = NewRecurrenceService(repos.ProfileRepo, repos.LedgerRepo, cfg.GenerationHorizonMonths, cfg.WriteBatchSize)
	container.Reconciliation = NewReconciliationService(repos.EventRepo, container.Billing)
	container.Ledger = NewLedgerService(repos.LedgerRepo)
	container.Assignment = NewAssignmentService(repos.AssignmentRepo)
	container.ServiceEvent = NewServiceEventService(repos.EventRepo, container.Billing)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.RecurrenceSvcFacade     = (*recurrenceService)(nil)
	_ portssvc.BillingSvcFacade        = (*billingService)(nil)
	_ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)
	_ portssvc.LedgerSvcFacade         = (*ledgerService)(nil)
	_ portssvc.CategorySvcFacade       = (*categoryService)(nil)
	_ portssvc.AssignmentSvcFacade     = (*assignmentService)(nil)
	_ portssvc.ServiceEventSvcFacade   = (*serviceEventService)(nil)
)
