package services_test

import (
	"context"
	"time"

	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	"github.com/fleetops/fleet_billing_app/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntriesByServiceEventID(ctx context.Context, serviceEventID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, serviceEventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindFuturePendingByProfile(ctx context.Context, profileID string, after time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, profileID, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string, status *domain.EntryStatus, profileID *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken, status, profileID)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, paymentDate *time.Time, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, status, paymentDate, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpsertScheduleEntries(ctx context.Context, entries []domain.LedgerEntry, batchSize int) error {
	args := m.Called(ctx, entries, batchSize)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteFuturePendingByProfile(ctx context.Context, profileID string, after time.Time, keepDueDates []time.Time) (int64, error) {
	args := m.Called(ctx, profileID, after, keepDueDates)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) DeleteEntriesByServiceEventID(ctx context.Context, serviceEventID string) (int64, error) {
	args := m.Called(ctx, serviceEventID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockLedgerRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock RecurrenceRepository ---
type MockRecurrenceRepository struct {
	mock.Mock
}

func (m *MockRecurrenceRepository) FindProfileByID(ctx context.Context, profileID string) (*domain.RecurrenceProfile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurrenceProfile), args.Error(1)
}

func (m *MockRecurrenceRepository) ListProfilesByAccount(ctx context.Context, accountID string) ([]domain.RecurrenceProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurrenceProfile), args.Error(1)
}

func (m *MockRecurrenceRepository) SaveProfile(ctx context.Context, profile domain.RecurrenceProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockRecurrenceRepository) DeleteProfile(ctx context.Context, profileID string) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}

// --- Mock ServiceEventRepository ---
type MockServiceEventRepository struct {
	mock.Mock
}

func (m *MockServiceEventRepository) FindEventByID(ctx context.Context, eventID string) (*domain.ServiceEvent, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceEvent), args.Error(1)
}

func (m *MockServiceEventRepository) FindEventsByIDs(ctx context.Context, eventIDs []string) (map[string]domain.ServiceEvent, error) {
	args := m.Called(ctx, eventIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.ServiceEvent), args.Error(1)
}

func (m *MockServiceEventRepository) FindCompletedSiblings(ctx context.Context, recurrenceParentID string, from, to time.Time) ([]domain.ServiceEvent, error) {
	args := m.Called(ctx, recurrenceParentID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceEvent), args.Error(1)
}

func (m *MockServiceEventRepository) SaveEvent(ctx context.Context, event domain.ServiceEvent) (int64, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockServiceEventRepository) MarkEventCompleted(ctx context.Context, eventID string, completedAt time.Time, realizedValue decimal.Decimal, updatedBy string) error {
	args := m.Called(ctx, eventID, completedAt, realizedValue, updatedBy)
	return args.Error(0)
}

func (m *MockServiceEventRepository) DeleteEvent(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryByNameAndDirection(ctx context.Context, accountID, name string, direction domain.Direction) (*domain.Category, error) {
	args := m.Called(ctx, accountID, name, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategoriesByAccount(ctx context.Context, accountID string) ([]domain.Category, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// --- Mock AssignmentRepository ---
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.VehicleAssignment, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindOpenAssignmentsByVehicle(ctx context.Context, vehicleID string) ([]domain.VehicleAssignment, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VehicleAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) SaveAssignment(ctx context.Context, assignment domain.VehicleAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) UpdateAssignment(ctx context.Context, assignment domain.VehicleAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

// --- Mock BillingService ---
type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) UpsertForService(ctx context.Context, in dto.ServiceBillingInput, actorID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, in, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockBillingService) DeleteForService(ctx context.Context, serviceEventID string, actorID string) (int64, error) {
	args := m.Called(ctx, serviceEventID, actorID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock CategoryService ---
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) EnsureServiceRevenueCategory(ctx context.Context, accountID, actorID string) (*domain.Category, error) {
	args := m.Called(ctx, accountID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) ListCategories(ctx context.Context, accountID string) ([]domain.Category, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}
