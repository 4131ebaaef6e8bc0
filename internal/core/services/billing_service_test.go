package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fleetops/fleet_billing_app/internal/apperrors"
	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	portssvc "github.com/fleetops/fleet_billing_app/internal/core/ports/services"
	"github.com/fleetops/fleet_billing_app/internal/core/services"
	"github.com/fleetops/fleet_billing_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var testNow = time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type BillingServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo  *MockLedgerRepository
	mockCategorySvc *MockCategoryService
	service         portssvc.BillingSvcFacade
}

func (suite *BillingServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockCategorySvc = new(MockCategoryService)
	suite.service = services.NewBillingService(suite.mockLedgerRepo, suite.mockCategorySvc, services.WithClock(fixedClock))
}

func completedEvent(eventID, accountID string, value int64) domain.ServiceEvent {
	completedAt := time.Date(2025, time.March, 10, 15, 0, 0, 0, time.UTC)
	return domain.ServiceEvent{
		EventID:       eventID,
		AccountID:     accountID,
		DisplayNumber: 42,
		ClientName:    "Acme Corp",
		Kind:          domain.KindRental,
		CompletedAt:   &completedAt,
		RealizedValue: decimal.NewFromInt(value),
	}
}

func serviceCategory(accountID string) *domain.Category {
	return &domain.Category{
		CategoryID: "cat-1",
		AccountID:  accountID,
		Name:       domain.ServiceRevenueCategoryName,
		Direction:  domain.Income,
		IsDefault:  true,
	}
}

func (suite *BillingServiceTestSuite) TestUpsertForService_InsertsNewEntry() {
	ctx := context.Background()
	event := completedEvent("evt-1", "acc-1", 100)

	suite.mockCategorySvc.On("EnsureServiceRevenueCategory", ctx, "acc-1", "actor-1").Return(serviceCategory("acc-1"), nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByServiceEventID", ctx, "evt-1").Return([]domain.LedgerEntry{}, nil).Once()
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.ServiceEventID != nil && *e.ServiceEventID == "evt-1" &&
			e.Amount.Equal(decimal.NewFromInt(100)) &&
			e.Status == domain.Pending &&
			e.Origin == domain.OriginService &&
			e.Direction == domain.Income &&
			e.DueDate.Equal(*event.CompletedAt)
	})).Return(nil).Once()

	entry, err := suite.service.UpsertForService(ctx, dto.ServiceBillingInput{Event: event, Amount: event.RealizedValue}, "actor-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal("Service #42 (Acme Corp)", entry.Description)
	suite.Nil(entry.PaymentDate)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockCategorySvc.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestUpsertForService_UpdatesInPlaceIdempotently() {
	// A corrected value must land in the one existing entry, not spawn a
	// second one.
	ctx := context.Background()
	event := completedEvent("evt-1", "acc-1", 150)
	eventID := event.EventID
	existing := domain.LedgerEntry{
		EntryID:        "entry-1",
		AccountID:      "acc-1",
		Amount:         decimal.NewFromInt(100),
		Status:         domain.Paid,
		Origin:         domain.OriginService,
		ServiceEventID: &eventID,
	}

	suite.mockCategorySvc.On("EnsureServiceRevenueCategory", ctx, "acc-1", "actor-1").Return(serviceCategory("acc-1"), nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByServiceEventID", ctx, "evt-1").Return([]domain.LedgerEntry{existing}, nil).Once()
	suite.mockLedgerRepo.On("UpdateEntry", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.EntryID == "entry-1" && e.Amount.Equal(decimal.NewFromInt(150)) && e.Status == domain.Paid
	})).Return(nil).Once()

	entry, err := suite.service.UpsertForService(ctx, dto.ServiceBillingInput{Event: event, Amount: event.RealizedValue}, "actor-1")

	suite.Require().NoError(err)
	suite.Equal("entry-1", entry.EntryID)
	// Status untouched on in-place update when the input does not set one.
	suite.Equal(domain.Paid, entry.Status)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestUpsertForService_DuplicateModeInsertsSecondEntry() {
	ctx := context.Background()
	event := completedEvent("evt-1", "acc-1", 100)
	eventID := event.EventID
	existing := domain.LedgerEntry{EntryID: "entry-1", ServiceEventID: &eventID}

	suite.mockCategorySvc.On("EnsureServiceRevenueCategory", ctx, "acc-1", "actor-1").Return(serviceCategory("acc-1"), nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByServiceEventID", ctx, "evt-1").Return([]domain.LedgerEntry{existing}, nil).Once()
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Once()

	entry, err := suite.service.UpsertForService(ctx, dto.ServiceBillingInput{Event: event, Amount: event.RealizedValue, Duplicate: true}, "actor-1")

	suite.Require().NoError(err)
	suite.NotEqual("entry-1", entry.EntryID)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestUpsertForService_MarkPaidRecordsPaymentDate() {
	ctx := context.Background()
	event := completedEvent("evt-1", "acc-1", 100)
	paid := domain.Paid

	suite.mockCategorySvc.On("EnsureServiceRevenueCategory", ctx, "acc-1", "actor-1").Return(serviceCategory("acc-1"), nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByServiceEventID", ctx, "evt-1").Return([]domain.LedgerEntry{}, nil).Once()
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Once()

	entry, err := suite.service.UpsertForService(ctx, dto.ServiceBillingInput{Event: event, Amount: event.RealizedValue, Status: &paid}, "actor-1")

	suite.Require().NoError(err)
	suite.Equal(domain.Paid, entry.Status)
	suite.Require().NotNil(entry.PaymentDate)
	suite.True(entry.PaymentDate.Equal(*event.CompletedAt))
}

func (suite *BillingServiceTestSuite) TestUpsertForService_RejectsIncompleteEvent() {
	ctx := context.Background()
	event := completedEvent("evt-1", "acc-1", 100)
	event.CompletedAt = nil

	entry, err := suite.service.UpsertForService(ctx, dto.ServiceBillingInput{Event: event, Amount: decimal.NewFromInt(100)}, "actor-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, services.ErrEventNotCompleted)
	suite.mockCategorySvc.AssertNotCalled(suite.T(), "EnsureServiceRevenueCategory", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BillingServiceTestSuite) TestUpsertForService_RejectsNegativeAmount() {
	ctx := context.Background()
	event := completedEvent("evt-1", "acc-1", 100)

	entry, err := suite.service.UpsertForService(ctx, dto.ServiceBillingInput{Event: event, Amount: decimal.NewFromInt(-1)}, "actor-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, services.ErrNegativeAmount)
}

func (suite *BillingServiceTestSuite) TestUpsertForService_ZeroAmountAllowed() {
	ctx := context.Background()
	event := completedEvent("evt-1", "acc-1", 0)

	suite.mockCategorySvc.On("EnsureServiceRevenueCategory", ctx, "acc-1", "actor-1").Return(serviceCategory("acc-1"), nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByServiceEventID", ctx, "evt-1").Return([]domain.LedgerEntry{}, nil).Once()
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Once()

	entry, err := suite.service.UpsertForService(ctx, dto.ServiceBillingInput{Event: event, Amount: decimal.Zero}, "actor-1")

	suite.Require().NoError(err)
	suite.True(entry.Amount.IsZero())
}

func (suite *BillingServiceTestSuite) TestDeleteForService() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("DeleteEntriesByServiceEventID", ctx, "evt-1").Return(int64(2), nil).Once()

	removed, err := suite.service.DeleteForService(ctx, "evt-1", "actor-1")

	suite.Require().NoError(err)
	suite.Equal(int64(2), removed)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestUpsertForService_LookupNotFoundTreatedAsEmpty() {
	ctx := context.Background()
	event := completedEvent("evt-1", "acc-1", 100)

	suite.mockCategorySvc.On("EnsureServiceRevenueCategory", ctx, "acc-1", "actor-1").Return(serviceCategory("acc-1"), nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByServiceEventID", ctx, "evt-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Once()

	entry, err := suite.service.UpsertForService(ctx, dto.ServiceBillingInput{Event: event, Amount: event.RealizedValue}, "actor-1")

	suite.Require().NoError(err)
	suite.NotNil(entry)
}

func TestBillingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BillingServiceTestSuite))
}
