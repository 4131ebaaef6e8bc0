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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ServiceEventServiceTestSuite struct {
	suite.Suite
	mockEventRepo  *MockServiceEventRepository
	mockBillingSvc *MockBillingService
	service        portssvc.ServiceEventSvcFacade
}

func (suite *ServiceEventServiceTestSuite) SetupTest() {
	suite.mockEventRepo = new(MockServiceEventRepository)
	suite.mockBillingSvc = new(MockBillingService)
	suite.service = services.NewServiceEventService(suite.mockEventRepo, suite.mockBillingSvc, services.WithClock(fixedClock))
}

func (suite *ServiceEventServiceTestSuite) TestRegisterEvent_AssignsDisplayNumber() {
	ctx := context.Background()
	req := dto.RegisterServiceEventRequest{
		ClientName:    "Acme Corp",
		Kind:          domain.KindRental,
		RealizedValue: decimal.NewFromInt(500),
	}

	suite.mockEventRepo.On("SaveEvent", ctx, mock.MatchedBy(func(e domain.ServiceEvent) bool {
		return e.AccountID == "acc-1" && e.ClientName == "Acme Corp" && e.CompletedAt == nil
	})).Return(int64(17), nil).Once()

	event, err := suite.service.RegisterEvent(ctx, "acc-1", req, "actor-1")

	suite.Require().NoError(err)
	suite.Equal(int64(17), event.DisplayNumber)
	// Not completed: no billing side effect.
	suite.mockBillingSvc.AssertNotCalled(suite.T(), "UpsertForService", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ServiceEventServiceTestSuite) TestRegisterEvent_CompletedPayloadSyncsImmediately() {
	ctx := context.Background()
	completedAt := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	req := dto.RegisterServiceEventRequest{
		ClientName:    "Acme Corp",
		Kind:          domain.KindOperation,
		RealizedValue: decimal.NewFromInt(500),
		CompletedAt:   &completedAt,
	}

	suite.mockEventRepo.On("SaveEvent", ctx, mock.AnythingOfType("domain.ServiceEvent")).Return(int64(18), nil).Once()
	suite.mockBillingSvc.On("UpsertForService", ctx, mock.MatchedBy(func(in dto.ServiceBillingInput) bool {
		return in.Amount.Equal(decimal.NewFromInt(500)) && in.Event.DisplayNumber == 18
	}), "actor-1").Return(&domain.LedgerEntry{}, nil).Once()

	event, err := suite.service.RegisterEvent(ctx, "acc-1", req, "actor-1")

	suite.Require().NoError(err)
	suite.True(event.IsCompleted())
	suite.mockBillingSvc.AssertExpectations(suite.T())
}

func (suite *ServiceEventServiceTestSuite) TestCompleteEvent_MarksAndSyncs() {
	ctx := context.Background()
	stored := &domain.ServiceEvent{
		EventID:       "evt-1",
		AccountID:     "acc-1",
		DisplayNumber: 3,
		ClientName:    "Acme Corp",
		RealizedValue: decimal.NewFromInt(100),
	}
	newValue := decimal.NewFromInt(175)
	completedAt := time.Date(2025, time.March, 19, 16, 30, 0, 0, time.UTC)

	suite.mockEventRepo.On("FindEventByID", ctx, "evt-1").Return(stored, nil).Once()
	suite.mockEventRepo.On("MarkEventCompleted", ctx, "evt-1", completedAt, newValue, "actor-1").Return(nil).Once()
	suite.mockBillingSvc.On("UpsertForService", ctx, mock.MatchedBy(func(in dto.ServiceBillingInput) bool {
		return in.Event.EventID == "evt-1" && in.Amount.Equal(newValue) && in.Status == nil
	}), "actor-1").Return(&domain.LedgerEntry{}, nil).Once()

	event, err := suite.service.CompleteEvent(ctx, "acc-1", "evt-1", dto.CompleteServiceEventRequest{
		CompletedAt:   &completedAt,
		RealizedValue: &newValue,
	}, "actor-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(event.CompletedAt)
	suite.True(event.CompletedAt.Equal(completedAt))
	suite.True(event.RealizedValue.Equal(newValue))
	suite.mockEventRepo.AssertExpectations(suite.T())
	suite.mockBillingSvc.AssertExpectations(suite.T())
}

func (suite *ServiceEventServiceTestSuite) TestCompleteEvent_DefaultsToClock() {
	ctx := context.Background()
	stored := &domain.ServiceEvent{EventID: "evt-1", AccountID: "acc-1", RealizedValue: decimal.NewFromInt(100)}

	suite.mockEventRepo.On("FindEventByID", ctx, "evt-1").Return(stored, nil).Once()
	suite.mockEventRepo.On("MarkEventCompleted", ctx, "evt-1", testNow, stored.RealizedValue, "actor-1").Return(nil).Once()
	suite.mockBillingSvc.On("UpsertForService", ctx, mock.Anything, "actor-1").Return(&domain.LedgerEntry{}, nil).Once()

	event, err := suite.service.CompleteEvent(ctx, "acc-1", "evt-1", dto.CompleteServiceEventRequest{}, "actor-1")

	suite.Require().NoError(err)
	suite.True(event.CompletedAt.Equal(testNow))
}

func (suite *ServiceEventServiceTestSuite) TestCompleteEvent_SyncFailureDoesNotFailCompletion() {
	ctx := context.Background()
	stored := &domain.ServiceEvent{EventID: "evt-1", AccountID: "acc-1", RealizedValue: decimal.NewFromInt(100)}

	suite.mockEventRepo.On("FindEventByID", ctx, "evt-1").Return(stored, nil).Once()
	suite.mockEventRepo.On("MarkEventCompleted", ctx, "evt-1", mock.Anything, mock.Anything, "actor-1").Return(nil).Once()
	suite.mockBillingSvc.On("UpsertForService", ctx, mock.Anything, "actor-1").Return(nil, assert.AnError).Once()

	event, err := suite.service.CompleteEvent(ctx, "acc-1", "evt-1", dto.CompleteServiceEventRequest{}, "actor-1")

	suite.Require().NoError(err)
	suite.True(event.IsCompleted())
	suite.mockBillingSvc.AssertExpectations(suite.T())
}

func (suite *ServiceEventServiceTestSuite) TestCompleteEvent_MarkPaid() {
	ctx := context.Background()
	stored := &domain.ServiceEvent{EventID: "evt-1", AccountID: "acc-1", RealizedValue: decimal.NewFromInt(100)}

	suite.mockEventRepo.On("FindEventByID", ctx, "evt-1").Return(stored, nil).Once()
	suite.mockEventRepo.On("MarkEventCompleted", ctx, "evt-1", mock.Anything, mock.Anything, "actor-1").Return(nil).Once()
	suite.mockBillingSvc.On("UpsertForService", ctx, mock.MatchedBy(func(in dto.ServiceBillingInput) bool {
		return in.Status != nil && *in.Status == domain.Paid
	}), "actor-1").Return(&domain.LedgerEntry{}, nil).Once()

	_, err := suite.service.CompleteEvent(ctx, "acc-1", "evt-1", dto.CompleteServiceEventRequest{MarkPaid: true}, "actor-1")

	suite.Require().NoError(err)
	suite.mockBillingSvc.AssertExpectations(suite.T())
}

func (suite *ServiceEventServiceTestSuite) TestDeleteEvent_RemovesLinkedEntries() {
	ctx := context.Background()
	stored := &domain.ServiceEvent{EventID: "evt-1", AccountID: "acc-1"}

	suite.mockEventRepo.On("FindEventByID", ctx, "evt-1").Return(stored, nil).Once()
	suite.mockBillingSvc.On("DeleteForService", ctx, "evt-1", "actor-1").Return(int64(1), nil).Once()
	suite.mockEventRepo.On("DeleteEvent", ctx, "evt-1").Return(nil).Once()

	err := suite.service.DeleteEvent(ctx, "acc-1", "evt-1", "actor-1")

	suite.Require().NoError(err)
	suite.mockEventRepo.AssertExpectations(suite.T())
	suite.mockBillingSvc.AssertExpectations(suite.T())
}

func (suite *ServiceEventServiceTestSuite) TestDeleteEvent_CleanupFailureSurfaces() {
	ctx := context.Background()
	stored := &domain.ServiceEvent{EventID: "evt-1", AccountID: "acc-1"}

	suite.mockEventRepo.On("FindEventByID", ctx, "evt-1").Return(stored, nil).Once()
	suite.mockBillingSvc.On("DeleteForService", ctx, "evt-1", "actor-1").Return(int64(0), assert.AnError).Once()

	err := suite.service.DeleteEvent(ctx, "acc-1", "evt-1", "actor-1")

	suite.Require().Error(err)
	suite.mockEventRepo.AssertNotCalled(suite.T(), "DeleteEvent", mock.Anything, mock.Anything)
}

func (suite *ServiceEventServiceTestSuite) TestGetEventByID_ForeignAccount() {
	ctx := context.Background()
	stored := &domain.ServiceEvent{EventID: "evt-1", AccountID: "other-account"}

	suite.mockEventRepo.On("FindEventByID", ctx, "evt-1").Return(stored, nil).Once()

	event, err := suite.service.GetEventByID(ctx, "acc-1", "evt-1")

	suite.Require().Error(err)
	suite.Nil(event)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestServiceEventServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceEventServiceTestSuite))
}
