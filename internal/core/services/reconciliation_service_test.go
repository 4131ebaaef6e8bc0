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

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockEventRepo  *MockServiceEventRepository
	mockBillingSvc *MockBillingService
	service        portssvc.ReconciliationSvcFacade
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockEventRepo = new(MockServiceEventRepository)
	suite.mockBillingSvc = new(MockBillingService)
	suite.service = services.NewReconciliationService(suite.mockEventRepo, suite.mockBillingSvc, services.WithClock(fixedClock))
}

func sibling(eventID string, parentID string, completedAt time.Time, value int64) domain.ServiceEvent {
	return domain.ServiceEvent{
		EventID:            eventID,
		AccountID:          "acc-1",
		DisplayNumber:      7,
		ClientName:         "Acme Corp",
		Kind:               domain.KindRental,
		CompletedAt:        &completedAt,
		RealizedValue:      decimal.NewFromInt(value),
		RecurrenceParentID: &parentID,
	}
}

func (suite *ReconciliationServiceTestSuite) TestReconcileGroup_SumsSiblingsForTheMonth() {
	ctx := context.Background()
	marchFrom := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	aprilFrom := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	siblings := []domain.ServiceEvent{
		sibling("evt-3", "parent-1", time.Date(2025, time.March, 25, 10, 0, 0, 0, time.UTC), 200),
		sibling("evt-2", "parent-1", time.Date(2025, time.March, 18, 10, 0, 0, 0, time.UTC), 150),
		sibling("evt-1", "parent-1", time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC), 100),
	}

	suite.mockEventRepo.On("FindCompletedSiblings", ctx, "parent-1", marchFrom, aprilFrom).Return(siblings, nil).Once()
	suite.mockBillingSvc.On("UpsertForService", ctx, mock.MatchedBy(func(in dto.ServiceBillingInput) bool {
		return in.Event.EventID == "evt-3" && // latest completion wins
			in.Amount.Equal(decimal.NewFromInt(450)) &&
			in.Description == "Grouped services (3) ref #7 Acme Corp"
	}), "actor-1").Return(&domain.LedgerEntry{EntryID: "entry-1"}, nil).Once()

	entry, err := suite.service.ReconcileGroup(ctx, "acc-1", "parent-1", time.Date(2025, time.March, 12, 8, 0, 0, 0, time.UTC), dto.ModeUpdate, false, "actor-1")

	suite.Require().NoError(err)
	suite.Equal("entry-1", entry.EntryID)
	suite.mockEventRepo.AssertExpectations(suite.T())
	suite.mockBillingSvc.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestReconcileGroup_TieBrokenByEventID() {
	ctx := context.Background()
	sameInstant := time.Date(2025, time.March, 25, 10, 0, 0, 0, time.UTC)
	siblings := []domain.ServiceEvent{
		sibling("evt-a", "parent-1", sameInstant, 100),
		sibling("evt-b", "parent-1", sameInstant, 100),
	}

	suite.mockEventRepo.On("FindCompletedSiblings", ctx, "parent-1", mock.Anything, mock.Anything).Return(siblings, nil).Once()
	suite.mockBillingSvc.On("UpsertForService", ctx, mock.MatchedBy(func(in dto.ServiceBillingInput) bool {
		return in.Event.EventID == "evt-b"
	}), "actor-1").Return(&domain.LedgerEntry{}, nil).Once()

	_, err := suite.service.ReconcileGroup(ctx, "acc-1", "parent-1", sameInstant, dto.ModeUpdate, false, "actor-1")

	suite.Require().NoError(err)
	suite.mockBillingSvc.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestReconcileGroup_EmptyMonth() {
	ctx := context.Background()

	suite.mockEventRepo.On("FindCompletedSiblings", ctx, "parent-1", mock.Anything, mock.Anything).Return([]domain.ServiceEvent{}, nil).Once()

	entry, err := suite.service.ReconcileGroup(ctx, "acc-1", "parent-1", time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC), dto.ModeUpdate, false, "actor-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBillingSvc.AssertNotCalled(suite.T(), "UpsertForService", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestProcess_PartitionsSinglesAndGroups() {
	ctx := context.Background()
	march := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	april := time.Date(2025, time.April, 10, 9, 0, 0, 0, time.UTC)

	single := sibling("evt-single", "unused", march, 80)
	single.RecurrenceParentID = nil

	grouped1 := sibling("evt-g1", "parent-1", march, 100)
	grouped2 := sibling("evt-g2", "parent-1", march.AddDate(0, 0, 5), 150)
	// Same parent, different month: its own group.
	grouped3 := sibling("evt-g3", "parent-1", april, 200)

	events := map[string]domain.ServiceEvent{
		"evt-single": single,
		"evt-g1":     grouped1,
		"evt-g2":     grouped2,
		"evt-g3":     grouped3,
	}
	req := dto.BulkReconcileRequest{
		Mode:     dto.ModeUpdate,
		EventIDs: []string{"evt-single", "evt-g1", "evt-g2", "evt-g3", "evt-missing"},
	}

	suite.mockEventRepo.On("FindEventsByIDs", ctx, req.EventIDs).Return(events, nil).Once()
	suite.mockBillingSvc.On("UpsertForService", ctx, mock.MatchedBy(func(in dto.ServiceBillingInput) bool {
		return in.Event.EventID == "evt-single" && in.Amount.Equal(decimal.NewFromInt(80))
	}), "actor-1").Return(&domain.LedgerEntry{}, nil).Once()
	suite.mockBillingSvc.On("UpsertForService", ctx, mock.MatchedBy(func(in dto.ServiceBillingInput) bool {
		// March group: evt-g1 + evt-g2, representative is the later one.
		return in.Event.EventID == "evt-g2" && in.Amount.Equal(decimal.NewFromInt(250))
	}), "actor-1").Return(&domain.LedgerEntry{}, nil).Once()
	suite.mockBillingSvc.On("UpsertForService", ctx, mock.MatchedBy(func(in dto.ServiceBillingInput) bool {
		// April group stands alone.
		return in.Event.EventID == "evt-g3" && in.Amount.Equal(decimal.NewFromInt(200))
	}), "actor-1").Return(&domain.LedgerEntry{}, nil).Once()

	result, err := suite.service.Process(ctx, "acc-1", req, "actor-1")

	suite.Require().NoError(err)
	suite.Equal(4, result.Processed)
	suite.Require().Len(result.Failed, 1)
	suite.Equal("evt-missing", result.Failed[0].EventID)
	suite.mockBillingSvc.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestProcess_CollectsItemFailuresWithoutAborting() {
	ctx := context.Background()
	march := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	incomplete := sibling("evt-incomplete", "unused", march, 50)
	incomplete.RecurrenceParentID = nil
	incomplete.CompletedAt = nil

	foreign := sibling("evt-foreign", "unused", march, 50)
	foreign.RecurrenceParentID = nil
	foreign.AccountID = "other-account"

	good := sibling("evt-good", "unused", march, 60)
	good.RecurrenceParentID = nil

	events := map[string]domain.ServiceEvent{
		"evt-incomplete": incomplete,
		"evt-foreign":    foreign,
		"evt-good":       good,
	}
	req := dto.BulkReconcileRequest{
		Mode:     dto.ModeUpdate,
		EventIDs: []string{"evt-incomplete", "evt-foreign", "evt-good"},
	}

	suite.mockEventRepo.On("FindEventsByIDs", ctx, req.EventIDs).Return(events, nil).Once()
	suite.mockBillingSvc.On("UpsertForService", ctx, mock.MatchedBy(func(in dto.ServiceBillingInput) bool {
		return in.Event.EventID == "evt-good"
	}), "actor-1").Return(&domain.LedgerEntry{}, nil).Once()

	result, err := suite.service.Process(ctx, "acc-1", req, "actor-1")

	suite.Require().NoError(err)
	suite.Equal(1, result.Processed)
	suite.Len(result.Failed, 2)

	reasons := map[string]string{}
	for _, f := range result.Failed {
		reasons[f.EventID] = f.Reason
	}
	assert.Equal(suite.T(), "event not completed", reasons["evt-incomplete"])
	assert.Equal(suite.T(), "event not found", reasons["evt-foreign"])
}

func (suite *ReconciliationServiceTestSuite) TestProcess_GroupFailureFlagsEveryMember() {
	ctx := context.Background()
	march := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	grouped1 := sibling("evt-g1", "parent-1", march, 100)
	grouped2 := sibling("evt-g2", "parent-1", march.AddDate(0, 0, 1), 150)

	events := map[string]domain.ServiceEvent{
		"evt-g1": grouped1,
		"evt-g2": grouped2,
	}
	req := dto.BulkReconcileRequest{Mode: dto.ModeUpdate, EventIDs: []string{"evt-g1", "evt-g2"}}

	suite.mockEventRepo.On("FindEventsByIDs", ctx, req.EventIDs).Return(events, nil).Once()
	suite.mockBillingSvc.On("UpsertForService", ctx, mock.Anything, "actor-1").Return(nil, assert.AnError).Once()

	result, err := suite.service.Process(ctx, "acc-1", req, "actor-1")

	suite.Require().NoError(err)
	suite.Equal(0, result.Processed)
	suite.Len(result.Failed, 2)
}

func (suite *ReconciliationServiceTestSuite) TestProcess_MarkPaidPropagatesStatus() {
	ctx := context.Background()
	march := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	single := sibling("evt-1", "unused", march, 90)
	single.RecurrenceParentID = nil

	req := dto.BulkReconcileRequest{Mode: dto.ModeUpdate, EventIDs: []string{"evt-1"}, MarkPaid: true}

	suite.mockEventRepo.On("FindEventsByIDs", ctx, req.EventIDs).Return(map[string]domain.ServiceEvent{"evt-1": single}, nil).Once()
	suite.mockBillingSvc.On("UpsertForService", ctx, mock.MatchedBy(func(in dto.ServiceBillingInput) bool {
		return in.Status != nil && *in.Status == domain.Paid
	}), "actor-1").Return(&domain.LedgerEntry{}, nil).Once()

	result, err := suite.service.Process(ctx, "acc-1", req, "actor-1")

	suite.Require().NoError(err)
	suite.Equal(1, result.Processed)
	suite.mockBillingSvc.AssertExpectations(suite.T())
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
