package services_test

import (
	"context"
	"testing"

	"github.com/fleetops/fleet_billing_app/internal/apperrors"
	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	portssvc "github.com/fleetops/fleet_billing_app/internal/core/ports/services"
	"github.com/fleetops/fleet_billing_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCategoryRepository
	service  portssvc.CategorySvcFacade
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCategoryRepository)
	suite.service = services.NewCategoryService(suite.mockRepo, services.WithClock(fixedClock))
}

func (suite *CategoryServiceTestSuite) TestEnsure_ReturnsExisting() {
	ctx := context.Background()
	existing := &domain.Category{CategoryID: "cat-1", AccountID: "acc-1", Name: domain.ServiceRevenueCategoryName, Direction: domain.Income}

	suite.mockRepo.On("FindCategoryByNameAndDirection", ctx, "acc-1", domain.ServiceRevenueCategoryName, domain.Income).Return(existing, nil).Once()

	category, err := suite.service.EnsureServiceRevenueCategory(ctx, "acc-1", "actor-1")

	suite.Require().NoError(err)
	suite.Equal("cat-1", category.CategoryID)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestEnsure_CreatesOnFirstUse() {
	ctx := context.Background()

	suite.mockRepo.On("FindCategoryByNameAndDirection", ctx, "acc-1", domain.ServiceRevenueCategoryName, domain.Income).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.AccountID == "acc-1" && c.Name == domain.ServiceRevenueCategoryName && c.Direction == domain.Income && c.IsDefault
	})).Return(nil).Once()

	category, err := suite.service.EnsureServiceRevenueCategory(ctx, "acc-1", "actor-1")

	suite.Require().NoError(err)
	suite.True(category.IsDefault)
	suite.NotEmpty(category.CategoryID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestEnsure_LostRaceRefetchesWinner() {
	ctx := context.Background()
	winner := &domain.Category{CategoryID: "cat-winner", AccountID: "acc-1"}

	suite.mockRepo.On("FindCategoryByNameAndDirection", ctx, "acc-1", domain.ServiceRevenueCategoryName, domain.Income).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCategory", ctx, mock.AnythingOfType("domain.Category")).Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("FindCategoryByNameAndDirection", ctx, "acc-1", domain.ServiceRevenueCategoryName, domain.Income).Return(winner, nil).Once()

	category, err := suite.service.EnsureServiceRevenueCategory(ctx, "acc-1", "actor-1")

	suite.Require().NoError(err)
	suite.Equal("cat-winner", category.CategoryID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestEnsure_IdempotentAcrossCalls() {
	ctx := context.Background()
	stored := &domain.Category{CategoryID: "cat-1", AccountID: "acc-1"}

	suite.mockRepo.On("FindCategoryByNameAndDirection", ctx, "acc-1", domain.ServiceRevenueCategoryName, domain.Income).Return(stored, nil).Twice()

	first, err := suite.service.EnsureServiceRevenueCategory(ctx, "acc-1", "actor-1")
	suite.Require().NoError(err)
	second, err := suite.service.EnsureServiceRevenueCategory(ctx, "acc-1", "actor-1")
	suite.Require().NoError(err)

	assert.Equal(suite.T(), first.CategoryID, second.CategoryID)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestListCategories() {
	ctx := context.Background()
	stored := []domain.Category{{CategoryID: "cat-1"}, {CategoryID: "cat-2"}}

	suite.mockRepo.On("ListCategoriesByAccount", ctx, "acc-1").Return(stored, nil).Once()

	categories, err := suite.service.ListCategories(ctx, "acc-1")

	suite.Require().NoError(err)
	suite.Len(categories, 2)
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
