package mealsuggestion_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/ayurplan/engine/internal/application/mealsuggestion"
	"github.com/ayurplan/engine/internal/domain/catalog"
	"github.com/ayurplan/engine/internal/domain/compliance"
	"github.com/ayurplan/engine/internal/domain/mealplan"
	"github.com/ayurplan/engine/internal/domain/patient"
	"github.com/ayurplan/engine/internal/ports/inbound"
	"github.com/ayurplan/engine/internal/ports/outbound"
	apperrors "github.com/ayurplan/engine/pkg/errors"
	"github.com/ayurplan/engine/test/testutils"
)

type MealSuggestionServiceTestSuite struct {
	suite.Suite
	store    *testutils.MockCatalogStore
	patients *testutils.MockPatientRepository
	metrics  *testutils.RecordingMetrics
	service  inbound.MealSuggestionService
	patient  *patient.Patient
	ctx      context.Context
}

func (suite *MealSuggestionServiceTestSuite) SetupTest() {
	suite.store = &testutils.MockCatalogStore{}
	suite.patients = &testutils.MockPatientRepository{}
	suite.metrics = &testutils.RecordingMetrics{}
	suite.service = mealsuggestion.NewMealSuggestionService(
		mealplan.NewPlanner(compliance.NewScorer()),
		suite.store,
		suite.patients,
		suite.metrics,
		mealsuggestion.PoolConfig{CompatibleLimit: 10, FallbackLimit: 5, MinCompatible: 3},
		zap.NewNop(),
	)
	suite.patient = testutils.NewCatalogFactory(7).Patient("vata-pitta")
	suite.patient.Allergies = []string{" peanut ", ""}
	suite.ctx = context.Background()
}

func (suite *MealSuggestionServiceTestSuite) food(id string, category catalog.Category, kcal float64) catalog.FoodItem {
	return testutils.NewFoodBuilder().WithID(id).WithName(id).WithCategory(category).WithCalories(kcal).Build()
}

func (suite *MealSuggestionServiceTestSuite) TestSuggestMeal() {
	suite.Run("LargeCompatiblePool_ShouldSkipFallback", func() {
		suite.SetupTest()

		// Arrange
		foods := []catalog.FoodItem{
			suite.food("rice", catalog.CategoryGrains, 130),
			suite.food("mung", catalog.CategoryLegumes, 105),
			suite.food("squash", catalog.CategoryVegetables, 40),
			suite.food("yogurt", catalog.CategoryDairy, 60),
		}
		suite.patients.On("FindByID", mock.Anything, suite.patient.ID).Return(suite.patient, nil).Once()
		suite.store.On("QueryCompatibleFoods", mock.Anything, outbound.FoodQuery{
			ExcludeIDs: []string{"okra"},
			Allergens:  []string{"peanut"},
			DoshaParts: []catalog.Dosha{catalog.DoshaVata, catalog.DoshaPitta},
			Limit:      10,
		}).Return(foods, nil).Once()

		// Act
		suggestion, err := suite.service.SuggestMeal(suite.ctx, inbound.SuggestMealCommand{
			PatientID:      suite.patient.ID,
			MealType:       mealplan.MealLunch,
			TargetCalories: 600,
			ExcludeFoodIDs: []string{"okra"},
			Season:         catalog.SeasonWinter,
		})

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), suggestion.Items, 4)
		assert.Equal(suite.T(), "rice", suggestion.Items[0].SourceID)
		assert.Equal(suite.T(), "yogurt", suggestion.Items[3].SourceID)
		assert.Equal(suite.T(), 4, suite.metrics.PoolCompatible)
		assert.Equal(suite.T(), 0, suite.metrics.PoolFallback)
		assert.Equal(suite.T(), []int{suggestion.ComplianceScore}, suite.metrics.Suggestions)
		suite.store.AssertNotCalled(suite.T(), "QueryFoods", mock.Anything, mock.Anything)
		suite.patients.AssertExpectations(suite.T())
	})

	suite.Run("SmallCompatiblePool_ShouldAppendFallbackWithDuplicates", func() {
		suite.SetupTest()

		// Arrange
		rice := suite.food("rice", catalog.CategoryGrains, 130)
		suite.patients.On("FindByID", mock.Anything, suite.patient.ID).Return(suite.patient, nil).Once()
		suite.store.On("QueryCompatibleFoods", mock.Anything, mock.MatchedBy(func(q outbound.FoodQuery) bool {
			return len(q.DoshaParts) == 2 && q.Limit == 10
		})).Return([]catalog.FoodItem{rice}, nil).Once()
		suite.store.On("QueryFoods", mock.Anything, mock.MatchedBy(func(q outbound.FoodQuery) bool {
			return q.DoshaParts == nil && q.Limit == 5
		})).Return([]catalog.FoodItem{rice, suite.food("apple", catalog.CategoryFruits, 52)}, nil).Once()

		// Act
		suggestion, err := suite.service.SuggestMeal(suite.ctx, inbound.SuggestMealCommand{
			PatientID:      suite.patient.ID,
			MealType:       mealplan.MealBreakfast,
			TargetCalories: 400,
		})

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), suggestion.Items, 2)
		assert.Equal(suite.T(), "rice", suggestion.Items[0].SourceID)
		assert.Equal(suite.T(), "apple", suggestion.Items[1].SourceID)
		assert.Equal(suite.T(), 1, suite.metrics.PoolCompatible)
		assert.Equal(suite.T(), 2, suite.metrics.PoolFallback)
		suite.store.AssertExpectations(suite.T())
	})

	suite.Run("UnknownMealType_ShouldFailBeforeLookup", func() {
		suite.SetupTest()

		// Act
		_, err := suite.service.SuggestMeal(suite.ctx, inbound.SuggestMealCommand{
			PatientID:      suite.patient.ID,
			MealType:       mealplan.MealType("brunch"),
			TargetCalories: 500,
		})

		// Assert
		var appErr *apperrors.AppError
		require.ErrorAs(suite.T(), err, &appErr)
		assert.Equal(suite.T(), apperrors.CodeValidationFailed, appErr.Code)
		suite.patients.AssertNotCalled(suite.T(), "FindByID", mock.Anything, mock.Anything)
	})

	suite.Run("NonPositiveTarget_ShouldFail", func() {
		suite.SetupTest()

		// Act
		_, err := suite.service.SuggestMeal(suite.ctx, inbound.SuggestMealCommand{
			PatientID: suite.patient.ID,
			MealType:  mealplan.MealDinner,
		})

		// Assert
		var appErr *apperrors.AppError
		require.ErrorAs(suite.T(), err, &appErr)
		assert.Equal(suite.T(), apperrors.CodeValidationFailed, appErr.Code)
	})

	suite.Run("UnknownPatient_ShouldReturnNotFound", func() {
		suite.SetupTest()

		// Arrange
		suite.patients.On("FindByID", mock.Anything, "missing").Return(nil, outbound.ErrNotFound).Once()

		// Act
		_, err := suite.service.SuggestMeal(suite.ctx, inbound.SuggestMealCommand{
			PatientID:      "missing",
			MealType:       mealplan.MealDinner,
			TargetCalories: 500,
		})

		// Assert
		var appErr *apperrors.AppError
		require.ErrorAs(suite.T(), err, &appErr)
		assert.Equal(suite.T(), apperrors.CodePatientNotFound, appErr.Code)
		assert.Equal(suite.T(), 404, appErr.StatusCode())
	})

	suite.Run("CatalogFailure_ShouldReturnDataStoreError", func() {
		suite.SetupTest()

		// Arrange
		suite.patients.On("FindByID", mock.Anything, suite.patient.ID).Return(suite.patient, nil).Once()
		suite.store.On("QueryCompatibleFoods", mock.Anything, mock.Anything).Return(nil, errors.New("no connection")).Once()

		// Act
		_, err := suite.service.SuggestMeal(suite.ctx, inbound.SuggestMealCommand{
			PatientID:      suite.patient.ID,
			MealType:       mealplan.MealDinner,
			TargetCalories: 500,
		})

		// Assert
		var appErr *apperrors.AppError
		require.ErrorAs(suite.T(), err, &appErr)
		assert.Equal(suite.T(), apperrors.CodeDataStoreError, appErr.Code)
		assert.Empty(suite.T(), suite.metrics.Suggestions)
	})
}

func TestMealSuggestionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MealSuggestionServiceTestSuite))
}
