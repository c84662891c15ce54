package nutrition_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/ayurplan/engine/internal/application/nutrition"
	"github.com/ayurplan/engine/internal/application/resolver"
	"github.com/ayurplan/engine/internal/domain/catalog"
	"github.com/ayurplan/engine/internal/domain/dietchart"
	"github.com/ayurplan/engine/internal/domain/mealplan"
	domain "github.com/ayurplan/engine/internal/domain/nutrition"
	"github.com/ayurplan/engine/internal/ports/inbound"
	apperrors "github.com/ayurplan/engine/pkg/errors"
	"github.com/ayurplan/engine/test/testutils"
)

type NutritionServiceTestSuite struct {
	suite.Suite
	store   *testutils.MockCatalogStore
	metrics *testutils.RecordingMetrics
	service inbound.NutritionService
	ctx     context.Context
}

func (suite *NutritionServiceTestSuite) SetupTest() {
	suite.store = &testutils.MockCatalogStore{}
	suite.metrics = &testutils.RecordingMetrics{}
	suite.service = nutrition.NewNutritionService(resolver.New(suite.store, suite.metrics, zap.NewNop()), zap.NewNop())
	suite.ctx = context.Background()
}

func (suite *NutritionServiceTestSuite) TearDownTest() {
	suite.store.AssertExpectations(suite.T())
}

func (suite *NutritionServiceTestSuite) rice() catalog.FoodItem {
	return testutils.NewFoodBuilder().
		WithID("rice").
		WithName("Basmati Rice").
		WithMacros(catalog.Macros{Calories: 130, Protein: 2.7, Carbs: 28, Fat: 0.3, Fiber: 0.4}).
		Build()
}

func (suite *NutritionServiceTestSuite) TestCalculateTotals() {
	suite.Run("FoodsAndRecipes_ShouldScaleByQuantity", func() {
		suite.SetupTest()

		// Arrange
		kitchari := catalog.Recipe{
			ID:          "kitchari",
			Name:        "Kitchari",
			Nutrients:   catalog.Macros{Calories: 300, Protein: 12},
			ServingSize: 250,
		}
		suite.store.On("GetFoodItems", mock.Anything, []string{"rice"}).
			Return(map[string]catalog.FoodItem{"rice": suite.rice()}, nil).Once()
		suite.store.On("GetRecipes", mock.Anything, []string{"kitchari"}).
			Return(map[string]catalog.Recipe{"kitchari": kitchari}, nil).Once()

		// Act
		totals, err := suite.service.CalculateTotals(suite.ctx, []domain.ConsumptionItem{
			testutils.FoodItem("rice", 200),
			testutils.RecipeItem("kitchari", 125),
		})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 2, totals.ItemCount)
		assert.Empty(suite.T(), totals.UnresolvedItems)
		assert.InDelta(suite.T(), 410, totals.Totals.Calories, 1e-9)
		assert.InDelta(suite.T(), 11.4, totals.Totals.Protein, 1e-9)
	})

	suite.Run("UnknownReference_ShouldContributeZeroAndBeReported", func() {
		suite.SetupTest()

		// Arrange
		suite.store.On("GetFoodItems", mock.Anything, []string{"rice", "ghost"}).
			Return(map[string]catalog.FoodItem{"rice": suite.rice()}, nil).Once()

		// Act
		totals, err := suite.service.CalculateTotals(suite.ctx, []domain.ConsumptionItem{
			testutils.FoodItem("rice", 100),
			testutils.FoodItem("ghost", 100),
			testutils.FoodItem("rice", 100),
		})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), []string{"ghost"}, totals.UnresolvedItems)
		assert.InDelta(suite.T(), 260, totals.Totals.Calories, 1e-9)
		assert.Equal(suite.T(), 1, suite.metrics.Unresolved)
	})

	suite.Run("EmptyList_ShouldTotalZeroWithoutLookups", func() {
		suite.SetupTest()

		// Act
		totals, err := suite.service.CalculateTotals(suite.ctx, nil)

		// Assert
		require.NoError(suite.T(), err)
		assert.Zero(suite.T(), totals.Totals)
		assert.Equal(suite.T(), 0, totals.ItemCount)
		assert.NotNil(suite.T(), totals.UnresolvedItems)
	})

	suite.Run("StoreFailure_ShouldReturnDataStoreError", func() {
		suite.SetupTest()

		// Arrange
		suite.store.On("GetFoodItems", mock.Anything, []string{"rice"}).
			Return(nil, errors.New("connection refused")).Once()

		// Act
		totals, err := suite.service.CalculateTotals(suite.ctx, []domain.ConsumptionItem{testutils.FoodItem("rice", 100)})

		// Assert
		assert.Nil(suite.T(), totals)
		var appErr *apperrors.AppError
		require.ErrorAs(suite.T(), err, &appErr)
		assert.Equal(suite.T(), apperrors.CodeDataStoreError, appErr.Code)
	})
}

func (suite *NutritionServiceTestSuite) TestCalculateChart() {
	suite.Run("Chart_ShouldRollUpMealsDaysAndAverage", func() {
		suite.SetupTest()

		// Arrange
		chart := testutils.DailyChart("p1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), testutils.FoodItem("rice", 100))
		chart.DayPlans = append(chart.DayPlans, dietchart.DayPlan{
			DayNumber: 2,
			Meals: []dietchart.Meal{
				{MealType: mealplan.MealBreakfast, Items: []domain.ConsumptionItem{testutils.FoodItem("rice", 300)}},
				{MealType: mealplan.MealDinner, Items: []domain.ConsumptionItem{testutils.FoodItem("missing", 50)}},
			},
		})
		suite.store.On("GetFoodItems", mock.Anything, []string{"rice", "missing"}).
			Return(map[string]catalog.FoodItem{"rice": suite.rice()}, nil).Once()

		// Act
		rollup, err := suite.service.CalculateChart(suite.ctx, &chart)

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), rollup.Days, 2)
		assert.InDelta(suite.T(), 130, rollup.Days[0].Totals.Calories, 1e-9)
		assert.InDelta(suite.T(), 390, rollup.Days[1].Totals.Calories, 1e-9)
		assert.Equal(suite.T(), 1, rollup.Days[1].Meals[1].Unresolved)
		assert.InDelta(suite.T(), 260, rollup.Average.Calories, 1e-9)
	})
}

func TestNutritionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NutritionServiceTestSuite))
}
