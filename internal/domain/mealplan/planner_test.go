package mealplan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/ayurplan/engine/internal/domain/catalog"
	"github.com/ayurplan/engine/internal/domain/compliance"
)

// PlannerTestSuite covers meal composition
type PlannerTestSuite struct {
	suite.Suite
	planner *Planner
}

func (suite *PlannerTestSuite) SetupTest() {
	scorer := compliance.NewScorer(compliance.WithClock(func() time.Time {
		return time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)
	}))
	suite.planner = NewPlanner(scorer)
}

func candidate(id string, category catalog.Category, calories, digestibility float64, doshas ...catalog.Dosha) catalog.FoodItem {
	return catalog.FoodItem{
		ID:          id,
		Name:        id,
		Category:    category,
		ServingSize: 100,
		ServingUnit: "g",
		Nutrients: catalog.Macros{
			Calories: calories,
			Protein:  2.7,
			Carbs:    28,
			Fat:      0.3,
			Fiber:    0.4,
		},
		Ayurvedic:              catalog.AyurvedicProfile{DigestibilityScore: digestibility},
		SuitableForDoshas:      doshas,
		SeasonalRecommendation: []catalog.Season{catalog.SeasonAll},
	}
}

func (suite *PlannerTestSuite) TestCompose() {
	suite.Run("SingleGrain_ShouldSizePortionToCalorieShare", func() {
		// Arrange
		foods := []catalog.FoodItem{candidate("rice", catalog.CategoryGrains, 130, 70, catalog.DoshaVata)}

		// Act
		res, err := suite.planner.Compose(foods, "vata", MealBreakfast, 2000, "")

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), res.Items, 1)
		item := res.Items[0]
		assert.Equal(suite.T(), 615.0, item.Quantity)
		assert.Equal(suite.T(), "g", item.Unit)
		assert.Equal(suite.T(), 800.0, item.Nutrients.Calories)
		assert.Equal(suite.T(), 16.6, item.Nutrients.Protein)
		assert.Equal(suite.T(), 800.0, res.Totals.Calories)
		assert.InDelta(suite.T(), 97.0, item.AyurvedicScore, 1e-9)
		assert.Equal(suite.T(), 97, res.ComplianceScore)
		assert.Equal(suite.T(), "High vata compatibility, seasonal (winter)", item.Reason)
		assert.Equal(suite.T(), []string{"Calories below target by 1200 kcal"}, res.Warnings)
	})

	suite.Run("FullBreakfast_ShouldStayWithinTolerance", func() {
		// Arrange
		foods := []catalog.FoodItem{
			candidate("rice", catalog.CategoryGrains, 130, 70, catalog.DoshaVata),
			candidate("banana", catalog.CategoryFruits, 89, 60, catalog.DoshaVata),
			candidate("milk", catalog.CategoryDairy, 60, 50, catalog.DoshaAll),
			candidate("almond", catalog.CategoryNuts, 579, 40, catalog.DoshaVata),
		}

		// Act
		res, err := suite.planner.Compose(foods, "vata", MealBreakfast, 500, catalog.SeasonWinter)

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), res.Items, 4)
		assert.Equal(suite.T(), []string{"rice", "banana", "milk", "almond"}, []string{
			res.Items[0].SourceID, res.Items[1].SourceID, res.Items[2].SourceID, res.Items[3].SourceID,
		})
		assert.InDelta(suite.T(), 500, res.Totals.Calories, 50)
		assert.Empty(suite.T(), res.Warnings)
	})

	suite.Run("HigherScore_ShouldWinCategory", func() {
		// Arrange
		foods := []catalog.FoodItem{
			candidate("barley", catalog.CategoryGrains, 120, 50, catalog.DoshaKapha),
			candidate("oats", catalog.CategoryGrains, 150, 50, catalog.DoshaPitta),
		}

		// Act
		res, err := suite.planner.Compose(foods, "pitta-vata", MealLunch, 1000, catalog.SeasonSummer)

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), res.Items, 1)
		assert.Equal(suite.T(), "oats", res.Items[0].SourceID)
	})

	suite.Run("NoCandidates_ShouldReturnEmptyResult", func() {
		// Act
		res, err := suite.planner.Compose(nil, "kapha", MealDinner, 600, catalog.SeasonSpring)

		// Assert
		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), res.Items)
		assert.Zero(suite.T(), res.ComplianceScore)
		assert.Zero(suite.T(), res.Totals.Calories)
		assert.Equal(suite.T(), []string{"Calories below target by 600 kcal"}, res.Warnings)
	})

	suite.Run("ZeroCalorieFood_ShouldBeSkipped", func() {
		// Arrange
		foods := []catalog.FoodItem{
			candidate("water", catalog.CategoryBeverages, 0, 100, catalog.DoshaAll),
			candidate("lassi", catalog.CategoryBeverages, 75, 60, catalog.DoshaAll),
		}

		// Act
		res, err := suite.planner.Compose(foods, "vata", MealEveningSnack, 100, catalog.SeasonWinter)

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), res.Items, 1)
		assert.Equal(suite.T(), "lassi", res.Items[0].SourceID)
	})

	suite.Run("UnknownMealType_ShouldFail", func() {
		_, err := suite.planner.Compose(nil, "vata", MealType("brunch"), 500, "")
		assert.ErrorIs(suite.T(), err, ErrUnknownMealType)
	})

	suite.Run("NonPositiveTarget_ShouldFail", func() {
		_, err := suite.planner.Compose(nil, "vata", MealLunch, 0, "")
		assert.ErrorIs(suite.T(), err, ErrNonPositiveTarget)
	})
}

func (suite *PlannerTestSuite) TestRankCandidates() {
	suite.Run("EqualScores_ShouldKeepRetrievalOrder", func() {
		scorer := compliance.NewScorer()
		foods := []catalog.FoodItem{
			candidate("a", catalog.CategoryFruits, 50, 40, catalog.DoshaPitta),
			candidate("b", catalog.CategoryFruits, 50, 90, catalog.DoshaVata),
			candidate("c", catalog.CategoryFruits, 50, 40, catalog.DoshaPitta),
		}

		ranked := RankCandidates(scorer, foods, "pitta", catalog.SeasonAll)

		require.Len(suite.T(), ranked, 3)
		assert.Equal(suite.T(), "a", ranked[0].Food.ID)
		assert.Equal(suite.T(), "c", ranked[1].Food.ID)
		assert.Equal(suite.T(), "b", ranked[2].Food.ID)
	})
}

func TestDefaultCompositions_ShouldSumToOne(t *testing.T) {
	c := DefaultCompositions()
	for _, mt := range MealTypes() {
		portions, ok := c.For(mt)
		require.True(t, ok, mt)
		total := 0.0
		for _, p := range portions {
			total += p.Fraction
		}
		assert.InDelta(t, 1.0, total, 1e-9, mt)
	}

	portions, _ := c.For(MealBreakfast)
	portions[0].Category = catalog.CategorySweets
	again, _ := c.For(MealBreakfast)
	assert.Equal(t, catalog.CategoryGrains, again[0].Category)
}

func TestPlannerTestSuite(t *testing.T) {
	suite.Run(t, new(PlannerTestSuite))
}
