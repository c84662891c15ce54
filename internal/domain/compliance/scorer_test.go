package compliance

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/ayurplan/engine/internal/domain/catalog"
	"github.com/ayurplan/engine/internal/domain/nutrition"
)

// ScorerTestSuite covers compliance scoring
type ScorerTestSuite struct {
	suite.Suite
	scorer *Scorer
}

func (suite *ScorerTestSuite) SetupTest() {
	suite.scorer = NewScorer(WithClock(func() time.Time {
		return time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	}))
}

func food(id string, rasa []catalog.Rasa, virya catalog.Virya, digestibility float64, doshas []catalog.Dosha, seasons []catalog.Season, guna ...catalog.Guna) nutrition.ResolvedItem {
	item := nutrition.ConsumptionItem{SourceType: nutrition.SourceFood, SourceID: id, Quantity: 100, Unit: "g"}
	return nutrition.ResolvedFood(item, catalog.FoodItem{
		ID:          id,
		Name:        id,
		Category:    catalog.CategoryGrains,
		ServingSize: 100,
		Nutrients:   catalog.Macros{Calories: 100},
		Ayurvedic: catalog.AyurvedicProfile{
			Rasa:               rasa,
			Virya:              virya,
			Guna:               guna,
			DigestibilityScore: digestibility,
		},
		SuitableForDoshas:      doshas,
		SeasonalRecommendation: seasons,
	})
}

func sweetVataFood(id string) nutrition.ResolvedItem {
	return food(id, []catalog.Rasa{catalog.RasaSweet}, catalog.ViryaHot, 80,
		[]catalog.Dosha{catalog.DoshaVata}, []catalog.Season{catalog.SeasonAll})
}

func missing(id string) nutrition.ResolvedItem {
	return nutrition.Unresolved(nutrition.ConsumptionItem{SourceType: nutrition.SourceFood, SourceID: id, Quantity: 50})
}

func (suite *ScorerTestSuite) TestScore() {
	suite.Run("SingleVataFood_ShouldMatchReferenceScores", func() {
		// Arrange
		items := []nutrition.ResolvedItem{sweetVataFood("rice")}

		// Act
		res := suite.scorer.Score(items, "vata", catalog.SeasonWinter)

		// Assert
		assert.Equal(suite.T(), 100, res.DoshaCompatibility)
		assert.Equal(suite.T(), 100, res.SeasonalScore)
		assert.Equal(suite.T(), 17, res.RasaCompleteness)
		assert.Equal(suite.T(), 80, res.DigestibilityScore)
		assert.Equal(suite.T(), 74, res.OverallScore)
		assert.Equal(suite.T(), 1, res.RasaBalance.Sweet)
		assert.Equal(suite.T(), []string{"Missing tastes: sour, salty, bitter, pungent, astringent"}, res.Warnings)
		assert.Equal(suite.T(), []string{suggestBitter, suggestAstringent, suggestPungent, closingGood}, res.Suggestions)
	})

	suite.Run("EmptyItems_ShouldYieldZeroScoresAndOnlyMissingTastes", func() {
		// Act
		res := suite.scorer.Score(nil, "vata", catalog.SeasonWinter)

		// Assert
		assert.Zero(suite.T(), res.OverallScore)
		assert.Zero(suite.T(), res.RasaCompleteness)
		assert.Zero(suite.T(), res.DoshaCompatibility)
		assert.Zero(suite.T(), res.SeasonalScore)
		assert.Zero(suite.T(), res.DigestibilityScore)
		require.Len(suite.T(), res.Warnings, 1)
		assert.Equal(suite.T(), "Missing tastes: sweet, sour, salty, bitter, pungent, astringent", res.Warnings[0])
		assert.Contains(suite.T(), res.Suggestions, "Consider adding more seasonal (winter) foods")
		assert.NotContains(suite.T(), res.Suggestions, "Choose more vata-balancing foods")
		assert.Equal(suite.T(), closingNeedsReview, res.Suggestions[len(res.Suggestions)-1])
	})

	suite.Run("UnresolvedItem_ShouldCountTowardRatiosOnly", func() {
		// Arrange
		items := []nutrition.ResolvedItem{sweetVataFood("rice"), missing("gone")}

		// Act
		res := suite.scorer.Score(items, "vata", catalog.SeasonWinter)

		// Assert
		assert.Equal(suite.T(), 50, res.DoshaCompatibility)
		assert.Equal(suite.T(), 50, res.SeasonalScore)
		assert.Equal(suite.T(), 80, res.DigestibilityScore)
		assert.Equal(suite.T(), 49, res.OverallScore)
		assert.Contains(suite.T(), res.Warnings, "Only 50% foods are vata-compatible")
		assert.Contains(suite.T(), res.Suggestions, "Choose more vata-balancing foods")
		assert.NotContains(suite.T(), res.Suggestions, suggestSeasonal(catalog.SeasonWinter))
	})

	suite.Run("AvoidedTasteAboveTwice_ShouldWarnAndSuggestReduction", func() {
		// Arrange
		pitta := []catalog.Dosha{catalog.DoshaPitta}
		all := []catalog.Season{catalog.SeasonAll}
		sour := []catalog.Rasa{catalog.RasaSour}
		items := []nutrition.ResolvedItem{
			food("a", sour, catalog.ViryaCold, 60, pitta, all),
			food("b", sour, catalog.ViryaCold, 60, pitta, all),
			food("c", sour, catalog.ViryaCold, 60, pitta, all),
		}

		// Act
		res := suite.scorer.Score(items, "pitta-kapha", catalog.SeasonSummer)

		// Assert
		assert.Equal(suite.T(), 3, res.RasaBalance.Sour)
		assert.Contains(suite.T(), res.Warnings, "Too much sour taste for pitta-kapha dosha")
		assert.Contains(suite.T(), res.Suggestions, "Reduce sour foods to balance pitta-kapha dosha")
	})

	suite.Run("UnknownDosha_ShouldUseVataTable", func() {
		// Arrange
		bitter := []catalog.Rasa{catalog.RasaBitter}
		all := []catalog.Dosha{catalog.DoshaAll}
		seasons := []catalog.Season{catalog.SeasonAllSeasons}
		items := []nutrition.ResolvedItem{
			food("a", bitter, catalog.ViryaHot, 50, all, seasons),
			food("b", bitter, catalog.ViryaHot, 50, all, seasons),
			food("c", bitter, catalog.ViryaHot, 50, all, seasons),
		}

		// Act
		res := suite.scorer.Score(items, "tridosha", catalog.SeasonWinter)

		// Assert
		assert.Equal(suite.T(), 100, res.DoshaCompatibility)
		assert.Contains(suite.T(), res.Warnings, "Too much bitter taste for tridosha dosha")
	})

	suite.Run("MixedViryaAndHeavyFoods_ShouldWarn", func() {
		// Arrange
		vata := []catalog.Dosha{catalog.DoshaVata}
		all := []catalog.Season{catalog.SeasonAll}
		sweet := []catalog.Rasa{catalog.RasaSweet}
		items := []nutrition.ResolvedItem{
			food("ghee", sweet, catalog.ViryaCold, 50, vata, all, catalog.GunaHeavy, catalog.GunaOily),
			food("urad", sweet, catalog.ViryaHot, 40, vata, all, catalog.GunaHeavy),
		}

		// Act
		res := suite.scorer.Score(items, "vata", catalog.SeasonWinter)

		// Assert
		assert.Contains(suite.T(), res.Warnings, warnMixedVirya)
		assert.Contains(suite.T(), res.Suggestions, suggestSameVirya)
		assert.Contains(suite.T(), res.Warnings, warnTooHeavy)
		assert.Contains(suite.T(), res.Suggestions, suggestLighter)
	})

	suite.Run("LowSeasonalScore_ShouldSuggestOnly", func() {
		// Arrange
		items := []nutrition.ResolvedItem{
			food("mango", []catalog.Rasa{catalog.RasaSweet}, catalog.ViryaHot, 70,
				[]catalog.Dosha{catalog.DoshaVata}, []catalog.Season{catalog.SeasonSummer}),
		}

		// Act
		res := suite.scorer.Score(items, "vata", catalog.SeasonWinter)

		// Assert
		assert.Zero(suite.T(), res.SeasonalScore)
		assert.Contains(suite.T(), res.Suggestions, "Consider adding more seasonal (winter) foods")
		for _, w := range res.Warnings {
			assert.NotContains(suite.T(), w, "seasonal")
		}
	})

	suite.Run("RecipeTastes_ShouldCountTowardCompleteness", func() {
		// Arrange
		recipe := catalog.Recipe{
			ID:                 "thali",
			ServingSize:        300,
			Rasa:               catalog.Rasas(),
			Virya:              catalog.ViryaNeutral,
			DigestibilityScore: 70,
		}
		items := []nutrition.ResolvedItem{
			nutrition.ResolvedRecipe(nutrition.ConsumptionItem{SourceType: nutrition.SourceRecipe, SourceID: "thali", Quantity: 300}, recipe),
		}

		// Act
		res := suite.scorer.Score(items, "kapha", catalog.SeasonSpring)

		// Assert
		assert.Equal(suite.T(), 100, res.RasaCompleteness)
		assert.Equal(suite.T(), 70, res.DigestibilityScore)
		assert.Zero(suite.T(), res.DoshaCompatibility)
		assert.NotContains(suite.T(), res.Warnings, warnMissingTastes(nil))
	})

	suite.Run("EmptySeason_ShouldBeInferredFromClock", func() {
		// Act
		res := suite.scorer.Score(nil, "vata", "")

		// Assert
		assert.Equal(suite.T(), catalog.SeasonWinter, res.Season)
	})
}

func (suite *ScorerTestSuite) TestScoreProperties() {
	faker := gofakeit.New(42)
	rasas := catalog.Rasas()
	doshas := []catalog.Dosha{catalog.DoshaVata, catalog.DoshaPitta, catalog.DoshaKapha, catalog.DoshaAll}

	randomItems := func() []nutrition.ResolvedItem {
		n := faker.Number(1, 12)
		items := make([]nutrition.ResolvedItem, 0, n)
		for i := 0; i < n; i++ {
			if faker.Bool() && faker.Bool() {
				items = append(items, missing(faker.UUID()))
				continue
			}
			items = append(items, food(faker.UUID(),
				[]catalog.Rasa{rasas[faker.Number(0, 5)], rasas[faker.Number(0, 5)]},
				catalog.ViryaHot,
				faker.Float64Range(0, 100),
				[]catalog.Dosha{doshas[faker.Number(0, 3)]},
				[]catalog.Season{catalog.SeasonSummer},
				catalog.GunaHeavy, catalog.GunaHeavy,
			))
		}
		return items
	}

	suite.Run("SubScores_ShouldStayWithinBounds", func() {
		for i := 0; i < 200; i++ {
			res := suite.scorer.Score(randomItems(), catalog.DoshaTypes()[faker.Number(0, 6)], catalog.SeasonSummer)
			for _, v := range []int{res.OverallScore, res.RasaCompleteness, res.DoshaCompatibility, res.SeasonalScore, res.DigestibilityScore} {
				assert.GreaterOrEqual(suite.T(), v, 0)
				assert.LessOrEqual(suite.T(), v, 100)
			}
		}
	})

	suite.Run("Score_ShouldBeIdempotent", func() {
		items := randomItems()
		first := suite.scorer.Score(items, "vata-pitta", catalog.SeasonAutumn)
		second := suite.scorer.Score(items, "vata-pitta", catalog.SeasonAutumn)
		assert.Equal(suite.T(), first, second)
	})
}

func (suite *ScorerTestSuite) TestScoreFood() {
	vataAllYear := food("rice", []catalog.Rasa{catalog.RasaSweet}, catalog.ViryaCold, 80,
		[]catalog.Dosha{catalog.DoshaVata}, []catalog.Season{catalog.SeasonAll})

	suite.Run("CompatibleSeasonalFood_ShouldAddAllBonuses", func() {
		assert.InDelta(suite.T(), 98.0, ScoreFood(*vataAllYear.Food, "vata-kapha", catalog.SeasonWinter), 1e-9)
	})

	suite.Run("IncompatibleDosha_ShouldSkipDoshaBonus", func() {
		assert.InDelta(suite.T(), 73.0, ScoreFood(*vataAllYear.Food, "kapha", catalog.SeasonWinter), 1e-9)
	})

	suite.Run("DigestibilityBonus_ShouldBeCappedAtTen", func() {
		f := *vataAllYear.Food
		f.Ayurvedic.DigestibilityScore = 250
		assert.InDelta(suite.T(), 100.0, ScoreFood(f, "vata", catalog.SeasonWinter), 1e-9)
	})

	suite.Run("ScorerMethod_ShouldInferSeason", func() {
		summer := food("mango", nil, catalog.ViryaHot, 0, []catalog.Dosha{catalog.DoshaPitta}, []catalog.Season{catalog.SeasonSummer})
		assert.InDelta(suite.T(), 75.0, suite.scorer.ScoreFood(*summer.Food, "pitta", ""), 1e-9)
	})
}

func TestGuidelines_ShouldFallBackToVata(t *testing.T) {
	g := DefaultGuidelines()

	dosha, row := g.For("unknown")
	assert.Equal(t, catalog.DoshaVata, dosha)
	assert.True(t, row.Avoids(catalog.RasaBitter))

	dosha, row = g.For("kapha-pitta")
	assert.Equal(t, catalog.DoshaKapha, dosha)
	assert.True(t, row.Avoids(catalog.RasaSweet))

	// returned rows are copies
	row.AvoidRasa[0] = catalog.RasaBitter
	_, again := g.For("kapha")
	assert.Equal(t, catalog.RasaSweet, again.AvoidRasa[0])
}

func TestScorerTestSuite(t *testing.T) {
	suite.Run(t, new(ScorerTestSuite))
}
