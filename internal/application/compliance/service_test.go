package compliance_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/ayurplan/engine/internal/application/compliance"
	"github.com/ayurplan/engine/internal/application/resolver"
	"github.com/ayurplan/engine/internal/domain/catalog"
	domain "github.com/ayurplan/engine/internal/domain/compliance"
	"github.com/ayurplan/engine/internal/domain/nutrition"
	"github.com/ayurplan/engine/internal/ports/inbound"
	"github.com/ayurplan/engine/internal/ports/outbound"
	apperrors "github.com/ayurplan/engine/pkg/errors"
	"github.com/ayurplan/engine/test/testutils"
)

type ComplianceServiceTestSuite struct {
	suite.Suite
	store   *testutils.MockCatalogStore
	metrics *testutils.RecordingMetrics
	service inbound.ComplianceService
	ctx     context.Context
}

func (suite *ComplianceServiceTestSuite) SetupTest() {
	suite.store = &testutils.MockCatalogStore{}
	suite.metrics = &testutils.RecordingMetrics{}
	july := func() time.Time { return time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC) }
	scorer := domain.NewScorer(domain.WithClock(july))
	suite.service = compliance.NewComplianceService(
		scorer,
		resolver.New(suite.store, suite.metrics, zap.NewNop()),
		suite.store,
		suite.metrics,
		zap.NewNop(),
	)
	suite.ctx = context.Background()
}

func (suite *ComplianceServiceTestSuite) TestValidateCompliance() {
	suite.Run("ResolvedItems_ShouldScoreAndRecordMetric", func() {
		suite.SetupTest()

		// Arrange
		ghee := testutils.NewFoodBuilder().
			WithID("ghee").
			WithName("Ghee").
			WithCategory(catalog.CategoryDairy).
			WithDoshas(catalog.DoshaVata).
			WithSeasons(catalog.SeasonWinter).
			WithDigestibility(70).
			Build()
		suite.store.On("GetFoodItems", mock.Anything, []string{"ghee"}).
			Return(map[string]catalog.FoodItem{"ghee": ghee}, nil).Once()

		// Act
		result, err := suite.service.ValidateCompliance(suite.ctx, inbound.ValidateComplianceCommand{
			Items:     []nutrition.ConsumptionItem{testutils.FoodItem("ghee", 15)},
			DoshaType: "vata",
			Season:    catalog.SeasonWinter,
		})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), catalog.SeasonWinter, result.Season)
		assert.Equal(suite.T(), 100, result.DoshaCompatibility)
		assert.Equal(suite.T(), 100, result.SeasonalScore)
		assert.Equal(suite.T(), []int{result.OverallScore}, suite.metrics.Compliance)
		suite.store.AssertExpectations(suite.T())
	})

	suite.Run("EmptySeason_ShouldBeInferredFromClock", func() {
		suite.SetupTest()

		// Act
		result, err := suite.service.ValidateCompliance(suite.ctx, inbound.ValidateComplianceCommand{DoshaType: "pitta"})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), catalog.SeasonSummer, result.Season)
	})

	suite.Run("UnresolvedItem_ShouldCountAgainstCompatibility", func() {
		suite.SetupTest()

		// Arrange
		suite.store.On("GetFoodItems", mock.Anything, []string{"ghost"}).
			Return(map[string]catalog.FoodItem{}, nil).Once()

		// Act
		result, err := suite.service.ValidateCompliance(suite.ctx, inbound.ValidateComplianceCommand{
			Items:     []nutrition.ConsumptionItem{testutils.FoodItem("ghost", 100)},
			DoshaType: "kapha",
		})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 0, result.DoshaCompatibility)
		assert.Equal(suite.T(), 1, suite.metrics.Unresolved)
	})

	suite.Run("StoreFailure_ShouldReturnDataStoreError", func() {
		suite.SetupTest()

		// Arrange
		suite.store.On("GetRecipes", mock.Anything, []string{"r1"}).
			Return(nil, errors.New("timeout")).Once()

		// Act
		_, err := suite.service.ValidateCompliance(suite.ctx, inbound.ValidateComplianceCommand{
			Items:     []nutrition.ConsumptionItem{testutils.RecipeItem("r1", 100)},
			DoshaType: "vata",
		})

		// Assert
		var appErr *apperrors.AppError
		require.ErrorAs(suite.T(), err, &appErr)
		assert.Equal(suite.T(), apperrors.CodeDataStoreError, appErr.Code)
		assert.Empty(suite.T(), suite.metrics.Compliance)
	})
}

func (suite *ComplianceServiceTestSuite) TestScoreFood() {
	suite.Run("CompatibleFood_ShouldAddAllBonuses", func() {
		suite.SetupTest()

		// Arrange
		food := testutils.NewFoodBuilder().WithID("mung").WithName("Mung Dal").WithDigestibility(80).Build()
		suite.store.On("GetFoodItem", mock.Anything, "mung").Return(&food, nil).Once()

		// Act
		score, err := suite.service.ScoreFood(suite.ctx, inbound.ScoreFoodCommand{FoodID: "mung", DoshaType: "pitta"})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Mung Dal", score.Name)
		assert.Equal(suite.T(), catalog.SeasonSummer, score.Season)
		assert.InDelta(suite.T(), 98, score.Score, 1e-9)
	})

	suite.Run("UnknownFood_ShouldReturnNotFound", func() {
		suite.SetupTest()

		// Arrange
		suite.store.On("GetFoodItem", mock.Anything, "nope").Return(nil, outbound.ErrNotFound).Once()

		// Act
		_, err := suite.service.ScoreFood(suite.ctx, inbound.ScoreFoodCommand{FoodID: "nope", DoshaType: "vata"})

		// Assert
		var appErr *apperrors.AppError
		require.ErrorAs(suite.T(), err, &appErr)
		assert.Equal(suite.T(), apperrors.CodeFoodNotFound, appErr.Code)
	})

	suite.Run("WrappedStoreFailure_ShouldReturnDataStoreError", func() {
		suite.SetupTest()

		// Arrange
		suite.store.On("GetFoodItem", mock.Anything, "mung").
			Return(nil, fmt.Errorf("query: %w", errors.New("broken pipe"))).Once()

		// Act
		_, err := suite.service.ScoreFood(suite.ctx, inbound.ScoreFoodCommand{FoodID: "mung", DoshaType: "vata"})

		// Assert
		var appErr *apperrors.AppError
		require.ErrorAs(suite.T(), err, &appErr)
		assert.Equal(suite.T(), apperrors.CodeDataStoreError, appErr.Code)
	})
}

func (suite *ComplianceServiceTestSuite) TestGuidelines() {
	tests := []struct {
		doshaType string
		applied   catalog.Dosha
	}{
		{"pitta", catalog.DoshaPitta},
		{"kapha-vata", catalog.DoshaKapha},
		{"unknown", catalog.DoshaVata},
	}

	for _, tt := range tests {
		suite.Run(tt.doshaType, func() {
			// Act
			dto, err := suite.service.Guidelines(suite.ctx, tt.doshaType)

			// Assert
			require.NoError(suite.T(), err)
			assert.Equal(suite.T(), tt.doshaType, dto.DoshaType)
			assert.Equal(suite.T(), tt.applied, dto.AppliedDosha)
			assert.NotEmpty(suite.T(), dto.Guideline.PreferRasa)
		})
	}
}

func TestComplianceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ComplianceServiceTestSuite))
}
