package testutils

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ayurplan/engine/internal/domain/compliance"
	"github.com/ayurplan/engine/internal/domain/dietchart"
	"github.com/ayurplan/engine/internal/domain/mealplan"
	"github.com/ayurplan/engine/internal/domain/nutrition"
	"github.com/ayurplan/engine/internal/ports/inbound"
)

// MockNutritionService provides a mock implementation of NutritionService
type MockNutritionService struct {
	mock.Mock
}

func (m *MockNutritionService) CalculateTotals(ctx context.Context, items []nutrition.ConsumptionItem) (*inbound.NutritionTotals, error) {
	args := m.Called(ctx, items)
	if t, ok := args.Get(0).(*inbound.NutritionTotals); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNutritionService) CalculateChart(ctx context.Context, chart *dietchart.Chart) (*dietchart.Rollup, error) {
	args := m.Called(ctx, chart)
	if r, ok := args.Get(0).(*dietchart.Rollup); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockComplianceService provides a mock implementation of ComplianceService
type MockComplianceService struct {
	mock.Mock
}

func (m *MockComplianceService) ValidateCompliance(ctx context.Context, cmd inbound.ValidateComplianceCommand) (*compliance.Result, error) {
	args := m.Called(ctx, cmd)
	if r, ok := args.Get(0).(*compliance.Result); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockComplianceService) ScoreFood(ctx context.Context, cmd inbound.ScoreFoodCommand) (*inbound.FoodScore, error) {
	args := m.Called(ctx, cmd)
	if s, ok := args.Get(0).(*inbound.FoodScore); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockComplianceService) Guidelines(ctx context.Context, doshaType string) (*inbound.GuidelineDTO, error) {
	args := m.Called(ctx, doshaType)
	if g, ok := args.Get(0).(*inbound.GuidelineDTO); ok {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockMealSuggestionService provides a mock implementation of MealSuggestionService
type MockMealSuggestionService struct {
	mock.Mock
}

func (m *MockMealSuggestionService) SuggestMeal(ctx context.Context, cmd inbound.SuggestMealCommand) (*mealplan.Suggestion, error) {
	args := m.Called(ctx, cmd)
	if s, ok := args.Get(0).(*mealplan.Suggestion); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockDietChartService provides a mock implementation of DietChartService
type MockDietChartService struct {
	mock.Mock
}

func (m *MockDietChartService) CreateChart(ctx context.Context, cmd inbound.CreateDietChartCommand) (*inbound.DietChartDTO, error) {
	args := m.Called(ctx, cmd)
	if d, ok := args.Get(0).(*inbound.DietChartDTO); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDietChartService) GetChart(ctx context.Context, id string) (*inbound.DietChartDTO, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*inbound.DietChartDTO); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDietChartService) ListPatientCharts(ctx context.Context, patientID string, params inbound.PaginationParams) (*inbound.DietChartList, error) {
	args := m.Called(ctx, patientID, params)
	if l, ok := args.Get(0).(*inbound.DietChartList); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDietChartService) UpdateStatus(ctx context.Context, id string, status dietchart.Status) (*inbound.DietChartDTO, error) {
	args := m.Called(ctx, id, status)
	if d, ok := args.Get(0).(*inbound.DietChartDTO); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDietChartService) DeleteChart(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
