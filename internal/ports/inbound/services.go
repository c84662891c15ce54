// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/ayurplan/engine/internal/domain/catalog"
	"github.com/ayurplan/engine/internal/domain/compliance"
	"github.com/ayurplan/engine/internal/domain/dietchart"
	"github.com/ayurplan/engine/internal/domain/mealplan"
	"github.com/ayurplan/engine/internal/domain/nutrition"
)

// NutritionService aggregates nutrients for items and charts
type NutritionService interface {
	CalculateTotals(ctx context.Context, items []nutrition.ConsumptionItem) (*NutritionTotals, error)
	CalculateChart(ctx context.Context, chart *dietchart.Chart) (*dietchart.Rollup, error)
}

// ComplianceService scores consumed items against Ayurvedic criteria
type ComplianceService interface {
	ValidateCompliance(ctx context.Context, cmd ValidateComplianceCommand) (*compliance.Result, error)
	ScoreFood(ctx context.Context, cmd ScoreFoodCommand) (*FoodScore, error)
	Guidelines(ctx context.Context, doshaType string) (*GuidelineDTO, error)
}

// MealSuggestionService composes meals for a patient
type MealSuggestionService interface {
	SuggestMeal(ctx context.Context, cmd SuggestMealCommand) (*mealplan.Suggestion, error)
}

// DietChartService manages stored diet charts
type DietChartService interface {
	CreateChart(ctx context.Context, cmd CreateDietChartCommand) (*DietChartDTO, error)
	GetChart(ctx context.Context, id string) (*DietChartDTO, error)
	ListPatientCharts(ctx context.Context, patientID string, params PaginationParams) (*DietChartList, error)
	UpdateStatus(ctx context.Context, id string, status dietchart.Status) (*DietChartDTO, error)
	DeleteChart(ctx context.Context, id string) error
}

// Command objects for operations

// ValidateComplianceCommand contains the items to score
type ValidateComplianceCommand struct {
	Items     []nutrition.ConsumptionItem
	DoshaType string
	Season    catalog.Season // inferred from the clock when empty
}

// ScoreFoodCommand rates one catalog food
type ScoreFoodCommand struct {
	FoodID    string
	DoshaType string
	Season    catalog.Season
}

// SuggestMealCommand contains meal suggestion parameters
type SuggestMealCommand struct {
	PatientID      string
	MealType       mealplan.MealType
	TargetCalories float64
	ExcludeFoodIDs []string
	Season         catalog.Season
}

// CreateDietChartCommand contains data for a new chart
type CreateDietChartCommand struct {
	PatientID           string
	ChartType           dietchart.ChartType
	StartDate           time.Time
	EndDate             time.Time
	TargetCalories      float64
	DietaryRestrictions []string
	DayPlans            []dietchart.DayPlan
	Notes               string
}

// PaginationParams for paginated queries
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the page, treating pages as 1-based.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

// Limit returns the page size, defaulting to 20 and capped at 100.
func (p PaginationParams) Limit() int {
	switch {
	case p.PageSize <= 0:
		return 20
	case p.PageSize > 100:
		return 100
	default:
		return p.PageSize
	}
}

// Response DTOs

// NutritionTotals is the folded total of a list of items
type NutritionTotals struct {
	Totals          nutrition.ScaledNutrients `json:"totals"`
	ItemCount       int                       `json:"item_count"`
	UnresolvedItems []string                  `json:"unresolved_items"`
}

// FoodScore is a standalone candidate score
type FoodScore struct {
	FoodID    string         `json:"food_id"`
	Name      string         `json:"name"`
	DoshaType string         `json:"dosha_type"`
	Season    catalog.Season `json:"season"`
	Score     float64        `json:"score"`
}

// GuidelineDTO is the dosha table row applied for a dosha type
type GuidelineDTO struct {
	DoshaType    string               `json:"dosha_type"`
	AppliedDosha catalog.Dosha        `json:"applied_dosha"`
	Guideline    compliance.Guideline `json:"guideline"`
}

// DietChartDTO is a chart with its nutrient rollup
type DietChartDTO struct {
	Chart  *dietchart.Chart  `json:"chart"`
	Rollup *dietchart.Rollup `json:"nutrition"`
}

// DietChartList for paginated results
type DietChartList struct {
	Charts     []DietChartDTO `json:"charts"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}
