// Package mealsuggestion provides the application layer for meal composition
package mealsuggestion

import (
	"context"
	stderrors "errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ayurplan/engine/internal/domain/mealplan"
	"github.com/ayurplan/engine/internal/ports/inbound"
	"github.com/ayurplan/engine/internal/ports/outbound"
	"github.com/ayurplan/engine/pkg/errors"
)

var tracer = otel.Tracer("github.com/ayurplan/engine/internal/application/mealsuggestion")

// PoolConfig sizes the candidate pool
type PoolConfig struct {
	CompatibleLimit int
	FallbackLimit   int
	MinCompatible   int
}

// DefaultPoolConfig returns the standard pool sizes
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{CompatibleLimit: 50, FallbackLimit: 50, MinCompatible: 20}
}

// MealSuggestionService implements the meal suggestion use case
type MealSuggestionService struct {
	planner  *mealplan.Planner
	catalog  outbound.CatalogStore
	patients outbound.PatientRepository
	metrics  outbound.EngineMetrics
	pool     PoolConfig
	logger   *zap.Logger
}

// NewMealSuggestionService creates a new meal suggestion service
func NewMealSuggestionService(
	planner *mealplan.Planner,
	catalog outbound.CatalogStore,
	patients outbound.PatientRepository,
	metrics outbound.EngineMetrics,
	pool PoolConfig,
	logger *zap.Logger,
) inbound.MealSuggestionService {
	return &MealSuggestionService{
		planner:  planner,
		catalog:  catalog,
		patients: patients,
		metrics:  metrics,
		pool:     pool,
		logger:   logger.Named("meal-suggestion-service"),
	}
}

// SuggestMeal composes a meal for the patient
func (s *MealSuggestionService) SuggestMeal(ctx context.Context, cmd inbound.SuggestMealCommand) (*mealplan.Suggestion, error) {
	ctx, span := tracer.Start(ctx, "MealSuggestionService.SuggestMeal")
	defer span.End()
	span.SetAttributes(
		attribute.String("patient_id", cmd.PatientID),
		attribute.String("meal_type", string(cmd.MealType)),
		attribute.Float64("target_calories", cmd.TargetCalories),
	)

	if err := s.planner.Validate(cmd.MealType, cmd.TargetCalories); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	p, err := s.patients.FindByID(ctx, cmd.PatientID)
	if err != nil {
		if stderrors.Is(err, outbound.ErrNotFound) {
			return nil, errors.NewPatientNotFoundError(cmd.PatientID)
		}
		span.RecordError(err)
		return nil, errors.NewDataStoreError("find patient", err)
	}

	query := outbound.FoodQuery{
		ExcludeIDs: cmd.ExcludeFoodIDs,
		Allergens:  p.AllergenTerms(),
		DoshaParts: p.DoshaParts(),
		Limit:      s.pool.CompatibleLimit,
	}
	foods, err := s.catalog.QueryCompatibleFoods(ctx, query)
	if err != nil {
		span.RecordError(err)
		return nil, errors.NewDataStoreError("query compatible foods", err)
	}
	compatible := len(foods)

	// the broadened pool is appended as-is; duplicates stay selectable
	fallback := 0
	if compatible < s.pool.MinCompatible {
		query.DoshaParts = nil
		query.Limit = s.pool.FallbackLimit
		more, err := s.catalog.QueryFoods(ctx, query)
		if err != nil {
			span.RecordError(err)
			return nil, errors.NewDataStoreError("query foods", err)
		}
		fallback = len(more)
		foods = append(foods, more...)
	}
	s.metrics.ObserveCandidatePool(compatible, fallback)

	suggestion, err := s.planner.Compose(foods, p.DoshaType, cmd.MealType, cmd.TargetCalories, cmd.Season)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	s.metrics.ObserveSuggestion(string(cmd.MealType), len(suggestion.Items), suggestion.ComplianceScore)

	s.logger.Info("Meal suggested",
		zap.String("patient_id", p.ID),
		zap.String("dosha_type", p.DoshaType),
		zap.String("meal_type", string(cmd.MealType)),
		zap.Int("candidates", len(foods)),
		zap.Int("items", len(suggestion.Items)),
		zap.Float64("calories", suggestion.Totals.Calories),
		zap.Int("compliance_score", suggestion.ComplianceScore),
	)
	return &suggestion, nil
}
