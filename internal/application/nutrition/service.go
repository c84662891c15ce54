// Package nutrition provides the application layer for nutrient aggregation
package nutrition

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ayurplan/engine/internal/application/resolver"
	"github.com/ayurplan/engine/internal/domain/dietchart"
	"github.com/ayurplan/engine/internal/domain/nutrition"
	"github.com/ayurplan/engine/internal/ports/inbound"
)

var tracer = otel.Tracer("github.com/ayurplan/engine/internal/application/nutrition")

// NutritionService implements the aggregation use cases
type NutritionService struct {
	resolver *resolver.Resolver
	logger   *zap.Logger
}

// NewNutritionService creates a new nutrition service
func NewNutritionService(resolver *resolver.Resolver, logger *zap.Logger) inbound.NutritionService {
	return &NutritionService{
		resolver: resolver,
		logger:   logger.Named("nutrition-service"),
	}
}

// CalculateTotals folds the scaled nutrients of items
func (s *NutritionService) CalculateTotals(ctx context.Context, items []nutrition.ConsumptionItem) (*inbound.NutritionTotals, error) {
	ctx, span := tracer.Start(ctx, "NutritionService.CalculateTotals")
	defer span.End()
	span.SetAttributes(attribute.Int("items", len(items)))

	resolved, err := s.resolver.Resolve(ctx, items)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	out := &inbound.NutritionTotals{
		Totals:          nutrition.FoldTotals(resolved),
		ItemCount:       len(items),
		UnresolvedItems: []string{},
	}
	for _, r := range resolved {
		if !r.Resolved() {
			out.UnresolvedItems = append(out.UnresolvedItems, r.Item.SourceID)
		}
	}

	s.logger.Debug("Calculated totals",
		zap.Int("items", len(items)),
		zap.Int("unresolved", len(out.UnresolvedItems)),
		zap.Float64("calories", out.Totals.Calories),
	)
	return out, nil
}

// CalculateChart rolls a chart up into meal, day and average totals
func (s *NutritionService) CalculateChart(ctx context.Context, chart *dietchart.Chart) (*dietchart.Rollup, error) {
	ctx, span := tracer.Start(ctx, "NutritionService.CalculateChart")
	defer span.End()
	span.SetAttributes(attribute.Int("days", len(chart.DayPlans)))

	var foodIDs, recipeIDs []string
	for _, item := range chart.Items() {
		switch item.SourceType {
		case nutrition.SourceFood:
			foodIDs = append(foodIDs, item.SourceID)
		case nutrition.SourceRecipe:
			recipeIDs = append(recipeIDs, item.SourceID)
		}
	}
	lookup, err := s.resolver.Lookup(ctx, foodIDs, recipeIDs)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	rollup := dietchart.Calculate(chart, lookup.Resolve)
	s.logger.Debug("Calculated chart",
		zap.String("chart_id", chart.ID),
		zap.Int("days", len(rollup.Days)),
		zap.Float64("average_calories", rollup.Average.Calories),
	)
	return &rollup, nil
}
