// Package compliance provides the application layer for Ayurvedic compliance checks
package compliance

import (
	"context"
	stderrors "errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ayurplan/engine/internal/application/resolver"
	"github.com/ayurplan/engine/internal/domain/compliance"
	"github.com/ayurplan/engine/internal/ports/inbound"
	"github.com/ayurplan/engine/internal/ports/outbound"
	"github.com/ayurplan/engine/pkg/errors"
)

var tracer = otel.Tracer("github.com/ayurplan/engine/internal/application/compliance")

// ComplianceService implements the compliance use cases
type ComplianceService struct {
	scorer   *compliance.Scorer
	resolver *resolver.Resolver
	catalog  outbound.CatalogStore
	metrics  outbound.EngineMetrics
	logger   *zap.Logger
}

// NewComplianceService creates a new compliance service
func NewComplianceService(
	scorer *compliance.Scorer,
	resolver *resolver.Resolver,
	catalog outbound.CatalogStore,
	metrics outbound.EngineMetrics,
	logger *zap.Logger,
) inbound.ComplianceService {
	return &ComplianceService{
		scorer:   scorer,
		resolver: resolver,
		catalog:  catalog,
		metrics:  metrics,
		logger:   logger.Named("compliance-service"),
	}
}

// ValidateCompliance scores the consumed items for a dosha type
func (s *ComplianceService) ValidateCompliance(ctx context.Context, cmd inbound.ValidateComplianceCommand) (*compliance.Result, error) {
	ctx, span := tracer.Start(ctx, "ComplianceService.ValidateCompliance")
	defer span.End()
	span.SetAttributes(
		attribute.Int("items", len(cmd.Items)),
		attribute.String("dosha_type", cmd.DoshaType),
	)

	resolved, err := s.resolver.Resolve(ctx, cmd.Items)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	result := s.scorer.Score(resolved, cmd.DoshaType, cmd.Season)
	s.metrics.ObserveCompliance(cmd.DoshaType, result.OverallScore)
	span.SetAttributes(attribute.Int("overall_score", result.OverallScore))

	s.logger.Info("Compliance validated",
		zap.String("dosha_type", cmd.DoshaType),
		zap.String("season", string(result.Season)),
		zap.Int("items", len(cmd.Items)),
		zap.Int("overall_score", result.OverallScore),
		zap.Int("warnings", len(result.Warnings)),
	)
	return &result, nil
}

// ScoreFood rates one catalog food for a dosha type
func (s *ComplianceService) ScoreFood(ctx context.Context, cmd inbound.ScoreFoodCommand) (*inbound.FoodScore, error) {
	ctx, span := tracer.Start(ctx, "ComplianceService.ScoreFood")
	defer span.End()
	span.SetAttributes(attribute.String("food_id", cmd.FoodID))

	food, err := s.catalog.GetFoodItem(ctx, cmd.FoodID)
	if err != nil {
		if stderrors.Is(err, outbound.ErrNotFound) {
			return nil, errors.NewFoodNotFoundError(cmd.FoodID)
		}
		span.RecordError(err)
		return nil, errors.NewDataStoreError("get food item", err)
	}

	season := s.scorer.ResolveSeason(cmd.Season)
	return &inbound.FoodScore{
		FoodID:    food.ID,
		Name:      food.Name,
		DoshaType: cmd.DoshaType,
		Season:    season,
		Score:     compliance.ScoreFood(*food, cmd.DoshaType, season),
	}, nil
}

// Guidelines returns the dosha table row applied for doshaType
func (s *ComplianceService) Guidelines(_ context.Context, doshaType string) (*inbound.GuidelineDTO, error) {
	applied, row := s.scorer.Guidelines().For(doshaType)
	return &inbound.GuidelineDTO{
		DoshaType:    doshaType,
		AppliedDosha: applied,
		Guideline:    row,
	}, nil
}
