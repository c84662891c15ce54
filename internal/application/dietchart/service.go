// Package dietchart provides the application layer for diet chart management
package dietchart

import (
	"context"
	stderrors "errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ayurplan/engine/internal/domain/dietchart"
	"github.com/ayurplan/engine/internal/ports/inbound"
	"github.com/ayurplan/engine/internal/ports/outbound"
	"github.com/ayurplan/engine/pkg/errors"
)

var tracer = otel.Tracer("github.com/ayurplan/engine/internal/application/dietchart")

// DietChartService implements the diet chart use cases
type DietChartService struct {
	charts    outbound.DietChartRepository
	patients  outbound.PatientRepository
	nutrition inbound.NutritionService
	now       func() time.Time
	logger    *zap.Logger
}

// NewDietChartService creates a new diet chart service
func NewDietChartService(
	charts outbound.DietChartRepository,
	patients outbound.PatientRepository,
	nutrition inbound.NutritionService,
	logger *zap.Logger,
) inbound.DietChartService {
	return &DietChartService{
		charts:    charts,
		patients:  patients,
		nutrition: nutrition,
		now:       time.Now,
		logger:    logger.Named("diet-chart-service"),
	}
}

// CreateChart validates and stores a new draft chart
func (s *DietChartService) CreateChart(ctx context.Context, cmd inbound.CreateDietChartCommand) (*inbound.DietChartDTO, error) {
	ctx, span := tracer.Start(ctx, "DietChartService.CreateChart")
	defer span.End()
	span.SetAttributes(attribute.String("patient_id", cmd.PatientID))

	s.logger.Info("Creating diet chart",
		zap.String("patient_id", cmd.PatientID),
		zap.String("chart_type", string(cmd.ChartType)),
		zap.Float64("target_calories", cmd.TargetCalories),
	)

	if _, err := s.patients.FindByID(ctx, cmd.PatientID); err != nil {
		if stderrors.Is(err, outbound.ErrNotFound) {
			return nil, errors.NewPatientNotFoundError(cmd.PatientID)
		}
		return nil, errors.NewDataStoreError("find patient", err)
	}

	chart, err := dietchart.New(dietchart.Chart{
		PatientID:           cmd.PatientID,
		ChartType:           cmd.ChartType,
		StartDate:           cmd.StartDate,
		EndDate:             cmd.EndDate,
		TargetCalories:      cmd.TargetCalories,
		DietaryRestrictions: cmd.DietaryRestrictions,
		DayPlans:            cmd.DayPlans,
		Notes:               cmd.Notes,
	}, s.now().UTC())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.charts.Save(ctx, chart); err != nil {
		span.RecordError(err)
		return nil, errors.NewDataStoreError("save diet chart", err)
	}

	dto, err := s.withRollup(ctx, chart)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Diet chart created",
		zap.String("chart_id", chart.ID),
		zap.Float64("average_calories", dto.Rollup.Average.Calories),
	)
	return dto, nil
}

// GetChart loads a chart with its rollup
func (s *DietChartService) GetChart(ctx context.Context, id string) (*inbound.DietChartDTO, error) {
	ctx, span := tracer.Start(ctx, "DietChartService.GetChart")
	defer span.End()

	chart, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withRollup(ctx, chart)
}

// ListPatientCharts pages through a patient's charts
func (s *DietChartService) ListPatientCharts(ctx context.Context, patientID string, params inbound.PaginationParams) (*inbound.DietChartList, error) {
	ctx, span := tracer.Start(ctx, "DietChartService.ListPatientCharts")
	defer span.End()

	charts, total, err := s.charts.FindByPatient(ctx, patientID, params.Offset(), params.Limit())
	if err != nil {
		span.RecordError(err)
		return nil, errors.NewDataStoreError("find diet charts", err)
	}

	list := &inbound.DietChartList{
		Charts:   make([]inbound.DietChartDTO, 0, len(charts)),
		Total:    total,
		Page:     max(params.Page, 1),
		PageSize: params.Limit(),
	}
	list.TotalPages = (total + list.PageSize - 1) / list.PageSize
	for _, c := range charts {
		dto, err := s.withRollup(ctx, c)
		if err != nil {
			return nil, err
		}
		list.Charts = append(list.Charts, *dto)
	}
	return list, nil
}

// UpdateStatus moves a chart through its lifecycle
func (s *DietChartService) UpdateStatus(ctx context.Context, id string, status dietchart.Status) (*inbound.DietChartDTO, error) {
	ctx, span := tracer.Start(ctx, "DietChartService.UpdateStatus")
	defer span.End()
	span.SetAttributes(attribute.String("chart_id", id), attribute.String("status", string(status)))

	chart, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	from := chart.Status
	if err := chart.TransitionTo(status, s.now().UTC()); err != nil {
		if stderrors.Is(err, dietchart.ErrInvalidStatus) {
			return nil, errors.NewValidationError(err.Error())
		}
		return nil, errors.NewInvalidTransitionError(string(from), string(status))
	}
	if err := s.charts.UpdateStatus(ctx, id, chart.Status, chart.UpdatedAt); err != nil {
		span.RecordError(err)
		return nil, errors.NewDataStoreError("update diet chart status", err)
	}

	s.logger.Info("Diet chart status updated",
		zap.String("chart_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(status)),
	)
	return s.withRollup(ctx, chart)
}

// DeleteChart removes a chart
func (s *DietChartService) DeleteChart(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "DietChartService.DeleteChart")
	defer span.End()

	if err := s.charts.Delete(ctx, id); err != nil {
		if stderrors.Is(err, outbound.ErrNotFound) {
			return errors.NewDietChartNotFoundError(id)
		}
		span.RecordError(err)
		return errors.NewDataStoreError("delete diet chart", err)
	}
	s.logger.Info("Diet chart deleted", zap.String("chart_id", id))
	return nil
}

func (s *DietChartService) find(ctx context.Context, id string) (*dietchart.Chart, error) {
	chart, err := s.charts.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, outbound.ErrNotFound) {
			return nil, errors.NewDietChartNotFoundError(id)
		}
		return nil, errors.NewDataStoreError("find diet chart", err)
	}
	return chart, nil
}

func (s *DietChartService) withRollup(ctx context.Context, chart *dietchart.Chart) (*inbound.DietChartDTO, error) {
	rollup, err := s.nutrition.CalculateChart(ctx, chart)
	if err != nil {
		return nil, err
	}
	return &inbound.DietChartDTO{Chart: chart, Rollup: rollup}, nil
}
