package gorm

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ayurplan/engine/internal/domain/dietchart"
	"github.com/ayurplan/engine/internal/ports/outbound"
)

// DietChartRepository implements the diet chart repository interface using GORM
type DietChartRepository struct {
	db *gorm.DB
}

// NewDietChartRepository creates a new diet chart repository
func NewDietChartRepository(db *gorm.DB) outbound.DietChartRepository {
	return &DietChartRepository{db: db}
}

// Save upserts a diet chart
func (r *DietChartRepository) Save(ctx context.Context, chart *dietchart.Chart) error {
	model := ChartToModel(chart)

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}

	chart.ID = model.ID
	return nil
}

// FindByID finds a diet chart by ID
func (r *DietChartRepository) FindByID(ctx context.Context, id string) (*dietchart.Chart, error) {
	var model DietChartModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrNotFound
		}
		return nil, result.Error
	}

	return ModelToChart(&model), nil
}

// FindByPatient finds a patient's charts with pagination, newest first
func (r *DietChartRepository) FindByPatient(ctx context.Context, patientID string, offset, limit int) ([]*dietchart.Chart, int, error) {
	var models []DietChartModel
	var total int64

	// Count total
	countResult := r.db.WithContext(ctx).Model(&DietChartModel{}).
		Where("patient_id = ?", patientID).
		Count(&total)
	if countResult.Error != nil {
		return nil, 0, countResult.Error
	}

	// Get charts
	result := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	charts := make([]*dietchart.Chart, len(models))
	for i := range models {
		charts[i] = ModelToChart(&models[i])
	}

	return charts, int(total), nil
}

// UpdateStatus sets a chart's status
func (r *DietChartRepository) UpdateStatus(ctx context.Context, id string, status dietchart.Status, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&DietChartModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}

	return nil
}

// Delete deletes a diet chart by ID (soft delete)
func (r *DietChartRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&DietChartModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}

	return nil
}
