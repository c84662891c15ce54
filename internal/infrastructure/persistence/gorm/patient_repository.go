package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ayurplan/engine/internal/domain/patient"
	"github.com/ayurplan/engine/internal/ports/outbound"
)

// PatientRepository implements the patient repository interface using GORM
type PatientRepository struct {
	db *gorm.DB
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(db *gorm.DB) outbound.PatientRepository {
	return &PatientRepository{db: db}
}

// FindByID finds a patient by ID
func (r *PatientRepository) FindByID(ctx context.Context, id string) (*patient.Patient, error) {
	var model PatientModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrNotFound
		}
		return nil, result.Error
	}

	return ModelToPatient(&model), nil
}

// Save upserts a patient
func (r *PatientRepository) Save(ctx context.Context, p *patient.Patient) error {
	model := PatientToModel(p)

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}

	p.ID = model.ID
	return nil
}
