// Package gorm provides GORM model definitions for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayurplan/engine/internal/domain/dietchart"
)

// FoodItemModel represents the GORM model for catalog foods
type FoodItemModel struct {
	ID          string  `gorm:"type:char(36);primaryKey"`
	Name        string  `gorm:"type:varchar(255);not null;index"`
	Category    string  `gorm:"type:varchar(30);not null;index"`
	ServingSize float64 `gorm:"not null"`
	ServingUnit string  `gorm:"type:varchar(20);default:'g'"`

	// Macros per serving
	Calories float64 `gorm:"not null;default:0"`
	Protein  float64 `gorm:"default:0"`
	Carbs    float64 `gorm:"default:0"`
	Fat      float64 `gorm:"default:0"`
	Fiber    float64 `gorm:"default:0"`

	// Ayurvedic profile
	Rasa               StringSlice `gorm:"type:json"`
	Virya              string      `gorm:"type:varchar(10)"`
	Vipaka             string      `gorm:"type:varchar(10)"`
	Guna               StringSlice `gorm:"type:json"`
	DigestibilityScore float64     `gorm:"default:0"`

	SeasonalRecommendation StringSlice `gorm:"type:json"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	// Relationships
	Doshas []FoodDoshaModel `gorm:"foreignKey:FoodID;constraint:OnDelete:CASCADE"`
}

// FoodDoshaModel tags a food with one suitable dosha. Tags live in their own
// table so candidate queries can filter on them with plain SQL.
type FoodDoshaModel struct {
	FoodID string `gorm:"type:char(36);primaryKey"`
	Dosha  string `gorm:"type:varchar(10);primaryKey;index"`
}

// RecipeModel represents the GORM model for catalog recipes
type RecipeModel struct {
	ID          string  `gorm:"type:char(36);primaryKey"`
	Name        string  `gorm:"type:varchar(255);not null;index"`
	ServingSize float64 `gorm:"not null"`

	Calories float64 `gorm:"not null;default:0"`
	Protein  float64 `gorm:"default:0"`
	Carbs    float64 `gorm:"default:0"`
	Fat      float64 `gorm:"default:0"`
	Fiber    float64 `gorm:"default:0"`

	Rasa               StringSlice `gorm:"type:json"`
	Virya              string      `gorm:"type:varchar(10)"`
	DigestibilityScore float64     `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PatientModel represents the GORM model for patients
type PatientModel struct {
	ID                string      `gorm:"type:char(36);primaryKey"`
	Name              string      `gorm:"type:varchar(255);not null"`
	Age               int         `gorm:"not null"`
	Gender            string      `gorm:"type:varchar(10)"`
	DoshaType         string      `gorm:"type:varchar(20);not null;index"`
	MedicalConditions StringSlice `gorm:"type:json"`
	Allergies         StringSlice `gorm:"type:json"`
	HeightCm          float64
	WeightKg          float64
	ActivityLevel     string `gorm:"type:varchar(20)"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DietChartModel represents the GORM model for diet charts
type DietChartModel struct {
	ID                  string      `gorm:"type:char(36);primaryKey"`
	PatientID           string      `gorm:"type:char(36);not null;index"`
	ChartType           string      `gorm:"type:varchar(10);not null"`
	StartDate           time.Time   `gorm:"not null"`
	EndDate             time.Time   `gorm:"not null"`
	TargetCalories      float64     `gorm:"not null"`
	DietaryRestrictions StringSlice `gorm:"type:json"`
	Status              string      `gorm:"type:varchar(20);default:'draft';index"`
	DayPlans            DayPlans    `gorm:"type:json"`
	Notes               string      `gorm:"type:text"`
	CreatedAt           time.Time   `gorm:"index"`
	UpdatedAt           time.Time
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

// DayPlans stores a chart's day plans as one JSON document
type DayPlans []dietchart.DayPlan

// Scan implements the sql.Scanner interface
func (d *DayPlans) Scan(value interface{}) error {
	if value == nil {
		*d = DayPlans{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("cannot scan %T into DayPlans", value)
	}
}

// Value implements the driver.Valuer interface
func (d DayPlans) Value() (driver.Value, error) {
	if len(d) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(d)
	return string(b), err
}

// BeforeCreate hook for FoodItemModel
func (f *FoodItemModel) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// BeforeCreate hook for PatientModel
func (p *PatientModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// BeforeCreate hook for DietChartModel
func (d *DietChartModel) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

func (FoodItemModel) TableName() string {
	return "food_items"
}

func (FoodDoshaModel) TableName() string {
	return "food_doshas"
}

func (RecipeModel) TableName() string {
	return "recipes"
}

func (PatientModel) TableName() string {
	return "patients"
}

func (DietChartModel) TableName() string {
	return "diet_charts"
}

// AllModels lists every model for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&FoodItemModel{},
		&FoodDoshaModel{},
		&RecipeModel{},
		&PatientModel{},
		&DietChartModel{},
	}
}
