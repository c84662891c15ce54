// Package dietchart models practitioner diet charts and their nutrient rollups.
package dietchart

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/ayurplan/engine/internal/domain/mealplan"
	"github.com/ayurplan/engine/internal/domain/nutrition"
)

// Domain errors
var (
	ErrMissingPatient      = errors.New("diet chart requires a patient")
	ErrInvalidChartType    = errors.New("invalid chart type")
	ErrTargetOutOfRange    = errors.New("target calories out of range")
	ErrInvalidDateRange    = errors.New("end date precedes start date")
	ErrInvalidDayNumber    = errors.New("day numbers must be positive")
	ErrInvalidStatus       = errors.New("invalid chart status")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrNonPositiveQuantity = errors.New("item quantity must be positive")
)

// Calorie target bounds
const (
	MinTargetCalories = 500
	MaxTargetCalories = 5000
)

// ChartType is the planning horizon of a chart
type ChartType string

const (
	ChartDaily   ChartType = "daily"
	ChartWeekly  ChartType = "weekly"
	ChartMonthly ChartType = "monthly"
)

// Status is the lifecycle state of a chart
type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusDraft:  {StatusActive, StatusCancelled},
	StatusActive: {StatusCompleted, StatusCancelled},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

// Meal is one meal slot of a day plan
type Meal struct {
	MealType mealplan.MealType           `json:"meal_type"`
	TimeSlot string                      `json:"time_slot,omitempty"`
	Items    []nutrition.ConsumptionItem `json:"items"`
	Notes    string                      `json:"notes,omitempty"`
}

// DayPlan is the meals of one chart day
type DayPlan struct {
	DayNumber int    `json:"day_number"`
	Meals     []Meal `json:"meals"`
}

// Chart is a patient's diet chart
type Chart struct {
	ID                  string    `json:"id"`
	PatientID           string    `json:"patient_id"`
	ChartType           ChartType `json:"chart_type"`
	StartDate           time.Time `json:"start_date"`
	EndDate             time.Time `json:"end_date"`
	TargetCalories      float64   `json:"target_calories"`
	DietaryRestrictions []string  `json:"dietary_restrictions,omitempty"`
	Status              Status    `json:"status"`
	DayPlans            []DayPlan `json:"day_plans"`
	Notes               string    `json:"notes,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// New assigns an id and draft status to chart and validates it.
func New(chart Chart, now time.Time) (*Chart, error) {
	chart.ID = uuid.New().String()
	if chart.Status == "" {
		chart.Status = StatusDraft
	}
	chart.CreatedAt = now
	chart.UpdatedAt = now
	if err := chart.Validate(); err != nil {
		return nil, err
	}
	return &chart, nil
}

// Validate checks the chart's structural invariants.
func (c *Chart) Validate() error {
	if c.PatientID == "" {
		return ErrMissingPatient
	}
	switch c.ChartType {
	case ChartDaily, ChartWeekly, ChartMonthly:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidChartType, c.ChartType)
	}
	if c.TargetCalories < MinTargetCalories || c.TargetCalories > MaxTargetCalories {
		return fmt.Errorf("%w: %.0f not in [%d, %d]", ErrTargetOutOfRange, c.TargetCalories, MinTargetCalories, MaxTargetCalories)
	}
	if !c.EndDate.IsZero() && c.EndDate.Before(c.StartDate) {
		return ErrInvalidDateRange
	}
	if !c.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, c.Status)
	}
	for _, day := range c.DayPlans {
		if day.DayNumber < 1 {
			return ErrInvalidDayNumber
		}
		for _, meal := range day.Meals {
			for _, item := range meal.Items {
				if item.Quantity <= 0 {
					return ErrNonPositiveQuantity
				}
			}
		}
	}
	return nil
}

// TransitionTo moves the chart to next when the lifecycle allows it.
func (c *Chart) TransitionTo(next Status, now time.Time) error {
	if !next.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}
	if !c.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, next)
	}
	c.Status = next
	c.UpdatedAt = now
	return nil
}

// Items returns every consumption item of the chart in day and meal order.
func (c *Chart) Items() []nutrition.ConsumptionItem {
	var items []nutrition.ConsumptionItem
	for _, day := range c.DayPlans {
		for _, meal := range day.Meals {
			items = append(items, meal.Items...)
		}
	}
	return items
}
