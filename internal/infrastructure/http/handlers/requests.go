package handlers

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ayurplan/engine/internal/domain/catalog"
	"github.com/ayurplan/engine/internal/domain/dietchart"
	"github.com/ayurplan/engine/internal/domain/mealplan"
	"github.com/ayurplan/engine/internal/domain/nutrition"
	"github.com/ayurplan/engine/internal/ports/inbound"
)

// ItemRequest references a quantity of a catalog food or recipe
type ItemRequest struct {
	Type     string  `json:"type" validate:"required,oneof=food recipe"`
	ItemID   string  `json:"item_id" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gt=0"`
	Unit     string  `json:"unit"`
}

func toItems(in []ItemRequest) []nutrition.ConsumptionItem {
	out := make([]nutrition.ConsumptionItem, len(in))
	for i, item := range in {
		unit := item.Unit
		if unit == "" {
			unit = "g"
		}
		out[i] = nutrition.ConsumptionItem{
			SourceType: nutrition.SourceType(item.Type),
			SourceID:   item.ItemID,
			Quantity:   item.Quantity,
			Unit:       unit,
		}
	}
	return out
}

// ValidateComplianceRequest is the body of POST /compliance/validate
type ValidateComplianceRequest struct {
	Items     []ItemRequest `json:"items" validate:"required,dive"`
	DoshaType string        `json:"dosha_type" validate:"required"`
	Season    string        `json:"season" validate:"omitempty,oneof=spring summer autumn winter"`
}

// ToCommand converts the request into a service command
func (r ValidateComplianceRequest) ToCommand() inbound.ValidateComplianceCommand {
	return inbound.ValidateComplianceCommand{
		Items:     toItems(r.Items),
		DoshaType: r.DoshaType,
		Season:    catalog.Season(r.Season),
	}
}

// NutritionTotalsRequest is the body of POST /nutrition/totals
type NutritionTotalsRequest struct {
	Items []ItemRequest `json:"items" validate:"required,dive"`
}

// ScoreFoodRequest is the body of POST /foods/score
type ScoreFoodRequest struct {
	FoodID    string `json:"food_id" validate:"required"`
	DoshaType string `json:"dosha_type" validate:"required"`
	Season    string `json:"season" validate:"omitempty,oneof=spring summer autumn winter"`
}

// ToCommand converts the request into a service command
func (r ScoreFoodRequest) ToCommand() inbound.ScoreFoodCommand {
	return inbound.ScoreFoodCommand{
		FoodID:    r.FoodID,
		DoshaType: r.DoshaType,
		Season:    catalog.Season(r.Season),
	}
}

// SuggestMealRequest is the body of POST /meal-suggestions
type SuggestMealRequest struct {
	PatientID      string   `json:"patient_id" validate:"required"`
	MealType       string   `json:"meal_type" validate:"required"`
	TargetCalories float64  `json:"target_calories" validate:"gt=0"`
	ExcludeFoodIDs []string `json:"exclude_food_ids"`
	Season         string   `json:"season" validate:"omitempty,oneof=spring summer autumn winter"`
}

// ToCommand converts the request into a service command
func (r SuggestMealRequest) ToCommand() inbound.SuggestMealCommand {
	return inbound.SuggestMealCommand{
		PatientID:      r.PatientID,
		MealType:       mealplan.MealType(r.MealType),
		TargetCalories: r.TargetCalories,
		ExcludeFoodIDs: r.ExcludeFoodIDs,
		Season:         catalog.Season(r.Season),
	}
}

// Date accepts either a calendar date or an RFC 3339 timestamp
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC 3339", s)
	}
	d.Time = t.UTC()
	return nil
}

// MealRequest is one meal slot of a chart day
type MealRequest struct {
	MealType string        `json:"meal_type" validate:"required,oneof=breakfast mid-morning-snack lunch evening-snack dinner bedtime-snack"`
	TimeSlot string        `json:"time_slot"`
	Items    []ItemRequest `json:"items" validate:"dive"`
	Notes    string        `json:"notes"`
}

// DayPlanRequest is one day of a chart
type DayPlanRequest struct {
	DayNumber int           `json:"day_number" validate:"gte=1"`
	Meals     []MealRequest `json:"meals" validate:"dive"`
}

// CreateDietChartRequest is the body of POST /diet-charts
type CreateDietChartRequest struct {
	PatientID           string           `json:"patient_id" validate:"required"`
	ChartType           string           `json:"chart_type" validate:"required,oneof=daily weekly monthly"`
	StartDate           Date             `json:"start_date"`
	EndDate             Date             `json:"end_date"`
	TargetCalories      float64          `json:"target_calories" validate:"gte=500,lte=5000"`
	DietaryRestrictions []string         `json:"dietary_restrictions"`
	DayPlans            []DayPlanRequest `json:"day_plans" validate:"dive"`
	Notes               string           `json:"notes"`
}

// ToCommand converts the request into a service command. A missing
// start date defaults to now.
func (r CreateDietChartRequest) ToCommand(now time.Time) inbound.CreateDietChartCommand {
	start := r.StartDate.Time
	if start.IsZero() {
		start = now
	}
	days := make([]dietchart.DayPlan, len(r.DayPlans))
	for i, day := range r.DayPlans {
		meals := make([]dietchart.Meal, len(day.Meals))
		for j, meal := range day.Meals {
			meals[j] = dietchart.Meal{
				MealType: mealplan.MealType(meal.MealType),
				TimeSlot: meal.TimeSlot,
				Items:    toItems(meal.Items),
				Notes:    meal.Notes,
			}
		}
		days[i] = dietchart.DayPlan{DayNumber: day.DayNumber, Meals: meals}
	}
	return inbound.CreateDietChartCommand{
		PatientID:           r.PatientID,
		ChartType:           dietchart.ChartType(r.ChartType),
		StartDate:           start,
		EndDate:             r.EndDate.Time,
		TargetCalories:      r.TargetCalories,
		DietaryRestrictions: r.DietaryRestrictions,
		DayPlans:            days,
		Notes:               r.Notes,
	}
}

// UpdateStatusRequest is the body of PATCH /diet-charts/{id}/status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft active completed cancelled"`
}
