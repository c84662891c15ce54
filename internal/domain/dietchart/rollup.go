package dietchart

import (
	"github.com/ayurplan/engine/internal/domain/mealplan"
	"github.com/ayurplan/engine/internal/domain/nutrition"
)

// MealTotals is the rollup of one meal
type MealTotals struct {
	MealType   mealplan.MealType         `json:"meal_type"`
	Totals     nutrition.ScaledNutrients `json:"totals"`
	Unresolved int                       `json:"unresolved_items"`
}

// DayTotals is the rollup of one day
type DayTotals struct {
	DayNumber int                       `json:"day_number"`
	Meals     []MealTotals              `json:"meals"`
	Totals    nutrition.ScaledNutrients `json:"totals"`
}

// Rollup is the nutrient summary of a chart
type Rollup struct {
	Days    []DayTotals               `json:"days"`
	Average nutrition.ScaledNutrients `json:"daily_average"`
}

// Resolver looks up the catalog entry referenced by an item.
type Resolver func(nutrition.ConsumptionItem) nutrition.ResolvedItem

// Calculate folds the chart's items into meal totals, day totals and the
// per-day average. Unresolved items contribute zero.
func Calculate(c *Chart, resolve Resolver) Rollup {
	out := Rollup{Days: make([]DayTotals, 0, len(c.DayPlans))}
	dayValues := make([]nutrition.ScaledNutrients, 0, len(c.DayPlans))
	for _, day := range c.DayPlans {
		dt := DayTotals{DayNumber: day.DayNumber, Meals: make([]MealTotals, 0, len(day.Meals))}
		mealValues := make([]nutrition.ScaledNutrients, 0, len(day.Meals))
		for _, meal := range day.Meals {
			resolved := make([]nutrition.ResolvedItem, len(meal.Items))
			unresolved := 0
			for i, item := range meal.Items {
				resolved[i] = resolve(item)
				if !resolved[i].Resolved() {
					unresolved++
				}
			}
			totals := nutrition.FoldTotals(resolved)
			mealValues = append(mealValues, totals)
			dt.Meals = append(dt.Meals, MealTotals{MealType: meal.MealType, Totals: totals, Unresolved: unresolved})
		}
		dt.Totals = nutrition.DailyTotals(mealValues)
		dayValues = append(dayValues, dt.Totals)
		out.Days = append(out.Days, dt)
	}
	out.Average = nutrition.PlanAverage(dayValues)
	return out
}
