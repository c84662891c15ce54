package nutrition

import (
	"math"

	"github.com/ayurplan/engine/internal/domain/catalog"
)

// ScaledNutrients is a nutrient total for a consumed quantity. Values returned
// by the fold functions are rounded: calories to an integer, the rest to one
// decimal place.
type ScaledNutrients struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// Add returns the elementwise sum of n and o.
func (n ScaledNutrients) Add(o ScaledNutrients) ScaledNutrients {
	return ScaledNutrients{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fat:      n.Fat + o.Fat,
		Fiber:    n.Fiber + o.Fiber,
	}
}

// Div divides every field by d.
func (n ScaledNutrients) Div(d float64) ScaledNutrients {
	return ScaledNutrients{
		Calories: n.Calories / d,
		Protein:  n.Protein / d,
		Carbs:    n.Carbs / d,
		Fat:      n.Fat / d,
		Fiber:    n.Fiber / d,
	}
}

// Rounded applies the reporting precision.
func (n ScaledNutrients) Rounded() ScaledNutrients {
	return ScaledNutrients{
		Calories: math.Round(n.Calories),
		Protein:  roundTenth(n.Protein),
		Carbs:    roundTenth(n.Carbs),
		Fat:      roundTenth(n.Fat),
		Fiber:    roundTenth(n.Fiber),
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// Scale returns the unrounded nutrients for quantity of an entry whose
// per-serving profile is reference. A non-positive serving size contributes
// zero.
func Scale(quantity float64, reference catalog.Macros, servingSize float64) ScaledNutrients {
	if servingSize <= 0 || quantity <= 0 {
		return ScaledNutrients{}
	}
	// multiply before dividing so whole-number inputs stay exact
	scale := func(v float64) float64 { return v * quantity / servingSize }
	return ScaledNutrients{
		Calories: scale(reference.Calories),
		Protein:  scale(reference.Protein),
		Carbs:    scale(reference.Carbs),
		Fat:      scale(reference.Fat),
		Fiber:    scale(reference.Fiber),
	}
}

// ScaleItem returns the unrounded contribution of one resolved item.
// Unresolved items contribute zero.
func ScaleItem(item ResolvedItem) ScaledNutrients {
	profile, servingSize, ok := item.Reference()
	if !ok {
		return ScaledNutrients{}
	}
	return Scale(item.Item.Quantity, profile, servingSize)
}

// Sum adds values without rounding.
func Sum(values []ScaledNutrients) ScaledNutrients {
	var total ScaledNutrients
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// FoldTotals sums the contributions of items and rounds the total once.
func FoldTotals(items []ResolvedItem) ScaledNutrients {
	var total ScaledNutrients
	for _, item := range items {
		total = total.Add(ScaleItem(item))
	}
	return total.Rounded()
}

// DailyTotals folds per-meal totals into a day total.
func DailyTotals(meals []ScaledNutrients) ScaledNutrients {
	return Sum(meals).Rounded()
}

// PlanAverage averages per-day totals. An empty plan averages to zero.
func PlanAverage(days []ScaledNutrients) ScaledNutrients {
	if len(days) == 0 {
		return ScaledNutrients{}
	}
	return Sum(days).Div(float64(len(days))).Rounded()
}
