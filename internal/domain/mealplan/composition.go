// Package mealplan composes calorie-constrained meals from a ranked pool of
// candidate foods.
package mealplan

import (
	"slices"

	"github.com/ayurplan/engine/internal/domain/catalog"
)

// MealType identifies a meal slot in a day
type MealType string

const (
	MealBreakfast       MealType = "breakfast"
	MealMidMorningSnack MealType = "mid-morning-snack"
	MealLunch           MealType = "lunch"
	MealEveningSnack    MealType = "evening-snack"
	MealDinner          MealType = "dinner"
	MealBedtimeSnack    MealType = "bedtime-snack"
)

// MealTypes returns every meal type in daily order.
func MealTypes() []MealType {
	return []MealType{
		MealBreakfast, MealMidMorningSnack, MealLunch,
		MealEveningSnack, MealDinner, MealBedtimeSnack,
	}
}

// Portion is one category slot of a meal and its share of the calorie target
type Portion struct {
	Category catalog.Category `json:"category"`
	Fraction float64          `json:"fraction"`
}

// Compositions maps a meal type onto its ordered portions. Values are
// immutable once built.
type Compositions struct {
	table map[MealType][]Portion
}

// NewCompositions copies table.
func NewCompositions(table map[MealType][]Portion) Compositions {
	copied := make(map[MealType][]Portion, len(table))
	for mt, portions := range table {
		copied[mt] = slices.Clone(portions)
	}
	return Compositions{table: copied}
}

// DefaultCompositions returns the standard portion table.
func DefaultCompositions() Compositions {
	snack := []Portion{
		{catalog.CategoryFruits, 0.5},
		{catalog.CategoryNuts, 0.3},
		{catalog.CategoryBeverages, 0.2},
	}
	return NewCompositions(map[MealType][]Portion{
		MealBreakfast: {
			{catalog.CategoryGrains, 0.4},
			{catalog.CategoryFruits, 0.3},
			{catalog.CategoryDairy, 0.2},
			{catalog.CategoryNuts, 0.1},
		},
		MealMidMorningSnack: snack,
		MealLunch: {
			{catalog.CategoryGrains, 0.35},
			{catalog.CategoryLegumes, 0.25},
			{catalog.CategoryVegetables, 0.25},
			{catalog.CategoryDairy, 0.15},
		},
		MealEveningSnack: snack,
		MealDinner: {
			{catalog.CategoryGrains, 0.3},
			{catalog.CategoryVegetables, 0.3},
			{catalog.CategoryLegumes, 0.25},
			{catalog.CategoryDairy, 0.15},
		},
		MealBedtimeSnack: {
			{catalog.CategoryDairy, 0.5},
			{catalog.CategoryNuts, 0.3},
			{catalog.CategoryFruits, 0.2},
		},
	})
}

// For returns a copy of the portions for mealType.
func (c Compositions) For(mealType MealType) ([]Portion, bool) {
	portions, ok := c.table[mealType]
	if !ok {
		return nil, false
	}
	return slices.Clone(portions), true
}

// Has reports whether mealType is known.
func (c Compositions) Has(mealType MealType) bool {
	_, ok := c.table[mealType]
	return ok
}
