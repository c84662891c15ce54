// Package nutrition scales catalog nutrient profiles to consumed quantities
// and folds them into meal, day and plan rollups.
package nutrition

import "github.com/ayurplan/engine/internal/domain/catalog"

// SourceType tells which catalog collection a consumption item references
type SourceType string

const (
	SourceFood   SourceType = "food"
	SourceRecipe SourceType = "recipe"
)

// ConsumptionItem is a quantity of a referenced food or recipe
type ConsumptionItem struct {
	SourceType SourceType `json:"type"`
	SourceID   string     `json:"item_id"`
	Quantity   float64    `json:"quantity"`
	Unit       string     `json:"unit"`
}

// ResolvedItem pairs a consumption item with the catalog entry it references.
// Exactly one of Food or Recipe is set when the reference resolved; neither
// is set when it did not.
type ResolvedItem struct {
	Item   ConsumptionItem
	Food   *catalog.FoodItem
	Recipe *catalog.Recipe
}

// Unresolved tags an item whose reference could not be found.
func Unresolved(item ConsumptionItem) ResolvedItem {
	return ResolvedItem{Item: item}
}

// ResolvedFood tags an item resolved to a food.
func ResolvedFood(item ConsumptionItem, food catalog.FoodItem) ResolvedItem {
	return ResolvedItem{Item: item, Food: &food}
}

// ResolvedRecipe tags an item resolved to a recipe.
func ResolvedRecipe(item ConsumptionItem, recipe catalog.Recipe) ResolvedItem {
	return ResolvedItem{Item: item, Recipe: &recipe}
}

// Resolved reports whether the reference was found.
func (r ResolvedItem) Resolved() bool {
	return r.Food != nil || r.Recipe != nil
}

// Reference returns the per-serving profile and serving size of the
// referenced entry. ok is false for unresolved items.
func (r ResolvedItem) Reference() (profile catalog.Macros, servingSize float64, ok bool) {
	switch {
	case r.Food != nil:
		return r.Food.Nutrients, r.Food.ServingSize, true
	case r.Recipe != nil:
		return r.Recipe.Nutrients, r.Recipe.ServingSize, true
	default:
		return catalog.Macros{}, 0, false
	}
}

// Name returns the referenced entry's name, or "" when unresolved.
func (r ResolvedItem) Name() string {
	switch {
	case r.Food != nil:
		return r.Food.Name
	case r.Recipe != nil:
		return r.Recipe.Name
	default:
		return ""
	}
}
