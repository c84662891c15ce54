// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/ayurplan/engine/internal/domain/catalog"
	"github.com/ayurplan/engine/internal/domain/dietchart"
	"github.com/ayurplan/engine/internal/domain/mealplan"
	"github.com/ayurplan/engine/internal/domain/nutrition"
	"github.com/ayurplan/engine/internal/domain/patient"
)

// CatalogFactory builds random but reproducible catalog entries
type CatalogFactory struct {
	faker *gofakeit.Faker
}

// NewCatalogFactory creates a new catalog factory with seeded faker
func NewCatalogFactory(seed int64) *CatalogFactory {
	return &CatalogFactory{faker: gofakeit.New(seed)}
}

// Food returns a random food of the given category
func (f *CatalogFactory) Food(category catalog.Category) catalog.FoodItem {
	rasas := catalog.Rasas()
	doshas := []catalog.Dosha{catalog.DoshaVata, catalog.DoshaPitta, catalog.DoshaKapha, catalog.DoshaAll}
	seasons := []catalog.Season{catalog.SeasonSpring, catalog.SeasonSummer, catalog.SeasonAutumn, catalog.SeasonWinter, catalog.SeasonAll}
	viryas := []catalog.Virya{catalog.ViryaHot, catalog.ViryaCold, catalog.ViryaNeutral}

	return NewFoodBuilder().
		WithName(f.faker.Noun()+" "+f.faker.Adjective()).
		WithCategory(category).
		WithServing(float64(f.faker.Number(20, 250))).
		WithMacros(catalog.Macros{
			Calories: float64(f.faker.Number(5, 400)),
			Protein:  f.faker.Float64Range(0, 25),
			Carbs:    f.faker.Float64Range(0, 60),
			Fat:      f.faker.Float64Range(0, 20),
			Fiber:    f.faker.Float64Range(0, 10),
		}).
		WithRasa(rasas[f.faker.Number(0, len(rasas)-1)]).
		WithVirya(viryas[f.faker.Number(0, len(viryas)-1)]).
		WithDoshas(doshas[f.faker.Number(0, len(doshas)-1)]).
		WithSeasons(seasons[f.faker.Number(0, len(seasons)-1)]).
		WithDigestibility(float64(f.faker.Number(0, 100))).
		Build()
}

// Foods returns n random foods spread across the meal categories
func (f *CatalogFactory) Foods(n int) []catalog.FoodItem {
	categories := []catalog.Category{
		catalog.CategoryGrains, catalog.CategoryFruits, catalog.CategoryDairy, catalog.CategoryNuts,
		catalog.CategoryLegumes, catalog.CategoryVegetables, catalog.CategoryBeverages, catalog.CategorySpices,
	}
	foods := make([]catalog.FoodItem, n)
	for i := range foods {
		foods[i] = f.Food(categories[i%len(categories)])
	}
	return foods
}

// Patient returns a random patient with the given dosha type
func (f *CatalogFactory) Patient(doshaType string) *patient.Patient {
	return &patient.Patient{
		ID:            uuid.New().String(),
		Name:          f.faker.Name(),
		Age:           f.faker.Number(18, 80),
		Gender:        patient.GenderOther,
		DoshaType:     doshaType,
		HeightCm:      float64(f.faker.Number(150, 190)),
		WeightKg:      float64(f.faker.Number(45, 100)),
		ActivityLevel: patient.ActivityModerate,
	}
}

// FoodBuilder provides a fluent interface for building test foods
type FoodBuilder struct {
	food catalog.FoodItem
}

// NewFoodBuilder creates a builder for a 100 g grain suitable for every dosha in every season
func NewFoodBuilder() *FoodBuilder {
	return &FoodBuilder{food: catalog.FoodItem{
		ID:                     uuid.New().String(),
		Name:                   "Test Food",
		Category:               catalog.CategoryGrains,
		ServingSize:            100,
		ServingUnit:            "g",
		Nutrients:              catalog.Macros{Calories: 100},
		Ayurvedic:              catalog.AyurvedicProfile{Rasa: []catalog.Rasa{catalog.RasaSweet}},
		SuitableForDoshas:      []catalog.Dosha{catalog.DoshaAll},
		SeasonalRecommendation: []catalog.Season{catalog.SeasonAll},
	}}
}

// WithID sets the food ID
func (b *FoodBuilder) WithID(id string) *FoodBuilder {
	b.food.ID = id
	return b
}

// WithName sets the food name
func (b *FoodBuilder) WithName(name string) *FoodBuilder {
	b.food.Name = name
	return b
}

// WithCategory sets the food category
func (b *FoodBuilder) WithCategory(category catalog.Category) *FoodBuilder {
	b.food.Category = category
	return b
}

// WithServing sets the serving size in grams
func (b *FoodBuilder) WithServing(size float64) *FoodBuilder {
	b.food.ServingSize = size
	return b
}

// WithMacros sets the per-serving macros
func (b *FoodBuilder) WithMacros(m catalog.Macros) *FoodBuilder {
	b.food.Nutrients = m
	return b
}

// WithCalories sets the per-serving calories
func (b *FoodBuilder) WithCalories(kcal float64) *FoodBuilder {
	b.food.Nutrients.Calories = kcal
	return b
}

// WithRasa sets the tastes
func (b *FoodBuilder) WithRasa(rasa ...catalog.Rasa) *FoodBuilder {
	b.food.Ayurvedic.Rasa = rasa
	return b
}

// WithVirya sets the potency
func (b *FoodBuilder) WithVirya(v catalog.Virya) *FoodBuilder {
	b.food.Ayurvedic.Virya = v
	return b
}

// WithGuna sets the qualities
func (b *FoodBuilder) WithGuna(guna ...catalog.Guna) *FoodBuilder {
	b.food.Ayurvedic.Guna = guna
	return b
}

// WithDigestibility sets the 0-100 digestibility score
func (b *FoodBuilder) WithDigestibility(score float64) *FoodBuilder {
	b.food.Ayurvedic.DigestibilityScore = score
	return b
}

// WithDoshas sets the suitable doshas
func (b *FoodBuilder) WithDoshas(doshas ...catalog.Dosha) *FoodBuilder {
	b.food.SuitableForDoshas = doshas
	return b
}

// WithSeasons sets the seasonal recommendation
func (b *FoodBuilder) WithSeasons(seasons ...catalog.Season) *FoodBuilder {
	b.food.SeasonalRecommendation = seasons
	return b
}

// Build returns the food
func (b *FoodBuilder) Build() catalog.FoodItem {
	return b.food
}

// FoodItem returns a consumption item referencing a food
func FoodItem(id string, grams float64) nutrition.ConsumptionItem {
	return nutrition.ConsumptionItem{SourceType: nutrition.SourceFood, SourceID: id, Quantity: grams, Unit: "g"}
}

// RecipeItem returns a consumption item referencing a recipe
func RecipeItem(id string, grams float64) nutrition.ConsumptionItem {
	return nutrition.ConsumptionItem{SourceType: nutrition.SourceRecipe, SourceID: id, Quantity: grams, Unit: "g"}
}

// DailyChart returns a one-day chart with a single lunch of items
func DailyChart(patientID string, start time.Time, items ...nutrition.ConsumptionItem) dietchart.Chart {
	return dietchart.Chart{
		PatientID:      patientID,
		ChartType:      dietchart.ChartDaily,
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, 1),
		TargetCalories: 1800,
		DayPlans: []dietchart.DayPlan{{
			DayNumber: 1,
			Meals:     []dietchart.Meal{{MealType: mealplan.MealLunch, Items: items}},
		}},
	}
}
