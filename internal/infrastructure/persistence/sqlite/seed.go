package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ayurplan/engine/internal/domain/catalog"
	"github.com/ayurplan/engine/internal/domain/patient"
	gormModels "github.com/ayurplan/engine/internal/infrastructure/persistence/gorm"
	"github.com/ayurplan/engine/internal/ports/outbound"
)

// SeedDatabase populates an empty database with a demo catalog and patients.
// Catalog entries are written through foods so cached copies can be dropped.
func SeedDatabase(ctx context.Context, db *gorm.DB, foods outbound.CatalogWriter) error {
	// Check if data already exists
	var foodCount int64
	if err := db.WithContext(ctx).Model(&gormModels.FoodItemModel{}).Count(&foodCount).Error; err != nil {
		return fmt.Errorf("failed to count foods: %w", err)
	}
	if foodCount > 0 {
		return nil // Already seeded
	}

	for i := range demoFoods {
		food := demoFoods[i]
		if err := foods.SaveFoodItem(ctx, &food); err != nil {
			return fmt.Errorf("failed to create demo food %q: %w", food.Name, err)
		}
	}
	for i := range demoRecipes {
		recipe := demoRecipes[i]
		if err := foods.SaveRecipe(ctx, &recipe); err != nil {
			return fmt.Errorf("failed to create demo recipe %q: %w", recipe.Name, err)
		}
	}

	patientRepo := gormModels.NewPatientRepository(db)
	for i := range demoPatients {
		p := demoPatients[i]
		if err := patientRepo.Save(ctx, &p); err != nil {
			return fmt.Errorf("failed to create demo patient %q: %w", p.Name, err)
		}
	}

	return nil
}

func profile(rasa []catalog.Rasa, virya catalog.Virya, vipaka catalog.Vipaka, guna []catalog.Guna, digestibility float64) catalog.AyurvedicProfile {
	return catalog.AyurvedicProfile{Rasa: rasa, Virya: virya, Vipaka: vipaka, Guna: guna, DigestibilityScore: digestibility}
}

var allSeasons = []catalog.Season{catalog.SeasonAll}

var demoFoods = []catalog.FoodItem{
	{
		Name: "Basmati Rice (cooked)", Category: catalog.CategoryGrains, ServingSize: 100, ServingUnit: "g",
		Nutrients:              catalog.Macros{Calories: 130, Protein: 2.7, Carbs: 28, Fat: 0.3, Fiber: 0.4},
		Ayurvedic:              profile([]catalog.Rasa{catalog.RasaSweet}, catalog.ViryaCold, catalog.VipakaSweet, []catalog.Guna{catalog.GunaHeavy, catalog.GunaOily}, 7),
		SuitableForDoshas:      []catalog.Dosha{catalog.DoshaPitta, catalog.DoshaVata},
		SeasonalRecommendation: allSeasons,
	},
	{
		Name: "Oats Porridge", Category: catalog.CategoryGrains, ServingSize: 100, ServingUnit: "g",
		Nutrients:              catalog.Macros{Calories: 71, Protein: 2.5, Carbs: 12, Fat: 1.5, Fiber: 1.7},
		Ayurvedic:              profile([]catalog.Rasa{catalog.RasaSweet}, catalog.ViryaHot, catalog.VipakaSweet, []catalog.Guna{catalog.GunaHeavy, catalog.GunaSoft}, 8),
		SuitableForDoshas:      []catalog.Dosha{catalog.DoshaVata, catalog.DoshaPitta},
		SeasonalRecommendation: []catalog.Season{catalog.SeasonWinter, catalog.SeasonAutumn},
	},
	{
		Name: "Millet Roti", Category: catalog.CategoryGrains, ServingSize: 40, ServingUnit: "g",
		Nutrients:              catalog.Macros{Calories: 120, Protein: 3.5, Carbs: 24, Fat: 1.2, Fiber: 3.4},
		Ayurvedic:              profile([]catalog.Rasa{catalog.RasaSweet, catalog.RasaAstringent}, catalog.ViryaHot, catalog.VipakaSweet, []catalog.Guna{catalog.GunaLight, catalog.GunaDry}, 7),
		SuitableForDoshas:      []catalog.Dosha{catalog.DoshaKapha},
		SeasonalRecommendation: []catalog.Season{catalog.SeasonWinter, catalog.SeasonSpring},
	},
	{
		Name: "Moong Dal (cooked)", Category: catalog.CategoryLegumes, ServingSize: 100, ServingUnit: "g",
		Nutrients:              catalog.Macros{Calories: 105, Protein: 7.0, Carbs: 19, Fat: 0.4, Fiber: 7.6},
		Ayurvedic:              profile([]catalog.Rasa{catalog.RasaSweet, catalog.RasaAstringent}, catalog.ViryaCold, catalog.VipakaSweet, []catalog.Guna{catalog.GunaLight, catalog.GunaDry}, 9),
		SuitableForDoshas:      []catalog.Dosha{catalog.DoshaAll},
		SeasonalRecommendation: allSeasons,
	},
	{
		Name: "Red Lentils (cooked)", Category: catalog.CategoryLegumes, ServingSize: 100, ServingUnit: "g",
		Nutrients:              catalog.Macros{Calories: 116, Protein: 9.0, Carbs: 20, Fat: 0.4, Fiber: 7.9},
		Ayurvedic:              profile([]catalog.Rasa{catalog.RasaSweet, catalog.RasaAstringent}, catalog.ViryaHot, catalog.VipakaSweet, []catalog.Guna{catalog.GunaLight}, 7),
		SuitableForDoshas:      []catalog.Dosha{catalog.DoshaPitta, catalog.DoshaKapha},
		SeasonalRecommendation: []catalog.Season{catalog.SeasonAutumn, catalog.SeasonWinter},
	},
	{
		Name: "Spinach (cooked)", Category: catalog.CategoryVegetables, ServingSize: 100, ServingUnit: "g",
		Nutrients:              catalog.Macros{Calories: 23, Protein: 2.9, Carbs: 3.6, Fat: 0.3, Fiber: 2.2},
		Ayurvedic:              profile([]catalog.Rasa{catalog.RasaBitter, catalog.RasaAstringent}, catalog.ViryaCold, catalog.VipakaPungent, []catalog.Guna{catalog.GunaLight, catalog.GunaDry}, 6),
		SuitableForDoshas:      []catalog.Dosha{catalog.DoshaPitta, catalog.DoshaKapha},
		SeasonalRecommendation: []catalog.Season{catalog.SeasonWinter, catalog.SeasonSpring},
	},
	{
		Name: "Bottle Gourd (cooked)", Category: catalog.CategoryVegetables, ServingSize: 100, ServingUnit: "g",
		Nutrients:              catalog.Macros{Calories: 15, Protein: 0.6, Carbs: 3.4, Fat: 0.1, Fiber: 0.5},
		Ayurvedic:              profile([]catalog.Rasa{catalog.RasaSweet}, catalog.ViryaCold, catalog.VipakaSweet, []catalog.Guna{catalog.GunaLight}, 9),
		SuitableForDoshas:      []catalog.Dosha{catalog.DoshaAll},
		SeasonalRecommendation: []catalog.Season{catalog.SeasonSummer},
	},
	{
		Name: "Sweet Potato (baked)", Category: catalog.CategoryVegetables, ServingSize: 100, ServingUnit: "g",
		Nutrients:              catalog.Macros{Calories: 90, Protein: 2.0, Carbs: 21, Fat: 0.2, Fiber: 3.3},
		Ayurvedic:              profile([]catalog.Rasa{catalog.RasaSweet}, catalog.ViryaHot, catalog.VipakaSweet, []catalog.Guna{catalog.GunaHeavy, catalog.GunaSoft}, 7),
		SuitableForDoshas:      []catalog.Dosha{catalog.DoshaVata},
		SeasonalRecommendation: []catalog.Season{catalog.SeasonAutumn, catalog.SeasonWinter},
	},
	{
		Name: "Ripe Banana", Category: catalog.CategoryFruits, ServingSize: 118, ServingUnit: "g",
		Nutrients:              catalog.Macros{Calories: 105, Protein: 1.3, Carbs: 27, Fat: 0.4, Fiber: 3.1},
		Ayurvedic:              profile([]catalog.Rasa{catalog.RasaSweet}, catalog.ViryaCold, catalog.VipakaSour, []catalog.Guna{catalog.GunaHeavy, catalog.GunaSmooth}, 6),
		SuitableForDoshas:      []catalog.Dosha{catalog.DoshaVata},
		SeasonalRecommendation: allSeasons,
	},
	{
		Name: "Pomegranate", Category: catalog.CategoryFruits, ServingSize: 100, ServingUnit: "g",
		Nutrients:              catalog.Macros{Calories: 83, Protein: 1.7, Carbs: 19, Fat: 1.2, Fiber: 4.0},
		Ayurvedic:              profile([]catalog.Rasa{catalog.RasaSweet, catalog.RasaSour, catalog.RasaAstringent}, catalog.ViryaCold, catalog.VipakaSweet, []catalog.Guna{catalog.GunaLight}, 8),
		SuitableForDoshas:      []catalog.Dosha{catalog.DoshaAll},
		SeasonalRecommendation: []catalog.Season{catalog.SeasonAutumn, catalog.SeasonWinter},
	},
	{
		Name: "Cow Milk (warm)", Category: catalog.CategoryDairy, ServingSize: 244, ServingUnit: "ml",
		Nutrients:              catalog.Macros{Calories: 149, Protein: 7.7, Carbs: 12, Fat: 7.9, Fiber: 0},
		Ayurvedic:              profile([]catalog.Rasa{catalog.RasaSweet}, catalog.ViryaCold, catalog.VipakaSweet, []catalog.Guna{catalog.GunaHeavy, catalog.GunaOily}, 6),
		SuitableForDoshas:      []catalog.Dosha{catalog.DoshaVata, catalog.DoshaPitta},
		SeasonalRecommendation: allSeasons,
	},
	{
		Name: "Buttermilk (takra)", Category: catalog.CategoryDairy, ServingSize: 240, ServingUnit: "ml",
		Nutrients:              catalog.Macros{Calories: 98, Protein: 8.1, Carbs: 12, Fat: 2.2, Fiber: 0},
		Ayurvedic:              profile([]catalog.Rasa{catalog.RasaSour, catalog.RasaAstringent}, catalog.ViryaHot, catalog.VipakaSweet, []catalog.Guna{catalog.GunaLight}, 9),
		SuitableForDoshas:      []catalog.Dosha{catalog.DoshaVata, catalog.DoshaKapha},
		SeasonalRecommendation: []catalog.Season{catalog.SeasonSummer, catalog.SeasonSpring},
	},
	{
		Name: "Almonds (soaked)", Category: catalog.CategoryNuts, ServingSize: 28, ServingUnit: "g",
		Nutrients:              catalog.Macros{Calories: 164, Protein: 6.0, Carbs: 6.1, Fat: 14.2, Fiber: 3.5},
		Ayurvedic:              profile([]catalog.Rasa{catalog.RasaSweet}, catalog.ViryaHot, catalog.VipakaSweet, []catalog.Guna{catalog.GunaHeavy, catalog.GunaOily}, 6),
		SuitableForDoshas:      []catalog.Dosha{catalog.DoshaVata},
		SeasonalRecommendation: []catalog.Season{catalog.SeasonWinter, catalog.SeasonAutumn},
	},
	{
		Name: "Peanuts (roasted)", Category: catalog.CategoryNuts, ServingSize: 28, ServingUnit: "g",
		Nutrients:              catalog.Macros{Calories: 166, Protein: 6.7, Carbs: 6.0, Fat: 14.1, Fiber: 2.3},
		Ayurvedic:              profile([]catalog.Rasa{catalog.RasaSweet, catalog.RasaAstringent}, catalog.ViryaHot, catalog.VipakaPungent, []catalog.Guna{catalog.GunaHeavy, catalog.GunaOily}, 4),
		SuitableForDoshas:      []catalog.Dosha{catalog.DoshaVata},
		SeasonalRecommendation: []catalog.Season{catalog.SeasonWinter},
	},
	{
		Name: "Ginger Tea", Category: catalog.CategoryBeverages, ServingSize: 240, ServingUnit: "ml",
		Nutrients:              catalog.Macros{Calories: 10, Protein: 0.1, Carbs: 2.4, Fat: 0, Fiber: 0.1},
		Ayurvedic:              profile([]catalog.Rasa{catalog.RasaPungent, catalog.RasaSweet}, catalog.ViryaHot, catalog.VipakaSweet, []catalog.Guna{catalog.GunaLight}, 9),
		SuitableForDoshas:      []catalog.Dosha{catalog.DoshaVata, catalog.DoshaKapha},
		SeasonalRecommendation: []catalog.Season{catalog.SeasonWinter, catalog.SeasonAutumn},
	},
	{
		Name: "Coconut Water", Category: catalog.CategoryBeverages, ServingSize: 240, ServingUnit: "ml",
		Nutrients:              catalog.Macros{Calories: 46, Protein: 1.7, Carbs: 8.9, Fat: 0.5, Fiber: 2.6},
		Ayurvedic:              profile([]catalog.Rasa{catalog.RasaSweet}, catalog.ViryaCold, catalog.VipakaSweet, []catalog.Guna{catalog.GunaLight, catalog.GunaSmooth}, 9),
		SuitableForDoshas:      []catalog.Dosha{catalog.DoshaPitta},
		SeasonalRecommendation: []catalog.Season{catalog.SeasonSummer},
	},
	{
		Name: "Ghee", Category: catalog.CategoryOils, ServingSize: 15, ServingUnit: "g",
		Nutrients:              catalog.Macros{Calories: 135, Protein: 0, Carbs: 0, Fat: 15, Fiber: 0},
		Ayurvedic:              profile([]catalog.Rasa{catalog.RasaSweet}, catalog.ViryaCold, catalog.VipakaSweet, []catalog.Guna{catalog.GunaOily, catalog.GunaSoft}, 10),
		SuitableForDoshas:      []catalog.Dosha{catalog.DoshaAll},
		SeasonalRecommendation: allSeasons,
	},
	{
		Name: "Ginger (fresh)", Category: catalog.CategorySpices, ServingSize: 5, ServingUnit: "g",
		Nutrients:              catalog.Macros{Calories: 4, Protein: 0.1, Carbs: 0.9, Fat: 0, Fiber: 0.1},
		Ayurvedic:              profile([]catalog.Rasa{catalog.RasaPungent, catalog.RasaSweet}, catalog.ViryaHot, catalog.VipakaSweet, []catalog.Guna{catalog.GunaHot, catalog.GunaLight}, 9),
		SuitableForDoshas:      []catalog.Dosha{catalog.DoshaVata, catalog.DoshaKapha},
		SeasonalRecommendation: []catalog.Season{catalog.SeasonWinter, catalog.SeasonAutumn},
	},
}

var demoRecipes = []catalog.Recipe{
	{
		Name: "Moong Dal Khichdi", ServingSize: 250,
		Nutrients:          catalog.Macros{Calories: 300, Protein: 11, Carbs: 52, Fat: 5, Fiber: 8},
		Rasa:               []catalog.Rasa{catalog.RasaSweet, catalog.RasaAstringent, catalog.RasaSalty},
		Virya:              catalog.ViryaNeutral,
		DigestibilityScore: 9,
	},
	{
		Name: "Vegetable Upma", ServingSize: 200,
		Nutrients:          catalog.Macros{Calories: 250, Protein: 6, Carbs: 40, Fat: 7, Fiber: 4},
		Rasa:               []catalog.Rasa{catalog.RasaSweet, catalog.RasaSalty, catalog.RasaPungent},
		Virya:              catalog.ViryaHot,
		DigestibilityScore: 7,
	},
}

var demoPatients = []patient.Patient{
	{
		Name: "Rajesh Kumar Sharma", Age: 45, HeightCm: 172, WeightKg: 78,
		Gender: patient.GenderMale, DoshaType: string(catalog.DoshaVata),
		MedicalConditions: []string{"Hypertension", "Type 2 Diabetes"},
		Allergies:         []string{"Peanuts", "Dust"},
		ActivityLevel:     patient.ActivityModerate,
	},
	{
		Name: "Priya Patel", Age: 32, HeightCm: 158, WeightKg: 62,
		Gender: patient.GenderFemale, DoshaType: string(catalog.DoshaPitta),
		MedicalConditions: []string{"PCOS", "Thyroid"},
		ActivityLevel:     patient.ActivityActive,
	},
	{
		Name: "Amit Singh", Age: 28, HeightCm: 178, WeightKg: 85,
		Gender: patient.GenderMale, DoshaType: string(catalog.DoshaKapha),
		Allergies:     []string{"Shellfish"},
		ActivityLevel: patient.ActivityVeryActive,
	},
	{
		Name: "Sunita Devi", Age: 55, HeightCm: 152, WeightKg: 68,
		Gender: patient.GenderFemale, DoshaType: catalog.DoshaTypeVataPitta,
		MedicalConditions: []string{"Arthritis", "High Cholesterol"},
		Allergies:         []string{"Aspirin", "Dairy"},
		ActivityLevel:     patient.ActivityLight,
	},
}
