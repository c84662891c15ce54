package gorm

import (
	"github.com/ayurplan/engine/internal/domain/catalog"
	"github.com/ayurplan/engine/internal/domain/dietchart"
	"github.com/ayurplan/engine/internal/domain/patient"
)

// FoodToModel converts a catalog food to its GORM model. The stored
// digestibility is the catalog's own rating; it is normalized on read.
func FoodToModel(f *catalog.FoodItem) *FoodItemModel {
	m := &FoodItemModel{
		ID:                     f.ID,
		Name:                   f.Name,
		Category:               string(f.Category),
		ServingSize:            f.ServingSize,
		ServingUnit:            f.ServingUnit,
		Calories:               f.Nutrients.Calories,
		Protein:                f.Nutrients.Protein,
		Carbs:                  f.Nutrients.Carbs,
		Fat:                    f.Nutrients.Fat,
		Fiber:                  f.Nutrients.Fiber,
		Rasa:                   toStrings(f.Ayurvedic.Rasa),
		Virya:                  string(f.Ayurvedic.Virya),
		Vipaka:                 string(f.Ayurvedic.Vipaka),
		Guna:                   toStrings(f.Ayurvedic.Guna),
		DigestibilityScore:     f.Ayurvedic.DigestibilityScore,
		SeasonalRecommendation: toStrings(f.SeasonalRecommendation),
	}
	for _, d := range f.SuitableForDoshas {
		m.Doshas = append(m.Doshas, FoodDoshaModel{FoodID: f.ID, Dosha: string(d)})
	}
	return m
}

// ModelToFood converts a GORM model to a catalog food. Doshas must be loaded.
func ModelToFood(m *FoodItemModel) catalog.FoodItem {
	f := catalog.FoodItem{
		ID:          m.ID,
		Name:        m.Name,
		Category:    catalog.Category(m.Category),
		ServingSize: m.ServingSize,
		ServingUnit: m.ServingUnit,
		Nutrients: catalog.Macros{
			Calories: m.Calories,
			Protein:  m.Protein,
			Carbs:    m.Carbs,
			Fat:      m.Fat,
			Fiber:    m.Fiber,
		},
		Ayurvedic: catalog.AyurvedicProfile{
			Rasa:               fromStrings[catalog.Rasa](m.Rasa),
			Virya:              catalog.Virya(m.Virya),
			Vipaka:             catalog.Vipaka(m.Vipaka),
			Guna:               fromStrings[catalog.Guna](m.Guna),
			DigestibilityScore: catalog.NormalizeDigestibility(m.DigestibilityScore),
		},
		SeasonalRecommendation: fromStrings[catalog.Season](m.SeasonalRecommendation),
	}
	for _, d := range m.Doshas {
		f.SuitableForDoshas = append(f.SuitableForDoshas, catalog.Dosha(d.Dosha))
	}
	return f
}

// RecipeToModel converts a catalog recipe to its GORM model
func RecipeToModel(r *catalog.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:                 r.ID,
		Name:               r.Name,
		ServingSize:        r.ServingSize,
		Calories:           r.Nutrients.Calories,
		Protein:            r.Nutrients.Protein,
		Carbs:              r.Nutrients.Carbs,
		Fat:                r.Nutrients.Fat,
		Fiber:              r.Nutrients.Fiber,
		Rasa:               toStrings(r.Rasa),
		Virya:              string(r.Virya),
		DigestibilityScore: r.DigestibilityScore,
	}
}

// ModelToRecipe converts a GORM model to a catalog recipe
func ModelToRecipe(m *RecipeModel) catalog.Recipe {
	return catalog.Recipe{
		ID:          m.ID,
		Name:        m.Name,
		ServingSize: m.ServingSize,
		Nutrients: catalog.Macros{
			Calories: m.Calories,
			Protein:  m.Protein,
			Carbs:    m.Carbs,
			Fat:      m.Fat,
			Fiber:    m.Fiber,
		},
		Rasa:               fromStrings[catalog.Rasa](m.Rasa),
		Virya:              catalog.Virya(m.Virya),
		DigestibilityScore: catalog.NormalizeDigestibility(m.DigestibilityScore),
	}
}

// PatientToModel converts a patient to its GORM model
func PatientToModel(p *patient.Patient) *PatientModel {
	return &PatientModel{
		ID:                p.ID,
		Name:              p.Name,
		Age:               p.Age,
		Gender:            string(p.Gender),
		DoshaType:         p.DoshaType,
		MedicalConditions: StringSlice(p.MedicalConditions),
		Allergies:         StringSlice(p.Allergies),
		HeightCm:          p.HeightCm,
		WeightKg:          p.WeightKg,
		ActivityLevel:     string(p.ActivityLevel),
	}
}

// ModelToPatient converts a GORM model to a patient
func ModelToPatient(m *PatientModel) *patient.Patient {
	return &patient.Patient{
		ID:                m.ID,
		Name:              m.Name,
		Age:               m.Age,
		Gender:            patient.Gender(m.Gender),
		DoshaType:         m.DoshaType,
		MedicalConditions: []string(m.MedicalConditions),
		Allergies:         []string(m.Allergies),
		HeightCm:          m.HeightCm,
		WeightKg:          m.WeightKg,
		ActivityLevel:     patient.ActivityLevel(m.ActivityLevel),
	}
}

// ChartToModel converts a diet chart to its GORM model
func ChartToModel(c *dietchart.Chart) *DietChartModel {
	return &DietChartModel{
		ID:                  c.ID,
		PatientID:           c.PatientID,
		ChartType:           string(c.ChartType),
		StartDate:           c.StartDate,
		EndDate:             c.EndDate,
		TargetCalories:      c.TargetCalories,
		DietaryRestrictions: StringSlice(c.DietaryRestrictions),
		Status:              string(c.Status),
		DayPlans:            DayPlans(c.DayPlans),
		Notes:               c.Notes,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

// ModelToChart converts a GORM model to a diet chart
func ModelToChart(m *DietChartModel) *dietchart.Chart {
	return &dietchart.Chart{
		ID:                  m.ID,
		PatientID:           m.PatientID,
		ChartType:           dietchart.ChartType(m.ChartType),
		StartDate:           m.StartDate,
		EndDate:             m.EndDate,
		TargetCalories:      m.TargetCalories,
		DietaryRestrictions: []string(m.DietaryRestrictions),
		Status:              dietchart.Status(m.Status),
		DayPlans:            []dietchart.DayPlan(m.DayPlans),
		Notes:               m.Notes,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func toStrings[T ~string](values []T) StringSlice {
	out := make(StringSlice, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func fromStrings[T ~string](values StringSlice) []T {
	out := make([]T, len(values))
	for i, v := range values {
		out[i] = T(v)
	}
	return out
}
