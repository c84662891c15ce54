// Package catalog contains the read-only food and recipe catalog model
// consumed by the planning engine.
package catalog

import "slices"

// Macros is a per-serving macro nutrient profile. All values are >= 0.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// AyurvedicProfile describes a food in Ayurvedic terms
type AyurvedicProfile struct {
	Rasa               []Rasa  `json:"rasa"`
	Virya              Virya   `json:"virya,omitempty"`
	Vipaka             Vipaka  `json:"vipaka,omitempty"`
	Guna               []Guna  `json:"guna,omitempty"`
	DigestibilityScore float64 `json:"digestibility_score"`
}

// FoodItem is a catalog food entry
type FoodItem struct {
	ID                     string           `json:"id"`
	Name                   string           `json:"name"`
	Category               Category         `json:"category"`
	ServingSize            float64          `json:"serving_size"`
	ServingUnit            string           `json:"serving_unit"`
	Nutrients              Macros           `json:"nutrients"`
	Ayurvedic              AyurvedicProfile `json:"ayurvedic"`
	SuitableForDoshas      []Dosha          `json:"suitable_for_doshas"`
	SeasonalRecommendation []Season         `json:"seasonal_recommendation"`
}

// SuitsDosha reports whether the food lists the given dosha or "all".
func (f FoodItem) SuitsDosha(dosha Dosha) bool {
	return slices.Contains(f.SuitableForDoshas, dosha) || slices.Contains(f.SuitableForDoshas, DoshaAll)
}

// SuitsAnyDosha reports whether the food lists any of parts or "all".
func (f FoodItem) SuitsAnyDosha(parts []Dosha) bool {
	for _, d := range f.SuitableForDoshas {
		if d == DoshaAll || slices.Contains(parts, d) {
			return true
		}
	}
	return false
}

// InSeason reports whether the food is recommended for season, "all" or "all_seasons".
func (f FoodItem) InSeason(season Season) bool {
	for _, s := range f.SeasonalRecommendation {
		if s == season || s == SeasonAll || s == SeasonAllSeasons {
			return true
		}
	}
	return false
}

// Recipe is a catalog recipe. Its Ayurvedic profile is limited to rasa,
// virya and digestibility; it carries no dosha or season tags.
type Recipe struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	ServingSize        float64 `json:"serving_size"`
	Nutrients          Macros  `json:"nutrients"`
	Rasa               []Rasa  `json:"rasa"`
	Virya              Virya   `json:"virya,omitempty"`
	DigestibilityScore float64 `json:"digestibility_score"`
}

// NormalizeDigestibility maps a catalog digestibility rating onto 0-100.
// Ratings in (0, 10] are taken to be on the 1-10 scale and multiplied by ten;
// anything else is clamped into [0, 100]. Applied once, at ingestion.
func NormalizeDigestibility(score float64) float64 {
	switch {
	case score <= 0:
		return 0
	case score <= 10:
		return score * 10
	case score > 100:
		return 100
	default:
		return score
	}
}
