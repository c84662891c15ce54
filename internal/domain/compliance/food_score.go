package compliance

import (
	"math"

	"github.com/ayurplan/engine/internal/domain/catalog"
)

// Candidate score components
const (
	baseFoodScore      = 50.0
	doshaFoodBonus     = 25.0
	seasonalFoodBonus  = 15.0
	maxDigestibleBonus = 10.0
)

// ScoreFood rates one food for a patient dosha type and season:
// 50 base, +25 when it suits the primary dosha, +15 when in season, plus up
// to 10 for digestibility. The result is capped at 100.
func ScoreFood(food catalog.FoodItem, doshaType string, season catalog.Season) float64 {
	score := baseFoodScore
	if food.SuitsDosha(catalog.PrimaryDosha(doshaType)) {
		score += doshaFoodBonus
	}
	if food.InSeason(season) {
		score += seasonalFoodBonus
	}
	if d := food.Ayurvedic.DigestibilityScore; d > 0 {
		score += math.Min(maxDigestibleBonus, d/10)
	}
	return math.Min(score, 100)
}

// ScoreFood rates food for doshaType, inferring an empty season from the clock.
func (s *Scorer) ScoreFood(food catalog.FoodItem, doshaType string, season catalog.Season) float64 {
	return ScoreFood(food, doshaType, s.ResolveSeason(season))
}
