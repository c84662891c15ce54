package mealplan

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/ayurplan/engine/internal/domain/catalog"
	"github.com/ayurplan/engine/internal/domain/compliance"
	"github.com/ayurplan/engine/internal/domain/nutrition"
)

var (
	ErrUnknownMealType   = errors.New("unknown meal type")
	ErrNonPositiveTarget = errors.New("target calories must be positive")
)

// DefaultCalorieTolerance is the allowed relative deviation from the target
const DefaultCalorieTolerance = 0.1

// Candidate is a food with its compatibility score
type Candidate struct {
	Food  catalog.FoodItem
	Score float64
}

// RankCandidates scores foods and sorts them by descending score. Ties keep
// their retrieval order.
func RankCandidates(scorer *compliance.Scorer, foods []catalog.FoodItem, doshaType string, season catalog.Season) []Candidate {
	ranked := make([]Candidate, len(foods))
	for i, f := range foods {
		ranked[i] = Candidate{Food: f, Score: scorer.ScoreFood(f, doshaType, season)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// SuggestedItem is one selected food with its scaled nutrients
type SuggestedItem struct {
	nutrition.ConsumptionItem
	Name           string                    `json:"name"`
	Nutrients      nutrition.ScaledNutrients `json:"nutrients"`
	AyurvedicScore float64                   `json:"ayurvedic_score"`
	Reason         string                    `json:"reason"`
}

// Suggestion is a composed meal
type Suggestion struct {
	MealType        MealType                  `json:"meal_type"`
	Season          catalog.Season            `json:"season"`
	Items           []SuggestedItem           `json:"items"`
	Totals          nutrition.ScaledNutrients `json:"totals"`
	ComplianceScore int                       `json:"compliance_score"`
	Warnings        []string                  `json:"warnings"`
}

// Planner composes meals. It is safe for concurrent use.
type Planner struct {
	scorer       *compliance.Scorer
	compositions Compositions
	tolerance    float64
}

// PlannerOption configures a Planner
type PlannerOption func(*Planner)

// WithCompositions replaces the portion table.
func WithCompositions(c Compositions) PlannerOption {
	return func(p *Planner) { p.compositions = c }
}

// WithCalorieTolerance sets the relative deviation that triggers a warning.
func WithCalorieTolerance(t float64) PlannerOption {
	return func(p *Planner) { p.tolerance = t }
}

// NewPlanner creates a planner scoring candidates with scorer.
func NewPlanner(scorer *compliance.Scorer, opts ...PlannerOption) *Planner {
	p := &Planner{
		scorer:       scorer,
		compositions: DefaultCompositions(),
		tolerance:    DefaultCalorieTolerance,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Compositions returns the planner's portion table.
func (p *Planner) Compositions() Compositions {
	return p.compositions
}

// Validate checks the meal type and calorie target.
func (p *Planner) Validate(mealType MealType, targetCalories float64) error {
	if !p.compositions.Has(mealType) {
		return fmt.Errorf("%w: %q", ErrUnknownMealType, mealType)
	}
	if targetCalories <= 0 || math.IsNaN(targetCalories) || math.IsInf(targetCalories, 0) {
		return ErrNonPositiveTarget
	}
	return nil
}

// Compose picks the best-scoring candidate per portion of mealType and sizes
// it to the portion's share of targetCalories. Portions without a candidate
// in their category are skipped.
func (p *Planner) Compose(foods []catalog.FoodItem, doshaType string, mealType MealType, targetCalories float64, season catalog.Season) (Suggestion, error) {
	if err := p.Validate(mealType, targetCalories); err != nil {
		return Suggestion{}, err
	}
	season = p.scorer.ResolveSeason(season)
	portions, _ := p.compositions.For(mealType)
	ranked := RankCandidates(p.scorer, foods, doshaType, season)

	out := Suggestion{
		MealType: mealType,
		Season:   season,
		Items:    []SuggestedItem{},
		Warnings: []string{},
	}
	var raw []nutrition.ScaledNutrients
	scoreSum := 0.0
	for _, portion := range portions {
		best, ok := bestInCategory(ranked, portion.Category)
		if !ok {
			continue
		}
		f := best.Food
		quantity := math.Round(f.ServingSize * (targetCalories * portion.Fraction) / f.Nutrients.Calories)
		scaled := nutrition.Scale(quantity, f.Nutrients, f.ServingSize)
		raw = append(raw, scaled)
		scoreSum += best.Score
		out.Items = append(out.Items, SuggestedItem{
			ConsumptionItem: nutrition.ConsumptionItem{
				SourceType: nutrition.SourceFood,
				SourceID:   f.ID,
				Quantity:   quantity,
				Unit:       f.ServingUnit,
			},
			Name:           f.Name,
			Nutrients:      scaled.Rounded(),
			AyurvedicScore: best.Score,
			Reason:         fmt.Sprintf("High %s compatibility, seasonal (%s)", doshaType, season),
		})
	}

	out.Totals = nutrition.Sum(raw).Rounded()
	if deviation := math.Abs(out.Totals.Calories - targetCalories); deviation > p.tolerance*targetCalories {
		direction := "below"
		if out.Totals.Calories > targetCalories {
			direction = "exceed"
		}
		out.Warnings = append(out.Warnings, fmt.Sprintf("Calories %s target by %d kcal", direction, int(math.Round(deviation))))
	}
	if n := len(out.Items); n > 0 {
		out.ComplianceScore = int(math.Round(scoreSum / float64(n)))
	}
	return out, nil
}

// bestInCategory returns the first ranked candidate of category with a
// usable calorie value.
func bestInCategory(ranked []Candidate, category catalog.Category) (Candidate, bool) {
	for _, c := range ranked {
		if c.Food.Category == category && c.Food.Nutrients.Calories > 0 {
			return c, true
		}
	}
	return Candidate{}, false
}
