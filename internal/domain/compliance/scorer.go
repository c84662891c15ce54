// Package compliance scores a set of consumed items against a patient's dosha,
// the season, taste variety and digestibility.
package compliance

import (
	"math"
	"slices"
	"time"

	"github.com/ayurplan/engine/internal/domain/catalog"
	"github.com/ayurplan/engine/internal/domain/nutrition"
)

// Weights of the overall score
const (
	WeightRasaCompleteness   = 0.25
	WeightDoshaCompatibility = 0.35
	WeightSeasonal           = 0.15
	WeightDigestibility      = 0.25
)

// Diagnostic thresholds
const (
	excessTasteCount       = 2
	lowDoshaCompatibility  = 60
	lowSeasonalScore       = 50
	heavyGunaPerItemCutoff = 0.6
)

// RasaBalance counts occurrences of each taste across items
type RasaBalance struct {
	Sweet      int `json:"sweet"`
	Sour       int `json:"sour"`
	Salty      int `json:"salty"`
	Bitter     int `json:"bitter"`
	Pungent    int `json:"pungent"`
	Astringent int `json:"astringent"`
}

// Count returns the tally for rasa. Unknown tastes count zero.
func (b RasaBalance) Count(rasa catalog.Rasa) int {
	if p := b.slot(rasa); p != nil {
		return *p
	}
	return 0
}

func (b *RasaBalance) increment(rasa catalog.Rasa) {
	if p := b.slot(rasa); p != nil {
		*p++
	}
}

func (b *RasaBalance) slot(rasa catalog.Rasa) *int {
	switch rasa {
	case catalog.RasaSweet:
		return &b.Sweet
	case catalog.RasaSour:
		return &b.Sour
	case catalog.RasaSalty:
		return &b.Salty
	case catalog.RasaBitter:
		return &b.Bitter
	case catalog.RasaPungent:
		return &b.Pungent
	case catalog.RasaAstringent:
		return &b.Astringent
	}
	return nil
}

// Result is the outcome of a compliance check
type Result struct {
	OverallScore       int            `json:"overall_score"`
	RasaBalance        RasaBalance    `json:"rasa_balance"`
	RasaCompleteness   int            `json:"rasa_completeness"`
	DoshaCompatibility int            `json:"dosha_compatibility"`
	SeasonalScore      int            `json:"seasonal_score"`
	DigestibilityScore int            `json:"digestibility_score"`
	Season             catalog.Season `json:"season"`
	Warnings           []string       `json:"warnings"`
	Suggestions        []string       `json:"suggestions"`
}

// Scorer computes compliance results. It holds only immutable configuration
// and is safe for concurrent use.
type Scorer struct {
	guidelines Guidelines
	now        func() time.Time
}

// Option configures a Scorer
type Option func(*Scorer)

// WithGuidelines replaces the dosha guideline table.
func WithGuidelines(g Guidelines) Option {
	return func(s *Scorer) { s.guidelines = g }
}

// WithClock sets the clock used to infer the season.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) { s.now = now }
}

// NewScorer creates a scorer with the default guideline table.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		guidelines: DefaultGuidelines(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Guidelines returns the table the scorer uses.
func (s *Scorer) Guidelines() Guidelines {
	return s.guidelines
}

// ResolveSeason returns season, or the season of the current month when empty.
func (s *Scorer) ResolveSeason(season catalog.Season) catalog.Season {
	if season != "" {
		return season
	}
	return catalog.SeasonForMonth(s.now().Month())
}

type tally struct {
	balance       RasaBalance
	viryas        []catalog.Virya
	gunas         []catalog.Guna
	digestibility float64
	resolved      int
	doshaMatches  int
	seasonMatches int
}

func (t *tally) addRasa(rasas []catalog.Rasa) {
	for _, r := range rasas {
		t.balance.increment(r)
	}
}

func (t *tally) addFood(f *catalog.FoodItem, primary catalog.Dosha, season catalog.Season) {
	t.addRasa(f.Ayurvedic.Rasa)
	if f.Ayurvedic.Virya != "" {
		t.viryas = append(t.viryas, f.Ayurvedic.Virya)
	}
	t.gunas = append(t.gunas, f.Ayurvedic.Guna...)
	t.digestibility += f.Ayurvedic.DigestibilityScore
	if f.SuitsDosha(primary) {
		t.doshaMatches++
	}
	if f.InSeason(season) {
		t.seasonMatches++
	}
}

func (t *tally) addRecipe(r *catalog.Recipe) {
	t.addRasa(r.Rasa)
	if r.Virya != "" {
		t.viryas = append(t.viryas, r.Virya)
	}
	t.digestibility += r.DigestibilityScore
}

// Score evaluates items for doshaType. An empty season is inferred from the
// clock. Unresolved items count toward the item total but contribute nothing
// else. Score never fails.
func (s *Scorer) Score(items []nutrition.ResolvedItem, doshaType string, season catalog.Season) Result {
	season = s.ResolveSeason(season)
	primary := catalog.PrimaryDosha(doshaType)
	_, guideline := s.guidelines.For(doshaType)

	var t tally
	for _, item := range items {
		switch {
		case item.Food != nil:
			t.addFood(item.Food, primary, season)
		case item.Recipe != nil:
			t.addRecipe(item.Recipe)
		default:
			continue
		}
		t.resolved++
	}

	total := len(items)
	res := Result{
		RasaBalance: t.balance,
		Season:      season,
		Warnings:    []string{},
		Suggestions: []string{},
	}

	present := 0
	var missing []catalog.Rasa
	for _, r := range catalog.Rasas() {
		if t.balance.Count(r) > 0 {
			present++
		} else {
			missing = append(missing, r)
		}
	}
	res.RasaCompleteness = percent(float64(present) / 6 * 100)
	if total > 0 {
		res.DoshaCompatibility = percent(float64(t.doshaMatches) / float64(total) * 100)
		res.SeasonalScore = percent(float64(t.seasonMatches) / float64(total) * 100)
	}
	if t.resolved > 0 {
		res.DigestibilityScore = percent(t.digestibility / float64(t.resolved))
	}
	res.OverallScore = percent(
		WeightRasaCompleteness*float64(res.RasaCompleteness) +
			WeightDoshaCompatibility*float64(res.DoshaCompatibility) +
			WeightSeasonal*float64(res.SeasonalScore) +
			WeightDigestibility*float64(res.DigestibilityScore),
	)

	if len(missing) > 0 {
		res.Warnings = append(res.Warnings, warnMissingTastes(missing))
		if slices.Contains(missing, catalog.RasaBitter) {
			res.Suggestions = append(res.Suggestions, suggestBitter)
		}
		if slices.Contains(missing, catalog.RasaAstringent) {
			res.Suggestions = append(res.Suggestions, suggestAstringent)
		}
		if slices.Contains(missing, catalog.RasaPungent) {
			res.Suggestions = append(res.Suggestions, suggestPungent)
		}
	}

	var excess []catalog.Rasa
	for _, r := range catalog.Rasas() {
		if guideline.Avoids(r) && t.balance.Count(r) > excessTasteCount {
			excess = append(excess, r)
		}
	}
	if len(excess) > 0 {
		res.Warnings = append(res.Warnings, warnExcessTastes(excess, doshaType))
		res.Suggestions = append(res.Suggestions, suggestReduceTastes(excess, doshaType))
	}

	// the compatibility warning needs at least one item
	if total > 0 && res.DoshaCompatibility < lowDoshaCompatibility {
		res.Warnings = append(res.Warnings, warnLowDoshaCompatibility(res.DoshaCompatibility, doshaType))
		res.Suggestions = append(res.Suggestions, suggestDoshaBalancing(doshaType))
	}
	if res.SeasonalScore < lowSeasonalScore {
		res.Suggestions = append(res.Suggestions, suggestSeasonal(season))
	}

	if slices.Contains(t.viryas, catalog.ViryaHot) && slices.Contains(t.viryas, catalog.ViryaCold) {
		res.Warnings = append(res.Warnings, warnMixedVirya)
		res.Suggestions = append(res.Suggestions, suggestSameVirya)
	}

	// tag count against item count; the ratio is not bounded by 1
	heavy := 0
	for _, g := range t.gunas {
		if g == catalog.GunaHeavy {
			heavy++
		}
	}
	if float64(heavy) > float64(total)*heavyGunaPerItemCutoff {
		res.Warnings = append(res.Warnings, warnTooHeavy)
		res.Suggestions = append(res.Suggestions, suggestLighter)
	}

	res.Suggestions = append(res.Suggestions, closingSuggestion(res.OverallScore))
	return res
}

// percent rounds v and clamps it into [0, 100].
func percent(v float64) int {
	r := math.Round(v)
	switch {
	case math.IsNaN(r) || r < 0:
		return 0
	case r > 100:
		return 100
	default:
		return int(r)
	}
}
