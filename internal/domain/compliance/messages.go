package compliance

import (
	"fmt"
	"strings"

	"github.com/ayurplan/engine/internal/domain/catalog"
)

const (
	suggestBitter      = "Add bitter foods like leafy greens, turmeric, or fenugreek"
	suggestAstringent  = "Add astringent foods like lentils, pomegranate, or green tea"
	suggestPungent     = "Add pungent spices like ginger, black pepper, or chili"
	warnMixedVirya     = "Mixing hot and cold potency foods may hinder digestion"
	suggestSameVirya   = "Try to keep foods with similar virya (potency) in one meal"
	warnTooHeavy       = "Too many heavy foods - may slow digestion"
	suggestLighter     = "Balance with light, easy-to-digest foods"
	closingExcellent   = "Excellent Ayurvedic balance! This meal supports wellness."
	closingGood        = "Good balance. Minor adjustments can optimize this meal."
	closingNeedsReview = "Consider reviewing food choices for better dosha balance."
)

func joinRasas(rasas []catalog.Rasa) string {
	names := make([]string, len(rasas))
	for i, r := range rasas {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

func warnMissingTastes(missing []catalog.Rasa) string {
	return "Missing tastes: " + joinRasas(missing)
}

func warnExcessTastes(excess []catalog.Rasa, doshaType string) string {
	return fmt.Sprintf("Too much %s taste for %s dosha", joinRasas(excess), doshaType)
}

func suggestReduceTastes(excess []catalog.Rasa, doshaType string) string {
	return fmt.Sprintf("Reduce %s foods to balance %s dosha", joinRasas(excess), doshaType)
}

func warnLowDoshaCompatibility(percent int, doshaType string) string {
	return fmt.Sprintf("Only %d%% foods are %s-compatible", percent, doshaType)
}

func suggestDoshaBalancing(doshaType string) string {
	return fmt.Sprintf("Choose more %s-balancing foods", doshaType)
}

func suggestSeasonal(season catalog.Season) string {
	return fmt.Sprintf("Consider adding more seasonal (%s) foods", season)
}

func closingSuggestion(overall int) string {
	switch {
	case overall >= 80:
		return closingExcellent
	case overall >= 60:
		return closingGood
	default:
		return closingNeedsReview
	}
}
