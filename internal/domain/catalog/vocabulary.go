package catalog

import (
	"strings"
	"time"
)

// Category is the fixed food category vocabulary
type Category string

const (
	CategoryGrains     Category = "grains"
	CategoryVegetables Category = "vegetables"
	CategoryFruits     Category = "fruits"
	CategoryLegumes    Category = "legumes"
	CategoryDairy      Category = "dairy"
	CategoryMeat       Category = "meat"
	CategoryFish       Category = "fish"
	CategoryNuts       Category = "nuts"
	CategorySeeds      Category = "seeds"
	CategoryOils       Category = "oils"
	CategorySpices     Category = "spices"
	CategoryBeverages  Category = "beverages"
	CategorySweets     Category = "sweets"
	CategoryOther      Category = "other"
)

// Rasa is one of the six tastes
type Rasa string

const (
	RasaSweet      Rasa = "sweet"
	RasaSour       Rasa = "sour"
	RasaSalty      Rasa = "salty"
	RasaBitter     Rasa = "bitter"
	RasaPungent    Rasa = "pungent"
	RasaAstringent Rasa = "astringent"
)

// Rasas returns the six tastes in reporting order.
func Rasas() []Rasa {
	return []Rasa{RasaSweet, RasaSour, RasaSalty, RasaBitter, RasaPungent, RasaAstringent}
}

// Virya is the heating/cooling potency of a food
type Virya string

const (
	ViryaHot     Virya = "hot"
	ViryaCold    Virya = "cold"
	ViryaNeutral Virya = "neutral"
)

// Vipaka is the post-digestive taste
type Vipaka string

const (
	VipakaSweet   Vipaka = "sweet"
	VipakaSour    Vipaka = "sour"
	VipakaPungent Vipaka = "pungent"
)

// Guna is one of the sixteen paired qualities
type Guna string

const (
	GunaHeavy  Guna = "heavy"
	GunaLight  Guna = "light"
	GunaOily   Guna = "oily"
	GunaDry    Guna = "dry"
	GunaHot    Guna = "hot"
	GunaCold   Guna = "cold"
	GunaStable Guna = "stable"
	GunaMobile Guna = "mobile"
	GunaSoft   Guna = "soft"
	GunaHard   Guna = "hard"
	GunaSmooth Guna = "smooth"
	GunaRough  Guna = "rough"
	GunaClear  Guna = "clear"
	GunaSticky Guna = "sticky"
	GunaGross  Guna = "gross"
	GunaSubtle Guna = "subtle"
)

// Dosha is a constitutional type tag carried by foods
type Dosha string

const (
	DoshaVata  Dosha = "vata"
	DoshaPitta Dosha = "pitta"
	DoshaKapha Dosha = "kapha"
	DoshaAll   Dosha = "all"
)

// Patient dosha types accepted by intake.
const (
	DoshaTypeVataPitta  = "vata-pitta"
	DoshaTypePittaKapha = "pitta-kapha"
	DoshaTypeVataKapha  = "vata-kapha"
	DoshaTypeTridosha   = "tridosha"
)

// DoshaTypes lists every patient dosha type.
func DoshaTypes() []string {
	return []string{
		string(DoshaVata), string(DoshaPitta), string(DoshaKapha),
		DoshaTypeVataPitta, DoshaTypePittaKapha, DoshaTypeVataKapha, DoshaTypeTridosha,
	}
}

// PrimaryDosha returns the part of doshaType before the first hyphen.
// The result is not validated; "tridosha" stays "tridosha".
func PrimaryDosha(doshaType string) Dosha {
	primary, _, _ := strings.Cut(doshaType, "-")
	return Dosha(primary)
}

// DoshaParts splits a hyphenated dosha type into its parts.
func DoshaParts(doshaType string) []Dosha {
	raw := strings.Split(doshaType, "-")
	parts := make([]Dosha, 0, len(raw))
	for _, p := range raw {
		parts = append(parts, Dosha(p))
	}
	return parts
}

// Season is a seasonal recommendation tag
type Season string

const (
	SeasonSpring     Season = "spring"
	SeasonSummer     Season = "summer"
	SeasonAutumn     Season = "autumn"
	SeasonWinter     Season = "winter"
	SeasonAll        Season = "all"
	SeasonAllSeasons Season = "all_seasons"
)

// SeasonForMonth maps a calendar month onto a season:
// 3-5 spring, 6-8 summer, 9-11 autumn, otherwise winter.
func SeasonForMonth(month time.Month) Season {
	switch {
	case month >= time.March && month <= time.May:
		return SeasonSpring
	case month >= time.June && month <= time.August:
		return SeasonSummer
	case month >= time.September && month <= time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}
