package compliance

import (
	"slices"

	"github.com/ayurplan/engine/internal/domain/catalog"
)

// Guideline is one dosha's taste, potency and quality preferences
type Guideline struct {
	PreferRasa  []catalog.Rasa `json:"prefer_rasa"`
	AvoidRasa   []catalog.Rasa `json:"avoid_rasa"`
	PreferVirya catalog.Virya  `json:"prefer_virya"`
	PreferGuna  []catalog.Guna `json:"prefer_guna"`
}

// Avoids reports whether rasa is on the avoid list.
func (g Guideline) Avoids(rasa catalog.Rasa) bool {
	return slices.Contains(g.AvoidRasa, rasa)
}

func (g Guideline) clone() Guideline {
	return Guideline{
		PreferRasa:  slices.Clone(g.PreferRasa),
		AvoidRasa:   slices.Clone(g.AvoidRasa),
		PreferVirya: g.PreferVirya,
		PreferGuna:  slices.Clone(g.PreferGuna),
	}
}

// Guidelines maps a primary dosha onto its guideline. The zero value is not
// usable; build one with DefaultGuidelines or NewGuidelines.
type Guidelines struct {
	table    map[catalog.Dosha]Guideline
	fallback catalog.Dosha
}

// NewGuidelines copies table and falls back to fallback for unknown doshas.
// fallback must be present in table.
func NewGuidelines(table map[catalog.Dosha]Guideline, fallback catalog.Dosha) Guidelines {
	copied := make(map[catalog.Dosha]Guideline, len(table))
	for d, g := range table {
		copied[d] = g.clone()
	}
	return Guidelines{table: copied, fallback: fallback}
}

// DefaultGuidelines returns the standard vata/pitta/kapha table with vata as
// the fallback.
func DefaultGuidelines() Guidelines {
	return NewGuidelines(map[catalog.Dosha]Guideline{
		catalog.DoshaVata: {
			PreferRasa:  []catalog.Rasa{catalog.RasaSweet, catalog.RasaSour, catalog.RasaSalty},
			AvoidRasa:   []catalog.Rasa{catalog.RasaBitter, catalog.RasaPungent, catalog.RasaAstringent},
			PreferVirya: catalog.ViryaHot,
			PreferGuna:  []catalog.Guna{catalog.GunaHeavy, catalog.GunaOily, catalog.GunaSmooth},
		},
		catalog.DoshaPitta: {
			PreferRasa:  []catalog.Rasa{catalog.RasaSweet, catalog.RasaBitter, catalog.RasaAstringent},
			AvoidRasa:   []catalog.Rasa{catalog.RasaSour, catalog.RasaSalty, catalog.RasaPungent},
			PreferVirya: catalog.ViryaCold,
			PreferGuna:  []catalog.Guna{catalog.GunaHeavy, catalog.GunaCold, catalog.GunaSmooth},
		},
		catalog.DoshaKapha: {
			PreferRasa:  []catalog.Rasa{catalog.RasaPungent, catalog.RasaBitter, catalog.RasaAstringent},
			AvoidRasa:   []catalog.Rasa{catalog.RasaSweet, catalog.RasaSour, catalog.RasaSalty},
			PreferVirya: catalog.ViryaHot,
			PreferGuna:  []catalog.Guna{catalog.GunaLight, catalog.GunaDry, catalog.GunaRough},
		},
	}, catalog.DoshaVata)
}

// For resolves the guideline for a patient dosha type. Unknown or
// hyphen-less non-matching values (including "tridosha") use the fallback
// row. The returned dosha is the row actually used.
func (g Guidelines) For(doshaType string) (catalog.Dosha, Guideline) {
	primary := catalog.PrimaryDosha(doshaType)
	if row, ok := g.table[primary]; ok {
		return primary, row.clone()
	}
	return g.fallback, g.table[g.fallback].clone()
}
