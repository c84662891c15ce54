// Package patient holds the patient view the planning engine reads.
// Patient records are owned by the intake system; the engine only needs the
// dosha type and allergy list.
package patient

import (
	"strings"

	"github.com/ayurplan/engine/internal/domain/catalog"
)

// Gender of a patient
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ActivityLevel of a patient
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very-active"
)

// Patient is a practitioner-supervised patient
type Patient struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Age               int           `json:"age"`
	Gender            Gender        `json:"gender"`
	DoshaType         string        `json:"dosha_type"`
	MedicalConditions []string      `json:"medical_conditions,omitempty"`
	Allergies         []string      `json:"allergies,omitempty"`
	HeightCm          float64       `json:"height_cm"`
	WeightKg          float64       `json:"weight_kg"`
	ActivityLevel     ActivityLevel `json:"activity_level"`
}

// PrimaryDosha returns the first component of the patient's dosha type.
func (p Patient) PrimaryDosha() catalog.Dosha {
	return catalog.PrimaryDosha(p.DoshaType)
}

// DoshaParts returns every component of the patient's dosha type.
func (p Patient) DoshaParts() []catalog.Dosha {
	return catalog.DoshaParts(p.DoshaType)
}

// AllergenTerms returns the non-empty, trimmed allergy strings used for
// name-substring filtering.
func (p Patient) AllergenTerms() []string {
	terms := make([]string, 0, len(p.Allergies))
	for _, a := range p.Allergies {
		if a = strings.TrimSpace(a); a != "" {
			terms = append(terms, a)
		}
	}
	return terms
}
