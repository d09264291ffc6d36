package profile

import (
	"strings"
	"time"

	"ayurdiet/internal/catalog"
)

// ActivityLevel describes how physically active a person is.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Goal name constants. Source data carries both underscore and title-case
// spellings; the two are treated as aliases throughout.
const (
	GoalWeightLoss = "weight_loss"
	GoalWeightGain = "weight_gain"
	GoalMuscleGain = "muscle_gain"
)

var goalAliases = map[string][]string{
	GoalWeightLoss: {"weight_loss", "Weight Loss"},
	GoalWeightGain: {"weight_gain", "Weight Gain"},
	GoalMuscleGain: {"muscle_gain", "Muscle Gain"},
}

// Profile holds everything known about a user that plan generation needs.
// Missing fields receive documented defaults instead of causing errors.
type Profile struct {
	Dosha      string        `json:"dosha,omitempty"` // single or dual, e.g. "Vata-Pitta"
	Age        int           `json:"age,omitempty"`
	Sex        string        `json:"sex,omitempty"`
	HeightCM   float64       `json:"height_cm,omitempty"`
	WeightKG   float64       `json:"weight_kg,omitempty"`
	BirthDate  time.Time     `json:"birth_date,omitempty"`
	Activity   ActivityLevel `json:"activity,omitempty"`
	Goals      []string      `json:"goals,omitempty"`
	Dislikes   []string      `json:"dislikes,omitempty"`
	Allergies  []string      `json:"allergies,omitempty"`
	Conditions []string      `json:"conditions,omitempty"`
}

// PrimaryDosha returns the first dosha of the profile's classification,
// defaulting to Vata when unset. Dual classifications like "Vata-Pitta"
// resolve to their leading dosha.
func (p Profile) PrimaryDosha() catalog.Dosha {
	d := strings.TrimSpace(p.Dosha)
	if d == "" {
		return catalog.DoshaVata
	}
	if idx := strings.Index(d, "-"); idx > 0 {
		d = d[:idx]
	}
	switch {
	case strings.EqualFold(d, "Pitta"):
		return catalog.DoshaPitta
	case strings.EqualFold(d, "Kapha"):
		return catalog.DoshaKapha
	}
	return catalog.DoshaVata
}

// HasGoal reports whether the goal list contains the named goal under
// either of its accepted spellings. Matching is case-sensitive against
// each alias, mirroring how the goal list is populated.
func (p Profile) HasGoal(goal string) bool {
	aliases, ok := goalAliases[goal]
	if !ok {
		aliases = []string{goal}
	}
	for _, g := range p.Goals {
		for _, alias := range aliases {
			if g == alias {
				return true
			}
		}
	}
	return false
}

// HasCondition reports whether a medical-condition tag is present,
// case-insensitively.
func (p Profile) HasCondition(name string) bool {
	for _, c := range p.Conditions {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// Dislikes and allergies are matched case-insensitively against food names.

// DislikesFood reports whether the food name is on the disliked list.
func (p Profile) DislikesFood(name string) bool {
	return containsFold(p.Dislikes, name)
}

// AllergicTo reports whether the food name is on the allergy list.
func (p Profile) AllergicTo(name string) bool {
	return containsFold(p.Allergies, name)
}

func containsFold(list []string, name string) bool {
	for _, entry := range list {
		if strings.EqualFold(strings.TrimSpace(entry), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}
