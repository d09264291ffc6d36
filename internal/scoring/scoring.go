// Package scoring assigns suitability scores to catalog foods for a given
// profile and season. The rule tables are static lookup data indexed by
// dosha; scoring is deterministic and holds no state between calls.
package scoring

import (
	"fmt"
	"sort"
	"strings"

	"ayurdiet/internal/catalog"
	"ayurdiet/internal/profile"
)

// Weights applied to the score buckets.
const (
	doshaWeight     = 3.0
	seasonWeight    = 1.0
	nutritionWeight = 1.0
	dislikedPenalty = 2.0
)

// tasteAdjust is the rasa table: per dosha, how each taste shifts the
// score. Tastes pacify one dosha and aggravate another.
var tasteAdjust = map[catalog.Dosha]map[catalog.Taste]float64{
	catalog.DoshaVata: {
		catalog.TasteSweet: 1, catalog.TasteSour: 1, catalog.TasteSalty: 1,
		catalog.TastePungent: -1, catalog.TasteBitter: -1, catalog.TasteAstringent: -1,
	},
	catalog.DoshaPitta: {
		catalog.TastePungent: -1, catalog.TasteSour: -1, catalog.TasteSalty: -1,
		catalog.TasteSweet: 1, catalog.TasteBitter: 1, catalog.TasteAstringent: 1,
	},
	catalog.DoshaKapha: {
		catalog.TasteSweet: -1, catalog.TasteSour: -1, catalog.TasteSalty: -1,
		catalog.TastePungent: 1, catalog.TasteBitter: 1, catalog.TasteAstringent: 1,
	},
}

// qualityAdjust is the guna table. Pitta has no quality adjustments.
var qualityAdjust = map[catalog.Dosha]map[catalog.Quality]float64{
	catalog.DoshaVata: {
		catalog.QualityDry: -1, catalog.QualityLight: -1,
		catalog.QualityHeavy: 1, catalog.QualityUnctuous: 1,
	},
	catalog.DoshaKapha: {
		catalog.QualityHeavy: -1, catalog.QualityUnctuous: -1,
		catalog.QualityLight: 1, catalog.QualityDry: 1,
	},
}

// energyAdjust is the virya table. Heating is neutral for Vata and Kapha.
var energyAdjust = map[catalog.Dosha]map[catalog.Energy]float64{
	catalog.DoshaPitta: {catalog.EnergyHeating: -1, catalog.EnergyCooling: 1},
	catalog.DoshaVata:  {catalog.EnergyCooling: -0.5},
	catalog.DoshaKapha: {catalog.EnergyCooling: -0.5},
}

// ScoredFood pairs a catalog food with its score and a human-readable
// rationale. It exists only during plan generation.
type ScoredFood struct {
	Food      catalog.FoodItem
	Score     float64
	Rationale string
}

// Score computes the suitability of a food for a profile in a season.
// Higher is better. The dosha bucket (impact, taste, quality, energy)
// carries triple weight; a disliked food loses a flat two points but is
// never removed here.
func Score(p profile.Profile, food catalog.FoodItem, season catalog.Season) float64 {
	dosha := p.PrimaryDosha()

	doshaTerm := 0.0
	if food.IsBalancing() {
		doshaTerm++
	}
	if food.Aggravates(dosha) {
		doshaTerm -= 0.5
	}
	for _, taste := range food.Tastes {
		doshaTerm += tasteAdjust[dosha][taste]
	}
	for _, quality := range food.Qualities {
		doshaTerm += qualityAdjust[dosha][quality]
	}
	if food.Energy != "" {
		doshaTerm += energyAdjust[dosha][food.Energy]
	}

	seasonTerm := 0.0
	if len(food.Seasons) > 0 && food.InSeason(season) {
		seasonTerm = 0.5
	}

	nutritionTerm := nutritionScore(p, food.Per100g)

	penalty := 0.0
	if p.DislikesFood(food.Name) {
		penalty = dislikedPenalty
	}

	return doshaTerm*doshaWeight + seasonTerm*seasonWeight + nutritionTerm*nutritionWeight - penalty
}

func nutritionScore(p profile.Profile, m catalog.Macros) float64 {
	score := 0.0
	if p.HasGoal(profile.GoalWeightLoss) {
		if m.Protein >= 10 {
			score++
		}
		if m.Calories < 150 {
			score += 0.5
		}
	}
	if p.HasGoal(profile.GoalMuscleGain) || p.HasGoal(profile.GoalWeightGain) {
		if m.Protein >= 15 {
			score += 1.5
		}
		if m.Calories > 200 {
			score += 0.5
		}
	}
	if m.Protein >= 8 {
		score += 0.5
	}
	return score
}

// Excluded reports whether a food must be removed before scoring: allergy
// matches and contraindications. Disliked foods stay in and are penalized
// instead.
func Excluded(p profile.Profile, food catalog.FoodItem) bool {
	if p.AllergicTo(food.Name) {
		return true
	}
	if p.HasCondition("diabetes") && food.Category == catalog.CategorySweetener {
		return true
	}
	if p.HasCondition("hypertension") && food.HasTaste(catalog.TasteSalty) {
		return true
	}
	return false
}

// Rank filters out excluded foods, scores the rest and returns them in
// descending score order. The sort is stable so ties keep catalog order.
func Rank(p profile.Profile, foods []catalog.FoodItem, season catalog.Season) []ScoredFood {
	dosha := p.PrimaryDosha()
	ranked := make([]ScoredFood, 0, len(foods))
	for _, food := range foods {
		if Excluded(p, food) {
			continue
		}
		score := Score(p, food, season)
		ranked = append(ranked, ScoredFood{
			Food:      food,
			Score:     score,
			Rationale: rationale(dosha, food, score),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// rationale composes the per-item explanation: dosha relation, tastes,
// energy and the numeric score.
func rationale(dosha catalog.Dosha, food catalog.FoodItem, score float64) string {
	var parts []string

	switch {
	case food.IsBalancing():
		parts = append(parts, "Tridoshic")
	case food.Aggravates(dosha):
		parts = append(parts, fmt.Sprintf("May aggravate %s", dosha))
	default:
		parts = append(parts, fmt.Sprintf("Balances %s", dosha))
	}

	if len(food.Tastes) > 0 {
		tastes := make([]string, len(food.Tastes))
		for i, t := range food.Tastes {
			tastes[i] = string(t)
		}
		parts = append(parts, strings.Join(tastes, ", "))
	}

	if food.Energy != "" {
		parts = append(parts, capitalize(string(food.Energy)))
	}

	parts = append(parts, fmt.Sprintf("score %.1f", score))
	return strings.Join(parts, " | ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
