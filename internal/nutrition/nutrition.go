// Package nutrition holds the pure arithmetic behind calorie and macro
// targets. Every function is deterministic and side-effect free; missing
// profile fields silently receive the documented defaults.
package nutrition

import (
	"math"
	"strings"
	"time"

	"ayurdiet/internal/catalog"
	"ayurdiet/internal/profile"
)

// Defaults applied when a profile field is absent.
const (
	defaultHeightCM = 170.0
	defaultWeightKG = 70.0
	defaultAge      = 25
)

// activityFactors maps activity levels to their TDEE multiplier.
var activityFactors = map[profile.ActivityLevel]float64{
	profile.ActivitySedentary:  1.2,
	profile.ActivityLight:      1.375,
	profile.ActivityModerate:   1.55,
	profile.ActivityActive:     1.725,
	profile.ActivityVeryActive: 1.9,
}

const defaultActivityFactor = 1.55

// MacroSplit is a percentage triple over daily calories. The three values
// always sum to 100.
type MacroSplit struct {
	ProteinPct int `json:"protein_pct"`
	CarbsPct   int `json:"carbs_pct"`
	FatPct     int `json:"fat_pct"`
}

// PortionMacros holds the nutrients of a concrete portion. Calories are
// whole numbers; the gram values carry one decimal.
type PortionMacros struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// BasalMetabolicRate computes BMR with the Mifflin-St Jeor equation.
// Age falls back to the birth date when not given, then to 25.
func BasalMetabolicRate(p profile.Profile) float64 {
	height := p.HeightCM
	if height <= 0 {
		height = defaultHeightCM
	}
	weight := p.WeightKG
	if weight <= 0 {
		weight = defaultWeightKG
	}
	age := float64(p.Age)
	if p.Age <= 0 {
		if !p.BirthDate.IsZero() {
			age = time.Since(p.BirthDate).Hours() / 24 / 365.25
		} else {
			age = defaultAge
		}
	}

	sexConstant := 5.0
	if isFemale(p.Sex) {
		sexConstant = -161
	}
	return 10*weight + 6.25*height - 5*age + sexConstant
}

func isFemale(sex string) bool {
	switch sex {
	case "F", "f", "female", "Female":
		return true
	}
	return false
}

// TotalDailyEnergyExpenditure is BMR scaled by the activity factor,
// rounded to the nearest calorie. An unknown activity level uses the
// moderate factor.
func TotalDailyEnergyExpenditure(p profile.Profile) int {
	factor, ok := activityFactors[p.Activity]
	if !ok {
		factor = defaultActivityFactor
	}
	return int(math.Round(BasalMetabolicRate(p) * factor))
}

// TargetCalories adjusts TDEE by the first matching goal, in priority
// order: weight loss, weight gain, muscle gain. No match means
// maintenance.
func TargetCalories(p profile.Profile) int {
	tdee := float64(TotalDailyEnergyExpenditure(p))
	switch {
	case p.HasGoal(profile.GoalWeightLoss):
		tdee *= 0.8
	case p.HasGoal(profile.GoalWeightGain):
		tdee *= 1.15
	case p.HasGoal(profile.GoalMuscleGain):
		tdee *= 1.1
	}
	return int(math.Round(tdee))
}

// MacroTargets returns the protein/carbs/fat percentage split. Goal-based
// overrides win over the dosha default; dual doshas resolve on their first
// matching component.
func MacroTargets(p profile.Profile) MacroSplit {
	switch {
	case p.HasGoal(profile.GoalWeightLoss):
		return MacroSplit{ProteinPct: 30, CarbsPct: 40, FatPct: 30}
	case p.HasGoal(profile.GoalMuscleGain):
		return MacroSplit{ProteinPct: 25, CarbsPct: 50, FatPct: 25}
	}

	switch {
	case strings.Contains(p.Dosha, "Vata"):
		return MacroSplit{ProteinPct: 20, CarbsPct: 50, FatPct: 30}
	case strings.Contains(p.Dosha, "Pitta"):
		return MacroSplit{ProteinPct: 20, CarbsPct: 55, FatPct: 25}
	case strings.Contains(p.Dosha, "Kapha"):
		return MacroSplit{ProteinPct: 25, CarbsPct: 45, FatPct: 30}
	}
	return MacroSplit{ProteinPct: 20, CarbsPct: 55, FatPct: 25}
}

// FoodMacros scales a food's per-100g profile to a portion size.
func FoodMacros(food catalog.FoodItem, grams float64) PortionMacros {
	scale := grams / 100
	return PortionMacros{
		Calories: int(math.Round(food.Per100g.Calories * scale)),
		Protein:  round1(food.Per100g.Protein * scale),
		Carbs:    round1(food.Per100g.Carbs * scale),
		Fat:      round1(food.Per100g.Fat * scale),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// mealSplits holds the fixed calorie distribution per meal count, in slot
// order (4 meals run breakfast/lunch/snack/dinner).
var mealSplits = map[int][]float64{
	3: {0.30, 0.40, 0.30},
	4: {0.25, 0.35, 0.10, 0.30},
	5: {0.20, 0.30, 0.10, 0.30, 0.10},
}

// SplitCalories divides a daily total across meal slots. Each slot rounds
// independently, so the parts may drift from the total by a calorie or
// two. Counts without a table fall back to an even proportional share.
func SplitCalories(total, mealCount int) []int {
	if mealCount <= 0 {
		mealCount = 3
	}
	fractions, ok := mealSplits[mealCount]
	if !ok {
		fractions = make([]float64, mealCount)
		for i := range fractions {
			fractions[i] = 1.0 / float64(mealCount)
		}
	}

	out := make([]int, len(fractions))
	for i, f := range fractions {
		out[i] = int(math.Round(float64(total) * f))
	}
	return out
}
