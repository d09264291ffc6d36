// Package planner assembles diet plans: it distributes the daily calorie
// target across meal slots and greedily packs each slot from the scored
// catalog. The engine is pure computation over its inputs and safe to call
// concurrently.
package planner

import (
	"time"

	"ayurdiet/internal/catalog"
	"ayurdiet/internal/nutrition"
	"ayurdiet/internal/profile"
	"ayurdiet/internal/scoring"
)

// PlanTypeDaily is the only plan type with a dedicated slot layout; every
// other value gets the three-meal layout.
const PlanTypeDaily = "daily"

var (
	dailySlots   = []MealType{MealBreakfast, MealLunch, MealSnack, MealDinner}
	defaultSlots = []MealType{MealBreakfast, MealLunch, MealDinner}
)

// GeneratePlan builds a plan for the profile against the given catalog,
// resolving the season from the current month. explicitCalories overrides
// the computed target when positive.
func GeneratePlan(p profile.Profile, foods []catalog.FoodItem, planType string, explicitCalories int) *Plan {
	return GeneratePlanForMonth(p, foods, planType, explicitCalories, time.Now().Month())
}

// GeneratePlanForMonth is GeneratePlan with the month pinned, which keeps
// generation deterministic for a fixed input set.
func GeneratePlanForMonth(p profile.Profile, foods []catalog.FoodItem, planType string, explicitCalories int, month time.Month) *Plan {
	dosha := p.Dosha
	if dosha == "" {
		dosha = string(catalog.DoshaVata)
	}
	season := SeasonForMonth(month)

	target := explicitCalories
	if target <= 0 {
		target = nutrition.TargetCalories(p)
	}

	ranked := scoring.Rank(p, foods, season)

	slots := defaultSlots
	if planType == PlanTypeDaily {
		slots = dailySlots
	}
	subTargets := nutrition.SplitCalories(target, len(slots))

	meals := make([]MealSlot, 0, len(slots))
	totalCalories := 0
	for i, mealType := range slots {
		items, achieved := packMeal(ranked, subTargets[i], mealType)

		var notes []string
		for _, item := range items {
			if item.Rationale != "" {
				notes = append(notes, item.Rationale)
			}
		}

		meals = append(meals, MealSlot{
			Type:           mealType,
			TargetCalories: subTargets[i],
			TotalCalories:  achieved,
			Items:          items,
			Notes:          notes,
		})
		totalCalories += achieved
	}

	return &Plan{
		Dosha:          dosha,
		Season:         season,
		PlanType:       planType,
		TargetCalories: target,
		TotalCalories:  totalCalories,
		Macros:         nutrition.MacroTargets(p),
		Meals:          meals,
		CreatedAt:      time.Now().UTC(),
	}
}
