package planner

import (
	"math"

	"ayurdiet/internal/catalog"
	"ayurdiet/internal/nutrition"
	"ayurdiet/internal/scoring"
)

// mealPreferences is the per-meal category allow-list used by the first
// packing pass.
var mealPreferences = map[MealType][]catalog.Category{
	MealBreakfast: {catalog.CategoryGrain, catalog.CategoryFruit, catalog.CategoryDairy, catalog.CategoryNut},
	MealLunch:     {catalog.CategoryGrain, catalog.CategoryLegume, catalog.CategoryVegetable, catalog.CategoryProtein},
	MealSnack:     {catalog.CategoryFruit, catalog.CategoryNut, catalog.CategoryDairy},
	MealDinner:    {catalog.CategoryGrain, catalog.CategoryLegume, catalog.CategoryVegetable, catalog.CategoryProtein},
}

// basePortionGrams is the starting serving size per meal type.
var basePortionGrams = map[MealType]float64{
	MealBreakfast: 120,
	MealLunch:     150,
	MealSnack:     80,
	MealDinner:    130,
}

// Tolerances around the slot calorie target.
const (
	acceptCeiling = 1.15 // pass 1 rejects items pushing past this
	stopHigh      = 1.10 // both passes stop here
	topUpTrigger  = 0.70 // pass 2 runs below this
	topUpStop     = 0.90 // pass 2 early stop
	minPortion    = 50.0
)

// packMeal greedily fills one meal slot from a score-sorted candidate
// list. The first pass only takes foods whose category suits the meal;
// a top-up pass ignores categories when the slot stayed empty or well
// under target. Foods never repeat within one slot; repeats across slots
// are the caller's business.
func packMeal(ranked []scoring.ScoredFood, target int, mealType MealType) ([]PlanItem, int) {
	if len(ranked) == 0 {
		return nil, 0
	}

	itemCap := 3
	if mealType == MealSnack {
		itemCap = 2
	}

	allowed := make(map[catalog.Category]bool)
	for _, cat := range mealPreferences[mealType] {
		allowed[cat] = true
	}

	var items []PlanItem
	used := make(map[string]bool)
	total := 0
	targetF := float64(target)

	for _, sf := range ranked {
		if len(items) >= itemCap || float64(total) >= targetF*stopHigh {
			break
		}
		if used[sf.Food.Key()] || !allowed[sf.Food.Category] {
			continue
		}

		item := portionItem(sf, targetF-float64(total), mealType)
		if float64(total+item.Macros.Calories) > targetF*acceptCeiling {
			continue
		}
		items = append(items, item)
		used[sf.Food.Key()] = true
		total += item.Macros.Calories
	}

	if len(items) == 0 || float64(total) < targetF*topUpTrigger {
		for _, sf := range ranked {
			if len(items) >= itemCap || float64(total) >= targetF*stopHigh {
				break
			}
			if used[sf.Food.Key()] {
				continue
			}

			item := portionItem(sf, targetF-float64(total), mealType)
			items = append(items, item)
			used[sf.Food.Key()] = true
			total += item.Macros.Calories

			if float64(total) >= targetF*topUpStop {
				break
			}
		}
	}

	return items, total
}

// portionItem sizes a portion from the remaining calorie budget and the
// food's density, bounded to plausible serving sizes, then computes its
// macros.
func portionItem(sf scoring.ScoredFood, remainingCalories float64, mealType MealType) PlanItem {
	base := basePortionGrams[mealType]
	maxPortion := base * 1.5

	grams := maxPortion
	if sf.Food.Per100g.Calories > 0 {
		grams = remainingCalories / sf.Food.Per100g.Calories * 100
	}
	grams = math.Max(minPortion, math.Min(grams, maxPortion))
	grams = math.Round(grams)

	return PlanItem{
		FoodID:    sf.Food.ID,
		FoodName:  sf.Food.Name,
		Grams:     grams,
		Macros:    nutrition.FoodMacros(sf.Food, grams),
		Rationale: sf.Rationale,
	}
}
