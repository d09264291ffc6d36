package planner

import (
	"testing"

	"ayurdiet/internal/catalog"
	"ayurdiet/internal/profile"
	"ayurdiet/internal/scoring"
)

func rankedFixture(foods ...catalog.FoodItem) []scoring.ScoredFood {
	return scoring.Rank(profile.Profile{Dosha: "Pitta"}, foods, catalog.SeasonAll)
}

func grain(id, name string, calories float64) catalog.FoodItem {
	return catalog.FoodItem{
		ID: id, Name: name, Category: catalog.CategoryGrain,
		Impacts: []catalog.Impact{catalog.ImpactBalancing},
		Per100g: catalog.Macros{Calories: calories, Protein: 3, Carbs: 25, Fat: 1},
	}
}

func TestPackMealRespectsCategoryAllowList(t *testing.T) {
	spice := catalog.FoodItem{
		ID: "s_chili", Name: "Chili", Category: catalog.CategorySpice,
		Impacts: []catalog.Impact{catalog.ImpactBalancing},
		Per100g: catalog.Macros{Calories: 40},
	}
	rice := grain("g_rice", "Rice", 130)

	items, total := packMeal(rankedFixture(spice, rice), 400, MealLunch)
	if len(items) == 0 {
		t.Fatal("Expected at least one item")
	}
	for _, item := range items {
		if item.FoodName == "Chili" {
			t.Error("Spice should not be packed into lunch in the first pass")
		}
	}
	if total <= 0 {
		t.Errorf("Expected positive slot total, got %d", total)
	}
}

func TestPackMealItemCaps(t *testing.T) {
	foods := []catalog.FoodItem{
		grain("g_a", "Grain A", 50),
		grain("g_b", "Grain B", 50),
		grain("g_c", "Grain C", 50),
		grain("g_d", "Grain D", 50),
	}

	items, _ := packMeal(rankedFixture(foods...), 2000, MealLunch)
	if len(items) > 3 {
		t.Errorf("Lunch packed %d items, cap is 3", len(items))
	}

	fruitA := catalog.FoodItem{ID: "f_a", Name: "Fruit A", Category: catalog.CategoryFruit,
		Impacts: []catalog.Impact{catalog.ImpactBalancing}, Per100g: catalog.Macros{Calories: 50}}
	fruitB := fruitA
	fruitB.ID, fruitB.Name = "f_b", "Fruit B"
	fruitC := fruitA
	fruitC.ID, fruitC.Name = "f_c", "Fruit C"

	items, _ = packMeal(rankedFixture(fruitA, fruitB, fruitC), 2000, MealSnack)
	if len(items) > 2 {
		t.Errorf("Snack packed %d items, cap is 2", len(items))
	}
}

func TestPackMealStopsNearTarget(t *testing.T) {
	foods := []catalog.FoodItem{
		grain("g_a", "Grain A", 300),
		grain("g_b", "Grain B", 300),
		grain("g_c", "Grain C", 300),
	}

	_, total := packMeal(rankedFixture(foods...), 400, MealLunch)
	if float64(total) > 400*acceptCeiling {
		t.Errorf("Slot total %d exceeds accept ceiling %.0f", total, 400*acceptCeiling)
	}
}

func TestPackMealNoDuplicatesWithinSlot(t *testing.T) {
	rice := grain("g_rice", "Rice", 100)

	items, _ := packMeal(rankedFixture(rice), 800, MealLunch)
	if len(items) != 1 {
		t.Errorf("Single candidate should appear exactly once, got %d items", len(items))
	}
}

func TestPackMealTopUpIgnoresCategories(t *testing.T) {
	// Only a spice is available: pass 1 packs nothing for lunch, so the
	// top-up pass must take it regardless of category.
	spice := catalog.FoodItem{
		ID: "s_cumin", Name: "Cumin", Category: catalog.CategorySpice,
		Impacts: []catalog.Impact{catalog.ImpactBalancing},
		Per100g: catalog.Macros{Calories: 375, Protein: 18},
	}

	items, total := packMeal(rankedFixture(spice), 400, MealLunch)
	if len(items) != 1 {
		t.Fatalf("Top-up pass should pack the only candidate, got %d items", len(items))
	}
	if total == 0 {
		t.Error("Expected nonzero total from top-up pass")
	}
}

func TestPackMealEmptyCatalog(t *testing.T) {
	items, total := packMeal(nil, 500, MealDinner)
	if items != nil || total != 0 {
		t.Errorf("Empty candidates should give empty slot, got %d items / %d kcal", len(items), total)
	}
}

func TestPortionItemBounds(t *testing.T) {
	dense := scoring.ScoredFood{Food: catalog.FoodItem{
		Name: "Ghee", Per100g: catalog.Macros{Calories: 900, Fat: 100},
	}}
	item := portionItem(dense, 100, MealLunch)
	if item.Grams < minPortion {
		t.Errorf("Portion %0.f g below minimum %.0f g", item.Grams, minPortion)
	}

	light := scoring.ScoredFood{Food: catalog.FoodItem{
		Name: "Cucumber", Per100g: catalog.Macros{Calories: 15},
	}}
	item = portionItem(light, 600, MealLunch)
	if max := basePortionGrams[MealLunch] * 1.5; item.Grams > max {
		t.Errorf("Portion %.0f g above maximum %.0f g", item.Grams, max)
	}

	zeroCal := scoring.ScoredFood{Food: catalog.FoodItem{Name: "Water"}}
	item = portionItem(zeroCal, 300, MealSnack)
	if want := basePortionGrams[MealSnack] * 1.5; item.Grams != want {
		t.Errorf("Zero-calorie food should get the max portion %.0f g, got %.0f g", want, item.Grams)
	}
}
