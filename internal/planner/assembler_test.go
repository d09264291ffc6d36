package planner

import (
	"testing"
	"time"

	"ayurdiet/internal/catalog"
	"ayurdiet/internal/profile"
)

func catalogFixture() []catalog.FoodItem {
	return []catalog.FoodItem{
		{
			ID: "g_basmati", Name: "Basmati Rice", Category: catalog.CategoryGrain,
			Impacts: []catalog.Impact{catalog.ImpactBalancing},
			Tastes:  []catalog.Taste{catalog.TasteSweet},
			Energy:  catalog.EnergyCooling,
			Seasons: []catalog.Season{catalog.SeasonAll},
			Per100g: catalog.Macros{Calories: 130, Protein: 2.7, Carbs: 28, Fat: 0.3},
		},
		{
			ID: "l_mung", Name: "Mung Beans", Category: catalog.CategoryLegume,
			Impacts: []catalog.Impact{catalog.ImpactBalancing},
			Tastes:  []catalog.Taste{catalog.TasteSweet, catalog.TasteAstringent},
			Energy:  catalog.EnergyCooling,
			Seasons: []catalog.Season{catalog.SeasonAll},
			Per100g: catalog.Macros{Calories: 105, Protein: 7.1, Carbs: 19.2, Fat: 0.4},
		},
		{
			ID: "v_bottle_gourd", Name: "Bottle Gourd", Category: catalog.CategoryVegetable,
			Impacts: []catalog.Impact{catalog.ImpactPitta},
			Tastes:  []catalog.Taste{catalog.TasteSweet},
			Energy:  catalog.EnergyCooling,
			Seasons: []catalog.Season{catalog.SeasonSummer},
			Per100g: catalog.Macros{Calories: 14, Protein: 0.6, Carbs: 3.4, Fat: 0},
		},
		{
			ID: "f_mango", Name: "Mango", Category: catalog.CategoryFruit,
			Impacts: []catalog.Impact{catalog.ImpactKapha},
			Tastes:  []catalog.Taste{catalog.TasteSweet, catalog.TasteSour},
			Energy:  catalog.EnergyHeating,
			Seasons: []catalog.Season{catalog.SeasonSummer},
			Per100g: catalog.Macros{Calories: 60, Protein: 0.8, Carbs: 15, Fat: 0.4},
		},
		{
			ID: "d_ghee", Name: "Ghee", Category: catalog.CategoryDairy,
			Impacts: []catalog.Impact{catalog.ImpactTridoshic},
			Tastes:  []catalog.Taste{catalog.TasteSweet},
			Energy:  catalog.EnergyHeating,
			Seasons: []catalog.Season{catalog.SeasonAll},
			Per100g: catalog.Macros{Calories: 900, Protein: 0, Carbs: 0, Fat: 100},
		},
		{
			ID: "p_paneer", Name: "Paneer", Category: catalog.CategoryProtein,
			Impacts: []catalog.Impact{catalog.ImpactKapha},
			Tastes:  []catalog.Taste{catalog.TasteSweet},
			Energy:  catalog.EnergyCooling,
			Seasons: []catalog.Season{catalog.SeasonAll},
			Per100g: catalog.Macros{Calories: 265, Protein: 18, Carbs: 1.2, Fat: 21},
		},
	}
}

func TestGeneratePlanDailySlots(t *testing.T) {
	p := profile.Profile{Dosha: "Pitta", WeightKG: 75, HeightCM: 175, Age: 30, Sex: "male"}

	plan := GeneratePlanForMonth(p, catalogFixture(), PlanTypeDaily, 0, time.July)

	if len(plan.Meals) != 4 {
		t.Fatalf("Daily plan should have 4 slots, got %d", len(plan.Meals))
	}
	wantOrder := []MealType{MealBreakfast, MealLunch, MealSnack, MealDinner}
	for i, meal := range plan.Meals {
		if meal.Type != wantOrder[i] {
			t.Errorf("Slot %d is %s, want %s", i, meal.Type, wantOrder[i])
		}
	}
	if plan.Season != catalog.SeasonMonsoon {
		t.Errorf("July should resolve to monsoon, got %s", plan.Season)
	}
	if plan.TargetCalories != 2633 {
		t.Errorf("TargetCalories = %d, want 2633", plan.TargetCalories)
	}
}

func TestGeneratePlanDefaultSlots(t *testing.T) {
	p := profile.Profile{Dosha: "Vata"}

	plan := GeneratePlanForMonth(p, catalogFixture(), "light", 1800, time.January)
	if len(plan.Meals) != 3 {
		t.Errorf("Non-daily plan should have 3 slots, got %d", len(plan.Meals))
	}
	if plan.TargetCalories != 1800 {
		t.Errorf("Explicit calories should win, got %d", plan.TargetCalories)
	}
	if plan.Season != catalog.SeasonWinter {
		t.Errorf("January should resolve to winter, got %s", plan.Season)
	}
}

func TestGeneratePlanTotalsAddUp(t *testing.T) {
	p := profile.Profile{Dosha: "Pitta", WeightKG: 75, HeightCM: 175, Age: 30}

	plan := GeneratePlanForMonth(p, catalogFixture(), PlanTypeDaily, 0, time.July)

	slotSum := 0
	for _, meal := range plan.Meals {
		itemSum := 0
		for _, item := range meal.Items {
			itemSum += item.Macros.Calories
		}
		if itemSum != meal.TotalCalories {
			t.Errorf("Slot %s total %d does not match item sum %d", meal.Type, meal.TotalCalories, itemSum)
		}
		slotSum += meal.TotalCalories
	}
	if slotSum != plan.TotalCalories {
		t.Errorf("Plan total %d does not match slot sum %d", plan.TotalCalories, slotSum)
	}
}

func TestGeneratePlanExcludesAllergies(t *testing.T) {
	p := profile.Profile{Dosha: "Kapha", Allergies: []string{"Paneer"}}

	plan := GeneratePlanForMonth(p, catalogFixture(), PlanTypeDaily, 2000, time.July)
	for _, meal := range plan.Meals {
		for _, item := range meal.Items {
			if item.FoodName == "Paneer" {
				t.Fatal("Allergic food appeared in the plan")
			}
		}
	}
}

func TestGeneratePlanDoshaDefault(t *testing.T) {
	plan := GeneratePlanForMonth(profile.Profile{}, catalogFixture(), PlanTypeDaily, 2000, time.April)
	if plan.Dosha != "Vata" {
		t.Errorf("Unset dosha should default to Vata, got %s", plan.Dosha)
	}
	if plan.Season != catalog.SeasonSpring {
		t.Errorf("April should resolve to spring, got %s", plan.Season)
	}
}

func TestGeneratePlanEmptyCatalog(t *testing.T) {
	p := profile.Profile{Dosha: "Pitta"}

	plan := GeneratePlanForMonth(p, nil, PlanTypeDaily, 2000, time.July)
	if plan == nil {
		t.Fatal("Empty catalog should still yield a plan")
	}
	if len(plan.Meals) != 4 {
		t.Errorf("Expected 4 empty slots, got %d", len(plan.Meals))
	}
	if plan.TotalCalories != 0 {
		t.Errorf("Empty catalog plan should pack 0 kcal, got %d", plan.TotalCalories)
	}
	for _, meal := range plan.Meals {
		if len(meal.Items) != 0 {
			t.Errorf("Slot %s should be empty", meal.Type)
		}
	}
}

func TestSeasonForMonth(t *testing.T) {
	tests := []struct {
		month time.Month
		want  catalog.Season
	}{
		{time.March, catalog.SeasonSpring},
		{time.May, catalog.SeasonSpring},
		{time.June, catalog.SeasonMonsoon},
		{time.August, catalog.SeasonMonsoon},
		{time.September, catalog.SeasonAutumn},
		{time.November, catalog.SeasonAutumn},
		{time.December, catalog.SeasonWinter},
		{time.February, catalog.SeasonWinter},
	}

	for _, tt := range tests {
		if got := SeasonForMonth(tt.month); got != tt.want {
			t.Errorf("SeasonForMonth(%s) = %s, want %s", tt.month, got, tt.want)
		}
	}
}
