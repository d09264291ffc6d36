package catalog

import (
	"strings"
	"testing"
)

const csvHeader = "id,name,category,dosha_impact,tastes,qualities,energy,seasons,calories,protein,carbs,fat\n"

func TestImportCSV(t *testing.T) {
	data := csvHeader +
		"g_basmati,Basmati Rice,grain,Balancing,sweet,light,cooling,all,130,2.7,28,0.3\n" +
		"v_bottle_gourd,Bottle Gourd,,Pitta,sweet,light,cooling,summer,14,0.6,3.4,0\n" +
		"sw_jaggery,Jaggery,,Kapha,sweet,heavy,heating,winter,383,0.4,98,0.1\n"

	foods, err := ImportCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ImportCSV failed: %v", err)
	}
	if len(foods) != 3 {
		t.Fatalf("Expected 3 foods, got %d", len(foods))
	}

	rice := foods[0]
	if rice.Category != CategoryGrain {
		t.Errorf("Explicit category ignored: got %q", rice.Category)
	}
	if !rice.IsBalancing() {
		t.Error("Basmati Rice should be balancing")
	}
	if rice.Per100g.Calories != 130 {
		t.Errorf("Calories = %.1f, want 130", rice.Per100g.Calories)
	}

	gourd := foods[1]
	if gourd.Category != CategoryVegetable {
		t.Errorf("Missing category should infer vegetable from v_ prefix, got %q", gourd.Category)
	}
	if gourd.Energy != EnergyCooling {
		t.Errorf("Energy = %q, want cooling", gourd.Energy)
	}

	jaggery := foods[2]
	if jaggery.Category != CategorySweetener {
		t.Errorf("sw_ prefix should infer sweetener, got %q", jaggery.Category)
	}
}

func TestImportCSVRejectsBadHeader(t *testing.T) {
	data := "name,id,category,dosha_impact,tastes,qualities,energy,seasons,calories,protein,carbs,fat\n"
	if _, err := ImportCSV(strings.NewReader(data)); err == nil {
		t.Error("Expected error for reordered header, got nil")
	}
}

func TestImportCSVRejectsNegativeMacros(t *testing.T) {
	data := csvHeader + "g_rice,Rice,grain,Balancing,sweet,,cooling,all,-10,2,28,0.3\n"
	if _, err := ImportCSV(strings.NewReader(data)); err == nil {
		t.Error("Expected error for negative calories, got nil")
	}
}

func TestImportCSVRejectsMalformedNumbers(t *testing.T) {
	data := csvHeader + "g_rice,Rice,grain,Balancing,sweet,,cooling,all,abc,2,28,0.3\n"
	if _, err := ImportCSV(strings.NewReader(data)); err == nil {
		t.Error("Expected error for non-numeric calories, got nil")
	}
}

func TestImportCSVEmptyMacrosDefaultToZero(t *testing.T) {
	data := csvHeader + "s_turmeric,Turmeric,spice,Balancing,bitter;pungent,light,heating,all,,,,\n"
	foods, err := ImportCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ImportCSV failed: %v", err)
	}
	if foods[0].Per100g != (Macros{}) {
		t.Errorf("Empty macro fields should be zero, got %+v", foods[0].Per100g)
	}
}

func TestCategoryFromID(t *testing.T) {
	tests := []struct {
		id   string
		want Category
	}{
		{"g_rice", CategoryGrain},
		{"l_mung", CategoryLegume},
		{"v_okra", CategoryVegetable},
		{"f_mango", CategoryFruit},
		{"n_almond", CategoryNut},
		{"d_ghee", CategoryDairy},
		{"p_paneer", CategoryProtein},
		{"s_cumin", CategorySpice},
		{"sw_honey", CategorySweetener},
		{"x_unknown", CategoryOther},
		{"", CategoryOther},
	}

	for _, tt := range tests {
		if got := categoryFromID(tt.id); got != tt.want {
			t.Errorf("categoryFromID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
