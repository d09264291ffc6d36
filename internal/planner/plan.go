package planner

import (
	"time"

	"ayurdiet/internal/catalog"
	"ayurdiet/internal/nutrition"
)

// MealType labels a meal slot within a day.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealSnack     MealType = "snack"
	MealDinner    MealType = "dinner"
)

// PlanItem is a single chosen food with its portion and computed macros.
type PlanItem struct {
	FoodID    string                  `json:"food_id,omitempty"`
	FoodName  string                  `json:"food_name"`
	Grams     float64                 `json:"grams"`
	Macros    nutrition.PortionMacros `json:"macros"`
	Rationale string                  `json:"rationale,omitempty"`
}

// MealSlot is one meal of the day with its calorie sub-target and the
// foods packed into it.
type MealSlot struct {
	Type           MealType   `json:"meal_type"`
	TargetCalories int        `json:"target_calories"`
	TotalCalories  int        `json:"total_calories"`
	Items          []PlanItem `json:"items"`
	Notes          []string   `json:"notes,omitempty"`
}

// Plan is a fully assembled diet plan. It is created once per generation
// request and never mutated afterwards.
type Plan struct {
	ID             string               `json:"id,omitempty"`
	Dosha          string               `json:"dosha"`
	Season         catalog.Season       `json:"season"`
	PlanType       string               `json:"plan_type"`
	TargetCalories int                  `json:"target_calories"`
	TotalCalories  int                  `json:"total_calories"`
	Macros         nutrition.MacroSplit `json:"macro_targets"`
	Meals          []MealSlot           `json:"meals"`
	CreatedAt      time.Time            `json:"created_at,omitempty"`
}

// SeasonForMonth maps a calendar month onto the quarterly Ayurvedic
// calendar the engine consults: months 3-5 spring, 6-8 monsoon, 9-11
// autumn, the rest winter.
func SeasonForMonth(m time.Month) catalog.Season {
	switch {
	case m >= time.March && m <= time.May:
		return catalog.SeasonSpring
	case m >= time.June && m <= time.August:
		return catalog.SeasonMonsoon
	case m >= time.September && m <= time.November:
		return catalog.SeasonAutumn
	}
	return catalog.SeasonWinter
}
