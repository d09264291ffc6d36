// Package shopping derives grocery lists from generated plans.
package shopping

import (
	"fmt"
	"sort"
	"time"

	"ayurdiet/internal/planner"
)

// GroceryList aggregates the foods of one plan into shoppable quantities.
type GroceryList struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	MealPlanID string    `json:"meal_plan_id"`
	Items      []string  `json:"items"`
	CreatedAt  time.Time `json:"created_at"`
}

// FromPlan sums portion grams per food across all meal slots and renders
// one line per food. Lines are sorted by food name for stable output.
func FromPlan(userID string, plan *planner.Plan) *GroceryList {
	grams := make(map[string]float64)
	for _, meal := range plan.Meals {
		for _, item := range meal.Items {
			grams[item.FoodName] += item.Grams
		}
	}

	names := make([]string, 0, len(grams))
	for name := range grams {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]string, 0, len(names))
	for _, name := range names {
		items = append(items, fmt.Sprintf("%s - %.0f g", name, grams[name]))
	}

	return &GroceryList{
		UserID:     userID,
		MealPlanID: plan.ID,
		Items:      items,
	}
}
