package shopping

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Repository handles persistence of grocery lists.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new grocery list repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save creates a new grocery list in the database and returns its ID.
func (r *Repository) Save(ctx context.Context, list *GroceryList) (int64, error) {
	itemsJSON, err := json.Marshal(list.Items)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal grocery list items: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO grocery_lists (user_id, meal_plan_id, items, created_at) VALUES (?, ?, ?, ?)`,
		list.UserID, list.MealPlanID, string(itemsJSON), time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert grocery list: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read grocery list ID: %w", err)
	}
	list.ID = id
	return id, nil
}

// GetByMealPlanID retrieves the grocery list for a plan. Returns nil when
// none exists.
func (r *Repository) GetByMealPlanID(ctx context.Context, mealPlanID string) (*GroceryList, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, meal_plan_id, items, created_at FROM grocery_lists
		 WHERE meal_plan_id = ? ORDER BY created_at DESC LIMIT 1`, mealPlanID)

	var list GroceryList
	var itemsJSON string
	if err := row.Scan(&list.ID, &list.UserID, &list.MealPlanID, &itemsJSON, &list.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get grocery list by meal plan ID: %w", err)
	}

	if err := json.Unmarshal([]byte(itemsJSON), &list.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal grocery list items: %w", err)
	}
	return &list, nil
}

// DeleteByMealPlanID deletes the grocery lists of a plan.
func (r *Repository) DeleteByMealPlanID(ctx context.Context, mealPlanID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM grocery_lists WHERE meal_plan_id = ?`, mealPlanID)
	if err != nil {
		return fmt.Errorf("failed to delete grocery list: %w", err)
	}
	return nil
}
