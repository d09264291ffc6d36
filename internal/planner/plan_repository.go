package planner

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StoredPlan is a persisted plan row with its owner.
type StoredPlan struct {
	ID        string
	UserID    string
	Plan      Plan
	CreatedAt time.Time
}

// PlanRepository is a database-backed repository for generated plans.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(d *sql.DB) *PlanRepository {
	return &PlanRepository{db: d}
}

// Save stores a generated plan for a user and returns the assigned plan ID.
func (r *PlanRepository) Save(ctx context.Context, userID string, plan *Plan) (string, error) {
	id := plan.ID
	if id == "" {
		id = uuid.New().String()
	}
	plan.ID = id

	data, err := json.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("failed to marshal plan to JSON: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO meal_plans (id, user_id, plan_data, created_at) VALUES (?, ?, ?, ?)`,
		id, userID, string(data), time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert meal plan: %w", err)
	}
	return id, nil
}

// Get retrieves a stored plan by its ID. Returns nil when not found.
func (r *PlanRepository) Get(ctx context.Context, planID string) (*StoredPlan, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, plan_data, created_at FROM meal_plans WHERE id = ?`, planID)
	return scanStoredPlan(row.Scan)
}

// Latest retrieves the most recent plan for a user. Returns nil when the
// user has no plans yet.
func (r *PlanRepository) Latest(ctx context.Context, userID string) (*StoredPlan, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, plan_data, created_at FROM meal_plans
		 WHERE user_id = ? ORDER BY created_at DESC LIMIT 1`, userID)
	return scanStoredPlan(row.Scan)
}

// ListRecentByUserID retrieves the N most recent plans for a user.
func (r *PlanRepository) ListRecentByUserID(ctx context.Context, userID string, limit int) ([]StoredPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, plan_data, created_at FROM meal_plans
		 WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent plans for user %s: %w", userID, err)
	}
	defer rows.Close()

	var plans []StoredPlan
	for rows.Next() {
		stored, err := scanStoredPlan(rows.Scan)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *stored)
	}
	return plans, rows.Err()
}

func scanStoredPlan(scan func(...any) error) (*StoredPlan, error) {
	var stored StoredPlan
	var data string
	if err := scan(&stored.ID, &stored.UserID, &data, &stored.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan plan row: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &stored.Plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan JSON: %w", err)
	}
	return &stored, nil
}
