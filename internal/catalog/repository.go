package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// Repository is a database-backed store for the food catalog.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new catalog Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save inserts or replaces a food in the database.
func (r *Repository) Save(ctx context.Context, food FoodItem) error {
	data, err := json.Marshal(food)
	if err != nil {
		return fmt.Errorf("failed to marshal food to JSON: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO foods (id, name, data, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, data = excluded.data, updated_at = excluded.updated_at`,
		food.Key(), food.Name, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert food %s: %w", food.Name, err)
	}
	return nil
}

// SaveAll stores a batch of foods inside a single transaction.
func (r *Repository) SaveAll(ctx context.Context, foods []FoodItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO foods (id, name, data, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, data = excluded.data, updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, food := range foods {
		data, err := json.Marshal(food)
		if err != nil {
			return fmt.Errorf("failed to marshal food %s: %w", food.Name, err)
		}
		if _, err := stmt.ExecContext(ctx, food.Key(), food.Name, string(data), now); err != nil {
			return fmt.Errorf("failed to insert food %s: %w", food.Name, err)
		}
	}
	return tx.Commit()
}

// Get retrieves a food by its identifier. Returns nil when not found.
func (r *Repository) Get(ctx context.Context, id string) (*FoodItem, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM foods WHERE id = ?`, id).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get food by ID: %w", err)
	}

	var food FoodItem
	if err := json.Unmarshal([]byte(data), &food); err != nil {
		return nil, fmt.Errorf("failed to unmarshal food JSON: %w", err)
	}
	return &food, nil
}

// List retrieves the full catalog in insertion order.
func (r *Repository) List(ctx context.Context) ([]FoodItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, data FROM foods ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}
	defer rows.Close()

	var foods []FoodItem
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan food row: %w", err)
		}
		var food FoodItem
		if err := json.Unmarshal([]byte(data), &food); err != nil {
			log.Printf("Warning: failed to unmarshal food JSON for ID %s: %v", id, err)
			continue
		}
		foods = append(foods, food)
	}
	return foods, rows.Err()
}

// Count returns the number of foods in the catalog.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM foods`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count foods: %w", err)
	}
	return count, nil
}
