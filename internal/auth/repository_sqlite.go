package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"ayurdiet/internal/profile"

	"github.com/google/uuid"
)

// SQLiteUserRepository persists users to the application database.
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a new SQLiteUserRepository.
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

func (r *SQLiteUserRepository) Save(user *User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	profileJSON, err := json.Marshal(user.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal user profile: %w", err)
	}

	_, err = r.db.ExecContext(context.Background(),
		`INSERT INTO users (id, name, email, password, role, profile, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.Password, user.Role, string(profileJSON), user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepository) FindByEmail(email string) (*User, error) {
	return r.findOne(`SELECT id, name, email, password, role, profile, created_at
		FROM users WHERE email = ?`, email)
}

func (r *SQLiteUserRepository) FindByID(id string) (*User, error) {
	return r.findOne(`SELECT id, name, email, password, role, profile, created_at
		FROM users WHERE id = ?`, id)
}

func (r *SQLiteUserRepository) findOne(query string, arg any) (*User, error) {
	row := r.db.QueryRowContext(context.Background(), query, arg)

	user := &User{}
	var profileJSON string
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role, &profileJSON, &user.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}

	var p profile.Profile
	if err := json.Unmarshal([]byte(profileJSON), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user profile: %w", err)
	}
	user.Profile = p
	return user, nil
}

func (r *SQLiteUserRepository) ExistsByEmail(email string) (bool, error) {
	row := r.db.QueryRowContext(context.Background(),
		`SELECT 1 FROM users WHERE email = ? LIMIT 1`, email)

	var exists int
	if err := row.Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return true, nil
}

func (r *SQLiteUserRepository) UpdateProfile(user *User) error {
	profileJSON, err := json.Marshal(user.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal user profile: %w", err)
	}

	res, err := r.db.ExecContext(context.Background(),
		`UPDATE users SET profile = ? WHERE id = ?`, string(profileJSON), user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}
