package auth

import (
	"time"

	"ayurdiet/internal/profile"
)

// User is the domain entity.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string // bcrypt hash
	Role      string
	Profile   profile.Profile
	CreatedAt time.Time
}
