package auth

import (
	"sync"

	"github.com/google/uuid"
)

// MemoryUserRepository is an in-memory UserRepository used in tests.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*User // keyed by email
}

// NewMemoryUserRepository creates an empty in-memory repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*User)}
}

func (r *MemoryUserRepository) Save(user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

func (r *MemoryUserRepository) FindByEmail(email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if user, ok := r.users[email]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUserRepository) FindByID(id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUserRepository) ExistsByEmail(email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[email]
	return ok, nil
}

func (r *MemoryUserRepository) UpdateProfile(user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for email, existing := range r.users {
		if existing.ID == user.ID {
			copied := *existing
			copied.Profile = user.Profile
			r.users[email] = &copied
			return nil
		}
	}
	return ErrUserNotFound
}
