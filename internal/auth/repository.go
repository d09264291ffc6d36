package auth

// UserRepository abstracts user persistence so the service can be tested
// against an in-memory implementation.
type UserRepository interface {
	Save(user *User) error
	FindByEmail(email string) (*User, error)
	FindByID(id string) (*User, error)
	ExistsByEmail(email string) (bool, error)
	UpdateProfile(user *User) error
}
