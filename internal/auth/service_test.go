package auth

import (
	"errors"
	"testing"

	"ayurdiet/internal/profile"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := NewService(NewMemoryUserRepository())

	user, err := svc.Register("Asha", "asha@example.com", "secret123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == "" {
		t.Error("Registered user should have an ID")
	}
	if user.Password == "secret123" {
		t.Error("Password must be stored hashed")
	}
	if user.Role != "user" {
		t.Errorf("Role = %q, want user", user.Role)
	}

	logged, err := svc.Login("asha@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if logged.ID != user.ID {
		t.Errorf("Login returned wrong user: %s", logged.ID)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryUserRepository())

	if _, err := svc.Register("Asha", "asha@example.com", "secret123"); err != nil {
		t.Fatalf("First register failed: %v", err)
	}
	_, err := svc.Register("Other", "asha@example.com", "different")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	svc := NewService(NewMemoryUserRepository())

	cases := [][3]string{
		{"", "a@b.com", "pw"},
		{"Asha", "", "pw"},
		{"Asha", "a@b.com", ""},
	}
	for _, c := range cases {
		if _, err := svc.Register(c[0], c[1], c[2]); err == nil {
			t.Errorf("Register(%q, %q, %q) should fail", c[0], c[1], c[2])
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewService(NewMemoryUserRepository())
	if _, err := svc.Register("Asha", "asha@example.com", "secret123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := svc.Login("asha@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Wrong password should give ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login("nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Unknown email should give ErrInvalidCredentials, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc := NewService(NewMemoryUserRepository())
	user, err := svc.Register("Asha", "asha@example.com", "secret123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	p := profile.Profile{Dosha: "Pitta", Goals: []string{"weight_loss"}}
	updated, err := svc.UpdateProfile(user.ID, p)
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Profile.Dosha != "Pitta" {
		t.Errorf("Profile not updated: %+v", updated.Profile)
	}

	fetched, err := svc.GetByID(user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.Profile.Dosha != "Pitta" || len(fetched.Profile.Goals) != 1 {
		t.Errorf("Stored profile wrong: %+v", fetched.Profile)
	}
}
