package auth

import "testing"

func TestTokensRoundtrip(t *testing.T) {
	tokens, err := NewTokens("test-secret")
	if err != nil {
		t.Fatalf("NewTokens failed: %v", err)
	}

	user := &User{ID: "user-1", Email: "asha@example.com", Role: "user"}
	token, err := tokens.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := tokens.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "asha@example.com" || claims.Role != "user" {
		t.Errorf("Claims = %+v", claims)
	}
}

func TestTokensRejectsEmptySecret(t *testing.T) {
	if _, err := NewTokens(""); err == nil {
		t.Error("Expected error for empty secret, got nil")
	}
}

func TestGenerateRejectsAnonymousUser(t *testing.T) {
	tokens, _ := NewTokens("test-secret")
	if _, err := tokens.Generate(nil); err == nil {
		t.Error("Expected error for nil user")
	}
	if _, err := tokens.Generate(&User{}); err == nil {
		t.Error("Expected error for user without ID")
	}
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	tokens, _ := NewTokens("test-secret")
	other, _ := NewTokens("other-secret")

	user := &User{ID: "user-1"}
	token, err := other.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := tokens.Validate(token); err == nil {
		t.Error("Token signed with another secret must not validate")
	}
	if _, err := tokens.Validate("not-a-token"); err == nil {
		t.Error("Garbage must not validate")
	}
}
