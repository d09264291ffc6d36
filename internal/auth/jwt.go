package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

// Tokens issues and validates HS256 session tokens.
type Tokens struct {
	secret []byte
}

// NewTokens creates a token manager from the configured signing secret.
func NewTokens(secret string) (*Tokens, error) {
	if secret == "" {
		return nil, errors.New("empty JWT secret")
	}
	return &Tokens{secret: []byte(secret)}, nil
}

// Claims is the identity carried by a validated token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// Generate signs a token for the given user.
func (t *Tokens) Generate(user *User) (string, error) {
	if user == nil || user.ID == "" {
		return "", errors.New("empty userID passed to Generate")
	}

	claims := jwt.MapClaims{
		"userID": user.ID,
		"email":  user.Email,
		"role":   user.Role,
		"exp":    time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate parses and verifies a token, returning its claims.
func (t *Tokens) Validate(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, errors.New("invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid token claims")
	}

	userID, _ := mapClaims["userID"].(string)
	email, _ := mapClaims["email"].(string)
	role, _ := mapClaims["role"].(string)

	if userID == "" {
		return Claims{}, errors.New("token missing user identity")
	}

	return Claims{UserID: userID, Email: email, Role: role}, nil
}
