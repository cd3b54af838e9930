package auth

import (
	"time"

	"github.com/google/uuid"
)

// User represents an application user.
type User struct {
	ID           uuid.UUID
	Email        string
	DisplayName  *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SafeUser removes sensitive fields for response payloads.
func (u User) SafeUser() User {
	u.PasswordHash = ""
	return u
}

// TokenPair bundles access and refresh tokens.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// UserClaims carries the validated contents of an access token.
type UserClaims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// RefreshToken is a stored, hashed refresh credential.
type RefreshToken struct {
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
}
