// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"inventory/internal/domain/entity"
)

// TokenTypeBearer is the token_type reported alongside every issued access token.
const TokenTypeBearer = "bearer"

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
// Shape checks (non-empty, email format, lengths) happen at the HTTP boundary.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput returns the issued access token together with the authenticated user.
type AuthOutput struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
	User        *entity.User
}

// AuthUsecase defines registration, login and token-backed identity lookup.
type AuthUsecase interface {
	// Register creates exactly one user and issues a token for it.
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)

	// Login verifies the credentials and issues a token. An unknown email and a wrong
	// password produce the same error.
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// CurrentUser resolves the user a validated token was issued to.
	CurrentUser(ctx context.Context, userID int64) (*entity.User, error)
}
