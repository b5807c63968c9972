package ports

import (
	"context"

	"github.com/bloghub/blog-api/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=5"`
	Name     string `validate:"required"`
}

// AuthResult is returned by a successful login.
type AuthResult struct {
	UserID string
	Token  string
}

// AuthService defines account registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
