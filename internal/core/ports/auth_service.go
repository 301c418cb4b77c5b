package ports

import (
	"context"

	"github.com/99minutos/inventory-system/internal/core/domain"
)

// RegisterInput carries a registration request.
type RegisterInput struct {
	Username string
	Password string
	Role     string
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

// LoginLimiter throttles repeated failed logins for a username.
type LoginLimiter interface {
	Allow(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
