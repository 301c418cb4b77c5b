package ports

import (
	"context"

	"github.com/99minutos/inventory-system/internal/core/domain"
)

// UserRepository is the credential store.
// Lookups of unknown users return domain.ErrUserNotFound.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Insert stores user and returns its new identifier.
	// A duplicate username yields domain.ErrUserExists.
	Insert(ctx context.Context, user *domain.User) (string, error)
	// UpdateRole overwrites the role and returns the number of matched users.
	UpdateRole(ctx context.Context, id string, role domain.Role) (int64, error)
	// DeleteByID returns the number of deleted users.
	DeleteByID(ctx context.Context, id string) (int64, error)
	List(ctx context.Context) ([]*domain.User, error)
}
