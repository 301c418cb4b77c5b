package ports

import (
	"context"

	"github.com/99minutos/inventory-system/internal/core/domain"
)

// UserService covers the account operations behind the gate.
// actorID is the identifier of the authorized caller.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	ChangeRole(ctx context.Context, actorID, targetID, role string) (*domain.User, error)
	Delete(ctx context.Context, actorID, targetID string) error
}
