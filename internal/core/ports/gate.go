package ports

import (
	"context"

	"github.com/99minutos/inventory-system/internal/core/domain"
)

// Authorizer decides whether the bearer of token may run an operation that
// requires any of the given role labels.
type Authorizer interface {
	Authorize(ctx context.Context, token string, required []domain.Role) (*domain.User, error)
}
