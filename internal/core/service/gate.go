package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/inventory-system/internal/core/domain"
	"github.com/99minutos/inventory-system/internal/core/ports"
)

// Gate is the single place access-control decisions are made.
// Every call re-reads the caller's user record, so role changes apply on the
// very next request.
type Gate struct {
	tokens ports.TokenIssuer
	users  ports.UserRepository
	roles  domain.Hierarchy
	log    zerolog.Logger
}

func NewGate(tokens ports.TokenIssuer, users ports.UserRepository, roles domain.Hierarchy, log zerolog.Logger) *Gate {
	return &Gate{tokens: tokens, users: users, roles: roles, log: log}
}

// Authorize verifies token, loads the bound user and checks the user's role
// against required (any-of). It returns the authorized user.
//
//   - missing, malformed, expired or badly signed token: domain.ErrUnauthenticated
//   - user gone or without a role: *domain.AccessDeniedError
//   - role outside required: *domain.AccessDeniedError
func (g *Gate) Authorize(ctx context.Context, token string, required []domain.Role) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	userID, err := g.tokens.Verify(token)
	if err != nil {
		g.log.Debug().Err(err).Msg("token rejected")
		return nil, domain.ErrUnauthenticated
	}

	user, err := g.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Unknown identity behind a valid token is reported as a denial, not 401.
			return nil, &domain.AccessDeniedError{Required: required}
		}
		return nil, fmt.Errorf("authorize: load user: %w", err)
	}
	if user.Role == "" {
		return nil, &domain.AccessDeniedError{Required: required}
	}

	if !g.roles.Satisfies(user.Role, required...) {
		g.log.Info().
			Str("user_id", user.ID).
			Str("role", string(user.Role)).
			Interface("required", required).
			Msg("access denied")
		return nil, &domain.AccessDeniedError{Required: required}
	}

	return user, nil
}
