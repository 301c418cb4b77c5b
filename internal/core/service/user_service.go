package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/inventory-system/internal/core/domain"
	"github.com/99minutos/inventory-system/internal/core/ports"
)

// UserService manages accounts on behalf of an already authorized caller.
// It performs no access checks of its own.
type UserService struct {
	repo  ports.UserRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

// NewUserService builds a UserService. audit may be nil.
func NewUserService(repo ports.UserRepository, audit ports.AuditRecorder, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, audit: audit, log: log}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// ChangeRole overwrites the target's role.
func (s *UserService) ChangeRole(ctx context.Context, actorID, targetID, role string) (*domain.User, error) {
	newRole, ok := domain.ParseRole(role)
	if !ok {
		return nil, domain.InvalidInput("role must be one of admin, editor, viewer")
	}

	matched, err := s.repo.UpdateRole(ctx, targetID, newRole)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, domain.ErrUserNotFound
	}

	s.log.Info().Str("actor_id", actorID).Str("target_id", targetID).Str("role", role).Msg("role changed")
	s.record(domain.AuditEntry{
		Action:   domain.AuditRoleChanged,
		ActorID:  actorID,
		TargetID: targetID,
		Detail:   role,
	})

	return s.repo.FindByID(ctx, targetID)
}

// Delete removes the target account.
func (s *UserService) Delete(ctx context.Context, actorID, targetID string) error {
	deleted, err := s.repo.DeleteByID(ctx, targetID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrUserNotFound
	}

	s.log.Info().Str("actor_id", actorID).Str("target_id", targetID).Msg("user deleted")
	s.record(domain.AuditEntry{
		Action:   domain.AuditUserDeleted,
		ActorID:  actorID,
		TargetID: targetID,
	})
	return nil
}

func (s *UserService) record(entry domain.AuditEntry) {
	if s.audit == nil {
		return
	}
	entry.Timestamp = time.Now().UTC()
	s.audit.Record(entry)
}
