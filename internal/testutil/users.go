// Package testutil provides in-memory implementations of the repository ports
// for service and router tests.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/99minutos/inventory-system/internal/core/domain"
)

// UserStore is an in-memory ports.UserRepository that counts calls.
type UserStore struct {
	mu     sync.Mutex
	byID   map[string]*domain.User
	nextID int

	// Err, when set, is returned by every method.
	Err error

	FindByIDCalls   int
	UpdateRoleCalls int
	DeleteCalls     int
}

func NewUserStore() *UserStore {
	return &UserStore{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func (s *UserStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *UserStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FindByIDCalls++
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *UserStore) Insert(_ context.Context, user *domain.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	for _, u := range s.byID {
		if u.Username == user.Username {
			return "", domain.ErrUserExists
		}
	}
	s.nextID++
	id := fmt.Sprintf("%024x", s.nextID)
	stored := cloneUser(user)
	stored.ID = id
	s.byID[id] = stored
	return id, nil
}

func (s *UserStore) UpdateRole(_ context.Context, id string, role domain.Role) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UpdateRoleCalls++
	if s.Err != nil {
		return 0, s.Err
	}
	u, ok := s.byID[id]
	if !ok {
		return 0, nil
	}
	u.Role = role
	return 1, nil
}

func (s *UserStore) DeleteByID(_ context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DeleteCalls++
	if s.Err != nil {
		return 0, s.Err
	}
	if _, ok := s.byID[id]; !ok {
		return 0, nil
	}
	delete(s.byID, id)
	return 1, nil
}

func (s *UserStore) List(_ context.Context) ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*domain.User, 0, len(s.byID))
	for _, u := range s.byID {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Put stores u as-is, bypassing uniqueness checks. It is used to seed records
// the service layer would never create, such as users without a role.
func (s *UserStore) Put(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[u.ID] = cloneUser(&u)
}
