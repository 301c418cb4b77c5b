package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/inventory-system/internal/core/domain"
	"github.com/99minutos/inventory-system/internal/infrastructure/token"
	"github.com/99minutos/inventory-system/internal/testutil"
)

var discardLogger = zerolog.Nop()

func newGateFixture(t *testing.T) (*Gate, *testutil.UserStore, *token.Manager) {
	t.Helper()
	users := testutil.NewUserStore()
	tokens := token.NewManager("secret", time.Hour)
	return NewGate(tokens, users, domain.NewHierarchy(), discardLogger), users, tokens
}

func issue(t *testing.T, tokens *token.Manager, userID string) string {
	t.Helper()
	tok, err := tokens.Issue(userID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

func TestGate_Allows(t *testing.T) {
	gate, users, tokens := newGateFixture(t)
	users.Put(domain.User{ID: "u1", Username: "alice", Role: domain.RoleEditor})

	user, err := gate.Authorize(context.Background(), issue(t, tokens, "u1"), []domain.Role{domain.RoleViewer})
	if err != nil {
		t.Fatalf("expected allow, got %v", err)
	}
	if user.ID != "u1" || user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestGate_Unauthenticated(t *testing.T) {
	gate, users, _ := newGateFixture(t)
	users.Put(domain.User{ID: "u1", Username: "alice", Role: domain.RoleAdmin})

	foreign, err := token.NewManager("other-secret", time.Hour).Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for name, tok := range map[string]string{
		"missing":   "",
		"malformed": "not-a-token",
		"foreign":   foreign,
	} {
		t.Run(name, func(t *testing.T) {
			before := users.FindByIDCalls
			_, err := gate.Authorize(context.Background(), tok, []domain.Role{domain.RoleViewer})
			if !errors.Is(err, domain.ErrUnauthenticated) {
				t.Fatalf("expected ErrUnauthenticated, got %v", err)
			}
			if users.FindByIDCalls != before {
				t.Fatalf("credential store must not be read for a rejected token")
			}
		})
	}
}

func TestGate_UnknownUserIsDenied(t *testing.T) {
	gate, _, tokens := newGateFixture(t)

	_, err := gate.Authorize(context.Background(), issue(t, tokens, "ghost"), []domain.Role{domain.RoleViewer})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("unknown user must not be reported as unauthenticated")
	}
}

func TestGate_UserWithoutRoleIsDenied(t *testing.T) {
	gate, users, tokens := newGateFixture(t)
	users.Put(domain.User{ID: "u1", Username: "norole"})

	_, err := gate.Authorize(context.Background(), issue(t, tokens, "u1"), []domain.Role{domain.RoleViewer})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestGate_InsufficientRoleCarriesRequiredLabels(t *testing.T) {
	gate, users, tokens := newGateFixture(t)
	users.Put(domain.User{ID: "u1", Username: "vic", Role: domain.RoleViewer})

	required := []domain.Role{domain.RoleAdmin, domain.RoleEditor}
	_, err := gate.Authorize(context.Background(), issue(t, tokens, "u1"), required)

	var denied *domain.AccessDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected AccessDeniedError, got %v", err)
	}
	if !reflect.DeepEqual(denied.Required, required) {
		t.Fatalf("expected required %v, got %v", required, denied.Required)
	}
}

func TestGate_UnrecognisedStoredRoleIsDenied(t *testing.T) {
	gate, users, tokens := newGateFixture(t)
	users.Put(domain.User{ID: "u1", Username: "odd", Role: domain.Role("superuser")})

	_, err := gate.Authorize(context.Background(), issue(t, tokens, "u1"), []domain.Role{domain.RoleViewer})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestGate_RereadsRoleOnEveryCall(t *testing.T) {
	gate, users, tokens := newGateFixture(t)
	users.Put(domain.User{ID: "u1", Username: "bob", Role: domain.RoleViewer})
	tok := issue(t, tokens, "u1")
	editorOnly := []domain.Role{domain.RoleEditor}

	if _, err := gate.Authorize(context.Background(), tok, editorOnly); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected viewer to be denied, got %v", err)
	}

	if _, err := users.UpdateRole(context.Background(), "u1", domain.RoleEditor); err != nil {
		t.Fatalf("update role: %v", err)
	}

	if _, err := gate.Authorize(context.Background(), tok, editorOnly); err != nil {
		t.Fatalf("expected promoted user to pass with the same token, got %v", err)
	}
	if users.FindByIDCalls != 2 {
		t.Fatalf("expected one store read per call, got %d", users.FindByIDCalls)
	}
}

func TestGate_StoreFailureIsNotADenial(t *testing.T) {
	gate, users, tokens := newGateFixture(t)
	users.Err = errors.New("connection reset")

	_, err := gate.Authorize(context.Background(), issue(t, tokens, "u1"), []domain.Role{domain.RoleViewer})
	if err == nil {
		t.Fatalf("expected error")
	}
	if errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("store failure must surface as an internal error, got %v", err)
	}
}
