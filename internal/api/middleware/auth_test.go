package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/inventory-system/internal/core/domain"
)

type stubAuthorizer struct {
	gotToken    string
	gotRequired []domain.Role
	user        *domain.User
	err         error
}

func (s *stubAuthorizer) Authorize(_ context.Context, token string, required []domain.Role) (*domain.User, error) {
	s.gotToken = token
	s.gotRequired = required
	return s.user, s.err
}

func newContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireRole_AllowsAndStoresUser(t *testing.T) {
	authz := &stubAuthorizer{user: &domain.User{ID: "u1", Role: domain.RoleEditor}}
	c, rec := newContext("Bearer abc.def")

	var seen *domain.User
	h := RequireRole(authz, domain.RoleEditor, domain.RoleAdmin)(func(c echo.Context) error {
		seen, _ = UserFromContext(c)
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if authz.gotToken != "abc.def" {
		t.Fatalf("expected token to be forwarded, got %q", authz.gotToken)
	}
	if len(authz.gotRequired) != 2 || authz.gotRequired[0] != domain.RoleEditor {
		t.Fatalf("unexpected required roles: %v", authz.gotRequired)
	}
	if seen == nil || seen.ID != "u1" {
		t.Fatalf("expected user in context, got %+v", seen)
	}
}

func TestRequireRole_DenialNeverRunsHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"unauthenticated", domain.ErrUnauthenticated},
		{"denied", &domain.AccessDeniedError{Required: []domain.Role{domain.RoleAdmin}}},
		{"store failure", errors.New("mongo down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext("Bearer t")
			h := RequireRole(&stubAuthorizer{err: tt.err}, domain.RoleAdmin)(func(c echo.Context) error {
				t.Fatal("should not reach next handler")
				return nil
			})

			if err := h(c); !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := map[string]string{
		"":                "",
		"Bearer tok":      "tok",
		"bearer tok":      "tok",
		"Basic dXNlcg==":  "",
		"Bearer":          "",
		"Bearer  spaced ": "spaced",
	}
	for header, want := range tests {
		c, _ := newContext(header)
		if got := bearerToken(c); got != want {
			t.Errorf("bearerToken(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestUserFromContext_Missing(t *testing.T) {
	c, _ := newContext("")
	if _, ok := UserFromContext(c); ok {
		t.Fatal("expected no user")
	}
}

func TestRequestLogger_LogsStatus(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(zerolog.New(&buf)))
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rec.Code)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"status":418`)) || !bytes.Contains(buf.Bytes(), []byte(`"level":"warn"`)) {
		t.Fatalf("unexpected log output: %s", buf.String())
	}
}
