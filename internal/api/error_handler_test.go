package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/inventory-system/internal/core/domain"
)

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"invalid input", domain.InvalidInput("price must be positive"), http.StatusBadRequest},
		{"conflict", domain.ErrUserExists, http.StatusBadRequest},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"access denied", &domain.AccessDeniedError{Required: []domain.Role{domain.RoleAdmin}}, http.StatusForbidden},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"wrapped product not found", fmt.Errorf("update: %w", domain.ErrProductNotFound), http.StatusNotFound},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed},
		{"unexpected", errors.New("mongo exploded"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body["error"] == "" || body["error"] == nil {
				t.Fatalf("expected error message, got %v", body)
			}
		})
	}
}

func TestHTTPErrorHandler_AccessDeniedListsRoles(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/users/1", nil), rec)

	err := &domain.AccessDeniedError{Required: []domain.Role{domain.RoleAdmin, domain.RoleEditor}}
	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(body.RequiredRoles) != 2 || body.RequiredRoles[0] != domain.RoleAdmin {
		t.Fatalf("unexpected required roles: %v", body.RequiredRoles)
	}
}

func TestHTTPErrorHandler_HidesInternalErrors(t *testing.T) {
	var logs bytes.Buffer
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/products", nil), rec)

	NewHTTPErrorHandler(zerolog.New(&logs))(errors.New("connection refused 10.0.0.3"), c)

	if bytes.Contains(rec.Body.Bytes(), []byte("10.0.0.3")) {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
	if !bytes.Contains(logs.Bytes(), []byte("10.0.0.3")) {
		t.Fatal("expected the cause to be logged")
	}
}

func TestHTTPErrorHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("response was modified: %d %q", rec.Code, rec.Body.String())
	}
}
