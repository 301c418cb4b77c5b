package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access denied")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)

// InvalidInput wraps ErrInvalidInput with a message safe to show the caller.
func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// AccessDeniedError is returned when a verified caller lacks every required role.
// It matches ErrForbidden.
type AccessDeniedError struct {
	Required []Role
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied: requires one of %v", e.Required)
}

func (e *AccessDeniedError) Is(target error) bool {
	return target == ErrForbidden
}
