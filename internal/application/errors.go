package application

import (
	"errors"
	"fmt"
	"strings"
)

// Service-level errors. Handlers translate these into HTTP statuses; anything
// else is an internal error (500, detail logged only).
var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNameTaken          = errors.New("name already taken")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
)

// ValidationError reports per-field input problems detected by a service.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func requiredFields(fields map[string]string) error {
	missing := map[string]string{}
	for name, val := range fields {
		if strings.TrimSpace(val) == "" {
			missing[name] = "is required"
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
