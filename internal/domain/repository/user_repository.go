package repository

import (
	"context"
	"errors"

	"blogapi/internal/domain/entity"
)

// Shared repository errors. Implementations translate driver-specific
// failures (e.g. unique violations) into these so services stay
// store-agnostic.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
