package repository

import (
	"context"
	"errors"

	"nutritrack-server/internal/domain"
)

var (
	// ErrNotFound indicates that no user matched the given identifier or email.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail indicates an insert violated the unique email constraint.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) (int64, error)
}
