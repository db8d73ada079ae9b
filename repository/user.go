package repository

import (
	"context"

	"github.com/tasknote/backend/domain"
)

type UserRepository interface {
	// Create inserts a new user. A duplicate email surfaces as
	// domain.ErrEmailTaken via the unique constraint.
	Create(ctx context.Context, user *domain.User) error
	// GetByEmail returns the user including the stored password hash.
	// Used only inside the auth boundary.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
