package repository

import (
	"context"

	"github.com/focusflow/backend/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create inserts the user and its empty profile in one transaction.
	Create(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// Delete removes the user; profile and tasks go with it by cascade.
	Delete(ctx context.Context, id string) error
	// ListWithEmail returns users that have a non-empty email address,
	// for reminder dispatch.
	ListWithEmail(ctx context.Context) ([]domain.User, error)
}
