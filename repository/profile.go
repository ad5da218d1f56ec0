package repository

import (
	"context"

	"github.com/focusflow/backend/domain"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	ClearAvatar(ctx context.Context, userID string) error
}
