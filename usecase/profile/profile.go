package profile

import (
	"context"

	"go.uber.org/zap"

	"github.com/focusflow/backend/domain"
	"github.com/focusflow/backend/repository"
)

type UseCase struct {
	profiles repository.ProfileRepository
	logger   *zap.Logger
}

func New(profiles repository.ProfileRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{profiles: profiles, logger: logger}
}

func (uc *UseCase) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return uc.profiles.GetByUserID(ctx, userID)
}

// UpdateProfile saves the editable fields. An update without a new avatar
// keeps the existing one; RemoveAvatar is the only way to clear it.
func (uc *UseCase) UpdateProfile(ctx context.Context, incoming *domain.Profile) (*domain.Profile, error) {
	if incoming == nil {
		return nil, domain.ErrInvalidPayload
	}

	existing, err := uc.profiles.GetByUserID(ctx, incoming.UserID)
	if err != nil {
		return nil, err
	}

	existing.FirstName = incoming.FirstName
	existing.LastName = incoming.LastName
	existing.Title = incoming.Title
	existing.Bio = incoming.Bio
	existing.Location = incoming.Location
	existing.BirthDate = incoming.BirthDate
	existing.Phone = incoming.Phone
	existing.Website = incoming.Website
	existing.EmailNotifications = incoming.EmailNotifications
	if incoming.Avatar != "" {
		existing.Avatar = incoming.Avatar
	}

	if err := uc.profiles.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (uc *UseCase) RemoveAvatar(ctx context.Context, userID string) error {
	return uc.profiles.ClearAvatar(ctx, userID)
}
