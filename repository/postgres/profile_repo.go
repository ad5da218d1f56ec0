package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/focusflow/backend/domain"
	"github.com/focusflow/backend/repository"
)

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository instantiates a Postgres-backed profile repository.
func NewProfileRepository(pool *pgxpool.Pool) repository.ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	const query = `
	SELECT user_id, first_name, last_name, title, bio, location, birth_date,
	       phone, website, avatar, email_notifications, created_at, updated_at
	FROM profiles
	WHERE user_id = $1
	`
	var p domain.Profile
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.FirstName,
		&p.LastName,
		&p.Title,
		&p.Bio,
		&p.Location,
		&p.BirthDate,
		&p.Phone,
		&p.Website,
		&p.Avatar,
		&p.EmailNotifications,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	if profile == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE profiles
	SET first_name = $2,
		last_name = $3,
		title = $4,
		bio = $5,
		location = $6,
		birth_date = $7,
		phone = $8,
		website = $9,
		avatar = $10,
		email_notifications = $11,
		updated_at = NOW()
	WHERE user_id = $1
	RETURNING updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		profile.UserID,
		profile.FirstName,
		profile.LastName,
		profile.Title,
		profile.Bio,
		profile.Location,
		nullDate(profile.BirthDate),
		profile.Phone,
		profile.Website,
		profile.Avatar,
		profile.EmailNotifications,
	).Scan(&profile.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProfileNotFound
		}
		return err
	}
	return nil
}

func (r *profileRepository) ClearAvatar(ctx context.Context, userID string) error {
	const query = `UPDATE profiles SET avatar = '', updated_at = NOW() WHERE user_id = $1`
	tag, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
