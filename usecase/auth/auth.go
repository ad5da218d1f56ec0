package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/focusflow/backend/domain"
	"github.com/focusflow/backend/repository"
)

const minPasswordLength = 6

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	logger   *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// Register creates an account. The user row and its profile row commit in the
// same transaction inside the repository.
func (uc *UseCase) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "username and email are required")
	}
	if len(password) < minPasswordLength {
		return nil, domain.NewError(domain.ErrCodeInvalid, "password must be at least 6 characters")
	}

	if _, err := uc.users.GetByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := uc.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and opens a session. Unknown usernames and bad
// passwords are indistinguishable to the caller.
func (uc *UseCase) Login(ctx context.Context, username, password string, ttl time.Duration) (*domain.User, *domain.Session, error) {
	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrWrongPassword
		}
		return nil, nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrWrongPassword
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (uc *UseCase) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (uc *UseCase) RefreshSession(ctx context.Context, sessionID string, ttl time.Duration) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := uc.sessions.Extend(ctx, sessionID, int(ttl.Seconds())); err != nil {
		return nil, err
	}
	session.ExpiresAt = time.Now().Add(ttl)
	return session, nil
}

func (uc *UseCase) RevokeSession(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

// ChangePassword verifies the current password before storing the new hash.
func (uc *UseCase) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrWrongPassword
	}
	if len(next) < minPasswordLength {
		return domain.NewError(domain.ErrCodeInvalid, "password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.users.UpdatePassword(ctx, userID, string(hash))
}

// DeleteAccount removes the user after a password check. Profile and tasks are
// removed by cascade.
func (uc *UseCase) DeleteAccount(ctx context.Context, userID, password string) error {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.ErrWrongPassword
	}

	if err := uc.users.Delete(ctx, userID); err != nil {
		return err
	}
	uc.logger.Info("account deleted", zap.String("user_id", userID))
	return nil
}
