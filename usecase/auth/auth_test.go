package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/focusflow/backend/domain"
)

type memUserRepo struct {
	byID map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: make(map[string]*domain.User)}
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if user, ok := m.byID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, user := range m.byID {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range m.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	copied := *user
	m.byID[user.ID] = &copied
	return nil
}

func (m *memUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	user, ok := m.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (m *memUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memUserRepo) ListWithEmail(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, user := range m.byID {
		if user.Email != "" {
			out = append(out, *user)
		}
	}
	return out, nil
}

type memSessionRepo struct {
	byID map[string]*domain.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{byID: make(map[string]*domain.Session)}
}

func (m *memSessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	if session, ok := m.byID[id]; ok {
		copied := *session
		return &copied, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (m *memSessionRepo) Save(ctx context.Context, session *domain.Session) error {
	copied := *session
	m.byID[session.ID] = &copied
	return nil
}

func (m *memSessionRepo) Delete(ctx context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

func (m *memSessionRepo) Extend(ctx context.Context, id string, ttlSeconds int) error {
	session, ok := m.byID[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.ExpiresAt = time.Now().Add(time.Duration(ttlSeconds) * time.Second)
	return nil
}

func newTestUseCase() (*UseCase, *memUserRepo, *memSessionRepo) {
	users := newMemUserRepo()
	sessions := newMemSessionRepo()
	return New(users, sessions, nil), users, sessions
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		uc, _, _ := newTestUseCase()
		user, err := uc.Register(ctx, "alice", "alice@example.com", "secret1")
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if user.ID == "" {
			t.Error("user got no id")
		}
		if user.PasswordHash == "secret1" {
			t.Error("password stored in plain text")
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		uc, _, _ := newTestUseCase()
		if _, err := uc.Register(ctx, "alice", "a@example.com", "secret1"); err != nil {
			t.Fatalf("Register: %v", err)
		}
		_, err := uc.Register(ctx, "alice", "other@example.com", "secret1")
		if !errors.Is(err, domain.ErrUsernameTaken) {
			t.Fatalf("err = %v, want ErrUsernameTaken", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		uc, _, _ := newTestUseCase()
		if _, err := uc.Register(ctx, "alice", "a@example.com", "secret1"); err != nil {
			t.Fatalf("Register: %v", err)
		}
		_, err := uc.Register(ctx, "bob", "a@example.com", "secret1")
		if !errors.Is(err, domain.ErrEmailTaken) {
			t.Fatalf("err = %v, want ErrEmailTaken", err)
		}
	})

	t.Run("short password", func(t *testing.T) {
		uc, _, _ := newTestUseCase()
		if _, err := uc.Register(ctx, "alice", "a@example.com", "123"); err == nil {
			t.Fatal("expected short password rejection")
		}
	})

	t.Run("blank fields", func(t *testing.T) {
		uc, _, _ := newTestUseCase()
		if _, err := uc.Register(ctx, "  ", "a@example.com", "secret1"); err == nil {
			t.Fatal("expected blank username rejection")
		}
		if _, err := uc.Register(ctx, "alice", "", "secret1"); err == nil {
			t.Fatal("expected blank email rejection")
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newTestUseCase()

	if _, err := uc.Register(ctx, "alice", "a@example.com", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	t.Run("success", func(t *testing.T) {
		user, session, err := uc.Login(ctx, "alice", "secret1", time.Hour)
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if session.UserID != user.ID {
			t.Errorf("session user = %q, want %q", session.UserID, user.ID)
		}
		if session.IsExpired(time.Now()) {
			t.Error("fresh session already expired")
		}
	})

	t.Run("wrong password and unknown user look the same", func(t *testing.T) {
		_, _, errBadPass := uc.Login(ctx, "alice", "wrong", time.Hour)
		_, _, errNoUser := uc.Login(ctx, "nobody", "secret1", time.Hour)
		if !errors.Is(errBadPass, domain.ErrWrongPassword) {
			t.Fatalf("bad password err = %v", errBadPass)
		}
		if !errors.Is(errNoUser, domain.ErrWrongPassword) {
			t.Fatalf("unknown user err = %v", errNoUser)
		}
	})
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	uc, _, sessions := newTestUseCase()

	if _, err := uc.Register(ctx, "alice", "a@example.com", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, session, err := uc.Login(ctx, "alice", "secret1", time.Hour)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	got, err := uc.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.ID != session.ID {
		t.Errorf("got session %q, want %q", got.ID, session.ID)
	}

	if _, err := uc.RefreshSession(ctx, session.ID, 2*time.Hour); err != nil {
		t.Fatalf("RefreshSession: %v", err)
	}

	if err := uc.RevokeSession(ctx, session.ID); err != nil {
		t.Fatalf("RevokeSession: %v", err)
	}
	if _, err := uc.GetSession(ctx, session.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("revoked session still readable: %v", err)
	}

	// An expired but still stored session is treated as missing and removed.
	stale := &domain.Session{
		ID:        "stale",
		UserID:    "u1",
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	if err := sessions.Save(ctx, stale); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := uc.GetSession(ctx, "stale"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expired session err = %v, want ErrSessionNotFound", err)
	}
	if _, ok := sessions.byID["stale"]; ok {
		t.Error("expired session not cleaned up")
	}
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newTestUseCase()

	user, err := uc.Register(ctx, "alice", "a@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := uc.ChangePassword(ctx, user.ID, "wrong", "newsecret"); !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatalf("err = %v, want ErrWrongPassword", err)
	}
	if err := uc.ChangePassword(ctx, user.ID, "secret1", "abc"); err == nil {
		t.Fatal("expected short new password rejection")
	}
	if err := uc.ChangePassword(ctx, user.ID, "secret1", "newsecret"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, _, err := uc.Login(ctx, "alice", "secret1", time.Hour); !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatal("old password still accepted")
	}
	if _, _, err := uc.Login(ctx, "alice", "newsecret", time.Hour); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	uc, users, _ := newTestUseCase()

	user, err := uc.Register(ctx, "alice", "a@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := uc.DeleteAccount(ctx, user.ID, "wrong"); !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatalf("err = %v, want ErrWrongPassword", err)
	}
	if err := uc.DeleteAccount(ctx, user.ID, "secret1"); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if _, err := users.GetByID(ctx, user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatal("user still present after account deletion")
	}
}
