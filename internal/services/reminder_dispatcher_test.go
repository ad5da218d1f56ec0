package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/focusflow/backend/domain"
	"github.com/focusflow/backend/repository"
	reminderUC "github.com/focusflow/backend/usecase/reminder"
)

type fakeUserRepo struct {
	users []domain.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id, hash string) error { return nil }

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeUserRepo) ListWithEmail(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, user := range f.users {
		if user.Email != "" {
			out = append(out, user)
		}
	}
	return out, nil
}

type fakeProfileRepo struct {
	profiles map[string]*domain.Profile
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return nil, domain.ErrProfileNotFound
}

func (f *fakeProfileRepo) Update(ctx context.Context, profile *domain.Profile) error { return nil }

func (f *fakeProfileRepo) ClearAvatar(ctx context.Context, userID string) error { return nil }

type fakeTaskRepo struct {
	tasks []domain.Task
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, userID, id string) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}

func (f *fakeTaskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, task := range f.tasks {
		if task.UserID != filter.UserID {
			continue
		}
		if filter.Completed != nil && task.Completed != *filter.Completed {
			continue
		}
		if filter.DueTo != nil && (task.DueDate == nil || task.DueDate.After(*filter.DueTo)) {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	return task, nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, task *domain.Task) error { return nil }

func (f *fakeTaskRepo) Delete(ctx context.Context, userID, id string) error { return nil }

type recordingMailer struct {
	sentTo  []string
	failFor map[string]bool
}

func (m *recordingMailer) SendReminder(ctx context.Context, user domain.User, tasks []domain.Task, today time.Time) error {
	if m.failFor[user.ID] {
		return errors.New("smtp unavailable")
	}
	m.sentTo = append(m.sentTo, user.ID)
	return nil
}

type memLedger struct {
	lastSent map[string]time.Time
}

func newMemLedger() *memLedger {
	return &memLedger{lastSent: make(map[string]time.Time)}
}

func (l *memLedger) LastSent(userID string) (time.Time, error) {
	return l.lastSent[userID], nil
}

func (l *memLedger) MarkSent(userID string, at time.Time) error {
	l.lastSent[userID] = at
	return nil
}

func profileWithNotifications(userID string, enabled bool) *domain.Profile {
	return &domain.Profile{UserID: userID, EmailNotifications: enabled}
}

func taskDue(userID string, due time.Time) domain.Task {
	return domain.Task{UserID: userID, Title: "pending", DueDate: &due}
}

func TestReminderDispatcher_Run(t *testing.T) {
	now := time.Date(2025, time.June, 15, 8, 0, 0, 0, time.UTC)
	due := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	users := &fakeUserRepo{users: []domain.User{
		{ID: "u1", Username: "alice", Email: "alice@example.com"},
		{ID: "u2", Username: "bob", Email: "bob@example.com"},
	}}
	profiles := &fakeProfileRepo{profiles: map[string]*domain.Profile{
		"u1": profileWithNotifications("u1", true),
		"u2": profileWithNotifications("u2", true),
	}}
	tasks := &fakeTaskRepo{tasks: []domain.Task{
		taskDue("u1", due),
		taskDue("u2", due),
	}}
	mailer := &recordingMailer{}
	ledger := newMemLedger()

	d := NewReminderDispatcher(users, profiles, reminderUC.New(tasks, nil), mailer, ledger, nil)

	sent, err := d.Run(context.Background(), now, DispatcherConfig{WindowDays: 0})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sent != 2 {
		t.Fatalf("sent = %d, want 2", sent)
	}
	if len(mailer.sentTo) != 2 {
		t.Fatalf("mailer called %d times, want 2", len(mailer.sentTo))
	}
	for _, id := range []string{"u1", "u2"} {
		if ledger.lastSent[id].IsZero() {
			t.Errorf("ledger not marked for %s", id)
		}
	}
}

func TestReminderDispatcher_OneFailureDoesNotAbortBatch(t *testing.T) {
	now := time.Date(2025, time.June, 15, 8, 0, 0, 0, time.UTC)
	due := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	users := &fakeUserRepo{users: []domain.User{
		{ID: "u1", Email: "a@example.com"},
		{ID: "u2", Email: "b@example.com"},
		{ID: "u3", Email: "c@example.com"},
	}}
	profiles := &fakeProfileRepo{profiles: map[string]*domain.Profile{
		"u1": profileWithNotifications("u1", true),
		"u2": profileWithNotifications("u2", true),
		"u3": profileWithNotifications("u3", true),
	}}
	tasks := &fakeTaskRepo{tasks: []domain.Task{
		taskDue("u1", due), taskDue("u2", due), taskDue("u3", due),
	}}
	mailer := &recordingMailer{failFor: map[string]bool{"u2": true}}
	ledger := newMemLedger()

	d := NewReminderDispatcher(users, profiles, reminderUC.New(tasks, nil), mailer, ledger, nil)

	sent, err := d.Run(context.Background(), now, DispatcherConfig{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sent != 2 {
		t.Fatalf("sent = %d, want 2 despite one failure", sent)
	}
	if !ledger.lastSent["u2"].IsZero() {
		t.Error("failed delivery must not be marked in the ledger")
	}
}

func TestReminderDispatcher_Skips(t *testing.T) {
	now := time.Date(2025, time.June, 15, 8, 0, 0, 0, time.UTC)
	due := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	t.Run("notifications disabled", func(t *testing.T) {
		users := &fakeUserRepo{users: []domain.User{{ID: "u1", Email: "a@example.com"}}}
		profiles := &fakeProfileRepo{profiles: map[string]*domain.Profile{
			"u1": profileWithNotifications("u1", false),
		}}
		tasks := &fakeTaskRepo{tasks: []domain.Task{taskDue("u1", due)}}
		mailer := &recordingMailer{}

		d := NewReminderDispatcher(users, profiles, reminderUC.New(tasks, nil), mailer, newMemLedger(), nil)
		sent, err := d.Run(context.Background(), now, DispatcherConfig{})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if sent != 0 || len(mailer.sentTo) != 0 {
			t.Errorf("sent = %d, mailer calls = %d; want none", sent, len(mailer.sentTo))
		}
	})

	t.Run("missing profile", func(t *testing.T) {
		users := &fakeUserRepo{users: []domain.User{{ID: "u1", Email: "a@example.com"}}}
		profiles := &fakeProfileRepo{profiles: map[string]*domain.Profile{}}
		tasks := &fakeTaskRepo{tasks: []domain.Task{taskDue("u1", due)}}
		mailer := &recordingMailer{}

		d := NewReminderDispatcher(users, profiles, reminderUC.New(tasks, nil), mailer, newMemLedger(), nil)
		sent, err := d.Run(context.Background(), now, DispatcherConfig{})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if sent != 0 {
			t.Errorf("sent = %d, want 0", sent)
		}
	})

	t.Run("no pending tasks", func(t *testing.T) {
		users := &fakeUserRepo{users: []domain.User{{ID: "u1", Email: "a@example.com"}}}
		profiles := &fakeProfileRepo{profiles: map[string]*domain.Profile{
			"u1": profileWithNotifications("u1", true),
		}}
		mailer := &recordingMailer{}

		d := NewReminderDispatcher(users, profiles, reminderUC.New(&fakeTaskRepo{}, nil), mailer, newMemLedger(), nil)
		sent, err := d.Run(context.Background(), now, DispatcherConfig{})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if sent != 0 || len(mailer.sentTo) != 0 {
			t.Errorf("sent = %d, mailer calls = %d; want none", sent, len(mailer.sentTo))
		}
	})
}

func TestReminderDispatcher_SameDayLedger(t *testing.T) {
	morning := time.Date(2025, time.June, 15, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, time.June, 15, 20, 0, 0, 0, time.UTC)
	nextDay := time.Date(2025, time.June, 16, 8, 0, 0, 0, time.UTC)
	due := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

	users := &fakeUserRepo{users: []domain.User{{ID: "u1", Email: "a@example.com"}}}
	profiles := &fakeProfileRepo{profiles: map[string]*domain.Profile{
		"u1": profileWithNotifications("u1", true),
	}}
	tasks := &fakeTaskRepo{tasks: []domain.Task{taskDue("u1", due)}}
	mailer := &recordingMailer{}
	ledger := newMemLedger()
	cfg := DispatcherConfig{WindowDays: 30}

	d := NewReminderDispatcher(users, profiles, reminderUC.New(tasks, nil), mailer, ledger, nil)

	if sent, _ := d.Run(context.Background(), morning, cfg); sent != 1 {
		t.Fatalf("first run sent = %d, want 1", sent)
	}
	if sent, _ := d.Run(context.Background(), evening, cfg); sent != 0 {
		t.Fatalf("same-day rerun sent = %d, want 0", sent)
	}

	forced := cfg
	forced.Force = true
	if sent, _ := d.Run(context.Background(), evening, forced); sent != 1 {
		t.Fatalf("forced rerun sent = %d, want 1", sent)
	}

	if sent, _ := d.Run(context.Background(), nextDay, cfg); sent != 1 {
		t.Fatalf("next-day run sent = %d, want 1", sent)
	}
}
