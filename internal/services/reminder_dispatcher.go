package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/focusflow/backend/domain"
	"github.com/focusflow/backend/repository"
	reminderUC "github.com/focusflow/backend/usecase/reminder"
)

// SendLedger tracks the last reminder delivery per user.
type SendLedger interface {
	LastSent(userID string) (time.Time, error)
	MarkSent(userID string, at time.Time) error
}

// DispatcherConfig controls the reminder window and re-send policy.
type DispatcherConfig struct {
	WindowDays int
	// Force ignores the ledger and re-sends even if a reminder already went
	// out today.
	Force bool
}

// ReminderDispatcher walks all users with an email address and sends each one
// a reminder for their pending-task window. One user's failure never aborts
// the batch.
type ReminderDispatcher struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	selector *reminderUC.UseCase
	mailer   Mailer
	ledger   SendLedger
	logger   *zap.Logger
}

func NewReminderDispatcher(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	selector *reminderUC.UseCase,
	mailer Mailer,
	ledger SendLedger,
	logger *zap.Logger,
) *ReminderDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderDispatcher{
		users:    users,
		profiles: profiles,
		selector: selector,
		mailer:   mailer,
		ledger:   ledger,
		logger:   logger,
	}
}

// Run performs one dispatch pass and returns the number of reminders sent.
func (d *ReminderDispatcher) Run(ctx context.Context, now time.Time, cfg DispatcherConfig) (int, error) {
	users, err := d.users.ListWithEmail(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, user := range users {
		if err := d.dispatchOne(ctx, user, now, cfg); err != nil {
			if errors.Is(err, errSkipped) {
				continue
			}
			d.logger.Error("reminder dispatch failed",
				zap.String("user_id", user.ID),
				zap.Error(err))
			continue
		}
		sent++
	}

	d.logger.Info("reminder pass finished",
		zap.Int("users", len(users)),
		zap.Int("sent", sent))
	return sent, nil
}

var errSkipped = errors.New("skipped")

func (d *ReminderDispatcher) dispatchOne(ctx context.Context, user domain.User, now time.Time, cfg DispatcherConfig) error {
	if skip, err := d.shouldSkip(ctx, user, now, cfg); err != nil {
		return err
	} else if skip {
		return errSkipped
	}

	tasks, err := d.selector.SelectPending(ctx, user.ID, now, cfg.WindowDays)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return errSkipped
	}

	if err := d.mailer.SendReminder(ctx, user, tasks, now); err != nil {
		return err
	}

	if d.ledger != nil {
		if err := d.ledger.MarkSent(user.ID, now); err != nil {
			d.logger.Warn("ledger update failed", zap.String("user_id", user.ID), zap.Error(err))
		}
	}
	return nil
}

func (d *ReminderDispatcher) shouldSkip(ctx context.Context, user domain.User, now time.Time, cfg DispatcherConfig) (bool, error) {
	if !user.HasEmail() {
		return true, nil
	}

	if d.profiles != nil {
		profile, err := d.profiles.GetByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, domain.ErrProfileNotFound) {
				return true, nil
			}
			return false, err
		}
		if !profile.EmailNotifications {
			return true, nil
		}
	}

	if d.ledger != nil && !cfg.Force {
		last, err := d.ledger.LastSent(user.ID)
		if err != nil {
			return false, err
		}
		if !last.IsZero() && domain.SameDate(last, now) {
			return true, nil
		}
	}
	return false, nil
}
