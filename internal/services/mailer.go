package services

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/focusflow/backend/domain"
	"github.com/focusflow/backend/internal/config"
)

// Mailer delivers a reminder email for one user.
type Mailer interface {
	SendReminder(ctx context.Context, user domain.User, tasks []domain.Task, today time.Time) error
}

// SMTPMailer renders and sends reminder emails over SMTP.
type SMTPMailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) *SMTPMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPMailer{cfg: cfg, logger: logger}
}

// SendReminder composes the pending-task email and delivers it. Missing SMTP
// configuration or an empty recipient is a silent skip, not an error.
func (m *SMTPMailer) SendReminder(ctx context.Context, user domain.User, tasks []domain.Task, today time.Time) error {
	if m.cfg.Host == "" || m.cfg.From == "" {
		m.logger.Warn("smtp config missing, skip reminder")
		return nil
	}
	if strings.TrimSpace(user.Email) == "" {
		m.logger.Warn("recipient empty, skip reminder", zap.String("user_id", user.ID))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", user.Email)
	msg.SetHeader("Subject", "⏰ Your FocusFlow Task Reminder")
	msg.SetBody("text/html", buildReminderBody(user, tasks, today))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}

	m.logger.Info("reminder sent",
		zap.String("user_id", user.ID),
		zap.Int("tasks", len(tasks)))
	return nil
}

func buildReminderBody(user domain.User, tasks []domain.Task, today time.Time) string {
	var rows strings.Builder
	for _, task := range tasks {
		status := domain.Classify(task, today)
		due := ""
		if task.DueDate != nil {
			due = task.DueDate.Format("2006-01-02")
		}
		rows.WriteString(fmt.Sprintf(
			`<tr><td style="padding:6px 12px;">%s</td><td style="padding:6px 12px;">%s</td><td style="padding:6px 12px;">%s</td></tr>`,
			html.EscapeString(task.Title),
			due,
			html.EscapeString(status.Label()),
		))
		rows.WriteByte('\n')
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #f6f7fb; color: #1f2937;">
  <div style="max-width: 600px; margin: 24px auto; background: #ffffff; border-radius: 12px; border: 1px solid #e5e7eb;">
    <div style="background: #0f172a; color: #ffffff; padding: 16px 20px; font-weight: bold;">FocusFlow</div>
    <div style="padding: 20px;">
      <p>Hi %s,</p>
      <p>You have %d pending task(s) that need attention:</p>
      <table style="width:100%%; border-collapse: collapse;">
        <tr><th align="left" style="padding:6px 12px;">Task</th><th align="left" style="padding:6px 12px;">Due</th><th align="left" style="padding:6px 12px;">Status</th></tr>
%s      </table>
      <p style="margin-top: 20px; font-size: 12px; color: #6b7280;">You receive this because email notifications are enabled on your profile.</p>
    </div>
  </div>
</body>
</html>`, html.EscapeString(user.Username), len(tasks), rows.String())
}
