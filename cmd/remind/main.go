// Command remind sends pending-task reminder emails. It runs one dispatch
// pass and exits, which makes it suitable for a system crontab; with -daily
// it stays resident and fires on its own schedule instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/focusflow/backend/internal/config"
	"github.com/focusflow/backend/internal/infrastructure/ledger"
	pgInfra "github.com/focusflow/backend/internal/infrastructure/postgres"
	"github.com/focusflow/backend/internal/services"
	"github.com/focusflow/backend/pkg/logger"
	"github.com/focusflow/backend/repository/postgres"
	reminderUC "github.com/focusflow/backend/usecase/reminder"
)

func main() {
	var (
		windowDays = flag.Int("window", -1, "due-date window in days (overrides REMINDER_WINDOW_DAYS)")
		force      = flag.Bool("force", false, "re-send even if a reminder already went out today")
		dailyAt    = flag.String("daily", "", "stay resident and dispatch every day at HH:MM")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if *windowDays >= 0 {
		cfg.Reminder.WindowDays = *windowDays
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Service:  cfg.AppName + "-remind",
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgInfra.NewPool(ctx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pool.Close()

	sendLedger, err := ledger.Open(cfg.Reminder.LedgerPath, "reminders")
	if err != nil {
		zapLogger.Fatal("failed to open reminder ledger", zap.Error(err))
	}
	defer sendLedger.Close()

	userRepo := postgres.NewUserRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)

	dispatcher := services.NewReminderDispatcher(
		userRepo,
		profileRepo,
		reminderUC.New(taskRepo, zapLogger),
		services.NewSMTPMailer(cfg.SMTP, zapLogger),
		sendLedger,
		zapLogger,
	)
	dispatchCfg := services.DispatcherConfig{
		WindowDays: cfg.Reminder.WindowDays,
		Force:      *force,
	}

	runOnce := func() {
		runCtx, runCancel := context.WithTimeout(ctx, 5*time.Minute)
		defer runCancel()
		sent, err := dispatcher.Run(runCtx, time.Now(), dispatchCfg)
		if err != nil {
			zapLogger.Error("reminder run failed", zap.Error(err))
			return
		}
		zapLogger.Info("reminder run complete", zap.Int("sent", sent))
	}

	if *dailyAt == "" {
		runOnce()
		return
	}

	spec, err := buildDailySpec(*dailyAt)
	if err != nil {
		zapLogger.Fatal("invalid -daily value", zap.Error(err))
	}

	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(spec, runOnce); err != nil {
		zapLogger.Fatal("failed to schedule reminder job", zap.Error(err))
	}
	c.Start()
	zapLogger.Info("reminder schedule active", zap.String("daily_at", *dailyAt))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	<-sigCh

	stopCtx := c.Stop()
	<-stopCtx.Done()
	zapLogger.Info("reminder schedule stopped")
}

// buildDailySpec converts an HH:MM time into a seconds-resolution cron spec.
func buildDailySpec(timeStr string) (string, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", timeStr)
	}
	return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
}
