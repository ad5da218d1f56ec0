package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/focusflow/backend/api/handler"
	"github.com/focusflow/backend/internal/config"
	"github.com/focusflow/backend/internal/infrastructure/ledger"
	"github.com/focusflow/backend/internal/infrastructure/monitor"
	pgInfra "github.com/focusflow/backend/internal/infrastructure/postgres"
	redisInfra "github.com/focusflow/backend/internal/infrastructure/redis"
	"github.com/focusflow/backend/internal/middleware"
	"github.com/focusflow/backend/internal/router"
	"github.com/focusflow/backend/internal/services"
	"github.com/focusflow/backend/internal/services/lifecycle"
	"github.com/focusflow/backend/pkg/httpcontext"
	"github.com/focusflow/backend/pkg/logger"
	"github.com/focusflow/backend/repository/postgres"
	redisRepo "github.com/focusflow/backend/repository/redis"
	authUC "github.com/focusflow/backend/usecase/auth"
	calendarUC "github.com/focusflow/backend/usecase/calendar"
	dashboardUC "github.com/focusflow/backend/usecase/dashboard"
	profileUC "github.com/focusflow/backend/usecase/profile"
	reminderUC "github.com/focusflow/backend/usecase/reminder"
	taskUC "github.com/focusflow/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Service:  cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	sendLedger, err := ledger.Open(cfg.Reminder.LedgerPath, "reminders")
	if err != nil {
		zapLogger.Fatal("failed to open reminder ledger", zap.Error(err))
	}
	manager.Register("ledger", func(ctx context.Context) error {
		return sendLedger.Close()
	})

	mon := monitor.New(pool, redisClient, sendLedger, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Reminder.SessionTTL)

	authUseCase := authUC.New(userRepo, sessionRepo, zapLogger)
	profileUseCase := profileUC.New(profileRepo, zapLogger)
	taskUseCase := taskUC.New(taskRepo, zapLogger)
	calendarUseCase := calendarUC.New(taskRepo, zapLogger)
	dashboardUseCase := dashboardUC.New(taskRepo, zapLogger)
	reminderUseCase := reminderUC.New(taskRepo, zapLogger)

	mailer := services.NewSMTPMailer(cfg.SMTP, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:     apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.Reminder.SessionTTL),
		Profile:  apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Task:     apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Calendar: apiHandler.NewCalendarHandler(calendarUseCase, dashboardUseCase, ctxAdapter, zapLogger),
		Reminder: apiHandler.NewReminderHandler(reminderUseCase, userRepo, mailer, cfg.Reminder.WindowDays, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
