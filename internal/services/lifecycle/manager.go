package lifecycle

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// StopFunc describes a graceful shutdown callback for a single component.
type StopFunc func(ctx context.Context) error

type component struct {
	name string
	stop StopFunc
}

// Manager coordinates graceful shutdown of registered components and reacts
// to OS termination signals.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger

	mu         sync.Mutex
	components []component
}

// New creates a lifecycle manager with the desired shutdown timeout.
func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		timeout: timeout,
		logger:  logger,
	}
}

// Register adds a component. Components are stopped in reverse registration
// order so dependents go down before their dependencies.
func (m *Manager) Register(name string, stop StopFunc) {
	if stop == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.components = append(m.components, component{name: name, stop: stop})
}

// Shutdown stops all registered components within the configured timeout.
// Failures are collected; one failed component does not block the rest.
func (m *Manager) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	m.mu.Lock()
	defer m.mu.Unlock()

	var result error
	for i := len(m.components) - 1; i >= 0; i-- {
		c := m.components[i]
		started := time.Now()
		if err := c.stop(ctx); err != nil {
			m.logger.Error("shutdown hook failed",
				zap.String("component", c.name),
				zap.Error(err))
			result = errors.Join(result, err)
			continue
		}
		m.logger.Info("component stopped",
			zap.String("component", c.name),
			zap.Duration("took", time.Since(started)))
	}
	return result
}

// Listen blocks in the background until a termination signal arrives, then
// invokes cancel so the main goroutine can begin Shutdown.
func (m *Manager) Listen(cancel context.CancelFunc) {
	if cancel == nil {
		return
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(sigCh)
		sig := <-sigCh
		m.logger.Info("shutdown signal received", zap.String("signal", sig.String()))
		cancel()
	}()
}
