package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	shutdownDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cashier_shutdown_duration_seconds",
		Help:    "Total time taken to shut down gracefully",
		Buckets: []float64{1, 5, 10, 15, 20, 25, 30},
	})

	componentShutdownDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cashier_component_shutdown_duration_seconds",
		Help:    "Time taken to shut down individual components",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 15, 20, 25, 30},
	}, []string{"component"})

	shutdownErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cashier_shutdown_errors_total",
		Help: "Total number of shutdown errors by component",
	}, []string{"component"})
)

// Func shuts down one component
type Func func(context.Context) error

type component struct {
	name string
	fn   Func
}

// Manager coordinates graceful shutdown of the service components.
// Components stop one at a time in reverse registration order, so register
// the database first and the listeners last.
type Manager struct {
	logger     *zap.Logger
	components []component
	mu         sync.Mutex
	timeout    time.Duration
}

// NewManager creates a new shutdown manager
func NewManager(logger *zap.Logger, timeout time.Duration) *Manager {
	return &Manager{
		logger:  logger,
		timeout: timeout,
	}
}

// Register adds a component shutdown function
func (sm *Manager) Register(name string, fn Func) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.components = append(sm.components, component{name: name, fn: fn})
	sm.logger.Debug("Registered shutdown component",
		zap.String("component", name),
		zap.Int("registration_order", len(sm.components)),
	)
}

// RegisterHTTPServer registers an *http.Server (or anything with Shutdown)
func (sm *Manager) RegisterHTTPServer(name string, server interface{ Shutdown(context.Context) error }) {
	sm.Register(name, server.Shutdown)
}

// RegisterNoErr registers a shutdown function that cannot fail
func (sm *Manager) RegisterNoErr(name string, fn func()) {
	sm.Register(name, func(context.Context) error {
		fn()
		return nil
	})
}

// WaitForShutdown blocks until SIGINT, SIGTERM or ctx cancellation and then shuts down
func (sm *Manager) WaitForShutdown(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	sm.logger.Info("Shutdown requested",
		zap.Duration("timeout", sm.timeout),
	)
	return sm.Shutdown()
}

// Shutdown stops every registered component within the manager's timeout and
// returns the joined component errors
func (sm *Manager) Shutdown() error {
	start := time.Now()
	defer func() { shutdownDuration.Observe(time.Since(start).Seconds()) }()

	ctx, cancel := context.WithTimeout(context.Background(), sm.timeout)
	defer cancel()

	sm.mu.Lock()
	components := make([]component, len(sm.components))
	copy(components, sm.components)
	sm.mu.Unlock()

	var errs []error
	for i := len(components) - 1; i >= 0; i-- {
		comp := components[i]
		compStart := time.Now()

		err := comp.fn(ctx)
		componentShutdownDuration.WithLabelValues(comp.name).Observe(time.Since(compStart).Seconds())

		if err != nil {
			shutdownErrors.WithLabelValues(comp.name).Inc()
			sm.logger.Error("Component shutdown failed",
				zap.String("component", comp.name),
				zap.Duration("elapsed", time.Since(compStart)),
				zap.Error(err),
			)
			errs = append(errs, err)
			continue
		}
		sm.logger.Info("Component shut down",
			zap.String("component", comp.name),
			zap.Duration("elapsed", time.Since(compStart)),
		)
	}

	sm.logger.Info("Graceful shutdown completed",
		zap.Int("error_count", len(errs)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return errors.Join(errs...)
}
