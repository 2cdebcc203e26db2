/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

package mocklog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/xid"
	"go.uber.org/atomic"

	"github.com/acronis/go-mocklog/config"
	"github.com/acronis/go-mocklog/internal/goid"
	"github.com/acronis/go-mocklog/log"
)

// ErrPoisoned is a panic value reported when the registry is used after a write operation
// was interrupted by panic, and its state can no longer be trusted.
var ErrPoisoned = errors.New("mocklog: registry is poisoned")

// Facade is the process-wide logging front-end the Registry registers its Adapter in.
// *log.Facade implements it.
type Facade interface {
	SetSink(sink log.Sink) error
	SetMaxLevel(level log.Level)
}

var _ Facade = (*log.Facade)(nil)

type installedLogger struct {
	sink     log.Sink
	minLevel log.Level
	guardID  xid.ID
}

// Registry holds sinks installed by goroutines.
// All methods are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	loggers  map[goid.ID]installedLogger
	poisoned *atomic.Bool

	initOnce sync.Once
	initErr  error

	facade  Facade
	adapter *Adapter
	logger  log.FieldLogger
	metrics MetricsCollector
}

// RegistryOption represents a functional option for the Registry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	facade  Facade
	logger  log.FieldLogger
	metrics MetricsCollector
}

// WithFacade sets the facade in which the registry's Adapter is registered on initialization.
// By default, log.DefaultFacade() is used.
func WithFacade(facade Facade) RegistryOption {
	return func(o *registryOptions) {
		o.facade = facade
	}
}

// WithDiagnosticsLogger sets the logger for diagnostic messages of the registry itself.
// It's called outside any locks, but it should not be log.L(),
// otherwise diagnostics would end up in the sinks installed by tests.
func WithDiagnosticsLogger(logger log.FieldLogger) RegistryOption {
	return func(o *registryOptions) {
		o.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(metrics MetricsCollector) RegistryOption {
	return func(o *registryOptions) {
		o.metrics = metrics
	}
}

// NewRegistry creates a new empty Registry.
// The Adapter is not registered in the facade until Init or SetLogger is called.
func NewRegistry(options ...RegistryOption) *Registry {
	var opts registryOptions
	for _, opt := range options {
		opt(&opts)
	}
	if opts.facade == nil {
		opts.facade = log.DefaultFacade()
	}
	if opts.logger == nil {
		opts.logger = log.NewDisabledLogger()
	}
	if opts.metrics == nil {
		opts.metrics = disabledMetricsCollector
	}
	r := &Registry{
		loggers:  make(map[goid.ID]installedLogger),
		poisoned: atomic.NewBool(false),
		facade:   opts.facade,
		logger:   opts.logger,
		metrics:  opts.metrics,
	}
	r.adapter = &Adapter{registry: r}
	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the registry bound to log.DefaultFacade().
// It's used by the package-level SetLogger, SetLoggerT and WithLogger functions.
// On first call, its Config is loaded from environment variables (MOCKLOG_METRICS_ENABLED, etc.),
// and enabled Prometheus metrics are registered in the default Prometheus registerer.
// Default panics if the environment holds an invalid configuration.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		cfg := NewDefaultConfig()
		if err := config.NewDefaultLoader("").Load(cfg); err != nil {
			panic(fmt.Errorf("mocklog: load configuration from environment: %w", err))
		}
		defaultRegistry = newDefaultRegistry(cfg)
	})
	return defaultRegistry
}

// newDefaultRegistry never closes the diagnostics logger since the registry lives as long as the process.
func newDefaultRegistry(cfg *Config) *Registry {
	r, _ := NewRegistryWithConfig(cfg)
	if pm, ok := r.Metrics().(*PrometheusMetrics); ok {
		pm.MustRegister()
	}
	return r
}

// Metrics returns the metrics collector of the registry.
func (r *Registry) Metrics() MetricsCollector {
	return r.metrics
}

// Adapter returns the sink which is registered in the facade.
func (r *Registry) Adapter() *Adapter {
	return r.adapter
}

// Init registers the Adapter as the facade sink and sets the facade threshold to the most permissive level.
// Only the first call does the work, all others return its result.
func (r *Registry) Init() error {
	r.initOnce.Do(func() {
		if err := r.facade.SetSink(r.adapter); err != nil {
			r.initErr = fmt.Errorf("mocklog: register adapter in logging facade: %w", err)
			r.logger.Error("registering adapter in logging facade failed", log.Error(err))
			return
		}
		r.facade.SetMaxLevel(log.LevelDebug)
		r.logger.Debug("adapter registered in logging facade")
	})
	return r.initErr
}

// Len returns the number of goroutines with an installed sink.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.checkPoisoned()
	return len(r.loggers)
}

func (r *Registry) insert(id goid.ID, entry installedLogger) {
	var replaced bool
	r.write(func(loggers map[goid.ID]installedLogger) {
		_, replaced = loggers[id]
		loggers[id] = entry
		r.metrics.SetActiveOverrides(len(loggers))
	})

	r.metrics.IncOverridesInstalled()
	r.logger.Debug("override installed",
		log.Int64("goroutine", int64(id)),
		log.String("guard_id", entry.guardID.String()),
		log.String("min_level", string(entry.minLevel)),
		log.Bool("replaced", replaced),
	)
}

func (r *Registry) remove(id goid.ID) {
	var found bool
	r.write(func(loggers map[goid.ID]installedLogger) {
		if _, found = loggers[id]; found {
			delete(loggers, id)
			r.metrics.SetActiveOverrides(len(loggers))
		}
	})

	if !found {
		return
	}
	r.metrics.IncOverridesReleased()
	r.logger.Debug("override released", log.Int64("goroutine", int64(id)))
}

func (r *Registry) lookup(id goid.ID) (installedLogger, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.checkPoisoned()
	entry, ok := r.loggers[id]
	return entry, ok
}

// write runs fn under the exclusive lock.
// If fn doesn't return normally, the registry becomes poisoned.
func (r *Registry) write(fn func(loggers map[goid.ID]installedLogger)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkPoisoned()

	completed := false
	defer func() {
		if !completed {
			r.poisoned.Store(true)
		}
	}()
	fn(r.loggers)
	completed = true
}

func (r *Registry) checkPoisoned() {
	if r.poisoned.Load() {
		panic(ErrPoisoned)
	}
}
