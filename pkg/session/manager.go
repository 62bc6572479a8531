package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/vitrine/internal/logging"
	"github.com/aretw0/vitrine/pkg/clock"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/ports"
)

// Instance is anything the manager can tear down.
type Instance interface {
	Close() error
}

// Defaults for NewManager.
const (
	DefaultIdleTimeout = 30 * time.Minute
	DefaultMaxSessions = 10000
)

type config struct {
	clock   ports.Clock
	idle    time.Duration
	max     int
	logger  *slog.Logger
	kind    string
	onEvict func(id string)
}

// Option configures the Manager.
type Option func(*config)

// WithClock injects the time source used for idle tracking.
func WithClock(c ports.Clock) Option {
	return func(cfg *config) {
		cfg.clock = c
	}
}

// WithIdleTimeout sets how long an untouched instance survives. Zero disables sweeping.
func WithIdleTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.idle = d
	}
}

// WithMaxSessions caps live instances. Creating past the cap evicts the least recently used.
func WithMaxSessions(n int) Option {
	return func(cfg *config) {
		cfg.max = n
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithKind labels log lines (e.g. "chat", "carousel").
func WithKind(kind string) Option {
	return func(cfg *config) {
		cfg.kind = kind
	}
}

// WithEvictHook is called after an instance is removed for any reason.
func WithEvictHook(fn func(id string)) Option {
	return func(cfg *config) {
		cfg.onEvict = fn
	}
}

type entry[T Instance] struct {
	value   T
	touched time.Time

	// mu serializes WithLock callers; refs counts holders and waiters.
	mu   sync.Mutex
	refs int
}

// Manager owns live instances keyed by random ids.
type Manager[T Instance] struct {
	cfg config

	mu      sync.Mutex
	entries map[string]*entry[T]
	sweeper ports.Timer
	closed  bool
}

// NewManager creates a manager and arms the idle sweeper.
func NewManager[T Instance](opts ...Option) *Manager[T] {
	cfg := config{
		clock:  clock.New(),
		idle:   DefaultIdleTimeout,
		max:    DefaultMaxSessions,
		logger: logging.NewNop(),
		kind:   "session",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.logger = cfg.logger.With("kind", cfg.kind)

	m := &Manager[T]{cfg: cfg, entries: make(map[string]*entry[T])}
	m.mu.Lock()
	m.armLocked()
	m.mu.Unlock()
	return m
}

// Create builds a new instance under a fresh id.
func (m *Manager[T]) Create(build func(id string) (T, error)) (string, T, error) {
	var zero T
	id := uuid.NewString()
	value, err := build(id)
	if err != nil {
		return "", zero, err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		_ = value.Close()
		return "", zero, domain.ErrClosed
	}
	var evicted []evictee[T]
	if m.cfg.max > 0 {
		for len(m.entries) >= m.cfg.max {
			oldest := m.oldestLocked()
			if oldest == "" {
				m.cfg.logger.Warn("session capacity exceeded, every session is in use", "max", m.cfg.max)
				break
			}
			evicted = append(evicted, m.removeLocked(oldest))
		}
	}
	m.entries[id] = &entry[T]{value: value, touched: m.cfg.clock.Now()}
	m.mu.Unlock()

	m.closeAll(evicted, "capacity")
	m.cfg.logger.Debug("session created", "session_id", id)
	return id, value, nil
}

// Get returns the instance and marks it as used.
func (m *Manager[T]) Get(id string) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	e.touched = m.cfg.clock.Now()
	return e.value, nil
}

// WithLock runs fn on the instance while holding its per-id lock, so multi-step
// operations on one instance do not interleave.
func (m *Manager[T]) WithLock(id string, fn func(T) error) error {
	e, err := m.acquire(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer func() {
		e.mu.Unlock()
		m.release(e)
	}()
	return fn(e.value)
}

func (m *Manager[T]) acquire(id string) (*entry[T], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	e.refs++
	e.touched = m.cfg.clock.Now()
	return e, nil
}

func (m *Manager[T]) release(e *entry[T]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.refs--
}

// Delete removes and closes the instance.
func (m *Manager[T]) Delete(id string) error {
	m.mu.Lock()
	if _, ok := m.entries[id]; !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	ev := m.removeLocked(id)
	m.mu.Unlock()

	m.closeAll([]evictee[T]{ev}, "deleted")
	return nil
}

// List returns the live ids in lexical order.
func (m *Manager[T]) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of live instances.
func (m *Manager[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Sweep closes every instance idle for longer than the idle timeout.
// Instances currently inside WithLock are skipped.
func (m *Manager[T]) Sweep() int {
	if m.cfg.idle <= 0 {
		return 0
	}
	m.mu.Lock()
	cutoff := m.cfg.clock.Now().Add(-m.cfg.idle)
	var evicted []evictee[T]
	for id, e := range m.entries {
		if e.refs == 0 && !e.touched.After(cutoff) {
			evicted = append(evicted, m.removeLocked(id))
		}
	}
	m.mu.Unlock()

	m.closeAll(evicted, "idle")
	return len(evicted)
}

// Close stops the sweeper and closes every instance.
func (m *Manager[T]) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	if m.sweeper != nil {
		m.sweeper.Stop()
		m.sweeper = nil
	}
	evicted := make([]evictee[T], 0, len(m.entries))
	for id := range m.entries {
		evicted = append(evicted, m.removeLocked(id))
	}
	m.mu.Unlock()

	return m.closeAll(evicted, "shutdown")
}

type evictee[T Instance] struct {
	id    string
	value T
}

func (m *Manager[T]) removeLocked(id string) evictee[T] {
	e := m.entries[id]
	delete(m.entries, id)
	return evictee[T]{id: id, value: e.value}
}

// oldestLocked returns the least recently used entry nobody holds, or "".
func (m *Manager[T]) oldestLocked() string {
	var (
		oldest string
		at     time.Time
	)
	for id, e := range m.entries {
		if e.refs > 0 {
			continue
		}
		if oldest == "" || e.touched.Before(at) {
			oldest, at = id, e.touched
		}
	}
	return oldest
}

func (m *Manager[T]) closeAll(evicted []evictee[T], reason string) error {
	var errs []error
	for _, ev := range evicted {
		if err := ev.value.Close(); err != nil {
			m.cfg.logger.Warn("failed to close session", "session_id", ev.id, "reason", reason, "err", err)
			errs = append(errs, err)
		}
		m.cfg.logger.Debug("session closed", "session_id", ev.id, "reason", reason)
		if m.cfg.onEvict != nil {
			m.cfg.onEvict(ev.id)
		}
	}
	return errors.Join(errs...)
}

// armLocked schedules the next sweep at half the idle timeout.
func (m *Manager[T]) armLocked() {
	if m.cfg.idle <= 0 || m.closed {
		return
	}
	m.sweeper = m.cfg.clock.AfterFunc(m.cfg.idle/2, func() {
		if n := m.Sweep(); n > 0 {
			m.cfg.logger.Info("evicted idle sessions", "count", n)
		}
		m.mu.Lock()
		m.armLocked()
		m.mu.Unlock()
	})
}
