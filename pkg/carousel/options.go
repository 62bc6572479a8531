package carousel

import (
	"log/slog"

	"github.com/aretw0/vitrine/internal/logging"
	"github.com/aretw0/vitrine/pkg/clock"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/ports"
)

// Option configures an Engine.
type Option func(*Engine)

// WithClock injects the time source (defaults to the wall clock).
func WithClock(c ports.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithPolicy sets the auto-advance policy. Zero durations fall back to the defaults.
func WithPolicy(p domain.AutoAdvancePolicy) Option {
	return func(e *Engine) {
		e.policy = p.WithDefaults()
	}
}

// WithHooks registers observability hooks.
func WithHooks(h domain.CarouselHooks) Option {
	return func(e *Engine) {
		e.hooks = h
	}
}

// WithLogger sets a structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithName labels the carousel in events and logs.
func WithName(name string) Option {
	return func(e *Engine) {
		e.name = name
	}
}

// WithSessionID tags emitted events with the owning session.
func WithSessionID(id string) Option {
	return func(e *Engine) {
		e.sessionID = id
	}
}

func defaults(e *Engine) {
	e.clock = clock.New()
	e.policy = domain.DefaultPolicy()
	e.logger = logging.NewNop()
}
