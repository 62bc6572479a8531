package carousel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/ports"
)

// Engine drives a single active slide among N.
// Safe for concurrent use; timer callbacks and caller operations are serialized.
type Engine struct {
	name      string
	sessionID string
	slides    []domain.Slide
	policy    domain.AutoAdvancePolicy
	clock     ports.Clock
	hooks     domain.CarouselHooks
	logger    *slog.Logger

	mu      sync.Mutex
	state   domain.CarouselState
	auto    bool
	playing bool
	started bool
	closed  bool

	tick   scheduled
	resume scheduled
	settle scheduled
}

// scheduled pairs a timer handle with a generation so callbacks that lost a
// race with Stop can recognize themselves as stale.
type scheduled struct {
	timer ports.Timer
	gen   uint64
}

func (s *scheduled) cancel() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// New creates a carousel over slides. The slide list must not be empty.
func New(slides []domain.Slide, opts ...Option) (*Engine, error) {
	if len(slides) == 0 {
		return nil, domain.ErrNoSlides
	}
	e := &Engine{slides: slides}
	defaults(e)
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("carousel", e.name)
	return e, nil
}

// Len returns the number of slides.
func (e *Engine) Len() int {
	return len(e.slides)
}

// Slides returns the configured slide list.
func (e *Engine) Slides() []domain.Slide {
	return e.slides
}

// Start enables auto-advance according to the policy. Calling it twice is a no-op.
func (e *Engine) Start() {
	e.do(func() *domain.SlideEvent {
		if e.closed || e.started {
			return nil
		}
		e.started = true
		e.auto = e.policy.Enabled && !e.playing
		if e.auto {
			e.scheduleTick()
		}
		e.logger.Debug("carousel started", "auto_advance", e.auto)
		return nil
	})
}

// GoTo jumps to index, clamping it into [0, N).
func (e *Engine) GoTo(index int) {
	e.do(func() *domain.SlideEvent {
		return e.moveLocked(clamp(index, len(e.slides)), false)
	})
}

// Next moves to the following slide, wrapping around.
func (e *Engine) Next() {
	e.do(func() *domain.SlideEvent {
		return e.moveLocked(wrap(e.state.ActiveIndex+1, len(e.slides)), false)
	})
}

// Prev moves to the preceding slide, wrapping around.
func (e *Engine) Prev() {
	e.do(func() *domain.SlideEvent {
		return e.moveLocked(wrap(e.state.ActiveIndex-1, len(e.slides)), false)
	})
}

// Settle marks the visual move as complete.
func (e *Engine) Settle() {
	e.do(func() *domain.SlideEvent {
		if e.closed || !e.state.Transitioning {
			return nil
		}
		e.settle.cancel()
		e.state.Transitioning = false
		return e.eventLocked(false)
	})
}

// SetMediaPlaying reports embedded media playback on the active slide.
// Playback suppresses auto-advance until it stops; stopping re-enables it at once.
func (e *Engine) SetMediaPlaying(playing bool) {
	e.do(func() *domain.SlideEvent {
		if e.closed || e.playing == playing {
			return nil
		}
		e.playing = playing
		e.resume.cancel()
		if playing {
			e.auto = false
			e.tick.cancel()
		} else if e.policy.Enabled {
			e.auto = true
			if e.started {
				e.scheduleTick()
			}
		}
		e.logger.Debug("media state changed", "playing", playing, "auto_advance", e.auto)
		return e.eventLocked(false)
	})
}

// Snapshot returns a copy of the observable state.
func (e *Engine) Snapshot() domain.CarouselSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Close cancels every owned timer. Subsequent operations are no-ops.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	e.auto = false
	e.tick.cancel()
	e.resume.cancel()
	e.settle.cancel()
	e.logger.Debug("carousel closed")
	return nil
}

// moveLocked sets the active index. Manual moves (auto == false) reset the
// interaction suppression; auto-advance never suppresses itself.
func (e *Engine) moveLocked(target int, auto bool) *domain.SlideEvent {
	if e.closed {
		return nil
	}
	e.state.ActiveIndex = target
	e.state.Transitioning = true
	e.scheduleSettle()
	if !auto {
		e.suppressLocked()
	}
	return e.eventLocked(auto)
}

// suppressLocked disables auto-advance and (re)schedules the debounced resume.
func (e *Engine) suppressLocked() {
	e.auto = false
	e.tick.cancel()
	e.resume.cancel()
	if !e.policy.Enabled {
		return
	}
	gen := e.resume.gen
	e.resume.timer = e.clock.AfterFunc(e.policy.ResumeDelay, func() {
		e.do(func() *domain.SlideEvent {
			if e.closed || gen != e.resume.gen || e.playing {
				return nil
			}
			e.resume.timer = nil
			e.auto = true
			if e.started {
				e.scheduleTick()
			}
			e.logger.Debug("auto-advance resumed")
			return e.eventLocked(false)
		})
	})
}

func (e *Engine) scheduleTick() {
	e.tick.cancel()
	gen := e.tick.gen
	e.tick.timer = e.clock.AfterFunc(e.policy.Interval, func() {
		e.do(func() *domain.SlideEvent {
			if e.closed || gen != e.tick.gen || !e.auto || e.playing {
				return nil
			}
			e.tick.timer = nil
			ev := e.moveLocked(wrap(e.state.ActiveIndex+1, len(e.slides)), true)
			e.scheduleTick()
			return ev
		})
	})
}

func (e *Engine) scheduleSettle() {
	e.settle.cancel()
	gen := e.settle.gen
	e.settle.timer = e.clock.AfterFunc(e.policy.TransitionDuration, func() {
		e.do(func() *domain.SlideEvent {
			if e.closed || gen != e.settle.gen {
				return nil
			}
			e.settle.timer = nil
			e.state.Transitioning = false
			return e.eventLocked(false)
		})
	})
}

func (e *Engine) snapshotLocked() domain.CarouselSnapshot {
	return domain.CarouselSnapshot{
		Name:         e.name,
		State:        e.state,
		AutoAdvance:  e.auto,
		MediaPlaying: e.playing,
		Count:        len(e.slides),
	}
}

func (e *Engine) eventLocked(auto bool) *domain.SlideEvent {
	return &domain.SlideEvent{
		EventBase: domain.EventBase{
			Timestamp: e.clock.Now(),
			Type:      domain.EventSlideChange,
			SessionID: e.sessionID,
		},
		Carousel: e.name,
		Snapshot: e.snapshotLocked(),
		Auto:     auto,
	}
}

// do runs fn under the lock and fires the resulting event after releasing it,
// so hooks may read the engine without deadlocking.
func (e *Engine) do(fn func() *domain.SlideEvent) {
	e.mu.Lock()
	ev := fn()
	e.mu.Unlock()
	if ev != nil && e.hooks.OnChange != nil {
		e.hooks.OnChange(context.Background(), ev)
	}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
