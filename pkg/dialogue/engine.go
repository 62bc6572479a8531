package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/vitrine/internal/logging"
	"github.com/aretw0/vitrine/pkg/clock"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/ports"
)

// Delays controls conversational pacing.
type Delays struct {
	// Typing is how long the typing indicator shows before a bot prompt appears.
	Typing time.Duration `yaml:"typing"`
	// Transition is the pause between the visitor's echo and entering the next node.
	Transition time.Duration `yaml:"transition"`
	// Action is the pause before an effect is dispatched, so the visitor can read their echo.
	Action time.Duration `yaml:"action"`
}

// DefaultDelays returns the pacing used by the site widget.
func DefaultDelays() Delays {
	return Delays{
		Typing:     800 * time.Millisecond,
		Transition: 1000 * time.Millisecond,
		Action:     1500 * time.Millisecond,
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock injects the time source (defaults to the wall clock).
func WithClock(c ports.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithDelays overrides the pacing.
func WithDelays(d Delays) Option {
	return func(e *Engine) {
		e.delays = d
	}
}

// WithEffectHandler sets the interpreter for terminal effects.
func WithEffectHandler(h ports.EffectHandler) Option {
	return func(e *Engine) {
		e.effects = h
	}
}

// WithHooks registers observability hooks.
func WithHooks(h domain.DialogueHooks) Option {
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

// WithSessionID tags emitted events with the owning session.
func WithSessionID(id string) Option {
	return func(e *Engine) {
		e.sessionID = id
	}
}

// Engine walks a Graph for one visitor.
// Safe for concurrent use; timer callbacks and caller operations are serialized.
type Engine struct {
	graph     *Graph
	clock     ports.Clock
	delays    Delays
	effects   ports.EffectHandler
	hooks     domain.DialogueHooks
	logger    *slog.Logger
	sessionID string

	mu       sync.Mutex
	current  domain.Node
	messages []domain.Message
	typing   bool
	started  bool
	closed   bool
	pending  ports.Timer
	gen      uint64
}

// New creates an engine positioned at the graph root. Call Start to greet the visitor.
func New(g *Graph, opts ...Option) *Engine {
	e := &Engine{
		graph:   g,
		clock:   clock.New(),
		delays:  DefaultDelays(),
		effects: ports.EffectHandlerFunc(func(context.Context, domain.Effect) error { return nil }),
		logger:  logging.NewNop(),
		current: g.Root(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.sessionID != "" {
		e.logger = e.logger.With("session_id", e.sessionID)
	}
	return e
}

// Start enters the root node: the typing indicator shows, then the root prompt
// is appended as the first bot message.
func (e *Engine) Start() error {
	var err error
	e.do(func() []func() {
		if e.closed {
			err = domain.ErrClosed
			return nil
		}
		if e.started {
			return nil
		}
		e.started = true
		return e.enterLocked(e.graph.Root())
	})
	return err
}

// Select chooses option index on the current node.
// The visitor's echo is appended immediately; the outcome follows after a delay.
func (e *Engine) Select(ctx context.Context, index int) error {
	var err error
	e.do(func() []func() {
		switch {
		case e.closed:
			err = domain.ErrClosed
			return nil
		case !e.started:
			err = fmt.Errorf("%w: conversation not started", domain.ErrBusy)
			return nil
		case e.pending != nil:
			err = domain.ErrBusy
			return nil
		}

		outcome, rerr := Resolve(e.graph, e.current.ID, index)
		if rerr != nil {
			err = rerr
			return nil
		}

		msg := e.appendLocked(outcome.Option.Label, false)
		selected := e.event(domain.EventOptionSelected)
		selected.NodeID = e.current.ID
		selected.Option = outcome.Option.Label
		echo := e.event(domain.EventMessage)
		echo.Message = &msg
		emits := []func(){
			e.fire(e.hooks.OnOptionSelected, selected),
			e.fire(e.hooks.OnMessage, echo),
		}

		if outcome.IsEffect() {
			e.scheduleLocked(e.delays.Action, func() []func() {
				return e.dispatchLocked(context.WithoutCancel(ctx), *outcome.Effect)
			})
			return emits
		}

		e.scheduleLocked(e.delays.Transition, func() []func() {
			var out []func()
			if outcome.Fallback {
				e.logger.Warn("unresolved dialogue node, falling back to root",
					"from", e.current.ID, "next", outcome.Option.Next, "root", e.graph.RootID())
				fb := e.event(domain.EventFallback)
				fb.NodeID = outcome.Option.Next
				out = append(out, e.fire(e.hooks.OnFallback, fb))
			}
			return append(out, e.enterLocked(outcome.Target)...)
		})
		return emits
	})
	return err
}

// Typing reports whether a bot message is pending.
func (e *Engine) Typing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.typing
}

// Busy reports whether any delayed step is pending. Selections are rejected while busy.
func (e *Engine) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending != nil
}

// Current returns the active node.
func (e *Engine) Current() domain.Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Messages returns a copy of the transcript.
func (e *Engine) Messages() []domain.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.Message, len(e.messages))
	copy(out, e.messages)
	return out
}

// Snapshot returns a read-only copy of the session.
func (e *Engine) Snapshot() domain.ConversationSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	msgs := make([]domain.Message, len(e.messages))
	copy(msgs, e.messages)
	return domain.ConversationSnapshot{
		Node:     e.current.View(),
		Messages: msgs,
		Typing:   e.typing,
		Busy:     e.pending != nil,
	}
}

// Close cancels any pending step and clears the transcript.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	e.cancelLocked()
	e.typing = false
	e.messages = nil
	return nil
}

// enterLocked makes node current and schedules its prompt behind the typing indicator.
func (e *Engine) enterLocked(node domain.Node) []func() {
	e.current = node
	e.typing = true

	view := node.View()
	enter := e.event(domain.EventNodeEnter)
	enter.NodeID = node.ID
	enter.Node = &view
	typing := e.event(domain.EventTyping)
	typing.Typing = true

	e.scheduleLocked(e.delays.Typing, func() []func() {
		e.typing = false
		msg := e.appendLocked(node.Text, true)
		ev := e.event(domain.EventMessage)
		ev.NodeID = node.ID
		ev.Message = &msg
		done := e.event(domain.EventTyping)
		done.Typing = false
		return []func(){
			e.fire(e.hooks.OnMessage, ev),
			e.fire(e.hooks.OnTyping, done),
		}
	})

	return []func(){
		e.fire(e.hooks.OnNodeEnter, enter),
		e.fire(e.hooks.OnTyping, typing),
	}
}

// dispatchLocked hands the effect to the host. The handler runs after the lock is released.
func (e *Engine) dispatchLocked(ctx context.Context, eff domain.Effect) []func() {
	ev := e.event(domain.EventEffect)
	ev.NodeID = e.current.ID
	ev.Effect = &eff
	ev.Href = eff.Href()
	handler := e.effects
	logger := e.logger
	return []func(){
		e.fire(e.hooks.OnEffect, ev),
		func() {
			if err := handler.HandleEffect(ctx, eff); err != nil {
				logger.Warn("effect handler failed", "kind", eff.Kind, "href", eff.Href(), "err", err)
			}
		},
	}
}

// scheduleLocked arms the single pending step. Stale callbacks are dropped by generation.
func (e *Engine) scheduleLocked(d time.Duration, step func() []func()) {
	e.cancelLocked()
	gen := e.gen
	e.pending = e.clock.AfterFunc(d, func() {
		e.do(func() []func() {
			if e.closed || gen != e.gen {
				return nil
			}
			e.pending = nil
			return step()
		})
	})
}

func (e *Engine) cancelLocked() {
	e.gen++
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
}

func (e *Engine) appendLocked(text string, fromBot bool) domain.Message {
	msg := domain.Message{Text: text, FromBot: fromBot, Timestamp: e.clock.Now()}
	e.messages = append(e.messages, msg)
	return msg
}

func (e *Engine) event(t domain.EventType) *domain.DialogueEvent {
	return &domain.DialogueEvent{
		EventBase: domain.EventBase{
			Timestamp: e.clock.Now(),
			Type:      t,
			SessionID: e.sessionID,
		},
	}
}

func (e *Engine) fire(hook func(context.Context, *domain.DialogueEvent), ev *domain.DialogueEvent) func() {
	return func() {
		if hook != nil {
			hook(context.Background(), ev)
		}
	}
}

// do runs fn under the lock and then runs the returned emits without it,
// so hooks and effect handlers may call back into the engine.
func (e *Engine) do(fn func() []func()) {
	e.mu.Lock()
	emits := fn()
	e.mu.Unlock()
	for _, emit := range emits {
		emit()
	}
}
