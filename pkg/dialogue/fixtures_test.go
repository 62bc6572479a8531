package dialogue_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/vitrine/pkg/clock"
	"github.com/aretw0/vitrine/pkg/dialogue"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// recorder captures dispatched effects.
type recorder struct {
	mu      sync.Mutex
	effects []domain.Effect
}

func (r *recorder) HandleEffect(_ context.Context, eff domain.Effect) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects = append(r.effects, eff)
	return nil
}

func (r *recorder) got() []domain.Effect {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Effect(nil), r.effects...)
}

func testNodes() []domain.Node {
	return []domain.Node{
		{
			ID:   "root",
			Text: "Hi! How can I assist you today?",
			Options: []domain.Option{
				{Label: "I have a question", Next: "general-questions"},
				{Label: "Tell me more about your machines", Next: "machine-info"},
				{Label: "Buy a machine", Next: "buy-process"},
				{Label: "Buy spare parts", Next: "purchase-parts"},
			},
		},
		{
			ID:   "general-questions",
			Text: "What would you like to know?",
			Options: []domain.Option{
				{Label: "How can I buy a machine?", Next: "buy-process"},
				{Label: "Typo", Next: "does-not-exist"},
			},
		},
		{
			ID:   "buy-process",
			Text: "Online or at our store?",
			Options: []domain.Option{
				{Label: "Buy online", Effect: &domain.Effect{Kind: domain.EffectOpenURL, URL: "https://forms.gle/x"}},
				{Label: "Get store details", Effect: &domain.Effect{Kind: domain.EffectOpenURL, URL: "https://maps.app.goo.gl/y", NewTab: true}},
			},
		},
		{ID: "machine-info", Text: "We build brick machines.", Options: []domain.Option{{Label: "Back", Next: "root"}}},
		{ID: "purchase-parts", Text: "Parts?", Options: []domain.Option{{Label: "Back", Next: "root"}}},
	}
}

func newEngine(t *testing.T) (*dialogue.Engine, *clock.Manual, *recorder) {
	t.Helper()
	g, err := dialogue.NewGraph("root", testNodes())
	require.NoError(t, err)
	c := clock.NewManual(epoch)
	rec := &recorder{}
	e := dialogue.New(g,
		dialogue.WithClock(c),
		dialogue.WithEffectHandler(rec),
		dialogue.WithSessionID("sess-test"),
	)
	t.Cleanup(func() { _ = e.Close() })
	return e, c, rec
}

// started returns an engine whose root prompt has already been shown.
func started(t *testing.T) (*dialogue.Engine, *clock.Manual, *recorder) {
	t.Helper()
	e, c, rec := newEngine(t)
	require.NoError(t, e.Start())
	c.Advance(800 * time.Millisecond)
	require.False(t, e.Busy())
	return e, c, rec
}
