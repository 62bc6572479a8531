package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/vitrine/pkg/carousel"
	"github.com/aretw0/vitrine/pkg/clock"
	"github.com/aretw0/vitrine/pkg/dialogue"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/observability"
)

func TestMetrics_CarouselHooks(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())
	c := clock.NewManual(time.Unix(0, 0))

	slides := []domain.Slide{
		{Kind: domain.SlideText, Title: "a"},
		{Kind: domain.SlideText, Title: "b"},
	}
	e, err := carousel.New(slides,
		carousel.WithName("hero"),
		carousel.WithClock(c),
		carousel.WithHooks(m.CarouselHooks()),
	)
	require.NoError(t, err)
	defer e.Close()

	e.Start()
	c.Advance(10 * time.Second) // auto tick
	e.Next()                    // manual
	c.Advance(time.Second)      // settle only

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlideChanges.WithLabelValues("hero", "auto")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlideChanges.WithLabelValues("hero", "manual")))
}

func TestMetrics_DialogueHooks(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())
	c := clock.NewManual(time.Unix(0, 0))

	g, err := dialogue.NewGraph("root", []domain.Node{
		{ID: "root", Text: "hi", Options: []domain.Option{
			{Label: "call", Effect: &domain.Effect{Kind: domain.EffectDial, Phone: "+1"}},
			{Label: "lost", Next: "nowhere"},
		}},
	})
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	hooks := domain.MergeDialogueHooks(m.DialogueHooks(), observability.LogDialogueHooks(logger))

	e := dialogue.New(g, dialogue.WithClock(c), dialogue.WithHooks(hooks))
	defer e.Close()

	require.NoError(t, e.Start())
	c.Advance(time.Second)
	require.NoError(t, e.Select(context.Background(), 1))
	c.Advance(2 * time.Second)
	require.NoError(t, e.Select(context.Background(), 0))
	c.Advance(2 * time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.NodeVisits.WithLabelValues("root")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Selections.WithLabelValues("root")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Fallbacks.WithLabelValues("nowhere")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Effects.WithLabelValues("dial")))

	assert.Contains(t, logs.String(), "msg=effect")
	assert.Contains(t, logs.String(), "href=tel:+1")
}

func TestMetrics_Sessions(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())
	m.SessionOpened("chat")
	m.SessionOpened("chat")
	m.SessionClosed("chat")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Sessions.WithLabelValues("chat")))
}
