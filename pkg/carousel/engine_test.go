package carousel_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/vitrine/pkg/carousel"
	"github.com/aretw0/vitrine/pkg/clock"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func slides(n int) []domain.Slide {
	out := make([]domain.Slide, n)
	for i := range out {
		out[i] = domain.Slide{Kind: domain.SlideText, Title: "slide"}
	}
	return out
}

func policy() domain.AutoAdvancePolicy {
	return domain.AutoAdvancePolicy{
		Enabled:            true,
		Interval:           10 * time.Second,
		ResumeDelay:        18 * time.Second,
		TransitionDuration: 500 * time.Millisecond,
		SwipeThreshold:     50,
	}
}

func newEngine(t *testing.T, n int) (*carousel.Engine, *clock.Manual) {
	t.Helper()
	c := clock.NewManual(epoch)
	e, err := carousel.New(slides(n), carousel.WithClock(c), carousel.WithPolicy(policy()), carousel.WithName("hero"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e, c
}

func TestNew_NoSlides(t *testing.T) {
	_, err := carousel.New(nil)
	assert.ErrorIs(t, err, domain.ErrNoSlides)
}

func TestEngine_WraparoundInvariant(t *testing.T) {
	for n := 1; n <= 6; n++ {
		e, _ := newEngine(t, n)
		moves := []bool{true, true, false, false, false, true, false, false, false, false, true}
		for _, forward := range moves {
			if forward {
				e.Next()
			} else {
				e.Prev()
			}
			idx := e.Snapshot().State.ActiveIndex
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, n)
		}
	}
}

func TestEngine_NextNTimesIsCyclic(t *testing.T) {
	e, _ := newEngine(t, 4)
	e.GoTo(2)
	for i := 0; i < 4; i++ {
		e.Next()
	}
	assert.Equal(t, 2, e.Snapshot().State.ActiveIndex)
}

func TestEngine_PrevFromZeroWraps(t *testing.T) {
	e, _ := newEngine(t, 4)
	e.Prev()
	assert.Equal(t, 3, e.Snapshot().State.ActiveIndex)
}

func TestEngine_GoToClamps(t *testing.T) {
	e, _ := newEngine(t, 4)

	e.GoTo(99)
	assert.Equal(t, 3, e.Snapshot().State.ActiveIndex)

	e.GoTo(-5)
	assert.Equal(t, 0, e.Snapshot().State.ActiveIndex)
}

func TestEngine_TransitionSettles(t *testing.T) {
	e, c := newEngine(t, 3)

	e.Next()
	assert.True(t, e.Snapshot().State.Transitioning)

	c.Advance(499 * time.Millisecond)
	assert.True(t, e.Snapshot().State.Transitioning)

	c.Advance(time.Millisecond)
	assert.False(t, e.Snapshot().State.Transitioning)

	e.Next()
	e.Settle()
	assert.False(t, e.Snapshot().State.Transitioning, "explicit settle clears the flag")
}

func TestEngine_AutoAdvance(t *testing.T) {
	e, c := newEngine(t, 3)
	e.Start()

	c.Advance(10 * time.Second)
	assert.Equal(t, 1, e.Snapshot().State.ActiveIndex)

	c.Advance(20 * time.Second)
	assert.Equal(t, 0, e.Snapshot().State.ActiveIndex)
	assert.True(t, e.Snapshot().AutoAdvance, "auto-advance does not suppress itself")
}

func TestEngine_NoAdvanceBeforeStart(t *testing.T) {
	e, c := newEngine(t, 3)
	c.Advance(time.Minute)
	assert.Equal(t, 0, e.Snapshot().State.ActiveIndex)
}

func TestEngine_InteractionDebounce(t *testing.T) {
	e, c := newEngine(t, 5)
	e.Start()

	e.Next() // index 1, suppressed until t=18s
	assert.False(t, e.Snapshot().AutoAdvance)

	c.Advance(10 * time.Second)
	e.Next() // index 2, resume rescheduled to t=28s
	c.Advance(10 * time.Second) // t=20s: old resume would have fired at 18s
	assert.False(t, e.Snapshot().AutoAdvance, "second interaction resets the resume timer")
	assert.Equal(t, 2, e.Snapshot().State.ActiveIndex)

	c.Advance(8 * time.Second) // t=28s
	assert.True(t, e.Snapshot().AutoAdvance)
	assert.Equal(t, 2, e.Snapshot().State.ActiveIndex)

	c.Advance(10 * time.Second) // first tick after resume
	assert.Equal(t, 3, e.Snapshot().State.ActiveIndex)
}

func TestEngine_MediaPlaybackSuppressesIndefinitely(t *testing.T) {
	e, c := newEngine(t, 3)
	e.Start()

	e.SetMediaPlaying(true)
	c.Advance(10 * time.Minute)
	assert.Equal(t, 0, e.Snapshot().State.ActiveIndex)
	assert.False(t, e.Snapshot().AutoAdvance)
	assert.True(t, e.Snapshot().MediaPlaying)

	e.SetMediaPlaying(false)
	assert.True(t, e.Snapshot().AutoAdvance, "pause re-enables immediately")

	c.Advance(10 * time.Second)
	assert.Equal(t, 1, e.Snapshot().State.ActiveIndex)
}

func TestEngine_ResumeDoesNotOverrideMedia(t *testing.T) {
	e, c := newEngine(t, 3)
	e.Start()

	e.Next()
	e.SetMediaPlaying(true)
	c.Advance(time.Minute)

	assert.False(t, e.Snapshot().AutoAdvance)
	assert.Equal(t, 1, e.Snapshot().State.ActiveIndex)
}

func TestEngine_DisabledPolicyNeverAdvances(t *testing.T) {
	c := clock.NewManual(epoch)
	p := policy()
	p.Enabled = false
	e, err := carousel.New(slides(3), carousel.WithClock(c), carousel.WithPolicy(p))
	require.NoError(t, err)
	defer e.Close()

	e.Start()
	e.Next()
	c.Advance(time.Minute)
	assert.Equal(t, 1, e.Snapshot().State.ActiveIndex)
	assert.False(t, e.Snapshot().AutoAdvance)
}

func TestEngine_CloseCancelsTimers(t *testing.T) {
	e, c := newEngine(t, 3)
	e.Start()
	e.Next()
	require.NoError(t, e.Close())

	assert.Zero(t, c.Pending())

	c.Advance(time.Minute)
	e.Next()
	assert.Equal(t, 1, e.Snapshot().State.ActiveIndex, "operations after close are no-ops")
}

func TestEngine_HooksReceiveChanges(t *testing.T) {
	c := clock.NewManual(epoch)
	var events []*domain.SlideEvent
	hooks := domain.CarouselHooks{
		OnChange: func(_ context.Context, ev *domain.SlideEvent) {
			events = append(events, ev)
		},
	}
	e, err := carousel.New(slides(2),
		carousel.WithClock(c),
		carousel.WithPolicy(policy()),
		carousel.WithHooks(hooks),
		carousel.WithName("testimonials"),
		carousel.WithSessionID("sess-1"),
	)
	require.NoError(t, err)
	defer e.Close()

	e.Start()
	c.Advance(10 * time.Second)

	require.NotEmpty(t, events)
	first := events[0]
	assert.Equal(t, "testimonials", first.Carousel)
	assert.Equal(t, "sess-1", first.SessionID)
	assert.True(t, first.Auto)
	assert.Equal(t, 1, first.Snapshot.State.ActiveIndex)
}
