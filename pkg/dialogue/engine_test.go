package dialogue_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/vitrine/pkg/clock"
	"github.com/aretw0/vitrine/pkg/dialogue"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_StartShowsRootAfterTypingDelay(t *testing.T) {
	e, c, _ := newEngine(t)
	require.NoError(t, e.Start())

	assert.True(t, e.Typing())
	assert.Empty(t, e.Messages())

	c.Advance(799 * time.Millisecond)
	assert.Empty(t, e.Messages())

	c.Advance(time.Millisecond)
	assert.False(t, e.Typing())
	msgs := e.Messages()
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].FromBot)
	assert.Equal(t, "Hi! How can I assist you today?", msgs[0].Text)
	assert.Equal(t, epoch.Add(800*time.Millisecond), msgs[0].Timestamp)
}

func TestEngine_BuyMachineScenario(t *testing.T) {
	e, c, rec := started(t)

	root := e.Current()
	require.Len(t, root.Options, 4)

	require.NoError(t, e.Select(context.Background(), 2))

	msgs := e.Messages()
	require.Len(t, msgs, 2, "user echo is appended immediately")
	assert.False(t, msgs[1].FromBot)
	assert.Equal(t, "Buy a machine", msgs[1].Text)
	assert.Equal(t, "root", e.Current().ID, "transition waits for its delay")

	c.Advance(1000 * time.Millisecond)
	assert.Equal(t, "buy-process", e.Current().ID)
	assert.True(t, e.Typing())

	c.Advance(800 * time.Millisecond)
	snap := e.Snapshot()
	assert.Equal(t, []string{"Buy online", "Get store details"}, snap.Node.Options)
	assert.Equal(t, "Online or at our store?", snap.Messages[len(snap.Messages)-1].Text)
	assert.False(t, snap.Busy)
	assert.Empty(t, rec.got(), "transition options never dispatch effects")
}

func TestEngine_EffectOptionDispatchesWithoutTransition(t *testing.T) {
	e, c, rec := started(t)
	require.NoError(t, e.Select(context.Background(), 2))
	c.Advance(1800 * time.Millisecond)

	require.NoError(t, e.Select(context.Background(), 1))
	c.Advance(1499 * time.Millisecond)
	assert.Empty(t, rec.got())

	c.Advance(time.Millisecond)
	effects := rec.got()
	require.Len(t, effects, 1)
	assert.Equal(t, "https://maps.app.goo.gl/y", effects[0].URL)
	assert.True(t, effects[0].NewTab)

	assert.Equal(t, "buy-process", e.Current().ID, "effects are terminal: no node change")
	assert.False(t, e.Busy())

	c.Advance(time.Minute)
	assert.Len(t, rec.got(), 1)
}

func TestEngine_UnknownNodeFallsBackToRoot(t *testing.T) {
	e, c, _ := started(t)
	require.NoError(t, e.Select(context.Background(), 0))
	c.Advance(1800 * time.Millisecond)
	require.Equal(t, "general-questions", e.Current().ID)

	require.NoError(t, e.Select(context.Background(), 1))
	c.Advance(1000 * time.Millisecond)
	assert.Equal(t, "root", e.Current().ID)

	c.Advance(800 * time.Millisecond)
	msgs := e.Messages()
	assert.Equal(t, "Hi! How can I assist you today?", msgs[len(msgs)-1].Text)
}

func TestEngine_SelectionRejectedWhileBusy(t *testing.T) {
	e, c, _ := newEngine(t)
	require.NoError(t, e.Start())

	assert.ErrorIs(t, e.Select(context.Background(), 0), domain.ErrBusy, "typing indicator blocks selection")

	c.Advance(800 * time.Millisecond)
	require.NoError(t, e.Select(context.Background(), 0))
	assert.ErrorIs(t, e.Select(context.Background(), 1), domain.ErrBusy, "pending transition blocks selection")

	assert.Len(t, e.Messages(), 2, "rejected selections do not echo")
}

func TestEngine_SelectBeforeStart(t *testing.T) {
	e, _, _ := newEngine(t)
	assert.ErrorIs(t, e.Select(context.Background(), 0), domain.ErrBusy)
}

func TestEngine_UnknownOption(t *testing.T) {
	e, _, _ := started(t)
	assert.ErrorIs(t, e.Select(context.Background(), 9), domain.ErrUnknownOption)
	assert.ErrorIs(t, e.Select(context.Background(), -1), domain.ErrUnknownOption)
	assert.Len(t, e.Messages(), 1)
}

func TestEngine_CloseCancelsPendingSteps(t *testing.T) {
	e, c, rec := started(t)
	require.NoError(t, e.Select(context.Background(), 2))
	c.Advance(1800 * time.Millisecond)
	require.NoError(t, e.Select(context.Background(), 0))

	require.NoError(t, e.Close())
	assert.Zero(t, c.Pending())

	c.Advance(time.Minute)
	assert.Empty(t, rec.got(), "effect scheduled before close never fires")
	assert.Empty(t, e.Messages(), "transcript cleared on teardown")
	assert.ErrorIs(t, e.Select(context.Background(), 0), domain.ErrClosed)
	assert.ErrorIs(t, e.Start(), domain.ErrClosed)
}

func TestEngine_HooksOrder(t *testing.T) {
	g, err := dialogue.NewGraph("root", testNodes())
	require.NoError(t, err)
	c := clock.NewManual(epoch)

	var seen []domain.EventType
	record := func(_ context.Context, ev *domain.DialogueEvent) { seen = append(seen, ev.Type) }
	hooks := domain.DialogueHooks{
		OnNodeEnter:      record,
		OnMessage:        record,
		OnTyping:         record,
		OnOptionSelected: record,
		OnEffect:         record,
		OnFallback:       record,
	}
	e := dialogue.New(g, dialogue.WithClock(c), dialogue.WithHooks(hooks))
	defer e.Close()

	require.NoError(t, e.Start())
	c.Advance(800 * time.Millisecond)
	require.NoError(t, e.Select(context.Background(), 2))
	c.Advance(1800 * time.Millisecond)
	require.NoError(t, e.Select(context.Background(), 0))
	c.Advance(1500 * time.Millisecond)

	assert.Equal(t, []domain.EventType{
		domain.EventNodeEnter, domain.EventTyping, // root
		domain.EventMessage, domain.EventTyping, // root prompt
		domain.EventOptionSelected, domain.EventMessage, // "Buy a machine"
		domain.EventNodeEnter, domain.EventTyping, // buy-process
		domain.EventMessage, domain.EventTyping, // buy-process prompt
		domain.EventOptionSelected, domain.EventMessage, // "Buy online"
		domain.EventEffect,
	}, seen)
}
