package loop

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/games/snake"
	"github.com/vovakirdan/grid-arcade/internal/games/tetris"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

func manualClock() *core.ManualTime {
	return core.NewManualTime(time.Unix(1_700_000_000, 0))
}

func TestPacerSleepsRemainder(t *testing.T) {
	src := manualClock()
	p := NewPacer(50, src)
	require.Equal(t, 20*time.Millisecond, p.Frame())

	start := p.Now()
	src.Advance(5 * time.Millisecond)
	require.NoError(t, p.Wait(context.Background(), start))
	assert.Equal(t, 20*time.Millisecond, p.Now().Sub(start))
}

func TestPacerOverrunDoesNotSleep(t *testing.T) {
	src := manualClock()
	p := NewPacer(50, src)

	start := p.Now()
	src.Advance(35 * time.Millisecond)
	require.NoError(t, p.Wait(context.Background(), start))
	assert.Equal(t, 35*time.Millisecond, p.Now().Sub(start))
}

func TestPacerHonorsCancel(t *testing.T) {
	p := NewPacer(1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	began := time.Now()
	err := p.Wait(ctx, p.Now())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(began), 500*time.Millisecond)
}

func newTetris(src core.TimeSource) *tetris.Game {
	g := tetris.New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 30, FrameRate: 50, Seed: 3, Time: src})
	return g
}

func TestRunAppliesIntentsAndCountsCycles(t *testing.T) {
	src := manualClock()
	g := newTetris(src)

	intents := make(chan core.Action, 1)
	intents <- core.ActionConfirm

	st, err := Run(context.Background(), g, intents, Options{FrameRate: 50, MaxFrames: 100, Time: src})
	require.NoError(t, err)
	assert.Equal(t, uint64(100), st.Frames)
	assert.Equal(t, uint64(1), st.Cycles)
	assert.Equal(t, core.PhaseRunning, st.Phase)
	assert.Equal(t, 2*time.Second, st.Elapsed)
}

func TestRunStopsAtGameOver(t *testing.T) {
	src := manualClock()
	g := newTetris(src)

	intents := make(chan core.Action, 1)
	intents <- core.ActionConfirm
	close(intents)

	st, err := Run(context.Background(), g, intents, Options{FrameRate: 50, MaxFrames: 500_000, Time: src})
	require.NoError(t, err)
	assert.Equal(t, core.PhaseGameOver, st.Phase)
	assert.Less(t, st.Frames, uint64(500_000))
	assert.Positive(t, st.Cycles)
}

func TestRunWithoutStartDoesNothing(t *testing.T) {
	src := manualClock()
	g := snake.New()
	g.Reset(core.RuntimeConfig{Seed: 1, Time: src})

	st, err := Run(context.Background(), g, nil, Options{FrameRate: 50, MaxFrames: 50, Time: src})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), st.Cycles)
	assert.Equal(t, core.PhaseNotStarted, st.Phase)
}

func TestRunCancelled(t *testing.T) {
	src := manualClock()
	g := newTetris(src)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st, err := Run(ctx, g, nil, Options{FrameRate: 50, Time: src})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, uint64(1), st.Frames)
}

func TestSimulateStartsAndStops(t *testing.T) {
	src := manualClock()
	g := tetris.New()

	st, err := Simulate(context.Background(), g, SimOptions{
		Options:  Options{FrameRate: 50, MaxFrames: 20_000, Time: src},
		Seed:     11,
		Interval: time.Millisecond,
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, st.Frames, uint64(20_000))
	assert.NotEqual(t, core.PhaseNotStarted, st.Phase)
}

// recordingGame keeps every intent the loop hands to the game.
type recordingGame struct {
	registry.Game
	handled []core.Action
}

func (g *recordingGame) Handle(a core.Action) {
	g.handled = append(g.handled, a)
	g.Game.Handle(a)
}

func simulateRecorded(t *testing.T, game registry.Game, seed int64) ([]core.Action, Stats) {
	t.Helper()
	rec := &recordingGame{Game: game}
	st, err := Simulate(context.Background(), rec, SimOptions{
		Options:  Options{FrameRate: 50, MaxFrames: 3_000, Time: manualClock()},
		Seed:     seed,
		Interval: 100 * time.Millisecond,
	})
	require.NoError(t, err)
	return rec.handled, st
}

func TestSimulateManualClockReplaysIntents(t *testing.T) {
	first, st1 := simulateRecorded(t, tetris.New(), 21)
	second, st2 := simulateRecorded(t, tetris.New(), 21)

	// Confirm plus at least one press per 5 frames until the game ended.
	require.Greater(t, len(first), 10)
	assert.Equal(t, first, second)
	assert.Equal(t, st1, st2)
	assert.Equal(t, core.ActionConfirm, first[0])
}

func TestSimulatePressesAtInterval(t *testing.T) {
	src := manualClock()
	rec := &recordingGame{Game: snake.New()}
	st, err := Simulate(context.Background(), rec, SimOptions{
		Options:  Options{FrameRate: 50, MaxFrames: 50, Time: src},
		Seed:     4,
		Interval: 200 * time.Millisecond,
	})
	require.NoError(t, err)

	// 50 frames span 0..980ms of frame time: presses at 200, 400, 600 and 800ms.
	if st.Phase == core.PhaseRunning {
		assert.Len(t, rec.handled, 1+4)
	}
	for _, a := range rec.handled[1:] {
		assert.Contains(t, intentsFor("snake"), a)
	}
}

func TestAutopilotBatchesOwedPresses(t *testing.T) {
	ticks := make(chan time.Time)
	out := make(chan []core.Action)
	done := make(chan error, 1)
	go func() {
		done <- Autopilot(context.Background(), "snake", rand.New(rand.NewSource(1)), 10*time.Millisecond, ticks, out)
	}()

	base := time.Unix(0, 0)
	ticks <- base
	assert.Empty(t, <-out)
	ticks <- base.Add(35 * time.Millisecond)
	assert.Len(t, <-out, 3)
	ticks <- base.Add(39 * time.Millisecond)
	assert.Empty(t, <-out)
	ticks <- base.Add(40 * time.Millisecond)
	assert.Len(t, <-out, 1)

	close(ticks)
	require.NoError(t, <-done)
	_, open := <-out
	assert.False(t, open)
}

func TestIntentsFor(t *testing.T) {
	assert.Contains(t, intentsFor("tetris"), core.ActionRotateCW)
	assert.NotContains(t, intentsFor("snake"), core.ActionRotateCW)
	assert.Len(t, intentsFor("snake"), 4)
}
