package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

func newTestGame(t *testing.T) (*Game, *core.ManualTime) {
	t.Helper()
	src := core.NewManualTime(time.Unix(1_700_000_000, 0))
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 99, ScreenW: 80, ScreenH: 30, Time: src})
	return g, src
}

func TestRegistered(t *testing.T) {
	g, err := registry.Create("tetris")
	require.NoError(t, err)
	assert.Equal(t, "tetris", g.ID())
	assert.Equal(t, "Tetris", g.Title())
}

func TestConfirmStartsGame(t *testing.T) {
	g, _ := newTestGame(t)
	assert.True(t, g.State().NewGame())

	g.Handle(core.ActionConfirm)
	st := g.State()
	assert.Equal(t, core.PhaseRunning, st.Phase)
	assert.Equal(t, 1, st.Level)
}

func TestHandleRoutesIntents(t *testing.T) {
	g, _ := newTestGame(t)
	g.Handle(core.ActionConfirm)
	e := g.Engine()
	place(e, Piece{Kind: KindT, Col: 4, Row: 5})

	g.Handle(core.ActionLeft)
	assert.Equal(t, 3, e.Current().Col)
	g.Handle(core.ActionRight)
	g.Handle(core.ActionRight)
	assert.Equal(t, 5, e.Current().Col)

	g.Handle(core.ActionUp)
	assert.Equal(t, 1, e.Current().Rotation)
	g.Handle(core.ActionRotateCCW)
	assert.Equal(t, 0, e.Current().Rotation)

	g.Handle(core.ActionDown)
	assert.InDelta(t, 25.0, e.ClockRate(), 1e-9)
	g.Handle(core.ActionSoftDropEnd)
	assert.InDelta(t, 1.0, e.ClockRate(), 1e-9)

	g.Handle(core.ActionPause)
	assert.True(t, g.State().Paused())
	g.Handle(core.ActionPause)
	assert.False(t, g.State().Paused())
}

func TestUpdateReportsCycles(t *testing.T) {
	g, src := newTestGame(t)
	g.Handle(core.ActionConfirm)

	src.Advance(2 * time.Second)
	res := g.Update()
	assert.Equal(t, 2, res.Cycles)
	assert.Equal(t, core.PhaseRunning, res.State.Phase)
}

func TestRenderPhases(t *testing.T) {
	g, _ := newTestGame(t)
	scr := core.NewScreen(80, 30)

	g.Render(scr)
	assert.Contains(t, scr.String(), "Press Enter to Play")

	g.Handle(core.ActionConfirm)
	g.Render(scr)
	out := scr.String()
	assert.Contains(t, out, "Next Piece:")
	assert.Contains(t, out, "█")
	assert.NotContains(t, out, "Press Enter")

	g.Handle(core.ActionPause)
	g.Render(scr)
	assert.Contains(t, scr.String(), "Press P to Resume")

	small := core.NewScreen(30, 12)
	g.Render(small)
	assert.Contains(t, small.String(), "Window too small")
}
