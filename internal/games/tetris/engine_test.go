package tetris

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

func newTestEngine(t *testing.T) (*Engine, *core.ManualTime) {
	t.Helper()
	src := core.NewManualTime(time.Unix(1_700_000_000, 0))
	e := NewEngine(DefaultTuning(), rand.New(rand.NewSource(42)), src)
	require.Equal(t, core.PhaseNotStarted, e.Phase())
	e.Start()
	require.Equal(t, core.PhaseRunning, e.Phase())
	return e, src
}

func place(e *Engine, p Piece) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.current = p
}

func fill(e *Engine, row int, cols ...int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range cols {
		e.board[row][c] = Cell{Kind: KindZ, Filled: true}
	}
}

func TestNewEngineWaitsForStart(t *testing.T) {
	src := core.NewManualTime(time.Unix(0, 0))
	e := NewEngine(DefaultTuning(), rand.New(rand.NewSource(1)), src)

	src.Advance(5 * time.Second)
	assert.Equal(t, 0, e.Advance())
	e.MoveLeft()
	e.SoftDropStart()
	assert.Equal(t, core.PhaseNotStarted, e.Phase())
	assert.InDelta(t, 1.0, e.ClockRate(), 1e-9)
}

func TestStartSpawnsAtSpawnPosition(t *testing.T) {
	e, _ := newTestEngine(t)
	p := e.Current()
	assert.Equal(t, p.Kind.SpawnCol(), p.Col)
	assert.Equal(t, p.Kind.SpawnRow(), p.Row)
	assert.Equal(t, 0, p.Rotation)
	assert.Equal(t, 1, e.Level())
	assert.Equal(t, 0, e.Score())
}

func TestLateralMovesRejectedAtWalls(t *testing.T) {
	e, _ := newTestEngine(t)

	place(e, Piece{Kind: KindI, Col: 0, Row: 5})
	e.MoveLeft()
	assert.Equal(t, 0, e.Current().Col)

	place(e, Piece{Kind: KindI, Col: 6, Row: 5})
	e.MoveRight()
	assert.Equal(t, 6, e.Current().Col)

	e.MoveLeft()
	assert.Equal(t, 5, e.Current().Col)
}

func TestLateralMoveRejectedByLockedCell(t *testing.T) {
	e, _ := newTestEngine(t)
	place(e, Piece{Kind: KindO, Col: 4, Row: 10})
	fill(e, 11, 3)

	e.MoveLeft()
	assert.Equal(t, 4, e.Current().Col)
}

func TestRotationKicksOffLeftWall(t *testing.T) {
	e, _ := newTestEngine(t)
	// Vertical I in the third mask column, flush with the left wall.
	place(e, Piece{Kind: KindI, Col: -2, Row: 5, Rotation: 1})
	require.True(t, e.IsValidAndEmpty(KindI, -2, 5, 1))

	e.RotateCW()
	p := e.Current()
	assert.Equal(t, 2, p.Rotation)
	assert.Equal(t, 0, p.Col)
	assert.Equal(t, 5, p.Row)
}

func TestRotationKicksOffRightWall(t *testing.T) {
	e, _ := newTestEngine(t)
	place(e, Piece{Kind: KindI, Col: 7, Row: 5, Rotation: 1})
	require.True(t, e.IsValidAndEmpty(KindI, 7, 5, 1))

	e.RotateCCW()
	p := e.Current()
	assert.Equal(t, 0, p.Rotation)
	assert.Equal(t, 6, p.Col)
}

func TestBlockedKickRejectsRotation(t *testing.T) {
	e, _ := newTestEngine(t)
	place(e, Piece{Kind: KindI, Col: -2, Row: 5, Rotation: 1})
	fill(e, 7, 1)

	e.RotateCW()
	p := e.Current()
	assert.Equal(t, 1, p.Rotation)
	assert.Equal(t, -2, p.Col)
}

func TestRotationKicksOffFloor(t *testing.T) {
	e, _ := newTestEngine(t)
	// Horizontal I lying on the floor: its occupied row is the last board row.
	place(e, Piece{Kind: KindI, Col: 3, Row: 20, Rotation: 0})
	require.True(t, e.IsValidAndEmpty(KindI, 3, 20, 0))

	e.RotateCW()
	p := e.Current()
	assert.Equal(t, 1, p.Rotation)
	assert.Equal(t, Rows-4, p.Row)
}

func TestODropLocksExactlyFourCells(t *testing.T) {
	e, _ := newTestEngine(t)
	place(e, Piece{Kind: KindO, Col: KindO.SpawnCol(), Row: KindO.SpawnRow()})
	require.Equal(t, 0, e.FilledCount())

	steps := 0
	for !e.Step() {
		steps++
		require.Less(t, steps, Rows, "piece never locked")
	}

	assert.Equal(t, Rows-2, steps)
	assert.Equal(t, 4, e.FilledCount())
	for _, c := range [][2]int{{4, 20}, {5, 20}, {4, 21}, {5, 21}} {
		assert.True(t, e.CellAt(c[0], c[1]).Filled, "cell %v", c)
		assert.Equal(t, KindO, e.CellAt(c[0], c[1]).Kind)
	}
	assert.Equal(t, 0, e.Score())
	assert.Equal(t, core.PhaseRunning, e.Phase())
}

func TestSingleLineClearScoresOneHundred(t *testing.T) {
	e, _ := newTestEngine(t)
	fill(e, 21, 4, 5, 6, 7, 8, 9)
	fill(e, 20, 9)
	place(e, Piece{Kind: KindI, Col: 0, Row: 20})

	require.True(t, e.Step())
	assert.Equal(t, 100, e.Score())
	assert.Equal(t, 1, e.Snapshot().Lines)

	// The lone cell above the cleared row shifts down.
	assert.Equal(t, 1, e.FilledCount())
	assert.True(t, e.CellAt(9, 21).Filled)
	assert.False(t, e.CellAt(9, 20).Filled)
}

func TestDoubleLineClearScoresTwoHundred(t *testing.T) {
	e, _ := newTestEngine(t)
	for _, row := range []int{20, 21} {
		fill(e, row, 0, 1, 2, 3, 4, 5, 6, 7)
	}
	place(e, Piece{Kind: KindO, Col: 8, Row: 20})

	require.True(t, e.Step())
	assert.Equal(t, 200, e.Score())
	assert.Equal(t, 0, e.FilledCount())
}

func TestLockRaisesSpeedAndStartsCooldown(t *testing.T) {
	e, _ := newTestEngine(t)
	place(e, Piece{Kind: KindO, Col: 0, Row: 20})

	require.True(t, e.Step())
	tune := DefaultTuning()
	assert.InDelta(t, tune.BaseSpeed+tune.SpeedStep, e.Speed(), 1e-9)
	assert.InDelta(t, e.Speed(), e.ClockRate(), 1e-9)
	assert.Equal(t, tune.DropCooldownFrames, e.DropCooldown())
	assert.Equal(t, 1, e.Level())

	e.SoftDropStart()
	assert.InDelta(t, e.Speed(), e.ClockRate(), 1e-9, "soft drop refused during cooldown")

	// One tick per frame.
	for i := range tune.DropCooldownFrames {
		e.Advance()
		require.Equal(t, tune.DropCooldownFrames-i-1, e.DropCooldown())
	}
	e.Advance()
	assert.Equal(t, 0, e.DropCooldown())
	e.SoftDropStart()
	assert.InDelta(t, tune.SoftDropRate, e.ClockRate(), 1e-9)
}

func TestSoftDropRateAndRelease(t *testing.T) {
	e, src := newTestEngine(t)

	e.SoftDropStart()
	assert.InDelta(t, 25.0, e.ClockRate(), 1e-9)
	assert.True(t, e.Snapshot().SoftDrop)

	row := e.Current().Row
	src.Advance(120 * time.Millisecond)
	assert.Equal(t, 3, e.Advance())
	assert.Equal(t, row+3, e.Current().Row)

	e.SoftDropEnd()
	assert.InDelta(t, 1.0, e.ClockRate(), 1e-9)
	assert.False(t, e.Snapshot().SoftDrop)
}

func TestAdvanceDrainsOwedCycles(t *testing.T) {
	e, src := newTestEngine(t)
	row := e.Current().Row

	src.Advance(500 * time.Millisecond)
	assert.Equal(t, 0, e.Advance())

	src.Advance(2600 * time.Millisecond)
	assert.Equal(t, 3, e.Advance())
	assert.Equal(t, row+3, e.Current().Row)
}

func TestPauseFreezesGame(t *testing.T) {
	e, src := newTestEngine(t)
	before := e.Current()

	e.TogglePause()
	require.Equal(t, core.PhasePaused, e.Phase())

	src.Advance(10 * time.Second)
	assert.Equal(t, 0, e.Advance())
	e.MoveLeft()
	e.RotateCW()
	assert.Equal(t, before, e.Current())

	e.TogglePause()
	assert.Equal(t, core.PhaseRunning, e.Phase())
	assert.Equal(t, 0, e.Advance(), "paused time is discarded")
}

func TestBlockedSpawnEndsGame(t *testing.T) {
	e, src := newTestEngine(t)
	for row := range 3 {
		fill(e, row, 3, 4, 5, 6)
	}
	place(e, Piece{Kind: KindO, Col: 0, Row: 20})

	require.True(t, e.Step())
	assert.Equal(t, core.PhaseGameOver, e.Phase())

	src.Advance(5 * time.Second)
	assert.Equal(t, 0, e.Advance())
	assert.False(t, e.Step())

	e.Start()
	assert.Equal(t, core.PhaseRunning, e.Phase())
	assert.Equal(t, 0, e.FilledCount())
}

func TestStartIgnoredWhileRunning(t *testing.T) {
	e, _ := newTestEngine(t)
	place(e, Piece{Kind: KindO, Col: 0, Row: 20})
	require.True(t, e.Step())

	e.Start()
	assert.Equal(t, 4, e.FilledCount())
}

func TestResetIsIdempotent(t *testing.T) {
	e, _ := newTestEngine(t)
	fill(e, 21, 0, 1, 2)
	place(e, Piece{Kind: KindO, Col: 6, Row: 20})
	require.True(t, e.Step())

	e.Reset()
	first := e.Snapshot()
	e.Reset()
	second := e.Snapshot()

	for _, s := range []Snapshot{first, second} {
		assert.Equal(t, 0, s.Score)
		assert.Equal(t, 1, s.Level)
		assert.Equal(t, 0, s.Lines)
		assert.Equal(t, core.PhaseRunning, s.Phase)
		assert.InDelta(t, 1.0, s.Speed, 1e-9)
		assert.Equal(t, [Rows][Cols]Cell{}, s.Board)
	}
	assert.Equal(t, 0, e.FilledCount())
}

func TestGhostRowRestsOnStack(t *testing.T) {
	e, _ := newTestEngine(t)
	place(e, Piece{Kind: KindO, Col: 4, Row: 0})
	assert.Equal(t, 20, e.GhostRow())

	fill(e, 15, 5)
	assert.Equal(t, 13, e.GhostRow())

	s := e.Snapshot()
	for _, c := range s.GhostCells() {
		assert.Less(t, c.Y, 15)
	}
}

func TestSameSeedSamePieces(t *testing.T) {
	a, _ := newTestEngine(t)
	b, _ := newTestEngine(t)
	for range 20 {
		require.Equal(t, a.Current().Kind, b.Current().Kind)
		require.Equal(t, a.Next(), b.Next())
		place(a, Piece{Kind: KindO, Col: 0, Row: 20})
		place(b, Piece{Kind: KindO, Col: 0, Row: 20})
		a.Step()
		b.Step()
		a.Reset()
		b.Reset()
	}
}
