package tetris

import "github.com/vovakirdan/grid-arcade/internal/core"

// Snapshot is a consistent copy of everything a renderer may read,
// taken under the engine lock.
type Snapshot struct {
	Board        [Rows][Cols]Cell
	Current      Piece
	Next         Kind
	GhostRow     int
	Score        int
	Level        int
	Lines        int
	Speed        float64
	DropCooldown int
	SoftDrop     bool
	Phase        core.Phase
}

// Snapshot returns the current engine state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		Board:        e.board,
		Current:      e.current,
		Next:         e.next,
		Score:        e.score,
		Level:        e.level,
		Lines:        e.lines,
		Speed:        e.speed,
		DropCooldown: e.dropCooldown,
		SoftDrop:     e.softDrop,
		Phase:        e.phase,
	}
	if e.phase == core.PhaseRunning || e.phase == core.PhasePaused {
		s.GhostRow = e.ghostRow()
	}
	return s
}

// PieceCells returns the board coordinates occupied by the current piece.
func (s Snapshot) PieceCells() []core.Point {
	return placed(s.Current.Kind, s.Current.Col, s.Current.Row, s.Current.Rotation)
}

// GhostCells returns the board coordinates of the landing preview.
func (s Snapshot) GhostCells() []core.Point {
	return placed(s.Current.Kind, s.Current.Col, s.GhostRow, s.Current.Rotation)
}

func placed(k Kind, col, row, rotation int) []core.Point {
	cells := k.Cells(rotation)
	for i := range cells {
		cells[i] = cells[i].Add(col, row)
	}
	return cells
}
