// Package tetris implements the falling-block puzzle game: a 10×22 board
// (20 visible rows plus 2 hidden spawn rows), seven tetromino kinds with
// boundary-kicked rotation, line clearing and speed progression.
package tetris

import (
	"math"
	"math/rand"
	"sync"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

// Board dimensions.
const (
	Cols        = 10
	VisibleRows = 20
	HiddenRows  = 2
	Rows        = VisibleRows + HiddenRows
)

// Tuning holds the rate constants of a game.
type Tuning struct {
	BaseSpeed          float64 // Gravity cycles per second at reset
	SpeedStep          float64 // Added to speed for every locked piece
	SoftDropRate       float64 // Cycle rate while soft drop is held
	DropCooldownFrames int     // Frames after a lock during which soft drop is refused
}

// DefaultTuning returns the standard rates.
func DefaultTuning() Tuning {
	return Tuning{
		BaseSpeed:          1.0,
		SpeedStep:          0.035,
		SoftDropRate:       25.0,
		DropCooldownFrames: 25,
	}
}

// Piece is the active falling piece. Col/Row anchor the top-left corner of
// its bounding box; Rotation is 0..3.
type Piece struct {
	Kind     Kind
	Col      int
	Row      int
	Rotation int
}

// Cell is a board cell; Filled is false for empty cells.
type Cell struct {
	Kind   Kind
	Filled bool
}

// Engine owns the board, the active and next piece, scoring and the cycle
// clock. All exported methods are safe for concurrent use.
type Engine struct {
	mu     sync.Mutex
	tuning Tuning
	rng    *rand.Rand
	clock  *core.CycleClock

	board        [Rows][Cols]Cell
	current      Piece
	next         Kind
	level        int
	score        int
	lines        int
	speed        float64
	dropCooldown int
	softDrop     bool
	phase        core.Phase
}

// NewEngine creates an engine in the not-started phase. The clock is paused
// until the first Start.
func NewEngine(tuning Tuning, rng *rand.Rand, ts core.TimeSource) *Engine {
	e := &Engine{
		tuning: tuning,
		rng:    rng,
		speed:  tuning.BaseSpeed,
		clock:  core.NewCycleClock(tuning.BaseSpeed, ts),
		phase:  core.PhaseNotStarted,
	}
	e.clock.SetPaused(true)
	return e
}

// Start begins a new game. It is a no-op unless the game is new or over.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != core.PhaseNotStarted && e.phase != core.PhaseGameOver {
		return
	}
	e.reset()
}

// Reset unconditionally clears the board and starts a fresh game.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

func (e *Engine) reset() {
	e.board = [Rows][Cols]Cell{}
	e.level = 1
	e.score = 0
	e.lines = 0
	e.speed = e.tuning.BaseSpeed
	e.dropCooldown = 0
	e.softDrop = false
	e.next = e.randomKind()
	e.phase = core.PhaseRunning
	e.clock.Reset()
	e.clock.SetRate(e.speed)
	e.spawn()
}

func (e *Engine) randomKind() Kind {
	return Kind(e.rng.Intn(KindCount))
}

// spawn promotes next to current and draws a new next. A spawn position that
// is already blocked ends the game.
func (e *Engine) spawn() {
	k := e.next
	e.current = Piece{Kind: k, Col: k.SpawnCol(), Row: k.SpawnRow()}
	e.next = e.randomKind()
	if !e.fits(e.current.Kind, e.current.Col, e.current.Row, e.current.Rotation) {
		e.phase = core.PhaseGameOver
		e.softDrop = false
		e.clock.SetPaused(true)
	}
}

// fits is the placement predicate: the occupied cells of kind at
// (col, row, rotation) lie inside the board and on empty cells.
func (e *Engine) fits(kind Kind, col, row, rotation int) bool {
	in := kind.Insets(rotation)
	dim := kind.Dimension()
	if col+in.Left < 0 || col+dim-1-in.Right >= Cols {
		return false
	}
	if row+in.Top < 0 || row+dim-1-in.Bottom >= Rows {
		return false
	}
	for y := range dim {
		for x := range dim {
			if kind.Occupied(x, y, rotation) && e.board[row+y][col+x].Filled {
				return false
			}
		}
	}
	return true
}

// IsValidAndEmpty reports whether a piece could be placed at the given position.
func (e *Engine) IsValidAndEmpty(kind Kind, col, row, rotation int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fits(kind, col, row, rotation&3)
}

// MoveLeft shifts the piece one column left if the target is free.
func (e *Engine) MoveLeft() { e.shift(-1) }

// MoveRight shifts the piece one column right if the target is free.
func (e *Engine) MoveRight() { e.shift(1) }

func (e *Engine) shift(dx int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != core.PhaseRunning {
		return
	}
	p := e.current
	if e.fits(p.Kind, p.Col+dx, p.Row, p.Rotation) {
		e.current.Col += dx
	}
}

// RotateCW rotates the piece clockwise.
func (e *Engine) RotateCW() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rotate((e.current.Rotation + 1) & 3)
}

// RotateCCW rotates the piece anticlockwise.
func (e *Engine) RotateCCW() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rotate((e.current.Rotation + 3) & 3)
}

// rotate turns the piece in place, kicking it back on-board when the new
// rotation would stick out of an edge. If the kicked position is blocked the
// rotation is rejected.
func (e *Engine) rotate(rotation int) {
	if e.phase != core.PhaseRunning {
		return
	}
	p := e.current
	col, row := kick(p.Kind, p.Col, p.Row, rotation)
	if e.fits(p.Kind, col, row, rotation) {
		e.current.Col = col
		e.current.Row = row
		e.current.Rotation = rotation
	}
}

// kick returns the position that keeps kind's occupied cells on the board
// at rotation, shifting by exactly the overflow on each axis.
func kick(kind Kind, col, row, rotation int) (int, int) {
	in := kind.Insets(rotation)
	dim := kind.Dimension()

	if left := col + in.Left; left < 0 {
		col -= left
	} else if right := col + dim - 1 - in.Right; right >= Cols {
		col -= right - (Cols - 1)
	}

	if top := row + in.Top; top < 0 {
		row -= top
	} else if bottom := row + dim - 1 - in.Bottom; bottom >= Rows {
		row -= bottom - (Rows - 1)
	}
	return col, row
}

// SoftDropStart raises the cycle rate while the drop key is held. It is
// refused during the post-lock cooldown.
func (e *Engine) SoftDropStart() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != core.PhaseRunning || e.dropCooldown > 0 {
		return
	}
	e.softDrop = true
	e.clock.SetRate(e.tuning.SoftDropRate)
}

// SoftDropEnd restores the gravity rate and discards cycles owed at the fast rate.
func (e *Engine) SoftDropEnd() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != core.PhaseRunning {
		return
	}
	e.softDrop = false
	e.clock.SetRate(e.speed)
	e.clock.Reset()
}

// TogglePause flips between running and paused.
func (e *Engine) TogglePause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.phase {
	case core.PhaseRunning:
		e.phase = core.PhasePaused
		e.clock.SetPaused(true)
	case core.PhasePaused:
		e.phase = core.PhaseRunning
		e.clock.SetPaused(false)
	}
}

// Step applies one gravity cycle and reports whether the piece locked.
func (e *Engine) Step() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, locked := e.step()
	return locked
}

// step moves the piece down or locks it. cleared is the number of lines
// removed by the lock.
func (e *Engine) step() (cleared int, locked bool) {
	if e.phase != core.PhaseRunning {
		return 0, false
	}
	p := e.current
	if e.fits(p.Kind, p.Col, p.Row+1, p.Rotation) {
		e.current.Row++
		return 0, false
	}

	e.lock(p)
	cleared = e.clearLines()
	if cleared > 0 {
		e.score += 50 << cleared
		e.lines += cleared
	}
	e.speed += e.tuning.SpeedStep
	e.softDrop = false
	e.clock.SetRate(e.speed)
	e.clock.Reset()
	e.dropCooldown = e.tuning.DropCooldownFrames
	e.level = int(math.Floor(e.speed * 1.70))
	e.spawn()
	return cleared, true
}

func (e *Engine) lock(p Piece) {
	for _, c := range p.Kind.Cells(p.Rotation) {
		e.board[p.Row+c.Y][p.Col+c.X] = Cell{Kind: p.Kind, Filled: true}
	}
}

// clearLines removes every complete row top to bottom, shifting the rows
// above it down by one.
func (e *Engine) clearLines() int {
	cleared := 0
	for row := range Rows {
		if !e.rowFull(row) {
			continue
		}
		for r := row; r > 0; r-- {
			e.board[r] = e.board[r-1]
		}
		e.board[0] = [Cols]Cell{}
		cleared++
	}
	return cleared
}

func (e *Engine) rowFull(row int) bool {
	for col := range Cols {
		if !e.board[row][col].Filled {
			return false
		}
	}
	return true
}

// Advance runs one frame: it updates the clock, executes every owed cycle and
// ticks the drop cooldown. It returns the number of cycles executed.
func (e *Engine) Advance() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clock.Update()
	n := 0
	for e.phase == core.PhaseRunning && e.clock.ConsumeCycle() {
		e.step()
		n++
	}
	if e.dropCooldown > 0 {
		e.dropCooldown--
	}
	return n
}

// GhostRow returns the lowest row the current piece could fall to.
func (e *Engine) GhostRow() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ghostRow()
}

func (e *Engine) ghostRow() int {
	p := e.current
	row := p.Row
	for e.fits(p.Kind, p.Col, row+1, p.Rotation) {
		row++
	}
	return row
}

// Phase returns the lifecycle phase.
func (e *Engine) Phase() core.Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Score returns the current score.
func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

// Level returns the current level.
func (e *Engine) Level() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.level
}

// Speed returns the gravity rate in cycles per second.
func (e *Engine) Speed() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.speed
}

// Current returns the active piece.
func (e *Engine) Current() Piece {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Next returns the kind that spawns after the current piece.
func (e *Engine) Next() Kind {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.next
}

// DropCooldown returns the remaining post-lock cooldown in frames.
func (e *Engine) DropCooldown() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dropCooldown
}

// ClockRate returns the cycle rate currently in effect.
func (e *Engine) ClockRate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock.Rate()
}

// CellAt returns the locked cell at (col, row). Out-of-range cells are empty.
func (e *Engine) CellAt(col, row int) Cell {
	e.mu.Lock()
	defer e.mu.Unlock()
	if col < 0 || col >= Cols || row < 0 || row >= Rows {
		return Cell{}
	}
	return e.board[row][col]
}

// FilledCount returns the number of locked cells on the board.
func (e *Engine) FilledCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for row := range Rows {
		for col := range Cols {
			if e.board[row][col].Filled {
				n++
			}
		}
	}
	return n
}
