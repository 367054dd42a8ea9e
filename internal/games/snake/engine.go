// Package snake implements the classic snake game on a 25×25 toroidal board.
// The snake grows to its minimum length, eats fruit for a decaying reward and
// dies when its head runs into its own body.
package snake

import (
	"math/rand"
	"sync"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

// Board and gameplay constants.
const (
	Width               = 25
	Height              = 25
	MinLength           = 5
	MaxQueuedDirections = 3
	MaxFruitScore       = 100
	MinFruitScore       = 10
)

// Direction is a movement heading.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the one-cell offset for the heading. North is up (y-1).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

// Tile is the content of a board cell.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileFruit
	TileBody
	TileHead
)

// Collision is what the head ran into during a step.
type Collision int

const (
	CollisionNone Collision = iota
	CollisionFruit
	CollisionBody
)

// Tuning holds the rate constants of a game.
type Tuning struct {
	BaseRate       float64 // Cycles per second at reset
	RateStepFruits int     // Fruits per +1 cycle/sec; 0 disables speed-up
}

// DefaultTuning returns the standard rates.
func DefaultTuning() Tuning {
	return Tuning{BaseRate: 10.0, RateStepFruits: 9}
}

// Engine owns the board, the snake body, the direction queue and the cycle
// clock. All exported methods are safe for concurrent use.
type Engine struct {
	mu     sync.Mutex
	tuning Tuning
	rng    *rand.Rand
	clock  *core.CycleClock

	grid           [Height][Width]Tile
	body           []core.Point // head first
	directions     []Direction  // front is the committed direction
	fruit          core.Point
	score          int
	fruitsEaten    int
	nextFruitScore int
	phase          core.Phase
}

// NewEngine creates an engine in the not-started phase with its clock paused.
func NewEngine(tuning Tuning, rng *rand.Rand, ts core.TimeSource) *Engine {
	head := core.Point{X: Width / 2, Y: Height / 2}
	e := &Engine{
		tuning:         tuning,
		rng:            rng,
		clock:          core.NewCycleClock(tuning.BaseRate, ts),
		body:           []core.Point{head},
		directions:     []Direction{North},
		nextFruitScore: MaxFruitScore,
		phase:          core.PhaseNotStarted,
	}
	e.grid[head.Y][head.X] = TileHead
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

// Reset unconditionally starts a fresh game.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

func (e *Engine) reset() {
	e.score = 0
	e.fruitsEaten = 0
	e.grid = [Height][Width]Tile{}

	head := core.Point{X: Width / 2, Y: Height / 2}
	e.body = append(e.body[:0], head)
	e.grid[head.Y][head.X] = TileHead

	e.directions = append(e.directions[:0], North)
	e.phase = core.PhaseRunning
	e.clock.Reset()
	e.clock.SetRate(e.tuning.BaseRate)
	e.spawnFruit()
}

// QueueDirection appends a turn. It is ignored unless the game is running,
// when the queue is full, or when d reverses the last queued direction.
func (e *Engine) QueueDirection(d Direction) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != core.PhaseRunning || len(e.directions) >= MaxQueuedDirections {
		return
	}
	if len(e.directions) > 0 && d == e.directions[len(e.directions)-1].Opposite() {
		return
	}
	e.directions = append(e.directions, d)
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

// Step moves the snake one cell, applies the collision outcome and returns it.
func (e *Engine) Step() Collision {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != core.PhaseRunning {
		return CollisionNone
	}
	c := e.step()
	e.onCollision(c)
	return c
}

// step advances the head in the committed direction. It mutates only the
// body and grid; scoring is left to onCollision.
func (e *Engine) step() Collision {
	dir := e.directions[0]
	dx, dy := dir.Delta()
	head := e.body[0].Add(dx, dy).Wrap(Width, Height)

	old := e.grid[head.Y][head.X]
	if old != TileFruit && len(e.body) > MinLength {
		tail := e.body[len(e.body)-1]
		e.body = e.body[:len(e.body)-1]
		e.grid[tail.Y][tail.X] = TileEmpty
		old = e.grid[head.Y][head.X]
	}

	if old == TileBody {
		return CollisionBody
	}

	prev := e.body[0]
	e.grid[prev.Y][prev.X] = TileBody
	e.body = append(e.body, core.Point{})
	copy(e.body[1:], e.body)
	e.body[0] = head
	e.grid[head.Y][head.X] = TileHead

	if len(e.directions) > 1 {
		e.directions = e.directions[1:]
	}

	if old == TileFruit {
		return CollisionFruit
	}
	return CollisionNone
}

// onCollision applies scoring, speed-up and the terminal transition.
func (e *Engine) onCollision(c Collision) {
	switch c {
	case CollisionFruit:
		e.fruitsEaten++
		e.score += e.nextFruitScore
		e.clock.SetRate(e.rateFor(e.fruitsEaten))
		e.spawnFruit()
	case CollisionBody:
		e.phase = core.PhaseGameOver
		e.clock.SetPaused(true)
	default:
		if e.nextFruitScore > MinFruitScore {
			e.nextFruitScore--
		}
	}
}

func (e *Engine) rateFor(fruits int) float64 {
	if e.tuning.RateStepFruits <= 0 {
		return e.tuning.BaseRate
	}
	return e.tuning.BaseRate + float64(fruits/e.tuning.RateStepFruits)
}

// spawnFruit places the fruit on the k-th free cell in row-major order and
// restores the full fruit reward.
func (e *Engine) spawnFruit() {
	e.nextFruitScore = MaxFruitScore

	free := Width*Height - len(e.body)
	if free <= 0 {
		return
	}
	k := e.rng.Intn(free)
	for y := range Height {
		for x := range Width {
			t := e.grid[y][x]
			if t == TileBody || t == TileHead {
				continue
			}
			if k == 0 {
				e.grid[y][x] = TileFruit
				e.fruit = core.Point{X: x, Y: y}
				return
			}
			k--
		}
	}
}

// Advance runs one frame: it updates the clock and executes every owed cycle.
// It returns the number of cycles executed.
func (e *Engine) Advance() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clock.Update()
	n := 0
	for e.phase == core.PhaseRunning && e.clock.ConsumeCycle() {
		e.onCollision(e.step())
		n++
	}
	return n
}

// Phase returns the lifecycle phase.
func (e *Engine) Phase() core.Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Direction returns the committed direction.
func (e *Engine) Direction() Direction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.directions[0]
}

// QueuedDirections returns a copy of the direction queue, committed first.
func (e *Engine) QueuedDirections() []Direction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Direction(nil), e.directions...)
}

// Score returns the current score.
func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

// FruitsEaten returns the number of fruits eaten this game.
func (e *Engine) FruitsEaten() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fruitsEaten
}

// NextFruitScore returns the reward for eating the current fruit.
func (e *Engine) NextFruitScore() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nextFruitScore
}

// Length returns the body length including the head.
func (e *Engine) Length() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.body)
}

// Head returns the head cell.
func (e *Engine) Head() core.Point {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.body[0]
}

// TileAt returns the tile at (x, y). Out-of-range cells are empty.
func (e *Engine) TileAt(x, y int) Tile {
	e.mu.Lock()
	defer e.mu.Unlock()
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return TileEmpty
	}
	return e.grid[y][x]
}

// ClockRate returns the cycle rate currently in effect.
func (e *Engine) ClockRate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock.Rate()
}
