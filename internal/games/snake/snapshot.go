package snake

import "github.com/vovakirdan/grid-arcade/internal/core"

// Snapshot captures the renderer-visible game state and is also used for
// determinism checks.
type Snapshot struct {
	Grid           [Height][Width]Tile
	Body           []core.Point // head first
	Dir            Direction
	Queued         int
	Fruit          core.Point
	Score          int
	FruitsEaten    int
	NextFruitScore int
	Rate           float64
	Phase          core.Phase
}

// Snapshot returns a copy of the current engine state taken under the lock.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Snapshot{
		Grid:           e.grid,
		Body:           append([]core.Point(nil), e.body...),
		Dir:            e.directions[0],
		Queued:         len(e.directions),
		Fruit:          e.fruit,
		Score:          e.score,
		FruitsEaten:    e.fruitsEaten,
		NextFruitScore: e.nextFruitScore,
		Rate:           e.clock.Rate(),
		Phase:          e.phase,
	}
}

// Head returns the head cell of the snapshot.
func (s Snapshot) Head() core.Point {
	if len(s.Body) == 0 {
		return core.Point{}
	}
	return s.Body[0]
}
