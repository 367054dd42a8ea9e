package tetris

import (
	"math/rand"
	"sync"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

var (
	tuningMu      sync.RWMutex
	defaultTuning = DefaultTuning()
)

// SetTuning sets the rates used by games created after the call.
func SetTuning(t Tuning) {
	tuningMu.Lock()
	defer tuningMu.Unlock()
	defaultTuning = t
}

func currentTuning() Tuning {
	tuningMu.RLock()
	defer tuningMu.RUnlock()
	return defaultTuning
}

// Game adapts Engine to the registry.Game interface.
type Game struct {
	engine  *Engine
	tuning  Tuning
	screenW int
	screenH int
}

// New creates a Tetris game using the current package tuning.
func New() *Game {
	return &Game{tuning: currentTuning()}
}

func init() {
	registry.Register(registry.Entry{
		ID:      "tetris",
		Summary: "Clear lines of falling blocks on a 10-wide well",
		New:     func() registry.Game { return New() },
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "tetris" }

// Title returns the display name.
func (g *Game) Title() string { return "Tetris" }

// Engine exposes the underlying engine.
func (g *Game) Engine() *Engine { return g.engine }

// Reset creates a fresh engine waiting on its new-game screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.engine = NewEngine(g.tuning, rand.New(rand.NewSource(cfg.Seed)), cfg.Time)
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
}

// Handle routes a player intent to the engine.
func (g *Game) Handle(a core.Action) {
	e := g.engine
	if e == nil {
		return
	}
	switch a {
	case core.ActionLeft:
		e.MoveLeft()
	case core.ActionRight:
		e.MoveRight()
	case core.ActionUp, core.ActionRotateCW:
		e.RotateCW()
	case core.ActionRotateCCW:
		e.RotateCCW()
	case core.ActionDown, core.ActionSoftDrop:
		e.SoftDropStart()
	case core.ActionSoftDropEnd:
		e.SoftDropEnd()
	case core.ActionPause:
		e.TogglePause()
	case core.ActionConfirm:
		e.Start()
	}
}

// Update runs one frame of the simulation.
func (g *Game) Update() core.StepResult {
	if g.engine == nil {
		return core.StepResult{}
	}
	n := g.engine.Advance()
	return core.StepResult{State: g.State(), Cycles: n}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	s := g.engine.Snapshot()
	return core.GameState{Score: s.Score, Level: s.Level, Phase: s.Phase}
}
