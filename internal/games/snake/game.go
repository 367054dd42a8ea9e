package snake

import (
	"math/rand"
	"sync"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

// Package-level tuning, set by the CLI from config before games are created.
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

// Game implements registry.Game on top of Engine.
type Game struct {
	engine  *Engine
	tuning  Tuning
	screenW int
	screenH int
}

// New creates a Snake game using the current package tuning.
func New() *Game {
	return &Game{tuning: currentTuning()}
}

func init() {
	registry.Register(registry.Entry{
		ID:      "snake",
		Summary: "Eat fruit on a wrap-around 25x25 board without biting yourself",
		New:     func() registry.Game { return New() },
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "snake" }

// Title returns the display name.
func (g *Game) Title() string { return "Snake" }

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
	case core.ActionUp:
		e.QueueDirection(North)
	case core.ActionDown:
		e.QueueDirection(South)
	case core.ActionLeft:
		e.QueueDirection(West)
	case core.ActionRight:
		e.QueueDirection(East)
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

// State returns the current game state. Level is the number of speed-ups earned.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	s := g.engine.Snapshot()
	level := 1
	if g.tuning.RateStepFruits > 0 {
		level += s.FruitsEaten / g.tuning.RateStepFruits
	}
	return core.GameState{Score: s.Score, Level: level, Phase: s.Phase}
}
