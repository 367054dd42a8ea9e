// Package registry maps game IDs to constructors. Game packages register
// themselves from init(), so front ends (the terminal UI, the SSH server and
// the headless simulator) only need a blank import to offer a game.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

// Game is the contract between a simulation engine and a front end.
// Implementations keep the simulation free of terminal concerns: the front
// end maps keys to actions, paces frames and draws the screen buffer.
type Game interface {
	// ID is the stable identifier used on the command line ("snake", "tetris").
	ID() string

	// Title is the display name.
	Title() string

	// Reset discards the current game and shows the start screen.
	// cfg supplies the screen size, RNG seed, frame rate and time source.
	Reset(cfg core.RuntimeConfig)

	// Handle delivers a player intent. It is safe to call from any goroutine
	// and never fails: intents whose precondition does not hold are dropped.
	Handle(a core.Action)

	// Update advances one render frame, running every logic cycle that has
	// come due since the previous frame.
	Update() core.StepResult

	// Render draws a consistent view of the game into dst.
	Render(dst *core.Screen)

	// State reports score, level and phase.
	State() core.GameState
}

// Factory builds a fresh, un-reset game.
type Factory func() Game

// Entry describes a registered game.
type Entry struct {
	ID      string
	Title   string
	Summary string
	New     Factory
}

// GameInfo is the listing view of an Entry.
type GameInfo struct {
	ID      string
	Title   string
	Summary string
}

var (
	mu      sync.RWMutex
	entries = map[string]Entry{}
)

// Register adds a game. It panics on an empty or duplicate ID, a missing
// factory, or a factory whose games report a different ID.
func Register(e Entry) {
	if e.ID == "" || e.New == nil {
		panic("registry: entry needs an ID and a factory")
	}
	sample := e.New()
	if sample.ID() != e.ID {
		panic(fmt.Sprintf("registry: factory for %q builds %q", e.ID, sample.ID()))
	}
	if e.Title == "" {
		e.Title = sample.Title()
	}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[e.ID]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", e.ID))
	}
	entries[e.ID] = e
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, GameInfo{ID: e.ID, Title: e.Title, Summary: e.Summary})
	}
	slices.SortFunc(out, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Create builds a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.New(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
