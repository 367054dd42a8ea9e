package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW   int   // Screen width in characters
	ScreenH   int   // Screen height in characters
	FrameRate int   // Render/update frames per second (default 50)
	Seed      int64 // RNG seed for deterministic gameplay

	// Time is the wall-clock source for the game's cycle clock.
	// Nil means SystemTime.
	Time TimeSource
}

// DefaultFrameRate is the target render/update rate (20ms per frame).
const DefaultFrameRate = 50

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   30,
		FrameRate: DefaultFrameRate,
		Seed:      0, // 0 means use current time in platform layer
	}
}

// Phase is the lifecycle stage of a game.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhasePaused
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score int
	Level int
	Phase Phase
}

// NewGame reports whether the game is waiting for its first start.
func (s GameState) NewGame() bool { return s.Phase == PhaseNotStarted }

// GameOver reports whether the game has ended.
func (s GameState) GameOver() bool { return s.Phase == PhaseGameOver }

// Paused reports whether the game is paused.
func (s GameState) Paused() bool { return s.Phase == PhasePaused }

// StepResult is returned by Game.Update() after each frame.
type StepResult struct {
	State  GameState
	Cycles int // Logic cycles executed during the frame
}
