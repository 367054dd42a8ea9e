package config

import (
	"github.com/vovakirdan/grid-arcade/internal/games/snake"
	"github.com/vovakirdan/grid-arcade/internal/games/tetris"
)

// SnakeTuning returns the snake rates with the difficulty preset applied.
// Presets only change starting rates and progression, never the board.
func (c Config) SnakeTuning() snake.Tuning {
	t := snake.Tuning{
		BaseRate:       c.Snake.BaseRate,
		RateStepFruits: c.Snake.RateStepFruits,
	}
	switch c.Difficulty {
	case DifficultyNormal:
		t.BaseRate *= 1.2
	case DifficultyHard:
		t.BaseRate *= 1.5
	case DifficultyFixed:
		t.RateStepFruits = 0
	}
	return t
}

// TetrisTuning returns the falling-block rates with the difficulty preset applied.
func (c Config) TetrisTuning() tetris.Tuning {
	t := tetris.Tuning{
		BaseSpeed:          c.Tetris.BaseSpeed,
		SpeedStep:          c.Tetris.SpeedStep,
		SoftDropRate:       c.Tetris.SoftDropRate,
		DropCooldownFrames: c.Tetris.DropCooldownFrames,
	}
	switch c.Difficulty {
	case DifficultyNormal:
		t.BaseSpeed = 1.5
	case DifficultyHard:
		t.BaseSpeed = 2.5
	case DifficultyFixed:
		t.SpeedStep = 0
	}
	return t
}

// Apply pushes the tunings to the game packages. Games created afterwards
// use them.
func (c Config) Apply() {
	snake.SetTuning(c.SnakeTuning())
	tetris.SetTuning(c.TetrisTuning())
}
