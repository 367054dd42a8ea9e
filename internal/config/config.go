// Package config provides YAML-based configuration loading, environment
// overrides and difficulty presets for the arcade.
package config

import (
	"fmt"
	"time"
)

// Config is the complete arcade configuration.
type Config struct {
	FrameRate  int              `yaml:"frame_rate" env:"ARCADE_FRAME_RATE"`
	Seed       int64            `yaml:"seed" env:"ARCADE_SEED"`
	Difficulty DifficultyPreset `yaml:"difficulty" env:"ARCADE_DIFFICULTY"`
	Snake      SnakeConfig      `yaml:"snake"`
	Tetris     TetrisConfig     `yaml:"tetris"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`

	// Source is the file the config was read from, or "embedded".
	Source string `yaml:"-"`
}

// SnakeConfig holds the snake rate constants.
type SnakeConfig struct {
	BaseRate       float64 `yaml:"base_rate"`
	RateStepFruits int     `yaml:"rate_step_fruits"`
}

// TetrisConfig holds the falling-block rate constants.
type TetrisConfig struct {
	BaseSpeed          float64 `yaml:"base_speed"`
	SpeedStep          float64 `yaml:"speed_step"`
	SoftDropRate       float64 `yaml:"soft_drop_rate"`
	DropCooldownFrames int     `yaml:"drop_cooldown_frames"`
	SoftDropReleaseMs  int     `yaml:"soft_drop_release_ms"`
}

// ServerConfig configures the SSH front end.
type ServerConfig struct {
	Address     string        `yaml:"address" env:"ARCADE_SSH_ADDR"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level" env:"ARCADE_LOG_LEVEL"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the known difficulty presets.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset converts a name into a preset. The empty string means easy.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyEasy, nil
	}
	for _, p := range Presets() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (valid: easy, normal, hard, fixed)", name)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame_rate must be positive, got %d", c.FrameRate)
	}
	if _, err := ParsePreset(string(c.Difficulty)); err != nil {
		return err
	}
	if c.Snake.BaseRate <= 0 {
		return fmt.Errorf("snake.base_rate must be positive, got %v", c.Snake.BaseRate)
	}
	if c.Snake.RateStepFruits < 0 {
		return fmt.Errorf("snake.rate_step_fruits must not be negative, got %d", c.Snake.RateStepFruits)
	}
	if c.Tetris.BaseSpeed <= 0 {
		return fmt.Errorf("tetris.base_speed must be positive, got %v", c.Tetris.BaseSpeed)
	}
	if c.Tetris.SpeedStep < 0 {
		return fmt.Errorf("tetris.speed_step must not be negative, got %v", c.Tetris.SpeedStep)
	}
	if c.Tetris.SoftDropRate <= 0 {
		return fmt.Errorf("tetris.soft_drop_rate must be positive, got %v", c.Tetris.SoftDropRate)
	}
	if c.Tetris.DropCooldownFrames < 0 {
		return fmt.Errorf("tetris.drop_cooldown_frames must not be negative, got %d", c.Tetris.DropCooldownFrames)
	}
	if c.Tetris.SoftDropReleaseMs <= 0 {
		return fmt.Errorf("tetris.soft_drop_release_ms must be positive, got %d", c.Tetris.SoftDropReleaseMs)
	}
	return nil
}

// FrameDuration is the time budget of one frame.
func (c Config) FrameDuration() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / 50
	}
	return time.Second / time.Duration(c.FrameRate)
}

// SoftDropRelease is how long the TUI waits for a repeat of the drop key
// before ending a soft drop.
func (c Config) SoftDropRelease() time.Duration {
	return time.Duration(c.Tetris.SoftDropReleaseMs) * time.Millisecond
}

// GameSeed returns the configured seed, or a time based one when unset.
func (c Config) GameSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
