package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/arcade.yaml
var defaultArcadeYAML []byte

// Default returns the built-in configuration, matching defaults/arcade.yaml.
func Default() Config {
	return Config{
		FrameRate:  50,
		Seed:       0,
		Difficulty: DifficultyEasy,
		Snake: SnakeConfig{
			BaseRate:       10.0,
			RateStepFruits: 9,
		},
		Tetris: TetrisConfig{
			BaseSpeed:          1.0,
			SpeedStep:          0.035,
			SoftDropRate:       25.0,
			DropCooldownFrames: 25,
			SoftDropReleaseMs:  150,
		},
		Server: ServerConfig{
			Address:     ":23234",
			HostKey:     ".ssh/arcade_ed25519",
			IdleTimeout: 10 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
		Source: "embedded",
	}
}
