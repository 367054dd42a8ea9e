package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/grid-arcade/internal/platform/tui"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Snake controls:
  W/A/S/D or arrows  - Steer
  P                  - Pause
  Enter              - Start / play again
  Q/Ctrl+C           - Quit

Tetris controls:
  A/D or Left/Right  - Move
  E/Up               - Rotate clockwise
  Z                  - Rotate anticlockwise
  S/Down             - Soft drop while held
  P                  - Pause
  Enter              - Start / play again
  Q/Ctrl+C           - Quit

Difficulty options:
  easy   - Standard starting rates
  normal - Faster start
  hard   - Much faster start
  fixed  - No speed-up during the game

Examples:
  arcade play snake
  arcade play tetris --difficulty hard
  arcade play tetris --config ./my-arcade.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	logger.Debug("starting game", "game", gameID)
	if err := tui.Run(game, gameOptions(terminalSize())); err != nil {
		return fmt.Errorf("running %s: %w", gameID, err)
	}
	return nil
}
