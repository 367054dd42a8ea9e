// arcade plays grid games (snake and a falling-block puzzle) in the terminal.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade sim <game>        - Run a game headless with a random autopilot
//
// Global flags:
//
//	--config <path>      - Config file (default search: ~/.arcade, ./configs, embedded)
//	--fps <rate>         - Frame rate (default: 50)
//	--seed <value>       - RNG seed for reproducible gameplay
//	--difficulty <name>  - easy, normal, hard or fixed
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/platform/tui"

	// Import games to register them
	_ "github.com/vovakirdan/grid-arcade/internal/games/snake"
	_ "github.com/vovakirdan/grid-arcade/internal/games/tetris"
)

var (
	// Global flags
	flagConfig     string
	flagFPS        int
	flagSeed       int64
	flagDifficulty string
	flagLogLevel   string

	appConfig config.Config
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Grid Arcade - Snake and Tetris in your terminal",
	Long: `Grid Arcade is a terminal arcade with two grid games: a wrap-around
snake and a falling-block puzzle.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  sim      - Run a game headless with a random autopilot

Examples:
  arcade list
  arcade play tetris
  arcade play snake --difficulty hard
  arcade menu
  arcade serve --ssh :2222
  arcade sim tetris --seed 42`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.IntVar(&flagFPS, "fps", 0, "Frame rate (0 = from config, default 50)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = from config, else time based)")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}

// loadConfig resolves the config file, env and flags, then pushes game tunings.
// Flags win over env, env wins over the file.
func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.FrameRate = flagFPS
	}
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("difficulty") {
		preset, perr := config.ParsePreset(flagDifficulty)
		if perr != nil {
			return perr
		}
		cfg.Difficulty = preset
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("config: log level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           level,
	})
	logger.Debug("config loaded", "source", cfg.Source, "difficulty", cfg.Difficulty, "fps", cfg.FrameRate)

	cfg.Apply()
	appConfig = cfg
	return nil
}

// terminalSize returns the size of stdout, or 80x30 when it is not a terminal.
func terminalSize() (int, int) {
	def := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return def.ScreenW, def.ScreenH
}

// gameOptions builds the TUI options for a width×height terminal.
func gameOptions(width, height int) tui.Options {
	opts := tui.DefaultOptions()
	opts.Runtime.ScreenW = width
	opts.Runtime.ScreenH = height
	opts.Runtime.FrameRate = appConfig.FrameRate
	opts.Runtime.Seed = appConfig.GameSeed()
	opts.SoftDropRelease = appConfig.SoftDropRelease()
	return opts
}
