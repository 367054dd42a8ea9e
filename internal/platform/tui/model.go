package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

// Options configures a game session in the terminal.
type Options struct {
	Runtime core.RuntimeConfig
	// SoftDropRelease ends a held drop after this long without a key repeat.
	// Terminals report key presses only, never releases.
	SoftDropRelease time.Duration
}

// DefaultOptions returns options for an 80×30 terminal at 50 frames per second.
func DefaultOptions() Options {
	return Options{
		Runtime:         core.DefaultConfig(),
		SoftDropRelease: 150 * time.Millisecond,
	}
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// GameModel runs one game: it ticks the simulation once per frame, maps keys to
// actions and renders the game screen with a help footer.
type GameModel struct {
	game      registry.Game
	screen    *core.Screen
	opts      Options
	keys      GameKeyMap
	help      help.Model
	gameState core.GameState
	frames    uint64

	dropHeld bool
	lastDrop time.Time

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. A zero seed picks a time based one.
func NewGameModel(game registry.Game, opts Options) GameModel {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Runtime.Time == nil {
		opts.Runtime.Time = core.SystemTime{}
	}
	if opts.Runtime.FrameRate <= 0 {
		opts.Runtime.FrameRate = core.DefaultFrameRate
	}
	h := help.New()
	h.Width = opts.Runtime.ScreenW

	m := GameModel{
		game:   game,
		screen: core.NewScreen(opts.Runtime.ScreenW, max(opts.Runtime.ScreenH-1, 1)),
		opts:   opts,
		keys:   KeysFor(game.ID()),
		help:   h,
	}
	game.Reset(opts.Runtime)
	m.gameState = game.State()
	return m
}

// Init starts the frame loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.FrameRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()

	case softDropCheckMsg:
		return m.handleSoftDropCheck()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil

	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		if m.gameState.Phase != core.PhaseRunning {
			m.backToMenu = true
		}
		return m, nil

	case core.ActionSoftDrop:
		// Repeats re-engage the drop once a lock cooldown is over.
		m.lastDrop = m.now()
		m.game.Handle(action)
		m.gameState = m.game.State()
		if m.dropHeld {
			return m, nil
		}
		m.dropHeld = true
		return m, softDropCheckCmd(m.opts.SoftDropRelease)
	}

	m.game.Handle(action)
	m.gameState = m.game.State()
	return m, nil
}

// handleSoftDropCheck ends a soft drop once the drop key stopped repeating.
func (m GameModel) handleSoftDropCheck() (tea.Model, tea.Cmd) {
	if !m.dropHeld {
		return m, nil
	}
	idle := m.now().Sub(m.lastDrop)
	if idle < m.opts.SoftDropRelease {
		return m, softDropCheckCmd(m.opts.SoftDropRelease - idle)
	}
	m.dropHeld = false
	m.game.Handle(core.ActionSoftDropEnd)
	return m, nil
}

// handleTick runs one simulation frame.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Update()
	m.gameState = result.State
	m.frames++
	return m, tickCmd(m.opts.Runtime.FrameRate)
}

func (m GameModel) now() time.Time {
	return m.opts.Runtime.Time.Now()
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for a single game.
func Run(game registry.Game, opts Options) error {
	p := tea.NewProgram(
		NewGameModel(game, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
