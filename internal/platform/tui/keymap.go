package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

// GameKeyMap binds keys to game actions and renders as a help footer.
type GameKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	RotateCW  key.Binding
	RotateCCW key.Binding
	SoftDrop  key.Binding
	Pause     key.Binding
	Confirm   key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns the bindings shown in the footer.
func (k GameKeyMap) ShortHelp() []key.Binding {
	bindings := []key.Binding{k.Up, k.Down, k.Left, k.Right, k.RotateCW, k.SoftDrop, k.Pause, k.Quit}
	out := bindings[:0]
	for _, b := range bindings {
		if b.Enabled() {
			out = append(out, b)
		}
	}
	return out
}

// FullHelp returns all bindings grouped by purpose.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.RotateCW, k.RotateCCW, k.SoftDrop},
		{k.Pause, k.Confirm, k.Back, k.Quit},
	}
}

func commonKeys() GameKeyMap {
	return GameKeyMap{
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SnakeKeys returns the snake bindings: WASD or arrows steer.
func SnakeKeys() GameKeyMap {
	k := commonKeys()
	k.Up = key.NewBinding(key.WithKeys("w", "up"), key.WithHelp("↑/w", "north"))
	k.Down = key.NewBinding(key.WithKeys("s", "down"), key.WithHelp("↓/s", "south"))
	k.Left = key.NewBinding(key.WithKeys("a", "left"), key.WithHelp("←/a", "west"))
	k.Right = key.NewBinding(key.WithKeys("d", "right"), key.WithHelp("→/d", "east"))
	return k
}

// TetrisKeys returns the falling-block bindings. q is reserved for quit, so
// anticlockwise rotation sits on z.
func TetrisKeys() GameKeyMap {
	k := commonKeys()
	k.Left = key.NewBinding(key.WithKeys("a", "left"), key.WithHelp("←/a", "left"))
	k.Right = key.NewBinding(key.WithKeys("d", "right"), key.WithHelp("→/d", "right"))
	k.RotateCW = key.NewBinding(key.WithKeys("e", "up"), key.WithHelp("↑/e", "rotate"))
	k.RotateCCW = key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "rotate back"))
	k.SoftDrop = key.NewBinding(key.WithKeys("s", "down"), key.WithHelp("↓/s", "drop"))
	return k
}

// KeysFor returns the key map for a game ID.
func KeysFor(gameID string) GameKeyMap {
	if gameID == "tetris" {
		return TetrisKeys()
	}
	return SnakeKeys()
}

// Action translates a key message to a game action.
func (k GameKeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, k.SoftDrop):
		return core.ActionSoftDrop
	case key.Matches(msg, k.RotateCW):
		return core.ActionRotateCW
	case key.Matches(msg, k.RotateCCW):
		return core.ActionRotateCCW
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	}
	return core.ActionNone
}

// MenuKeyMap binds the game picker keys.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns the bindings shown in the footer.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns all bindings.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Select, k.Quit}}
}

// DefaultMenuKeyMap returns the menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}
