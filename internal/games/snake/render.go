package snake

import (
	"fmt"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

const (
	hudHeight  = 2
	boardW     = Width*2 + 2
	boardH     = Height + 2
	sidePanelW = 20
	requiredW  = boardW + 2 + sidePanelW
	requiredH  = hudHeight + boardH
)

// headGlyph points the head in the committed direction.
func headGlyph(d Direction) rune {
	switch d {
	case East:
		return '▶'
	case South:
		return '▼'
	case West:
		return '◀'
	default:
		return '▲'
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}
	s := g.engine.Snapshot()

	hud := fmt.Sprintf(" Snake - Score: %d  Fruit: %d", s.Score, s.FruitsEaten)
	dst.DrawText(0, 0, hud)
	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}

	if dst.Width() < requiredW || dst.Height() < requiredH {
		dst.DrawOverlay("Window too small", fmt.Sprintf("Need %dx%d", requiredW, requiredH))
		return
	}

	ox := (dst.Width() - requiredW) / 2
	oy := hudHeight
	dst.DrawBox(core.NewRect(ox, oy, boardW, boardH), core.ColorGray)

	if s.Phase == core.PhaseRunning || s.Phase == core.PhasePaused {
		for y := range Height {
			for x := range Width {
				sx, sy := ox+1+x*2, oy+1+y
				switch s.Grid[y][x] {
				case TileFruit:
					dst.SetColored(sx, sy, '●', core.ColorRed)
				case TileBody:
					dst.SetColored(sx, sy, '█', core.ColorGreen)
					dst.SetColored(sx+1, sy, '█', core.ColorGreen)
				case TileHead:
					dst.SetColored(sx, sy, headGlyph(s.Dir), core.ColorBrightGreen)
				}
			}
		}
	}

	px := ox + boardW + 2
	lines := []string{
		"Statistics",
		fmt.Sprintf("  Total Score: %d", s.Score),
		fmt.Sprintf("  Fruit Eaten: %d", s.FruitsEaten),
		fmt.Sprintf("  Fruit Score: %d", s.NextFruitScore),
		"",
		"Controls",
		"  W/↑  Move Up",
		"  S/↓  Move Down",
		"  A/←  Move Left",
		"  D/→  Move Right",
		"  P    Pause Game",
	}
	for i, line := range lines {
		dst.DrawText(px, oy+1+i, line)
	}

	switch s.Phase {
	case core.PhaseNotStarted:
		dst.DrawOverlay("Snake Game!", "Press Enter to Start")
	case core.PhaseGameOver:
		dst.DrawOverlay("Game Over!", "Press Enter to Restart")
	case core.PhasePaused:
		dst.DrawOverlay("Paused", "Press P to Resume")
	}
}
