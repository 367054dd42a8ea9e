package tetris

import (
	"fmt"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

// Layout constants in screen cells. Each board cell is two characters wide.
const (
	hudHeight   = 2
	boardW      = Cols*2 + 2
	boardH      = VisibleRows + 2
	sidePanelW  = 20
	requiredW   = boardW + 2 + sidePanelW
	requiredH   = hudHeight + boardH
	blockGlyph  = '█'
	ghostGlyph  = '░'
	emptyGlyph  = '·'
	previewRows = 2
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}
	s := g.engine.Snapshot()

	g.renderHUD(dst, s)

	if dst.Width() < requiredW || dst.Height() < requiredH {
		dst.DrawOverlay("Window too small", fmt.Sprintf("Need %dx%d", requiredW, requiredH))
		return
	}

	originX := (dst.Width() - requiredW) / 2
	originY := hudHeight
	dst.DrawBox(core.NewRect(originX, originY, boardW, boardH), core.ColorGray)

	switch s.Phase {
	case core.PhaseRunning, core.PhasePaused:
		renderBoard(dst, s, originX+1, originY+1)
	}
	renderSidePanel(dst, s, originX+boardW+2, originY)

	switch s.Phase {
	case core.PhaseNotStarted:
		dst.DrawOverlay("Tetris", "Press Enter to Play")
	case core.PhaseGameOver:
		dst.DrawOverlay("GAME OVER", "Press Enter to Play Again")
	case core.PhasePaused:
		dst.DrawOverlay("PAUSED", "Press P to Resume")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen, s Snapshot) {
	hud := fmt.Sprintf(" Tetris - Score: %d  Level: %d  Lines: %d", s.Score, s.Level, s.Lines)
	dst.DrawText(0, 0, hud)
	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

// renderBoard draws locked cells, the landing preview and the active piece.
// Hidden spawn rows are not drawn.
func renderBoard(dst *core.Screen, s Snapshot, x0, y0 int) {
	plot := func(p core.Point, glyph rune, c core.Color) {
		if p.Y < HiddenRows {
			return
		}
		x := x0 + p.X*2
		y := y0 + p.Y - HiddenRows
		dst.SetColored(x, y, glyph, c)
		dst.SetColored(x+1, y, glyph, c)
	}

	for row := HiddenRows; row < Rows; row++ {
		for col := range Cols {
			cell := s.Board[row][col]
			if cell.Filled {
				plot(core.Point{X: col, Y: row}, blockGlyph, cell.Kind.TermColor())
			} else {
				dst.SetColored(x0+col*2, y0+row-HiddenRows, emptyGlyph, core.ColorDarkGray)
			}
		}
	}

	for _, p := range s.GhostCells() {
		plot(p, ghostGlyph, core.ColorDarkGray)
	}
	for _, p := range s.PieceCells() {
		plot(p, blockGlyph, s.Current.Kind.TermColor())
	}
}

// renderSidePanel draws the next-piece preview, statistics and controls.
func renderSidePanel(dst *core.Screen, s Snapshot, x, y int) {
	dst.DrawText(x, y+1, "Next Piece:")
	if s.Phase != core.PhaseGameOver {
		k := s.Next
		in := k.Insets(0)
		for _, c := range k.Cells(0) {
			px := x + 2 + (c.X-in.Left)*2
			py := y + 3 + (c.Y - in.Top)
			dst.SetColored(px, py, blockGlyph, k.TermColor())
			dst.SetColored(px+1, py, blockGlyph, k.TermColor())
		}
	}

	row := y + 4 + previewRows
	lines := []string{
		"Stats",
		fmt.Sprintf("  Level: %d", s.Level),
		fmt.Sprintf("  Score: %d", s.Score),
		fmt.Sprintf("  Lines: %d", s.Lines),
		"",
		"Controls",
		"  A/←  Move Left",
		"  D/→  Move Right",
		"  Z    Rotate CCW",
		"  E/↑  Rotate CW",
		"  S/↓  Drop",
		"  P    Pause",
	}
	for i, line := range lines {
		dst.DrawText(x, row+i, line)
	}
}
