package tetris

import "github.com/vovakirdan/grid-arcade/internal/core"

// Kind identifies one of the seven tetromino shapes.
type Kind uint8

const (
	KindI Kind = iota
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
)

// KindCount is the number of distinct piece kinds.
const KindCount = 7

// RGB is a base color triple.
type RGB struct {
	R, G, B uint8
}

// Insets is the distance from each bounding-box edge to the nearest occupied
// cell for one rotation. A value of -1 means the mask is empty.
type Insets struct {
	Left, Right, Top, Bottom int
}

// shape is the immutable geometry of one piece kind.
type shape struct {
	name      string
	color     RGB
	term      core.Color
	dimension int
	cols      int // occupied width at rotation 0
	rows      int // occupied height at rotation 0
	masks     [4][]bool
	insets    [4]Insets
	spawnCol  int
	spawnRow  int
}

const (
	colorMin = 35
	colorMax = 255 - colorMin
)

// Piece masks are row-major, dimension×dimension, one per rotation state.
var shapes = buildShapes([KindCount]shape{
	KindI: {
		name: "I", color: RGB{colorMin, colorMax, colorMax}, term: core.ColorCyan,
		dimension: 4, cols: 4, rows: 1,
		masks: [4][]bool{
			bits("0000", "1111", "0000", "0000"),
			bits("0010", "0010", "0010", "0010"),
			bits("0000", "0000", "1111", "0000"),
			bits("0100", "0100", "0100", "0100"),
		},
	},
	KindJ: {
		name: "J", color: RGB{colorMin, colorMin, colorMax}, term: core.ColorBlue,
		dimension: 3, cols: 3, rows: 2,
		masks: [4][]bool{
			bits("100", "111", "000"),
			bits("011", "010", "010"),
			bits("000", "111", "001"),
			bits("010", "010", "110"),
		},
	},
	KindL: {
		name: "L", color: RGB{colorMax, 127, colorMin}, term: core.ColorOrange,
		dimension: 3, cols: 3, rows: 2,
		masks: [4][]bool{
			bits("001", "111", "000"),
			bits("010", "010", "011"),
			bits("000", "111", "100"),
			bits("110", "010", "010"),
		},
	},
	KindO: {
		name: "O", color: RGB{colorMax, colorMax, colorMin}, term: core.ColorYellow,
		dimension: 2, cols: 2, rows: 2,
		masks: [4][]bool{
			bits("11", "11"),
			bits("11", "11"),
			bits("11", "11"),
			bits("11", "11"),
		},
	},
	KindS: {
		name: "S", color: RGB{colorMin, colorMax, colorMin}, term: core.ColorGreen,
		dimension: 3, cols: 3, rows: 2,
		masks: [4][]bool{
			bits("011", "110", "000"),
			bits("010", "011", "001"),
			bits("000", "011", "110"),
			bits("100", "110", "010"),
		},
	},
	KindT: {
		name: "T", color: RGB{128, colorMin, 128}, term: core.ColorMagenta,
		dimension: 3, cols: 3, rows: 2,
		masks: [4][]bool{
			bits("010", "111", "000"),
			bits("010", "011", "010"),
			bits("000", "111", "010"),
			bits("010", "110", "010"),
		},
	},
	KindZ: {
		name: "Z", color: RGB{colorMax, colorMin, colorMin}, term: core.ColorRed,
		dimension: 3, cols: 3, rows: 2,
		masks: [4][]bool{
			bits("110", "011", "000"),
			bits("001", "011", "010"),
			bits("000", "110", "011"),
			bits("010", "110", "100"),
		},
	},
})

// bits turns rows of '0'/'1' into a flat occupancy mask.
func bits(rows ...string) []bool {
	mask := make([]bool, 0, len(rows)*len(rows))
	for _, row := range rows {
		for _, ch := range row {
			mask = append(mask, ch == '1')
		}
	}
	return mask
}

// buildShapes derives insets and spawn positions once at package init.
func buildShapes(table [KindCount]shape) [KindCount]shape {
	for k := range table {
		s := &table[k]
		for r := range 4 {
			s.insets[r] = computeInsets(s.masks[r], s.dimension)
		}
		s.spawnCol = Cols/2 - s.dimension/2
		s.spawnRow = s.insets[0].Top
	}
	return table
}

// computeInsets scans a mask from each edge for the first occupied cell.
func computeInsets(mask []bool, dim int) Insets {
	in := Insets{Left: -1, Right: -1, Top: -1, Bottom: -1}
	occupied := func(x, y int) bool { return mask[y*dim+x] }

	for x := 0; x < dim && in.Left < 0; x++ {
		for y := range dim {
			if occupied(x, y) {
				in.Left = x
				break
			}
		}
	}
	for x := dim - 1; x >= 0 && in.Right < 0; x-- {
		for y := range dim {
			if occupied(x, y) {
				in.Right = dim - 1 - x
				break
			}
		}
	}
	for y := 0; y < dim && in.Top < 0; y++ {
		for x := range dim {
			if occupied(x, y) {
				in.Top = y
				break
			}
		}
	}
	for y := dim - 1; y >= 0 && in.Bottom < 0; y-- {
		for x := range dim {
			if occupied(x, y) {
				in.Bottom = dim - 1 - y
				break
			}
		}
	}
	return in
}

// AllKinds returns every piece kind in table order.
func AllKinds() []Kind {
	return []Kind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ}
}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	if int(k) >= KindCount {
		return "?"
	}
	return shapes[k].name
}

// Dimension is the side length of the kind's bounding box.
func (k Kind) Dimension() int { return shapes[k].dimension }

// Cols is the occupied width at rotation 0.
func (k Kind) Cols() int { return shapes[k].cols }

// Rows is the occupied height at rotation 0.
func (k Kind) Rows() int { return shapes[k].rows }

// BaseColor returns the kind's color triple.
func (k Kind) BaseColor() RGB { return shapes[k].color }

// TermColor returns the terminal palette color used to draw the kind.
func (k Kind) TermColor() core.Color { return shapes[k].term }

// Occupied reports whether cell (x, y) of the bounding box is filled at rotation.
func (k Kind) Occupied(x, y, rotation int) bool {
	s := &shapes[k]
	return s.masks[rotation&3][y*s.dimension+x]
}

// Insets returns the precomputed insets for rotation.
func (k Kind) Insets(rotation int) Insets { return shapes[k].insets[rotation&3] }

// SpawnCol is the column a freshly spawned piece starts at.
func (k Kind) SpawnCol() int { return shapes[k].spawnCol }

// SpawnRow is the starting row of the bounding box: the top inset of rotation 0.
func (k Kind) SpawnRow() int { return shapes[k].spawnRow }

// Cells returns the board-relative offsets of the occupied cells at rotation.
func (k Kind) Cells(rotation int) []core.Point {
	dim := k.Dimension()
	out := make([]core.Point, 0, 4)
	for y := range dim {
		for x := range dim {
			if k.Occupied(x, y, rotation) {
				out = append(out, core.Point{X: x, Y: y})
			}
		}
	}
	return out
}
