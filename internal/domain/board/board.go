// Package board implements the rules of the game of Go: board state,
// move legality, group and liberty resolution, captures and the Ko rule.
// It performs no I/O and holds no global state; every Board is an
// independent value safe to use from a single goroutine.
package board

import (
	"strings"
)

// Color is the content of a single cell. The zero value is Empty.
// Black and White double as capture-counter indexes and wire tags,
// so the iota order is fixed.
type Color uint8

const (
	Empty Color = iota
	Black
	White
)

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// Opponent returns the other stone color. Empty maps to Empty.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

// Point is a board coordinate, bounded to [0, size) on both axes.
type Point struct {
	X uint8
	Y uint8
}

// MaxSize is the largest supported board side length.
const MaxSize = 255

// koHistoryLen bounds the committed-grid snapshots kept for Ko detection.
const koHistoryLen = 2

// Board is a square Go board together with the current turn, the log of
// successful placements, cumulative capture counters and a short history
// of committed grids for Ko detection. Mutation happens exclusively
// through Place; a failed Place leaves the Board untouched.
type Board struct {
	size uint8
	grid []Color // row-major, index y*size+x
	turn Color

	moves    []Point
	captures [3]uint32 // indexed by Color, the Empty slot stays zero

	// history holds up to the two most recent committed grids, oldest
	// first. Committed grids are never mutated in place (Place builds a
	// fresh scratch each call), so entries may alias b.grid.
	history [][]Color
}

// New returns an empty size×size board with Black to move.
func New(size int) (*Board, error) {
	if size < 1 || size > MaxSize {
		return nil, ErrBoardSize
	}
	return &Board{
		size: uint8(size),
		grid: make([]Color, size*size),
		turn: Black,
	}, nil
}

// Size returns the side length of the board.
func (b *Board) Size() int {
	return int(b.size)
}

// Turn returns the color to move next.
func (b *Board) Turn() Color {
	return b.turn
}

// At returns the color at (x, y), or Empty when the coordinate is
// outside the board.
func (b *Board) At(x, y int) Color {
	if !b.inRange(x, y) {
		return Empty
	}
	return b.grid[y*int(b.size)+x]
}

// Moves returns a copy of the ordered log of successful placements.
func (b *Board) Moves() []Point {
	return append([]Point(nil), b.moves...)
}

// Scores returns the capture counters indexed by Color: stones captured
// by Black at Scores()[Black], by White at Scores()[White]. The Empty
// slot is always zero.
func (b *Board) Scores() [3]uint32 {
	return b.captures
}

// Data returns a row-major snapshot of the grid, Data()[y][x]. The copy
// is independent of the board.
func (b *Board) Data() [][]Color {
	n := int(b.size)
	rows := make([][]Color, n)
	for y := 0; y < n; y++ {
		rows[y] = append([]Color(nil), b.grid[y*n:(y+1)*n]...)
	}
	return rows
}

func (b *Board) inRange(x, y int) bool {
	return x >= 0 && y >= 0 && x < int(b.size) && y < int(b.size)
}

func (b *Board) index(p Point) int {
	return int(p.Y)*int(b.size) + int(p.X)
}

// String renders the grid for logs and test failures: '.' empty,
// 'X' black, 'O' white, one row per line, (0,0) top left.
func (b *Board) String() string {
	var sb strings.Builder
	n := int(b.size)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			switch b.grid[y*n+x] {
			case Black:
				sb.WriteByte('X')
			case White:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func gridsEqual(a, b []Color) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
