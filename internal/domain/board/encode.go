package board

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// codecVersion prefixes every encoded Board so stored blobs from an
// older layout fail loudly instead of decoding into garbage.
const codecVersion = 1

// MarshalBinary encodes the full board state: version, size, turn, the
// grid, capture counters, the move log and the Ko history. The layout
// is fixed-width with big-endian integers, so equal boards encode to
// equal bytes and a decoded board resumes with Ko detection intact.
func (b *Board) MarshalBinary() ([]byte, error) {
	n := int(b.size)
	out := make([]byte, 0, 3+n*n+12+4+2*len(b.moves)+1+len(b.history)*n*n)
	out = append(out, codecVersion, b.size, byte(b.turn))
	out = appendGrid(out, b.grid)
	for _, c := range b.captures {
		out = binary.BigEndian.AppendUint32(out, c)
	}
	out = binary.BigEndian.AppendUint32(out, uint32(len(b.moves)))
	for _, m := range b.moves {
		out = append(out, m.X, m.Y)
	}
	out = append(out, byte(len(b.history)))
	for _, g := range b.history {
		out = appendGrid(out, g)
	}
	return out, nil
}

// UnmarshalBinary decodes a blob produced by MarshalBinary, replacing
// the receiver's state. Every length, tag and coordinate is validated;
// failures wrap ErrBadEncoding.
func (b *Board) UnmarshalBinary(data []byte) error {
	if len(data) < 3 {
		return fmt.Errorf("%w: truncated header", ErrBadEncoding)
	}
	if data[0] != codecVersion {
		return fmt.Errorf("%w: unknown version %d", ErrBadEncoding, data[0])
	}
	size := int(data[1])
	if size < 1 {
		return fmt.Errorf("%w: zero board size", ErrBadEncoding)
	}
	turn := Color(data[2])
	if turn != Black && turn != White {
		return fmt.Errorf("%w: turn tag %d", ErrBadEncoding, data[2])
	}
	off := 3

	grid, err := readGrid(data, &off, size)
	if err != nil {
		return err
	}

	var captures [3]uint32
	for i := range captures {
		v, err := readUint32(data, &off)
		if err != nil {
			return err
		}
		captures[i] = v
	}

	moveCount, err := readUint32(data, &off)
	if err != nil {
		return err
	}
	if len(data)-off < 2*int(moveCount) {
		return fmt.Errorf("%w: truncated move log", ErrBadEncoding)
	}
	moves := make([]Point, 0, moveCount)
	for i := uint32(0); i < moveCount; i++ {
		p := Point{data[off], data[off+1]}
		off += 2
		if int(p.X) >= size || int(p.Y) >= size {
			return fmt.Errorf("%w: move (%d,%d) outside board", ErrBadEncoding, p.X, p.Y)
		}
		moves = append(moves, p)
	}

	if off >= len(data) {
		return fmt.Errorf("%w: truncated history", ErrBadEncoding)
	}
	historyCount := int(data[off])
	off++
	if historyCount > koHistoryLen {
		return fmt.Errorf("%w: history of %d grids", ErrBadEncoding, historyCount)
	}
	history := make([][]Color, 0, historyCount)
	for i := 0; i < historyCount; i++ {
		g, err := readGrid(data, &off, size)
		if err != nil {
			return err
		}
		history = append(history, g)
	}

	if off != len(data) {
		return fmt.Errorf("%w: %d trailing bytes", ErrBadEncoding, len(data)-off)
	}

	b.size = uint8(size)
	b.grid = grid
	b.turn = turn
	b.moves = moves
	b.captures = captures
	b.history = history
	return nil
}

// MarshalBinary encodes the coordinate as two bytes, X then Y.
func (p Point) MarshalBinary() ([]byte, error) {
	return []byte{p.X, p.Y}, nil
}

// UnmarshalBinary decodes a two-byte coordinate.
func (p *Point) UnmarshalBinary(data []byte) error {
	if len(data) != 2 {
		return fmt.Errorf("%w: point is %d bytes", ErrBadEncoding, len(data))
	}
	p.X, p.Y = data[0], data[1]
	return nil
}

// MarshalBinary encodes the group as a color tag, a big-endian member
// count and the member coordinates in row-major order. Stones is a map,
// so members are sorted first: equal groups encode to equal bytes.
func (g Group) MarshalBinary() ([]byte, error) {
	points := make([]Point, 0, len(g.Stones))
	for p := range g.Stones {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Y != points[j].Y {
			return points[i].Y < points[j].Y
		}
		return points[i].X < points[j].X
	})
	out := make([]byte, 0, 5+2*len(points))
	out = append(out, byte(g.Color))
	out = binary.BigEndian.AppendUint32(out, uint32(len(points)))
	for _, p := range points {
		out = append(out, p.X, p.Y)
	}
	return out, nil
}

// UnmarshalBinary decodes a group encoded by MarshalBinary. Member
// order is not required to be canonical on input.
func (g *Group) UnmarshalBinary(data []byte) error {
	if len(data) < 5 {
		return fmt.Errorf("%w: truncated group", ErrBadEncoding)
	}
	color := Color(data[0])
	if color > White {
		return fmt.Errorf("%w: color tag %d", ErrBadEncoding, data[0])
	}
	count := binary.BigEndian.Uint32(data[1:5])
	if len(data) != 5+2*int(count) {
		return fmt.Errorf("%w: group of %d stones in %d bytes", ErrBadEncoding, count, len(data))
	}
	stones := make(map[Point]bool, count)
	for off := 5; off < len(data); off += 2 {
		stones[Point{data[off], data[off+1]}] = true
	}
	g.Color = color
	g.Stones = stones
	return nil
}

func appendGrid(out []byte, grid []Color) []byte {
	for _, c := range grid {
		out = append(out, byte(c))
	}
	return out
}

func readGrid(data []byte, off *int, size int) ([]Color, error) {
	cells := size * size
	if len(data)-*off < cells {
		return nil, fmt.Errorf("%w: truncated grid", ErrBadEncoding)
	}
	grid := make([]Color, cells)
	for i := 0; i < cells; i++ {
		c := Color(data[*off+i])
		if c > White {
			return nil, fmt.Errorf("%w: cell tag %d", ErrBadEncoding, data[*off+i])
		}
		grid[i] = c
	}
	*off += cells
	return grid, nil
}

func readUint32(data []byte, off *int) (uint32, error) {
	if len(data)-*off < 4 {
		return 0, fmt.Errorf("%w: truncated integer", ErrBadEncoding)
	}
	v := binary.BigEndian.Uint32(data[*off : *off+4])
	*off += 4
	return v, nil
}
