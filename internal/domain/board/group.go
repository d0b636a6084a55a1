package board

// Group is a maximal 4-connected component of same-colored cells,
// resolved on demand from a seed coordinate. Stones is a set; no order
// is defined over it.
type Group struct {
	Color  Color
	Stones map[Point]bool
}

// Size returns the number of member cells.
func (g Group) Size() int {
	return len(g.Stones)
}

// Has reports whether p is a member of the group.
func (g Group) Has(p Point) bool {
	return g.Stones[p]
}

// Neighbors returns the orthogonal neighbors of p clipped to
// [0, size) on both axes, no wraparound: 2 for a corner, 3 for a
// non-corner edge cell, 4 for an interior cell.
func Neighbors(size int, p Point) []Point {
	out := make([]Point, 0, 4)
	if p.Y > 0 {
		out = append(out, Point{p.X, p.Y - 1})
	}
	if int(p.Y) < size-1 {
		out = append(out, Point{p.X, p.Y + 1})
	}
	if p.X > 0 {
		out = append(out, Point{p.X - 1, p.Y})
	}
	if int(p.X) < size-1 {
		out = append(out, Point{p.X + 1, p.Y})
	}
	return out
}

// GroupAt resolves the maximal same-colored group containing (x, y).
// Seeding from an Empty cell yields the connected empty region, which
// is what the territory pass walks. Out-of-range coordinates yield a
// zero Group.
func (b *Board) GroupAt(x, y int) Group {
	if !b.inRange(x, y) {
		return Group{}
	}
	return resolveGroup(b.grid, int(b.size), Point{uint8(x), uint8(y)})
}

// IsSurrounded reports whether no member of g has an Empty neighbor on
// the current grid. Callers seed groups from occupied cells.
func (b *Board) IsSurrounded(g Group) bool {
	return !groupHasLiberty(b.grid, int(b.size), g)
}

// resolveGroup flood-fills from seed over cells matching the seed's
// color. The worklist is explicit; recursion depth would otherwise be
// bounded only by the region size.
func resolveGroup(grid []Color, size int, seed Point) Group {
	color := grid[cellIndex(size, seed)]
	stones := map[Point]bool{seed: true}
	frontier := []Point{seed}
	for len(frontier) > 0 {
		p := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		for _, n := range Neighbors(size, p) {
			if stones[n] || grid[cellIndex(size, n)] != color {
				continue
			}
			stones[n] = true
			frontier = append(frontier, n)
		}
	}
	return Group{Color: color, Stones: stones}
}

// groupHasLiberty reports whether any member of g touches an Empty cell.
func groupHasLiberty(grid []Color, size int, g Group) bool {
	for p := range g.Stones {
		for _, n := range Neighbors(size, p) {
			if grid[cellIndex(size, n)] == Empty {
				return true
			}
		}
	}
	return false
}

func cellIndex(size int, p Point) int {
	return int(p.Y)*size + int(p.X)
}
