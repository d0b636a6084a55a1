package board

// Territory counts empty cells owned by each color, indexed like
// Scores: neutral cells at [Empty], Black territory at [Black], White
// territory at [White].
//
// Each maximal empty region is attributed to a color only when every
// stone bordering the region has that one color. Regions bordered by
// both colors, and regions touching no stone at all (the empty board),
// are neutral. Stones themselves are never territory.
func (b *Board) Territory() [3]uint32 {
	var t [3]uint32
	size := int(b.size)
	seen := make(map[Point]bool)
	for i, c := range b.grid {
		if c != Empty {
			continue
		}
		p := Point{uint8(i % size), uint8(i / size)}
		if seen[p] {
			continue
		}
		region := resolveGroup(b.grid, size, p)
		owner := Empty
		mixed := false
		for cell := range region.Stones {
			seen[cell] = true
			for _, n := range Neighbors(size, cell) {
				border := b.grid[cellIndex(size, n)]
				if border == Empty {
					continue
				}
				if owner == Empty {
					owner = border
				} else if owner != border {
					mixed = true
				}
			}
		}
		if mixed {
			owner = Empty
		}
		t[owner] += uint32(len(region.Stones))
	}
	return t
}
