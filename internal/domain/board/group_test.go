package board

import "testing"

func TestNeighborsCounts(t *testing.T) {
	tests := []struct {
		name string
		size int
		p    Point
		want int
	}{
		{"corner top left", 5, Point{0, 0}, 2},
		{"corner bottom right", 5, Point{4, 4}, 2},
		{"edge top", 5, Point{2, 0}, 3},
		{"edge left", 5, Point{0, 2}, 3},
		{"interior", 5, Point{2, 2}, 4},
		{"single cell board", 1, Point{0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Neighbors(tt.size, tt.p)
			if len(got) != tt.want {
				t.Fatalf("Neighbors(%d, %v) returned %d points, want %d", tt.size, tt.p, len(got), tt.want)
			}
			for _, n := range got {
				if int(n.X) >= tt.size || int(n.Y) >= tt.size {
					t.Fatalf("Neighbors(%d, %v) produced out-of-range %v", tt.size, tt.p, n)
				}
			}
		})
	}
}

func TestNeighborsMembers(t *testing.T) {
	got := Neighbors(3, Point{1, 1})
	want := map[Point]bool{{1, 0}: true, {1, 2}: true, {0, 1}: true, {2, 1}: true}
	for _, n := range got {
		if !want[n] {
			t.Fatalf("unexpected neighbor %v", n)
		}
		delete(want, n)
	}
	if len(want) != 0 {
		t.Fatalf("missing neighbors: %v", want)
	}
}

func TestGroupAtSingleton(t *testing.T) {
	b := mustBoard(t, 5)
	play(t, b, Point{2, 2})
	g := b.GroupAt(2, 2)
	if g.Color != Black {
		t.Fatalf("group color = %v, want black", g.Color)
	}
	if g.Size() != 1 || !g.Has(Point{2, 2}) {
		t.Fatalf("isolated stone resolved to group of %d", g.Size())
	}
}

func TestGroupAtChain(t *testing.T) {
	// X X X .   the white stones below the chain must not join it
	// . O . .
	b := mustBoard(t, 5)
	play(t, b,
		Point{0, 0}, Point{1, 1},
		Point{1, 0}, Point{3, 3},
		Point{2, 0},
	)
	g := b.GroupAt(1, 0)
	if g.Size() != 3 {
		t.Fatalf("chain resolved to %d stones, want 3:\n%s", g.Size(), b)
	}
	for _, p := range []Point{{0, 0}, {1, 0}, {2, 0}} {
		if !g.Has(p) {
			t.Fatalf("chain missing %v", p)
		}
	}
	if g.Has(Point{3, 0}) || g.Has(Point{1, 1}) {
		t.Fatal("chain absorbed a foreign cell")
	}
}

func TestGroupAtEmptyRegion(t *testing.T) {
	b := mustBoard(t, 2)
	g := b.GroupAt(0, 0)
	if g.Color != Empty {
		t.Fatalf("empty seed resolved color %v", g.Color)
	}
	if g.Size() != 4 {
		t.Fatalf("empty 2x2 region has %d cells, want 4", g.Size())
	}
}

func TestGroupAtOutsideBoard(t *testing.T) {
	b := mustBoard(t, 3)
	g := b.GroupAt(7, 7)
	if g.Size() != 0 {
		t.Fatalf("out-of-range seed resolved %d cells", g.Size())
	}
}

func TestIsSurrounded(t *testing.T) {
	// O X .
	// X . .
	b := mustBoard(t, 3)
	put(b, 0, 0, White)
	put(b, 1, 0, Black)
	put(b, 0, 1, Black)
	if !b.IsSurrounded(b.GroupAt(0, 0)) {
		t.Fatal("corner stone with both liberties filled reported as free")
	}
	put(b, 0, 1, Empty)
	if b.IsSurrounded(b.GroupAt(0, 0)) {
		t.Fatal("corner stone with a liberty reported as surrounded")
	}
}

func TestIsSurroundedSharedLiberty(t *testing.T) {
	// X X    a two-stone chain whose only liberty is (2,0)
	// O O
	b := mustBoard(t, 3)
	put(b, 0, 0, Black)
	put(b, 1, 0, Black)
	put(b, 0, 1, White)
	put(b, 1, 1, White)
	if b.IsSurrounded(b.GroupAt(0, 0)) {
		t.Fatal("chain with one shared liberty reported as surrounded")
	}
	put(b, 2, 0, White)
	if !b.IsSurrounded(b.GroupAt(0, 0)) {
		t.Fatal("chain with no liberties reported as free")
	}
}
