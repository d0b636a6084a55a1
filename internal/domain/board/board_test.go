package board

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

func mustBoard(t *testing.T, size int) *Board {
	t.Helper()
	b, err := New(size)
	if err != nil {
		t.Fatalf("New(%d): %v", size, err)
	}
	return b
}

// play commits a sequence of moves that the test requires to be legal.
func play(t *testing.T, b *Board, moves ...Point) {
	t.Helper()
	for _, p := range moves {
		if err := b.Place(int(p.X), int(p.Y)); err != nil {
			t.Fatalf("setup move (%d,%d): %v", p.X, p.Y, err)
		}
	}
}

// put writes a stone directly into the grid, bypassing the rules, to
// build positions that would be tedious to reach through play.
func put(b *Board, x, y int, c Color) {
	b.grid[y*int(b.size)+x] = c
}

func TestNewBoardSize(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr error
	}{
		{"smallest", 1, nil},
		{"standard", 19, nil},
		{"largest", 255, nil},
		{"zero", 0, ErrBoardSize},
		{"negative", -3, ErrBoardSize},
		{"too large", 256, ErrBoardSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.size)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New(%d) error = %v, want %v", tt.size, err, tt.wantErr)
			}
			if tt.wantErr == nil && b.Size() != tt.size {
				t.Fatalf("New(%d).Size() = %d", tt.size, b.Size())
			}
		})
	}
}

func TestNewBoardIsEmpty(t *testing.T) {
	b := mustBoard(t, 9)
	if b.Turn() != Black {
		t.Fatalf("fresh board turn = %v, want black", b.Turn())
	}
	if len(b.Moves()) != 0 {
		t.Fatal("fresh board has moves")
	}
	if b.Scores() != [3]uint32{} {
		t.Fatal("fresh board has capture scores")
	}
	data := b.Data()
	if len(data) != 9 {
		t.Fatalf("data has %d rows", len(data))
	}
	for y := range data {
		for x := range data[y] {
			if data[y][x] != Empty {
				t.Fatalf("fresh board cell (%d,%d) = %v", x, y, data[y][x])
			}
		}
	}
}

func TestDataIsACopy(t *testing.T) {
	b := mustBoard(t, 3)
	play(t, b, Point{1, 1})
	data := b.Data()
	data[1][1] = White
	if b.At(1, 1) != Black {
		t.Fatal("mutating the snapshot changed the board")
	}
}

func TestAtOutsideBoard(t *testing.T) {
	b := mustBoard(t, 3)
	play(t, b, Point{0, 0})
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {100, 100}} {
		if c := b.At(p[0], p[1]); c != Empty {
			t.Fatalf("At(%d,%d) = %v, want empty", p[0], p[1], c)
		}
	}
}

func TestStringRender(t *testing.T) {
	b := mustBoard(t, 2)
	play(t, b, Point{0, 0}, Point{1, 1})
	if got, want := b.String(), "X.\n.O\n"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestDeterminism(t *testing.T) {
	sequence := []Point{{2, 1}, {2, 2}, {1, 2}, {0, 0}, {3, 2}, {0, 4}, {2, 3}}
	a := mustBoard(t, 5)
	b := mustBoard(t, 5)
	play(t, a, sequence...)
	play(t, b, sequence...)

	if a.Scores() != b.Scores() {
		t.Fatalf("scores diverged: %v vs %v", a.Scores(), b.Scores())
	}
	am, bm := a.Moves(), b.Moves()
	if len(am) != len(bm) {
		t.Fatalf("move logs diverged: %d vs %d", len(am), len(bm))
	}
	for i := range am {
		if am[i] != bm[i] {
			t.Fatalf("move %d diverged: %v vs %v", i, am[i], bm[i])
		}
	}
	ab, err := a.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	bb, err := b.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(ab, bb) {
		t.Fatalf("encodings diverged:\n%s\nvs\n%s", a, b)
	}
}

func BenchmarkRandomGame(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < b.N; i++ {
		board, err := New(19)
		if err != nil {
			b.Fatal(err)
		}
		for j := 0; j < 300; j++ {
			board.Place(r.Intn(19), r.Intn(19))
		}
	}
}
