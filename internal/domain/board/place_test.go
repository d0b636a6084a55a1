package board

import (
	"bytes"
	"errors"
	"testing"
)

// snapshot encodes the full board state so tests can assert that a
// rejected move changed nothing at all.
func snapshot(t *testing.T, b *Board) []byte {
	t.Helper()
	data, err := b.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestPlaceFirstMove(t *testing.T) {
	b := mustBoard(t, 5)
	if err := b.Place(2, 2); err != nil {
		t.Fatal(err)
	}
	if b.Data()[2][2] != Black {
		t.Fatal("placed stone is not on the grid")
	}
	if b.Turn() != White {
		t.Fatalf("turn after first move = %v, want white", b.Turn())
	}
	if moves := b.Moves(); len(moves) != 1 || moves[0] != (Point{2, 2}) {
		t.Fatalf("move log = %v", moves)
	}
}

func TestPlaceInvalid(t *testing.T) {
	b := mustBoard(t, 5)
	play(t, b, Point{2, 2})
	before := snapshot(t, b)

	tests := []struct {
		name string
		x, y int
	}{
		{"occupied", 2, 2},
		{"negative x", -1, 0},
		{"negative y", 0, -1},
		{"x past edge", 5, 0},
		{"y past edge", 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.Place(tt.x, tt.y)
			if !errors.Is(err, ErrInvalidMove) {
				t.Fatalf("Place(%d,%d) = %v, want ErrInvalidMove", tt.x, tt.y, err)
			}
			if !bytes.Equal(before, snapshot(t, b)) {
				t.Fatal("rejected move changed board state")
			}
		})
	}
	if b.Turn() != White {
		t.Fatal("rejected moves advanced the turn")
	}
}

func TestPlaceSuicide(t *testing.T) {
	// X . . . X      white surrounds (2,2) on all four sides, each
	// . . O . .      white stone keeping outside liberties; black
	// . O . O .      into the middle captures nothing and dies
	// . . O . .
	// X . . . X
	b := mustBoard(t, 5)
	play(t, b,
		Point{0, 0}, Point{1, 2},
		Point{4, 4}, Point{3, 2},
		Point{0, 4}, Point{2, 1},
		Point{4, 0}, Point{2, 3},
	)
	before := snapshot(t, b)

	err := b.Place(2, 2)
	if !errors.Is(err, ErrSuicideMove) {
		t.Fatalf("suicidal placement = %v, want ErrSuicideMove", err)
	}
	if !bytes.Equal(before, snapshot(t, b)) {
		t.Fatal("rejected suicide changed board state")
	}
	if b.Turn() != Black {
		t.Fatal("rejected suicide advanced the turn")
	}
	if len(b.Moves()) != 8 {
		t.Fatal("rejected suicide was logged")
	}
}

func TestPlaceSuicideSingleCell(t *testing.T) {
	b := mustBoard(t, 1)
	if err := b.Place(0, 0); !errors.Is(err, ErrSuicideMove) {
		t.Fatalf("lone stone on 1x1 board = %v, want ErrSuicideMove", err)
	}
}

func TestPlaceSnapback(t *testing.T) {
	// . O X . .    black takes (0,0): locally the corner has no
	// O X . . .    liberty, but both white stones run out first and
	// X . . . .    come off, freeing the corner
	b := mustBoard(t, 5)
	play(t, b,
		Point{2, 0}, Point{1, 0},
		Point{1, 1}, Point{0, 1},
		Point{0, 2}, Point{4, 4},
	)

	if err := b.Place(0, 0); err != nil {
		t.Fatalf("capturing placement rejected: %v", err)
	}
	if got := b.Scores()[Black]; got != 2 {
		t.Fatalf("black capture score = %d, want 2", got)
	}
	if b.At(1, 0) != Empty || b.At(0, 1) != Empty {
		t.Fatalf("captured cells still occupied:\n%s", b)
	}
	if b.At(0, 0) != Black {
		t.Fatal("placed stone missing after capture")
	}
}

func TestPlaceKo(t *testing.T) {
	// . X O .    the classic shape: black takes at (2,1), white may
	// X O . O    not take straight back at (1,1), because that grid
	// . X O .    stood exactly two plies earlier
	// . . . X
	b := mustBoard(t, 4)
	play(t, b,
		Point{1, 0}, Point{2, 0},
		Point{0, 1}, Point{3, 1},
		Point{1, 2}, Point{2, 2},
		Point{3, 3}, Point{1, 1},
	)
	play(t, b, Point{2, 1}) // black captures the ko
	if got := b.Scores()[Black]; got != 1 {
		t.Fatalf("black capture score = %d, want 1", got)
	}
	before := snapshot(t, b)

	err := b.Place(1, 1)
	if !errors.Is(err, ErrKoRule) {
		t.Fatalf("immediate recapture = %v, want ErrKoRule", err)
	}
	if !bytes.Equal(before, snapshot(t, b)) {
		t.Fatal("rejected ko recapture changed board state")
	}
	if b.Turn() != White {
		t.Fatal("rejected ko recapture advanced the turn")
	}

	// After an exchange elsewhere the same point is open again: the
	// position it recreates is no longer the one from two plies back.
	play(t, b, Point{3, 0}, Point{0, 3})
	if err := b.Place(1, 1); err != nil {
		t.Fatalf("delayed recapture rejected: %v", err)
	}
	if got := b.Scores()[White]; got != 1 {
		t.Fatalf("white capture score = %d, want 1", got)
	}
}

func TestPlaceCaptureScenario(t *testing.T) {
	// . . . . .    white plays the center, black surrounds it move
	// . . X . .    by move; the last black stone takes it off and
	// . X O X .    scores one capture
	// . . X . .
	// . . . . .
	b := mustBoard(t, 5)
	play(t, b,
		Point{2, 1}, Point{2, 2},
		Point{1, 2}, Point{0, 0},
		Point{3, 2}, Point{0, 4},
	)
	if err := b.Place(2, 3); err != nil {
		t.Fatalf("final capturing move rejected: %v", err)
	}
	if b.At(2, 2) != Empty {
		t.Fatalf("captured center stone still present:\n%s", b)
	}
	if got := b.Scores()[Black]; got != 1 {
		t.Fatalf("black capture score = %d, want 1", got)
	}
	if b.Turn() != White {
		t.Fatalf("turn after capture = %v, want white", b.Turn())
	}
}

func TestPlaceCaptureKeepsOwnStones(t *testing.T) {
	// X O . : white at (1,0) is captured by black (2,0); the black
	// stone at (0,0) must survive the removal pass
	b := mustBoard(t, 3)
	play(t, b, Point{0, 0}, Point{1, 0}, Point{1, 1}, Point{2, 2})
	if err := b.Place(2, 0); err != nil {
		t.Fatal(err)
	}
	if b.At(1, 0) != Empty {
		t.Fatal("surrounded white stone not captured")
	}
	if b.At(0, 0) != Black || b.At(2, 0) != Black {
		t.Fatalf("capture removed the wrong stones:\n%s", b)
	}
}
