package board

import (
	"errors"
	"fmt"
)

// ErrBoardSize means that the requested side length is outside [1, MaxSize].
var ErrBoardSize error = errors.New("board size out of range")

// ErrInvalidMove means that the target cell is occupied or outside the board.
var ErrInvalidMove error = errors.New("invalid move")

// ErrSuicideMove means that the placed group would be left without liberties.
var ErrSuicideMove error = errors.New("suicide move")

// ErrKoRule means that the move would recreate the grid from two plies earlier.
var ErrKoRule error = errors.New("ko rule violation")

// ErrBadEncoding means that a binary encoding could not be decoded.
var ErrBadEncoding error = errors.New("malformed encoding")

// MoveError wraps a placement failure with the attempted coordinate.
// errors.Is matches the wrapped sentinel.
type MoveError struct {
	err error
	x   int
	y   int
}

func (e MoveError) Error() string {
	return fmt.Sprintf("place (%d,%d): %s", e.x, e.y, e.err)
}

func (e MoveError) Unwrap() error {
	return e.err
}
