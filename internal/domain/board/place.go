package board

// Place attempts to put the current player's stone at (x, y).
//
// Validation and mutation run on a scratch copy of the grid: opponent
// groups left without liberties by the new stone are captured first,
// then the placed group itself is checked for suicide, then the result
// is compared against the grid from two plies earlier (Ko). Only a move
// that passes every check is committed; on failure the board is left
// exactly as it was.
//
// Failures wrap ErrInvalidMove (occupied or out-of-range target),
// ErrSuicideMove or ErrKoRule.
func (b *Board) Place(x, y int) error {
	if !b.inRange(x, y) {
		return MoveError{err: ErrInvalidMove, x: x, y: y}
	}
	p := Point{uint8(x), uint8(y)}
	if b.grid[b.index(p)] != Empty {
		return MoveError{err: ErrInvalidMove, x: x, y: y}
	}

	mover := b.turn
	size := int(b.size)

	next := make([]Color, len(b.grid))
	copy(next, b.grid)
	next[b.index(p)] = mover

	// Capture first: adjacent opponent groups with no liberties come
	// off before the placed group is judged, which is what makes
	// snapback legal. A neighbor emptied by an earlier capture in this
	// same loop reads Empty and is skipped.
	var captured uint32
	for _, n := range Neighbors(size, p) {
		c := next[cellIndex(size, n)]
		if c == Empty || c == mover {
			continue
		}
		g := resolveGroup(next, size, n)
		if groupHasLiberty(next, size, g) {
			continue
		}
		for s := range g.Stones {
			next[cellIndex(size, s)] = Empty
		}
		captured += uint32(len(g.Stones))
	}

	own := resolveGroup(next, size, p)
	if !groupHasLiberty(next, size, own) {
		return MoveError{err: ErrSuicideMove, x: x, y: y}
	}

	if len(b.history) == koHistoryLen && gridsEqual(next, b.history[0]) {
		return MoveError{err: ErrKoRule, x: x, y: y}
	}

	b.grid = next
	b.turn = mover.Opponent()
	b.moves = append(b.moves, p)
	b.captures[mover] += captured
	b.history = append(b.history, next)
	if len(b.history) > koHistoryLen {
		b.history = b.history[1:]
	}
	return nil
}
