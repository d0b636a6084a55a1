package errors

import "errors"

var (
	ErrUserNotFound    = errors.New("user with provided username was not found")
	ErrWrongPassword   = errors.New("wrong password")
	ErrSessionNotFound = errors.New("session was not found")
	ErrUserExists      = errors.New("user already exists")

	ErrGameNotFound     = errors.New("game not found")
	ErrGameFull         = errors.New("game already has two players")
	ErrActiveGameExists = errors.New("user already has an active game")
	ErrGameNotActive    = errors.New("game is not active")
	ErrNotInGame        = errors.New("user is not a player in this game")
	ErrNotYourTurn      = errors.New("it is not your turn")
	ErrBadBoardSize     = errors.New("unsupported board size")

	ErrInternal = errors.New("internal error")
)
