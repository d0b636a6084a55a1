package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"goban/internal/domain/board"
	gameDomain "goban/internal/domain/game"
	errs "goban/internal/errors"
	"goban/internal/statuses"
	"goban/internal/usecase/auth"
)

type GameUseCase struct {
	store       GameStore
	userUsecase *auth.AuthUsecaseHandler
}

func NewGameUseCase(store GameStore, userUsecase *auth.AuthUsecaseHandler) *GameUseCase {
	return &GameUseCase{
		store:       store,
		userUsecase: userUsecase,
	}
}

// GameStore persists game documents and the live board snapshots.
// Board snapshots are keyed by the secret key so that spectators who
// only know the public key cannot reach them directly.
type GameStore interface {
	GenerateGameKeys(ctx context.Context) (secretKey string, publicKey string)
	CreateGame(ctx context.Context, gameData gameDomain.Game) error
	UpdateGame(ctx context.Context, gameData gameDomain.Game) error
	GetGameByPublicKey(ctx context.Context, publicKey string) (gameDomain.Game, error)
	HasUserActiveGame(ctx context.Context, userID string) (bool, error)
	SaveBoardState(ctx context.Context, secretKey string, state []byte) error
	LoadBoardState(ctx context.Context, secretKey string) ([]byte, error)
	DeleteBoardState(ctx context.Context, secretKey string) error
}

// CreateGame validates the requested board size, seats the creator
// according to the color preference and stores the fresh game together
// with the encoded empty board.
func (gm *GameUseCase) CreateGame(ctx context.Context, creatorID string, request gameDomain.GameCreateRequest) (gameDomain.GameCreateResponse, error) {
	size := request.BoardSize
	if size == 0 {
		size = 19
	}
	newBoard, err := board.New(size)
	if err != nil {
		return gameDomain.GameCreateResponse{}, errs.ErrBadBoardSize
	}

	hasActive, err := gm.store.HasUserActiveGame(ctx, creatorID)
	if err != nil {
		return gameDomain.GameCreateResponse{}, fmt.Errorf("check active games: %w", err)
	}
	if hasActive {
		return gameDomain.GameCreateResponse{}, errs.ErrActiveGameExists
	}

	secretKey, publicKey := gm.store.GenerateGameKeys(ctx)

	newGame := gameDomain.Game{
		SecretKey: secretKey,
		PublicKey: publicKey,
		BoardSize: size,
		Status:    statuses.StatusWaitOpponent,
		CreatedAt: time.Now(),
	}
	switch request.Color {
	case "white":
		newGame.PlayerWhite = creatorID
	case "black":
		newGame.PlayerBlack = creatorID
	default:
		// random — жребий
		if rand.Intn(2) == 0 {
			newGame.PlayerBlack = creatorID
		} else {
			newGame.PlayerWhite = creatorID
		}
	}

	if err = gm.store.CreateGame(ctx, newGame); err != nil {
		return gameDomain.GameCreateResponse{}, fmt.Errorf("create game: %w", err)
	}

	state, err := newBoard.MarshalBinary()
	if err != nil {
		return gameDomain.GameCreateResponse{}, fmt.Errorf("encode board: %w", err)
	}
	if err = gm.store.SaveBoardState(ctx, secretKey, state); err != nil {
		return gameDomain.GameCreateResponse{}, fmt.Errorf("save board state: %w", err)
	}

	return gameDomain.GameCreateResponse{
		PublicKey: publicKey,
		SecretKey: secretKey,
	}, nil
}

// JoinGame seats the user on the free side of a waiting game and
// activates it. Joining a game the user already plays in just reports
// the seat back, so a dropped client can reconnect.
func (gm *GameUseCase) JoinGame(ctx context.Context, userID string, publicKey string) (gameDomain.GameJoinResponse, error) {
	gameData, err := gm.store.GetGameByPublicKey(ctx, publicKey)
	if err != nil {
		return gameDomain.GameJoinResponse{}, err
	}

	if gameData.PlayerBlack == userID {
		return gameDomain.GameJoinResponse{PublicKey: publicKey, Color: board.Black.String()}, nil
	}
	if gameData.PlayerWhite == userID {
		return gameDomain.GameJoinResponse{PublicKey: publicKey, Color: board.White.String()}, nil
	}

	switch gameData.Status {
	case statuses.StatusWaitOpponent:
	case statuses.StatusActive:
		return gameDomain.GameJoinResponse{}, errs.ErrGameFull
	default:
		return gameDomain.GameJoinResponse{}, errs.ErrGameNotActive
	}

	var color board.Color
	if gameData.PlayerBlack == "" {
		gameData.PlayerBlack = userID
		color = board.Black
	} else {
		gameData.PlayerWhite = userID
		color = board.White
	}

	now := time.Now()
	gameData.Status = statuses.StatusActive
	gameData.StartedAt = &now
	if err = gm.store.UpdateGame(ctx, gameData); err != nil {
		return gameDomain.GameJoinResponse{}, fmt.Errorf("update game: %w", err)
	}

	return gameDomain.GameJoinResponse{
		PublicKey: publicKey,
		Color:     color.String(),
	}, nil
}

// PlaceStone applies one move for the user. Rule violations come back
// as the board package sentinels and leave the stored state untouched.
func (gm *GameUseCase) PlaceStone(ctx context.Context, userID string, request gameDomain.MoveRequest) (gameDomain.GameStateResponse, error) {
	gameData, err := gm.store.GetGameByPublicKey(ctx, request.PublicKey)
	if err != nil {
		return gameDomain.GameStateResponse{}, err
	}
	if gameData.Status != statuses.StatusActive {
		return gameDomain.GameStateResponse{}, errs.ErrGameNotActive
	}

	userColor, err := playerColor(gameData, userID)
	if err != nil {
		return gameDomain.GameStateResponse{}, err
	}

	liveBoard, err := gm.loadBoard(ctx, gameData.SecretKey)
	if err != nil {
		return gameDomain.GameStateResponse{}, err
	}
	if liveBoard.Turn() != userColor {
		return gameDomain.GameStateResponse{}, errs.ErrNotYourTurn
	}

	if err = liveBoard.Place(request.X, request.Y); err != nil {
		return gameDomain.GameStateResponse{}, err
	}

	state, err := liveBoard.MarshalBinary()
	if err != nil {
		return gameDomain.GameStateResponse{}, fmt.Errorf("encode board: %w", err)
	}
	if err = gm.store.SaveBoardState(ctx, gameData.SecretKey, state); err != nil {
		return gameDomain.GameStateResponse{}, fmt.Errorf("save board state: %w", err)
	}

	return buildStateResponse(gameData, liveBoard), nil
}

// GetState reports the full position of a game by its public key.
// Finished games are served from the archived snapshot.
func (gm *GameUseCase) GetState(ctx context.Context, publicKey string) (gameDomain.GameStateResponse, error) {
	gameData, err := gm.store.GetGameByPublicKey(ctx, publicKey)
	if err != nil {
		return gameDomain.GameStateResponse{}, err
	}

	var liveBoard *board.Board
	if gameData.Status == statuses.StatusCompleted && len(gameData.FinalState) != 0 {
		liveBoard = &board.Board{}
		if err = liveBoard.UnmarshalBinary(gameData.FinalState); err != nil {
			return gameDomain.GameStateResponse{}, fmt.Errorf("decode archived board: %w", err)
		}
	} else {
		liveBoard, err = gm.loadBoard(ctx, gameData.SecretKey)
		if err != nil {
			return gameDomain.GameStateResponse{}, err
		}
	}

	return buildStateResponse(gameData, liveBoard), nil
}

// LeaveGame resigns the user from the game. An active game goes to the
// opponent, a waiting game is closed without a winner. The final board
// is archived on the game document and the live snapshot dropped.
func (gm *GameUseCase) LeaveGame(ctx context.Context, userID string, publicKey string) (gameDomain.GameStateResponse, error) {
	gameData, err := gm.store.GetGameByPublicKey(ctx, publicKey)
	if err != nil {
		return gameDomain.GameStateResponse{}, err
	}
	if gameData.Status == statuses.StatusCompleted {
		return gameDomain.GameStateResponse{}, errs.ErrGameNotActive
	}

	userColor, err := playerColor(gameData, userID)
	if err != nil {
		return gameDomain.GameStateResponse{}, err
	}

	liveBoard, err := gm.loadBoard(ctx, gameData.SecretKey)
	if err != nil {
		return gameDomain.GameStateResponse{}, err
	}

	wasActive := gameData.Status == statuses.StatusActive

	now := time.Now()
	gameData.Status = statuses.StatusCompleted
	gameData.FinishedAt = &now
	gameData.MoveCount = len(liveBoard.Moves())
	if gameData.FinalState, err = liveBoard.MarshalBinary(); err != nil {
		return gameDomain.GameStateResponse{}, fmt.Errorf("encode board: %w", err)
	}
	if wasActive {
		gameData.Winner = userColor.Opponent().String()
	}

	if err = gm.store.UpdateGame(ctx, gameData); err != nil {
		return gameDomain.GameStateResponse{}, fmt.Errorf("update game: %w", err)
	}
	if err = gm.store.DeleteBoardState(ctx, gameData.SecretKey); err != nil {
		return gameDomain.GameStateResponse{}, fmt.Errorf("delete board state: %w", err)
	}

	if wasActive {
		// поражение уходит вышедшему, победа — оппоненту
		winnerID := gameData.PlayerBlack
		if userColor == board.Black {
			winnerID = gameData.PlayerWhite
		}
		if err = gm.userUsecase.AddLose(ctx, userID); err != nil {
			return gameDomain.GameStateResponse{}, fmt.Errorf("update loser statistic: %w", err)
		}
		if err = gm.userUsecase.AddWin(ctx, winnerID); err != nil {
			return gameDomain.GameStateResponse{}, fmt.Errorf("update winner statistic: %w", err)
		}
	}

	return buildStateResponse(gameData, liveBoard), nil
}

// GetGameByPublicKey exposes the bare game document, used by the
// delivery layer to validate watch subscriptions.
func (gm *GameUseCase) GetGameByPublicKey(ctx context.Context, publicKey string) (gameDomain.Game, error) {
	return gm.store.GetGameByPublicKey(ctx, publicKey)
}

func (gm *GameUseCase) loadBoard(ctx context.Context, secretKey string) (*board.Board, error) {
	state, err := gm.store.LoadBoardState(ctx, secretKey)
	if err != nil {
		return nil, fmt.Errorf("load board state: %w", err)
	}
	liveBoard := &board.Board{}
	if err = liveBoard.UnmarshalBinary(state); err != nil {
		return nil, fmt.Errorf("decode board: %w", err)
	}
	return liveBoard, nil
}

func playerColor(gameData gameDomain.Game, userID string) (board.Color, error) {
	switch userID {
	case "":
		return board.Empty, errs.ErrNotInGame
	case gameData.PlayerBlack:
		return board.Black, nil
	case gameData.PlayerWhite:
		return board.White, nil
	default:
		return board.Empty, errs.ErrNotInGame
	}
}

func buildStateResponse(gameData gameDomain.Game, liveBoard *board.Board) gameDomain.GameStateResponse {
	data := liveBoard.Data()
	grid := make([][]int, len(data))
	for y, row := range data {
		grid[y] = make([]int, len(row))
		for x, c := range row {
			grid[y][x] = int(c)
		}
	}

	boardMoves := liveBoard.Moves()
	moves := make([]gameDomain.MovePoint, len(boardMoves))
	for i, p := range boardMoves {
		moves[i] = gameDomain.MovePoint{X: int(p.X), Y: int(p.Y)}
	}

	scores := liveBoard.Scores()
	territory := liveBoard.Territory()

	return gameDomain.GameStateResponse{
		PublicKey: gameData.PublicKey,
		Status:    gameData.Status,
		Size:      liveBoard.Size(),
		Turn:      liveBoard.Turn().String(),
		Grid:      grid,
		Moves:     moves,
		Captures: gameDomain.Captures{
			Black: scores[board.Black],
			White: scores[board.White],
		},
		Territory: gameDomain.Territory{
			Neutral: territory[board.Empty],
			Black:   territory[board.Black],
			White:   territory[board.White],
		},
		PlayerBlack: gameData.PlayerBlack,
		PlayerWhite: gameData.PlayerWhite,
		Winner:      gameData.Winner,
	}
}
