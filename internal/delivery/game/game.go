package game

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"goban/internal/bootstrap"
	"goban/internal/delivery/auth"
	"goban/internal/domain/board"
	gameDomain "goban/internal/domain/game"
	errs "goban/internal/errors"
	"goban/internal/httpresponse"
	gameuc "goban/internal/usecase/game"
	"goban/internal/utils"
)

type GameHandler struct {
	cfg         bootstrap.Config
	log         *zap.SugaredLogger
	gameUC      *gameuc.GameUseCase
	authHandler *auth.AuthHandler
}

const (
	eventState  = "state"
	eventJoin   = "join"
	eventMove   = "move"
	eventFinish = "finish"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// watchers хранит открытые вебсокеты наблюдателей по публичному ключу партии.
var watchers = make(map[string]map[*websocket.Conn]bool)
var watchersMu sync.RWMutex

func NewGameHandler(cfg bootstrap.Config, log *zap.SugaredLogger, gameUC *gameuc.GameUseCase, authHandler *auth.AuthHandler) *GameHandler {
	return &GameHandler{
		cfg:         cfg,
		log:         log,
		gameUC:      gameUC,
		authHandler: authHandler,
	}
}

// HandleNewGame godoc
// @Summary Создание новой партии
// @Description Создаёт партию с выбранным размером доски и цветом создателя
// @Tags game
// @Accept json
// @Produce json
// @Param game body game.GameCreateRequest true "Размер доски и цвет создателя"
// @Success 200 {object} game.GameCreateResponse
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 500 {object} httpresponse.ErrorResponse
// @Router /game/new [post]
func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		g.log.Error("HandleNewGame: only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	userID := g.authHandler.GetUserID(w, r)
	if userID == "" {
		return
	}

	var createRequest gameDomain.GameCreateRequest
	if err := utils.DecodeJSONRequest(r, &createRequest); err != nil {
		g.log.Error("HandleNewGame: JSON decode error: ", err)
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, httpresponse.MalformedJSONErrorDesc)
		return
	}

	ctx := r.Context()

	createResponse, err := g.gameUC.CreateGame(ctx, userID, createRequest)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBadBoardSize):
			g.log.Errorf("HandleNewGame: bad board size: %d", createRequest.BoardSize)
			httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "недопустимый размер доски")
		case errors.Is(err, errs.ErrActiveGameExists):
			g.log.Error("HandleNewGame: пользователь уже состоит в игре!")
			httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "пользователь уже состоит в игре")
		default:
			g.log.Error("HandleNewGame: ", err)
			httpresponse.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	g.log.Infof("new game created with public key: %s", createResponse.PublicKey)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, createResponse)
}

// HandleJoinGame godoc
// @Summary Подключение к партии
// @Description Сажает пользователя за свободный цвет и активирует партию
// @Tags game
// @Accept json
// @Produce json
// @Param join body game.GameJoinRequest true "Публичный ключ партии"
// @Success 200 {object} game.GameJoinResponse
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /game/join [post]
func (g *GameHandler) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		g.log.Error("HandleJoinGame: only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	userID := g.authHandler.GetUserID(w, r)
	if userID == "" {
		return
	}

	var joinRequest gameDomain.GameJoinRequest
	if err := utils.DecodeJSONRequest(r, &joinRequest); err != nil {
		g.log.Error("HandleJoinGame: JSON decode error: ", err)
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, httpresponse.MalformedJSONErrorDesc)
		return
	}
	if joinRequest.PublicKey == "" {
		g.log.Error("HandleJoinGame: empty public_key")
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "не указан public_key")
		return
	}

	ctx := r.Context()

	joinResponse, err := g.gameUC.JoinGame(ctx, userID, joinRequest.PublicKey)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrGameNotFound):
			g.log.Errorf("HandleJoinGame: игра с ключом %s не найдена", joinRequest.PublicKey)
			httpresponse.WriteErrorResponse(w, http.StatusNotFound, "игра не найдена")
		case errors.Is(err, errs.ErrGameFull):
			g.log.Error("HandleJoinGame: в игре уже два игрока")
			httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "в игре уже два игрока")
		case errors.Is(err, errs.ErrGameNotActive):
			g.log.Error("HandleJoinGame: партия уже завершена")
			httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "партия уже завершена")
		default:
			g.log.Error("HandleJoinGame: ", err)
			httpresponse.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if state, err := g.gameUC.GetState(ctx, joinRequest.PublicKey); err == nil {
		g.broadcast(joinRequest.PublicKey, gameDomain.GameEvent{Event: eventJoin, State: &state})
	}

	g.log.Infof("user %s joined game %s as %s", userID, joinRequest.PublicKey, joinResponse.Color)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, joinResponse)
}

// HandlePlaceStone godoc
// @Summary Ход в партии
// @Description Ставит камень текущего игрока и возвращает новое состояние доски
// @Tags game
// @Accept json
// @Produce json
// @Param move body game.MoveRequest true "Публичный ключ партии и координаты хода"
// @Success 200 {object} game.GameStateResponse
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /game/place [post]
func (g *GameHandler) HandlePlaceStone(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		g.log.Error("HandlePlaceStone: only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	userID := g.authHandler.GetUserID(w, r)
	if userID == "" {
		return
	}

	var moveRequest gameDomain.MoveRequest
	if err := utils.DecodeJSONRequest(r, &moveRequest); err != nil {
		g.log.Error("HandlePlaceStone: JSON decode error: ", err)
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, httpresponse.MalformedJSONErrorDesc)
		return
	}
	if moveRequest.PublicKey == "" {
		g.log.Error("HandlePlaceStone: empty public_key")
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "не указан public_key")
		return
	}

	ctx := r.Context()

	state, err := g.gameUC.PlaceStone(ctx, userID, moveRequest)
	if err != nil {
		g.writePlaceError(w, moveRequest, err)
		return
	}

	g.broadcast(moveRequest.PublicKey, gameDomain.GameEvent{
		Event: eventMove,
		Move:  &gameDomain.MovePoint{X: moveRequest.X, Y: moveRequest.Y},
		State: &state,
	})

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) writePlaceError(w http.ResponseWriter, moveRequest gameDomain.MoveRequest, err error) {
	switch {
	case errors.Is(err, errs.ErrGameNotFound):
		g.log.Errorf("HandlePlaceStone: игра с ключом %s не найдена", moveRequest.PublicKey)
		httpresponse.WriteErrorResponse(w, http.StatusNotFound, "игра не найдена")
	case errors.Is(err, errs.ErrGameNotActive):
		g.log.Error("HandlePlaceStone: партия не активна")
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "партия не активна")
	case errors.Is(err, errs.ErrNotInGame):
		g.log.Error("HandlePlaceStone: пользователь не в игре!")
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "пользователь не в игре")
	case errors.Is(err, errs.ErrNotYourTurn):
		g.log.Error("HandlePlaceStone: сейчас не ваш ход")
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "сейчас не ваш ход")
	case errors.Is(err, board.ErrInvalidMove),
		errors.Is(err, board.ErrSuicideMove),
		errors.Is(err, board.ErrKoRule):
		g.log.Infof("HandlePlaceStone: rejected move (%d,%d): %v", moveRequest.X, moveRequest.Y, err)
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		g.log.Error("HandlePlaceStone: ", err)
		httpresponse.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
	}
}

// HandleGetState godoc
// @Summary Состояние партии
// @Description Возвращает позицию, счёт и территорию по публичному ключу
// @Tags game
// @Produce json
// @Param id query string true "Публичный ключ партии"
// @Success 200 {object} game.GameStateResponse
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /game/state [get]
func (g *GameHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		g.log.Error("HandleGetState: only GET method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	publicKey := r.URL.Query().Get("id")
	if publicKey == "" {
		g.log.Error("HandleGetState: отсутствует параметр id")
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "отсутствует параметр id")
		return
	}

	state, err := g.gameUC.GetState(r.Context(), publicKey)
	if err != nil {
		if errors.Is(err, errs.ErrGameNotFound) {
			g.log.Errorf("HandleGetState: игра с ключом %s не найдена", publicKey)
			httpresponse.WriteErrorResponse(w, http.StatusNotFound, "игра не найдена")
			return
		}
		g.log.Error("HandleGetState: ", err)
		httpresponse.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

// HandleLeaveGame godoc
// @Summary Выход из партии
// @Description Сдаёт партию: активная игра уходит оппоненту, ожидающая закрывается
// @Tags game
// @Accept json
// @Produce json
// @Param leave body game.GameLeaveRequest true "Публичный ключ партии"
// @Success 200 {object} game.GameStateResponse
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /game/leave [post]
func (g *GameHandler) HandleLeaveGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		g.log.Error("HandleLeaveGame: only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	userID := g.authHandler.GetUserID(w, r)
	if userID == "" {
		return
	}

	var leaveRequest gameDomain.GameLeaveRequest
	if err := utils.DecodeJSONRequest(r, &leaveRequest); err != nil {
		g.log.Error("HandleLeaveGame: JSON decode error: ", err)
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, httpresponse.MalformedJSONErrorDesc)
		return
	}
	if leaveRequest.PublicKey == "" {
		g.log.Error("HandleLeaveGame: empty public_key")
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "не указан public_key")
		return
	}

	ctx := r.Context()

	state, err := g.gameUC.LeaveGame(ctx, userID, leaveRequest.PublicKey)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrGameNotFound):
			g.log.Errorf("HandleLeaveGame: игра с ключом %s не найдена", leaveRequest.PublicKey)
			httpresponse.WriteErrorResponse(w, http.StatusNotFound, "игра не найдена")
		case errors.Is(err, errs.ErrGameNotActive):
			g.log.Error("HandleLeaveGame: партия уже завершена")
			httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "партия уже завершена")
		case errors.Is(err, errs.ErrNotInGame):
			g.log.Error("HandleLeaveGame: пользователь не в игре!")
			httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "пользователь не в игре")
		default:
			g.log.Error("HandleLeaveGame: ", err)
			httpresponse.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	g.broadcast(leaveRequest.PublicKey, gameDomain.GameEvent{Event: eventFinish, State: &state})

	g.log.Infof("user %s left game %s", userID, leaveRequest.PublicKey)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

// HandleWatchGame godoc
// @Summary Наблюдение за партией
// @Description Открывает вебсокет и шлёт состояние после каждого события партии
// @Tags game
// @Param id query string true "Публичный ключ партии"
// @Success 101 {string} string "Switching Protocols"
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /game/watch [get]
func (g *GameHandler) HandleWatchGame(w http.ResponseWriter, r *http.Request) {
	publicKey := r.URL.Query().Get("id")
	if publicKey == "" {
		g.log.Error("HandleWatchGame: отсутствует параметр id")
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "отсутствует параметр id")
		return
	}

	ctx := r.Context()

	if _, err := g.gameUC.GetGameByPublicKey(ctx, publicKey); err != nil {
		if errors.Is(err, errs.ErrGameNotFound) {
			g.log.Errorf("HandleWatchGame: игра с ключом %s не найдена", publicKey)
			httpresponse.WriteErrorResponse(w, http.StatusNotFound, "игра не найдена")
			return
		}
		g.log.Error("HandleWatchGame: ", err)
		httpresponse.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("HandleWatchGame: upgrade error: ", err)
		return
	}

	// регистрация и первый кадр под одним замком, чтобы не пересечься
	// с broadcast и ничего не пропустить между ними
	state, stateErr := g.gameUC.GetState(ctx, publicKey)
	watchersMu.Lock()
	if watchers[publicKey] == nil {
		watchers[publicKey] = make(map[*websocket.Conn]bool)
	}
	watchers[publicKey][conn] = true
	var initErr error
	if stateErr == nil {
		initErr = conn.WriteJSON(gameDomain.GameEvent{Event: eventState, State: &state})
	}
	watchersMu.Unlock()
	if initErr != nil {
		g.log.Error("HandleWatchGame: initial state write error: ", initErr)
		g.removeWatcher(publicKey, conn)
		conn.Close()
		return
	}

	defer func() {
		g.removeWatcher(publicKey, conn)
		conn.Close()
	}()

	// наблюдатели ничего не присылают, читаем только ради закрытия
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (g *GameHandler) removeWatcher(publicKey string, conn *websocket.Conn) {
	watchersMu.Lock()
	defer watchersMu.Unlock()
	delete(watchers[publicKey], conn)
	if len(watchers[publicKey]) == 0 {
		delete(watchers, publicKey)
	}
}

// broadcast рассылает событие всем наблюдателям партии. Мёртвые
// соединения закрываются и выбрасываются из реестра.
func (g *GameHandler) broadcast(publicKey string, event gameDomain.GameEvent) {
	watchersMu.Lock()
	defer watchersMu.Unlock()
	for conn := range watchers[publicKey] {
		if err := conn.WriteJSON(event); err != nil {
			g.log.Error("broadcast: write to watcher error: ", err)
			conn.Close()
			delete(watchers[publicKey], conn)
		}
	}
	if len(watchers[publicKey]) == 0 {
		delete(watchers, publicKey)
	}
}
