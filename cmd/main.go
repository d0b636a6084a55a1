package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"goban/internal/adapters"
	"goban/internal/bootstrap"
	authDelivery "goban/internal/delivery/auth"
	gameDelivery "goban/internal/delivery/game"
	ownMiddleware "goban/internal/middleware"
	repo "goban/internal/repository"
	authUC "goban/internal/usecase/auth"
	gameUC "goban/internal/usecase/game"
)

type mainDeliveryHandler struct {
	auth *authDelivery.AuthHandler
	game *gameDelivery.GameHandler
}

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	logger := NewLogger()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = ".env"
	}
	cfg, err := bootstrap.Setup(cfgPath)
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	databaseAdapters := initDatabaseAdapters(ctx, logger, *cfg)
	defer databaseAdapters.mongoAdapter.Close(ctx)
	defer databaseAdapters.redisAdapter.Close(ctx)

	r := chi.NewRouter()
	handlers := initializeDeliveryHandlers(*cfg, logger, databaseAdapters)
	handlers.Router(r, cfg.IsLocalCors)

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", zap.Error(err))
		}
	}()

	logger.Infof("Server is running on port %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)

	r.Post("/auth/register", h.auth.Register)
	r.Post("/auth/login", h.auth.Login)
	r.Post("/auth/logout", h.auth.Logout)
	r.Get("/auth/me", h.auth.Me)

	r.Post("/game/new", h.game.HandleNewGame)
	r.Post("/game/join", h.game.HandleJoinGame)
	r.Post("/game/place", h.game.HandlePlaceStone)
	r.Get("/game/state", h.game.HandleGetState)
	r.Post("/game/leave", h.game.HandleLeaveGame)
	r.Get("/game/watch", h.game.HandleWatchGame)
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg bootstrap.Config) *dataBaseAdapters {
	mongoAdapter := adapters.NewAdapterMongo(&cfg)
	if err := mongoAdapter.Init(ctx); err != nil {
		log.Fatal("Не удалось инициализировать MongoDB", zap.Error(err))
	}

	redisAdapter := adapters.NewAdapterRedis(&cfg)
	if err := redisAdapter.Init(ctx); err != nil {
		log.Fatal("Не удалось инициализировать Redis", zap.Error(err))
	}

	log.Info("Адаптеры баз данных инициализированы")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}
}

func initializeDeliveryHandlers(
	cfg bootstrap.Config,
	log *zap.SugaredLogger,
	databaseAdapters *dataBaseAdapters,
) *mainDeliveryHandler {
	userStorage := repo.NewMongoUserStorage(databaseAdapters.mongoAdapter)
	sessionStorage := repo.NewSessionRedisStorage(cfg, databaseAdapters.redisAdapter.GetClient())
	authUsecase := authUC.NewAuthUsecaseHandler(userStorage, sessionStorage)
	authDeliveryHandler := authDelivery.NewAuthHandler(log, authUsecase, cfg.SessionTTLHours)

	gameStore := repo.NewGameRepository(log, databaseAdapters.redisAdapter.GetClient(), databaseAdapters.mongoAdapter.Database)
	gameUsecase := gameUC.NewGameUseCase(gameStore, authUsecase)
	gameDeliveryHandler := gameDelivery.NewGameHandler(cfg, log, gameUsecase, authDeliveryHandler)

	return &mainDeliveryHandler{
		auth: authDeliveryHandler,
		game: gameDeliveryHandler,
	}
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
}
