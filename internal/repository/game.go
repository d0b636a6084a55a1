package repo

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	gameDomain "goban/internal/domain/game"
	errs "goban/internal/errors"
	"goban/internal/statuses"
)

// GameRepository держит партии в mongo, живые доски — в redis.
type GameRepository struct {
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

func NewGameRepository(log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *GameRepository {
	return &GameRepository{
		log:   log,
		redis: redis,
		mongo: mongo,
	}
}

func (g *GameRepository) GenerateGameKeys(ctx context.Context) (secretKey string, publicKey string) {
	secretKey = uuid.New().String()
	salt := ""
	for {
		publicKey = generateHash(secretKey + salt)
		if g.checkPublicKeyIsUniq(ctx, publicKey) {
			return secretKey, publicKey
		}
		salt = uuid.New().String()
	}
}

func generateHash(s string) string {
	h := md5.New()
	h.Write([]byte(s))
	hashBytes := h.Sum(nil)
	number := binary.BigEndian.Uint32(hashBytes[:4])
	code := number % 100000
	return fmt.Sprintf("%05d", code)
}

func (g *GameRepository) checkPublicKeyIsUniq(ctx context.Context, publicKey string) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := g.mongo.Collection("games")
	filter := bson.M{
		"public_key": publicKey,
	}
	err := collection.FindOne(ctx, filter).Err()
	return errors.Is(err, mongo.ErrNoDocuments)
}

func (g *GameRepository) CreateGame(ctx context.Context, gameData gameDomain.Game) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")

	_, err := collection.InsertOne(ctx, gameData)
	if err != nil {
		g.log.Errorf("failed to insert game to database: %v", err)
		return err
	}

	g.log.Infof("game inserted successfully with public key: %s", gameData.PublicKey)

	return nil
}

func (g *GameRepository) UpdateGame(ctx context.Context, gameData gameDomain.Game) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")

	filter := bson.M{"_id": gameData.SecretKey}
	opts := options.Replace().SetUpsert(false)

	res, err := collection.ReplaceOne(ctx, filter, gameData, opts)
	if err != nil {
		g.log.Errorf("failed to update game in database: %v", err)
		return err
	}
	if res.MatchedCount == 0 {
		g.log.Infof("игра с ключом %s не найдена", gameData.PublicKey)
		return errs.ErrGameNotFound
	}

	return nil
}

func (g *GameRepository) GetGameByPublicKey(ctx context.Context, publicKey string) (gameDomain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := g.mongo.Collection("games")
	filter := bson.M{
		"public_key": publicKey,
	}

	foundGame := gameDomain.Game{}

	err := collection.FindOne(ctx, filter).Decode(&foundGame)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return gameDomain.Game{}, errs.ErrGameNotFound
	} else if err != nil {
		g.log.Error(err)
		return gameDomain.Game{}, err
	}

	return foundGame, nil
}

func (g *GameRepository) HasUserActiveGame(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := g.mongo.Collection("games")
	filter := bson.M{
		"$and": []bson.M{
			{
				"$or": []bson.M{
					{"player_black": userID},
					{"player_white": userID},
				},
			},
			{
				"status": bson.M{
					"$ne": statuses.StatusCompleted,
				},
			},
		},
	}
	err := collection.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	} else if err != nil {
		g.log.Error(err)
		return false, err
	}

	return true, nil
}

func (g *GameRepository) SaveBoardState(ctx context.Context, secretKey string, state []byte) error {
	return g.redis.Set(ctx, boardStateKey(secretKey), state, 0).Err()
}

func (g *GameRepository) LoadBoardState(ctx context.Context, secretKey string) ([]byte, error) {
	state, err := g.redis.Get(ctx, boardStateKey(secretKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errs.ErrGameNotFound
	}
	return state, err
}

func (g *GameRepository) DeleteBoardState(ctx context.Context, secretKey string) error {
	return g.redis.Del(ctx, boardStateKey(secretKey)).Err()
}

func boardStateKey(secretKey string) string {
	return "board:" + secretKey
}
