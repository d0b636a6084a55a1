package repo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"goban/internal/adapters"
	userDomain "goban/internal/domain/user"
	errs "goban/internal/errors"
)

type MongoUserStorage struct {
	adapter *adapters.AdapterMongo
}

func NewMongoUserStorage(adapter *adapters.AdapterMongo) *MongoUserStorage {
	return &MongoUserStorage{adapter: adapter}
}

func (m *MongoUserStorage) CheckExists(ctx context.Context, username string) bool {
	_, ok := m.GetUser(ctx, username)
	return ok
}

func (m *MongoUserStorage) GetUser(ctx context.Context, username string) (userDomain.User, bool) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := m.adapter.Database.Collection("users")
	filter := bson.M{"username": username}

	var result userDomain.User
	err := collection.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			slog.Error(err.Error())
		}
		return userDomain.User{}, false
	}
	return result, true
}

func (m *MongoUserStorage) GetUserByID(ctx context.Context, id string) (userDomain.User, bool) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := m.adapter.Database.Collection("users")
	filter := bson.M{"_id": id}

	var result userDomain.User
	err := collection.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			slog.Error(err.Error())
		}
		return userDomain.User{}, false
	}
	return result, true
}

// CreateUser вставляет пользователя с uuid в качестве _id и возвращает его.
func (m *MongoUserStorage) CreateUser(ctx context.Context, newUser userDomain.User) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := m.adapter.Database.Collection("users")

	newUser.ID = uuid.New().String()
	if _, err := collection.InsertOne(ctx, newUser); err != nil {
		slog.Error(err.Error())
		return "", errs.ErrInternal
	}
	return newUser.ID, nil
}

func (m *MongoUserStorage) AddWin(ctx context.Context, id string) error {
	return m.bumpStatistic(ctx, id, "statistic.wins")
}

func (m *MongoUserStorage) AddLoss(ctx context.Context, id string) error {
	return m.bumpStatistic(ctx, id, "statistic.losses")
}

func (m *MongoUserStorage) bumpStatistic(ctx context.Context, id string, field string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := m.adapter.Database.Collection("users")

	filter := bson.M{"_id": id}
	update := bson.M{
		"$inc": bson.M{
			field: 1,
		},
	}
	_, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		slog.Error(err.Error())
	}
	return err
}
