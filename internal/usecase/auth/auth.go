package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	userDomain "goban/internal/domain/user"
	errs "goban/internal/errors"
	"goban/internal/random"
)

type AuthUsecaseHandler struct {
	userStorage    UserStorage
	sessionStorage SessionStorage
}

func NewAuthUsecaseHandler(u UserStorage, s SessionStorage) *AuthUsecaseHandler {
	return &AuthUsecaseHandler{
		userStorage:    u,
		sessionStorage: s,
	}
}

type UserStorage interface {
	CheckExists(ctx context.Context, username string) bool
	CreateUser(ctx context.Context, newUser userDomain.User) (string, error)
	GetUser(ctx context.Context, username string) (userDomain.User, bool)
	GetUserByID(ctx context.Context, id string) (userDomain.User, bool)
	AddWin(ctx context.Context, id string) error
	AddLoss(ctx context.Context, id string) error
}

type SessionStorage interface {
	GetUserIdBySession(ctx context.Context, sessionID string) (userID string, ok bool)
	StoreSession(ctx context.Context, sessionID string, userID string) error
	DeleteSession(ctx context.Context, sessionID string) (ok bool)
}

func (a *AuthUsecaseHandler) RegisterUser(ctx context.Context, req userDomain.RegisterRequest) (userDomain.User, error) {
	if a.userStorage.CheckExists(ctx, req.Username) {
		return userDomain.User{}, errs.ErrUserExists
	}

	salt := random.RandString(16)
	newUser := userDomain.User{
		Username:     req.Username,
		Email:        req.Email,
		CreatedAt:    time.Now(),
		Rating:       1500,
		PasswordHash: hashPassword(salt, req.Password),
		PasswordSalt: salt,
	}

	id, err := a.userStorage.CreateUser(ctx, newUser)
	if err != nil {
		return userDomain.User{}, fmt.Errorf("create user: %w", err)
	}
	newUser.ID = id
	return newUser, nil
}

func (a *AuthUsecaseHandler) LoginUser(ctx context.Context, providedUsername string, providedPassword string) (sessionID string, err error) {
	userFromDb, ok := a.userStorage.GetUser(ctx, providedUsername)
	if !ok {
		return "", errs.ErrUserNotFound
	}
	if hashPassword(userFromDb.PasswordSalt, providedPassword) != userFromDb.PasswordHash {
		return "", errs.ErrWrongPassword
	}
	sessionID = random.RandString(64)
	if err = a.sessionStorage.StoreSession(ctx, sessionID, userFromDb.ID); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return sessionID, nil
}

// LogoutUser returns nil or ErrSessionNotFound.
func (a *AuthUsecaseHandler) LogoutUser(ctx context.Context, sessionID string) error {
	if _, ok := a.sessionStorage.GetUserIdBySession(ctx, sessionID); !ok {
		return errs.ErrSessionNotFound
	}
	if ok := a.sessionStorage.DeleteSession(ctx, sessionID); !ok {
		return errs.ErrSessionNotFound
	}
	return nil
}

func (a *AuthUsecaseHandler) CheckAuthorized(ctx context.Context, sessionID string) (ok bool, user userDomain.User) {
	userID, found := a.sessionStorage.GetUserIdBySession(ctx, sessionID)
	if !found {
		return false, userDomain.User{}
	}
	user, ok = a.userStorage.GetUserByID(ctx, userID)
	if !ok {
		return false, userDomain.User{}
	}
	return ok, user
}

func (a *AuthUsecaseHandler) AddWin(ctx context.Context, userID string) error {
	return a.userStorage.AddWin(ctx, userID)
}

func (a *AuthUsecaseHandler) AddLose(ctx context.Context, userID string) error {
	return a.userStorage.AddLoss(ctx, userID)
}

func hashPassword(salt string, password string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}
