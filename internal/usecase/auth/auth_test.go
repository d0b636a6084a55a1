package auth

import (
	"context"
	"errors"
	"testing"

	userDomain "goban/internal/domain/user"
	errs "goban/internal/errors"
	repo "goban/internal/repository"
)

func newTestHandler() (*AuthUsecaseHandler, *repo.UserMapStorage) {
	users := repo.NewMapUserStorage()
	return NewAuthUsecaseHandler(users, repo.NewSessionMapStorage()), users
}

func TestRegisterAndLogin(t *testing.T) {
	handler, users := newTestHandler()
	ctx := context.Background()

	newUser, err := handler.RegisterUser(ctx, userDomain.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if newUser.ID == "" {
		t.Fatal("registered user has empty ID")
	}

	stored, ok := users.GetUser(ctx, "alice")
	if !ok {
		t.Fatal("user not stored")
	}
	if stored.PasswordHash == "secret" || stored.PasswordHash == "" {
		t.Error("password stored in plain text or not at all")
	}
	if stored.PasswordSalt == "" {
		t.Error("password salt is empty")
	}

	sessionID, err := handler.LoginUser(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sessionID == "" {
		t.Fatal("empty session id")
	}

	ok, current := handler.CheckAuthorized(ctx, sessionID)
	if !ok {
		t.Fatal("session not authorized after login")
	}
	if current.ID != newUser.ID {
		t.Errorf("authorized user ID = %q, want %q", current.ID, newUser.ID)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	handler, _ := newTestHandler()
	ctx := context.Background()

	if _, err := handler.RegisterUser(ctx, userDomain.RegisterRequest{Username: "alice", Password: "one"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := handler.RegisterUser(ctx, userDomain.RegisterRequest{Username: "alice", Password: "two"})
	if !errors.Is(err, errs.ErrUserExists) {
		t.Errorf("err = %v, want ErrUserExists", err)
	}
}

func TestLoginErrors(t *testing.T) {
	handler, _ := newTestHandler()
	ctx := context.Background()

	if _, err := handler.RegisterUser(ctx, userDomain.RegisterRequest{Username: "alice", Password: "secret"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "unknown user", username: "bob", password: "secret", wantErr: errs.ErrUserNotFound},
		{name: "wrong password", username: "alice", password: "guess", wantErr: errs.ErrWrongPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.LoginUser(ctx, tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLogout(t *testing.T) {
	handler, _ := newTestHandler()
	ctx := context.Background()

	if _, err := handler.RegisterUser(ctx, userDomain.RegisterRequest{Username: "alice", Password: "secret"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	sessionID, err := handler.LoginUser(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := handler.LogoutUser(ctx, sessionID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if ok, _ := handler.CheckAuthorized(ctx, sessionID); ok {
		t.Error("session still authorized after logout")
	}
	if err := handler.LogoutUser(ctx, sessionID); !errors.Is(err, errs.ErrSessionNotFound) {
		t.Errorf("second logout err = %v, want ErrSessionNotFound", err)
	}
}

func TestStatistics(t *testing.T) {
	handler, users := newTestHandler()
	ctx := context.Background()

	newUser, err := handler.RegisterUser(ctx, userDomain.RegisterRequest{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := handler.AddWin(ctx, newUser.ID); err != nil {
		t.Fatalf("add win: %v", err)
	}
	if err := handler.AddLose(ctx, newUser.ID); err != nil {
		t.Fatalf("add lose: %v", err)
	}
	if err := handler.AddLose(ctx, newUser.ID); err != nil {
		t.Fatalf("add lose: %v", err)
	}

	stored, ok := users.GetUserByID(ctx, newUser.ID)
	if !ok {
		t.Fatal("user not found")
	}
	if stored.Statistic.Wins != 1 || stored.Statistic.Losses != 2 {
		t.Errorf("statistic = %+v, want 1 win 2 losses", stored.Statistic)
	}
}
