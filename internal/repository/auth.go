package repo

import (
	"context"
	"sync"

	"github.com/google/uuid"

	userDomain "goban/internal/domain/user"
)

type UserMapStorage struct {
	mu    sync.RWMutex
	users map[string]userDomain.User
}

func NewMapUserStorage() *UserMapStorage {
	return &UserMapStorage{users: make(map[string]userDomain.User)}
}

func (u *UserMapStorage) CheckExists(_ context.Context, username string) bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for _, v := range u.users {
		if v.Username == username {
			return true
		}
	}
	return false
}

func (u *UserMapStorage) CreateUser(_ context.Context, newUser userDomain.User) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	newUser.ID = uuid.New().String()
	u.users[newUser.ID] = newUser
	return newUser.ID, nil
}

func (u *UserMapStorage) GetUser(_ context.Context, username string) (userDomain.User, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for _, v := range u.users {
		if v.Username == username {
			return v, true
		}
	}
	return userDomain.User{}, false
}

func (u *UserMapStorage) GetUserByID(_ context.Context, id string) (userDomain.User, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	v, found := u.users[id]
	return v, found
}

func (u *UserMapStorage) AddWin(_ context.Context, id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	v, found := u.users[id]
	if !found {
		return nil
	}
	v.Statistic.Wins++
	u.users[id] = v
	return nil
}

func (u *UserMapStorage) AddLoss(_ context.Context, id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	v, found := u.users[id]
	if !found {
		return nil
	}
	v.Statistic.Losses++
	u.users[id] = v
	return nil
}

type SessionMapStorage struct {
	mu       sync.RWMutex
	sessions map[string]string
}

func NewSessionMapStorage() *SessionMapStorage {
	return &SessionMapStorage{
		sessions: make(map[string]string),
	}
}

func (s *SessionMapStorage) GetUserIdBySession(_ context.Context, sessionID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, found := s.sessions[sessionID]
	return v, found
}

func (s *SessionMapStorage) StoreSession(_ context.Context, sessionID string, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = userID
	return nil
}

func (s *SessionMapStorage) DeleteSession(_ context.Context, sessionID string) (ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.sessions[sessionID]; !found {
		return false
	}
	delete(s.sessions, sessionID)
	return true
}
