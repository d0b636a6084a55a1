package repo

import (
	"context"
	"sync"

	"github.com/google/uuid"

	gameDomain "goban/internal/domain/game"
	errs "goban/internal/errors"
	"goban/internal/statuses"
)

// MemoryGameStore повторяет контракт GameRepository на картах,
// чтобы гонять сервис без mongo и redis.
type MemoryGameStore struct {
	mu       sync.RWMutex
	games    map[string]gameDomain.Game // секретный ключ -> партия
	byPublic map[string]string          // публичный ключ -> секретный
	boards   map[string][]byte
}

func NewMemoryGameStore() *MemoryGameStore {
	return &MemoryGameStore{
		games:    make(map[string]gameDomain.Game),
		byPublic: make(map[string]string),
		boards:   make(map[string][]byte),
	}
}

func (m *MemoryGameStore) GenerateGameKeys(_ context.Context) (secretKey string, publicKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	secretKey = uuid.New().String()
	publicKey = generateHash(secretKey)
	for {
		if _, taken := m.byPublic[publicKey]; !taken {
			return secretKey, publicKey
		}
		publicKey = generateHash(secretKey + uuid.New().String())
	}
}

func (m *MemoryGameStore) CreateGame(_ context.Context, gameData gameDomain.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[gameData.SecretKey] = gameData
	m.byPublic[gameData.PublicKey] = gameData.SecretKey
	return nil
}

func (m *MemoryGameStore) UpdateGame(_ context.Context, gameData gameDomain.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, found := m.games[gameData.SecretKey]; !found {
		return errs.ErrGameNotFound
	}
	m.games[gameData.SecretKey] = gameData
	return nil
}

func (m *MemoryGameStore) GetGameByPublicKey(_ context.Context, publicKey string) (gameDomain.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	secretKey, found := m.byPublic[publicKey]
	if !found {
		return gameDomain.Game{}, errs.ErrGameNotFound
	}
	return m.games[secretKey], nil
}

func (m *MemoryGameStore) HasUserActiveGame(_ context.Context, userID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, gameData := range m.games {
		if gameData.Status == statuses.StatusCompleted {
			continue
		}
		if gameData.PlayerBlack == userID || gameData.PlayerWhite == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryGameStore) SaveBoardState(_ context.Context, secretKey string, state []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.boards[secretKey] = append([]byte(nil), state...)
	return nil
}

func (m *MemoryGameStore) LoadBoardState(_ context.Context, secretKey string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, found := m.boards[secretKey]
	if !found {
		return nil, errs.ErrGameNotFound
	}
	return append([]byte(nil), state...), nil
}

func (m *MemoryGameStore) DeleteBoardState(_ context.Context, secretKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.boards, secretKey)
	return nil
}
