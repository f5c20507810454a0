package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"neuronex/internal/logger"

	"go.uber.org/zap"
)

const tokenLength = 32

// Session привязывает непрозрачный токен из cookie к id пользователя.
// В сессии хранится только первичный ключ, сам пользователь
// перечитывается из хранилища на каждом запросе.
type Session struct {
	Token     string
	UserID    int
	ExpiresAt time.Time
}

type SessionManager struct {
	sessions map[string]*Session
	ttl      time.Duration
	mtx      sync.RWMutex
}

func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

func (m *SessionManager) Create(userID int) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("генерация токена сессии: %w", err)
	}

	session := &Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(m.ttl),
	}

	m.mtx.Lock()
	m.sessions[token] = session
	m.mtx.Unlock()

	return session, nil
}

// Get возвращает сессию по токену; просроченная сессия удаляется на месте.
func (m *SessionManager) Get(token string) (*Session, bool) {
	m.mtx.RLock()
	session, ok := m.sessions[token]
	m.mtx.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Now().After(session.ExpiresAt) {
		m.Delete(token)
		return nil, false
	}

	return session, true
}

func (m *SessionManager) Delete(token string) {
	m.mtx.Lock()
	delete(m.sessions, token)
	m.mtx.Unlock()
}

// PurgeExpired убирает просроченные сессии, возвращает количество удалённых.
func (m *SessionManager) PurgeExpired() int {
	now := time.Now()

	m.mtx.Lock()
	defer m.mtx.Unlock()

	purged := 0
	for token, session := range m.sessions {
		if now.After(session.ExpiresAt) {
			delete(m.sessions, token)
			purged++
		}
	}

	if purged > 0 {
		logger.Info("Auth: Очистка просроченных сессий", zap.Int("purged", purged))
	}
	return purged
}

func (m *SessionManager) Len() int {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return len(m.sessions)
}

func generateToken() (string, error) {
	raw := make([]byte, tokenLength)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
