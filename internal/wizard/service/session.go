package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"bedrot-sim/internal/wizard/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

// ============================================================
// Session Manager
// ============================================================

type session struct {
	store    *store.Store
	lastSeen time.Time
}

// SessionManager держит по одному store на сессию мастера.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*session // id -> session
	now      func() time.Time
	logger   *zap.Logger
}

func NewSessionManager(logger *zap.Logger) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{
		sessions: make(map[string]*session),
		now:      time.Now,
		logger:   logger,
	}
}

func (m *SessionManager) Create() (string, *store.Store) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	s := &session{store: store.New(), lastSeen: m.now()}
	m.sessions[id] = s
	return id, s.store
}

// Get возвращает store сессии и продлевает ей жизнь.
func (m *SessionManager) Get(id string) (*store.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.lastSeen = m.now()
	return s.store, nil
}

func (m *SessionManager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.sessions[id]
	delete(m.sessions, id)
	return ok
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep удаляет сессии, простаивающие дольше maxIdle. Возвращает число удалённых.
func (m *SessionManager) Sweep(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-maxIdle)
	removed := 0
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Run периодически чистит простаивающие сессии до отмены контекста.
func (m *SessionManager) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(maxIdle); n > 0 {
				m.logger.Info("swept idle sessions", zap.Int("removed", n), zap.Int("active", m.Len()))
			}
		}
	}
}
