package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Store interface {
	Create(ctx context.Context, user User, token string) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	End(ctx context.Context, s *Session) error
}

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func newSession(user User, token string, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:        uuid.New().String(),
		User:      user,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func (m *MemoryStore) Create(_ context.Context, user User, token string) (*Session, error) {
	s := newSession(user, token, m.now(), m.ttl)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.Expired(m.now()) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		s.markEnded()
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// End is idempotent.
func (m *MemoryStore) End(_ context.Context, s *Session) error {
	if s == nil {
		return nil
	}
	s.markEnded()

	m.mu.Lock()
	delete(m.sessions, s.ID)
	m.mu.Unlock()
	return nil
}

// Sweep ends every session expired at now and reports how many it removed.
func (m *MemoryStore) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.Expired(now) {
			s.markEnded()
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx is done.
func (m *MemoryStore) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Sweep(m.now())
			}
		}
	}()
}

// Len is the number of live sessions, including ones not yet found expired.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
