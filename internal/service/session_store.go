package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/agency-site/internal/logger"
	"github.com/ignatzorin/agency-site/internal/notify"
	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
)

// SinkFactory создаёт приёмник событий уведомлений для сессии.
type SinkFactory func(sessionID string) notify.Sink

// SessionStore хранит сессии консоли в памяти с TTL.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*ConsoleSession

	ttl      time.Duration
	pageSize int
	toastTTL time.Duration
	sinks    SinkFactory
	onEvict  func(sessionID string)
	now      func() time.Time
}

// SessionStoreConfig: параметры хранилища сессий.
type SessionStoreConfig struct {
	TTL      time.Duration
	PageSize int
	ToastTTL time.Duration
	Sinks    SinkFactory
	// OnEvict вызывается после удаления сессии (logout или истечение).
	OnEvict func(sessionID string)
}

// NewSessionStore создаёт хранилище сессий.
func NewSessionStore(cfg SessionStoreConfig) *SessionStore {
	if cfg.TTL <= 0 {
		cfg.TTL = 12 * time.Hour
	}
	return &SessionStore{
		sessions: make(map[string]*ConsoleSession),
		ttl:      cfg.TTL,
		pageSize: cfg.PageSize,
		toastTTL: cfg.ToastTTL,
		sinks:    cfg.Sinks,
		onEvict:  cfg.OnEvict,
		now:      time.Now,
	}
}

// TTL возвращает время жизни сессии.
func (ss *SessionStore) TTL() time.Duration {
	return ss.ttl
}

// Create открывает новую сессию.
func (ss *SessionStore) Create(username string) *ConsoleSession {
	id := uuid.NewString()

	opts := []notify.Option{notify.WithTTL(ss.toastTTL)}
	if ss.sinks != nil {
		opts = append(opts, notify.WithSink(ss.sinks(id)))
	}

	sess := NewConsoleSession(id, username, ss.pageSize, notify.NewStore(opts...), ss.now(), ss.ttl)

	ss.mu.Lock()
	ss.sessions[id] = sess
	ss.mu.Unlock()

	logger.ForSession("sessions", id, username).Info("console session opened")
	return sess
}

// Get возвращает активную сессию.
func (ss *SessionStore) Get(id string) (*ConsoleSession, error) {
	ss.mu.RLock()
	sess, ok := ss.sessions[id]
	ss.mu.RUnlock()

	if !ok || ss.now().After(sess.ExpiresAt) {
		return nil, apperror.ErrSessionNotFound
	}
	return sess, nil
}

// Delete закрывает сессию. Повторный вызов ничего не делает.
func (ss *SessionStore) Delete(id string) {
	ss.mu.Lock()
	sess, ok := ss.sessions[id]
	delete(ss.sessions, id)
	ss.mu.Unlock()

	if !ok {
		return
	}
	sess.close()
	if ss.onEvict != nil {
		ss.onEvict(id)
	}
}

// Len возвращает количество сессий.
func (ss *SessionStore) Len() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}

// Sweep удаляет истёкшие сессии.
func (ss *SessionStore) Sweep() int {
	now := ss.now()

	ss.mu.RLock()
	var expired []string
	for id, sess := range ss.sessions {
		if now.After(sess.ExpiresAt) {
			expired = append(expired, id)
		}
	}
	ss.mu.RUnlock()

	for _, id := range expired {
		ss.Delete(id)
	}
	if len(expired) > 0 {
		logger.WithComponent("sessions").WithField("count", len(expired)).Info("expired console sessions removed")
	}
	return len(expired)
}

// Run периодически чистит истёкшие сессии до отмены контекста.
func (ss *SessionStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ss.Sweep()
		}
	}
}
