// Package notify хранит всплывающие уведомления консоли. Каждое уведомление
// живёт DefaultTTL и удаляется само; хранилище принадлежит сессии администратора.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/agency-site/internal/goroutine"
)

const DefaultTTL = 3 * time.Second

const (
	EventAdded   = "toast.added"
	EventRemoved = "toast.removed"
)

type Variant string

const (
	VariantDefault Variant = "default"
	VariantSuccess Variant = "success"
	VariantDanger  Variant = "danger"
	VariantWarning Variant = "warning"
)

type Toast struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Variant     Variant   `json:"variant"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Notifier: то, что нужно сервисам для показа уведомления.
type Notifier interface {
	Add(title, description string, variant Variant) Toast
}

// Sink получает события хранилища (в проде это WebSocket хаб).
type Sink interface {
	Emit(event string, toast Toast)
}

// SinkFunc адаптирует функцию к Sink.
type SinkFunc func(event string, toast Toast)

func (f SinkFunc) Emit(event string, toast Toast) { f(event, toast) }

type Option func(*Store)

// WithTTL задаёт время жизни уведомления.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock подменяет часы; таймеры при этом остаются настоящими, а истечение
// по подменённым часам проверяет Sweep.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithSink(sink Sink) Option {
	return func(s *Store) { s.sink = sink }
}

// WithoutTimers отключает таймеры: удаление только через Sweep и Remove.
func WithoutTimers() Option {
	return func(s *Store) { s.timers = nil }
}

// Store: упорядоченный список уведомлений одной сессии.
type Store struct {
	mu     sync.Mutex
	toasts []Toast
	ttl    time.Duration
	now    func() time.Time
	sink   Sink
	timers map[string]*time.Timer
	closed bool
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		ttl:    DefaultTTL,
		now:    time.Now,
		timers: make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add добавляет уведомление в конец списка и планирует его удаление.
func (s *Store) Add(title, description string, variant Variant) Toast {
	if variant == "" {
		variant = VariantDefault
	}
	t := Toast{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Variant:     variant,
		CreatedAt:   s.now(),
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return t
	}
	s.toasts = append(s.toasts, t)
	if s.timers != nil {
		id := t.ID
		s.timers[id] = time.AfterFunc(s.ttl, goroutine.Guard(func() { s.Remove(id) }))
	}
	sink := s.sink
	s.mu.Unlock()

	if sink != nil {
		sink.Emit(EventAdded, t)
	}
	return t
}

// Remove удаляет уведомление. Повторное удаление возвращает false.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	removed, ok := s.removeLocked(id)
	sink := s.sink
	s.mu.Unlock()

	if ok && sink != nil {
		sink.Emit(EventRemoved, removed)
	}
	return ok
}

// List возвращает копию активных уведомлений в порядке добавления.
func (s *Store) List() []Toast {
	s.Sweep()

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}

// Sweep удаляет уведомления старше TTL по часам хранилища.
func (s *Store) Sweep() int {
	s.mu.Lock()
	now := s.now()
	var expired []Toast
	for _, t := range s.toasts {
		if now.Sub(t.CreatedAt) >= s.ttl {
			expired = append(expired, t)
		}
	}
	for _, t := range expired {
		s.removeLocked(t.ID)
	}
	sink := s.sink
	s.mu.Unlock()

	if sink != nil {
		for _, t := range expired {
			sink.Emit(EventRemoved, t)
		}
	}
	return len(expired)
}

// Close останавливает таймеры. После Close хранилище ничего не принимает.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	s.toasts = nil
}

func (s *Store) removeLocked(id string) (Toast, bool) {
	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return t, true
		}
	}
	return Toast{}, false
}
