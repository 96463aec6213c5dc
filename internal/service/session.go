package service

import (
	"sync"
	"time"

	"github.com/ignatzorin/agency-site/internal/apiclient"
	"github.com/ignatzorin/agency-site/internal/domain/valueobject"
	"github.com/ignatzorin/agency-site/internal/listing"
	"github.com/ignatzorin/agency-site/internal/models"
	"github.com/ignatzorin/agency-site/internal/notify"
)

// TargetKind: тип записи, над которой открыт диалог.
type TargetKind string

const (
	TargetJob         TargetKind = TargetKind(valueobject.KindJob)
	TargetSpontaneous TargetKind = TargetKind(valueobject.KindSpontaneous)
	TargetContact     TargetKind = "contact"
)

// ApplicationKind возвращает вид отклика; ok=false для сообщений.
func (k TargetKind) ApplicationKind() (valueobject.ApplicationKind, bool) {
	kind := valueobject.ApplicationKind(k)
	return kind, kind.IsValid()
}

// DetailDialog: снимок одной записи, открытый в карточке.
type DetailDialog struct {
	Kind        TargetKind         `json:"kind"`
	Application models.Application `json:"application,omitempty"`
	Contact     *models.Contact    `json:"contact,omitempty"`
	OpenedAt    time.Time          `json:"openedAt"`
}

// ID возвращает идентификатор записи в диалоге.
func (d *DetailDialog) ID() string {
	if d.Contact != nil {
		return d.Contact.ID
	}
	if d.Application != nil {
		return d.Application.Base().ID
	}
	return ""
}

// DeleteTarget: запись, ожидающая подтверждения удаления.
type DeleteTarget struct {
	Kind  TargetKind `json:"kind"`
	ID    string     `json:"id"`
	Label string     `json:"label"`
}

// ConsoleSession: состояние консоли одного администратора: загруженные коллекции,
// фильтры, открытые диалоги и уведомления. Все поля под mu.
type ConsoleSession struct {
	ID        string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
	Toasts    *notify.Store

	mu sync.Mutex

	applications   map[valueobject.ApplicationKind][]models.Application
	appStats       *models.ApplicationStats
	appsView       *listing.View
	applicationsAt time.Time
	contacts       []*models.Contact
	contactPage    apiclient.Pagination
	contactStats   *models.ContactStats
	contactsView   *listing.View
	contactsLoaded bool
	detail         *DetailDialog
	pendingDelete  *DeleteTarget
}

// NewConsoleSession создаёт пустую сессию. По умолчанию открыта вкладка откликов на вакансии.
func NewConsoleSession(id, username string, pageSize int, toasts *notify.Store, now time.Time, ttl time.Duration) *ConsoleSession {
	appsView := listing.NewView(pageSize)
	appsView.Tab = string(valueobject.KindJob)

	return &ConsoleSession{
		ID:           id,
		Username:     username,
		CreatedAt:    now,
		ExpiresAt:    now.Add(ttl),
		Toasts:       toasts,
		applications: make(map[valueobject.ApplicationKind][]models.Application),
		appsView:     appsView,
		contactsView: listing.NewView(pageSize),
	}
}

// Lock захватывает сессию на время операции.
func (s *ConsoleSession) Lock()   { s.mu.Lock() }
func (s *ConsoleSession) Unlock() { s.mu.Unlock() }

// Detail возвращает копию открытого диалога.
func (s *ConsoleSession) Detail() *DetailDialog {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detail == nil {
		return nil
	}
	d := *s.detail
	return &d
}

// PendingDelete возвращает копию ожидающего удаления.
func (s *ConsoleSession) PendingDelete() *DeleteTarget {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingDelete == nil {
		return nil
	}
	t := *s.pendingDelete
	return &t
}

// findApplication ищет отклик в загруженной коллекции. Вызывать под mu.
func (s *ConsoleSession) findApplication(kind valueobject.ApplicationKind, id string) models.Application {
	for _, app := range s.applications[kind] {
		if app.Base().ID == id {
			return app
		}
	}
	return nil
}

// findContact ищет сообщение на текущей странице. Вызывать под mu.
func (s *ConsoleSession) findContact(id string) *models.Contact {
	for _, c := range s.contacts {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// close освобождает ресурсы сессии.
func (s *ConsoleSession) close() {
	if s.Toasts != nil {
		s.Toasts.Close()
	}
}
