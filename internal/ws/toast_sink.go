package ws

import (
	"github.com/ignatzorin/agency-site/internal/logger"
	"github.com/ignatzorin/agency-site/internal/notify"
)

// ToastSink пересылает события хранилища уведомлений во вкладки сессии.
type ToastSink struct {
	hub       *Hub
	sessionID string
}

func NewToastSink(hub *Hub, sessionID string) *ToastSink {
	return &ToastSink{hub: hub, sessionID: sessionID}
}

// Emit реализует notify.Sink.
func (s *ToastSink) Emit(event string, toast notify.Toast) {
	if err := s.hub.BroadcastToSession(s.sessionID, event, toast); err != nil {
		logger.WithComponent("ws").WithError(err).Warn("ws: не удалось отправить уведомление")
	}
}
