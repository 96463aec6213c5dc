package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ignatzorin/agency-site/internal/goroutine"
	"github.com/ignatzorin/agency-site/internal/logger"
)

// Hub управляет WebSocket клиентами консоли. Клиенты сгруппированы по ID сессии:
// одна сессия может держать несколько вкладок.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan message
	ctx        context.Context
}

type message struct {
	sessionID string
	payload   []byte
}

// NewHub создаёт новый хаб.
func NewHub(ctx context.Context) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message, 32),
		ctx:        ctx,
	}
}

// Run запускает главный цикл хаба. Завершается вместе с контекстом.
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.broadcast:
			h.send(msg.sessionID, msg.payload)
		}
	}
}

// Register добавляет клиента.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
	}
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

// BroadcastToSession отправляет событие всем вкладкам сессии.
func (h *Hub) BroadcastToSession(sessionID string, event string, data any) error {
	// Сообщение для клиента: "type" содержит имя события, в "data" лежит полезная нагрузка.
	payload := map[string]any{
		"type": event,
		"data": data,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ws: не удалось сериализовать сообщение: %w", err)
	}

	select {
	case h.broadcast <- message{sessionID: sessionID, payload: raw}:
	case <-h.ctx.Done():
	}
	return nil
}

// CloseSession отключает все вкладки сессии (logout, истечение сессии).
func (h *Hub) CloseSession(sessionID string) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients[sessionID]))
	for c := range h.clients[sessionID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		client := c
		goroutine.SafeGo(client.Close)
	}
}

// ClientCount возвращает количество подключений сессии.
func (h *Hub) ClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.sessionID]; !ok {
		h.clients[client.sessionID] = make(map[*Client]struct{})
	}
	h.clients[client.sessionID][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.sessionID]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)
			client.closeSend()
		}
		if len(clients) == 0 {
			delete(h.clients, client.sessionID)
		}
	}
}

func (h *Hub) send(sessionID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[sessionID] {
		select {
		case client.send <- payload:
		default:
			// медленный клиент: отключаем
			c := client
			logger.WithComponent("ws").WithField("session_id", sessionID).Warn("ws: буфер клиента переполнен, отключаем")
			goroutine.SafeGo(c.Close)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sessionID, clients := range h.clients {
		for c := range clients {
			c.closeSend()
			_ = c.conn.Close()
		}
		delete(h.clients, sessionID)
	}
}
