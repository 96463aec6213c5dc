package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/agency-site/internal/notify"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(ctx)
	go hub.Run()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(conn, hub, r.URL.Query().Get("session"))
		hub.Register(client)
		client.Run(r.Context())
	}))
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?session=" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHub_DeliversOnlyToOwnSession(t *testing.T) {
	hub, srv := startHub(t)
	mine := dial(t, srv, "s1")
	other := dial(t, srv, "s2")

	require.Eventually(t, func() bool {
		return hub.ClientCount("s1") == 1 && hub.ClientCount("s2") == 1
	}, time.Second, 5*time.Millisecond)

	sink := NewToastSink(hub, "s1")
	sink.Emit(notify.EventAdded, notify.Toast{ID: "t1", Title: "Status updated", Variant: notify.VariantSuccess})

	_ = mine.SetReadDeadline(time.Now().Add(time.Second))
	_, raw, err := mine.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type string       `json:"type"`
		Data notify.Toast `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, notify.EventAdded, msg.Type)
	assert.Equal(t, "Status updated", msg.Data.Title)

	_ = other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err = other.ReadMessage()
	assert.Error(t, err)
}

func TestHub_CloseSessionDisconnects(t *testing.T) {
	hub, srv := startHub(t)
	dial(t, srv, "s1")

	require.Eventually(t, func() bool { return hub.ClientCount("s1") == 1 }, time.Second, 5*time.Millisecond)

	hub.CloseSession("s1")
	assert.Eventually(t, func() bool { return hub.ClientCount("s1") == 0 }, time.Second, 5*time.Millisecond)
}
