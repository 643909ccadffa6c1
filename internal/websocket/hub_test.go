package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	hub.Start()
	t.Cleanup(hub.Shutdown)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWS(hub, w, r)
	}))
	t.Cleanup(server.Close)

	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *gorilla.Conn {
	t.Helper()
	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *gorilla.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(payload, &msg))
	return msg
}

func TestHubSendsWelcomeMessage(t *testing.T) {
	_, url := newTestHub(t)
	conn := dial(t, url)

	msg := readMessage(t, conn)
	assert.Equal(t, TypeConnection, msg.Type)

	data, ok := msg.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "connected", data["status"])
	assert.NotEmpty(t, data["client_id"])
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub, url := newTestHub(t)

	first := dial(t, url)
	second := dial(t, url)
	readMessage(t, first)
	readMessage(t, second)

	require.Eventually(t, func() bool { return hub.ClientCount() == 2 },
		time.Second, 5*time.Millisecond)

	hub.Broadcast(TypeOperationProgress, map[string]string{"step": "scrape"})

	for _, conn := range []*gorilla.Conn{first, second} {
		msg := readMessage(t, conn)
		assert.Equal(t, TypeOperationProgress, msg.Type)
		data := msg.Data.(map[string]interface{})
		assert.Equal(t, "scrape", data["step"])
	}
}

func TestHubClientCountAfterDisconnect(t *testing.T) {
	hub, url := newTestHub(t)

	conn := dial(t, url)
	readMessage(t, conn)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 5*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 },
		time.Second, 5*time.Millisecond)
}

func TestClientGoroutinesExitAfterShutdown(t *testing.T) {
	before := runtime.NumGoroutine()

	hub := NewHub(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	hub.Start()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWS(hub, w, r)
	}))

	conn := dial(t, "ws"+strings.TrimPrefix(server.URL, "http"))
	readMessage(t, conn)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 5*time.Millisecond)

	// Shutdown first, then the connection drops. The read pump must still be
	// able to exit even though the hub loop no longer serves unregister.
	hub.Shutdown()
	conn.Close()
	server.Close()

	require.Eventually(t, func() bool { return runtime.NumGoroutine() <= before },
		2*time.Second, 10*time.Millisecond)
}

func TestHubStartIsIdempotent(t *testing.T) {
	hub := NewHub(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	hub.Start()
	hub.Start()
	hub.Shutdown()
	hub.Shutdown()
}
