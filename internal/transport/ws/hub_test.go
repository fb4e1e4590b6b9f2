package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"petcare-wallet/internal/models"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func dialTestServer(t *testing.T, server *httptest.Server, walletID string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/ws?walletId=" + walletID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubNotify(t *testing.T) {
	hub := NewHub(zap.NewNop())
	mux := http.NewServeMux()
	NewHandler(mux, hub)

	server := httptest.NewServer(mux)
	defer server.Close()

	subscriber := dialTestServer(t, server, "wallet-1")
	other := dialTestServer(t, server, "wallet-2")

	// Give the server side a moment to register both connections.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		hub.mu.RLock()
		ready := len(hub.connections["wallet-1"]) == 1 && len(hub.connections["wallet-2"]) == 1
		hub.mu.RUnlock()
		if ready {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.Notify("wallet-1")

	subscriber.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event models.WalletUpdatedEvent
	if err := subscriber.ReadJSON(&event); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if event.Event != "walletUpdated" || event.WalletID != "wallet-1" {
		t.Fatalf("event: %+v", event)
	}

	// The other wallet's subscriber must not receive anything.
	other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := other.ReadMessage(); err == nil {
		t.Fatal("subscriber of another wallet received the event")
	}
}

func TestHubNotify_NoSubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop())

	// Must not panic or block with nobody listening.
	hub.Notify("wallet-without-subscribers")
}

func TestHandlerRequiresWalletID(t *testing.T) {
	hub := NewHub(zap.NewNop())
	mux := http.NewServeMux()
	NewHandler(mux, hub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", rec.Code)
	}
}
