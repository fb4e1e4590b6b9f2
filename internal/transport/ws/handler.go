package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	hub *Hub
}

func NewHandler(mux *http.ServeMux, hub *Hub) *Handler {
	h := &Handler{hub: hub}
	mux.HandleFunc("GET /api/v1/ws", h.handleWalletUpdates)
	return h
}

// handleWalletUpdates upgrades the request and subscribes it to one
// wallet's invalidation pushes.
func (h *Handler) handleWalletUpdates(w http.ResponseWriter, r *http.Request) {
	walletID := r.URL.Query().Get("walletId")
	if walletID == "" {
		http.Error(w, "walletId query parameter is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := h.hub.Add(walletID, conn)

	// Reader loop exists only to observe pongs and the close handshake.
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		c.LastSeen = time.Now()
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.hub.Remove(c)
}
