package ws

import (
	"sync"
	"time"

	"petcare-wallet/internal/models"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Connection wraps a websocket.Conn with its subscription key.
type Connection struct {
	Conn     *websocket.Conn
	WalletID string
	LastSeen time.Time

	mu sync.Mutex // guards writes to Conn
}

func (c *Connection) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteJSON(v)
}

// Hub tracks which connections are subscribed to which wallet and fans
// walletUpdated invalidations out to them. The payload is only the wallet
// id, clients refetch state over the REST API.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]map[*Connection]struct{} // walletID -> set of connections
	logger      *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		connections: make(map[string]map[*Connection]struct{}),
		logger:      logger,
	}
}

// Add registers a connection subscribed to one wallet.
func (h *Hub) Add(walletID string, conn *websocket.Conn) *Connection {
	c := &Connection{Conn: conn, WalletID: walletID, LastSeen: time.Now()}

	h.mu.Lock()
	if _, ok := h.connections[walletID]; !ok {
		h.connections[walletID] = make(map[*Connection]struct{})
	}
	h.connections[walletID][c] = struct{}{}
	total := len(h.connections[walletID])
	h.mu.Unlock()

	h.logger.Info("ws connected",
		zap.String("walletId", walletID), zap.Int("subscribers", total))
	return c
}

// Remove disconnects and removes a connection.
func (h *Hub) Remove(c *Connection) {
	h.mu.Lock()
	if conns, ok := h.connections[c.WalletID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.connections, c.WalletID)
		}
	}
	h.mu.Unlock()

	_ = c.Conn.Close()
	h.logger.Info("ws disconnected", zap.String("walletId", c.WalletID))
}

// Notify pushes a walletUpdated event to every subscriber of the wallet.
func (h *Hub) Notify(walletID string) {
	event := models.WalletUpdatedEvent{
		Event:    "walletUpdated",
		WalletID: walletID,
	}

	h.mu.RLock()
	conns := make([]*Connection, 0)
	for c := range h.connections[walletID] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.writeJSON(event); err != nil {
			h.logger.Warn("failed ws send, dropping connection",
				zap.String("walletId", walletID), zap.Error(err))
			h.Remove(c)
		}
	}
}

// Heartbeat pings all connections periodically and drops the stale ones.
func (h *Hub) Heartbeat(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		h.mu.RLock()
		stale := make([]*Connection, 0)
		for _, conns := range h.connections {
			for c := range conns {
				if time.Since(c.LastSeen) > 2*interval {
					stale = append(stale, c)
					continue
				}
				_ = c.Conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(time.Second))
			}
		}
		h.mu.RUnlock()

		for _, c := range stale {
			h.Remove(c)
		}
	}
}
