package notification

import (
	"sync"

	"salonbook/internal/domain"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// operatorConn wraps a websocket connection with a write lock: gorilla allows
// one concurrent writer per conn, and both Broadcast and the keep-alive ping
// write to it.
type operatorConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *operatorConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *operatorConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

func (c *operatorConn) close() {
	_ = c.conn.Close()
}

// Hub fans booking events out to connected operator dashboards. One
// connection per operator; a reconnect replaces the old socket.
type Hub struct {
	connections map[int64]*operatorConn
	mutex       sync.RWMutex
	log         *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		connections: make(map[int64]*operatorConn),
		log:         log,
	}
}

func (h *Hub) Register(operatorID int64, conn *websocket.Conn) *operatorConn {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.connections[operatorID]; exists && old != nil {
		old.close()
	}
	oc := &operatorConn{conn: conn}
	h.connections[operatorID] = oc
	return oc
}

func (h *Hub) Unregister(operatorID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if oc, exists := h.connections[operatorID]; exists && oc != nil {
		oc.close()
		delete(h.connections, operatorID)
	}
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.connections)
}

// Broadcast writes the event to every connected operator. Connections that
// fail to write are dropped.
func (h *Hub) Broadcast(event Event) {
	h.mutex.RLock()
	conns := make(map[int64]*operatorConn, len(h.connections))
	for id, c := range h.connections {
		conns[id] = c
	}
	h.mutex.RUnlock()

	for id, oc := range conns {
		if err := oc.writeJSON(event); err != nil {
			h.log.Debug("dropping dead operator connection",
				zap.Int64("operator_id", id), zap.Error(err))
			h.Unregister(id)
		}
	}
}

// BookingCreated and BookingCancelled implement the booking module's Sender.

func (h *Hub) BookingCreated(b *domain.Booking) {
	h.Broadcast(newBookingEvent(EventBookingCreated, b))
}

func (h *Hub) BookingCancelled(b *domain.Booking) {
	h.Broadcast(newBookingEvent(EventBookingCancelled, b))
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, oc := range h.connections {
		if oc != nil {
			oc.close()
		}
		delete(h.connections, id)
	}
}
