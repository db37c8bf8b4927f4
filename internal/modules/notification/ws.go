package notification

import (
	"net/http"
	"time"

	"salonbook/internal/domain"
	"salonbook/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict origins once the dashboard host is fixed.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades operator dashboards onto the booking event feed.
type WSHandler struct {
	hub        *Hub
	jwtService *jwt.Service
	log        *zap.Logger
}

func NewWSHandler(hub *Hub, jwtService *jwt.Service, log *zap.Logger) *WSHandler {
	return &WSHandler{hub: hub, jwtService: jwtService, log: log}
}

// HandleWebSocket serves GET /ws/bookings?token=JWT. Auth rides the query
// string because browsers cannot set headers on websocket dials.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required. Use ?token=YOUR_JWT_TOKEN"})
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	if claims.Role != string(domain.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Operator access required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	operatorID := claims.CustomerID
	oc := h.hub.Register(operatorID, conn)
	h.log.Info("operator connected to booking feed", zap.Int64("operator_id", operatorID))

	defer func() {
		h.hub.Unregister(operatorID)
		h.log.Info("operator disconnected from booking feed", zap.Int64("operator_id", operatorID))
	}()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Pings go through the registered conn so they share its write lock with
	// Broadcast.
	go h.pingLoop(oc)
	h.readLoop(conn, operatorID)
}

func (h *WSHandler) pingLoop(oc *operatorConn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		if err := oc.ping(); err != nil {
			return
		}
	}
}

// readLoop drains the connection so pongs and close frames are processed.
// The feed is one way; anything the client sends is discarded.
func (h *WSHandler) readLoop(conn *websocket.Conn, operatorID int64) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				h.log.Debug("websocket read error",
					zap.Int64("operator_id", operatorID), zap.Error(err))
			}
			return
		}
	}
}
