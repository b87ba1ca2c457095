package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yungbote/skillbridge-backend/internal/auth"
	"github.com/yungbote/skillbridge-backend/internal/observability"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
	"github.com/yungbote/skillbridge-backend/internal/realtime"
)

const (
	wsWriteWait      = 10 * time.Second
	wsMaxMessageSize = 64 << 10
)

type RealtimeHandler struct {
	log      *logger.Logger
	hub      *realtime.Hub
	resolver *auth.Resolver
	metrics  *observability.Metrics
	upgrader websocket.Upgrader
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.Hub, resolver *auth.Resolver, metrics *observability.Metrics) *RealtimeHandler {
	return &RealtimeHandler{
		log:      log.With("handler", "RealtimeHandler"),
		hub:      hub,
		resolver: resolver,
		metrics:  metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Auth rides on the token query parameter.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// GET /ws/usage
func (h *RealtimeHandler) Usage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"path":  "/ws/notifications",
		"query": "token=<JWT access token>",
		"note":  "Notification stream. Use the access_token from /auth/login. Send \"ping\" to receive a pong.",
		"frames": gin.H{
			"welcome":      gin.H{"type": "welcome", "user_id": "<id>"},
			"error":        gin.H{"type": "error", "message": "<reason>"},
			"notification": gin.H{"type": "notification", "message": "<text>", "notification_id": "<id>"},
			"ack":          gin.H{"type": "ack", "received": "<text>"},
		},
	})
}

// GET /ws/notifications?token=<jwt>
func (h *RealtimeHandler) Notifications(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("Websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		h.metrics.IncAuthFailure("ws")
		h.reject(conn, "token required")
		return
	}
	user, err := h.resolver.ResolveToken(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			h.metrics.IncAuthFailure("ws")
			h.reject(conn, "user not found")
		case auth.IsAuthFailure(err):
			h.metrics.IncAuthFailure("ws")
			h.reject(conn, "invalid token")
		default:
			h.log.Error("Websocket auth lookup failed", "error", err)
			h.reject(conn, "internal error")
		}
		return
	}

	client := h.hub.NewClient(user.ID)
	h.metrics.WSConnected()
	defer h.metrics.WSDisconnected()
	defer h.hub.CloseClient(client)

	writerDone := make(chan struct{})
	go h.writeLoop(conn, client, writerDone)

	// Subscribed before the welcome so a client that has seen it misses no push.
	h.hub.Subscribe(client, realtime.UserChannel(user.ID))
	h.hub.Deliver(client, realtime.WelcomeFrame(user.ID))
	client.Logger.Info("Websocket connected", "user_id", user.ID)

	conn.SetReadLimit(wsMaxMessageSize)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				client.Logger.Debug("Websocket read ended", "error", err)
			}
			break
		}
		h.hub.Deliver(client, realtime.ReplyTo(string(data)))
	}

	h.hub.CloseClient(client)
	<-writerDone
}

// writeLoop is the connection's only writer. It drains Outbound until the hub closes it.
func (h *RealtimeHandler) writeLoop(conn *websocket.Conn, client *realtime.Client, done chan<- struct{}) {
	defer close(done)
	for frame := range client.Outbound {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(frame); err != nil {
			client.Logger.Debug("Websocket write failed", "error", err)
			_ = conn.Close()
			for range client.Outbound {
			}
			return
		}
	}
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (h *RealtimeHandler) reject(conn *websocket.Conn, reason string) {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(realtime.ErrorFrame(reason)); err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason))
}
