package realtime

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

// Hub fans Messages out to the in-process websocket clients subscribed to their channel.
type Hub struct {
	mu            sync.RWMutex
	logger        *logger.Logger
	subscriptions map[string]map[*Client]bool
	clients       map[*Client]bool
	onDrop        func()
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		logger:        log.With("component", "RealtimeHub"),
		subscriptions: make(map[string]map[*Client]bool),
		clients:       make(map[*Client]bool),
	}
}

// OnDrop registers a callback invoked whenever a frame is dropped on a full client buffer.
func (hub *Hub) OnDrop(fn func()) {
	hub.mu.Lock()
	hub.onDrop = fn
	hub.mu.Unlock()
}

func (hub *Hub) NewClient(userID int64) *Client {
	id := uuid.New()
	c := &Client{
		ID:       id,
		UserID:   userID,
		Channels: make(map[string]bool),
		Outbound: make(chan Frame, clientBuffer),
		done:     make(chan struct{}),
		Logger:   hub.logger.With("clientID", id.String()),
	}
	hub.mu.Lock()
	hub.clients[c] = true
	hub.mu.Unlock()
	return c
}

func (hub *Hub) Subscribe(client *Client, channel string) {
	channel = strings.TrimSpace(channel)
	if client == nil || channel == "" {
		return
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()
	if client.closed {
		return
	}

	client.Channels[channel] = true
	subs, ok := hub.subscriptions[channel]
	if !ok {
		subs = make(map[*Client]bool)
		hub.subscriptions[channel] = subs
	}
	subs[client] = true

	hub.logger.Debug("Realtime client subscribed", "clientID", client.ID.String(), "channel", channel)
}

func (hub *Hub) Unsubscribe(client *Client, channel string) {
	channel = strings.TrimSpace(channel)
	if client == nil || channel == "" {
		return
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()
	hub.unsubscribeLocked(client, channel)
}

func (hub *Hub) unsubscribeLocked(client *Client, channel string) {
	delete(client.Channels, channel)
	if subs, ok := hub.subscriptions[channel]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(hub.subscriptions, channel)
		}
	}
}

// CloseClient removes the client from every channel and closes its Outbound channel. Safe to call twice.
func (hub *Hub) CloseClient(client *Client) {
	if client == nil {
		return
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()
	if client.closed {
		return
	}
	for ch := range client.Channels {
		hub.unsubscribeLocked(client, ch)
	}
	delete(hub.clients, client)
	client.closed = true
	close(client.done)
	close(client.Outbound)

	hub.logger.Debug("Realtime client closed", "clientID", client.ID.String())
}

// Broadcast never blocks; a client with a full buffer misses the frame.
func (hub *Hub) Broadcast(msg Message) {
	if msg.Channel == "" {
		return
	}

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	subs, ok := hub.subscriptions[msg.Channel]
	if !ok {
		return
	}
	for c := range subs {
		select {
		case c.Outbound <- msg.Frame:
		default:
			hub.logger.Warn("Dropping realtime frame; outbound buffer full", "clientID", c.ID.String(), "channel", msg.Channel)
			if hub.onDrop != nil {
				hub.onDrop()
			}
		}
	}
}

// Deliver queues a frame for one client. It reports false when the client is closed or its buffer is full.
func (hub *Hub) Deliver(client *Client, frame Frame) bool {
	if client == nil {
		return false
	}

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	if client.closed {
		return false
	}
	select {
	case client.Outbound <- frame:
		return true
	default:
		hub.logger.Warn("Dropping direct realtime frame; outbound buffer full", "clientID", client.ID.String())
		if hub.onDrop != nil {
			hub.onDrop()
		}
		return false
	}
}

func (hub *Hub) ClientCount() int {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	return len(hub.clients)
}
