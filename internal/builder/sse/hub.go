package sse

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// EventBuildUpdate is sent to a session whenever its build changes.
const EventBuildUpdate = "build_update"

// Event represents a Server-Sent Event
type Event struct {
	EventType string `json:"event"`
	Data      string `json:"data"`
}

// Client represents a connected SSE client
type Client struct {
	ID        string
	SessionID string
	Events    chan Event
}

// NewClient creates a client with a buffered event channel.
func NewClient(id, sessionID string) *Client {
	return &Client{ID: id, SessionID: sessionID, Events: make(chan Event, 16)}
}

// Hub manages all SSE client connections
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	logger  *zap.Logger
}

// NewHub creates a new SSE Hub
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[string]*Client),
		logger:  logger,
	}
}

// Register adds a new client to the hub
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	h.logger.Debug("SSE client registered",
		zap.String("client_id", client.ID),
		zap.String("session_id", client.SessionID),
		zap.Int("total", len(h.clients)),
	)
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.Events)
		delete(h.clients, clientID)
		h.logger.Debug("SSE client unregistered",
			zap.String("client_id", clientID),
			zap.Int("total", len(h.clients)),
		)
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// SendToSession 给特定会话的所有连接发送事件（而非广播）
func (h *Hub) SendToSession(sessionID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if client.SessionID == sessionID {
			h.deliver(client, event)
		}
	}
}

func (h *Hub) deliver(client *Client, event Event) {
	select {
	case client.Events <- event:
	default:
		h.logger.Warn("SSE client buffer full, skipping event",
			zap.String("client_id", client.ID),
			zap.String("event", event.EventType),
		)
	}
}

// PublishBuildUpdate sends the session's new build state to its clients.
func (h *Hub) PublishBuildUpdate(sessionID, action string, state any) {
	data, err := json.Marshal(map[string]any{
		"action": action,
		"state":  state,
	})
	if err != nil {
		h.logger.Error("Failed to encode build update", zap.Error(err))
		return
	}
	h.SendToSession(sessionID, Event{EventType: EventBuildUpdate, Data: string(data)})
}
