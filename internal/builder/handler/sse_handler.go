package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/sse"
)

// SSEHandler handles SSE connections
type SSEHandler struct {
	hub       *sse.Hub
	keepalive time.Duration
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(hub *sse.Hub) *SSEHandler {
	return &SSEHandler{hub: hub, keepalive: 30 * time.Second}
}

// Stream pushes build updates for the caller's session.
// GET /api/v1/build/events?session=xxx
func (h *SSEHandler) Stream(c *gin.Context) {
	sessionID := GetSessionID(c)
	clientID := fmt.Sprintf("%s_%d", sessionID, time.Now().UnixNano())

	client := sse.NewClient(clientID, sessionID)
	h.hub.Register(client)

	// Set SSE headers
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	// Send initial connection event
	c.Writer.WriteString("event: connected\ndata: {\"client_id\":\"" + clientID + "\",\"session_id\":\"" + sessionID + "\"}\n\n")
	c.Writer.Flush()

	heartbeat := time.NewTicker(h.keepalive)
	defer heartbeat.Stop()

	clientGone := c.Request.Context().Done()

	for {
		select {
		case <-clientGone:
			h.hub.Unregister(clientID)
			return
		case event, ok := <-client.Events:
			if !ok {
				return
			}
			c.Writer.WriteString(fmt.Sprintf("event: %s\ndata: %s\n\n", event.EventType, event.Data))
			c.Writer.Flush()
		case <-heartbeat.C:
			c.Writer.WriteString(": keepalive\n\n")
			c.Writer.Flush()
		}
	}
}
