// internal/server/handlers/websocket.go

package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
)

// Subscriber delivers bus messages for a subject pattern
type Subscriber interface {
	Subscribe(subject string, fn func(data []byte)) (func(), error)
}

// WebSocketConfig contains configuration for WebSocket connections
type WebSocketConfig struct {
	// Time allowed to write a message to the peer
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer
	PongWait time.Duration

	// Send pings to peer with this period
	PingPeriod time.Duration

	// Maximum message size allowed from peer
	MaxMessageSize int64

	// Buffered events per client before new ones are dropped
	SendBuffer int
}

// DefaultWebSocketConfig returns the default WebSocket configuration
func DefaultWebSocketConfig() WebSocketConfig {
	return WebSocketConfig{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     (60 * time.Second * 9) / 10,
		MaxMessageSize: 4 * 1024,
		SendBuffer:     256,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is enforced on the REST routes; the feed only carries public events.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// FeedHandler streams garage sale events to WebSocket clients
type FeedHandler struct {
	bus    Subscriber
	config WebSocketConfig
	logger *zap.Logger
}

// NewFeedHandler creates a live feed handler
func NewFeedHandler(bus Subscriber, config WebSocketConfig, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{
		bus:    bus,
		config: config,
		logger: logger,
	}
}

// feedClient represents a connected WebSocket client
type feedClient struct {
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	config    WebSocketConfig
	logger    *zap.Logger
}

// Serve upgrades the connection and forwards events until the client leaves.
// An optional ?type= narrows the feed to one event type.
func (h *FeedHandler) Serve(w http.ResponseWriter, r *http.Request) {
	subject := listing.EventsTopic + ".>"
	if t := listing.EventType(r.URL.Query().Get("type")); t != "" {
		switch t {
		case listing.EventCreated, listing.EventUpdated, listing.EventDeleted, listing.EventSwept:
			subject = listing.Event{Type: t}.Subject()
		default:
			respondWithError(w, http.StatusBadRequest, "Unknown event type")
			return
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("failed to upgrade to websocket", zap.Error(err))
		return
	}

	client := &feedClient{
		conn:   conn,
		send:   make(chan []byte, h.config.SendBuffer),
		done:   make(chan struct{}),
		config: h.config,
		logger: h.logger,
	}

	unsubscribe, err := h.bus.Subscribe(subject, client.deliver)
	if err != nil {
		h.logger.Error("failed to subscribe to events", zap.String("subject", subject), zap.Error(err))
		client.close()
		return
	}

	welcome, _ := json.Marshal(map[string]interface{}{
		"type":    "welcome",
		"subject": subject,
		"time":    time.Now().UTC(),
	})
	client.deliver(welcome)

	h.logger.Debug("feed client connected", zap.String("subject", subject))

	go client.writePump()
	client.readPump()

	unsubscribe()
	h.logger.Debug("feed client disconnected", zap.String("subject", subject))
}

// deliver queues data for the client, dropping it if the client is slow
func (c *feedClient) deliver(data []byte) {
	select {
	case <-c.done:
	case c.send <- data:
	default:
		c.logger.Warn("dropping event for slow feed client")
	}
}

// readPump discards inbound frames and keeps the read deadline fresh
func (c *feedClient) readPump() {
	defer c.close()

	c.conn.SetReadLimit(c.config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", zap.Error(err))
			}
			return
		}
	}
}

// writePump pumps queued events to the WebSocket connection
func (c *feedClient) writePump() {
	ticker := time.NewTicker(c.config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return

		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *feedClient) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}
