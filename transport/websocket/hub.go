package websocket

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// Events published by the hub
const (
	EventWalkCompleted = "walk_completed"
)

// AllTopics subscribes a client to every topic.
const AllTopics = ""

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message represents a WebSocket message
type Message struct {
	Topic string      `json:"topic"`
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Client represents a WebSocket subscriber
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	topic string
}

type countRequest struct {
	topic string
	reply chan int
}

// Hub maintains the set of subscribers and fans messages out to them. All
// subscriber bookkeeping happens on the Run goroutine.
type Hub struct {
	// Registered clients by topic
	topics map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	count      chan countRequest
	done       chan struct{}

	logger *log.Logger
}

// NewHub creates a new WebSocket hub. A nil logger discards output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		topics:     make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		count:      make(chan countRequest),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run starts the hub's event loop. It returns when ctx is done, closing
// every subscriber.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for _, clients := range h.topics {
			for client := range clients {
				h.unregisterClient(client)
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case req := <-h.count:
			if req.topic == AllTopics {
				n := 0
				for _, clients := range h.topics {
					n += len(clients)
				}
				req.reply <- n
			} else {
				req.reply <- len(h.topics[req.topic])
			}
		}
	}
}

// ServeWS upgrades the request and subscribes the connection to topic.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, topic string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", "err", err)
		return
	}

	client := &Client{
		hub:   h,
		conn:  conn,
		send:  make(chan []byte, 256),
		topic: topic,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// Publish sends an event to the subscribers of topic and to clients
// subscribed to every topic. It is a no-op once the hub has stopped.
func (h *Hub) Publish(topic, event string, data interface{}) {
	select {
	case h.broadcast <- &Message{Topic: topic, Event: event, Data: data}:
	case <-h.done:
	}
}

// Subscribers returns the number of clients on topic, or on every topic for
// AllTopics. It returns 0 once the hub has stopped.
func (h *Hub) Subscribers(topic string) int {
	req := countRequest{topic: topic, reply: make(chan int, 1)}
	select {
	case h.count <- req:
		return <-req.reply
	case <-h.done:
		return 0
	}
}

func (h *Hub) registerClient(client *Client) {
	if h.topics[client.topic] == nil {
		h.topics[client.topic] = make(map[*Client]bool)
	}
	h.topics[client.topic][client] = true

	h.logger.Debug("Client subscribed", "topic", client.topic, "clients", len(h.topics[client.topic]))
}

func (h *Hub) unregisterClient(client *Client) {
	if clients, ok := h.topics[client.topic]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)

			if len(clients) == 0 {
				delete(h.topics, client.topic)
			}

			h.logger.Debug("Client unsubscribed", "topic", client.topic, "remaining", len(clients))
		}
	}
}

func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("Failed to marshal broadcast message", "err", err)
		return
	}

	h.deliver(message.Topic, data)
	if message.Topic != AllTopics {
		h.deliver(AllTopics, data)
	}
}

func (h *Hub) deliver(topic string, data []byte) {
	for client := range h.topics[topic] {
		select {
		case client.send <- data:
		default:
			// Slow consumer
			h.unregisterClient(client)
		}
	}
}

// readPump drains the connection so pongs and close frames are processed.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("WebSocket read failed", "err", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
