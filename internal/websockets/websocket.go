package websockets

import (
	"sync"
	"sync/atomic"
	"time"

	"cleanhub/internal/events"
	"cleanhub/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	MESSAGE_TYPE_PING = "ping"
	MESSAGE_TYPE_PONG = "pong"
	PING_INTERVAL     = 30 * time.Second
	PONG_TIMEOUT      = 60 * time.Second
	WRITE_TIMEOUT     = 10 * time.Second
	MAX_MESSAGE_SIZE  = 64 * 1024
	SEND_CHANNEL_SIZE = 64
	SYSTEM_CHANNEL    = "system"
)

type Message struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Channel   string         `json:"channel,omitempty"`
	UserID    string         `json:"userId,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// TokenValidator decodes an access token into the caller's identity.
type TokenValidator interface {
	ValidateAccessToken(token string) (types.AuthUser, error)
}

type Client struct {
	ID         string
	UserID     uuid.UUID
	Connection *websocket.Conn
	Manager    *Manager
	status     atomic.Int32
	send       chan Message
	sendMu     sync.Mutex
	closed     bool
}

func (c *Client) Status() int32 {
	return c.status.Load()
}

func (c *Client) isAuthenticated() bool {
	return c.Status() == STATUS_AUTHENTICATED
}

type Manager struct {
	hub      *Hub
	tokens   TokenValidator
	eventBus *events.EventBus
	log      logger.Logger
}

func New(eventBus *events.EventBus, tokens TokenValidator) (*Manager, error) {
	log := logger.New("websockets")

	manager := &Manager{
		hub:      newHub(),
		tokens:   tokens,
		eventBus: eventBus,
		log:      log,
	}

	log.Function("New").Info("Starting websocket hub")
	go manager.hub.run(manager)

	if eventBus != nil {
		manager.subscribeToEvents()
	}

	return manager, nil
}

func newClient(m *Manager, conn *websocket.Conn) *Client {
	client := &Client{
		ID:         uuid.New().String(),
		Connection: conn,
		Manager:    m,
		send:       make(chan Message, SEND_CHANNEL_SIZE),
	}
	client.status.Store(STATUS_UNAUTHENTICATED)
	return client
}

func systemMessage(messageType string, data map[string]any) Message {
	return Message{
		ID:        uuid.New().String(),
		Type:      messageType,
		Channel:   SYSTEM_CHANNEL,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// HandleWebSocket serves one connection. A token in the "token" query
// parameter authenticates immediately; otherwise the client has
// AUTH_HANDSHAKE_TIMEOUT to answer an auth_request.
func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")
	client := newClient(m, c)

	m.hub.register <- client
	defer func() {
		m.hub.unregister <- client
		if err := c.Close(); err != nil {
			log.Debug("connection already closed", "clientID", client.ID)
		}
	}()

	if token := c.Query("token"); token != "" {
		client.authenticate(token)
	} else {
		if err := client.sendAuthRequest(); err != nil {
			return
		}
		client.startAuthTimeout()
	}

	go client.writePump()
	client.readPump()
}

func (c *Client) readPump() {
	log := c.Manager.log.Function("readPump")

	c.Connection.SetReadLimit(MAX_MESSAGE_SIZE)
	if err := c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT)); err != nil {
		log.Er("failed to set read deadline", err, "clientID", c.ID)
	}
	c.Connection.SetPongHandler(func(string) error {
		return c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT))
	})

	for {
		var message Message
		if err := c.Connection.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Er("unexpected close", err, "clientID", c.ID)
			}
			return
		}

		c.routeMessage(message)
	}
}

func (c *Client) routeMessage(message Message) {
	log := c.Manager.log.Function("routeMessage")

	if message.Type == AUTH_RESPONSE {
		token, _ := message.Data["token"].(string)
		c.authenticate(token)
		return
	}

	if !c.isAuthenticated() {
		c.handleUnauthenticatedMessage(message)
		return
	}

	switch message.Type {
	case MESSAGE_TYPE_PING:
		c.enqueue(systemMessage(MESSAGE_TYPE_PONG, nil))
	default:
		log.Debug("Ignoring client message", "clientID", c.ID, "type", message.Type)
	}
}

// enqueue drops the message when the client is closed or not keeping up.
func (c *Client) enqueue(message Message) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- message:
		return true
	default:
		c.Manager.log.Function("enqueue").Warn("client send buffer full, dropping message",
			"clientID", c.ID, "type", message.Type)
		return false
	}
}

func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if !c.closed {
		c.closed = true
		c.status.Store(STATUS_CLOSED)
		close(c.send)
	}
}

func (c *Client) writePump() {
	log := c.Manager.log.Function("writePump")

	ticker := time.NewTicker(PING_INTERVAL)
	defer func() {
		ticker.Stop()
		_ = c.Connection.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT)); err != nil {
				log.Er("failed to set write deadline", err, "clientID", c.ID)
			}
			if !ok {
				_ = c.Connection.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Connection.WriteJSON(message); err != nil {
				log.Er("websocket write failed", err, "clientID", c.ID)
				return
			}

		case <-ticker.C:
			if err := c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT)); err != nil {
				log.Er("failed to set write deadline for ping", err, "clientID", c.ID)
			}
			if err := c.Connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// subscribeToEvents relays bus events to this replica's clients. Every
// replica receives every event and delivers to the connections it holds.
func (m *Manager) subscribeToEvents() {
	log := m.log.Function("subscribeToEvents")

	if err := m.eventBus.Subscribe(events.SEND_CHANNEL, m.deliver); err != nil {
		log.Er("failed to subscribe to user events", err)
	}
	if err := m.eventBus.Subscribe(events.BROADCAST_CHANNEL, m.deliver); err != nil {
		log.Er("failed to subscribe to broadcast events", err)
	}
}

func toClientMessage(event events.Event) Message {
	message := Message{
		ID:        event.ID,
		Type:      string(event.Type),
		Channel:   event.Channel.String(),
		Data:      event.Data,
		Timestamp: event.Timestamp,
	}
	if event.UserID != nil {
		message.UserID = event.UserID.String()
	}
	return message
}

func (m *Manager) deliver(event events.Event) error {
	message := toClientMessage(event)

	if event.UserID == nil {
		m.hub.broadcastMessage(message, m)
		return nil
	}

	m.SendMessageToUser(*event.UserID, message)
	return nil
}
