package websockets

import (
	"sync"

	"github.com/google/uuid"
)

const (
	STATUS_UNAUTHENTICATED int32 = iota
	STATUS_AUTHENTICATED
	STATUS_CLOSED
)

type Hub struct {
	register   chan *Client
	unregister chan *Client
	clients    map[string]*Client
	mutex      sync.RWMutex
}

func newHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string]*Client),
	}
}

func (h *Hub) run(m *Manager) {
	for {
		select {
		case client := <-h.register:
			m.registerClient(client)
		case client := <-h.unregister:
			m.unregisterClient(client)
		}
	}
}

func (m *Manager) registerClient(client *Client) {
	m.hub.mutex.Lock()
	m.hub.clients[client.ID] = client
	m.hub.mutex.Unlock()

	m.log.Function("registerClient").Debug("Client registered", "clientID", client.ID)
}

func (m *Manager) unregisterClient(client *Client) {
	m.hub.mutex.Lock()
	defer m.hub.mutex.Unlock()

	if _, ok := m.hub.clients[client.ID]; !ok {
		return
	}

	delete(m.hub.clients, client.ID)
	client.closeSend()

	m.log.Function("unregisterClient").Debug("Client unregistered", "clientID", client.ID, "userID", client.UserID)
}

func (h *Hub) broadcastMessage(message Message, m *Manager) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	sent := 0
	for _, client := range h.clients {
		if client.isAuthenticated() && client.enqueue(message) {
			sent++
		}
	}

	m.log.Function("broadcastMessage").Debug("Broadcast complete", "messageID", message.ID, "sentTo", sent)
}

// SendMessageToUser delivers to every authenticated connection of the user.
func (m *Manager) SendMessageToUser(userID uuid.UUID, message Message) int {
	m.hub.mutex.RLock()
	defer m.hub.mutex.RUnlock()

	sent := 0
	for _, client := range m.hub.clients {
		if client.isAuthenticated() && client.UserID == userID && client.enqueue(message) {
			sent++
		}
	}

	m.log.Function("SendMessageToUser").Debug("Message sent to user connections",
		"userID", userID, "type", message.Type, "sentTo", sent)
	return sent
}
