package websockets

import (
	"time"
)

const (
	AUTH_REQUEST           = "auth_request"
	AUTH_RESPONSE          = "auth_response"
	AUTH_SUCCESS           = "auth_success"
	AUTH_FAILURE           = "auth_failure"
	AUTH_HANDSHAKE_TIMEOUT = 10 * time.Second
)

func (c *Client) startAuthTimeout() {
	time.AfterFunc(AUTH_HANDSHAKE_TIMEOUT, func() {
		if c.Status() != STATUS_UNAUTHENTICATED {
			return
		}

		c.Manager.log.Function("startAuthTimeout").
			Warn("Client failed to authenticate in time", "clientID", c.ID, "timeout", AUTH_HANDSHAKE_TIMEOUT)
		c.sendAuthFailure("Authentication timeout")
	})
}

// authenticate validates an access token and binds the client to its user.
func (c *Client) authenticate(token string) {
	log := c.Manager.log.Function("authenticate")

	if c.Status() != STATUS_UNAUTHENTICATED {
		log.Warn("Auth attempt from already authenticated client", "clientID", c.ID)
		return
	}

	if token == "" {
		c.sendAuthFailure("Invalid token format")
		return
	}

	user, err := c.Manager.tokens.ValidateAccessToken(token)
	if err != nil {
		log.Info("websocket token rejected", "clientID", c.ID, "error", err.Error())
		c.sendAuthFailure("Authentication failed")
		return
	}

	c.Manager.hub.mutex.Lock()
	c.UserID = user.ID
	c.status.Store(STATUS_AUTHENTICATED)
	c.Manager.hub.mutex.Unlock()

	log.Info("Websocket client authenticated", "clientID", c.ID, "userID", user.ID, "role", user.Role)

	c.enqueue(systemMessage(AUTH_SUCCESS, map[string]any{"userId": user.ID.String(), "role": user.Role}))
}

func (c *Client) sendAuthFailure(reason string) {
	c.enqueue(systemMessage(AUTH_FAILURE, map[string]any{"reason": reason}))

	c.Manager.log.Function("sendAuthFailure").Info("Auth failure sent, closing connection", "clientID", c.ID, "reason", reason)

	time.AfterFunc(100*time.Millisecond, func() {
		if c.Connection != nil {
			_ = c.Connection.Close()
		}
	})
}

func (c *Client) sendAuthRequest() error {
	if err := c.Connection.WriteJSON(systemMessage(AUTH_REQUEST, map[string]any{"action": "authenticate"})); err != nil {
		return c.Manager.log.Function("sendAuthRequest").Err("failed to send auth request", err, "clientID", c.ID)
	}
	return nil
}

func (c *Client) handleUnauthenticatedMessage(message Message) {
	c.Manager.log.Function("handleUnauthenticatedMessage").
		Warn("Blocking message from unauthenticated client", "clientID", c.ID, "type", message.Type)
	c.enqueue(systemMessage(AUTH_FAILURE, map[string]any{"reason": "Authentication required"}))
}
