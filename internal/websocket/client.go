package websocket

import (
	"encoding/json"
	"time"

	"collabhub-be/pkg/realtime"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 256

	framePing      = "ping"
	framePong      = "pong"
	frameConnected = "connected"
)

// Client is one open socket of a user. Several clients may share a UserID.
type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	UserID uuid.UUID
	// Send holds encoded realtime.Frame values waiting to be written.
	Send chan []byte

	// closed is set by Hub.remove under the hub lock once Send is closed.
	closed bool
}

func newClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID) *Client {
	return &Client{Hub: hub, Conn: conn, UserID: userID, Send: make(chan []byte, sendBuffer)}
}

func encodeFrame(frameType string, data interface{}) []byte {
	b, _ := json.Marshal(realtime.Frame{Type: frameType, Data: data})
	return b
}

// handleInbound answers application-level heartbeats from browsers that
// cannot see protocol pings. Anything else a client sends is ignored.
func (c *Client) handleInbound(raw []byte) {
	var frame realtime.Frame
	if err := json.Unmarshal(raw, &frame); err != nil || frame.Type != framePing {
		return
	}
	c.Hub.offer(c, encodeFrame(framePong, nil))
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("Hub", "Unexpected websocket close", map[string]interface{}{"user_id": c.UserID, "error": err.Error()})
			}
			return
		}
		c.handleInbound(raw)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// Each frame is its own text message; clients parse them one by one.
			if err := c.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
