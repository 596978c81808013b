package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs registers the connection with the hub, greets it and pumps until
// it closes.
func ServeWs(hub *Hub, c *websocket.Conn, userID uuid.UUID) {
	client := newClient(hub, c, userID)
	client.Send <- encodeFrame(frameConnected, map[string]string{"user_id": userID.String()})
	hub.register <- client

	go client.writePump()
	client.readPump()
}
