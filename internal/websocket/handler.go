package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs registers the connection with the hub and pumps until the
// peer disconnects.
func ServeWs(hub *Hub, c *websocket.Conn, streamKey string) {
	client := &Client{Hub: hub, Conn: c, Key: streamKey, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // runs in the handler goroutine
}
