package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleResultsSocket upgrades the connection, sends the current snapshot
// immediately, and keeps the client registered until it disconnects.
func HandleResultsSocket(c echo.Context, hub *Hub, snapshotFn func() ResultsSnapshot) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{Conn: conn}
	hub.register <- client

	conn.WriteJSON(Message{
		Type:      MessageTypeConnected,
		Message:   "Live results feed connected",
		Timestamp: time.Now(),
	})
	conn.WriteJSON(Message{
		Type:      MessageTypeResultsUpdate,
		Data:      snapshotFn(),
		Timestamp: time.Now(),
	})

	// Reader loop exists only to observe the close; the feed is one-way.
	go func() {
		defer func() {
			hub.unregister <- client
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()

	return nil
}
