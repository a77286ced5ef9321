package remote

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrogolib/log"
)

const (
	clientQueueSize = 64
	keyMessageSize  = 2
	writeWait       = time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = pongWait * 9 / 10
)

type client struct {
	hub     *Hub
	conn    *websocket.Conn
	address string
	send    chan message
}

func newClient(hub *Hub, conn *websocket.Conn, address string) *client {
	return &client{
		hub:     hub,
		conn:    conn,
		address: address,
		send:    make(chan message, clientQueueSize),
	}
}

// readPump forwards key messages of the client to the hub sender.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(keyMessageSize * 16)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if kind != websocket.BinaryMessage {
			continue
		}

		for len(data) >= keyMessageSize {
			key := chip8.Key(data[0])
			if key < chip8.KeyCount {
				c.hub.sender.Send(host.KeyEvent{Key: key, Pressed: data[1] != 0})
			} else {
				c.hub.logger.Debug("Invalid remote key", log.Uint8("key", data[0]))
			}
			data = data[keyMessageSize:]
		}
	}
}

// writePump writes all queued messages to the connection.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(msg.kind, msg.data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
