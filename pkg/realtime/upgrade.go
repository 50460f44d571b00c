package realtime

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var newline = []byte{'\n'}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsConn adapts a gorilla websocket.Conn to the Conn interface.
type wsConn struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

func (c *wsConn) ID() string { return c.id }

func (c *wsConn) Send(frame []byte) error {
	select {
	case c.send <- frame:
		return nil
	default:
		return websocket.ErrCloseSent
	}
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}

// Upgrade promotes an HTTP request to a websocket connection, registers it
// with hub, and starts its read/write pumps. Each connection is assigned a
// fresh uuid; callers correlate it to a participant/owner via the session
// controller's own bookkeeping, not via this package.
func Upgrade(hub *Hub, w http.ResponseWriter, r *http.Request) (Conn, error) {
	raw, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}

	conn := &wsConn{
		id:   uuid.NewString(),
		conn: raw,
		send: make(chan []byte, 256),
	}
	hub.Register(conn)

	go conn.writePump()
	go conn.readPump(hub)

	return conn, nil
}

func (c *wsConn) readPump(hub *Hub) {
	defer hub.Unregister(c.id)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("realtime: read error from %s: %v", c.id, err)
			}
			return
		}
		message = bytes.TrimSpace(message)
		hub.Dispatch(c, message)
	}
}

func (c *wsConn) writePump() {
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
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write(newline)
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
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
