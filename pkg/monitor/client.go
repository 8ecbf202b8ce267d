package monitor

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Client is a websocket connection to the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// Send queues messages for the client, it is closed by the hub.
	Send chan []byte

	ID         uint8
	RemoteAddr string
	UserAgent  string

	avgLatency  atomic.Uint32 // milliseconds
	connectedAt time.Time
}

func (h *Hub) newClient(conn *websocket.Conn, r *http.Request) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.currentID++
	return &Client{
		hub:         h,
		conn:        conn,
		Send:        make(chan []byte, 256),
		ID:          h.currentID,
		RemoteAddr:  r.RemoteAddr,
		UserAgent:   r.Header.Get("User-Agent"),
		connectedAt: time.Now(),
	}
}

// Latency returns the smoothed round trip time to the client in
// milliseconds, or 0 where it cannot be measured.
func (c *Client) Latency() uint16 {
	return uint16(c.avgLatency.Load())
}

func (c *Client) unregister() {
	select {
	case c.hub.unregister <- c:
	case <-c.hub.done:
	}
}

// ReadPump reads messages from the client until the connection closes.
func (c *Client) ReadPump() {
	defer func() {
		c.unregister()
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) == 0 {
			continue
		}
		if message[0] == Closing {
			return
		}
		c.hub.handle(c, message)
	}
}

// WritePump writes queued messages to the client until Send is closed or
// a write fails.
func (c *Client) WritePump() {
	defer func() {
		c.unregister()
		c.conn.Close()
	}()

	for message := range c.Send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			return
		}

		// update average latency
		if rtt, ok := roundTrip(c.conn.UnderlyingConn()); ok {
			ms := uint32(rtt / time.Millisecond)
			c.avgLatency.Store((c.avgLatency.Load()*9 + ms) / 10)
		}
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
