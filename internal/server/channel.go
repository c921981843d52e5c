package server

import (
	"context"
	"time"

	"github.com/Cyclone1070/jarvis/internal/session"
	"github.com/gorilla/websocket"
)

const maxFrameBytes = 64 * 1024

// wsChannel adapts a WebSocket connection to session.Channel.
type wsChannel struct {
	conn         *websocket.Conn
	writeTimeout time.Duration
}

func newWSChannel(conn *websocket.Conn, writeTimeout time.Duration) *wsChannel {
	conn.SetReadLimit(maxFrameBytes)
	return &wsChannel{conn: conn, writeTimeout: writeTimeout}
}

// Receive blocks for the next data frame. A done ctx expires the read deadline
// so the pending read returns.
func (c *wsChannel) Receive(ctx context.Context) ([]byte, error) {
	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Send writes msg as one JSON text frame.
func (c *wsChannel) Send(ctx context.Context, msg session.Message) error {
	deadline := time.Now().Add(c.writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}

// close sends a close frame and closes the connection.
func (c *wsChannel) close(code int, reason string) {
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason), time.Now().Add(time.Second))
	_ = c.conn.Close()
}
