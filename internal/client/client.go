// Package client is the operator side of the session WebSocket.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Cyclone1070/jarvis/internal/session"
	"github.com/Cyclone1070/jarvis/internal/telemetry"
	"github.com/gorilla/websocket"
)

const writeTimeout = 5 * time.Second

// Frame is any message the agent sends. Fields not used by Type are zero.
type Frame struct {
	Type  string              `json:"type"`
	User  string              `json:"user,omitempty"`
	Msg   string              `json:"msg,omitempty"`
	IsAI  bool                `json:"isAi,omitempty"`
	Level string              `json:"level,omitempty"`
	Data  *telemetry.Snapshot `json:"data,omitempty"`
}

// Client holds one connection to the agent.
type Client struct {
	conn   *websocket.Conn
	frames chan Frame

	writeMu   sync.Mutex
	errMu     sync.Mutex
	err       error
	closing   chan struct{}
	closeOnce sync.Once
	done      chan struct{}
}

// Dial connects to url. A non-empty token is sent as a bearer token.
func Dial(ctx context.Context, url, token string) (*Client, error) {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %s: %w", url, resp.Status, err)
		}
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	c := &Client{
		conn:    conn,
		frames:  make(chan Frame, 64),
		closing: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Frames delivers inbound frames. It is closed when the connection ends;
// Err then reports why.
func (c *Client) Frames() <-chan Frame {
	return c.frames
}

// Err returns the error that ended the read loop, if any.
func (c *Client) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

// Chat sends a chat message.
func (c *Client) Chat(msg string) error {
	return c.send(session.Inbound{Type: session.TypeChat, Msg: msg})
}

// SetMode sends a control message.
func (c *Client) SetMode(mode string) error {
	return c.send(session.Inbound{Type: session.TypeControl, Mode: mode})
}

// Close sends a close frame and waits for the read loop to stop.
func (c *Client) Close() error {
	c.closeOnce.Do(func() { close(c.closing) })

	c.writeMu.Lock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	c.writeMu.Unlock()

	select {
	case <-c.done:
		return c.conn.Close()
	case <-time.After(2 * time.Second):
	}
	err := c.conn.Close()
	<-c.done
	return err
}

func (c *Client) send(in session.Inbound) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.conn.WriteJSON(in)
}

func (c *Client) readLoop() {
	defer close(c.done)
	defer close(c.frames)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				c.setErr(err)
			}
			return
		}
		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			c.setErr(fmt.Errorf("malformed frame: %w", err))
			continue
		}
		select {
		case c.frames <- f:
		case <-c.closing:
			return
		}
	}
}

func (c *Client) setErr(err error) {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	if c.err == nil {
		c.err = err
	}
}
