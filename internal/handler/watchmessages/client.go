// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package watchmessages

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/curioswitch/neonchat/internal/chatdb"
	"github.com/curioswitch/neonchat/internal/llm"
	"github.com/curioswitch/neonchat/internal/session"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 8 * 1024
)

// inboundFrame is a UI event from the browser.
type inboundFrame struct {
	// Type is "send" or "signout".
	Type string `json:"type"`

	// Text is the message text for "send" frames.
	Text string `json:"text,omitempty"`
}

// outboundFrame is pushed to the browser.
type outboundFrame struct {
	// Type is "messages", "auth" or "notice".
	Type string `json:"type"`

	// Messages is the full window in ascending order, replacing any previous
	// window on the client.
	Messages []chatdb.Message `json:"messages,omitempty"`

	// State is the identity state for "auth" frames.
	State string `json:"state,omitempty"`

	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

func newClient(conn *websocket.Conn, store session.MessageStore, gen llm.Generator) *client {
	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		out:  make(chan outboundFrame, 64),
	}
	c.ctrl = session.NewController(store, gen, c)
	return c
}

// client is one WebSocket session. It holds two scoped subscriptions for the
// lifetime of the connection, the identity state and the window watch, both
// released when run returns.
type client struct {
	id   string
	conn *websocket.Conn
	out  chan outboundFrame
	ctrl *session.Controller

	cancel context.CancelFunc
}

func (c *client) run(ctx context.Context, identity *session.Identity) {
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	defer cancel()
	defer func() {
		_ = c.conn.Close()
	}()

	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		c.ctrl.Run(ctx, func(msgs []chatdb.Message) {
			c.enqueue(outboundFrame{Type: "messages", Messages: msgs})
		})
		return ctx.Err()
	})
	grp.Go(func() error {
		return c.writePump(ctx)
	})
	grp.Go(func() error {
		defer cancel()
		return c.readPump(ctx)
	})

	c.ctrl.SetIdentity(identity)
	c.enqueue(outboundFrame{Type: "auth", State: c.ctrl.State().String()})

	if err := grp.Wait(); err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && ctx.Err() == nil {
		slog.ErrorContext(ctx, "watchmessages: session ended", "client", c.id, "error", err)
	}
}

// readPump consumes UI events until the connection drops.
func (c *client) readPump(ctx context.Context) error {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame inboundFrame
		if err := c.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return err
			}
			return nil
		}

		switch frame.Type {
		case "send":
			if err := c.ctrl.Send(ctx, frame.Text); err != nil {
				// Store writes are not retried, the client sees the window
				// unchanged and may send again.
				slog.ErrorContext(ctx, "watchmessages: posting message", "client", c.id, "error", err)
			}
		case "signout":
			c.ctrl.SetIdentity(nil)
			c.enqueue(outboundFrame{Type: "auth", State: c.ctrl.State().String()})
		}
	}
}

// writePump sends queued frames and keepalive pings.
func (c *client) writePump(ctx context.Context) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case frame := <-c.out:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(frame); err != nil {
				return err
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		case <-ctx.Done():
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
			return nil
		}
	}
}

// enqueue queues a frame for the write pump. A client too slow to keep up
// with window snapshots is disconnected rather than allowed to block the
// store listener.
func (c *client) enqueue(frame outboundFrame) {
	select {
	case c.out <- frame:
	default:
		slog.Warn("watchmessages: slow consumer, dropping connection", "client", c.id)
		c.cancel()
	}
}

// Notify implements session.Notifier over the socket.
func (c *client) Notify(_ context.Context, title string, message string) {
	c.enqueue(outboundFrame{Type: "notice", Title: title, Message: message})
}
