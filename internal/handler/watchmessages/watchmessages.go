// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package watchmessages

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/curioswitch/neonchat/internal/auth"
	"github.com/curioswitch/neonchat/internal/llm"
	"github.com/curioswitch/neonchat/internal/session"
)

// NewHandler returns a Handler streaming the live message window.
func NewHandler(store session.MessageStore, gen llm.Generator) *Handler {
	return &Handler{
		store: store,
		gen:   gen,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

// Handler upgrades authenticated requests to a WebSocket session carrying
// window snapshots out and UI events in.
type Handler struct {
	store    session.MessageStore
	gen      llm.Generator
	upgrader websocket.Upgrader
}

func (h *Handler) WatchMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := auth.IdentityFromContext(ctx)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.ErrorContext(ctx, "watchmessages: upgrading connection", "error", err)
		return
	}

	c := newClient(conn, h.store, h.gen)
	c.run(ctx, identity)
}
