// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package getmessages

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/curioswitch/neonchat/internal/chatdb"
	"github.com/curioswitch/neonchat/internal/httpapi"
	"github.com/curioswitch/neonchat/internal/session"
)

// MessageSource reads the current message window, most recent first.
type MessageSource interface {
	Latest(ctx context.Context) ([]chatdb.Message, error)
}

func NewHandler(store MessageSource) *Handler {
	return &Handler{
		store: store,
	}
}

type Handler struct {
	store MessageSource
}

type response struct {
	Messages []chatdb.Message `json:"messages"`
}

// GetMessages returns the current message window in ascending chronological
// order, for the initial render before the live watch takes over. Absent
// writes in between, a remount sees the same window.
func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	msgs, err := h.store.Latest(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "getmessages: reading window", "error", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "Could not load messages.")
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, response{Messages: session.Ascending(msgs)})
}
