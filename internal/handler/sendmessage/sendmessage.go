// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package sendmessage

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/curioswitch/neonchat/internal/auth"
	"github.com/curioswitch/neonchat/internal/httpapi"
	"github.com/curioswitch/neonchat/internal/llm"
	"github.com/curioswitch/neonchat/internal/session"
)

func NewHandler(store session.MessageStore, gen llm.Generator) *Handler {
	return &Handler{
		store: store,
		gen:   gen,
	}
}

type Handler struct {
	store session.MessageStore
	gen   llm.Generator
}

type request struct {
	Text string `json:"text"`
}

type response struct {
	OK     bool            `json:"ok"`
	Notice *httpapi.Notice `json:"notice,omitempty"`
}

// SendMessage posts a message for the authenticated caller, including the
// assistant command flow for "/ai " messages. A generation failure comes
// back as a transient notice on an otherwise successful response since the
// user's message is already posted.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Invalid request.")
		return
	}

	notices := &collector{}
	ctrl := session.NewController(h.store, h.gen, notices)
	ctrl.SetIdentity(auth.IdentityFromContext(ctx))

	if err := ctrl.Send(ctx, req.Text); err != nil {
		slog.ErrorContext(ctx, "sendmessage: posting message", "error", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "Could not send message.")
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, response{OK: true, Notice: notices.notice})
}

// collector keeps the first notification to return on the response.
type collector struct {
	notice *httpapi.Notice
}

func (c *collector) Notify(_ context.Context, title string, message string) {
	if c.notice == nil {
		c.notice = &httpapi.Notice{Title: title, Message: message}
	}
}
