// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package settheme

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/curioswitch/neonchat/internal/httpapi"
	"github.com/curioswitch/neonchat/internal/prefs"
)

func NewHandler(kv prefs.KV) *Handler {
	return &Handler{
		kv: kv,
	}
}

type Handler struct {
	kv prefs.KV
}

type request struct {
	Theme string `json:"theme"`
}

// SetTheme stores the caller's theme preference.
func (h *Handler) SetTheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := firebaseauth.TokenFromContext(ctx).UID

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Invalid request.")
		return
	}
	if req.Theme != "light" && req.Theme != "dark" {
		httpapi.WriteError(w, http.StatusBadRequest, "Unknown theme.")
		return
	}

	if err := h.kv.Set(ctx, uid, prefs.KeyTheme, req.Theme); err != nil {
		slog.ErrorContext(ctx, "settheme: saving preference", "error", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "Could not save theme.")
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}
