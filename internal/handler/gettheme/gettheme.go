// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package gettheme

import (
	"errors"
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

type response struct {
	Theme string `json:"theme"`
}

// GetTheme returns the caller's stored theme preference, defaulting to dark.
func (h *Handler) GetTheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := firebaseauth.TokenFromContext(ctx).UID

	theme, err := h.kv.Get(ctx, uid, prefs.KeyTheme)
	if err != nil {
		if !errors.Is(err, prefs.ErrNotFound) {
			slog.ErrorContext(ctx, "gettheme: reading preference", "error", err)
		}
		theme = prefs.DefaultTheme
	}

	httpapi.WriteJSON(w, http.StatusOK, response{Theme: theme})
}
