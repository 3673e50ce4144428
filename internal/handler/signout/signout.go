// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package signout

import (
	"log/slog"
	"net/http"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/curioswitch/neonchat/internal/httpapi"
)

func NewHandler(fbAuth *fbauth.Client) *Handler {
	return &Handler{
		fbAuth: fbAuth,
	}
}

type Handler struct {
	fbAuth *fbauth.Client
}

// SignOut revokes the caller's refresh tokens. The client drops its ID token;
// once it expires no further send succeeds.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := firebaseauth.TokenFromContext(ctx).UID

	if err := h.fbAuth.RevokeRefreshTokens(ctx, uid); err != nil {
		slog.ErrorContext(ctx, "signout: revoking refresh tokens", "error", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "Could not sign out.")
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}
