// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package signin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/curioswitch/neonchat/internal/auth"
	"github.com/curioswitch/neonchat/internal/forms"
	"github.com/curioswitch/neonchat/internal/httpapi"
	"github.com/curioswitch/neonchat/internal/session"
)

func NewHandler(authClient *auth.Client) *Handler {
	return &Handler{
		auth: authClient,
	}
}

type Handler struct {
	auth *auth.Client
}

type response struct {
	OK           bool              `json:"ok"`
	User         *session.Identity `json:"user,omitempty"`
	IDToken      string            `json:"idToken,omitempty"`
	RefreshToken string            `json:"refreshToken,omitempty"`
	Error        string            `json:"error,omitempty"`
	Fields       map[string]string `json:"fields,omitempty"`
}

// SignIn signs in an existing user with email and password. A failure is
// reported with the provider's message verbatim when available; the caller
// may simply retry, there is no server-side retry.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var form forms.Login
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Invalid request.")
		return
	}
	if fields := forms.Validate(form); fields != nil {
		httpapi.WriteJSON(w, http.StatusBadRequest, response{Error: "Invalid form.", Fields: fields})
		return
	}

	res, err := h.auth.SignInWithPassword(ctx, form.Email, form.Password)
	if err != nil {
		slog.ErrorContext(ctx, "signin: email sign-in failed", "error", err)
		msg := "Could not sign in."
		var perr *auth.Error
		if errors.As(err, &perr) {
			msg = perr.Message
		}
		httpapi.WriteJSON(w, http.StatusUnauthorized, response{Error: msg})
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, response{
		OK:           true,
		User:         &res.Identity,
		IDToken:      res.IDToken,
		RefreshToken: res.RefreshToken,
	})
}
