// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package signup

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

// SignUp creates a new email/password user and signs them in.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var form forms.Signup
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Invalid request.")
		return
	}
	if fields := forms.Validate(form); fields != nil {
		httpapi.WriteJSON(w, http.StatusBadRequest, response{Error: "Invalid form.", Fields: fields})
		return
	}

	res, err := h.auth.SignUp(ctx, form.Email, form.Password)
	if err != nil {
		slog.ErrorContext(ctx, "signup: email sign-up failed", "error", err)
		msg := "Could not sign up."
		var perr *auth.Error
		if errors.As(err, &perr) {
			msg = perr.Message
		}
		httpapi.WriteJSON(w, http.StatusBadRequest, response{Error: msg})
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, response{
		OK:           true,
		User:         &res.Identity,
		IDToken:      res.IDToken,
		RefreshToken: res.RefreshToken,
	})
}
