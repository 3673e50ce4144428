// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package resetpassword

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/curioswitch/neonchat/internal/auth"
	"github.com/curioswitch/neonchat/internal/forms"
	"github.com/curioswitch/neonchat/internal/httpapi"
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
	OK     bool              `json:"ok"`
	Error  string            `json:"error,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ResetPassword dispatches a password reset email for the given address.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var form forms.PasswordReset
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Invalid request.")
		return
	}
	if fields := forms.Validate(form); fields != nil {
		httpapi.WriteJSON(w, http.StatusBadRequest, response{Error: "Invalid form.", Fields: fields})
		return
	}

	if err := h.auth.SendPasswordReset(ctx, form.Email); err != nil {
		slog.ErrorContext(ctx, "resetpassword: sending reset email failed", "error", err)
		msg := "Could not send password reset email."
		var perr *auth.Error
		if errors.As(err, &perr) {
			msg = perr.Message
		}
		httpapi.WriteJSON(w, http.StatusBadRequest, response{Error: msg})
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, response{OK: true})
}
