// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package httpapi has small helpers shared by the JSON handlers.
package httpapi

import (
	"encoding/json"
	"net/http"
)

// Notice is a transient, user-visible notification carried on a response.
type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a failure response with a user-facing message.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]any{
		"ok":    false,
		"error": message,
	})
}
