// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package auth

import (
	"context"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/curioswitch/neonchat/internal/session"
)

// IdentityFromContext returns the identity of the verified Firebase ID token
// on the request context, or nil when there is none.
func IdentityFromContext(ctx context.Context) *session.Identity {
	tok := firebaseauth.TokenFromContext(ctx)
	if tok == nil || tok.UID == "" {
		return nil
	}
	id := &session.Identity{UID: tok.UID}
	if name, ok := tok.Claims["name"].(string); ok {
		id.DisplayName = name
	}
	if email, ok := tok.Claims["email"].(string); ok {
		id.Email = email
	}
	if picture, ok := tok.Claims["picture"].(string); ok {
		id.PhotoURL = picture
	}
	return id
}
