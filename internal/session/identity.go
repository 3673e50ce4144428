// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package session

// Identity is the signed-in user as observed from the auth provider. It is
// ephemeral and never persisted by this app.
type Identity struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

// AuthState is the lifecycle of the session's identity. The zero value is
// StateUnknown; StateLoading is exited exactly once, on the first
// notification from the auth provider.
type AuthState int

const (
	StateUnknown AuthState = iota
	StateLoading
	StateAnonymous
	StateAuthenticated
)

func (s AuthState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}
