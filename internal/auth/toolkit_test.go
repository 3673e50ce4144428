// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("test-key")
	c.baseURL = srv.URL
	c.httpClient = srv.Client()
	return c
}

func TestSignInWithPassword(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts:signInWithPassword" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("key = %q, want test-key", r.URL.Query().Get("key"))
		}
		var req credentialRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Email != "alice@example.com" || req.Password != "hunter22" || !req.ReturnSecureToken {
			t.Errorf("request = %+v", req)
		}
		_ = json.NewEncoder(w).Encode(credentialResponse{
			LocalID:      "uid-alice",
			Email:        "alice@example.com",
			DisplayName:  "Alice",
			IDToken:      "id-token",
			RefreshToken: "refresh-token",
		})
	})

	res, err := c.SignInWithPassword(t.Context(), "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("SignInWithPassword: %v", err)
	}
	if res.Identity.UID != "uid-alice" || res.Identity.Email != "alice@example.com" || res.Identity.DisplayName != "Alice" {
		t.Errorf("identity = %+v", res.Identity)
	}
	if res.IDToken != "id-token" || res.RefreshToken != "refresh-token" {
		t.Errorf("tokens = %q/%q", res.IDToken, res.RefreshToken)
	}
}

func TestSignInProviderError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"EMAIL_NOT_FOUND"}}`))
	})

	_, err := c.SignInWithPassword(t.Context(), "nobody@example.com", "pw")
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	// The provider message is carried verbatim for the form layer.
	if perr.Message != "EMAIL_NOT_FOUND" {
		t.Errorf("message = %q, want EMAIL_NOT_FOUND", perr.Message)
	}
	if perr.Code != 400 {
		t.Errorf("code = %d, want 400", perr.Code)
	}
}

func TestSignUp(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts:signUp" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(credentialResponse{LocalID: "uid-new", IDToken: "tok"})
	})

	res, err := c.SignUp(t.Context(), "new@example.com", "secret6")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if res.Identity.UID != "uid-new" {
		t.Errorf("uid = %q, want uid-new", res.Identity.UID)
	}
}

func TestSendPasswordReset(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts:sendOobCode" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req oobCodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.RequestType != "PASSWORD_RESET" || req.Email != "alice@example.com" {
			t.Errorf("request = %+v", req)
		}
		_, _ = w.Write([]byte(`{}`))
	})

	if err := c.SendPasswordReset(t.Context(), "alice@example.com"); err != nil {
		t.Fatalf("SendPasswordReset: %v", err)
	}
}

func TestOpaqueUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	})

	_, err := c.SignInWithPassword(t.Context(), "alice@example.com", "pw")
	if err == nil {
		t.Fatal("want error")
	}
	var perr *Error
	if errors.As(err, &perr) {
		t.Fatalf("err = %v, want a generic error when the body is not a provider error", err)
	}
}
