// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package auth bridges the Firebase auth provider: credential operations go
// through the Identity Toolkit REST API, verified tokens come from the
// firebaseauth middleware.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/curioswitch/neonchat/internal/session"
)

const defaultBaseURL = "https://identitytoolkit.googleapis.com/v1"

// NewClient returns a Client using the given Firebase web API key.
// The Admin SDK has no password sign-in, so credential operations issue
// Identity Toolkit requests manually.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
}

// Client calls the Identity Toolkit REST API. Every operation is a single
// attempt, there is no retry.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Error is a failure reported by the provider. Message is the provider's
// error string verbatim, e.g. "EMAIL_NOT_FOUND".
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("auth: provider error %d: %s", e.Code, e.Message)
}

// SignInResult is a successful credential operation.
type SignInResult struct {
	Identity     session.Identity
	IDToken      string
	RefreshToken string
}

// SignInWithPassword signs in an existing user with email and password.
func (c *Client) SignInWithPassword(ctx context.Context, email string, password string) (*SignInResult, error) {
	return c.credentialOp(ctx, "signInWithPassword", email, password)
}

// SignUp creates a new user with email and password and signs them in.
func (c *Client) SignUp(ctx context.Context, email string, password string) (*SignInResult, error) {
	return c.credentialOp(ctx, "signUp", email, password)
}

// SendPasswordReset dispatches a password reset email.
func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	req := oobCodeRequest{
		RequestType: "PASSWORD_RESET",
		Email:       email,
	}
	var res struct{}
	if err := c.post(ctx, "sendOobCode", req, &res); err != nil {
		return err
	}
	return nil
}

type credentialRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type credentialResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	PhotoURL     string `json:"photoUrl"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
}

type oobCodeRequest struct {
	RequestType string `json:"requestType"`
	Email       string `json:"email"`
}

func (c *Client) credentialOp(ctx context.Context, endpoint string, email string, password string) (*SignInResult, error) {
	req := credentialRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}
	var res credentialResponse
	if err := c.post(ctx, endpoint, req, &res); err != nil {
		return nil, err
	}
	return &SignInResult{
		Identity: session.Identity{
			UID:         res.LocalID,
			DisplayName: res.DisplayName,
			Email:       res.Email,
			PhotoURL:    res.PhotoURL,
		},
		IDToken:      res.IDToken,
		RefreshToken: res.RefreshToken,
	}, nil
}

func (c *Client) post(ctx context.Context, endpoint string, req any, res any) error {
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("auth: marshaling %s request: %w", endpoint, err)
	}

	url := c.baseURL + "/accounts:" + endpoint + "?key=" + c.apiKey
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqJSON))
	if err != nil {
		return fmt.Errorf("auth: creating %s request: %w", endpoint, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpRes, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("auth: sending %s request: %w", endpoint, err)
	}
	defer func() {
		_ = httpRes.Body.Close()
	}()

	if httpRes.StatusCode != http.StatusOK {
		body, err := io.ReadAll(httpRes.Body)
		if err != nil {
			return fmt.Errorf("auth: reading %s error body: %w", endpoint, err)
		}
		var errRes struct {
			Error *Error `json:"error"`
		}
		if err := json.Unmarshal(body, &errRes); err == nil && errRes.Error != nil && errRes.Error.Message != "" {
			return errRes.Error
		}
		return fmt.Errorf("auth: %s failed with status %d: %s", endpoint, httpRes.StatusCode, body) //nolint:err113
	}

	if err := json.NewDecoder(httpRes.Body).Decode(res); err != nil {
		return fmt.Errorf("auth: decoding %s response: %w", endpoint, err)
	}
	return nil
}
