// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package prefs stores per-user UI preferences behind a small key-value
// interface so the presentation layer never touches storage directly.
package prefs

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// KeyTheme holds the theme preference, "light" or "dark".
const KeyTheme = "theme"

// DefaultTheme is used when a user has no stored preference.
const DefaultTheme = "dark"

// ErrNotFound is returned by Get when the user has no value for the key.
var ErrNotFound = errors.New("prefs: not found")

// KV is keyed preference storage scoped to a user.
type KV interface {
	Get(ctx context.Context, userID string, key string) (string, error)
	Set(ctx context.Context, userID string, key string, value string) error
}

// NewFirestoreKV returns a KV storing preferences on the user document.
func NewFirestoreKV(client *firestore.Client) *FirestoreKV {
	return &FirestoreKV{client: client}
}

type FirestoreKV struct {
	client *firestore.Client
}

func (s *FirestoreKV) Get(ctx context.Context, userID string, key string) (string, error) {
	doc, err := s.client.Collection("users").Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("prefs: getting user document: %w", err)
	}
	value, err := doc.DataAt(key)
	if err != nil {
		return "", ErrNotFound
	}
	str, ok := value.(string)
	if !ok {
		return "", ErrNotFound
	}
	return str, nil
}

func (s *FirestoreKV) Set(ctx context.Context, userID string, key string, value string) error {
	doc := s.client.Collection("users").Doc(userID)
	if _, err := doc.Set(ctx, map[string]any{key: value}, firestore.MergeAll); err != nil {
		return fmt.Errorf("prefs: saving user preference: %w", err)
	}
	return nil
}
