// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package chatdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/cenkalti/backoff/v5"
	"google.golang.org/api/iterator"
)

// NewStore returns a Store over the given Firestore client keeping the most
// recent window messages live.
func NewStore(client *firestore.Client, window int) *Store {
	return &Store{
		client: client,
		window: window,
	}
}

// Store accesses the chat message collection.
type Store struct {
	client *firestore.Client
	window int
}

// Add inserts a message and returns the document ID assigned by Firestore.
// CreatedAt is overwritten with the server timestamp regardless of its value.
func (s *Store) Add(ctx context.Context, msg Message) (string, error) {
	msg.CreatedAt = time.Time{}
	ref, _, err := s.client.Collection(CollectionMessages).Add(ctx, msg)
	if err != nil {
		return "", fmt.Errorf("chatdb: adding message: %w", err)
	}
	return ref.ID, nil
}

// Latest returns the current window, most recent first, exactly as a watch
// snapshot would deliver it. A cold room yields a smaller window.
func (s *Store) Latest(ctx context.Context) ([]Message, error) {
	iter := s.windowQuery().Documents(ctx)
	defer iter.Stop()

	msgs := make([]Message, 0, s.window)
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return msgs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("chatdb: reading message window: %w", err)
		}
		var msg Message
		if err := doc.DataTo(&msg); err != nil {
			return nil, fmt.Errorf("chatdb: decoding message document: %w", err)
		}
		msg.ID = doc.Ref.ID
		msgs = append(msgs, msg)
	}
}

// Watch subscribes to the message window and delivers a full snapshot of the
// current window, most recent first, for every change to the underlying data.
// Consumers replace their copy wholesale rather than patching. The channel is
// closed when ctx is canceled, which also releases the Firestore listener.
// Transient listen failures are re-subscribed internally with exponential
// backoff; consumers just render the next snapshot that arrives.
func (s *Store) Watch(ctx context.Context) <-chan []Message {
	ch := make(chan []Message, 1)
	go func() {
		defer close(ch)
		bo := backoff.NewExponentialBackOff()
		for {
			err := s.watchOnce(ctx, ch, bo)
			if ctx.Err() != nil {
				return
			}
			slog.ErrorContext(ctx, "chatdb: message window listen failed", "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(bo.NextBackOff()):
			}
		}
	}()
	return ch
}

func (s *Store) watchOnce(ctx context.Context, ch chan<- []Message, bo *backoff.ExponentialBackOff) error {
	it := s.windowQuery().Snapshots(ctx)
	defer it.Stop()
	for {
		snap, err := it.Next()
		if err != nil {
			return fmt.Errorf("chatdb: next window snapshot: %w", err)
		}
		docs, err := snap.Documents.GetAll()
		if err != nil {
			return fmt.Errorf("chatdb: reading window snapshot: %w", err)
		}
		msgs := make([]Message, len(docs))
		for i, doc := range docs {
			if err := doc.DataTo(&msgs[i]); err != nil {
				return fmt.Errorf("chatdb: decoding message document: %w", err)
			}
			msgs[i].ID = doc.Ref.ID
		}
		bo.Reset()
		select {
		case ch <- msgs:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *Store) windowQuery() firestore.Query {
	return s.client.Collection(CollectionMessages).Query.
		OrderBy("createdAt", firestore.Desc).
		Limit(s.window)
}
