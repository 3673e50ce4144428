// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package watchmessages

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/curioswitch/neonchat/internal/chatdb"
)

type fakeStore struct {
	mu        sync.Mutex
	added     []chatdb.Message
	snapshots chan []chatdb.Message
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		snapshots: make(chan []chatdb.Message),
	}
}

func (s *fakeStore) Add(_ context.Context, msg chatdb.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.added = append(s.added, msg)
	return "doc-1", nil
}

func (s *fakeStore) Watch(ctx context.Context) <-chan []chatdb.Message {
	out := make(chan []chatdb.Message)
	go func() {
		defer close(out)
		for {
			select {
			case msgs := <-s.snapshots:
				select {
				case out <- msgs:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

type fakeGenerator struct{}

func (fakeGenerator) Generate(context.Context, string) (string, error) {
	return "", nil
}

func TestWatchSession(t *testing.T) {
	store := newFakeStore()
	h := NewHandler(store, fakeGenerator{})

	srv := httptest.NewServer(http.HandlerFunc(h.WatchMessages))
	defer srv.Close()

	conn, res, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/messages/watch", nil)
	if err != nil {
		t.Fatalf("dialing: %v", err)
	}
	defer func() {
		_ = conn.Close()
	}()
	defer func() {
		_ = res.Body.Close()
	}()

	// Without a verified token the first notification reports anonymous.
	var frame outboundFrame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("reading auth frame: %v", err)
	}
	if frame.Type != "auth" || frame.State != "anonymous" {
		t.Fatalf("frame = %+v, want anonymous auth", frame)
	}

	// Every store change pushes a full window, delivered ascending.
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.snapshots <- []chatdb.Message{
		{ID: "b", Text: "second", CreatedAt: base.Add(time.Second)},
		{ID: "a", Text: "first", CreatedAt: base},
	}
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("reading messages frame: %v", err)
	}
	if frame.Type != "messages" || len(frame.Messages) != 2 {
		t.Fatalf("frame = %+v, want two messages", frame)
	}
	if frame.Messages[0].ID != "a" || frame.Messages[1].ID != "b" {
		t.Errorf("messages = %+v, want ascending order", frame.Messages)
	}

	// Anonymous sends are no-ops.
	if err := conn.WriteJSON(inboundFrame{Type: "send", Text: "hello"}); err != nil {
		t.Fatalf("writing send frame: %v", err)
	}
	store.snapshots <- []chatdb.Message{}
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("reading frame: %v", err)
	}
	store.mu.Lock()
	added := len(store.added)
	store.mu.Unlock()
	if added != 0 {
		t.Errorf("got %d writes, want none while anonymous", added)
	}
}
