// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package sendmessage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/curioswitch/neonchat/internal/chatdb"
)

type fakeStore struct {
	mu    sync.Mutex
	added []chatdb.Message
}

func (s *fakeStore) Add(_ context.Context, msg chatdb.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.added = append(s.added, msg)
	return "doc-1", nil
}

func (s *fakeStore) Watch(context.Context) <-chan []chatdb.Message {
	ch := make(chan []chatdb.Message)
	close(ch)
	return ch
}

type fakeGenerator struct{}

func (fakeGenerator) Generate(context.Context, string) (string, error) {
	return "", nil
}

func TestSendMessageInvalidBody(t *testing.T) {
	h := NewHandler(&fakeStore{}, fakeGenerator{})

	rec := httptest.NewRecorder()
	h.SendMessage(rec, httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader("not json")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSendMessageUnauthenticated(t *testing.T) {
	// Without a verified token on the context the send is a no-op.
	store := &fakeStore{}
	h := NewHandler(store, fakeGenerator{})

	rec := httptest.NewRecorder()
	h.SendMessage(rec, httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader(`{"text":"hello"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(store.added) != 0 {
		t.Errorf("messages = %+v, want none", store.added)
	}
}
