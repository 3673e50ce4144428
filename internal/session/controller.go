// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package session bridges the auth provider, the message store, and the text
// generation service into a single controller owning the state of one
// connected client: its identity and its live message window.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/curioswitch/neonchat/internal/chatdb"
)

// MessageStore is the subset of the chat store the controller writes to and
// watches. Watch delivers full window snapshots, most recent first, and
// closes the channel when ctx is canceled.
type MessageStore interface {
	Add(ctx context.Context, msg chatdb.Message) (string, error)
	Watch(ctx context.Context) <-chan []chatdb.Message
}

// Generator produces assistant responses. See llm.Generator.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Notifier surfaces transient, user-visible notifications for recoverable
// failures.
type Notifier interface {
	Notify(ctx context.Context, title string, message string)
}

// NewController returns a Controller in StateUnknown. Run drives it.
func NewController(store MessageStore, gen Generator, notifier Notifier) *Controller {
	return &Controller{
		store:    store,
		gen:      gen,
		notifier: notifier,
	}
}

// Controller owns one client session. Methods are safe for concurrent use.
type Controller struct {
	store    MessageStore
	gen      Generator
	notifier Notifier

	mu       sync.Mutex
	state    AuthState
	identity *Identity
	window   []chatdb.Message
}

// Run subscribes to the message window and invokes render with the window in
// ascending chronological order for every snapshot, replacing the previous
// window wholesale. It blocks until ctx is canceled, which releases the
// subscription.
func (c *Controller) Run(ctx context.Context, render func([]chatdb.Message)) {
	c.mu.Lock()
	if c.state == StateUnknown {
		c.state = StateLoading
	}
	c.mu.Unlock()

	for snapshot := range c.store.Watch(ctx) {
		msgs := Ascending(snapshot)
		c.mu.Lock()
		c.window = msgs
		c.mu.Unlock()
		render(msgs)
	}
}

// SetIdentity records the identity observed from the auth provider. The
// first notification exits the loading state exactly once; later ones switch
// between anonymous and authenticated, e.g. on sign-out.
func (c *Controller) SetIdentity(id *Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.identity = id
	if id != nil {
		c.state = StateAuthenticated
	} else {
		c.state = StateAnonymous
	}
}

// State returns the current identity lifecycle state.
func (c *Controller) State() AuthState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Messages returns the last rendered window, oldest first.
func (c *Controller) Messages() []chatdb.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.window
}

// Send posts a message for the current identity. Whitespace-only text and
// sends without an identity are silent no-ops. A message starting with the
// assistant command prefix additionally invokes the generator and posts its
// response under the assistant sentinel; a generation failure is reported
// through the notifier and the user's message is never rolled back. The two
// writes carry no atomicity guarantee.
func (c *Controller) Send(ctx context.Context, text string) error {
	c.mu.Lock()
	id := c.identity
	c.mu.Unlock()
	if id == nil {
		return nil
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	if _, err := c.store.Add(ctx, chatdb.Message{
		Text:        trimmed,
		SenderID:    id.UID,
		DisplayName: id.DisplayName,
		PhotoURL:    id.PhotoURL,
	}); err != nil {
		return fmt.Errorf("session: posting message: %w", err)
	}

	prompt, ok := assistantPrompt(trimmed)
	if !ok {
		return nil
	}
	if err := c.respond(ctx, prompt); err != nil {
		slog.ErrorContext(ctx, "session: assistant response failed", "error", err)
		c.notifier.Notify(ctx, "AI Error", "Could not generate a response.")
	}
	return nil
}

func (c *Controller) respond(ctx context.Context, prompt string) error {
	response, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		return fmt.Errorf("session: generating response: %w", err)
	}
	if _, err := c.store.Add(ctx, chatdb.Message{
		Text:        response,
		SenderID:    Assistant.UID,
		DisplayName: Assistant.DisplayName,
		PhotoURL:    Assistant.PhotoURL,
	}); err != nil {
		return fmt.Errorf("session: posting assistant message: %w", err)
	}
	return nil
}

// Ascending reverses a store snapshot, delivered most recent first, into
// chronological order for display. Ties on createdAt keep the store's order,
// which is not guaranteed stable across snapshots.
func Ascending(msgs []chatdb.Message) []chatdb.Message {
	out := make([]chatdb.Message, len(msgs))
	for i, msg := range msgs {
		out[len(msgs)-1-i] = msg
	}
	return out
}
