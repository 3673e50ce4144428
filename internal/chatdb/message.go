// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package chatdb

import "time"

// CollectionMessages is the Firestore collection holding the chat room.
const CollectionMessages = "messages"

// Message represents a chat message stored in Firestore. Messages are
// append-only, there is no update or delete path.
type Message struct {
	// ID is the document ID assigned by Firestore on insert. It is not part
	// of the stored document body.
	ID string `firestore:"-" json:"id"`

	// Text is the message content. Always non-empty after trimming.
	Text string `firestore:"text" json:"text"`

	// SenderID is the Firebase UID of the sender, or the assistant sentinel.
	SenderID string `firestore:"senderId" json:"senderId"`

	// DisplayName is the display name of the sender, if any.
	DisplayName string `firestore:"displayName" json:"displayName,omitempty"`

	// PhotoURL is the URL of the sender's avatar, if any.
	PhotoURL string `firestore:"photoURL" json:"photoURL,omitempty"`

	// CreatedAt is assigned by Firestore at write time. The client never
	// sets it, so concurrent writers cannot skew ordering with clock drift.
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}
