// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package session

import "strings"

// commandPrefix invokes the assistant. The trailing space is part of the
// prefix, "/ai" alone is an ordinary message.
const commandPrefix = "/ai "

// Assistant is the sentinel identity for assistant-authored messages. The
// UID can never collide with a real Firebase UID since only the server
// writes under it.
var Assistant = Identity{
	UID:         "ai-bot",
	DisplayName: "Neon AI",
	PhotoURL:    assistantAvatar,
}

const assistantAvatar = `data:image/svg+xml,%3Csvg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 24 24' fill='none' stroke='currentColor' stroke-width='2' stroke-linecap='round' stroke-linejoin='round' class='lucide lucide-bot'%3E%3Cpath d='M12 8V4H8%3E%3Crect width='16' height='12' x='4' y='8' rx='2'/%3E%3Cpath d='M2 14h2%3E%3Cpath d='M20 14h2'/%3E%3Cpath d='M15 13v2'/%3E%3Cpath d='M9 13v2'/%3E%3C/svg%3E`

// assistantPrompt extracts the generation prompt from a command message.
// The second return is false for ordinary messages.
func assistantPrompt(text string) (string, bool) {
	if !strings.HasPrefix(text, commandPrefix) {
		return "", false
	}
	return text[len(commandPrefix):], true
}
