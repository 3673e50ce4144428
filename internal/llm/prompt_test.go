// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package llm

import "testing"

func TestAssistantPrompt(t *testing.T) {
	got := AssistantPrompt("what is 2+2")
	want := "You are a helpful AI assistant. Please respond to the following prompt: what is 2+2"
	if got != want {
		t.Errorf("AssistantPrompt = %q, want %q", got, want)
	}
}
