// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package llm

// AssistantPrompt wraps a user prompt with the assistant persona instruction.
func AssistantPrompt(prompt string) string {
	return assistantPrompt + prompt
}

const assistantPrompt = `You are a helpful AI assistant. Please respond to the following prompt: `
