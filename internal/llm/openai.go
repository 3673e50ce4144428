// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
)

// NewOpenAI returns a Generator backed by the OpenAI chat completions API.
func NewOpenAI(client *openai.Client, model string) *OpenAI {
	return &OpenAI{
		client: client,
		model:  model,
	}
}

type OpenAI struct {
	client *openai.Client
	model  string
}

func (g *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	res, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(AssistantPrompt(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm: creating chat completion: %w", err)
	}
	if len(res.Choices) == 0 || res.Choices[0].Message.Content == "" {
		return "", errEmptyResponse
	}
	return res.Choices[0].Message.Content, nil
}
