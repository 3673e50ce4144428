// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// NewGemini returns a Generator backed by the Gemini API.
func NewGemini(client *genai.Client, model string) *Gemini {
	return &Gemini{
		client: client,
		model:  model,
	}
}

type Gemini struct {
	client *genai.Client
	model  string
}

var errEmptyResponse = errors.New("llm: empty response")

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	res, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(AssistantPrompt(prompt), genai.RoleUser)}, nil)
	if err != nil {
		return "", fmt.Errorf("llm: generating content: %w", err)
	}
	text := res.Text()
	if text == "" {
		return "", errEmptyResponse
	}
	return text, nil
}
