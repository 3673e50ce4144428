// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"github.com/curioswitch/go-curiostack/config"
)

type Chat struct {
	// Window is the number of most recent messages kept live for clients.
	Window int `koanf:"window"`
}

type LLM struct {
	// Provider is the text generation backend, "google-genai" or "openai".
	Provider string `koanf:"provider"`

	// Model is the model name passed to the provider.
	Model string `koanf:"model"`
}

type Auth struct {
	// APIKey is the Firebase web API key used for Identity Toolkit REST calls.
	APIKey string `koanf:"apikey"`
}

type Config struct {
	config.Common

	// Chat is the configuration for the live message window.
	Chat Chat `koanf:"chat"`

	// LLM is the configuration for assistant text generation.
	LLM LLM `koanf:"llm"`

	// Auth is the configuration for credential-based sign-in.
	Auth Auth `koanf:"auth"`
}
