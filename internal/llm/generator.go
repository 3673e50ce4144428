// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package llm

import "context"

// Generator produces a single text response for a prompt. There is no
// streaming and no partial output; any upstream problem surfaces as an
// opaque error.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
