// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package unconfigured is the safe-mode surface served when the Firebase
// project is not configured: a static explanatory page and nothing else.
// There is no recovery path besides fixing configuration and restarting.
package unconfigured

import "net/http"

const page = `<!DOCTYPE html>
<html>
<head><title>Neon Chat AI</title></head>
<body>
<h1>Firebase Not Configured</h1>
<p>To use Neon Chat AI, you need to set up Firebase.</p>
<p>Set the <code>google.project</code> and <code>auth.apikey</code> configuration
values to your Firebase project credentials and restart the server.</p>
</body>
</html>
`

// NewHandler returns the static error screen handler.
func NewHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(page))
	})
}
