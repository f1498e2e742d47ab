// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package agentbrowser

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrAgentBrowser is the single error kind surfaced by this package.
// Spawn failures, nonzero process exits, malformed envelopes and envelopes
// reporting success=false all wrap it; callers are not expected to
// distinguish further.
var ErrAgentBrowser = errors.New("agent-browser")

// commandErr wraps a human-readable message into the package error kind.
func commandErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrAgentBrowser, fmt.Sprintf(format, args...))
}

// stderrMsg extracts a trimmed diagnostic string from a captured error
// stream, falling back to the given default when the stream is empty.
func stderrMsg(stderr []byte, fallback string) string {
	if s := bytes.TrimSpace(stderr); len(s) > 0 {
		return string(s)
	}

	return fallback
}
