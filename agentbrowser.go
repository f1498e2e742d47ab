// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package agentbrowser is a Go binding for the agent-browser command-line tool.
// Every operation shells out to the agent-browser executable and decodes its
// JSON envelope. The package adds two conveniences on top of the raw command
// surface: a fluent batch mode that folds many commands into a single
// subprocess invocation, and session lifecycle helpers for managing multiple
// isolated browser instances.
//
// The package performs no browser automation itself. The agent-browser binary
// is an opaque collaborator and the sole source of truth for session state.
package agentbrowser

var (
	// Version is set during the build process.
	Version = "dev"
	// Commit is set during the build process.
	Commit = "unknown"
)
