// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package agentbrowser

import "strconv"

// Options holds the global flags passed to every agent-browser invocation
// made by a Browser.
type Options struct {
	// Session is the named, isolated browser instance to address.
	// Empty means the tool's default session.
	Session string
	// ExecutablePath is a custom browser executable path.
	ExecutablePath string
	// Headers are default HTTP headers applied by Open when no per-call
	// headers are given.
	Headers map[string]string
	// Headed shows the browser window instead of running headless.
	Headed bool
	// Debug enables the tool's debug output.
	Debug bool
	// CDPPort connects to an existing browser via the Chrome DevTools
	// Protocol on the given port. Zero means no CDP connection.
	CDPPort int
}

// Option implements a functional options pattern for Browser.
type Option func(*Options)

// WithSession binds the browser to a named session.
func WithSession(name string) Option {
	return func(o *Options) {
		o.Session = name
	}
}

// WithExecutablePath sets a custom browser executable path.
func WithExecutablePath(path string) Option {
	return func(o *Options) {
		o.ExecutablePath = path
	}
}

// WithHeaders sets default HTTP headers for Open calls.
func WithHeaders(headers map[string]string) Option {
	return func(o *Options) {
		o.Headers = headers
	}
}

// WithHeaded shows the browser window (not headless).
func WithHeaded() Option {
	return func(o *Options) {
		o.Headed = true
	}
}

// WithDebug enables the tool's debug output.
func WithDebug() Option {
	return func(o *Options) {
		o.Debug = true
	}
}

// WithCDPPort connects via an existing Chrome DevTools Protocol port.
func WithCDPPort(port int) Option {
	return func(o *Options) {
		o.CDPPort = port
	}
}

// baseArgs renders the global flags, optionally requesting the structured
// JSON envelope. The flag order matches the tool's documented invocation
// shape: session, executable path, headed, debug, cdp, json.
func (o *Options) baseArgs(jsonOutput bool) []string {
	args := make([]string, 0, 8) //nolint:mnd

	if o.Session != "" {
		args = append(args, "--session", o.Session)
	}

	if o.ExecutablePath != "" {
		args = append(args, "--executable-path", o.ExecutablePath)
	}

	if o.Headed {
		args = append(args, "--headed")
	}

	if o.Debug {
		args = append(args, "--debug")
	}

	if o.CDPPort != 0 {
		args = append(args, "--cdp", strconv.Itoa(o.CDPPort))
	}

	if jsonOutput {
		args = append(args, "--json")
	}

	return args
}
