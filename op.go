// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package agentbrowser

import (
	"encoding/json"
	"slices"
)

// op is the closed set of operations a Batch can queue. Each variant carries
// its own typed payload and knows how to render itself as the argv the tool
// would accept as a standalone invocation (excluding the executable name).
// rawOp is the pass-through variant for subcommands with no special
// translation.
type op interface {
	// argv renders the full argument vector for this operation under the
	// given global options.
	argv(o *Options) []string
	// structured reports whether the operation requests the JSON envelope
	// and therefore consumes one envelope line of batch output.
	structured() bool
}

// getOp reads a page property: get <field> [args...].
type getOp struct {
	args       []string
	jsonOutput bool
}

func (g getOp) argv(o *Options) []string {
	return slices.Concat(o.baseArgs(g.jsonOutput), []string{"get"}, g.args)
}

func (g getOp) structured() bool { return g.jsonOutput }

// evalOp executes JavaScript; always structured.
type evalOp struct {
	expr string
}

func (e evalOp) argv(o *Options) []string {
	return slices.Concat(o.baseArgs(true), []string{"eval", e.expr})
}

func (evalOp) structured() bool { return true }

// snapshotOp captures the accessibility tree; always structured.
type snapshotOp struct {
	interactiveOnly bool
	compact         bool
}

func (s snapshotOp) argv(o *Options) []string {
	args := slices.Concat(o.baseArgs(true), []string{"snapshot"})

	if s.interactiveOnly {
		args = append(args, "-i")
	}

	if s.compact {
		args = append(args, "-c")
	}

	return args
}

func (snapshotOp) structured() bool { return true }

// openOp navigates to a URL, optionally with origin-scoped headers appended
// as a serialized JSON flag after the positional arguments.
type openOp struct {
	url     string
	headers map[string]string
}

func (p openOp) argv(o *Options) []string {
	args := slices.Concat(o.baseArgs(false), []string{"open", p.url})

	headers := p.headers
	if headers == nil {
		headers = o.Headers
	}

	if headers != nil {
		// Marshal of a string map cannot fail.
		hj, _ := json.Marshal(headers)
		args = append(args, "--headers", string(hj))
	}

	return args
}

func (openOp) structured() bool { return false }

// rawOp passes any other subcommand through verbatim.
type rawOp struct {
	method     string
	args       []string
	jsonOutput bool
}

func (r rawOp) argv(o *Options) []string {
	return slices.Concat(o.baseArgs(r.jsonOutput), []string{r.method}, r.args)
}

func (r rawOp) structured() bool { return r.jsonOutput }
