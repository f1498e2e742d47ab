// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package agentbrowser

import (
	"context"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/agentbrowser/internal/batchscript"
	"github.com/matt-FFFFFF/agentbrowser/internal/ctxlog"
	"github.com/matt-FFFFFF/agentbrowser/internal/envelope"
)

// batchShell is the interpreter the assembled script is handed to.
const batchShell = "bash"

// Batch accumulates queued operations for a single combined subprocess
// invocation. Every queuing method returns the same *Batch so calls chain
// fluently. Operations are immutable once queued and execute in FIFO order.
//
// A Batch belongs to the Browser that created it and is not safe for
// concurrent use. Results are positionally aligned with the queue: slot i
// holds the decoded data payload of operation i if it requested structured
// output, nil otherwise.
type Batch struct {
	browser *Browser
	ops     []op
	err     error
}

// NewBatch starts an empty batch for this controller.
func (b *Browser) NewBatch() *Batch {
	return &Batch{browser: b}
}

// Batch runs fn to queue operations and, only when fn returns nil, executes
// the queue as one subprocess invocation. An error from fn discards the
// queue with zero external invocations, as does an empty queue.
//
//	results, err := b.Batch(ctx, func(bt *agentbrowser.Batch) error {
//		bt.Open("https://example.com", nil).GetTitle().Snapshot(true, false)
//		return nil
//	})
func (b *Browser) Batch(ctx context.Context, fn func(*Batch) error) ([]any, error) {
	bt := b.NewBatch()
	if err := fn(bt); err != nil {
		return nil, err
	}

	return bt.Execute(ctx)
}

func (bt *Batch) queue(o op) *Batch {
	bt.ops = append(bt.ops, o)
	return bt
}

// Len returns the number of queued operations.
func (bt *Batch) Len() int {
	return len(bt.ops)
}

// Open queues a navigation, optionally with origin-scoped headers.
func (bt *Batch) Open(url string, headers map[string]string) *Batch {
	return bt.queue(openOp{url: url, headers: headers})
}

// Click queues a click on an element.
func (bt *Batch) Click(selector string) *Batch {
	return bt.queue(rawOp{method: "click", args: []string{selector}})
}

// Fill queues a clear-and-fill of an element.
func (bt *Batch) Fill(selector, text string) *Batch {
	return bt.queue(rawOp{method: "fill", args: []string{selector, text}})
}

// Type queues typing into an element.
func (bt *Batch) Type(selector, text string) *Batch {
	return bt.queue(rawOp{method: "type", args: []string{selector, text}})
}

// Press queues a key press.
func (bt *Batch) Press(key string) *Batch {
	return bt.queue(rawOp{method: "press", args: []string{key}})
}

// Hover queues a hover over an element.
func (bt *Batch) Hover(selector string) *Batch {
	return bt.queue(rawOp{method: "hover", args: []string{selector}})
}

// Wait queues a wait for a selector or millisecond count.
func (bt *Batch) Wait(selectorOrMs string) *Batch {
	return bt.queue(rawOp{method: "wait", args: []string{selectorOrMs}})
}

// Get queues a structured property read: get <field> [args...].
func (bt *Batch) Get(field string, args ...string) *Batch {
	return bt.queue(getOp{args: slices.Concat([]string{field}, args), jsonOutput: true})
}

// GetTitle queues a structured page title read.
func (bt *Batch) GetTitle() *Batch {
	return bt.Get("title")
}

// GetURL queues a structured current URL read.
func (bt *Batch) GetURL() *Batch {
	return bt.Get("url")
}

// GetText queues a structured element text read.
func (bt *Batch) GetText(selector string) *Batch {
	return bt.Get("text", selector)
}

// GetPage queues a structured page render in the given mode. An unsupported
// mode poisons the batch; Execute reports it without spawning a process.
func (bt *Batch) GetPage(mode PageMode) *Batch {
	expr, err := pageExpr(mode)
	if err != nil {
		if bt.err == nil {
			bt.err = err
		}

		return bt
	}

	return bt.queue(evalOp{expr: expr})
}

// Eval queues a structured JavaScript evaluation.
func (bt *Batch) Eval(javascript string) *Batch {
	return bt.queue(evalOp{expr: javascript})
}

// Screenshot queues a screenshot, optionally to a path.
func (bt *Batch) Screenshot(path string) *Batch {
	var args []string
	if path != "" {
		args = []string{path}
	}

	return bt.queue(rawOp{method: "screenshot", args: args})
}

// Snapshot queues a structured accessibility tree snapshot.
func (bt *Batch) Snapshot(interactiveOnly, compact bool) *Batch {
	return bt.queue(snapshotOp{interactiveOnly: interactiveOnly, compact: compact})
}

// Command queues any other subcommand verbatim without structured output.
func (bt *Batch) Command(method string, args ...string) *Batch {
	return bt.queue(rawOp{method: method, args: args})
}

// CommandJSON queues any other subcommand verbatim with structured output.
func (bt *Batch) CommandJSON(method string, args ...string) *Batch {
	return bt.queue(rawOp{method: method, args: args, jsonOutput: true})
}

// Execute folds the queue into one fail-fast shell script, runs it as a
// single subprocess and reconstructs the per-operation result list. An empty
// queue performs zero external invocations and yields no results. On any
// failure - spawn error, nonzero exit, or an envelope reporting
// success=false - the whole batch fails and no result list is returned.
func (bt *Batch) Execute(ctx context.Context) ([]any, error) {
	if bt.err != nil {
		return nil, bt.err
	}

	if len(bt.ops) == 0 {
		return nil, nil
	}

	script := batchscript.New()
	for _, o := range bt.ops {
		script.Append(slices.Concat([]string{BinaryName}, o.argv(&bt.browser.opts)))
	}

	ctxlog.Debug(ctx, "executing batch", "commands", script.Len())

	path, cleanup, err := script.WriteTemp(bt.browser.fs)
	if err != nil {
		return nil, commandErr("batch execution failed: %s", err)
	}
	defer cleanup()

	out, err := bt.browser.runner.Run(ctx, batchShell, path)
	if err != nil {
		return nil, commandErr("batch execution failed: %s", err)
	}

	if out.ExitCode != 0 {
		return nil, commandErr("batch execution failed: %s",
			stderrMsg(out.Stderr, "nonzero exit"))
	}

	return bt.parseResults(out.Stdout)
}

// parseResults re-associates the combined stdout stream with the queue: the
// i-th envelope line is the outcome of the i-th structured operation, in
// original queue order. Non-envelope lines are out of band and never claim a
// slot. A failed envelope aborts the whole batch.
func (bt *Batch) parseResults(stdout []byte) ([]any, error) {
	var payloads []any

	for line := range strings.Lines(string(stdout)) {
		line = strings.TrimSpace(line)
		if !envelope.IsEnvelopeLine([]byte(line)) {
			continue
		}

		env, err := envelope.Decode([]byte(line))
		if err != nil {
			continue
		}

		if !env.Success {
			return nil, commandErr("%s", env.Message())
		}

		data, err := env.Payload()
		if err != nil {
			return nil, commandErr("failed to parse JSON output: %s", err)
		}

		payloads = append(payloads, data)
	}

	results := make([]any, len(bt.ops))
	next := 0

	for i, o := range bt.ops {
		if !o.structured() {
			continue
		}

		if next < len(payloads) {
			results[i] = payloads[next]
			next++
		}
	}

	return results, nil
}
