// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package agentbrowser

import (
	"context"
	"encoding/json"
	"slices"
	"time"

	"github.com/flowchartsman/retry"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/agentbrowser/internal/cmdrunner"
	"github.com/matt-FFFFFF/agentbrowser/internal/ctxlog"
	"github.com/matt-FFFFFF/agentbrowser/internal/envelope"
)

// DefaultSession is the session name the tool uses when none is given.
const DefaultSession = "default"

const (
	// sweepAttempts bounds the number of whole-sweep retries in CloseAllSessions.
	sweepAttempts = 2
	// sweepDelay is the fixed delay between sweeps.
	sweepDelay = 500 * time.Millisecond
	// settleDelay gives the tool time to release resources during Shutdown.
	settleDelay = 2 * time.Second
)

// defaultRunner spawns the session-level invocations that are not bound to a
// Browser instance. Package variable so tests can substitute a fake.
var defaultRunner cmdrunner.Runner = &cmdrunner.ExecRunner{}

// Sessions queries the tool for the active session name list. There is no
// client-side cache: the tool is the sole source of truth for session state,
// and every call asks it afresh.
func Sessions(ctx context.Context) ([]string, error) {
	out, err := defaultRunner.Run(ctx, BinaryName, "session", "list", "--json")
	if err != nil {
		return nil, commandErr("command failed: %s", err)
	}

	if out.ExitCode != 0 {
		return nil, commandErr("command failed: %s", stderrMsg(out.Stderr, "nonzero exit"))
	}

	env, err := envelope.Decode(out.Stdout)
	if err != nil {
		return nil, commandErr("failed to parse JSON output: %s", err)
	}

	if !env.Success {
		return nil, commandErr("%s", env.Message())
	}

	var data struct {
		Sessions []string `json:"sessions"`
	}

	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, commandErr("failed to parse JSON output: %s", err)
		}
	}

	return data.Sessions, nil
}

// CurrentSession returns this controller's session name as the tool sees it.
func (b *Browser) CurrentSession(ctx context.Context) (string, error) {
	data, err := b.execJSON(ctx, "session")
	if err != nil {
		return "", err
	}

	if data == nil {
		return DefaultSession, nil
	}

	return stringField(data, "session")
}

// IsSessionActive reports whether this controller's session appears in the
// tool's active session list.
func (b *Browser) IsSessionActive(ctx context.Context) (bool, error) {
	sessions, err := Sessions(ctx)
	if err != nil {
		return false, err
	}

	current := b.opts.Session
	if current == "" {
		current = DefaultSession
	}

	return slices.Contains(sessions, current), nil
}

// CloseAllSessions sweeps every active session, closing each in turn.
// Per-session close failures are tolerated and discarded so one stuck
// session cannot block cleanup of the others; the whole sweep is retried a
// bounded number of times with a fixed delay while sessions remain. The
// returned count is the number of sessions successfully closed.
func CloseAllSessions(ctx context.Context) int {
	total := 0

	rt := retry.NewRetrier(sweepAttempts, sweepDelay, sweepDelay)

	err := rt.RunContext(ctx, func(ctx context.Context) error {
		sessions, err := Sessions(ctx)
		if err != nil {
			return err
		}

		if len(sessions) == 0 {
			return nil
		}

		var sweepErr *multierror.Error

		for _, name := range sessions {
			b := New(WithSession(name))
			b.runner = defaultRunner

			if err := b.Close(ctx); err != nil {
				sweepErr = multierror.Append(sweepErr, err)
				continue
			}

			total++
		}

		if sweepErr != nil {
			ctxlog.Debug(ctx, "session sweep errors discarded", "error", sweepErr.ErrorOrNil())
		}

		remaining, err := Sessions(ctx)
		if err != nil {
			return err
		}

		if len(remaining) > 0 {
			return commandErr("%d session(s) still active", len(remaining))
		}

		return nil
	})
	if err != nil {
		ctxlog.Warn(ctx, "session sweep incomplete", "error", err, "closed", total)
	}

	return total
}

// ShutdownReport summarizes a Shutdown call.
type ShutdownReport struct {
	// SessionsClosed is the number of sessions closed by the sweep.
	SessionsClosed int
	// RemainingSessions lists sessions still active after the sweep.
	RemainingSessions []string
}

// Shutdown closes all sessions, optionally waits for the tool to settle,
// and reports what remains.
func Shutdown(ctx context.Context, wait bool) ShutdownReport {
	report := ShutdownReport{
		SessionsClosed: CloseAllSessions(ctx),
	}

	if wait {
		select {
		case <-time.After(settleDelay):
		case <-ctx.Done():
		}
	}

	remaining, err := Sessions(ctx)
	if err != nil {
		ctxlog.Warn(ctx, "failed to list remaining sessions", "error", err)
		return report
	}

	report.RemainingSessions = remaining

	return report
}
