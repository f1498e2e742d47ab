// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package agentbrowser

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matt-FFFFFF/agentbrowser/internal/cmdrunner"
	"github.com/matt-FFFFFF/agentbrowser/internal/ctxlog"
	"github.com/matt-FFFFFF/agentbrowser/internal/envelope"
	"github.com/spf13/afero"
)

// BinaryName is the agent-browser executable looked up on PATH.
const BinaryName = "agent-browser"

// Browser is a controller bound to one agent-browser session. Each call
// spawns and awaits its own subprocess, so commands against one Browser are
// strictly serialized. Cross-instance parallelism is safe only when the
// instances address different sessions; the tool's command ordering is
// undefined for two controllers sharing a session.
type Browser struct {
	opts   Options
	runner cmdrunner.Runner
	fs     afero.Fs
}

// New creates a Browser controller.
//
//	b := agentbrowser.New(agentbrowser.WithSession("my-session"))
//	if err := b.Open(ctx, "https://example.com"); err != nil { ... }
func New(opts ...Option) *Browser {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}

	return &Browser{
		opts:   o,
		runner: &cmdrunner.ExecRunner{},
		fs:     afero.NewOsFs(),
	}
}

// run invokes one agent-browser subcommand and returns its captured output.
// Spawn failures and nonzero exits are normalized into ErrAgentBrowser.
func (b *Browser) run(ctx context.Context, jsonOutput bool, args ...string) (*cmdrunner.Output, error) {
	argv := slices.Concat(b.opts.baseArgs(jsonOutput), args)

	ctxlog.Debug(ctx, "running agent-browser", "args", argv)

	out, err := b.runner.Run(ctx, BinaryName, argv...)
	if err != nil {
		return nil, commandErr("command failed: %s", err)
	}

	if out.ExitCode != 0 {
		return nil, commandErr("command failed: %s", stderrMsg(out.Stderr, fmt.Sprintf("exit code %d", out.ExitCode)))
	}

	return out, nil
}

// exec runs a plain (non-structured) subcommand and returns trimmed stdout.
func (b *Browser) exec(ctx context.Context, args ...string) (string, error) {
	out, err := b.run(ctx, false, args...)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(out.Stdout)), nil
}

// execJSON runs a subcommand with --json and returns the decoded data
// payload, or an error carrying the envelope's message.
func (b *Browser) execJSON(ctx context.Context, args ...string) (any, error) {
	out, err := b.run(ctx, true, args...)
	if err != nil {
		return nil, err
	}

	env, err := envelope.Decode(out.Stdout)
	if err != nil {
		return nil, commandErr("failed to parse JSON output: %s", err)
	}

	if !env.Success {
		return nil, commandErr("%s", env.Message())
	}

	data, err := env.Payload()
	if err != nil {
		return nil, commandErr("failed to parse JSON output: %s", err)
	}

	return data, nil
}

// stringField pulls a named string out of a map payload, accepting a bare
// string payload as-is. The tool wraps most scalar answers in a one-key
// object (e.g. {"title": "..."}).
func stringField(data any, key string) (string, error) {
	switch v := data.(type) {
	case string:
		return v, nil
	case map[string]any:
		if s, ok := v[key].(string); ok {
			return s, nil
		}
	}

	return "", commandErr("unexpected %q payload: %v", key, data)
}

// boolPayload interprets a payload as a boolean state answer.
func boolPayload(data any) (bool, error) {
	if v, ok := data.(bool); ok {
		return v, nil
	}

	return false, commandErr("unexpected boolean payload: %v", data)
}

// Navigation

// Open navigates to a URL. Headers given here, or the Browser's default
// headers, are scoped by the tool to the URL's origin.
func (b *Browser) Open(ctx context.Context, url string, headers map[string]string) error {
	args := []string{"open", url}

	if headers == nil {
		headers = b.opts.Headers
	}

	if headers != nil {
		hj, err := json.Marshal(headers)
		if err != nil {
			return commandErr("failed to serialize headers: %s", err)
		}

		args = append(args, "--headers", string(hj))
	}

	_, err := b.exec(ctx, args...)

	return err
}

// Goto is an alias for Open.
func (b *Browser) Goto(ctx context.Context, url string, headers map[string]string) error {
	return b.Open(ctx, url, headers)
}

// Back goes back in history.
func (b *Browser) Back(ctx context.Context) error {
	_, err := b.exec(ctx, "back")
	return err
}

// Forward goes forward in history.
func (b *Browser) Forward(ctx context.Context) error {
	_, err := b.exec(ctx, "forward")
	return err
}

// Reload reloads the current page.
func (b *Browser) Reload(ctx context.Context) error {
	_, err := b.exec(ctx, "reload")
	return err
}

// Actions

// Click clicks an element by selector or ref.
func (b *Browser) Click(ctx context.Context, selector string) error {
	_, err := b.exec(ctx, "click", selector)
	return err
}

// DblClick double-clicks an element.
func (b *Browser) DblClick(ctx context.Context, selector string) error {
	_, err := b.exec(ctx, "dblclick", selector)
	return err
}

// Focus focuses an element.
func (b *Browser) Focus(ctx context.Context, selector string) error {
	_, err := b.exec(ctx, "focus", selector)
	return err
}

// Type types into an element without clearing it first.
func (b *Browser) Type(ctx context.Context, selector, text string) error {
	_, err := b.exec(ctx, "type", selector, text)
	return err
}

// Fill clears and fills an element.
func (b *Browser) Fill(ctx context.Context, selector, text string) error {
	_, err := b.exec(ctx, "fill", selector, text)
	return err
}

// Press presses a key, e.g. "Enter", "Tab" or "Control+a".
func (b *Browser) Press(ctx context.Context, key string) error {
	_, err := b.exec(ctx, "press", key)
	return err
}

// KeyDown holds a key down.
func (b *Browser) KeyDown(ctx context.Context, key string) error {
	_, err := b.exec(ctx, "keydown", key)
	return err
}

// KeyUp releases a key.
func (b *Browser) KeyUp(ctx context.Context, key string) error {
	_, err := b.exec(ctx, "keyup", key)
	return err
}

// Hover hovers over an element.
func (b *Browser) Hover(ctx context.Context, selector string) error {
	_, err := b.exec(ctx, "hover", selector)
	return err
}

// Select selects a dropdown option.
func (b *Browser) Select(ctx context.Context, selector, value string) error {
	_, err := b.exec(ctx, "select", selector, value)
	return err
}

// Check checks a checkbox.
func (b *Browser) Check(ctx context.Context, selector string) error {
	_, err := b.exec(ctx, "check", selector)
	return err
}

// Uncheck unchecks a checkbox.
func (b *Browser) Uncheck(ctx context.Context, selector string) error {
	_, err := b.exec(ctx, "uncheck", selector)
	return err
}

// Scroll scrolls the page in a direction ("up", "down", "left", "right"),
// optionally by a pixel amount (zero lets the tool pick its default).
func (b *Browser) Scroll(ctx context.Context, direction string, pixels int) error {
	args := []string{"scroll", direction}
	if pixels != 0 {
		args = append(args, strconv.Itoa(pixels))
	}

	_, err := b.exec(ctx, args...)

	return err
}

// ScrollIntoView scrolls an element into view.
func (b *Browser) ScrollIntoView(ctx context.Context, selector string) error {
	_, err := b.exec(ctx, "scrollintoview", selector)
	return err
}

// Drag drags from a source element and drops on a target element.
func (b *Browser) Drag(ctx context.Context, source, target string) error {
	_, err := b.exec(ctx, "drag", source, target)
	return err
}

// Upload uploads files to an input element.
func (b *Browser) Upload(ctx context.Context, selector string, files ...string) error {
	args := slices.Concat([]string{"upload", selector}, files)
	_, err := b.exec(ctx, args...)

	return err
}

// Mouse

// MouseMove moves the mouse to viewport coordinates.
func (b *Browser) MouseMove(ctx context.Context, x, y int) error {
	_, err := b.exec(ctx, "mouse", "move", strconv.Itoa(x), strconv.Itoa(y))
	return err
}

// MouseDown presses a mouse button ("left", "right", "middle").
func (b *Browser) MouseDown(ctx context.Context, button string) error {
	_, err := b.exec(ctx, "mouse", "down", button)
	return err
}

// MouseUp releases a mouse button.
func (b *Browser) MouseUp(ctx context.Context, button string) error {
	_, err := b.exec(ctx, "mouse", "up", button)
	return err
}

// MouseWheel scrolls the mouse wheel.
func (b *Browser) MouseWheel(ctx context.Context, dy, dx int) error {
	_, err := b.exec(ctx, "mouse", "wheel", strconv.Itoa(dy), strconv.Itoa(dx))
	return err
}

// Lifecycle

// Connect attaches to an existing browser via CDP.
func (b *Browser) Connect(ctx context.Context, port int) error {
	_, err := b.exec(ctx, "connect", strconv.Itoa(port))
	return err
}

// Close closes the browser instance for this controller's session.
func (b *Browser) Close(ctx context.Context) error {
	_, err := b.exec(ctx, "close")
	return err
}

// Quit is an alias for Close.
func (b *Browser) Quit(ctx context.Context) error {
	return b.Close(ctx)
}
