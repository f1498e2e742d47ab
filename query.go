// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package agentbrowser

import (
	"context"
	"strconv"
	"strings"
)

// PageMode selects how GetPage renders the document.
type PageMode string

const (
	// PageModeHTML returns the full document markup.
	PageModeHTML PageMode = "html"
	// PageModeText returns the document body's inner text.
	PageModeText PageMode = "text"
)

// GetText returns the text content of an element.
func (b *Browser) GetText(ctx context.Context, selector string) (string, error) {
	data, err := b.execJSON(ctx, "get", "text", selector)
	if err != nil {
		return "", err
	}

	return stringField(data, "text")
}

// GetHTML returns the innerHTML of an element.
func (b *Browser) GetHTML(ctx context.Context, selector string) (string, error) {
	data, err := b.execJSON(ctx, "get", "html", selector)
	if err != nil {
		return "", err
	}

	return stringField(data, "html")
}

// GetValue returns an input element's value.
func (b *Browser) GetValue(ctx context.Context, selector string) (string, error) {
	data, err := b.execJSON(ctx, "get", "value", selector)
	if err != nil {
		return "", err
	}

	return stringField(data, "value")
}

// GetAttr returns an attribute value.
func (b *Browser) GetAttr(ctx context.Context, selector, attr string) (string, error) {
	data, err := b.execJSON(ctx, "get", "attr", selector, attr)
	if err != nil {
		return "", err
	}

	return stringField(data, "value")
}

// GetTitle returns the page title.
func (b *Browser) GetTitle(ctx context.Context) (string, error) {
	data, err := b.execJSON(ctx, "get", "title")
	if err != nil {
		return "", err
	}

	return stringField(data, "title")
}

// GetURL returns the current URL.
func (b *Browser) GetURL(ctx context.Context) (string, error) {
	data, err := b.execJSON(ctx, "get", "url")
	if err != nil {
		return "", err
	}

	return stringField(data, "url")
}

// GetCount counts elements matching a selector.
func (b *Browser) GetCount(ctx context.Context, selector string) (int, error) {
	data, err := b.execJSON(ctx, "get", "count", selector)
	if err != nil {
		return 0, err
	}

	if m, ok := data.(map[string]any); ok {
		if n, ok := m["count"].(float64); ok {
			return int(n), nil
		}
	}

	if n, ok := data.(float64); ok {
		return int(n), nil
	}

	return 0, commandErr("unexpected count payload: %v", data)
}

// GetBox returns the bounding box of an element.
func (b *Browser) GetBox(ctx context.Context, selector string) (map[string]float64, error) {
	data, err := b.execJSON(ctx, "get", "box", selector)
	if err != nil {
		return nil, err
	}

	raw, ok := data.(map[string]any)
	if !ok {
		return nil, commandErr("unexpected box payload: %v", data)
	}

	if inner, ok := raw["box"].(map[string]any); ok {
		raw = inner
	}

	box := make(map[string]float64, len(raw))

	for k, v := range raw {
		f, ok := v.(float64)
		if !ok {
			return nil, commandErr("unexpected box payload: %v", data)
		}

		box[k] = f
	}

	return box, nil
}

// GetPage returns the page rendered in the given mode, via the tool's eval
// subcommand.
func (b *Browser) GetPage(ctx context.Context, mode PageMode) (string, error) {
	expr, err := pageExpr(mode)
	if err != nil {
		return "", err
	}

	data, err := b.Eval(ctx, expr)
	if err != nil {
		return "", err
	}

	if s, ok := data.(string); ok {
		return s, nil
	}

	return "", commandErr("unexpected page payload: %v", data)
}

// GetContent returns the raw HTML content of the page.
func (b *Browser) GetContent(ctx context.Context) (string, error) {
	return b.GetPage(ctx, PageModeHTML)
}

func pageExpr(mode PageMode) (string, error) {
	switch mode {
	case PageModeHTML:
		return "document.documentElement.outerHTML", nil
	case PageModeText:
		return "document.body.innerText", nil
	}

	return "", commandErr("unsupported page mode: %q", mode)
}

// State checks

// IsVisible reports whether an element is visible.
func (b *Browser) IsVisible(ctx context.Context, selector string) (bool, error) {
	data, err := b.execJSON(ctx, "is", "visible", selector)
	if err != nil {
		return false, err
	}

	return boolPayload(data)
}

// IsEnabled reports whether an element is enabled.
func (b *Browser) IsEnabled(ctx context.Context, selector string) (bool, error) {
	data, err := b.execJSON(ctx, "is", "enabled", selector)
	if err != nil {
		return false, err
	}

	return boolPayload(data)
}

// IsChecked reports whether a checkbox is checked.
func (b *Browser) IsChecked(ctx context.Context, selector string) (bool, error) {
	data, err := b.execJSON(ctx, "is", "checked", selector)
	if err != nil {
		return false, err
	}

	return boolPayload(data)
}

// SnapshotOptions narrows the accessibility tree snapshot.
type SnapshotOptions struct {
	// InteractiveOnly keeps only interactive elements.
	InteractiveOnly bool
	// Compact removes empty structural elements.
	Compact bool
	// Depth limits tree depth; zero means unlimited.
	Depth int
	// Selector scopes the snapshot to a CSS selector.
	Selector string
}

func (o *SnapshotOptions) args() []string {
	args := []string{"snapshot"}

	if o == nil {
		return args
	}

	if o.InteractiveOnly {
		args = append(args, "-i")
	}

	if o.Compact {
		args = append(args, "-c")
	}

	if o.Depth > 0 {
		args = append(args, "-d", strconv.Itoa(o.Depth))
	}

	if o.Selector != "" {
		args = append(args, "-s", o.Selector)
	}

	return args
}

// Snapshot returns the accessibility tree snapshot with element refs.
// The payload carries a "snapshot" tree string and a "refs" element map;
// the exact shape is owned by the tool.
func (b *Browser) Snapshot(ctx context.Context, opts *SnapshotOptions) (map[string]any, error) {
	data, err := b.execJSON(ctx, opts.args()...)
	if err != nil {
		return nil, err
	}

	m, ok := data.(map[string]any)
	if !ok {
		return nil, commandErr("unexpected snapshot payload: %v", data)
	}

	return m, nil
}

// Screenshot takes a screenshot. With an empty path the tool returns the
// image as a base64 PNG string; with a path it writes the file and returns
// an empty string. fullPage captures the full scrollable page.
func (b *Browser) Screenshot(ctx context.Context, path string, fullPage bool) (string, error) {
	args := []string{"screenshot"}
	if path != "" {
		args = append(args, path)
	}

	if fullPage {
		args = append(args, "--full")
	}

	return b.exec(ctx, args...)
}

// PDF saves the page as a PDF.
func (b *Browser) PDF(ctx context.Context, path string) error {
	_, err := b.exec(ctx, "pdf", path)
	return err
}

// WaitOptions describes a wait condition. All fields are optional; the tool
// applies whichever are set.
type WaitOptions struct {
	// Text waits for text to appear.
	Text string
	// URL waits for a URL pattern.
	URL string
	// LoadState waits for "load", "domcontentloaded" or "networkidle".
	LoadState string
	// Function waits for a JavaScript condition to become truthy.
	Function string
}

// Wait waits for a condition. selectorOrMs is an element selector or a
// millisecond count; pass an empty string when only using WaitOptions.
// Timeouts are passed through to the tool; the library imposes none of its
// own beyond context cancellation.
func (b *Browser) Wait(ctx context.Context, selectorOrMs string, opts *WaitOptions) error {
	args := []string{"wait"}
	if selectorOrMs != "" {
		args = append(args, selectorOrMs)
	}

	if opts != nil {
		if opts.Text != "" {
			args = append(args, "--text", opts.Text)
		}

		if opts.URL != "" {
			args = append(args, "--url", opts.URL)
		}

		if opts.LoadState != "" {
			args = append(args, "--load", opts.LoadState)
		}

		if opts.Function != "" {
			args = append(args, "--fn", opts.Function)
		}
	}

	_, err := b.exec(ctx, args...)

	return err
}

// Semantic locators

// FindRole finds an element by ARIA role and performs an action on it.
// A "text" action returns the decoded structured payload.
func (b *Browser) FindRole(ctx context.Context, role, action, value, name string) (any, error) {
	args := []string{"find", "role", role, action}
	if value != "" {
		args = append(args, value)
	}

	if name != "" {
		args = append(args, "--name", name)
	}

	return b.find(ctx, action, args)
}

// FindText finds an element by text content and performs an action on it.
func (b *Browser) FindText(ctx context.Context, text, action string) (any, error) {
	return b.find(ctx, action, []string{"find", "text", text, action})
}

// FindLabel finds an element by label and performs an action on it.
func (b *Browser) FindLabel(ctx context.Context, label, action, value string) (any, error) {
	args := []string{"find", "label", label, action}
	if value != "" {
		args = append(args, value)
	}

	return b.find(ctx, action, args)
}

func (b *Browser) find(ctx context.Context, action string, args []string) (any, error) {
	if action == "text" {
		return b.execJSON(ctx, args...)
	}

	out, err := b.exec(ctx, args...)

	return out, err
}

// Eval executes JavaScript in the page and returns the decoded result.
func (b *Browser) Eval(ctx context.Context, javascript string) (any, error) {
	return b.execJSON(ctx, "eval", javascript)
}

// Debugging

// Console returns captured console messages, optionally clearing them.
func (b *Browser) Console(ctx context.Context, clear bool) ([]string, error) {
	return b.lines(ctx, "console", clear)
}

// PageErrors returns captured page errors, optionally clearing them.
func (b *Browser) PageErrors(ctx context.Context, clear bool) ([]string, error) {
	return b.lines(ctx, "errors", clear)
}

func (b *Browser) lines(ctx context.Context, sub string, clear bool) ([]string, error) {
	args := []string{sub}
	if clear {
		args = append(args, "--clear")
	}

	out, err := b.exec(ctx, args...)
	if err != nil {
		return nil, err
	}

	if out == "" {
		return nil, nil
	}

	return strings.Split(out, "\n"), nil
}

// Highlight visually highlights an element.
func (b *Browser) Highlight(ctx context.Context, selector string) error {
	_, err := b.exec(ctx, "highlight", selector)
	return err
}

// StartTrace starts recording a trace, optionally to a path.
func (b *Browser) StartTrace(ctx context.Context, path string) error {
	return b.trace(ctx, "start", path)
}

// StopTrace stops and saves the trace, optionally to a path.
func (b *Browser) StopTrace(ctx context.Context, path string) error {
	return b.trace(ctx, "stop", path)
}

func (b *Browser) trace(ctx context.Context, verb, path string) error {
	args := []string{"trace", verb}
	if path != "" {
		args = append(args, path)
	}

	_, err := b.exec(ctx, args...)

	return err
}

// SaveState saves authentication state to a file.
func (b *Browser) SaveState(ctx context.Context, path string) error {
	_, err := b.exec(ctx, "state", "save", path)
	return err
}

// LoadState loads authentication state from a file.
func (b *Browser) LoadState(ctx context.Context, path string) error {
	_, err := b.exec(ctx, "state", "load", path)
	return err
}
