// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package agentbrowser

import (
	"context"
	"encoding/json"
	"strconv"
)

// Emulation and settings

// SetViewport sets the viewport size.
func (b *Browser) SetViewport(ctx context.Context, width, height int) error {
	_, err := b.exec(ctx, "set", "viewport", strconv.Itoa(width), strconv.Itoa(height))
	return err
}

// SetDevice emulates a named device, e.g. "iPhone 14".
func (b *Browser) SetDevice(ctx context.Context, name string) error {
	_, err := b.exec(ctx, "set", "device", name)
	return err
}

// SetGeolocation sets the emulated geolocation.
func (b *Browser) SetGeolocation(ctx context.Context, latitude, longitude float64) error {
	_, err := b.exec(ctx, "set", "geo",
		strconv.FormatFloat(latitude, 'f', -1, 64),
		strconv.FormatFloat(longitude, 'f', -1, 64))

	return err
}

// SetOffline toggles offline mode.
func (b *Browser) SetOffline(ctx context.Context, enabled bool) error {
	state := "off"
	if enabled {
		state = "on"
	}

	_, err := b.exec(ctx, "set", "offline", state)

	return err
}

// SetHeaders sets extra HTTP headers for subsequent requests.
func (b *Browser) SetHeaders(ctx context.Context, headers map[string]string) error {
	hj, err := json.Marshal(headers)
	if err != nil {
		return commandErr("failed to serialize headers: %s", err)
	}

	_, err = b.exec(ctx, "set", "headers", string(hj))

	return err
}

// SetCredentials sets HTTP basic auth credentials.
func (b *Browser) SetCredentials(ctx context.Context, username, password string) error {
	_, err := b.exec(ctx, "set", "credentials", username, password)
	return err
}

// SetMedia emulates a color scheme, "dark" or "light".
func (b *Browser) SetMedia(ctx context.Context, scheme string) error {
	_, err := b.exec(ctx, "set", "media", scheme)
	return err
}

// Cookies

// Cookies returns all cookies.
func (b *Browser) Cookies(ctx context.Context) ([]any, error) {
	data, err := b.execJSON(ctx, "cookies")
	if err != nil {
		return nil, err
	}

	if data == nil {
		return nil, nil
	}

	list, ok := data.([]any)
	if !ok {
		return nil, commandErr("unexpected cookies payload: %v", data)
	}

	return list, nil
}

// SetCookie sets a cookie.
func (b *Browser) SetCookie(ctx context.Context, name, value string) error {
	_, err := b.exec(ctx, "cookies", "set", name, value)
	return err
}

// ClearCookies clears all cookies.
func (b *Browser) ClearCookies(ctx context.Context) error {
	_, err := b.exec(ctx, "cookies", "clear")
	return err
}

// Storage

// LocalStorage returns localStorage contents, or a single key when key is
// non-empty.
func (b *Browser) LocalStorage(ctx context.Context, key string) (any, error) {
	return b.storage(ctx, "local", key)
}

// SetLocalStorage sets a localStorage value.
func (b *Browser) SetLocalStorage(ctx context.Context, key, value string) error {
	_, err := b.exec(ctx, "storage", "local", "set", key, value)
	return err
}

// ClearLocalStorage clears localStorage.
func (b *Browser) ClearLocalStorage(ctx context.Context) error {
	_, err := b.exec(ctx, "storage", "local", "clear")
	return err
}

// SessionStorage returns sessionStorage contents, or a single key when key
// is non-empty.
func (b *Browser) SessionStorage(ctx context.Context, key string) (any, error) {
	return b.storage(ctx, "session", key)
}

// SetSessionStorage sets a sessionStorage value.
func (b *Browser) SetSessionStorage(ctx context.Context, key, value string) error {
	_, err := b.exec(ctx, "storage", "session", "set", key, value)
	return err
}

// ClearSessionStorage clears sessionStorage.
func (b *Browser) ClearSessionStorage(ctx context.Context) error {
	_, err := b.exec(ctx, "storage", "session", "clear")
	return err
}

func (b *Browser) storage(ctx context.Context, scope, key string) (any, error) {
	args := []string{"storage", scope}
	if key != "" {
		args = append(args, key)
	}

	return b.execJSON(ctx, args...)
}

// Network

// RouteOptions controls request interception for NetworkRoute.
type RouteOptions struct {
	// Abort blocks matching requests.
	Abort bool
	// Body fulfils matching requests with a mock JSON response body.
	Body map[string]any
}

// NetworkRoute intercepts requests matching a URL pattern.
func (b *Browser) NetworkRoute(ctx context.Context, url string, opts *RouteOptions) error {
	args := []string{"network", "route", url}

	if opts != nil {
		if opts.Abort {
			args = append(args, "--abort")
		}

		if opts.Body != nil {
			bj, err := json.Marshal(opts.Body)
			if err != nil {
				return commandErr("failed to serialize route body: %s", err)
			}

			args = append(args, "--body", string(bj))
		}
	}

	_, err := b.exec(ctx, args...)

	return err
}

// NetworkUnroute removes routes, all of them when url is empty.
func (b *Browser) NetworkUnroute(ctx context.Context, url string) error {
	args := []string{"network", "unroute"}
	if url != "" {
		args = append(args, url)
	}

	_, err := b.exec(ctx, args...)

	return err
}

// NetworkRequests returns tracked requests, optionally filtered.
func (b *Browser) NetworkRequests(ctx context.Context, filter string) ([]any, error) {
	args := []string{"network", "requests"}
	if filter != "" {
		args = append(args, "--filter", filter)
	}

	data, err := b.execJSON(ctx, args...)
	if err != nil {
		return nil, err
	}

	if data == nil {
		return nil, nil
	}

	list, ok := data.([]any)
	if !ok {
		return nil, commandErr("unexpected requests payload: %v", data)
	}

	return list, nil
}

// Tabs and windows

// Tabs lists all tabs.
func (b *Browser) Tabs(ctx context.Context) ([]any, error) {
	data, err := b.execJSON(ctx, "tab")
	if err != nil {
		return nil, err
	}

	if data == nil {
		return nil, nil
	}

	list, ok := data.([]any)
	if !ok {
		return nil, commandErr("unexpected tabs payload: %v", data)
	}

	return list, nil
}

// NewTab creates a new tab, optionally opening a URL.
func (b *Browser) NewTab(ctx context.Context, url string) error {
	args := []string{"tab", "new"}
	if url != "" {
		args = append(args, url)
	}

	_, err := b.exec(ctx, args...)

	return err
}

// SwitchTab switches to a tab by index.
func (b *Browser) SwitchTab(ctx context.Context, index int) error {
	_, err := b.exec(ctx, "tab", strconv.Itoa(index))
	return err
}

// CloseTab closes a tab by index; a negative index closes the current tab.
func (b *Browser) CloseTab(ctx context.Context, index int) error {
	args := []string{"tab", "close"}
	if index >= 0 {
		args = append(args, strconv.Itoa(index))
	}

	_, err := b.exec(ctx, args...)

	return err
}

// NewWindow creates a new window.
func (b *Browser) NewWindow(ctx context.Context) error {
	_, err := b.exec(ctx, "window", "new")
	return err
}

// Frames

// SwitchFrame switches into an iframe.
func (b *Browser) SwitchFrame(ctx context.Context, selector string) error {
	_, err := b.exec(ctx, "frame", selector)
	return err
}

// MainFrame switches back to the main frame.
func (b *Browser) MainFrame(ctx context.Context) error {
	_, err := b.exec(ctx, "frame", "main")
	return err
}

// Dialogs

// AcceptDialog accepts a dialog, optionally supplying prompt text.
func (b *Browser) AcceptDialog(ctx context.Context, text string) error {
	args := []string{"dialog", "accept"}
	if text != "" {
		args = append(args, text)
	}

	_, err := b.exec(ctx, args...)

	return err
}

// DismissDialog dismisses a dialog.
func (b *Browser) DismissDialog(ctx context.Context) error {
	_, err := b.exec(ctx, "dialog", "dismiss")
	return err
}
