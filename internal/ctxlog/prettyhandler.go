// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/agentbrowser/internal/color"
)

// ErrIoWrite is returned when the handler cannot write to its destination.
var ErrIoWrite = errors.New("error when writing to output")

// TimeFormat is the format used for timestamps in log messages.
const TimeFormat = "[15:04:05.000]"

// PrettyHandler is a slog handler that renders human-oriented console lines:
// a dim timestamp, a colored level, the message, and the attributes as
// colorized JSON.
type PrettyHandler struct {
	mu     *sync.Mutex
	writer io.Writer
	opts   slog.HandlerOptions
	attrs  []slog.Attr
	colour bool
}

var _ slog.Handler = (*PrettyHandler)(nil)

// NewPrettyHandler creates a PrettyHandler with the given options.
func NewPrettyHandler(handlerOptions *slog.HandlerOptions, options ...Option) *PrettyHandler {
	if handlerOptions == nil {
		handlerOptions = &slog.HandlerOptions{}
	}

	h := &PrettyHandler{
		mu:   &sync.Mutex{},
		opts: *handlerOptions,
	}

	for _, opt := range options {
		opt(h)
	}

	return h
}

// Enabled implements the slog.Handler interface.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

// WithAttrs implements the slog.Handler interface.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)

	return &clone
}

// WithGroup implements the slog.Handler interface. Groups are flattened.
func (h *PrettyHandler) WithGroup(_ string) slog.Handler {
	return h
}

// Handle implements the slog.Handler interface.
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, r.NumAttrs()+len(h.attrs))

	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Resolve().Any()
	}

	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Resolve().Any()
		return true
	})

	out := strings.Builder{}
	out.WriteString(h.colorize(r.Time.Format(TimeFormat), color.FgWhite))
	out.WriteString(" ")
	out.WriteString(h.colorize(r.Level.String()+":", levelColor(r.Level)))
	out.WriteString(" ")
	out.WriteString(h.colorize(r.Message, color.FgHiWhite))

	if len(attrs) > 0 {
		formatted, err := h.formatter().Marshal(normalize(attrs))
		if err == nil {
			out.WriteString(" ")
			out.Write(formatted)
		}
	}

	out.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := io.WriteString(h.writer, out.String()); err != nil {
		return errors.Join(ErrIoWrite, err)
	}

	return nil
}

func (h *PrettyHandler) colorize(s string, c color.Code) string {
	if !h.colour {
		return s
	}

	return color.Colorize(s, c)
}

func (h *PrettyHandler) formatter() *colorjson.Formatter {
	f := colorjson.NewFormatter()
	f.DisabledColor = !h.colour

	return f
}

// normalize coerces attribute values into shapes colorjson can marshal.
func normalize(attrs map[string]any) map[string]any {
	out := make(map[string]any, len(attrs))

	for k, v := range attrs {
		switch t := v.(type) {
		case error:
			out[k] = t.Error()
		case string, bool, float64, nil, map[string]any, []any:
			out[k] = t
		default:
			out[k] = slog.AnyValue(t).String()
		}
	}

	return out
}

func levelColor(level slog.Level) color.Code {
	switch {
	case level <= slog.LevelDebug:
		return color.FgWhite
	case level <= slog.LevelInfo:
		return color.FgCyan
	case level < slog.LevelError:
		return color.FgYellow
	default:
		return color.FgRed
	}
}

// Option implements a functional options pattern for PrettyHandler.
type Option func(h *PrettyHandler)

// WithDestinationWriter sets the destination writer for the PrettyHandler.
func WithDestinationWriter(writer io.Writer) Option {
	return func(h *PrettyHandler) {
		h.writer = writer
	}
}

// WithColour enables colored output.
func WithColour() Option {
	return func(h *PrettyHandler) {
		h.colour = true
	}
}

// WithAutoColour enables colored output when the environment supports it.
func WithAutoColour() Option {
	return func(h *PrettyHandler) {
		h.colour = color.Enabled()
	}
}
