// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color provides minimal ANSI text coloring for terminal output.
// It honors the NO_COLOR and FORCE_COLOR environment variables and falls
// back to terminal detection on stdout.
package color

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"

	reset  = "\033[0m"
	prefix = "\033["
	suffix = "m"
)

// Code represents an ANSI control code for text formatting.
type Code int

// Foreground text colors.
const (
	FgBlack Code = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Foreground hi-intensity text colors.
const (
	FgHiBlack Code = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

// Colorize wraps s in the control sequence for c, terminated with a reset.
func Colorize(s string, c Code) string {
	return prefix + strconv.Itoa(int(c)) + suffix + s + reset
}

// Enabled reports whether colored output should be produced.
// NO_COLOR wins over FORCE_COLOR; otherwise stdout must be a terminal.
func Enabled() bool {
	if os.Getenv(NoColor) != "" {
		return false
	}

	if os.Getenv(ForceColor) != "" {
		return true
	}

	return term.IsTerminal(int(os.Stdout.Fd()))
}
