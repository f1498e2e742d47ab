// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package batchscript assembles a queue of command invocations into a single
// fail-fast shell script and manages the script's temporary file. The script
// runs with `set -e` so the first failing line aborts the remainder.
package batchscript

import (
	"errors"
	"strings"

	"github.com/spf13/afero"
)

const (
	shebang    = "#!/bin/bash"
	failFast   = "set -e"
	tmpPattern = "agentbrowser-batch-*.sh"
)

// ErrWriteScript is returned when the temporary script file cannot be created.
var ErrWriteScript = errors.New("failed to write batch script")

// Script accumulates one shell command line per appended invocation.
type Script struct {
	lines []string
}

// New creates a Script with the fail-fast preamble.
func New() *Script {
	return &Script{lines: []string{shebang, failFast}}
}

// Append renders one argv as a shell command line, quoting each token so
// user data round-trips through the shell literally.
func (s *Script) Append(argv []string) {
	quoted := make([]string, len(argv))
	for i, tok := range argv {
		quoted[i] = Quote(tok)
	}

	s.lines = append(s.lines, strings.Join(quoted, " "))
}

// Len returns the number of command lines appended so far.
func (s *Script) Len() int {
	return len(s.lines) - 2 // preamble lines are not commands
}

// String renders the complete script.
func (s *Script) String() string {
	return strings.Join(s.lines, "\n") + "\n"
}

// WriteTemp persists the script to a temporary file on the given filesystem.
// The returned cleanup func removes the file and swallows removal errors; it
// is safe to call on every exit path.
func (s *Script) WriteTemp(fs afero.Fs) (string, func(), error) {
	f, err := afero.TempFile(fs, "", tmpPattern)
	if err != nil {
		return "", nil, errors.Join(ErrWriteScript, err)
	}

	name := f.Name()
	cleanup := func() {
		_ = fs.Remove(name)
	}

	if _, err := f.WriteString(s.String()); err != nil {
		_ = f.Close()
		cleanup()

		return "", nil, errors.Join(ErrWriteScript, err)
	}

	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, errors.Join(ErrWriteScript, err)
	}

	return name, cleanup, nil
}

// safeToken reports whether every byte may appear unquoted in a shell word.
func safeToken(tok string) bool {
	if tok == "" {
		return false
	}

	for _, r := range tok {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9':
		case strings.ContainsRune("@%+=:,./-_", r):
		default:
			return false
		}
	}

	return true
}

// Quote returns tok wrapped in single quotes unless it is already a safe
// shell word. Embedded single quotes are escaped with the '\'' idiom.
func Quote(tok string) string {
	if safeToken(tok) {
		return tok
	}

	return "'" + strings.ReplaceAll(tok, "'", `'\''`) + "'"
}
