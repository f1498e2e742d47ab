// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdrunner runs external commands to completion and captures their
// output. It is the single choke point through which every agent-browser
// subprocess is spawned, which keeps the rest of the module testable with a
// fake Runner.
package cmdrunner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// MaxOutputSize caps the captured bytes of each output stream.
const MaxOutputSize = 8 * 1024 * 1024 // 8MB

var (
	// ErrCouldNotStartProcess is returned when the process could not be spawned.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrBufferOverflow is returned when an output stream exceeds MaxOutputSize.
	ErrBufferOverflow = fmt.Errorf("output exceeds max size of %d bytes", MaxOutputSize)
)

// Output is the captured outcome of a completed process.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner runs a command to completion and captures its output.
// A nonzero exit is not an error at this layer; it is reported via
// Output.ExitCode so callers can attach their own meaning.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (*Output, error)
}

var _ Runner = (*ExecRunner)(nil)

// ExecRunner is the os/exec backed Runner used outside of tests.
type ExecRunner struct{}

// Run implements the Runner interface for ExecRunner.
// The child inherits the parent environment. Context cancellation kills the
// hung child; otherwise the call blocks until the process exits.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (*Output, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	stdout := newBoundedBuffer(MaxOutputSize)
	stderr := newBoundedBuffer(MaxOutputSize)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()

	out := &Output{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	var exitErr *exec.ExitError

	switch {
	case err == nil:
		out.ExitCode = 0
	case errors.As(err, &exitErr):
		out.ExitCode = exitErr.ExitCode()
	default:
		return nil, errors.Join(ErrCouldNotStartProcess, err)
	}

	if stdout.Overflowed() || stderr.Overflowed() {
		return nil, ErrBufferOverflow
	}

	return out, nil
}

// boundedBuffer accepts writes past its cap but silently discards them,
// recording the overflow. This keeps a chatty child from ballooning memory
// while still letting it run to completion.
type boundedBuffer struct {
	buf      bytes.Buffer
	max      int
	overflow bool
}

func newBoundedBuffer(max int) *boundedBuffer {
	return &boundedBuffer{max: max}
}

// Write implements io.Writer. It never returns an error so the child's
// pipes stay open until the process exits.
func (b *boundedBuffer) Write(p []byte) (int, error) {
	room := b.max - b.buf.Len()
	if room <= 0 {
		b.overflow = true
		return len(p), nil
	}

	if len(p) > room {
		b.buf.Write(p[:room])
		b.overflow = true

		return len(p), nil
	}

	return b.buf.Write(p)
}

func (b *boundedBuffer) Bytes() []byte {
	return b.buf.Bytes()
}

func (b *boundedBuffer) Overflowed() bool {
	return b.overflow
}
