// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdrunner

import (
	"context"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestRunCapturesStdout(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	r := &ExecRunner{}

	out, err := r.Run(context.Background(), "sh", "-c", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, 0, out.ExitCode)
	assert.Equal(t, "hello", strings.TrimSpace(string(out.Stdout)))
}

func TestRunCapturesStderrAndExitCode(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	r := &ExecRunner{}

	out, err := r.Run(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
	require.NoError(t, err)
	assert.Equal(t, 3, out.ExitCode)
	assert.Equal(t, "oops", strings.TrimSpace(string(out.Stderr)))
}

func TestRunSpawnFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := &ExecRunner{}

	_, err := r.Run(context.Background(), "/nonexistent/binary/for/sure")
	assert.ErrorIs(t, err, ErrCouldNotStartProcess)
}

func TestRunContextCancellation(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &ExecRunner{}

	_, err := r.Run(ctx, "sh", "-c", "sleep 30")
	assert.Error(t, err)
}

func TestBoundedBufferUnderCap(t *testing.T) {
	b := newBoundedBuffer(8)

	n, err := b.Write([]byte("1234"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.False(t, b.Overflowed())
	assert.Equal(t, []byte("1234"), b.Bytes())
}

func TestBoundedBufferOverflow(t *testing.T) {
	b := newBoundedBuffer(4)

	n, err := b.Write([]byte("123456"))
	require.NoError(t, err)
	// Write never reports a short count so the child's pipe stays healthy.
	assert.Equal(t, 6, n)
	assert.True(t, b.Overflowed())
	assert.Equal(t, []byte("1234"), b.Bytes())

	n, err = b.Write([]byte("more"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte("1234"), b.Bytes())
}

func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}
