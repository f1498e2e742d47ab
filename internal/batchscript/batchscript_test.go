// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batchscript

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHasFailFastPreamble(t *testing.T) {
	s := New()
	assert.Equal(t, "#!/bin/bash\nset -e\n", s.String())
	assert.Zero(t, s.Len())
}

func TestAppendRendersOneLinePerInvocation(t *testing.T) {
	s := New()
	s.Append([]string{"agent-browser", "open", "https://example.com"})
	s.Append([]string{"agent-browser", "--json", "get", "title"})

	lines := strings.Split(strings.TrimSpace(s.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "agent-browser open https://example.com", lines[2])
	assert.Equal(t, "agent-browser --json get title", lines[3])
	assert.Equal(t, 2, s.Len())
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain word", in: "open", want: "open"},
		{name: "url", in: "https://example.com/a-b_c.html", want: "https://example.com/a-b_c.html"},
		{name: "flag", in: "--json", want: "--json"},
		{name: "space", in: "hello world", want: "'hello world'"},
		{name: "selector", in: "#main > div", want: "'#main > div'"},
		{name: "json literal", in: `{"a":"b"}`, want: `'{"a":"b"}'`},
		{name: "single quote escaped", in: "it's", want: `'it'\''s'`},
		{name: "dollar not expanded", in: "$HOME", want: "'$HOME'"},
		{name: "backticks not expanded", in: "`id`", want: "'`id`'"},
		{name: "semicolon not a separator", in: "a;b", want: "'a;b'"},
		{name: "empty token", in: "", want: "''"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Quote(tt.in))
		})
	}
}

func TestWriteTempPersistsAndCleansUp(t *testing.T) {
	fs := afero.NewMemMapFs()

	s := New()
	s.Append([]string{"agent-browser", "reload"})

	path, cleanup, err := s.WriteTemp(fs)
	require.NoError(t, err)
	require.NotEmpty(t, path)

	content, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, s.String(), string(content))

	cleanup()

	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	assert.False(t, exists)

	// Cleanup tolerates being called again.
	cleanup()
}

func TestWriteTempReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	s := New()
	s.Append([]string{"agent-browser", "reload"})

	_, _, err := s.WriteTemp(fs)
	assert.ErrorIs(t, err, ErrWriteScript)
}
