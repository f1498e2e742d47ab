// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package agentbrowser

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/agentbrowser/internal/cmdrunner"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestBatchFluentChainingReturnsSameInstance(t *testing.T) {
	b := newTestBrowser(&fakeRunner{})
	bt := b.NewBatch()

	assert.Same(t, bt, bt.Open("https://example.com", nil))
	assert.Same(t, bt, bt.Click("@e1"))
	assert.Same(t, bt, bt.Fill("#q", "golang"))
	assert.Same(t, bt, bt.Type("#q", "go"))
	assert.Same(t, bt, bt.Press("Enter"))
	assert.Same(t, bt, bt.Hover("#menu"))
	assert.Same(t, bt, bt.Wait("500"))
	assert.Same(t, bt, bt.Get("title"))
	assert.Same(t, bt, bt.GetTitle())
	assert.Same(t, bt, bt.GetURL())
	assert.Same(t, bt, bt.GetText("#result"))
	assert.Same(t, bt, bt.GetPage(PageModeText))
	assert.Same(t, bt, bt.Eval("1+1"))
	assert.Same(t, bt, bt.Screenshot(""))
	assert.Same(t, bt, bt.Snapshot(true, false))
	assert.Same(t, bt, bt.Command("back"))
	assert.Same(t, bt, bt.CommandJSON("cookies"))

	assert.Equal(t, 17, bt.Len())
}

func TestBatchEmptyQueueSpawnsNothing(t *testing.T) {
	defer goleak.VerifyNone(t)

	runner := &fakeRunner{}
	b := newTestBrowser(runner)

	results, err := b.NewBatch().Execute(context.Background())
	require.NoError(t, err)
	assert.Nil(t, results)
	assert.Empty(t, runner.calls)
}

func TestBatchScopeErrorSpawnsNothing(t *testing.T) {
	runner := &fakeRunner{}
	b := newTestBrowser(runner)

	wantErr := errors.New("caller gave up")

	results, err := b.Batch(context.Background(), func(bt *Batch) error {
		bt.Open("https://example.com", nil).GetTitle().Snapshot(true, true)
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)
	assert.Nil(t, results)
	assert.Empty(t, runner.calls)
}

func TestBatchResultsAlignWithQueue(t *testing.T) {
	defer goleak.VerifyNone(t)

	stdout := strings.Join([]string{
		`{"success":true,"data":{"title":"Example Domain"}}`,
		`{"success":true,"data":{"snapshot":"- heading \"Example\"","refs":{}}}`,
	}, "\n")

	runner := &fakeRunner{
		outputs: []*cmdrunner.Output{{Stdout: []byte(stdout)}},
	}
	b := newTestBrowser(runner)

	results, err := b.Batch(context.Background(), func(bt *Batch) error {
		bt.Open("https://example.com", nil).
			Click("@e1").
			GetTitle().
			Snapshot(false, false).
			Press("Escape")

		return nil
	})
	require.NoError(t, err)
	require.Len(t, results, 5)

	assert.Nil(t, results[0])
	assert.Nil(t, results[1])
	assert.Equal(t, map[string]any{"title": "Example Domain"}, results[2])
	assert.Contains(t, results[3], "snapshot")
	assert.Nil(t, results[4])

	// One subprocess for the whole queue.
	require.Len(t, runner.calls, 1)
	assert.Equal(t, batchShell, runner.calls[0][0])
}

func TestBatchScriptContent(t *testing.T) {
	var script string

	runner := &fakeRunner{}
	b := newTestBrowser(runner, WithSession("scraper"))

	runner.respond = func(name string, args []string) (*cmdrunner.Output, error) {
		require.Equal(t, batchShell, name)
		require.Len(t, args, 1)

		content, err := afero.ReadFile(b.fs, args[0])
		require.NoError(t, err)
		script = string(content)

		return &cmdrunner.Output{}, nil
	}

	_, err := b.Batch(context.Background(), func(bt *Batch) error {
		bt.Open("https://example.com", map[string]string{"X-Env": "ci"}).
			Fill("#q", "hello world").
			GetTitle()

		return nil
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(script), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "#!/bin/bash", lines[0])
	assert.Equal(t, "set -e", lines[1])
	assert.Equal(t,
		`agent-browser --session scraper open https://example.com --headers '{"X-Env":"ci"}'`,
		lines[2])
	assert.Equal(t, `agent-browser --session scraper fill '#q' 'hello world'`, lines[3])
	assert.Equal(t, "agent-browser --session scraper --json get title", lines[4])
}

func TestBatchTempFileRemovedOnAllPaths(t *testing.T) {
	tests := []struct {
		name    string
		respond func(name string, args []string) (*cmdrunner.Output, error)
		wantErr bool
	}{
		{
			name: "success",
			respond: func(_ string, _ []string) (*cmdrunner.Output, error) {
				return &cmdrunner.Output{}, nil
			},
		},
		{
			name: "spawn failure",
			respond: func(_ string, _ []string) (*cmdrunner.Output, error) {
				return nil, cmdrunner.ErrCouldNotStartProcess
			},
			wantErr: true,
		},
		{
			name: "nonzero exit",
			respond: func(_ string, _ []string) (*cmdrunner.Output, error) {
				return &cmdrunner.Output{ExitCode: 2, Stderr: []byte("boom")}, nil
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{respond: tt.respond}
			b := newTestBrowser(runner)

			_, err := b.Batch(context.Background(), func(bt *Batch) error {
				bt.Open("https://example.com", nil)
				return nil
			})

			if tt.wantErr {
				require.ErrorIs(t, err, ErrAgentBrowser)
			} else {
				require.NoError(t, err)
			}

			files, err := afero.ReadDir(b.fs, "/tmp")
			if err == nil {
				assert.Empty(t, files)
			}
		})
	}
}

func TestBatchFailedEnvelopeFailsWholeBatch(t *testing.T) {
	stdout := strings.Join([]string{
		`{"success":true,"data":{"title":"Example Domain"}}`,
		`{"success":false,"error":"element not found: @e9"}`,
	}, "\n")

	runner := &fakeRunner{
		outputs: []*cmdrunner.Output{{Stdout: []byte(stdout)}},
	}
	b := newTestBrowser(runner)

	results, err := b.Batch(context.Background(), func(bt *Batch) error {
		bt.GetTitle().GetText("@e9")
		return nil
	})
	require.ErrorIs(t, err, ErrAgentBrowser)
	assert.ErrorContains(t, err, "element not found: @e9")
	assert.Nil(t, results)
}

func TestBatchNonzeroExitFailsWholeBatch(t *testing.T) {
	runner := &fakeRunner{
		outputs: []*cmdrunner.Output{
			{ExitCode: 1, Stderr: []byte("session not found\n")},
		},
	}
	b := newTestBrowser(runner)

	results, err := b.Batch(context.Background(), func(bt *Batch) error {
		bt.Open("https://example.com", nil).GetTitle()
		return nil
	})
	require.ErrorIs(t, err, ErrAgentBrowser)
	assert.ErrorContains(t, err, "batch execution failed")
	assert.ErrorContains(t, err, "session not found")
	assert.Nil(t, results)
}

func TestBatchIgnoresPlainOutputLines(t *testing.T) {
	stdout := strings.Join([]string{
		"Navigated to https://example.com",
		`{"success":true,"data":{"title":"Example Domain"}}`,
		"some stray diagnostic",
		`{"success":true,"data":{"url":"https://example.com/"}}`,
	}, "\n")

	runner := &fakeRunner{
		outputs: []*cmdrunner.Output{{Stdout: []byte(stdout)}},
	}
	b := newTestBrowser(runner)

	results, err := b.Batch(context.Background(), func(bt *Batch) error {
		bt.Open("https://example.com", nil).GetTitle().GetURL()
		return nil
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Nil(t, results[0])
	assert.Equal(t, map[string]any{"title": "Example Domain"}, results[1])
	assert.Equal(t, map[string]any{"url": "https://example.com/"}, results[2])
}

func TestBatchPoisonedByInvalidPageMode(t *testing.T) {
	runner := &fakeRunner{}
	b := newTestBrowser(runner)

	results, err := b.Batch(context.Background(), func(bt *Batch) error {
		bt.Open("https://example.com", nil).GetPage(PageMode("markdown"))
		return nil
	})
	require.ErrorIs(t, err, ErrAgentBrowser)
	assert.ErrorContains(t, err, "unsupported page mode")
	assert.Nil(t, results)
	assert.Empty(t, runner.calls)
}

func TestBatchManyCommandsYieldManyResults(t *testing.T) {
	const n = 20

	var lines []string
	for range n {
		lines = append(lines, `{"success":true,"data":{"title":"t"}}`)
	}

	runner := &fakeRunner{
		outputs: []*cmdrunner.Output{{Stdout: []byte(strings.Join(lines, "\n"))}},
	}
	b := newTestBrowser(runner)

	bt := b.NewBatch()
	for range n {
		bt.GetTitle()
	}

	results, err := bt.Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, results, n)
}
