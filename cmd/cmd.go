// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"os"

	"github.com/matt-FFFFFF/agentbrowser/cmd/run"
	"github.com/matt-FFFFFF/agentbrowser/cmd/sessions"
	"github.com/urfave/cli/v3"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.RunCmd,
		sessions.SessionsCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "abctl",
	Description: `Abctl drives the agent-browser tool from YAML-defined batches.
It folds every step of a batch into a single agent-browser process invocation
and prints the structured results, and it manages the tool's named browser
sessions.`,
	Usage:     "abctl run mybatch.yaml",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}
