// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package sessions implements the abctl sessions command group.
package sessions

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/agentbrowser"
	"github.com/urfave/cli/v3"
)

// SessionsCmd groups the session management subcommands.
var SessionsCmd = &cli.Command{
	Name:        "sessions",
	Description: "Manage agent-browser sessions.",
	Commands: []*cli.Command{
		listCmd,
		closeAllCmd,
	},
}

var listCmd = &cli.Command{
	Name:        "list",
	Description: "List the active browser sessions.",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		sessions, err := agentbrowser.Sessions(ctx)
		if err != nil {
			return cli.Exit(fmt.Sprintf("failed to list sessions: %s", err.Error()), 1)
		}

		if len(sessions) == 0 {
			fmt.Fprintln(cmd.Writer, "no active sessions")
			return nil
		}

		for _, name := range sessions {
			fmt.Fprintln(cmd.Writer, name)
		}

		return nil
	},
}

var closeAllCmd = &cli.Command{
	Name:        "close-all",
	Description: "Close every active browser session.",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		closed := agentbrowser.CloseAllSessions(ctx)
		fmt.Fprintf(cmd.Writer, "closed %d session(s)\n", closed)

		return nil
	},
}
