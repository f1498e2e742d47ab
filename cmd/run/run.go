// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run implements the abctl run command.
package run

import (
	"context"
	"fmt"
	"os"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/agentbrowser"
	"github.com/matt-FFFFFF/agentbrowser/internal/batchfile"
	"github.com/matt-FFFFFF/agentbrowser/internal/color"
	"github.com/urfave/cli/v3"
)

const fileArg = "file"

// RunCmd is the command that executes a YAML-defined batch against the
// agent-browser tool.
var RunCmd = &cli.Command{
	Name:        "run",
	Description: "Run a batch of agent-browser commands defined in a YAML file.",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      fileArg,
			UsageText: "YAMLFILE",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	yamlFileName := cmd.StringArg(fileArg)
	if yamlFileName == "" {
		return cli.Exit("Please provide a YAML batch file to run", 1)
	}

	data, err := os.ReadFile(yamlFileName)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to read file %s: %s", yamlFileName, err.Error()), 1)
	}

	def, err := batchfile.Load(data)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to load batch from file %s: %s", yamlFileName, err.Error()), 1)
	}

	browser := agentbrowser.New(def.Options()...)
	batch := browser.NewBatch()

	if err := def.Apply(batch); err != nil {
		return cli.Exit(fmt.Sprintf("failed to build batch from file %s: %s", yamlFileName, err.Error()), 1)
	}

	results, err := batch.Execute(ctx)
	if err != nil {
		return cli.Exit(fmt.Sprintf("batch failed: %s", err.Error()), 1)
	}

	return printResults(cmd, def, results)
}

func printResults(cmd *cli.Command, def *batchfile.Definition, results []any) error {
	formatter := colorjson.NewFormatter()
	formatter.Indent = 2
	formatter.DisabledColor = !color.Enabled()

	for i, result := range results {
		method := "?"
		if i < len(def.Steps) {
			method = def.Steps[i].Method
		}

		if result == nil {
			fmt.Fprintf(cmd.Writer, "[%d] %s: ok\n", i, method)
			continue
		}

		formatted, err := formatter.Marshal(result)
		if err != nil {
			return cli.Exit(fmt.Sprintf("failed to format result %d: %s", i, err.Error()), 1)
		}

		fmt.Fprintf(cmd.Writer, "[%d] %s: %s\n", i, method, formatted)
	}

	return nil
}
