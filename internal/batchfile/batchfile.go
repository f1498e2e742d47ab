// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package batchfile loads YAML batch definitions for the abctl CLI and
// queues their steps onto an agentbrowser.Batch.
//
// Example definition:
//
//	name: fetch-title
//	browser:
//	  session: scraper
//	  headed: false
//	steps:
//	  - method: open
//	    args: ["https://example.com"]
//	    headers:
//	      X-Env: staging
//	  - method: get
//	    args: ["title"]
//	  - method: snapshot
//	    interactive_only: true
package batchfile

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/agentbrowser"
)

var (
	// ErrInvalidDefinition is returned when the YAML cannot be parsed.
	ErrInvalidDefinition = errors.New("invalid batch definition")
	// ErrInvalidStep is returned when a step is missing required fields.
	ErrInvalidStep = errors.New("invalid batch step")
)

// Definition is one YAML-defined batch run.
type Definition struct {
	Name    string     `yaml:"name"`
	Browser BrowserDef `yaml:"browser"`
	Steps   []Step     `yaml:"steps"`
}

// BrowserDef holds the global agent-browser options for the run.
type BrowserDef struct {
	Session        string `yaml:"session"`
	ExecutablePath string `yaml:"executable_path"`
	Headed         bool   `yaml:"headed"`
	Debug          bool   `yaml:"debug"`
	CDPPort        int    `yaml:"cdp_port"`
}

// Step is one queued operation. Method names mirror the tool's subcommands;
// get, eval, snapshot and open receive their special translations, anything
// else passes through verbatim.
type Step struct {
	Method          string            `yaml:"method"`
	Args            []string          `yaml:"args"`
	JSON            bool              `yaml:"json"`
	Headers         map[string]string `yaml:"headers"`
	InteractiveOnly bool              `yaml:"interactive_only"`
	Compact         bool              `yaml:"compact"`
}

// Load parses a YAML batch definition.
func Load(data []byte) (*Definition, error) {
	def := new(Definition)
	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, errors.Join(ErrInvalidDefinition, err)
	}

	for i, step := range def.Steps {
		if step.Method == "" {
			return nil, fmt.Errorf("%w: step %d has no method", ErrInvalidStep, i)
		}
	}

	return def, nil
}

// Options translates the browser block into agentbrowser options.
func (d *Definition) Options() []agentbrowser.Option {
	var opts []agentbrowser.Option

	if d.Browser.Session != "" {
		opts = append(opts, agentbrowser.WithSession(d.Browser.Session))
	}

	if d.Browser.ExecutablePath != "" {
		opts = append(opts, agentbrowser.WithExecutablePath(d.Browser.ExecutablePath))
	}

	if d.Browser.Headed {
		opts = append(opts, agentbrowser.WithHeaded())
	}

	if d.Browser.Debug {
		opts = append(opts, agentbrowser.WithDebug())
	}

	if d.Browser.CDPPort != 0 {
		opts = append(opts, agentbrowser.WithCDPPort(d.Browser.CDPPort))
	}

	return opts
}

// Apply queues every step onto the batch in definition order.
func (d *Definition) Apply(bt *agentbrowser.Batch) error {
	for i, step := range d.Steps {
		if err := applyStep(bt, step); err != nil {
			return fmt.Errorf("%w: step %d: %s", ErrInvalidStep, i, err)
		}
	}

	return nil
}

func applyStep(bt *agentbrowser.Batch, step Step) error {
	switch step.Method {
	case "open":
		if len(step.Args) != 1 {
			return errors.New("open requires exactly one url argument")
		}

		bt.Open(step.Args[0], step.Headers)

	case "get":
		if len(step.Args) == 0 {
			return errors.New("get requires a field argument")
		}

		bt.Get(step.Args[0], step.Args[1:]...)

	case "eval":
		if len(step.Args) != 1 {
			return errors.New("eval requires exactly one expression argument")
		}

		bt.Eval(step.Args[0])

	case "snapshot":
		bt.Snapshot(step.InteractiveOnly, step.Compact)

	default:
		if step.JSON {
			bt.CommandJSON(step.Method, step.Args...)
			return nil
		}

		bt.Command(step.Method, step.Args...)
	}

	return nil
}
