// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package envelope decodes the structured output contract of the
// agent-browser tool: a JSON object with a boolean "success" field carrying
// either a subcommand-specific "data" payload or a string "error" message.
package envelope

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidEnvelope is returned when bytes do not decode to the expected
// {success, data|error} shape.
var ErrInvalidEnvelope = errors.New("invalid agent-browser envelope")

// Envelope is the structured output wrapper emitted when --json is requested.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Decode parses a single envelope from raw stdout bytes.
func Decode(b []byte) (*Envelope, error) {
	probe := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &probe); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEnvelope, err)
	}

	if _, ok := probe["success"]; !ok {
		return nil, fmt.Errorf("%w: missing success field", ErrInvalidEnvelope)
	}

	env := new(Envelope)
	if err := json.Unmarshal(b, env); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEnvelope, err)
	}

	return env, nil
}

// Payload unmarshals the data field into a generic value.
// A missing data field yields nil.
func (e *Envelope) Payload() (any, error) {
	if len(e.Data) == 0 {
		return nil, nil
	}

	var v any
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEnvelope, err)
	}

	return v, nil
}

// Message returns the envelope's error string, or a fallback when the tool
// reported failure without a message.
func (e *Envelope) Message() string {
	if e.Error != "" {
		return e.Error
	}

	return "unknown error"
}

// IsEnvelopeLine reports whether a single output line looks like an
// envelope: a JSON object literal carrying a success field. Lines that fail
// this test are out-of-band plain output and never claim a result slot.
func IsEnvelopeLine(line []byte) bool {
	line = bytes.TrimSpace(line)
	if !bytes.HasPrefix(line, []byte("{")) || !bytes.HasSuffix(line, []byte("}")) {
		return false
	}

	probe := map[string]json.RawMessage{}
	if err := json.Unmarshal(line, &probe); err != nil {
		return false
	}

	_, ok := probe["success"]

	return ok
}
