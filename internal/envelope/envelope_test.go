// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSuccess(t *testing.T) {
	env, err := Decode([]byte(`{"success":true,"data":{"title":"Example"}}`))
	require.NoError(t, err)
	assert.True(t, env.Success)

	data, err := env.Payload()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "Example"}, data)
}

func TestDecodeFailure(t *testing.T) {
	env, err := Decode([]byte(`{"success":false,"error":"no element"}`))
	require.NoError(t, err)
	assert.False(t, env.Success)
	assert.Equal(t, "no element", env.Message())
}

func TestDecodeFailureWithoutMessage(t *testing.T) {
	env, err := Decode([]byte(`{"success":false}`))
	require.NoError(t, err)
	assert.Equal(t, "unknown error", env.Message())
}

func TestDecodeNotJSON(t *testing.T) {
	_, err := Decode([]byte("plain text output"))
	assert.ErrorIs(t, err, ErrInvalidEnvelope)
}

func TestDecodeMissingSuccessField(t *testing.T) {
	_, err := Decode([]byte(`{"data":"x"}`))
	assert.ErrorIs(t, err, ErrInvalidEnvelope)
}

func TestPayloadEmptyData(t *testing.T) {
	env, err := Decode([]byte(`{"success":true}`))
	require.NoError(t, err)

	data, err := env.Payload()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestPayloadScalars(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want any
	}{
		{name: "string", in: `{"success":true,"data":"hello"}`, want: "hello"},
		{name: "bool", in: `{"success":true,"data":true}`, want: true},
		{name: "number", in: `{"success":true,"data":42}`, want: float64(42)},
		{name: "list", in: `{"success":true,"data":["a","b"]}`, want: []any{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := Decode([]byte(tt.in))
			require.NoError(t, err)

			data, err := env.Payload()
			require.NoError(t, err)
			assert.Equal(t, tt.want, data)
		})
	}
}

func TestIsEnvelopeLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{name: "envelope", line: `{"success":true,"data":1}`, want: true},
		{name: "failed envelope", line: `{"success":false,"error":"x"}`, want: true},
		{name: "whitespace around envelope", line: `  {"success":true}  `, want: true},
		{name: "json without success", line: `{"data":1}`, want: false},
		{name: "plain text", line: "Navigated to https://example.com", want: false},
		{name: "braces but not json", line: "{not json}", want: false},
		{name: "empty", line: "", want: false},
		{name: "json array", line: `[{"success":true}]`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEnvelopeLine([]byte(tt.line)))
		})
	}
}
