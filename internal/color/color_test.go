// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"testing"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
)

func TestColorize(t *testing.T) {
	assert.Equal(t, "\033[31mfail\033[0m", Colorize("fail", FgRed))
	assert.Equal(t, "\033[97mok\033[0m", Colorize("ok", FgHiWhite))
}

func TestEnabledNoColorWins(t *testing.T) {
	defer gostub.New().SetEnv(NoColor, "1").SetEnv(ForceColor, "1").Reset()

	assert.False(t, Enabled())
}

func TestEnabledForceColor(t *testing.T) {
	defer gostub.New().UnsetEnv(NoColor).SetEnv(ForceColor, "1").Reset()

	assert.True(t, Enabled())
}
