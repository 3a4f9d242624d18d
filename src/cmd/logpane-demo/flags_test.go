package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	flags, rest, err := parseFlags([]string{
		"-c", "demo.toml",
		"--max_records=50",
		"--save-config=out.toml",
		"--demo.headless=true",
		"-v",
	})
	require.NoError(t, err)
	assert.Equal(t, "demo.toml", flags.ConfigFile)
	assert.Equal(t, "out.toml", flags.SaveConfig)
	assert.True(t, flags.ShowVersion)
	assert.Equal(t, []string{"--max_records=50", "--demo.headless=true"}, rest)
}

func TestParseFlagsMissingValue(t *testing.T) {
	_, _, err := parseFlags([]string{"--config"})
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	_, err := parseLogLevel("WARNING")
	assert.NoError(t, err)
	_, err = parseLogLevel("loud")
	assert.Error(t, err)
}
