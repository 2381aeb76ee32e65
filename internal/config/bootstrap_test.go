package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadBootstrap_Defaults verifies the zero-argument, clean-env case.
func TestLoadBootstrap_Defaults(t *testing.T) {
	b, err := LoadBootstrap(nil)
	require.NoError(t, err)

	assert.Equal(t, "", b.PropertiesFile)
	assert.Equal(t, "info", b.LogLevel)
	assert.False(t, b.PrintConfigDoc)
}

// TestLoadBootstrap_FromEnv verifies that environment variables populate
// the bootstrap settings.
func TestLoadBootstrap_FromEnv(t *testing.T) {
	t.Setenv("KAFKA_REST_PROPERTIES_FILE", "/etc/kafka-rest.properties")
	t.Setenv("KAFKA_REST_LOG_LEVEL", "debug")

	b, err := LoadBootstrap(nil)
	require.NoError(t, err)

	assert.Equal(t, "/etc/kafka-rest.properties", b.PropertiesFile)
	assert.Equal(t, "debug", b.LogLevel)
}

// TestLoadBootstrap_FlagsWin verifies that explicit flags override
// environment values.
func TestLoadBootstrap_FlagsWin(t *testing.T) {
	t.Setenv("KAFKA_REST_PROPERTIES_FILE", "/from/env.properties")

	b, err := LoadBootstrap([]string{
		"-properties", "/from/flag.properties",
		"-print-config-doc",
	})
	require.NoError(t, err)

	assert.Equal(t, "/from/flag.properties", b.PropertiesFile)
	assert.True(t, b.PrintConfigDoc)
}

// TestLoadBootstrap_BadFlag verifies that an unknown flag is an error.
func TestLoadBootstrap_BadFlag(t *testing.T) {
	_, err := LoadBootstrap([]string{"-definitely-not-a-flag"})
	assert.Error(t, err)
}
