package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServeCommand_Registered(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "serve" {
			found = true
			break
		}
	}
	assert.True(t, found, "serve command must be registered on root")
}

func TestServeCommand_Properties(t *testing.T) {
	assert.Equal(t, "serve", serveCmd.Use)
	assert.Contains(t, serveCmd.Short, "MCP server")
	assert.NotEmpty(t, serveCmd.Long)
}
