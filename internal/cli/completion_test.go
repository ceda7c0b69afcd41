package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filerecon/recon/internal/pipeline"
)

func TestCompletionCommand_Bash(t *testing.T) {
	resetFlags(t)
	rootCmd.SetArgs([]string{"completion", "bash"})
	defer rootCmd.SetArgs(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	defer rootCmd.SetOut(nil)

	code := Execute(context.Background())
	require.Equal(t, int(pipeline.ExitSuccess), code)
	assert.Contains(t, buf.String(), "bash completion")
}

func TestCompletionCommand_Zsh(t *testing.T) {
	resetFlags(t)
	rootCmd.SetArgs([]string{"completion", "zsh"})
	defer rootCmd.SetArgs(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	defer rootCmd.SetOut(nil)

	code := Execute(context.Background())
	require.Equal(t, int(pipeline.ExitSuccess), code)
	assert.NotEmpty(t, buf.String())
}

func TestCompletionCommand_InvalidShellRejected(t *testing.T) {
	resetFlags(t)
	rootCmd.SetArgs([]string{"completion", "powerpoint"})
	defer rootCmd.SetArgs(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetErr(nil)

	code := Execute(context.Background())
	assert.NotEqual(t, int(pipeline.ExitSuccess), code)
}

func TestCompletionCommand_NoArgsShowsHelp(t *testing.T) {
	resetFlags(t)
	rootCmd.SetArgs([]string{"completion"})
	defer rootCmd.SetArgs(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	defer rootCmd.SetOut(nil)

	code := Execute(context.Background())
	require.Equal(t, int(pipeline.ExitSuccess), code)
	assert.Contains(t, buf.String(), "Generate shell completion scripts")
}
