package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filerecon/recon/internal/store"
)

func TestXargs_JoinsFirstColumnWithSpaces(t *testing.T) {
	result := &store.QueryResult{
		Columns: []string{"abs_path", "size"},
		Rows: [][]any{
			{"/tmp/a.txt", int64(1)},
			{"/tmp/b.txt", int64(2)},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Xargs(&buf, result))
	assert.Equal(t, "/tmp/a.txt /tmp/b.txt\n", buf.String())
}

func TestXargs_EmptyResultRendersEmptyLine(t *testing.T) {
	result := &store.QueryResult{Columns: []string{"abs_path"}}

	var buf bytes.Buffer
	require.NoError(t, Xargs(&buf, result))
	assert.Equal(t, "\n", buf.String())
}

func TestXargs_SkipsRowsWithNoColumns(t *testing.T) {
	result := &store.QueryResult{
		Columns: []string{"abs_path"},
		Rows:    [][]any{{}, {"/tmp/a.txt"}},
	}

	var buf bytes.Buffer
	require.NoError(t, Xargs(&buf, result))
	assert.Equal(t, "/tmp/a.txt\n", buf.String())
}
