package mcpserve

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filerecon/recon/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "recon.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck

	_, err = st.UpsertBase(context.Background(), store.BaseRow{
		AbsPath: "/tmp/a.txt",
		Path:    "a.txt",
		IsFile:  true,
		Size:    5,
	}, time.Now())
	require.NoError(t, err)
	return st
}

func TestHandleQuery_ReturnsColumnsAndRows(t *testing.T) {
	s := NewServer(newTestStore(t))

	args, err := json.Marshal(queryParams{SQL: "SELECT path FROM files"})
	require.NoError(t, err)

	result, err := s.handleQuery(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Arguments: args},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := result.Content[0].(*mcp.TextContent).Text
	var decoded struct {
		Columns []string `json:"columns"`
		Rows    [][]any  `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &decoded))
	assert.Equal(t, []string{"path"}, decoded.Columns)
	require.Len(t, decoded.Rows, 1)
	assert.Equal(t, "a.txt", decoded.Rows[0][0])
}

func TestHandleQuery_InvalidJSONReturnsErrorResult(t *testing.T) {
	s := NewServer(newTestStore(t))

	result, err := s.handleQuery(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Arguments: []byte("not json")},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleQuery_BadSQLReturnsErrorResult(t *testing.T) {
	s := NewServer(newTestStore(t))

	args, err := json.Marshal(queryParams{SQL: "SELECT * FROM nonexistent_table"})
	require.NoError(t, err)

	result, err := s.handleQuery(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Arguments: args},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
