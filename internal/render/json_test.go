package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filerecon/recon/internal/store"
)

func TestJSON_RendersArrayOfObjectsKeyedByColumn(t *testing.T) {
	result := &store.QueryResult{
		Columns: []string{"path", "size"},
		Rows: [][]any{
			{"/tmp/a.txt", int64(42)},
			{"/tmp/b.txt", nil},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, result))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "/tmp/a.txt", decoded[0]["path"])
	assert.EqualValues(t, 42, decoded[0]["size"])
	assert.Nil(t, decoded[1]["size"])
}

func TestJSON_ByteSliceCellsDecodeAsStrings(t *testing.T) {
	result := &store.QueryResult{
		Columns: []string{"match"},
		Rows:    [][]any{{[]byte(`["needle"]`)}},
	}

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, result))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, `["needle"]`, decoded[0]["match"])
}

func TestJSON_EmptyResultRendersEmptyArray(t *testing.T) {
	result := &store.QueryResult{Columns: []string{"path"}}

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, result))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Empty(t, decoded)
}
