package render

import (
	"encoding/json"
	"io"

	"github.com/filerecon/recon/internal/store"
)

// JSON renders result as a JSON array of row objects, one object per row
// keyed by column name.
func JSON(w io.Writer, result *store.QueryResult) error {
	rows := make([]map[string]any, len(result.Rows))
	for i, row := range result.Rows {
		obj := make(map[string]any, len(result.Columns))
		for j, col := range result.Columns {
			obj[col] = jsonValue(row[j])
		}
		rows[i] = obj
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func jsonValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
