package render

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/filerecon/recon/internal/store"
)

// CSV renders result with a header row followed by one row per record.
func CSV(w io.Writer, result *store.QueryResult) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(result.Columns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range result.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = csvCell(v)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	return writer.Error()
}

func csvCell(v any) string {
	if v == nil {
		return ""
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}
