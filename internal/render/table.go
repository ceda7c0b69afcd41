// Package render formats a store.QueryResult for the terminal, as JSON, as
// CSV, or as an xargs-ready token list -- the four output formats from
// spec.md §6, stage 4 (Serve).
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/filerecon/recon/internal/store"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// sizeColumns are rendered with humanize.Bytes rather than a raw integer,
// for readability in the default table format only -- JSON/CSV/xargs leave
// every value exactly as the store returned it.
var sizeColumns = map[string]struct{}{"size": {}}

// Table renders result as a column-aligned table. When styled is true,
// headers are bold and columns are padded via lipgloss; otherwise output is
// plain whitespace-separated text (--no-style).
func Table(w io.Writer, result *store.QueryResult, styled bool) error {
	widths := make([]int, len(result.Columns))
	for i, col := range result.Columns {
		widths[i] = len(col)
	}

	rendered := make([][]string, len(result.Rows))
	for i, row := range result.Rows {
		rendered[i] = make([]string, len(row))
		for j, v := range row {
			s := formatCell(result.Columns[j], v)
			rendered[i][j] = s
			if len(s) > widths[j] {
				widths[j] = len(s)
			}
		}
	}

	writeRow := func(cells []string, style lipgloss.Style) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			padded := cell + strings.Repeat(" ", widths[i]-len(cell))
			if styled {
				parts[i] = style.Render(padded)
			} else {
				parts[i] = padded
			}
		}
		fmt.Fprintln(w, strings.Join(parts, " "))
	}

	writeRow(result.Columns, headerStyle)
	for _, row := range rendered {
		writeRow(row, cellStyle)
	}
	return nil
}

func formatCell(column string, v any) string {
	if v == nil {
		return ""
	}
	if _, ok := sizeColumns[column]; ok {
		if n, ok := toInt64(v); ok {
			return humanize.Bytes(uint64(n))
		}
	}
	switch vv := v.(type) {
	case []byte:
		return string(vv)
	case string:
		return vv
	default:
		return fmt.Sprintf("%v", vv)
	}
}

func toInt64(v any) (int64, bool) {
	switch vv := v.(type) {
	case int64:
		return vv, true
	case int:
		return int64(vv), true
	case float64:
		return int64(vv), true
	case []byte:
		n, err := strconv.ParseInt(string(vv), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}
