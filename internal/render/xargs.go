package render

import (
	"fmt"
	"io"

	"github.com/filerecon/recon/internal/store"
)

// Xargs renders result's first column as a whitespace-separated token list,
// one token per row, suitable for piping into xargs (spec.md §8 S5).
func Xargs(w io.Writer, result *store.QueryResult) error {
	emitted := 0
	for _, row := range result.Rows {
		if len(row) == 0 {
			continue
		}
		if emitted > 0 {
			fmt.Fprint(w, " ")
		}
		fmt.Fprint(w, csvCell(row[0]))
		emitted++
	}
	fmt.Fprintln(w)
	return nil
}
