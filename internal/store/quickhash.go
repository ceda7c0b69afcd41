package store

import (
	"fmt"
	"io"
	"os"

	"github.com/zeebo/xxh3"
)

// QuickHashSampleBytes bounds how much of a file's content the quick hash
// reads: enough to distinguish almost any two files cheaply without paying
// for a full read on every resumed/rerun pass. See SPEC_FULL.md section 3.
const QuickHashSampleBytes = 64 * 1024

// QuickHash computes a fast, non-cryptographic fingerprint of size + the
// first QuickHashSampleBytes of content, used only to short-circuit
// re-enrichment of a row that is already computed and whose content has
// almost certainly not changed. It is stored in the files table's
// quick_hash column and never substitutes for the real digest processors.
func QuickHash(path string, size int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s for quick hash: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	buf := make([]byte, QuickHashSampleBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("reading %s for quick hash: %w", path, err)
	}

	h := xxh3.New()
	fmt.Fprintf(h, "%d:", size)
	h.Write(buf[:n])
	return fmt.Sprintf("%x", h.Sum128().Bytes()), nil
}
