// Package process implements the content-reading enrichment processors:
// byte_type, is_binary, file_magic, and the four digests, plus simhash.
// Every processor that needs file content is driven through a single
// Stream so a candidate's bytes are read off disk exactly once per
// enrichment pass, no matter how many processors (or content_match, from
// the sibling match package) are enabled.
package process

import "io"

// Processor consumes a byte stream incrementally and produces a final
// value once the stream is exhausted. Consume may be called any number of
// times with successive, non-overlapping slices; Finish is called exactly
// once after the final Consume.
type Processor interface {
	Name() string
	Consume(p []byte)
	Finish() (value any, err error)
}

// streamBufSize is the chunk size Stream reads with, large enough to
// amortize syscalls for whole-file digesting.
const streamBufSize = 64 * 1024

// Stream reads r to completion, feeding every chunk to each of procs in
// order. It returns the first read error encountered (other than io.EOF),
// if any; callers should still call Finish on every processor afterward so
// processors that can produce a partial result (e.g. byte_type) still do.
func Stream(r io.Reader, procs ...Processor) error {
	buf := make([]byte, streamBufSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			for _, p := range procs {
				p.Consume(chunk)
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}
