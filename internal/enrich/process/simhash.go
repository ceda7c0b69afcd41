package process

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/mfonda/simhash"
)

// simhashMaxBuffer bounds how much content SimHashProcessor accumulates.
// mfonda/simhash has no incremental API (it hashes a whole []byte of
// tokenized features at once), so unlike the digest processors this one
// can't stream indefinitely; content past this bound is dropped rather
// than read twice. Large text files are rare relative to the workloads
// this hash targets (source trees, config, logs).
const simhashMaxBuffer = 4 * 1024 * 1024

// SimHashProcessor computes a 64-bit SimHash over whitespace-tokenized
// textual content. The coordinator streams every content candidate through
// it when simhash is enabled and discards its value for candidates that
// byte_type classifies as binary.
type SimHashProcessor struct {
	buf []byte
}

func NewSimHashProcessor() *SimHashProcessor {
	return &SimHashProcessor{buf: make([]byte, 0, 4096)}
}

func (s *SimHashProcessor) Name() string { return "simhash" }

func (s *SimHashProcessor) Consume(p []byte) {
	remaining := simhashMaxBuffer - len(s.buf)
	if remaining <= 0 {
		return
	}
	if len(p) > remaining {
		p = p[:remaining]
	}
	s.buf = append(s.buf, p...)
}

func (s *SimHashProcessor) Finish() (any, error) {
	sum := simhash.Simhash(simhash.NewWordFeatureSet(s.buf))
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, sum)
	return hex.EncodeToString(b), nil
}

// SimHashValue parses a hex-encoded simhash value back into a uint64, for
// Hamming-distance comparison in internal/enrich/match.
func SimHashValue(hexStr string) (uint64, error) {
	b, err := hex.DecodeString(hexStr)
	if err != nil {
		return 0, err
	}
	for len(b) < 8 {
		b = append([]byte{0}, b...)
	}
	return binary.BigEndian.Uint64(b[len(b)-8:]), nil
}
