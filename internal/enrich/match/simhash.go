package match

import (
	"math/bits"

	"github.com/filerecon/recon/internal/enrich/process"
)

// SimHashThreshold is the maximum Hamming distance (out of 64 bits) for two
// simhashes to be considered near-duplicates.
//
// Resolved open question (spec.md §9): 3 bits is the conventional
// near-duplicate threshold for a 64-bit SimHash (roughly 95% similarity)
// and is cheap to compute as a popcount over the XOR of the two values.
const SimHashThreshold = 3

// SimHashMatcher compares a row's computed simhash against a configured set
// of reference simhashes (hex-encoded), firing on any reference within
// SimHashThreshold bits.
type SimHashMatcher struct {
	references map[string]uint64
}

// NewSimHashMatcher builds a matcher from configured hex-encoded simhash
// references. References that fail to parse are skipped.
func NewSimHashMatcher(references []string) *SimHashMatcher {
	set := make(map[string]uint64, len(references))
	for _, r := range references {
		v, err := process.SimHashValue(r)
		if err != nil {
			continue
		}
		set[r] = v
	}
	return &SimHashMatcher{references: set}
}

// Match reports the reference tokens within SimHashThreshold bits of digest
// (hex-encoded simhash). A malformed digest matches nothing.
func (s *SimHashMatcher) Match(digest string) Result {
	v, err := process.SimHashValue(digest)
	if err != nil {
		return Ran(nil)
	}
	var matched []string
	for token, ref := range s.references {
		if bits.OnesCount64(v^ref) <= SimHashThreshold {
			matched = append(matched, token)
		}
	}
	return Ran(matched)
}
