package match

import "strings"

// DigestMatcher checks a computed digest against a configured set of
// candidate digests, case-insensitively. It backs crc32_match/md5_match/
// sha256_match/sha512_match: enabling any of these implicitly enables the
// corresponding digest processor (spec.md §9's one-pass topological enable
// rule), handled by the coordinator, not here.
type DigestMatcher struct {
	candidates map[string]struct{}
}

// NewDigestMatcher builds a matcher from a configured list of digest
// strings. An empty or nil list still marks the matcher as configured (it
// simply never matches).
func NewDigestMatcher(candidates []string) *DigestMatcher {
	set := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		set[strings.ToLower(c)] = struct{}{}
	}
	return &DigestMatcher{candidates: set}
}

// Match reports the matched token (the digest itself) if digest is a
// member of the configured set.
func (d *DigestMatcher) Match(digest string) Result {
	if digest == "" {
		return Ran(nil)
	}
	if _, ok := d.candidates[strings.ToLower(digest)]; ok {
		return Ran([]string{strings.ToLower(digest)})
	}
	return Ran(nil)
}
