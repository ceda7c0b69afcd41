package pipeline

import "encoding/json"

// encodeTokens JSON-encodes a matcher's tri-state token slice for storage
// in a *_match TEXT column. tokens is never nil here (matcher Result.Value
// only returns nil for a matcher that was never configured, and callers
// only invoke this for a matcher that ran), so the result is always a JSON
// array, "[]" at minimum.
func encodeTokens(tokens []string) string {
	if tokens == nil {
		tokens = []string{}
	}
	b, err := json.Marshal(tokens)
	if err != nil {
		return "[]"
	}
	return string(b)
}
