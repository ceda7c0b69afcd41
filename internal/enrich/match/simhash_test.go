package match

import (
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hexOf(v uint64) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return hex.EncodeToString(b)
}

func TestSimHashMatcher_WithinThreshold(t *testing.T) {
	ref := uint64(0b1010101010101010)
	sm := NewSimHashMatcher([]string{hexOf(ref)})

	// Flip 2 bits -- within SimHashThreshold (3).
	near := ref ^ 0b11
	res := sm.Match(hexOf(near))
	require.True(t, res.Configured)
	assert.Equal(t, []string{hexOf(ref)}, res.Value())
}

func TestSimHashMatcher_BeyondThreshold(t *testing.T) {
	ref := uint64(0b1010101010101010)
	sm := NewSimHashMatcher([]string{hexOf(ref)})

	// Flip 4 bits -- beyond SimHashThreshold (3).
	far := ref ^ 0b1111
	res := sm.Match(hexOf(far))
	assert.Equal(t, []string{}, res.Value())
}

func TestSimHashMatcher_MalformedDigestMatchesNothing(t *testing.T) {
	sm := NewSimHashMatcher([]string{hexOf(1)})
	res := sm.Match("not-hex")
	assert.Equal(t, []string{}, res.Value())
}

func TestSimHashMatcher_SkipsUnparseableReferences(t *testing.T) {
	sm := NewSimHashMatcher([]string{"not-hex", hexOf(42)})
	res := sm.Match(hexOf(42))
	assert.Equal(t, []string{hexOf(42)}, res.Value())
}
