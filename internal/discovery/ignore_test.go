package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubIgnorer struct{ ignored bool }

func (s stubIgnorer) IsIgnored(path string, isDir bool) bool { return s.ignored }

func TestCompositeIgnorer_IgnoredIfAnySourceMatches(t *testing.T) {
	c := NewCompositeIgnorer(stubIgnorer{false}, stubIgnorer{true})
	assert.True(t, c.IsIgnored("anything", false))
}

func TestCompositeIgnorer_NotIgnoredWhenNoneMatch(t *testing.T) {
	c := NewCompositeIgnorer(stubIgnorer{false}, stubIgnorer{false})
	assert.False(t, c.IsIgnored("anything", false))
}

func TestCompositeIgnorer_SkipsNilEntries(t *testing.T) {
	c := NewCompositeIgnorer(nil, stubIgnorer{true}, nil)
	assert.Equal(t, 1, c.IgnorerCount())
	assert.True(t, c.IsIgnored("anything", false))
}

func TestCompositeIgnorer_EmptyChainNeverIgnores(t *testing.T) {
	c := NewCompositeIgnorer()
	assert.Equal(t, 0, c.IgnorerCount())
	assert.False(t, c.IsIgnored("anything", false))
}
