package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYaraRule = `
rule contains_marker {
	strings:
		$marker = "EICAR-MARKER"
	condition:
		$marker
}
`

func TestYaraMatcher_MatchesRule(t *testing.T) {
	ym, err := NewYaraMatcher(testYaraRule)
	require.NoError(t, err)

	res, err := ym.Match([]byte("some content with EICAR-MARKER inside"))
	require.NoError(t, err)
	assert.Equal(t, []string{"contains_marker"}, res.Value())
}

func TestYaraMatcher_NoMatch(t *testing.T) {
	ym, err := NewYaraMatcher(testYaraRule)
	require.NoError(t, err)

	res, err := ym.Match([]byte("nothing suspicious here"))
	require.NoError(t, err)
	assert.Equal(t, []string{}, res.Value())
}

func TestNewYaraMatcher_InvalidRuleSource(t *testing.T) {
	_, err := NewYaraMatcher("this is not a valid yara rule {{{")
	assert.Error(t, err)
}
