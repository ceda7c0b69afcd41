package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_Value_TriState(t *testing.T) {
	assert.Nil(t, NotConfigured.Value())
	assert.Equal(t, []string{}, Ran(nil).Value())
	assert.Equal(t, []string{"a"}, Ran([]string{"a"}).Value())
}
