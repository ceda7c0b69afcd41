package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressReporter_Update_RendersStageAndCounts(t *testing.T) {
	var buf bytes.Buffer
	r := NewProgressReporter(&buf)

	r.Update("walk", 3, 10)
	assert.Contains(t, buf.String(), "walk")
	assert.Contains(t, buf.String(), "3/10")
}

func TestProgressReporter_Update_NewlineOnStageTransition(t *testing.T) {
	var buf bytes.Buffer
	r := NewProgressReporter(&buf)

	r.Update("walk", 1, 10)
	beforeTransition := buf.Len()
	r.Update("walk", 2, 10)
	assert.Equal(t, strings.Count(buf.String()[:beforeTransition], "\n"), strings.Count(buf.String(), "\n"),
		"repeated updates within the same stage must not add a newline")

	r.Update("enrich", 1, 5)
	assert.Greater(t, strings.Count(buf.String(), "\n"), strings.Count(buf.String()[:beforeTransition], "\n"),
		"a stage transition must emit a newline before the new stage's first line")
}

func TestProgressReporter_Done_EndsWithNewline(t *testing.T) {
	var buf bytes.Buffer
	r := NewProgressReporter(&buf)
	r.Update("walk", 1, 1)
	r.Done()
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestProgressReporter_Update_ZeroTotalDoesNotPanic(t *testing.T) {
	var buf bytes.Buffer
	r := NewProgressReporter(&buf)
	assert.NotPanics(t, func() { r.Update("walk", 0, 0) })
}
