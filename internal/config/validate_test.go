package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_AcceptsRecognizedKeys(t *testing.T) {
	cfg := &Config{Source: Source{
		DefaultFields:  map[string][]string{"is_archive": {"zip"}},
		ComputedFields: map[string]any{"sha256": nil, "path_match": map[string]any{"ssh": `\.ssh/`}},
	}}
	assert.NoError(t, Validate(cfg))
}

func TestValidate_AcceptsIsBinaryKey(t *testing.T) {
	cfg := &Config{Source: Source{ComputedFields: map[string]any{"is_binary": nil}}}
	assert.NoError(t, Validate(cfg))
}

func TestValidate_RejectsUnknownDefaultFieldKey(t *testing.T) {
	cfg := &Config{Source: Source{DefaultFields: map[string][]string{"is_bogus": nil}}}
	assert.Error(t, Validate(cfg))
}

func TestValidate_RejectsUnknownComputedFieldKey(t *testing.T) {
	cfg := &Config{Source: Source{ComputedFields: map[string]any{"bogus_field": nil}}}
	assert.Error(t, Validate(cfg))
}

func TestValidate_RejectsInvalidPathMatchRegex(t *testing.T) {
	cfg := &Config{Source: Source{
		ComputedFields: map[string]any{"path_match": map[string]any{"bad": "(unclosed"}},
	}}
	assert.Error(t, Validate(cfg))
}

func TestValidate_RejectsInvalidContentMatchRegex(t *testing.T) {
	cfg := &Config{Source: Source{
		ComputedFields: map[string]any{"content_match": map[string]any{"bad": "["}},
	}}
	assert.Error(t, Validate(cfg))
}

func TestValidate_RejectsNonMapPathMatchValue(t *testing.T) {
	cfg := &Config{Source: Source{
		ComputedFields: map[string]any{"path_match": "not-a-map"},
	}}
	assert.Error(t, Validate(cfg))
}

func TestValidate_RejectsNonStringPattern(t *testing.T) {
	cfg := &Config{Source: Source{
		ComputedFields: map[string]any{"path_match": map[string]any{"bad": 42}},
	}}
	assert.Error(t, Validate(cfg))
}

func TestValidateFlags_RejectsConflictingOutputFormats(t *testing.T) {
	assert.Error(t, ValidateFlags(&FlagValues{JSON: true, CSV: true}))
	assert.Error(t, ValidateFlags(&FlagValues{JSON: true, Xargs: true}))
	assert.Error(t, ValidateFlags(&FlagValues{CSV: true, Xargs: true}))
}

func TestValidateFlags_RejectsConflictingFailConditions(t *testing.T) {
	assert.Error(t, ValidateFlags(&FlagValues{FailSome: true, FailNone: true}))
}

func TestValidateFlags_AcceptsNonConflictingCombination(t *testing.T) {
	assert.NoError(t, ValidateFlags(&FlagValues{JSON: true, FailSome: true}))
}
