package config

import (
	"fmt"
	"regexp"
)

// Validate rejects unrecognized source.default_fields/source.computed_fields
// keys and confirms every configured path_match/content_match regex
// compiles, matching spec.md §6/§7's "fatal at startup" config-error
// policy (YARA rule compilation is validated later, once, by the matcher
// constructor in internal/enrich/match, since it needs the rule blob text
// rather than just a key name).
func Validate(cfg *Config) error {
	recognizedDefault := recognizedDefaultFieldKeys()
	for key := range cfg.Source.DefaultFields {
		if _, ok := recognizedDefault[key]; !ok {
			return fmt.Errorf("unknown source.default_fields key %q", key)
		}
	}

	recognizedComputed := recognizedComputedFieldKeys()
	for key, value := range cfg.Source.ComputedFields {
		if _, ok := recognizedComputed[key]; !ok {
			return fmt.Errorf("unknown source.computed_fields key %q", key)
		}
		if key == "path_match" || key == "content_match" {
			if err := validateRegexRules(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateRegexRules(key string, value any) error {
	rules, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("source.computed_fields.%s must be a map of name to pattern", key)
	}
	for name, pattern := range rules {
		patternStr, ok := pattern.(string)
		if !ok {
			return fmt.Errorf("source.computed_fields.%s.%s must be a string pattern", key, name)
		}
		if _, err := regexp.Compile(patternStr); err != nil {
			return fmt.Errorf("source.computed_fields.%s.%s: %w", key, name, err)
		}
	}
	return nil
}
