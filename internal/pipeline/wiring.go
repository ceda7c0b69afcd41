package pipeline

import (
	"fmt"

	"github.com/filerecon/recon/internal/enrich/match"
)

// EnrichmentPlan is the resolved set of processors and matchers for one
// run, built once from source.computed_fields and shared read-only across
// every enrichment worker (spec.md §5, §9 "global state").
type EnrichmentPlan struct {
	ByteType  bool
	IsBinary  bool
	FileMagic bool
	CRC32     bool
	MD5       bool
	SHA256    bool
	SHA512    bool
	SimHash   bool

	DigestMatchers map[string]*match.DigestMatcher // keyed by digest name: crc32/md5/sha256/sha512
	SimHashMatcher *match.SimHashMatcher
	PathMatcher    *match.PathMatcher
	ContentMatch   map[string]string // name -> pattern, for content_match
	YaraRuleSource string
	YaraEnabled    bool
}

// NeedsContent reports whether any enabled processor or matcher requires
// opening and streaming the file's content.
func (p *EnrichmentPlan) NeedsContent() bool {
	return p.ByteType || p.IsBinary || p.FileMagic || p.CRC32 || p.MD5 || p.SHA256 || p.SHA512 ||
		p.SimHash || len(p.ContentMatch) > 0 || p.YaraEnabled
}

// BuildEnrichmentPlan resolves computedFields (config.Config.Source.ComputedFields,
// passed as a plain map so this package has no dependency on internal/config)
// into an EnrichmentPlan, applying spec.md §9's one-pass topological enable
// rule: enabling any <digest>_match implicitly enables <digest>.
func BuildEnrichmentPlan(computedFields map[string]any) (*EnrichmentPlan, error) {
	plan := &EnrichmentPlan{DigestMatchers: make(map[string]*match.DigestMatcher)}

	if _, ok := computedFields["byte_type"]; ok {
		plan.ByteType = true
	}
	if _, ok := computedFields["is_binary"]; ok {
		plan.IsBinary = true
	}
	if _, ok := computedFields["file_magic"]; ok {
		plan.FileMagic = true
	}
	if _, ok := computedFields["crc32"]; ok {
		plan.CRC32 = true
	}
	if _, ok := computedFields["md5"]; ok {
		plan.MD5 = true
	}
	if _, ok := computedFields["sha256"]; ok {
		plan.SHA256 = true
	}
	if _, ok := computedFields["sha512"]; ok {
		plan.SHA512 = true
	}
	if _, ok := computedFields["simhash"]; ok {
		plan.SimHash = true
	}

	digestMatchKeys := map[string]string{
		"crc32_match":  "crc32",
		"md5_match":    "md5",
		"sha256_match": "sha256",
		"sha512_match": "sha512",
	}
	for key, digestName := range digestMatchKeys {
		raw, ok := computedFields[key]
		if !ok {
			continue
		}
		tokens, err := stringList(raw)
		if err != nil {
			return nil, fmt.Errorf("computed_fields.%s: %w", key, err)
		}
		plan.DigestMatchers[digestName] = match.NewDigestMatcher(tokens)
		switch digestName {
		case "crc32":
			plan.CRC32 = true
		case "md5":
			plan.MD5 = true
		case "sha256":
			plan.SHA256 = true
		case "sha512":
			plan.SHA512 = true
		}
	}

	if raw, ok := computedFields["simhash_match"]; ok {
		tokens, err := stringList(raw)
		if err != nil {
			return nil, fmt.Errorf("computed_fields.simhash_match: %w", err)
		}
		plan.SimHashMatcher = match.NewSimHashMatcher(tokens)
		plan.SimHash = true
	}

	if raw, ok := computedFields["path_match"]; ok {
		rules, err := stringMap(raw)
		if err != nil {
			return nil, fmt.Errorf("computed_fields.path_match: %w", err)
		}
		pm, err := match.NewPathMatcher(rules)
		if err != nil {
			return nil, fmt.Errorf("computed_fields.path_match: %w", err)
		}
		plan.PathMatcher = pm
	}

	if raw, ok := computedFields["content_match"]; ok {
		rules, err := stringMap(raw)
		if err != nil {
			return nil, fmt.Errorf("computed_fields.content_match: %w", err)
		}
		plan.ContentMatch = rules
	}

	if raw, ok := computedFields["yara_match"]; ok {
		ruleSource, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("computed_fields.yara_match must be a string rule blob")
		}
		plan.YaraRuleSource = ruleSource
		plan.YaraEnabled = true
	}

	return plan, nil
}

// stringList coerces a koanf-decoded value (typically []any from YAML) into
// a []string.
func stringList(v any) ([]string, error) {
	switch vv := v.(type) {
	case []string:
		return vv, nil
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected a list of strings, got %T element", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a list of strings, got %T", v)
	}
}

// stringMap coerces a koanf-decoded value (typically map[string]any from
// YAML) into a map[string]string.
func stringMap(v any) (map[string]string, error) {
	switch vv := v.(type) {
	case map[string]string:
		return vv, nil
	case map[string]any:
		out := make(map[string]string, len(vv))
		for k, item := range vv {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected a map of string to string, got %T at key %q", item, k)
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a map of string to string, got %T", v)
	}
}
