package match

import (
	"fmt"

	yara "github.com/hillu/go-yara/v4"
)

// YaraMatcher wraps a set of compiled YARA rules, shared read-only across
// every worker for the run's lifetime -- compilation happens once, per
// spec.md §4.5.
type YaraMatcher struct {
	rules *yara.Rules
}

// NewYaraMatcher compiles ruleSource (the full text of one or more YARA
// rule files, concatenated) once. Returns an error on a bad rule, matching
// config's fatal-at-startup validation policy.
func NewYaraMatcher(ruleSource string) (*YaraMatcher, error) {
	compiler, err := yara.NewCompiler()
	if err != nil {
		return nil, fmt.Errorf("creating yara compiler: %w", err)
	}
	if err := compiler.AddString(ruleSource, ""); err != nil {
		return nil, fmt.Errorf("compiling yara rules: %w", err)
	}
	rules, err := compiler.GetRules()
	if err != nil {
		return nil, fmt.Errorf("linking yara rules: %w", err)
	}
	return &YaraMatcher{rules: rules}, nil
}

// Match scans buf against the compiled rule set and returns the names of
// every rule that fired.
func (y *YaraMatcher) Match(buf []byte) (Result, error) {
	var mr yara.MatchRules
	if err := y.rules.ScanMem(buf, 0, 0, &mr); err != nil {
		return Ran(nil), fmt.Errorf("yara scan: %w", err)
	}
	var matched []string
	for _, m := range mr {
		matched = append(matched, m.Rule)
	}
	return Ran(matched), nil
}
