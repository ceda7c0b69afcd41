package match

import "regexp"

// PathMatcher evaluates a set of named regular expressions against a row's
// abs_path.
//
// Resolved open question (spec.md §9): path_match targets abs_path, not
// the as-walked path. abs_path is canonical and stable regardless of which
// root the operator passed on the command line, so a saved rule set
// behaves identically run to run; path is walk-relative and would make a
// path regex root-dependent.
type PathMatcher struct {
	rules map[string]*regexp.Regexp
}

// NewPathMatcher compiles a name->pattern map. Returns an error naming the
// first rule that fails to compile, matching config's fatal-at-startup
// validation policy.
func NewPathMatcher(rules map[string]string) (*PathMatcher, error) {
	compiled := make(map[string]*regexp.Regexp, len(rules))
	for name, pattern := range rules {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}
		compiled[name] = re
	}
	return &PathMatcher{rules: compiled}, nil
}

// Match reports the names of every rule matching absPath.
func (p *PathMatcher) Match(absPath string) Result {
	var matched []string
	for name, re := range p.rules {
		if re.MatchString(absPath) {
			matched = append(matched, name)
		}
	}
	return Ran(matched)
}
