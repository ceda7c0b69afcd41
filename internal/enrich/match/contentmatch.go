package match

import "regexp"

// contentMatchMaxBuffer bounds how much content ContentMatchProcessor
// accumulates before matching, so a regex match can't be split across a
// chunk boundary. Content past this bound is simply not searched.
const contentMatchMaxBuffer = 4 * 1024 * 1024

// ContentMatchProcessor implements process.Processor so content_match rides
// the same single-read Stream fan-out as the digest/byte-type/simhash
// processors -- content_match never triggers a second file read.
type ContentMatchProcessor struct {
	rules map[string]*regexp.Regexp
	buf   []byte
}

// NewContentMatchProcessor compiles a name->pattern rule map.
func NewContentMatchProcessor(rules map[string]string) (*ContentMatchProcessor, error) {
	compiled := make(map[string]*regexp.Regexp, len(rules))
	for name, pattern := range rules {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}
		compiled[name] = re
	}
	return &ContentMatchProcessor{rules: compiled, buf: make([]byte, 0, 4096)}, nil
}

func (c *ContentMatchProcessor) Name() string { return "content_match" }

func (c *ContentMatchProcessor) Consume(p []byte) {
	remaining := contentMatchMaxBuffer - len(c.buf)
	if remaining <= 0 {
		return
	}
	if len(p) > remaining {
		p = p[:remaining]
	}
	c.buf = append(c.buf, p...)
}

func (c *ContentMatchProcessor) Finish() (any, error) {
	var matched []string
	for name, re := range c.rules {
		if re.Match(c.buf) {
			matched = append(matched, name)
		}
	}
	return Ran(matched), nil
}
