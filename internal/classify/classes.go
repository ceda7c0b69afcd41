// Package classify implements the cheap, configuration-driven predicates
// applied to a base row immediately after extraction: the four extension-set
// classes (is_archive/is_document/is_media/is_code). is_ignored is not set
// here; the pipeline coordinator computes it from the discovery ignore
// matchers.
package classify

import "strings"

// ClassSet is a single configured extension-set class. A class that was
// never configured at all (Configured == false) yields a nil (SQL NULL)
// result from Match rather than false, per the data model's tri-state rule:
// "any field not requested by configuration is left null".
type ClassSet struct {
	Configured bool
	extensions map[string]struct{}
}

// NewClassSet builds a ClassSet from a configured extension list. Extensions
// are normalized to lowercase without a leading dot. Passing a nil or empty
// slice still marks the class as configured (an intentionally-empty set,
// which matches nothing).
func NewClassSet(configured bool, extensions []string) ClassSet {
	set := make(map[string]struct{}, len(extensions))
	for _, e := range extensions {
		set[strings.ToLower(strings.TrimPrefix(e, "."))] = struct{}{}
	}
	return ClassSet{Configured: configured, extensions: set}
}

// Match reports whether ext (already lowercased, no leading dot) belongs to
// the class. Returns nil when the class was not configured at all.
func (c ClassSet) Match(ext string) *bool {
	if !c.Configured {
		return nil
	}
	_, ok := c.extensions[ext]
	return &ok
}

// Classes holds the four extension-set classes read from
// source.default_fields in config.
type Classes struct {
	Archive  ClassSet
	Document ClassSet
	Media    ClassSet
	Code     ClassSet
}

// Result is the classifier output for one row.
type Result struct {
	IsArchive  *bool
	IsDocument *bool
	IsMedia    *bool
	IsCode     *bool
}

// Classify evaluates all four classes against ext.
func (c Classes) Classify(ext string) Result {
	return Result{
		IsArchive:  c.Archive.Match(ext),
		IsDocument: c.Document.Match(ext),
		IsMedia:    c.Media.Match(ext),
		IsCode:     c.Code.Match(ext),
	}
}
