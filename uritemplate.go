// Package uritemplate parses, expands and extracts URI templates.
//
// Patterns are parsed as draft-gregorio-uritemplate-07 templates, see package [draft7]
// for the syntax and the expansion and extraction rules.
package uritemplate

//go:generate go tool errtrace -w .

import (
	"braces.dev/errtrace"

	"github.com/bmaland/uri-template/draft7"
)

// Version is the current package version.
var Version = "0.1.0"

type (
	Template = draft7.Template
	Values   = draft7.Values
)

// Parse parses the pattern into a template.
func Parse(pattern string) (*Template, error) {
	return errtrace.Wrap2(draft7.Parse(pattern))
}

// MustParse is like [Parse] but panics if the pattern is invalid.
func MustParse(pattern string) *Template {
	return draft7.MustParse(pattern)
}

// Valid reports whether the pattern is a valid template pattern.
func Valid(pattern string) bool {
	return draft7.Valid(pattern)
}

// Join parses the patterns and joins them as path segments, see [draft7.Template.Join].
func Join(base string, patterns ...string) (*Template, error) {
	tpl, err := draft7.Parse(base)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	for _, p := range patterns {
		if tpl, err = tpl.JoinPattern(p); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	return tpl, nil
}

// Expand parses the pattern and expands it with the values.
func Expand(pattern string, vals Values) (string, error) {
	tpl, err := draft7.Parse(pattern)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	return tpl.Expand(vals), nil
}

// Extract parses the pattern and extracts the variables from the URI.
// ok is false if the URI does not match.
func Extract(pattern, uri string) (_ map[string]any, ok bool, _ error) {
	tpl, err := draft7.Parse(pattern)
	if err != nil {
		return nil, false, errtrace.Wrap(err)
	}
	return errtrace.Wrap3(tpl.Extract(uri))
}
