// Package draft7 implements URI templates as described in draft-gregorio-uritemplate-07.
//
// # Overview
//
// A template is a string with literal parts and expressions in curly braces:
//
//	/users/{id}{?fields,limit}
//	http://example.com{/path*}{#section}
//
// [Parse] turns a pattern into a [*Template]. A template can be expanded with variable values
// and, in the other direction, matched against a URI to extract the values back.
//
// # Expressions
//
// An expression consists of an optional [Operator] and a comma separated list of variables.
// Every variable may carry a modifier: "*" explodes lists and maps element by element,
// ":N" cuts a scalar value to at most N characters.
//
//	operator  prefix  separator  named  allowed characters
//	(none)            ,          no     unreserved
//	+                 ,          no     unreserved + reserved + pct-encoded
//	#         #       ,          no     unreserved + reserved + pct-encoded
//	.         .       .          no     unreserved
//	/         /       /          no     unreserved
//	;         ;       ;          yes    unreserved
//	?         ?       &          yes    unreserved
//	&         &       &          yes    unreserved
//
// Unreserved characters are letters, digits and "-._". Every other byte of a value
// is percent-encoded with uppercase hex digits.
//
// # Expansion
//
//	tpl := draft7.MustParse("/search{?q,tags*}")
//	tpl.Expand(draft7.Values{
//	    "q":    "go lang",
//	    "tags": []string{"a", "b"},
//	})
//	// "/search?q=go%20lang&a&b"
//
// Undefined (nil) variables are skipped. See [Values] for the supported value shapes.
//
// # Extraction
//
// [Template.Extract] matches a URI with the template matcher and decodes the captured values:
//
//	vars, ok, err := draft7.MustParse("{&args*}").Extract("&a=1&b=2")
//	// map[string]any{"args": map[string]string{"a": "1", "b": "2"}}, true, nil
//
// A URI that does not match is reported with ok = false, it is not an error.
// Extraction is approximate: the extracted values expand back to the same URI,
// but they are not necessarily equal to the values the URI was expanded from.
// Repeated variables collapse to the last value and several exploded variables
// in one expression are all captured by the first one.
// [Template.ExtractVars] and [Processing] give access to the raw slot values.
//
// The matcher is an anchored regular expression (see [Template.Matcher]).
// [Template.Match] returns a [*Match] that can be inspected and later passed to [Template.ExtractMatch].
//
// # Utilities
//
//   - [Template.Level] returns the template level from 1 to 4;
//   - [Template.Variables] returns the variable names;
//   - [Template.StaticCharacters] counts literal characters, useful to rank templates for routing;
//   - [Template.Join] joins templates as path segments;
//   - [Template.IsAbsolute] reports whether the template starts with "scheme://".
//
// # Concurrency
//
// Templates are immutable and safe for concurrent use.
// Derived data like the pattern and the compiled matcher is computed once on first use.
package draft7
