package draft7

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/bmaland/uri-template/internal/errorutil"
	"github.com/bmaland/uri-template/internal/grammar"
	"github.com/bmaland/uri-template/internal/util"
)

// Join joins the other template to t as a path suffix.
// It removes a doubled slash or inserts a missing one.
// A slash is always inserted before an expression that is not a path expression:
//
//	"/xy/" + "/z/"  = "/xy/z/"
//	"/xy/" + "z/"   = "/xy/z/"
//	"/xy/" + "{/z}" = "/xy{/z}"
//	"/xy"  + "z"    = "/xy/z"
//	"/xy/" + "{z}"  = "/xy//{z}"
//
// The other template must not be absolute, otherwise [ErrJoinAbsolute] is returned.
func (t *Template) Join(other *Template) (*Template, error) {
	if t == nil || other == nil {
		return nil, errtrace.Wrap(NewInvalidArgumentError("nil template"))
	}
	if other.IsAbsolute() {
		return nil, errtrace.Wrap(joinAbsoluteErr(other))
	}
	if other.Pattern() == "" {
		return t, nil
	}

	left, right := t.tokens, other.tokens
	if n := len(left); n > 0 {
		if lit, ok := left[n-1].(Literal); ok && strings.HasSuffix(string(lit), "/") {
			switch first := right[0].(type) {
			case Literal:
				merged := string(lit) + strings.TrimPrefix(string(first), "/")
				return joinTokens(left[:n-1], []Token{Literal(merged)}, right[1:]), nil
			case *Expression:
				if first.Op != OpPath {
					break
				}
				trimmed := strings.TrimSuffix(string(lit), "/")
				if trimmed == "" {
					return joinTokens(left[:n-1], right), nil
				}
				return joinTokens(left[:n-1], []Token{Literal(trimmed)}, right), nil
			}
		}
	}

	if startsWithSlash(right[0]) {
		return joinTokens(left, right), nil
	}
	return joinTokens(left, []Token{Literal("/")}, right), nil
}

// JoinPattern parses the pattern and joins it to t, see [Template.Join].
func (t *Template) JoinPattern(pattern string) (*Template, error) {
	other, err := Parse(pattern)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(t.Join(other))
}

func joinAbsoluteErr(other *Template) error {
	return errorutil.NewWrapperError(ErrJoinAbsolute, "template %q", util.Ellipsis(other.Pattern(), 64)) //errtrace:skip
}

func startsWithSlash(tok Token) bool {
	switch tok := tok.(type) {
	case Literal:
		return strings.HasPrefix(string(tok), "/")
	case *Expression:
		return tok.Op == OpPath
	}
	return false
}

func joinTokens(parts ...[]Token) *Template {
	var n int
	for _, p := range parts {
		n += len(p)
	}
	tokens := make([]Token, 0, n)
	for _, p := range parts {
		tokens = append(tokens, p...)
	}
	return newTemplate(tokens, "")
}

// IsAbsolute reports whether the template starts with a scheme and an authority, like "http://".
// Only literals and simple expressions are read, any other expression makes the template relative.
func (t *Template) IsAbsolute() bool {
	if t == nil {
		return false
	}

	var sample strings.Builder
	for _, tok := range t.tokens {
		switch tok := tok.(type) {
		case Literal:
			sample.WriteString(string(tok))
		case *Expression:
			if tok.Op != OpSimple {
				return false
			}
			sample.WriteByte('x')
		}

		s := sample.String()
		if hasSchemeAuthority(s) {
			return true
		}
		if hasPathSlash(s) {
			return false
		}
	}
	return false
}

// hasSchemeAuthority reports whether s starts with letters followed by "://".
func hasSchemeAuthority(s string) bool {
	i := 0
	for i < len(s) && grammar.IsAlphaChar(s[i]) {
		i++
	}
	return i > 0 && strings.HasPrefix(s[i:], "://")
}

// hasPathSlash reports whether s has a slash that is not preceded by ':' or '/'
// and not followed by '/'.
func hasPathSlash(s string) bool {
	for i := range len(s) {
		if s[i] != '/' {
			continue
		}
		if i > 0 && (s[i-1] == ':' || s[i-1] == '/') {
			continue
		}
		if i+1 < len(s) && s[i+1] == '/' {
			continue
		}
		return true
	}
	return false
}
