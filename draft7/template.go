package draft7

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
	"sync"
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/bmaland/uri-template/internal/grammar"
	"github.com/bmaland/uri-template/internal/ioutil"
	"github.com/bmaland/uri-template/internal/util"
)

// Template is a parsed URI template.
// It is immutable, all derived data is computed on first use and cached,
// so a template is safe for concurrent use.
// Templates are created with [Parse], [MustParse] or [FromTokens], the zero value is not usable.
type Template struct {
	tokens []Token

	pattern    func() string
	matcher    func() (*matcher, error)
	variables  func() []string
	level      func() int
	staticChrs func() int
}

type matcher struct {
	re     *regexp.Regexp
	source string
	slots  []int
}

// Parse parses the pattern into a template.
// If the pattern is invalid, a [*ParseError] is returned.
func Parse(pattern string) (*Template, error) {
	tokens, err := tokenize(pattern)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return newTemplate(tokens, pattern), nil
}

// MustParse is like [Parse] but panics if the pattern is invalid.
func MustParse(pattern string) *Template {
	return util.Must2(Parse(pattern))
}

// Valid reports whether the pattern is a valid template pattern.
func Valid(pattern string) bool {
	return grammar.IsTemplate(pattern)
}

// FromTokens creates a template from the tokens without parsing.
// Nil tokens are skipped.
func FromTokens(tokens ...Token) *Template {
	toks := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		switch tok := tok.(type) {
		case nil:
			continue
		case *Expression:
			if tok == nil {
				continue
			}
		}
		toks = append(toks, tok)
	}
	return newTemplate(toks, "")
}

// Convert converts v to a template.
// It accepts *Template, string and []byte.
func Convert(v any) (*Template, error) {
	switch v := v.(type) {
	case *Template:
		if v == nil {
			return nil, errtrace.Wrap(NewInvalidArgumentError("nil template"))
		}
		return v, nil
	case string:
		return errtrace.Wrap2(Parse(v))
	case []byte:
		return errtrace.Wrap2(Parse(string(v)))
	case fmt.Stringer:
		return errtrace.Wrap2(Parse(v.String()))
	default:
		return nil, errtrace.Wrap(NewInvalidArgumentError(fmt.Sprintf("cannot convert %T to template", v)))
	}
}

// TryConvert is like [Convert] but reports failures with ok = false.
func TryConvert(v any) (*Template, bool) {
	t, err := Convert(v)
	return t, err == nil
}

func newTemplate(tokens []Token, pattern string) *Template {
	t := &Template{tokens: tokens}
	if pattern != "" || len(tokens) == 0 {
		t.pattern = func() string { return pattern }
	} else {
		t.pattern = sync.OnceValue(t.renderPattern)
	}
	t.matcher = sync.OnceValues(t.compile)
	t.variables = sync.OnceValue(t.collectVariables)
	t.level = sync.OnceValue(t.calcLevel)
	t.staticChrs = sync.OnceValue(t.countStatic)
	return t
}

// Type returns the template syntax name.
func (*Template) Type() string { return "draft7" }

// Pattern returns the template pattern.
func (t *Template) Pattern() string {
	if t == nil {
		return ""
	}
	return t.pattern()
}

func (t *Template) renderPattern() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for _, tok := range t.tokens {
		sb.WriteString(tok.String())
	}
	return sb.String()
}

// Tokens returns a copy of the template tokens.
func (t *Template) Tokens() []Token {
	if t == nil {
		return nil
	}
	return slices.Clone(t.tokens)
}

// Expand expands the template with the values.
func (t *Template) Expand(vals Values) string {
	if t == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	expandTokens(sb, t.tokens, vals)
	return sb.String()
}

// ExpandTo writes the expansion of the template with the values to w.
func (t *Template) ExpandTo(w io.Writer, vals Values) (int, error) {
	if t == nil {
		return 0, nil
	}
	rw := ioutil.GetRenderWriter(w)
	defer ioutil.FreeRenderWriter(rw)
	for _, tok := range t.tokens {
		switch tok := tok.(type) {
		case Literal:
			rw.Text(string(tok))
		case *Expression:
			rw.Text(tok.Expand(vals))
		}
	}
	return errtrace.Wrap2(rw.Result())
}

// RenderTo writes the template pattern to w.
func (t *Template) RenderTo(w io.Writer) (int, error) {
	rw := ioutil.GetRenderWriter(w)
	defer ioutil.FreeRenderWriter(rw)
	return errtrace.Wrap2(rw.Text(t.Pattern()).Result())
}

func (t *Template) compile() (*matcher, error) {
	src, slots := renderMatcher(t.tokens)
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("compile matcher of %q: %w", util.Ellipsis(t.Pattern(), 64), err))
	}
	return &matcher{re: re, source: src, slots: slots}, nil
}

// Matcher returns the compiled anchored regular expression matching the expansions of the template.
func (t *Template) Matcher() (*regexp.Regexp, error) {
	m, err := t.matcher()
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return m.re, nil
}

// MatcherSource returns the source of the template matcher.
// Templates with equal tokens have equal matcher sources.
func (t *Template) MatcherSource() string {
	if m, err := t.matcher(); err == nil {
		return m.source
	}
	src, _ := renderMatcher(t.tokens)
	return src
}

// Match matches the URI against the template.
// ok is false if the URI does not match.
func (t *Template) Match(uri string) (_ *Match, ok bool, _ error) {
	m, err := t.matcher()
	if err != nil {
		return nil, false, errtrace.Wrap(err)
	}
	idx := m.re.FindStringSubmatchIndex(uri)
	if idx == nil {
		return nil, false, nil
	}

	res := &Match{source: m.source, uri: uri, slots: make([]slotMatch, len(m.slots))}
	for i, g := range m.slots {
		if g < 0 || 2*g+1 >= len(idx) || idx[2*g] < 0 {
			continue
		}
		res.slots[i] = slotMatch{text: uri[idx[2*g]:idx[2*g+1]], ok: true}
	}
	return res, true, nil
}

// MatchString reports whether the URI matches the template.
func (t *Template) MatchString(uri string) bool {
	m, err := t.matcher()
	if err != nil {
		return false
	}
	return m.re.MatchString(uri)
}

// Extract extracts the variables from the URI with [DefaultProcessing].
// ok is false if the URI does not match.
func (t *Template) Extract(uri string) (_ map[string]any, ok bool, _ error) {
	vars, ok, err := t.ExtractVars(uri, DefaultProcessing)
	if err != nil || !ok {
		return nil, ok, errtrace.Wrap(err)
	}
	return vars.Map(), true, nil
}

// ExtractVars extracts the variables from the URI.
// ok is false if the URI does not match.
//
// Extraction is approximate: the result expands back to the URI,
// but repeated variables and several exploded variables in one expression
// cannot be told apart.
func (t *Template) ExtractVars(uri string, proc Processing) (_ Vars, ok bool, _ error) {
	m, ok, err := t.Match(uri)
	if err != nil || !ok {
		return nil, ok, errtrace.Wrap(err)
	}
	vars, err := t.ExtractMatch(m, proc)
	if err != nil {
		return nil, false, errtrace.Wrap(err)
	}
	return vars, true, nil
}

// ExtractMatch extracts the variables from the match.
// The match must be produced by a matcher with the same source as this template,
// otherwise [ErrMatcherMismatch] is returned.
func (t *Template) ExtractMatch(m *Match, proc Processing) (Vars, error) {
	if m == nil {
		return nil, errtrace.Wrap(NewInvalidArgumentError("nil match"))
	}
	if m.Source() != t.MatcherSource() {
		return nil, errtrace.Wrap(ErrMatcherMismatch)
	}
	vars, err := extractMatch(t.tokens, m)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return vars.process(proc), nil
}

// Variables returns the variable names, each name once, ordered by its last occurrence.
func (t *Template) Variables() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.variables())
}

func (t *Template) collectVariables() []string {
	var vars []string
	for _, tok := range t.tokens {
		expr, ok := tok.(*Expression)
		if !ok {
			continue
		}
		var names []string
		for _, n := range expr.Names() {
			if !slices.Contains(names, n) {
				names = append(names, n)
			}
		}
		vars = slices.DeleteFunc(vars, func(v string) bool { return slices.Contains(names, v) })
		vars = append(vars, names...)
	}
	return vars
}

// Level returns the template level from 1 to 4 as defined by the draft.
// An empty template is level 1.
func (t *Template) Level() int {
	if t == nil {
		return 0
	}
	return t.level()
}

func (t *Template) calcLevel() int {
	lvl := 1
	for _, tok := range t.tokens {
		lvl = max(lvl, tok.Level())
	}
	return lvl
}

// StaticCharacters returns the number of characters in the literal parts.
// Templates with more static characters are more specific.
func (t *Template) StaticCharacters() int {
	if t == nil {
		return 0
	}
	return t.staticChrs()
}

func (t *Template) countStatic() int {
	var n int
	for _, tok := range t.tokens {
		if lit, ok := tok.(Literal); ok {
			n += utf8.RuneCountInString(string(lit))
		}
	}
	return n
}

// String returns the template pattern.
func (t *Template) String() string {
	if t == nil {
		return ""
	}
	return t.Pattern()
}

// Format implements fmt.Formatter for custom formatting of the template.
func (t *Template) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, t.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(t.String()))
		return
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, t.String())
			return
		}
		type hideMethods Template
		type Template hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Template)(t))
		return
	}
}

// Equal reports whether val is a template with the same pattern.
func (t *Template) Equal(val any) bool {
	other, ok := val.(*Template)
	if !ok {
		return false
	}
	if t == other {
		return true
	} else if t == nil || other == nil {
		return false
	}
	return t.Pattern() == other.Pattern()
}

// MarshalText implements [encoding.TextMarshaler].
func (t *Template) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (t *Template) UnmarshalText(text []byte) error {
	t1, err := Parse(string(text))
	if err != nil {
		*t = *newTemplate(nil, "")
		return errtrace.Wrap(err)
	}
	*t = *t1
	return nil
}
