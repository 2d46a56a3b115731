package draft7_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/bmaland/uri-template/draft7"
)

func TestTemplate_Extract(t *testing.T) {
	t.Parallel()

	cases := []struct {
		pattern string
		uri     string
		want    map[string]any
		wantOk  bool
	}{
		{"{var}", "value", map[string]any{"var": "value"}, true},
		{"{&args*}", "&a=1&b=2", map[string]any{"args": map[string]string{"a": "1", "b": "2"}}, true},
		{"{&arg,arg}", "&arg=1&arg=2", map[string]any{"arg": "2"}, true},
		{"{+path,x}/here", "/foo/bar,1024/here", map[string]any{"path": "/foo/bar", "x": "1024"}, true},
		{
			"{/list*,path:4}", "/red/green/blue/%2Ffoo",
			map[string]any{"list": []string{"red", "green", "blue", "/foo"}, "path": nil},
			true,
		},
		{"{/var:1,var}", "/v/value", map[string]any{"var": "value"}, true},
		{
			"{keys}", "semi,%3B,dot,.,comma,%2C",
			map[string]any{"keys": []string{"semi", ";", "dot", ".", "comma", ","}},
			true,
		},
		{
			"{+keys}", "semi,;,dot,.,comma,,",
			map[string]any{"keys": []string{"semi", ";", "dot", ".", "comma", ","}},
			true,
		},
		{"{?x,y}", "?y=768", nil, false},
		{"{?x,y,empty}", "?x=1024&y=768&empty=", map[string]any{"x": "1024", "y": "768", "empty": ""}, true},
		{"{;x,y,empty}", ";x=1024;y=768;empty", map[string]any{"x": "1024", "y": "768", "empty": ""}, true},
		{"{x,y}", "1024", map[string]any{"x": "1024", "y": nil}, true},
		{"{x}", "a,b", map[string]any{"x": []string{"a", "b"}}, true},
		{"{x}", "a,,b", map[string]any{"x": []string{"a", "", "b"}}, true},
		{"{x}", "", map[string]any{"x": ""}, true},
		{"{x}", "a b", nil, false},
		{"{;list*}", ";red;green;blue", map[string]any{"list": []string{"red", "green", "blue"}}, true},
		{
			"{?keys*}", "?semi=%3B&dot=.&comma=%2C",
			map[string]any{"keys": map[string]string{"semi": ";", "dot": ".", "comma": ","}},
			true,
		},
		{"/foo{/bar}", "/foo", map[string]any{"bar": nil}, true},
		{"/foo{/bar}", "/baz", nil, false},
		{"{?q}", "?q=a%20b", map[string]any{"q": "a b"}, true},
		{"{#frag}", "#a/b", map[string]any{"frag": "a/b"}, true},
		{"{/a*,b*}", "/x/y", map[string]any{"a": []string{"x", "y"}, "b": nil}, true},
		{"{/x*}", "/a/", map[string]any{"x": []string{"a", ""}}, true},
		{"{&p*}", "&a=1&&b=2", map[string]any{"p": map[string]string{"a": "1", "b": "2"}}, true},
		{"{&a*}", "&b1b-,", nil, false},
		{"{&a*}", "&b1b-%2C", map[string]any{"a": []string{"b1b-,"}}, true},
		{"{;v*,w}", ";v=a%2Cb;w=,", map[string]any{"v": map[string]string{"v": "a,b"}, "w": []string{"", ""}}, true},
		{"http://example.com/{id}", "http://example.com/42", map[string]any{"id": "42"}, true},
		{"http://example.com/{id}", "http://exampleXcom/42", nil, false},
	}

	for _, c := range cases {
		t.Run(c.pattern+" "+c.uri, func(t *testing.T) {
			t.Parallel()

			got, ok, err := draft7.MustParse(c.pattern).Extract(c.uri)
			if err != nil {
				t.Fatalf("draft7.MustParse(%q).Extract(%q) error = %v, want nil", c.pattern, c.uri, err)
			}
			if ok != c.wantOk {
				t.Fatalf("draft7.MustParse(%q).Extract(%q) ok = %v, want %v", c.pattern, c.uri, ok, c.wantOk)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("draft7.MustParse(%q).Extract(%q) = %+v, want %+v\ndiff (-got +want):\n%v",
					c.pattern, c.uri, got, c.want, diff)
			}
		})
	}
}

func TestTemplate_ExtractVars(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		pattern string
		uri     string
		proc    draft7.Processing
		want    draft7.Vars
	}{
		{
			"repeated names kept",
			"{&arg,arg}", "&arg=1&arg=2", draft7.NoProcessing,
			draft7.Vars{{"arg", "1"}, {"arg", "2"}},
		},
		{
			"repeated names collapsed",
			"{/var:1,var}", "/v/value", draft7.ConvertResult,
			draft7.Vars{{"var", "value"}},
		},
		{
			"pairs kept",
			"{?p*}", "?a=1&b", draft7.NoProcessing,
			draft7.Vars{{"p", draft7.Pairs{{"a", "1"}, {"b", ""}}}},
		},
		{
			"pairs converted",
			"{?p*}", "?a=1&a=2", draft7.ConvertValues,
			draft7.Vars{{"p", map[string]string{"a": "2"}}},
		},
		{
			"unmatched kept",
			"{a}{/b}", "x", draft7.DefaultProcessing,
			draft7.Vars{{"a", "x"}, {"b", nil}},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, ok, err := draft7.MustParse(c.pattern).ExtractVars(c.uri, c.proc)
			if err != nil || !ok {
				t.Fatalf("draft7.MustParse(%q).ExtractVars(%q) = (%v, %v), want (true, nil)", c.pattern, c.uri, ok, err)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("draft7.MustParse(%q).ExtractVars(%q) = %+v, want %+v\ndiff (-got +want):\n%v",
					c.pattern, c.uri, got, c.want, diff)
			}
		})
	}
}

func TestTemplate_Extract_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, c := range draftCases {
		t.Run(c.pattern, func(t *testing.T) {
			t.Parallel()

			tpl := draft7.MustParse(c.pattern)
			uri := tpl.Expand(draftVals)
			vars, ok, err := tpl.ExtractVars(uri, draft7.ConvertResult)
			if err != nil {
				t.Fatalf("tpl.ExtractVars(%q) error = %v, want nil", uri, err)
			}
			if !c.roundTrip {
				return
			}
			if !ok {
				t.Fatalf("tpl.ExtractVars(%q) ok = false, want true", uri)
			}
			if got := tpl.Expand(vars.Values()); got != uri {
				t.Errorf("tpl.Expand(tpl.ExtractVars(%q)) = %q, want %q", uri, got, uri)
			}
		})
	}
}

func TestTemplate_Match(t *testing.T) {
	t.Parallel()

	tpl := draft7.MustParse("/users/{id}{?q,page}")
	m, ok, err := tpl.Match("/users/7?q=go")
	if err != nil || !ok {
		t.Fatalf("tpl.Match() = (%v, %v), want (true, nil)", ok, err)
	}
	if got, want := m.URI(), "/users/7?q=go"; got != want {
		t.Errorf("m.URI() = %q, want %q", got, want)
	}
	if got, want := m.Source(), tpl.MatcherSource(); got != want {
		t.Errorf("m.Source() = %q, want %q", got, want)
	}
	if got, want := m.Len(), 3; got != want {
		t.Errorf("m.Len() = %d, want %d", got, want)
	}

	slots := []struct {
		text string
		ok   bool
	}{{"7", true}, {"=go", true}, {"", false}, {"", false}}
	for i, want := range slots {
		if text, ok := m.Slot(i); text != want.text || ok != want.ok {
			t.Errorf("m.Slot(%d) = (%q, %v), want (%q, %v)", i, text, ok, want.text, want.ok)
		}
	}

	vars, err := tpl.ExtractMatch(m, draft7.DefaultProcessing)
	if err != nil {
		t.Fatalf("tpl.ExtractMatch() error = %v, want nil", err)
	}
	want := draft7.Vars{{"id", "7"}, {"q", "go"}, {"page", nil}}
	if diff := cmp.Diff(vars, want); diff != "" {
		t.Errorf("tpl.ExtractMatch() = %+v, want %+v\ndiff (-got +want):\n%v", vars, want, diff)
	}

	if _, ok, _ := tpl.Match("/groups/7"); ok {
		t.Errorf("tpl.Match(/groups/7) ok = true, want false")
	}
	if !tpl.MatchString("/users/1") || tpl.MatchString("/users") {
		t.Errorf("tpl.MatchString() mismatch")
	}
}

func TestTemplate_ExtractMatch_Mismatch(t *testing.T) {
	t.Parallel()

	other := draft7.MustParse("/{a}")
	m, ok, err := other.Match("/x")
	if err != nil || !ok {
		t.Fatalf("other.Match() = (%v, %v), want (true, nil)", ok, err)
	}

	cases := []struct {
		name    string
		tpl     *draft7.Template
		match   *draft7.Match
		wantErr error
	}{
		{"other matcher", draft7.MustParse("{a}"), m, draft7.ErrMatcherMismatch},
		{"nil match", draft7.MustParse("/{a}"), nil, draft7.ErrInvalidArgument},
		{"same matcher", draft7.MustParse("/{a}"), m, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			_, err := c.tpl.ExtractMatch(c.match, draft7.DefaultProcessing)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("tpl.ExtractMatch() error = %v, want %v\ndiff (-got +want):\n%v", err, c.wantErr, diff)
			}
		})
	}
}

func TestTemplate_Matcher(t *testing.T) {
	t.Parallel()

	a, b := draft7.MustParse("/x{?a,b*}"), draft7.MustParse("/x{?a,b*}")
	if a.MatcherSource() != b.MatcherSource() {
		t.Errorf("matcher sources differ: %q != %q", a.MatcherSource(), b.MatcherSource())
	}

	re, err := a.Matcher()
	if err != nil {
		t.Fatalf("a.Matcher() error = %v, want nil", err)
	}
	if got := re.String(); got != a.MatcherSource() {
		t.Errorf("a.Matcher() = %q, want %q", got, a.MatcherSource())
	}
	if !strings.HasPrefix(re.String(), "^") || !strings.HasSuffix(re.String(), "$") {
		t.Errorf("a.Matcher() = %q, want anchored", re.String())
	}
	if re.NumSubexp() != 2 {
		t.Errorf("a.Matcher().NumSubexp() = %d, want 2", re.NumSubexp())
	}

	if src := draft7.MustParse("{x:1000}").MatcherSource(); !strings.Contains(src, "{0,1000}") {
		t.Errorf("draft7.MustParse({x:1000}).MatcherSource() = %q, want a {0,1000} repeat", src)
	}
	if src := draft7.MustParse("{x:1001}").MatcherSource(); strings.Contains(src, "{0,") {
		t.Errorf("draft7.MustParse({x:1001}).MatcherSource() = %q, want an unbounded repeat", src)
	}
}

func TestTemplate_Extract_LongMaxLength(t *testing.T) {
	t.Parallel()

	cases := []struct {
		pattern string
		value   string
		want    string
	}{
		{"{a:2000}", strings.Repeat("a", 1500), strings.Repeat("a", 1500)},
		{"{a:2000}", strings.Repeat("a", 2500), strings.Repeat("a", 2000)},
		{"/x{/a:1500,b}", strings.Repeat("b", 1200), strings.Repeat("b", 1200)},
		{"{?a:5000}", strings.Repeat("c", 3000), strings.Repeat("c", 3000)},
	}

	for _, c := range cases {
		tpl := draft7.MustParse(c.pattern)
		uri := tpl.Expand(draft7.Values{"a": c.value})
		vars, ok, err := tpl.Extract(uri)
		if err != nil || !ok {
			t.Fatalf("draft7.MustParse(%q).Extract(<%d bytes>) = (%v, %v), want (true, nil)", c.pattern, len(uri), ok, err)
		}
		if got, _ := vars["a"].(string); got != c.want {
			t.Errorf("draft7.MustParse(%q).Extract() a has %d bytes, want %d", c.pattern, len(got), len(c.want))
		}
	}
}

func TestTemplate_Extract_Error(t *testing.T) {
	t.Parallel()

	// every expansion is matched and split again without a consistency error
	vals := []draft7.Values{
		{"v": "a,b", "w": []string{"", ""}},
		{"v": draft7.Pairs{{"k", "a&b"}, {"", "x"}}, "w": ",,"},
		{"v": "=", "w": draft7.Pairs{{"k.", ""}}},
		{"v": []string{"a=b", "c"}, "w": "%"},
	}
	patterns := []string{"{v*,w}", "{+v*,w*}", "{#v*}", "{.v*,w*}", "{/v*}", "{;v*,w}", "{?v*,w*}", "{&w*,v*}"}

	for _, p := range patterns {
		tpl := draft7.MustParse(p)
		for _, v := range vals {
			uri := tpl.Expand(v)
			if _, _, err := tpl.Extract(uri); errors.Is(err, draft7.ErrInternalConsistency) {
				t.Errorf("draft7.MustParse(%q).Extract(%q) error = %v, want nil", p, uri, err)
			}
		}
	}
}

func BenchmarkTemplate_Extract(b *testing.B) {
	tpl := draft7.MustParse("http://example.com/{+path}/here{?x,y,list*}")
	uri := tpl.Expand(draftVals)

	for b.Loop() {
		if _, ok, err := tpl.Extract(uri); !ok || err != nil {
			b.Fatalf("tpl.Extract(%q) = (%v, %v), want (true, nil)", uri, ok, err)
		}
	}
}
