package grammar_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/bmaland/uri-template/internal/grammar"
)

// partStrings renders parts as "{...}" for expressions and "'...'" for literal runs.
func partStrings(parts []grammar.TemplatePart) []string {
	var out []string
	for _, p := range parts {
		if p.Expr != nil {
			out = append(out, p.Expr.String())
		} else {
			out = append(out, "'"+string(p.Literal)+"'")
		}
	}
	return out
}

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		input   string
		want    []string
		offset  int
		wantErr error
	}{
		{"empty", "", nil, 0, nil},
		{"unclosed", "{foo", nil, 0, grammar.ErrMalformedInput},
		{"tail", "/foo/{bar", nil, 5, grammar.ErrMalformedInput},
		{"space", "/a b", nil, 2, grammar.ErrMalformedInput},
		{"ok", "/foo/{bar}", []string{"'/foo/'", "{bar}"}, 0, nil},
		{"merged literals", "a%20b{x}{y}c", []string{"'a%20b'", "{x}", "{y}", "'c'"}, 0, nil},
		{"varspecs", "{?a,b*,c:3}", []string{"{?a,b*,c:3}"}, 0, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			parts, err := grammar.ParseTemplate(c.input)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("grammar.ParseTemplate(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.input, err, c.wantErr, diff)
			}
			if err != nil {
				var oe *grammar.OffsetError
				if !errors.As(err, &oe) {
					t.Fatalf("grammar.ParseTemplate(%q) error type = %T, want *grammar.OffsetError", c.input, err)
				}
				if oe.Offset != c.offset {
					t.Errorf("grammar.ParseTemplate(%q) offset = %d, want %d", c.input, oe.Offset, c.offset)
				}
				return
			}
			if diff := cmp.Diff(partStrings(parts), c.want); diff != "" {
				t.Errorf("grammar.ParseTemplate(%q) = %q, want %q\ndiff (-got +want):\n%v", c.input, partStrings(parts), c.want, diff)
			}
		})
	}
}

func TestParseTemplate_Varspecs(t *testing.T) {
	t.Parallel()

	parts, err := grammar.ParseTemplate([]byte("{?a,b*,c:3}"))
	if err != nil {
		t.Fatalf("grammar.ParseTemplate() error = %v, want nil", err)
	}
	n := parts[0].Expr
	if got, want := grammar.MustGetNode(n, "operator").String(), "?"; got != want {
		t.Errorf("operator = %q, want %q", got, want)
	}
	var names []string
	for _, vs := range n.GetNodes("varspec") {
		names = append(names, grammar.MustGetNode(vs, "varname").String())
	}
	if diff := cmp.Diff(names, []string{"a", "b", "c"}); diff != "" {
		t.Errorf("varnames = %q, want [a b c]\ndiff (-got +want):\n%v", names, diff)
	}
}

func TestScanTemplate_Stop(t *testing.T) {
	t.Parallel()

	var seen int
	n := grammar.ScanTemplate("/a{b}/c{d}", func(grammar.TemplatePart) bool {
		seen++
		return seen < 2
	})
	if seen != 2 || n != 2 {
		t.Errorf("grammar.ScanTemplate() stopped after %d parts at %d, want 2 parts at 2", seen, n)
	}
}

func TestParseTemplate_Long(t *testing.T) {
	t.Parallel()

	in := strings.Repeat("ab{x}", 64*1024/5)
	parts, err := grammar.ParseTemplate(in)
	if err != nil {
		t.Fatalf("grammar.ParseTemplate() error = %v, want nil", err)
	}
	if got, want := len(parts), 2*(64*1024/5); got != want {
		t.Errorf("len(grammar.ParseTemplate()) = %d, want %d", got, want)
	}

	lit := strings.Repeat("abcde", 64*1024/5)
	if !grammar.IsTemplate(lit) {
		t.Errorf("grammar.IsTemplate(<%d literal bytes>) = false, want true", len(lit))
	}
}

func BenchmarkScanTemplate(b *testing.B) {
	in := strings.Repeat("/ab{x}%20", 8*1024)
	for b.Loop() {
		grammar.ScanTemplate(in, func(grammar.TemplatePart) bool { return true })
	}
}
