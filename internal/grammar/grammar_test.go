package grammar_test

import (
	"testing"

	"github.com/bmaland/uri-template/internal/grammar"
)

func TestIsTemplate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want bool
	}{
		{"empty", "", true},
		{"literal", "/foo/bar", true},
		{"pct literal", "/foo%20bar", true},
		{"broken pct", "/foo%2", false},
		{"simple", "{foo}", true},
		{"operators", "{+a}{#b}{.c}{/d}{;e}{?f}{&g}", true},
		{"varspecs", "{foo*,bar:12,%2Abaz}", true},
		{"dotted name", "{foo.bar}", true},
		{"leading dot", "{.foo}", true},
		{"digit name", "{1}", false},
		{"unclosed", "{foo", false},
		{"empty expression", "{}", false},
		{"bad operator", "{!foo}", false},
		{"space", "/foo bar", false},
		{"pipe", "a|b", false},
		{"utf8", "/café/{x}", true},
		{"c1 control", "/\u0085", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.IsTemplate(c.str), c.want; got != want {
				t.Errorf("grammar.IsTemplate(%q) = %v, want %v", c.str, got, want)
			}
		})
	}
}

func TestTemplatePrefix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		str  string
		want int
	}{
		{"", 0},
		{"{foo", 0},
		{"/a/{foo", 3},
		{"/a/{b}^", 6},
		{"/a/{b}", 6},
	}

	for _, c := range cases {
		if got, want := grammar.TemplatePrefix(c.str), c.want; got != want {
			t.Errorf("grammar.TemplatePrefix(%q) = %d, want %d", c.str, got, want)
		}
	}
}
