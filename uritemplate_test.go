package uritemplate_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	uritemplate "github.com/bmaland/uri-template"
	"github.com/bmaland/uri-template/draft7"
)

func TestExpand(t *testing.T) {
	t.Parallel()

	cases := []struct {
		pattern string
		vals    uritemplate.Values
		want    string
		wantErr error
	}{
		{"{foo}", uritemplate.Values{"foo": "bar"}, "bar", nil},
		{"{?args*}", uritemplate.Values{"args": draft7.Pairs{{Key: "key", Value: "value"}}}, "?key=value", nil},
		{"{undef}", uritemplate.Values{}, "", nil},
		{"{foo", nil, "", draft7.ErrInvalidPattern},
	}

	for _, c := range cases {
		got, err := uritemplate.Expand(c.pattern, c.vals)
		if !errors.Is(err, c.wantErr) {
			t.Errorf("uritemplate.Expand(%q) error = %v, want %v", c.pattern, err, c.wantErr)
		}
		if got != c.want {
			t.Errorf("uritemplate.Expand(%q) = %q, want %q", c.pattern, got, c.want)
		}
	}
}

func TestExtract(t *testing.T) {
	t.Parallel()

	got, ok, err := uritemplate.Extract("{&args*}", "&a=1&b=2")
	if err != nil || !ok {
		t.Fatalf("uritemplate.Extract() = (%v, %v), want (true, nil)", ok, err)
	}
	want := map[string]any{"args": map[string]string{"a": "1", "b": "2"}}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("uritemplate.Extract() = %v, want %v\ndiff (-got +want):\n%v", got, want, diff)
	}

	if _, _, err := uritemplate.Extract("{foo", "x"); !errors.Is(err, draft7.ErrInvalidPattern) {
		t.Errorf("uritemplate.Extract({foo) error = %v, want %v", err, draft7.ErrInvalidPattern)
	}
}

func TestJoin(t *testing.T) {
	t.Parallel()

	tpl, err := uritemplate.Join("/xy/", "/z/", "{/id}")
	if err != nil {
		t.Fatalf("uritemplate.Join() error = %v, want nil", err)
	}
	if got, want := tpl.Pattern(), "/xy/z{/id}"; got != want {
		t.Errorf("uritemplate.Join() = %q, want %q", got, want)
	}
	if _, err := uritemplate.Join("{x"); !errors.Is(err, draft7.ErrInvalidPattern) {
		t.Errorf("uritemplate.Join({x) error = %v, want %v", err, draft7.ErrInvalidPattern)
	}
	if !uritemplate.Valid("/a{b}") || uritemplate.Valid("{foo") {
		t.Errorf("uritemplate.Valid() mismatch")
	}
}

func Example() {
	tpl := uritemplate.MustParse("/users/{id}{?fields*}")
	fmt.Println(tpl.Expand(uritemplate.Values{"id": 7, "fields": []string{"name", "email"}}))

	vars, ok, _ := tpl.Extract("/users/7?name&email")
	fmt.Println(ok, vars["id"], vars["fields"])
	// Output:
	// /users/7?name&email
	// true 7 [name email]
}
