package log_test

import (
	"bytes"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"testing"

	"github.com/bmaland/uri-template/internal/log"
)

type fakeTemplate struct{}

func (fakeTemplate) Pattern() string       { return "/users/{id}" }
func (fakeTemplate) Level() int            { return 1 }
func (fakeTemplate) StaticCharacters() int { return 7 }

func TestNewDef(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := log.NewDef(&buf, slog.LevelInfo)
	l.Debug("hidden")
	l.Info("shown",
		slog.Any("tpl", fakeTemplate{}),
		slog.Any("rx", regexp.MustCompile(`^(a)(b)$`)),
		slog.Any("error", errors.New("boom")),
		slog.Any("uri", log.StringValue([]byte("/users/1"))),
		slog.Any("vars", log.FmtValue(map[string]any{"id": "1"}, false)),
	)

	got := buf.String()
	if strings.Contains(got, "\x1b[") {
		t.Errorf("log = %q, want no color codes for a non-terminal writer", got)
	}
	if strings.Contains(got, "hidden") {
		t.Errorf("log = %q, want no debug records", got)
	}
	for _, want := range []string{"shown", "/users/{id}", "tpl.static_chars=7", "rx.groups=2", "boom", "/users/1", "map[id:1]"} {
		if !strings.Contains(got, want) {
			t.Errorf("log = %q, want to contain %q", got, want)
		}
	}
}

func TestNewDev(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log.NewDev(&buf, slog.LevelDebug).Debug("dev record", slog.Any("v", log.FmtValue([]int{1}, true)))
	got := buf.String()
	if !strings.Contains(got, "dev record") {
		t.Errorf("log = %q, want to contain %q", got, "dev record")
	}
	if strings.Contains(got, "\x1b[") {
		t.Errorf("log = %q, want no color codes for a non-terminal writer", got)
	}
}

func TestNoop(t *testing.T) {
	t.Parallel()

	if log.Noop.Enabled(t.Context(), slog.LevelError) {
		t.Error("log.Noop.Enabled() = true, want false")
	}
	log.Noop.With("k", "v").WithGroup("g").Error("dropped")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"WARN", slog.LevelWarn, false},
		{"info+2", slog.LevelInfo + 2, false},
		{"loud", 0, true},
	}

	for _, c := range cases {
		got, err := log.ParseLevel(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("log.ParseLevel(%q) error = %v, want error %v", c.in, err, c.wantErr)
		}
		if got != c.want {
			t.Errorf("log.ParseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
