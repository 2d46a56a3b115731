// Package router selects the most specific URI template matching a URI.
//
// Templates are ranked by the number of their static characters, the template with more
// literal text wins. Templates with the same rank are tried in the order they were added:
//
//	r := router.New[string](nil)
//	r.AddPattern("/users/{id}", "user")
//	r.AddPattern("/users/me", "me")
//	res, ok, _ := r.Match(ctx, "/users/me") // res.Value == "me"
package router

//go:generate go tool errtrace -w .
//go:generate go tool mockgen -destination=../internal/testutil/tplmock/template.go -package=tplmock . Template

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"braces.dev/errtrace"

	"github.com/bmaland/uri-template/draft7"
	"github.com/bmaland/uri-template/internal/errorutil"
	"github.com/bmaland/uri-template/internal/log"
)

const ErrInvalidArgument = errorutil.ErrInvalidArgument

// Template is a URI template the router can select.
// It is implemented by [*draft7.Template].
type Template interface {
	Pattern() string
	StaticCharacters() int
	Extract(uri string) (vars map[string]any, ok bool, err error)
}

var _ Template = (*draft7.Template)(nil)

// Options contains router options.
type Options struct {
	// Log is a logger used to log route attempts.
	// If nil, [log.Noop] is used.
	Log *slog.Logger
}

func (o *Options) log() *slog.Logger {
	if o == nil || o.Log == nil {
		return log.Noop
	}
	return o.Log
}

// Route binds a template to a value.
type Route[T any] struct {
	Template Template
	Value    T
}

// Result is a matched route with the variables extracted from the URI.
type Result[T any] struct {
	Route[T]
	Vars map[string]any
}

// Router selects the most specific route matching a URI.
// It is safe for concurrent use.
type Router[T any] struct {
	mu     sync.RWMutex
	routes []Route[T]
	log    *slog.Logger
}

// New creates a new [Router].
// Options are optional, default options are used if nil.
func New[T any](opts *Options) *Router[T] {
	return &Router[T]{log: opts.log()}
}

// Add adds the template bound to the value.
func (r *Router[T]) Add(tpl Template, val T) error {
	if t, ok := tpl.(*draft7.Template); tpl == nil || ok && t == nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("nil template"))
	}

	rank := tpl.StaticCharacters()
	r.mu.Lock()
	i := slices.IndexFunc(r.routes, func(rt Route[T]) bool { return rt.Template.StaticCharacters() < rank })
	if i < 0 {
		i = len(r.routes)
	}
	// matchers iterate a snapshot of the slice, so it is never modified in place
	routes := make([]Route[T], 0, len(r.routes)+1)
	routes = append(routes, r.routes[:i]...)
	routes = append(routes, Route[T]{tpl, val})
	r.routes = append(routes, r.routes[i:]...)
	r.mu.Unlock()

	r.log.LogAttrs(context.Background(), slog.LevelDebug, "route added",
		slog.String("pattern", tpl.Pattern()),
		slog.Int("static_characters", rank),
		slog.Int("position", i),
	)
	return nil
}

// AddPattern parses the pattern as a [draft7.Template] and adds it bound to the value.
func (r *Router[T]) AddPattern(pattern string, val T) error {
	tpl, err := draft7.Parse(pattern)
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(r.Add(tpl, val))
}

// Match returns the first route in rank order whose template matches the URI.
// ok is false if no route matches.
// An extraction error stops the search and is returned.
func (r *Router[T]) Match(ctx context.Context, uri string) (_ Result[T], ok bool, _ error) {
	r.mu.RLock()
	routes := r.routes
	r.mu.RUnlock()

	for i, rt := range routes {
		vars, ok, err := rt.Template.Extract(uri)
		if err != nil {
			r.log.LogAttrs(ctx, slog.LevelWarn, "route failed",
				slog.Any("uri", log.StringValue(uri)),
				slog.String("pattern", rt.Template.Pattern()),
				slog.Any("error", err),
			)
			return Result[T]{}, false, errtrace.Wrap(err)
		}
		r.log.LogAttrs(ctx, slog.LevelDebug, "route attempt",
			slog.Any("uri", log.StringValue(uri)),
			slog.String("pattern", rt.Template.Pattern()),
			slog.Int("position", i),
			slog.Bool("matched", ok),
		)
		if ok {
			r.log.LogAttrs(ctx, slog.LevelDebug, "route matched",
				slog.String("pattern", rt.Template.Pattern()),
				slog.Any("vars", log.FmtValue(vars, false)),
			)
			return Result[T]{Route: rt, Vars: vars}, true, nil
		}
	}
	return Result[T]{}, false, nil
}

// Routes returns the routes in rank order.
func (r *Router[T]) Routes() []Route[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.routes)
}

// Len returns the number of routes.
func (r *Router[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.routes)
}
