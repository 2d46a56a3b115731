// Package ioutil provides the writer used to render templates and expansions to an [io.Writer].
package ioutil

import (
	"io"
	"sync"

	"braces.dev/errtrace"
)

// Renderer writes itself to w and reports the number of bytes written.
type Renderer interface {
	RenderTo(w io.Writer) (int, error)
}

// RenderWriter counts the bytes written to the underlying writer and remembers the first error.
// After an error every call is a no-op, so writes can be chained and checked once with [RenderWriter.Result].
type RenderWriter struct {
	w   io.Writer
	num int
	err error
}

// NewRenderWriter creates a new RenderWriter wrapping w.
func NewRenderWriter(w io.Writer) *RenderWriter {
	return &RenderWriter{w: w}
}

func (rw *RenderWriter) Write(p []byte) (int, error) {
	if rw.err != nil {
		return 0, errtrace.Wrap(rw.err)
	}
	n, err := rw.w.Write(p)
	rw.num += n
	if err != nil {
		rw.err = err
		return n, errtrace.Wrap(err)
	}
	return n, nil
}

// Text writes s.
func (rw *RenderWriter) Text(s string) *RenderWriter {
	if rw.err != nil || s == "" {
		return rw
	}
	n, err := io.WriteString(rw.w, s)
	rw.num += n
	if err != nil {
		rw.err = err
	}
	return rw
}

// Render writes r.
func (rw *RenderWriter) Render(r Renderer) *RenderWriter {
	if rw.err != nil || r == nil {
		return rw
	}
	n, err := r.RenderTo(rw.w)
	rw.num += n
	if err != nil {
		rw.err = err
	}
	return rw
}

// Result returns the number of bytes written and the first write error.
func (rw *RenderWriter) Result() (int, error) {
	if rw.err != nil {
		return rw.num, errtrace.Wrap(rw.err)
	}
	return rw.num, nil
}

var rndWrtPool = &sync.Pool{
	New: func() any { return &RenderWriter{} },
}

// GetRenderWriter returns a pooled RenderWriter wrapping w.
// It must be returned with [FreeRenderWriter].
func GetRenderWriter(w io.Writer) *RenderWriter {
	rw := rndWrtPool.Get().(*RenderWriter) //nolint:forcetypeassert
	rw.w = w
	return rw
}

func FreeRenderWriter(rw *RenderWriter) {
	rw.w = nil
	rw.num = 0
	rw.err = nil
	rndWrtPool.Put(rw)
}
