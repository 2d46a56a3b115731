package grammar

import (
	"fmt"

	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/bmaland/uri-template/internal/constraints"
	"github.com/bmaland/uri-template/internal/errorutil"
)

const ErrMalformedInput Error = "malformed input"

// OffsetError is returned when the input is matched by a rule only up to Offset.
type OffsetError struct {
	Offset int
	Err    error
}

func (e *OffsetError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

func (e *OffsetError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (*OffsetError) Grammar() bool { return true }

// TemplatePart is a piece of a template found by [ScanTemplate].
// Expr is set for an expression, Literal holds a run of literal characters
// and pct-encoded octets otherwise.
type TemplatePart struct {
	Expr    *abnf.Node
	Literal []byte
}

// ScanTemplate scans s from left to right. At each position it tries the expression rule
// and then a single literal unit, adjacent literal units are yielded as one part.
// The scan stops when yield returns false.
// It returns the offset of the first byte matched by neither rule, len(s) if the whole s matched.
func ScanTemplate[T constraints.Byteseq](s T, yield func(TemplatePart) bool) int {
	in := []byte(s)

	ns := abnf.NewNodes()
	defer ns.Free()

	var pos, litStart int
	flush := func() bool {
		if litStart == pos {
			return true
		}
		return yield(TemplatePart{Literal: in[litStart:pos]})
	}

	for pos < len(in) {
		ns.Clear()
		if in[pos] == '{' {
			if err := expression(in, uint(pos), ns); err != nil {
				break
			}
			n := ns.Best()
			if !flush() || !yield(TemplatePart{Expr: n}) {
				return pos
			}
			pos += n.Len()
			litStart = pos
			continue
		}
		if err := literalUnit(in, uint(pos), ns); err != nil {
			break
		}
		pos += ns.Best().Len()
	}
	flush()
	return pos
}

// ParseTemplate splits s into expressions and literal runs.
// An empty s yields no parts. An [*OffsetError] is returned if some byte of s
// is matched by neither rule.
func ParseTemplate[T constraints.Byteseq](s T) ([]TemplatePart, error) {
	var parts []TemplatePart
	n := ScanTemplate(s, func(p TemplatePart) bool {
		parts = append(parts, p)
		return true
	})
	if n < len(s) {
		return nil, errtrace.Wrap(&OffsetError{
			Offset: n,
			Err:    errorutil.NewWrapperError(ErrMalformedInput, "unmatched byte %q", s[n]),
		})
	}
	return parts, nil
}
