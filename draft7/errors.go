package draft7

import (
	"fmt"

	"github.com/bmaland/uri-template/internal/errorutil"
	"github.com/bmaland/uri-template/internal/util"
)

// Common errors.
const (
	ErrInvalidArgument = errorutil.ErrInvalidArgument
	// ErrInvalidPattern is returned when a pattern does not match the template syntax.
	ErrInvalidPattern Error = "invalid pattern"
	// ErrJoinAbsolute is returned when an absolute template is joined as a path suffix.
	ErrJoinAbsolute Error = "cannot join an absolute template"
	// ErrMatcherMismatch is returned when a match was produced by a different matcher.
	ErrMatcherMismatch Error = "match does not belong to this template"
	// ErrInternalConsistency is returned when text accepted by the matcher cannot be split again.
	// It is a defect, never a normal outcome.
	ErrInternalConsistency Error = "internal consistency error"
)

// Error represents a template error.
// See [errorutil.Error].
type Error = errorutil.Error

// NewInvalidArgumentError creates a new error with [ErrInvalidArgument] or
// wraps provided error with [ErrInvalidArgument].
func NewInvalidArgumentError(args ...any) error {
	return errorutil.NewInvalidArgumentError(args...) //errtrace:skip
}

// ParseError is returned by [Parse] when the pattern cannot be tokenized.
// Offset is the byte offset of the first unparsable character.
type ParseError struct {
	Pattern string
	Offset  int
}

func (err *ParseError) Error() string {
	if err == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %q at offset %d: unparsed %q",
		ErrInvalidPattern, util.Ellipsis(err.Pattern, 64), err.Offset, util.Ellipsis(err.Rest(), 32))
}

// Rest returns the unparsed suffix of the pattern.
func (err *ParseError) Rest() string {
	if err == nil || err.Offset < 0 || err.Offset > len(err.Pattern) {
		return ""
	}
	return err.Pattern[err.Offset:]
}

func (err *ParseError) Unwrap() error { return ErrInvalidPattern }

func (*ParseError) Grammar() bool { return true }

func newInternalConsistencyErr(args ...any) error {
	return errorutil.NewWrapperError(ErrInternalConsistency, args...) //errtrace:skip
}
