// Package errorutil declares the sentinel errors and error combinators of the module.
package errorutil

//go:generate go tool errtrace -w .

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmaland/uri-template/internal/util"
)

// Error is a constant sentinel error.
type Error string

func (s Error) Error() string { return string(s) }

// ErrInvalidArgument is returned for arguments and inputs that cannot be used.
const ErrInvalidArgument Error = "invalid argument"

// NewWrapperError wraps sentinel with the details passed in args.
// args is either empty, a single error, or a format string followed by its operands.
// An error that already matches sentinel is returned unchanged.
func NewWrapperError(sentinel error, args ...any) error {
	if len(args) == 0 {
		return sentinel //errtrace:skip
	}

	var detail error
	switch v := args[0].(type) {
	case error:
		if errors.Is(v, sentinel) {
			return v //errtrace:skip
		}
		detail = v
	case string:
		if len(args) > 1 {
			v = fmt.Sprintf(v, args[1:]...)
		}
		return fmt.Errorf("%w: %s", sentinel, v) //errtrace:skip
	default:
		return sentinel //errtrace:skip
	}
	return fmt.Errorf("%w: %w", sentinel, detail) //errtrace:skip
}

// NewInvalidArgumentError is [NewWrapperError] with [ErrInvalidArgument].
func NewInvalidArgumentError(args ...any) error {
	return NewWrapperError(ErrInvalidArgument, args...) //errtrace:skip
}

// Join joins the non-nil errors into one error.
// It returns nil when all errors are nil.
func Join(errs ...error) error {
	return JoinPrefix("", errs...) //errtrace:skip
}

// JoinPrefix is like [Join], but the resulting error message starts with prefix.
func JoinPrefix(prefix string, errs ...error) error {
	errs = compact(errs)
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		if prefix == "" {
			return errs[0] //errtrace:skip
		}
		return fmt.Errorf("%s: %w", strings.TrimRight(prefix, ":"), errs[0]) //errtrace:skip
	}
	return &multiError{prefix: prefix, errs: errs} //errtrace:skip
}

func compact(errs []error) []error {
	var n int
	for _, err := range errs {
		if err != nil {
			n++
		}
	}
	if n == len(errs) {
		return errs
	}
	out := make([]error, 0, n)
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}

type multiError struct {
	prefix string
	errs   []error
}

func (e *multiError) Error() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	sb.WriteString(e.prefix)
	e.writeErrors(sb, "")

	return sb.String()
}

func (e *multiError) writeErrors(sb *strings.Builder, indent string) {
	for _, err := range e.errs {
		sb.WriteString("\n")
		sb.WriteString(indent)
		sb.WriteString("  - ")

		if nested, ok := err.(*multiError); ok { //nolint:errorlint
			label := nested.prefix
			if label == "" {
				label = "multiple errors"
			}
			sb.WriteString(label)
			nested.writeErrors(sb, indent+"  ")
			continue
		}

		msg := err.Error()
		if strings.Contains(msg, "\n") {
			msg = strings.ReplaceAll(msg, "\n", "\n"+indent+"    ")
		}
		sb.WriteString(msg)
	}
}

func (e *multiError) Unwrap() []error { return e.errs }
