package grammar

import (
	"bytes"

	"github.com/bmaland/uri-template/internal/constraints"
)

// Unescape unescapes s by converting each 3-byte encoded substring of the form "% HEXDIG HEXDIG" into the hex-decoded byte.
func Unescape[T constraints.Byteseq](s T) T {
	if len(s) == 0 {
		return s
	}
	if bytes.IndexByte([]byte(s), '%') < 0 {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if IsPctEncoded(s, i) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		} else {
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// Escape escapes s by replacing each char matched by shouldEscape callback to the hex form "% HEXDIG HEXDIG".
// Existing "% HEXDIG HEXDIG" triples are kept as is only when shouldEscape does not match '%',
// any other '%' is always escaped.
// Nil shouldEscape escapes everything except the RFC 3986 unreserved characters.
func Escape[T constraints.Byteseq](s T, shouldEscape func(c byte) bool) T {
	if len(s) == 0 {
		return s
	}

	if shouldEscape == nil {
		shouldEscape = func(c byte) bool { return !IsCharUnreserved(c) }
	}
	keepPct := !shouldEscape('%')

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case keepPct && IsPctEncoded(s, i):
			b.WriteByte(s[i])
			b.WriteByte(s[i+1])
			b.WriteByte(s[i+2])
			i += 2
		case s[i] == '%' || shouldEscape(s[i]):
			b.WriteByte('%')
			b.WriteByte(upperhex[s[i]>>4])
			b.WriteByte(upperhex[s[i]&15])
		default:
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

const upperhex = "0123456789ABCDEF"

// IsPctEncoded reports whether s holds a "% HEXDIG HEXDIG" triple at i.
func IsPctEncoded[T constraints.Byteseq](s T, i int) bool {
	return i >= 0 && i+2 < len(s) && s[i] == '%' && IsHexChar(s[i+1]) && IsHexChar(s[i+2])
}

// IsHexChar checks HEXDIG rule.
func IsHexChar(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// IsAlphaChar checks ALPHA rule.
func IsAlphaChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// IsDigitChar checks DIGIT rule.
func IsDigitChar(c byte) bool {
	return '0' <= c && c <= '9'
}

// IsAlphanumChar checks alphanum rule.
func IsAlphanumChar(c byte) bool {
	return IsAlphaChar(c) || IsDigitChar(c)
}

// IsCharUnreserved checks RFC 3986 unreserved rule.
func IsCharUnreserved(c byte) bool {
	return c == '-' || c == '.' || c == '_' || c == '~' || IsAlphanumChar(c)
}

var reservedChars = [256]bool{
	':': true, '/': true, '?': true, '#': true, '[': true, ']': true, '@': true,
	'!': true, '$': true, '&': true, '\'': true, '(': true, ')': true,
	'*': true, '+': true, ',': true, ';': true, '=': true,
}

// IsCharReserved checks RFC 3986 reserved rule (gen-delims and sub-delims).
func IsCharReserved(c byte) bool {
	return reservedChars[c]
}

// IsVarchar checks varchar rule without the pct-encoded alternative.
func IsVarchar(c byte) bool {
	return c == '_' || IsAlphaChar(c)
}
