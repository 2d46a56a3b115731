package draft7

import (
	"github.com/bmaland/uri-template/internal/grammar"
)

// Percent triple without a counted repeat: package regexp limits
// the product of nested repeat counts to 1000.
const pctRx = `%[0-9A-Fa-f][0-9A-Fa-f]`

// charClass describes which characters an expression writes unencoded
// and how one unit of them is matched.
type charClass struct {
	name       string
	allowed    [256]bool
	unitRx     string
	grabsComma bool
}

func newCharClass(name, rxSet string, grabsComma bool, extra func(c byte) bool) *charClass {
	cc := &charClass{
		name:       name,
		unitRx:     `(?:[` + rxSet + `]|` + pctRx + `)`,
		grabsComma: grabsComma,
	}
	for c := range 256 {
		b := byte(c)
		cc.allowed[c] = grammar.IsAlphanumChar(b) || b == '-' || b == '.' || b == '_' || extra != nil && extra(b)
	}
	return cc
}

var (
	// letters, digits and "-._"
	classUnreserved = newCharClass("unreserved", `A-Za-z0-9\-._`, false, nil)
	// unreserved plus the reserved set and existing percent triples
	classReserved = newCharClass(
		"unreserved+reserved+pct",
		`A-Za-z0-9\-._:/?#\[\]@!$&'()*+,;=`,
		true,
		func(c byte) bool { return c == '%' || grammar.IsCharReserved(c) },
	)
)

// Variable names recovered as keys from extracted text: the first unit is a letter,
// a digit, an underscore or a percent triple; dots are allowed after it.
const varnameRx = `(?:[A-Za-z0-9_]|` + pctRx + `)(?:[A-Za-z0-9_.]|` + pctRx + `)*?`

func (cc *charClass) shouldEscape(c byte) bool { return !cc.allowed[c] }

// encode percent-encodes every byte that is not in the class.
// Percent triples survive only in classes that leave '%' unencoded.
func (cc *charClass) encode(s string) string {
	return grammar.Escape(s, cc.shouldEscape)
}

// unitLen returns the length of the class unit starting at s[i]
// or 0 if there is none. A percent triple is a single unit.
func (cc *charClass) unitLen(s string, i int) int {
	if i >= len(s) {
		return 0
	}
	if grammar.IsPctEncoded(s, i) {
		return 3
	}
	if s[i] != '%' && cc.allowed[s[i]] {
		return 1
	}
	return 0
}

// cut truncates the encoded s to at most n class units.
// Percent triples are never split. Non-positive n leaves s unchanged.
func (cc *charClass) cut(s string, n int) string {
	if n <= 0 {
		return s
	}
	var i, units int
	for i < len(s) && units < n {
		if grammar.IsPctEncoded(s, i) {
			i += 3
		} else {
			i++
		}
		units++
	}
	return s[:i]
}

func (cc *charClass) String() string { return cc.name }

// varnameLen returns the length of the variable name starting at s[i], 0 if there is none.
func varnameLen(s string, i int) int {
	j := i
	for j < len(s) {
		switch c := s[j]; {
		case grammar.IsPctEncoded(s, j):
			j += 3
		case grammar.IsVarchar(c) || grammar.IsDigitChar(c):
			j++
		case c == '.' && j > i:
			j++
		default:
			return j - i
		}
	}
	return j - i
}
