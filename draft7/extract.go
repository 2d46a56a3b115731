package draft7

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/bmaland/uri-template/internal/grammar"
	"github.com/bmaland/uri-template/internal/util"
)

// Match is a successful match of a URI against a template matcher.
type Match struct {
	source string
	uri    string
	slots  []slotMatch
}

type slotMatch struct {
	text string
	ok   bool
}

// Source returns the matcher source the match was produced by.
func (m *Match) Source() string {
	if m == nil {
		return ""
	}
	return m.source
}

// URI returns the matched URI.
func (m *Match) URI() string {
	if m == nil {
		return ""
	}
	return m.uri
}

// Len returns the number of variable slots.
func (m *Match) Len() int {
	if m == nil {
		return 0
	}
	return len(m.slots)
}

// Slot returns the text captured by the i-th variable slot.
// ok is false when the slot did not participate in the match.
func (m *Match) Slot(i int) (text string, ok bool) {
	if m == nil || i < 0 || i >= len(m.slots) {
		return "", false
	}
	return m.slots[i].text, m.slots[i].ok
}

// extractMatch extracts one variable per slot, in slot order.
func extractMatch(tokens []Token, m *Match) (Vars, error) {
	vars := make(Vars, 0, m.Len())
	var slot int
	for _, tok := range tokens {
		expr, ok := tok.(*Expression)
		if !ok {
			continue
		}
		for i := range expr.Vars {
			text, ok := m.Slot(slot)
			slot++

			v, err := expr.extract(i, text, ok)
			if err != nil {
				return nil, errtrace.Wrap(err)
			}
			vars = append(vars, v)
		}
	}
	return vars, nil
}

// extract decodes the text captured for the i-th variable of the expression.
func (e *Expression) extract(i int, text string, matched bool) (Var, error) {
	vs := e.Vars[i]
	v := Var{Name: vs.Name}
	if !matched {
		return v, nil
	}

	switch {
	case vs.Explode:
		val, err := e.splitExploded(text)
		if err != nil {
			return v, errtrace.Wrap(err)
		}
		v.Value = val
	case e.Op.Named():
		// "=value" or "" when the connector is omitted for an empty value
		if len(text) > 0 {
			text = text[len(pairConnector):]
		}
		v.Value = e.decodeValue(text)
	default:
		v.Value = e.decodeValue(text)
	}
	return v, nil
}

// decodeValue splits a non-exploded value on commas and decodes the items.
// It returns "" for no items, a string for one item and []string for more.
func (e *Expression) decodeValue(s string) any {
	var items []string
	if e.Op.def().class.grabsComma {
		items = splitCommaRuns(s)
	} else {
		items = strings.Split(s, ",")
		for i := range items {
			items[i] = grammar.Unescape(items[i])
		}
	}

	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return items
	}
}

// splitCommaRuns splits s for classes that may contain a raw comma.
// A single comma is a delimiter, a run of N > 1 commas is one item of N-1 commas,
// empty items are dropped.
func splitCommaRuns(s string) []string {
	var items []string
	for len(s) > 0 {
		if s[0] == ',' {
			n := 1
			for n < len(s) && s[n] == ',' {
				n++
			}
			if n > 1 {
				items = append(items, s[1:n])
			}
			s = s[n:]
			continue
		}
		end := strings.IndexByte(s, ',')
		if end < 0 {
			end = len(s)
		}
		items = append(items, grammar.Unescape(s[:end]))
		s = s[end:]
	}
	return items
}

// chunk is one element of an exploded value.
type chunk struct {
	key    string
	value  string
	hasKey bool
}

// splitExploded splits the text of an exploded slot into its elements.
// It returns [Pairs] when any element carries a "name=" key, a []string otherwise.
func (e *Expression) splitExploded(text string) (any, error) {
	var (
		chunks []chunk
		keyed  bool
		rest   = text
	)
	for len(rest) > 0 {
		c, n, trailing := e.nextChunk(rest)
		if n == 0 {
			return nil, errtrace.Wrap(newInternalConsistencyErr(
				"cannot split %q of %q at %q", util.Ellipsis(text, 64), e.String(), util.Ellipsis(rest, 32)))
		}
		chunks = append(chunks, c)
		keyed = keyed || c.hasKey
		rest = rest[n:]
		if trailing {
			chunks = append(chunks, chunk{})
		}
	}

	if !keyed {
		list := make([]string, len(chunks))
		for i, c := range chunks {
			list[i] = grammar.Unescape(c.value)
		}
		return list, nil
	}

	pairs := make(Pairs, 0, len(chunks))
	for _, c := range chunks {
		if c.hasKey {
			pairs = append(pairs, Pair{grammar.Unescape(c.key), grammar.Unescape(c.value)})
		} else if c.value != "" {
			pairs = append(pairs, Pair{Key: grammar.Unescape(c.value)})
		}
	}
	return pairs, nil
}

// nextChunk reads one element from the front of s: an optional leading separator,
// an optional "name=" key and a value of class units. The value ends at the end of s
// or at a separator. A single separator is consumed, a doubled one is left for the next chunk.
// n is the number of bytes consumed, 0 if nothing could be read.
// trailing reports that the consumed separator was the last thing in s.
func (e *Expression) nextChunk(s string) (c chunk, n int, trailing bool) {
	sep := e.Op.Separator()

	start := 0
	if strings.HasPrefix(s, sep) {
		start = len(sep)
	}

	if kl := varnameLen(s, start); kl > 0 && strings.HasPrefix(s[start+kl:], pairConnector) {
		vstart := start + kl + len(pairConnector)
		if end, next, ok := e.scanValue(s, vstart); ok {
			return chunk{key: s[start : start+kl], value: s[vstart:end], hasKey: true}, next, next == len(s) && next > end
		}
	}
	if end, next, ok := e.scanValue(s, start); ok && next > 0 {
		return chunk{value: s[start:end]}, next, next == len(s) && next > end
	}
	return chunk{}, 0, false
}

// scanValue scans class units from i up to the value terminator.
// end is the end of the value, next is the position after the consumed separator.
func (e *Expression) scanValue(s string, i int) (end, next int, ok bool) {
	def := e.Op.def()
	p := i
	for {
		if p == len(s) {
			return p, p, true
		}
		if strings.HasPrefix(s[p:], def.sep) {
			if strings.HasPrefix(s[p+len(def.sep):], def.sep) {
				return p, p, true
			}
			return p, p + len(def.sep), true
		}
		u := def.class.unitLen(s, p)
		if u == 0 {
			return 0, 0, false
		}
		p += u
	}
}
