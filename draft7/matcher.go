package draft7

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bmaland/uri-template/internal/util"
)

// Nodes of the matcher form. The form is rendered to regexp syntax
// with only one capturing group per variable slot.
type rxNode interface {
	render(r *rxRenderer)
}

type (
	// exact text
	rxLiteral string
	// pre-built regexp fragment without capturing groups
	rxRaw string
	rxSeq []rxNode
	rxAlt []rxNode
	rxRepeat struct {
		node     rxNode
		min, max int // max < 0 is unbounded
		lazy     bool
	}
	rxCapture struct {
		slot int
		node rxNode
	}
)

// maxRepeat is the largest repeat count accepted by package regexp.
const maxRepeat = 1000

func rxOptional(n rxNode) rxNode { return rxRepeat{node: n, min: 0, max: 1} }

func rxStar(n rxNode, lazy bool) rxNode { return rxRepeat{node: n, min: 0, max: -1, lazy: lazy} }

// rxUpTo matches n zero or more times, at most limit times when limit is positive.
// Unbounded repeats are lazy when lazyIfUnbounded is set, bounded ones are always greedy.
// A limit above maxRepeat gives a greedy unbounded repeat.
func rxUpTo(n rxNode, limit int, lazyIfUnbounded bool) rxNode {
	switch {
	case limit > maxRepeat:
		return rxStar(n, false)
	case limit > 0:
		return rxRepeat{node: n, min: 0, max: limit}
	}
	return rxStar(n, lazyIfUnbounded)
}

type rxRenderer struct {
	sb    *strings.Builder
	group int
	// slots maps a variable slot to its capturing group index
	slots []int
}

func (n rxLiteral) render(r *rxRenderer) { r.sb.WriteString(regexp.QuoteMeta(string(n))) }

func (n rxRaw) render(r *rxRenderer) { r.sb.WriteString(string(n)) }

func (n rxSeq) render(r *rxRenderer) {
	for _, sub := range n {
		sub.render(r)
	}
}

func (n rxAlt) render(r *rxRenderer) {
	r.sb.WriteString("(?:")
	for i, sub := range n {
		if i > 0 {
			r.sb.WriteByte('|')
		}
		sub.render(r)
	}
	r.sb.WriteByte(')')
}

func (n rxRepeat) render(r *rxRenderer) {
	r.sb.WriteString("(?:")
	n.node.render(r)
	r.sb.WriteByte(')')
	switch {
	case n.min == 0 && n.max == 1:
		r.sb.WriteByte('?')
	case n.min == 0 && n.max < 0:
		r.sb.WriteByte('*')
	case n.min == 1 && n.max < 0:
		r.sb.WriteByte('+')
	case n.max < 0:
		r.sb.WriteString("{" + strconv.Itoa(n.min) + ",}")
	default:
		r.sb.WriteString("{" + strconv.Itoa(n.min) + "," + strconv.Itoa(n.max) + "}")
	}
	if n.lazy {
		r.sb.WriteByte('?')
	}
}

func (n rxCapture) render(r *rxRenderer) {
	r.group++
	for len(r.slots) <= n.slot {
		r.slots = append(r.slots, -1)
	}
	r.slots[n.slot] = r.group
	r.sb.WriteByte('(')
	n.node.render(r)
	r.sb.WriteByte(')')
}

// matcherForm builds the matcher form of the tokens, slots are numbered from 0.
func matcherForm(tokens []Token) rxSeq {
	form := make(rxSeq, 0, len(tokens))
	var slot int
	for _, tok := range tokens {
		switch tok := tok.(type) {
		case Literal:
			form = append(form, rxLiteral(tok))
		case *Expression:
			form = append(form, tok.matcherForm(slot))
			slot += len(tok.Vars)
		}
	}
	return form
}

// renderMatcher renders the anchored matcher source of the tokens and
// the capturing group index of every slot.
func renderMatcher(tokens []Token) (string, []int) {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	r := &rxRenderer{sb: sb}
	sb.WriteByte('^')
	matcherForm(tokens).render(r)
	sb.WriteByte('$')
	return sb.String(), r.slots
}

// matcherForm builds the matcher form of the expression, base is the slot of the first variable.
// The whole expression is optional, since it expands to nothing without defined variables.
func (e *Expression) matcherForm(base int) rxNode {
	def := e.Op.def()
	sep := rxLiteral(def.sep)
	unit := rxRaw(def.class.unitRx)
	key := rxSeq{rxRaw(varnameRx), rxLiteral(pairConnector)}

	parts := rxSeq{rxLiteral(def.prefix)}
	for i, vs := range e.Vars {
		slot := base + i
		first := i == 0
		last := i == len(e.Vars)-1

		if def.named {
			value := rxUpTo(rxAlt{unit, rxLiteral(",")}, vs.maxLength(), false)
			if vs.Explode {
				pair := rxSeq{rxOptional(key), rxStar(unit, false)}
				if first {
					parts = append(parts, rxCapture{slot, rxSeq{pair, rxStar(rxSeq{sep, pair}, false)}})
				} else {
					parts = append(parts, rxCapture{slot, rxStar(rxSeq{sep, pair}, false)})
				}
				continue
			}

			var pair rxNode
			if def.pairIfEmpty {
				pair = rxSeq{rxLiteral(vs.Name), rxOptional(rxCapture{slot, rxSeq{rxLiteral(pairConnector), value}})}
			} else {
				pair = rxSeq{rxLiteral(vs.Name), rxCapture{slot, rxAlt{rxSeq{rxLiteral(pairConnector), value}, rxSeq{}}}}
			}
			if first {
				parts = append(parts, pair)
			} else {
				parts = append(parts, rxOptional(rxSeq{sep, pair}))
			}
			continue
		}

		var value rxNode
		switch {
		case vs.Explode:
			pair := rxSeq{rxOptional(key), rxStar(unit, false)}
			value = rxSeq{pair, rxStar(rxSeq{sep, pair}, false)}
		case last && def.class.grabsComma:
			value = rxUpTo(unit, vs.maxLength(), true)
		case last:
			value = rxUpTo(rxAlt{unit, rxLiteral(",")}, vs.maxLength(), true)
		default:
			value = rxUpTo(unit, vs.maxLength(), true)
		}
		if first {
			parts = append(parts, rxCapture{slot, value})
		} else {
			parts = append(parts, rxOptional(rxSeq{sep, rxCapture{slot, value}}))
		}
	}
	return rxOptional(parts)
}
