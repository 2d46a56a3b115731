package draft7

import (
	"strings"

	"github.com/bmaland/uri-template/internal/util"
)

func expandTokens(sb *strings.Builder, tokens []Token, vals Values) {
	for _, tok := range tokens {
		switch tok := tok.(type) {
		case Literal:
			sb.WriteString(string(tok))
		case *Expression:
			tok.expandTo(sb, vals)
		}
	}
}

// Expand returns the expression expanded with the values.
// Undefined variables contribute nothing, an expression without defined variables expands to "".
func (e *Expression) Expand(vals Values) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	e.expandTo(sb, vals)
	return sb.String()
}

func (e *Expression) expandTo(sb *strings.Builder, vals Values) {
	def := e.Op.def()

	var elems []string
	for _, vs := range e.Vars {
		s := shapeOf(vals[vs.Name])
		switch s.kind {
		case kindAbsent:
			continue
		case kindMap:
			elems = e.appendMap(elems, vs, s.pairs)
		case kindList:
			elems = e.appendList(elems, vs, s.list)
		default:
			elems = append(elems, e.scalar(vs, s.scalar))
		}
	}
	if len(elems) == 0 {
		return
	}

	sb.WriteString(def.prefix)
	for i, el := range elems {
		if i > 0 {
			sb.WriteString(def.sep)
		}
		sb.WriteString(el)
	}
}

func (e *Expression) scalar(vs VarSpec, v string) string {
	def := e.Op.def()
	ev := def.class.cut(def.class.encode(v), vs.maxLength())
	if !def.named {
		return ev
	}
	return e.pair(vs.Name, ev)
}

func (e *Expression) pair(key, encodedVal string) string {
	def := e.Op.def()
	if !def.pairIfEmpty && encodedVal == "" {
		return key
	}
	return key + pairConnector + encodedVal
}

func (e *Expression) appendMap(elems []string, vs VarSpec, pairs Pairs) []string {
	class := e.Op.def().class
	if vs.Explode {
		for _, p := range pairs {
			elems = append(elems, e.pair(class.encode(p.Key), class.encode(p.Value)))
		}
		return elems
	}
	if len(pairs) == 0 {
		return elems
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	e.writeNamePrefix(sb, vs)
	for i, p := range pairs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(class.encode(p.Key))
		sb.WriteByte(',')
		sb.WriteString(class.encode(p.Value))
	}
	return append(elems, sb.String())
}

func (e *Expression) appendList(elems []string, vs VarSpec, list []string) []string {
	class := e.Op.def().class
	if vs.Explode {
		for _, item := range list {
			elems = append(elems, class.encode(item))
		}
		return elems
	}
	if len(list) == 0 {
		return elems
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	e.writeNamePrefix(sb, vs)
	for i, item := range list {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(class.encode(item))
	}
	return append(elems, sb.String())
}

func (e *Expression) writeNamePrefix(sb *strings.Builder, vs VarSpec) {
	if e.Op.Named() {
		sb.WriteString(vs.Name)
		sb.WriteString(pairConnector)
	}
}
