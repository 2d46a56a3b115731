package draft7

import (
	"strconv"
	"strings"

	"github.com/bmaland/uri-template/internal/util"
)

// Token is a part of a template: a [Literal] or an [*Expression].
type Token interface {
	// Level returns the template level required by the token.
	Level() int
	String() string
	token()
}

// Literal is a literal part of a template.
// It is written to the expansion as is.
type Literal string

func (Literal) token() {}

func (Literal) Level() int { return 1 }

func (l Literal) String() string { return string(l) }

// VarSpec is a variable reference inside an expression.
type VarSpec struct {
	Name string
	// Explode expands lists and maps element by element.
	Explode bool
	// MaxLength limits the number of characters of a scalar value, 0 means no limit.
	// It is ignored when Explode is set.
	MaxLength int
}

func (vs VarSpec) maxLength() int {
	if vs.Explode {
		return 0
	}
	return vs.MaxLength
}

func (vs VarSpec) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	vs.writeTo(sb)
	return sb.String()
}

func (vs VarSpec) writeTo(sb *strings.Builder) {
	sb.WriteString(vs.Name)
	if vs.Explode {
		sb.WriteByte('*')
	}
	if vs.MaxLength > 0 {
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(vs.MaxLength))
	}
}

// Expression is an expression part of a template, like "{?x,y*}".
type Expression struct {
	Op   Operator
	Vars []VarSpec

	raw string
}

// NewExpression creates an expression from the operator and the variables.
func NewExpression(op Operator, vars ...VarSpec) *Expression {
	return &Expression{Op: op, Vars: vars}
}

func (*Expression) token() {}

// Level returns 4 if any variable has a modifier, otherwise
// the operator base level for a single variable or 3 for several.
func (e *Expression) Level() int {
	for _, vs := range e.Vars {
		if vs.Explode || vs.MaxLength > 0 {
			return 4
		}
	}
	if len(e.Vars) == 1 {
		return e.Op.BaseLevel()
	}
	return 3
}

// String returns the expression as it was written in the pattern.
func (e *Expression) String() string {
	if e == nil {
		return ""
	}
	if e.raw != "" {
		return e.raw
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	sb.WriteByte('{')
	sb.WriteString(e.Op.Char())
	for i, vs := range e.Vars {
		if i > 0 {
			sb.WriteByte(',')
		}
		vs.writeTo(sb)
	}
	sb.WriteByte('}')
	return sb.String()
}

// Names returns the variable names in the order of appearance, repeated names included.
func (e *Expression) Names() []string {
	names := make([]string, len(e.Vars))
	for i, vs := range e.Vars {
		names[i] = vs.Name
	}
	return names
}
