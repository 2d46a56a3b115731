package draft7

import "fmt"

// Operator is an expression operator.
type Operator uint8

const (
	OpSimple        Operator = iota // {var}
	OpReserved                      // {+var}
	OpFragment                      // {#var}
	OpLabel                         // {.var}
	OpPath                          // {/var}
	OpPathParams                    // {;var}
	OpFormQuery                     // {?var}
	OpFormQueryCont                 // {&var}
)

type opDef struct {
	char        string
	name        string
	prefix      string
	sep         string
	pairIfEmpty bool
	named       bool
	baseLevel   int
	class       *charClass
}

const pairConnector = "="

var opDefs = [...]opDef{
	OpSimple:        {"", "simple", "", ",", true, false, 1, classUnreserved},
	OpReserved:      {"+", "reserved", "", ",", true, false, 2, classReserved},
	OpFragment:      {"#", "fragment", "#", ",", true, false, 2, classReserved},
	OpLabel:         {".", "label", ".", ".", true, false, 3, classUnreserved},
	OpPath:          {"/", "path", "/", "/", true, false, 3, classUnreserved},
	OpPathParams:    {";", "path-params", ";", ";", false, true, 3, classUnreserved},
	OpFormQuery:     {"?", "form-query", "?", "&", true, true, 3, classUnreserved},
	OpFormQueryCont: {"&", "form-query-cont", "&", "&", true, true, 3, classUnreserved},
}

// ParseOperator returns the operator for its character, "" is [OpSimple].
func ParseOperator(s string) (Operator, bool) {
	for op, def := range opDefs {
		if def.char == s {
			return Operator(op), true
		}
	}
	return 0, false
}

func (op Operator) def() *opDef {
	if int(op) >= len(opDefs) {
		panic(NewInvalidArgumentError(fmt.Sprintf("unknown operator %d", op)))
	}
	return &opDefs[op]
}

// IsValid reports whether op is one of the known operators.
func (op Operator) IsValid() bool { return int(op) < len(opDefs) }

// Char returns the operator character as written in a pattern.
func (op Operator) Char() string { return op.def().char }

// Prefix returns the string written before a non-empty expansion.
func (op Operator) Prefix() string { return op.def().prefix }

// Separator returns the string written between expanded variables.
func (op Operator) Separator() string { return op.def().sep }

// Named reports whether variables are expanded as name=value pairs.
func (op Operator) Named() bool { return op.def().named }

// PairIfEmpty reports whether the pair connector is written for an empty value.
func (op Operator) PairIfEmpty() bool { return op.def().pairIfEmpty }

// BaseLevel returns the template level of a single-variable expression without modifiers.
func (op Operator) BaseLevel() int { return op.def().baseLevel }

func (op Operator) String() string {
	if !op.IsValid() {
		return fmt.Sprintf("Operator(%d)", op)
	}
	return op.def().name
}
