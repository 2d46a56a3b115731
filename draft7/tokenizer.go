package draft7

import (
	"errors"
	"math"
	"strconv"

	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/bmaland/uri-template/internal/grammar"
)

// tokenize splits the pattern into literals and expressions in a single scan.
func tokenize(pattern string) ([]Token, error) {
	parts, err := grammar.ParseTemplate(pattern)
	if err != nil {
		perr := &ParseError{Pattern: pattern}
		if oe := (*grammar.OffsetError)(nil); errors.As(err, &oe) {
			perr.Offset = oe.Offset
		}
		return nil, errtrace.Wrap(perr)
	}

	tokens := make([]Token, 0, len(parts))
	for _, p := range parts {
		if p.Expr == nil {
			tokens = append(tokens, Literal(p.Literal))
			continue
		}
		expr, err := buildFromExpressionNode(p.Expr)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		tokens = append(tokens, expr)
	}
	if len(tokens) == 0 {
		return nil, nil
	}
	return tokens, nil
}

func buildFromExpressionNode(node *abnf.Node) (*Expression, error) {
	expr := &Expression{raw: node.String()}
	if opNode, ok := node.GetNode("operator"); ok && !opNode.IsEmpty() {
		op, ok := ParseOperator(opNode.String())
		if !ok {
			return nil, errtrace.Wrap(grammar.ErrUnexpectNode)
		}
		expr.Op = op
	}

	vsNodes := node.GetNodes("varspec")
	expr.Vars = make([]VarSpec, 0, len(vsNodes))
	for _, vsNode := range vsNodes {
		vs := VarSpec{Name: grammar.MustGetNode(vsNode, "varname").String()}
		if n, ok := vsNode.GetNode("explode"); ok && !n.IsEmpty() {
			vs.Explode = true
		}
		if n, ok := vsNode.GetNode("max-length"); ok && !n.IsEmpty() {
			ml, err := strconv.Atoi(n.String())
			if err != nil {
				// only digits get here, so it is out of range
				ml = math.MaxInt32
			}
			vs.MaxLength = ml
		}
		expr.Vars = append(expr.Vars, vs)
	}
	if len(expr.Vars) == 0 {
		return nil, errtrace.Wrap(grammar.ErrNodeNotFound)
	}
	return expr, nil
}
