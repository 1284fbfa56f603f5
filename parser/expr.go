package parser

import (
	"github.com/cktlang/ckt"
	"github.com/cktlang/ckt/ast"
)

// Expression grammar, precedence low to high:
//
//	additive:       term (("+" | "-" | "|" | "&") term)*      left fold
//	term:           factor (("*" | "/") factor)*              left fold
//	factor:         unary ("**" factor)?                      right-leaning
//	unary:          ("+" | "-") unary | primary
//	primary:        string | boolean | quantity/number | group | new | identifier
//
// A binary level stops folding when the operand after a consumed operator
// does not parse; the operator is restored and the leftover input is left
// for the caller to reject, so "x +/- 5%" fails at the statement level
// instead of being half-consumed.

// parseExpression parses a full arithmetic expression. Comparisons are a
// separate level entered only from statements that need them (see
// parseComparison), so "<" never collides with other syntax.
func (s *scanner) parseExpression() (ast.Expression, *ckt.Error) {
	return s.parseAdditive()
}

func (s *scanner) parseAdditive() (ast.Expression, *ckt.Error) {
	left, err := s.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		save := s.pos
		s.skipSpace()
		var op ast.Operator
		switch {
		case s.litNotBefore("+", '/'): // "+/-" belongs to a bilateral quantity
			op = ast.Add
		case s.lit("-"):
			op = ast.Subtract
		case s.litNotBefore("|", '='):
			op = ast.BitwiseOr
		case s.litNotBefore("&", '='):
			op = ast.BitwiseAnd
		default:
			s.pos = save
			return left, nil
		}
		s.skipSpace()
		right, err := s.parseTerm()
		if err != nil {
			s.pos = save
			return left, nil
		}
		left = &ast.BinaryOp{Left: left, Op: op, Right: right}
	}
}

func (s *scanner) parseTerm() (ast.Expression, *ckt.Error) {
	left, err := s.parseFactor()
	if err != nil {
		return nil, err
	}

	for {
		save := s.pos
		s.skipSpace()
		var op ast.Operator
		switch {
		case s.litNotBefore("*", '*'): // leave "**" for the power level
			op = ast.Multiply
		case s.litNotBefore("/", '/'):
			op = ast.Divide
		default:
			s.pos = save
			return left, nil
		}
		s.skipSpace()
		right, err := s.parseFactor()
		if err != nil {
			s.pos = save
			return left, nil
		}
		left = &ast.BinaryOp{Left: left, Op: op, Right: right}
	}
}

// parseFactor recurses into itself on the right of "**", giving
// right-leaning power towers: a ** b ** c is a ** (b ** c).
func (s *scanner) parseFactor() (ast.Expression, *ckt.Error) {
	left, err := s.parseUnary()
	if err != nil {
		return nil, err
	}

	save := s.pos
	s.skipSpace()
	if !s.litNotBefore("**", '=') {
		s.pos = save
		return left, nil
	}
	s.skipSpace()
	right, err := s.parseFactor()
	if err != nil {
		s.pos = save
		return left, nil
	}
	return &ast.BinaryOp{Left: left, Op: ast.Power, Right: right}, nil
}

func (s *scanner) parseUnary() (ast.Expression, *ckt.Error) {
	var op ast.Operator
	switch {
	case s.litNotBefore("+", '/'):
		op = ast.Plus
	case s.lit("-"):
		op = ast.Minus
	default:
		return s.parsePrimary()
	}
	operand, err := s.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryOp{Op: op, Operand: operand}, nil
}

func (s *scanner) parsePrimary() (ast.Expression, *ckt.Error) {
	if text, ok := s.stringLit(); ok {
		return &ast.StringLit{Value: text}, nil
	}
	if s.keyword("True") {
		return &ast.BoolLit{Value: true}, nil
	}
	if s.keyword("False") {
		return &ast.BoolLit{Value: false}, nil
	}

	if expr, err, matched := s.quantityExpr(); matched {
		return expr, err
	}

	if s.lit("(") {
		s.skipSpace()
		inner, err := s.parseExpression()
		if err != nil {
			return nil, err
		}
		s.skipSpace()
		if !s.lit(")") {
			return nil, syntaxError(s.src, s.errPos(), "expected \")\"")
		}
		return &ast.Group{Inner: inner}, nil
	}

	if s.keyword("new") {
		s.skipSpace()
		name, ok := s.identifier()
		if !ok {
			return nil, syntaxError(s.src, s.errPos(), "expected a type name after \"new\"")
		}
		return &ast.New{TypeName: name}, nil
	}

	if name, ok := s.identifier(); ok {
		return &ast.Identifier{Name: name}, nil
	}

	return nil, syntaxError(s.src, s.errPos(), "expected an expression")
}

// quantityExpr classifies a numeric literal by what follows it: a tolerance
// makes it a bilateral quantity, a unit makes it physical, and a bare
// mantissa stays a plain number.
func (s *scanner) quantityExpr() (ast.Expression, *ckt.Error, bool) {
	qty, ok := s.physicalQuantity()
	if !ok {
		return nil, nil, false
	}

	if s.toleranceSign() {
		tol, ok := s.tolerance()
		if !ok {
			return nil, toleranceError(s.src, s.errPos()), true
		}
		return &ast.BilateralQuantity{Value: qty.Value, Unit: qty.Unit, Tolerance: tol}, nil, true
	}
	if qty.Unit != "" {
		return qty, nil, true
	}
	return &ast.NumberLit{Value: qty.Value}, nil, true
}

// litNotBefore consumes the literal unless the byte after it is next,
// which disambiguates prefixes shared between operators.
func (s *scanner) litNotBefore(text string, next byte) bool {
	save := s.pos
	if !s.lit(text) {
		return false
	}
	if s.peek() == next {
		s.pos = save
		return false
	}
	return true
}

// comparison operators, longest spelling first so "<=" is never split.
var comparisonOps = []struct {
	text string
	op   ast.Operator
}{
	{"<=", ast.LessEqual},
	{">=", ast.GreaterEqual},
	{"==", ast.Equal},
	{"!=", ast.NotEqual},
	{"<>", ast.NotEqual},
	{"<", ast.LessThan},
	{">", ast.GreaterThan},
}

// parseComparison parses the comparison level used by assertion contexts:
// arithmetic operands joined by < > <= >= == != <> or "within", folded left
// to right. Operands may be bounded ranges ("1V to 2V"), which bind tighter
// than the comparison itself.
func (s *scanner) parseComparison() (ast.Expression, *ckt.Error) {
	left, err := s.comparisonOperand()
	if err != nil {
		return nil, err
	}

	for {
		save := s.pos
		s.skipSpace()
		op, ok := s.comparisonOp()
		if !ok {
			s.pos = save
			return left, nil
		}
		s.skipSpace()
		right, err := s.comparisonOperand()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Left: left, Op: op, Right: right}
	}
}

func (s *scanner) comparisonOp() (ast.Operator, bool) {
	for _, c := range comparisonOps {
		if s.lit(c.text) {
			return c.op, true
		}
	}
	if s.keyword("within") {
		return ast.Within, true
	}
	return 0, false
}

func (s *scanner) comparisonOperand() (ast.Expression, *ckt.Error) {
	if expr, err, matched := s.boundQuantity(); matched {
		return expr, err
	}
	return s.parseExpression()
}
