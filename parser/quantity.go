package parser

import (
	"github.com/cktlang/ckt"
	"github.com/cktlang/ckt/ast"
)

// reservedUnits are keywords that may directly follow a quantity and must
// not be captured as its unit, e.g. the "to" of "1V to 2V".
var reservedUnits = map[string]bool{
	"to":     true,
	"within": true,
}

// physicalQuantity recognizes an optional sign, a mantissa, and an optional
// unit identifier separated by optional whitespace. The sign applies to the
// numeric value before the unit is read.
func (s *scanner) physicalQuantity() (*ast.PhysicalQuantity, bool) {
	start := s.pos
	negative := false
	if c := s.peek(); c == '+' || c == '-' {
		negative = c == '-'
		s.pos++
	}
	value, ok := s.number()
	if !ok {
		s.pos = start
		return nil, false
	}
	if negative {
		value = -value
	}

	unit := ""
	save := s.pos
	s.skipSpace()
	if name, ok := s.identifier(); ok && !reservedUnits[name] {
		unit = name
	} else {
		s.pos = save
	}
	return &ast.PhysicalQuantity{Value: value, Unit: unit}, true
}

// toleranceSign recognizes "+/-" or "±" with flexible surrounding whitespace.
func (s *scanner) toleranceSign() bool {
	save := s.pos
	s.skipSpace()
	if s.lit("+/-") || s.lit("±") {
		s.skipSpace()
		return true
	}
	s.pos = save
	return false
}

// tolerance recognizes a percentage ("5%") first, then an absolute quantity
// ("0.1V"). An absolute tolerance is boxed as a bilateral quantity carrying
// a placeholder zero-percent tolerance so it reuses the quantity grammar;
// the placeholder has no meaning downstream.
func (s *scanner) tolerance() (ast.Tolerance, bool) {
	save := s.pos
	if value, ok := s.number(); ok && s.lit("%") {
		return &ast.Percentage{Value: value}, true
	}
	s.pos = save

	qty, ok := s.physicalQuantity()
	if !ok {
		return nil, false
	}
	return &ast.Absolute{Quantity: &ast.BilateralQuantity{
		Value:     qty.Value,
		Unit:      qty.Unit,
		Tolerance: &ast.Percentage{Value: 0},
	}}, true
}

// bilateralQuantity recognizes a physical quantity followed by a tolerance
// sign and a tolerance. It fails without consuming input when no quantity or
// no sign is present; once the sign is consumed, a missing tolerance is a
// hard ErrTolerance.
func (s *scanner) bilateralQuantity() (*ast.BilateralQuantity, *ckt.Error, bool) {
	start := s.pos
	qty, ok := s.physicalQuantity()
	if !ok {
		return nil, nil, false
	}
	if !s.toleranceSign() {
		s.pos = start
		return nil, nil, false
	}
	tol, ok := s.tolerance()
	if !ok {
		return nil, toleranceError(s.src, s.errPos()), true
	}
	return &ast.BilateralQuantity{Value: qty.Value, Unit: qty.Unit, Tolerance: tol}, nil, true
}

// boundQuantity recognizes "min to max" over two physical quantities and
// represents it as a Within binary operation, the form assert statements
// compare against. A missing maximum after "to" is a hard error.
func (s *scanner) boundQuantity() (ast.Expression, *ckt.Error, bool) {
	start := s.pos
	min, ok := s.physicalQuantity()
	if !ok {
		return nil, nil, false
	}
	s.skipSpace()
	if !s.keyword("to") {
		s.pos = start
		return nil, nil, false
	}
	s.skipSpace()
	max, ok := s.physicalQuantity()
	if !ok {
		return nil, quantityError(s.src, s.errPos(), "expected a physical quantity after \"to\""), true
	}
	return &ast.BinaryOp{Left: min, Op: ast.Within, Right: max}, nil, true
}
