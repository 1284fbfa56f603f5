package parser

import (
	"strings"

	"github.com/cktlang/ckt"
	"github.com/cktlang/ckt/ast"
)

// Simple statements are tried in a fixed, order-sensitive alternation:
// several forms share a leading identifier, so import keywords go before
// identifier-led forms, compound quantity assignment before the generic
// assignment, connection before the keyword-led definitions, and a bare
// quantity or comment closes the list. First match wins.
//
// Each alternative reports (statement, error, matched). A soft failure is
// (nil, nil, false) and the caller backtracks; once an alternative has
// committed (its distinguishing prefix consumed), failures are hard errors.

type alternative func() (ast.Statement, *ckt.Error, bool)

func (s *scanner) parseSimpleStmt() (ast.Statement, *ckt.Error) {
	alts := []alternative{
		s.fromImportStmt,
		s.fromStringImportStmt,
		s.directImportStmt,
		s.cumulativeAssignStmt,
		s.setAssignStmt,
		s.assignStmt,
		s.connectStmt,
		s.retypeStmt,
		s.pinDefStmt,
		s.signalDefStmt,
		s.assertStmt,
		s.declarationStmt,
		s.docStringStmt,
		s.passStmt,
		s.bilateralStmt,
		s.physicalStmt,
		s.commentStmt,
	}

	start := s.pos
	deepest := start
	for _, alt := range alts {
		st, err, matched := alt()
		if matched {
			if err != nil {
				return nil, err
			}
			return st, nil
		}
		if s.pos > deepest {
			deepest = s.pos
		}
		s.pos = start
	}
	return nil, syntaxError(s.src, s.base+deepest, "cannot parse statement")
}

// parseStatements parses a full logical line: simple statements separated
// by ";", an optional trailing ";", and an optional trailing comment.
// Anything left over afterwards is an error.
func (s *scanner) parseStatements() ([]ast.Statement, *ckt.Error) {
	var stmts []ast.Statement
	for {
		s.skipSpace()
		if s.eof() {
			break
		}
		st, err := s.parseSimpleStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
		s.skipSpace()
		if !s.lit(";") {
			break
		}
	}

	s.skipSpace()
	if text, ok := s.comment(); ok {
		stmts = append(stmts, &ast.Comment{Text: text})
	}
	if !s.eof() {
		return nil, syntaxError(s.src, s.errPos(), "unexpected trailing input %q", s.rest())
	}
	return stmts, nil
}

func (s *scanner) fromImportStmt() (ast.Statement, *ckt.Error, bool) {
	if !s.keyword("from") || !s.space1() {
		return nil, nil, false
	}
	module, ok := s.dottedIdentifier()
	if !ok || !s.space1() || !s.keyword("import") {
		return nil, nil, false
	}
	items, err := s.requireImportItems()
	if err != nil {
		return nil, err, true
	}
	return &ast.FromImport{Module: module, Items: items}, nil, true
}

func (s *scanner) fromStringImportStmt() (ast.Statement, *ckt.Error, bool) {
	if !s.keyword("from") || !s.space1() {
		return nil, nil, false
	}
	path, ok := s.stringLit()
	if !ok || !s.space1() || !s.keyword("import") {
		return nil, nil, false
	}
	items, err := s.requireImportItems()
	if err != nil {
		return nil, err, true
	}
	return &ast.FromStringImport{Path: path, Items: items}, nil, true
}

func (s *scanner) directImportStmt() (ast.Statement, *ckt.Error, bool) {
	if !s.keyword("import") {
		return nil, nil, false
	}
	if !s.space1() {
		return nil, syntaxError(s.src, s.errPos(), "expected a module name after \"import\""), true
	}
	module, ok := s.dottedIdentifier()
	if !ok {
		return nil, syntaxError(s.src, s.errPos(), "expected a module name after \"import\""), true
	}
	return &ast.DirectImport{Module: module}, nil, true
}

// requireImportItems parses the comma-separated identifier list after an
// already-committed "import" keyword.
func (s *scanner) requireImportItems() ([]string, *ckt.Error) {
	if !s.space1() {
		return nil, syntaxError(s.src, s.errPos(), "expected import items")
	}
	item, ok := s.identifier()
	if !ok {
		return nil, syntaxError(s.src, s.errPos(), "expected import items")
	}
	items := []string{item}
	for {
		save := s.pos
		s.skipSpace()
		if !s.lit(",") {
			s.pos = save
			return items, nil
		}
		s.skipSpace()
		item, ok := s.identifier()
		if !ok {
			return nil, syntaxError(s.src, s.errPos(), "expected an identifier after \",\"")
		}
		items = append(items, item)
	}
}

// typeAnnotation recognizes an optional ": type" between an assignment
// target and its operator; returns empty string when absent.
func (s *scanner) typeAnnotation() string {
	save := s.pos
	s.skipSpace()
	if !s.lit(":") {
		s.pos = save
		return ""
	}
	s.skipSpace()
	name, ok := s.identifier()
	if !ok {
		s.pos = save
		return ""
	}
	return name
}

func (s *scanner) cumulativeAssignStmt() (ast.Statement, *ckt.Error, bool) {
	target, ok := s.identifier()
	if !ok {
		return nil, nil, false
	}
	typeInfo := s.typeAnnotation()
	s.skipSpace()
	var op ast.AssignOp
	switch {
	case s.lit("+="):
		op = ast.AssignAdd
	case s.lit("-="):
		op = ast.AssignSub
	default:
		return nil, nil, false
	}
	s.skipSpace()
	value, err := s.cumulativeValue()
	if err != nil {
		return nil, err, true
	}
	return &ast.CumulativeAssign{Target: target, Operator: op, Value: value, TypeInfo: typeInfo}, nil, true
}

func (s *scanner) setAssignStmt() (ast.Statement, *ckt.Error, bool) {
	target, ok := s.identifier()
	if !ok {
		return nil, nil, false
	}
	typeInfo := s.typeAnnotation()
	s.skipSpace()
	var op ast.AssignOp
	switch {
	case s.lit("|="):
		op = ast.AssignOr
	case s.lit("&="):
		op = ast.AssignAnd
	default:
		return nil, nil, false
	}
	s.skipSpace()
	value, err := s.cumulativeValue()
	if err != nil {
		return nil, err, true
	}
	return &ast.SetAssign{Target: target, Operator: op, Value: value, TypeInfo: typeInfo}, nil, true
}

// cumulativeValue parses the right-hand side of a compound quantity
// assignment: a bounded range, a bare physical quantity filling the rest of
// the statement, or a general expression.
func (s *scanner) cumulativeValue() (ast.CumulativeValue, *ckt.Error) {
	if expr, err, matched := s.boundQuantity(); matched {
		if err != nil {
			return nil, err
		}
		return &ast.ArithmeticValue{Expr: expr}, nil
	}

	save := s.pos
	if qty, ok := s.physicalQuantity(); ok && s.atStmtEnd() {
		return &ast.PhysicalValue{Quantity: qty}, nil
	}
	s.pos = save

	expr, err := s.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ArithmeticValue{Expr: expr}, nil
}

// assignment operators, keyed by spelling; matched longest prefix first.
var assignOps = map[string]ast.AssignOp{
	"=":   ast.AssignSimple,
	"+=":  ast.AssignAdd,
	"-=":  ast.AssignSub,
	"*=":  ast.AssignMul,
	"/=":  ast.AssignDiv,
	"**=": ast.AssignPow,
	"//=": ast.AssignIntDiv,
	"|=":  ast.AssignOr,
	"&=":  ast.AssignAnd,
	"^=":  ast.AssignXor,
	"<<=": ast.AssignShl,
	">>=": ast.AssignShr,
	"@=":  ast.AssignAt,
}

const operatorChars = "+-*/|&^<>=@%~!"

// scanAssignOp matches an assignment operator. A run of operator characters
// that ends in "=" but matches no known operator is a hard ErrOperator, so
// "x %= 5" reports the operator instead of a generic failure.
func (s *scanner) scanAssignOp() (ast.AssignOp, *ckt.Error, bool) {
	start := s.pos
	for s.pos < len(s.text) && strings.IndexByte(operatorChars, s.text[s.pos]) >= 0 {
		s.pos++
	}
	run := s.text[start:s.pos]
	if run == "" {
		return 0, nil, false
	}

	for size := 3; size > 0; size-- {
		if size > len(run) {
			continue
		}
		if op, ok := assignOps[run[:size]]; ok {
			s.pos = start + size
			return op, nil, true
		}
	}

	if strings.Contains(run, "=") {
		return 0, operatorError(s.src, s.base+start, run), true
	}
	s.pos = start
	return 0, nil, false
}

func (s *scanner) assignStmt() (ast.Statement, *ckt.Error, bool) {
	target, ok := s.identifier()
	if !ok {
		return nil, nil, false
	}
	typeInfo := s.typeAnnotation()
	s.skipSpace()
	op, err, matched := s.scanAssignOp()
	if !matched {
		return nil, nil, false
	}
	if err != nil {
		return nil, err, true
	}
	s.skipSpace()
	value, verr := s.assignValue()
	if verr != nil {
		return nil, verr, true
	}
	return &ast.Assignment{Target: target, Operator: op, Value: value, TypeInfo: typeInfo}, nil, true
}

// assignValue accepts a bounded range or a general expression; ranges are
// assignable values ("r = 1ohm to 10ohm"), not just assertion operands.
func (s *scanner) assignValue() (ast.Expression, *ckt.Error) {
	if expr, err, matched := s.boundQuantity(); matched {
		return expr, err
	}
	return s.parseExpression()
}

func (s *scanner) connectStmt() (ast.Statement, *ckt.Error, bool) {
	left, ok := s.connectable()
	if !ok {
		return nil, nil, false
	}
	s.skipSpace()
	if !s.lit("~") {
		return nil, nil, false
	}
	s.skipSpace()
	right, ok := s.connectable()
	if !ok {
		return nil, syntaxError(s.src, s.errPos(), "expected a name, pin, or signal after \"~\""), true
	}
	return &ast.Connection{Left: left, Right: right}, nil, true
}

// connectable recognizes a connection terminal, most specific form first
// so a dotted name is never captured as a bare identifier.
func (s *scanner) connectable() (ast.Connectable, bool) {
	save := s.pos
	if path, ok := s.dottedIdentifier(); ok && strings.Contains(path, ".") {
		return &ast.PinRef{Path: path}, true
	}
	s.pos = save

	if s.keyword("signal") && s.space1() {
		if name, ok := s.identifier(); ok {
			return &ast.SignalRef{Name: name}, true
		}
	}
	s.pos = save

	if name, ok := s.identifier(); ok {
		return &ast.NameRef{Name: name}, true
	}
	return nil, false
}

func (s *scanner) retypeStmt() (ast.Statement, *ckt.Error, bool) {
	if !s.keyword("retype") || !s.space1() {
		return nil, nil, false
	}
	source, ok := s.identifier()
	if !ok {
		return nil, syntaxError(s.src, s.errPos(), "expected an identifier after \"retype\""), true
	}
	if !s.space1() || !s.keyword("as") || !s.space1() {
		return nil, syntaxError(s.src, s.errPos(), "expected \"as\" in retype statement"), true
	}
	target, ok := s.identifier()
	if !ok {
		return nil, syntaxError(s.src, s.errPos(), "expected an identifier after \"as\""), true
	}
	return &ast.Retype{Source: source, Target: target}, nil, true
}

func (s *scanner) pinDefStmt() (ast.Statement, *ckt.Error, bool) {
	if !s.keyword("pin") || !s.space1() {
		return nil, nil, false
	}
	if name, ok := s.identifier(); ok {
		return &ast.PinDef{Pin: &ast.PinName{Name: name}}, nil, true
	}
	if number, ok := s.integer(); ok {
		return &ast.PinDef{Pin: &ast.PinNumber{Number: number}}, nil, true
	}
	if label, ok := s.stringLit(); ok {
		return &ast.PinDef{Pin: &ast.PinLabel{Label: label}}, nil, true
	}
	return nil, syntaxError(s.src, s.errPos(), "expected a pin name, number, or string"), true
}

func (s *scanner) signalDefStmt() (ast.Statement, *ckt.Error, bool) {
	if !s.keyword("signal") || !s.space1() {
		return nil, nil, false
	}
	name, ok := s.identifier()
	if !ok {
		return nil, syntaxError(s.src, s.errPos(), "expected a signal name"), true
	}
	return &ast.SignalDef{Name: name}, nil, true
}

func (s *scanner) assertStmt() (ast.Statement, *ckt.Error, bool) {
	if !s.keyword("assert") || !s.space1() {
		return nil, nil, false
	}
	condition, err := s.parseComparison()
	if err != nil {
		return nil, err, true
	}
	return &ast.Assert{Condition: condition}, nil, true
}

func (s *scanner) declarationStmt() (ast.Statement, *ckt.Error, bool) {
	name, ok := s.identifier()
	if !ok {
		return nil, nil, false
	}
	s.skipSpace()
	if !s.lit(":") {
		return nil, nil, false
	}
	s.skipSpace()
	typeInfo, ok := s.identifier()
	if !ok {
		return nil, nil, false
	}
	return &ast.Declaration{Name: name, TypeInfo: typeInfo}, nil, true
}

func (s *scanner) docStringStmt() (ast.Statement, *ckt.Error, bool) {
	text, ok := s.stringLit()
	if !ok {
		return nil, nil, false
	}
	return &ast.DocString{Text: text}, nil, true
}

func (s *scanner) passStmt() (ast.Statement, *ckt.Error, bool) {
	if !s.keyword("pass") {
		return nil, nil, false
	}
	return &ast.Pass{}, nil, true
}

func (s *scanner) bilateralStmt() (ast.Statement, *ckt.Error, bool) {
	qty, err, matched := s.bilateralQuantity()
	if !matched {
		return nil, nil, false
	}
	if err != nil {
		return nil, err, true
	}
	return qty, nil, true
}

func (s *scanner) physicalStmt() (ast.Statement, *ckt.Error, bool) {
	qty, ok := s.physicalQuantity()
	if !ok {
		return nil, nil, false
	}
	return qty, nil, true
}

func (s *scanner) commentStmt() (ast.Statement, *ckt.Error, bool) {
	text, ok := s.comment()
	if !ok {
		return nil, nil, false
	}
	return &ast.Comment{Text: text}, nil, true
}
