package parser

import (
	"fmt"
	"testing"

	"github.com/cktlang/ckt"
	"github.com/cktlang/ckt/ast"
)

// parseOne parses src as a complete file and requires exactly one statement.
func parseOne(t *testing.T, src string) ast.Statement {
	t.Helper()
	stmts, err := ParseFile("test", src)
	if err != nil {
		t.Fatalf("%q: got error: %s", src, err.Error())
	}
	if len(stmts) != 1 {
		t.Fatalf("%q: expected 1 statement, got %d", src, len(stmts))
	}
	return stmts[0]
}

func parseError(t *testing.T, src string) *ckt.Error {
	t.Helper()
	_, err := ParseFile("test", src)
	if err == nil {
		t.Fatalf("%q: expected error, got none", src)
	}
	ce, ok := err.(*ckt.Error)
	if !ok {
		t.Fatalf("%q: expected *ckt.Error, got %T", src, err)
	}
	return ce
}

func TestImports(t *testing.T) {
	st := parseOne(t, "from parts.passive import Resistor, Capacitor\n")
	imp, ok := st.(*ast.FromImport)
	if !ok {
		t.Fatalf("expected *ast.FromImport, got %T", st)
	}
	if imp.Module != "parts.passive" {
		t.Errorf("expected module parts.passive, got %q", imp.Module)
	}
	if len(imp.Items) != 2 || imp.Items[0] != "Resistor" || imp.Items[1] != "Capacitor" {
		t.Errorf("unexpected items: %v", imp.Items)
	}

	st = parseOne(t, "import generics.interfaces\n")
	dimp, ok := st.(*ast.DirectImport)
	if !ok {
		t.Fatalf("expected *ast.DirectImport, got %T", st)
	}
	if dimp.Module != "generics.interfaces" {
		t.Errorf("expected module generics.interfaces, got %q", dimp.Module)
	}

	st = parseOne(t, `from "lib/resistor.ckt" import Resistor`+"\n")
	simp, ok := st.(*ast.FromStringImport)
	if !ok {
		t.Fatalf("expected *ast.FromStringImport, got %T", st)
	}
	if simp.Path != "lib/resistor.ckt" || len(simp.Items) != 1 || simp.Items[0] != "Resistor" {
		t.Errorf("unexpected import: %q %v", simp.Path, simp.Items)
	}
}

// Compound quantity operators produce their own statement kinds; everything
// else is a plain assignment.
func TestAssignmentOperators(t *testing.T) {
	ops := []ast.AssignOp{
		ast.AssignSimple, ast.AssignAdd, ast.AssignSub, ast.AssignMul,
		ast.AssignDiv, ast.AssignPow, ast.AssignIntDiv, ast.AssignOr,
		ast.AssignAnd, ast.AssignXor, ast.AssignShl, ast.AssignShr,
		ast.AssignAt,
	}
	for _, op := range ops {
		src := fmt.Sprintf("x %s 42\n", op.Text())
		st := parseOne(t, src)
		var target string
		var got ast.AssignOp
		switch v := st.(type) {
		case *ast.Assignment:
			target, got = v.Target, v.Operator
		case *ast.CumulativeAssign:
			target, got = v.Target, v.Operator
		case *ast.SetAssign:
			target, got = v.Target, v.Operator
		default:
			t.Errorf("%q: unexpected statement %T", src, st)
			continue
		}
		if target != "x" || got != op {
			t.Errorf("%q: got target %q operator %s", src, target, got)
		}
	}

	if _, ok := parseOne(t, "x += 1\n").(*ast.CumulativeAssign); !ok {
		t.Errorf("expected += to build a CumulativeAssign")
	}
	if _, ok := parseOne(t, "x |= 1\n").(*ast.SetAssign); !ok {
		t.Errorf("expected |= to build a SetAssign")
	}
	if _, ok := parseOne(t, "x *= 2\n").(*ast.Assignment); !ok {
		t.Errorf("expected *= to build an Assignment")
	}
}

func TestAssignmentForms(t *testing.T) {
	st := parseOne(t, "r1: Resistor = new Resistor\n")
	a, ok := st.(*ast.Assignment)
	if !ok {
		t.Fatalf("expected *ast.Assignment, got %T", st)
	}
	if a.TypeInfo != "Resistor" {
		t.Errorf("expected type info Resistor, got %q", a.TypeInfo)
	}
	if n, ok := a.Value.(*ast.New); !ok || n.TypeName != "Resistor" {
		t.Errorf("unexpected value: %#v", a.Value)
	}

	st = parseOne(t, "r = 1ohm to 10ohm\n")
	a = st.(*ast.Assignment)
	rng, ok := a.Value.(*ast.BinaryOp)
	if !ok || rng.Op != ast.Within {
		t.Fatalf("expected a bounded range value, got %#v", a.Value)
	}

	st = parseOne(t, "rated += 10mW\n")
	c := st.(*ast.CumulativeAssign)
	pv, ok := c.Value.(*ast.PhysicalValue)
	if !ok {
		t.Fatalf("expected a physical value, got %#v", c.Value)
	}
	if pv.Quantity.Value != 10 || pv.Quantity.Unit != "mW" {
		t.Errorf("unexpected quantity: %#v", pv.Quantity)
	}

	st = parseOne(t, "total += x * 2\n")
	c = st.(*ast.CumulativeAssign)
	if _, ok := c.Value.(*ast.ArithmeticValue); !ok {
		t.Errorf("expected an arithmetic value, got %#v", c.Value)
	}
}

func TestAssignmentErrors(t *testing.T) {
	if e := parseError(t, "x %= 5\n"); e.Code != ErrOperator {
		t.Errorf("expected ErrOperator, got %d (%s)", e.Code, e.Message)
	}
	if e := parseError(t, "x =\n"); e.Code != ErrSyntax {
		t.Errorf("expected ErrSyntax, got %d (%s)", e.Code, e.Message)
	}
}

func TestConnections(t *testing.T) {
	st := parseOne(t, "r1.out ~ r2.in_\n")
	c, ok := st.(*ast.Connection)
	if !ok {
		t.Fatalf("expected *ast.Connection, got %T", st)
	}
	left, ok := c.Left.(*ast.PinRef)
	if !ok || left.Path != "r1.out" {
		t.Errorf("unexpected left terminal: %#v", c.Left)
	}
	right, ok := c.Right.(*ast.PinRef)
	if !ok || right.Path != "r2.in_" {
		t.Errorf("unexpected right terminal: %#v", c.Right)
	}

	st = parseOne(t, "signal gnd ~ vcc\n")
	c = st.(*ast.Connection)
	if s, ok := c.Left.(*ast.SignalRef); !ok || s.Name != "gnd" {
		t.Errorf("unexpected left terminal: %#v", c.Left)
	}
	if n, ok := c.Right.(*ast.NameRef); !ok || n.Name != "vcc" {
		t.Errorf("unexpected right terminal: %#v", c.Right)
	}

	if e := parseError(t, "a ~\n"); e.Code != ErrSyntax {
		t.Errorf("expected ErrSyntax, got %d", e.Code)
	}
}

func TestDefinitions(t *testing.T) {
	st := parseOne(t, "signal v_in\n")
	if s, ok := st.(*ast.SignalDef); !ok || s.Name != "v_in" {
		t.Fatalf("unexpected statement: %#v", st)
	}

	pins := []struct {
		src string
		pin ast.PinID
	}{
		{"pin A3\n", &ast.PinName{Name: "A3"}},
		{"pin 12\n", &ast.PinNumber{Number: 12}},
		{"pin \"A-3\"\n", &ast.PinLabel{Label: "A-3"}},
	}
	for _, sample := range pins {
		st := parseOne(t, sample.src)
		p, ok := st.(*ast.PinDef)
		if !ok {
			t.Errorf("%q: expected *ast.PinDef, got %T", sample.src, st)
			continue
		}
		if fmt.Sprintf("%#v", p.Pin) != fmt.Sprintf("%#v", sample.pin) {
			t.Errorf("%q: expected %#v, got %#v", sample.src, sample.pin, p.Pin)
		}
	}

	st = parseOne(t, "retype r1 as PowerResistor\n")
	r, ok := st.(*ast.Retype)
	if !ok || r.Source != "r1" || r.Target != "PowerResistor" {
		t.Fatalf("unexpected statement: %#v", st)
	}

	st = parseOne(t, "v_out: Voltage\n")
	d, ok := st.(*ast.Declaration)
	if !ok || d.Name != "v_out" || d.TypeInfo != "Voltage" {
		t.Fatalf("unexpected statement: %#v", st)
	}
}

func TestAssert(t *testing.T) {
	st := parseOne(t, "assert v_out within 1V to 2V\n")
	a, ok := st.(*ast.Assert)
	if !ok {
		t.Fatalf("expected *ast.Assert, got %T", st)
	}
	if got := exprString(a.Condition); got != "(v_out within (1V within 2V))" {
		t.Errorf("unexpected condition: %s", got)
	}

	st = parseOne(t, "assert x <= 5\n")
	a = st.(*ast.Assert)
	if got := exprString(a.Condition); got != "(x <= 5)" {
		t.Errorf("unexpected condition: %s", got)
	}
}

func TestSimpleStatements(t *testing.T) {
	if _, ok := parseOne(t, "pass\n").(*ast.Pass); !ok {
		t.Errorf("expected a pass statement")
	}
	if _, ok := parseOne(t, "passive = 1\n").(*ast.Assignment); !ok {
		t.Errorf("expected \"passive\" to lex as an identifier")
	}

	st := parseOne(t, `"""Voltage divider."""`+"\n")
	if d, ok := st.(*ast.DocString); !ok || d.Text != "Voltage divider." {
		t.Fatalf("unexpected statement: %#v", st)
	}

	st = parseOne(t, "# layout note\n")
	if c, ok := st.(*ast.Comment); !ok || c.Text != "layout note" {
		t.Fatalf("unexpected statement: %#v", st)
	}

	st = parseOne(t, "10mV +/- 5%\n")
	b, ok := st.(*ast.BilateralQuantity)
	if !ok {
		t.Fatalf("expected *ast.BilateralQuantity, got %T", st)
	}
	if p, ok := b.Tolerance.(*ast.Percentage); !ok || p.Value != 5 {
		t.Errorf("unexpected tolerance: %#v", b.Tolerance)
	}

	st = parseOne(t, "42kohm\n")
	q, ok := st.(*ast.PhysicalQuantity)
	if !ok || q.Value != 42 || q.Unit != "kohm" {
		t.Fatalf("unexpected statement: %#v", st)
	}

	// The sign belongs to the quantity literal at statement level.
	st = parseOne(t, "-5.0ohm\n")
	q, ok = st.(*ast.PhysicalQuantity)
	if !ok || q.Value != -5 || q.Unit != "ohm" {
		t.Fatalf("unexpected statement: %#v", st)
	}
}

func TestSemicolonsAndTrailingComments(t *testing.T) {
	stmts, err := ParseFile("test", "a = 1; b = 2;\n")
	if err != nil {
		t.Fatalf("got error: %s", err.Error())
	}
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}

	stmts, err = ParseFile("test", "a = 1  # set a\n")
	if err != nil {
		t.Fatalf("got error: %s", err.Error())
	}
	if len(stmts) != 2 {
		t.Fatalf("expected assignment plus comment, got %d statements", len(stmts))
	}
	if c, ok := stmts[1].(*ast.Comment); !ok || c.Text != "set a" {
		t.Errorf("unexpected trailing comment: %#v", stmts[1])
	}
}
