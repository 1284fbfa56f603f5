package parser

import (
	"testing"

	"github.com/cktlang/ckt"
	"github.com/cktlang/ckt/ast"
)

const dividerSrc = `from parts.passive import Resistor

module VoltageDivider:
    """Two resistors in series."""
    r_top = new Resistor
    r_bottom = new Resistor
    v_in: Voltage
    r_top.p2 ~ r_bottom.p1
    assert v_in within 1V to 5V
`

func TestParseFileBlocks(t *testing.T) {
	stmts, err := ParseFile("divider", dividerSrc)
	if err != nil {
		t.Fatalf("got error: %s", err.Error())
	}
	if len(stmts) != 2 {
		t.Fatalf("expected 2 top-level statements, got %d", len(stmts))
	}
	block, ok := stmts[1].(*ast.Block)
	if !ok {
		t.Fatalf("expected *ast.Block, got %T", stmts[1])
	}
	if block.Type != ast.Module || block.Name != "VoltageDivider" || block.Parent != "" {
		t.Errorf("unexpected block header: %s %q from %q", block.Type, block.Name, block.Parent)
	}
	if len(block.Body) != 6 {
		t.Fatalf("expected 6 body statements, got %d", len(block.Body))
	}
	if _, ok := block.Body[0].(*ast.DocString); !ok {
		t.Errorf("expected a docstring first, got %T", block.Body[0])
	}
}

func TestBlockForms(t *testing.T) {
	st := parseOne(t, "component Res from generics.Resistor:\n    pass\n")
	block := st.(*ast.Block)
	if block.Type != ast.Component || block.Parent != "generics.Resistor" {
		t.Errorf("unexpected block header: %s from %q", block.Type, block.Parent)
	}
	if len(block.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(block.Body))
	}

	st = parseOne(t, "interface Power:\n    signal vcc\n    signal gnd\n")
	block = st.(*ast.Block)
	if block.Type != ast.Interface || len(block.Body) != 2 {
		t.Errorf("unexpected block: %s with %d statements", block.Type, len(block.Body))
	}
}

func TestInlineBlockBody(t *testing.T) {
	st := parseOne(t, "component Stub: pass\n")
	block := st.(*ast.Block)
	if len(block.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(block.Body))
	}
	if _, ok := block.Body[0].(*ast.Pass); !ok {
		t.Errorf("expected a pass statement, got %T", block.Body[0])
	}

	st = parseOne(t, "component Two: signal a; signal b\n")
	block = st.(*ast.Block)
	if len(block.Body) != 2 {
		t.Errorf("expected 2 body statements, got %d", len(block.Body))
	}
}

func TestBlockHeaderTrailingComment(t *testing.T) {
	st := parseOne(t, "module M:  # note\n    pin 1\n")
	block := st.(*ast.Block)
	if len(block.Body) != 2 {
		t.Fatalf("expected 2 body statements, got %d", len(block.Body))
	}
	if c, ok := block.Body[0].(*ast.Comment); !ok || c.Text != "note" {
		t.Errorf("expected the header comment first, got %#v", block.Body[0])
	}
	if _, ok := block.Body[1].(*ast.PinDef); !ok {
		t.Errorf("expected the indented body after the comment, got %T", block.Body[1])
	}
}

func TestDedentedCommentEndsBlock(t *testing.T) {
	stmts, err := ParseFile("test", "module M:\n    pass\n# top\nx = 1\n")
	if err != nil {
		t.Fatalf("got error: %s", err.Error())
	}
	if len(stmts) != 3 {
		t.Fatalf("expected 3 top-level statements, got %d", len(stmts))
	}
	block := stmts[0].(*ast.Block)
	if len(block.Body) != 1 {
		t.Errorf("expected 1 statement inside the block, got %d", len(block.Body))
	}
	if c, ok := stmts[1].(*ast.Comment); !ok || c.Text != "top" {
		t.Errorf("expected a top-level comment, got %#v", stmts[1])
	}
	if _, ok := stmts[2].(*ast.Assignment); !ok {
		t.Errorf("expected the assignment at top level, got %T", stmts[2])
	}
}

func TestNestedBlocks(t *testing.T) {
	src := `module Outer:
    component Inner:
        pin 1
    signal after
`
	st := parseOne(t, src)
	outer := st.(*ast.Block)
	if len(outer.Body) != 2 {
		t.Fatalf("expected 2 statements in Outer, got %d", len(outer.Body))
	}
	inner, ok := outer.Body[0].(*ast.Block)
	if !ok || inner.Name != "Inner" || len(inner.Body) != 1 {
		t.Fatalf("unexpected inner block: %#v", outer.Body[0])
	}
	if _, ok := outer.Body[1].(*ast.SignalDef); !ok {
		t.Errorf("dedent did not return to Outer, got %T", outer.Body[1])
	}
}

func TestIndentationErrors(t *testing.T) {
	e := parseError(t, "module M:\n    pin 1\n      pin 2\n")
	if e.Code != ErrIndentation {
		t.Errorf("expected ErrIndentation, got %d (%s)", e.Code, e.Message)
	}
	if e.Line != 3 {
		t.Errorf("expected error on line 3, got %d", e.Line)
	}
}

func TestBlockTypeError(t *testing.T) {
	e := parseError(t, "widget Foo:\n    pass\n")
	if e.Code != ErrBlockType {
		t.Errorf("expected ErrBlockType, got %d (%s)", e.Code, e.Message)
	}
}

func TestMaxDepth(t *testing.T) {
	src := "module A:\n    module B:\n        module C:\n            pass\n"
	p := Parser{MaxDepth: 2}
	_, err := p.ParseFile("deep", src)
	ce, ok := err.(*ckt.Error)
	if !ok || ce.Code != ErrDepth {
		t.Fatalf("expected ErrDepth, got %v", err)
	}

	if _, err := ParseFile("deep", src); err != nil {
		t.Errorf("default depth limit rejected shallow nesting: %s", err.Error())
	}
}

func TestLineContinuation(t *testing.T) {
	stmts, err := ParseFile("test", "x = 1 + \\\n    2\n")
	if err != nil {
		t.Fatalf("got error: %s", err.Error())
	}
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	a := stmts[0].(*ast.Assignment)
	if got := exprString(a.Value); got != "(1 + 2)" {
		t.Errorf("unexpected value: %s", got)
	}

	// A backslash inside a string literal is content, not a continuation.
	if _, err := ParseFile("test", "y = \"back\\\\slash\"\n"); err != nil {
		t.Errorf("got error: %s", err.Error())
	}
}

func TestContinuationErrors(t *testing.T) {
	if e := parseError(t, "x = \\ 5\n"); e.Code != ErrContinuation {
		t.Errorf("expected ErrContinuation, got %d (%s)", e.Code, e.Message)
	}
	if e := parseError(t, "x = 1 + \\"); e.Code != ErrContinuation {
		t.Errorf("expected ErrContinuation, got %d (%s)", e.Code, e.Message)
	}
}

func TestRecovery(t *testing.T) {
	src := `a = 1
x %= 5
module M:
    pin 1
    widget broken
b = 2
`
	stmts, errs := ParseLines("test", src)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}
	if len(stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(stmts))
	}
	block, ok := stmts[1].(*ast.Block)
	if !ok || len(block.Body) != 1 {
		t.Fatalf("expected block with 1 surviving statement, got %#v", stmts[1])
	}
	if _, ok := stmts[2].(*ast.Assignment); !ok {
		t.Errorf("parsing did not resume after errors, got %T", stmts[2])
	}
}

func TestRecoverySkipsBadBlockBody(t *testing.T) {
	src := `widget Foo:
    pin 1
    pin 2
b = 2
`
	stmts, errs := ParseLines("test", src)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	if _, ok := stmts[0].(*ast.Assignment); !ok {
		t.Errorf("expected the assignment after the bad block, got %T", stmts[0])
	}
}

func TestErrorPositions(t *testing.T) {
	e := parseError(t, "a = 1\nb = )\n")
	if e.Line != 2 {
		t.Errorf("expected line 2, got %d", e.Line)
	}
	if e.Col != 5 {
		t.Errorf("expected column 5, got %d", e.Col)
	}
	if e.SourceName != "test" {
		t.Errorf("expected source name in error, got %q", e.SourceName)
	}
	if e.Snippet != "b = )" {
		t.Errorf("expected offending line in snippet, got %q", e.Snippet)
	}
}

func TestEmptyInput(t *testing.T) {
	stmts, err := ParseFile("test", "")
	if err != nil || len(stmts) != 0 {
		t.Errorf("expected empty result, got %d statements, %v", len(stmts), err)
	}
	stmts, err = ParseFile("test", "\n\n   \n")
	if err != nil || len(stmts) != 0 {
		t.Errorf("expected empty result, got %d statements, %v", len(stmts), err)
	}
}
