package ast_test

import (
	"reflect"
	"testing"

	"github.com/cktlang/ckt/ast"
	"github.com/cktlang/ckt/parser"
)

// Rendered source must parse back to the same tree. Inputs here are already
// in canonical form so the comparison can be exact.
func TestRenderRoundTrip(t *testing.T) {
	samples := []string{
		"from parts.passive import Resistor, Capacitor",
		"import generics.interfaces",
		"from \"lib/resistor.ckt\" import Resistor",
		"r1: Resistor = new Resistor",
		"v = 3.3V",
		"v = 10V +/- 5%",
		"v = 3.3V +/- 0.1V",
		"r = 1ohm to 10ohm",
		"rated += 10mW",
		"flags |= mask",
		"x = 1 + 2 * 3",
		"x = (1 + 2) * 3",
		"r1.p2 ~ r2.p1",
		"signal gnd ~ vcc",
		"v_out: Voltage",
		"retype r1 as PowerResistor",
		"pin 12",
		"pin A3",
		"pin \"A-3\"",
		"signal v_in",
		"assert v_out within 1V to 2V",
		"pass",
		"# note",
		"\"doc line\"",
		"42kohm",
		"10mV +/- 5%",
	}

	for i, src := range samples {
		first, err := parser.ParseFile("render", src+"\n")
		if err != nil {
			t.Errorf("sample #%d %q: parse error: %s", i, src, err.Error())
			continue
		}
		rendered := ast.RenderFile(first)
		second, err := parser.ParseFile("render", rendered)
		if err != nil {
			t.Errorf("sample #%d %q: reparse error on %q: %s", i, src, rendered, err.Error())
			continue
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("sample #%d %q: trees differ after rendering to %q", i, src, rendered)
		}
	}
}

func TestRenderBlock(t *testing.T) {
	block := &ast.Block{
		Type:   ast.Module,
		Name:   "Divider",
		Parent: "Base",
		Body: []ast.Statement{
			&ast.SignalDef{Name: "v_in"},
			&ast.Block{Type: ast.Component, Name: "Inner", Body: []ast.Statement{&ast.Pass{}}},
		},
	}
	want := "module Divider from Base:\n    signal v_in\n    component Inner:\n        pass"
	if got := ast.Render(block); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	// An empty body still renders a parseable block.
	empty := &ast.Block{Type: ast.Interface, Name: "Null"}
	want = "interface Null:\n    pass"
	if got := ast.Render(empty); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRenderBlockRoundTrip(t *testing.T) {
	src := "module Divider:\n    r_top = new Resistor\n    r_top.p2 ~ out\n"
	first, err := parser.ParseFile("render", src)
	if err != nil {
		t.Fatalf("parse error: %s", err.Error())
	}
	second, err := parser.ParseFile("render", ast.RenderFile(first))
	if err != nil {
		t.Fatalf("reparse error: %s", err.Error())
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("trees differ after rendering")
	}
}
