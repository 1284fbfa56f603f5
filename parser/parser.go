// Package parser turns circuit description text into the syntax tree
// defined by the ast package. Parser is the configurable entry point;
// the package-level ParseFile and ParseLines cover the common case.
package parser

import (
	"github.com/cktlang/ckt"
	"github.com/cktlang/ckt/ast"
	"github.com/cktlang/ckt/source"
)

// DefaultMaxDepth bounds block nesting when Parser.MaxDepth is zero.
const DefaultMaxDepth = 64

type Parser struct {
	// MaxDepth limits block nesting; zero means DefaultMaxDepth.
	MaxDepth int
}

func (p *Parser) maxDepth() int {
	if p.MaxDepth > 0 {
		return p.MaxDepth
	}
	return DefaultMaxDepth
}

// ParseFile parses a complete source text and stops at the first error.
// The returned error, when not nil, is a *ckt.Error carrying the source
// name, position, and offending line.
func (p *Parser) ParseFile(name, text string) ([]ast.Statement, error) {
	src := source.New(name, text)
	lines, errs := splitLogical(src)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	f := &fileParser{p: p, src: src, lines: lines}
	body, err := f.parseBody(-1, 0)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// ParseLines parses a complete source text in recovery mode: every line
// that fails to parse is reported and skipped, and parsing continues with
// the next one. It always consumes the whole input and returns whatever
// statements were recognized alongside the collected errors.
func (p *Parser) ParseLines(name, text string) ([]ast.Statement, []*ckt.Error) {
	src := source.New(name, text)
	lines, errs := splitLogical(src)
	f := &fileParser{p: p, src: src, lines: lines, recover: true, errs: errs}
	body, _ := f.parseBody(-1, 0)
	return body, f.errs
}

// ParseExpression parses a single expression occupying the whole text.
func (p *Parser) ParseExpression(name, text string) (ast.Expression, error) {
	src := source.New(name, text)
	sc := newScanner(src, text, 0)
	sc.skipSpace()
	expr, err := sc.parseExpression()
	if err != nil {
		return nil, err
	}
	sc.skipSpace()
	if !sc.eof() {
		return nil, syntaxError(src, sc.errPos(), "unexpected trailing input %q", sc.rest())
	}
	return expr, nil
}

// ParseFile parses text with default settings, stopping at the first error.
func ParseFile(name, text string) ([]ast.Statement, error) {
	var p Parser
	return p.ParseFile(name, text)
}

// ParseLines parses text with default settings in recovery mode.
func ParseLines(name, text string) ([]ast.Statement, []*ckt.Error) {
	var p Parser
	return p.ParseLines(name, text)
}

// ParseExpression parses a single expression with default settings.
func ParseExpression(name, text string) (ast.Expression, error) {
	var p Parser
	return p.ParseExpression(name, text)
}
