package parser

import (
	"strings"

	"github.com/cktlang/ckt"
	"github.com/cktlang/ckt/ast"
	"github.com/cktlang/ckt/source"
)

// fileParser walks logical lines and builds statement bodies from
// indentation. In recovery mode a bad line is recorded and skipped (a bad
// block header drops its whole indented body) and parsing continues.
type fileParser struct {
	p       *Parser
	src     *source.Source
	lines   []logicalLine
	i       int
	recover bool
	errs    []*ckt.Error
}

// parseBody collects statements indented deeper than parentIndent. The
// first statement fixes the body's indentation and every sibling must match
// it. Comment-only lines are kept but exempt from indentation checks.
func (f *fileParser) parseBody(parentIndent, depth int) ([]ast.Statement, *ckt.Error) {
	var body []ast.Statement
	bodyIndent := -1

	for f.i < len(f.lines) {
		line := f.lines[f.i]
		if line.blank {
			f.i++
			continue
		}
		if line.indent <= parentIndent {
			return body, nil
		}
		// Comments deeper than the parent belong to this body but are
		// exempt from the sibling-indent equality check.
		if strings.HasPrefix(line.text, "#") {
			sc := newScanner(f.src, line.text, line.offset)
			if text, ok := sc.comment(); ok {
				body = append(body, &ast.Comment{Text: text})
			}
			f.i++
			continue
		}

		if bodyIndent < 0 {
			bodyIndent = line.indent
		} else if line.indent != bodyIndent {
			err := indentError(f.src, line.offset, "unexpected indent of %d columns, expected %d", line.indent, bodyIndent)
			if !f.recover {
				return nil, err
			}
			f.errs = append(f.errs, err)
			f.skipBlock(line.indent)
			continue
		}

		st, err, isHeader := f.tryBlockHeader(line, depth)
		if isHeader {
			if err != nil {
				if !f.recover {
					return nil, err
				}
				f.errs = append(f.errs, err)
				f.skipBlock(line.indent)
				continue
			}
			body = append(body, st)
			continue
		}

		sc := newScanner(f.src, line.text, line.offset)
		stmts, serr := sc.parseStatements()
		if serr != nil {
			if !f.recover {
				return nil, serr
			}
			f.errs = append(f.errs, serr)
			f.i++
			continue
		}
		body = append(body, stmts...)
		f.i++
	}
	return body, nil
}

// skipBlock drops the line at the cursor together with any lines indented
// deeper than it.
func (f *fileParser) skipBlock(indent int) {
	f.i++
	for f.i < len(f.lines) {
		line := f.lines[f.i]
		if !line.blank && line.indent <= indent {
			return
		}
		f.i++
	}
}

// tryBlockHeader recognizes "component Name:", "module Name from Parent:"
// and the interface form. A line shaped like a header whose first word is
// not a block keyword is reported as ErrBlockType rather than falling
// through to the statement grammar. A header may carry an inline body after
// the colon; otherwise the indented lines below it are parsed as the body.
func (f *fileParser) tryBlockHeader(line logicalLine, depth int) (ast.Statement, *ckt.Error, bool) {
	sc := newScanner(f.src, line.text, line.offset)
	word, ok := sc.identifier()
	if !ok {
		return nil, nil, false
	}

	var blockType ast.BlockType
	switch word {
	case "component":
		blockType = ast.Component
	case "module":
		blockType = ast.Module
	case "interface":
		blockType = ast.Interface
	default:
		if headerShape(sc) {
			return nil, blockTypeError(f.src, line.offset, word), true
		}
		return nil, nil, false
	}

	if !sc.space1() {
		return nil, nil, false
	}
	name, ok := sc.identifier()
	if !ok {
		return nil, syntaxError(f.src, sc.errPos(), "expected a block name after %q", word), true
	}

	parent := ""
	save := sc.pos
	if sc.space1() && sc.keyword("from") {
		if !sc.space1() {
			return nil, syntaxError(f.src, sc.errPos(), "expected a parent name after \"from\""), true
		}
		parent, ok = sc.dottedIdentifier()
		if !ok {
			return nil, syntaxError(f.src, sc.errPos(), "expected a parent name after \"from\""), true
		}
	} else {
		sc.pos = save
	}

	sc.skipSpace()
	if !sc.lit(":") {
		return nil, syntaxError(f.src, sc.errPos(), "expected \":\" after block header"), true
	}

	sc.skipSpace()
	// A comment after the colon annotates the header; the body is still
	// the indented lines below.
	var headerComment *ast.Comment
	if text, ok := sc.comment(); ok {
		headerComment = &ast.Comment{Text: text}
	}

	var body []ast.Statement
	if !sc.eof() {
		var err *ckt.Error
		body, err = sc.parseStatements()
		if err != nil {
			return nil, err, true
		}
		f.i++
	} else {
		if depth+1 > f.p.maxDepth() {
			return nil, depthError(f.src, line.offset, f.p.maxDepth()), true
		}
		f.i++
		var err *ckt.Error
		body, err = f.parseBody(line.indent, depth+1)
		if err != nil {
			return nil, err, true
		}
	}
	if headerComment != nil {
		body = append([]ast.Statement{headerComment}, body...)
	}
	return &ast.Block{Type: blockType, Name: name, Parent: parent, Body: body}, nil, true
}

// headerShape reports whether the rest of a line after its first word looks
// like a block header ("Name:" or "Name from Parent:").
func headerShape(sc *scanner) bool {
	if !sc.space1() {
		return false
	}
	if _, ok := sc.identifier(); !ok {
		return false
	}
	save := sc.pos
	if sc.space1() && sc.keyword("from") && sc.space1() {
		if _, ok := sc.dottedIdentifier(); !ok {
			return false
		}
	} else {
		sc.pos = save
	}
	sc.skipSpace()
	return sc.lit(":")
}
