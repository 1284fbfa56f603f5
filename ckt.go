/*
Package ckt is a grammar engine for the ckt hardware-description language:
component/module/interface declarations, pin and signal topology, physical
quantities with units and tolerances, expressions, and imports.

Consists of subpackages:
  - ast: typed abstract syntax tree (statements, expressions, quantities)
    and conversion to generic tagged maps;
  - parser: lexical primitives, quantity literals, expression/statement/block
    grammar, line-continuation preprocessing, and the parse drivers;
  - source: source text with position index used for error reporting;
  - cmd/cktdump: console utility dumping the parsed tree as JSON.

Typical usage is:

1. Read a source file into memory (the engine performs no I/O).

2. Call parser.ParseFile for a strict whole-file parse, or parser.ParseLines
for a permissive parse that skips unparseable lines and reports them
separately, so tooling still gets a partial tree for a broken file.

3. Walk the resulting []ast.Statement with type switches, or convert nodes
with ast.StatementMap for serialization by a host environment.

The engine is stateless and purely functional over its input: parse calls may
run concurrently on different files with no coordination.
*/
package ckt

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	SourceErrors = 1   // used by source
	SyntaxErrors = 101 // used by parser
)

// Error is the error type used by ckt subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int

	// Snippet contains the text of the offending source line or empty string.
	Snippet string
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos implements this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d, column %d", name, line, col)
	}
	return &Error{Code: code, Message: msg, SourceName: name, Line: line, Col: col}
}

// Error returns Error.Message followed by the source snippet if one is attached.
func (e *Error) Error() string {
	if e.Snippet != "" {
		return e.Message + "\n" + e.Snippet
	}
	return e.Message
}

// WithSnippet attaches the offending source line to the error and returns it.
func (e *Error) WithSnippet(snippet string) *Error {
	e.Snippet = snippet
	return e
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}
