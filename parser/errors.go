package parser

import (
	"github.com/cktlang/ckt"
	"github.com/cktlang/ckt/source"
)

// Error codes used by parser:
const (
	// ErrSyntax is a generic grammar mismatch at a known byte offset.
	ErrSyntax = ckt.SyntaxErrors + iota

	// ErrIndentation indicates malformed block delimiting.
	ErrIndentation

	// ErrBlockType indicates a block keyword that is not one of
	// component/module/interface.
	ErrBlockType

	// ErrPhysicalQuantity indicates a malformed physical quantity literal.
	ErrPhysicalQuantity

	// ErrTolerance indicates a malformed tolerance after "+/-".
	ErrTolerance

	// ErrOperator indicates an unrecognized operator token.
	ErrOperator

	// ErrDepth indicates block nesting beyond Parser.MaxDepth.
	ErrDepth

	// ErrContinuation indicates a misplaced or dangling line continuation.
	ErrContinuation
)

func posError(src *source.Source, pos, code int, msg string, params ...any) *ckt.Error {
	return ckt.FormatErrorPos(src.SourcePos(pos), code, msg, params...).WithSnippet(src.Snippet(pos))
}

func syntaxError(src *source.Source, pos int, msg string, params ...any) *ckt.Error {
	return posError(src, pos, ErrSyntax, msg, params...)
}

func indentError(src *source.Source, pos int, msg string, params ...any) *ckt.Error {
	return posError(src, pos, ErrIndentation, msg, params...)
}

func blockTypeError(src *source.Source, pos int, keyword string) *ckt.Error {
	return posError(src, pos, ErrBlockType, "invalid block type %q, expected component, module, or interface", keyword)
}

func quantityError(src *source.Source, pos int, msg string, params ...any) *ckt.Error {
	return posError(src, pos, ErrPhysicalQuantity, msg, params...)
}

func toleranceError(src *source.Source, pos int) *ckt.Error {
	return posError(src, pos, ErrTolerance, "expected a percentage or an absolute quantity after tolerance sign")
}

func operatorError(src *source.Source, pos int, op string) *ckt.Error {
	return posError(src, pos, ErrOperator, "unrecognized operator %q", op)
}

func depthError(src *source.Source, pos, limit int) *ckt.Error {
	return posError(src, pos, ErrDepth, "block nesting exceeds %d levels", limit)
}

func continuationError(src *source.Source, pos int, msg string) *ckt.Error {
	return posError(src, pos, ErrContinuation, msg)
}
