// Package source defines immutable source text with a position index
// mapping byte offsets to lines and columns for error reporting.
package source

import (
	"strings"
	"unicode/utf8"
)

// Source holds named source text and a precomputed index of line starts.
// It is immutable and safe for concurrent use.
type Source struct {
	name       string
	content    string
	lineStarts []int
}

// New creates a Source and scans content for line starts.
func New(name, content string) *Source {
	lineCnt := strings.Count(content, "\n") + 1
	starts := make([]int, 1, lineCnt)
	starts[0] = 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Source{name: name, content: content, lineStarts: starts}
}

// Name returns the source name or empty string.
func (s *Source) Name() string {
	return s.name
}

// Content returns the full source text.
func (s *Source) Content() string {
	return s.content
}

// Len returns the source length in bytes.
func (s *Source) Len() int {
	return len(s.content)
}

// LineCol maps a byte offset to 1-based line and column numbers.
// The column counts runes, not bytes. Offsets outside the content are
// clamped to its bounds.
func (s *Source) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.content) {
		pos = len(s.content)
	}

	index := s.lineIndex(pos)
	start := s.lineStarts[index]
	return index + 1, utf8.RuneCountInString(s.content[start:pos]) + 1
}

// Pos maps 1-based line and column numbers back to a byte offset,
// clamped to the content bounds.
func (s *Source) Pos(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}
	if line > len(s.lineStarts) {
		return len(s.content)
	}

	pos := s.lineStarts[line-1] + col - 1
	if pos > len(s.content) {
		pos = len(s.content)
	}
	return pos
}

// LineText returns the text of the given 1-based line without the
// trailing newline, or empty string for a line number out of range.
func (s *Source) LineText(line int) string {
	if line <= 0 || line > len(s.lineStarts) {
		return ""
	}

	start := s.lineStarts[line-1]
	end := len(s.content)
	if line < len(s.lineStarts) {
		end = s.lineStarts[line] - 1
	}
	return strings.TrimSuffix(s.content[start:end], "\r")
}

// Snippet returns the full text of the line containing the given byte offset.
func (s *Source) Snippet(pos int) string {
	line, _ := s.LineCol(pos)
	return s.LineText(line)
}

// SourcePos builds a Pos for the given byte offset.
func (s *Source) SourcePos(pos int) Pos {
	line, col := s.LineCol(pos)
	return Pos{src: s, pos: pos, line: line, col: col}
}

// lineIndex finds the 0-based index of the line containing pos
// using binary search over line starts.
func (s *Source) lineIndex(pos int) int {
	lo, hi := 0, len(s.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) >> 1
		if s.lineStarts[mid] <= pos {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// Pos is a resolved position within a Source. It implements ckt.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

func (p Pos) Source() *Source {
	return p.src
}

// SourceName returns the name of the underlying source or empty string.
func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.Name()
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}
