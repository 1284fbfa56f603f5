package parser

import (
	"strconv"
	"strings"

	"github.com/cktlang/ckt/source"
)

// scanner is a cursor over a single logical line. base is the byte offset of
// the line within the original source, so failures can be reported with full
// positional context. All recognizers are pure: they either consume input
// and succeed, or leave the position untouched and fail, which is what makes
// first-match-wins alternation cheap.
type scanner struct {
	src  *source.Source
	text string
	pos  int
	base int
}

func newScanner(src *source.Source, text string, base int) *scanner {
	return &scanner{src: src, text: text, base: base}
}

// errPos maps the current position back to a byte offset in the source.
// Positions inside a joined continuation line are approximate past the
// first physical segment.
func (s *scanner) errPos() int {
	return s.base + s.pos
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.text)
}

func (s *scanner) peek() byte {
	if s.pos >= len(s.text) {
		return 0
	}
	return s.text[s.pos]
}

func (s *scanner) rest() string {
	return s.text[s.pos:]
}

func (s *scanner) mark() int {
	return s.pos
}

func (s *scanner) reset(pos int) {
	s.pos = pos
}

// skipSpace skips spaces and tabs. Logical lines never contain newlines.
func (s *scanner) skipSpace() {
	for s.pos < len(s.text) && (s.text[s.pos] == ' ' || s.text[s.pos] == '\t') {
		s.pos++
	}
}

// space1 requires at least one space or tab and skips the run.
func (s *scanner) space1() bool {
	if s.eof() || (s.text[s.pos] != ' ' && s.text[s.pos] != '\t') {
		return false
	}
	s.skipSpace()
	return true
}

// lit consumes the exact literal if it is next.
func (s *scanner) lit(text string) bool {
	if !strings.HasPrefix(s.rest(), text) {
		return false
	}
	s.pos += len(text)
	return true
}

// keyword consumes the literal only when it ends at an identifier boundary,
// so "newt" or "passive" lex as plain identifiers.
func (s *scanner) keyword(kw string) bool {
	if !strings.HasPrefix(s.rest(), kw) {
		return false
	}
	if next := s.pos + len(kw); next < len(s.text) && isIdentChar(s.text[next]) {
		return false
	}
	s.pos += len(kw)
	return true
}

// identifier recognizes [A-Za-z_][A-Za-z0-9_]*; fails on a leading digit.
func (s *scanner) identifier() (string, bool) {
	if s.eof() || !isIdentStart(s.text[s.pos]) {
		return "", false
	}
	start := s.pos
	for s.pos < len(s.text) && isIdentChar(s.text[s.pos]) {
		s.pos++
	}
	return s.text[start:s.pos], true
}

// dottedIdentifier recognizes ident(.ident)* as a single dotted name.
func (s *scanner) dottedIdentifier() (string, bool) {
	start := s.pos
	if _, ok := s.identifier(); !ok {
		return "", false
	}
	for s.peek() == '.' {
		save := s.pos
		s.pos++
		if _, ok := s.identifier(); !ok {
			s.pos = save
			break
		}
	}
	return s.text[start:s.pos], true
}

// number recognizes an optional leading minus, digits, an optional
// fractional part, and an optional exponent, parsed as a 64-bit float.
// The exponent marker is only consumed when digits follow it, so "1eV"
// leaves "eV" for a unit suffix while "1e3V" reads as 1000 with unit "V".
func (s *scanner) number() (float64, bool) {
	start := s.pos
	if s.peek() == '-' {
		s.pos++
	}
	if !s.digitRun() {
		s.pos = start
		return 0, false
	}
	if s.peek() == '.' {
		save := s.pos
		s.pos++
		if !s.digitRun() {
			s.pos = save
		}
	}
	if c := s.peek(); c == 'e' || c == 'E' {
		save := s.pos
		s.pos++
		if c := s.peek(); c == '+' || c == '-' {
			s.pos++
		}
		if !s.digitRun() {
			s.pos = save
		}
	}

	value, e := strconv.ParseFloat(s.text[start:s.pos], 64)
	if e != nil {
		s.pos = start
		return 0, false
	}
	return value, true
}

func (s *scanner) digitRun() bool {
	start := s.pos
	for s.pos < len(s.text) && isDigit(s.text[s.pos]) {
		s.pos++
	}
	return s.pos > start
}

// integer recognizes a bare digit run as an int64 (used for pin numbers).
func (s *scanner) integer() (int64, bool) {
	start := s.pos
	if !s.digitRun() {
		return 0, false
	}
	value, e := strconv.ParseInt(s.text[start:s.pos], 10, 64)
	if e != nil {
		s.pos = start
		return 0, false
	}
	return value, true
}

var stringDelims = [...]string{`"""`, "'''", `"`, "'"}

// stringLit recognizes triple-double, triple-single, single-double, and
// single-single quoted literals, tried in that order so triple-quoted
// content is not truncated at the first embedded quote. The content is
// returned verbatim with only the delimiters stripped.
func (s *scanner) stringLit() (string, bool) {
	for _, delim := range stringDelims {
		save := s.pos
		if !s.lit(delim) {
			continue
		}
		end := strings.Index(s.rest(), delim)
		if end < 0 {
			s.pos = save
			continue
		}
		content := s.text[s.pos : s.pos+end]
		s.pos += end + len(delim)
		return content, true
	}
	return "", false
}

// comment recognizes "#" through end of line; the leading "#" is stripped
// and surrounding whitespace trimmed.
func (s *scanner) comment() (string, bool) {
	if s.peek() != '#' {
		return "", false
	}
	text := s.text[s.pos+1:]
	s.pos = len(s.text)
	return strings.TrimSpace(text), true
}

// atStmtEnd reports whether only a statement terminator follows: end of
// line, a ";" separator, or a trailing comment. The position is untouched.
func (s *scanner) atStmtEnd() bool {
	pos := s.pos
	s.skipSpace()
	end := s.eof() || s.peek() == ';' || s.peek() == '#'
	s.pos = pos
	return end
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
