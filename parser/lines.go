package parser

import (
	"strings"

	"github.com/cktlang/ckt"
	"github.com/cktlang/ckt/source"
)

// logicalLine is one statement line after continuation joining. offset is
// the byte position of the line's first character in the original text, so
// errors inside a joined line still point at the physical source.
type logicalLine struct {
	text   string
	indent int // indentation in columns, tabs expanded
	offset int // byte position of the body's first character
	blank  bool
}

// splitLogical breaks the source into logical lines. A backslash at the end
// of a physical line joins it with the next one using a single space; a
// backslash inside a string literal or after a "#" comment marker is plain
// text. Indentation is counted in columns with tabs advancing to the next
// multiple of eight.
func splitLogical(src *source.Source) ([]logicalLine, []*ckt.Error) {
	var lines []logicalLine
	var errs []*ckt.Error

	text := src.Content()
	offset := 0
	for offset < len(text) {
		lineStart := offset
		var joined strings.Builder

		for {
			physStart := offset
			end := strings.IndexByte(text[offset:], '\n')
			var raw string
			if end < 0 {
				raw = text[offset:]
				offset = len(text)
			} else {
				raw = text[offset : offset+end]
				offset += end + 1
			}
			raw = strings.TrimSuffix(raw, "\r")

			cont, pos, bad := continuationAt(raw)
			if bad {
				errs = append(errs, continuationError(src, physStart+pos, "line continuation is not at the end of the line"))
				raw = raw[:pos] + raw[pos+1:]
			}
			if joined.Len() > 0 {
				joined.WriteByte(' ')
			}
			if cont {
				joined.WriteString(raw[:pos])
			} else {
				joined.WriteString(raw)
			}
			if !cont {
				break
			}
			if offset >= len(text) {
				errs = append(errs, continuationError(src, physStart+pos, "line continuation at end of input"))
				break
			}
		}

		indent, body, bodyStart := measureIndent(joined.String())
		lines = append(lines, logicalLine{
			text:   body,
			indent: indent,
			offset: lineStart + bodyStart,
			blank:  strings.TrimSpace(body) == "",
		})
	}
	return lines, errs
}

// continuationAt scans one physical line for a continuation backslash.
// It reports whether the line continues, the backslash position, and
// whether a backslash sits outside a string or comment without ending
// the line, which is an error.
func continuationAt(line string) (cont bool, pos int, bad bool) {
	inString := false
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		if inString {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				inString = false
			}
			continue
		}
		switch c {
		case '"', '\'':
			inString = true
			quote = c
		case '#':
			return false, 0, false
		case '\\':
			if i == len(line)-1 {
				return true, i, false
			}
			return false, i, true
		}
	}
	return false, 0, false
}

func measureIndent(line string) (int, string, int) {
	col := 0
	i := 0
	for ; i < len(line); i++ {
		switch line[i] {
		case ' ':
			col++
		case '\t':
			col += 8 - col%8
		default:
			return col, line[i:], i
		}
	}
	return col, "", len(line)
}
