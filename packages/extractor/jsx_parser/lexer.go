package jsx_parser

import (
	"strings"

	"i18next-parser-go/packages/extractor/util"
)

// cursor moves through source text tracking offset, line and column
type cursor struct {
	file   *util.ParseSourceFile
	input  string
	offset int
	line   int
	col    int
}

// newCursor creates a cursor positioned at the start of the file
func newCursor(file *util.ParseSourceFile) *cursor {
	return &cursor{
		file:  file,
		input: file.Content,
	}
}

// eof reports whether the cursor has consumed all input
func (c *cursor) eof() bool {
	return c.offset >= len(c.input)
}

// peek returns the current byte, or 0 at end of input
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.input[c.offset]
}

// peekAt returns the byte n positions ahead, or 0 past end of input
func (c *cursor) peekAt(n int) byte {
	if c.offset+n >= len(c.input) {
		return 0
	}
	return c.input[c.offset+n]
}

// advance moves the cursor forward by one byte
func (c *cursor) advance() {
	if c.eof() {
		return
	}
	if c.input[c.offset] == '\n' {
		c.line++
		c.col = 0
	} else {
		c.col++
	}
	c.offset++
}

// clone returns a copy of the cursor state
func (c *cursor) clone() cursor {
	return *c
}

// restore resets the cursor to a previously cloned state
func (c *cursor) restore(state cursor) {
	*c = state
}

// location returns the current position as a ParseLocation
func (c *cursor) location() *util.ParseLocation {
	return util.NewParseLocation(c.file, c.offset, c.line, c.col)
}

// spanFrom returns a span from a cloned start state to the current position
func (c *cursor) spanFrom(start cursor) *util.ParseSourceSpan {
	return util.NewParseSourceSpan(
		util.NewParseLocation(c.file, start.offset, start.line, start.col),
		c.location(),
	)
}

// chars returns the source text between a cloned start state and the cursor
func (c *cursor) chars(start cursor) string {
	return c.input[start.offset:c.offset]
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isIdentifierStart(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_' || ch == '$'
}

func isIdentifierPart(ch byte) bool {
	return isIdentifierStart(ch) || ch >= '0' && ch <= '9'
}

// isTagNamePart additionally allows member access and dashes in tag names
// (Foo.Trans, custom-element)
func isTagNamePart(ch byte) bool {
	return isIdentifierPart(ch) || ch == '.' || ch == '-'
}

// skipWhitespace advances past any whitespace
func (c *cursor) skipWhitespace() {
	for !c.eof() && isWhitespace(c.peek()) {
		c.advance()
	}
}

// readIdentifier consumes and returns an identifier, or "" when the cursor is
// not at an identifier start
func (c *cursor) readIdentifier() string {
	if !isIdentifierStart(c.peek()) {
		return ""
	}
	start := c.clone()
	for !c.eof() && isIdentifierPart(c.peek()) {
		c.advance()
	}
	return c.chars(start)
}

// readTagName consumes and returns an element tag name
func (c *cursor) readTagName() string {
	if !isIdentifierStart(c.peek()) {
		return ""
	}
	start := c.clone()
	for !c.eof() && isTagNamePart(c.peek()) {
		c.advance()
	}
	return c.chars(start)
}

// skipString advances past a single- or double-quoted string literal,
// including the closing quote. The cursor must be on the opening quote.
func (c *cursor) skipString() {
	quote := c.peek()
	c.advance()
	for !c.eof() {
		ch := c.peek()
		if ch == '\\' {
			c.advance()
			c.advance()
			continue
		}
		c.advance()
		if ch == quote {
			return
		}
	}
}

// skipTemplate advances past a template literal, descending into ${...}
// substitutions so braces and quotes inside them do not terminate the scan.
// The cursor must be on the opening backtick.
func (c *cursor) skipTemplate() {
	c.advance()
	for !c.eof() {
		ch := c.peek()
		if ch == '\\' {
			c.advance()
			c.advance()
			continue
		}
		if ch == '`' {
			c.advance()
			return
		}
		if ch == '$' && c.peekAt(1) == '{' {
			c.advance()
			c.skipBraced()
			continue
		}
		c.advance()
	}
}

// skipBraced advances past a balanced {...} group, respecting nested strings,
// templates and comments. The cursor must be on the opening brace.
func (c *cursor) skipBraced() {
	depth := 0
	for !c.eof() {
		switch c.peek() {
		case '{':
			depth++
			c.advance()
		case '}':
			depth--
			c.advance()
			if depth == 0 {
				return
			}
		case '\'', '"':
			c.skipString()
		case '`':
			c.skipTemplate()
		case '/':
			c.skipCommentOrSlash()
		default:
			c.advance()
		}
	}
}

// skipCommentOrSlash advances past a // or /* comment, or a single slash when
// the cursor is not at a comment
func (c *cursor) skipCommentOrSlash() {
	if c.peekAt(1) == '/' {
		for !c.eof() && c.peek() != '\n' {
			c.advance()
		}
		return
	}
	if c.peekAt(1) == '*' {
		c.advance()
		c.advance()
		for !c.eof() {
			if c.peek() == '*' && c.peekAt(1) == '/' {
				c.advance()
				c.advance()
				return
			}
			c.advance()
		}
		return
	}
	c.advance()
}

// readBraced consumes a balanced {...} group and returns its inner text.
// The cursor must be on the opening brace. Returns false when the group is
// unterminated.
func (c *cursor) readBraced() (string, bool) {
	start := c.clone()
	c.skipBraced()
	text := c.chars(start)
	if len(text) < 2 || text[len(text)-1] != '}' {
		return "", false
	}
	return text[1 : len(text)-1], true
}

// normalizeText applies JSX text semantics to a raw text run: a run that is
// nothing but whitespace around a newline disappears, and any interior
// whitespace run containing a newline collapses to a single space. Whitespace
// that stays on one line is preserved.
func normalizeText(raw string) (string, bool) {
	if strings.ContainsRune(raw, '\n') && strings.TrimSpace(raw) == "" {
		return "", false
	}
	var b strings.Builder
	i := 0
	for i < len(raw) {
		ch := raw[i]
		if isWhitespace(ch) {
			j := i
			newline := false
			for j < len(raw) && isWhitespace(raw[j]) {
				if raw[j] == '\n' {
					newline = true
				}
				j++
			}
			if newline {
				b.WriteByte(' ')
			} else {
				b.WriteString(raw[i:j])
			}
			i = j
			continue
		}
		b.WriteByte(ch)
		i++
	}
	return b.String(), true
}
