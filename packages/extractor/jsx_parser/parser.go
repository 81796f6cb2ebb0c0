package jsx_parser

import (
	"fmt"
	"strings"

	"i18next-parser-go/packages/extractor/ast"
	"i18next-parser-go/packages/extractor/util"
)

// Options configures a parse pass
type Options struct {
	// Components is the allow-list of component names treated as Trans-nodes
	Components []string
}

// ParseResult holds the Trans-like elements found in one source file together
// with any recoverable parse errors
type ParseResult struct {
	Elements []*ast.Element
	Errors   []*util.ParseError
}

// Parse scans a JSX/TSX source file for invocations of allow-listed
// components and builds a markup AST subtree for each. Content outside those
// invocations is skipped at the token level so string literals and comments
// containing look-alike markup are never misread as components.
func Parse(file *util.ParseSourceFile, opts Options) *ParseResult {
	components := make(map[string]struct{}, len(opts.Components))
	for _, name := range opts.Components {
		components[name] = struct{}{}
	}
	p := &parser{
		cursor:     newCursor(file),
		components: components,
	}
	p.scan()
	return &ParseResult{Elements: p.elements, Errors: p.errors}
}

type parser struct {
	cursor     *cursor
	components map[string]struct{}
	elements   []*ast.Element
	errors     []*util.ParseError
}

func (p *parser) error(span *util.ParseSourceSpan, format string, args ...interface{}) {
	p.errors = append(p.errors, util.NewParseError(span, fmt.Sprintf(format, args...)))
}

// scan walks the file at the JavaScript token level looking for the start of
// an allow-listed component element
func (p *parser) scan() {
	c := p.cursor
	for !c.eof() {
		switch c.peek() {
		case '\'', '"':
			c.skipString()
		case '`':
			c.skipTemplate()
		case '/':
			c.skipCommentOrSlash()
		case '<':
			if name, ok := p.peekTagName(); ok {
				if _, found := p.components[name]; found {
					start := c.clone()
					if element, ok := p.parseElement(); ok {
						p.elements = append(p.elements, element)
						continue
					}
					c.restore(start)
				}
			}
			c.advance()
		default:
			c.advance()
		}
	}
}

// peekTagName looks ahead from a '<' and returns the tag name when the
// cursor is at a plausible element start
func (p *parser) peekTagName() (string, bool) {
	c := p.cursor.clone()
	c.advance()
	name := c.readTagName()
	if name == "" {
		return "", false
	}
	switch next := c.peek(); {
	case isWhitespace(next), next == '>', next == '/':
		return name, true
	}
	return "", false
}

// parseElement parses one element subtree. The cursor must be on the
// opening '<'.
func (p *parser) parseElement() (*ast.Element, bool) {
	c := p.cursor
	start := c.clone()
	c.advance()
	name := c.readTagName()

	attrs, selfClosing, ok := p.parseAttributes(name, start)
	if !ok {
		return nil, false
	}
	if selfClosing {
		return ast.NewElement(name, attrs, nil, true, c.spanFrom(start)), true
	}

	children, ok := p.parseChildren(name, start)
	if !ok {
		return nil, false
	}
	return ast.NewElement(name, attrs, children, false, c.spanFrom(start)), true
}

// parseAttributes parses the attribute list of an open tag up to '>' or '/>'
func (p *parser) parseAttributes(name string, start cursor) ([]*ast.Attribute, bool, bool) {
	c := p.cursor
	var attrs []*ast.Attribute
	for {
		c.skipWhitespace()
		if c.eof() {
			p.error(c.spanFrom(start), "unexpected end of file in open tag %q", name)
			return nil, false, false
		}
		if c.peek() == '/' && c.peekAt(1) == '>' {
			c.advance()
			c.advance()
			return attrs, true, true
		}
		if c.peek() == '>' {
			c.advance()
			return attrs, false, true
		}
		attr, ok := p.parseAttribute(name, start)
		if !ok {
			return nil, false, false
		}
		attrs = append(attrs, attr)
	}
}

// parseAttribute parses a single attribute: name, name="value", name='value'
// or name={expr}
func (p *parser) parseAttribute(tagName string, tagStart cursor) (*ast.Attribute, bool) {
	c := p.cursor
	attrStart := c.clone()
	attrName := c.readIdentifier()
	if attrName == "" {
		p.error(c.spanFrom(attrStart), "expected attribute name in open tag %q", tagName)
		return nil, false
	}
	for c.peek() == '-' || isIdentifierPart(c.peek()) {
		c.advance()
	}
	attrName = c.chars(attrStart)

	c.skipWhitespace()
	if c.peek() != '=' {
		// bare attribute: syntactically present with an empty literal value
		return ast.NewAttribute(attrName, "", false, c.spanFrom(attrStart)), true
	}
	c.advance()
	c.skipWhitespace()

	switch c.peek() {
	case '\'', '"':
		quote := c.peek()
		c.advance()
		valueStart := c.clone()
		for !c.eof() && c.peek() != quote {
			c.advance()
		}
		if c.eof() {
			p.error(c.spanFrom(attrStart), "unterminated attribute value for %q", attrName)
			return nil, false
		}
		value := c.chars(valueStart)
		c.advance()
		return ast.NewAttribute(attrName, value, false, c.spanFrom(attrStart)), true
	case '{':
		expr, ok := c.readBraced()
		if !ok {
			p.error(c.spanFrom(attrStart), "unterminated expression value for %q", attrName)
			return nil, false
		}
		// An expression that is nothing but a string literal is a literal
		// attribute in disguise: context={"apple"} behaves like
		// context="apple".
		if literal, ok := stringLiteral(stripWrappers(expr)); ok {
			return ast.NewAttribute(attrName, literal, false, c.spanFrom(attrStart)), true
		}
		return ast.NewAttribute(attrName, strings.TrimSpace(expr), true, c.spanFrom(attrStart)), true
	default:
		p.error(c.spanFrom(attrStart), "expected attribute value for %q", attrName)
		return nil, false
	}
}

// parseChildren parses element content up to the matching closing tag
func (p *parser) parseChildren(name string, start cursor) ([]ast.Node, bool) {
	c := p.cursor
	var children []ast.Node
	for {
		if c.eof() {
			p.error(c.spanFrom(start), "unexpected end of file inside element %q", name)
			return nil, false
		}
		switch {
		case c.peek() == '<' && c.peekAt(1) == '/':
			return children, p.parseCloseTag(name, start)
		case c.peek() == '<' && isIdentifierStart(c.peekAt(1)):
			child, ok := p.parseElement()
			if !ok {
				return nil, false
			}
			children = append(children, child)
		case c.peek() == '{':
			exprStart := c.clone()
			expr, ok := c.readBraced()
			if !ok {
				p.error(c.spanFrom(exprStart), "unterminated expression inside element %q", name)
				return nil, false
			}
			trimmed := strings.TrimSpace(expr)
			if strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "//") {
				continue // JSX comment container
			}
			if bindingName, ok := interpolationName(expr); ok {
				children = append(children, ast.NewInterpolation(bindingName, trimmed, c.spanFrom(exprStart)))
			}
			// Any other embedded expression renders opaquely at runtime and
			// contributes nothing to the phrase.
		default:
			textStart := c.clone()
			// a '<' that opens neither an element nor a closing tag is
			// literal text, as in "a < b"; consuming it keeps the loop
			// advancing
			if c.peek() == '<' {
				c.advance()
			}
			for !c.eof() && c.peek() != '<' && c.peek() != '{' {
				c.advance()
			}
			if value, keep := normalizeText(c.chars(textStart)); keep {
				children = append(children, ast.NewText(value, c.spanFrom(textStart)))
			}
		}
	}
}

// parseCloseTag consumes a closing tag and checks it matches the open tag
func (p *parser) parseCloseTag(name string, start cursor) bool {
	c := p.cursor
	closeStart := c.clone()
	c.advance()
	c.advance()
	closeName := c.readTagName()
	c.skipWhitespace()
	if c.peek() != '>' {
		p.error(c.spanFrom(closeStart), "malformed closing tag for element %q", name)
		return false
	}
	c.advance()
	if closeName != name {
		p.error(c.spanFrom(closeStart), "unexpected closing tag %q inside element %q", closeName, name)
		return false
	}
	return true
}

// interpolationName extracts the binding identifier from an expression
// container holding an interpolation object literal: {{ name }} or
// {{ name: expr }}, possibly parenthesized or wrapped in a type assertion.
// The wrapper and any alias expression are semantically transparent; only the
// binding identifier matters at runtime.
func interpolationName(expr string) (string, bool) {
	s := stripWrappers(expr)
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return "", false
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return "", false
	}
	// only the first property binds the placeholder name
	if idx := indexTopLevel(inner, ","); idx >= 0 {
		inner = inner[:idx]
	}
	name := inner
	if idx := indexTopLevel(inner, ":"); idx >= 0 {
		name = inner[:idx]
	}
	name = strings.TrimSpace(name)
	if name == "" || !isIdentifierStart(name[0]) {
		return "", false
	}
	for i := 1; i < len(name); i++ {
		if !isIdentifierPart(name[i]) {
			return "", false
		}
	}
	return name, true
}

// stripWrappers removes semantically transparent wrappers from an expression:
// whole-expression parentheses and trailing `as Type` assertions, repeatedly,
// in any combination.
func stripWrappers(expr string) string {
	s := strings.TrimSpace(expr)
	for {
		if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' && balancedWhole(s) {
			s = strings.TrimSpace(s[1 : len(s)-1])
			continue
		}
		if idx := indexTopLevel(s, " as "); idx >= 0 {
			s = strings.TrimSpace(s[:idx])
			continue
		}
		return s
	}
}

// balancedWhole reports whether the leading open bracket of s closes exactly
// at its final byte
func balancedWhole(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
			if depth == 0 {
				return i == len(s)-1
			}
		case '\'', '"', '`':
			i = skipLiteralAt(s, i)
		}
	}
	return false
}

// indexTopLevel returns the index of the first occurrence of token in s that
// is not nested inside brackets or string literals, or -1
func indexTopLevel(s, token string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
		case '\'', '"', '`':
			i = skipLiteralAt(s, i)
		default:
			if depth == 0 && strings.HasPrefix(s[i:], token) {
				return i
			}
		}
	}
	return -1
}

// skipLiteralAt returns the index of the closing quote of the string literal
// starting at i, or the last index of s when unterminated
func skipLiteralAt(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		if s[j] == '\\' {
			j++
			continue
		}
		if s[j] == quote {
			return j
		}
	}
	return len(s) - 1
}

// stringLiteral unquotes a plain string literal expression, handling escaped
// quotes, and reports whether s was one
func stringLiteral(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	quote := s[0]
	if quote != '\'' && quote != '"' && quote != '`' {
		return "", false
	}
	if s[len(s)-1] != quote || skipLiteralAt(s, 0) != len(s)-1 {
		return "", false
	}
	body := s[1 : len(s)-1]
	body = strings.ReplaceAll(body, `\`+string(quote), string(quote))
	return body, true
}
