package transcalls

import (
	"strings"

	"i18next-parser-go/packages/extractor/util"
)

// Options configures a call scan
type Options struct {
	// Functions is the list of translation function names to match. A member
	// call matches on its final segment, so "t" also matches "i18next.t".
	Functions []string
}

// Call is one extracted translation function invocation
type Call struct {
	Key          string
	DefaultValue string
	Context      string
	HasContext   bool
	HasCount     bool
	Span         *util.ParseSourceSpan
}

// Scan extracts translation calls with a static string key from a source
// file: t("key"), t("key", "default"), t("key", { defaultValue, count,
// context }) and the three-argument form. Calls whose first argument is not a
// string literal are not statically extractable and are skipped. String
// literals, template literals and comments elsewhere in the file are skipped
// at the token level.
func Scan(file *util.ParseSourceFile, opts Options) []Call {
	functions := make(map[string]struct{}, len(opts.Functions))
	for _, name := range opts.Functions {
		functions[name] = struct{}{}
	}

	src := file.Content
	var calls []Call
	i := 0
	for i < len(src) {
		ch := src[i]
		switch {
		case ch == '\'' || ch == '"':
			i = skipString(src, i)
		case ch == '`':
			i = skipTemplate(src, i)
		case ch == '/':
			i = skipComment(src, i)
		case isIdentStart(ch):
			j := i + 1
			for j < len(src) && isIdentPart(src[j]) {
				j++
			}
			if _, ok := functions[src[i:j]]; ok {
				if call, next, ok := parseCall(file, src, i, j); ok {
					calls = append(calls, call)
					i = next
					continue
				}
			}
			i = j
		default:
			i++
		}
	}
	return calls
}

// parseCall parses the argument list following a matched function name.
// start is the offset of the name, pos the offset just past it.
func parseCall(file *util.ParseSourceFile, src string, start, pos int) (Call, int, bool) {
	i := skipSpace(src, pos)
	if i >= len(src) || src[i] != '(' {
		return Call{}, 0, false
	}
	open := i
	i = skipSpace(src, i+1)

	key, i, ok := readStringLiteral(src, i)
	if !ok {
		return Call{}, 0, false
	}
	call := Call{Key: key}

	i = skipSpace(src, i)
	if i < len(src) && src[i] == ',' {
		i = skipSpace(src, i+1)
		if value, next, ok := readStringLiteral(src, i); ok {
			call.DefaultValue = value
			i = skipSpace(src, next)
			if i < len(src) && src[i] == ',' {
				i = skipSpace(src, i+1)
			}
		}
		if i < len(src) && src[i] == '{' {
			body, next := readBraced(src, i)
			parseCallOptions(body, &call)
			i = next
		}
	}

	end := skipParens(src, open)
	call.Span = util.NewParseSourceSpan(locationAt(file, start), locationAt(file, end))
	return call, end, true
}

// parseCallOptions scans the top level of an options object literal for the
// keys that influence extraction
func parseCallOptions(body string, call *Call) {
	for _, segment := range splitTopLevel(body, ',') {
		name, value := segment, ""
		if idx := indexTopLevel(segment, ':'); idx >= 0 {
			name, value = segment[:idx], strings.TrimSpace(segment[idx+1:])
		}
		name = strings.Trim(strings.TrimSpace(name), `'"`)
		switch name {
		case "count":
			call.HasCount = true
		case "context":
			// a dynamic context degrades to no context
			if literal, _, ok := readStringLiteral(value, 0); ok {
				call.Context = literal
				call.HasContext = true
			}
		case "defaultValue":
			if literal, _, ok := readStringLiteral(value, 0); ok {
				call.DefaultValue = literal
			}
		}
	}
}

func isIdentStart(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_' || ch == '$'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || ch >= '0' && ch <= '9'
}

func skipSpace(src string, i int) int {
	for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\n' || src[i] == '\r') {
		i++
	}
	return i
}

// skipString returns the offset just past the string literal starting at i
func skipString(src string, i int) int {
	quote := src[i]
	for i++; i < len(src); i++ {
		if src[i] == '\\' {
			i++
			continue
		}
		if src[i] == quote {
			return i + 1
		}
	}
	return len(src)
}

// skipTemplate returns the offset just past the template literal starting at
// i, descending into ${...} substitutions
func skipTemplate(src string, i int) int {
	for i++; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '`':
			return i + 1
		case '$':
			if i+1 < len(src) && src[i+1] == '{' {
				_, next := readBraced(src, i+1)
				i = next - 1
			}
		}
	}
	return len(src)
}

// skipComment returns the offset just past a // or /* comment starting at i,
// or past the single slash when i is not at a comment
func skipComment(src string, i int) int {
	if i+1 < len(src) && src[i+1] == '/' {
		for i < len(src) && src[i] != '\n' {
			i++
		}
		return i
	}
	if i+1 < len(src) && src[i+1] == '*' {
		if end := strings.Index(src[i+2:], "*/"); end >= 0 {
			return i + 2 + end + 2
		}
		return len(src)
	}
	return i + 1
}

// readBraced returns the inner text of the balanced {...} group starting at i
// and the offset just past its closing brace
func readBraced(src string, i int) (string, int) {
	start := i
	depth := 0
	for i < len(src) {
		switch src[i] {
		case '{':
			depth++
			i++
		case '}':
			depth--
			i++
			if depth == 0 {
				return src[start+1 : i-1], i
			}
		case '\'', '"':
			i = skipString(src, i)
		case '`':
			i = skipTemplate(src, i)
		case '/':
			i = skipComment(src, i)
		default:
			i++
		}
	}
	return src[start+1:], len(src)
}

// skipParens returns the offset just past the balanced (...) group starting
// at i
func skipParens(src string, i int) int {
	depth := 0
	for i < len(src) {
		switch src[i] {
		case '(':
			depth++
			i++
		case ')':
			depth--
			i++
			if depth == 0 {
				return i
			}
		case '{':
			_, i = readBraced(src, i)
		case '\'', '"':
			i = skipString(src, i)
		case '`':
			i = skipTemplate(src, i)
		case '/':
			i = skipComment(src, i)
		default:
			i++
		}
	}
	return len(src)
}

// readStringLiteral decodes the string literal starting at i, returning its
// value and the offset just past the closing quote
func readStringLiteral(src string, i int) (string, int, bool) {
	if i >= len(src) {
		return "", 0, false
	}
	quote := src[i]
	if quote != '\'' && quote != '"' && quote != '`' {
		return "", 0, false
	}
	var b strings.Builder
	for j := i + 1; j < len(src); j++ {
		ch := src[j]
		if ch == '\\' && j+1 < len(src) {
			next := src[j+1]
			switch next {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(next)
			}
			j++
			continue
		}
		if ch == quote {
			return b.String(), j + 1, true
		}
		b.WriteByte(ch)
	}
	return "", 0, false
}

// splitTopLevel splits s on sep occurrences not nested in brackets or strings
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
		case '\'', '"', '`':
			i = skipString(s, i) - 1
		default:
			if depth == 0 && s[i] == sep {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}

// indexTopLevel returns the index of the first sep in s not nested in
// brackets or strings, or -1
func indexTopLevel(s string, sep byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
		case '\'', '"', '`':
			i = skipString(s, i) - 1
		default:
			if depth == 0 && s[i] == sep {
				return i
			}
		}
	}
	return -1
}

// locationAt computes the line/column location of a byte offset
func locationAt(file *util.ParseSourceFile, offset int) *util.ParseLocation {
	line := strings.Count(file.Content[:offset], "\n")
	col := offset
	if idx := strings.LastIndexByte(file.Content[:offset], '\n'); idx >= 0 {
		col = offset - idx - 1
	}
	return util.NewParseLocation(file, offset, line, col)
}
