package util

import "fmt"

// ParseSourceFile represents a source file being analyzed
type ParseSourceFile struct {
	Content string
	URL     string
}

// NewParseSourceFile creates a new ParseSourceFile
func NewParseSourceFile(content, url string) *ParseSourceFile {
	return &ParseSourceFile{
		Content: content,
		URL:     url,
	}
}

// ParseLocation represents a location in the source file.
// Line and Col are zero based; Offset is a byte offset into the content.
type ParseLocation struct {
	File   *ParseSourceFile
	Offset int
	Line   int
	Col    int
}

// NewParseLocation creates a new ParseLocation
func NewParseLocation(file *ParseSourceFile, offset, line, col int) *ParseLocation {
	return &ParseLocation{
		File:   file,
		Offset: offset,
		Line:   line,
		Col:    col,
	}
}

// String returns a string representation of the location
func (p *ParseLocation) String() string {
	if p.Offset >= 0 {
		return fmt.Sprintf("%s@%d:%d", p.File.URL, p.Line, p.Col)
	}
	return p.File.URL
}

// ParseSourceSpan represents a span between two locations in a source file
type ParseSourceSpan struct {
	Start *ParseLocation
	End   *ParseLocation
}

// NewParseSourceSpan creates a new ParseSourceSpan
func NewParseSourceSpan(start, end *ParseLocation) *ParseSourceSpan {
	return &ParseSourceSpan{
		Start: start,
		End:   end,
	}
}

// String returns the source text covered by the span
func (s *ParseSourceSpan) String() string {
	if s == nil || s.Start == nil || s.End == nil {
		return ""
	}
	return s.Start.File.Content[s.Start.Offset:s.End.Offset]
}

// ParseError represents an error produced while parsing a source file
type ParseError struct {
	Span *ParseSourceSpan
	Msg  string
}

// NewParseError creates a new ParseError
func NewParseError(span *ParseSourceSpan, msg string) *ParseError {
	return &ParseError{
		Span: span,
		Msg:  msg,
	}
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Span != nil && e.Span.Start != nil {
		return fmt.Sprintf("%s (%s)", e.Msg, e.Span.Start.String())
	}
	return e.Msg
}
