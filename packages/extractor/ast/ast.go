package ast

import "i18next-parser-go/packages/extractor/util"

// Node represents a node in the markup AST produced for a Trans-like component.
// The set of variants is closed: Element, Text and Interpolation.
type Node interface {
	SourceSpan() *util.ParseSourceSpan
	Visit(visitor Visitor, context interface{}) interface{}
}

// Attribute represents an attribute of an element.
// For string attributes (name="value") Value holds the literal text and
// IsExpression is false. For expression attributes (name={expr}) Value holds
// the raw expression text and IsExpression is true, unless the expression is
// itself a plain string literal, in which case the quotes are stripped and the
// attribute is treated as a literal.
type Attribute struct {
	Name         string
	Value        string
	IsExpression bool
	sourceSpan   *util.ParseSourceSpan
}

// NewAttribute creates a new Attribute
func NewAttribute(name, value string, isExpression bool, sourceSpan *util.ParseSourceSpan) *Attribute {
	return &Attribute{
		Name:         name,
		Value:        value,
		IsExpression: isExpression,
		sourceSpan:   sourceSpan,
	}
}

// SourceSpan returns the source span
func (a *Attribute) SourceSpan() *util.ParseSourceSpan {
	return a.sourceSpan
}

// Element represents an element node with an ordered child sequence
type Element struct {
	Name          string
	Attrs         []*Attribute
	Children      []Node
	IsSelfClosing bool
	sourceSpan    *util.ParseSourceSpan
}

// NewElement creates a new Element node
func NewElement(name string, attrs []*Attribute, children []Node, isSelfClosing bool, sourceSpan *util.ParseSourceSpan) *Element {
	return &Element{
		Name:          name,
		Attrs:         attrs,
		Children:      children,
		IsSelfClosing: isSelfClosing,
		sourceSpan:    sourceSpan,
	}
}

// SourceSpan returns the source span
func (e *Element) SourceSpan() *util.ParseSourceSpan {
	return e.sourceSpan
}

// Visit implements the Node interface
func (e *Element) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitElement(e, context)
}

// Attr returns the attribute with the given name, or nil when absent.
// Presence is syntactic: a bare attribute with no value is still returned.
func (e *Element) Attr(name string) *Attribute {
	for _, attr := range e.Attrs {
		if attr.Name == name {
			return attr
		}
	}
	return nil
}

// Text represents a literal text node
type Text struct {
	Value      string
	sourceSpan *util.ParseSourceSpan
}

// NewText creates a new Text node
func NewText(value string, sourceSpan *util.ParseSourceSpan) *Text {
	return &Text{
		Value:      value,
		sourceSpan: sourceSpan,
	}
}

// SourceSpan returns the source span
func (t *Text) SourceSpan() *util.ParseSourceSpan {
	return t.sourceSpan
}

// Visit implements the Node interface
func (t *Text) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitText(t, context)
}

// Interpolation represents a placeholder expression binding a runtime value to
// a named slot. Name is the binding identifier only: any alias expression
// ({{ count: c }}) or type-assertion wrapper has already been stripped by the
// parser. Expr retains the raw expression text for diagnostics.
type Interpolation struct {
	Name       string
	Expr       string
	sourceSpan *util.ParseSourceSpan
}

// NewInterpolation creates a new Interpolation node
func NewInterpolation(name, expr string, sourceSpan *util.ParseSourceSpan) *Interpolation {
	return &Interpolation{
		Name:       name,
		Expr:       expr,
		sourceSpan: sourceSpan,
	}
}

// SourceSpan returns the source span
func (i *Interpolation) SourceSpan() *util.ParseSourceSpan {
	return i.sourceSpan
}

// Visit implements the Node interface
func (i *Interpolation) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitInterpolation(i, context)
}

// Visitor is the interface for visiting markup AST nodes
type Visitor interface {
	VisitElement(element *Element, context interface{}) interface{}
	VisitText(text *Text, context interface{}) interface{}
	VisitInterpolation(interpolation *Interpolation, context interface{}) interface{}
}

// VisitAll visits all nodes with a visitor and collects the non-nil results
func VisitAll(visitor Visitor, nodes []Node, context interface{}) []interface{} {
	var result []interface{}
	for _, node := range nodes {
		if r := node.Visit(visitor, context); r != nil {
			result = append(result, r)
		}
	}
	return result
}

// RecursiveVisitor is a base visitor that recursively visits element children
type RecursiveVisitor struct{}

// VisitElement visits an element and its children
func (r *RecursiveVisitor) VisitElement(element *Element, context interface{}) interface{} {
	VisitAll(r, element.Children, context)
	return nil
}

// VisitText visits a text node
func (r *RecursiveVisitor) VisitText(text *Text, context interface{}) interface{} {
	return nil
}

// VisitInterpolation visits an interpolation node
func (r *RecursiveVisitor) VisitInterpolation(interpolation *Interpolation, context interface{}) interface{} {
	return nil
}
