package trans

import (
	"strconv"
	"strings"

	"i18next-parser-go/packages/extractor/ast"
)

// childSerializerVisitor flattens a Trans-node child sequence into the string
// the i18next runtime uses to look up the phrase. Nested elements become
// indexed tag markers (<0>...</0>), interpolations become name-only
// placeholders ({{name}}), text is emitted verbatim.
//
// The index counter is scoped to the whole subtree and increments once per
// element, regardless of nesting depth. Text and interpolation nodes never
// consume an index. An element's children are resolved before the element
// itself takes its index, so in <strong><em>x</em></strong> the inner em is
// <0> and the outer strong is <1>. This mirrors the runtime's own
// depth/breadth-agnostic child indexing; diverging from it here would
// generate keys the runtime never looks up.
type childSerializerVisitor struct {
	index int
}

// nextIndex consumes and returns the next tag index
func (v *childSerializerVisitor) nextIndex() string {
	i := strconv.Itoa(v.index)
	v.index++
	return i
}

// VisitElement serializes an element as an indexed tag marker
func (v *childSerializerVisitor) VisitElement(element *ast.Element, context interface{}) interface{} {
	if len(element.Children) == 0 {
		return "<" + v.nextIndex() + ">"
	}
	var b strings.Builder
	for _, child := range element.Children {
		if s, ok := child.Visit(v, context).(string); ok {
			b.WriteString(s)
		}
	}
	i := v.nextIndex()
	return "<" + i + ">" + b.String() + "</" + i + ">"
}

// VisitText serializes a text node verbatim
func (v *childSerializerVisitor) VisitText(text *ast.Text, context interface{}) interface{} {
	return text.Value
}

// VisitInterpolation serializes an interpolation as a name-only placeholder
func (v *childSerializerVisitor) VisitInterpolation(interpolation *ast.Interpolation, context interface{}) interface{} {
	return "{{" + interpolation.Name + "}}"
}

// SerializeChildren produces the serialized phrase for a Trans-node child
// sequence. The result is trimmed at the phrase boundary only; interior
// whitespace is preserved as parsed. An empty child sequence serializes to the
// empty phrase and consumes no indices.
func SerializeChildren(children []ast.Node) string {
	visitor := &childSerializerVisitor{}
	var b strings.Builder
	for _, child := range children {
		if s, ok := child.Visit(visitor, nil).(string); ok {
			b.WriteString(s)
		}
	}
	return strings.TrimSpace(b.String())
}
