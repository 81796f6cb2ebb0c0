package trans_test

import (
	"testing"

	"i18next-parser-go/packages/extractor/ast"
	"i18next-parser-go/packages/extractor/trans"
)

func text(value string) ast.Node {
	return ast.NewText(value, nil)
}

func interp(name string) ast.Node {
	return ast.NewInterpolation(name, name, nil)
}

func element(name string, children ...ast.Node) *ast.Element {
	return ast.NewElement(name, nil, children, false, nil)
}

func TestSerializeChildren(t *testing.T) {
	tests := []struct {
		name     string
		children []ast.Node
		expected string
	}{
		{
			"empty child list",
			nil,
			"",
		},
		{
			"plain text",
			[]ast.Node{text("Hello world")},
			"Hello world",
		},
		{
			"trims at the phrase boundary only",
			[]ast.Node{text("  a  b  ")},
			"a  b",
		},
		{
			"interpolation only consumes no indices",
			[]ast.Node{text("I have "), interp("count"), text(" bananas")},
			"I have {{count}} bananas",
		},
		{
			"single element",
			[]ast.Node{text("a "), element("strong", text("b")), text(" c")},
			"a <0>b</0> c",
		},
		{
			"childless element",
			[]ast.Node{text("line"), element("br")},
			"line<0>",
		},
		{
			"nested elements assign inner index first",
			[]ast.Node{
				text("You have "),
				element("strong", element("em", interp("count"), text(" item"))),
				text("."),
			},
			"You have <1><0>{{count}} item</0></1>.",
		},
		{
			"sibling elements increment in order",
			[]ast.Node{element("b", text("x")), text(" and "), element("i", text("y"))},
			"<0>x</0> and <1>y</1>",
		},
		{
			"three levels deep",
			[]ast.Node{element("a", element("b", element("c", text("x"))))},
			"<2><1><0>x</0></1></2>",
		},
		{
			"nested group then sibling group",
			[]ast.Node{element("a", element("b")), element("c", element("d"))},
			"<1><0></1><3><2></3>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := trans.SerializeChildren(tt.children)
			if result != tt.expected {
				t.Errorf("SerializeChildren() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestSerializeChildrenDeterministic(t *testing.T) {
	children := []ast.Node{
		text("You have "),
		element("strong", element("em", interp("count"), text(" item"))),
		text("."),
	}
	first := trans.SerializeChildren(children)
	second := trans.SerializeChildren(children)
	if first != second {
		t.Errorf("re-serialization diverged: %q vs %q", first, second)
	}
}

func TestSerializeChildrenStripsAlias(t *testing.T) {
	// the parser keeps only the binding identifier; the serializer must not
	// reintroduce the alias expression
	children := []ast.Node{
		text("I have "),
		ast.NewInterpolation("count", "{ count: 5 }", nil),
		text(" bananas"),
	}
	result := trans.SerializeChildren(children)
	expected := "I have {{count}} bananas"
	if result != expected {
		t.Errorf("SerializeChildren() = %q, want %q", result, expected)
	}
}
