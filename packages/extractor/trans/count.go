package trans

import "i18next-parser-go/packages/extractor/ast"

// CountDecision describes whether a phrase is plural-sensitive and how that
// sensitivity was established.
type CountDecision int

const (
	// CountAbsent means the phrase is not plural-sensitive
	CountAbsent CountDecision = iota
	// CountExplicit means a count attribute is syntactically present on the node
	CountExplicit
	// CountInferred means a {{count}} interpolation was found in the subtree
	CountInferred
)

// String returns a string representation of the decision
func (d CountDecision) String() string {
	switch d {
	case CountExplicit:
		return "explicit"
	case CountInferred:
		return "inferred"
	default:
		return "absent"
	}
}

// Pluralizable reports whether the decision makes the phrase plural-sensitive
func (d CountDecision) Pluralizable() bool {
	return d == CountExplicit || d == CountInferred
}

// countAttr is the attribute name that explicitly declares plural sensitivity
const countAttr = "count"

// InferCount determines the CountDecision for a node from its attribute bag
// and its unserialized child tree, in priority order:
//
//  1. A count attribute present in the bag yields CountExplicit. Presence is
//     syntactic, not truthy: count={0} and dynamic expressions both qualify.
//  2. Otherwise an interpolation named count, at any depth, yields
//     CountInferred. Aliases and type-assertion wrappers were already stripped
//     by the parser, so matching on the binding name is sufficient.
//  3. Otherwise CountAbsent.
func InferCount(attrs []*ast.Attribute, children []ast.Node) CountDecision {
	for _, attr := range attrs {
		if attr.Name == countAttr {
			return CountExplicit
		}
	}
	if hasCountInterpolation(children) {
		return CountInferred
	}
	return CountAbsent
}

// hasCountInterpolation scans the child tree for an interpolation bound to
// count. The scan is existence-only and short-circuits on the first match.
func hasCountInterpolation(nodes []ast.Node) bool {
	for _, node := range nodes {
		switch n := node.(type) {
		case *ast.Interpolation:
			if n.Name == countAttr {
				return true
			}
		case *ast.Element:
			if hasCountInterpolation(n.Children) {
				return true
			}
		}
	}
	return false
}
