package trans

import "i18next-parser-go/packages/extractor/ast"

// Attribute names recognized on Trans-like components
const (
	keyAttr      = "i18nKey"
	contextAttr  = "context"
	nsAttr       = "ns"
	defaultsAttr = "defaults"
)

// Options configures a single analysis pass. Configuration is threaded
// through the Analyzer value rather than process-wide state so analyses with
// different configurations can run concurrently.
type Options struct {
	// Components is the allow-list of component names treated as Trans-nodes
	Components []string
	// DefaultNamespace is used when a node carries no literal ns attribute
	DefaultNamespace string
}

// Analyzer analyzes Trans-like component invocations. It is stateless across
// nodes: each AnalyzeElement call is a pure function of its argument.
type Analyzer struct {
	components       map[string]struct{}
	defaultNamespace string
}

// NewAnalyzer creates a new Analyzer
func NewAnalyzer(opts Options) *Analyzer {
	components := make(map[string]struct{}, len(opts.Components))
	for _, name := range opts.Components {
		components[name] = struct{}{}
	}
	return &Analyzer{
		components:       components,
		defaultNamespace: opts.DefaultNamespace,
	}
}

// IsTransComponent reports whether the component name is on the allow-list
func (a *Analyzer) IsTransComponent(name string) bool {
	_, ok := a.components[name]
	return ok
}

// AnalyzeElement analyzes one Trans-node and returns its locale-independent
// Analysis. It never fails: every structurally valid element produces an
// Analysis, possibly one that generates no entries.
func (a *Analyzer) AnalyzeElement(element *ast.Element) Analysis {
	analysis := Analysis{
		Phrase:    SerializeChildren(element.Children),
		Decision:  InferCount(element.Attrs, element.Children),
		Namespace: a.defaultNamespace,
	}

	if attr := element.Attr(keyAttr); attr != nil && !attr.IsExpression {
		analysis.Key = attr.Value
	}
	if attr := element.Attr(defaultsAttr); attr != nil && !attr.IsExpression {
		analysis.Defaults = attr.Value
	}
	if attr := element.Attr(nsAttr); attr != nil && !attr.IsExpression && attr.Value != "" {
		analysis.Namespace = attr.Value
	}
	// A dynamic context expression is unsupported and degrades to no context
	// rather than failing the node.
	if attr := element.Attr(contextAttr); attr != nil && !attr.IsExpression {
		analysis.Context = attr.Value
		analysis.HasContext = true
	}

	return analysis
}
