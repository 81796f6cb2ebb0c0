package trans

import "i18next-parser-go/packages/extractor/plural"

// Entry is a single extracted (key, defaultValue) pair
type Entry struct {
	Key   string
	Value string
}

// Analysis is the locale-independent result of analyzing one Trans-node.
// Entry generation is deferred until the target locale's plural categories
// are known, so one Analysis can feed catalogs for several locales.
type Analysis struct {
	// Key is the explicit i18nKey attribute value; empty selects
	// natural-language-key mode where the phrase itself is the key.
	Key string
	// Phrase is the serialized child content
	Phrase string
	// Defaults is the literal defaults attribute value, overriding the phrase
	// as the default value when non-empty
	Defaults string
	// Context is the literal context attribute value
	Context string
	// HasContext is true only for a syntactically present, literal context.
	// Dynamic context expressions degrade to no context.
	HasContext bool
	// Decision is the pluralization decision for the node
	Decision CountDecision
	// Namespace is the target namespace for the node's entries
	Namespace string
}

// Entries generates the ordered entry set for the analysis given the target
// locale's plural categories.
//
// The key of every entry is baseKey + contextSuffix + categorySuffix. The
// context variant is additive: when a literal context is present both the
// unsuffixed and the context-suffixed forms are generated. Every plural
// category shares the same default value; producing category-specific wording
// is a translation task, not an extraction one. A pluralizable analysis given
// no categories falls back to plural.DefaultCategories.
func (a Analysis) Entries(categories []string) []Entry {
	baseKey := a.Key
	if baseKey == "" {
		baseKey = a.Phrase
	}
	value := a.Phrase
	if a.Defaults != "" {
		value = a.Defaults
	}
	if value == "" {
		// A childless node with only an explicit key still yields a usable
		// catalog entry: the key doubles as the value.
		value = baseKey
	}
	if baseKey == "" && a.Defaults != "" {
		baseKey = a.Defaults
	}
	if baseKey == "" {
		return nil
	}

	contextSuffixes := []string{""}
	// An empty literal context is falsy at runtime and never selects a
	// suffixed key, so it degrades the same way a dynamic expression does.
	if a.HasContext && a.Context != "" {
		contextSuffixes = append(contextSuffixes, "_"+a.Context)
	}

	categorySuffixes := []string{""}
	if a.Decision.Pluralizable() {
		if len(categories) == 0 {
			categories = plural.DefaultCategories
		}
		categorySuffixes = make([]string, len(categories))
		for i, category := range categories {
			categorySuffixes[i] = "_" + category
		}
	}

	entries := make([]Entry, 0, len(contextSuffixes)*len(categorySuffixes))
	for _, contextSuffix := range contextSuffixes {
		for _, categorySuffix := range categorySuffixes {
			entries = append(entries, Entry{
				Key:   baseKey + contextSuffix + categorySuffix,
				Value: value,
			})
		}
	}
	return entries
}
