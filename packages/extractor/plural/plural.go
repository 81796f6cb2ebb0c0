package plural

import (
	"sort"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/ar"
	"github.com/go-playground/locales/cs"
	"github.com/go-playground/locales/cy"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/he"
	"github.com/go-playground/locales/it"
	"github.com/go-playground/locales/ja"
	"github.com/go-playground/locales/ko"
	"github.com/go-playground/locales/lt"
	"github.com/go-playground/locales/lv"
	"github.com/go-playground/locales/nl"
	"github.com/go-playground/locales/pl"
	"github.com/go-playground/locales/pt"
	"github.com/go-playground/locales/ru"
	"github.com/go-playground/locales/zh"
	"golang.org/x/text/language"
)

// CategorySet is an ordered set of plural category labels for one locale
type CategorySet []string

// DefaultCategories is the category set used for locales without CLDR data
// in the registry (English-like rule systems)
var DefaultCategories = CategorySet{"one", "other"}

// categoryNames maps CLDR plural rules to the suffix labels the i18next
// runtime appends to plural keys
var categoryNames = map[locales.PluralRule]string{
	locales.PluralRuleZero:  "zero",
	locales.PluralRuleOne:   "one",
	locales.PluralRuleTwo:   "two",
	locales.PluralRuleFew:   "few",
	locales.PluralRuleMany:  "many",
	locales.PluralRuleOther: "other",
}

// translators registers the CLDR rule data shipped with go-playground/locales
// for the languages the resolver knows about. Lookup is by base language; a
// regional tag like pt-BR resolves through its base.
var translators = map[string]func() locales.Translator{
	"ar": ar.New,
	"cs": cs.New,
	"cy": cy.New,
	"de": de.New,
	"en": en.New,
	"es": es.New,
	"fr": fr.New,
	"he": he.New,
	"it": it.New,
	"ja": ja.New,
	"ko": ko.New,
	"lt": lt.New,
	"lv": lv.New,
	"nl": nl.New,
	"pl": pl.New,
	"pt": pt.New,
	"ru": ru.New,
	"zh": zh.New,
}

// Resolver resolves locale identifiers to their cardinal plural category set
type Resolver struct {
	cache map[string]CategorySet
}

// NewResolver creates a new Resolver
func NewResolver() *Resolver {
	return &Resolver{cache: make(map[string]CategorySet)}
}

// Resolve returns the ordered cardinal plural categories for a locale.
// The locale tag is normalized through BCP 47 parsing, so "en-US", "en_US"
// and "en" all resolve alike. Unknown or unparsable locales fall back to
// DefaultCategories.
func (r *Resolver) Resolve(locale string) CategorySet {
	if cached, ok := r.cache[locale]; ok {
		return cached
	}
	categories := resolve(locale)
	r.cache[locale] = categories
	return categories
}

func resolve(locale string) CategorySet {
	// locale directories commonly use underscore forms like pt_BR
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return DefaultCategories
	}
	base, _ := tag.Base()
	newTranslator, ok := translators[base.String()]
	if !ok {
		return DefaultCategories
	}

	rules := append([]locales.PluralRule(nil), newTranslator().PluralsCardinal()...)
	// canonical CLDR order: zero, one, two, few, many, other
	sort.Slice(rules, func(i, j int) bool { return rules[i] < rules[j] })

	categories := make(CategorySet, 0, len(rules))
	for _, rule := range rules {
		if name, ok := categoryNames[rule]; ok {
			categories = append(categories, name)
		}
	}
	if len(categories) == 0 {
		return DefaultCategories
	}
	return categories
}
