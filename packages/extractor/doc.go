// Package extractor groups the static extraction pipeline for react-i18next
// codebases: it scans JSX/TSX source trees for Trans-like component
// invocations and translation function calls and produces locale-keyed
// default-value catalogs whose keys match exactly what the i18next runtime
// looks up at render time.
//
// The serialization and pluralization rules the runtime applies to nested
// markup are reproduced bit-for-bit at analysis time; a divergence there
// produces keys the runtime never finds, which breaks translations silently
// rather than loudly.
//
// Main sub-packages:
//
//   - ast: markup AST node model (Element, Text, Interpolation) with visitors
//   - jsx_parser: lexer and parser locating Trans-like elements in raw source
//   - trans: the analysis engine: child serialization, count inference and
//     key/value generation per node
//   - plural: CLDR cardinal plural category resolution per target locale
//   - transcalls: extraction of t("key") style translation calls
//   - catalog: per-locale/per-namespace aggregation, conflict policies and
//     merge against previously persisted catalogs
//   - config: YAML configuration with defaults
//   - runner: file discovery, parallel per-file extraction and catalog output
package extractor
