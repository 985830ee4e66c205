// Package lint checks SQL token streams against a set of registered rules.
//
// Rules work on the lossless token stream rather than on a syntax tree, so
// they see the source exactly as written: keyword casing, the spelling of
// operators, quoting and layout. Input does not need to parse.
//
// # Rule Registration
//
// Rules register themselves from init() functions when their package is
// imported:
//
//	import _ "github.com/leapstack-labs/pgparse/pkg/lint/rules"
//
// # Rule Groups
//
//   - LX (Lexical): malformed tokens
//   - CV (Convention): consistent spelling of keywords, operators and names
//   - LY (Layout): whitespace
//
// # Configuration
//
// A Config disables rules, overrides their severity and passes rule options:
//
//	cfg := lint.NewConfig().
//		Disable("CV03").
//		SetSeverity("CV02", lint.SeverityError).
//		SetOptions("CV02", map[string]any{"policy": "upper"})
//	diags := lint.NewAnalyzer(cfg).Analyze(stream)
//
// Diagnostics may carry text edits; ApplyFixes rewrites the source with them.
package lint
