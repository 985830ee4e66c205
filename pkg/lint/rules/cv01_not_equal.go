package rules

import (
	"fmt"

	"github.com/leapstack-labs/pgparse/pkg/lint"
	"github.com/leapstack-labs/pgparse/pkg/token"
)

func init() {
	lint.Register(NotEqualOperator)
}

// NotEqualOperator recommends one spelling of the not-equal operator.
//
// Options:
//   - preferred: "consistent" (default, the first one used wins), "ansi" (<>)
//     or "c_style" (!=)
var NotEqualOperator = lint.RuleDef{
	ID:          "CV01",
	Name:        "convention.not_equal",
	Group:       "convention",
	Description: "Use one spelling of the not-equal operator.",
	Severity:    lint.SeverityHint,
	Check:       checkNotEqualOperator,
	ConfigKeys:  []string{"preferred"},
	BadExample:  "WHERE x != 1 AND y <> 2",
	GoodExample: "WHERE x <> 1 AND y <> 2",
}

func checkNotEqualOperator(stream *token.Stream, opts map[string]any) []lint.Diagnostic {
	var want string
	switch lint.GetStringOption(opts, "preferred", "consistent") {
	case "ansi":
		want = "<>"
	case "c_style":
		want = "!="
	}

	var diagnostics []lint.Diagnostic
	for _, tok := range stream.All(token.CatIgnored) {
		if tok.Kind != token.OPERATOR {
			continue
		}
		text := stream.Text(tok)
		if text != "<>" && text != "!=" {
			continue
		}
		if want == "" {
			want = text
			continue
		}
		if text == want {
			continue
		}
		d := lint.At(stream, tok, "CV01", lint.SeverityHint, fmt.Sprintf("use %s instead of %s", want, text))
		d.Fixes = []lint.TextEdit{lint.Replace(tok, want)}
		diagnostics = append(diagnostics, d)
	}
	return diagnostics
}
