package rules

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/pgparse/pkg/lint"
	"github.com/leapstack-labs/pgparse/pkg/token"
)

func init() {
	lint.Register(KeywordCase)
}

// KeywordCase enforces one capitalization for keywords.
//
// Options:
//   - policy: "consistent" (default, the first keyword sets the case),
//     "upper", "lower" or "capitalize"
var KeywordCase = lint.RuleDef{
	ID:          "CV02",
	Name:        "convention.keyword_case",
	Group:       "convention",
	Description: "Keywords should use one capitalization.",
	Severity:    lint.SeverityWarning,
	Check:       checkKeywordCase,
	ConfigKeys:  []string{"policy"},
	BadExample:  "DROP table t;",
	GoodExample: "DROP TABLE t;",
}

const (
	caseUpper      = "upper"
	caseLower      = "lower"
	caseCapitalize = "capitalize"
	caseMixed      = "mixed"
)

func keywordCase(s string) string {
	switch {
	case s == strings.ToUpper(s):
		return caseUpper
	case s == strings.ToLower(s):
		return caseLower
	case s == applyCase(caseCapitalize, s):
		return caseCapitalize
	}
	return caseMixed
}

func applyCase(policy, s string) string {
	switch policy {
	case caseLower:
		return strings.ToLower(s)
	case caseCapitalize:
		return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
	}
	return strings.ToUpper(s)
}

func checkKeywordCase(stream *token.Stream, opts map[string]any) []lint.Diagnostic {
	policy := lint.GetStringOption(opts, "policy", "consistent")

	var diagnostics []lint.Diagnostic
	for _, tok := range stream.All(token.CatIgnored) {
		if !tok.Kind.Is(token.CatKeyword) {
			continue
		}
		text := stream.Text(tok)
		if policy == "consistent" {
			// Single-letter keywords say nothing about the case in use.
			if len(text) < 2 {
				continue
			}
			policy = keywordCase(text)
			if policy == caseMixed {
				policy = caseUpper
			} else {
				continue
			}
		}
		want := applyCase(policy, text)
		if text == want {
			continue
		}
		d := lint.At(stream, tok, "CV02", lint.SeverityWarning,
			fmt.Sprintf("keyword %q should be %s case (%s)", text, policy, want))
		d.Fixes = []lint.TextEdit{lint.Replace(tok, want)}
		diagnostics = append(diagnostics, d)
	}
	return diagnostics
}
