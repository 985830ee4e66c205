package rules

import (
	"fmt"

	"github.com/leapstack-labs/pgparse/pkg/lint"
	"github.com/leapstack-labs/pgparse/pkg/token"
)

func init() {
	lint.Register(QuotedIdentifier)
}

// QuotedIdentifier flags quoted identifiers that mean the same thing
// unquoted: lower case, starting with a letter or underscore, made of
// letters, digits and underscores, and not a keyword.
var QuotedIdentifier = lint.RuleDef{
	ID:          "CV03",
	Name:        "convention.quoted_identifier",
	Group:       "convention",
	Description: "Avoid quoting identifiers that do not need it.",
	Severity:    lint.SeverityHint,
	Check:       checkQuotedIdentifier,
	BadExample:  `DROP ROLE "app_reader";`,
	GoodExample: `DROP ROLE app_reader;`,
}

func checkQuotedIdentifier(stream *token.Stream, _ map[string]any) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	for _, tok := range stream.All(token.CatIgnored) {
		if tok.Kind != token.QIDENT {
			continue
		}
		text := stream.Text(tok)
		name := text[1 : len(text)-1]
		if !plainIdentifier(name) {
			continue
		}
		if _, isKeyword := token.Lookup(name); isKeyword {
			continue
		}
		d := lint.At(stream, tok, "CV03", lint.SeverityHint, fmt.Sprintf("identifier %s does not need quotes", text))
		d.Fixes = []lint.TextEdit{lint.Replace(tok, name)}
		diagnostics = append(diagnostics, d)
	}
	return diagnostics
}

func plainIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c == '_':
		case i > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
