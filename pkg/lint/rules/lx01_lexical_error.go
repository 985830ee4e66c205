package rules

import (
	"github.com/leapstack-labs/pgparse/pkg/lint"
	"github.com/leapstack-labs/pgparse/pkg/token"
)

func init() {
	lint.Register(LexicalError)
}

// LexicalError reports malformed tokens: unterminated strings, comments and
// quoted identifiers, bad dollar quotes and illegal characters.
var LexicalError = lint.RuleDef{
	ID:          "LX01",
	Name:        "lexical.error",
	Group:       "lexical",
	Description: "Source must tokenize without errors.",
	Severity:    lint.SeverityError,
	Check:       checkLexicalError,
	BadExample:  "SELECT 'unterminated",
	GoodExample: "SELECT 'terminated'",
}

func checkLexicalError(stream *token.Stream, _ map[string]any) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	for _, tok := range stream.Errors() {
		diagnostics = append(diagnostics, lint.At(stream, tok, "LX01", lint.SeverityError, tok.Name()))
	}
	return diagnostics
}
