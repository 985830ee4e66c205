package lint

import "github.com/leapstack-labs/pgparse/pkg/token"

// RuleDef is a data-driven rule definition. Rules are stateless; all context
// comes through the Check function parameters.
type RuleDef struct {
	ID          string    // Unique identifier, e.g. "CV01"
	Name        string    // Human-readable name, e.g. "convention.not_equal"
	Group       string    // Category, e.g. "convention"
	Description string    // Human-readable description
	Severity    Severity  // Default severity
	Check       CheckFunc // The check function
	ConfigKeys  []string  // Options this rule accepts

	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
}

// CheckFunc analyzes a token stream and returns diagnostics.
// The opts parameter contains rule-specific options from configuration.
type CheckFunc func(stream *token.Stream, opts map[string]any) []Diagnostic

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string
	Severity Severity
	Message  string
	Pos      token.Position
	EndPos   token.Position // end of the offending range, exclusive
	Fixes    []TextEdit     // edits that resolve the finding, if any
}

// TextEdit replaces Length bytes at Offset with NewText.
type TextEdit struct {
	Offset  int
	Length  int
	NewText string
}

// At builds a diagnostic covering tok.
func At(stream *token.Stream, tok token.Token, ruleID string, sev Severity, msg string) Diagnostic {
	span := stream.Span(tok)
	return Diagnostic{
		RuleID:   ruleID,
		Severity: sev,
		Message:  msg,
		Pos:      span.Start,
		EndPos:   span.End,
	}
}

// Replace returns an edit that replaces tok with text.
func Replace(tok token.Token, text string) TextEdit {
	return TextEdit{Offset: tok.Offset, Length: tok.Length, NewText: text}
}
