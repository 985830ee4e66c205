package rules

import (
	"github.com/leapstack-labs/pgparse/pkg/lint"
	"github.com/leapstack-labs/pgparse/pkg/token"
)

func init() {
	lint.Register(TrailingWhitespace)
}

// TrailingWhitespace flags blanks at the end of a line. Blanks inside
// comments and string literals belong to those tokens and are not reported.
var TrailingWhitespace = lint.RuleDef{
	ID:          "LY01",
	Name:        "layout.trailing_whitespace",
	Group:       "layout",
	Description: "Lines should not end with spaces or tabs.",
	Severity:    lint.SeverityHint,
	Check:       checkTrailingWhitespace,
}

func checkTrailingWhitespace(stream *token.Stream, _ map[string]any) []lint.Diagnostic {
	src := stream.Source()

	var diagnostics []lint.Diagnostic
	for _, tok := range stream.Tokens() {
		if tok.Kind != token.WHITESPACE {
			continue
		}
		atEOF := tok.End() == len(src)
		start := tok.Offset
		for i := tok.Offset; i <= tok.End(); i++ {
			if i < tok.End() && src[i] != '\n' {
				continue
			}
			if i == tok.End() && !atEOF {
				break
			}
			end := i
			if end > start && src[end-1] == '\r' {
				end--
			}
			if end > start {
				diagnostics = append(diagnostics, lint.Diagnostic{
					RuleID:   "LY01",
					Severity: lint.SeverityHint,
					Message:  "trailing whitespace",
					Pos:      stream.Position(start),
					EndPos:   stream.Position(end),
					Fixes:    []lint.TextEdit{{Offset: start, Length: end - start}},
				})
			}
			start = i + 1
		}
	}
	return diagnostics
}
