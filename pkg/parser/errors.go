package parser

import (
	"fmt"

	"github.com/leapstack-labs/pgparse/pkg/token"
)

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos      token.Position
	Found    string       // description of the offending token
	Expected []token.Kind // kinds that would have been accepted; empty means end of input
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// LexError represents a lexical analysis error.
type LexError struct {
	Pos     token.Position
	Kind    token.Kind // the error token kind, e.g. UNTERMINATED_STRING
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedToken = "unexpected %s, expected %s"
	ErrLexical         = "%s %q"
	endOfInput         = "end of input"
)
