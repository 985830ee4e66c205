// Package parser holds a small PostgreSQL statement grammar built from
// grammar combinators, and the entry points that scan and parse SQL with it.
//
// # Usage
//
//	node, err := parser.ParseString("DROP TABLE t;", parser.Program)
//	if err != nil {
//	    // *parser.LexError or *parser.ParseError
//	}
//
// # Grammar Overview
//
//	program      → { statement }*
//	statement    → (drop_table | drop_role | create_role | set_variable) ;
//	drop_table   → DROP TABLE identifier
//	drop_role    → DROP ROLE [IF EXISTS] name_list
//	create_role  → CREATE ROLE name [WITH] { role_option }*
//	set_variable → SET [LOCAL] name (TO | =) set_value { , set_value }*
//
// Whitespace and comments are skipped. Keywords match case-insensitively.
package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/pgparse/pkg/grammar"
	"github.com/leapstack-labs/pgparse/pkg/scanner"
	"github.com/leapstack-labs/pgparse/pkg/token"
)

// Parse scans src and matches rule against all of it. The first lexical
// error in src is returned as a *LexError. A rule that does not match, or
// that leaves tokens unconsumed, yields a *ParseError.
func Parse(src []byte, rule grammar.Rule) (grammar.Node, error) {
	stream := scanner.Scan(src)
	if errs := stream.Errors(); len(errs) > 0 {
		tok := errs[0]
		return nil, &LexError{
			Pos:     stream.Position(tok.Offset),
			Kind:    tok.Kind,
			Message: fmt.Sprintf(ErrLexical, tok.Kind, abbreviate(stream.Text(tok))),
		}
	}

	c := grammar.NewCursor(stream, token.CatIgnored)
	node, ok := rule.Parse(c)
	if ok && c.Done() {
		return node, nil
	}
	return nil, syntaxError(c, ok)
}

// ParseString is Parse for a string.
func ParseString(sql string, rule grammar.Rule) (grammar.Node, error) {
	return Parse([]byte(sql), rule)
}

// syntaxError reports the furthest point any terminal reached. When the
// rule matched but stopped short, and nothing failed beyond that point, the
// leftover token is reported against end of input.
func syntaxError(c *grammar.Cursor, matched bool) *ParseError {
	stream := c.Stream()
	pos, kinds := c.Expected()
	if pos < 0 || (matched && pos < c.Pos()) {
		pos, kinds = c.Pos(), nil
	}

	err := &ParseError{Expected: kinds}
	if pos >= stream.Len() {
		err.Pos = stream.Position(len(stream.Source()))
		err.Found = endOfInput
	} else {
		tok := stream.At(pos)
		err.Pos = stream.Position(tok.Offset)
		err.Found = describeToken(stream, tok)
	}
	err.Message = fmt.Sprintf(ErrUnexpectedToken, err.Found, describeKinds(kinds))
	return err
}

func describeToken(stream *token.Stream, tok token.Token) string {
	switch {
	case token.IsKeyword(tok.Kind):
		return tok.Kind.String()
	case tok.Kind.Text() != "":
		return strconv.Quote(tok.Kind.Text())
	}
	return tok.Kind.String() + " " + strconv.Quote(abbreviate(stream.Text(tok)))
}

func describeKind(k token.Kind) string {
	if k.Text() != "" && !token.IsKeyword(k) {
		return strconv.Quote(k.Text())
	}
	return k.String()
}

// describeKinds renders "a", "a or b", "a, b or c".
func describeKinds(kinds []token.Kind) string {
	switch len(kinds) {
	case 0:
		return endOfInput
	case 1:
		return describeKind(kinds[0])
	}
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = describeKind(k)
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
}

const maxQuoted = 32

func abbreviate(s string) string {
	if len(s) <= maxQuoted {
		return s
	}
	n := maxQuoted
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
