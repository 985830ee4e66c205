package parser

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pgparse/pkg/grammar"
	"github.com/leapstack-labs/pgparse/pkg/token"
)

func leafKinds(n grammar.Node) []token.Kind {
	var kinds []token.Kind
	for _, l := range grammar.Leaves(n) {
		kinds = append(kinds, l.Token.Kind)
	}
	return kinds
}

func TestParseDropTable(t *testing.T) {
	node, err := ParseString("Drop Table a_table_name;", Statement)
	require.NoError(t, err)

	assert.Equal(t, []token.Kind{token.DROP, token.TABLE, token.IDENT, token.SEMICOLON}, leafKinds(node))
	assert.Equal(t, "((<DROP> <TABLE> <IDENTIFIER:a_table_name>) <;>)", node.String())

	leaves := grammar.Leaves(node)
	assert.Equal(t, "Drop", leaves[0].Text)
	assert.Equal(t, "a_table_name", leaves[2].Text)
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		rule *grammar.Production
		alt  int // winning alternative in statement
	}{
		{"drop table", "dRoP tAbLe t;", DropTable, 0},
		{"drop role", "DROP ROLE bob;", DropRole, 1},
		{"drop role if exists list", `DROP ROLE IF EXISTS a, "B c", d;`, DropRole, 1},
		{"create role bare", "CREATE ROLE bob;", CreateRole, 2},
		{"create role options", "CREATE ROLE bob WITH LOGIN SUPERUSER ENCRYPTED PASSWORD 'x' " +
			"CONNECTION LIMIT -1 VALID UNTIL '2030-01-01' IN ROLE admins, staff INHERIT;", CreateRole, 2},
		{"create role null password", "create role r password null;", CreateRole, 2},
		{"create role admin list", "CREATE ROLE r ADMIN a, b;", CreateRole, 2},
		{"set to", "SET search_path TO public, 'x';", SetVariable, 3},
		{"set equals", "set local timezone = 'UTC';", SetVariable, 3},
		{"set number", "SET extra_float_digits = -1.5;", SetVariable, 3},
		{"set default", "SET work_mem TO DEFAULT;", SetVariable, 3},
		{"set boolean", "SET enable_seqscan = off;", SetVariable, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := ParseString(tt.sql, Statement)
			require.NoError(t, err)
			choice := node.(*grammar.Seq).Children[0].(*grammar.Choice)
			assert.Equal(t, tt.alt, choice.Index)

			// Each statement production also parses the statement body on its own.
			body := tt.sql[:len(tt.sql)-1]
			_, err = ParseString(body, tt.rule)
			assert.NoError(t, err)
		})
	}
}

func TestParseProgram(t *testing.T) {
	sql := `
-- drop the old things
DROP TABLE old_stuff;
DROP ROLE IF EXISTS old_role; /* done */
CREATE ROLE new_role WITH LOGIN;
SET search_path TO app;
`
	node, err := ParseString(sql, Program)
	require.NoError(t, err)
	assert.Len(t, node.(*grammar.Repeat).Items, 4)
}

func TestParseEmptyProgram(t *testing.T) {
	for _, sql := range []string{"", "   ", "-- nothing here\n/* or here */"} {
		node, err := ParseString(sql, Program)
		require.NoError(t, err, "%q", sql)
		assert.Empty(t, node.(*grammar.Repeat).Items)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		rule     grammar.Rule
		line     int
		column   int
		expected []token.Kind
		message  string
	}{
		{
			name:     "missing table name",
			sql:      "DROP TABLE ;",
			rule:     Program,
			line:     1,
			column:   12,
			expected: []token.Kind{token.IDENT},
			message:  `unexpected ";", expected identifier`,
		},
		{
			name:     "missing semicolon",
			sql:      "DROP TABLE t",
			rule:     Program,
			line:     1,
			column:   13,
			expected: []token.Kind{token.SEMICOLON},
			message:  `unexpected end of input, expected ";"`,
		},
		{
			name:    "trailing input",
			sql:     "DROP TABLE t;",
			rule:    DropTable,
			line:    1,
			column:  13,
			message: `unexpected ";", expected end of input`,
		},
		{
			name:     "unknown statement",
			sql:      "select 1;",
			rule:     Statement,
			line:     1,
			column:   1,
			expected: []token.Kind{token.DROP, token.CREATE, token.SET},
			message:  "unexpected SELECT, expected DROP, CREATE or SET",
		},
		{
			name:     "second line",
			sql:      "DROP TABLE a;\nDROP ROLE ;",
			rule:     Program,
			line:     2,
			column:   11,
			expected: []token.Kind{token.IF, token.IDENT, token.QIDENT},
			message:  `unexpected ";", expected IF, identifier or quoted identifier`,
		},
		{
			name:     "identifier text in message",
			sql:      "DROP TABLE t u;",
			rule:     Statement,
			line:     1,
			column:   14,
			expected: []token.Kind{token.SEMICOLON},
			message:  `unexpected identifier "u", expected ";"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.sql, tt.rule)
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "want *ParseError, got %T", err)
			assert.Equal(t, tt.line, perr.Pos.Line)
			assert.Equal(t, tt.column, perr.Pos.Column)
			assert.Equal(t, tt.expected, perr.Expected)
			assert.Equal(t, tt.message, perr.Message)
			assert.Contains(t, err.Error(), "parse error at line")
		})
	}
}

func TestParseLexError(t *testing.T) {
	_, err := ParseString("DROP TABLE 'oops", Program)
	require.Error(t, err)

	var lerr *LexError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, token.UNTERMINATED_STRING, lerr.Kind)
	assert.Equal(t, 12, lerr.Pos.Column)
	assert.Equal(t, `lexer error at line 1, column 12: unterminated quoted string "'oops"`, err.Error())
}

// Lexical errors hidden by the ignored filter are still reported.
func TestParseUnterminatedComment(t *testing.T) {
	_, err := ParseString("DROP TABLE t; /* open", Program)
	var lerr *LexError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, token.UNTERMINATED_COMMENT, lerr.Kind)
}

func TestParseAbbreviatesLongText(t *testing.T) {
	_, err := ParseString("'"+strings.Repeat("a", 100), Program)
	var lerr *LexError
	require.True(t, errors.As(err, &lerr))
	assert.Contains(t, lerr.Message, `..."`)
}

func TestParseAbbreviatesOnRuneBoundary(t *testing.T) {
	for _, prefix := range []string{"'", "'a", "'ab"} {
		_, err := ParseString(prefix+strings.Repeat("é", 40), Program)
		var lerr *LexError
		require.True(t, errors.As(err, &lerr))
		assert.True(t, utf8.ValidString(lerr.Message), lerr.Message)
		assert.Contains(t, lerr.Message, `..."`)
	}

	assert.Equal(t, strings.Repeat("é", 16)+"...", abbreviate(strings.Repeat("é", 20)))
	assert.Equal(t, "a"+strings.Repeat("é", 15)+"...", abbreviate("a"+strings.Repeat("é", 20)))
}
