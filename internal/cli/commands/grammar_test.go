package commands

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pgparse/pkg/parser"
)

func TestGrammarText(t *testing.T) {
	out, err := execute(t, NewGrammarCommand(), withOutput("text"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, len(parser.Productions()))
	assert.Equal(t, parser.Program.Definition(), lines[0])
	for _, line := range lines {
		assert.Contains(t, line, " ::= ")
	}
}

func TestGrammarSelectedProductions(t *testing.T) {
	out, err := execute(t, NewGrammarCommand(), withOutput("text"), "name", "drop_table")
	require.NoError(t, err)
	assert.Equal(t,
		"name ::= [ <IDENTIFIER> | <QUOTED_IDENTIFIER> ]\n"+
			"drop_table ::= <DROP> <TABLE> <IDENTIFIER>\n",
		out)
}

func TestGrammarUnknownProduction(t *testing.T) {
	_, err := execute(t, NewGrammarCommand(), withOutput("text"), "name", "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrUnknownRule))
	assert.Contains(t, err.Error(), `"nope"`)
}

func TestGrammarJSON(t *testing.T) {
	out, err := execute(t, NewGrammarCommand(), withOutput("json"), "statement")
	require.NoError(t, err)

	var records []ProductionRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "statement", records[0].Name)
	assert.Equal(t, "statement ::= [ drop_table | drop_role | create_role | set_variable ] <;>", records[0].Definition)
}

func TestGrammarTable(t *testing.T) {
	out, err := execute(t, NewGrammarCommand(), withOutput("table"))
	require.NoError(t, err)
	assert.Contains(t, out, "Production")
	assert.Contains(t, out, "set_variable")
	assert.Contains(t, out, "role_option")
}
