package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductions(t *testing.T) {
	prods := Productions()
	require.NotEmpty(t, prods)
	assert.Equal(t, "program", prods[0].Name())

	seen := map[string]bool{}
	for _, p := range prods {
		assert.False(t, seen[p.Name()], "duplicate production %s", p.Name())
		seen[p.Name()] = true
	}

	prods[0] = nil
	assert.NotNil(t, Productions()[0], "Productions should return a copy")
}

func TestLookup(t *testing.T) {
	p, ok := Lookup("drop_table")
	require.True(t, ok)
	assert.Same(t, DropTable, p)

	_, ok = Lookup("select")
	assert.False(t, ok)
}

func TestRule(t *testing.T) {
	p, err := Rule("create_role")
	require.NoError(t, err)
	assert.Same(t, CreateRole, p)

	_, err = Rule("nope")
	require.ErrorIs(t, err, ErrUnknownRule)
	assert.Contains(t, err.Error(), `"nope"`)
}

func TestDefinitions(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"drop_table", "drop_table ::= <DROP> <TABLE> <IDENTIFIER>"},
		{"drop_role", "drop_role ::= <DROP> <ROLE> [ <IF> <EXISTS> ]? name_list"},
		{"statement", "statement ::= [ drop_table | drop_role | create_role | set_variable ] <;>"},
		{"program", "program ::= { statement }*"},
		{"name", "name ::= [ <IDENTIFIER> | <QUOTED_IDENTIFIER> ]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := Lookup(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, p.Definition())
		})
	}
}
