package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pgparse/pkg/token"
)

func TestKeywordsText(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "prefix",
			args:     []string{"--prefix", "DRO"},
			contains: []string{"DROP"},
			excludes: []string{"TABLE"},
		},
		{
			name:     "reserved only",
			args:     []string{"--category", "reserved"},
			contains: []string{"SELECT", "TABLE", "WITH"},
			excludes: []string{"DROP", "SET"},
		},
		{
			name:     "unreserved only",
			args:     []string{"-c", "unreserved"},
			contains: []string{"DROP", "SET", "ROLE"},
			excludes: []string{"SELECT"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewKeywordsCommand(), withOutput("text"), tt.args...)
			require.NoError(t, err)

			lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
			for _, want := range tt.contains {
				assert.Contains(t, lines, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, lines, unwanted)
			}
		})
	}
}

func TestKeywordsAll(t *testing.T) {
	out, err := execute(t, NewKeywordsCommand(), withOutput("json"))
	require.NoError(t, err)

	var records []KeywordRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, len(token.Keywords()))
	assert.Equal(t, "ABORT", records[0].Keyword)
	assert.Equal(t, "unreserved keyword", records[0].Category)
}

func TestKeywordsNoMatch(t *testing.T) {
	out, err := execute(t, NewKeywordsCommand(), withOutput("json"), "--prefix", "zzz")
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))
}

func TestKeywordsTable(t *testing.T) {
	out, err := execute(t, NewKeywordsCommand(), withOutput("table"), "--prefix", "drop")
	require.NoError(t, err)
	assert.Contains(t, out, "DROP")
	assert.Contains(t, out, "Unreserved Keyword")
	assert.Contains(t, out, "(1 keywords)")
}

func TestKeywordsBadCategory(t *testing.T) {
	_, err := execute(t, NewKeywordsCommand(), withOutput("text"), "--category", "verbs")
	require.Error(t, err)
}
