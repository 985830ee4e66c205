package commands

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pgparse/internal/cli/config"
	"github.com/leapstack-labs/pgparse/internal/testutil"
	"github.com/leapstack-labs/pgparse/pkg/parser"
)

func TestParseText(t *testing.T) {
	tests := []struct {
		name string
		args []string
		rule string
		want string
	}{
		{
			name: "program",
			args: []string{"--sql", "DROP TABLE t; DROP ROLE r;"},
			want: "{((<DROP> <TABLE> <IDENTIFIER:t>) <;>) ((<DROP> <ROLE> [] (<IDENTIFIER:r> {})) <;>)}\n",
		},
		{
			name: "rule from flag",
			args: []string{"--sql", "DROP TABLE t", "--rule", "drop_table"},
			want: "(<DROP> <TABLE> <IDENTIFIER:t>)\n",
		},
		{
			name: "rule from config",
			args: []string{"--sql", `"Quoted"`},
			rule: "name",
			want: "<QUOTED_IDENTIFIER:\"Quoted\">\n",
		},
		{
			name: "tree",
			args: []string{"--sql", "DROP TABLE t", "--rule", "drop_table", "--tree"},
			want: "sequence\n" +
				"  DROP \"DROP\"\n" +
				"  TABLE \"TABLE\"\n" +
				"  IDENTIFIER \"t\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := withOutput("text")
			if tt.rule != "" {
				cfg.Rule = tt.rule
			}
			out, err := execute(t, NewParseCommand(), cfg, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	out, err := execute(t, NewParseCommand(), withOutput("text"), "--sql", "DROP TABLE ;")
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Equal(t, `<inline>: parse error at line 1, column 12: unexpected ";", expected identifier`, err.Error())

	var perr *parser.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 12, perr.Pos.Column)
}

func TestParseUnknownRule(t *testing.T) {
	_, err := execute(t, NewParseCommand(), withOutput("text"), "--sql", "x", "--rule", "select")
	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrUnknownRule))
}

func TestParseMultipleFiles(t *testing.T) {
	good := writeSQL(t, "good.sql", "SET search_path TO app;")
	bad := writeSQL(t, "bad.sql", "SET search_path app;")

	out, err := execute(t, NewParseCommand(), withOutput("text"), good, bad)
	require.Error(t, err)
	assert.Contains(t, out, "== "+good+" ==")
	assert.NotContains(t, out, bad)
	assert.Contains(t, err.Error(), bad+": parse error at line 1, column 17")
	assert.NotContains(t, err.Error(), good)
}

func TestParseJSON(t *testing.T) {
	bad := writeSQL(t, "bad.sql", "DROP ;")
	good := writeSQL(t, "good.sql", "DROP TABLE t;")

	out, err := execute(t, NewParseCommand(), withOutput("json"), good, bad)
	require.Error(t, err)

	var records []ParseRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)

	assert.Equal(t, good, records[0].File)
	assert.Equal(t, "program", records[0].Rule)
	require.NotNil(t, records[0].Tree)
	assert.Equal(t, "repeat", records[0].Tree.Type)
	assert.Empty(t, records[0].Error)

	stmt := records[0].Tree.Children[0]
	assert.Equal(t, "sequence", stmt.Type)
	choice := stmt.Children[0]
	assert.Equal(t, "choice", choice.Type)
	require.NotNil(t, choice.Choice)
	assert.Equal(t, 0, *choice.Choice)

	drop := choice.Children[0].Children[0]
	assert.Equal(t, "token", drop.Type)
	assert.Equal(t, "DROP", drop.Kind)
	require.NotNil(t, drop.Offset)
	assert.Equal(t, 0, *drop.Offset)

	assert.Nil(t, records[1].Tree)
	assert.True(t, strings.HasPrefix(records[1].Error, "parse error at line 1, column 6"))
}

func TestParseTable(t *testing.T) {
	out, err := execute(t, NewParseCommand(), withOutput("table"), "--sql", "CREATE ROLE bob WITH LOGIN;")
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE")
	assert.Contains(t, out, `"bob"`)
	assert.Contains(t, out, "(6 tokens matched)")

	out, err = execute(t, NewParseCommand(), withOutput("table"), "--sql", "-- empty")
	require.NoError(t, err)
	assert.Contains(t, out, "(0 tokens matched)")
}

func TestParseWatch(t *testing.T) {
	path := writeSQL(t, "watch.sql", "DROP TABLE a;")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = context.WithValue(ctx, config.ConfigKey(), withOutput("text"))
	ctx = context.WithValue(ctx, config.LoggerKey(), testutil.NewTestLogger(t))

	// LogBuffer is safe to read while the command is still writing.
	stdout := &testutil.LogBuffer{}
	stderr := &testutil.LogBuffer{}
	cmd := NewParseCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs([]string{"--watch", path})

	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	contains := func(buf *testutil.LogBuffer, want string) func() bool {
		return func() bool { return strings.Contains(buf.String(), want) }
	}

	require.Eventually(t, contains(stdout, "<IDENTIFIER:a>"), 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("DROP TABLE b;"), 0600))
	require.Eventually(t, contains(stdout, "<IDENTIFIER:b>"), 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("DROP TABLE ;"), 0600))
	require.Eventually(t, contains(stderr, path+": parse error at line 1, column 12"), 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestParseWatchNeedsFiles(t *testing.T) {
	tests := [][]string{
		{"--watch"},
		{"--watch", "--sql", "DROP TABLE t;"},
		{"--watch", "-"},
	}

	for _, args := range tests {
		_, err := execute(t, NewParseCommand(), withOutput("text"), args...)
		require.Error(t, err, "%v", args)
		assert.Contains(t, err.Error(), "--watch needs file arguments")
	}
}
