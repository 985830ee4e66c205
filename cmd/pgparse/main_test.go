// Package main provides tests for the pgparse CLI.
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pgparse/internal/cli"
	"github.com/leapstack-labs/pgparse/internal/cli/commands"
)

func testdataFile(t *testing.T, name string) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Join(wd, "..", "..", "testdata", name)
}

// run executes the root command and returns stdout and stderr separately.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pgparse v"+cli.Version)
}

func TestVersionFlag(t *testing.T) {
	out, _, err := run(t, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, "pgparse "+cli.Version+"\n", out)
}

func TestHelpCommand(t *testing.T) {
	out, _, err := run(t, "", "--help")
	require.NoError(t, err)
	for _, expected := range []string{"tokens", "parse", "grammar", "keywords", "format", "lint", "rules", "completion", "version"} {
		assert.Contains(t, out, expected)
	}
}

func TestParseTestdata(t *testing.T) {
	out, _, err := run(t, "", "parse", "-o", "json", testdataFile(t, "roles.sql"))
	require.NoError(t, err)

	var records []commands.ParseRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Error)
	assert.Len(t, records[0].Tree.Children, 6)
}

func TestParseBrokenFile(t *testing.T) {
	_, _, err := run(t, "", "parse", testdataFile(t, "broken.sql"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse error at line 2, column 13: unexpected WITH, expected identifier or quoted identifier")
}

func TestParseLexicalError(t *testing.T) {
	_, _, err := run(t, "", "parse", testdataFile(t, "unterminated.sql"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lexer error at line 1, column 20: unterminated quoted string")
}

func TestParseStdin(t *testing.T) {
	out, _, err := run(t, "DROP TABLE t;", "parse", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, "{((<DROP> <TABLE> <IDENTIFIER:t>) <;>)}\n", out)
}

func TestTokensFromStdinWithDash(t *testing.T) {
	out, _, err := run(t, "a b", "tokens", "-o", "text", "--show-ignored", "-")
	require.NoError(t, err)
	assert.Equal(t, "1:1\tidentifier\t\"a\"\n1:2\twhitespace\t\" \"\n1:3\tidentifier\t\"b\"\n", out)
}

func TestConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "pgparse.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: text\nrule: drop_table\n"), 0600))

	// File sets the rule and format.
	out, _, err := run(t, "", "--config", cfgPath, "parse", "--sql", "DROP TABLE t")
	require.NoError(t, err)
	assert.Equal(t, "(<DROP> <TABLE> <IDENTIFIER:t>)\n", out)

	// Environment overrides the file.
	t.Setenv("PGPARSE_RULE", "drop_role")
	out, _, err = run(t, "", "--config", cfgPath, "parse", "--sql", "DROP ROLE r")
	require.NoError(t, err)
	assert.Equal(t, "(<DROP> <ROLE> [] (<IDENTIFIER:r> {}))\n", out)

	// Flags override both.
	out, _, err = run(t, "", "--config", cfgPath, "-o", "json", "grammar", "name")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "["))
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "bad output flag",
			args:    []string{"-o", "xml", "keywords"},
			wantErr: `invalid output format "xml"`,
		},
		{
			name:    "bad rule from env",
			args:    []string{"keywords"},
			env:     map[string]string{"PGPARSE_RULE": "select_stmt"},
			wantErr: "invalid rule",
		},
		{
			name:    "missing config file",
			args:    []string{"--config", "does-not-exist.yaml", "keywords"},
			wantErr: "error reading config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, _, err := run(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestVerboseLogsToStderr(t *testing.T) {
	out, stderr, err := run(t, "", "-v", "-o", "text", "tokens", "--sql", "x 'open")
	require.NoError(t, err)
	assert.Contains(t, out, "unterminated quoted string")
	assert.Contains(t, stderr, "level=DEBUG msg=scanned")
	assert.Contains(t, stderr, "level=WARN msg=\"lexical errors\"")
}

func TestQuietByDefault(t *testing.T) {
	_, stderr, err := run(t, "", "-o", "text", "tokens", "--sql", "x")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestFormatAndLintTestdata(t *testing.T) {
	path := testdataFile(t, "roles.sql")

	formatted, _, err := run(t, "", "format", path)
	require.NoError(t, err)

	// Formatter output passes the lint rules it can influence.
	out, _, err := run(t, formatted, "-o", "text", "lint", "--select", "CV02,LY01,LX01", "-")
	require.NoError(t, err)
	assert.Empty(t, out)

	again, _, err := run(t, formatted, "format")
	require.NoError(t, err)
	assert.Equal(t, formatted, again)
}

func TestLintConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "pgparse.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: text\nlint:\n  rules:\n    CV02:\n      policy: lower\n"), 0600))

	out, _, err := run(t, "", "--config", cfgPath, "lint", "--sql", "drop TABLE t;")
	require.Error(t, err)
	assert.Equal(t, "<inline>:1:6: warning CV02 keyword \"TABLE\" should be lower case (table)\n", out)

	_, _, err = run(t, "", "--config", cfgPath, "format", "--sql", "x", "--keyword-case", "title")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid keyword case "title"`)
}

func TestCompletionCommand(t *testing.T) {
	shells := []string{"bash", "zsh", "fish", "powershell"}

	for _, shell := range shells {
		t.Run(shell, func(t *testing.T) {
			out, _, err := run(t, "", "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "pgparse")
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := run(t, "", "unknown-command")
	assert.Error(t, err)
}
