package commands

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pgparse/internal/cli/config"
	"github.com/leapstack-labs/pgparse/pkg/lint"
)

func TestLintText(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		lint    *config.LintConfig
		want    string
		summary string
	}{
		{
			name:    "keyword case",
			args:    []string{"--sql", "drop TABLE t;"},
			want:    "<inline>:1:6: warning CV02 keyword \"TABLE\" should be lower case (table)\n",
			summary: "1 issues, 1 warning in 1 files",
		},
		{
			name: "clean",
			args: []string{"--sql", "DROP TABLE t;"},
		},
		{
			name:    "lexical error",
			args:    []string{"--sql", "SELECT 'open"},
			want:    "<inline>:1:8: error LX01 unterminated quoted string\n",
			summary: "1 issues, 1 error in 1 files",
		},
		{
			name:    "hints shown by default",
			args:    []string{"--sql", `DROP TABLE "t";  `},
			want:    "<inline>:1:12: hint CV03 identifier \"t\" does not need quotes\n<inline>:1:16: hint LY01 trailing whitespace\n",
			summary: "2 issues, 2 hint in 1 files",
		},
		{
			name: "severity threshold",
			args: []string{"--sql", `DROP TABLE "t";  `, "--severity", "warning"},
		},
		{
			name:    "select",
			args:    []string{"--sql", `drop TABLE "t";`, "--select", "cv03"},
			want:    "<inline>:1:12: hint CV03 identifier \"t\" does not need quotes\n",
			summary: "1 issues",
		},
		{
			name: "disable",
			args: []string{"--sql", `drop TABLE "t";`, "--disable", "CV02,CV03"},
		},
		{
			name: "disabled in config",
			args: []string{"--sql", "drop TABLE t;"},
			lint: &config.LintConfig{Disabled: []string{"cv02"}},
		},
		{
			name: "options and severity from config",
			args: []string{"--sql", "drop table t;"},
			lint: &config.LintConfig{
				Severity: map[string]string{"CV02": "error"},
				Rules:    map[string]config.RuleOptions{"CV02": {"policy": "upper"}},
			},
			want: "<inline>:1:1: error CV02 keyword \"drop\" should be upper case (DROP)\n" +
				"<inline>:1:6: error CV02 keyword \"table\" should be upper case (TABLE)\n",
			summary: "2 issues, 2 error in 1 files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := withOutput("text")
			cfg.Lint = tt.lint
			out, err := execute(t, NewLintCommand(), cfg, tt.args...)
			assert.Equal(t, tt.want, out)
			if tt.summary == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrLintIssues))
			assert.Contains(t, err.Error(), tt.summary)
		})
	}
}

func TestLintBadFlags(t *testing.T) {
	tests := []struct {
		args    []string
		lint    *config.LintConfig
		wantErr string
	}{
		{args: []string{"--sql", "x", "--disable", "ZZ99"}, wantErr: `unknown lint rule "ZZ99"`},
		{args: []string{"--sql", "x", "--select", "CV02,nope"}, wantErr: `unknown lint rule "nope"`},
		{args: []string{"--sql", "x", "--severity", "fatal"}, wantErr: `invalid severity "fatal"`},
		{args: []string{"--sql", "x"}, lint: &config.LintConfig{Disabled: []string{"AM01"}}, wantErr: `unknown lint rule "AM01"`},
	}

	for _, tt := range tests {
		cfg := withOutput("text")
		cfg.Lint = tt.lint
		_, err := execute(t, NewLintCommand(), cfg, tt.args...)
		require.Error(t, err, "%v", tt.args)
		assert.Contains(t, err.Error(), tt.wantErr)
		assert.False(t, errors.Is(err, ErrLintIssues))
	}
}

func TestLintJSON(t *testing.T) {
	path := writeSQL(t, "roles.sql", "DROP ROLE r;\ndrop TABLE t;\n")

	out, err := execute(t, NewLintCommand(), withOutput("json"), path)
	require.Error(t, err)

	var records []LintRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, LintRecord{
		File:      path,
		Rule:      "CV02",
		Severity:  "warning",
		Line:      2,
		Column:    1,
		EndLine:   2,
		EndColumn: 5,
		Message:   `keyword "drop" should be upper case (DROP)`,
		Fixable:   true,
	}, records[0])

	out, err = execute(t, NewLintCommand(), withOutput("json"), "--sql", "DROP ROLE r;")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestLintTable(t *testing.T) {
	out, err := execute(t, NewLintCommand(), withOutput("table"), "--sql", "drop TABLE t;")
	require.Error(t, err)
	assert.Contains(t, out, "CV02")
	assert.Contains(t, out, "1:6")
	assert.Contains(t, out, "(1 issues, 1 warning in 1 files)")

	out, err = execute(t, NewLintCommand(), withOutput("table"), "--sql", "DROP TABLE t;")
	require.NoError(t, err)
	assert.Equal(t, "(0 issues)\n", out)
}

func TestLintFixFiles(t *testing.T) {
	dirty := writeSQL(t, "dirty.sql", "drop TABLE \"t\";  \n")
	clean := writeSQL(t, "clean.sql", "DROP TABLE t;\n")

	out, err := execute(t, NewLintCommand(), withOutput("text"), "--fix", dirty, clean)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dirty)
	require.NoError(t, err)
	assert.Equal(t, "drop table t;\n", string(data))

	data, err = os.ReadFile(clean)
	require.NoError(t, err)
	assert.Equal(t, "DROP TABLE t;\n", string(data))
}

func TestLintFixReportsWhatRemains(t *testing.T) {
	path := writeSQL(t, "broken.sql", "drop TABLE t; SELECT 'open")

	out, err := execute(t, NewLintCommand(), withOutput("text"), "--fix", path)
	require.Error(t, err)
	assert.Equal(t, path+":1:22: error LX01 unterminated quoted string\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "drop table t; select 'open", string(data))
}

func TestLintFixInline(t *testing.T) {
	out, err := execute(t, NewLintCommand(), withOutput("text"), "--fix", "--sql", `DROP table "t";`)
	require.NoError(t, err)
	assert.Equal(t, "DROP TABLE t;", out)
}

func TestBuildLintConfig(t *testing.T) {
	t.Run("empty options", func(t *testing.T) {
		cfg, err := buildLintConfig(nil, &LintOptions{})
		require.NoError(t, err)
		assert.False(t, cfg.IsDisabled("CV02"))
	})

	t.Run("select disables the rest", func(t *testing.T) {
		cfg, err := buildLintConfig(nil, &LintOptions{Select: []string{"LX01", "cv01"}})
		require.NoError(t, err)
		for _, rule := range lint.GetAll() {
			want := rule.ID != "LX01" && rule.ID != "CV01"
			assert.Equal(t, want, cfg.IsDisabled(rule.ID), rule.ID)
		}
	})

	t.Run("flags add to config", func(t *testing.T) {
		projectCfg := config.Default()
		projectCfg.Lint = &config.LintConfig{Disabled: []string{"CV01"}}
		cfg, err := buildLintConfig(projectCfg, &LintOptions{Disable: []string{"CV02"}})
		require.NoError(t, err)
		assert.True(t, cfg.IsDisabled("CV01"))
		assert.True(t, cfg.IsDisabled("CV02"))
		assert.False(t, cfg.IsDisabled("CV03"))
	})

	t.Run("rule options", func(t *testing.T) {
		projectCfg := config.Default()
		projectCfg.Lint = &config.LintConfig{
			Rules: map[string]config.RuleOptions{"cv01": {"preferred": "ansi"}},
		}
		cfg, err := buildLintConfig(projectCfg, &LintOptions{})
		require.NoError(t, err)
		assert.Equal(t, "ansi", cfg.GetRuleOptions("CV01")["preferred"])
	})
}
