package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/pgparse/pkg/format"
	"github.com/leapstack-labs/pgparse/pkg/lint"
	"github.com/leapstack-labs/pgparse/pkg/parser"
	"github.com/leapstack-labs/pgparse/pkg/token"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(OutputFormats, c.Output) {
		return fmt.Errorf("invalid output format %q (want one of %s)", c.Output, strings.Join(OutputFormats, ", "))
	}
	if !slices.Contains(ColorModes, c.Color) {
		return fmt.Errorf("invalid color mode %q (want one of %s)", c.Color, strings.Join(ColorModes, ", "))
	}
	if _, err := token.ParseCategory(strings.Join(c.Only, ",")); err != nil {
		return fmt.Errorf("invalid token filter: %w", err)
	}
	if c.Rule == "" {
		return fmt.Errorf("rule is required")
	}
	if _, err := parser.Rule(c.Rule); err != nil {
		return fmt.Errorf("invalid rule: %w\nHint: run 'pgparse grammar' to list productions", err)
	}
	if _, err := format.ParseKeywordCase(c.KeywordCase); err != nil {
		return err
	}
	return c.Lint.Validate()
}

// Validate checks the severity overrides. A nil LintConfig is valid.
func (l *LintConfig) Validate() error {
	if l == nil {
		return nil
	}
	for id, sev := range l.Severity {
		if _, ok := lint.ParseSeverity(sev); !ok {
			return fmt.Errorf("invalid severity %q for lint rule %s (want one of error, warning, info, hint)", sev, id)
		}
	}
	return nil
}
