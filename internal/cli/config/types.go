// Package config provides configuration management for the pgparse CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	Output      string   `koanf:"output"`       // table, text, json or yaml
	Verbose     bool     `koanf:"verbose"`      // debug logging on stderr
	ShowIgnored bool     `koanf:"show_ignored"` // include whitespace and comments in token listings
	Only        []string `koanf:"only"`         // token categories listed by tokens; empty means all
	Rule        string   `koanf:"rule"`         // start production for parse
	Color       string   `koanf:"color"`        // auto, always or never
	KeywordCase string   `koanf:"keyword_case"` // upper, lower or preserve, for format

	Lint *LintConfig `koanf:"lint"`
}

// LintConfig holds lint rule configuration.
type LintConfig struct {
	// Disabled contains rule IDs to disable
	Disabled []string `koanf:"disabled"`

	// Severity maps rule ID to severity override (error, warning, info, hint)
	Severity map[string]string `koanf:"severity"`

	// Rules contains rule-specific options
	Rules map[string]RuleOptions `koanf:"rules"`
}

// RuleOptions holds rule-specific configuration options.
type RuleOptions map[string]any

// Default configuration values.
const (
	DefaultOutput = "table"
	DefaultRule   = "program"
	DefaultColor  = ColorAuto

	DefaultKeywordCase = "upper"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// OutputFormats lists the accepted values of the output key.
var OutputFormats = []string{"table", "text", "json", "yaml"}

// ColorModes lists the accepted values of the color key.
var ColorModes = []string{ColorAuto, ColorAlways, ColorNever}

// Default returns a Config holding the default values.
func Default() *Config {
	return &Config{
		Output:      DefaultOutput,
		Rule:        DefaultRule,
		Color:       DefaultColor,
		KeywordCase: DefaultKeywordCase,
	}
}
