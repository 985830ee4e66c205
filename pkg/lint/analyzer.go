package lint

import (
	"cmp"
	"slices"

	"github.com/leapstack-labs/pgparse/pkg/token"
)

// Analyzer runs lint rules against token streams.
type Analyzer struct {
	config *Config
}

// NewAnalyzer creates a new analyzer with optional configuration.
func NewAnalyzer(config *Config) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	return &Analyzer{config: config}
}

// Analyze runs every enabled registered rule against the stream and returns
// the diagnostics ordered by position, then rule ID.
func (a *Analyzer) Analyze(stream *token.Stream) []Diagnostic {
	if stream == nil {
		return nil
	}

	var diagnostics []Diagnostic
	for _, rule := range GetAll() {
		if a.config.IsDisabled(rule.ID) {
			continue
		}

		diags := rule.Check(stream, a.config.GetRuleOptions(rule.ID))

		for i := range diags {
			diags[i].RuleID = rule.ID
			diags[i].Severity = a.config.GetSeverity(rule.ID, diags[i].Severity)
		}

		diagnostics = append(diagnostics, diags...)
	}

	slices.SortStableFunc(diagnostics, func(x, y Diagnostic) int {
		return cmp.Or(cmp.Compare(x.Pos.Offset, y.Pos.Offset), cmp.Compare(x.RuleID, y.RuleID))
	})
	return diagnostics
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(diags []Diagnostic) bool {
	return slices.ContainsFunc(diags, func(d Diagnostic) bool { return d.Severity == SeverityError })
}
