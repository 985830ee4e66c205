package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pgparse/internal/cli/config"
	"github.com/leapstack-labs/pgparse/pkg/lint"
	_ "github.com/leapstack-labs/pgparse/pkg/lint/rules" // register rules
	"github.com/leapstack-labs/pgparse/pkg/scanner"
	"github.com/leapstack-labs/pgparse/pkg/token"
)

// ErrLintIssues is returned when lint reports at least one diagnostic.
var ErrLintIssues = errors.New("lint issues found")

// LintOptions holds options for the lint command.
type LintOptions struct {
	SQL      string   // inline SQL instead of files
	Disable  []string // Rule IDs to disable
	Select   []string // Run only these rules
	Severity string   // Minimum severity: error, warning, info, hint
	Fix      bool     // Apply available fixes
}

// LintRecord is one diagnostic in structured output.
type LintRecord struct {
	File      string `json:"file" yaml:"file"`
	Rule      string `json:"rule" yaml:"rule"`
	Severity  string `json:"severity" yaml:"severity"`
	Line      int    `json:"line" yaml:"line"`
	Column    int    `json:"column" yaml:"column"`
	EndLine   int    `json:"end_line" yaml:"end_line"`
	EndColumn int    `json:"end_column" yaml:"end_column"`
	Message   string `json:"message" yaml:"message"`
	Fixable   bool   `json:"fixable,omitempty" yaml:"fixable,omitempty"`
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [file...]",
		Short: "Run lint rules on SQL",
		Long: `Check SQL for lexical errors and style issues.

Rules work on the token stream, so they see comments, whitespace and the
exact spelling of every keyword and operator. Rules can be disabled or
tuned under the lint key of pgparse.yaml; run 'pgparse rules' to list them.

With --fix, files are rewritten with every available fix applied and the
remaining issues are reported. Inline and standard input are printed back
fixed instead.`,
		Example: `  # Lint files
  pgparse lint schema/*.sql

  # Disable specific rules
  pgparse lint schema.sql --disable CV02,LY01

  # Only report errors and warnings
  pgparse lint schema.sql --severity warning

  # Rewrite files with fixes applied
  pgparse lint schema.sql --fix`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.SQL, "sql", "e", "", "SQL text to lint")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Select, "select", nil, "Run only these rule IDs")
	cmd.Flags().StringVar(&opts.Severity, "severity", "hint", "Minimum severity: error, warning, info, hint")
	cmd.Flags().BoolVar(&opts.Fix, "fix", false, "Apply available fixes")

	return cmd
}

func runLint(cmd *cobra.Command, args []string, opts *LintOptions) error {
	cmdCtx := NewCommandContext(cmd)

	threshold, ok := lint.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("invalid severity %q (want one of error, warning, info, hint)", opts.Severity)
	}
	lintCfg, err := buildLintConfig(cmdCtx.Cfg, opts)
	if err != nil {
		return err
	}
	analyzer := lint.NewAnalyzer(lintCfg)

	sources, err := readSources(cmd, opts.SQL, args)
	if err != nil {
		return err
	}
	fromFiles := opts.SQL == "" && len(args) > 0 && !slices.Contains(args, "-")

	results := make([][]LintRecord, len(sources))
	fixed := make([][]byte, len(sources))
	err = eachSource(cmd.Context(), len(sources), func(i int) error {
		src := sources[i]
		stream := scanner.Scan(src.Data)
		diags := analyzer.Analyze(stream)

		if opts.Fix {
			out, n := lint.ApplyFixes(src.Data, diags)
			fixed[i] = out
			if n > 0 && fromFiles {
				if err := writeFilePreservingMode(src.Name, out); err != nil {
					return err
				}
				cmdCtx.Logger.Info("applied fixes", "file", src.Name, "count", n)
				stream = scanner.Scan(out)
				diags = analyzer.Analyze(stream)
			}
		}
		results[i] = lintRecords(src.Name, stream, diags, threshold)
		return nil
	})
	if err != nil {
		return err
	}

	if opts.Fix && !fromFiles {
		for _, out := range fixed {
			if _, err := cmdCtx.Out.Write(out); err != nil {
				return err
			}
		}
		return nil
	}

	records := []LintRecord{}
	for i, r := range results {
		cmdCtx.Logger.Debug("linted", "file", sources[i].Name, "issues", len(r))
		records = append(records, r...)
	}

	if ok, err := renderStructured(cmdCtx.Out, cmdCtx.Cfg.Output, records); ok {
		if err != nil {
			return err
		}
	} else if cmdCtx.Cfg.Output == formatText {
		if err := renderLintText(cmdCtx.Out, records, useColor(cmdCtx.Cfg.Color, cmdCtx.Out)); err != nil {
			return err
		}
	} else {
		renderLintTable(cmdCtx.Out, records, len(sources) > 1)
	}

	if len(records) > 0 {
		return fmt.Errorf("%w: %s", ErrLintIssues, lintSummary(records))
	}
	return nil
}

// buildLintConfig merges the lint section of the config file with the
// command-line flags, which take precedence.
func buildLintConfig(cfg *config.Config, opts *LintOptions) (*lint.Config, error) {
	lintCfg := lint.NewConfig()

	if cfg != nil && cfg.Lint != nil {
		for _, id := range cfg.Lint.Disabled {
			if err := knownRule(id); err != nil {
				return nil, err
			}
			lintCfg.Disable(strings.TrimSpace(id))
		}
		for id, sev := range cfg.Lint.Severity {
			if err := knownRule(id); err != nil {
				return nil, err
			}
			if s, ok := lint.ParseSeverity(sev); ok {
				lintCfg.SetSeverity(id, s)
			}
		}
		for id, ruleOpts := range cfg.Lint.Rules {
			if err := knownRule(id); err != nil {
				return nil, err
			}
			lintCfg.SetOptions(id, ruleOpts)
		}
	}

	for _, id := range opts.Disable {
		if err := knownRule(id); err != nil {
			return nil, err
		}
		lintCfg.Disable(strings.TrimSpace(id))
	}

	// --select disables everything else
	if len(opts.Select) > 0 {
		selected := make(map[string]bool)
		for _, id := range opts.Select {
			if err := knownRule(id); err != nil {
				return nil, err
			}
			selected[strings.ToUpper(strings.TrimSpace(id))] = true
		}
		for _, rule := range lint.GetAll() {
			if !selected[rule.ID] {
				lintCfg.Disable(rule.ID)
			}
		}
	}

	return lintCfg, nil
}

func knownRule(id string) error {
	if _, ok := lint.GetByID(strings.TrimSpace(id)); !ok {
		return fmt.Errorf("unknown lint rule %q\nHint: run 'pgparse rules' to list rules", id)
	}
	return nil
}

func lintRecords(file string, stream *token.Stream, diags []lint.Diagnostic, threshold lint.Severity) []LintRecord {
	var records []LintRecord
	for _, d := range diags {
		if d.Severity > threshold {
			continue
		}
		records = append(records, LintRecord{
			File:      file,
			Rule:      d.RuleID,
			Severity:  d.Severity.String(),
			Line:      d.Pos.Line,
			Column:    d.Pos.Column,
			EndLine:   d.EndPos.Line,
			EndColumn: d.EndPos.Column,
			Message:   d.Message,
			Fixable:   len(d.Fixes) > 0,
		})
	}
	return records
}

func writeFilePreservingMode(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func lintSummary(records []LintRecord) string {
	counts := make(map[string]int)
	files := make(map[string]bool)
	for _, r := range records {
		counts[r.Severity]++
		files[r.File] = true
	}
	parts := []string{fmt.Sprintf("%d issues", len(records))}
	for _, sev := range []lint.Severity{lint.SeverityError, lint.SeverityWarning, lint.SeverityInfo, lint.SeverityHint} {
		if n := counts[sev.String()]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, sev))
		}
	}
	return fmt.Sprintf("%s in %d files", strings.Join(parts, ", "), len(files))
}

// severityStyles colors the severity column of text output.
func severityStyles(w io.Writer) map[string]lipgloss.Style {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI)
	return map[string]lipgloss.Style{
		lint.SeverityError.String():   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		lint.SeverityWarning.String(): r.NewStyle().Foreground(lipgloss.Color("11")),
		lint.SeverityInfo.String():    r.NewStyle().Foreground(lipgloss.Color("12")),
		lint.SeverityHint.String():    r.NewStyle().Faint(true),
	}
}

func renderLintText(w io.Writer, records []LintRecord, color bool) error {
	styles := severityStyles(w)
	for _, r := range records {
		sev := r.Severity
		if color {
			sev = styles[sev].Render(sev)
		}
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s %s\n", r.File, r.Line, r.Column, sev, r.Rule, r.Message); err != nil {
			return err
		}
	}
	return nil
}

func renderLintTable(w io.Writer, records []LintRecord, multi bool) {
	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, "(0 issues)")
		return
	}

	t := newTable(w)
	header := table.Row{"Position", "Severity", "Rule", "Message"}
	if multi {
		header = append(table.Row{"File"}, header...)
	}
	t.AppendHeader(header)

	for _, r := range records {
		row := table.Row{fmt.Sprintf("%d:%d", r.Line, r.Column), r.Severity, r.Rule, r.Message}
		if multi {
			row = append(table.Row{r.File}, row...)
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%s)\n", lintSummary(records))
}
