package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/pgparse/pkg/lint"
	_ "github.com/leapstack-labs/pgparse/pkg/lint/rules" // register rules
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group string // Filter by group
}

// RuleRecord describes a lint rule in structured output.
type RuleRecord struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Group       string   `json:"group" yaml:"group"`
	Severity    string   `json:"severity" yaml:"severity"`
	Description string   `json:"description" yaml:"description"`
	ConfigKeys  []string `json:"config_keys,omitempty" yaml:"config_keys,omitempty"`
	BadExample  string   `json:"bad_example,omitempty" yaml:"bad_example,omitempty"`
	GoodExample string   `json:"good_example,omitempty" yaml:"good_example,omitempty"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List the lint rules with their group and default severity.

Give a rule ID to see its full documentation, including examples and the
options it accepts under lint.rules in pgparse.yaml.`,
		Example: `  # List all rules
  pgparse rules

  # Show details for a specific rule
  pgparse rules CV02

  # List rules in the convention group
  pgparse rules --group convention`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0])
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")

	return cmd
}

func newRuleRecord(rule lint.RuleDef) RuleRecord {
	return RuleRecord{
		ID:          rule.ID,
		Name:        rule.Name,
		Group:       rule.Group,
		Severity:    rule.Severity.String(),
		Description: rule.Description,
		ConfigKeys:  rule.ConfigKeys,
		BadExample:  rule.BadExample,
		GoodExample: rule.GoodExample,
	}
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)

	rules := lint.GetAll()
	if opts.Group != "" {
		rules = lint.GetByGroup(strings.ToLower(opts.Group))
		if len(rules) == 0 {
			return fmt.Errorf("no lint rules in group %q", opts.Group)
		}
	}

	records := make([]RuleRecord, len(rules))
	for i, rule := range rules {
		records[i] = newRuleRecord(rule)
	}

	if ok, err := renderStructured(cmdCtx.Out, cmdCtx.Cfg.Output, records); ok {
		return err
	}
	if cmdCtx.Cfg.Output == formatText {
		for _, r := range records {
			if _, err := fmt.Fprintf(cmdCtx.Out, "%s\t%s\t%s\n", r.ID, r.Severity, r.Description); err != nil {
				return err
			}
		}
		return nil
	}

	t := newTable(cmdCtx.Out)
	t.AppendHeader(table.Row{"ID", "Group", "Name", "Severity", "Description"})
	title := cases.Title(language.English)
	for _, r := range records {
		t.AppendRow(table.Row{r.ID, title.String(r.Group), r.Name, r.Severity, r.Description})
	}
	t.Render()
	_, _ = fmt.Fprintf(cmdCtx.Out, "(%d rules)\n", len(records))
	return nil
}

func showRule(cmd *cobra.Command, ruleID string) error {
	cmdCtx := NewCommandContext(cmd)

	rule, ok := lint.GetByID(ruleID)
	if !ok {
		return fmt.Errorf("rule %q not found", ruleID)
	}
	record := newRuleRecord(rule)

	if ok, err := renderStructured(cmdCtx.Out, cmdCtx.Cfg.Output, record); ok {
		return err
	}
	return showRuleText(cmdCtx.Out, record)
}

// showRuleText displays detailed rule info.
func showRuleText(w io.Writer, rule RuleRecord) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s\n\n", rule.ID, rule.Name)
	fmt.Fprintf(&b, "  Group: %s\n", rule.Group)
	fmt.Fprintf(&b, "  Severity: %s\n\n", rule.Severity)
	fmt.Fprintf(&b, "Description\n  %s\n", rule.Description)

	if rule.BadExample != "" {
		b.WriteString("\nBad Example\n")
		for _, line := range strings.Split(rule.BadExample, "\n") {
			b.WriteString("  " + line + "\n")
		}
	}
	if rule.GoodExample != "" {
		b.WriteString("\nGood Example\n")
		for _, line := range strings.Split(rule.GoodExample, "\n") {
			b.WriteString("  " + line + "\n")
		}
	}
	if len(rule.ConfigKeys) > 0 {
		fmt.Fprintf(&b, "\nConfiguration\n  Options: %s\n", strings.Join(rule.ConfigKeys, ", "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
