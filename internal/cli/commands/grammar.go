package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pgparse/pkg/grammar"
	"github.com/leapstack-labs/pgparse/pkg/parser"
)

// ProductionRecord is a grammar production in structured output.
type ProductionRecord struct {
	Name       string `json:"name" yaml:"name"`
	Definition string `json:"definition" yaml:"definition"`
}

// NewGrammarCommand creates the grammar command.
func NewGrammarCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "grammar [production...]",
		Short: "Show the statement grammar",
		Long: `Show the productions of the statement grammar in EBNF-like notation.

  <KW>        a token of that kind
  a b         sequence
  [ a | b ]   ordered alternation, first match wins
  { a }*      zero or more
  [ a ]?      optional`,
		Example: `  # Show every production
  pgparse grammar

  # Show one production
  pgparse grammar create_role`,
		RunE: runGrammar,
	}
}

func runGrammar(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)

	prods := parser.Productions()
	if len(args) > 0 {
		prods = prods[:0:0]
		for _, name := range args {
			p, err := parser.Rule(name)
			if err != nil {
				return err
			}
			prods = append(prods, p)
		}
	}

	records := make([]ProductionRecord, len(prods))
	for i, p := range prods {
		records[i] = ProductionRecord{Name: p.Name(), Definition: p.Definition()}
	}

	if ok, err := renderStructured(cmdCtx.Out, cmdCtx.Cfg.Output, records); ok {
		return err
	}
	if cmdCtx.Cfg.Output == formatText {
		return renderGrammarText(cmdCtx, prods)
	}

	t := newTable(cmdCtx.Out)
	t.AppendHeader(table.Row{"Production", "Definition"})
	for _, r := range records {
		t.AppendRow(table.Row{r.Name, r.Definition})
	}
	t.Render()
	return nil
}

func renderGrammarText(cmdCtx *CommandContext, prods []*grammar.Production) error {
	for _, p := range prods {
		if _, err := fmt.Fprintln(cmdCtx.Out, p.Definition()); err != nil {
			return err
		}
	}
	return nil
}
