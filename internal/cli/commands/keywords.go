package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/pgparse/pkg/token"
)

// KeywordsOptions holds options for the keywords command.
type KeywordsOptions struct {
	Category string // comma-separated keyword classes to keep
	Prefix   string // only keywords starting with this text
}

// KeywordRecord is a keyword in structured output.
type KeywordRecord struct {
	Keyword  string `json:"keyword" yaml:"keyword"`
	Category string `json:"category" yaml:"category"`
}

// NewKeywordsCommand creates the keywords command.
func NewKeywordsCommand() *cobra.Command {
	opts := &KeywordsOptions{}
	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "List the recognized keywords",
		Long: `List every keyword the scanner recognizes, in alphabetical order, with
its PostgreSQL keyword class (unreserved, reserved, type or function name,
column name). Keywords match case-insensitively.`,
		Example: `  # List every keyword
  pgparse keywords

  # Reserved keywords only
  pgparse keywords --category reserved

  # Keywords starting with "cur"
  pgparse keywords --prefix cur -o text`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runKeywords(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "Keyword classes to show: unreserved, reserved, typefunc, colname")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "Only keywords starting with this text")

	return cmd
}

func runKeywords(cmd *cobra.Command, opts *KeywordsOptions) error {
	cmdCtx := NewCommandContext(cmd)

	filter, err := token.ParseCategory(opts.Category)
	if err != nil {
		return err
	}
	if filter == 0 {
		filter = token.CatKeyword
	}
	prefix := strings.ToLower(opts.Prefix)

	records := []KeywordRecord{}
	for _, k := range token.Keywords() {
		if !k.Is(filter) || !strings.HasPrefix(k.Text(), prefix) {
			continue
		}
		records = append(records, KeywordRecord{Keyword: k.String(), Category: k.Category().String()})
	}
	cmdCtx.Logger.Debug("listing keywords", "total", len(token.Keywords()), "shown", len(records))

	if ok, err := renderStructured(cmdCtx.Out, cmdCtx.Cfg.Output, records); ok {
		return err
	}
	if cmdCtx.Cfg.Output == formatText {
		for _, r := range records {
			if _, err := fmt.Fprintln(cmdCtx.Out, r.Keyword); err != nil {
				return err
			}
		}
		return nil
	}

	titleCaser := cases.Title(language.English)
	t := newTable(cmdCtx.Out)
	t.AppendHeader(table.Row{"Keyword", "Class"})
	for _, r := range records {
		t.AppendRow(table.Row{r.Keyword, titleCaser.String(r.Category)})
	}
	t.Render()
	_, _ = fmt.Fprintf(cmdCtx.Out, "(%d keywords)\n", len(records))
	return nil
}
