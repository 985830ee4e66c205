package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pgparse/pkg/grammar"
	"github.com/leapstack-labs/pgparse/pkg/parser"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	SQL   string // inline SQL instead of files
	Tree  bool   // indented tree instead of the compact form in text output
	Watch bool   // re-parse files when they change
}

// NodeRecord is a match tree node in structured output.
type NodeRecord struct {
	Type     string       `json:"type" yaml:"type"`
	Kind     string       `json:"kind,omitempty" yaml:"kind,omitempty"`
	Text     string       `json:"text,omitempty" yaml:"text,omitempty"`
	Offset   *int         `json:"offset,omitempty" yaml:"offset,omitempty"`
	Choice   *int         `json:"choice,omitempty" yaml:"choice,omitempty"`
	Children []NodeRecord `json:"children,omitempty" yaml:"children,omitempty"`
}

// ParseRecord is the result for one input in structured output.
type ParseRecord struct {
	File  string      `json:"file" yaml:"file"`
	Rule  string      `json:"rule" yaml:"rule"`
	Tree  *NodeRecord `json:"tree,omitempty" yaml:"tree,omitempty"`
	Error string      `json:"error,omitempty" yaml:"error,omitempty"`
}

type parseResult struct {
	node grammar.Node
	err  error
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}
	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Match SQL against a grammar production",
		Long: `Match SQL against a production of the statement grammar and print the
match tree.

The whole input must match. Lexical errors are reported before parsing;
otherwise the error points at the furthest token the grammar reached and
lists the tokens it would have accepted there.

Use 'pgparse grammar' to list the productions.`,
		Example: `  # Parse a script of statements
  pgparse parse migrations.sql

  # Parse a single statement body
  pgparse parse --rule drop_role --sql "DROP ROLE IF EXISTS a, b"

  # Show the match as an indented tree
  pgparse parse --sql "SET search_path TO app;" -o text --tree

  # Re-check a migration on every save
  pgparse parse --watch migrations.sql -o text`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.SQL, "sql", "e", "", "SQL text to parse")
	cmd.Flags().String("rule", "", "Start production (default: program)")
	cmd.Flags().BoolVar(&opts.Tree, "tree", false, "Print an indented tree in text output")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Parse again whenever a file changes")

	_ = cmd.RegisterFlagCompletionFunc("rule", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, p := range parser.Productions() {
			names = append(names, p.Name())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	cmdCtx := NewCommandContext(cmd)

	ruleName := cmdCtx.Cfg.Rule
	if f := cmd.Flags().Lookup("rule"); f != nil && f.Changed {
		ruleName = f.Value.String()
	}
	rule, err := parser.Rule(ruleName)
	if err != nil {
		return err
	}

	if opts.Watch {
		if opts.SQL != "" || len(args) == 0 || slices.Contains(args, "-") {
			return errors.New("--watch needs file arguments")
		}
		return watchParse(cmd, cmdCtx, args, rule, opts)
	}

	sources, err := readSources(cmd, opts.SQL, args)
	if err != nil {
		return err
	}
	return parseSources(cmd.Context(), cmdCtx, sources, rule, opts)
}

// parseSources parses every source concurrently, renders the successful
// matches and returns the failures joined, each prefixed with its source.
func parseSources(ctx context.Context, cmdCtx *CommandContext, sources []source, rule *grammar.Production, opts *ParseOptions) error {
	results := make([]parseResult, len(sources))
	if err := eachSource(ctx, len(sources), func(i int) error {
		node, err := parser.Parse(sources[i].Data, rule)
		results[i] = parseResult{node: node, err: err}
		return nil
	}); err != nil {
		return err
	}

	var errs []error
	for i, res := range results {
		if res.err != nil {
			cmdCtx.Logger.Debug("parse failed", "file", sources[i].Name, "rule", rule.Name(), "error", res.err)
			errs = append(errs, fmt.Errorf("%s: %w", sources[i].Name, res.err))
			continue
		}
		cmdCtx.Logger.Debug("parsed", "file", sources[i].Name, "rule", rule.Name(), "leaves", len(grammar.Leaves(res.node)))
	}

	records := make([]ParseRecord, len(sources))
	for i, res := range results {
		records[i] = ParseRecord{File: sources[i].Name, Rule: rule.Name()}
		if res.err != nil {
			records[i].Error = res.err.Error()
		} else {
			records[i].Tree = newNodeRecord(res.node)
		}
	}

	multi := len(sources) > 1
	ok, renderErr := renderStructured(cmdCtx.Out, cmdCtx.Cfg.Output, records)
	switch {
	case ok:
	case cmdCtx.Cfg.Output == formatText:
		renderErr = renderParseText(cmdCtx.Out, sources, results, opts.Tree, multi)
	default:
		renderErr = renderParseTable(cmdCtx.Out, sources, results, multi)
	}
	if renderErr != nil {
		return renderErr
	}

	return errors.Join(errs...)
}

// watchParse parses the files once and again after every change until the
// context is cancelled or the process is interrupted. Parse errors are
// reported on stderr and do not stop the watch.
func watchParse(cmd *cobra.Command, cmdCtx *CommandContext, paths []string, rule *grammar.Production, opts *ParseOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	report := func(err error) {
		if err != nil {
			_, _ = fmt.Fprintf(cmdCtx.Err, "Error: %v\n", err)
		}
	}

	w, err := newSourceWatcher(paths)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	sources, err := readSources(cmd, "", paths)
	if err != nil {
		return err
	}
	report(parseSources(ctx, cmdCtx, sources, rule, opts))

	return w.Run(ctx, cmdCtx.Logger, func(changed []string) {
		sources, err := readSources(cmd, "", changed)
		if err != nil {
			report(err)
			return
		}
		report(parseSources(ctx, cmdCtx, sources, rule, opts))
	})
}

func newNodeRecord(n grammar.Node) *NodeRecord {
	rec := &NodeRecord{}
	switch n := n.(type) {
	case *grammar.Leaf:
		offset := n.Token.Offset
		rec.Type = "token"
		rec.Kind = n.Token.Kind.String()
		rec.Text = n.Text
		rec.Offset = &offset
	case *grammar.Seq:
		rec.Type = "sequence"
		rec.Children = childRecords(n.Children)
	case *grammar.Choice:
		index := n.Index
		rec.Type = "choice"
		rec.Choice = &index
		rec.Children = childRecords([]grammar.Node{n.Node})
	case *grammar.Repeat:
		rec.Type = "repeat"
		rec.Children = childRecords(n.Items)
	case *grammar.Optional:
		rec.Type = "optional"
		if n.Present() {
			rec.Children = childRecords([]grammar.Node{n.Node})
		}
	}
	return rec
}

func childRecords(nodes []grammar.Node) []NodeRecord {
	out := make([]NodeRecord, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, *newNodeRecord(n))
	}
	return out
}

// renderParseText prints successful matches only; failures are returned as
// the command error.
func renderParseText(w io.Writer, sources []source, results []parseResult, tree, multi bool) error {
	for i, res := range results {
		if res.err != nil {
			continue
		}
		if multi {
			fileHeader(w, sources[i].Name)
		}
		out := res.node.String() + "\n"
		if tree {
			out = grammar.Tree(res.node)
		}
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
	}
	return nil
}

func renderParseTable(w io.Writer, sources []source, results []parseResult, multi bool) error {
	t := newTable(w)
	header := table.Row{"#", "Kind", "Text"}
	if multi {
		header = append(table.Row{"File"}, header...)
	}
	t.AppendHeader(header)

	rows := 0
	for i, res := range results {
		if res.err != nil {
			continue
		}
		for j, leaf := range grammar.Leaves(res.node) {
			row := table.Row{j, leaf.Token.Kind.String(), quoteCell(leaf.Text)}
			if multi {
				row = append(table.Row{sources[i].Name}, row...)
			}
			t.AppendRow(row)
			rows++
		}
	}

	if rows == 0 {
		_, _ = fmt.Fprintln(w, "(0 tokens matched)")
		return nil
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d tokens matched)\n", rows)
	return nil
}
