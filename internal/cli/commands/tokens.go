package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pgparse/pkg/scanner"
	"github.com/leapstack-labs/pgparse/pkg/token"
)

// TokensOptions holds options for the tokens command.
type TokensOptions struct {
	SQL  string // inline SQL instead of files
	Only string // comma-separated categories to keep
}

// TokenRecord is one token in structured output.
type TokenRecord struct {
	File     string `json:"file" yaml:"file"`
	Index    int    `json:"index" yaml:"index"`
	Kind     string `json:"kind" yaml:"kind"`
	Category string `json:"category" yaml:"category"`
	Line     int    `json:"line" yaml:"line"`
	Column   int    `json:"column" yaml:"column"`
	Offset   int    `json:"offset" yaml:"offset"`
	Length   int    `json:"length" yaml:"length"`
	Text     string `json:"text" yaml:"text"`
	Error    bool   `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	opts := &TokensOptions{}
	cmd := &cobra.Command{
		Use:   "tokens [file...]",
		Short: "Tokenize SQL and list the tokens",
		Long: `Tokenize SQL and list every token with its kind, category and position.

Input comes from --sql, the named files, or standard input. Files are
scanned concurrently. Whitespace and comments are hidden unless
--show-ignored is set; malformed tokens are always listed.`,
		Example: `  # Tokenize a file
  pgparse tokens schema.sql

  # Tokenize inline SQL including whitespace
  pgparse tokens --sql "DROP TABLE t;" --show-ignored

  # Only keywords and errors, as JSON
  pgparse tokens schema.sql --only keyword,error -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.SQL, "sql", "e", "", "SQL text to tokenize")
	cmd.Flags().StringVar(&opts.Only, "only", "", "Comma-separated categories to show (e.g. keyword,literal,error)")

	return cmd
}

func runTokens(cmd *cobra.Command, args []string, opts *TokensOptions) error {
	cmdCtx := NewCommandContext(cmd)

	filter := strings.Join(cmdCtx.Cfg.Only, ",")
	if f := cmd.Flags().Lookup("only"); f != nil && f.Changed {
		filter = opts.Only
	}
	only, err := token.ParseCategory(filter)
	if err != nil {
		return err
	}

	sources, err := readSources(cmd, opts.SQL, args)
	if err != nil {
		return err
	}

	streams := make([]*token.Stream, len(sources))
	if err := eachSource(cmd.Context(), len(sources), func(i int) error {
		streams[i] = scanner.Scan(sources[i].Data)
		return nil
	}); err != nil {
		return err
	}

	records := []TokenRecord{}
	for i, stream := range streams {
		n := 0
		for idx, tok := range stream.All(0) {
			if !keepToken(tok, only, cmdCtx.Cfg.ShowIgnored) {
				continue
			}
			records = append(records, newTokenRecord(sources[i].Name, idx, stream, tok))
			n++
		}
		cmdCtx.Logger.Debug("scanned", "file", sources[i].Name, "bytes", len(sources[i].Data), "tokens", stream.Len(), "shown", n)
		if errs := stream.Errors(); len(errs) > 0 {
			cmdCtx.Logger.Warn("lexical errors", "file", sources[i].Name, "count", len(errs))
		}
	}

	if ok, err := renderStructured(cmdCtx.Out, cmdCtx.Cfg.Output, records); ok {
		return err
	}
	if cmdCtx.Cfg.Output == formatText {
		return renderTokensText(cmdCtx.Out, records, useColor(cmdCtx.Cfg.Color, cmdCtx.Out), len(sources) > 1)
	}
	return renderTokensTable(cmdCtx.Out, records, len(sources) > 1)
}

// keepToken applies --only and --show-ignored. Error tokens survive the
// ignored filter so an unterminated comment is never hidden.
func keepToken(tok token.Token, only token.Category, showIgnored bool) bool {
	if only != 0 && !tok.Kind.Is(only) {
		return false
	}
	if !showIgnored && tok.Kind.Is(token.CatIgnored) && !tok.IsError() {
		return false
	}
	return true
}

func newTokenRecord(file string, idx int, stream *token.Stream, tok token.Token) TokenRecord {
	pos := stream.Position(tok.Offset)
	return TokenRecord{
		File:     file,
		Index:    idx,
		Kind:     tok.Kind.String(),
		Category: tok.Category().String(),
		Line:     pos.Line,
		Column:   pos.Column,
		Offset:   tok.Offset,
		Length:   tok.Length,
		Text:     stream.Text(tok),
		Error:    tok.IsError(),
	}
}

func renderTokensText(w io.Writer, records []TokenRecord, color, multi bool) error {
	style := errorStyle(w)
	file := ""
	for _, r := range records {
		if multi && r.File != file {
			file = r.File
			fileHeader(w, file)
		}
		line := fmt.Sprintf("%d:%d\t%s\t%q", r.Line, r.Column, r.Kind, r.Text)
		if r.Error && color {
			line = style.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func renderTokensTable(w io.Writer, records []TokenRecord, multi bool) error {
	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, "(0 tokens)")
		return nil
	}

	t := newTable(w)
	header := table.Row{"#", "Kind", "Category", "Position", "Text"}
	if multi {
		header = append(table.Row{"File"}, header...)
	}
	t.AppendHeader(header)

	for _, r := range records {
		row := table.Row{r.Index, r.Kind, r.Category, fmt.Sprintf("%d:%d", r.Line, r.Column), quoteCell(r.Text)}
		if multi {
			row = append(table.Row{r.File}, row...)
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d tokens)\n", len(records))
	return nil
}
