package commands

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pgparse/pkg/format"
)

// ErrNotFormatted is returned by format --check when a file would change.
var ErrNotFormatted = errors.New("files are not formatted")

// FormatOptions holds options for the format command.
type FormatOptions struct {
	SQL         string // inline SQL instead of files
	Write       bool   // rewrite files in place
	Check       bool   // report files that would change
}

// NewFormatCommand creates the format command.
func NewFormatCommand() *cobra.Command {
	opts := &FormatOptions{}
	cmd := &cobra.Command{
		Use:   "format [file...]",
		Short: "Reformat SQL",
		Long: `Reprint SQL with normalized layout: one statement per line, single
spaces between tokens and keywords in one case. Comments stay where they
are and at most one blank line is kept between statements.

Input with lexical errors is left alone and reported.`,
		Example: `  # Print a formatted file
  pgparse format schema.sql

  # Rewrite files in place with lowercase keywords
  pgparse format -w --keyword-case lower schema/*.sql

  # Fail if any file is not formatted
  pgparse format --check schema/*.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.SQL, "sql", "e", "", "SQL text to format")
	cmd.Flags().String("keyword-case", "", "Keyword case (upper|lower|preserve)")
	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write the result back to the files")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "List files that are not formatted and fail if any")

	_ = cmd.RegisterFlagCompletionFunc("keyword-case", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"upper", "lower", "preserve"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runFormat(cmd *cobra.Command, args []string, opts *FormatOptions) error {
	cmdCtx := NewCommandContext(cmd)

	if (opts.Write || opts.Check) && (opts.SQL != "" || len(args) == 0 || slices.Contains(args, "-")) {
		return errors.New("--write and --check need file arguments")
	}

	keywordCase := cmdCtx.Cfg.KeywordCase
	if f := cmd.Flags().Lookup("keyword-case"); f != nil && f.Changed {
		keywordCase = f.Value.String()
	}
	kc, err := format.ParseKeywordCase(keywordCase)
	if err != nil {
		return err
	}
	fmtOpts := format.Options{KeywordCase: kc}

	sources, err := readSources(cmd, opts.SQL, args)
	if err != nil {
		return err
	}

	outputs := make([][]byte, len(sources))
	errs := make([]error, len(sources))
	if err := eachSource(cmd.Context(), len(sources), func(i int) error {
		out, err := format.Source(sources[i].Data, fmtOpts)
		if err != nil {
			errs[i] = fmt.Errorf("%s: %w", sources[i].Name, err)
			return nil
		}
		outputs[i] = out
		return nil
	}); err != nil {
		return err
	}

	var unformatted []string
	for i, src := range sources {
		if errs[i] != nil {
			continue
		}
		changed := !bytes.Equal(src.Data, outputs[i])
		switch {
		case opts.Check:
			if changed {
				unformatted = append(unformatted, src.Name)
				_, _ = fmt.Fprintln(cmdCtx.Out, src.Name)
			}
		case opts.Write:
			if !changed {
				continue
			}
			if err := writeFilePreservingMode(src.Name, outputs[i]); err != nil {
				errs[i] = err
				continue
			}
			cmdCtx.Logger.Info("formatted", "file", src.Name)
		default:
			if len(sources) > 1 {
				fileHeader(cmdCtx.Out, src.Name)
			}
			if _, err := cmdCtx.Out.Write(outputs[i]); err != nil {
				return err
			}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	if len(unformatted) > 0 {
		return fmt.Errorf("%w: %d of %d", ErrNotFormatted, len(unformatted), len(sources))
	}
	return nil
}
