package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/pgparse/internal/cli/config"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Out    io.Writer
	Err    io.Writer
}

// NewCommandContext collects the config and logger stored by the root
// command, falling back to defaults when a command runs on its own.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return &CommandContext{
		Cfg:    config.GetConfig(ctx),
		Logger: config.GetLogger(ctx),
		Out:    cmd.OutOrStdout(),
		Err:    cmd.ErrOrStderr(),
	}
}

// source is one unit of SQL input.
type source struct {
	Name string
	Data []byte
}

const (
	inlineName = "<inline>"
	stdinName  = "<stdin>"
)

// readSources loads the SQL to work on: the inline text if given, else the
// named files, else standard input. "-" also names standard input.
func readSources(cmd *cobra.Command, inline string, paths []string) ([]source, error) {
	if inline != "" {
		return []source{{Name: inlineName, Data: []byte(inline)}}, nil
	}
	if len(paths) == 0 || (len(paths) == 1 && paths[0] == "-") {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []source{{Name: stdinName, Data: data}}, nil
	}

	sources := make([]source, len(paths))
	err := eachSource(cmd.Context(), len(paths), func(i int) error {
		data, err := os.ReadFile(paths[i])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", paths[i], err)
		}
		sources[i] = source{Name: paths[i], Data: data}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sources, nil
}

// eachSource runs fn for indices 0..n-1 on a bounded pool of goroutines
// and returns the first error. fn must only write to its own index.
func eachSource(ctx context.Context, n int, fn func(i int) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}
	return g.Wait()
}
