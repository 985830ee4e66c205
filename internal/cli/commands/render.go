package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/pgparse/internal/cli/config"
)

// Output formats.
const (
	formatTable = "table"
	formatText  = "text"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// renderStructured writes v as JSON or YAML. It reports false for any other
// format so the caller can fall back to its own rendering.
func renderStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case formatJSON:
		return true, renderJSON(w, v)
	case formatYAML:
		return true, renderYAML(w, v)
	}
	return false, nil
}

const maxCellText = 40

// quoteCell renders source text for a table cell: quoted so whitespace is
// visible, and shortened.
func quoteCell(s string) string {
	q := strconv.Quote(s)
	if len(q) > maxCellText {
		return q[:maxCellText-3] + "..."
	}
	return q
}

func fileHeader(w io.Writer, name string) {
	_, _ = fmt.Fprintf(w, "== %s ==\n", name)
}

// useColor resolves a color mode for w. In auto mode color is used only when
// w is a terminal.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// errorStyle highlights malformed tokens. The renderer is pinned to the ANSI
// profile because useColor has already decided that w takes escape codes.
func errorStyle(w io.Writer) lipgloss.Style {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI)
	return r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
}
