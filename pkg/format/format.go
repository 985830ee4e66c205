// Package format reprints SQL from its token stream with normalized
// layout: one statement per line, single spaces between tokens and a chosen
// keyword case. Comments are kept where they were; blank lines between
// statements are kept, at most one in a row.
package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/pgparse/pkg/scanner"
	"github.com/leapstack-labs/pgparse/pkg/token"
)

// ErrMalformed is returned for input containing lexical errors.
var ErrMalformed = errors.New("cannot format malformed SQL")

// KeywordCase selects how keywords are written.
type KeywordCase int

// Keyword cases.
const (
	Upper KeywordCase = iota
	Lower
	Preserve
)

var keywordCaseNames = []string{"upper", "lower", "preserve"}

func (c KeywordCase) String() string {
	if c < 0 || int(c) >= len(keywordCaseNames) {
		return fmt.Sprintf("KeywordCase(%d)", int(c))
	}
	return keywordCaseNames[c]
}

// ParseKeywordCase converts "upper", "lower" or "preserve".
func ParseKeywordCase(s string) (KeywordCase, error) {
	for i, name := range keywordCaseNames {
		if strings.EqualFold(s, name) {
			return KeywordCase(i), nil
		}
	}
	return Upper, fmt.Errorf("invalid keyword case %q (want one of %s)", s, strings.Join(keywordCaseNames, ", "))
}

func (c KeywordCase) apply(s string) string {
	switch c {
	case Lower:
		return strings.ToLower(s)
	case Preserve:
		return s
	}
	return strings.ToUpper(s)
}

// Options control Format.
type Options struct {
	KeywordCase KeywordCase
}

// Format reprints the stream. It refuses input with lexical errors, since a
// malformed token has no reliable extent to preserve.
func Format(stream *token.Stream, opts Options) (string, error) {
	if errs := stream.Errors(); len(errs) > 0 {
		pos := stream.Position(errs[0].Offset)
		return "", fmt.Errorf("%w: %s at line %d, column %d", ErrMalformed, errs[0].Name(), pos.Line, pos.Column)
	}
	p := newPrinter(stream, opts)
	p.print()
	return p.String(), nil
}

// Source scans and formats src.
func Source(src []byte, opts Options) ([]byte, error) {
	out, err := Format(scanner.Scan(src), opts)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
