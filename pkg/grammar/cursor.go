// Package grammar provides backtracking parser combinators over a
// token.Stream.
//
// A grammar is built from five primitives: Terminal, Sequence, Alternation,
// ZeroOrMore and ZeroOrOne. Named productions made with Define document a
// grammar without changing what it matches. Rules are immutable once built
// and may be shared between goroutines; all parse state lives in the Cursor.
//
// Alternation is ordered: the first alternative that matches wins, and a
// later alternative is never tried once an earlier one succeeds. Every rule
// leaves the cursor exactly where it found it when it fails.
package grammar

import (
	"slices"

	"github.com/leapstack-labs/pgparse/pkg/token"
)

// Cursor is a position in a token stream. Tokens whose category shares a
// flag with the filter are invisible to rules.
type Cursor struct {
	stream *token.Stream
	filter token.Category
	pos    int // stream index of the next visible token, or stream.Len()

	furthest int // stream index of the furthest terminal failure, -1 if none
	expected []token.Kind
}

// NewCursor positions a cursor at the first visible token of stream.
func NewCursor(stream *token.Stream, filter token.Category) *Cursor {
	c := &Cursor{stream: stream, filter: filter, furthest: -1}
	c.pos = c.skip(0)
	return c
}

func (c *Cursor) skip(i int) int {
	for i < c.stream.Len() && c.stream.At(i).Category()&c.filter != 0 {
		i++
	}
	return i
}

// Stream returns the underlying token stream.
func (c *Cursor) Stream() *token.Stream { return c.stream }

// Filter returns the categories the cursor skips.
func (c *Cursor) Filter() token.Category { return c.filter }

// Pos returns the stream index of the next visible token. It doubles as a
// mark for Seek.
func (c *Cursor) Pos() int { return c.pos }

// Seek moves the cursor back to a position previously returned by Pos.
func (c *Cursor) Seek(pos int) { c.pos = pos }

// Done reports whether every visible token has been consumed.
func (c *Cursor) Done() bool { return c.pos >= c.stream.Len() }

// Peek returns the next visible token without consuming it.
func (c *Cursor) Peek() (token.Token, bool) {
	if c.Done() {
		return token.Token{}, false
	}
	return c.stream.At(c.pos), true
}

// Advance consumes and returns the next visible token.
func (c *Cursor) Advance() (token.Token, bool) {
	tok, ok := c.Peek()
	if ok {
		c.pos = c.skip(c.pos + 1)
	}
	return tok, ok
}

// expect records that kind was wanted at the current position.
func (c *Cursor) expect(kind token.Kind) {
	switch {
	case c.pos > c.furthest:
		c.furthest = c.pos
		c.expected = append(c.expected[:0], kind)
	case c.pos == c.furthest && !slices.Contains(c.expected, kind):
		c.expected = append(c.expected, kind)
	}
}

// Expected returns the furthest stream index at which a terminal failed to
// match, and the kinds that would have matched there. pos is -1 when no
// terminal has failed. pos equals the stream length when the input ended
// too early.
func (c *Cursor) Expected() (pos int, kinds []token.Kind) {
	return c.furthest, slices.Clone(c.expected)
}
