package token

import (
	"fmt"
	"iter"
	"slices"
	"sync"
)

// Token is a classified span of source bytes.
type Token struct {
	Offset int
	Length int
	Kind   Kind
}

// End returns the offset one past the last byte of the token.
func (t Token) End() int {
	return t.Offset + t.Length
}

// Category returns the category flags of the token's kind.
func (t Token) Category() Category {
	return t.Kind.Category()
}

// Name returns the human-readable name of the token's kind.
func (t Token) Name() string {
	return t.Kind.String()
}

// IsError reports whether the token marks a lexical error.
func (t Token) IsError() bool {
	return t.Kind.Is(CatError)
}

func (t Token) String() string {
	return fmt.Sprintf("%s@%d+%d", t.Kind, t.Offset, t.Length)
}

// Stream is the ordered result of scanning a buffer. Its tokens partition
// the source exactly: every byte belongs to one token. A Stream is read-only
// once built.
type Stream struct {
	src    []byte
	tokens []Token

	linesOnce sync.Once
	lines     lineIndex
}

// NewStream wraps scanned tokens together with the source they cover.
func NewStream(src []byte, tokens []Token) *Stream {
	return &Stream{src: src, tokens: tokens}
}

// Len returns the number of tokens.
func (s *Stream) Len() int {
	return len(s.tokens)
}

// At returns the i-th token.
func (s *Stream) At(i int) Token {
	return s.tokens[i]
}

// Tokens returns a copy of all tokens.
func (s *Stream) Tokens() []Token {
	return slices.Clone(s.tokens)
}

// Source returns the scanned bytes. Callers must not modify them.
func (s *Stream) Source() []byte {
	return s.src
}

// Text returns the source text covered by t, with its original casing.
func (s *Stream) Text(t Token) string {
	if t.Offset < 0 || t.End() > len(s.src) || t.Length < 0 {
		return ""
	}
	return string(s.src[t.Offset:t.End()])
}

// All iterates over the tokens in source order, skipping any token whose
// category shares a flag with filter. A zero filter yields every token.
func (s *Stream) All(filter Category) iter.Seq2[int, Token] {
	return func(yield func(int, Token) bool) {
		for i, t := range s.tokens {
			if t.Category()&filter != 0 {
				continue
			}
			if !yield(i, t) {
				return
			}
		}
	}
}

// Errors returns the error-category tokens in source order.
func (s *Stream) Errors() []Token {
	var errs []Token
	for _, t := range s.tokens {
		if t.IsError() {
			errs = append(errs, t)
		}
	}
	return errs
}

// Position converts a byte offset into a line/column position. Offsets
// outside the source are clamped.
func (s *Stream) Position(offset int) Position {
	s.linesOnce.Do(func() {
		s.lines = newLineIndex(s.src)
	})
	offset = max(0, min(offset, len(s.src)))
	return s.lines.position(offset)
}

// Span returns the source range covered by t.
func (s *Stream) Span(t Token) Span {
	return Span{Start: s.Position(t.Offset), End: s.Position(t.End())}
}

// Validate checks that the tokens partition the source: they are non-empty,
// contiguous and cover every byte.
func (s *Stream) Validate() error {
	next := 0
	for i, t := range s.tokens {
		if t.Offset != next {
			return fmt.Errorf("token %d (%s) starts at %d, expected %d", i, t.Kind, t.Offset, next)
		}
		if t.Length <= 0 {
			return fmt.Errorf("token %d (%s) at %d is empty", i, t.Kind, t.Offset)
		}
		next = t.End()
	}
	if next != len(s.src) {
		return fmt.Errorf("tokens cover %d of %d bytes", next, len(s.src))
	}
	return nil
}
