package format

import (
	"bytes"
	"strings"

	"github.com/leapstack-labs/pgparse/pkg/token"
)

const indentSize = 2

// Printer rebuilds SQL text token by token with normalized spacing.
type Printer struct {
	stream      *token.Stream
	opts        Options
	output      *bytes.Buffer
	depth       int
	atLineStart bool

	prev        token.Token // last token written
	prevText    string
	started     bool // something has been written
	inStatement bool // a statement has begun and not yet reached ";"
	unarySign   bool // prev is a sign applied to what follows
}

func newPrinter(stream *token.Stream, opts Options) *Printer {
	return &Printer{
		stream:      stream,
		opts:        opts,
		output:      &bytes.Buffer{},
		atLineStart: true,
	}
}

// String returns the formatted output.
func (p *Printer) String() string {
	out := strings.TrimRight(p.output.String(), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

func (p *Printer) write(s string) {
	if p.atLineStart && len(s) > 0 && s[0] != '\n' {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

func (p *Printer) writeln() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth*indentSize; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}

func (p *Printer) space() {
	p.output.WriteByte(' ')
}

// print walks the whole stream. newlines counts the line breaks in the
// whitespace since the previous token.
func (p *Printer) print() {
	newlines := 0
	for _, tok := range p.stream.Tokens() {
		text := p.stream.Text(tok)
		if tok.Kind == token.WHITESPACE {
			newlines += strings.Count(text, "\n")
			continue
		}
		p.separate(tok, text, newlines)
		p.token(tok, text)
		newlines = 0
	}
}

// separate writes what goes between the previous token and tok: nothing, a
// space, or a line break keeping at most one blank line.
func (p *Printer) separate(tok token.Token, text string, newlines int) {
	if !p.started {
		return
	}
	isComment := tok.Kind == token.COMMENT
	prevComment := p.prev.Kind == token.COMMENT
	lineComment := prevComment && strings.HasPrefix(p.prevText, "--")

	switch {
	case isComment && newlines == 0 && !lineComment:
		p.space()
	case p.prev.Kind == token.SEMICOLON, lineComment, isComment && newlines > 0, prevComment && newlines > 0:
		p.writeln()
		if newlines > 1 {
			p.writeln()
		}
		p.depth = 0
		if p.inStatement {
			p.depth = 1
		}
	case needsSpace(p.prev.Kind, tok.Kind, p.unarySign), glued(p.prevText, text):
		p.space()
	}
}

func (p *Printer) token(tok token.Token, text string) {
	if tok.Kind.Is(token.CatKeyword) {
		text = p.opts.KeywordCase.apply(text)
	}
	p.write(text)

	switch tok.Kind {
	case token.COMMENT:
	case token.SEMICOLON:
		p.inStatement = false
	default:
		p.inStatement = true
	}
	if tok.Kind != token.COMMENT {
		p.unarySign = (tok.Kind == token.MINUS || tok.Kind == token.PLUS) && !isOperand(p.prev.Kind, p.started)
	}
	p.prev, p.prevText, p.started = tok, text, true
}

// isOperand reports whether a value ends at a token of kind k, which makes
// a following + or - binary.
func isOperand(k token.Kind, started bool) bool {
	if !started {
		return false
	}
	switch k {
	case token.RPAREN, token.RBRACKET, token.PARAM:
		return true
	}
	return k.Is(token.CatLiteral | token.CatIdentifier)
}

// glued reports whether prev and next would rescan as a single operator or
// a comment start if written without a space.
func glued(prev, next string) bool {
	return prev != "" && next != "" &&
		strings.IndexByte(opChars, prev[len(prev)-1]) >= 0 &&
		strings.IndexByte(opChars, next[0]) >= 0
}

const opChars = "~!@#^&|`?+-*/%<>="

func needsSpace(prev, next token.Kind, unarySign bool) bool {
	if unarySign {
		return false
	}
	switch prev {
	case token.LPAREN, token.LBRACKET, token.DOT, token.TYPECAST:
		return false
	}
	switch next {
	case token.COMMA, token.SEMICOLON, token.RPAREN, token.LBRACKET, token.RBRACKET, token.DOT, token.TYPECAST:
		return false
	case token.LPAREN:
		// Function calls and type modifiers: count(*), varchar(10).
		return !(prev.Is(token.CatIdentifier) || prev.Is(token.CatTypeFuncName|token.CatColName))
	}
	return true
}
