// Package scanner converts raw SQL bytes into a token.Stream.
//
// Scanning is total. Malformed or unterminated constructs become
// error-category tokens, and the scan always runs to the end of the input.
// The resulting tokens partition the input exactly, including whitespace
// and comments, so tooling can annotate every byte of a source file.
//
// # Lexical rules
//
//	whitespace   run of space, \t, \n, \r, \f, \v
//	comment      -- to end of line, or /* ... */ with nesting
//	string       '...' or E'...' ('' escapes a quote; \ escapes in E'...')
//	bit string   B'...'
//	hex string   X'...'
//	identifier   "..." ("" escapes a quote) or a bare word
//	dollar quote $tag$ ... $tag$ (tag may be empty)
//	parameter    $ followed by digits
//	number       digits [. digits] [e [+|-] digits], or . digits
//	punctuation  :: .. := , ( ) [ ] . ; :
//	operator     + - * / % ^ < > = or any other run of ~!@#^&|`?+-*/%<>=
package scanner

import (
	"bytes"

	"github.com/leapstack-labs/pgparse/pkg/token"
)

const eof = -1

// Scanner tokenizes a byte buffer.
type Scanner struct {
	src []byte
	pos int // offset of the next unread byte
}

// New creates a Scanner over src. Zero bytes in src are ordinary content.
func New(src []byte) *Scanner {
	return &Scanner{src: src}
}

// Scan tokenizes src completely.
func Scan(src []byte) *token.Stream {
	s := New(src)
	var tokens []token.Token
	for {
		tok, ok := s.Next()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	return token.NewStream(src, tokens)
}

// ScanString tokenizes a string.
func ScanString(sql string) *token.Stream {
	return Scan([]byte(sql))
}

// Next returns the next token. It returns false once the input is
// exhausted; every returned token has a non-zero length.
func (s *Scanner) Next() (token.Token, bool) {
	if s.pos >= len(s.src) {
		return token.Token{}, false
	}
	start := s.pos
	kind := s.scan()
	return token.Token{Offset: start, Length: s.pos - start, Kind: kind}, true
}

// peek returns the byte n positions past the current one, or eof.
func (s *Scanner) peek(n int) int {
	if i := s.pos + n; i < len(s.src) {
		return int(s.src[i])
	}
	return eof
}

// scan consumes one token starting at s.pos and returns its kind.
func (s *Scanner) scan() token.Kind {
	c := s.src[s.pos]
	switch {
	case isSpace(c):
		s.skipWhile(isSpace)
		return token.WHITESPACE
	case c == '-' && s.peek(1) == '-':
		return s.lineComment()
	case c == '/' && s.peek(1) == '*':
		return s.blockComment()
	case c == '\'':
		return s.quoted('\'', false, token.SCONST, token.UNTERMINATED_STRING)
	case c == '"':
		return s.quotedIdent()
	case c == '$':
		return s.dollar()
	case isDigit(c), c == '.' && isDigitByte(s.peek(1)):
		return s.number()
	case isIdentStart(c):
		return s.word()
	}
	return s.punctuation(c)
}

func (s *Scanner) skipWhile(pred func(byte) bool) {
	for s.pos < len(s.src) && pred(s.src[s.pos]) {
		s.pos++
	}
}

// lineComment scans "--" up to, but not including, the next newline.
func (s *Scanner) lineComment() token.Kind {
	s.pos += 2
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.pos++
	}
	return token.COMMENT
}

// blockComment scans a possibly nested /* */ comment. An unbalanced comment
// runs to the end of the input.
func (s *Scanner) blockComment() token.Kind {
	s.pos += 2
	depth := 1
	for s.pos < len(s.src) {
		switch {
		case s.src[s.pos] == '/' && s.peek(1) == '*':
			depth++
			s.pos += 2
		case s.src[s.pos] == '*' && s.peek(1) == '/':
			depth--
			s.pos += 2
			if depth == 0 {
				return token.COMMENT
			}
		default:
			s.pos++
		}
	}
	return token.UNTERMINATED_COMMENT
}

// quoted scans from an opening quote to its matching close. A doubled quote
// is an escaped quote. With backslash set, a backslash escapes the next byte.
func (s *Scanner) quoted(quote byte, backslash bool, ok, unterminated token.Kind) token.Kind {
	s.pos++
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == quote && s.peek(1) == int(quote):
			s.pos += 2
		case c == quote:
			s.pos++
			return ok
		case c == '\\' && backslash:
			s.pos = min(s.pos+2, len(s.src))
		default:
			s.pos++
		}
	}
	return unterminated
}

func (s *Scanner) quotedIdent() token.Kind {
	start := s.pos
	kind := s.quoted('"', false, token.QIDENT, token.UNTERMINATED_QUOTED_IDENT)
	if kind == token.QIDENT && s.pos-start == 2 {
		return token.ZERO_LENGTH_QUOTED_IDENT
	}
	return kind
}

// word scans a bare word, or a string literal with a one-letter prefix.
func (s *Scanner) word() token.Kind {
	if s.peek(1) == '\'' {
		switch s.src[s.pos] {
		case 'e', 'E':
			s.pos++
			return s.quoted('\'', true, token.SCONST, token.UNTERMINATED_STRING)
		case 'b', 'B':
			s.pos++
			return s.quoted('\'', false, token.BCONST, token.UNTERMINATED_BIT_STRING)
		case 'x', 'X':
			s.pos++
			return s.quoted('\'', false, token.XCONST, token.UNTERMINATED_HEX_STRING)
		}
	}
	start := s.pos
	s.skipWhile(isIdentCont)
	return token.LookupIdent(string(s.src[start:s.pos]))
}

// number scans an integer or float literal. A '.' or exponent marker is
// only consumed when digits follow it.
func (s *Scanner) number() token.Kind {
	kind := token.ICONST
	s.skipWhile(isDigit)
	if s.peek(0) == '.' && isDigitByte(s.peek(1)) {
		s.pos++
		s.skipWhile(isDigit)
		kind = token.FCONST
	}
	if c := s.peek(0); c == 'e' || c == 'E' {
		n := 1
		if sign := s.peek(1); sign == '+' || sign == '-' {
			n = 2
		}
		if isDigitByte(s.peek(n)) {
			s.pos += n
			s.skipWhile(isDigit)
			kind = token.FCONST
		}
	}
	return kind
}

// dollar scans a positional parameter or a dollar-quoted string. A '$'
// that opens neither becomes a one-byte malformed dollar quote and scanning
// resumes right after it.
func (s *Scanner) dollar() token.Kind {
	start := s.pos
	i := start + 1
	if i < len(s.src) && isDigit(s.src[i]) {
		for i < len(s.src) && isDigit(s.src[i]) {
			i++
		}
		// A tag cannot start with a digit, so $1abc$ is neither a parameter
		// nor a delimiter.
		if i < len(s.src) && (isIdentStart(s.src[i]) || s.src[i] == '$') {
			s.pos++
			return token.MALFORMED_DOLLAR_QUOTE
		}
		s.pos = i
		return token.PARAM
	}

	if i < len(s.src) && isIdentStart(s.src[i]) {
		for i < len(s.src) && isIdentCont(s.src[i]) {
			i++
		}
	}
	if i >= len(s.src) || s.src[i] != '$' {
		s.pos++
		return token.MALFORMED_DOLLAR_QUOTE
	}

	delim := s.src[start : i+1]
	body := i + 1
	if n := bytes.Index(s.src[body:], delim); n >= 0 {
		s.pos = body + n + len(delim)
		return token.DCONST
	}
	s.pos = len(s.src)
	return token.UNTERMINATED_DOLLAR_STRING
}

// selfTokens maps single-byte tokens to their kinds.
var selfTokens = map[byte]token.Kind{
	',': token.COMMA,
	'(': token.LPAREN,
	')': token.RPAREN,
	'[': token.LBRACKET,
	']': token.RBRACKET,
	';': token.SEMICOLON,
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.STAR,
	'/': token.SLASH,
	'%': token.PERCENT,
	'^': token.CARET,
	'<': token.LT,
	'>': token.GT,
	'=': token.EQ,
}

func (s *Scanner) punctuation(c byte) token.Kind {
	switch c {
	case ':':
		switch s.peek(1) {
		case ':':
			s.pos += 2
			return token.TYPECAST
		case '=':
			s.pos += 2
			return token.COLON_EQUALS
		}
		s.pos++
		return token.COLON
	case '.':
		if s.peek(1) == '.' {
			s.pos += 2
			return token.DOTDOT
		}
		s.pos++
		return token.DOT
	case ',', '(', ')', '[', ']', ';':
		s.pos++
		return selfTokens[c]
	}
	if isOpChar(c) {
		return s.operator()
	}
	s.pos++
	return token.ILLEGAL
}

// operator scans the longest run of operator characters. The run stops
// before an embedded comment start.
func (s *Scanner) operator() token.Kind {
	start := s.pos
	s.pos++
	for s.pos < len(s.src) && isOpChar(s.src[s.pos]) {
		if s.atCommentStart() {
			break
		}
		s.pos++
	}
	if s.pos-start == 1 {
		if k, ok := selfTokens[s.src[start]]; ok {
			return k
		}
	}
	return token.OPERATOR
}

func (s *Scanner) atCommentStart() bool {
	c := s.src[s.pos]
	next := s.peek(1)
	return (c == '-' && next == '-') || (c == '/' && next == '*')
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isDigitByte(c int) bool {
	return c >= '0' && c <= '9'
}

// isIdentStart treats bytes >= 0x80 as letters so multi-byte UTF-8
// sequences stay inside one identifier.
func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c >= 0x80
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isOpChar(c byte) bool {
	return bytes.IndexByte(opChars, c) >= 0
}

var opChars = []byte("~!@#^&|`?+-*/%<>=")
