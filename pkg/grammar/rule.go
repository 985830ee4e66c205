package grammar

import (
	"strings"

	"github.com/leapstack-labs/pgparse/pkg/token"
)

// Rule matches a prefix of the visible tokens at a cursor.
//
// On success Parse returns the match and leaves the cursor after it. On
// failure it returns false and the cursor is where it was before the call.
type Rule interface {
	Parse(c *Cursor) (Node, bool)
	// Describe renders the rule in an EBNF-like notation.
	Describe() string
}

// TerminalRule matches one token of a fixed kind.
type TerminalRule struct {
	Kind token.Kind
}

// Terminal returns a rule matching a single token of kind.
func Terminal(kind token.Kind) *TerminalRule {
	return &TerminalRule{Kind: kind}
}

func (r *TerminalRule) Parse(c *Cursor) (Node, bool) {
	tok, ok := c.Peek()
	if !ok || tok.Kind != r.Kind {
		c.expect(r.Kind)
		return nil, false
	}
	c.Advance()
	return &Leaf{Token: tok, Text: c.stream.Text(tok)}, true
}

func (r *TerminalRule) Describe() string {
	return "<" + label(r.Kind) + ">"
}

// SequenceRule matches its rules one after another.
type SequenceRule struct {
	Rules []Rule
}

// Sequence returns a rule that matches every rule in order. If any of them
// fails, the whole sequence fails and the cursor returns to where the
// sequence started.
func Sequence(rules ...Rule) *SequenceRule {
	return &SequenceRule{Rules: rules}
}

func (r *SequenceRule) Parse(c *Cursor) (Node, bool) {
	mark := c.Pos()
	children := make([]Node, 0, len(r.Rules))
	for _, rule := range r.Rules {
		n, ok := rule.Parse(c)
		if !ok {
			c.Seek(mark)
			clear(children)
			return nil, false
		}
		children = append(children, n)
	}
	return &Seq{Children: children}, true
}

func (r *SequenceRule) Describe() string {
	return describeAll(r.Rules, " ")
}

// AlternationRule matches the first of its rules that succeeds.
type AlternationRule struct {
	Rules []Rule
}

// Alternation returns a rule that tries each rule in order and keeps the
// first match. Later alternatives are not tried after a match, even if they
// would consume more tokens.
func Alternation(rules ...Rule) *AlternationRule {
	return &AlternationRule{Rules: rules}
}

func (r *AlternationRule) Parse(c *Cursor) (Node, bool) {
	mark := c.Pos()
	for i, rule := range r.Rules {
		if n, ok := rule.Parse(c); ok {
			return &Choice{Index: i, Node: n}, true
		}
		c.Seek(mark)
	}
	return nil, false
}

func (r *AlternationRule) Describe() string {
	return "[ " + describeAll(r.Rules, " | ") + " ]"
}

// RepeatRule matches its rule as many times as possible.
type RepeatRule struct {
	Rule Rule
}

// ZeroOrMore returns a rule that applies rule until it fails. It always
// succeeds, possibly with no items. Repetition also stops when an iteration
// matches without consuming a token, so a rule that can match nothing does
// not loop forever.
func ZeroOrMore(rule Rule) *RepeatRule {
	return &RepeatRule{Rule: rule}
}

func (r *RepeatRule) Parse(c *Cursor) (Node, bool) {
	var items []Node
	for {
		before := c.Pos()
		n, ok := r.Rule.Parse(c)
		if !ok {
			break
		}
		if c.Pos() == before {
			break
		}
		items = append(items, n)
	}
	return &Repeat{Items: items}, true
}

func (r *RepeatRule) Describe() string {
	return "{ " + r.Rule.Describe() + " }*"
}

// OptionalRule matches its rule or nothing.
type OptionalRule struct {
	Rule Rule
}

// ZeroOrOne returns a rule that always succeeds. When rule does not match,
// the result is an Optional with a nil Node and nothing is consumed.
func ZeroOrOne(rule Rule) *OptionalRule {
	return &OptionalRule{Rule: rule}
}

func (r *OptionalRule) Parse(c *Cursor) (Node, bool) {
	n, ok := r.Rule.Parse(c)
	if !ok {
		return &Optional{}, true
	}
	return &Optional{Node: n}, true
}

func (r *OptionalRule) Describe() string {
	return "[ " + r.Rule.Describe() + " ]?"
}

func describeAll(rules []Rule, sep string) string {
	parts := make([]string, len(rules))
	for i, rule := range rules {
		parts[i] = rule.Describe()
	}
	return strings.Join(parts, sep)
}

// label names a kind for rule descriptions and node rendering: the
// uppercased spelling for keywords and punctuation, otherwise the kind name
// in upper snake case.
func label(k token.Kind) string {
	if text := k.Text(); text != "" {
		return strings.ToUpper(text)
	}
	return strings.ToUpper(strings.ReplaceAll(k.String(), " ", "_"))
}
