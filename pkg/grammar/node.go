package grammar

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/pgparse/pkg/token"
)

// Node is a match produced by a rule. The concrete types are *Leaf, *Seq,
// *Choice, *Repeat and *Optional.
type Node interface {
	String() string
	children() []Node
}

// Leaf is a single matched token with its source text.
type Leaf struct {
	Token token.Token
	Text  string
}

// Seq holds the matches of a sequence, one per rule.
type Seq struct {
	Children []Node
}

// Choice holds the winning alternative of an alternation.
type Choice struct {
	Index int // position of the winning alternative
	Node  Node
}

// Repeat holds the matches of a repetition in order.
type Repeat struct {
	Items []Node
}

// Optional holds the match of an optional rule. Node is nil when the rule
// did not match.
type Optional struct {
	Node Node
}

// Present reports whether the optional rule matched.
func (o *Optional) Present() bool { return o.Node != nil }

func (l *Leaf) children() []Node   { return nil }
func (s *Seq) children() []Node    { return s.Children }
func (c *Choice) children() []Node { return []Node{c.Node} }
func (r *Repeat) children() []Node { return r.Items }

func (o *Optional) children() []Node {
	if o.Node == nil {
		return nil
	}
	return []Node{o.Node}
}

// String renders the leaf as <KIND> for fixed spellings and <KIND:text>
// otherwise.
func (l *Leaf) String() string {
	if l.Token.Kind.Text() != "" {
		return "<" + label(l.Token.Kind) + ">"
	}
	return "<" + label(l.Token.Kind) + ":" + l.Text + ">"
}

func (s *Seq) String() string {
	return "(" + join(s.Children) + ")"
}

// String renders the chosen node; the alternation itself leaves no trace.
func (c *Choice) String() string {
	return c.Node.String()
}

func (r *Repeat) String() string {
	return "{" + join(r.Items) + "}"
}

func (o *Optional) String() string {
	if o.Node == nil {
		return "[]"
	}
	return "[" + o.Node.String() + "]"
}

func join(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, " ")
}

// Walk visits n and its descendants depth-first in source order. The
// children of a node are skipped when fn returns false for it.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.children() {
		Walk(child, fn)
	}
}

// Leaves returns the matched tokens under n in source order.
func Leaves(n Node) []*Leaf {
	var leaves []*Leaf
	Walk(n, func(n Node) bool {
		if l, ok := n.(*Leaf); ok {
			leaves = append(leaves, l)
		}
		return true
	})
	return leaves
}

// Tree renders n as an indented outline, one node per line.
func Tree(n Node) string {
	var sb strings.Builder
	writeTree(&sb, n, 0)
	return sb.String()
}

func writeTree(sb *strings.Builder, n Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	switch n := n.(type) {
	case *Leaf:
		fmt.Fprintf(sb, "%s %q\n", label(n.Token.Kind), n.Text)
	case *Seq:
		sb.WriteString("sequence\n")
	case *Choice:
		fmt.Fprintf(sb, "alternative %d\n", n.Index)
	case *Repeat:
		fmt.Fprintf(sb, "repeat (%d)\n", len(n.Items))
	case *Optional:
		if n.Present() {
			sb.WriteString("optional\n")
		} else {
			sb.WriteString("optional (absent)\n")
		}
	}
	for _, child := range n.children() {
		writeTree(sb, child, depth+1)
	}
}
