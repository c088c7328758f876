package decoration

import "strings"

// Kind is the role of a node in a decoration tree.
type Kind int

const (
	// Text is visible text.
	Text Kind = iota
	// Hidden is delimiter text the rule suppresses.
	Hidden
	// Group wraps the text of one named capture group.
	Group
	// Match is the outer span of a decorated match.
	Match
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Hidden:
		return "hidden"
	case Group:
		return "group"
	case Match:
		return "match"
	}
	return "unknown"
}

// Node is one element of a decoration tree. Leaves (Text, Hidden) carry
// Text; spans (Group, Match) carry Class, the original Contents and
// Children.
type Node struct {
	Kind     Kind
	Class    string
	Text     string
	Contents string
	Children []*Node
}

// Fragment is a decorated match spliced between the untouched text around
// it. From and To are the byte offsets of the match in the scanned text.
type Fragment struct {
	Before string
	Node   *Node
	After  string
	From   int
	To     int
}

// VisibleText is the text a reader sees: everything except Hidden leaves.
func VisibleText(n *Node) string {
	var b strings.Builder
	writeVisible(&b, n)
	return b.String()
}

func writeVisible(b *strings.Builder, n *Node) {
	switch n.Kind {
	case Text:
		b.WriteString(n.Text)
	case Hidden:
	default:
		for _, c := range n.Children {
			writeVisible(b, c)
		}
	}
}

// Source rebuilds the original text of n, hidden parts included.
func Source(n *Node) string {
	if n.Kind == Text || n.Kind == Hidden {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(Source(c))
	}
	return b.String()
}

// Walk calls fn for n and every descendant, depth first, parents before
// children. Returning false skips the children of that node.
func Walk(n *Node, fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}
