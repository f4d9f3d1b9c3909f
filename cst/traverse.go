package cst

import "github.com/twigcst/twigcst/syntax"

// Event is what Walk reports at each step of a pre-order traversal: a
// node or token, and whether this is the Enter or Leave visit. Tokens
// only ever get an Enter event, since they have no children to recurse
// into.
type Event struct {
	Node    *syntax.SyntaxNode
	Token   *syntax.SyntaxToken
	Leaving bool
}

// SkipSubtree, returned from a Walk callback, tells Walk not to descend
// into the node just entered and not to emit its matching Leave: an
// Enter followed by Skip is a self-contained visit. It has no effect on
// tokens, which only ever get an Enter event.
type SkipSubtree bool

const (
	Skip     SkipSubtree = true
	Continue SkipSubtree = false
)

// Walk performs a pre-order traversal of n and everything under it,
// invoking visit once per Enter and, unless that Enter returned Skip,
// once per Leave for every node, and once per token.
func Walk(n *syntax.SyntaxNode, visit func(Event) SkipSubtree) {
	if visit(Event{Node: n}) == Skip {
		return
	}
	for _, e := range n.ChildrenWithTokens() {
		switch v := e.(type) {
		case *syntax.SyntaxNode:
			Walk(v, visit)
		case *syntax.SyntaxToken:
			visit(Event{Token: v})
		}
	}
	visit(Event{Node: n, Leaving: true})
}
