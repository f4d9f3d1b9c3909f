package cst

import (
	"fmt"
	"strings"

	"github.com/twigcst/twigcst/syntax"
)

// Dump renders a tree in the teacher's indented recursive-print style, one
// node or token per line annotated with its absolute byte range, e.g.:
//
//	ROOT@0..13
//	  HTML_TAG@0..13
//	    HTML_STARTING_TAG@0..5
//	      <@0..1 "<"
//	      WORD@1..4 "div"
//	      ...
//
// Non-trivia tokens are followed by their quoted text; trivia tokens show
// only their kind and range. It exists for golden-file tests, where a
// mismatch renders as a readable diff.
func Dump(n *syntax.SyntaxNode) string {
	var b strings.Builder
	dump(&b, n, 0)
	return b.String()
}

func dump(b *strings.Builder, n *syntax.SyntaxNode, depth int) {
	writeIndent(b, depth)
	r := n.TextRange()
	fmt.Fprintf(b, "%s@%d..%d\n", n.Kind(), r.Start, r.End)
	for _, e := range n.ChildrenWithTokens() {
		switch v := e.(type) {
		case *syntax.SyntaxNode:
			dump(b, v, depth+1)
		case *syntax.SyntaxToken:
			writeIndent(b, depth+1)
			rng := v.ElementTextRange()
			if v.ElementKind().IsTrivia() {
				fmt.Fprintf(b, "%s@%d..%d\n", v.ElementKind(), rng.Start, rng.End)
			} else {
				fmt.Fprintf(b, "%s@%d..%d %q\n", v.ElementKind(), rng.Start, rng.End, v.Text())
			}
		}
	}
}

func writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}
