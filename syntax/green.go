package syntax

import (
	"fmt"
	"strings"
)

// GreenElement is either a *GreenNode or a *GreenToken: the shared
// element type stored in a GreenNode's children slice.
type GreenElement interface {
	ElementKind() Kind
	textLen() uint32
	writeText(*strings.Builder)
}

// GreenToken is an immutable leaf: a kind and its exact source text. Two
// tokens with the same kind and text are interchangeable; the tree
// builder allocates one per token and interns only the nodes above them.
type GreenToken struct {
	kind Kind
	text string
}

// NewGreenToken builds a leaf green element. Exported for tree-builder
// and grammar test use; ordinary grammar code never constructs green
// elements directly, it drives them through the event log.
func NewGreenToken(kind Kind, text string) *GreenToken {
	return &GreenToken{kind: kind, text: text}
}

func (t *GreenToken) ElementKind() Kind       { return t.kind }
func (t *GreenToken) Text() string            { return t.text }
func (t *GreenToken) textLen() uint32         { return uint32(len(t.text)) }
func (t *GreenToken) writeText(b *strings.Builder) { b.WriteString(t.text) }

// GreenNode is an immutable interior node: a kind and its ordered
// children (nodes or tokens). It carries no parent pointer and no
// absolute offset, so structurally identical subtrees are indistinguishable
// and safe to share.
type GreenNode struct {
	kind     Kind
	children []GreenElement
	length   uint32
}

// NewGreenNode builds an interior green element from already-built
// children, as the tree builder does when it processes a FinishNode
// event.
func NewGreenNode(kind Kind, children []GreenElement) *GreenNode {
	var length uint32
	for _, c := range children {
		length += c.textLen()
	}
	return &GreenNode{kind: kind, children: children, length: length}
}

func (n *GreenNode) ElementKind() Kind { return n.kind }
func (n *GreenNode) Kind() Kind        { return n.kind }
func (n *GreenNode) textLen() uint32   { return n.length }
func (n *GreenNode) TextLen() uint32   { return n.length }
func (n *GreenNode) Children() []GreenElement {
	return n.children
}

func (n *GreenNode) writeText(b *strings.Builder) {
	for _, c := range n.children {
		c.writeText(b)
	}
}

// Text reconstructs the exact source text spanned by this subtree.
// Concatenating the text of every leaf token in document order
// reproduces the original input byte-for-byte (losslessness).
func (n *GreenNode) Text() string {
	var b strings.Builder
	b.Grow(int(n.length))
	n.writeText(&b)
	return b.String()
}

// Interner deduplicates structurally identical green nodes within one
// parse session, bounding memory on inputs with many repeated
// subtrees (e.g. long runs of identical attributes). It is scoped to a
// single Build call; green nodes from different sessions are never compared
// for identity, only for structural equality.
type Interner struct {
	nodes map[string]*GreenNode
}

// NewInterner creates an empty, session-scoped intern table.
func NewInterner() *Interner {
	return &Interner{nodes: make(map[string]*GreenNode)}
}

// Intern returns a canonical *GreenNode equal to the given kind and
// children, reusing a previously built node with the same shape when one
// exists.
func (in *Interner) Intern(kind Kind, children []GreenElement) *GreenNode {
	key := internKey(kind, children)
	if existing, ok := in.nodes[key]; ok {
		return existing
	}
	node := NewGreenNode(kind, children)
	in.nodes[key] = node
	return node
}

func internKey(kind Kind, children []GreenElement) string {
	var b strings.Builder
	b.WriteByte('(')
	writeUint(&b, uint64(kind))
	for _, c := range children {
		b.WriteByte(',')
		switch e := c.(type) {
		case *GreenToken:
			b.WriteByte('T')
			writeUint(&b, uint64(e.kind))
			b.WriteByte(':')
			b.WriteString(e.text)
		case *GreenNode:
			b.WriteByte('N')
			writeUint(&b, uint64(e.kind))
			b.WriteByte('@')
			fmt.Fprintf(&b, "%p", e)
		}
	}
	b.WriteByte(')')
	return b.String()
}

func writeUint(b *strings.Builder, v uint64) {
	if v == 0 {
		b.WriteByte('0')
		return
	}
	var digits [20]byte
	i := len(digits)
	for v > 0 {
		i--
		digits[i] = byte('0' + v%10)
		v /= 10
	}
	b.Write(digits[i:])
}
