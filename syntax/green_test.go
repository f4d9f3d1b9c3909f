package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twigcst/twigcst/syntax"
)

func TestGreenTokenText(t *testing.T) {
	tok := syntax.NewGreenToken(syntax.Word, "hello")
	assert.Equal(t, "hello", tok.Text())
	assert.Equal(t, syntax.Word, tok.ElementKind())
}

func TestGreenNodeTextConcatenatesChildren(t *testing.T) {
	node := syntax.NewGreenNode(syntax.HtmlTag, []syntax.GreenElement{
		syntax.NewGreenToken(syntax.LessThan, "<"),
		syntax.NewGreenToken(syntax.Word, "div"),
		syntax.NewGreenToken(syntax.GreaterThan, ">"),
	})
	assert.Equal(t, "<div>", node.Text())
	assert.Equal(t, uint32(5), node.TextLen())
}

func TestInternerReusesStructurallyIdenticalNodes(t *testing.T) {
	in := syntax.NewInterner()
	a := in.Intern(syntax.HtmlAttribute, []syntax.GreenElement{
		syntax.NewGreenToken(syntax.Word, "class"),
	})
	b := in.Intern(syntax.HtmlAttribute, []syntax.GreenElement{
		syntax.NewGreenToken(syntax.Word, "class"),
	})
	assert.Same(t, a, b, "structurally identical nodes should be interned to the same pointer")
}

func TestInternerDistinguishesDifferentText(t *testing.T) {
	in := syntax.NewInterner()
	a := in.Intern(syntax.HtmlAttribute, []syntax.GreenElement{
		syntax.NewGreenToken(syntax.Word, "class"),
	})
	b := in.Intern(syntax.HtmlAttribute, []syntax.GreenElement{
		syntax.NewGreenToken(syntax.Word, "id"),
	})
	require.NotSame(t, a, b)
}

func TestInternerDistinguishesNestedNodeChildren(t *testing.T) {
	in := syntax.NewInterner()
	leaf1 := in.Intern(syntax.HtmlText, []syntax.GreenElement{syntax.NewGreenToken(syntax.Word, "a")})
	leaf2 := in.Intern(syntax.HtmlText, []syntax.GreenElement{syntax.NewGreenToken(syntax.Word, "b")})

	wrapA := in.Intern(syntax.Body, []syntax.GreenElement{leaf1})
	wrapB := in.Intern(syntax.Body, []syntax.GreenElement{leaf2})
	assert.NotSame(t, wrapA, wrapB)

	wrapA2 := in.Intern(syntax.Body, []syntax.GreenElement{leaf1})
	assert.Same(t, wrapA, wrapA2)
}
