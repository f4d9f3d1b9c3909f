package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twigcst/twigcst/cst"
	"github.com/twigcst/twigcst/grammar"
	"github.com/twigcst/twigcst/lexer"
	"github.com/twigcst/twigcst/parser"
	"github.com/twigcst/twigcst/syntax"
)

func parse(source string) (*syntax.SyntaxNode, []syntax.Diagnostic) {
	tokens := lexer.Lex(source)
	p := parser.New(tokens)
	grammar.ParseRoot(p)
	return syntax.Build(p.Events())
}

func TestParseIsLosslessAcrossFixtures(t *testing.T) {
	fixtures := []string{
		`<div class="a"><p>hi</p></div>`,
		`<br><img src="x.png">`,
		`{{ name|upper }}`,
		`{% if x %}yes{% elseif y %}maybe{% else %}no{% endif %}`,
		`{% for item in items %}{{ item }}{% endfor %}`,
		`{% block content %}<p>body</p>{% endblock %}`,
		`{% apply upper %}hi{% endapply %}`,
		`{% set x = 1 %}`,
		`{% set x %}block form{% endset %}`,
		`{% use "blocks.html.twig" with sidebar as base_sidebar %}`,
		`{% extends "base.html.twig" %}`,
		`{% include "partial.html.twig" with {foo: 1} ignore missing only %}`,
		`{# a comment #}`,
		`<!DOCTYPE html><html></html>`,
		`<!-- ludtwig-ignore -->`,
		`<div {% if cond %}data-x="1"{% endif %} class="y"></div>`,
		`<div class=unquoted-value id=other>text</div>`,
		`<div></span>`, // mismatched tags, still lossless
		`<div>`,        // missing ending tag
		`{% unknown tag %}`,
	}
	for _, src := range fixtures {
		t.Run(src, func(t *testing.T) {
			root, _ := parse(src)
			assert.Equal(t, src, root.Text(), "parse must losslessly reconstruct the source")
			assert.Equal(t, syntax.Root, root.Kind())
		})
	}
}

func TestParseEmptySourceProducesEmptyRoot(t *testing.T) {
	root, diags := parse("")
	assert.Empty(t, diags)
	assert.Equal(t, syntax.Root, root.Kind())
	assert.Equal(t, "", root.Text())
}

func TestParseHTMLElementShape(t *testing.T) {
	root, diags := parse(`<div class="box">hello</div>`)
	assert.Empty(t, diags)
	children := root.Children()
	require.Len(t, children, 1)
	tag, ok := cst.CastHtmlTag(children[0])
	require.True(t, ok)
	assert.Equal(t, "div", tag.Name())
	attrs := tag.Attributes()
	require.Len(t, attrs, 1)
	assert.Equal(t, "class", attrs[0].Name())
	value, ok := attrs[0].Value()
	require.True(t, ok)
	text, isPlain := value.PlainText()
	assert.True(t, isPlain)
	assert.Equal(t, "box", text)

	ending, ok := tag.EndingTag()
	require.True(t, ok)
	assert.Equal(t, "div", ending.Name())
}

func TestParseVoidElementHasNoBody(t *testing.T) {
	root, diags := parse(`<br>`)
	assert.Empty(t, diags)
	tag, ok := cst.CastHtmlTag(root.Children()[0])
	require.True(t, ok)
	assert.Empty(t, tag.Body())
	_, hasEnding := tag.EndingTag()
	assert.False(t, hasEnding)
}

func TestParseSelfClosingTagHasNoBody(t *testing.T) {
	root, diags := parse(`<my-widget/>`)
	assert.Empty(t, diags)
	tag, ok := cst.CastHtmlTag(root.Children()[0])
	require.True(t, ok)
	st, ok := tag.StartingTag()
	require.True(t, ok)
	assert.True(t, st.IsSelfClosing())
	assert.Empty(t, tag.Body())
}

func TestParseMissingEndingTagProducesDiagnostic(t *testing.T) {
	root, diags := parse(`<div>`)
	require.NotEmpty(t, diags)
	assert.Equal(t, "<div>", root.Text())
}

func TestParseMismatchedEndingTagGoesToTheRightElement(t *testing.T) {
	// <div>hello<span>world!</div>: the only </...> in the source must
	// close div (the name matches), not span — span gets an empty ending
	// tag and its own diagnostic instead of swallowing div's closer.
	root, diags := parse(`<div>hello<span>world!</div>`)
	require.Len(t, diags, 1, "only span's missing ending tag is diagnosed")
	assert.Equal(t, `<div>hello<span>world!</div>`, root.Text())

	outer, ok := cst.CastHtmlTag(root.Children()[0])
	require.True(t, ok)
	assert.Equal(t, "div", outer.Name())
	ending, ok := outer.EndingTag()
	require.True(t, ok)
	assert.Equal(t, "div", ending.Name())

	body := outer.Body()
	require.Len(t, body, 2) // "hello" text, then the span element
	inner, ok := cst.CastHtmlTag(body[1])
	require.True(t, ok)
	assert.Equal(t, "span", inner.Name())
	_, hasEnding := inner.EndingTag()
	assert.False(t, hasEnding, "span must not consume div's closing tag")
}

func TestParseColonSigilAttributeName(t *testing.T) {
	root, diags := parse(`<div :bind="value"></div>`)
	assert.Empty(t, diags)
	tag, ok := cst.CastHtmlTag(root.Children()[0])
	require.True(t, ok)
	attrs := tag.Attributes()
	require.Len(t, attrs, 1)
	assert.Equal(t, ":bind", attrs[0].Name())
}

func TestParseUnquotedAttributeValueWrapsStringInner(t *testing.T) {
	root, diags := parse(`<div class=box></div>`)
	assert.Empty(t, diags)
	tag, ok := cst.CastHtmlTag(root.Children()[0])
	require.True(t, ok)
	value, ok := tag.Attributes()[0].Value()
	require.True(t, ok)
	children := value.Syntax().Children()
	require.Len(t, children, 1, "the value must wrap its content in an HTML_STRING_INNER node")
	assert.Equal(t, syntax.HtmlStringInner, children[0].Kind())
	assert.Equal(t, "box", children[0].Text())
	text, isPlain := value.PlainText()
	assert.True(t, isPlain)
	assert.Equal(t, "box", text)
}

func TestParseUnquotedAttributeValueMalformedRecovers(t *testing.T) {
	root, diags := parse(`<div class==></div>`)
	require.NotEmpty(t, diags)
	assert.Equal(t, `<div class==></div>`, root.Text())
}

func TestParseTwigIfBlockShape(t *testing.T) {
	root, diags := parse(`{% if x %}a{% elseif y %}b{% else %}c{% endif %}`)
	assert.Empty(t, diags)
	iff, ok := cst.CastTwigIf(root.Children()[0])
	require.True(t, ok)
	ifBlock, ok := iff.IfBlock()
	require.True(t, ok)
	assert.NotNil(t, ifBlock.Expression())
	elseifs := iff.ElseIfBlocks()
	require.Len(t, elseifs, 1)
	elseBlock, ok := iff.ElseBlock()
	require.True(t, ok)
	assert.NotEmpty(t, elseBlock.Body())
}

func TestParseTwigForBlockShape(t *testing.T) {
	root, diags := parse(`{% for item in items %}{{ item }}{% endfor %}`)
	assert.Empty(t, diags)
	loop, ok := cst.CastTwigFor(root.Children()[0])
	require.True(t, ok)
	assert.NotNil(t, loop.Expression())
	require.Len(t, loop.Body(), 1)
	_, isVar := cst.CastTwigVar(loop.Body()[0])
	assert.True(t, isVar)
}

func TestParseTwigBlockShape(t *testing.T) {
	root, diags := parse(`{% block content %}hi{% endblock %}`)
	assert.Empty(t, diags)
	b, ok := cst.CastTwigBlock(root.Children()[0])
	require.True(t, ok)
	assert.Equal(t, "content", b.Name())
	require.Len(t, b.Body(), 1)
}

func TestParseNestedTwigInAttribute(t *testing.T) {
	root, diags := parse(`<div {% if cond %}data-x="1"{% endif %}></div>`)
	assert.Empty(t, diags)
	tag, ok := cst.CastHtmlTag(root.Children()[0])
	require.True(t, ok)
	st, ok := tag.StartingTag()
	require.True(t, ok)
	al, ok := st.AttributeList()
	require.True(t, ok)
	children := al.Syntax().Children()
	require.Len(t, children, 1)
	assert.Equal(t, syntax.TwigIf, children[0].Kind())
}

func TestParseUnquotedAttributeValueStopsAtWhitespace(t *testing.T) {
	root, diags := parse(`<div class=box id=main>x</div>`)
	assert.Empty(t, diags)
	tag, ok := cst.CastHtmlTag(root.Children()[0])
	require.True(t, ok)
	attrs := tag.Attributes()
	require.Len(t, attrs, 2)
	v0, ok := attrs[0].Value()
	require.True(t, ok)
	text0, _ := v0.PlainText()
	assert.Equal(t, "box", text0)
	v1, ok := attrs[1].Value()
	require.True(t, ok)
	text1, _ := v1.PlainText()
	assert.Equal(t, "main", text1)
}

func TestParseLudtwigIgnoreCommentDirective(t *testing.T) {
	root, diags := parse(`<!-- ludtwig-ignore -->`)
	assert.Empty(t, diags)
	c, ok := cst.CastHtmlComment(root.Children()[0])
	require.True(t, ok)
	assert.True(t, c.IsLudtwigIgnore())
	assert.False(t, c.IsLudtwigIgnoreFile())
}

func TestParseTwigExpressionPrecedence(t *testing.T) {
	// "1 + 2 * 3" must parse as 1 + (2 * 3): the BINARY_EXPRESSION for "+"
	// wraps the literal 1 and a nested "*" BINARY_EXPRESSION, not the
	// reverse.
	root, diags := parse(`{{ 1 + 2 * 3 }}`)
	assert.Empty(t, diags)
	v, ok := cst.CastTwigVar(root.Children()[0])
	require.True(t, ok)
	expr := v.Expression()
	require.NotNil(t, expr)
	bin := expr.Children()
	require.Len(t, bin, 1)
	assert.Equal(t, syntax.TwigBinaryExpression, bin[0].Kind())
	// Leading whitespace is trivia owned by the next node, so each text
	// starts with the space that precedes it.
	assert.Equal(t, " 1 + 2 * 3", bin[0].Text())
	operands := bin[0].Children()
	require.Len(t, operands, 2, "LHS literal and the nested RHS (2 * 3) are both composite node children")
	assert.Equal(t, syntax.TwigLiteralNumber, operands[0].Kind())
	assert.Equal(t, " 1", operands[0].Text())
	assert.Equal(t, syntax.TwigBinaryExpression, operands[1].Kind())
	assert.Equal(t, " 2 * 3", operands[1].Text())
}

func TestParseTwigTernary(t *testing.T) {
	root, diags := parse(`{{ a ? b : c }}`)
	assert.Empty(t, diags)
	v, _ := cst.CastTwigVar(root.Children()[0])
	expr := v.Expression()
	require.NotNil(t, expr)
	children := expr.Children()
	require.Len(t, children, 1)
	assert.Equal(t, syntax.TwigTernaryExpression, children[0].Kind())
}

func TestParseTwigAccessorIndexFilterChain(t *testing.T) {
	// Mirrors the canonical fixture: TWIG_VAR containing TWIG_EXPRESSION
	// whose root is TWIG_FILTER with LHS TWIG_INDEX_LOOKUP on
	// TWIG_ACCESSOR(a,b).
	root, diags := parse(`{{ a.b[0] | length }}`)
	assert.Empty(t, diags)
	v, ok := cst.CastTwigVar(root.Children()[0])
	require.True(t, ok)
	expr := v.Expression()
	require.NotNil(t, expr)

	exprChildren := expr.Children()
	require.Len(t, exprChildren, 1)
	filter := exprChildren[0]
	assert.Equal(t, syntax.TwigFilter, filter.Kind())

	filterChildren := filter.Children()
	require.Len(t, filterChildren, 1)
	indexLookup := filterChildren[0]
	assert.Equal(t, syntax.TwigIndexLookup, indexLookup.Kind())
	assert.Equal(t, " a.b[0]", indexLookup.Text())

	ilChildren := indexLookup.Children()
	require.Len(t, ilChildren, 2) // the accessor LHS, and the TWIG_INDEX
	accessor := ilChildren[0]
	assert.Equal(t, syntax.TwigAccessor, accessor.Kind())
	assert.Equal(t, " a.b", accessor.Text())

	accessorChildren := accessor.Children()
	require.Len(t, accessorChildren, 2)
	assert.Equal(t, syntax.TwigOperand, accessorChildren[0].Kind())
	assert.Equal(t, " a", accessorChildren[0].Text())
	assert.Equal(t, syntax.TwigOperand, accessorChildren[1].Kind())
	assert.Equal(t, "b", accessorChildren[1].Text())

	assert.Equal(t, syntax.TwigIndex, ilChildren[1].Kind())
	assert.Equal(t, "0", ilChildren[1].Text())
}

func TestParseTwigNamedArgument(t *testing.T) {
	root, diags := parse(`{{ foo(name = "x", 1) }}`)
	assert.Empty(t, diags)
	v, _ := cst.CastTwigVar(root.Children()[0])
	expr := v.Expression()
	require.NotNil(t, expr)
	call := expr.Children()[0]
	assert.Equal(t, syntax.TwigFunctionCall, call.Kind())

	callChildren := call.Children()
	require.Len(t, callChildren, 2, "callee name node and the TWIG_ARGUMENTS node")
	assert.Equal(t, syntax.TwigLiteralName, callChildren[0].Kind())
	argsNode := callChildren[1]
	require.Equal(t, syntax.TwigArguments, argsNode.Kind())
	args := argsNode.Children()
	require.Len(t, args, 2)
	assert.Equal(t, syntax.TwigNamedArgument, args[0].Kind())
	assert.Equal(t, `name = "x"`, args[0].Text())
	assert.Equal(t, syntax.TwigExpression, args[1].Kind())
}

func TestParseTwigFilterChain(t *testing.T) {
	root, diags := parse(`{{ name|upper|trim }}`)
	assert.Empty(t, diags)
	v, _ := cst.CastTwigVar(root.Children()[0])
	expr := v.Expression()
	require.NotNil(t, expr)
	// Each `|` wraps the previous filter chain, so the outermost node is
	// the last filter applied.
	children := expr.Children()
	require.Len(t, children, 1)
	assert.Equal(t, syntax.TwigFilter, children[0].Kind())
	assert.Equal(t, " name|upper|trim", children[0].Text())
}
