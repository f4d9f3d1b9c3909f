package cst_test

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

func parse(t *testing.T, source string) *syntax.SyntaxNode {
	t.Helper()
	tokens := lexer.Lex(source)
	p := parser.New(tokens)
	grammar.ParseRoot(p)
	root, diags := syntax.Build(p.Events())
	require.Empty(t, diags, "fixture must parse cleanly")
	return root
}

func TestCastHtmlTagRejectsWrongKind(t *testing.T) {
	root := parse(t, `{{ x }}`)
	_, ok := cst.CastHtmlTag(root.Children()[0])
	assert.False(t, ok)
}

func TestCastHtmlTagRejectsNil(t *testing.T) {
	_, ok := cst.CastHtmlTag(nil)
	assert.False(t, ok)
}

func TestHtmlAttributeWithoutValue(t *testing.T) {
	root := parse(t, `<input disabled>`)
	tag, ok := cst.CastHtmlTag(root.Children()[0])
	require.True(t, ok)
	attrs := tag.Attributes()
	require.Len(t, attrs, 1)
	assert.Equal(t, "disabled", attrs[0].Name())
	_, hasValue := attrs[0].Value()
	assert.False(t, hasValue)
}

func TestHtmlStringPlainTextFalseWithInterpolation(t *testing.T) {
	root := parse(t, `<div class="a {{ b }}"></div>`)
	tag, _ := cst.CastHtmlTag(root.Children()[0])
	attrs := tag.Attributes()
	require.Len(t, attrs, 1)
	value, ok := attrs[0].Value()
	require.True(t, ok)
	_, isPlain := value.PlainText()
	assert.False(t, isPlain)
}

func TestHtmlTextAccessor(t *testing.T) {
	root := parse(t, `hello world`)
	txt, ok := cst.CastHtmlText(root.Children()[0])
	require.True(t, ok)
	assert.Equal(t, "hello world", txt.Text())
}

func TestHtmlDoctypeCast(t *testing.T) {
	root := parse(t, `<!DOCTYPE html>`)
	_, ok := cst.CastHtmlDoctype(root.Children()[0])
	assert.True(t, ok)
}

func TestTwigCommentCast(t *testing.T) {
	root := parse(t, `{# note #}`)
	_, ok := cst.CastTwigComment(root.Children()[0])
	assert.True(t, ok)
}

func TestHtmlTagBodyEmptyForVoidElement(t *testing.T) {
	root := parse(t, `<hr>`)
	tag, ok := cst.CastHtmlTag(root.Children()[0])
	require.True(t, ok)
	assert.Nil(t, tag.Body())
}

func TestTwigBlockNameEmptyWhenMissing(t *testing.T) {
	tokens := lexer.Lex(`{% block %}body{% endblock %}`)
	p := parser.New(tokens)
	grammar.ParseRoot(p)
	root, _ := syntax.Build(p.Events()) // missing name is diagnosed, not fatal
	b, ok := cst.CastTwigBlock(root.Children()[0])
	require.True(t, ok)
	assert.Equal(t, "", b.Name())
	assert.NotEmpty(t, b.Body())
}
