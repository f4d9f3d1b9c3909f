package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twigcst/twigcst/lexer"
	"github.com/twigcst/twigcst/syntax"
)

func TestLexKinds(t *testing.T) {
	var tests = []struct {
		name  string
		input string
		kinds []syntax.Kind
	}{
		{
			name:  "html tag",
			input: "<div>",
			kinds: []syntax.Kind{syntax.LessThan, syntax.Word, syntax.GreaterThan},
		},
		{
			name:  "closing and self-closing",
			input: "</div><br/>",
			kinds: []syntax.Kind{
				syntax.LessThanSlash, syntax.Word, syntax.GreaterThan,
				syntax.LessThan, syntax.Word, syntax.SlashGreaterThan,
			},
		},
		{
			name:  "html comment",
			input: "<!-- hi -->",
			kinds: []syntax.Kind{
				syntax.LessThanBangDashDash, syntax.Whitespace, syntax.Word,
				syntax.Whitespace, syntax.DashDashGreaterThan,
			},
		},
		{
			name:  "twig var",
			input: "{{ name }}",
			kinds: []syntax.Kind{
				syntax.CurlyCurly, syntax.Whitespace, syntax.Word,
				syntax.Whitespace, syntax.CurlyCurlyClose,
			},
		},
		{
			name:  "twig block delimiters",
			input: "{% if %}{% endif %}",
			kinds: []syntax.Kind{
				syntax.CurlyPercent, syntax.Whitespace, syntax.Word, syntax.Whitespace, syntax.PercentCurly,
				syntax.CurlyPercent, syntax.Whitespace, syntax.Word, syntax.Whitespace, syntax.PercentCurly,
			},
		},
		{
			name:  "multi-char operators",
			input: ">= <= == != ** // ?? ?:",
			kinds: []syntax.Kind{
				syntax.GreaterThanEqual, syntax.Whitespace,
				syntax.LessThanEqual, syntax.Whitespace,
				syntax.DoubleEqual, syntax.Whitespace,
				syntax.BangEqual, syntax.Whitespace,
				syntax.DoubleStar, syntax.Whitespace,
				syntax.DoubleForwardSlash, syntax.Whitespace,
				syntax.QuestionQuestion, syntax.Whitespace,
				syntax.QuestionColon,
			},
		},
		{
			name:  "number",
			input: "1 2.5 3.",
			kinds: []syntax.Kind{
				syntax.Number, syntax.Whitespace,
				syntax.Number, syntax.Whitespace,
				syntax.Number, syntax.Dot,
			},
		},
		{
			name:  "string interpolation tokens",
			input: `"a#{b}c"`,
			kinds: []syntax.Kind{
				syntax.DoubleQuote, syntax.Word, syntax.HashCurlyOpen, syntax.Word,
				syntax.CurlyClose, syntax.Word, syntax.DoubleQuote,
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokens := lexer.Lex(test.input)
			got := make([]syntax.Kind, len(tokens))
			for i, tok := range tokens {
				got[i] = tok.Kind
			}
			assert.Equal(t, test.kinds, got)
		})
	}
}

func TestLexIsLosslessAndContiguous(t *testing.T) {
	inputs := []string{
		`<div class="a b" {% if x %}data-x{% endif %}>{{ y|upper }}</div>`,
		`{# a comment #}<!-- ludtwig-ignore -->`,
		``,
		`plain text with no markup at all`,
		"\xff\x00weird bytes<>",
	}
	for _, in := range inputs {
		tokens := lexer.Lex(in)
		var rebuilt string
		var pos uint32
		for _, tok := range tokens {
			require.Equal(t, pos, tok.Span.Start, "token %+v not contiguous", tok)
			rebuilt += tok.Text
			pos = tok.Span.End
		}
		assert.Equal(t, in, rebuilt)
		assert.Equal(t, uint32(len(in)), pos)
	}
}

func TestLexUnrecognizedByteBecomesErrorToken(t *testing.T) {
	tokens := lexer.Lex("a`b")
	require.Len(t, tokens, 3)
	assert.Equal(t, syntax.Error, tokens[1].Kind)
	assert.Equal(t, "`", tokens[1].Text)
}
