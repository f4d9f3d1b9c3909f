// Package twigcst parses mixed HTML+Twig template source into a lossless
// concrete syntax tree. The pipeline is two layers: lexer.Lex produces a
// flat, context-free token stream, and the grammar package drives
// parser.Parser to build an event log that syntax.Build replays into an
// immutable green/red tree plus the diagnostics collected along the way.
package twigcst

import (
	"github.com/twigcst/twigcst/grammar"
	"github.com/twigcst/twigcst/lexer"
	"github.com/twigcst/twigcst/parser"
	"github.com/twigcst/twigcst/syntax"
)

// ParseResult is the output of Parse: the root of the tree plus every
// diagnostic collected while building it. A non-empty Diagnostics slice
// does not mean Root is unusable — the tree is always complete and
// lossless, errors notwithstanding.
type ParseResult struct {
	Root        *syntax.SyntaxNode
	Diagnostics []syntax.Diagnostic
}

// Parse lexes and parses source into a ParseResult. It never panics and
// never fails outright: unrecognised bytes become Error tokens, malformed
// productions become ERROR nodes, and parsing always terminates because
// every loop in the grammar and in parser.ParseMany is built to guarantee
// forward progress.
func Parse(source string) ParseResult {
	tokens := lexer.Lex(source)
	p := parser.New(tokens)
	grammar.ParseRoot(p)
	root, diags := syntax.Build(p.Events())
	return ParseResult{Root: root, Diagnostics: diags}
}
