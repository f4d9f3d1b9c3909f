// Package grammar implements the mutually recursive HTML and Twig
// grammars on top of the parser package's marker/event machinery. HTML
// and Twig productions live in one package (rather than two, one
// importing the other) because they call into each other directly:
// a Twig block's body parses HTML elements, and an HTML tag's attribute
// list or attribute-value string can itself contain Twig blocks and
// variables.
package grammar

import (
	"regexp"

	"github.com/twigcst/twigcst/parser"
	"github.com/twigcst/twigcst/syntax"
)

// ChildParser parses exactly one child production in some calling
// context (document body, HTML attribute list, ...). Twig statement
// blocks are handed the caller's child parser explicitly, so the same
// `{% block %}`/`{% if %}`/`{% for %}` grammar produces HTML elements
// when nested in a document body and attributes when nested in an
// attribute list, without any global or thread-local parsing mode.
type ChildParser func(p *parser.Parser)

// Regexes are the grammar's definitions of what text shapes a Word token
// must have to count as a tag name or an attribute name (spec.md §4.3);
// they are compiled once and reused by every parse call, per spec.md §9's
// "regex-gated lexer relabelling." Twig names are not checked against an
// identifier pattern: any WORD token is accepted where one is expected.
var (
	tagNameRe  = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9\-]*$`)
	attrNameRe = regexp.MustCompile(`^([a-zA-Z]|[:@#_$][a-zA-Z])[a-zA-Z0-9_\-]*$`)
)

// ParseRoot parses a complete template and wraps it in the single ROOT
// node every tree has (root uniqueness, spec.md §3).
func ParseRoot(p *parser.Parser) {
	m := p.Start()
	parser.ParseMany(p, func(p *parser.Parser) bool { return p.AtEOF() }, ParseAny)
	p.Complete(m, syntax.Root)
}

// atTwigAnchor reports whether the parser is positioned at one of the
// three Twig openers.
func atTwigAnchor(p *parser.Parser) bool {
	return p.At(syntax.CurlyPercent) || p.At(syntax.CurlyCurly) || p.At(syntax.CurlyHash)
}

// ParseAny is the document/HTML-body child parser: it dispatches to
// Twig when at a Twig anchor, and otherwise to the HTML grammar's own
// entry dispatch (spec.md §4.3's parse_any_html: comment, doctype,
// element, or text).
func ParseAny(p *parser.Parser) {
	switch {
	case atTwigAnchor(p):
		parseAnyTwig(p, ParseAny)
	case p.At(syntax.LessThanBangDashDash):
		parseHTMLComment(p)
	case p.At(syntax.LessThanBang):
		parseHTMLDoctype(p)
	case p.At(syntax.LessThan):
		parseHTMLElement(p)
	default:
		parseHTMLText(p)
	}
}

// ParseAttributeOrTwig is the HTML-attribute-list child parser
// (spec.md §4.3 point 3: parse_html_attribute_or_twig). A Twig block
// nested in an attribute list produces attributes in its body, not
// elements, because this function (not ParseAny) is threaded down as
// its child parser.
func ParseAttributeOrTwig(p *parser.Parser) {
	switch {
	case atTwigAnchor(p):
		parseAnyTwig(p, ParseAttributeOrTwig)
	default:
		parseHTMLAttribute(p)
	}
}
