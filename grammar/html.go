package grammar

import (
	"github.com/twigcst/twigcst/parser"
	"github.com/twigcst/twigcst/syntax"
)

// parseHTMLText consumes a run of tokens up to the next Twig anchor or
// `<`/`</`/`<!`/`<!--`, as a single HTML_TEXT node. ParseAny's dispatch
// sends every other token here, including a stray `</`; at such a stop
// token no node is emitted and the caller's ParseMany handles the token.
func parseHTMLText(p *parser.Parser) {
	if atHTMLTextStop(p) {
		return
	}
	m := p.Start()
	parser.ParseMany(p, atHTMLTextStop, func(p *parser.Parser) { p.Bump() })
	p.Complete(m, syntax.HtmlText)
}

func atHTMLTextStop(p *parser.Parser) bool {
	return atTwigAnchor(p) || p.At(syntax.LessThan) || p.At(syntax.LessThanSlash) ||
		p.At(syntax.LessThanBang) || p.At(syntax.LessThanBangDashDash)
}

// parseHTMLComment parses `<!-- ... -->`, relabelling a bare
// `ludtwig-ignore` / `ludtwig-ignore-file` directive word inside the
// comment body into its own kind so the typed view can find it without
// re-parsing comment text.
func parseHTMLComment(p *parser.Parser) {
	m := p.Start()
	p.Bump() // <!--
	parser.ParseMany(p, parser.UntilSet(syntax.NewSet(syntax.DashDashGreaterThan)), func(p *parser.Parser) {
		if p.At(syntax.Word) {
			switch p.CurrentText() {
			case "ludtwig-ignore":
				p.BumpAs(syntax.LudtwigDirectiveIgnore)
				return
			case "ludtwig-ignore-file":
				p.BumpAs(syntax.LudtwigDirectiveFileIgnore)
				return
			}
		}
		p.Bump()
	})
	p.Expect(syntax.DashDashGreaterThan, "html comment", syntax.Set{})
	p.Complete(m, syntax.HtmlComment)
}

// parseHTMLDoctype parses `<! DOCTYPE ... >`, consuming everything up to
// the closing `>` verbatim after the DOCTYPE keyword since the legal name
// and system/public identifiers after it are outside this module's scope
// (no HTML5-conformance non-goal).
func parseHTMLDoctype(p *parser.Parser) {
	m := p.Start()
	p.Bump() // <!
	if p.At(syntax.Word) && (p.CurrentText() == "DOCTYPE" || p.CurrentText() == "doctype") {
		p.BumpAs(syntax.DoctypeKeyword)
	} else {
		p.ExpectLabel("DOCTYPE", "html doctype")
	}
	parser.ParseMany(p, parser.UntilSet(syntax.NewSet(syntax.GreaterThan)), func(p *parser.Parser) { p.Bump() })
	p.Expect(syntax.GreaterThan, "html doctype", syntax.Set{})
	p.Complete(m, syntax.HtmlDoctype)
}

// parseHTMLElement parses a starting tag, an optional body, and a
// matching ending tag. Void elements (area, br, img, ...) and
// self-closing tags never get a body or ending tag regardless of how the
// starting tag was spelled.
func parseHTMLElement(p *parser.Parser) {
	m := p.Start()
	name, selfClosing := parseHTMLStartingTag(p)
	if !selfClosing && !syntax.VoidElements[name] {
		body := p.Start()
		parser.ParseMany(p, func(p *parser.Parser) bool { return p.At(syntax.LessThanSlash) }, ParseAny)
		p.Complete(body, syntax.Body)
		// A `</...>` only belongs to this element if its name matches: a
		// mismatched closer (e.g. `</div>` while closing `<span>`) is left
		// unconsumed for the enclosing scope, and this element gets an
		// empty ending tag and a diagnostic instead.
		if atClosingTagNamed(p, name) {
			parseHTMLEndingTag(p)
		} else {
			p.ExpectLabel("HTML Ending Tag", "html tag")
		}
	}
	p.Complete(m, syntax.HtmlTag)
}

// parseHTMLStartingTag parses `< name attrs (/>|>)`. It returns the tag
// name's text (empty if malformed) and whether it was spelled
// self-closing, both needed by the caller to decide whether a body and
// ending tag follow.
func parseHTMLStartingTag(p *parser.Parser) (name string, selfClosing bool) {
	m := p.Start()
	p.Expect(syntax.LessThan, "html starting tag", syntax.Set{})
	if p.At(syntax.Word) && tagNameRe.MatchString(p.CurrentText()) {
		name = p.CurrentText()
		p.Bump()
	} else {
		p.ExpectLabel("HTML Tag Name", "html starting tag")
	}
	parseHTMLAttributeList(p)
	switch {
	case p.At(syntax.SlashGreaterThan):
		p.Bump()
		selfClosing = true
	default:
		p.Expect(syntax.GreaterThan, "html starting tag", syntax.NewSet(syntax.SlashGreaterThan))
	}
	p.Complete(m, syntax.HtmlStartingTag)
	return name, selfClosing
}

// atClosingTagNamed reports whether the upcoming `</ word` spells the
// ending tag of the element named name. The body loop stops at any
// `</...>`, but only consumes it as this element's own ending tag when
// the name matches; a mismatched closer is left for the enclosing scope.
func atClosingTagNamed(p *parser.Parser, name string) bool {
	return p.AtFollowingContent(
		parser.KindText{Kind: syntax.LessThanSlash},
		parser.KindText{Kind: syntax.Word, Text: name},
	)
}

// parseHTMLEndingTag parses `</ name >`. It does not itself verify the
// name matches the corresponding starting tag; full tag-balance
// validation is outside this module's scope (no HTML5-conformance
// non-goal), and a mismatch is still represented losslessly.
func parseHTMLEndingTag(p *parser.Parser) {
	m := p.Start()
	p.Expect(syntax.LessThanSlash, "html ending tag", syntax.NewSet(syntax.GreaterThan))
	if p.At(syntax.Word) {
		p.Bump()
	} else {
		p.ExpectLabel("HTML Tag Name", "html ending tag")
	}
	p.Expect(syntax.GreaterThan, "html ending tag", syntax.Set{})
	p.Complete(m, syntax.HtmlEndingTag)
}

func parseHTMLAttributeList(p *parser.Parser) {
	m := p.Start()
	parser.ParseMany(p, func(p *parser.Parser) bool {
		return p.At(syntax.GreaterThan) || p.At(syntax.SlashGreaterThan)
	}, ParseAttributeOrTwig)
	p.Complete(m, syntax.HtmlAttributeList)
}

// parseHTMLAttribute parses `name` or `name = value`. Called only when
// ParseAttributeOrTwig has already ruled out a Twig anchor.
func parseHTMLAttribute(p *parser.Parser) {
	m := p.Start()
	switch {
	case p.At(syntax.Word) && attrNameRe.MatchString(p.CurrentText()):
		p.Bump()
	case p.At(syntax.Colon) && p.AtNthToken(syntax.Word, 1):
		// A bare `:` sigil lexes as Colon + Word ("bind"); merge both into
		// one WORD so `:bind` round-trips as a single attribute name
		// instead of an ERROR-wrapped colon. (`@click` and `$ref` already
		// lex as one WORD and take the branch above.)
		p.BumpNextNAs(2, syntax.Word)
	default:
		p.ExpectLabel("HTML Attribute Name", "html attribute")
		p.Recover(syntax.NewSet(syntax.Equal))
	}
	if p.At(syntax.Equal) {
		p.Bump()
		parseHTMLAttributeValue(p)
	}
	p.Complete(m, syntax.HtmlAttribute)
}

func parseHTMLAttributeValue(p *parser.Parser) {
	switch {
	case p.At(syntax.DoubleQuote):
		parseHTMLQuotedString(p, syntax.DoubleQuote)
	case p.At(syntax.SingleQuote):
		parseHTMLQuotedString(p, syntax.SingleQuote)
	default:
		parseHTMLUnquotedValue(p)
	}
}

// parseHTMLQuotedString parses a quoted attribute value, interpolating
// Twig variables and statements found inside it. ExplicitlyConsumeTrivia
// forces trailing whitespace before the closing quote to stay inside
// HTML_STRING_INNER rather than floating out to whatever follows the
// quote.
func parseHTMLQuotedString(p *parser.Parser, quote syntax.Kind) {
	m := p.Start()
	p.Bump() // opening quote
	inner := p.Start()
	parser.ParseMany(p, func(p *parser.Parser) bool { return p.At(quote) }, func(p *parser.Parser) {
		if atTwigAnchor(p) {
			parseAnyTwig(p, ParseAny)
		} else {
			p.Bump()
		}
	})
	p.ExplicitlyConsumeTrivia()
	p.Complete(inner, syntax.HtmlStringInner)
	p.Expect(quote, "html attribute value", syntax.Set{})
	p.Complete(m, syntax.HtmlString)
}

// parseHTMLUnquotedValue parses an unquoted attribute value: exactly one
// word or one `{{ ... }}` expression, wrapped in HTML_STRING_INNER like
// the quoted forms. Anything else reports "html attribute value" and
// recovers to {word, >, />}.
func parseHTMLUnquotedValue(p *parser.Parser) {
	m := p.Start()
	inner := p.Start()
	switch {
	case atTwigAnchor(p):
		parseAnyTwig(p, ParseAny)
	case p.At(syntax.Word):
		p.Bump()
	default:
		p.ExpectLabel("html attribute value", "html attribute value")
		p.Recover(syntax.NewSet(syntax.Word, syntax.GreaterThan, syntax.SlashGreaterThan))
	}
	p.Complete(inner, syntax.HtmlStringInner)
	p.Complete(m, syntax.HtmlString)
}
