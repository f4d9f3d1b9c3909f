package grammar

import (
	"github.com/twigcst/twigcst/parser"
	"github.com/twigcst/twigcst/syntax"
)

// parseAnyTwig dispatches on which of the three Twig openers is current.
// child is threaded down to whichever statement body follows, so the same
// block grammar produces HTML elements or attributes depending on where
// it was invoked from.
func parseAnyTwig(p *parser.Parser, child ChildParser) {
	switch {
	case p.At(syntax.CurlyCurly):
		parseTwigVar(p)
	case p.At(syntax.CurlyHash):
		parseTwigComment(p)
	case p.At(syntax.CurlyPercent):
		parseTwigStatement(p, child)
	}
}

func parseTwigVar(p *parser.Parser) {
	m := p.Start()
	p.Bump() // {{
	parseTwigExpression(p)
	p.Expect(syntax.CurlyCurlyClose, "twig variable", syntax.Set{})
	p.Complete(m, syntax.TwigVar)
}

func parseTwigComment(p *parser.Parser) {
	m := p.Start()
	p.Bump() // {#
	parser.ParseMany(p, parser.UntilSet(syntax.NewSet(syntax.HashCurly)), func(p *parser.Parser) { p.Bump() })
	p.Expect(syntax.HashCurly, "twig comment", syntax.Set{})
	p.Complete(m, syntax.TwigComment)
}

func parseTwigStatement(p *parser.Parser, child ChildParser) {
	switch {
	case atTwigKeyword(p, "if"):
		parseTwigIf(p, child)
	case atTwigKeyword(p, "for"):
		parseTwigFor(p, child)
	case atTwigKeyword(p, "block"):
		parseTwigBlock(p, child)
	case atTwigKeyword(p, "apply"):
		parseTwigApply(p, child)
	case atTwigKeyword(p, "set"):
		parseTwigSet(p, child)
	case atTwigKeyword(p, "use"):
		parseTwigUse(p)
	case atTwigKeyword(p, "extends"):
		parseTwigExtends(p)
	case atTwigKeyword(p, "include"):
		parseTwigInclude(p)
	default:
		parseTwigGenericStatement(p)
	}
}

func atTwigKeyword(p *parser.Parser, keyword string) bool {
	return p.AtFollowingContent(
		parser.KindText{Kind: syntax.CurlyPercent},
		parser.KindText{Kind: syntax.Word, Text: keyword},
	)
}

// atTwigTerminationTag reports whether the upcoming `{%` is immediately
// followed by one of the given keyword words, without consuming anything.
// Statement bodies use it as their ParseMany stop condition: ordinary
// text and nested constructs keep accumulating in the body until the
// matching closing/continuation tag for the enclosing block is seen.
func atTwigTerminationTag(p *parser.Parser, keywords ...string) bool {
	if !p.AtFollowing(syntax.CurlyPercent, syntax.Word) {
		return false
	}
	tok, _ := p.PeekNthToken(1)
	for _, kw := range keywords {
		if tok.Text == kw {
			return true
		}
	}
	return false
}

func parseTwigStartingBlockWithExpr(p *parser.Parser, keywordKind syntax.Kind) {
	m := p.Start()
	p.Bump() // {%
	p.BumpAs(keywordKind)
	parseTwigExpression(p)
	p.Expect(syntax.PercentCurly, "twig starting block", syntax.Set{})
	p.Complete(m, syntax.TwigStartingBlock)
}

func parseTwigStartingBlockNoExpr(p *parser.Parser, keywordKind syntax.Kind) {
	m := p.Start()
	p.Bump() // {%
	p.BumpAs(keywordKind)
	p.Expect(syntax.PercentCurly, "twig starting block", syntax.Set{})
	p.Complete(m, syntax.TwigStartingBlock)
}

func parseTwigEndingBlock(p *parser.Parser, keywordKind syntax.Kind) {
	m := p.Start()
	p.Bump() // {%
	p.BumpAs(keywordKind)
	p.Expect(syntax.PercentCurly, "twig ending block", syntax.Set{})
	p.Complete(m, syntax.TwigEndingBlock)
}

// --- if/elseif/else/endif -------------------------------------------------

func parseTwigIf(p *parser.Parser, child ChildParser) {
	m := p.Start()
	parseTwigIfBlock(p, child)
	for atTwigKeyword(p, "elseif") {
		parseTwigElseIfBlock(p, child)
	}
	if atTwigKeyword(p, "else") {
		parseTwigElseBlock(p, child)
	}
	if atTwigKeyword(p, "endif") {
		parseTwigEndifBlock(p)
	} else {
		p.ExpectLabel("{% endif %}", "twig if")
	}
	p.Complete(m, syntax.TwigIf)
}

func parseTwigIfBlock(p *parser.Parser, child ChildParser) {
	m := p.Start()
	parseTwigStartingBlockWithExpr(p, syntax.IfKeyword)
	body := p.Start()
	parser.ParseMany(p, func(p *parser.Parser) bool {
		return atTwigTerminationTag(p, "elseif", "else", "endif")
	}, child)
	p.Complete(body, syntax.Body)
	p.Complete(m, syntax.TwigIfBlock)
}

func parseTwigElseIfBlock(p *parser.Parser, child ChildParser) {
	m := p.Start()
	parseTwigStartingBlockWithExpr(p, syntax.ElseifKeyword)
	body := p.Start()
	parser.ParseMany(p, func(p *parser.Parser) bool {
		return atTwigTerminationTag(p, "elseif", "else", "endif")
	}, child)
	p.Complete(body, syntax.Body)
	p.Complete(m, syntax.TwigElseIfBlock)
}

func parseTwigElseBlock(p *parser.Parser, child ChildParser) {
	m := p.Start()
	parseTwigStartingBlockNoExpr(p, syntax.ElseKeyword)
	body := p.Start()
	parser.ParseMany(p, func(p *parser.Parser) bool { return atTwigTerminationTag(p, "endif") }, child)
	p.Complete(body, syntax.Body)
	p.Complete(m, syntax.TwigElseBlock)
}

func parseTwigEndifBlock(p *parser.Parser) {
	m := p.Start()
	p.Bump() // {%
	p.BumpAs(syntax.EndifKeyword)
	p.Expect(syntax.PercentCurly, "twig endif", syntax.Set{})
	p.Complete(m, syntax.TwigEndifBlock)
}

// --- for -------------------------------------------------------------------

func parseTwigFor(p *parser.Parser, child ChildParser) {
	m := p.Start()
	sb := p.Start()
	p.Bump() // {%
	p.BumpAs(syntax.ForKeyword)
	parseTwigLoopVariables(p)
	if p.AtKeyword("in") {
		p.BumpAs(syntax.InKeyword)
	} else {
		p.ExpectLabel("in", "twig for")
	}
	parseTwigExpression(p)
	p.Expect(syntax.PercentCurly, "twig for", syntax.Set{})
	p.Complete(sb, syntax.TwigStartingBlock)

	body := p.Start()
	parser.ParseMany(p, func(p *parser.Parser) bool { return atTwigTerminationTag(p, "endfor") }, child)
	p.Complete(body, syntax.Body)

	if atTwigKeyword(p, "endfor") {
		parseTwigEndingBlock(p, syntax.EndforKeyword)
	} else {
		p.ExpectLabel("{% endfor %}", "twig for")
	}
	p.Complete(m, syntax.TwigFor)
}

func parseTwigLoopVariables(p *parser.Parser) {
	if p.At(syntax.Word) {
		p.Bump()
	} else {
		p.ExpectLabel("loop variable", "twig for")
	}
	if p.At(syntax.Comma) {
		p.Bump()
		if p.At(syntax.Word) {
			p.Bump()
		} else {
			p.ExpectLabel("loop variable", "twig for")
		}
	}
}

// --- block -------------------------------------------------------------------

func parseTwigBlock(p *parser.Parser, child ChildParser) {
	m := p.Start()
	sb := p.Start()
	p.Bump() // {%
	p.BumpAs(syntax.BlockKeyword)
	if p.At(syntax.Word) {
		p.Bump()
	} else {
		p.ExpectLabel("block name", "twig block")
	}
	p.Expect(syntax.PercentCurly, "twig block", syntax.Set{})
	p.Complete(sb, syntax.TwigStartingBlock)

	body := p.Start()
	parser.ParseMany(p, func(p *parser.Parser) bool { return atTwigTerminationTag(p, "endblock") }, child)
	p.Complete(body, syntax.Body)

	if atTwigKeyword(p, "endblock") {
		parseTwigEndingBlock(p, syntax.EndblockKeyword)
	} else {
		p.ExpectLabel("{% endblock %}", "twig block")
	}
	p.Complete(m, syntax.TwigBlock)
}

// --- apply -------------------------------------------------------------------

func parseTwigApply(p *parser.Parser, child ChildParser) {
	m := p.Start()
	parseTwigStartingBlockWithExpr(p, syntax.ApplyKeyword)
	body := p.Start()
	parser.ParseMany(p, func(p *parser.Parser) bool { return atTwigTerminationTag(p, "endapply") }, child)
	p.Complete(body, syntax.Body)
	if atTwigKeyword(p, "endapply") {
		parseTwigEndingBlock(p, syntax.EndapplyKeyword)
	} else {
		p.ExpectLabel("{% endapply %}", "twig apply")
	}
	p.Complete(m, syntax.TwigApply)
}

// --- set ---------------------------------------------------------------------

// atTwigSetBlockForm distinguishes `{% set x %}...{% endset %}` from
// `{% set x = expr %}`: the block form's starting tag closes immediately
// after the variable name.
func atTwigSetBlockForm(p *parser.Parser) bool {
	return p.AtFollowing(syntax.CurlyPercent, syntax.Word, syntax.Word, syntax.PercentCurly)
}

func parseTwigSet(p *parser.Parser, child ChildParser) {
	m := p.Start()
	if atTwigSetBlockForm(p) {
		sb := p.Start()
		p.Bump() // {%
		p.BumpAs(syntax.SetKeyword)
		if p.At(syntax.Word) {
			p.Bump()
		} else {
			p.ExpectLabel("variable name", "twig set")
		}
		p.Expect(syntax.PercentCurly, "twig set", syntax.Set{})
		p.Complete(sb, syntax.TwigStartingBlock)

		body := p.Start()
		parser.ParseMany(p, func(p *parser.Parser) bool { return atTwigTerminationTag(p, "endset") }, child)
		p.Complete(body, syntax.Body)

		if atTwigKeyword(p, "endset") {
			parseTwigEndingBlock(p, syntax.EndsetKeyword)
		} else {
			p.ExpectLabel("{% endset %}", "twig set")
		}
	} else {
		sb := p.Start()
		p.Bump() // {%
		p.BumpAs(syntax.SetKeyword)
		if p.At(syntax.Word) {
			p.Bump()
		} else {
			p.ExpectLabel("variable name", "twig set")
		}
		if p.At(syntax.Equal) {
			p.Bump()
		} else {
			p.ExpectLabel("=", "twig set")
		}
		parseTwigExpression(p)
		p.Expect(syntax.PercentCurly, "twig set", syntax.Set{})
		p.Complete(sb, syntax.TwigStartingBlock)
	}
	p.Complete(m, syntax.TwigSet)
}

// --- use / extends / include --------------------------------------------------

func parseTwigUse(p *parser.Parser) {
	m := p.Start()
	p.Bump() // {%
	p.BumpAs(syntax.UseKeyword)
	parseTwigExpression(p)
	if p.AtKeyword("with") {
		p.BumpAs(syntax.WithKeyword)
		parseTwigUseOverride(p)
		for p.At(syntax.Comma) {
			p.Bump()
			parseTwigUseOverride(p)
		}
	}
	p.Expect(syntax.PercentCurly, "twig use", syntax.Set{})
	p.Complete(m, syntax.TwigUse)
}

func parseTwigUseOverride(p *parser.Parser) {
	if p.At(syntax.Word) {
		p.Bump()
	} else {
		p.ExpectLabel("block name", "twig use")
	}
	if p.AtKeyword("as") {
		p.BumpAs(syntax.AsKeyword)
		if p.At(syntax.Word) {
			p.Bump()
		} else {
			p.ExpectLabel("block name", "twig use")
		}
	}
}

func parseTwigExtends(p *parser.Parser) {
	m := p.Start()
	p.Bump() // {%
	p.BumpAs(syntax.ExtendsKeyword)
	parseTwigExpression(p)
	p.Expect(syntax.PercentCurly, "twig extends", syntax.Set{})
	p.Complete(m, syntax.TwigExtends)
}

func parseTwigInclude(p *parser.Parser) {
	m := p.Start()
	p.Bump() // {%
	p.BumpAs(syntax.IncludeKeyword)
	parseTwigExpression(p)
	if p.AtKeyword("with") {
		p.BumpAs(syntax.WithKeyword)
		parseTwigExpression(p)
	}
	if p.AtFollowingContent(
		parser.KindText{Kind: syntax.Word, Text: "ignore"},
		parser.KindText{Kind: syntax.Word, Text: "missing"},
	) {
		p.Bump()
		p.Bump()
	}
	if p.AtKeyword("only") {
		p.Bump()
	}
	p.Expect(syntax.PercentCurly, "twig include", syntax.Set{})
	p.Complete(m, syntax.TwigInclude)
}

// parseTwigGenericStatement is the fallback for Twig tags this grammar
// doesn't give dedicated shape to (do, import, from, macro, autoescape,
// verbatim, spaceless, flush, deprecated, ...). It still produces a
// losslessly reconstructible TWIG_BLOCK, just without a typed body or
// tag-specific structure.
func parseTwigGenericStatement(p *parser.Parser) {
	m := p.Start()
	sb := p.Start()
	p.Bump() // {%
	if p.At(syntax.Word) {
		p.Bump()
	} else {
		p.ExpectLabel("twig tag name", "twig statement")
	}
	parser.ParseMany(p, parser.UntilSet(syntax.NewSet(syntax.PercentCurly)), func(p *parser.Parser) { p.Bump() })
	p.Expect(syntax.PercentCurly, "twig statement", syntax.Set{})
	p.Complete(sb, syntax.TwigStartingBlock)
	p.Complete(m, syntax.TwigBlock)
}
