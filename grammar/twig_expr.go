package grammar

import (
	"github.com/twigcst/twigcst/parser"
	"github.com/twigcst/twigcst/syntax"
)

// binOp is one entry of the fixed Twig binary-operator precedence table.
type binOp struct {
	prec       int
	rightAssoc bool
}

// parseTwigExpression is the entry point for every Twig expression
// production: literals, operators, postfix chains, ternaries. It wraps
// whatever it parses in one TWIG_EXPRESSION node, which is what every
// statement-level production (TwigVar, a starting block's condition, an
// argument, ...) holds onto rather than the bare operator/literal node
// directly. Nested recursive-descent calls within the Pratt loop itself
// use parseTwigExpressionBp, not this function, so operator chains don't
// get one TWIG_EXPRESSION wrapper per operand.
func parseTwigExpression(p *parser.Parser) parser.CompletedMarker {
	m := p.Start()
	parseTwigExpressionBp(p, 0)
	return p.Complete(m, syntax.TwigExpression)
}

func parseTwigExpressionBp(p *parser.Parser, minBp int) parser.CompletedMarker {
	lhs := parseTwigUnary(p)
	for {
		op, bp, ok := peekBinaryOperator(p)
		if !ok || bp.prec < minBp {
			break
		}
		m := p.Precede(lhs)
		nextMin := bp.prec + 1
		if bp.rightAssoc {
			nextMin = bp.prec
		}
		consumeBinaryOperator(p, op, nextMin)
		lhs = p.Complete(m, syntax.TwigBinaryExpression)
	}
	if minBp <= 50 {
		lhs = maybeParseTernary(p, lhs)
	}
	return lhs
}

// peekBinaryOperator reports the binary operator starting at the current
// position, if any, and its precedence/associativity. It never consumes
// anything: consumeBinaryOperator does that once the caller has confirmed
// the operator's precedence clears minBp.
func peekBinaryOperator(p *parser.Parser) (string, binOp, bool) {
	switch {
	case p.At(syntax.DoubleStar):
		return "**", binOp{250, true}, true
	case p.At(syntax.Star), p.At(syntax.ForwardSlash), p.At(syntax.DoubleForwardSlash), p.At(syntax.Percent):
		return "arith-mul", binOp{200, false}, true
	case p.At(syntax.Plus), p.At(syntax.Minus), p.At(syntax.Tilde):
		return "arith-add", binOp{150, false}, true
	case p.At(syntax.DotDot):
		return "..", binOp{120, false}, true
	case p.At(syntax.DoubleEqual), p.At(syntax.BangEqual), p.At(syntax.LessThan),
		p.At(syntax.GreaterThan), p.At(syntax.LessThanEqual), p.At(syntax.GreaterThanEqual):
		return "compare", binOp{100, false}, true
	case p.AtFollowingContent(parser.KindText{Kind: syntax.Word, Text: "not"}, parser.KindText{Kind: syntax.Word, Text: "in"}):
		return "not in", binOp{100, false}, true
	case p.AtKeyword("in"):
		return "in", binOp{100, false}, true
	case p.AtFollowingContent(parser.KindText{Kind: syntax.Word, Text: "is"}, parser.KindText{Kind: syntax.Word, Text: "not"}):
		return "is not", binOp{100, false}, true
	case p.AtKeyword("is"):
		return "is", binOp{100, false}, true
	case p.AtKeyword("matches"):
		return "matches", binOp{100, false}, true
	case p.AtFollowingContent(parser.KindText{Kind: syntax.Word, Text: "starts"}, parser.KindText{Kind: syntax.Word, Text: "with"}):
		return "starts with", binOp{100, false}, true
	case p.AtFollowingContent(parser.KindText{Kind: syntax.Word, Text: "ends"}, parser.KindText{Kind: syntax.Word, Text: "with"}):
		return "ends with", binOp{100, false}, true
	case p.AtKeyword("and"):
		return "and", binOp{80, false}, true
	case p.AtKeyword("or"):
		return "or", binOp{70, false}, true
	case p.At(syntax.QuestionQuestion):
		return "??", binOp{50, true}, true
	default:
		return "", binOp{}, false
	}
}

// consumeBinaryOperator bumps the operator itself (relabelling keyword
// Words into their specific Kind) and then parses its right-hand side.
// `is`/`is not` are the one case whose right-hand side isn't a full
// expression but a named test, so they're handled separately from the
// general recursive-descent call.
func consumeBinaryOperator(p *parser.Parser, op string, nextMin int) {
	switch op {
	case "in":
		p.BumpAs(syntax.InKeyword)
		parseTwigExpressionBp(p, nextMin)
	case "not in":
		p.BumpAs(syntax.NotKeyword)
		p.BumpAs(syntax.InKeyword)
		parseTwigExpressionBp(p, nextMin)
	case "is":
		p.BumpAs(syntax.IsKeyword)
		parseTwigTest(p)
	case "is not":
		p.BumpAs(syntax.IsKeyword)
		p.BumpAs(syntax.NotKeyword)
		parseTwigTest(p)
	case "matches":
		p.BumpAs(syntax.MatchesKeyword)
		parseTwigExpressionBp(p, nextMin)
	case "starts with":
		p.BumpAs(syntax.StartsKeyword)
		p.BumpAs(syntax.WithKeyword)
		parseTwigExpressionBp(p, nextMin)
	case "ends with":
		p.BumpAs(syntax.EndsKeyword)
		p.BumpAs(syntax.WithKeyword)
		parseTwigExpressionBp(p, nextMin)
	case "and":
		p.BumpAs(syntax.AndKeyword)
		parseTwigExpressionBp(p, nextMin)
	case "or":
		p.BumpAs(syntax.OrKeyword)
		parseTwigExpressionBp(p, nextMin)
	default:
		p.Bump()
		parseTwigExpressionBp(p, nextMin)
	}
}

// parseTwigTest parses the right-hand side of `is`/`is not`: a test name
// with optional call arguments, e.g. `is same as(x)`, `is divisible by(3)`.
// `defined` and the two-word names `same as` and `divisible by` are
// re-tagged to their keyword kinds; any other single word is kept as is.
func parseTwigTest(p *parser.Parser) {
	switch {
	case p.AtKeyword("defined"):
		p.BumpAs(syntax.DefinedKeyword)
	case p.AtFollowingContent(parser.KindText{Kind: syntax.Word, Text: "same"}, parser.KindText{Kind: syntax.Word, Text: "as"}):
		p.BumpAs(syntax.SameKeyword)
		p.BumpAs(syntax.AsKeyword)
	case p.AtFollowingContent(parser.KindText{Kind: syntax.Word, Text: "divisible"}, parser.KindText{Kind: syntax.Word, Text: "by"}):
		p.BumpAs(syntax.DivisibleKeyword)
		p.BumpAs(syntax.ByKeyword)
	case p.At(syntax.Word):
		p.Bump()
	default:
		p.ExpectLabel("twig test", "twig is expression")
		return
	}
	if p.At(syntax.ParenOpen) {
		parseTwigArguments(p)
	}
}

// maybeParseTernary handles `cond ? then : else`, its short form
// `cond ? : else` / `cond ?: else` (the lexer emits `?:` as one token when
// unspaced), both right-associative at the table's lowest precedence.
func maybeParseTernary(p *parser.Parser, lhs parser.CompletedMarker) parser.CompletedMarker {
	switch {
	case p.At(syntax.QuestionMark):
		m := p.Precede(lhs)
		p.Bump()
		if !p.At(syntax.Colon) {
			parseTwigExpressionBp(p, 51)
		}
		if p.At(syntax.Colon) {
			p.Bump()
			parseTwigExpressionBp(p, 50)
		} else {
			p.ExpectLabel("twig expression", "twig ternary expression")
		}
		return p.Complete(m, syntax.TwigTernaryExpression)
	case p.At(syntax.QuestionColon):
		m := p.Precede(lhs)
		p.Bump()
		parseTwigExpressionBp(p, 50)
		return p.Complete(m, syntax.TwigTernaryExpression)
	default:
		return lhs
	}
}

// --- unary, postfix chains, primaries ----------------------------------------

func parseTwigUnary(p *parser.Parser) parser.CompletedMarker {
	switch {
	case p.AtKeyword("not"):
		m := p.Start()
		p.BumpAs(syntax.NotKeyword)
		parseTwigExpressionBp(p, 300)
		return p.Complete(m, syntax.TwigUnaryExpression)
	case p.At(syntax.Minus), p.At(syntax.Plus):
		m := p.Start()
		p.Bump()
		parseTwigExpressionBp(p, 300)
		return p.Complete(m, syntax.TwigUnaryExpression)
	default:
		return parseTwigPostfix(p)
	}
}

// parseTwigPostfix parses a primary expression followed by any chain of
// `.member`, `[index]`, `(args)`, and `|filter` suffixes, each wrapping
// the already-completed left-hand side via Precede so the chain nests
// left-to-right without backtracking.
func parseTwigPostfix(p *parser.Parser) parser.CompletedMarker {
	lhs := parseTwigPrimary(p)
	for {
		switch {
		case p.At(syntax.Dot):
			operand := p.Precede(lhs)
			lhsOperand := p.Complete(operand, syntax.TwigOperand)
			m := p.Precede(lhsOperand)
			p.Bump()
			name := p.Start()
			if p.At(syntax.Word) {
				p.Bump()
			} else {
				p.ExpectLabel("member name", "twig accessor")
			}
			p.Complete(name, syntax.TwigOperand)
			if p.At(syntax.ParenOpen) {
				parseTwigArguments(p)
			}
			lhs = p.Complete(m, syntax.TwigAccessor)
		case p.At(syntax.SquareOpen):
			m := p.Precede(lhs)
			parseTwigIndexLookup(p)
			lhs = p.Complete(m, syntax.TwigIndexLookup)
		case p.At(syntax.Pipe):
			m := p.Precede(lhs)
			p.Bump()
			if p.At(syntax.Word) {
				p.Bump()
			} else {
				p.ExpectLabel("filter name", "twig filter")
			}
			if p.At(syntax.ParenOpen) {
				parseTwigArguments(p)
			}
			lhs = p.Complete(m, syntax.TwigFilter)
		case p.At(syntax.ParenOpen):
			m := p.Precede(lhs)
			parseTwigArguments(p)
			lhs = p.Complete(m, syntax.TwigFunctionCall)
		default:
			return lhs
		}
	}
}

func parseTwigIndexLookup(p *parser.Parser) {
	p.Bump() // [
	idx := p.Start()
	if !p.At(syntax.Colon) {
		parseTwigExpression(p)
	}
	if p.At(syntax.Colon) {
		p.Bump()
		if !p.At(syntax.SquareClose) {
			parseTwigExpression(p)
		}
		p.Complete(idx, syntax.TwigIndexRange)
	} else {
		p.Complete(idx, syntax.TwigIndex)
	}
	p.Expect(syntax.SquareClose, "twig index lookup", syntax.Set{})
}

func parseTwigArguments(p *parser.Parser) {
	m := p.Start()
	p.Bump() // (
	parser.ParseMany(p, parser.UntilSet(syntax.NewSet(syntax.ParenClose)), func(p *parser.Parser) {
		parseTwigArgument(p)
		if p.At(syntax.Comma) {
			p.Bump()
		}
	})
	p.Expect(syntax.ParenClose, "twig arguments", syntax.Set{})
	p.Complete(m, syntax.TwigArguments)
}

func parseTwigArgument(p *parser.Parser) {
	if p.At(syntax.Word) && p.AtNthToken(syntax.Equal, 1) {
		m := p.Start()
		p.Bump()
		p.Bump()
		parseTwigExpression(p)
		p.Complete(m, syntax.TwigNamedArgument)
		return
	}
	parseTwigExpression(p)
}

func parseTwigPrimary(p *parser.Parser) parser.CompletedMarker {
	switch {
	case p.At(syntax.Number):
		m := p.Start()
		p.Bump()
		return p.Complete(m, syntax.TwigLiteralNumber)
	case p.At(syntax.DoubleQuote), p.At(syntax.SingleQuote):
		return parseTwigString(p)
	case p.AtKeyword("true"):
		m := p.Start()
		p.BumpAs(syntax.TrueKeyword)
		return p.Complete(m, syntax.TwigLiteralBoolean)
	case p.AtKeyword("false"):
		m := p.Start()
		p.BumpAs(syntax.FalseKeyword)
		return p.Complete(m, syntax.TwigLiteralBoolean)
	case p.AtKeyword("null"), p.AtKeyword("none"):
		m := p.Start()
		p.BumpAs(syntax.NullKeyword)
		return p.Complete(m, syntax.TwigLiteralNull)
	case p.At(syntax.SquareOpen):
		return parseTwigArray(p)
	case p.At(syntax.CurlyOpen):
		return parseTwigHash(p)
	case p.At(syntax.ParenOpen):
		m := p.Start()
		p.Bump()
		parseTwigExpression(p)
		p.Expect(syntax.ParenClose, "twig parenthesized expression", syntax.Set{})
		return p.Complete(m, syntax.TwigOperand)
	case p.At(syntax.Word):
		m := p.Start()
		p.Bump()
		return p.Complete(m, syntax.TwigLiteralName)
	default:
		m := p.Start()
		p.ExpectLabel("twig expression", "twig expression")
		p.Recover(syntax.Set{})
		return p.Complete(m, syntax.ErrorNode)
	}
}

func parseTwigArray(p *parser.Parser) parser.CompletedMarker {
	m := p.Start()
	p.Bump() // [
	parser.ParseMany(p, parser.UntilSet(syntax.NewSet(syntax.SquareClose)), func(p *parser.Parser) {
		parseTwigExpression(p)
		if p.At(syntax.Comma) {
			p.Bump()
		}
	})
	p.Expect(syntax.SquareClose, "twig array", syntax.Set{})
	return p.Complete(m, syntax.TwigLiteralArray)
}

func parseTwigHash(p *parser.Parser) parser.CompletedMarker {
	m := p.Start()
	p.Bump() // {
	parser.ParseMany(p, parser.UntilSet(syntax.NewSet(syntax.CurlyClose)), func(p *parser.Parser) {
		parseTwigHashPair(p)
		if p.At(syntax.Comma) {
			p.Bump()
		}
	})
	p.Expect(syntax.CurlyClose, "twig hash", syntax.Set{})
	return p.Complete(m, syntax.TwigLiteralHash)
}

// parseTwigHashPair parses `key: value` or the shorthand `key` (meaning
// `key: key`, left as a key with no value; nothing in the tree fills in
// the implied value). Interpolation is disabled inside a quoted hash key, per
// Twig's own string-literal rules for keys.
func parseTwigHashPair(p *parser.Parser) {
	m := p.Start()
	key := p.Start()
	switch {
	case p.At(syntax.Word), p.At(syntax.Number):
		p.Bump()
	case p.At(syntax.DoubleQuote), p.At(syntax.SingleQuote):
		parseTwigQuotedLiteral(p, false)
	case p.At(syntax.ParenOpen):
		p.Bump()
		parseTwigExpression(p)
		p.Expect(syntax.ParenClose, "twig hash key", syntax.Set{})
	default:
		p.ExpectLabel("hash key", "twig hash")
	}
	p.Complete(key, syntax.TwigLiteralHashKey)
	if p.At(syntax.Colon) {
		p.Bump()
		parseTwigExpression(p)
	}
	p.Complete(m, syntax.TwigLiteralHashPair)
}

func parseTwigString(p *parser.Parser) parser.CompletedMarker {
	return parseTwigQuotedLiteral(p, true)
}

// parseTwigQuotedLiteral scans a quoted string body, honouring backslash
// escapes so an escaped quote character never terminates the string early,
// and recognising `#{ expr }` interpolation only when allowInterpolation
// is set: Twig disables interpolation inside single-quoted strings and
// inside hash keys regardless of quote style.
func parseTwigQuotedLiteral(p *parser.Parser, allowInterpolation bool) parser.CompletedMarker {
	m := p.Start()
	quote := p.Current()
	p.Bump()
	inner := p.Start()
	interpolate := allowInterpolation && quote == syntax.DoubleQuote
	for !p.At(quote) && !p.AtEOF() {
		switch {
		case p.At(syntax.Backslash):
			p.Bump()
			if !p.AtEOF() {
				p.Bump()
			}
		case interpolate && p.At(syntax.HashCurlyOpen):
			parseTwigStringInterpolation(p)
		default:
			p.Bump()
		}
	}
	p.ExplicitlyConsumeTrivia()
	p.Complete(inner, syntax.TwigLiteralStringInner)
	p.Expect(quote, "twig string", syntax.Set{})
	return p.Complete(m, syntax.TwigLiteralString)
}

func parseTwigStringInterpolation(p *parser.Parser) {
	m := p.Start()
	p.Bump() // #{
	parseTwigExpression(p)
	p.Expect(syntax.CurlyClose, "twig string interpolation", syntax.Set{})
	p.Complete(m, syntax.TwigLiteralStringInterpolation)
}
