// Package lexer converts template source text into a flat, span-carrying
// token stream. The lexer is context-free: it knows nothing of HTML or
// Twig grammar, only the token alphabet both grammars are built from. The
// HTML/Twig split is entirely the parser's job.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/twigcst/twigcst/syntax"
)

// stateFn represents the lexer's next action, in the style of the
// teacher's text/template-derived scanner (parse/lexer.go): the lexer is
// a small state machine threaded through explicit functions rather than
// a monolithic switch. Unlike the teacher, this lexer runs to completion
// synchronously into a slice — lex(source) -> []Token per spec, not a
// goroutine feeding a channel, since nothing here needs to interleave
// lexing with parsing lazily.
type stateFn func(*lexer) stateFn

const eof = -1

type lexer struct {
	input  string
	pos    int // current byte offset
	start  int // start byte offset of the token being built
	width  int // width in bytes of the last rune returned by next
	tokens []syntax.Token
}

// Lex scans source into a token stream covering every byte exactly once,
// in increasing span order. Bytes the scanner can't classify become
// single-byte Error tokens, so lexing never fails and always makes
// progress.
func Lex(source string) []syntax.Token {
	l := &lexer{input: source, tokens: make([]syntax.Token, 0, len(source)/4+1)}
	for state := lexAny; state != nil; {
		state = state(l)
	}
	return l.tokens
}

// next returns the next rune in the input and advances past it.
func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += w
	return r
}

// backup steps back over the last rune returned by next. Only valid once
// per call to next.
func (l *lexer) backup() {
	l.pos -= l.width
}

// peek returns but does not consume the next rune.
func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// peekAt looks ahead n bytes without consuming, returning 0 past the
// end of input. It operates on bytes, not runes: every multi-byte
// punctuation token this lexer recognises is pure ASCII.
func (l *lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

// emit appends a token of the given kind covering everything consumed
// since the last emit, and advances the token start.
func (l *lexer) emit(kind syntax.Kind) {
	l.tokens = append(l.tokens, syntax.Token{
		Kind: kind,
		Span: syntax.TextRange{Start: uint32(l.start), End: uint32(l.pos)},
		Text: l.input[l.start:l.pos],
	})
	l.start = l.pos
}

// emitFixed consumes exactly n bytes of known punctuation and emits kind.
func (l *lexer) emitFixed(kind syntax.Kind, n int) {
	l.pos += n
	l.emit(kind)
}

func isAsciiLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isWordStart matches the permissive leading-character class for the
// identifier-ish WORD token: ASCII letters, the framework sigils
// `_ @ $`, and any byte outside the ASCII range (Twig identifiers permit
// \x7f-\xff). `#` is not accepted here; lexAny handles it, telling a
// `#slot` word apart from `#}`/`#{`.
func isWordStart(r rune) bool {
	return isAsciiLetter(r) || r == '_' || r == '@' || r == '$' || r > 0x7e
}

// isWordContinue additionally allows digits and hyphens, so HTML tag and
// attribute names (`my-component`, `data-id-2`) lex as one WORD token.
func isWordContinue(r rune) bool {
	return isWordStart(r) || isDigit(r) || r == '-'
}

func isSpaceButNotNewline(r rune) bool {
	return r == ' ' || r == '\t' || r == '\f' || r == '\v'
}

// lexAny is the lexer's single dispatch state: every token is decided by
// at most a few bytes of lookahead, longest match first.
func lexAny(l *lexer) stateFn {
	if l.pos >= len(l.input) {
		return nil
	}
	l.start = l.pos
	r := l.next()

	switch {
	case r == '\r':
		if l.peek() == '\n' {
			l.next()
		}
		l.emit(syntax.LineBreak)
		return lexAny
	case r == '\n':
		l.emit(syntax.LineBreak)
		return lexAny
	case isSpaceButNotNewline(r):
		for isSpaceButNotNewline(l.peek()) {
			l.next()
		}
		l.emit(syntax.Whitespace)
		return lexAny
	case isDigit(r):
		l.backup()
		lexNumber(l)
		return lexAny
	case r == '<':
		lexLessThan(l)
		return lexAny
	case r == '-':
		if l.peek() == '-' && l.peekAt(1) == '>' {
			l.backup()
			l.emitFixed(syntax.DashDashGreaterThan, 3)
			return lexAny
		}
		l.emit(syntax.Minus)
		return lexAny
	case r == '/':
		switch l.peek() {
		case '>':
			l.next()
			l.emit(syntax.SlashGreaterThan)
		case '/':
			l.next()
			l.emit(syntax.DoubleForwardSlash)
		default:
			l.emit(syntax.ForwardSlash)
		}
		return lexAny
	case r == '>':
		if l.peek() == '=' {
			l.next()
			l.emit(syntax.GreaterThanEqual)
		} else {
			l.emit(syntax.GreaterThan)
		}
		return lexAny
	case r == '=':
		if l.peek() == '=' {
			l.next()
			l.emit(syntax.DoubleEqual)
		} else {
			l.emit(syntax.Equal)
		}
		return lexAny
	case r == '"':
		l.emit(syntax.DoubleQuote)
		return lexAny
	case r == '\'':
		l.emit(syntax.SingleQuote)
		return lexAny
	case r == '{':
		switch l.peek() {
		case '%':
			l.next()
			l.emit(syntax.CurlyPercent)
		case '{':
			l.next()
			l.emit(syntax.CurlyCurly)
		case '#':
			l.next()
			l.emit(syntax.CurlyHash)
		default:
			l.emit(syntax.CurlyOpen)
		}
		return lexAny
	case r == '%':
		if l.peek() == '}' {
			l.next()
			l.emit(syntax.PercentCurly)
		} else {
			l.emit(syntax.Percent)
		}
		return lexAny
	case r == '}':
		switch l.peek() {
		case '}':
			l.next()
			l.emit(syntax.CurlyCurlyClose)
		default:
			l.emit(syntax.CurlyClose)
		}
		return lexAny
	case r == '#':
		switch l.peek() {
		case '}':
			l.next()
			l.emit(syntax.HashCurly)
		case '{':
			l.next()
			l.emit(syntax.HashCurlyOpen)
		default:
			l.backup()
			lexWord(l)
		}
		return lexAny
	case r == '[':
		l.emit(syntax.SquareOpen)
		return lexAny
	case r == ']':
		l.emit(syntax.SquareClose)
		return lexAny
	case r == '(':
		l.emit(syntax.ParenOpen)
		return lexAny
	case r == ')':
		l.emit(syntax.ParenClose)
		return lexAny
	case r == '.':
		if l.peek() == '.' {
			l.next()
			l.emit(syntax.DotDot)
		} else {
			l.emit(syntax.Dot)
		}
		return lexAny
	case r == ',':
		l.emit(syntax.Comma)
		return lexAny
	case r == ':':
		l.emit(syntax.Colon)
		return lexAny
	case r == ';':
		l.emit(syntax.Semicolon)
		return lexAny
	case r == '|':
		l.emit(syntax.Pipe)
		return lexAny
	case r == '~':
		l.emit(syntax.Tilde)
		return lexAny
	case r == '+':
		l.emit(syntax.Plus)
		return lexAny
	case r == '*':
		if l.peek() == '*' {
			l.next()
			l.emit(syntax.DoubleStar)
		} else {
			l.emit(syntax.Star)
		}
		return lexAny
	case r == '?':
		switch l.peek() {
		case ':':
			l.next()
			l.emit(syntax.QuestionColon)
		case '?':
			l.next()
			l.emit(syntax.QuestionQuestion)
		default:
			l.emit(syntax.QuestionMark)
		}
		return lexAny
	case r == '!':
		if l.peek() == '=' {
			l.next()
			l.emit(syntax.BangEqual)
		} else {
			l.backup()
			lexErrorByte(l)
		}
		return lexAny
	case r == '\\':
		l.emit(syntax.Backslash)
		return lexAny
	case isWordStart(r):
		l.backup()
		lexWord(l)
		return lexAny
	default:
		l.backup()
		lexErrorByte(l)
		return lexAny
	}
}

// lexLessThan disambiguates the five `<`-prefixed tokens: `<!--`, `<!`,
// `</`, `<=`, `<`, in longest-match order.
func lexLessThan(l *lexer) {
	if strings.HasPrefix(l.input[l.pos:], "!--") {
		l.pos += 3
		l.emit(syntax.LessThanBangDashDash)
		return
	}
	if l.peek() == '!' {
		l.next()
		l.emit(syntax.LessThanBang)
		return
	}
	if l.peek() == '=' {
		l.next()
		l.emit(syntax.LessThanEqual)
		return
	}
	if l.peek() == '/' {
		l.next()
		l.emit(syntax.LessThanSlash)
		return
	}
	l.emit(syntax.LessThan)
}

// lexNumber matches [0-9]+(\.[0-9]+)? per spec.md §4.1.
func lexNumber(l *lexer) {
	for isDigit(l.peek()) {
		l.next()
	}
	if l.peek() == '.' {
		save := l.pos
		l.next()
		if isDigit(l.peek()) {
			for isDigit(l.peek()) {
				l.next()
			}
		} else {
			l.pos = save
		}
	}
	l.emit(syntax.Number)
}

// lexWord matches one identifier-ish run; see isWordStart/isWordContinue.
func lexWord(l *lexer) {
	l.next() // leading char already validated by the caller
	for {
		r := l.peek()
		if !isWordContinue(r) {
			break
		}
		l.next()
	}
	l.emit(syntax.Word)
}

// lexErrorByte consumes exactly one byte as an Error token: the sole
// mechanism by which an unrecognised byte still guarantees progress.
func lexErrorByte(l *lexer) {
	if l.pos < len(l.input) {
		l.pos++
	}
	l.emit(syntax.Error)
}
