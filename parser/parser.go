// Package parser provides the token cursor, marker/event machinery, and
// recovery primitives shared by the HTML and Twig grammars. It knows
// nothing about either grammar's productions; grammar packages are built
// entirely on top of the primitives exported here.
package parser

import (
	"github.com/twigcst/twigcst/syntax"
)

// GeneralRecoverySet is the fixed set of "hard anchors" that reliably
// begin a new production in either grammar. Every expect/recover call
// unions its own, scope-specific recovery set with this one: a Twig
// `{%`/`{{`/`{#` or an HTML `<`/`</`/`<!`/`<!--` is always a safe place
// to stop skipping malformed input, regardless of what production is
// currently open.
var GeneralRecoverySet = syntax.NewSet(
	syntax.CurlyPercent, syntax.CurlyCurly, syntax.CurlyHash,
	syntax.LessThan, syntax.LessThanSlash, syntax.LessThanBang, syntax.LessThanBangDashDash,
)

// Marker is a handle to a not-yet-completed node in the event log.
// Exactly one of Complete or Abandon must be called on it.
type Marker struct {
	idx syntax.EventIndex
}

// CompletedMarker is a handle to a finished node. It can be retroactively
// wrapped with Parser.Precede.
type CompletedMarker struct {
	idx  syntax.EventIndex
	Kind syntax.Kind
}

// Parser holds the token cursor and the append-only event log for one
// parse session. It is the sole mutable state of a parse; the tree and
// diagnostics it eventually produces are derived once, by syntax.Build,
// from the event log it accumulates.
type Parser struct {
	tokens []syntax.Token
	pos    int // raw index into tokens of the next unconsumed token (trivia or not)
	events []syntax.Event
}

// New creates a parser session over a pre-lexed token stream.
func New(tokens []syntax.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Events returns the accumulated event log. Called once, by the
// top-level Parse entry point, after the grammar has finished driving
// the parser to completion.
func (p *Parser) Events() []syntax.Event {
	return p.events
}

// --- token cursor -----------------------------------------------------

// rawIndexOfNth returns the raw token index of the nth (0-based)
// non-trivia token at or after p.pos, or len(p.tokens) if there are
// fewer than n+1 remaining.
func (p *Parser) rawIndexOfNth(n int) int {
	i := p.pos
	for {
		for i < len(p.tokens) && p.tokens[i].Kind.IsTrivia() {
			i++
		}
		if i >= len(p.tokens) {
			return i
		}
		if n == 0 {
			return i
		}
		n--
		i++
	}
}

// Current returns the kind of the next non-trivia token, or syntax.EOF
// past the end of input.
func (p *Parser) Current() syntax.Kind {
	i := p.rawIndexOfNth(0)
	if i >= len(p.tokens) {
		return syntax.EOF
	}
	return p.tokens[i].Kind
}

// CurrentText returns the exact source text of the next non-trivia
// token, or "" at EOF.
func (p *Parser) CurrentText() string {
	i := p.rawIndexOfNth(0)
	if i >= len(p.tokens) {
		return ""
	}
	return p.tokens[i].Text
}

// CurrentRange returns the span of the next non-trivia token, or a
// zero-length range at the end of input.
func (p *Parser) CurrentRange() syntax.TextRange {
	i := p.rawIndexOfNth(0)
	if i >= len(p.tokens) {
		end := uint32(0)
		if n := len(p.tokens); n > 0 {
			end = p.tokens[n-1].Span.End
		}
		return syntax.TextRange{Start: end, End: end}
	}
	return p.tokens[i].Span
}

// PeekNthToken returns the nth (0-based) non-trivia token ahead, without
// consuming anything.
func (p *Parser) PeekNthToken(n int) (syntax.Token, bool) {
	i := p.rawIndexOfNth(n)
	if i >= len(p.tokens) {
		return syntax.Token{}, false
	}
	return p.tokens[i], true
}

// AtNthToken reports whether the nth non-trivia token ahead has the
// given kind.
func (p *Parser) AtNthToken(kind syntax.Kind, n int) bool {
	tok, ok := p.PeekNthToken(n)
	return ok && tok.Kind == kind
}

// At reports whether the current token has the given kind.
func (p *Parser) At(kind syntax.Kind) bool { return p.Current() == kind }

// AtSet reports whether the current token's kind is a member of set.
func (p *Parser) AtSet(set syntax.Set) bool { return set.Contains(p.Current()) }

// AtEOF reports whether there are no more non-trivia tokens.
func (p *Parser) AtEOF() bool { return p.Current() == syntax.EOF }

// AtTrivia reports whether the very next raw token, before any non-trivia
// token, is trivia. The token cursor otherwise skips over trivia
// transparently; this lets a caller see it directly. None of the
// grammar productions call it.
func (p *Parser) AtTrivia() bool {
	return p.pos < len(p.tokens) && p.tokens[p.pos].Kind.IsTrivia()
}

// AtKeyword reports whether the current token is a Word whose text
// matches exactly. Twig keywords are never pre-tagged by the lexer (see
// lexer package doc): recognising one is always a parser-level text
// comparison so the same identifier-shaped token can be "if" the keyword
// in `{% if %}` and a perfectly ordinary HTML attribute named "if".
func (p *Parser) AtKeyword(text string) bool {
	return p.Current() == syntax.Word && p.CurrentText() == text
}

// AtFollowing reports whether the sequence of kinds starting at the
// current token matches exactly, skipping trivia between each.
func (p *Parser) AtFollowing(kinds ...syntax.Kind) bool {
	for i, k := range kinds {
		if !p.AtNthToken(k, i) {
			return false
		}
	}
	return true
}

// KindText pairs a kind with an optional exact-text requirement, used by
// AtFollowingContent for multi-word keyword sequences ("same as",
// "divisible by", "not in", "is not", "starts with", "ends with").
type KindText struct {
	Kind syntax.Kind
	Text string // "" means any text is accepted
}

// AtFollowingContent is AtFollowing plus an optional text-equality check
// per position.
func (p *Parser) AtFollowingContent(items ...KindText) bool {
	for i, it := range items {
		tok, ok := p.PeekNthToken(i)
		if !ok || tok.Kind != it.Kind {
			return false
		}
		if it.Text != "" && tok.Text != it.Text {
			return false
		}
	}
	return true
}

// --- consuming tokens ---------------------------------------------------

// flushTrivia emits every raw trivia token up to (not including) the
// next non-trivia token as plain EvToken events, attaching them to
// whichever node is currently open. This is what gives trivia its
// default "leading trivia of the next real token" attachment: it is
// flushed right before that token is bumped.
func (p *Parser) flushTrivia() {
	for p.pos < len(p.tokens) && p.tokens[p.pos].Kind.IsTrivia() {
		p.emitToken(p.tokens[p.pos])
		p.pos++
	}
}

// ExplicitlyConsumeTrivia forces any pending trivia to be flushed into
// the currently open node right now, instead of floating to whatever
// node is open when the next real token is bumped. Attribute-value
// string bodies and string literals use this to keep trailing whitespace
// inside the string node instead of letting it leak to the node that
// follows the closing quote.
func (p *Parser) ExplicitlyConsumeTrivia() {
	p.flushTrivia()
}

// Bump consumes the current non-trivia token as itself.
func (p *Parser) Bump() {
	p.flushTrivia()
	if p.pos >= len(p.tokens) {
		return
	}
	p.emitToken(p.tokens[p.pos])
	p.pos++
}

// BumpAs consumes the current non-trivia token but relabels its kind,
// e.g. remapping a keyword-shaped Word into its specific keyword Kind,
// or a punctuation token used as an HTML word.
func (p *Parser) BumpAs(kind syntax.Kind) {
	p.flushTrivia()
	if p.pos >= len(p.tokens) {
		return
	}
	tok := p.tokens[p.pos]
	tok.Kind = kind
	p.emitToken(tok)
	p.pos++
}

// BumpNextNAs merges the next n non-trivia tokens into a single token of
// the given kind. Used when a sigil and the following word must become
// one WORD token (":bind" -> one attribute name).
func (p *Parser) BumpNextNAs(n int, kind syntax.Kind) {
	p.flushTrivia()
	if n <= 0 || p.pos >= len(p.tokens) {
		return
	}
	startIdx := p.pos
	endIdx := startIdx
	consumed := 0
	for endIdx < len(p.tokens) && consumed < n {
		if !p.tokens[endIdx].Kind.IsTrivia() {
			consumed++
		}
		endIdx++
	}
	span := syntax.TextRange{Start: p.tokens[startIdx].Span.Start, End: p.tokens[endIdx-1].Span.End}
	text := sliceTokensText(p.tokens[startIdx:endIdx])
	p.emitToken(syntax.Token{Kind: kind, Span: span, Text: text})
	p.pos = endIdx
}

func sliceTokensText(tokens []syntax.Token) string {
	var n int
	for _, t := range tokens {
		n += len(t.Text)
	}
	b := make([]byte, 0, n)
	for _, t := range tokens {
		b = append(b, t.Text...)
	}
	return string(b)
}

func (p *Parser) emitToken(tok syntax.Token) {
	p.events = append(p.events, syntax.Event{Tag: syntax.EvToken, Kind: tok.Kind, Token: tok})
}

// --- markers ------------------------------------------------------------

// Start opens a new node at the current position in the event log.
func (p *Parser) Start() Marker {
	p.events = append(p.events, syntax.Event{Tag: syntax.EvStartNode, ForwardParent: syntax.NoForwardParent})
	return Marker{idx: syntax.EventIndex(len(p.events) - 1)}
}

// Complete assigns kind to the node opened by m and closes it.
func (p *Parser) Complete(m Marker, kind syntax.Kind) CompletedMarker {
	p.events[m.idx].Kind = kind
	p.events = append(p.events, syntax.Event{Tag: syntax.EvFinishNode})
	return CompletedMarker{idx: m.idx, Kind: kind}
}

// Abandon discards a marker without producing a node. If no events were
// logged since it was opened, its Start event is dropped outright;
// otherwise it is tombstoned in place (a Placeholder) so in-between
// EventIndex values stay valid.
func (p *Parser) Abandon(m Marker) {
	if int(m.idx) == len(p.events)-1 {
		p.events = p.events[:m.idx]
		return
	}
	p.events[m.idx].Tag = syntax.EvPlaceholder
}

// Precede inserts a new Start event before cm's Start event by setting
// cm's ForwardParent, so a later production can retroactively become the
// parent of an already-completed node. This is how left-associative
// binary operators and postfix chains (accessor/index/call/filter) are
// built without backtracking: the LHS is parsed and completed first,
// then wrapped only once the operator after it is seen.
func (p *Parser) Precede(cm CompletedMarker) Marker {
	p.events = append(p.events, syntax.Event{Tag: syntax.EvStartNode, ForwardParent: syntax.NoForwardParent})
	newIdx := syntax.EventIndex(len(p.events) - 1)
	p.events[cm.idx].ForwardParent = newIdx
	return Marker{idx: newIdx}
}

// --- diagnostics & recovery ----------------------------------------------

// AddError records a diagnostic at the current position without
// consuming anything.
func (p *Parser) AddError(expected []syntax.Label, context string) {
	found := syntax.Found{IsEOF: p.AtEOF(), Kind: p.Current()}
	p.events = append(p.events, syntax.Event{
		Tag: syntax.EvError,
		Diagnostic: syntax.Diagnostic{
			Severity: syntax.SeverityError,
			Range:    p.CurrentRange(),
			Expected: expected,
			Found:    found,
			Context:  context,
		},
	})
}

// Expect consumes the current token if it matches kind; otherwise it
// records an "expected kind" diagnostic and recovers against
// recoveryExtras ∪ GeneralRecoverySet. Returns whether the token matched.
func (p *Parser) Expect(kind syntax.Kind, context string, recoveryExtras syntax.Set) bool {
	if p.At(kind) {
		p.Bump()
		return true
	}
	p.AddError([]syntax.Label{syntax.KindLabel(kind)}, context)
	p.Recover(recoveryExtras)
	return false
}

// ExpectLabel is Expect for productions that don't map onto one concrete
// Kind ("HTML Tag Name", "twig expression", ...): it reports the given
// human label instead of a Kind, and never itself consumes a token (the
// caller decides what, if anything, to do when the expected production
// is absent).
func (p *Parser) ExpectLabel(label string, context string) {
	p.AddError([]syntax.Label{syntax.TextLabel(label)}, context)
}

// Recover wraps tokens from the current position up to (but not
// including) the next token in untilSet ∪ GeneralRecoverySet ∪ {EOF} in
// an ERROR node. If the current token is already a safe stopping point,
// it wraps nothing and no marker is started.
func (p *Parser) Recover(untilSet syntax.Set) {
	stop := untilSet.Union(GeneralRecoverySet)
	if p.AtSet(stop) || p.AtEOF() {
		return
	}
	m := p.Start()
	for !p.AtSet(stop) && !p.AtEOF() {
		p.Bump()
	}
	p.Complete(m, syntax.ErrorNode)
}

// ParseMany repeatedly invokes one until until reports true or input is
// exhausted. until is a predicate rather than a plain kind set because
// some stopping conditions need more than one token of lookahead (e.g.
// "the next non-trivia tokens are `{%` `endblock`"). It is the sole
// mechanism preventing infinite loops: if one ever returns without
// consuming a non-trivia token and without until now holding, ParseMany
// consumes one token into an ERROR node itself and continues,
// guaranteeing termination on any input in O(N) tokens.
func ParseMany(p *Parser, until func(*Parser) bool, one func(*Parser)) {
	for !until(p) && !p.AtEOF() {
		before := p.pos
		one(p)
		if p.pos == before {
			p.bumpUnexpectedIntoError()
		}
	}
}

// UntilSet adapts a static kind set into an until predicate for ParseMany.
func UntilSet(set syntax.Set) func(*Parser) bool {
	return func(p *Parser) bool { return p.AtSet(set) }
}

// bumpUnexpectedIntoError consumes exactly one non-trivia token, wrapped
// in an ERROR node, to guarantee ParseMany always makes progress.
func (p *Parser) bumpUnexpectedIntoError() {
	if p.AtEOF() {
		return
	}
	m := p.Start()
	p.AddError(nil, "")
	p.Bump()
	p.Complete(m, syntax.ErrorNode)
}
