package syntax

// TextRange is a contiguous, half-open byte range [Start, End) into the
// original source text.
type TextRange struct {
	Start, End uint32
}

// Len returns the number of bytes covered by the range.
func (r TextRange) Len() uint32 { return r.End - r.Start }

// Cover returns the smallest range containing both r and other. Covering
// a zero-value range with a real one yields the real one, so an empty
// range never widens the result. (A SyntaxNode's own range is computed
// from its offset and green length, not with Cover.)
func (r TextRange) Cover(other TextRange) TextRange {
	if r == (TextRange{}) {
		return other
	}
	if other == (TextRange{}) {
		return r
	}
	out := r
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

// Token is a single lexeme: a kind, its byte span, and the exact source
// slice it covers. Every byte of the input is covered by exactly one
// Token in lexer output, in increasing span order, with no gaps.
type Token struct {
	Kind Kind
	Span TextRange
	Text string
}

// Set is a small fixed membership test over Kind values, used for
// sequence lookahead and recovery sets. It is a plain map rather than a
// bitset: the kind space is large and sparse per call site, and these
// sets are built once per grammar rule, not per token.
type Set map[Kind]struct{}

// NewSet builds a Set from the given kinds.
func NewSet(kinds ...Kind) Set {
	s := make(Set, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}
	return s
}

// Contains reports whether kind is a member of the set.
func (s Set) Contains(kind Kind) bool {
	_, ok := s[kind]
	return ok
}

// Union returns a new Set containing the members of s and other.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for k := range s {
		out[k] = struct{}{}
	}
	for k := range other {
		out[k] = struct{}{}
	}
	return out
}

// Add returns a new set with kind added.
func (s Set) Add(kind Kind) Set {
	return s.Union(NewSet(kind))
}
