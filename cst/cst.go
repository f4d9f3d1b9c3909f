// Package cst is the typed view over the untyped concrete syntax tree:
// thin wrappers around *syntax.SyntaxNode that expose each production's
// shape (HtmlTag.Name(), TwigIf.ElseBlock(), ...) instead of making
// callers walk children and compare Kind by hand. Every wrapper is a
// read-only projection; none of them copy or mutate the underlying tree.
package cst

import "github.com/twigcst/twigcst/syntax"

func findChildNode(n *syntax.SyntaxNode, kind syntax.Kind) *syntax.SyntaxNode {
	for _, c := range n.Children() {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

func findChildNodes(n *syntax.SyntaxNode, kind syntax.Kind) []*syntax.SyntaxNode {
	var out []*syntax.SyntaxNode
	for _, c := range n.Children() {
		if c.Kind() == kind {
			out = append(out, c)
		}
	}
	return out
}

func findToken(n *syntax.SyntaxNode, kind syntax.Kind) *syntax.SyntaxToken {
	for _, e := range n.ChildrenWithTokens() {
		if t, ok := e.(*syntax.SyntaxToken); ok && t.ElementKind() == kind {
			return t
		}
	}
	return nil
}

// --- HTML --------------------------------------------------------------

// HtmlTag is the typed view of an HTML_TAG node.
type HtmlTag struct{ n *syntax.SyntaxNode }

// CastHtmlTag projects n into an HtmlTag if its kind matches.
func CastHtmlTag(n *syntax.SyntaxNode) (HtmlTag, bool) {
	if n == nil || n.Kind() != syntax.HtmlTag {
		return HtmlTag{}, false
	}
	return HtmlTag{n}, true
}

func (t HtmlTag) Syntax() *syntax.SyntaxNode { return t.n }

func (t HtmlTag) StartingTag() (HtmlStartingTag, bool) {
	return CastHtmlStartingTag(findChildNode(t.n, syntax.HtmlStartingTag))
}

func (t HtmlTag) EndingTag() (HtmlEndingTag, bool) {
	return CastHtmlEndingTag(findChildNode(t.n, syntax.HtmlEndingTag))
}

// Name returns the tag name from the starting tag, or "" if malformed.
func (t HtmlTag) Name() string {
	st, ok := t.StartingTag()
	if !ok {
		return ""
	}
	return st.Name()
}

func (t HtmlTag) Attributes() []HtmlAttribute {
	st, ok := t.StartingTag()
	if !ok {
		return nil
	}
	return st.Attributes()
}

// Body returns the tag's direct children nodes (its BODY node's node
// children), empty for void/self-closing elements.
func (t HtmlTag) Body() []*syntax.SyntaxNode {
	body := findChildNode(t.n, syntax.Body)
	if body == nil {
		return nil
	}
	return body.Children()
}

// HtmlStartingTag is the typed view of an HTML_STARTING_TAG node.
type HtmlStartingTag struct{ n *syntax.SyntaxNode }

func CastHtmlStartingTag(n *syntax.SyntaxNode) (HtmlStartingTag, bool) {
	if n == nil || n.Kind() != syntax.HtmlStartingTag {
		return HtmlStartingTag{}, false
	}
	return HtmlStartingTag{n}, true
}

func (t HtmlStartingTag) Syntax() *syntax.SyntaxNode { return t.n }

func (t HtmlStartingTag) Name() string {
	tok := findToken(t.n, syntax.Word)
	if tok == nil {
		return ""
	}
	return tok.Text()
}

func (t HtmlStartingTag) AttributeList() (HtmlAttributeList, bool) {
	return CastHtmlAttributeList(findChildNode(t.n, syntax.HtmlAttributeList))
}

func (t HtmlStartingTag) Attributes() []HtmlAttribute {
	al, ok := t.AttributeList()
	if !ok {
		return nil
	}
	return al.Attributes()
}

func (t HtmlStartingTag) IsSelfClosing() bool {
	return findToken(t.n, syntax.SlashGreaterThan) != nil
}

// HtmlEndingTag is the typed view of an HTML_ENDING_TAG node.
type HtmlEndingTag struct{ n *syntax.SyntaxNode }

func CastHtmlEndingTag(n *syntax.SyntaxNode) (HtmlEndingTag, bool) {
	if n == nil || n.Kind() != syntax.HtmlEndingTag {
		return HtmlEndingTag{}, false
	}
	return HtmlEndingTag{n}, true
}

func (t HtmlEndingTag) Syntax() *syntax.SyntaxNode { return t.n }

func (t HtmlEndingTag) Name() string {
	tok := findToken(t.n, syntax.Word)
	if tok == nil {
		return ""
	}
	return tok.Text()
}

// HtmlAttributeList is the typed view of an HTML_ATTRIBUTE_LIST node.
type HtmlAttributeList struct{ n *syntax.SyntaxNode }

func CastHtmlAttributeList(n *syntax.SyntaxNode) (HtmlAttributeList, bool) {
	if n == nil || n.Kind() != syntax.HtmlAttributeList {
		return HtmlAttributeList{}, false
	}
	return HtmlAttributeList{n}, true
}

func (l HtmlAttributeList) Syntax() *syntax.SyntaxNode { return l.n }

func (l HtmlAttributeList) Attributes() []HtmlAttribute {
	nodes := findChildNodes(l.n, syntax.HtmlAttribute)
	out := make([]HtmlAttribute, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, HtmlAttribute{n})
	}
	return out
}

// HtmlAttribute is the typed view of an HTML_ATTRIBUTE node.
type HtmlAttribute struct{ n *syntax.SyntaxNode }

func CastHtmlAttribute(n *syntax.SyntaxNode) (HtmlAttribute, bool) {
	if n == nil || n.Kind() != syntax.HtmlAttribute {
		return HtmlAttribute{}, false
	}
	return HtmlAttribute{n}, true
}

func (a HtmlAttribute) Syntax() *syntax.SyntaxNode { return a.n }

func (a HtmlAttribute) Name() string {
	tok := findToken(a.n, syntax.Word)
	if tok == nil {
		return ""
	}
	return tok.Text()
}

// Value returns the attribute's HTML_STRING node, if any (attributes with
// no `=` have none).
func (a HtmlAttribute) Value() (HtmlString, bool) {
	return CastHtmlString(findChildNode(a.n, syntax.HtmlString))
}

// HtmlString is the typed view of an HTML_STRING node (a quoted or
// unquoted attribute value, possibly containing Twig interpolation).
type HtmlString struct{ n *syntax.SyntaxNode }

func CastHtmlString(n *syntax.SyntaxNode) (HtmlString, bool) {
	if n == nil || n.Kind() != syntax.HtmlString {
		return HtmlString{}, false
	}
	return HtmlString{n}, true
}

func (s HtmlString) Syntax() *syntax.SyntaxNode { return s.n }

// PlainText returns the string's literal text when it contains no Twig
// interpolation, i.e. is made up only of trivia and text tokens.
func (s HtmlString) PlainText() (string, bool) {
	inner := findChildNode(s.n, syntax.HtmlStringInner)
	target := s.n
	if inner != nil {
		target = inner
	}
	if len(target.Children()) > 0 {
		return "", false
	}
	text := target.Text()
	return text, true
}

// HtmlComment is the typed view of an HTML_COMMENT node.
type HtmlComment struct{ n *syntax.SyntaxNode }

func CastHtmlComment(n *syntax.SyntaxNode) (HtmlComment, bool) {
	if n == nil || n.Kind() != syntax.HtmlComment {
		return HtmlComment{}, false
	}
	return HtmlComment{n}, true
}

func (c HtmlComment) Syntax() *syntax.SyntaxNode { return c.n }

// IsLudtwigIgnore reports whether the comment carries a ludtwig-ignore
// (not -file) directive.
func (c HtmlComment) IsLudtwigIgnore() bool {
	return findToken(c.n, syntax.LudtwigDirectiveIgnore) != nil
}

// IsLudtwigIgnoreFile reports whether the comment carries a
// ludtwig-ignore-file directive.
func (c HtmlComment) IsLudtwigIgnoreFile() bool {
	return findToken(c.n, syntax.LudtwigDirectiveFileIgnore) != nil
}

// HtmlDoctype is the typed view of an HTML_DOCTYPE node.
type HtmlDoctype struct{ n *syntax.SyntaxNode }

func CastHtmlDoctype(n *syntax.SyntaxNode) (HtmlDoctype, bool) {
	if n == nil || n.Kind() != syntax.HtmlDoctype {
		return HtmlDoctype{}, false
	}
	return HtmlDoctype{n}, true
}

func (d HtmlDoctype) Syntax() *syntax.SyntaxNode { return d.n }

// HtmlText is the typed view of an HTML_TEXT node.
type HtmlText struct{ n *syntax.SyntaxNode }

func CastHtmlText(n *syntax.SyntaxNode) (HtmlText, bool) {
	if n == nil || n.Kind() != syntax.HtmlText {
		return HtmlText{}, false
	}
	return HtmlText{n}, true
}

func (t HtmlText) Syntax() *syntax.SyntaxNode { return t.n }
func (t HtmlText) Text() string               { return t.n.Text() }

// --- Twig ----------------------------------------------------------------

// TwigVar is the typed view of a TWIG_VAR node (`{{ expr }}`).
type TwigVar struct{ n *syntax.SyntaxNode }

func CastTwigVar(n *syntax.SyntaxNode) (TwigVar, bool) {
	if n == nil || n.Kind() != syntax.TwigVar {
		return TwigVar{}, false
	}
	return TwigVar{n}, true
}

func (v TwigVar) Syntax() *syntax.SyntaxNode { return v.n }
func (v TwigVar) Expression() *syntax.SyntaxNode {
	return findChildNode(v.n, syntax.TwigExpression)
}

// TwigComment is the typed view of a TWIG_COMMENT node (`{# ... #}`).
type TwigComment struct{ n *syntax.SyntaxNode }

func CastTwigComment(n *syntax.SyntaxNode) (TwigComment, bool) {
	if n == nil || n.Kind() != syntax.TwigComment {
		return TwigComment{}, false
	}
	return TwigComment{n}, true
}

func (c TwigComment) Syntax() *syntax.SyntaxNode { return c.n }

// TwigBlock is the typed view of a TWIG_BLOCK node (`{% block name %}`).
type TwigBlock struct{ n *syntax.SyntaxNode }

func CastTwigBlock(n *syntax.SyntaxNode) (TwigBlock, bool) {
	if n == nil || n.Kind() != syntax.TwigBlock {
		return TwigBlock{}, false
	}
	return TwigBlock{n}, true
}

func (b TwigBlock) Syntax() *syntax.SyntaxNode { return b.n }

func (b TwigBlock) Name() string {
	sb := findChildNode(b.n, syntax.TwigStartingBlock)
	if sb == nil {
		return ""
	}
	tok := findToken(sb, syntax.Word)
	if tok == nil {
		return ""
	}
	return tok.Text()
}

func (b TwigBlock) Body() []*syntax.SyntaxNode {
	body := findChildNode(b.n, syntax.Body)
	if body == nil {
		return nil
	}
	return body.Children()
}

// TwigIf is the typed view of a TWIG_IF node.
type TwigIf struct{ n *syntax.SyntaxNode }

func CastTwigIf(n *syntax.SyntaxNode) (TwigIf, bool) {
	if n == nil || n.Kind() != syntax.TwigIf {
		return TwigIf{}, false
	}
	return TwigIf{n}, true
}

func (i TwigIf) Syntax() *syntax.SyntaxNode { return i.n }

func (i TwigIf) IfBlock() (TwigConditionalBlock, bool) {
	n := findChildNode(i.n, syntax.TwigIfBlock)
	if n == nil {
		return TwigConditionalBlock{}, false
	}
	return TwigConditionalBlock{n}, true
}

func (i TwigIf) ElseIfBlocks() []TwigConditionalBlock {
	nodes := findChildNodes(i.n, syntax.TwigElseIfBlock)
	out := make([]TwigConditionalBlock, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, TwigConditionalBlock{n})
	}
	return out
}

func (i TwigIf) ElseBlock() (TwigConditionalBlock, bool) {
	n := findChildNode(i.n, syntax.TwigElseBlock)
	if n == nil {
		return TwigConditionalBlock{}, false
	}
	return TwigConditionalBlock{n}, true
}

// TwigConditionalBlock is the shared typed view for TWIG_IF_BLOCK,
// TWIG_ELSE_IF_BLOCK and TWIG_ELSE_BLOCK: a starting tag with an optional
// condition expression, plus a body.
type TwigConditionalBlock struct{ n *syntax.SyntaxNode }

func (c TwigConditionalBlock) Syntax() *syntax.SyntaxNode { return c.n }

func (c TwigConditionalBlock) Expression() *syntax.SyntaxNode {
	sb := findChildNode(c.n, syntax.TwigStartingBlock)
	if sb == nil {
		return nil
	}
	return findChildNode(sb, syntax.TwigExpression)
}

func (c TwigConditionalBlock) Body() []*syntax.SyntaxNode {
	body := findChildNode(c.n, syntax.Body)
	if body == nil {
		return nil
	}
	return body.Children()
}

// TwigFor is the typed view of a TWIG_FOR node.
type TwigFor struct{ n *syntax.SyntaxNode }

func CastTwigFor(n *syntax.SyntaxNode) (TwigFor, bool) {
	if n == nil || n.Kind() != syntax.TwigFor {
		return TwigFor{}, false
	}
	return TwigFor{n}, true
}

func (f TwigFor) Syntax() *syntax.SyntaxNode { return f.n }

func (f TwigFor) Expression() *syntax.SyntaxNode {
	sb := findChildNode(f.n, syntax.TwigStartingBlock)
	if sb == nil {
		return nil
	}
	return findChildNode(sb, syntax.TwigExpression)
}

func (f TwigFor) Body() []*syntax.SyntaxNode {
	body := findChildNode(f.n, syntax.Body)
	if body == nil {
		return nil
	}
	return body.Children()
}
