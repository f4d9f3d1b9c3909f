// Package syntax defines the token/node vocabulary and the lossless
// green/red concrete syntax tree shared by the lexer, parser and the
// typed view built on top of it.
package syntax

import "fmt"

// Kind identifies every token and composite node that can appear in a
// tree. It is a single closed enumeration: token kinds and node kinds
// share the same namespace so a Kind can be tested uniformly regardless
// of whether it labels a leaf or an interior node.
type Kind uint16

const (
	// Invalid is the zero value; it never labels a real token or node.
	Invalid Kind = iota

	// EOF is a synthetic kind returned by the cursor past the end of input.
	// It never appears inside a built tree.
	EOF

	// Error is a one-byte catch-all token for bytes the lexer can't
	// otherwise classify.
	Error

	// --- trivia -------------------------------------------------------
	Whitespace
	LineBreak

	// --- literals -------------------------------------------------------
	Number
	Word

	// --- HTML punctuation ------------------------------------------------
	LessThan             // <
	LessThanSlash        // </
	SlashGreaterThan      // />
	GreaterThan          // >
	LessThanBangDashDash // <!--
	DashDashGreaterThan  // -->
	LessThanBang         // <!
	DoubleQuote          // "
	SingleQuote          // '

	// --- Twig punctuation -------------------------------------------------
	CurlyPercent        // {%
	PercentCurly        // %}
	CurlyCurly          // {{
	CurlyCurlyClose     // }}
	CurlyHash           // {#
	HashCurly           // #}
	HashCurlyOpen       // #{
	CurlyOpen           // {
	CurlyClose          // }
	SquareOpen          // [
	SquareClose         // ]
	ParenOpen           // (
	ParenClose          // )
	Dot                 // .
	DotDot              // ..
	Comma               // ,
	Colon               // :
	Semicolon           // ;
	Pipe                // |
	Tilde               // ~
	Plus                // +
	Minus               // -
	Star                // *
	ForwardSlash        // /
	Percent             // %
	QuestionMark        // ?
	QuestionColon       // ?:
	QuestionQuestion    // ??
	Equal               // =
	DoubleEqual         // ==
	BangEqual           // !=
	LessThanEqual       // <=
	GreaterThanEqual    // >=
	DoubleStar          // **
	DoubleForwardSlash  // //
	Backslash           // \

	// --- Twig keywords (re-tagged Word tokens) ----------------------------
	BlockKeyword
	EndblockKeyword
	IfKeyword
	ElseifKeyword
	ElseKeyword
	EndifKeyword
	ForKeyword
	EndforKeyword
	TrueKeyword
	FalseKeyword
	NullKeyword
	AndKeyword
	OrKeyword
	NotKeyword
	IsKeyword
	InKeyword
	SameKeyword
	AsKeyword
	DivisibleKeyword
	ByKeyword
	MatchesKeyword
	StartsKeyword
	EndsKeyword
	WithKeyword
	DoctypeKeyword
	ApplyKeyword
	EndapplyKeyword
	SetKeyword
	EndsetKeyword
	UseKeyword
	ExtendsKeyword
	IncludeKeyword
	DefinedKeyword

	// --- composite node kinds ---------------------------------------------
	Root
	Body
	ErrorNode

	HtmlTag
	HtmlStartingTag
	HtmlEndingTag
	HtmlAttributeList
	HtmlAttribute
	HtmlString
	HtmlStringInner
	HtmlText
	HtmlComment
	HtmlDoctype

	TwigBlock
	TwigStartingBlock
	TwigEndingBlock
	TwigIf
	TwigIfBlock
	TwigElseIfBlock
	TwigElseBlock
	TwigEndifBlock
	TwigFor
	TwigVar
	TwigComment
	TwigExpression

	TwigApply
	TwigSet
	TwigUse
	TwigExtends
	TwigInclude

	TwigLiteralName
	TwigLiteralNumber
	TwigLiteralString
	TwigLiteralStringInner
	TwigLiteralStringInterpolation
	TwigLiteralArray
	TwigLiteralHash
	TwigLiteralHashPair
	TwigLiteralHashKey
	TwigLiteralNull
	TwigLiteralBoolean

	TwigBinaryExpression
	TwigUnaryExpression
	TwigTernaryExpression
	TwigAccessor
	TwigIndexLookup
	TwigIndex
	TwigIndexRange
	TwigFunctionCall
	TwigFilter
	TwigOperand
	TwigArguments
	TwigNamedArgument

	LudtwigDirectiveIgnore
	LudtwigDirectiveFileIgnore

	kindCount
)

var names = [kindCount]string{
	Invalid:                        "INVALID",
	EOF:                            "EOF",
	Error:                          "ERROR_TOKEN",
	Whitespace:                     "WHITESPACE",
	LineBreak:                      "LINE_BREAK",
	Number:                         "NUMBER",
	Word:                           "WORD",
	LessThan:                       "<",
	LessThanSlash:                  "</",
	SlashGreaterThan:               "/>",
	GreaterThan:                    ">",
	LessThanBangDashDash:           "<!--",
	DashDashGreaterThan:            "-->",
	LessThanBang:                   "<!",
	DoubleQuote:                    `"`,
	SingleQuote:                    "'",
	CurlyPercent:                   "{%",
	PercentCurly:                   "%}",
	CurlyCurly:                     "{{",
	CurlyCurlyClose:                "}}",
	CurlyHash:                      "{#",
	HashCurly:                      "#}",
	HashCurlyOpen:                  "#{",
	CurlyOpen:                      "{",
	CurlyClose:                     "}",
	SquareOpen:                     "[",
	SquareClose:                    "]",
	ParenOpen:                      "(",
	ParenClose:                     ")",
	Dot:                            ".",
	DotDot:                         "..",
	Comma:                          ",",
	Colon:                          ":",
	Semicolon:                      ";",
	Pipe:                           "|",
	Tilde:                          "~",
	Plus:                           "+",
	Minus:                          "-",
	Star:                           "*",
	ForwardSlash:                   "/",
	Percent:                        "%",
	QuestionMark:                   "?",
	QuestionColon:                  "?:",
	QuestionQuestion:               "??",
	Equal:                          "=",
	DoubleEqual:                    "==",
	BangEqual:                      "!=",
	LessThanEqual:                  "<=",
	GreaterThanEqual:               ">=",
	DoubleStar:                     "**",
	DoubleForwardSlash:             "//",
	Backslash:                      `\`,
	BlockKeyword:                   "block",
	EndblockKeyword:                "endblock",
	IfKeyword:                      "if",
	ElseifKeyword:                  "elseif",
	ElseKeyword:                    "else",
	EndifKeyword:                   "endif",
	ForKeyword:                     "for",
	EndforKeyword:                  "endfor",
	TrueKeyword:                    "true",
	FalseKeyword:                   "false",
	NullKeyword:                    "null",
	AndKeyword:                     "and",
	OrKeyword:                      "or",
	NotKeyword:                     "not",
	IsKeyword:                      "is",
	InKeyword:                      "in",
	SameKeyword:                    "same",
	AsKeyword:                      "as",
	DivisibleKeyword:               "divisible",
	ByKeyword:                      "by",
	MatchesKeyword:                 "matches",
	StartsKeyword:                  "starts",
	EndsKeyword:                    "ends",
	WithKeyword:                    "with",
	DoctypeKeyword:                 "DOCTYPE",
	ApplyKeyword:                   "apply",
	EndapplyKeyword:                "endapply",
	SetKeyword:                     "set",
	EndsetKeyword:                  "endset",
	UseKeyword:                     "use",
	ExtendsKeyword:                 "extends",
	IncludeKeyword:                 "include",
	DefinedKeyword:                 "defined",
	Root:                           "ROOT",
	Body:                           "BODY",
	ErrorNode:                      "ERROR",
	HtmlTag:                        "HTML_TAG",
	HtmlStartingTag:                "HTML_STARTING_TAG",
	HtmlEndingTag:                  "HTML_ENDING_TAG",
	HtmlAttributeList:              "HTML_ATTRIBUTE_LIST",
	HtmlAttribute:                  "HTML_ATTRIBUTE",
	HtmlString:                     "HTML_STRING",
	HtmlStringInner:                "HTML_STRING_INNER",
	HtmlText:                       "HTML_TEXT",
	HtmlComment:                    "HTML_COMMENT",
	HtmlDoctype:                    "HTML_DOCTYPE",
	TwigBlock:                      "TWIG_BLOCK",
	TwigStartingBlock:              "TWIG_STARTING_BLOCK",
	TwigEndingBlock:                "TWIG_ENDING_BLOCK",
	TwigIf:                         "TWIG_IF",
	TwigIfBlock:                    "TWIG_IF_BLOCK",
	TwigElseIfBlock:                "TWIG_ELSE_IF_BLOCK",
	TwigElseBlock:                  "TWIG_ELSE_BLOCK",
	TwigEndifBlock:                 "TWIG_ENDIF_BLOCK",
	TwigFor:                        "TWIG_FOR",
	TwigVar:                        "TWIG_VAR",
	TwigComment:                    "TWIG_COMMENT",
	TwigExpression:                 "TWIG_EXPRESSION",
	TwigApply:                      "TWIG_APPLY",
	TwigSet:                        "TWIG_SET",
	TwigUse:                        "TWIG_USE",
	TwigExtends:                    "TWIG_EXTENDS",
	TwigInclude:                    "TWIG_INCLUDE",
	TwigLiteralName:                "TWIG_LITERAL_NAME",
	TwigLiteralNumber:              "TWIG_LITERAL_NUMBER",
	TwigLiteralString:              "TWIG_LITERAL_STRING",
	TwigLiteralStringInner:         "TWIG_LITERAL_STRING_INNER",
	TwigLiteralStringInterpolation: "TWIG_LITERAL_STRING_INTERPOLATION",
	TwigLiteralArray:               "TWIG_LITERAL_ARRAY",
	TwigLiteralHash:                "TWIG_LITERAL_HASH",
	TwigLiteralHashPair:            "TWIG_LITERAL_HASH_PAIR",
	TwigLiteralHashKey:             "TWIG_LITERAL_HASH_KEY",
	TwigLiteralNull:                "TWIG_LITERAL_NULL",
	TwigLiteralBoolean:             "TWIG_LITERAL_BOOLEAN",
	TwigBinaryExpression:           "TWIG_BINARY_EXPRESSION",
	TwigUnaryExpression:            "TWIG_UNARY_EXPRESSION",
	TwigTernaryExpression:          "TWIG_TERNARY_EXPRESSION",
	TwigAccessor:                   "TWIG_ACCESSOR",
	TwigIndexLookup:                "TWIG_INDEX_LOOKUP",
	TwigIndex:                      "TWIG_INDEX",
	TwigIndexRange:                 "TWIG_INDEX_RANGE",
	TwigFunctionCall:               "TWIG_FUNCTION_CALL",
	TwigFilter:                     "TWIG_FILTER",
	TwigOperand:                    "TWIG_OPERAND",
	TwigArguments:                  "TWIG_ARGUMENTS",
	TwigNamedArgument:              "TWIG_NAMED_ARGUMENT",
	LudtwigDirectiveIgnore:         "LUDTWIG_DIRECTIVE_IGNORE",
	LudtwigDirectiveFileIgnore:     "LUDTWIG_DIRECTIVE_FILE_IGNORE",
}

// String renders a human-readable name for the kind, used in diagnostics
// and tree dumps. It is intentionally simple; callers on a hot path
// should switch on the Kind value directly instead.
func (k Kind) String() string {
	if int(k) < len(names) && names[k] != "" {
		return names[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsTrivia reports whether the kind is whitespace or a line break:
// syntactically insignificant but byte-significant for losslessness.
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == LineBreak
}

// IsKeyword reports whether the kind is one of the re-tagged Twig keyword
// kinds (as opposed to a plain Word).
func (k Kind) IsKeyword() bool {
	return k >= BlockKeyword && k <= DefinedKeyword
}

// IsLiteral reports whether the kind is a scalar token literal (number or
// identifier-shaped word), not a composite literal node.
func (k Kind) IsLiteral() bool {
	return k == Number || k == Word
}

// IsError reports whether the kind represents an unrecognised lexer byte
// or a wrapped error production.
func (k Kind) IsError() bool {
	return k == Error || k == ErrorNode
}

// IsPunctuation reports whether the kind is one of the fixed single- or
// multi-character punctuation tokens (HTML or Twig).
func (k Kind) IsPunctuation() bool {
	return k >= LessThan && k <= Backslash
}

// keywordKinds maps the exact text of a Word token to the keyword
// Kind it should be re-tagged as. Multi-word keywords ("same as",
// "divisible by", "starts with", "ends with", "not in", "is not") are
// recognised by the parser via sequence lookahead (at_following), not
// here: the lexer only ever sees one word at a time.
var keywordKinds = map[string]Kind{
	"block":     BlockKeyword,
	"endblock":  EndblockKeyword,
	"if":        IfKeyword,
	"elseif":    ElseifKeyword,
	"else":      ElseKeyword,
	"endif":     EndifKeyword,
	"for":       ForKeyword,
	"endfor":    EndforKeyword,
	"true":      TrueKeyword,
	"false":     FalseKeyword,
	"null":      NullKeyword,
	"none":      NullKeyword,
	"and":       AndKeyword,
	"or":        OrKeyword,
	"not":       NotKeyword,
	"is":        IsKeyword,
	"in":        InKeyword,
	"same":      SameKeyword,
	"as":        AsKeyword,
	"divisible": DivisibleKeyword,
	"by":        ByKeyword,
	"matches":   MatchesKeyword,
	"starts":    StartsKeyword,
	"ends":      EndsKeyword,
	"with":      WithKeyword,
	"DOCTYPE":   DoctypeKeyword,
	"apply":     ApplyKeyword,
	"endapply":  EndapplyKeyword,
	"set":       SetKeyword,
	"endset":    EndsetKeyword,
	"use":       UseKeyword,
	"extends":   ExtendsKeyword,
	"include":   IncludeKeyword,
	"defined":   DefinedKeyword,
}

// LookupKeyword returns the keyword Kind for a word's exact text, and
// whether it is one at all. Word text is matched verbatim, so every
// keyword is case sensitive; DOCTYPE is listed only in its uppercase
// spelling.
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywordKinds[text]
	return k, ok
}

// VoidElements is the fixed set of HTML tag names that never carry a body
// or an ending tag, regardless of whether the starting tag was spelled
// self-closing.
var VoidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "command": true,
	"embed": true, "hr": true, "img": true, "input": true, "keygen": true,
	"link": true, "meta": true, "param": true, "source": true,
	"track": true, "wbr": true,
}
