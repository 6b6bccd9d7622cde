// Package token defines the lexical vocabulary of the Objective-C front
// end: token kinds, the closed set of at-keywords named in the language
// grammar, and the Token record threaded from lexer to parser.
package token

import "github.com/eaburns/objc2swift/internal/srcrange"

// Kind classifies a Token.
type Kind int

const (
	Invalid Kind = iota
	EOF

	Ident
	IntLiteral
	FloatLiteral
	StringLiteral

	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
	Colon
	Star
	Lt
	Gt
	Ellipsis
	Equal
	Amp
	Plus
	Minus

	// At-keywords, the closed set from the language grammar. Kept
	// contiguous so Token.IsAtKeyword can range-check cheaply.
	atKeywordStart
	AtInterface
	AtImplementation
	AtProtocol
	AtEnd
	AtClass
	AtProperty
	AtSynthesize
	AtDynamic
	AtPrivate
	AtProtected
	AtPackage
	AtPublic
	AtOptional
	AtRequired
	AtSelector
	atKeywordEnd
)

var kindNames = map[Kind]string{
	Invalid:          "invalid",
	EOF:              "EOF",
	Ident:            "identifier",
	IntLiteral:       "integer literal",
	FloatLiteral:     "float literal",
	StringLiteral:    "string literal",
	LParen:           "(",
	RParen:           ")",
	LBrace:           "{",
	RBrace:           "}",
	LBracket:         "[",
	RBracket:         "]",
	Comma:            ",",
	Semicolon:        ";",
	Colon:            ":",
	Star:             "*",
	Lt:               "<",
	Gt:               ">",
	Ellipsis:         "...",
	Equal:            "=",
	Amp:              "&",
	Plus:             "+",
	Minus:            "-",
	AtInterface:      "@interface",
	AtImplementation: "@implementation",
	AtProtocol:       "@protocol",
	AtEnd:            "@end",
	AtClass:          "@class",
	AtProperty:       "@property",
	AtSynthesize:     "@synthesize",
	AtDynamic:        "@dynamic",
	AtPrivate:        "@private",
	AtProtected:      "@protected",
	AtPackage:        "@package",
	AtPublic:         "@public",
	AtOptional:       "@optional",
	AtRequired:       "@required",
	AtSelector:       "@selector",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// atKeywords maps the identifier following '@' to its Kind. It is a
// separate literal table; its entries mirror the at-keyword names in
// kindNames.
var atKeywords = map[string]Kind{
	"interface":      AtInterface,
	"implementation": AtImplementation,
	"protocol":       AtProtocol,
	"end":            AtEnd,
	"class":          AtClass,
	"property":       AtProperty,
	"synthesize":     AtSynthesize,
	"dynamic":        AtDynamic,
	"private":        AtPrivate,
	"protected":      AtProtected,
	"package":        AtPackage,
	"public":         AtPublic,
	"optional":       AtOptional,
	"required":       AtRequired,
	"selector":       AtSelector,
}

// LookupAt returns the Kind for the identifier following an '@' sign, and
// whether it is a recognised at-keyword at all.
func LookupAt(word string) (Kind, bool) {
	k, ok := atKeywords[word]
	return k, ok
}

// Token is one lexeme with its classification and source range.
type Token struct {
	Kind   Kind
	Lexeme string
	Range  srcrange.Range
}

// IsAtKeyword reports whether t is one of the closed set of Objective-C
// at-keywords.
func (t Token) IsAtKeyword() bool {
	return t.Kind > atKeywordStart && t.Kind < atKeywordEnd
}

// IsIdentText reports whether t is an Ident whose lexeme equals s. Used
// throughout the parser to recognise contextual keywords (e.g. "id",
// "void", "nonnull") that are ordinary identifiers lexically.
func (t Token) IsIdentText(s string) bool {
	return t.Kind == Ident && t.Lexeme == s
}
