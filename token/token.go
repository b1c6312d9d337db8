// Package token turns a reader.Cursor into a stream of lexical tokens and,
// in a second pass, groups the flat stream into a tree of Container tokens
// for {}, [], and (). Parens are tokenized and containerized the same way
// braces and brackets are even though JSON/XJS never uses them as a data
// container, because the implicit-string scanner needs balance awareness
// across all three bracket families to decide where an unquoted value
// token ends.
package token

import "github.com/simon-lentz/xjs/location"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	// Word is a maximal run of characters that are not whitespace, not a
	// recognized symbol, and not a quote or comment introducer. Keywords
	// (true, false, null) and implicit (unquoted) keys/values are Words;
	// telling them apart is the scanner package's job, not this one's.
	Word Kind = iota
	// Symbol is a single structural character: one of { } [ ] ( ) , :
	Symbol
	// Number is a JSON-shaped numeric literal.
	Number
	SingleQuote
	DoubleQuote
	TripleQuote
	LineComment
	HashComment
	BlockComment
	// Break is a maximal run of whitespace, including line breaks.
	Break
	// Container is produced only by the containerization pass (Containerize):
	// an Open symbol, a nested Children stream, and a matching Close symbol.
	Container
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "Word"
	case Symbol:
		return "Symbol"
	case Number:
		return "Number"
	case SingleQuote:
		return "SingleQuote"
	case DoubleQuote:
		return "DoubleQuote"
	case TripleQuote:
		return "TripleQuote"
	case LineComment:
		return "LineComment"
	case HashComment:
		return "HashComment"
	case BlockComment:
		return "BlockComment"
	case Break:
		return "Break"
	case Container:
		return "Container"
	default:
		return "Unknown"
	}
}

// Token is one lexical unit. Text holds the literal source text for every
// kind except Container: for quote kinds it includes the delimiters, for
// comment kinds it includes the introducer (and, for block comments, the
// closer), for Break it is the raw whitespace run, and for Word/Symbol/
// Number it is exactly the characters recognized.
//
// Content holds the semantic payload where it differs from Text: the
// unescaped body of a quoted string, or the number of line breaks found in
// a Break token (as LineBreaks).
type Token struct {
	Kind Kind
	Text string
	Span location.Span

	// Content is the unescaped string body for SingleQuote/DoubleQuote/
	// TripleQuote tokens; unused for other kinds.
	Content string

	// LineBreaks is the number of line breaks contained in a Break token.
	LineBreaks int

	// Open and Close hold the delimiter runes of a Container token ('{'/'}',
	// '['/']', or '('/')'). Close is 0 if the container was never closed
	// (in which case Containerize already returned an error for it).
	Open  rune
	Close rune
	// Children holds the flat token stream found strictly between a
	// Container's delimiters, itself already containerized.
	Children []Token
}
