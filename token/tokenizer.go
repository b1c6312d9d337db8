package token

import (
	"strings"

	"github.com/simon-lentz/xjs/location"
	"github.com/simon-lentz/xjs/reader"
)

const symbolChars = "{}[](),:"

func isSymbol(r rune) bool {
	return strings.ContainsRune(symbolChars, r)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Tokenizer produces a flat, un-containerized stream of tokens from a
// reader.Cursor. It buffers at most one token for Peek.
type Tokenizer struct {
	cur    *reader.Cursor
	peeked *Token
	err    error
}

// NewTokenizer returns a Tokenizer reading through cur.
func NewTokenizer(cur *reader.Cursor) *Tokenizer {
	return &Tokenizer{cur: cur}
}

// Peek returns the next token without consuming it. ok is false at EOF.
func (t *Tokenizer) Peek() (Token, bool, error) {
	if t.err != nil {
		return Token{}, false, t.err
	}
	if t.peeked == nil {
		tok, ok, err := t.next()
		if err != nil {
			t.err = err
			return Token{}, false, err
		}
		if !ok {
			return Token{}, false, nil
		}
		t.peeked = &tok
	}
	return *t.peeked, true, nil
}

// Next consumes and returns the next token. ok is false at EOF.
func (t *Tokenizer) Next() (Token, bool, error) {
	if t.peeked != nil {
		tok := *t.peeked
		t.peeked = nil
		return tok, true, nil
	}
	if t.err != nil {
		return Token{}, false, t.err
	}
	tok, ok, err := t.next()
	if err != nil {
		t.err = err
	}
	return tok, ok, err
}

func (t *Tokenizer) next() (Token, bool, error) {
	c := t.cur
	r, ok := c.Current()
	if !ok {
		return Token{}, false, nil
	}
	start := c.Position()

	switch {
	case isSpace(r):
		return t.readBreak(start), true, nil
	case isSymbol(r):
		c.Read()
		return Token{Kind: Symbol, Text: string(r), Span: c.Span(start)}, true, nil
	case r == '\'' || r == '"':
		return t.readQuoteLike(r, start)
	case r == '/':
		if next, ok := c.Peek(1); ok && next == '/' {
			c.Read()
			c.Read()
			text := c.ReadLineComment()
			return Token{Kind: LineComment, Text: text, Span: c.Span(start)}, true, nil
		}
		if next, ok := c.Peek(1); ok && next == '*' {
			c.Read()
			c.Read()
			text, err := c.ReadBlockComment()
			if err != nil {
				return Token{}, false, err
			}
			return Token{Kind: BlockComment, Text: text, Span: c.Span(start)}, true, nil
		}
		return t.readWord(start), true, nil
	case r == '#':
		c.Read()
		text := c.ReadHashComment()
		return Token{Kind: HashComment, Text: text, Span: c.Span(start)}, true, nil
	case r == '-' || isDigit(r):
		if looksLikeNumber(c) {
			text, err := c.ReadNumber()
			if err != nil {
				return Token{}, false, err
			}
			return Token{Kind: Number, Text: text, Span: c.Span(start)}, true, nil
		}
		return t.readWord(start), true, nil
	default:
		return t.readWord(start), true, nil
	}
}

// looksLikeNumber reports whether the cursor is positioned at a rune
// sequence ReadNumber can consume: an optional '-' followed by a digit.
func looksLikeNumber(c *reader.Cursor) bool {
	r, ok := c.Current()
	if !ok {
		return false
	}
	if r == '-' {
		next, ok := c.Peek(1)
		return ok && isDigit(next)
	}
	return isDigit(r)
}

func (t *Tokenizer) readBreak(start location.Position) Token {
	c := t.cur
	breaks := 0
	var text strings.Builder
	for {
		r, ok := c.Current()
		if !ok || !isSpace(r) {
			break
		}
		if r == '\n' || r == '\r' {
			breaks++
		}
		text.WriteRune(r)
		c.Read()
	}
	return Token{Kind: Break, Text: text.String(), LineBreaks: breaks, Span: c.Span(start)}
}

func (t *Tokenizer) readWord(start location.Position) Token {
	c := t.cur
	var text strings.Builder
	for {
		r, ok := c.Current()
		if !ok || isSpace(r) || isSymbol(r) || r == '\'' || r == '"' || r == '#' {
			break
		}
		if r == '/' {
			if next, ok := c.Peek(1); ok && (next == '/' || next == '*') {
				break
			}
		}
		text.WriteRune(r)
		c.Read()
	}
	return Token{Kind: Word, Text: text.String(), Span: c.Span(start)}
}

func (t *Tokenizer) readQuoteLike(quote rune, start location.Position) (Token, bool, error) {
	c := t.cur
	c.StartCapture()
	c.Read() // consume first quote
	second, ok := c.Current()
	if ok && second == quote {
		// Could be an empty string "" / '' or the start of a triple quote.
		third, ok3 := c.Peek(1)
		if ok3 && third == quote {
			c.Read()
			c.Read() // consume the second and third quote runes
			content, err := c.ReadMulti(quote)
			if err != nil {
				c.EndCapture()
				return Token{}, false, err
			}
			text := c.EndCapture()
			return Token{Kind: TripleQuote, Text: text, Content: content, Span: c.Span(start)}, true, nil
		}
		// Empty string.
		c.Read() // consume closing quote
		kind := DoubleQuote
		if quote == '\'' {
			kind = SingleQuote
		}
		text := c.EndCapture()
		return Token{Kind: kind, Text: text, Content: "", Span: c.Span(start)}, true, nil
	}
	content, err := c.ReadQuoted(quote)
	if err != nil {
		c.EndCapture()
		return Token{}, false, err
	}
	text := c.EndCapture()
	kind := DoubleQuote
	if quote == '\'' {
		kind = SingleQuote
	}
	return Token{Kind: kind, Text: text, Content: content, Span: c.Span(start)}, true, nil
}
