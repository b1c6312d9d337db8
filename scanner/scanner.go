// Package scanner recognizes unquoted (implicit) key and value tokens
// directly against a reader.Cursor. Unlike the token package's Word
// splitting, which stops at every structural symbol, the implicit-string
// scanner only stops at the delimiter that actually ends the token in its
// context - an unescaped ':' for a key, an unescaped ',' or line break (or
// an unbalanced closing bracket) for a value - so that things like bare
// URLs, unquoted paths, and parenthesized expressions survive intact.
package scanner

import (
	"strings"

	"github.com/simon-lentz/xjs/location"
	"github.com/simon-lentz/xjs/reader"
)

// Context selects which termination rule applies.
type Context int

const (
	// Key scanning stops at the first unescaped, unbalanced ':'.
	Key Context = iota
	// Value scanning stops at the first unescaped, unbalanced ',' or line
	// break, or at an unbalanced closing bracket.
	Value
)

var openers = map[rune]rune{'{': '}', '[': ']', '(': ')'}
var closers = map[rune]bool{'}': true, ']': true, ')': true}

// Result is the outcome of a single ScanImplicit call.
type Result struct {
	// Text is the raw source text of the token, including any embedded
	// quoted substrings or backslash escapes verbatim - this is what the
	// format-preserving serializer writes back out unchanged.
	Text string
	Span location.Span
}

// ScanImplicit consumes an unquoted token from c under the given context
// and returns its raw text. It treats quoted substrings as opaque (their
// content, including any ':' or ',' inside, is copied through without
// being interpreted as a delimiter) and tracks a virtual bracket stack so
// a balanced (...), [...], or {...} embedded in the token does not
// terminate it early. A backslash escapes the rune that follows it: the
// pair is copied through literally and never treated as a delimiter.
func (ctx Context) ScanImplicit(c *reader.Cursor) (Result, error) {
	start := c.Position()
	var stack []rune
	var text strings.Builder

	for {
		r, ok := c.Current()
		if !ok {
			break
		}

		if len(stack) == 0 {
			if ctx == Key && r == ':' {
				break
			}
			if ctx == Value && (r == ',' || r == '\n' || r == '\r') {
				break
			}
			if closers[r] {
				// An unbalanced closer always ends the token; the caller's
				// container-level parser consumes it next.
				break
			}
			if r == '/' {
				if next, ok := c.Peek(1); ok && (next == '/' || next == '*') {
					break
				}
			}
			if r == '#' {
				break
			}
		}

		switch {
		case r == '\\':
			text.WriteRune(r)
			c.Read()
			if esc, ok := c.Current(); ok {
				text.WriteRune(esc)
				c.Read()
			}
			continue
		case r == '"' || r == '\'':
			quoted, err := scanOpaqueQuoted(c, r)
			if err != nil {
				return Result{}, err
			}
			text.WriteString(quoted)
			continue
		case r == '{' || r == '[' || r == '(':
			stack = append(stack, openers[r])
			text.WriteRune(r)
			c.Read()
			continue
		case closers[r] && len(stack) > 0 && stack[len(stack)-1] == r:
			stack = stack[:len(stack)-1]
			text.WriteRune(r)
			c.Read()
			continue
		default:
			text.WriteRune(r)
			c.Read()
		}
	}

	raw := strings.TrimRight(text.String(), " \t")
	return Result{Text: raw, Span: c.Span(start)}, nil
}

// scanOpaqueQuoted copies a quoted substring (including its delimiters and
// any escapes inside it) through verbatim, without interpreting escapes, so
// the caller's output text is byte-identical to the source. It applies the
// same triple-quote lookahead as token.Tokenizer.readQuoteLike: a second
// quote rune immediately following the first is not itself the closing
// delimiter until a third one confirms it, so a triple-quoted substring
// embedded in an implicit token (e.g. `"""a"b"""`) is copied through as one
// opaque run instead of being mistaken for an empty string followed by more
// implicit text.
func scanOpaqueQuoted(c *reader.Cursor, quote rune) (string, error) {
	start := c.Position()
	var b strings.Builder
	b.WriteRune(quote)
	c.Read()

	second, ok := c.Current()
	if ok && second == quote {
		third, ok3 := c.Peek(1)
		if ok3 && third == quote {
			b.WriteRune(quote)
			b.WriteRune(quote)
			c.Read()
			c.Read()
			closing := 0
			for {
				r, ok := c.Current()
				if !ok {
					return "", &reader.SyntaxError{Span: c.Span(start), Message: "unterminated triple-quoted substring in implicit token"}
				}
				b.WriteRune(r)
				c.Read()
				if r == quote {
					closing++
					if closing == 3 {
						return b.String(), nil
					}
					continue
				}
				closing = 0
			}
		}
		// Empty string "" or ''.
		b.WriteRune(quote)
		c.Read()
		return b.String(), nil
	}

	for {
		r, ok := c.Current()
		if !ok {
			return "", &reader.SyntaxError{Span: c.Span(start), Message: "unterminated quoted substring in implicit token"}
		}
		if r == '\\' {
			b.WriteRune(r)
			c.Read()
			if esc, ok := c.Current(); ok {
				b.WriteRune(esc)
				c.Read()
			}
			continue
		}
		b.WriteRune(r)
		c.Read()
		if r == quote {
			break
		}
	}
	return b.String(), nil
}
