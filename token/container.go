package token

import (
	"fmt"

	"github.com/simon-lentz/xjs/location"
)

var closeOf = map[rune]rune{'{': '}', '[': ']', '(': ')'}
var openOf = map[rune]rune{'}': '{', ']': '[', ')': '('}

// UnclosedContainerError reports a Container whose opener never found a
// matching closer before the token stream ran out. It is raised at the
// opener's own span, not at end of input, so diagnostics point at the
// delimiter that needs fixing.
type UnclosedContainerError struct {
	Open rune
	Span location.Span
}

func (e *UnclosedContainerError) Error() string {
	return fmt.Sprintf("%s: unclosed %q", e.Span.Start, e.Open)
}

// UnmatchedCloserError reports a closing delimiter with no corresponding
// opener anywhere above it.
type UnmatchedCloserError struct {
	Close rune
	Span  location.Span
}

func (e *UnmatchedCloserError) Error() string {
	return fmt.Sprintf("%s: unmatched %q", e.Span.Start, e.Close)
}

// Containerize consumes every token from t and returns them grouped into a
// tree: every matched {}, [], or () pair becomes a single Container token
// whose Children holds the (recursively containerized) tokens found
// strictly between the delimiters. Tokens outside any bracket pair are
// returned as-is alongside the Container tokens, in original order.
func Containerize(t *Tokenizer) ([]Token, error) {
	toks, _, err := containerizeUntil(t, 0)
	return toks, err
}

// containerizeUntil reads tokens until EOF or an unmatched closing symbol
// is found. depth is used only to decide whether an unmatched closer here
// is an error (top level, depth 0, has no opener to report against) versus
// a normal "end of this container" signal (depth > 0, the caller already
// knows the opener).
func containerizeUntil(t *Tokenizer, depth int) ([]Token, *Token, error) {
	var out []Token
	for {
		tok, ok, err := t.Next()
		if err != nil {
			return out, nil, err
		}
		if !ok {
			return out, nil, nil
		}
		if tok.Kind == Symbol && len(tok.Text) == 1 {
			r := rune(tok.Text[0])
			if _, isOpen := closeOf[r]; isOpen {
				children, closer, err := containerizeUntil(t, depth+1)
				if err != nil {
					return out, nil, err
				}
				if closer == nil {
					return out, nil, &UnclosedContainerError{Open: r, Span: tok.Span}
				}
				out = append(out, Token{
					Kind:     Container,
					Open:     r,
					Close:    rune(closer.Text[0]),
					Children: children,
					Span:     location.Span{Source: tok.Span.Source, Start: tok.Span.Start, End: closer.Span.End},
				})
				continue
			}
			if _, isClose := openOf[r]; isClose {
				if depth == 0 {
					return out, nil, &UnmatchedCloserError{Close: r, Span: tok.Span}
				}
				closerCopy := tok
				return out, &closerCopy, nil
			}
		}
		out = append(out, tok)
	}
}
