package reader

import (
	"strings"

	"github.com/simon-lentz/xjs/internal/textlit"
)

// ReadNumber consumes a JSON-shaped number literal (optional leading '-',
// digits, optional fractional part, optional exponent) and returns its raw
// text. It does not interpret the text as int64 or float64; callers decide
// which based on whether a '.' or exponent was present.
func (c *Cursor) ReadNumber() (string, error) {
	start := c.Position()
	c.StartCapture()

	if r, ok := c.Current(); ok && r == '-' {
		c.Read()
	}
	digitsRead := 0
	for {
		r, ok := c.Current()
		if !ok || r < '0' || r > '9' {
			break
		}
		c.Read()
		digitsRead++
	}
	if digitsRead == 0 {
		text := c.EndCapture()
		return text, c.errorf(start, "expected digit in number literal, found %q", text)
	}
	if r, ok := c.Current(); ok && r == '.' {
		c.Read()
		fracDigits := 0
		for {
			r, ok := c.Current()
			if !ok || r < '0' || r > '9' {
				break
			}
			c.Read()
			fracDigits++
		}
		if fracDigits == 0 {
			return c.EndCapture(), c.errorf(start, "expected digit after decimal point")
		}
	}
	if r, ok := c.Current(); ok && (r == 'e' || r == 'E') {
		c.Read()
		if r, ok := c.Current(); ok && (r == '+' || r == '-') {
			c.Read()
		}
		expDigits := 0
		for {
			r, ok := c.Current()
			if !ok || r < '0' || r > '9' {
				break
			}
			c.Read()
			expDigits++
		}
		if expDigits == 0 {
			return c.EndCapture(), c.errorf(start, "expected digit in exponent")
		}
	}
	return c.EndCapture(), nil
}

// ReadQuoted consumes a string literal delimited by quote on both ends
// (the opening quote must already have been consumed by the caller) and
// returns its unescaped content. Escape sequences are processed the same
// way internal/textlit does for single- and double-quoted text.
func (c *Cursor) ReadQuoted(quote rune) (string, error) {
	start := c.Position()
	var raw strings.Builder
	for {
		r, ok := c.Current()
		if !ok {
			return "", c.errorf(start, "unterminated string literal")
		}
		if r == quote {
			c.Read()
			break
		}
		if r == '\\' {
			c.Read()
			esc, ok := c.Current()
			if !ok {
				return "", c.errorf(start, "unterminated escape sequence")
			}
			raw.WriteByte('\\')
			raw.WriteRune(esc)
			c.Read()
			continue
		}
		if r == '\n' {
			return "", c.errorf(start, "unterminated string literal: raw newline")
		}
		raw.WriteRune(r)
		c.Read()
	}
	literal := string(quote) + raw.String() + string(quote)
	content, err := textlit.ConvertString(literal)
	if err != nil {
		return "", c.errorf(start, "invalid escape sequence: %v", err)
	}
	return content, nil
}

// ReadMulti consumes a triple-quoted string literal. The opening `"""` (or
// `'''`) must already have been consumed by the caller; delim is that
// three-rune sequence's single rune. Indentation shared by every non-blank
// line is stripped, and a single leading/trailing line break immediately
// inside the delimiters is removed (a final line holding only whitespace,
// the closing delimiter's own indentation, is dropped with it).
func (c *Cursor) ReadMulti(delim rune) (string, error) {
	start := c.Position()
	var raw strings.Builder
	closing := 0
	for {
		r, ok := c.Current()
		if !ok {
			return "", c.errorf(start, "unterminated triple-quoted string literal")
		}
		if r == delim {
			closing++
			c.Read()
			if closing == 3 {
				break
			}
			continue
		}
		for closing > 0 {
			raw.WriteRune(delim)
			closing--
		}
		raw.WriteRune(r)
		c.Read()
	}
	return dedent(raw.String()), nil
}

func dedent(s string) string {
	s = strings.TrimPrefix(s, "\n")
	lines := strings.Split(s, "\n")
	// A final line containing only whitespace is the indentation that lined
	// up the closing delimiter, not content; drop it along with its newline.
	if len(lines) > 1 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return strings.Join(lines, "\n")
	}
	for i, line := range lines {
		if len(line) >= minIndent {
			lines[i] = line[minIndent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}

// ReadLineComment consumes a `//`-introduced comment (the `//` must
// already have been consumed) through, but not including, the line break
// that ends it, and returns the full comment text including the `//`
// introducer.
func (c *Cursor) ReadLineComment() string {
	var b strings.Builder
	b.WriteString("//")
	for {
		r, ok := c.Current()
		if !ok || r == '\n' || r == '\r' {
			break
		}
		b.WriteRune(r)
		c.Read()
	}
	return b.String()
}

// ReadHashComment consumes a `#`-introduced comment (the `#` must already
// have been consumed) the same way ReadLineComment does for `//`.
func (c *Cursor) ReadHashComment() string {
	var b strings.Builder
	b.WriteByte('#')
	for {
		r, ok := c.Current()
		if !ok || r == '\n' || r == '\r' {
			break
		}
		b.WriteRune(r)
		c.Read()
	}
	return b.String()
}

// ReadBlockComment consumes a `/* ... */` comment (the `/*` must already
// have been consumed) and returns its full text including both delimiters.
func (c *Cursor) ReadBlockComment() (string, error) {
	start := c.Position()
	var b strings.Builder
	b.WriteString("/*")
	for {
		r, ok := c.Current()
		if !ok {
			return "", c.errorf(start, "unterminated block comment")
		}
		if r == '*' {
			if next, ok := c.Peek(1); ok && next == '/' {
				c.Read()
				c.Read()
				b.WriteString("*/")
				return b.String(), nil
			}
		}
		b.WriteRune(r)
		c.Read()
	}
}

// SkipWhitespace consumes spaces, tabs, and line breaks, counting how many
// blank lines (a line break immediately followed by another line break,
// modulo intervening horizontal whitespace) were skipped; that count is
// recoverable via LinesSkipped and is how parsers recover LinesAbove
// metadata.
func (c *Cursor) SkipWhitespace() {
	c.linesSkipped = 0
	breaksOnCurrentLine := 0
	for {
		r, ok := c.Current()
		if !ok {
			return
		}
		switch r {
		case ' ', '\t':
			c.Read()
		case '\n', '\r':
			c.Read()
			breaksOnCurrentLine++
			if breaksOnCurrentLine > 1 {
				c.linesSkipped++
			}
		default:
			return
		}
	}
}

// LinesSkipped returns the number of blank lines consumed by the most
// recent call to SkipWhitespace.
func (c *Cursor) LinesSkipped() int {
	return c.linesSkipped
}

// SkipLineWhitespace consumes spaces and tabs only, stopping at the first
// line break or non-whitespace rune.
func (c *Cursor) SkipLineWhitespace() {
	for {
		r, ok := c.Current()
		if !ok || (r != ' ' && r != '\t') {
			return
		}
		c.Read()
	}
}

// SkipToNewline consumes runes up to, but not including, the next line
// break (or EOF).
func (c *Cursor) SkipToNewline() {
	for {
		r, ok := c.Current()
		if !ok || r == '\n' || r == '\r' {
			return
		}
		c.Read()
	}
}

// SkipToOffset consumes up to n non-newline whitespace characters (spaces
// and tabs), stopping early at the first non-whitespace rune, line break,
// or end of input.
func (c *Cursor) SkipToOffset(n int) {
	for i := 0; i < n; i++ {
		r, ok := c.Current()
		if !ok || (r != ' ' && r != '\t') {
			return
		}
		c.Read()
	}
}
