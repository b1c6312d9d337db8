package reader

import (
	"unicode/utf8"

	"github.com/simon-lentz/xjs/location"
)

const eof = -1

// Cursor is a position-tracking reader over a single document's raw bytes.
// It is not safe for concurrent use; each parse operates through its own
// Cursor.
type Cursor struct {
	source location.SourceID
	data   []byte

	byteOffset int
	line       int
	column     int

	current   rune
	currentSz int
	atEOF     bool

	capturing   bool
	captureFrom int
	captureBuf  []byte

	linesSkipped int
}

// NewCursor returns a Cursor positioned at the start of data.
func NewCursor(source location.SourceID, data []byte) *Cursor {
	c := &Cursor{source: source, data: data, line: 1, column: 1}
	c.decode()
	return c
}

// Source returns the SourceID this cursor reads from.
func (c *Cursor) Source() location.SourceID { return c.source }

func (c *Cursor) decode() {
	if c.byteOffset >= len(c.data) {
		c.current = eof
		c.currentSz = 0
		c.atEOF = true
		return
	}
	r, sz := utf8.DecodeRune(c.data[c.byteOffset:])
	if r == utf8.RuneError && sz <= 1 {
		// Treat invalid UTF-8 as a single opaque byte so the cursor always
		// makes forward progress.
		r = rune(c.data[c.byteOffset])
		sz = 1
	}
	c.current = r
	c.currentSz = sz
	c.atEOF = false
}

// Position returns the cursor's current location.
func (c *Cursor) Position() location.Position {
	return location.Position{Line: c.line, Column: c.column, Byte: c.byteOffset}
}

// Span returns the half-open span from start to the cursor's current
// position.
func (c *Cursor) Span(start location.Position) location.Span {
	return location.Span{Source: c.source, Start: start, End: c.Position()}
}

// AtEOF reports whether the cursor has consumed every byte of input.
func (c *Cursor) AtEOF() bool { return c.atEOF }

// Current returns the rune under the cursor without consuming it, and
// whether one is available (false at EOF).
func (c *Cursor) Current() (rune, bool) {
	if c.atEOF {
		return 0, false
	}
	return c.current, true
}

// Peek returns the rune offset runes ahead of the cursor without consuming
// anything, and whether one is available. Peek(0) is equivalent to
// Current.
func (c *Cursor) Peek(offset int) (rune, bool) {
	pos := c.byteOffset
	if offset == 0 {
		return c.Current()
	}
	r, sz := c.current, c.currentSz
	for i := 0; i < offset; i++ {
		pos += sz
		if pos >= len(c.data) {
			return 0, false
		}
		r, sz = utf8.DecodeRune(c.data[pos:])
		if r == utf8.RuneError && sz <= 1 {
			r, sz = rune(c.data[pos]), 1
		}
	}
	return r, true
}

// Read consumes and returns the rune under the cursor, advancing position
// tracking. It returns false if the cursor is already at EOF.
func (c *Cursor) Read() (rune, bool) {
	if c.atEOF {
		return 0, false
	}
	r := c.current
	if c.capturing {
		c.captureBuf = append(c.captureBuf, c.data[c.byteOffset:c.byteOffset+c.currentSz]...)
	}
	c.byteOffset += c.currentSz
	if r == '\n' {
		c.line++
		c.column = 1
	} else if r == '\r' {
		// Treat CRLF as one line break; bare CR also advances the line.
		c.line++
		c.column = 1
		if next, ok := c.peekRawAt(c.byteOffset); ok && next == '\n' {
			// consume the paired \n as part of the same break
			c.decode()
			if c.capturing {
				c.captureBuf = append(c.captureBuf, c.data[c.byteOffset:c.byteOffset+c.currentSz]...)
			}
			c.byteOffset += c.currentSz
		}
	} else {
		c.column++
	}
	c.decode()
	return r, true
}

func (c *Cursor) peekRawAt(offset int) (rune, bool) {
	if offset >= len(c.data) {
		return 0, false
	}
	r, sz := utf8.DecodeRune(c.data[offset:])
	if r == utf8.RuneError && sz <= 1 {
		return rune(c.data[offset]), true
	}
	return r, true
}

// ReadIf consumes and returns true if the current rune equals want;
// otherwise it consumes nothing and returns false.
func (c *Cursor) ReadIf(want rune) bool {
	if r, ok := c.Current(); ok && r == want {
		c.Read()
		return true
	}
	return false
}

// Expect consumes the current rune if it equals want, returning a
// *SyntaxError if it does not (or the cursor is at EOF).
func (c *Cursor) Expect(want rune) error {
	start := c.Position()
	r, ok := c.Current()
	if !ok {
		return c.errorf(start, "expected %q, found end of input", want)
	}
	if r != want {
		return c.errorf(start, "expected %q, found %q", want, r)
	}
	c.Read()
	return nil
}

// StartCapture begins accumulating the raw bytes of every rune Read from
// this point on, discarding anything captured by a previous, unended
// capture.
func (c *Cursor) StartCapture() {
	c.capturing = true
	c.captureFrom = c.byteOffset
	c.captureBuf = c.captureBuf[:0]
}

// PauseCapture stops accumulating bytes without discarding what has been
// captured so far; a later EndCapture still returns the buffer frozen at
// the point of the pause.
func (c *Cursor) PauseCapture() {
	c.capturing = false
}

// EndCapture stops capturing (if still active) and returns the bytes
// accumulated since StartCapture, up to whichever Read last ran or the
// point of a prior PauseCapture.
func (c *Cursor) EndCapture() string {
	c.capturing = false
	s := string(c.captureBuf)
	c.captureBuf = nil
	return s
}
