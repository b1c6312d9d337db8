// Package reader implements the position-tracking cursor every parser in
// this module reads through. The cursor decodes one rune at a time,
// maintains line/column/byte coordinates as it goes, and exposes a small
// capture mechanism so a parser can mark a span of input and later recover
// exactly the text (or, paused partway, a prefix of it) that cursor
// traversed.
//
// Every failure mode surfaces as a *SyntaxError carrying the span at which
// it was detected; there are no panics on malformed input.
//
// See cursor.go for the Cursor type and its primitives (Read, ReadIf,
// Expect, Peek, capture), and scan.go for the higher-level scanning built
// on top of it: numbers, quoted and triple-quoted strings, the three
// comment styles, and whitespace/newline skipping.
package reader
