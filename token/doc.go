// Package token lazily tokenizes a reader.Cursor (see tokenizer.go) and
// provides a second pass, Containerize (see container.go), that groups the
// flat token stream into a tree of matched {}, [], and () pairs. An
// unclosed opener or an unmatched closer is reported at the delimiter
// responsible, not at end of input.
package token
