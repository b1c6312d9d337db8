// Package json implements a strict JSON serializer: no comments, no
// trailing commas, no unquoted keys, double-quoted strings only. It never
// consults a value's formatting metadata (line counts, comment slots); use
// write/xjs for format-preserving output.
package json

import (
	"strconv"
	"strings"

	"github.com/simon-lentz/xjs/value"
)

// Options controls the strict JSON serializer's output shape.
type Options struct {
	// Indent is the per-level indentation string. An empty Indent (the
	// zero value) produces compact, single-line output.
	Indent string
}

// Compact is the zero-configuration option set: no indentation, no
// newlines.
var Compact = Options{}

// Pretty indents with two spaces per level.
var Pretty = Options{Indent: "  "}

// Write renders v as strict JSON text using opts.
func Write(v *value.Value, opts Options) string {
	var b strings.Builder
	w := &writer{b: &b, opts: opts}
	w.writeValue(v, 0)
	return b.String()
}

type writer struct {
	b    *strings.Builder
	opts Options
}

func (w *writer) newline(depth int) {
	if w.opts.Indent == "" {
		return
	}
	w.b.WriteByte('\n')
	for i := 0; i < depth; i++ {
		w.b.WriteString(w.opts.Indent)
	}
}

func (w *writer) writeValue(v *value.Value, depth int) {
	if v == nil {
		w.b.WriteString("null")
		return
	}
	switch v.Kind() {
	case value.KindNull:
		w.b.WriteString("null")
	case value.KindBool:
		b, _ := v.AsBool()
		if b {
			w.b.WriteString("true")
		} else {
			w.b.WriteString("false")
		}
	case value.KindInteger:
		i, _ := v.AsInteger()
		w.b.WriteString(strconv.FormatInt(i, 10))
	case value.KindDecimal:
		d, _ := v.AsDecimal()
		w.b.WriteString(strconv.FormatFloat(d, 'g', -1, 64))
	case value.KindString:
		s, _, _ := v.AsString()
		w.writeQuoted(s)
	case value.KindArray:
		w.writeArray(v, depth)
	case value.KindObject:
		w.writeObject(v, depth)
	}
}

func (w *writer) writeQuoted(s string) {
	w.b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\' || strings.ContainsRune("\b\f\n\r\t", r):
			q := strconv.Quote(string(r))
			w.b.WriteString(q[1 : len(q)-1])
		case r < 0x20:
			w.b.WriteString(`\u00` + strconv.FormatInt(int64(r)+0x100, 16)[1:])
		default:
			w.b.WriteRune(r)
		}
	}
	w.b.WriteByte('"')
}

func (w *writer) writeArray(v *value.Value, depth int) {
	arr, _ := v.AsArray()
	w.b.WriteByte('[')
	items := arr.Items()
	for i, ref := range items {
		if i > 0 {
			w.b.WriteByte(',')
		}
		w.newline(depth + 1)
		w.writeValue(ref.Visit(), depth+1)
	}
	if len(items) > 0 {
		w.newline(depth)
	}
	w.b.WriteByte(']')
}

func (w *writer) writeObject(v *value.Value, depth int) {
	obj, _ := v.AsObject()
	w.b.WriteByte('{')
	written := 0
	first := true
	for i := 0; ; i++ {
		// Every member is emitted in source order, including repeated keys -
		// lookup is last-wins, but serialization preserves all pairs.
		k, ref, err := obj.At(i)
		if err != nil {
			break
		}
		if !first {
			w.b.WriteByte(',')
		}
		first = false
		w.newline(depth + 1)
		w.writeQuoted(k)
		w.b.WriteByte(':')
		if w.opts.Indent != "" {
			w.b.WriteByte(' ')
		}
		w.writeValue(ref.Visit(), depth+1)
		written++
	}
	if written > 0 {
		w.newline(depth)
	}
	w.b.WriteByte('}')
}
