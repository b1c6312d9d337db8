// Package xjs implements the format-preserving XJS serializer. Given a
// value tree produced by parse/xjs, it reproduces blank-line counts,
// comments, value quoting styles, trailing-comma usage, and root-brace
// omission as recorded in each value's Metadata, so that serializing a
// freshly-parsed, untouched document keeps its line structure. Indentation
// follows Options.Indent, spacing within a line follows Options.Separator,
// key quoting follows Options.OmitQuotes, and a line break at the very end
// of the document is not written. Values constructed in memory (whose
// Metadata fields are still Unset) fall back to Options' defaults instead.
package xjs

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/simon-lentz/xjs/internal/trace"
	"github.com/simon-lentz/xjs/value"
)

// Options controls formatting choices applied where a value's own
// Metadata does not specify one (Unset fields, or values built
// programmatically rather than parsed).
type Options struct {
	// Indent is the per-level indentation string used for multi-line
	// containers and triple-quoted string bodies.
	Indent string
	// EOL is the newline sequence written between lines. Empty (the zero
	// value) is treated as "\n".
	EOL string
	// Separator is the inter-token spacing string emitted between a key's
	// ':' and its value, and between inline container elements (alongside
	// their ','). Empty produces compact output.
	Separator string
	// AllowCondense permits a container to be rendered on a single line
	// when its first and last child both qualify as same-line (see the
	// condensation scan in shouldCondense). False always expands.
	AllowCondense bool
	// BracesSameLine, when true, opens an object or array member's value on
	// the key's own line. When false, the opening brace/bracket starts on
	// a fresh line at the key's indent.
	BracesSameLine bool
	// OmitRootBraces suppresses the outermost '{' '}' for a root object,
	// in addition to any root-omission already recorded on the value's own
	// Metadata from parsing.
	OmitRootBraces bool
	// OutputComments controls whether header, end-of-line, footer, and
	// interior comments are emitted at all.
	OutputComments bool
	// OmitQuotes controls whether object keys that are safe to write
	// unquoted (simple identifiers) are emitted without quotes.
	OmitQuotes bool
	// DefaultSpacing is used for a member whose LinesAbove metadata is
	// Unset.
	DefaultSpacing int
	// MinSpacing and MaxSpacing clamp the number of blank lines emitted
	// above a member, after DefaultSpacing substitution. Zero means "no
	// clamp" on that end.
	MinSpacing int
	MaxSpacing int
	// SmartSpacing adds one extra blank line around an object member whose
	// value is itself a container, to set it off from scalar neighbors.
	SmartSpacing bool
	// NextLineMulti, when true, starts a triple-quoted string's opening
	// delimiter on a new line after the ':' rather than on the key's line.
	NextLineMulti bool
	// DefaultTrailingComma controls whether a container's last member gets
	// a trailing comma when the container's Flags were never initialized
	// (a zero Metadata). Containers parsed from source or created with the
	// value package's constructors carry initialized Flags, so their own
	// FlagTrailingComma decides and this option has no effect on them.
	DefaultTrailingComma bool
	// Logger, when non-nil, receives debug-level tracing of condensation
	// decisions via internal/trace. Nil (the default) disables tracing.
	Logger *slog.Logger
}

// Default reproduces the conventional XJS style: two-space indent, no
// forced blank lines, no trailing commas, unquoted keys where safe,
// same-line braces, condensation allowed, comments emitted.
var Default = Options{
	Indent:         "  ",
	Separator:      " ",
	AllowCondense:  true,
	BracesSameLine: true,
	OutputComments: true,
	OmitQuotes:     true,
}

// Write renders v as XJS text using opts.
func Write(v *value.Value, opts Options) string {
	ctx := context.Background()
	op := trace.Begin(ctx, opts.Logger, "xjs.write.xjs")
	var b strings.Builder
	w := &writer{b: &b, opts: opts, ctx: ctx}
	w.writeTop(v)
	out := b.String()
	if opts.EOL != "" && opts.EOL != "\n" {
		out = strings.ReplaceAll(out, "\n", opts.EOL)
	}
	op.End(nil, slog.Int("bytes", len(out)))
	return out
}

type writer struct {
	b    *strings.Builder
	opts Options
	ctx  context.Context //nolint:containedctx // threaded to internal/trace calls only
}

var unquotedKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)
var reservedWords = map[string]bool{"true": true, "false": true, "null": true}

func isSafeUnquoted(s string) bool {
	if s == "" || reservedWords[s] {
		return false
	}
	return unquotedKeyPattern.MatchString(s)
}

// writeTop renders the document's root object, honoring root-brace
// omission recorded on its Metadata or forced by OmitRootBraces.
func (w *writer) writeTop(v *value.Value) {
	if v == nil || !v.IsObject() {
		w.writeValue(v, 0)
		return
	}
	obj, _ := v.AsObject()
	w.writeHeaderComment(obj.Meta(), 0)
	omitRoot := w.opts.OmitRootBraces || obj.Meta().Flags.Has(value.FlagRootOmitted)
	if omitRoot {
		w.writeObjectBody(obj, 0, true)
		return
	}
	w.b.WriteByte('{')
	w.writeObjectBody(obj, 1, obj.Len() == 0)
	if obj.Len() > 0 && !w.condensedObject(obj) {
		w.newline(0)
	}
	w.b.WriteByte('}')
}

func (w *writer) newline(depth int) {
	w.b.WriteByte('\n')
	for i := 0; i < depth; i++ {
		w.b.WriteString(w.opts.Indent)
	}
}

// effectiveSameLine reports whether a child qualifies as "same line as
// whatever preceded it" for condensation purposes. A value's LinesAbove
// metadata cannot by itself distinguish "no blank line, next line" from
// "no blank line, same line" - both record 0 - so a parsed child instead
// carries FlagSameLine, set from the reader's actual line-crossing. A
// child that was never parsed (LinesAbove still Unset) has no such
// record, and falls back to whatever the configured default spacing would
// itself produce.
func effectiveSameLine(meta *value.Metadata, opts Options) bool {
	if meta.LinesAbove == value.Unset {
		return opts.DefaultSpacing == 0
	}
	return meta.Flags.Has(value.FlagSameLine)
}

// shouldCondense decides, at serialize time, whether a container renders
// on a single line: scanning whether its first and last child both
// qualify as same-line, rather than trusting any single precomputed
// container-level bit.
func (w *writer) shouldCondense(firstMeta, lastMeta *value.Metadata) bool {
	if !w.opts.AllowCondense {
		return false
	}
	decision := effectiveSameLine(firstMeta, w.opts) && effectiveSameLine(lastMeta, w.opts)
	trace.DebugLazy(w.ctx, w.opts.Logger, "condensation decided", func() []slog.Attr {
		return []slog.Attr{slog.Bool("condensed", decision)}
	})
	return decision
}

func (w *writer) condensedObject(obj *value.Object) bool {
	if obj.Len() == 0 {
		return false
	}
	first := mustGetRef(obj, 0).Visit().Meta()
	last := mustGetRef(obj, obj.Len()-1).Visit().Meta()
	return w.shouldCondense(first, last)
}

func (w *writer) condensedArray(arr *value.Array, items []*value.Reference) bool {
	if len(items) == 0 {
		return false
	}
	first := items[0].Visit().Meta()
	last := items[len(items)-1].Visit().Meta()
	return w.shouldCondense(first, last)
}

func (w *writer) linesAbove(meta *value.Metadata) int {
	n := meta.LinesAbove
	if n == value.Unset {
		n = w.opts.DefaultSpacing
	}
	if w.opts.MaxSpacing > 0 && n > w.opts.MaxSpacing {
		n = w.opts.MaxSpacing
	}
	if w.opts.MinSpacing > 0 && n < w.opts.MinSpacing {
		n = w.opts.MinSpacing
	}
	return n
}

func (w *writer) wantsTrailingComma(flags value.Flags) bool {
	if !flags.IsInitialized() {
		return w.opts.DefaultTrailingComma
	}
	return flags.Has(value.FlagTrailingComma)
}

// wantsCommaAfter reports whether a non-last member or element should be
// followed by a ',' rather than relying on a line break alone. Flags that
// were never initialized (a zero Metadata) default to true; values created
// with the value package's constructors start with initialized Flags and
// get a ',' only when FlagCommaAfter is set.
func (w *writer) wantsCommaAfter(flags value.Flags) bool {
	if !flags.IsInitialized() {
		return true
	}
	return flags.Has(value.FlagCommaAfter)
}

// inlineJoin is the separator written between condensed/inline sibling
// elements, pairing a literal ',' with the configured inter-token spacing.
func (w *writer) inlineJoin() string {
	return "," + w.opts.Separator
}

// writeObjectBody writes an object's members, one per line (or inline when
// the object condenses), without the surrounding braces; an empty object
// writes only its interior comment. bare is true for a root-omitted
// document, whose first member gets no preceding line break (only its
// recorded leading blank lines), and for an empty braced object; a
// non-empty braced object passes false, which starts every member on a new
// line unless the object condenses.
func (w *writer) writeObjectBody(obj *value.Object, depth int, bare bool) {
	keys := obj.Keys()
	if len(keys) == 0 {
		w.writeEmptyInterior(obj.Meta(), depth)
		return
	}
	if !bare && w.condensedObject(obj) {
		w.writeObjectInline(obj, keys, depth)
		return
	}
	prevWasContainer := false
	for i, k := range keys {
		ref := mustGetRef(obj, i)
		val := ref.Visit()
		meta := val.Meta()
		isContainer := val.IsContainer()

		extra := 0
		if w.opts.SmartSpacing && (isContainer || prevWasContainer) {
			extra = 1
		}

		if i > 0 || !bare {
			for n := 0; n < w.linesAbove(meta)+extra+1; n++ {
				w.newline(depth)
			}
		} else if bare && depth == 0 {
			// First member of a root-omitted document: no leading newline,
			// but still honor recorded leading blank lines.
			for n := 0; n < w.linesAbove(meta)+extra; n++ {
				w.newline(depth)
			}
		}

		w.writeHeaderComment(meta, depth)
		w.writeKey(k)
		w.b.WriteByte(':')
		w.writeMemberSeparator(val, depth)
		w.writeValue(val, depth)

		last := i == len(keys)-1
		writeComma := w.wantsTrailingComma(obj.Meta().Flags)
		if !last {
			writeComma = w.wantsCommaAfter(meta.Flags)
		}
		if writeComma {
			w.b.WriteByte(',')
		}
		w.writeEolComment(meta)
		prevWasContainer = isContainer
	}
	w.writeFooterComment(obj.Meta(), depth)
}

// writeMemberSeparator writes whatever belongs between a member's ':' and
// its value: the configured separator, unless the value is a container and
// BracesSameLine is disabled, in which case the opener starts on its own
// line at the key's indent.
func (w *writer) writeMemberSeparator(val *value.Value, depth int) {
	if val.IsContainer() && !w.opts.BracesSameLine {
		w.newline(depth)
		return
	}
	w.b.WriteString(w.opts.Separator)
}

// writeObjectInline renders every member of obj on one line, separated by
// the configured inline join, for a container whose children all qualify
// as same-line.
func (w *writer) writeObjectInline(obj *value.Object, keys []string, depth int) {
	for i, k := range keys {
		if i > 0 {
			w.b.WriteString(w.inlineJoin())
		}
		ref := mustGetRef(obj, i)
		w.writeKey(k)
		w.b.WriteByte(':')
		w.b.WriteString(w.opts.Separator)
		w.writeValue(ref.Visit(), depth)
	}
	if w.wantsTrailingComma(obj.Meta().Flags) {
		w.b.WriteByte(',')
	}
}

func mustGetRef(obj *value.Object, i int) *value.Reference {
	_, ref, err := obj.At(i)
	if err != nil {
		return value.NewReference(value.NewNull())
	}
	return ref
}

func (w *writer) writeEmptyInterior(meta *value.Metadata, depth int) {
	if !w.opts.OutputComments || meta.Comments == nil {
		return
	}
	text, ok := meta.Comments.Get(value.SlotInterior)
	if !ok {
		return
	}
	w.newline(depth)
	w.b.WriteString(text)
}

func (w *writer) writeHeaderComment(meta *value.Metadata, depth int) {
	if !w.opts.OutputComments || meta.Comments == nil {
		return
	}
	text, ok := meta.Comments.Get(value.SlotHeader)
	if !ok {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		w.b.WriteString(line)
		w.newline(depth)
	}
}

func (w *writer) writeEolComment(meta *value.Metadata) {
	if !w.opts.OutputComments || meta.Comments == nil {
		return
	}
	text, ok := meta.Comments.Get(value.SlotEol)
	if !ok {
		return
	}
	w.b.WriteString(w.opts.Separator)
	w.b.WriteString(text)
}

func (w *writer) writeFooterComment(meta *value.Metadata, depth int) {
	if !w.opts.OutputComments || meta.Comments == nil {
		return
	}
	text, ok := meta.Comments.Get(value.SlotFooter)
	if !ok {
		return
	}
	for n := 0; n < meta.LinesTrailing; n++ {
		w.newline(depth)
	}
	w.newline(depth)
	w.b.WriteString(text)
}

func (w *writer) writeKey(k string) {
	if w.opts.OmitQuotes && isSafeUnquoted(k) {
		w.b.WriteString(k)
		return
	}
	w.writeDoubleQuoted(k)
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
		w.writeString(v)
	case value.KindArray:
		w.writeArray(v, depth)
	case value.KindObject:
		w.writeNestedObject(v, depth)
	}
}

func (w *writer) writeString(v *value.Value) {
	s, style, _ := v.AsString()
	switch style {
	case value.StyleSingle:
		w.writeSingleQuoted(s)
	case value.StyleTriple:
		w.writeTripleQuoted(s)
	case value.StyleImplicit:
		if isSafeImplicit(s) {
			w.b.WriteString(s)
		} else {
			w.writeDoubleQuoted(s)
		}
	default:
		w.writeDoubleQuoted(s)
	}
}

var unsafeImplicitChars = regexp.MustCompile(`[,\n\r{}\[\]"']`)

func isSafeImplicit(s string) bool {
	if s == "" {
		return false
	}
	if r := []rune(s)[0]; r == ' ' || r == '\t' {
		return false
	}
	return !unsafeImplicitChars.MatchString(s)
}

func (w *writer) writeDoubleQuoted(s string) {
	w.b.WriteString(strconv.Quote(s))
}

func (w *writer) writeSingleQuoted(s string) {
	w.b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\', '\'':
			w.b.WriteByte('\\')
			w.b.WriteRune(r)
		case '\n':
			w.b.WriteString(`\n`)
		default:
			w.b.WriteRune(r)
		}
	}
	w.b.WriteByte('\'')
}

func (w *writer) writeTripleQuoted(s string) {
	if w.opts.NextLineMulti {
		w.newline(0)
	}
	w.b.WriteString(`"""`)
	w.b.WriteByte('\n')
	for _, line := range strings.Split(s, "\n") {
		if line != "" {
			w.b.WriteString(w.opts.Indent)
			w.b.WriteString(line)
		}
		w.b.WriteByte('\n')
	}
	w.b.WriteString(`"""`)
}

func (w *writer) writeArray(v *value.Value, depth int) {
	arr, _ := v.AsArray()
	items := arr.Items()
	w.b.WriteByte('[')
	if len(items) == 0 {
		w.writeEmptyInterior(arr.Meta(), depth)
		w.b.WriteByte(']')
		return
	}
	if w.condensedArray(arr, items) {
		w.writeArrayInline(arr, items, depth)
		w.b.WriteByte(']')
		return
	}
	for i, ref := range items {
		val := ref.Visit()
		meta := val.Meta()
		for n := 0; n < w.linesAbove(meta)+1; n++ {
			w.newline(depth + 1)
		}
		w.writeHeaderComment(meta, depth+1)
		w.writeValue(val, depth+1)

		last := i == len(items)-1
		writeComma := w.wantsTrailingComma(arr.Meta().Flags)
		if !last {
			writeComma = w.wantsCommaAfter(meta.Flags)
		}
		if writeComma {
			w.b.WriteByte(',')
		}
		w.writeEolComment(meta)
	}
	w.writeFooterComment(arr.Meta(), depth+1)
	w.newline(depth)
	w.b.WriteByte(']')
}

// writeArrayInline renders every element on one line, separated by the
// configured inline join, for an array whose children all qualify as
// same-line.
func (w *writer) writeArrayInline(arr *value.Array, items []*value.Reference, depth int) {
	for i, ref := range items {
		if i > 0 {
			w.b.WriteString(w.inlineJoin())
		}
		w.writeValue(ref.Visit(), depth)
	}
	if w.wantsTrailingComma(arr.Meta().Flags) {
		w.b.WriteByte(',')
	}
}

func (w *writer) writeNestedObject(v *value.Value, depth int) {
	obj, _ := v.AsObject()
	w.b.WriteByte('{')
	w.writeObjectBody(obj, depth+1, obj.Len() == 0)
	if obj.Len() > 0 && !w.condensedObject(obj) {
		w.newline(depth)
	}
	w.b.WriteByte('}')
}
