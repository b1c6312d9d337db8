// Package xjs implements the relaxed XJS parser: unquoted keys and values,
// trailing commas, single/double/triple quoting, //, #, and /* */
// comments, and an optional top-level pair of braces. Unlike parse/json,
// it records enough formatting metadata on every value - blank-line counts
// above it, a trailing-comma flag on its enclosing container, attached
// comments - that write/xjs can reproduce the document's layout when
// nothing has been edited.
package xjs

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/simon-lentz/xjs/diag"
	"github.com/simon-lentz/xjs/internal/trace"
	"github.com/simon-lentz/xjs/location"
	"github.com/simon-lentz/xjs/reader"
	"github.com/simon-lentz/xjs/scanner"
	"github.com/simon-lentz/xjs/value"
)

// Option configures an optional aspect of Parse, such as debug tracing.
type Option func(*parser)

// WithLogger attaches logger to the parse, enabling debug-level tracing of
// containerization and condensation decisions via internal/trace. A nil
// logger (the default) disables tracing at effectively zero cost.
func WithLogger(logger *slog.Logger) Option {
	return func(p *parser) { p.logger = logger }
}

// Parse parses data as an XJS document and returns the resulting value
// tree (always an object, even when the source omitted its root braces)
// alongside a diagnostic result.
func Parse(source location.SourceID, data []byte, opts ...Option) (*value.Value, *diag.Result) {
	p := &parser{cur: reader.NewCursor(source, data), issues: diag.NewCollectorUnlimited(), ctx: context.Background()}
	for _, opt := range opts {
		opt(p)
	}

	op := trace.Begin(p.ctx, p.logger, "xjs.parse.xjs", slog.Int("bytes", len(data)))
	defer op.End(nil)

	leading := p.collectLeading()

	rootOmitted := true
	if r, ok := p.cur.Current(); ok && r == '{' {
		rootOmitted = false
		p.cur.Read()
	}
	trace.Debug(p.ctx, p.logger, "root containerization decided", slog.Bool("root_omitted", rootOmitted))

	obj := p.parseObjectBody(rootOmitted)
	if rootOmitted {
		obj.Meta().Flags = obj.Meta().Flags.With(value.FlagRootOmitted)
	}
	if leading.hasComment {
		obj.Meta().Comments = ensureComments(obj.Meta().Comments)
		obj.Meta().Comments.Set(value.SlotHeader, leading.comment)
	}

	if !p.cur.AtEOF() {
		p.fail("unexpected trailing content after top-level value")
	}
	return value.NewObject(obj), p.issues.Result()
}

type parser struct {
	cur    *reader.Cursor
	issues *diag.Collector
	ctx    context.Context //nolint:containedctx // threaded to internal/trace calls only
	logger *slog.Logger
}

func (p *parser) fail(msg string) {
	p.issues.Collect(diag.NewIssue(diag.Error, diag.E_SYNTAX, msg).
		WithSpan(p.cur.Span(p.cur.Position())).
		Build())
}

func ensureComments(c *value.Comments) *value.Comments {
	if c == nil {
		return &value.Comments{}
	}
	return c
}

// leadingTrivia is whatever whitespace and comments were consumed before a
// value or member: how many blank lines preceded it, and the concatenated
// text of any comment lines immediately above it (no blank line between
// them and the thing they annotate).
type leadingTrivia struct {
	linesAbove int
	hasComment bool
	comment    string
}

// collectLeading consumes whitespace and any comments preceding the next
// piece of content, returning the number of blank lines and the text of a
// directly-adjacent comment block, if any.
func (p *parser) collectLeading() leadingTrivia {
	var out leadingTrivia
	out.linesAbove = 0
	var comments []string
	blankSinceComment := false

	for {
		p.cur.SkipWhitespace()
		out.linesAbove += p.cur.LinesSkipped()
		if p.cur.LinesSkipped() > 0 && len(comments) > 0 {
			blankSinceComment = true
		}

		r, ok := p.cur.Current()
		if !ok {
			break
		}
		if r == '/' {
			if next, ok2 := p.cur.Peek(1); ok2 && next == '/' {
				if blankSinceComment {
					comments = nil
					blankSinceComment = false
				}
				p.cur.Read()
				p.cur.Read()
				comments = append(comments, p.cur.ReadLineComment())
				continue
			}
			if next, ok2 := p.cur.Peek(1); ok2 && next == '*' {
				if blankSinceComment {
					comments = nil
					blankSinceComment = false
				}
				p.cur.Read()
				p.cur.Read()
				text, err := p.cur.ReadBlockComment()
				if err != nil {
					p.fail(err.Error())
					break
				}
				comments = append(comments, text)
				continue
			}
			break
		}
		if r == '#' {
			if blankSinceComment {
				comments = nil
				blankSinceComment = false
			}
			p.cur.Read()
			comments = append(comments, p.cur.ReadHashComment())
			continue
		}
		break
	}

	if len(comments) > 0 {
		out.hasComment = true
		out.comment = strings.Join(comments, "\n")
	}
	return out
}

// trailingEol looks for a same-line comment immediately following a value
// or delimiter, without consuming the line break that ends it.
func (p *parser) trailingEol() (string, bool) {
	p.cur.SkipLineWhitespace()
	r, ok := p.cur.Current()
	if !ok {
		return "", false
	}
	switch {
	case r == '/':
		if next, ok2 := p.cur.Peek(1); ok2 && next == '/' {
			p.cur.Read()
			p.cur.Read()
			return p.cur.ReadLineComment(), true
		}
		if next, ok2 := p.cur.Peek(1); ok2 && next == '*' {
			p.cur.Read()
			p.cur.Read()
			text, err := p.cur.ReadBlockComment()
			if err != nil {
				p.fail(err.Error())
				return "", false
			}
			return text, true
		}
	case r == '#':
		p.cur.Read()
		return p.cur.ReadHashComment(), true
	}
	return "", false
}

// parseObjectBody parses members until the matching '}' (braced == true) or
// until end of input (root-omitted document).
func (p *parser) parseObjectBody(rootOmitted bool) *value.Object {
	obj := value.NewEmptyObject()
	memberCount := 0
	prevLine := p.cur.Position().Line

	for {
		lead := p.collectLeading()
		sameLine := p.cur.Position().Line == prevLine

		r, ok := p.cur.Current()
		if !ok {
			if !rootOmitted {
				p.fail("unexpected end of input, expected '}'")
			}
			p.attachClosing(obj.Meta(), lead, memberCount)
			return obj
		}
		if r == '}' {
			if rootOmitted {
				p.fail("unexpected '}' with no matching '{'")
				return obj
			}
			p.attachClosing(obj.Meta(), lead, memberCount)
			p.cur.Read()
			return obj
		}

		key := p.parseKey()
		p.cur.SkipLineWhitespace()
		if err := p.cur.Expect(':'); err != nil {
			p.fail(err.Error())
		}
		p.cur.SkipWhitespace()
		v := p.parseValue()
		if v == nil {
			v = value.NewNull()
		}
		v.Meta().LinesAbove = lead.linesAbove
		if sameLine {
			v.Meta().Flags = v.Meta().Flags.With(value.FlagSameLine)
		} else {
			v.Meta().Flags = v.Meta().Flags.Without(value.FlagSameLine)
		}
		trace.DebugLazy(p.ctx, p.logger, "object member containerized", func() []slog.Attr {
			return []slog.Attr{slog.String("key", key), slog.Bool("same_line", sameLine), slog.Int("lines_above", lead.linesAbove)}
		})
		if lead.hasComment {
			v.Meta().Comments = ensureComments(v.Meta().Comments)
			v.Meta().Comments.Set(value.SlotHeader, lead.comment)
		}

		commaSeen := false
		p.cur.SkipLineWhitespace()
		if p.cur.ReadIf(',') {
			commaSeen = true
		}
		if eol, ok := p.trailingEol(); ok {
			v.Meta().Comments = ensureComments(v.Meta().Comments)
			v.Meta().Comments.Set(value.SlotEol, eol)
		}
		if !commaSeen {
			p.cur.SkipLineWhitespace()
			if p.cur.ReadIf(',') {
				commaSeen = true
			}
		}

		if commaSeen {
			v.Meta().Flags = v.Meta().Flags.With(value.FlagCommaAfter)
		} else {
			v.Meta().Flags = v.Meta().Flags.Without(value.FlagCommaAfter)
		}
		_ = obj.AppendMember(key, value.NewReference(v))
		memberCount++

		// This member's comma usage becomes the container's recorded
		// TrailingComma state; whichever member turns out to be last leaves
		// its own comma-or-not as the final value when the loop exits.
		if commaSeen {
			obj.Meta().Flags = obj.Meta().Flags.With(value.FlagTrailingComma)
		} else {
			obj.Meta().Flags = obj.Meta().Flags.Without(value.FlagTrailingComma)
		}
		prevLine = p.cur.Position().Line
	}
}

func (p *parser) attachClosing(meta *value.Metadata, lead leadingTrivia, memberCount int) {
	if !lead.hasComment {
		return
	}
	meta.Comments = ensureComments(meta.Comments)
	if memberCount == 0 {
		meta.Comments.Set(value.SlotInterior, lead.comment)
	} else {
		meta.Comments.Set(value.SlotFooter, lead.comment)
	}
}

// parseKey parses an object member's key: a quoted string in any of the
// three quote styles, or an unquoted (implicit) run of characters up to
// the first unescaped ':'.
func (p *parser) parseKey() string {
	r, ok := p.cur.Current()
	if !ok {
		p.fail("expected object key, found end of input")
		return ""
	}
	if r == '"' || r == '\'' {
		content, _ := p.parseQuotedLiteral(r)
		return content
	}
	res, err := scanner.Key.ScanImplicit(p.cur)
	if err != nil {
		p.fail(err.Error())
		return ""
	}
	if res.Text == "" {
		p.issues.Collect(diag.NewIssue(diag.Error, diag.E_EMPTY_IMPLICIT_STRING, "object key cannot be empty").
			WithSpan(res.Span).Build())
	}
	return res.Text
}

// parseQuotedLiteral parses a single/double/triple-quoted string starting
// at the opening quote rune and returns its content and style.
func (p *parser) parseQuotedLiteral(quote rune) (string, value.StringStyle) {
	p.cur.Read()
	if next, ok := p.cur.Current(); ok && next == quote {
		if third, ok3 := p.cur.Peek(1); ok3 && third == quote {
			p.cur.Read()
			p.cur.Read()
			content, err := p.cur.ReadMulti(quote)
			if err != nil {
				p.fail(err.Error())
				return "", value.StyleTriple
			}
			return content, value.StyleTriple
		}
		p.cur.Read() // empty string
		style := value.StyleDouble
		if quote == '\'' {
			style = value.StyleSingle
		}
		return "", style
	}
	content, err := p.cur.ReadQuoted(quote)
	if err != nil {
		p.fail(err.Error())
	}
	style := value.StyleDouble
	if quote == '\'' {
		style = value.StyleSingle
	}
	return content, style
}

// parseValue parses a single value: object, array, quoted string,
// unquoted keyword/number/implicit string.
func (p *parser) parseValue() *value.Value {
	r, ok := p.cur.Current()
	if !ok {
		p.fail("unexpected end of input, expected a value")
		return value.NewNull()
	}
	switch {
	case r == '{':
		p.cur.Read()
		obj := p.parseObjectBody(false)
		return value.NewObject(obj)
	case r == '[':
		return p.parseArray()
	case r == '"' || r == '\'':
		content, style := p.parseQuotedLiteral(r)
		return value.NewString(content, style)
	default:
		return p.parseImplicitValue()
	}
}

func (p *parser) parseArray() *value.Value {
	p.cur.Read() // '['
	arr := value.NewEmptyArray()
	count := 0
	prevLine := p.cur.Position().Line
	for {
		lead := p.collectLeading()
		sameLine := p.cur.Position().Line == prevLine
		r, ok := p.cur.Current()
		if !ok {
			p.fail("unexpected end of input, expected ']'")
			p.attachClosing(arr.Meta(), lead, count)
			return value.NewArray(arr)
		}
		if r == ']' {
			p.attachClosing(arr.Meta(), lead, count)
			p.cur.Read()
			return value.NewArray(arr)
		}

		v := p.parseValue()
		if v == nil {
			v = value.NewNull()
		}
		v.Meta().LinesAbove = lead.linesAbove
		if sameLine {
			v.Meta().Flags = v.Meta().Flags.With(value.FlagSameLine)
		} else {
			v.Meta().Flags = v.Meta().Flags.Without(value.FlagSameLine)
		}
		trace.DebugLazy(p.ctx, p.logger, "array element containerized", func() []slog.Attr {
			return []slog.Attr{slog.Int("index", count), slog.Bool("same_line", sameLine), slog.Int("lines_above", lead.linesAbove)}
		})
		if lead.hasComment {
			v.Meta().Comments = ensureComments(v.Meta().Comments)
			v.Meta().Comments.Set(value.SlotHeader, lead.comment)
		}

		commaSeen := false
		p.cur.SkipLineWhitespace()
		if p.cur.ReadIf(',') {
			commaSeen = true
		}
		if eol, ok := p.trailingEol(); ok {
			v.Meta().Comments = ensureComments(v.Meta().Comments)
			v.Meta().Comments.Set(value.SlotEol, eol)
		}
		if !commaSeen {
			p.cur.SkipLineWhitespace()
			if p.cur.ReadIf(',') {
				commaSeen = true
			}
		}

		if commaSeen {
			v.Meta().Flags = v.Meta().Flags.With(value.FlagCommaAfter)
		} else {
			v.Meta().Flags = v.Meta().Flags.Without(value.FlagCommaAfter)
		}
		_ = arr.Append(value.NewReference(v))
		count++
		if commaSeen {
			arr.Meta().Flags = arr.Meta().Flags.With(value.FlagTrailingComma)
		} else {
			arr.Meta().Flags = arr.Meta().Flags.Without(value.FlagTrailingComma)
		}
		prevLine = p.cur.Position().Line
	}
}

// parseImplicitValue parses a bare word as a number, true/false/null
// keyword, or an implicit (unquoted) string.
func (p *parser) parseImplicitValue() *value.Value {
	r, _ := p.cur.Current()
	if r == '-' || (r >= '0' && r <= '9') {
		if v, ok := p.tryReadNumber(); ok {
			return v
		}
	}
	res, err := scanner.Value.ScanImplicit(p.cur)
	if err != nil {
		p.fail(err.Error())
		return value.NewNull()
	}
	switch res.Text {
	case "true":
		return value.NewBool(true)
	case "false":
		return value.NewBool(false)
	case "null":
		return value.NewNull()
	}
	if res.Text == "" {
		p.issues.Collect(diag.NewIssue(diag.Error, diag.E_EMPTY_IMPLICIT_STRING, "implicit value cannot be empty").
			WithSpan(res.Span).Build())
	}
	return value.NewString(res.Text, value.StyleImplicit)
}

// tryReadNumber looks ahead without consuming anything: a numeric literal
// is only treated as a number if it is immediately followed by a value
// terminator (whitespace, a comma, a closing delimiter, a comment
// introducer, or end of input). This keeps version-like or path-like
// implicit values such as "3d" or "1.2.3-rc1" from being half-swallowed as
// a malformed number.
func (p *parser) tryReadNumber() (*value.Value, bool) {
	i := 0
	if r, ok := p.cur.Peek(i); ok && r == '-' {
		i++
	}
	digits := 0
	for {
		r, ok := p.cur.Peek(i)
		if !ok || r < '0' || r > '9' {
			break
		}
		i++
		digits++
	}
	if digits == 0 {
		return nil, false
	}
	if r, ok := p.cur.Peek(i); ok && r == '.' {
		j := i + 1
		fracDigits := 0
		for {
			r2, ok2 := p.cur.Peek(j)
			if !ok2 || r2 < '0' || r2 > '9' {
				break
			}
			j++
			fracDigits++
		}
		if fracDigits > 0 {
			i = j
		}
	}
	if r, ok := p.cur.Peek(i); ok && (r == 'e' || r == 'E') {
		j := i + 1
		if r2, ok2 := p.cur.Peek(j); ok2 && (r2 == '+' || r2 == '-') {
			j++
		}
		expDigits := 0
		for {
			r2, ok2 := p.cur.Peek(j)
			if !ok2 || r2 < '0' || r2 > '9' {
				break
			}
			j++
			expDigits++
		}
		if expDigits > 0 {
			i = j
		}
	}
	if term, ok := p.cur.Peek(i); ok {
		switch term {
		case ' ', '\t', '\n', '\r', ',', ']', '}', '/', '#':
		default:
			return nil, false
		}
	}
	text, err := p.cur.ReadNumber()
	if err != nil {
		return nil, false
	}
	return numberFromText(text), true
}

func numberFromText(text string) *value.Value {
	if strings.ContainsAny(text, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return value.NewString(text, value.StyleImplicit)
		}
		return value.NewDecimal(f)
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return value.NewString(text, value.StyleImplicit)
	}
	return value.NewInteger(i)
}
