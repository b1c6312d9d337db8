// Package json implements a strict JSON parser (RFC 8259) producing a
// value.Value tree. It accepts exactly the JSON grammar: double-quoted
// strings only, no comments, no trailing commas, no unquoted keys or
// values. Every value it produces carries no formatting metadata beyond
// its default zero state - strict JSON parsing does not preserve source
// formatting, by design; use parse/xjs for round-trip-preserving parsing
// of documents that may use JSON's relaxed superset.
package json

import (
	"strconv"
	"strings"

	"github.com/simon-lentz/xjs/diag"
	"github.com/simon-lentz/xjs/location"
	"github.com/simon-lentz/xjs/reader"
	"github.com/simon-lentz/xjs/value"
)

// Parse parses data as strict JSON and returns the resulting value tree
// alongside a diagnostic result. If the result has errors, the returned
// value may be nil or partial.
func Parse(source location.SourceID, data []byte) (*value.Value, *diag.Result) {
	p := &parser{cur: reader.NewCursor(source, data), issues: diag.NewCollectorUnlimited()}
	p.skipWS()
	v := p.parseValue()
	p.skipWS()
	if !p.cur.AtEOF() {
		p.fail("unexpected trailing content after top-level value")
	}
	return v, p.issues.Result()
}

type parser struct {
	cur    *reader.Cursor
	issues *diag.Collector
}

func (p *parser) skipWS() {
	p.cur.SkipWhitespace()
}

func (p *parser) fail(format string) {
	p.issues.Collect(diag.NewIssue(diag.Error, diag.E_SYNTAX, format).
		WithSpan(p.cur.Span(p.cur.Position())).
		Build())
}

func (p *parser) failAt(start location.Position, format string) {
	p.issues.Collect(diag.NewIssue(diag.Error, diag.E_SYNTAX, format).
		WithSpan(p.cur.Span(start)).
		Build())
}

func (p *parser) parseValue() *value.Value {
	r, ok := p.cur.Current()
	if !ok {
		p.fail("unexpected end of input, expected a value")
		return nil
	}
	switch {
	case r == '{':
		return p.parseObject()
	case r == '[':
		return p.parseArray()
	case r == '"':
		return p.parseString()
	case r == '-' || (r >= '0' && r <= '9'):
		return p.parseNumber()
	case r == 't' || r == 'f':
		return p.parseBool()
	case r == 'n':
		return p.parseNull()
	default:
		p.fail("unexpected character, expected a value")
		return nil
	}
}

func (p *parser) parseObject() *value.Value {
	start := p.cur.Position()
	p.cur.Read() // '{'
	obj := value.NewEmptyObject()
	p.skipWS()
	if p.cur.ReadIf('}') {
		return value.NewObject(obj)
	}
	for {
		p.skipWS()
		r, ok := p.cur.Current()
		if !ok || r != '"' {
			p.failAt(start, "expected string key in object")
			return value.NewObject(obj)
		}
		key := p.parseQuotedContent()
		p.skipWS()
		if err := p.cur.Expect(':'); err != nil {
			p.fail(err.Error())
			return value.NewObject(obj)
		}
		p.skipWS()
		v := p.parseValue()
		if v == nil {
			v = value.NewNull()
		}
		_ = obj.AppendMember(key, value.NewReference(v))
		p.skipWS()
		if p.cur.ReadIf(',') {
			continue
		}
		if err := p.cur.Expect('}'); err != nil {
			p.fail(err.Error())
		}
		break
	}
	return value.NewObject(obj)
}

func (p *parser) parseArray() *value.Value {
	start := p.cur.Position()
	p.cur.Read() // '['
	arr := value.NewEmptyArray()
	p.skipWS()
	if p.cur.ReadIf(']') {
		return value.NewArray(arr)
	}
	for {
		p.skipWS()
		v := p.parseValue()
		if v == nil {
			v = value.NewNull()
		}
		_ = arr.Append(value.NewReference(v))
		p.skipWS()
		if p.cur.ReadIf(',') {
			continue
		}
		if err := p.cur.Expect(']'); err != nil {
			p.failAt(start, err.Error())
		}
		break
	}
	return value.NewArray(arr)
}

func (p *parser) parseQuotedContent() string {
	p.cur.Read() // opening quote
	content, err := p.cur.ReadQuoted('"')
	if err != nil {
		p.fail(err.Error())
		return ""
	}
	return content
}

func (p *parser) parseString() *value.Value {
	return value.NewString(p.parseQuotedContent(), value.StyleDouble)
}

func (p *parser) parseNumber() *value.Value {
	text, err := p.cur.ReadNumber()
	if err != nil {
		p.fail(err.Error())
		return value.NewInteger(0)
	}
	if strings.ContainsAny(text, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			p.fail("invalid number literal")
			return value.NewDecimal(0)
		}
		return value.NewDecimal(f)
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		p.fail("integer literal out of range")
		return value.NewInteger(0)
	}
	return value.NewInteger(i)
}

func (p *parser) parseBool() *value.Value {
	if p.readLiteral("true") {
		return value.NewBool(true)
	}
	if p.readLiteral("false") {
		return value.NewBool(false)
	}
	p.fail("invalid literal, expected true or false")
	return value.NewBool(false)
}

func (p *parser) parseNull() *value.Value {
	if p.readLiteral("null") {
		return value.NewNull()
	}
	p.fail("invalid literal, expected null")
	return value.NewNull()
}

func (p *parser) readLiteral(lit string) bool {
	for _, want := range lit {
		r, ok := p.cur.Current()
		if !ok || r != want {
			return false
		}
		p.cur.Read()
	}
	return true
}
