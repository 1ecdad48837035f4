package litejson

import "strings"

// Result is the outcome of parsing a corpus.
type Result struct {
	// Records holds every non-empty object parsed, in source order.
	Records []*Record

	// Truncated is true when parsing stopped before a well-formed end:
	// an object was cut short or the closing ']' was never reached.
	Truncated bool
}

// ParseArray parses a top-level array of objects.
// Objects that parse to an empty mapping are dropped.
func ParseArray(src string) Result {
	p := &parser{src: src}
	return p.parseArray()
}

// ParseObject parses a single object at the start of src. The returned
// record holds whatever keys were captured; ok is false if the object was
// truncated.
func ParseObject(src string) (rec *Record, ok bool) {
	p := &parser{src: src}
	return p.parseObject()
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func (p *parser) skipWhitespace() {
	for !p.eof() && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

// parseString reads a quoted string starting at the current position.
// If the current byte is not a quote nothing is consumed. An unterminated
// string runs to the end of input.
func (p *parser) parseString() string {
	if p.peek() != '"' {
		return ""
	}
	p.pos++

	var b strings.Builder
	for !p.eof() && p.src[p.pos] != '"' {
		c := p.src[p.pos]
		if c == '\\' && p.pos+1 < len(p.src) {
			p.pos++
			b.WriteByte(unescapeByte(p.src[p.pos]))
		} else {
			b.WriteByte(c)
		}
		p.pos++
	}
	if !p.eof() {
		p.pos++ // closing quote
	}
	return b.String()
}

// parseBracketed captures a balanced '[' ... ']' run verbatim.
// Nested brackets are tracked by depth so an inner ']' does not end the
// capture. The result always ends with ']', even when input runs out.
func (p *parser) parseBracketed() string {
	p.pos++ // '['
	var b strings.Builder
	b.WriteByte('[')
	depth := 1
	for !p.eof() && depth > 0 {
		c := p.src[p.pos]
		switch c {
		case '[':
			depth++
		case ']':
			depth--
		}
		if depth > 0 {
			b.WriteByte(c)
		}
		p.pos++
	}
	b.WriteByte(']')
	return b.String()
}

// parseBare reads an unquoted token up to the next ',' or '}'.
func (p *parser) parseBare() string {
	start := p.pos
	for !p.eof() && p.src[p.pos] != ',' && p.src[p.pos] != '}' {
		p.pos++
	}
	return strings.Trim(p.src[start:p.pos], " \t\n\r")
}

func (p *parser) parseValue() Value {
	switch p.peek() {
	case '"':
		return ScalarValue(p.parseString())
	case '[':
		return ListValue(p.parseBracketed())
	default:
		return ScalarValue(p.parseBare())
	}
}

func (p *parser) parseObject() (*Record, bool) {
	rec := newRecord()

	p.skipWhitespace()
	if p.peek() != '{' {
		return rec, false
	}
	p.pos++

	for !p.eof() {
		p.skipWhitespace()
		if p.peek() == '}' {
			p.pos++
			return rec, true
		}

		key := p.parseString()

		p.skipWhitespace()
		if p.peek() != ':' {
			return rec, false
		}
		p.pos++

		p.skipWhitespace()
		if p.eof() {
			return rec, false
		}
		rec.set(key, p.parseValue())

		p.skipWhitespace()
		if p.peek() == ',' {
			p.pos++
		}
	}
	return rec, false
}

func (p *parser) parseArray() Result {
	var res Result

	p.skipWhitespace()
	if p.peek() != '[' {
		res.Truncated = !p.eof()
		return res
	}
	p.pos++

	for {
		p.skipWhitespace()
		if p.eof() {
			res.Truncated = true
			return res
		}
		if p.peek() == ']' {
			p.pos++
			return res
		}

		start := p.pos
		rec, ok := p.parseObject()
		if !ok {
			res.Truncated = true
		}
		if rec.Len() > 0 {
			res.Records = append(res.Records, rec)
		}

		p.skipWhitespace()
		if p.peek() == ',' {
			p.pos++
		}
		if p.pos == start {
			// Not an object and not a separator: nothing more can be read.
			res.Truncated = true
			return res
		}
	}
}
