package engine

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var encodings = map[string]encoding.Encoding{
	"utf-8":        unicode.UTF8,
	"utf-16le":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf-16be":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf-16":       unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"latin1":       charmap.ISO8859_1,
	"windows-1252": charmap.Windows1252,
}

// EncodingNames lists the accepted encoding names, sorted.
func EncodingNames() []string {
	names := make([]string, 0, len(encodings))
	for name := range encodings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Codec converts between the harness's UTF-8 strings and the engine's text
// representation.
type Codec struct {
	name string
	enc  encoding.Encoding
}

// NewCodec returns the codec for name. An empty name means UTF-8.
func NewCodec(name string) (Codec, error) {
	if name == "" {
		name = "utf-8"
	}
	enc, ok := encodings[strings.ToLower(name)]
	if !ok {
		return Codec{}, fmt.Errorf("unknown encoding %q: must be one of %v", name, EncodingNames())
	}
	return Codec{name: strings.ToLower(name), enc: enc}, nil
}

// Name returns the canonical encoding name.
func (c Codec) Name() string {
	if c.enc == nil {
		return "utf-8"
	}
	return c.name
}

// Encode converts s to the engine's representation.
func (c Codec) Encode(s string) ([]byte, error) {
	if c.enc == nil {
		return []byte(s), nil
	}
	b, err := c.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.Name(), err)
	}
	return b, nil
}

// Decode converts engine output to UTF-8.
func (c Codec) Decode(b []byte) (string, error) {
	if c.enc == nil {
		return string(b), nil
	}
	out, err := c.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", c.Name(), err)
	}
	return string(out), nil
}
