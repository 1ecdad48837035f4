package litejson

import "strings"

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

// Escape encodes the five characters the parser knows how to decode.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Quote returns s escaped and wrapped in double quotes.
func Quote(s string) string {
	return `"` + Escape(s) + `"`
}

// Unescape decodes the recognized escape pairs in s. A backslash followed by
// any other character yields that character; a trailing lone backslash is
// kept.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			i++
			b.WriteByte(unescapeByte(s[i]))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func unescapeByte(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		// '"', '\\' and everything else pass through as themselves.
		return c
	}
}
