// Package litejson parses the restricted object/array format used by the
// fixture corpus.
//
// The accepted grammar is a small subset of JSON:
//
//	corpus  = "[" { object [","] } "]"
//	object  = "{" { string ":" value [","] } "}"
//	value   = string | bracketed | bare
//
// Strings recognize exactly five escape pairs (\n, \t, \r, \", \\). Any other
// backslash-prefixed character is kept as that character. A bracketed value
// is captured verbatim, including any nested brackets, and is not decoded
// into elements. A bare value (numbers, booleans) runs until the next ',' or
// '}' and is trimmed.
//
// # Best-effort parsing
//
// The parser never returns an error. Malformed input truncates the object or
// array being parsed and whatever was captured up to that point is returned.
// Result.Truncated reports whether that happened, so callers can decide if a
// partial corpus is acceptable.
package litejson
