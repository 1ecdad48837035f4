package harness

import (
	"slices"
	"strings"

	"github.com/roach88/anicheck/internal/category"
	"github.com/roach88/anicheck/internal/engine"
	"github.com/roach88/anicheck/internal/litejson"
)

// Compare checks rec against the engine's output for its filename.
// parsed is the engine's Parse result; q is only queried when parsed is
// true.
//
// Fields are checked in record order. Mismatches are returned sorted by
// key.
func Compare(rec *litejson.Record, parsed bool, q engine.Querier) Outcome {
	out := Outcome{}
	if v, ok := rec.Get(category.KeyFileName); ok {
		out.FileName = v.Text
	}

	if !parsed {
		out.ParseFailed = true
		return out
	}

	for _, key := range rec.Keys() {
		if category.IsReserved(key) {
			continue
		}
		c := category.Resolve(key)
		if c == category.Unknown {
			out.Skipped = append(out.Skipped, key)
			continue
		}

		expected, _ := rec.Get(key)
		if m, ok := compareField(key, c, expected, q); !ok {
			out.Mismatches = append(out.Mismatches, m)
		}
	}

	// Mismatch lines are listed by key in byte order.
	slices.SortStableFunc(out.Mismatches, func(a, b Mismatch) int {
		return strings.Compare(a.Key, b.Key)
	})

	out.Pass = len(out.Mismatches) == 0
	return out
}

func compareField(key string, c category.Category, expected litejson.Value, q engine.Querier) (Mismatch, bool) {
	if expected.Kind == litejson.List {
		actual := RenderList(q.GetAll(c))
		if StripWhitespace(expected.Text) == actual {
			return Mismatch{}, true
		}
		return Mismatch{Key: key, Kind: litejson.List, Expected: expected.Text, Actual: actual}, false
	}

	actual := q.Get(c)
	if expected.Text == actual {
		return Mismatch{}, true
	}
	return Mismatch{Key: key, Kind: litejson.Scalar, Expected: expected.Text, Actual: actual}, false
}

// RenderList joins values as ["a","b"]. Values are not escaped.
func RenderList(values []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(v)
		b.WriteByte('"')
	}
	b.WriteByte(']')
	return b.String()
}

// StripWhitespace removes every space, tab, newline and carriage return.
func StripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}
