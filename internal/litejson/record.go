package litejson

import "strings"

// Record is an ordered mapping from field key to raw value.
// Keys keep the position of their first occurrence; a repeated key replaces
// the earlier value in place. Records are not modified after parsing.
type Record struct {
	keys   []string
	values map[string]Value
}

func newRecord() *Record {
	return &Record{values: make(map[string]Value)}
}

func (r *Record) set(key string, v Value) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the record's keys in order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of keys.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// String renders the record back in the corpus format.
// List values are emitted verbatim.
func (r *Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range r.Keys() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(Quote(k))
		b.WriteByte(':')
		v := r.values[k]
		if v.Kind == List {
			b.WriteString(v.Text)
		} else {
			b.WriteString(Quote(v.Text))
		}
	}
	b.WriteByte('}')
	return b.String()
}
