package litejson

// Kind distinguishes single-valued fields from list-valued fields.
type Kind int

const (
	// Scalar is a quoted string or a bare token.
	Scalar Kind = iota
	// List is a bracketed value kept as its literal text.
	List
)

func (k Kind) String() string {
	if k == List {
		return "list"
	}
	return "scalar"
}

// Value is the raw form of one parsed field.
//
// For Scalar values Text has escapes resolved. For List values Text is the
// bracketed substring exactly as it appeared in the source.
type Value struct {
	Kind Kind
	Text string
}

// ScalarValue returns a Scalar value holding text.
func ScalarValue(text string) Value {
	return Value{Kind: Scalar, Text: text}
}

// ListValue returns a List value holding the literal bracketed text.
func ListValue(text string) Value {
	return Value{Kind: List, Text: text}
}

func (v Value) String() string {
	return v.Text
}
