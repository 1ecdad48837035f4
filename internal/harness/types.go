package harness

import (
	"fmt"

	"github.com/roach88/anicheck/internal/litejson"
)

// ParseFailure is the only error recorded for a filename the engine could
// not parse.
const ParseFailure = "Failed to parse"

// Mismatch is one field whose extracted value differs from the fixture.
type Mismatch struct {
	Key  string
	Kind litejson.Kind

	// Expected is the fixture text. For list fields it is the original
	// bracketed text, whitespace included.
	Expected string

	// Actual is the engine's value, rendered as a list for list fields.
	Actual string
}

func (m Mismatch) String() string {
	if m.Kind == litejson.List {
		return fmt.Sprintf("%s: expected %s, got %s", m.Key, m.Expected, m.Actual)
	}
	return fmt.Sprintf(`%s: expected "%s", got "%s"`, m.Key, m.Expected, m.Actual)
}

// Outcome is the result of checking one fixture.
// It is produced by Compare and folded into a Report with Report.Add.
type Outcome struct {
	// FileName is the fixture's file_name, used verbatim in the report.
	FileName string

	// Pass is true iff the engine parsed the filename and no field
	// mismatched.
	Pass bool

	// ParseFailed is set when the engine produced no output at all.
	// Mismatches is always empty in that case: nothing was queried.
	ParseFailed bool

	// Mismatches lists every checked field that differed, sorted by key.
	// Empty if Pass is true.
	Mismatches []Mismatch

	// Skipped lists fixture keys that were not checked because they name
	// no known category. Skipped keys never affect Pass; they are kept for
	// debug logging.
	Skipped []string
}

// Errors returns the human-readable failure lines for the outcome.
// A parse failure yields the single line ParseFailure; otherwise there is
// one line per mismatch, in Mismatches order.
func (o Outcome) Errors() []string {
	if o.ParseFailed {
		return []string{ParseFailure}
	}
	out := make([]string, len(o.Mismatches))
	for i, m := range o.Mismatches {
		out[i] = m.String()
	}
	return out
}

// Failure is a failing fixture as it appears in a report.
// The JSON form is what the run history stores and what
// "history --format json" prints.
type Failure struct {
	FileName string   `json:"file_name"`
	Errors   []string `json:"errors"`
}
