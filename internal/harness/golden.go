package harness

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// AssertGolden compares the rendered text report against a golden file.
// The golden file is stored in testdata/golden/{name}.golden, relative to
// the calling package.
//
// The comparison is byte-for-byte on the output of Report.WriteText, so it
// also pins the summary block, the blank-line layout and the failure
// numbering.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Review the diff before committing; a changed golden file is a changed
// report format.
func AssertGolden(t *testing.T, name string, report *Report) {
	t.Helper()

	var buf bytes.Buffer
	if err := report.WriteText(&buf); err != nil {
		t.Fatalf("render report: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, buf.Bytes())
}
