package compare

import (
	"bytes"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/anicheck/internal/harness"
)

func report(passed int, failures ...harness.Failure) *harness.Report {
	r := harness.NewReport()
	r.Passed = passed
	r.Failed = len(failures)
	r.Failures = append(r.Failures, failures...)
	return r
}

func failure(name string, errs ...string) harness.Failure {
	return harness.Failure{FileName: name, Errors: errs}
}

func sampleComparison() *Comparison {
	baseline := report(3,
		failure("a.mkv", `anime_title: expected "A", got "a"`),
		failure("c.mkv", "Failed to parse"),
	)
	candidate := report(3,
		failure("b.mkv", `episode_number: expected "01", got "1"`),
		failure("c.mkv", `release_group: expected "G", got ""`),
	)
	return Diff(baseline, candidate)
}

func TestDiffPartitions(t *testing.T) {
	c := sampleComparison()

	assert.Equal(t, []harness.Failure{failure("b.mkv", `episode_number: expected "01", got "1"`)}, c.Regressions)
	assert.Equal(t, []harness.Failure{failure("a.mkv", `anime_title: expected "A", got "a"`)}, c.Improvements)
	require.Len(t, c.Common, 1)
	assert.Equal(t, CommonFailure{
		FileName:  "c.mkv",
		Baseline:  []string{"Failed to parse"},
		Candidate: []string{`release_group: expected "G", got ""`},
	}, c.Common[0])
}

func TestDiffIdenticalReports(t *testing.T) {
	r := report(1, failure("a.mkv", "Failed to parse"))
	c := Diff(r, r)
	assert.Empty(t, c.Regressions)
	assert.Empty(t, c.Improvements)
	assert.Len(t, c.Common, 1)
}

func TestDiffDuplicateFileNameLastWins(t *testing.T) {
	candidate := report(0, failure("a.mkv", "first"), failure("b.mkv", "x"), failure("a.mkv", "second"))
	c := Diff(nil, candidate)

	require.Len(t, c.Regressions, 2)
	assert.Equal(t, failure("a.mkv", "second"), c.Regressions[0])
	assert.Equal(t, "b.mkv", c.Regressions[1].FileName)
	assert.NotNil(t, c.Baseline)
}

func TestRenderMarkdownGolden(t *testing.T) {
	var buf bytes.Buffer
	generated := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	require.NoError(t, RenderMarkdown(&buf, sampleComparison(), Labels{Baseline: "reference", Candidate: "port"}, generated))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "comparison", buf.Bytes())
}

func TestRenderMarkdownEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderMarkdown(&buf, Diff(nil, nil), Labels{}, time.Unix(0, 0)))

	out := buf.String()
	assert.Contains(t, out, "| baseline | 0 | 0 | 0 | N/A (no tests) |")
	assert.Contains(t, out, "No regressions found.")
	assert.Contains(t, out, "No improvements over baseline.")
	assert.Contains(t, out, "No common failures.")
	assert.Contains(t, out, "- **Success Rate**: +0.00%")
}
