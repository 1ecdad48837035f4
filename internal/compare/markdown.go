package compare

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/roach88/anicheck/internal/harness"
)

// Labels name the two sides of a comparison in rendered output.
type Labels struct {
	Baseline  string
	Candidate string
}

// DefaultLabels are used for empty label fields.
var DefaultLabels = Labels{Baseline: "baseline", Candidate: "candidate"}

func (l Labels) withDefaults() Labels {
	if l.Baseline == "" {
		l.Baseline = DefaultLabels.Baseline
	}
	if l.Candidate == "" {
		l.Candidate = DefaultLabels.Candidate
	}
	return l
}

// RenderMarkdown writes the comparison as a markdown document.
func RenderMarkdown(w io.Writer, c *Comparison, labels Labels, generated time.Time) error {
	labels = labels.withDefaults()
	bw := bufio.NewWriter(w)
	p := func(format string, args ...any) {
		fmt.Fprintf(bw, format+"\n", args...)
	}

	p("# Conformance Comparison Report")
	p("")
	p("Generated: %s", generated.UTC().Format(time.RFC3339))
	p("")

	p("## Summary")
	p("")
	p("| Run | Passed | Failed | Total | Success Rate |")
	p("|-----|--------|--------|-------|--------------|")
	summaryRow(p, labels.Baseline, c.Baseline)
	summaryRow(p, labels.Candidate, c.Candidate)
	p("")

	baseRate, _ := c.Baseline.SuccessRate()
	candRate, _ := c.Candidate.SuccessRate()
	p("### Difference")
	p("")
	p("- **Passed**: %+d", c.Candidate.Passed-c.Baseline.Passed)
	p("- **Failed**: %+d", c.Candidate.Failed-c.Baseline.Failed)
	p("- **Success Rate**: %+.2f%%", candRate-baseRate)
	p("")

	p("## Regressions")
	p("")
	p("Fixtures that **pass in %s** but **fail in %s**: %d", labels.Baseline, labels.Candidate, len(c.Regressions))
	p("")
	if len(c.Regressions) == 0 {
		p("No regressions found.")
		p("")
	}
	for i, f := range c.Regressions {
		p("### %d. %s", i+1, f.FileName)
		p("")
		bullets(p, f.Errors)
		p("")
	}

	p("## Improvements")
	p("")
	p("Fixtures that **fail in %s** but **pass in %s**: %d", labels.Baseline, labels.Candidate, len(c.Improvements))
	p("")
	if len(c.Improvements) == 0 {
		p("No improvements over %s.", labels.Baseline)
		p("")
	}
	for i, f := range c.Improvements {
		p("### %d. %s", i+1, f.FileName)
		p("")
		p("%s errors:", labels.Baseline)
		p("")
		bullets(p, f.Errors)
		p("")
	}

	p("## Common Failures")
	p("")
	p("Fixtures that **fail in both** runs: %d", len(c.Common))
	p("")
	if len(c.Common) == 0 {
		p("No common failures.")
	} else {
		p("<details>")
		p("<summary>Click to expand common failures</summary>")
		p("")
		for i, f := range c.Common {
			p("### %d. %s", i+1, f.FileName)
			p("")
			p("**%s errors:**", labels.Baseline)
			p("")
			bullets(p, f.Baseline)
			p("")
			p("**%s errors:**", labels.Candidate)
			p("")
			bullets(p, f.Candidate)
			p("")
		}
		p("</details>")
	}

	return bw.Flush()
}

func summaryRow(p func(string, ...any), label string, r *harness.Report) {
	p("| %s | %d | %d | %d | %s |", label, r.Passed, r.Failed, r.Total(), r.FormatSuccessRate())
}

func bullets(p func(string, ...any), lines []string) {
	for _, l := range lines {
		p("- %s", l)
	}
}
