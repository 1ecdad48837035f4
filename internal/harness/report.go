package harness

import (
	"bufio"
	"fmt"
	"io"
)

const rule = "========================================"

// NoTests is printed in place of a success rate when nothing was checked.
const NoTests = "N/A (no tests)"

// Report accumulates outcomes across a run.
type Report struct {
	Passed   int       `json:"passed"`
	Failed   int       `json:"failed"`
	Failures []Failure `json:"failures"`
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{Failures: []Failure{}}
}

// Add records one outcome. Failures keep encounter order.
func (r *Report) Add(o Outcome) {
	if o.Pass {
		r.Passed++
		return
	}
	r.Failed++
	r.Failures = append(r.Failures, Failure{
		FileName: o.FileName,
		Errors:   o.Errors(),
	})
}

// Total is the number of fixtures checked.
func (r *Report) Total() int {
	return r.Passed + r.Failed
}

// SuccessRate returns passed/total as a percentage. ok is false when no
// fixture was checked.
func (r *Report) SuccessRate() (rate float64, ok bool) {
	total := r.Total()
	if total == 0 {
		return 0, false
	}
	return float64(r.Passed) / float64(total) * 100, true
}

// FormatSuccessRate renders the success rate with two decimals, or NoTests.
func (r *Report) FormatSuccessRate() string {
	rate, ok := r.SuccessRate()
	if !ok {
		return NoTests
	}
	return fmt.Sprintf("%.2f%%", rate)
}

// WriteText renders the summary and the numbered failure list.
func (r *Report) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, rule)
	fmt.Fprintln(bw, "Test Results:")
	fmt.Fprintf(bw, "Passed: %d\n", r.Passed)
	fmt.Fprintf(bw, "Failed: %d\n", r.Failed)
	fmt.Fprintf(bw, "Total: %d\n", r.Total())
	fmt.Fprintf(bw, "Success Rate: %s\n", r.FormatSuccessRate())
	fmt.Fprintln(bw, rule)
	fmt.Fprintln(bw)

	if len(r.Failures) > 0 {
		fmt.Fprintln(bw, "Failures:")
		for i, f := range r.Failures {
			fmt.Fprintf(bw, "\n%d. %s\n", i+1, f.FileName)
			for _, e := range f.Errors {
				fmt.Fprintf(bw, "   %s\n", e)
			}
		}
	}

	return bw.Flush()
}
