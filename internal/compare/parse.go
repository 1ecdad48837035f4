package compare

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/roach88/anicheck/internal/harness"
)

// ErrNotReport is returned when the input has no result summary.
var ErrNotReport = errors.New("no test results found")

var (
	passedLine = regexp.MustCompile(`^Passed:\s*(\d+)`)
	failedLine = regexp.MustCompile(`^Failed:\s*(\d+)`)
	entryLine  = regexp.MustCompile(`^(\d+)\. (.*)$`)
)

// ParseReport reads a text report written by harness.Report.WriteText.
// Text before and after the report (build logs, the "Loaded" banner) is
// ignored. Failure entries without any error line are dropped.
func ParseReport(r io.Reader) (*harness.Report, error) {
	report := harness.NewReport()
	var (
		sawSummary bool
		inFailures bool
		current    *harness.Failure
	)

	flush := func() {
		if current != nil && current.FileName != "" && len(current.Errors) > 0 {
			report.Failures = append(report.Failures, *current)
		}
		current = nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		if !inFailures {
			if m := passedLine.FindStringSubmatch(trimmed); m != nil {
				report.Passed, _ = strconv.Atoi(m[1])
				sawSummary = true
			} else if m := failedLine.FindStringSubmatch(trimmed); m != nil {
				report.Failed, _ = strconv.Atoi(m[1])
				sawSummary = true
			} else if trimmed == "Failures:" {
				inFailures = true
			}
			continue
		}

		if trimmed == "" {
			continue
		}
		// Error lines are indented; an entry starts at column 0 and keeps its
		// filename verbatim, surrounding whitespace included.
		if !indented(line) {
			if m := entryLine.FindStringSubmatch(line); m != nil {
				flush()
				current = &harness.Failure{FileName: m[2]}
				continue
			}
		}
		if current != nil {
			current.Errors = append(current.Errors, trimmed)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	flush()

	if !sawSummary {
		return nil, ErrNotReport
	}
	return report, nil
}

func indented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}
