package compare

import "github.com/roach88/anicheck/internal/harness"

// CommonFailure is a fixture failing in both runs, with each side's errors.
type CommonFailure struct {
	FileName  string
	Baseline  []string
	Candidate []string
}

// Comparison is the difference between a baseline and a candidate report.
type Comparison struct {
	Baseline  *harness.Report
	Candidate *harness.Report

	// Regressions fail in the candidate only; errors are the candidate's.
	Regressions []harness.Failure
	// Improvements fail in the baseline only; errors are the baseline's.
	Improvements []harness.Failure
	// Common fail in both.
	Common []CommonFailure
}

// Diff partitions the failing fixtures of both reports. Groups keep the
// order in which fixtures failed: regressions and common failures follow the
// candidate, improvements follow the baseline. If a report lists a filename
// twice, the last entry's errors are used.
func Diff(baseline, candidate *harness.Report) *Comparison {
	if baseline == nil {
		baseline = harness.NewReport()
	}
	if candidate == nil {
		candidate = harness.NewReport()
	}
	base := indexFailures(baseline)
	cand := indexFailures(candidate)

	c := &Comparison{Baseline: baseline, Candidate: candidate}
	for _, name := range cand.order {
		if b, ok := base.byName[name]; ok {
			c.Common = append(c.Common, CommonFailure{
				FileName:  name,
				Baseline:  b,
				Candidate: cand.byName[name],
			})
			continue
		}
		c.Regressions = append(c.Regressions, harness.Failure{FileName: name, Errors: cand.byName[name]})
	}
	for _, name := range base.order {
		if _, ok := cand.byName[name]; !ok {
			c.Improvements = append(c.Improvements, harness.Failure{FileName: name, Errors: base.byName[name]})
		}
	}
	return c
}

type failureIndex struct {
	order  []string
	byName map[string][]string
}

func indexFailures(r *harness.Report) failureIndex {
	idx := failureIndex{byName: make(map[string][]string)}
	for _, f := range r.Failures {
		if _, ok := idx.byName[f.FileName]; !ok {
			idx.order = append(idx.order, f.FileName)
		}
		idx.byName[f.FileName] = f.Errors
	}
	return idx
}
