package harness

import (
	"io"
	"log/slog"

	"github.com/roach88/anicheck/internal/category"
	"github.com/roach88/anicheck/internal/engine"
	"github.com/roach88/anicheck/internal/litejson"
)

// Harness runs fixtures against one engine, strictly in order.
type Harness struct {
	engine engine.Engine
	logger *slog.Logger
}

// New creates a harness. A nil logger discards output.
func New(eng engine.Engine, logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{engine: eng, logger: logger}
}

// Run checks every record and returns the accumulated report.
//
// Records are processed strictly in slice order, one engine call at a
// time, and Run never stops early: a filename the engine cannot parse is
// recorded as a failure and the next record is checked. The returned
// report always has a non-nil Failures slice.
func (h *Harness) Run(records []*litejson.Record) *Report {
	report := NewReport()
	for _, rec := range records {
		h.Step(report, rec)
	}
	h.logger.Info("run finished",
		"passed", report.Passed,
		"failed", report.Failed,
		"success_rate", report.FormatSuccessRate(),
	)
	return report
}

// Step checks one record and adds its outcome to report. Records without a
// non-empty file_name are not fixtures and are skipped without counting.
// It returns false for skipped records.
func (h *Harness) Step(report *Report, rec *litejson.Record) bool {
	out, ok := h.Evaluate(rec)
	if !ok {
		return false
	}
	report.Add(out)
	return true
}

// Evaluate parses the record's filename with the engine and compares the
// result. It reports false for records without a non-empty file_name, in which
// case the engine is not called.
func (h *Harness) Evaluate(rec *litejson.Record) (Outcome, bool) {
	v, ok := rec.Get(category.KeyFileName)
	if !ok || v.Text == "" {
		h.logger.Debug("skipping record without file_name", "record", rec.String())
		return Outcome{}, false
	}

	parsed := h.engine.Parse(v.Text)
	if !parsed {
		h.logger.Debug("engine failed to parse", "file_name", v.Text)
	}

	out := Compare(rec, parsed, h.engine)
	for _, key := range out.Skipped {
		h.logger.Debug("skipping unknown field", "file_name", v.Text, "key", key)
	}
	if !out.Pass {
		h.logger.Debug("fixture failed", "file_name", v.Text, "mismatches", len(out.Mismatches))
	}
	return out, true
}
