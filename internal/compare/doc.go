// Package compare sets two harness reports side by side.
//
// A report produced by one engine build (the baseline) is compared with a
// report from another (the candidate). Failing fixtures fall into three
// groups: regressions fail only in the candidate, improvements fail only in
// the baseline, and common failures fail in both.
//
// Reports can come from the run history or from saved text output; the
// latter is read back with ParseReport.
package compare
