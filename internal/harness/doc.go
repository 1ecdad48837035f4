// Package harness checks an extraction engine against a fixture corpus.
//
// Each fixture record names an input file (file_name) and the values the
// engine is expected to extract from it. The harness parses the filename
// with the engine, compares every recognized field and accumulates the
// results in a Report.
//
// # Comparison Rules
//
// Scalar fields are compared as exact strings: case-sensitive, no trimming.
//
// List fields (bracketed values in the corpus) are compared textually. All
// whitespace is removed from the expected text and the engine's values are
// rendered as ["a","b",...] with no escaping. The two strings must be equal,
// so order matters.
//
// Keys that do not name a known category are skipped, as are the reserved
// keys file_name and id.
//
// # Running
//
// Fixtures are processed one at a time in corpus order:
//
//	h := harness.New(eng, logger)
//	report := h.Run(corpus.Records)
//	report.WriteText(os.Stdout)
//
// Run never fails. A filename the engine cannot parse is recorded as a
// failing fixture and the run continues.
package harness
