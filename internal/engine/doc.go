// Package engine is the boundary to the filename-metadata extraction engine
// under test.
//
// The harness only needs three operations: Parse a filename, then Get a
// single value or GetAll values of a category. Two implementations are
// provided:
//
//   - Command runs an external program once per filename and reads
//     "key<TAB>value" lines from its stdout.
//   - Replay serves outputs recorded earlier in a YAML file.
//
// Text crossing the boundary is transcoded with a Codec so that the harness
// always compares UTF-8 strings, whatever representation the engine uses.
package engine
