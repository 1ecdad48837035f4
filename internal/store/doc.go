// Package store keeps a SQLite history of harness runs.
//
// Each run stores its counts and the ordered list of failing fixtures with
// their error lines, so a later run can be compared against any earlier
// one without re-running the engine.
//
// # Ordering
//
// Runs are ordered by seq, a counter assigned at insert time, never by the
// created_at timestamp. Failures are ordered by their position in the run.
//
// # Schema
//
// The schema is defined by the goose migrations embedded from migrations/
// and applied by Open.
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
package store
