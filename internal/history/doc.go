// Package history keeps a SQLite log of codec benchmark runs.
//
// Every recorded run stores the run ID, the start time, the size and
// fingerprint of the measured store, and one row per codec with its status,
// encoded size, and timings. Runs are append-only: recording the same run ID
// twice is an error.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Cascade deletes from runs to codec_results
//
// Store implements bench.Recorder.
package history
