// Package ledger persists contact-form activity to append-only files:
// a human-readable activity log, a CSV export, and two error logs.
//
// The ledger is deliberately not a database. Records are write-once and
// additive; there is no read path, no update, and no delete. Appends hold an
// exclusive advisory file lock so concurrent requests never interleave
// partial writes, and callers treat every append as best-effort: a failed
// write is logged and swallowed, never surfaced to the submitter.
package ledger
