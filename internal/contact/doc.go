// Package contact implements the contact-form submission pipeline:
// validate, notify the company by email (with a plain-text fallback on
// failure), send a courtesy auto-reply to the submitter, and record the
// outcome in the append-only ledger.
//
// The pipeline has exactly four terminal outcomes, each mapped to an HTTP
// status by the handler: method rejection (405), validation failure (400),
// delivered or delivered-via-fallback (200), and total delivery failure
// (500). Delivery is best-effort and synchronous; there is no queue and no
// retry beyond the single fallback attempt.
package contact
