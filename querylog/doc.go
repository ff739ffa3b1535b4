// Package querylog persists the queries the assistant could not answer.
//
// The log is the input for support-team review (see the report package)
// and the only cross-request state the cascade writes: an append-only
// text file with one timestamped entry per line, safe for concurrent use.
package querylog
