// Package paramhash provides a parameterized password-hash framework: a codec
// that serializes scheme parameters and derived keys into colon-delimited
// records, a scheme registry with legacy-record resolution, and an
// authenticator that performs transparent rehash-on-login against a pluggable
// credential store.
//
// The package is designed for concurrent server workloads: Codec, Registry,
// and Authenticator methods are safe to call from multiple goroutines after
// initialization through [Builder.Build].
//
// # Record format
//
// A stored record is an ordered sequence of colon-delimited fields:
//
//	field_1 ":" field_2 ":" ... ":" field_n ":" derived_key
//
// The last field is always the derived key; all preceding fields are scheme
// parameters in the exact order the scheme re-derives from. No escaping of the
// separator is defined: [Codec.Hash] rejects any field containing ":" rather
// than emit a record it could not parse back.
//
// # Architecture boundaries
//
// paramhash is the public surface. It exposes [Codec], [Scheme], [Registry],
// [Authenticator], [Builder], [Config], and value types (MetricsSnapshot,
// AuditEvent, etc.). Concrete key-derivation algorithms live under schemes/
// and are plugged in through [Registry]; OTel metric export lives under
// metrics/export.
//
// # What this package must NOT do
//
//   - Pick a process-wide default scheme. Every Codec and Authenticator is
//     constructed with its schemes explicitly.
//   - Log or persist plaintext passwords, derived keys, or salts.
//   - Treat a corrupt stored record differently from a wrong password in any
//     caller-observable login outcome.
package paramhash
