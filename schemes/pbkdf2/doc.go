// Package pbkdf2 implements a PBKDF2-HMAC-SHA256 scheme for the paramhash
// codec.
//
// # Record parameters
//
// In stored order:
//
//	iterations ":" key_length ":" salt_hex ":" derived_key_hex
//
// The salt is regenerated from crypto/rand for every new hash. Iteration
// count and key length travel inside the record, so raising the configured
// cost never breaks verification of old records; it only makes
// [Scheme.PreferredParams] report them as stale.
//
// # Architecture boundaries
//
// This package owns key derivation only. Record serialization, comparison,
// and rehash policy live in the root paramhash package.
//
// # What this package must NOT do
//
//   - Parse or emit colon-delimited record text.
//   - Reuse salt material across calls to DefaultParams.
//   - Log parameters or derived keys at runtime.
package pbkdf2
