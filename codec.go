package paramhash

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
)

// RecordSeparator is an exported constant or variable used by the password-hash framework.
//
// It delimits the fields of a serialized record. Field values must never
// contain it; there is no escaping.
const RecordSeparator = ":"

// Codec defines a public type used by paramhash APIs.
//
// Codec instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// A Codec binds one [Scheme] and implements hashing, verification, and
// staleness detection over the colon-delimited record format. It holds no
// state between calls; every method is a pure function of its inputs and the
// scheme.
type Codec struct {
	scheme Scheme
}

// NewCodec describes the newcodec operation and its observable behavior.
//
// NewCodec may return an error when input validation, dependency calls, or security checks fail.
// NewCodec does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewCodec(scheme Scheme) (*Codec, error) {
	if scheme == nil {
		return nil, errors.New("paramhash: nil scheme")
	}
	return &Codec{scheme: scheme}, nil
}

// Scheme returns the scheme this codec delegates key derivation to.
func (c *Codec) Scheme() Scheme {
	return c.scheme
}

// Hash describes the hash operation and its observable behavior.
//
// Hash may return an error when input validation, dependency calls, or security checks fail.
// Hash does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Hash obtains fresh default parameters from the scheme, derives the key, and
// serializes both into a record with the key last. Default parameters and key
// derivation over them must never fail; any failure here, including a field
// containing the record separator, is a *[SchemeBugError] — a bug in the
// scheme implementation, not a recoverable input condition.
func (c *Codec) Hash(password string) (string, error) {
	params, err := c.scheme.DefaultParams()
	if err != nil {
		return "", &SchemeBugError{Scheme: c.scheme.Name(), Stage: "default params", Err: err}
	}

	dkey, err := c.scheme.DeriveKey(params, password)
	if err != nil {
		return "", &SchemeBugError{Scheme: c.scheme.Name(), Stage: "derive key", Err: err}
	}

	fields := make([]string, 0, len(params)+1)
	fields = append(fields, params...)
	fields = append(fields, dkey)

	for i, field := range fields {
		if strings.Contains(field, RecordSeparator) {
			// Field values are secret-adjacent; report the position only.
			return "", &SchemeBugError{
				Scheme: c.scheme.Name(),
				Stage:  "serialize",
				Err:    fmt.Errorf("field %d contains the record separator", i),
			}
		}
	}

	return strings.Join(fields, RecordSeparator), nil
}

// Verify describes the verify operation and its observable behavior.
//
// Verify may return an error when input validation, dependency calls, or security checks fail.
// Verify does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// A tampered or corrupted record is expected-but-rare input: parse and
// parameter failures come back as recoverable errors (wrapping
// [ErrInvalidRecordFormat] or [ErrInvalidParameterCount]), never a panic.
// Callers must map every outcome other than (true, nil) to a plain "password
// incorrect" so that storage internals do not leak into user-facing behavior.
// Key comparison is constant-time.
func (c *Codec) Verify(record, password string) (bool, error) {
	params, expected, err := SplitRecord(record)
	if err != nil {
		return false, err
	}

	dkey, err := c.scheme.DeriveKey(params, password)
	if err != nil {
		return false, fmt.Errorf("derive key: %w", err)
	}

	return subtle.ConstantTimeCompare([]byte(dkey), []byte(expected)) == 1, nil
}

// NeedsRehash describes the needsrehash operation and its observable behavior.
//
// NeedsRehash may return an error when input validation, dependency calls, or security checks fail.
// NeedsRehash does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Staleness is a function of parameters only: the derived key is dropped and
// DeriveKey is never invoked, so the check is cheap enough to run on every
// login. Schemes that do not implement [StalenessChecker] are never stale.
func (c *Codec) NeedsRehash(record string) (bool, error) {
	params, _, err := SplitRecord(record)
	if err != nil {
		return false, err
	}

	checker, ok := c.scheme.(StalenessChecker)
	if !ok {
		return false, nil
	}

	return !checker.PreferredParams(params), nil
}

// SplitRecord describes the splitrecord operation and its observable behavior.
//
// SplitRecord may return an error when input validation, dependency calls, or security checks fail.
// SplitRecord does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The last field is the derived key; the preceding fields are the scheme
// parameters in stored order. An empty record cannot be split and yields
// [ErrInvalidRecordFormat].
func SplitRecord(record string) (params []string, key string, err error) {
	if record == "" {
		return nil, "", fmt.Errorf("%w: empty record", ErrInvalidRecordFormat)
	}

	fields := strings.Split(record, RecordSeparator)
	return fields[:len(fields)-1], fields[len(fields)-1], nil
}
