package paramhash

import "fmt"

// Scheme defines a public type used by paramhash APIs.
//
// Scheme instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// A Scheme supplies the key-derivation step for one hashing algorithm. The
// codec owns all record serialization: a scheme never sees colon-delimited
// text, only the ordered parameter list recovered from it. Parameter values
// and derived keys must not contain the ":" separator; [Codec.Hash] rejects
// records that would violate this.
type Scheme interface {
	// Name is the stable short identity of the algorithm (e.g. "pbkdf2").
	// It is used for registry lookup and audit labels, never serialized
	// into records.
	Name() string

	// DefaultParams returns the ordered parameters for a new hash. Any
	// salt-like parameter must be freshly generated from a
	// cryptographically secure source on every call.
	DefaultParams() ([]string, error)

	// DeriveKey computes the derived key for the given parameters and
	// password. It is called identically from the hash and verify paths
	// and must be deterministic for a fixed (params, password) pair.
	DeriveKey(params []string, password string) (string, error)
}

// StalenessChecker is an optional Scheme capability: schemes that can judge
// whether stored parameters still match their current recommended
// configuration implement it. Schemes without it are treated as always
// preferred (never stale).
type StalenessChecker interface {
	PreferredParams(params []string) bool
}

// CheckParamCount describes the checkparamcount operation and its observable behavior.
//
// CheckParamCount may return an error when input validation, dependency calls, or security checks fail.
// CheckParamCount does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// It is the arity guard schemes call at the top of DeriveKey: a parameter list
// of the wrong length signals a corrupted or foreign-format record and yields
// [ErrInvalidParameterCount], never a panic.
func CheckParamCount(params []string, want int) error {
	if len(params) != want {
		return fmt.Errorf("%w: got %d, want %d", ErrInvalidParameterCount, len(params), want)
	}
	return nil
}
