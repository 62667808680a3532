package paramhash

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRecordFormat is an exported constant or variable used by the password-hash framework.
	ErrInvalidRecordFormat = errors.New("invalid record format")
	// ErrInvalidParameterCount is an exported constant or variable used by the password-hash framework.
	ErrInvalidParameterCount = errors.New("invalid parameter count")
	// ErrUnknownScheme is an exported constant or variable used by the password-hash framework.
	ErrUnknownScheme = errors.New("unknown scheme")
	// ErrSchemeExists is an exported constant or variable used by the password-hash framework.
	ErrSchemeExists = errors.New("scheme already registered")
	// ErrAccountNotFound is an exported constant or variable used by the password-hash framework.
	ErrAccountNotFound = errors.New("account not found")
	// ErrStoreUnavailable is an exported constant or variable used by the password-hash framework.
	ErrStoreUnavailable = errors.New("credential store unavailable")
	// ErrAuthenticatorNotReady is an exported constant or variable used by the password-hash framework.
	ErrAuthenticatorNotReady = errors.New("authenticator not initialized")
)

// SchemeBugError reports a failure on the hash path: default parameters or key
// derivation over self-generated parameters failed, or a scheme emitted a
// field containing the record separator. These conditions indicate a bug in
// the scheme implementation, never bad caller input, and must be surfaced
// loudly instead of being treated as a login failure.
type SchemeBugError struct {
	Scheme string
	Stage  string
	Err    error
}

func (e *SchemeBugError) Error() string {
	return fmt.Sprintf("scheme %q bug during %s: %v", e.Scheme, e.Stage, e.Err)
}

func (e *SchemeBugError) Unwrap() error {
	return e.Err
}
