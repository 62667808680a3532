package paramhash

import (
	"fmt"
	"sort"
	"sync"
)

// Registry defines a public type used by paramhash APIs.
//
// Registry instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// A Registry maps scheme names to [Scheme] instances. Registration order is
// the trial order [Registry.VerifyAny] uses to resolve legacy records that
// carry no scheme label of their own.
type Registry struct {
	mu      sync.RWMutex
	schemes map[string]Scheme
	order   []string
}

// NewRegistry describes the newregistry operation and its observable behavior.
//
// NewRegistry may return an error when input validation, dependency calls, or security checks fail.
// NewRegistry does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewRegistry(schemes ...Scheme) (*Registry, error) {
	r := &Registry{
		schemes: make(map[string]Scheme, len(schemes)),
	}
	for _, s := range schemes {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register describes the register operation and its observable behavior.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
// Register does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *Registry) Register(s Scheme) error {
	if s == nil {
		return fmt.Errorf("%w: nil scheme", ErrUnknownScheme)
	}
	name := s.Name()
	if name == "" {
		return fmt.Errorf("%w: empty scheme name", ErrUnknownScheme)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.schemes[name]; ok {
		return fmt.Errorf("%w: %s", ErrSchemeExists, name)
	}

	r.schemes[name] = s
	r.order = append(r.order, name)
	return nil
}

// Get describes the get operation and its observable behavior.
//
// Get may return an error when input validation, dependency calls, or security checks fail.
// Get does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *Registry) Get(name string) (Scheme, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScheme, name)
	}
	return s, nil
}

// Codec describes the codec operation and its observable behavior.
//
// Codec may return an error when input validation, dependency calls, or security checks fail.
// Codec does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *Registry) Codec(name string) (*Codec, error) {
	s, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return NewCodec(s)
}

// Names returns the registered scheme names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	sort.Strings(out)
	return out
}

// VerifyAny describes the verifyany operation and its observable behavior.
//
// VerifyAny may return an error when input validation, dependency calls, or security checks fail.
// VerifyAny does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Stored records carry no scheme label, so VerifyAny tries each registered
// scheme in registration order and reports the name of the first one whose
// derived key matches. A record no scheme could even parse comes back as a
// recoverable error; a well-formed record that matches nothing is simply
// (_, false, nil).
func (r *Registry) VerifyAny(record, password string) (scheme string, ok bool, err error) {
	r.mu.RLock()
	order := make([]string, len(r.order))
	copy(order, r.order)
	schemes := make(map[string]Scheme, len(r.schemes))
	for name, s := range r.schemes {
		schemes[name] = s
	}
	r.mu.RUnlock()

	if len(order) == 0 {
		return "", false, fmt.Errorf("%w: registry is empty", ErrUnknownScheme)
	}

	var (
		firstErr   error
		wellFormed bool
	)
	for _, name := range order {
		c := Codec{scheme: schemes[name]}

		matched, verr := c.Verify(record, password)
		if verr != nil {
			if firstErr == nil {
				firstErr = verr
			}
			continue
		}
		if matched {
			return name, true, nil
		}
		wellFormed = true
	}

	if wellFormed {
		return "", false, nil
	}
	return "", false, firstErr
}
