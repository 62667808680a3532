package paramhash

import (
	"context"
	"errors"
	"fmt"
)

// Authenticator defines a public type used by paramhash APIs.
//
// Authenticator instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// An Authenticator combines a [Registry], a [CredentialStore], and a preferred
// scheme into the login-facing surface: set a password, verify a login, and
// transparently migrate stale records on successful logins. Construct one
// through [Builder.Build].
type Authenticator struct {
	cfg       Config
	registry  *Registry
	store     CredentialStore
	preferred *Codec
	metrics   *Metrics
	audit     *auditDispatcher
	ready     bool
}

// SetPassword describes the setpassword operation and its observable behavior.
//
// SetPassword may return an error when input validation, dependency calls, or security checks fail.
// SetPassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The password is hashed under the preferred scheme with fresh default
// parameters. A hash-path failure is a *[SchemeBugError] and propagates hard:
// it means the deployment is misconfigured, not that the caller did anything
// wrong.
func (a *Authenticator) SetPassword(ctx context.Context, accountID, password string) error {
	if a == nil || !a.ready {
		return ErrAuthenticatorNotReady
	}

	record, err := a.preferred.Hash(password)
	if err != nil {
		a.emit(ctx, AuditEvent{
			EventType: EventPasswordSet,
			AccountID: accountID,
			Scheme:    a.preferred.Scheme().Name(),
			Error:     err.Error(),
		})
		return err
	}

	if err := a.store.Save(ctx, accountID, record); err != nil {
		a.emit(ctx, AuditEvent{
			EventType: EventPasswordSet,
			AccountID: accountID,
			Scheme:    a.preferred.Scheme().Name(),
			Error:     err.Error(),
		})
		return err
	}

	a.metrics.Inc(MetricPasswordSet)
	a.emit(ctx, AuditEvent{
		EventType: EventPasswordSet,
		AccountID: accountID,
		Scheme:    a.preferred.Scheme().Name(),
		Success:   true,
	})
	return nil
}

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// A wrong password, an unknown account, and a corrupt stored record are all
// (false, nil): callers must not be able to distinguish them in user-facing
// behavior. A non-nil error is reserved for backend failures (store
// unavailable, authenticator not built). On success with RehashOnLogin set,
// a record that is stale — scheme no longer preferred, or parameters behind
// the scheme's current configuration — is rewritten best-effort.
func (a *Authenticator) Login(ctx context.Context, accountID, password string) (bool, error) {
	if a == nil || !a.ready {
		return false, ErrAuthenticatorNotReady
	}

	record, err := a.store.Load(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			a.metrics.Inc(MetricLoginFailure)
			a.emit(ctx, AuditEvent{
				EventType: EventLogin,
				AccountID: accountID,
				Error:     "unknown account",
			})
			return false, nil
		}
		return false, fmt.Errorf("load credential: %w", err)
	}

	scheme, ok, err := a.registry.VerifyAny(record, password)
	if err != nil {
		a.metrics.Inc(MetricRecordMalformed)
		a.metrics.Inc(MetricLoginFailure)
		a.emit(ctx, AuditEvent{
			EventType: EventLogin,
			AccountID: accountID,
			Error:     err.Error(),
		})
		return false, nil
	}
	if !ok {
		a.metrics.Inc(MetricLoginFailure)
		a.emit(ctx, AuditEvent{
			EventType: EventLogin,
			AccountID: accountID,
		})
		return false, nil
	}

	a.metrics.Inc(MetricLoginSuccess)
	a.emit(ctx, AuditEvent{
		EventType: EventLogin,
		AccountID: accountID,
		Scheme:    scheme,
		Success:   true,
	})

	if a.cfg.RehashOnLogin {
		a.rehashIfStale(ctx, accountID, scheme, record, password)
	}

	return true, nil
}

// rehashIfStale rewrites the record under the preferred scheme when the
// stored one matched a non-preferred scheme or carries stale parameters.
// Failures are recorded but never surfaced: the login already succeeded.
func (a *Authenticator) rehashIfStale(ctx context.Context, accountID, scheme, record, password string) {
	if scheme == a.cfg.PreferredScheme {
		needs, err := a.preferred.NeedsRehash(record)
		if err != nil || !needs {
			return
		}
	}

	upgraded, err := a.preferred.Hash(password)
	if err != nil {
		a.metrics.Inc(MetricRehashFailed)
		a.emit(ctx, AuditEvent{
			EventType: EventRehash,
			AccountID: accountID,
			Scheme:    a.cfg.PreferredScheme,
			Error:     err.Error(),
		})
		return
	}

	if err := a.store.Save(ctx, accountID, upgraded); err != nil {
		a.metrics.Inc(MetricRehashFailed)
		a.emit(ctx, AuditEvent{
			EventType: EventRehash,
			AccountID: accountID,
			Scheme:    a.cfg.PreferredScheme,
			Error:     err.Error(),
		})
		return
	}

	a.metrics.Inc(MetricRehashPerformed)
	a.emit(ctx, AuditEvent{
		EventType: EventRehash,
		AccountID: accountID,
		Scheme:    a.cfg.PreferredScheme,
		Success:   true,
		Metadata: map[string]string{
			"previous_scheme": scheme,
		},
	})
}

func (a *Authenticator) emit(ctx context.Context, event AuditEvent) {
	a.audit.Emit(ctx, event)
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Authenticator) MetricsSnapshot() MetricsSnapshot {
	if a == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return a.metrics.Snapshot()
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (a *Authenticator) AuditDropped() uint64 {
	if a == nil {
		return 0
	}
	return a.audit.Dropped()
}

// Close drains and stops the audit dispatcher. The authenticator must not be
// used after Close.
func (a *Authenticator) Close() {
	if a == nil {
		return
	}
	a.audit.Close()
}
