package paramhash

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// CredentialStore defines a public type used by paramhash APIs.
//
// CredentialStore instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// A CredentialStore persists serialized records keyed by account identity.
// The framework never interprets account IDs; records are opaque strings to
// the store. A missing account is reported with [ErrAccountNotFound]; backend
// failures wrap [ErrStoreUnavailable].
type CredentialStore interface {
	Load(ctx context.Context, accountID string) (string, error)
	Save(ctx context.Context, accountID, record string) error
}

/*
====================================
MEMORY STORE
====================================
*/

// MemoryCredentialStore defines a public type used by paramhash APIs.
//
// MemoryCredentialStore instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MemoryCredentialStore struct {
	mu      sync.RWMutex
	records map[string]string
}

// NewMemoryCredentialStore describes the newmemorycredentialstore operation and its observable behavior.
//
// NewMemoryCredentialStore may return an error when input validation, dependency calls, or security checks fail.
// NewMemoryCredentialStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{
		records: make(map[string]string),
	}
}

// Load describes the load operation and its observable behavior.
//
// Load may return an error when input validation, dependency calls, or security checks fail.
// Load does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MemoryCredentialStore) Load(_ context.Context, accountID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[accountID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	return record, nil
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation, dependency calls, or security checks fail.
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MemoryCredentialStore) Save(_ context.Context, accountID, record string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[accountID] = record
	return nil
}

/*
====================================
REDIS STORE
====================================
*/

const credentialKeyPrefix = "phc"

// RedisCredentialStore defines a public type used by paramhash APIs.
//
// RedisCredentialStore instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RedisCredentialStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisCredentialStore describes the newrediscredentialstore operation and its observable behavior.
//
// NewRedisCredentialStore may return an error when input validation, dependency calls, or security checks fail.
// NewRedisCredentialStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewRedisCredentialStore(client redis.UniversalClient, prefix string) *RedisCredentialStore {
	if prefix == "" {
		prefix = credentialKeyPrefix
	}
	return &RedisCredentialStore{
		redis:  client,
		prefix: prefix,
	}
}

func (s *RedisCredentialStore) key(accountID string) string {
	return s.prefix + ":" + accountID
}

// Load describes the load operation and its observable behavior.
//
// Load may return an error when input validation, dependency calls, or security checks fail.
// Load does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisCredentialStore) Load(ctx context.Context, accountID string) (string, error) {
	record, err := s.redis.Get(ctx, s.key(accountID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return record, nil
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation, dependency calls, or security checks fail.
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisCredentialStore) Save(ctx context.Context, accountID, record string) error {
	if err := s.redis.Set(ctx, s.key(accountID), record, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
