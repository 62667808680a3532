package pbkdf2

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/crypto/pbkdf2"

	"github.com/paramhash/paramhash"
	"github.com/paramhash/paramhash/internal/randhex"
)

const (
	schemeName    = "pbkdf2"
	paramCount    = 3
	minIterations = 1000
	minSaltLength = 16
	minKeyLength  = 16
)

// Config defines a public type used by paramhash APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Iterations int
	SaltLength int
	KeyLength  int
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return Config{
		Iterations: 600000,
		SaltLength: 16,
		KeyLength:  32,
	}
}

// Scheme defines a public type used by paramhash APIs.
//
// Scheme instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Scheme struct {
	config Config
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New(cfg Config) (*Scheme, error) {
	if cfg.Iterations < minIterations {
		return nil, errors.New("pbkdf2 iterations must be >= 1000")
	}
	if cfg.SaltLength < minSaltLength {
		return nil, errors.New("pbkdf2 salt length must be >= 16")
	}
	if cfg.KeyLength < minKeyLength {
		return nil, errors.New("pbkdf2 key length must be >= 16")
	}
	return &Scheme{config: cfg}, nil
}

// Name describes the name operation and its observable behavior.
//
// Name does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Scheme) Name() string {
	return schemeName
}

// DefaultParams describes the defaultparams operation and its observable behavior.
//
// DefaultParams may return an error when input validation, dependency calls, or security checks fail.
// DefaultParams does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Scheme) DefaultParams() ([]string, error) {
	salt, err := randhex.String(s.config.SaltLength)
	if err != nil {
		return nil, err
	}
	return []string{
		strconv.Itoa(s.config.Iterations),
		strconv.Itoa(s.config.KeyLength),
		salt,
	}, nil
}

// DeriveKey describes the derivekey operation and its observable behavior.
//
// DeriveKey may return an error when input validation, dependency calls, or security checks fail.
// DeriveKey does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Scheme) DeriveKey(params []string, password string) (string, error) {
	if err := paramhash.CheckParamCount(params, paramCount); err != nil {
		return "", err
	}

	iterations, err := strconv.Atoi(params[0])
	if err != nil || iterations < minIterations {
		return "", fmt.Errorf("invalid iteration parameter %q", params[0])
	}

	keyLength, err := strconv.Atoi(params[1])
	if err != nil || keyLength < minKeyLength {
		return "", fmt.Errorf("invalid key length parameter %q", params[1])
	}

	salt, err := hex.DecodeString(params[2])
	if err != nil {
		return "", errors.New("invalid salt encoding")
	}
	if len(salt) < minSaltLength {
		return "", errors.New("invalid salt length")
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)
	return hex.EncodeToString(key), nil
}

// PreferredParams describes the preferredparams operation and its observable behavior.
//
// PreferredParams does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Unparseable parameters report as not preferred so that rehash-on-login
// repairs them.
func (s *Scheme) PreferredParams(params []string) bool {
	if len(params) != paramCount {
		return false
	}

	iterations, err := strconv.Atoi(params[0])
	if err != nil {
		return false
	}
	keyLength, err := strconv.Atoi(params[1])
	if err != nil {
		return false
	}

	return iterations >= s.config.Iterations && keyLength == s.config.KeyLength
}
