// Package scrypt implements an scrypt scheme for the paramhash codec.
// Record parameters, in stored order: N, r, p, key length, hex salt.
package scrypt

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/crypto/scrypt"

	"github.com/paramhash/paramhash"
	"github.com/paramhash/paramhash/internal/randhex"
)

const (
	schemeName    = "scrypt"
	paramCount    = 5
	minN          = 1 << 14
	minSaltLength = 16
	minKeyLength  = 16
)

// Config defines a public type used by paramhash APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	N          int
	R          int
	P          int
	SaltLength int
	KeyLength  int
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return Config{
		N:          1 << 15,
		R:          8,
		P:          1,
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
	if cfg.N < minN || cfg.N&(cfg.N-1) != 0 {
		return nil, errors.New("scrypt N must be a power of two >= 16384")
	}
	if cfg.R < 1 {
		return nil, errors.New("scrypt r must be >= 1")
	}
	if cfg.P < 1 {
		return nil, errors.New("scrypt p must be >= 1")
	}
	if cfg.SaltLength < minSaltLength {
		return nil, errors.New("scrypt salt length must be >= 16")
	}
	if cfg.KeyLength < minKeyLength {
		return nil, errors.New("scrypt key length must be >= 16")
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
		strconv.Itoa(s.config.N),
		strconv.Itoa(s.config.R),
		strconv.Itoa(s.config.P),
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

	n, err := strconv.Atoi(params[0])
	if err != nil || n < minN || n&(n-1) != 0 {
		return "", fmt.Errorf("invalid N parameter %q", params[0])
	}
	r, err := strconv.Atoi(params[1])
	if err != nil || r < 1 {
		return "", fmt.Errorf("invalid r parameter %q", params[1])
	}
	p, err := strconv.Atoi(params[2])
	if err != nil || p < 1 {
		return "", fmt.Errorf("invalid p parameter %q", params[2])
	}
	keyLength, err := strconv.Atoi(params[3])
	if err != nil || keyLength < minKeyLength {
		return "", fmt.Errorf("invalid key length parameter %q", params[3])
	}

	salt, err := hex.DecodeString(params[4])
	if err != nil {
		return "", errors.New("invalid salt encoding")
	}
	if len(salt) < minSaltLength {
		return "", errors.New("invalid salt length")
	}

	key, err := scrypt.Key([]byte(password), salt, n, r, p, keyLength)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(key), nil
}

// PreferredParams describes the preferredparams operation and its observable behavior.
//
// PreferredParams does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Scheme) PreferredParams(params []string) bool {
	if len(params) != paramCount {
		return false
	}

	n, err := strconv.Atoi(params[0])
	if err != nil {
		return false
	}
	r, err := strconv.Atoi(params[1])
	if err != nil {
		return false
	}
	p, err := strconv.Atoi(params[2])
	if err != nil {
		return false
	}
	keyLength, err := strconv.Atoi(params[3])
	if err != nil {
		return false
	}

	return n >= s.config.N && r >= s.config.R && p >= s.config.P && keyLength == s.config.KeyLength
}
