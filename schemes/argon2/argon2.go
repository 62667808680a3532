// Package argon2 implements an Argon2id scheme for the paramhash codec.
// Record parameters, in stored order: time cost, memory in KB, threads,
// key length, hex salt.
package argon2

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/crypto/argon2"

	"github.com/paramhash/paramhash"
	"github.com/paramhash/paramhash/internal/randhex"
)

const (
	schemeName     = "argon2id"
	paramCount     = 5
	minMemoryKB    uint32 = 8 * 1024
	minTimeCost    uint32 = 1
	minParallelism uint8  = 1
	minSaltLength  uint32 = 16
	minKeyLength   uint32 = 16
)

// Config defines a public type used by paramhash APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Time        uint32
	MemoryKB    uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return Config{
		Time:        3,
		MemoryKB:    64 * 1024,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
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
	if cfg.MemoryKB < minMemoryKB {
		return nil, errors.New("argon2 memory must be >= 8192 KB")
	}
	if cfg.Time < minTimeCost {
		return nil, errors.New("argon2 time must be >= 1")
	}
	if cfg.Parallelism < minParallelism {
		return nil, errors.New("argon2 parallelism must be >= 1")
	}
	if cfg.SaltLength < minSaltLength {
		return nil, errors.New("argon2 salt length must be >= 16")
	}
	if cfg.KeyLength < minKeyLength {
		return nil, errors.New("argon2 key length must be >= 16")
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
	salt, err := randhex.String(int(s.config.SaltLength))
	if err != nil {
		return nil, err
	}
	return []string{
		strconv.FormatUint(uint64(s.config.Time), 10),
		strconv.FormatUint(uint64(s.config.MemoryKB), 10),
		strconv.FormatUint(uint64(s.config.Parallelism), 10),
		strconv.FormatUint(uint64(s.config.KeyLength), 10),
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

	timeCost, err := strconv.ParseUint(params[0], 10, 32)
	if err != nil || uint32(timeCost) < minTimeCost {
		return "", fmt.Errorf("invalid time parameter %q", params[0])
	}
	memoryKB, err := strconv.ParseUint(params[1], 10, 32)
	if err != nil || uint32(memoryKB) < minMemoryKB {
		return "", fmt.Errorf("invalid memory parameter %q", params[1])
	}
	parallelism, err := strconv.ParseUint(params[2], 10, 8)
	if err != nil || uint8(parallelism) < minParallelism {
		return "", fmt.Errorf("invalid parallelism parameter %q", params[2])
	}
	keyLength, err := strconv.ParseUint(params[3], 10, 32)
	if err != nil || uint32(keyLength) < minKeyLength {
		return "", fmt.Errorf("invalid key length parameter %q", params[3])
	}

	salt, err := hex.DecodeString(params[4])
	if err != nil {
		return "", errors.New("invalid salt encoding")
	}
	if uint32(len(salt)) < minSaltLength {
		return "", errors.New("invalid salt length")
	}

	key := argon2.IDKey(
		[]byte(password),
		salt,
		uint32(timeCost),
		uint32(memoryKB),
		uint8(parallelism),
		uint32(keyLength),
	)
	return hex.EncodeToString(key), nil
}

// PreferredParams describes the preferredparams operation and its observable behavior.
//
// PreferredParams does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Scheme) PreferredParams(params []string) bool {
	if len(params) != paramCount {
		return false
	}

	timeCost, err := strconv.ParseUint(params[0], 10, 32)
	if err != nil {
		return false
	}
	memoryKB, err := strconv.ParseUint(params[1], 10, 32)
	if err != nil {
		return false
	}
	parallelism, err := strconv.ParseUint(params[2], 10, 8)
	if err != nil {
		return false
	}
	keyLength, err := strconv.ParseUint(params[3], 10, 32)
	if err != nil {
		return false
	}

	return uint32(timeCost) >= s.config.Time &&
		uint32(memoryKB) >= s.config.MemoryKB &&
		uint8(parallelism) >= s.config.Parallelism &&
		uint32(keyLength) == s.config.KeyLength
}
