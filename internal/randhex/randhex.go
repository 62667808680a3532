// Package randhex generates hex-encoded salt material from crypto/rand.
package randhex

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Bytes returns n securely random bytes.
func Bytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	return buf, nil
}

// String returns a securely random hex string of length 2*n.
func String(n int) (string, error) {
	buf, err := Bytes(n)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
