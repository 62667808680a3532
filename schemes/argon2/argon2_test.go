package argon2

import (
	"errors"
	"strings"
	"testing"

	paramhash "github.com/paramhash/paramhash"
)

func fastConfig() Config {
	return Config{
		Time:        1,
		MemoryKB:    8 * 1024,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestNewRejectsWeakConfig(t *testing.T) {
	cases := []Config{
		{Time: 1, MemoryKB: 4096, Parallelism: 1, SaltLength: 16, KeyLength: 32},
		{Time: 0, MemoryKB: 8192, Parallelism: 1, SaltLength: 16, KeyLength: 32},
		{Time: 1, MemoryKB: 8192, Parallelism: 0, SaltLength: 16, KeyLength: 32},
		{Time: 1, MemoryKB: 8192, Parallelism: 1, SaltLength: 8, KeyLength: 32},
		{Time: 1, MemoryKB: 8192, Parallelism: 1, SaltLength: 16, KeyLength: 8},
	}
	for _, cfg := range cases {
		if _, err := New(cfg); err == nil {
			t.Fatalf("expected config rejection for %+v", cfg)
		}
	}
}

func TestHashVerifyRoundTrip(t *testing.T) {
	scheme, err := New(fastConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	codec, err := paramhash.NewCodec(scheme)
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}

	record, err := codec.Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !strings.HasPrefix(record, "1:8192:1:32:") {
		t.Fatalf("unexpected record prefix: %q", record)
	}
	if got := len(strings.Split(record, ":")); got != 6 {
		t.Fatalf("expected 6 fields, got %d", got)
	}

	ok, err := codec.Verify(record, "correct horse")
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatal("expected verification to succeed")
	}

	ok, err = codec.Verify(record, "wrong")
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ok {
		t.Fatal("expected wrong password to fail")
	}
}

func TestDeriveKeyArity(t *testing.T) {
	scheme, err := New(fastConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	_, err = scheme.DeriveKey([]string{"1", "8192", "1"}, "p")
	if !errors.Is(err, paramhash.ErrInvalidParameterCount) {
		t.Fatalf("expected ErrInvalidParameterCount, got %v", err)
	}
}

func TestDeriveKeyRejectsCorruptParams(t *testing.T) {
	scheme, err := New(fastConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	salt := strings.Repeat("ab", 16)

	cases := [][]string{
		{"0", "8192", "1", "32", salt},
		{"1", "1024", "1", "32", salt},
		{"1", "8192", "0", "32", salt},
		{"1", "8192", "1", "32", "zz"},
	}
	for _, params := range cases {
		if _, err := scheme.DeriveKey(params, "p"); err == nil {
			t.Fatalf("expected rejection for params %v", params)
		}
	}
}

func TestPreferredParamsAfterCostIncrease(t *testing.T) {
	scheme, err := New(fastConfig())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	codec, err := paramhash.NewCodec(scheme)
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}
	record, err := codec.Hash("p")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	raised := fastConfig()
	raised.MemoryKB = 16 * 1024
	current, err := New(raised)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	currentCodec, err := paramhash.NewCodec(current)
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}

	needs, err := currentCodec.NeedsRehash(record)
	if err != nil {
		t.Fatalf("NeedsRehash error: %v", err)
	}
	if !needs {
		t.Fatal("expected record to need rehash after memory increase")
	}

	ok, err := currentCodec.Verify(record, "p")
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatal("expected old record to verify under raised config")
	}
}
