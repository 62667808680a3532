package randhex

import (
	"encoding/hex"
	"testing"
)

func TestBytesLength(t *testing.T) {
	buf, err := Bytes(16)
	if err != nil {
		t.Fatalf("Bytes error: %v", err)
	}
	if len(buf) != 16 {
		t.Fatalf("expected 16 bytes, got %d", len(buf))
	}
}

func TestStringIsHexAndFresh(t *testing.T) {
	a, err := String(16)
	if err != nil {
		t.Fatalf("String error: %v", err)
	}
	if len(a) != 32 {
		t.Fatalf("expected 32 hex chars, got %d", len(a))
	}
	if _, err := hex.DecodeString(a); err != nil {
		t.Fatalf("not valid hex: %v", err)
	}

	b, err := String(16)
	if err != nil {
		t.Fatalf("String error: %v", err)
	}
	if a == b {
		t.Fatal("expected fresh randomness on every call")
	}
}
