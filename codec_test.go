package paramhash

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/paramhash/paramhash/internal/randhex"
)

// fakeScheme derives sha256(iterations|salt|password|name). Cheap enough for
// tight test loops, parameterized the same way as a real KDF scheme:
// params are [iterations, hex salt].
type fakeScheme struct {
	name         string
	iterations   int
	preferred    int
	saltOverride string
	defaultErr   error
	deriveCalls  atomic.Int64
}

func newFakeScheme(name string, iterations, preferred int) *fakeScheme {
	return &fakeScheme{name: name, iterations: iterations, preferred: preferred}
}

func (s *fakeScheme) Name() string {
	return s.name
}

func (s *fakeScheme) DefaultParams() ([]string, error) {
	if s.defaultErr != nil {
		return nil, s.defaultErr
	}

	salt := s.saltOverride
	if salt == "" {
		var err error
		salt, err = randhex.String(16)
		if err != nil {
			return nil, err
		}
	}
	return []string{strconv.Itoa(s.iterations), salt}, nil
}

func (s *fakeScheme) DeriveKey(params []string, password string) (string, error) {
	s.deriveCalls.Add(1)

	if err := CheckParamCount(params, 2); err != nil {
		return "", err
	}
	if _, err := strconv.Atoi(params[0]); err != nil {
		return "", fmt.Errorf("invalid iteration parameter %q", params[0])
	}

	sum := sha256.Sum256([]byte(params[0] + "|" + params[1] + "|" + password + "|" + s.name))
	return hex.EncodeToString(sum[:]), nil
}

func (s *fakeScheme) PreferredParams(params []string) bool {
	if len(params) != 2 {
		return false
	}
	iterations, err := strconv.Atoi(params[0])
	if err != nil {
		return false
	}
	return iterations >= s.preferred
}

// Scheme without the StalenessChecker capability at all.
type minimalScheme struct {
	inner *fakeScheme
}

func (s *minimalScheme) Name() string                     { return s.inner.Name() }
func (s *minimalScheme) DefaultParams() ([]string, error) { return s.inner.DefaultParams() }
func (s *minimalScheme) DeriveKey(params []string, password string) (string, error) {
	return s.inner.DeriveKey(params, password)
}

func mustCodec(t *testing.T, s Scheme) *Codec {
	t.Helper()
	c, err := NewCodec(s)
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}
	return c
}

func TestHashVerifyRoundTrip(t *testing.T) {
	codec := mustCodec(t, newFakeScheme("fake", 16384, 16384))

	record, err := codec.Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	fields := strings.Split(record, RecordSeparator)
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d (%q)", len(fields), record)
	}
	if fields[0] != "16384" {
		t.Fatalf("expected iteration field first, got %q", fields[0])
	}

	ok, err := codec.Verify(record, "correct horse")
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatal("expected round-trip verification to succeed")
	}
}

func TestVerifyWrongPassword(t *testing.T) {
	codec := mustCodec(t, newFakeScheme("fake", 16384, 16384))

	record, err := codec.Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	ok, err := codec.Verify(record, "wrong")
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ok {
		t.Fatal("expected wrong password verification to fail")
	}
}

func TestHashFreshSaltPerCall(t *testing.T) {
	codec := mustCodec(t, newFakeScheme("fake", 16384, 16384))

	a, err := codec.Hash("p")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	b, err := codec.Hash("p")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if a == b {
		t.Fatal("expected fresh salt to produce distinct records")
	}
}

func TestVerifyTamperedKey(t *testing.T) {
	codec := mustCodec(t, newFakeScheme("fake", 16384, 16384))

	record, err := codec.Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	// Flip the last byte of the key field.
	last := record[len(record)-1]
	flipped := byte('0')
	if last == '0' {
		flipped = '1'
	}
	tampered := record[:len(record)-1] + string(flipped)

	ok, err := codec.Verify(tampered, "correct horse")
	if err != nil {
		t.Fatalf("expected tampered key to be a mismatch, not an error: %v", err)
	}
	if ok {
		t.Fatal("expected tampered record to fail verification")
	}
}

func TestVerifyEmptyRecord(t *testing.T) {
	codec := mustCodec(t, newFakeScheme("fake", 16384, 16384))

	ok, err := codec.Verify("", "x")
	if ok {
		t.Fatal("expected empty record to fail verification")
	}
	if !errors.Is(err, ErrInvalidRecordFormat) {
		t.Fatalf("expected ErrInvalidRecordFormat, got %v", err)
	}
}

func TestVerifyNoSeparators(t *testing.T) {
	codec := mustCodec(t, newFakeScheme("fake", 16384, 16384))

	ok, err := codec.Verify("garbage", "x")
	if ok {
		t.Fatal("expected garbage record to fail verification")
	}
	if !errors.Is(err, ErrInvalidParameterCount) {
		t.Fatalf("expected ErrInvalidParameterCount, got %v", err)
	}
}

func TestDeriveKeyDeterministic(t *testing.T) {
	scheme := newFakeScheme("fake", 16384, 16384)
	params := []string{"16384", "00112233445566778899aabbccddeeff"}

	a, err := scheme.DeriveKey(params, "p")
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}
	b, err := scheme.DeriveKey(params, "p")
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}
	if a != b {
		t.Fatal("expected DeriveKey to be deterministic for fixed params")
	}
}

func TestCheckParamCount(t *testing.T) {
	if err := CheckParamCount([]string{"a", "b"}, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := CheckParamCount([]string{"a"}, 2)
	if !errors.Is(err, ErrInvalidParameterCount) {
		t.Fatalf("expected ErrInvalidParameterCount, got %v", err)
	}
}

func TestNeedsRehashStaleAndCurrent(t *testing.T) {
	scheme := newFakeScheme("fake", 16384, 16384)
	codec := mustCodec(t, scheme)

	stale := "8192:00112233445566778899aabbccddeeff:deadbeef"
	current := "16384:00112233445566778899aabbccddeeff:deadbeef"

	before := scheme.deriveCalls.Load()

	needs, err := codec.NeedsRehash(stale)
	if err != nil {
		t.Fatalf("NeedsRehash error: %v", err)
	}
	if !needs {
		t.Fatal("expected stale parameters to need a rehash")
	}

	needs, err = codec.NeedsRehash(current)
	if err != nil {
		t.Fatalf("NeedsRehash error: %v", err)
	}
	if needs {
		t.Fatal("expected current parameters to not need a rehash")
	}

	if scheme.deriveCalls.Load() != before {
		t.Fatal("NeedsRehash must never invoke DeriveKey")
	}
}

func TestNeedsRehashWithoutChecker(t *testing.T) {
	codec := mustCodec(t, &minimalScheme{inner: newFakeScheme("min", 1, 1)})

	needs, err := codec.NeedsRehash("1:00112233445566778899aabbccddeeff:deadbeef")
	if err != nil {
		t.Fatalf("NeedsRehash error: %v", err)
	}
	if needs {
		t.Fatal("schemes without a staleness opinion are never stale")
	}
}

func TestNeedsRehashEmptyRecord(t *testing.T) {
	codec := mustCodec(t, newFakeScheme("fake", 16384, 16384))

	if _, err := codec.NeedsRehash(""); !errors.Is(err, ErrInvalidRecordFormat) {
		t.Fatalf("expected ErrInvalidRecordFormat, got %v", err)
	}
}

func TestHashRejectsSeparatorInField(t *testing.T) {
	scheme := newFakeScheme("fake", 16384, 16384)
	scheme.saltOverride = "ab:cd"
	codec := mustCodec(t, scheme)

	_, err := codec.Hash("p")
	var bug *SchemeBugError
	if !errors.As(err, &bug) {
		t.Fatalf("expected SchemeBugError, got %v", err)
	}
	if bug.Stage != "serialize" {
		t.Fatalf("expected serialize stage, got %q", bug.Stage)
	}
}

func TestHashDefaultParamsFailureIsSchemeBug(t *testing.T) {
	scheme := newFakeScheme("fake", 16384, 16384)
	scheme.defaultErr = errors.New("entropy source broken")
	codec := mustCodec(t, scheme)

	_, err := codec.Hash("p")
	var bug *SchemeBugError
	if !errors.As(err, &bug) {
		t.Fatalf("expected SchemeBugError, got %v", err)
	}
	if bug.Scheme != "fake" || bug.Stage != "default params" {
		t.Fatalf("unexpected bug report: %+v", bug)
	}
}

func TestNewCodecNilScheme(t *testing.T) {
	if _, err := NewCodec(nil); err == nil {
		t.Fatal("expected error for nil scheme")
	}
}

func TestSplitRecordKeyLast(t *testing.T) {
	params, key, err := SplitRecord("16384:salt:dkey")
	if err != nil {
		t.Fatalf("SplitRecord error: %v", err)
	}
	if key != "dkey" {
		t.Fatalf("expected key last, got %q", key)
	}
	if len(params) != 2 || params[0] != "16384" || params[1] != "salt" {
		t.Fatalf("unexpected params: %v", params)
	}
}
