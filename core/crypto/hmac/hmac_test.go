package hmac

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"testing"

	"github.com/kochabx/seccure/errors"
)

func testKey() []byte {
	return bytes.Repeat([]byte{0x42}, KeySize)
}

func TestMatchesTruncatedHMAC(t *testing.T) {
	key := testKey()
	data := []byte("ephemeral point || ciphertext")

	h := hmac.New(sha256.New, key)
	h.Write(data)
	want := h.Sum(nil)[:DefaultSize]

	got, err := Sum(key, data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Sum() = %x, want %x", got, want)
	}
}

func TestIncrementalWrites(t *testing.T) {
	m, err := New(testKey())
	if err != nil {
		t.Fatal(err)
	}
	m.Write([]byte("ephemeral point || "))
	m.Write([]byte("ciphertext"))

	one, _ := Sum(testKey(), []byte("ephemeral point || ciphertext"))
	if !m.Verify(one) {
		t.Error("incremental tag should match one-shot tag")
	}
}

func TestVerifyRejects(t *testing.T) {
	m, _ := New(testKey())
	m.Write([]byte("payload"))
	tag := m.Sum()

	tampered := append([]byte(nil), tag...)
	tampered[0] ^= 0x01
	if m.Verify(tampered) {
		t.Error("tampered tag accepted")
	}
	if m.Verify(tag[:len(tag)-1]) {
		t.Error("short tag accepted")
	}
	if !m.Verify(tag) {
		t.Error("valid tag rejected")
	}
}

func TestWithSize(t *testing.T) {
	tag, err := Sum(testKey(), []byte("x"), WithSize(MaxSize))
	if err != nil {
		t.Fatal(err)
	}
	if len(tag) != MaxSize {
		t.Errorf("tag length = %d, want %d", len(tag), MaxSize)
	}

	if _, err := New(testKey(), WithSize(4)); !errors.Is(err, ErrTagSize) {
		t.Errorf("expected ErrTagSize, got %v", err)
	}
	if _, err := New(testKey(), WithSize(33)); !errors.Is(err, ErrTagSize) {
		t.Errorf("expected ErrTagSize, got %v", err)
	}
}

func TestKeySize(t *testing.T) {
	if _, err := New([]byte("short")); !errors.Is(err, ErrKeySize) {
		t.Errorf("expected ErrKeySize, got %v", err)
	}
}
