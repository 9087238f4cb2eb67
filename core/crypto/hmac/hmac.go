// Package hmac provides the keyed MAC transform used by the ECIES pipeline:
// HMAC-SHA256 truncated to a fixed tag length.
package hmac

import (
	"crypto/hmac"
	"crypto/sha256"
	"hash"

	"github.com/kochabx/seccure/errors"
)

const (
	// KeySize is the required MAC key length
	KeySize = 32

	// DefaultSize is the default tag length (80 bits)
	DefaultSize = 10

	// MinSize and MaxSize bound the configurable tag length
	MinSize = 10
	MaxSize = sha256.Size
)

var (
	ErrKeySize = errors.Precondition("hmac: key must be 32 bytes")
	ErrTagSize = errors.Precondition("hmac: tag size out of range")
)

// Option configures a MAC
type Option struct {
	size int
}

// WithSize sets the tag length in bytes, default DefaultSize
func WithSize(n int) func(*Option) {
	return func(o *Option) {
		o.size = n
	}
}

// MAC accumulates data and produces a truncated HMAC-SHA256 tag.
type MAC struct {
	h    hash.Hash
	size int
}

// New returns a MAC keyed with key. The key is not retained by the caller's
// slice; it can be wiped as soon as New returns.
func New(key []byte, opts ...func(*Option)) (*MAC, error) {
	if len(key) != KeySize {
		return nil, ErrKeySize
	}

	opt := &Option{size: DefaultSize}
	for _, o := range opts {
		o(opt)
	}
	if opt.size < MinSize || opt.size > MaxSize {
		return nil, ErrTagSize.WithCausef("size %d", opt.size)
	}

	return &MAC{
		h:    hmac.New(sha256.New, key),
		size: opt.size,
	}, nil
}

// Write adds p to the MAC input. It never returns an error.
func (m *MAC) Write(p []byte) (int, error) {
	return m.h.Write(p)
}

// Size returns the tag length
func (m *MAC) Size() int {
	return m.size
}

// Sum returns the truncated tag of everything written so far.
func (m *MAC) Sum() []byte {
	full := m.h.Sum(nil)
	tag := make([]byte, m.size)
	copy(tag, full)
	clear(full)
	return tag
}

// Verify compares tag against the computed tag in constant time.
func (m *MAC) Verify(tag []byte) bool {
	if len(tag) != m.size {
		return false
	}
	return hmac.Equal(m.Sum(), tag)
}

// Sum computes the tag of data under key in one call.
func Sum(key, data []byte, opts ...func(*Option)) ([]byte, error) {
	m, err := New(key, opts...)
	if err != nil {
		return nil, err
	}
	m.Write(data)
	return m.Sum(), nil
}

// Equal compares two tags in constant time.
func Equal(a, b []byte) bool {
	return hmac.Equal(a, b)
}
