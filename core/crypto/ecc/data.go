package ecc

import (
	"sync"

	"github.com/kochabx/seccure/core/crypto/internal"
)

// Data is an owned byte buffer produced by a pipeline: ciphertext, plaintext
// or a packed signature. A nil *Data is absent; NewData is empty.
type Data struct {
	mu     sync.Mutex
	buf    []byte
	filled bool
}

// NewData returns an empty, unpopulated buffer.
func NewData() *Data {
	return &Data{buf: []byte{}}
}

func newData(b []byte) *Data {
	d := NewData()
	_ = d.fill(b)
	return d
}

// fill takes ownership of b. A Data is populated at most once.
func (d *Data) fill(b []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.filled {
		return ErrDataPopulated
	}
	if b == nil {
		b = []byte{}
	}
	d.buf, d.filled = b, true
	return nil
}

// Bytes returns the contents. The slice is owned by d.
func (d *Data) Bytes() []byte {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf
}

// Len returns the content length.
func (d *Data) Len() int {
	return len(d.Bytes())
}

// String returns the contents as text, e.g. a compact signature.
func (d *Data) String() string {
	return string(d.Bytes())
}

// Populated reports whether a pipeline has filled d.
func (d *Data) Populated() bool {
	if d == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.filled
}

// Destroy wipes and drops the contents.
func (d *Data) Destroy() {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	internal.Wipe(d.buf)
	d.buf = nil
}
