// Package stream provides the symmetric stream transform used by the ECIES
// pipeline: AES-256 in counter mode with an all-zero initial counter.
//
// A zero counter is only sound because every key comes from a fresh ECIES key
// agreement and encrypts exactly one message.
package stream

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/kochabx/seccure/errors"
)

// KeySize is the AES-256 key length
const KeySize = 32

var (
	ErrKeySize  = errors.Precondition("stream: key must be 32 bytes")
	ErrFinished = errors.Precondition("stream: cipher already finished")
)

// Cipher is a single-use AES-256-CTR keystream.
type Cipher struct {
	s cipher.Stream
}

// New keys a cipher with key. The caller may wipe key once New returns.
func New(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, ErrKeySize
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Provider("stream: aes init failed").WithCause(err)
	}
	iv := make([]byte, aes.BlockSize)
	return &Cipher{s: cipher.NewCTR(block, iv)}, nil
}

// Encrypt transforms buf in place.
func (c *Cipher) Encrypt(buf []byte) error {
	if c.s == nil {
		return ErrFinished
	}
	c.s.XORKeyStream(buf, buf)
	return nil
}

// Decrypt transforms buf in place. CTR decryption equals encryption.
func (c *Cipher) Decrypt(buf []byte) error {
	return c.Encrypt(buf)
}

// Done releases the keystream; further calls fail with ErrFinished.
func (c *Cipher) Done() {
	c.s = nil
}
