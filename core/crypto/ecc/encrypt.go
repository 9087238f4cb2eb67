package ecc

import (
	"time"

	"github.com/kochabx/seccure/core/crypto/hmac"
	"github.com/kochabx/seccure/core/crypto/mpi"
	"github.com/kochabx/seccure/core/crypto/stream"
)

// Encrypt encrypts plaintext to the public component of kp. The result is
//
//	[R: PkLenBin][ciphertext: len(plaintext)][tag: MACLen]
//
// where R is the ephemeral point, the ciphertext is AES-256-CTR and the tag
// is a truncated HMAC-SHA256 over R and the ciphertext.
func Encrypt(plaintext []byte, kp *KeyPair, st *State) (out *Data, err error) {
	defer func(start time.Time) { st.observe("encrypt", start, err) }(time.Now())

	if err := requireState(st); err != nil {
		return nil, err
	}
	if err := requireInput(plaintext); err != nil {
		return nil, err
	}
	pub, err := requirePublic(kp, st)
	if err != nil {
		return nil, err
	}

	params := st.params
	q, err := params.Decode(pub, mpi.FormCompact)
	if err != nil {
		return nil, ErrInvalidPublicKey.WithCause(err)
	}
	defer q.Release()

	kb, r, err := eciesEncryption(st, q)
	if err != nil {
		return nil, err
	}
	defer kb.Free()
	defer r.Release()

	rbin, err := params.Encode(r, mpi.FormBinary)
	if err != nil {
		return nil, ErrInvalidEphemeral.WithCause(err)
	}

	keys := kb.Bytes()
	c, err := stream.New(keys[:stream.KeySize])
	if err != nil {
		return nil, ErrCipherInit.WithCause(err)
	}
	defer c.Done()

	mac, err := hmac.New(keys[stream.KeySize:], hmac.WithSize(MACLen))
	if err != nil {
		return nil, ErrMACInit.WithCause(err)
	}
	kb.Wipe()

	n := len(plaintext)
	blob := make([]byte, len(rbin)+n+MACLen)
	copy(blob, rbin)
	ct := blob[len(rbin) : len(rbin)+n]
	copy(ct, plaintext)

	if err := c.Encrypt(ct); err != nil {
		return nil, ErrCipherInit.WithCause(err)
	}

	mac.Write(blob[:len(rbin)+n])
	copy(blob[len(rbin)+n:], mac.Sum())

	return newData(blob), nil
}

// Encrypt encrypts plaintext on this State.
func (st *State) Encrypt(plaintext []byte, kp *KeyPair) (*Data, error) {
	return Encrypt(plaintext, kp, st)
}
