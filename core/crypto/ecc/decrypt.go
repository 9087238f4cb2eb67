package ecc

import (
	"time"

	"github.com/kochabx/seccure/core/crypto/hmac"
	"github.com/kochabx/seccure/core/crypto/internal"
	"github.com/kochabx/seccure/core/crypto/mpi"
	"github.com/kochabx/seccure/core/crypto/stream"
)

// Decrypt reverses Encrypt with the private component of kp. The tag is
// checked in constant time before any ciphertext is decrypted; a mismatch
// returns ErrMACMismatch and no plaintext.
func Decrypt(blob []byte, kp *KeyPair, st *State) (out *Data, err error) {
	defer func(start time.Time) { st.observe("decrypt", start, err) }(time.Now())

	if err := requireState(st); err != nil {
		return nil, err
	}
	priv, err := requirePrivate(kp, st)
	if err != nil {
		return nil, err
	}

	params := st.params
	if len(blob) < params.PkLenBin+MACLen {
		return nil, ErrCiphertextTooShort.WithCausef("got %d bytes, need at least %d", len(blob), params.PkLenBin+MACLen)
	}

	rbin := blob[:params.PkLenBin]
	body := blob[params.PkLenBin : len(blob)-MACLen]
	tag := blob[len(blob)-MACLen:]

	r, err := params.Decode(rbin, mpi.FormBinary)
	if err != nil {
		return nil, ErrInvalidEphemeral.WithCause(err)
	}
	defer r.Release()

	d := bigFromBuffer(priv)
	defer internal.WipeInt(d)

	kb, err := eciesDecryption(st, r, d)
	if err != nil {
		return nil, err
	}
	defer kb.Free()

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

	mac.Write(blob[:len(blob)-MACLen])
	if !mac.Verify(tag) {
		return nil, ErrMACMismatch
	}

	pt := make([]byte, len(body))
	copy(pt, body)
	if err := c.Decrypt(pt); err != nil {
		internal.Wipe(pt)
		return nil, ErrCipherInit.WithCause(err)
	}

	return newData(pt), nil
}

// Decrypt decrypts blob on this State.
func (st *State) Decrypt(blob []byte, kp *KeyPair) (*Data, error) {
	return Decrypt(blob, kp, st)
}
