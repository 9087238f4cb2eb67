package ecc

import (
	"crypto/sha512"
	"math/big"
	"time"

	"github.com/kochabx/seccure/core/crypto/internal"
	"github.com/kochabx/seccure/core/crypto/mpi"
	"github.com/kochabx/seccure/core/crypto/securemem"
)

// Sign signs the SHA-512 digest of message with the private component of kp.
// The signature is r*N + s in compact text of exactly SigLenCompact
// characters.
func Sign(message []byte, kp *KeyPair, st *State) (out *Data, err error) {
	defer func(start time.Time) { st.observe("sign", start, err) }(time.Now())

	if err := requireState(st); err != nil {
		return nil, err
	}
	if err := requireInput(message); err != nil {
		return nil, err
	}
	priv, err := requirePrivate(kp, st)
	if err != nil {
		return nil, err
	}

	digest := sha512.Sum512(message)

	d := bigFromBuffer(priv)
	defer internal.WipeInt(d)

	sig, err := ecdsaSign(st, digest[:], d)
	if err != nil {
		return nil, err
	}

	text, err := mpi.Serialize(sig, st.params.SigLenCompact, mpi.FormCompact)
	if err != nil {
		return nil, ErrSignFailed.WithCause(err)
	}
	return newData(text), nil
}

// Sign signs message on this State.
func (st *State) Sign(message []byte, kp *KeyPair) (*Data, error) {
	return Sign(message, kp, st)
}

func bigFromBuffer(b *securemem.Buffer) *big.Int {
	return new(big.Int).SetBytes(b.Bytes())
}
