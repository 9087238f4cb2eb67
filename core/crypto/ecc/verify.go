package ecc

import (
	"crypto/sha512"
	"time"

	"github.com/kochabx/seccure/core/crypto/mpi"
)

// Verify reports whether signature is a valid signature of message under the
// public component of kp. Every failure, including malformed input, is false.
func Verify(message []byte, signature string, kp *KeyPair, st *State) bool {
	return VerifyErr(message, signature, kp, st) == nil
}

// VerifyErr is Verify with the reason: ErrBadSignature for a well-formed
// signature that does not verify, a precondition or decode error otherwise.
func VerifyErr(message []byte, signature string, kp *KeyPair, st *State) (err error) {
	defer func(start time.Time) { st.observe("verify", start, err) }(time.Now())

	if err := requireState(st); err != nil {
		return err
	}
	if err := requireInput(message); err != nil {
		return err
	}
	if err := requireInput([]byte(signature)); err != nil {
		return err
	}
	pub, err := requirePublic(kp, st)
	if err != nil {
		return err
	}

	params := st.params
	q, err := params.Decode(pub, mpi.FormCompact)
	if err != nil {
		return ErrInvalidPublicKey.WithCause(err)
	}
	defer q.Release()

	sig, err := mpi.Deserialize([]byte(signature), mpi.FormCompact, params.SigLenCompact)
	if err != nil {
		return ErrInvalidSignature.WithCause(err)
	}

	digest := sha512.Sum512(message)
	return ecdsaVerify(st, digest[:], q, sig)
}

// Verify checks signature on this State.
func (st *State) Verify(message []byte, signature string, kp *KeyPair) bool {
	return Verify(message, signature, kp, st)
}
