package ecc

import (
	"crypto/sha512"
	"io"
	"math/big"

	"golang.org/x/crypto/hkdf"

	"github.com/kochabx/seccure/core/crypto/curve"
	"github.com/kochabx/seccure/core/crypto/internal"
	"github.com/kochabx/seccure/core/crypto/mpi"
	"github.com/kochabx/seccure/core/crypto/securemem"
)

// deriveKeys expands the shared point Z into the 64-byte key buffer using
// HKDF-SHA512 with the binary encoding of the ephemeral point R as info.
func deriveKeys(st *State, z, r curve.Point) (*securemem.Buffer, error) {
	params := st.params

	ikm := z.X.FillBytes(make([]byte, params.ElemLenBin))
	defer internal.Wipe(ikm)

	info, err := params.Encode(r, mpi.FormBinary)
	if err != nil {
		return nil, ErrKeyDerivation.WithCause(err)
	}

	kb, err := st.pool().Alloc(KeyBufLen)
	if err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(hkdf.New(sha512.New, ikm, nil, info), kb.Bytes()); err != nil {
		kb.Free()
		return nil, ErrKeyDerivation.WithCause(err)
	}
	return kb, nil
}

// hashToExponent maps a passphrase to a scalar in [1, N-1]. The digest and
// the expanded stream stay in secure memory; the result is stored at fixed
// width in a secure buffer owned by the caller.
func hashToExponent(passphrase []byte, st *State) (*securemem.Buffer, error) {
	params := st.params
	pool := st.pool()

	digest, err := pool.Alloc(digestLen)
	if err != nil {
		return nil, err
	}
	defer digest.Free()

	h := sha512.New()
	h.Write(passphrase)
	h.Sum(digest.Bytes()[:0])

	wide, err := pool.Alloc(params.OrderLenBin + exponentSlack)
	if err != nil {
		return nil, err
	}
	defer wide.Free()

	if _, err := io.ReadFull(hkdf.Expand(sha512.New, digest.Bytes(), []byte(hashToExponentInfo)), wide.Bytes()); err != nil {
		return nil, ErrKeyDerivation.WithCause(err)
	}

	k := params.ReduceScalar(wide.Bytes())
	defer internal.WipeInt(k)

	return storeScalar(k, st)
}

// storeScalar copies k into a fixed-width secure buffer.
func storeScalar(k *big.Int, st *State) (*securemem.Buffer, error) {
	out, err := st.pool().Alloc(st.params.OrderLenBin)
	if err != nil {
		return nil, err
	}
	k.FillBytes(out.Bytes())
	return out, nil
}
