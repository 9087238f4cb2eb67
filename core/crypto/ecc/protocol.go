package ecc

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/kochabx/seccure/core/crypto/curve"
	"github.com/kochabx/seccure/core/crypto/internal"
	"github.com/kochabx/seccure/core/crypto/securemem"
)

// eciesEncryption runs the sender side of the key agreement against the
// recipient point q: R = bG, Z = bq, keys = KDF(Z, R).
func eciesEncryption(st *State, q curve.Point) (*securemem.Buffer, curve.Point, error) {
	params := st.params

	b, err := params.RandomScalar(st.rt.random())
	if err != nil {
		return nil, curve.Point{}, err
	}
	defer internal.WipeInt(b)

	r, err := params.ScalarBaseMult(b)
	if err != nil {
		return nil, curve.Point{}, err
	}

	z, err := params.ScalarMult(q, b)
	if err != nil {
		r.Release()
		return nil, curve.Point{}, ErrInvalidPublicKey.WithCause(err)
	}
	defer z.Release()

	kb, err := deriveKeys(st, z, r)
	if err != nil {
		r.Release()
		return nil, curve.Point{}, err
	}
	return kb, r, nil
}

// eciesDecryption reproduces the key buffer from R and the private scalar d.
func eciesDecryption(st *State, r curve.Point, d *big.Int) (*securemem.Buffer, error) {
	z, err := st.params.ScalarMult(r, d)
	if err != nil {
		return nil, ErrInvalidEphemeral.WithCause(err)
	}
	defer z.Release()

	return deriveKeys(st, z, r)
}

// ecdsaSign signs digest with d and returns the packed value r*N + s.
func ecdsaSign(st *State, digest []byte, d *big.Int) (*big.Int, error) {
	params := st.params

	var r, s *big.Int
	switch params.Family {
	case curve.FamilyNIST:
		pub, err := params.ScalarBaseMult(d)
		if err != nil {
			return nil, err
		}
		defer pub.Release()

		priv := &ecdsa.PrivateKey{
			PublicKey: ecdsa.PublicKey{Curve: params.Curve, X: pub.X, Y: pub.Y},
			D:         new(big.Int).Set(d),
		}
		defer internal.WipeInt(priv.D)

		r, s, err = ecdsa.Sign(st.rt.random(), priv, digest)
		if err != nil {
			return nil, ErrSignFailed.WithCause(err)
		}

	case curve.FamilyKoblitz:
		db := params.ScalarBytes(d)
		defer internal.Wipe(db)

		priv, _ := btcec.PrivKeyFromBytes(db)
		defer priv.Zero()

		sig := btcecdsa.Sign(priv, koblitzHash(digest))
		rs, ss := sig.R(), sig.S()
		rb, sb := rs.Bytes(), ss.Bytes()
		r, s = new(big.Int).SetBytes(rb[:]), new(big.Int).SetBytes(sb[:])

	default:
		return nil, ErrSignFailed.WithCausef("unsupported curve family %d", params.Family)
	}

	if r.Sign() == 0 || s.Sign() == 0 {
		return nil, ErrSignFailed.WithCausef("degenerate signature")
	}

	packed := new(big.Int).Mul(r, params.N)
	return packed.Add(packed, s), nil
}

// ecdsaVerify checks the packed signature against digest and q.
func ecdsaVerify(st *State, digest []byte, q curve.Point, sig *big.Int) error {
	params := st.params

	r, s := new(big.Int).QuoRem(sig, params.N, new(big.Int))
	if !params.ValidScalar(r) || !params.ValidScalar(s) {
		return ErrInvalidSignature.WithCausef("r or s out of range")
	}

	switch params.Family {
	case curve.FamilyNIST:
		pub := &ecdsa.PublicKey{Curve: params.Curve, X: q.X, Y: q.Y}
		if !ecdsa.Verify(pub, digest, r, s) {
			return ErrBadSignature
		}
		return nil

	case curve.FamilyKoblitz:
		pub, err := btcec.ParsePubKey(params.Uncompressed(q))
		if err != nil {
			return ErrInvalidPublicKey.WithCause(err)
		}
		var rs, ss btcec.ModNScalar
		rs.SetByteSlice(r.Bytes())
		ss.SetByteSlice(s.Bytes())
		if !btcecdsa.NewSignature(&rs, &ss).Verify(koblitzHash(digest), pub) {
			return ErrBadSignature
		}
		return nil

	default:
		return ErrInvalidSignature.WithCausef("unsupported curve family %d", params.Family)
	}
}

// koblitzHash truncates the digest to the 256-bit group order, as ECDSA does
// for the NIST curves.
func koblitzHash(digest []byte) []byte {
	if len(digest) > 32 {
		return digest[:32]
	}
	return digest
}
