// Package ecc is an elliptic curve engine offering ECIES encryption and
// ECDSA signatures over named curves, with passphrase derived keys.
//
// A caller opens a State bound to a curve, builds a KeyPair from raw public
// or passphrase bytes, and passes both to Encrypt, Decrypt, Sign or Verify:
//
//	st, err := ecc.Open(ecc.WithCurve("p256"))
//	if err != nil {
//		return err
//	}
//	defer st.Close()
//
//	kp, err := ecc.Keygen([]byte("correct horse"), st)
//	if err != nil {
//		return err
//	}
//	defer kp.Destroy()
//
//	blob, err := ecc.Encrypt([]byte("hello world"), kp, st)
//
// States share a reference counted Runtime; the first Open negotiates with
// the primitive provider and initializes the secure memory pool, the last
// Close tears it down. Private scalars and key agreement output live in that
// pool and are wiped when released.
package ecc
