// Package mpi serializes non-negative integers into fixed-length binary or
// compact text form.
//
// The compact form is a big-endian base-90 numeral over printable ASCII that
// avoids quote characters and the backslash, so encoded keys and signatures
// can be pasted into shells, config files and JSON without escaping. Both forms
// are left padded with the zero digit to the exact length requested, which
// keeps every encoded value of a given kind the same size.
package mpi

import (
	"math/big"

	"github.com/kochabx/seccure/errors"
)

// Form selects the output alphabet.
type Form int

const (
	// FormBinary is big-endian base 256
	FormBinary Form = iota
	// FormCompact is big-endian base 90 over CompactAlphabet
	FormCompact
)

// String returns the form name
func (f Form) String() string {
	switch f {
	case FormBinary:
		return "binary"
	case FormCompact:
		return "compact"
	default:
		return "unknown"
	}
}

// CompactAlphabet lists the compact digits in ascending order.
const CompactAlphabet = "!#$%&()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[]^_abcdefghijklmnopqrstuvwxyz{|}~"

var (
	ErrNegative      = errors.Decode("mpi: negative value")
	ErrOverflow      = errors.Decode("mpi: value does not fit the requested length")
	ErrLength        = errors.Decode("mpi: encoded length mismatch")
	ErrCharacter     = errors.Decode("mpi: invalid compact character")
	ErrUnknownFormat = errors.Precondition("mpi: unknown form")
)

var (
	compactRadix  = big.NewInt(int64(len(CompactAlphabet)))
	binaryRadix   = big.NewInt(256)
	compactDigits [256]int8
)

func init() {
	for i := range compactDigits {
		compactDigits[i] = -1
	}
	for i := 0; i < len(CompactAlphabet); i++ {
		compactDigits[CompactAlphabet[i]] = int8(i)
	}
}

func radix(form Form) (*big.Int, error) {
	switch form {
	case FormBinary:
		return binaryRadix, nil
	case FormCompact:
		return compactRadix, nil
	default:
		return nil, ErrUnknownFormat
	}
}

// Len returns the number of digits needed in form to represent every value in
// [0, bound).
func Len(bound *big.Int, form Form) int {
	r, err := radix(form)
	if err != nil || bound.Sign() <= 0 {
		return 0
	}
	n := 0
	acc := big.NewInt(1)
	for acc.Cmp(bound) < 0 {
		acc.Mul(acc, r)
		n++
	}
	return n
}

// Serialize encodes v into exactly length digits of form.
func Serialize(v *big.Int, length int, form Form) ([]byte, error) {
	if v.Sign() < 0 {
		return nil, ErrNegative
	}
	switch form {
	case FormBinary:
		if (v.BitLen()+7)/8 > length {
			return nil, ErrOverflow
		}
		return v.FillBytes(make([]byte, length)), nil
	case FormCompact:
		out := make([]byte, length)
		q := new(big.Int).Set(v)
		m := new(big.Int)
		for i := length - 1; i >= 0; i-- {
			q.QuoRem(q, compactRadix, m)
			out[i] = CompactAlphabet[m.Int64()]
		}
		if q.Sign() != 0 {
			return nil, ErrOverflow
		}
		return out, nil
	default:
		return nil, ErrUnknownFormat
	}
}

// Deserialize decodes s, which must be exactly length digits of form.
func Deserialize(s []byte, form Form, length int) (*big.Int, error) {
	if len(s) != length {
		return nil, ErrLength.WithCausef("got %d digits, want %d", len(s), length)
	}
	switch form {
	case FormBinary:
		return new(big.Int).SetBytes(s), nil
	case FormCompact:
		v := new(big.Int)
		d := new(big.Int)
		for _, c := range s {
			digit := compactDigits[c]
			if digit < 0 {
				return nil, ErrCharacter.WithCausef("character %q", c)
			}
			v.Mul(v, compactRadix)
			v.Add(v, d.SetInt64(int64(digit)))
		}
		return v, nil
	default:
		return nil, ErrUnknownFormat
	}
}
