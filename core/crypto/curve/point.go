package curve

import (
	"io"
	"math/big"

	"github.com/kochabx/seccure/core/crypto/internal"
	"github.com/kochabx/seccure/core/crypto/mpi"
	"github.com/kochabx/seccure/errors"
)

var (
	ErrInvalidPoint  = errors.Decode("curve: invalid point encoding")
	ErrNotOnCurve    = errors.Decode("curve: point not on curve")
	ErrInfinity      = errors.Decode("curve: point at infinity")
	ErrInvalidScalar = errors.Precondition("curve: scalar out of range")
)

// Point is an affine point. The point at infinity is (0, 0), matching
// crypto/elliptic.
type Point struct {
	X, Y *big.Int
}

// Clone returns a deep copy of pt.
func (pt Point) Clone() Point {
	c := Point{}
	if pt.X != nil {
		c.X = new(big.Int).Set(pt.X)
	}
	if pt.Y != nil {
		c.Y = new(big.Int).Set(pt.Y)
	}
	return c
}

// IsInfinity reports whether pt is the point at infinity or unset.
func (pt Point) IsInfinity() bool {
	return pt.X == nil || pt.Y == nil || (pt.X.Sign() == 0 && pt.Y.Sign() == 0)
}

// Release zeroes the coordinates. pt must not be used afterwards.
func (pt *Point) Release() {
	if pt == nil {
		return
	}
	internal.WipeInt(pt.X)
	internal.WipeInt(pt.Y)
	pt.X, pt.Y = nil, nil
}

// IsOnCurve reports whether pt is a finite point on the curve.
func (p *Params) IsOnCurve(pt Point) bool {
	if pt.IsInfinity() {
		return false
	}
	if pt.X.Sign() < 0 || pt.X.Cmp(p.P) >= 0 || pt.Y.Sign() < 0 || pt.Y.Cmp(p.P) >= 0 {
		return false
	}
	//lint:ignore SA1019 see ScalarBaseMult
	return p.Curve.IsOnCurve(pt.X, pt.Y)
}

// ScalarBytes encodes k as a fixed-width big-endian scalar.
func (p *Params) ScalarBytes(k *big.Int) []byte {
	return k.FillBytes(make([]byte, p.OrderLenBin))
}

// ValidScalar reports whether k is in [1, N-1].
func (p *Params) ValidScalar(k *big.Int) bool {
	return k != nil && k.Sign() > 0 && k.Cmp(p.N) < 0
}

// ScalarBaseMult returns k*G.
func (p *Params) ScalarBaseMult(k *big.Int) (Point, error) {
	if !p.ValidScalar(k) {
		return Point{}, ErrInvalidScalar
	}
	kb := p.ScalarBytes(k)
	defer internal.Wipe(kb)

	//lint:ignore SA1019 secp256k1 comes from btcec and only shares the elliptic.Curve interface
	x, y := p.Curve.ScalarBaseMult(kb)
	pt := Point{X: x, Y: y}
	if pt.IsInfinity() {
		return Point{}, ErrInfinity
	}
	return pt, nil
}

// ScalarMult returns k*pt. pt must be on the curve.
func (p *Params) ScalarMult(pt Point, k *big.Int) (Point, error) {
	if !p.ValidScalar(k) {
		return Point{}, ErrInvalidScalar
	}
	if !p.IsOnCurve(pt) {
		return Point{}, ErrNotOnCurve
	}
	kb := p.ScalarBytes(k)
	defer internal.Wipe(kb)

	//lint:ignore SA1019 see ScalarBaseMult
	x, y := p.Curve.ScalarMult(pt.X, pt.Y, kb)
	out := Point{X: x, Y: y}
	if out.IsInfinity() {
		return Point{}, ErrInfinity
	}
	return out, nil
}

// RandomScalar draws a uniformly distributed scalar in [1, N-1] from r.
func (p *Params) RandomScalar(r io.Reader) (*big.Int, error) {
	buf := make([]byte, p.OrderLenBin+8)
	defer internal.Wipe(buf)

	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Provider("curve: random source failed").WithCause(err)
	}
	return p.ReduceScalar(buf), nil
}

// ReduceScalar maps the big-endian integer in b into [1, N-1].
func (p *Params) ReduceScalar(b []byte) *big.Int {
	nMinusOne := new(big.Int).Sub(p.N, big.NewInt(1))
	k := new(big.Int).SetBytes(b)
	k.Mod(k, nMinusOne)
	return k.Add(k, big.NewInt(1))
}

func (p *Params) pointLen(form mpi.Form) int {
	if form == mpi.FormCompact {
		return p.PkLenCompact
	}
	return p.PkLenBin
}

// Encode serializes pt in compressed form: the integer x + P*(y mod 2).
func (p *Params) Encode(pt Point, form mpi.Form) ([]byte, error) {
	if !p.IsOnCurve(pt) {
		return nil, ErrNotOnCurve
	}
	v := new(big.Int).Set(pt.X)
	if pt.Y.Bit(0) == 1 {
		v.Add(v, p.P)
	}
	return mpi.Serialize(v, p.pointLen(form), form)
}

// Decode parses a compressed point produced by Encode and checks that it is on
// the curve.
func (p *Params) Decode(b []byte, form mpi.Form) (Point, error) {
	v, err := mpi.Deserialize(b, form, p.pointLen(form))
	if err != nil {
		return Point{}, ErrInvalidPoint.WithCause(err)
	}

	odd := uint(0)
	if v.Cmp(p.P) >= 0 {
		v.Sub(v, p.P)
		odd = 1
	}
	if v.Cmp(p.P) >= 0 {
		return Point{}, ErrInvalidPoint.WithCausef("x exceeds field size")
	}

	// y^2 = x^3 + a*x + b
	rhs := new(big.Int).Mul(v, v)
	rhs.Mul(rhs, v)
	ax := new(big.Int).Mul(p.A, v)
	rhs.Add(rhs, ax)
	rhs.Add(rhs, p.B)
	rhs.Mod(rhs, p.P)

	y := new(big.Int).ModSqrt(rhs, p.P)
	if y == nil {
		return Point{}, ErrNotOnCurve
	}
	if y.Bit(0) != odd {
		if y.Sign() == 0 {
			return Point{}, ErrInvalidPoint.WithCausef("no odd root for y = 0")
		}
		y.Sub(p.P, y)
	}

	pt := Point{X: v, Y: y}
	if !p.IsOnCurve(pt) {
		return Point{}, ErrNotOnCurve
	}
	return pt, nil
}

// Uncompressed returns the SEC 1 uncompressed encoding 0x04 || X || Y.
func (p *Params) Uncompressed(pt Point) []byte {
	out := make([]byte, 1+2*p.ElemLenBin)
	out[0] = 0x04
	pt.X.FillBytes(out[1 : 1+p.ElemLenBin])
	pt.Y.FillBytes(out[1+p.ElemLenBin:])
	return out
}
