// Package curve holds the named elliptic curve parameter sets used by the
// ecc engine together with point arithmetic and the compact/binary point
// codec.
//
// NIST curves are backed by crypto/elliptic, secp256k1 by btcec.
package curve

import (
	"crypto/elliptic"
	"math/big"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/kochabx/seccure/core/crypto/mpi"
	"github.com/kochabx/seccure/errors"
)

// Default is the curve used when no name is configured
const Default = "p256"

var (
	ErrUnknownCurve = errors.Precondition("curve: unknown curve")
	ErrReleased     = errors.Precondition("curve: parameters already released")
)

// Family identifies the arithmetic backend of a curve.
type Family int

const (
	// FamilyNIST curves use crypto/elliptic and crypto/ecdsa
	FamilyNIST Family = iota
	// FamilyKoblitz curves use btcec
	FamilyKoblitz
)

// Params is one curve's parameter set. Values are read-only; the struct is
// handed out by ByName and must be returned with Release.
type Params struct {
	Name   string
	Family Family
	Curve  elliptic.Curve

	// y^2 = x^3 + A*x + B over GF(P), group order N
	A, B, P, N *big.Int
	g          Point

	ElemLenBin    int // field element, binary
	OrderLenBin   int // scalar, binary
	PkLenBin      int // compressed point, binary
	PkLenCompact  int // compressed point, compact text
	SigLenBin     int // r*N + s, binary
	SigLenCompact int // r*N + s, compact text

	released atomic.Bool
}

type template struct {
	family Family
	curve  func() elliptic.Curve
	a      func(p *big.Int) *big.Int
}

var (
	minusThree = func(p *big.Int) *big.Int { return new(big.Int).Sub(p, big.NewInt(3)) }
	zero       = func(*big.Int) *big.Int { return new(big.Int) }

	templates = map[string]template{
		"p224":      {FamilyNIST, elliptic.P224, minusThree},
		"p256":      {FamilyNIST, elliptic.P256, minusThree},
		"p384":      {FamilyNIST, elliptic.P384, minusThree},
		"p521":      {FamilyNIST, elliptic.P521, minusThree},
		"secp256k1": {FamilyKoblitz, func() elliptic.Curve { return btcec.S256() }, zero},
	}

	aliases = map[string]string{
		"p-224":      "p224",
		"secp224r1":  "p224",
		"p-256":      "p256",
		"secp256r1":  "p256",
		"prime256v1": "p256",
		"p-384":      "p384",
		"secp384r1":  "p384",
		"p-521":      "p521",
		"secp521r1":  "p521",
		"k256":       "secp256k1",
	}

	cache sync.Map // canonical name -> *Params
	live  atomic.Int64
)

// Canonical maps a curve name or alias to its canonical name.
func Canonical(name string) (string, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[n]; ok {
		n = alias
	}
	_, ok := templates[n]
	return n, ok
}

// Known reports whether name resolves to a supported curve.
func Known(name string) bool {
	_, ok := Canonical(name)
	return ok
}

// Names returns the canonical curve names in sorted order.
func Names() []string {
	names := make([]string, 0, len(templates))
	for n := range templates {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ByName returns a fresh parameter set for the named curve. The caller owns it
// and must call Release when done.
func ByName(name string) (*Params, error) {
	canonical, ok := Canonical(name)
	if !ok {
		return nil, ErrUnknownCurve.WithMetadata(map[string]string{"curve": name})
	}

	base, _ := cache.Load(canonical)
	if base == nil {
		built := build(canonical, templates[canonical])
		base, _ = cache.LoadOrStore(canonical, built)
	}

	p := base.(*Params).clone()
	live.Add(1)
	return p, nil
}

// Live returns the number of parameter sets handed out and not yet released.
func Live() int64 {
	return live.Load()
}

// Release returns the parameter set. It is safe to call more than once.
func (p *Params) Release() {
	if p == nil {
		return
	}
	if p.released.CompareAndSwap(false, true) {
		live.Add(-1)
	}
}

// Base returns a copy of the base point.
func (p *Params) Base() Point {
	return p.g.Clone()
}

// Released reports whether Release has been called.
func (p *Params) Released() bool {
	return p.released.Load()
}

func (p *Params) clone() *Params {
	return &Params{
		Name:          p.Name,
		Family:        p.Family,
		Curve:         p.Curve,
		A:             p.A,
		B:             p.B,
		P:             p.P,
		N:             p.N,
		g:             p.g,
		ElemLenBin:    p.ElemLenBin,
		OrderLenBin:   p.OrderLenBin,
		PkLenBin:      p.PkLenBin,
		PkLenCompact:  p.PkLenCompact,
		SigLenBin:     p.SigLenBin,
		SigLenCompact: p.SigLenCompact,
	}
}

func build(name string, t template) *Params {
	c := t.curve()
	cp := c.Params()

	twoP := new(big.Int).Lsh(cp.P, 1)
	nn := new(big.Int).Mul(cp.N, cp.N)

	return &Params{
		Name:          name,
		Family:        t.family,
		Curve:         c,
		A:             t.a(cp.P),
		B:             cp.B,
		P:             cp.P,
		N:             cp.N,
		g:             Point{X: new(big.Int).Set(cp.Gx), Y: new(big.Int).Set(cp.Gy)},
		ElemLenBin:    (cp.P.BitLen() + 7) / 8,
		OrderLenBin:   (cp.N.BitLen() + 7) / 8,
		PkLenBin:      mpi.Len(twoP, mpi.FormBinary),
		PkLenCompact:  mpi.Len(twoP, mpi.FormCompact),
		SigLenBin:     mpi.Len(nn, mpi.FormBinary),
		SigLenCompact: mpi.Len(nn, mpi.FormCompact),
	}
}
