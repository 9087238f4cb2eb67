package curve

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/seccure/core/crypto/mpi"
	"github.com/kochabx/seccure/errors"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"p224", "p256", "p384", "p521", "secp256k1"}, Names())
	assert.True(t, Known(Default))
	assert.True(t, Known("P-256"))
	assert.True(t, Known(" prime256v1 "))
	assert.False(t, Known("p160"))

	name, ok := Canonical("secp384r1")
	assert.True(t, ok)
	assert.Equal(t, "p384", name)
}

func TestByNameRelease(t *testing.T) {
	before := Live()

	p, err := ByName("p256")
	require.NoError(t, err)
	assert.Equal(t, before+1, Live())
	assert.False(t, p.Released())

	p.Release()
	p.Release()
	assert.True(t, p.Released())
	assert.Equal(t, before, Live())

	_, err = ByName("nope")
	assert.True(t, errors.Is(err, ErrUnknownCurve))
	assert.Equal(t, before, Live())
}

func TestLengths(t *testing.T) {
	tests := []struct {
		name        string
		elem, order int
		pkBin       int
	}{
		{"p224", 28, 28, 29},
		{"p256", 32, 32, 33},
		{"p384", 48, 48, 49},
		{"p521", 66, 66, 66},
		{"secp256k1", 32, 32, 33},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := ByName(tc.name)
			require.NoError(t, err)
			defer p.Release()

			assert.Equal(t, tc.elem, p.ElemLenBin)
			assert.Equal(t, tc.order, p.OrderLenBin)
			assert.Equal(t, tc.pkBin, p.PkLenBin)
			assert.Greater(t, p.PkLenCompact, p.PkLenBin)
			assert.Greater(t, p.SigLenCompact, p.SigLenBin)
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			p, err := ByName(name)
			require.NoError(t, err)
			defer p.Release()

			for i := 0; i < 8; i++ {
				k, err := p.RandomScalar(rand.Reader)
				require.NoError(t, err)
				pt, err := p.ScalarBaseMult(k)
				require.NoError(t, err)

				for _, form := range []mpi.Form{mpi.FormBinary, mpi.FormCompact} {
					enc, err := p.Encode(pt, form)
					require.NoError(t, err)
					if form == mpi.FormCompact {
						assert.Len(t, enc, p.PkLenCompact)
					} else {
						assert.Len(t, enc, p.PkLenBin)
					}

					back, err := p.Decode(enc, form)
					require.NoError(t, err)
					assert.Zero(t, pt.X.Cmp(back.X))
					assert.Zero(t, pt.Y.Cmp(back.Y))
				}
			}
		})
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	p, err := ByName("p256")
	require.NoError(t, err)
	defer p.Release()

	_, err = p.Decode([]byte("short"), mpi.FormCompact)
	assert.True(t, errors.Is(err, ErrInvalidPoint))

	// x >= P after removing the parity offset
	enc := make([]byte, p.PkLenBin)
	for i := range enc {
		enc[i] = 0xff
	}
	_, err = p.Decode(enc, mpi.FormBinary)
	assert.Error(t, err)
	assert.Equal(t, errors.KindDecode, errors.KindOf(err))
}

func TestScalarMultCommutes(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			p, err := ByName(name)
			require.NoError(t, err)
			defer p.Release()

			a, err := p.RandomScalar(rand.Reader)
			require.NoError(t, err)
			b, err := p.RandomScalar(rand.Reader)
			require.NoError(t, err)

			aG, err := p.ScalarBaseMult(a)
			require.NoError(t, err)
			bG, err := p.ScalarBaseMult(b)
			require.NoError(t, err)

			abG, err := p.ScalarMult(bG, a)
			require.NoError(t, err)
			baG, err := p.ScalarMult(aG, b)
			require.NoError(t, err)

			assert.Zero(t, abG.X.Cmp(baG.X))
			assert.Zero(t, abG.Y.Cmp(baG.Y))
		})
	}
}

func TestScalarValidation(t *testing.T) {
	p, err := ByName("p256")
	require.NoError(t, err)
	defer p.Release()

	_, err = p.ScalarBaseMult(big.NewInt(0))
	assert.True(t, errors.Is(err, ErrInvalidScalar))
	_, err = p.ScalarBaseMult(p.N)
	assert.True(t, errors.Is(err, ErrInvalidScalar))

	_, err = p.ScalarMult(Point{X: big.NewInt(1), Y: big.NewInt(1)}, big.NewInt(2))
	assert.True(t, errors.Is(err, ErrNotOnCurve))
}

func TestBaseIsCopy(t *testing.T) {
	p, err := ByName("p256")
	require.NoError(t, err)
	defer p.Release()

	g := p.Base()
	g.Release()
	assert.True(t, p.IsOnCurve(p.Base()))
}

func TestReduceScalarRange(t *testing.T) {
	p, err := ByName("secp256k1")
	require.NoError(t, err)
	defer p.Release()

	zero := make([]byte, p.OrderLenBin)
	assert.Equal(t, int64(1), p.ReduceScalar(zero).Int64())

	max := make([]byte, p.OrderLenBin+8)
	for i := range max {
		max[i] = 0xff
	}
	k := p.ReduceScalar(max)
	assert.True(t, p.ValidScalar(k))
}
