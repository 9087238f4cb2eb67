package batch

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/seccure/core/crypto/ecc"
	"github.com/kochabx/seccure/errors"
	"github.com/kochabx/seccure/log"
)

func setup(t *testing.T) (*ecc.State, *ecc.KeyPair, *Pool) {
	t.Helper()
	quiet := log.NewWriter(io.Discard)

	rt := ecc.NewRuntime(ecc.WithRuntimeLogger(quiet))
	st, err := rt.Open(ecc.NewOptions(ecc.WithLogger(quiet)))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	kp, err := ecc.Keygen([]byte("batch"), st)
	require.NoError(t, err)
	t.Cleanup(kp.Destroy)

	p, err := New(st, WithSize(4), WithLogger(quiet))
	require.NoError(t, err)
	t.Cleanup(p.Close)
	return st, kp, p
}

func messages(n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = fmt.Appendf(nil, "transfer:%d", i)
	}
	return out
}

func TestEncryptDecryptAll(t *testing.T) {
	st, kp, p := setup(t)
	ctx := context.Background()
	in := messages(32)

	blobs, err := p.EncryptAll(ctx, in, kp)
	require.NoError(t, err)
	require.Len(t, blobs, len(in))

	raw := make([][]byte, len(blobs))
	for i, b := range blobs {
		assert.Equal(t, st.Curve().PkLenBin+len(in[i])+ecc.MACLen, b.Len())
		raw[i] = b.Bytes()
	}

	out, err := p.DecryptAll(ctx, raw, kp)
	require.NoError(t, err)
	for i := range in {
		assert.Equal(t, in[i], out[i].Bytes())
	}
}

func TestDecryptAllFailsOnTamper(t *testing.T) {
	_, kp, p := setup(t)
	ctx := context.Background()

	blobs, err := p.EncryptAll(ctx, messages(8), kp)
	require.NoError(t, err)

	raw := make([][]byte, len(blobs))
	for i, b := range blobs {
		raw[i] = b.Bytes()
	}
	raw[5][len(raw[5])-1] ^= 0xff

	out, err := p.DecryptAll(ctx, raw, kp)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, ecc.ErrMACMismatch))
}

func TestSignVerifyAll(t *testing.T) {
	_, kp, p := setup(t)
	ctx := context.Background()
	in := messages(16)

	sigs, err := p.SignAll(ctx, in, kp)
	require.NoError(t, err)

	// swap two signatures so exactly those fail
	sigs[3], sigs[4] = sigs[4], sigs[3]

	ok, err := p.VerifyAll(ctx, in, sigs, kp)
	require.NoError(t, err)
	for i, v := range ok {
		assert.Equal(t, i != 3 && i != 4, v, "message %d", i)
	}

	_, err = p.VerifyAll(ctx, in, sigs[:1], kp)
	assert.True(t, errors.Is(err, ErrMissing))
}

func TestEncryptAllPrecondition(t *testing.T) {
	_, kp, p := setup(t)

	in := messages(4)
	in[2] = nil
	_, err := p.EncryptAll(context.Background(), in, kp)
	assert.True(t, errors.Is(err, ecc.ErrEmptyInput))
}

func TestCanceledContext(t *testing.T) {
	_, kp, p := setup(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.SignAll(ctx, messages(4), kp)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClosedPool(t *testing.T) {
	_, kp, p := setup(t)
	p.Close()

	_, err := p.SignAll(context.Background(), messages(2), kp)
	assert.True(t, errors.Is(err, ErrClosed))
}

func TestEmptyBatch(t *testing.T) {
	_, kp, p := setup(t)

	out, err := p.EncryptAll(context.Background(), nil, kp)
	require.NoError(t, err)
	assert.Empty(t, out)
}
