package mpi

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/seccure/errors"
)

func TestCompactAlphabet(t *testing.T) {
	assert.Len(t, CompactAlphabet, 90)
	for _, forbidden := range []string{`"`, `'`, `\`, "`", " "} {
		assert.NotContains(t, CompactAlphabet, forbidden)
	}
	seen := map[rune]bool{}
	for _, c := range CompactAlphabet {
		assert.False(t, seen[c], "duplicate digit %q", c)
		seen[c] = true
	}
}

func TestLen(t *testing.T) {
	tests := []struct {
		bound int64
		form  Form
		want  int
	}{
		{1, FormBinary, 0},
		{2, FormBinary, 1},
		{256, FormBinary, 1},
		{257, FormBinary, 2},
		{90, FormCompact, 1},
		{91, FormCompact, 2},
		{8100, FormCompact, 2},
		{8101, FormCompact, 3},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Len(big.NewInt(tc.bound), tc.form), "bound=%d form=%s", tc.bound, tc.form)
	}
	assert.Equal(t, 0, Len(big.NewInt(0), FormCompact))
	assert.Equal(t, 0, Len(big.NewInt(10), Form(9)))
}

func TestSerializeCompact(t *testing.T) {
	out, err := Serialize(big.NewInt(0), 3, FormCompact)
	require.NoError(t, err)
	assert.Equal(t, "!!!", string(out))

	out, err = Serialize(big.NewInt(91), 3, FormCompact)
	require.NoError(t, err)
	assert.Equal(t, "!##", string(out))

	v, err := Deserialize(out, FormCompact, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(91), v.Int64())
}

func TestSerializeBinary(t *testing.T) {
	out, err := Serialize(big.NewInt(0x0102), 4, FormBinary)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 1, 2}, out)

	v, err := Deserialize(out, FormBinary, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(0x0102), v.Int64())
}

func TestSerializeLargeValue(t *testing.T) {
	bound := new(big.Int).Lsh(big.NewInt(1), 521)
	v := new(big.Int).Sub(bound, big.NewInt(12345))
	for _, form := range []Form{FormBinary, FormCompact} {
		n := Len(bound, form)
		out, err := Serialize(v, n, form)
		require.NoError(t, err)
		require.Len(t, out, n)

		back, err := Deserialize(out, form, n)
		require.NoError(t, err)
		assert.Zero(t, v.Cmp(back), "form %s", form)
	}
}

func TestSerializeErrors(t *testing.T) {
	_, err := Serialize(big.NewInt(-1), 4, FormBinary)
	assert.True(t, errors.Is(err, ErrNegative))

	_, err = Serialize(big.NewInt(90), 1, FormCompact)
	assert.True(t, errors.Is(err, ErrOverflow))

	_, err = Serialize(big.NewInt(256), 1, FormBinary)
	assert.True(t, errors.Is(err, ErrOverflow))

	_, err = Serialize(big.NewInt(1), 1, Form(7))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestDeserializeErrors(t *testing.T) {
	_, err := Deserialize([]byte("!!"), FormCompact, 3)
	assert.True(t, errors.Is(err, ErrLength))
	assert.Equal(t, errors.KindDecode, errors.KindOf(err))

	_, err = Deserialize([]byte(`!"!`), FormCompact, 3)
	assert.True(t, errors.Is(err, ErrCharacter))

	_, err = Deserialize([]byte(strings.Repeat("!", 3)), Form(7), 3)
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}
