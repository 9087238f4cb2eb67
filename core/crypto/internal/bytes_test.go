package internal

import (
	"bytes"
	"math/big"
	"testing"
)

func TestWipe(t *testing.T) {
	b := []byte("scalar material")
	Wipe(b)
	if !bytes.Equal(b, make([]byte, len(b))) {
		t.Errorf("Wipe left data behind: %x", b)
	}
}

func TestWipeInt(t *testing.T) {
	x, _ := new(big.Int).SetString("123456789abcdef0123456789abcdef", 16)
	words := x.Bits()
	WipeInt(x)
	if x.Sign() != 0 {
		t.Errorf("WipeInt left value %s", x)
	}
	for i, w := range words {
		if w != 0 {
			t.Errorf("word %d not wiped", i)
		}
	}
	WipeInt(nil)
}
