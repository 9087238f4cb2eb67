package internal

import (
	"math/big"
	"runtime"
)

// Wipe overwrites b with zeros.
func Wipe(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}

// WipeInt zeroes the words backing x, including spare capacity, and sets x to 0.
func WipeInt(x *big.Int) {
	if x == nil {
		return
	}
	words := x.Bits()
	clear(words[:cap(words)])
	runtime.KeepAlive(words)
	x.SetInt64(0)
}
