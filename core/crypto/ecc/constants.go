package ecc

import (
	"github.com/kochabx/seccure/core/crypto/curve"
	"github.com/kochabx/seccure/core/crypto/hmac"
	"github.com/kochabx/seccure/core/crypto/securemem"
	"github.com/kochabx/seccure/core/crypto/stream"
)

const (
	// DefaultCurve is used when Options name no curve
	DefaultCurve = curve.Default

	// DefaultSecureMemory is the default secure pool size in bytes
	DefaultSecureMemory = securemem.DefaultLimit

	// MACLen is the length of the ciphertext authentication tag
	MACLen = hmac.DefaultSize

	// KeyBufLen is the size of the key agreement output:
	// [cipher key: 32][mac key: 32]
	KeyBufLen = stream.KeySize + hmac.KeySize

	// RequiredProviderVersion is the oldest primitive provider Open accepts
	RequiredProviderVersion = "v1.0.0"

	// digestLen is the SHA-512 output size used for signatures and
	// passphrase hashing
	digestLen = 64

	// exponentSlack is the number of extra bytes expanded before reducing
	// into the group order, keeping the reduction bias negligible
	exponentSlack = 16

	hashToExponentInfo = "seccure/hash-to-exponent"
)
