package ecc

import "github.com/kochabx/seccure/errors"

// Precondition errors
var (
	ErrStateUninitialized = errors.Precondition("ecc: state is not initialized")
	ErrEmptyInput         = errors.Precondition("ecc: input is empty")
	ErrKeyPairEmpty       = errors.Precondition("ecc: key pair has neither public nor private component")
	ErrPublicKeyEmpty     = errors.Precondition("ecc: key pair has no public component")
	ErrPrivateKeyEmpty    = errors.Precondition("ecc: key pair has no private component")
	ErrPrivateRequired    = errors.Precondition("ecc: private input is required")
	ErrKeyDestroyed       = errors.Precondition("ecc: key pair destroyed")
	ErrCurveMismatch      = errors.Precondition("ecc: key pair belongs to another curve")
	ErrDataPopulated      = errors.Precondition("ecc: data already populated")
	ErrInvalidOptions     = errors.Precondition("ecc: invalid options")
	ErrUnknownCurve       = errors.Precondition("ecc: unknown curve")
)

// Decode errors
var (
	ErrInvalidPublicKey   = errors.Decode("ecc: invalid public key")
	ErrInvalidEphemeral   = errors.Decode("ecc: invalid ephemeral point")
	ErrCiphertextTooShort = errors.Decode("ecc: ciphertext too short")
	ErrMACMismatch        = errors.Decode("ecc: message authentication failed")
	ErrInvalidSignature   = errors.Decode("ecc: malformed signature")
)

// ErrBadSignature is a well-formed signature that does not verify. It is a
// normal outcome of Verify, not a failure of the engine.
var ErrBadSignature = errors.Rejected("ecc: signature does not verify")

// Provider errors
var (
	ErrProviderVersion = errors.Incompatible("ecc: incompatible primitive provider")
	ErrKeyDerivation   = errors.Provider("ecc: key derivation failed")
	ErrSignFailed      = errors.Provider("ecc: signing failed")
	ErrCipherInit      = errors.Provider("ecc: cipher initialization failed")
	ErrMACInit         = errors.Provider("ecc: mac initialization failed")
)
