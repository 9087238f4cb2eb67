package ecc

import (
	"math/big"
	"sync"
	"time"

	"github.com/kochabx/seccure/core/crypto/curve"
	"github.com/kochabx/seccure/core/crypto/internal"
	"github.com/kochabx/seccure/core/crypto/mpi"
	"github.com/kochabx/seccure/core/crypto/securemem"
)

// KeyKind says which components a KeyPair carries.
type KeyKind int

const (
	kindDestroyed KeyKind = iota
	// KindPublic carries only the compact public point
	KindPublic
	// KindPrivate carries only the private scalar
	KindPrivate
	// KindFull carries both
	KindFull
)

func (k KeyKind) String() string {
	switch k {
	case KindPublic:
		return "public"
	case KindPrivate:
		return "private"
	case KindFull:
		return "full"
	default:
		return "destroyed"
	}
}

// KeyPair holds a compact-encoded public point, a private scalar in secure
// memory, or both.
type KeyPair struct {
	mu      sync.RWMutex
	kind    KeyKind
	curve   string
	public  []byte
	private *securemem.Buffer
}

// NewKeyPair builds a key pair from raw inputs; nil means absent. The public
// bytes are stored verbatim and only decoded when a pipeline needs them. The
// private bytes are a passphrase, reduced to a scalar with hash-to-exponent.
func NewKeyPair(public, private []byte, st *State) (kp *KeyPair, err error) {
	defer func(start time.Time) { st.observe("keypair", start, err) }(time.Now())

	if err := requireState(st); err != nil {
		return nil, err
	}
	if public == nil && private == nil {
		return nil, ErrKeyPairEmpty
	}
	if public != nil && len(public) == 0 {
		return nil, ErrPublicKeyEmpty
	}

	kp = &KeyPair{curve: st.params.Name}
	if public != nil {
		kp.public = append([]byte{}, public...)
		kp.kind = KindPublic
	}
	if private != nil {
		buf, err := hashToExponent(private, st)
		if err != nil {
			return nil, err
		}
		kp.private = buf
		if kp.kind == KindPublic {
			kp.kind = KindFull
		} else {
			kp.kind = KindPrivate
		}
	}
	return kp, nil
}

// Keygen derives the private scalar from a passphrase and computes the
// matching public point. A nil passphrase is rejected; use GenerateKey for a
// random scalar.
func Keygen(private []byte, st *State) (kp *KeyPair, err error) {
	defer func(start time.Time) { st.observe("keygen", start, err) }(time.Now())

	if err := requireState(st); err != nil {
		return nil, err
	}
	if private == nil {
		return nil, ErrPrivateRequired
	}

	buf, err := hashToExponent(private, st)
	if err != nil {
		return nil, err
	}
	return completeKeyPair(buf, st)
}

// GenerateKey draws a private scalar from the runtime's random source.
func GenerateKey(st *State) (kp *KeyPair, err error) {
	defer func(start time.Time) { st.observe("generate", start, err) }(time.Now())

	if err := requireState(st); err != nil {
		return nil, err
	}

	k, err := st.params.RandomScalar(st.rt.random())
	if err != nil {
		return nil, err
	}
	defer internal.WipeInt(k)

	buf, err := storeScalar(k, st)
	if err != nil {
		return nil, err
	}
	return completeKeyPair(buf, st)
}

// completeKeyPair takes ownership of buf and attaches the public point.
func completeKeyPair(buf *securemem.Buffer, st *State) (*KeyPair, error) {
	k := new(big.Int).SetBytes(buf.Bytes())
	defer internal.WipeInt(k)

	pt, err := st.params.ScalarBaseMult(k)
	if err != nil {
		buf.Free()
		return nil, err
	}
	defer pt.Release()

	public, err := st.params.Encode(pt, mpi.FormCompact)
	if err != nil {
		buf.Free()
		return nil, err
	}

	return &KeyPair{
		kind:    KindFull,
		curve:   st.params.Name,
		public:  public,
		private: buf,
	}, nil
}

// Kind returns which components the key pair carries.
func (kp *KeyPair) Kind() KeyKind {
	if kp == nil {
		return kindDestroyed
	}
	kp.mu.RLock()
	defer kp.mu.RUnlock()
	return kp.kind
}

// PublicKey returns the compact public point, if present.
func (kp *KeyPair) PublicKey() (string, bool) {
	if kp == nil {
		return "", false
	}
	kp.mu.RLock()
	defer kp.mu.RUnlock()
	if kp.kind != KindPublic && kp.kind != KindFull {
		return "", false
	}
	return string(kp.public), true
}

// HasPrivate reports whether the private scalar is present and still backed
// by live secure memory.
func (kp *KeyPair) HasPrivate() bool {
	if kp == nil {
		return false
	}
	kp.mu.RLock()
	defer kp.mu.RUnlock()
	return (kp.kind == KindPrivate || kp.kind == KindFull) && kp.private.Len() > 0
}

// PublicPoint decodes the public component on the State's curve.
func (kp *KeyPair) PublicPoint(st *State) (curve.Point, error) {
	if err := requireState(st); err != nil {
		return curve.Point{}, err
	}
	pub, err := requirePublic(kp, st)
	if err != nil {
		return curve.Point{}, err
	}
	pt, err := st.params.Decode(pub, mpi.FormCompact)
	if err != nil {
		return curve.Point{}, ErrInvalidPublicKey.WithCause(err)
	}
	return pt, nil
}

// Destroy wipes and frees the private scalar. It is idempotent.
func (kp *KeyPair) Destroy() {
	if kp == nil {
		return
	}
	kp.mu.Lock()
	defer kp.mu.Unlock()

	kp.private.Free()
	kp.private = nil
	kp.public = nil
	kp.kind = kindDestroyed
}
