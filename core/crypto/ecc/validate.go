package ecc

import "github.com/kochabx/seccure/core/crypto/securemem"

func requireState(st *State) error {
	if !st.Initialized() || st.params == nil {
		return ErrStateUninitialized
	}
	return nil
}

func requireInput(b []byte) error {
	if len(b) == 0 {
		return ErrEmptyInput
	}
	return nil
}

func requireCurve(kp *KeyPair, st *State) error {
	if kp.curve != st.params.Name {
		return ErrCurveMismatch.WithMetadata(map[string]string{
			"key_curve":   kp.curve,
			"state_curve": st.params.Name,
		})
	}
	return nil
}

// requirePublic returns the compact public point of kp.
func requirePublic(kp *KeyPair, st *State) ([]byte, error) {
	if kp == nil {
		return nil, ErrKeyPairEmpty
	}
	kp.mu.RLock()
	defer kp.mu.RUnlock()

	switch kp.kind {
	case KindPublic, KindFull:
		if err := requireCurve(kp, st); err != nil {
			return nil, err
		}
		return kp.public, nil
	case KindPrivate:
		return nil, ErrPublicKeyEmpty
	case kindDestroyed:
		return nil, ErrKeyDestroyed
	default:
		return nil, ErrKeyPairEmpty
	}
}

// requirePrivate returns the secure buffer holding the scalar of kp.
func requirePrivate(kp *KeyPair, st *State) (*securemem.Buffer, error) {
	if kp == nil {
		return nil, ErrKeyPairEmpty
	}
	kp.mu.RLock()
	defer kp.mu.RUnlock()

	switch kp.kind {
	case KindPrivate, KindFull:
		// Pool.Term frees every outstanding buffer once the last State closes.
		if kp.private.Len() == 0 {
			return nil, ErrKeyDestroyed
		}
		if err := requireCurve(kp, st); err != nil {
			return nil, err
		}
		return kp.private, nil
	case KindPublic:
		return nil, ErrPrivateKeyEmpty
	case kindDestroyed:
		return nil, ErrKeyDestroyed
	default:
		return nil, ErrKeyPairEmpty
	}
}
